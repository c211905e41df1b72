package token

var keywords = map[string]Kind{
	"as":       KwAs,
	"break":    KwBreak,
	"continue": KwContinue,
	"else":     KwElse,
	"extern":   KwExtern,
	"fn":       KwFn,
	"for":      KwFor,
	"if":       KwIf,
	"impl":     KwImpl,
	"in":       KwIn,
	"let":      KwLet,
	"match":    KwMatch,
	"pub":      KwPub,
	"return":   KwReturn,
	"self":     KwSelf,
	"Self":     KwSelfType,
	"struct":   KwStruct,
	"trait":    KwTrait,
	"type":     KwType,
	"union":    KwUnion,
	"use":      KwUse,
	"where":    KwWhere,
	"while":    KwWhile,
	// fixed words that are not keywords but share their priority
	"_":     Placeholder,
	"true":  BoolLit,
	"false": BoolLit,
}

// LookupKeyword returns the fixed kind for a word, if any.
// Keywords are case sensitive: "Self" and "self" are different words.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// punct maps fixed punctuation spellings to kinds; the scanner tries
// longer spellings first.
var punct = map[string]Kind{
	"!": Bang, "#": Hash, "$": Dollar, "%": Percent, "&": Amp, "*": Star,
	"+": Plus, ",": Comma, "-": Minus, ".": Dot, "/": Slash, ":": Colon,
	";": Semicolon, "<": Lt, "=": Assign, ">": Gt, "?": Question, "@": At,
	"\\": Backslash, "^": Caret, "|": Pipe, "~": Tilde,
	"(": LParen, "[": LBracket, "{": LBrace, ")": RParen, "]": RBracket, "}": RBrace,

	"&&": AndAnd, "||": OrOr, "==": EqEq, "!=": BangEq, "<=": LtEq, ">=": GtEq,
	"->": Arrow, "..": DotDot, "?.": QuestionDot,

	"..=": DotDotEq,
}

// MaxPunctLen is the length of the longest punctuation spelling.
const MaxPunctLen = 3

// LookupPunct returns the punctuation kind spelled exactly by s.
func LookupPunct(s string) (Kind, bool) {
	k, ok := punct[s]
	return k, ok
}

// IsPunctByte reports whether b belongs to the single-character
// punctuation set; identifiers may not contain these bytes.
func IsPunctByte(b byte) bool {
	return b < 0x80 && punctBytes[b]
}

var punctBytes = func() (tbl [0x80]bool) {
	for s := range punct {
		if len(s) == 1 {
			tbl[s[0]] = true
		}
	}
	return tbl
}()
