package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks an unrecognized run of input.
	Invalid Kind = iota

	// single-character punctuation
	Bang      // !
	Hash      // #
	Dollar    // $
	Percent   // %
	Amp       // &
	Star      // *
	Plus      // +
	Comma     // ,
	Minus     // -
	Dot       // .
	Slash     // /
	Colon     // :
	Semicolon // ;
	Lt        // <
	Assign    // =
	Gt        // >
	Question  // ?
	At        // @
	Backslash // \
	Caret     // ^
	Pipe      // |
	Tilde     // ~
	LParen    // (
	LBracket  // [
	LBrace    // {
	RParen    // )
	RBracket  // ]
	RBrace    // }

	// multi-character punctuation
	AndAnd      // &&
	OrOr        // ||
	EqEq        // ==
	BangEq      // !=
	LtEq        // <=
	GtEq        // >=
	Arrow       // ->
	DotDot      // ..
	DotDotEq    // ..=
	QuestionDot // ?.

	// keywords
	KwAs       // as
	KwBreak    // break
	KwContinue // continue
	KwElse     // else
	KwExtern   // extern
	KwFn       // fn
	KwFor      // for
	KwIf       // if
	KwImpl     // impl
	KwIn       // in
	KwLet      // let
	KwMatch    // match
	KwPub      // pub
	KwReturn   // return
	KwSelf     // self
	KwSelfType // Self
	KwStruct   // struct
	KwTrait    // trait
	KwType     // type
	KwUnion    // union
	KwUse      // use
	KwWhere    // where
	KwWhile    // while

	// Ident is any identifier that is not a keyword.
	Ident
	// Placeholder is the '_' name.
	Placeholder

	// literals
	CharLit
	StringLit
	IntLit
	DecimalLit
	ExponentLit
	BoolLit

	kindCount
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	Bang:        "Bang",
	Hash:        "Hash",
	Dollar:      "Dollar",
	Percent:     "Percent",
	Amp:         "Amp",
	Star:        "Star",
	Plus:        "Plus",
	Comma:       "Comma",
	Minus:       "Minus",
	Dot:         "Dot",
	Slash:       "Slash",
	Colon:       "Colon",
	Semicolon:   "Semicolon",
	Lt:          "Lt",
	Assign:      "Assign",
	Gt:          "Gt",
	Question:    "Question",
	At:          "At",
	Backslash:   "Backslash",
	Caret:       "Caret",
	Pipe:        "Pipe",
	Tilde:       "Tilde",
	LParen:      "LParen",
	LBracket:    "LBracket",
	LBrace:      "LBrace",
	RParen:      "RParen",
	RBracket:    "RBracket",
	RBrace:      "RBrace",
	AndAnd:      "AndAnd",
	OrOr:        "OrOr",
	EqEq:        "EqEq",
	BangEq:      "BangEq",
	LtEq:        "LtEq",
	GtEq:        "GtEq",
	Arrow:       "Arrow",
	DotDot:      "DotDot",
	DotDotEq:    "DotDotEq",
	QuestionDot: "QuestionDot",
	KwAs:        "KwAs",
	KwBreak:     "KwBreak",
	KwContinue:  "KwContinue",
	KwElse:      "KwElse",
	KwExtern:    "KwExtern",
	KwFn:        "KwFn",
	KwFor:       "KwFor",
	KwIf:        "KwIf",
	KwImpl:      "KwImpl",
	KwIn:        "KwIn",
	KwLet:       "KwLet",
	KwMatch:     "KwMatch",
	KwPub:       "KwPub",
	KwReturn:    "KwReturn",
	KwSelf:      "KwSelf",
	KwSelfType:  "KwSelfType",
	KwStruct:    "KwStruct",
	KwTrait:     "KwTrait",
	KwType:      "KwType",
	KwUnion:     "KwUnion",
	KwUse:       "KwUse",
	KwWhere:     "KwWhere",
	KwWhile:     "KwWhile",
	Ident:       "Ident",
	Placeholder: "Placeholder",
	CharLit:     "CharLit",
	StringLit:   "StringLit",
	IntLit:      "IntLit",
	DecimalLit:  "DecimalLit",
	ExponentLit: "ExponentLit",
	BoolLit:     "BoolLit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Invalid; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
