package lexer

import (
	"iter"

	"ranoc/internal/diag"
	"ranoc/internal/token"
)

// Lexer produces tokens lazily from a fully resident source text.
// It cannot be rewound: scanning again needs a fresh Lexer.
type Lexer struct {
	cursor    Cursor
	opts      Options
	line      uint32 // number of line breaks seen so far
	lastBreak uint32 // end offset of the most recent line break
}

func New(src []byte, opts Options) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		opts:   opts,
	}
}

// Tokenize scans src to the end and returns every token.
func Tokenize(src []byte, opts Options) []token.Token {
	lx := New(src, opts)
	var out []token.Token
	for tok := range lx.All() {
		out = append(out, tok)
	}
	return out
}

// All returns the remaining tokens as a sequence.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := lx.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Next returns the next token; ok is false once the input is exhausted.
// Whitespace and line breaks are consumed here and never returned.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	lx.skipTrivia()
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	start := lx.cursor.Mark()
	kind, n := lx.longestMatch()
	if n == 0 {
		n = lx.invalidRunLen()
		kind = token.Invalid
	}
	lx.cursor.Advance(n)

	tok = lx.emit(kind, start)
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, tok.Span, "unrecognized input")
	}
	return tok, true
}

// Line returns the current 0-based line counter.
func (lx *Lexer) Line() uint32 { return lx.line }

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.RangeFrom(start)
	sp.Line = lx.line
	// column is measured from the end of the token, not its start
	sp.Column = sp.End - lx.lastBreak
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.cursor.Src[sp.Start:sp.End]),
	}
}

// longestMatch tries every token class at the cursor and returns the
// longest; ties go to fixed words, then literal patterns, then identifiers.
func (lx *Lexer) longestMatch() (token.Kind, uint32) {
	rest := lx.cursor.Rest()

	if k, n := matchPunct(rest); n > 0 {
		// punctuation never overlaps any other class
		return k, n
	}
	if isDec(rest[0]) {
		return matchNumber(rest)
	}

	bestKind, best := token.Invalid, uint32(0)
	switch rest[0] {
	case '\'':
		if n := matchChar(rest); n > 0 {
			bestKind, best = token.CharLit, n
		}
	case '"':
		if n := matchString(rest); n > 0 {
			bestKind, best = token.StringLit, n
		}
	}

	if n := matchIdent(rest); n > best {
		word := string(rest[:n])
		if k, ok := token.LookupKeyword(word); ok {
			return k, n
		}
		return token.Ident, n
	}
	return bestKind, best
}
