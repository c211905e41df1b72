package token

import (
	"ranoc/internal/source"
)

// Token is one lexical unit: kind, position and the raw source slice.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is one of the six literal kinds.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case CharLit, StringLit, IntLit, DecimalLit, ExponentLit, BoolLit:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is single or multi-character punctuation.
func (t Token) IsPunct() bool {
	return t.Kind >= Bang && t.Kind <= QuestionDot
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAs && t.Kind <= KwWhile
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
