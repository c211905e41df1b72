package ast

import (
	"ranoc/internal/source"
)

type NameKind uint8

const (
	NameIdent NameKind = iota
	NamePlaceholder
)

func NameKinds() []NameKind {
	return []NameKind{NameIdent, NamePlaceholder}
}

func (k NameKind) String() string {
	switch k {
	case NameIdent:
		return "Ident"
	case NamePlaceholder:
		return "Placeholder"
	default:
		return "NameKind(?)"
	}
}

// Name is either an identifier or the `_` placeholder.
// Text is NoStringID for placeholders.
type Name struct {
	Kind NameKind
	Text source.StringID
	Loc  source.Span
}

// Placeholder returns the `_` name located at sp.
func Placeholder(sp source.Span) Name {
	return Name{Kind: NamePlaceholder, Loc: sp}
}

func (n Name) Span() source.Span { return n.Loc }

func (n Name) IsPlaceholder() bool { return n.Kind == NamePlaceholder }
