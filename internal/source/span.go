package source

import (
	"fmt"
	"math"
)

// Span locates a token or node in a source file.
// Start/End are byte offsets ([Start, End)), Line is 0-based,
// Column is the offset distance from the last line break to End.
type Span struct {
	Start  uint32 // в байтах включительно
	End    uint32 // в байтах не включительно
	Line   uint32
	Column uint32
	Len    uint32
}

// EmptySpan is the identity element of Join. Its range is inverted
// (Start > End) so it can never be mistaken for a real zero-width span.
var EmptySpan = Span{Start: math.MaxUint32, End: 0}

// Spanned is implemented by anything that can report its source extent.
type Spanned interface {
	Span() Span
}

// IsEmpty reports whether s is the EmptySpan sentinel.
func (s Span) IsEmpty() bool {
	return s.Start > s.End
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	if s.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return s
	}
	out := Span{
		Start:  min(s.Start, other.Start),
		End:    max(s.End, other.End),
		Line:   min(s.Line, other.Line),
		Column: min(s.Column, other.Column),
	}
	out.Len = out.End - out.Start
	return out
}

// Join folds spans left to right starting from EmptySpan.
func Join(spans ...Span) Span {
	acc := EmptySpan
	for _, sp := range spans {
		acc = acc.Join(sp)
	}
	return acc
}

// JoinAll folds the spans of every item; an empty slice yields EmptySpan.
func JoinAll[T Spanned](items []T) Span {
	acc := EmptySpan
	for _, it := range items {
		acc = acc.Join(it.Span())
	}
	return acc
}

// Contains reports whether inner lies within s.
func (s Span) Contains(inner Span) bool {
	if s.IsEmpty() || inner.IsEmpty() {
		return false
	}
	return inner.Start >= s.Start && inner.End <= s.End
}

func (s Span) String() string {
	if s.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprintf("%d-%d@%d:%d", s.Start, s.End, s.Line, s.Column)
}
