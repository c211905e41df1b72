package source

import (
	"testing"
)

type spanned Span

func (s spanned) Span() Span { return Span(s) }

func mk(start, end, line, col uint32) Span {
	return Span{Start: start, End: end, Line: line, Column: col, Len: end - start}
}

func TestSpan_Join(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint left to right",
			a:        mk(0, 3, 0, 3),
			b:        mk(5, 8, 1, 2),
			expected: mk(0, 8, 0, 2),
		},
		{
			name:     "nested",
			a:        mk(2, 10, 0, 10),
			b:        mk(4, 6, 0, 6),
			expected: mk(2, 10, 0, 6),
		},
		{
			name:     "reversed order gives same extent",
			a:        mk(5, 8, 1, 2),
			b:        mk(0, 3, 0, 3),
			expected: mk(0, 8, 0, 2),
		},
		{
			name:     "empty sentinel on the left",
			a:        EmptySpan,
			b:        mk(4, 7, 2, 3),
			expected: mk(4, 7, 2, 3),
		},
		{
			name:     "empty sentinel on the right",
			a:        mk(4, 7, 2, 3),
			b:        EmptySpan,
			expected: mk(4, 7, 2, 3),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Join(tt.b); got != tt.expected {
				t.Errorf("Join() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpan_JoinAssociative(t *testing.T) {
	spans := []Span{mk(0, 2, 0, 2), mk(7, 9, 1, 1), mk(3, 5, 0, 5), EmptySpan, mk(11, 12, 2, 1)}
	for i := range spans {
		for j := range spans {
			for k := range spans {
				a, b, c := spans[i], spans[j], spans[k]
				left := a.Join(b).Join(c)
				right := a.Join(b.Join(c))
				if left != right {
					t.Fatalf("(%v+%v)+%v = %v, %v+(%v+%v) = %v", a, b, c, left, a, b, c, right)
				}
			}
		}
	}
}

func TestJoinAll(t *testing.T) {
	if got := JoinAll([]spanned{}); got != EmptySpan {
		t.Fatalf("JoinAll(empty) = %v, want EmptySpan", got)
	}
	items := []spanned{spanned(mk(4, 6, 1, 2)), spanned(mk(0, 1, 0, 1)), spanned(mk(9, 12, 2, 3))}
	got := JoinAll(items)
	want := mk(0, 12, 0, 1)
	if got != want {
		t.Fatalf("JoinAll() = %+v, want %+v", got, want)
	}
	if Join() != EmptySpan {
		t.Fatalf("Join() with no args must be EmptySpan")
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := mk(0, 10, 0, 10)
	if !outer.Contains(mk(2, 5, 0, 5)) {
		t.Error("expected containment")
	}
	if outer.Contains(mk(8, 12, 0, 12)) {
		t.Error("overhanging span must not be contained")
	}
	if outer.Contains(EmptySpan) || EmptySpan.Contains(outer) {
		t.Error("empty sentinel never participates in containment")
	}
}
