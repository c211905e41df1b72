package lexer

import "testing"

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor([]byte("a\nb"))
	for _, want := range []byte("a\nb") {
		if c.EOF() {
			t.Fatal("unexpected EOF")
		}
		if c.Peek() != want {
			t.Fatalf("Peek = %q, want %q", c.Peek(), want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatal("cursor must report EOF at end")
	}
}

func TestCursorMarkReset(t *testing.T) {
	c := NewCursor([]byte("hello"))
	c.Bump()
	m := c.Mark()
	c.Advance(3)
	sp := c.RangeFrom(m)
	if sp.Start != 1 || sp.End != 4 || sp.Len != 3 {
		t.Fatalf("RangeFrom = %+v", sp)
	}
	c.Reset(m)
	if c.Peek() != 'e' {
		t.Fatalf("Reset did not rewind, Peek = %q", c.Peek())
	}
	c.Advance(100)
	if !c.EOF() {
		t.Fatal("Advance must clamp to the end")
	}
	if b, ok := c.PeekAt(0); ok || b != 0 {
		t.Fatal("PeekAt past end must fail")
	}
}

func TestMatchString(t *testing.T) {
	cases := map[string]uint32{
		`""`:       2,
		`"""`:      3,
		`"a"`:      3,
		`"a\"b" x`: 6,
		`"a\\"`:    0,
		`"abc`:     0,
		`"x" "y"`:  3,
		"\"é\"":    4,
	}
	for in, want := range cases {
		if got := matchString([]byte(in)); got != want {
			t.Errorf("matchString(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMatchChar(t *testing.T) {
	cases := map[string]uint32{
		`'a'`:     3,
		`'\''`:    4,
		`'ab'`:    4,
		`'''`:     3,
		`''`:      0,
		`'\'`:     0,
		`'a' 'b'`: 3,
	}
	for in, want := range cases {
		if got := matchChar([]byte(in)); got != want {
			t.Errorf("matchChar(%q) = %d, want %d", in, got, want)
		}
	}
}
