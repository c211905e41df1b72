package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_Resolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.rano", []byte("let a\nlet bb\n\nx"))

	cases := []struct {
		span Span
		want LineCol
	}{
		{Span{Start: 0, End: 3}, LineCol{Line: 1, Col: 1}},
		{Span{Start: 4, End: 5}, LineCol{Line: 1, Col: 5}},
		{Span{Start: 10, End: 12}, LineCol{Line: 2, Col: 5}},
		{Span{Start: 14, End: 15}, LineCol{Line: 4, Col: 1}},
	}
	for _, c := range cases {
		got, _ := fs.Resolve(id, c.span)
		if got != c.want {
			t.Errorf("Resolve(%v) = %+v, want %+v", c.span, got, c.want)
		}
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("crlf.rano", []byte("one\r\ntwo\nthree")))

	want := map[uint32]string{1: "one", 2: "two", 3: "three", 4: "", 0: ""}
	for n, w := range want {
		if got := f.GetLine(n); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, w)
		}
	}
}

func TestFileSet_LoadStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.rano")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFlet x;"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "let x;" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if got, ok := fs.GetByPath(path); !ok || got.ID != id {
		t.Error("GetByPath must find the loaded file")
	}
	if fs.Get(FileID(42)) != nil {
		t.Error("unknown id must yield nil")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to empty string, got %q", s)
	}
	a := in.Intern("foo")
	b := in.Intern("foo")
	c := in.Intern("bar")
	if a != b {
		t.Errorf("same string interned twice: %d != %d", a, b)
	}
	if a == c {
		t.Error("distinct strings share an id")
	}
	if in.MustLookup(c) != "bar" {
		t.Error("lookup mismatch")
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("unknown id must not resolve")
	}
	if in.Len() != 3 {
		t.Errorf("Len() = %d, want 3", in.Len())
	}
}
