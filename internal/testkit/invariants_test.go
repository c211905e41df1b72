package testkit

import (
	"strings"
	"testing"

	"ranoc/internal/ast"
	"ranoc/internal/lexer"
	"ranoc/internal/parser"
	"ranoc/internal/source"
	"ranoc/internal/token"
)

func TestCheckTokenInvariants(t *testing.T) {
	for _, src := range []string{
		"",
		"let x = 1;",
		"let   x\n\t= (1, 'c', \"s\") ..= 2.5e+3;",
		"a\xffb",
	} {
		toks := lexer.Tokenize([]byte(src), lexer.Options{})
		if err := CheckTokenInvariants(toks, []byte(src)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTokenInvariantsDetectsOverlap(t *testing.T) {
	src := []byte("ab")
	toks := []token.Token{
		{Kind: token.Ident, Span: source.Span{Start: 0, End: 2}, Text: "ab"},
		{Kind: token.Ident, Span: source.Span{Start: 1, End: 2}, Text: "b"},
	}
	err := CheckTokenInvariants(toks, src)
	if err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Fatalf("expected overlap error, got %v", err)
	}
}

func TestCheckSpanInvariants(t *testing.T) {
	for _, src := range []string{
		"",
		"1;",
		"let x = -(1 + 2) * 3;\nx;",
		"a.b.c; (1, (2, 3),); () ; x == 1 && !y;",
	} {
		toks := lexer.Tokenize([]byte(src), lexer.Options{})
		b := ast.NewBuilder(ast.Hints{}, nil)
		mod, err := parser.Parse(toks, b)
		if err != nil {
			t.Fatalf("%q: parse: %v", src, err)
		}
		if err := CheckSpanInvariants(b, mod, []byte(src)); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsDetectsEscapingChild(t *testing.T) {
	src := []byte("x;")
	b := ast.NewBuilder(ast.Hints{}, nil)
	name := b.Exprs.NewName(b.Ident("x", source.Span{Start: 0, End: 1}))
	// операнд шире родителя
	wide := b.Exprs.NewName(b.Ident("y", source.Span{Start: 0, End: 5}))
	op := b.Exprs.NewBinary(source.Span{Start: 0, End: 1}, ast.OpAdd, name, wide)
	stmt := b.Stmts.NewExpr(source.Span{Start: 0, End: 2}, op)
	mod := b.NewModule(source.EmptySpan)
	b.PushNode(mod, b.NewStatementNode(stmt))

	if err := CheckSpanInvariants(b, mod, src); err == nil {
		t.Fatal("expected an error for a child outside its parent")
	}
}
