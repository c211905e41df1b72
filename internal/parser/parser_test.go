package parser_test

import (
	"errors"
	"testing"

	"ranoc/internal/ast"
	"ranoc/internal/diag"
	"ranoc/internal/lexer"
	"ranoc/internal/parser"
)

func parseModule(t *testing.T, src string) (*ast.Builder, *ast.Module) {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{}, nil)
	mod, err := parser.Parse(lexer.Tokenize([]byte(src), lexer.Options{}), b)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return b, b.Modules.Get(mod)
}

func parseErr(t *testing.T, src string) *parser.Error {
	t.Helper()
	b := ast.NewBuilder(ast.Hints{}, nil)
	_, err := parser.Parse(lexer.Tokenize([]byte(src), lexer.Options{}), b)
	var pe *parser.Error
	if !errors.As(err, &pe) {
		t.Fatalf("Parse(%q): expected *parser.Error, got %v", src, err)
	}
	return pe
}

// singleExpr parses "src" as a module with one expression statement.
func singleExpr(t *testing.T, src string) (*ast.Builder, ast.ExprID) {
	t.Helper()
	b, m := parseModule(t, src)
	if len(m.Nodes) != 1 {
		t.Fatalf("%q: expected 1 node, got %d", src, len(m.Nodes))
	}
	st := b.Stmts.Get(b.Nodes.Get(m.Nodes[0]).Stmt)
	return b, st.Expr
}

func TestParseName(t *testing.T) {
	tests := []struct {
		src      string
		wantKind ast.NameKind
		wantText string
	}{
		{"_", ast.NamePlaceholder, "_"},
		{"foo", ast.NameIdent, "foo"},
		{"_foo", ast.NameIdent, "_foo"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b := ast.NewBuilder(ast.Hints{}, nil)
			in := parser.NewInput(lexer.Tokenize([]byte(tt.src), lexer.Options{}))
			rest, name, err := parser.ParseName(b)(in)
			if err != nil {
				t.Fatalf("ParseName: %v", err)
			}
			if !rest.AtEnd() {
				t.Error("name must consume its single token")
			}
			if name.Kind != tt.wantKind || b.NameText(name) != tt.wantText {
				t.Errorf("got %v %q, want %v %q", name.Kind, b.NameText(name), tt.wantKind, tt.wantText)
			}
		})
	}
}

func TestParseNameRejectsOtherTokens(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	in := parser.NewInput(lexer.Tokenize([]byte("1"), lexer.Options{}))
	_, _, err := parser.ParseName(b)(in)
	if !errors.Is(err, parser.ErrNoMatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestParseEmptySource(t *testing.T) {
	for _, src := range []string{"", "   \n\t"} {
		_, m := parseModule(t, src)
		if len(m.Nodes) != 0 {
			t.Errorf("%q: expected no nodes", src)
		}
	}
}

func TestModuleSpanCoversNodes(t *testing.T) {
	tests := []struct {
		src        string
		start, end uint32
	}{
		{"  let x = 1;\n x;  ", 2, 16},
		{"1;", 0, 2},
	}
	for _, tt := range tests {
		_, m := parseModule(t, tt.src)
		if m.Span.Start != tt.start || m.Span.End != tt.end {
			t.Errorf("%q: module span = %v, want %d..%d", tt.src, m.Span, tt.start, tt.end)
		}
	}

	_, empty := parseModule(t, "  ")
	if !empty.Span.IsEmpty() {
		t.Errorf("module without nodes must keep the empty span, got %v", empty.Span)
	}
}

func TestParseLet(t *testing.T) {
	b, m := parseModule(t, "let x = 1;\nlet _ = x;")
	if len(m.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(m.Nodes))
	}
	first := b.Stmts.Get(b.Nodes.Get(m.Nodes[0]).Stmt)
	if first.Kind != ast.StmtLet || b.NameText(first.Name) != "x" {
		t.Errorf("first stmt = %+v", first)
	}
	if first.Span.Start != 0 || first.Span.End != 10 {
		t.Errorf("let span = %v", first.Span)
	}
	second := b.Stmts.Get(b.Nodes.Get(m.Nodes[1]).Stmt)
	if !second.Name.IsPlaceholder() {
		t.Error("`let _` must bind the placeholder")
	}
	if _, ok := b.Exprs.Name(second.Expr); !ok {
		t.Error("initializer must be a name expression")
	}
}

func TestParsePrecedence(t *testing.T) {
	b, id := singleExpr(t, "1 + 2 * 3 == 7 && !false;")
	and, ok := b.Exprs.Operator(id)
	if !ok || and.Op != ast.OpAnd {
		t.Fatalf("root = %+v", and)
	}
	eq, _ := b.Exprs.Operator(and.Left)
	if eq == nil || eq.Op != ast.OpEq {
		t.Fatalf("left of && = %+v", eq)
	}
	add, _ := b.Exprs.Operator(eq.Left)
	if add == nil || add.Op != ast.OpAdd {
		t.Fatalf("left of == = %+v", add)
	}
	mul, _ := b.Exprs.Operator(add.Right)
	if mul == nil || mul.Op != ast.OpMul {
		t.Fatalf("right of + = %+v", mul)
	}
	not, _ := b.Exprs.Operator(and.Right)
	if not == nil || not.Op != ast.OpNot {
		t.Fatalf("right of && = %+v", not)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	b, id := singleExpr(t, "-1 - 2 - 3;")
	outer, _ := b.Exprs.Operator(id)
	if outer == nil || outer.Op != ast.OpSub {
		t.Fatalf("root = %+v", outer)
	}
	inner, _ := b.Exprs.Operator(outer.Left)
	if inner == nil || inner.Op != ast.OpSub {
		t.Fatalf("left = %+v", inner)
	}
	neg, _ := b.Exprs.Operator(inner.Left)
	if neg == nil || neg.Op != ast.OpNeg {
		t.Fatalf("leftmost = %+v", neg)
	}
	if sp := b.Exprs.Get(id).Span; sp.Start != 0 || sp.End != 10 {
		t.Errorf("span = %v", sp)
	}
}

func TestParseTuples(t *testing.T) {
	tests := []struct {
		src   string
		kind  ast.ExprKind
		elems int
	}{
		{"();", ast.ExprTuple, 0},
		{"(1,);", ast.ExprTuple, 1},
		{"(1);", ast.ExprLiteral, 0},
		{"(1, 2);", ast.ExprTuple, 2},
		{"(1, (2, 3), 'c',);", ast.ExprTuple, 3},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			b, id := singleExpr(t, tt.src)
			if got := b.Exprs.Get(id).Kind; got != tt.kind {
				t.Fatalf("kind = %v, want %v", got, tt.kind)
			}
			if tt.kind == ast.ExprTuple {
				tup, _ := b.Exprs.Tuple(id)
				if len(tup.Elements) != tt.elems {
					t.Errorf("elements = %d, want %d", len(tup.Elements), tt.elems)
				}
			}
		})
	}
}

func TestParsePathAndRange(t *testing.T) {
	b, id := singleExpr(t, "a.b._;")
	path, ok := b.Exprs.Path(id)
	if !ok || len(path.Segments) != 3 {
		t.Fatalf("path = %+v", path)
	}
	if !path.Segments[2].IsPlaceholder() {
		t.Error("last segment must be the placeholder")
	}

	b, id = singleExpr(t, "0..=10;")
	rng, _ := b.Exprs.Operator(id)
	if rng == nil || rng.Op != ast.OpRangeInclusive {
		t.Fatalf("range = %+v", rng)
	}
}

func TestParseLiteralKinds(t *testing.T) {
	want := map[string]ast.LitKind{
		"'a';":    ast.LitChar,
		`"s";`:    ast.LitString,
		"0x1F;":   ast.LitInt,
		"1.5;":    ast.LitDecimal,
		"1.5e+3;": ast.LitExponent,
		"true;":   ast.LitBool,
	}
	for src, kind := range want {
		b, id := singleExpr(t, src)
		lit, ok := b.Exprs.Literal(id)
		if !ok || lit.Kind != kind {
			t.Errorf("%q: literal = %+v, want %v", src, lit, kind)
		}
	}
}

func TestParseUnimplementedSyntax(t *testing.T) {
	tests := map[string]string{
		"#[inline]":      "directive",
		"match x;":       "match",
		"if x;":          "if",
		"|x| x;":         "closure",
		"fn;":            "closure",
		"[1, 2];":        "array",
		"Point { };":     "struct/union init",
		"(1, match x);":  "match",
		"let a = 1; [];": "array",
	}
	for src, feature := range tests {
		pe := parseErr(t, src)
		if pe.Kind != parser.ErrUnimplemented || pe.Feature != feature {
			t.Errorf("%q: got %v (%s), want unimplemented %s", src, pe.Kind, pe.Feature, feature)
		}
		if pe.Code != diag.SynUnimplemented {
			t.Errorf("%q: code = %v", src, pe.Code)
		}
		if !errors.Is(pe, parser.ErrNotImplemented) {
			t.Errorf("%q: errors.Is(ErrNotImplemented) = false", src)
		}
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	pe := parseErr(t, "let x = 1")
	if pe.Kind != parser.ErrTrailing || pe.Pos != 0 {
		t.Fatalf("got %v at %d", pe.Kind, pe.Pos)
	}
	if pe.Cause == nil || pe.Cause.Code != diag.SynExpectSemicolon {
		t.Fatalf("cause = %+v", pe.Cause)
	}
	if pe.Cause.Found != "end of input" {
		t.Errorf("cause found %q", pe.Cause.Found)
	}
}

func TestParseTrailingInput(t *testing.T) {
	pe := parseErr(t, "1; 2 3;")
	if pe.Kind != parser.ErrTrailing || pe.Pos != 2 {
		t.Fatalf("got %v at %d", pe.Kind, pe.Pos)
	}
	if pe.Span.Start != 3 {
		t.Errorf("error must point at the first unconsumed token, got %v", pe.Span)
	}
}

func TestParseExpectExpression(t *testing.T) {
	pe := parseErr(t, "let x = ;")
	if pe.Cause == nil || pe.Cause.Code != diag.SynExpectExpression {
		t.Fatalf("cause = %+v", pe.Cause)
	}
}

func TestParseExpr(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	id, err := parser.ParseExpr(lexer.Tokenize([]byte("(a, 1)"), lexer.Options{}), b)
	if err != nil {
		t.Fatal(err)
	}
	if b.Exprs.Get(id).Kind != ast.ExprTuple {
		t.Errorf("kind = %v", b.Exprs.Get(id).Kind)
	}
}
