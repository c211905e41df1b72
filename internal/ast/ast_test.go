package ast

import (
	"testing"

	"ranoc/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{Start: start, End: end, Len: end - start, Column: end}
}

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatal("empty arena must return nil")
	}
	id := a.Allocate(42)
	if id != 1 || *a.Get(id) != 42 || a.Len() != 1 {
		t.Fatalf("Allocate = %d, Get = %v", id, a.Get(id))
	}
}

func TestBuilderModule(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	mod := b.NewModule(source.EmptySpan)

	lit := b.Exprs.NewLiteral(sp(0, 1), LitInt, b.Strings.Intern("1"))
	s1 := b.Stmts.NewExpr(sp(0, 2), lit)
	b.PushNode(mod, b.NewStatementNode(s1))

	x := b.Exprs.NewName(b.Ident("x", sp(7, 8)))
	s2 := b.Stmts.NewLet(sp(3, 13), Placeholder(sp(7, 8)), x)
	b.PushNode(mod, b.NewStatementNode(s2))

	m := b.Modules.Get(mod)
	if len(m.Nodes) != 2 {
		t.Fatalf("module has %d nodes", len(m.Nodes))
	}
	if m.Span.Start != 0 || m.Span.End != 13 {
		t.Errorf("module span = %v", m.Span)
	}
	if n := b.Nodes.Get(m.Nodes[1]); n.Kind != NodeStatement || n.Stmt != s2 {
		t.Errorf("second node = %+v", n)
	}
	if got := b.Stmts.Get(s2); got.Kind != StmtLet || !got.Name.IsPlaceholder() {
		t.Errorf("let stmt = %+v", got)
	}
	name, ok := b.Exprs.Name(x)
	if !ok || b.NameText(*name) != "x" {
		t.Errorf("name = %+v", name)
	}
}

func TestPayloadAccessorsCheckKind(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	one := b.Exprs.NewLiteral(sp(0, 1), LitInt, b.Strings.Intern("1"))
	neg := b.Exprs.NewUnary(sp(0, 2), OpNeg, one)
	if _, ok := b.Exprs.Tuple(one); ok {
		t.Error("literal must not decode as tuple")
	}
	op, ok := b.Exprs.Operator(neg)
	if !ok || op.Op != OpNeg || op.Right != one || op.Left.IsValid() {
		t.Errorf("operator = %+v", op)
	}
	path := b.Exprs.NewPath([]Name{b.Ident("a", sp(0, 1)), b.Ident("b", sp(2, 3))})
	if got := b.Exprs.Get(path).Span; got.Start != 0 || got.End != 3 {
		t.Errorf("path span = %v", got)
	}
}

func TestKindNamesAreComplete(t *testing.T) {
	for _, k := range ExprKinds() {
		if k.String() == "ExprKind(?)" || k.String() == "" {
			t.Errorf("expr kind %d has no name", k)
		}
	}
	if n := len(ExprKinds()); n != 10 {
		t.Errorf("expected 10 expression kinds, got %d", n)
	}
	for _, op := range Ops() {
		if op.Symbol() == "" || op.String() == "" {
			t.Errorf("op %d has no symbol", op)
		}
	}
	for _, k := range LitKinds() {
		if k.String() == "LitKind(?)" {
			t.Errorf("lit kind %d has no name", k)
		}
	}
}

func TestNewBareRejectsPayloadKinds(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	for _, k := range ExprKinds() {
		func() {
			defer func() {
				r := recover()
				if k.HasPayload() && r == nil {
					t.Errorf("NewBare(%s) must panic", k)
				}
				if !k.HasPayload() && r != nil {
					t.Errorf("NewBare(%s) panicked: %v", k, r)
				}
			}()
			b.Exprs.NewBare(k, sp(0, 1))
		}()
	}
}
