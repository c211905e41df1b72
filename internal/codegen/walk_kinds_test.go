package codegen_test

import (
	"errors"
	"testing"

	"ranoc/internal/ast"
	"ranoc/internal/codegen"
	"ranoc/internal/diag"
	"ranoc/internal/source"
)

var unimplementedKinds = map[ast.ExprKind]bool{
	ast.ExprMatch:   true,
	ast.ExprClosure: true,
	ast.ExprPath:    true,
	ast.ExprArray:   true,
	ast.ExprInit:    true,
	ast.ExprIf:      true,
}

// sample builds a well-formed expression of kind k.
func sample(b *ast.Builder, k ast.ExprKind) ast.ExprID {
	sp := source.Span{Start: 0, End: 1, Len: 1, Column: 1}
	one := func() ast.ExprID { return b.Exprs.NewLiteral(sp, ast.LitInt, b.Strings.Intern("1")) }
	switch k {
	case ast.ExprLiteral:
		return one()
	case ast.ExprPath:
		return b.Exprs.NewPath([]ast.Name{b.Ident("a", sp), b.Ident("b", sp)})
	case ast.ExprTuple:
		return b.Exprs.NewTuple(sp, []ast.ExprID{one(), one()})
	case ast.ExprOperator:
		return b.Exprs.NewBinary(sp, ast.OpAdd, one(), one())
	case ast.ExprName:
		return b.Exprs.NewName(b.Ident("bound", sp))
	default:
		return b.Exprs.NewBare(k, sp)
	}
}

// Every expression kind has a branch: either it lowers or it reports
// GenUnimplemented. None may fall through to an internal error.
func TestEveryExprKindIsDispatched(t *testing.T) {
	for _, k := range ast.ExprKinds() {
		t.Run(k.String(), func(t *testing.T) {
			b := ast.NewBuilder(ast.Hints{}, nil)
			mod := b.NewModule(source.EmptySpan)
			sp := source.Span{Start: 0, End: 1, Len: 1}
			bind := b.Stmts.NewLet(sp, b.Ident("bound", sp), sample(b, ast.ExprLiteral))
			b.PushNode(mod, b.NewStatementNode(bind))
			stmt := b.Stmts.NewExpr(sp, sample(b, k))
			b.PushNode(mod, b.NewStatementNode(stmt))

			ctx := codegen.NewContext(b, codegen.Options{Strict: true})
			err := codegen.WalkModule(ctx, mod)

			if unimplementedKinds[k] {
				if !errors.Is(err, codegen.ErrUnimplemented) {
					t.Fatalf("expected unimplemented fault, got %v", err)
				}
				var f *codegen.Fault
				if !errors.As(err, &f) || f.Code != diag.GenUnimplemented {
					t.Fatalf("fault = %+v", f)
				}
				return
			}
			if err != nil || len(ctx.Diagnostics()) != 0 {
				t.Fatalf("kind %v must lower cleanly: %v %v", k, err, ctx.Diagnostics())
			}
		})
	}
}

func TestFaultKindsAreDistinct(t *testing.T) {
	f := &codegen.Fault{Kind: codegen.FaultUser, Code: diag.GenUndefinedName, Message: "x"}
	if errors.Is(f, codegen.ErrUnimplemented) || errors.Is(f, codegen.ErrInternal) {
		t.Error("user fault matched a sentinel")
	}
	f.Kind = codegen.FaultUnimplemented
	if !errors.Is(f, codegen.ErrUnimplemented) {
		t.Error("unimplemented fault not recognized")
	}
	if got := f.Error(); got != "GEN3001: x" {
		t.Errorf("Error() = %q", got)
	}
}
