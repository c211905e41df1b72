package codegen

import (
	"errors"
	"fmt"

	"ranoc/internal/ast"
	"ranoc/internal/ir"
	"ranoc/internal/source"
	"ranoc/internal/trace"
)

// WalkModule lowers every top-level node of the module. A failing node is
// recorded as a diagnostic, its partial IR is dropped and the walk goes on.
// The returned error is non-nil only when the module does not exist or,
// in strict mode, for the first unimplemented feature; diagnostics recorded
// before that stay in ctx.
func WalkModule(ctx *Context, id ast.ModuleID) error {
	mod := ctx.Builder.Modules.Get(id)
	if mod == nil {
		return fmt.Errorf("codegen: %w: module %d does not exist", ErrInternal, id)
	}

	span := trace.Begin(ctx.opts.Tracer, trace.ScopePass, "codegen", ctx.opts.TraceParent)
	failed := 0
	defer func() {
		span.WithExtra("nodes", fmt.Sprint(len(mod.Nodes))).WithExtra("failed", fmt.Sprint(failed)).End("")
	}()

	for i, nodeID := range mod.Nodes {
		mark := ctx.Program.Len()
		err := walkNode(ctx, nodeID)
		if err == nil {
			trace.Point(ctx.opts.Tracer, trace.ScopeStmt, nodeName(i), "ok", span.ID())
			continue
		}

		failed++
		ctx.Program.Truncate(mark)
		f := asFault(err)
		ctx.AddDiagnostic(f.Diagnostic())
		trace.Point(ctx.opts.Tracer, trace.ScopeStmt, nodeName(i), f.Error(), span.ID())

		if ctx.opts.Strict && errors.Is(f, ErrUnimplemented) {
			return f
		}
	}
	return nil
}

func nodeName(i int) string {
	return fmt.Sprintf("node#%d", i)
}

func walkNode(ctx *Context, id ast.NodeID) error {
	node := ctx.Builder.Nodes.Get(id)
	if node == nil {
		return internalFault(source.EmptySpan, "node %d does not exist", id)
	}
	switch node.Kind {
	case ast.NodeDirective:
		return unimplemented(node.Span, "directive")
	case ast.NodeStatement:
		return walkStmt(ctx, node.Stmt)
	default:
		return internalFault(node.Span, "unknown node kind %v", node.Kind)
	}
}

func walkStmt(ctx *Context, id ast.StmtID) error {
	stmt := ctx.Builder.Stmts.Get(id)
	if stmt == nil {
		return internalFault(source.EmptySpan, "statement %d does not exist", id)
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		if err := walkExpr(ctx, stmt.Expr); err != nil {
			return err
		}
		ctx.emit(ir.Instr{Op: ir.OpPop}, stmt.Span)
		return nil
	case ast.StmtLet:
		// the name is not visible in its own initializer
		if err := walkExpr(ctx, stmt.Expr); err != nil {
			return err
		}
		if stmt.Name.IsPlaceholder() {
			ctx.emit(ir.Instr{Op: ir.OpPop}, stmt.Span)
			return nil
		}
		name := scopeKey(ctx.Builder.NameText(stmt.Name))
		ctx.emit(ir.Instr{Op: ir.OpStore, Str: name}, stmt.Span)
		ctx.bind(name)
		return nil
	default:
		return internalFault(stmt.Span, "unknown statement kind %v", stmt.Kind)
	}
}
