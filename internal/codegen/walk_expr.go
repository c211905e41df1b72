package codegen

import (
	"math"

	"ranoc/internal/ast"
	"ranoc/internal/ir"
	"ranoc/internal/source"
)

// walkExpr dispatches on the expression kind. Each kind has exactly one
// branch here.
func walkExpr(ctx *Context, id ast.ExprID) error {
	expr := ctx.Builder.Exprs.Get(id)
	if expr == nil {
		return internalFault(source.EmptySpan, "expression %d does not exist", id)
	}
	switch expr.Kind {
	case ast.ExprMatch:
		return unimplemented(expr.Span, "match")
	case ast.ExprClosure:
		return unimplemented(expr.Span, "closure")
	case ast.ExprLiteral:
		return walkLiteral(ctx, id, expr.Span)
	case ast.ExprPath:
		return unimplemented(expr.Span, "path")
	case ast.ExprArray:
		return unimplemented(expr.Span, "array")
	case ast.ExprTuple:
		return walkTuple(ctx, id, expr.Span)
	case ast.ExprInit:
		return unimplemented(expr.Span, "struct/union init")
	case ast.ExprOperator:
		return walkOperator(ctx, id, expr.Span)
	case ast.ExprName:
		return walkName(ctx, id, expr.Span)
	case ast.ExprIf:
		return unimplemented(expr.Span, "if")
	default:
		return internalFault(expr.Span, "unknown expression kind %v", expr.Kind)
	}
}

// walkTuple stops at the first element that fails.
func walkTuple(ctx *Context, id ast.ExprID, sp source.Span) error {
	tup, ok := ctx.Builder.Exprs.Tuple(id)
	if !ok {
		return internalFault(sp, "tuple payload missing")
	}
	for _, elem := range tup.Elements {
		if err := walkExpr(ctx, elem); err != nil {
			return err
		}
	}
	n := uint32(len(tup.Elements)) // #nosec G115 -- bounded by token count
	ctx.emit(ir.Instr{Op: ir.OpTuple, N: n}, sp)
	return nil
}

// walkOperator evaluates operands left to right.
func walkOperator(ctx *Context, id ast.ExprID, sp source.Span) error {
	op, ok := ctx.Builder.Exprs.Operator(id)
	if !ok {
		return internalFault(sp, "operator payload missing")
	}
	if op.Op == ast.OpNeg && minIntOperand(ctx, op.Right) {
		// -(1<<63) не влезает как push + neg
		ctx.emit(ir.Instr{Op: ir.OpPushInt, Int: math.MinInt64}, sp)
		return nil
	}
	if op.Op.IsUnary() {
		if err := walkExpr(ctx, op.Right); err != nil {
			return err
		}
		ctx.emit(ir.Instr{Op: ir.OpUnary, Str: op.Op.String()}, sp)
		return nil
	}
	if err := walkExpr(ctx, op.Left); err != nil {
		return err
	}
	if err := walkExpr(ctx, op.Right); err != nil {
		return err
	}
	ctx.emit(ir.Instr{Op: ir.OpBinary, Str: op.Op.String()}, sp)
	return nil
}
