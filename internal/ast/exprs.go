package ast

import (
	"fmt"

	"ranoc/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena     *Arena[Expr]
	Literals  *Arena[ExprLiteralData]
	Tuples    *Arena[ExprTupleData]
	Paths     *Arena[ExprPathData]
	Operators *Arena[ExprOperatorData]
	Names     *Arena[Name]
}

// NewExprs creates expression arenas with capHint preallocated slots each.
// If capHint is 0, a default capacity of 1<<8 is used.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Literals:  NewArena[ExprLiteralData](capHint),
		Tuples:    NewArena[ExprTupleData](capHint >> 2),
		Paths:     NewArena[ExprPathData](capHint >> 2),
		Operators: NewArena[ExprOperatorData](capHint),
		Names:     NewArena[Name](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind LitKind, raw source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Raw: raw})
	return e.new(ExprLiteral, span, PayloadID(payload))
}

// Literal returns the literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLiteral {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewTuple(span source.Span, elements []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elements: elements})
	return e.new(ExprTuple, span, PayloadID(payload))
}

func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}

// NewPath creates a dotted path; its span covers all segments.
func (e *Exprs) NewPath(segments []Name) ExprID {
	payload := e.Paths.Allocate(ExprPathData{Segments: segments})
	return e.new(ExprPath, source.JoinAll(segments), PayloadID(payload))
}

func (e *Exprs) Path(id ExprID) (*ExprPathData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprPath {
		return nil, false
	}
	return e.Paths.Get(uint32(expr.Payload)), true
}

// NewBinary creates an operator application with two operands.
func (e *Exprs) NewBinary(span source.Span, op Op, left, right ExprID) ExprID {
	if op.IsUnary() {
		panic(fmt.Sprintf("ast: %s is not a binary operator", op))
	}
	payload := e.Operators.Allocate(ExprOperatorData{Op: op, Left: left, Right: right})
	return e.new(ExprOperator, span, PayloadID(payload))
}

// NewUnary creates a prefix operator application.
func (e *Exprs) NewUnary(span source.Span, op Op, operand ExprID) ExprID {
	if !op.IsUnary() {
		panic(fmt.Sprintf("ast: %s is not a unary operator", op))
	}
	payload := e.Operators.Allocate(ExprOperatorData{Op: op, Right: operand})
	return e.new(ExprOperator, span, PayloadID(payload))
}

func (e *Exprs) Operator(id ExprID) (*ExprOperatorData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprOperator {
		return nil, false
	}
	return e.Operators.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewName(name Name) ExprID {
	payload := e.Names.Allocate(name)
	return e.new(ExprName, name.Loc, PayloadID(payload))
}

func (e *Exprs) Name(id ExprID) (*Name, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprName {
		return nil, false
	}
	return e.Names.Get(uint32(expr.Payload)), true
}

// NewBare allocates an expression of a kind that has no payload yet
// (match, closure, array, init, if).
func (e *Exprs) NewBare(kind ExprKind, span source.Span) ExprID {
	if kind.HasPayload() {
		panic(fmt.Sprintf("ast: %s needs a payload", kind))
	}
	return e.new(kind, span, NoPayloadID)
}
