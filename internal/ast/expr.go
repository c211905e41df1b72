package ast

import (
	"ranoc/internal/source"
)

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	ExprMatch ExprKind = iota
	ExprClosure
	// ExprLiteral is a char, string, number or boolean literal.
	ExprLiteral
	// ExprPath is a dotted name `a.b.c`.
	ExprPath
	ExprArray
	// ExprTuple is `()`, `(a,)` or `(a, b, ...)`.
	ExprTuple
	// ExprInit is a struct or union initializer.
	ExprInit
	// ExprOperator is a unary or binary operator application.
	ExprOperator
	// ExprName is a bare identifier or `_`.
	ExprName
	ExprIf

	exprKindCount
)

var exprKindNames = [...]string{
	ExprMatch:    "Match",
	ExprClosure:  "Closure",
	ExprLiteral:  "Literal",
	ExprPath:     "Path",
	ExprArray:    "Array",
	ExprTuple:    "Tuple",
	ExprInit:     "Init",
	ExprOperator: "Operator",
	ExprName:     "Name",
	ExprIf:       "If",
}

func (k ExprKind) String() string {
	if k < exprKindCount {
		return exprKindNames[k]
	}
	return "ExprKind(?)"
}

// ExprKinds lists every expression kind in declaration order.
func ExprKinds() []ExprKind {
	out := make([]ExprKind, 0, exprKindCount)
	for k := range exprKindCount {
		out = append(out, k)
	}
	return out
}

// HasPayload reports whether expressions of kind k carry payload data.
// Kinds without a payload have no syntax yet.
func (k ExprKind) HasPayload() bool {
	switch k {
	case ExprLiteral, ExprPath, ExprTuple, ExprOperator, ExprName:
		return true
	default:
		return false
	}
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// LitKind mirrors the six literal token kinds.
type LitKind uint8

const (
	LitChar LitKind = iota
	LitString
	LitInt
	LitDecimal
	LitExponent
	LitBool
)

var litKindNames = [...]string{
	LitChar:     "char",
	LitString:   "string",
	LitInt:      "int",
	LitDecimal:  "decimal",
	LitExponent: "exponent",
	LitBool:     "bool",
}

func (k LitKind) String() string {
	if int(k) < len(litKindNames) {
		return litKindNames[k]
	}
	return "LitKind(?)"
}

func LitKinds() []LitKind {
	return []LitKind{LitChar, LitString, LitInt, LitDecimal, LitExponent, LitBool}
}

// ExprLiteralData keeps the literal's raw source text; decoding happens in codegen.
type ExprLiteralData struct {
	Kind LitKind
	Raw  source.StringID
}

type ExprTupleData struct {
	Elements []ExprID
}

type ExprPathData struct {
	Segments []Name
}

// ExprOperatorData: binary operators use Left and Right, unary operators
// only Right.
type ExprOperatorData struct {
	Op    Op
	Left  ExprID
	Right ExprID
}
