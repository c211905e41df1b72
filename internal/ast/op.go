package ast

// Op enumerates unary and binary operators.
type Op uint8

const (
	// Унарные

	OpNeg Op = iota // -x
	OpNot           // !x

	// Арифметические

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	// Сравнения

	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe

	// Логические

	OpAnd
	OpOr

	// Диапазоны

	OpRange          // a..b
	OpRangeInclusive // a..=b

	opCount
)

var opSymbols = [...]string{
	OpNeg:            "-",
	OpNot:            "!",
	OpAdd:            "+",
	OpSub:            "-",
	OpMul:            "*",
	OpDiv:            "/",
	OpMod:            "%",
	OpEq:             "==",
	OpNe:             "!=",
	OpLt:             "<",
	OpLe:             "<=",
	OpGt:             ">",
	OpGe:             ">=",
	OpAnd:            "&&",
	OpOr:             "||",
	OpRange:          "..",
	OpRangeInclusive: "..=",
}

var opNames = [...]string{
	OpNeg:            "neg",
	OpNot:            "not",
	OpAdd:            "add",
	OpSub:            "sub",
	OpMul:            "mul",
	OpDiv:            "div",
	OpMod:            "mod",
	OpEq:             "eq",
	OpNe:             "ne",
	OpLt:             "lt",
	OpLe:             "le",
	OpGt:             "gt",
	OpGe:             "ge",
	OpAnd:            "and",
	OpOr:             "or",
	OpRange:          "range",
	OpRangeInclusive: "range_incl",
}

// Symbol returns the operator as written in source.
func (op Op) Symbol() string {
	if op < opCount {
		return opSymbols[op]
	}
	return "?"
}

// String returns a mnemonic name, used by IR dumps.
func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return "Op(?)"
}

func (op Op) IsUnary() bool { return op == OpNeg || op == OpNot }

func Ops() []Op {
	out := make([]Op, 0, opCount)
	for op := range opCount {
		out = append(out, op)
	}
	return out
}
