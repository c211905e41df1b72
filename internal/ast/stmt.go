package ast

import (
	"ranoc/internal/source"
)

type StmtKind uint8

const (
	// StmtExpr is `expr;`.
	StmtExpr StmtKind = iota
	// StmtLet is `let name = expr;`.
	StmtLet
)

var stmtKindNames = [...]string{
	StmtExpr: "Expr",
	StmtLet:  "Let",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) {
		return stmtKindNames[k]
	}
	return "StmtKind(?)"
}

func StmtKinds() []StmtKind {
	return []StmtKind{StmtExpr, StmtLet}
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	// Expr is the statement's expression, or the initializer of a let.
	Expr ExprID
	// Name is bound by StmtLet only.
	Name Name
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
	}
}

func (s *Stmts) NewExpr(sp source.Span, expr ExprID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtExpr, Span: sp, Expr: expr}))
}

func (s *Stmts) NewLet(sp source.Span, name Name, value ExprID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtLet, Span: sp, Expr: value, Name: name}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}
