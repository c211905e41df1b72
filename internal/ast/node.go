package ast

import (
	"ranoc/internal/source"
)

type NodeKind uint8

const (
	NodeDirective NodeKind = iota
	NodeStatement
)

var nodeKindNames = [...]string{
	NodeDirective: "Directive",
	NodeStatement: "Statement",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(?)"
}

// NodeKinds lists every top-level node kind.
func NodeKinds() []NodeKind {
	return []NodeKind{NodeDirective, NodeStatement}
}

// Node is a top-level unit of a module.
type Node struct {
	Kind NodeKind
	Span source.Span
	// Stmt is set for NodeStatement.
	Stmt StmtID
	// Directive is the directive name for NodeDirective; its body is not modelled yet.
	Directive source.StringID
}

type Nodes struct {
	Arena *Arena[Node]
}

func NewNodes(capHint uint) *Nodes {
	return &Nodes{
		Arena: NewArena[Node](capHint),
	}
}

func (n *Nodes) New(node Node) NodeID {
	return NodeID(n.Arena.Allocate(node))
}

func (n *Nodes) Get(id NodeID) *Node {
	return n.Arena.Get(uint32(id))
}
