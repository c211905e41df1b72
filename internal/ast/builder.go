package ast

import (
	"ranoc/internal/source"
)

type Hints struct{ Modules, Nodes, Stmts, Exprs uint }

// Builder owns every arena of one parse together with the string interner
// used for identifier and literal text.
type Builder struct {
	Strings *source.Interner
	Modules *Modules
	Nodes   *Nodes
	Stmts   *Stmts
	Exprs   *Exprs
}

func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Modules == 0 {
		hints.Modules = 1 << 2
	}
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		Strings: strings,
		Modules: NewModules(hints.Modules),
		Nodes:   NewNodes(hints.Nodes),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewModule(sp source.Span) ModuleID {
	return b.Modules.New(sp)
}

// PushNode appends node to the module's top-level sequence.
func (b *Builder) PushNode(module ModuleID, node NodeID) {
	m := b.Modules.Get(module)
	m.Nodes = append(m.Nodes, node)
	m.Span = m.Span.Join(b.Nodes.Get(node).Span)
}

// NewStatementNode wraps stmt into a top-level node.
func (b *Builder) NewStatementNode(stmt StmtID) NodeID {
	return b.Nodes.New(Node{Kind: NodeStatement, Span: b.Stmts.Get(stmt).Span, Stmt: stmt})
}

func (b *Builder) NewDirectiveNode(sp source.Span, name source.StringID) NodeID {
	return b.Nodes.New(Node{Kind: NodeDirective, Span: sp, Directive: name})
}

// Ident interns text and returns an identifier name.
func (b *Builder) Ident(text string, sp source.Span) Name {
	return Name{Kind: NameIdent, Text: b.Strings.Intern(text), Loc: sp}
}

// NameText returns the identifier text, or "_" for a placeholder.
func (b *Builder) NameText(n Name) string {
	if n.Kind == NamePlaceholder {
		return "_"
	}
	return b.Strings.MustLookup(n.Text)
}
