package parser

import (
	"ranoc/internal/ast"
	"ranoc/internal/source"
	"ranoc/internal/token"
)

// Parse builds a module from the complete token sequence of one source.
// Every token must be consumed; otherwise the returned *Error has kind
// ErrTrailing and its Cause says why the next node did not parse.
// Unsupported syntax aborts with ErrUnimplemented.
func Parse(toks []token.Token, b *ast.Builder) (ast.ModuleID, error) {
	g := newGrammar(b)
	in := NewInput(toks)

	_, nodes, err := AllConsuming(Many0(g.node))(in)
	if err != nil {
		if pe, ok := asError(err); ok && pe.Kind == ErrTrailing {
			pe.Cause = g.explain(in.At(pe.Pos))
		}
		return ast.NoModuleID, err
	}

	spans := make([]source.Span, len(nodes))
	for i, n := range nodes {
		spans[i] = b.Nodes.Get(n).Span
	}
	// пустой модуль остается с EmptySpan
	mod := b.NewModule(source.Join(spans...))
	for _, n := range nodes {
		b.PushNode(mod, n)
	}
	return mod, nil
}

// ParseExpr parses a single expression that must span all of toks.
func ParseExpr(toks []token.Token, b *ast.Builder) (ast.ExprID, error) {
	g := newGrammar(b)
	_, id, err := AllConsuming(g.expr)(NewInput(toks))
	return id, err
}

// explain reruns the node rule where Many0 stopped.
func (g *grammar) explain(at Input) *Error {
	_, _, err := g.node(at)
	if err == nil {
		return nil
	}
	pe, _ := asError(err)
	return pe
}
