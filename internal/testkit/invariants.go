// Package testkit holds invariant checks shared by package tests and the
// fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"ranoc/internal/ast"
	"ranoc/internal/source"
	"ranoc/internal/token"
)

// CheckTokenInvariants verifies a scan of src:
// 1) every span lies within src and Text is exactly the spanned bytes
// 2) tokens are in offset order and never overlap
// 3) no token is empty
func CheckTokenInvariants(toks []token.Token, src []byte) error {
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("token %d (%s) has empty span %d..%d", i, tok.Kind, sp.Start, sp.End)
		}
		if sp.End > size {
			return fmt.Errorf("token %d (%s) ends beyond content: %d > %d", i, tok.Kind, sp.End, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%s) at %d overlaps previous token ending at %d", i, tok.Kind, sp.Start, prevEnd)
		}
		if tok.Text != string(src[sp.Start:sp.End]) {
			return fmt.Errorf("token %d text %q does not match source %q", i, tok.Text, src[sp.Start:sp.End])
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckSpanInvariants runs the span invariants on a parsed module:
// 1) every node, statement and expression span is non-empty and within src
// 2) children are contained in their parent
// 3) the module span covers the union of its nodes
func CheckSpanInvariants(b *ast.Builder, mod ast.ModuleID, src []byte) error {
	if b == nil {
		return fmt.Errorf("nil builder")
	}
	m := b.Modules.Get(mod)
	if m == nil {
		return fmt.Errorf("module %d not found", mod)
	}
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if len(m.Nodes) == 0 {
		return nil
	}
	if err := checkSpan("module", m.Span, source.Span{End: size}); err != nil {
		return err
	}

	union := source.EmptySpan
	for _, id := range m.Nodes {
		node := b.Nodes.Get(id)
		if node == nil {
			return fmt.Errorf("nil node for id=%d", id)
		}
		if err := checkSpan("node", node.Span, m.Span); err != nil {
			return err
		}
		union = union.Join(node.Span)
		if node.Kind != ast.NodeStatement {
			continue
		}
		stmt := b.Stmts.Get(node.Stmt)
		if stmt == nil {
			return fmt.Errorf("nil statement for id=%d", node.Stmt)
		}
		if err := checkSpan("statement", stmt.Span, node.Span); err != nil {
			return err
		}
		if err := checkExpr(b, stmt.Expr, stmt.Span); err != nil {
			return err
		}
	}
	if union.Start != m.Span.Start || union.End != m.Span.End {
		return fmt.Errorf("module span %d..%d is not the union of its nodes %d..%d", m.Span.Start, m.Span.End, union.Start, union.End)
	}
	return nil
}

func checkExpr(b *ast.Builder, id ast.ExprID, parent source.Span) error {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expression for id=%d", id)
	}
	if err := checkSpan("expression "+expr.Kind.String(), expr.Span, parent); err != nil {
		return err
	}
	var children []ast.ExprID
	switch expr.Kind {
	case ast.ExprTuple:
		if data, ok := b.Exprs.Tuple(id); ok {
			children = data.Elements
		}
	case ast.ExprOperator:
		if data, ok := b.Exprs.Operator(id); ok {
			if !data.Op.IsUnary() {
				children = append(children, data.Left)
			}
			children = append(children, data.Right)
		}
	case ast.ExprPath:
		if data, ok := b.Exprs.Path(id); ok {
			for _, seg := range data.Segments {
				if err := checkSpan("path segment", seg.Loc, expr.Span); err != nil {
					return err
				}
			}
		}
	}
	for _, child := range children {
		if err := checkExpr(b, child, expr.Span); err != nil {
			return err
		}
	}
	return nil
}

func checkSpan(what string, sp, parent source.Span) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("%s span is empty: %d..%d", what, sp.Start, sp.End)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s span %d..%d is outside %d..%d", what, sp.Start, sp.End, parent.Start, parent.End)
	}
	return nil
}
