package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ranoc/internal/ast"
	"ranoc/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     SpanJSON        `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`

	span source.Span
}

// BuildASTOutput converts module mod of builder into a plain tree.
func BuildASTOutput(builder *ast.Builder, mod ast.ModuleID) (ASTNodeOutput, error) {
	m := builder.Modules.Get(mod)
	if m == nil {
		return ASTNodeOutput{}, fmt.Errorf("module %d not found", mod)
	}
	out := newOutput("Module", "", m.Span, "")
	for _, id := range m.Nodes {
		out.Children = append(out.Children, nodeOutput(builder, id))
	}
	return out, nil
}

func newOutput(typ, kind string, sp source.Span, text string) ASTNodeOutput {
	return ASTNodeOutput{Type: typ, Kind: kind, Span: spanJSON(sp), Text: text, span: sp}
}

func nodeOutput(b *ast.Builder, id ast.NodeID) ASTNodeOutput {
	node := b.Nodes.Get(id)
	if node == nil {
		return newOutput("Node", "<nil>", source.EmptySpan, "")
	}
	switch node.Kind {
	case ast.NodeDirective:
		name, _ := b.Strings.Lookup(node.Directive)
		return newOutput("Directive", "", node.Span, name)
	default:
		return stmtOutput(b, node.Stmt)
	}
}

func stmtOutput(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return newOutput("Stmt", "<nil>", source.EmptySpan, "")
	}
	out := newOutput("Stmt", stmt.Kind.String(), stmt.Span, "")
	if stmt.Kind == ast.StmtLet {
		out.Text = b.NameText(stmt.Name)
	}
	out.Children = []ASTNodeOutput{exprOutput(b, stmt.Expr)}
	return out
}

func exprOutput(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return newOutput("Expr", "<nil>", source.EmptySpan, "")
	}
	out := newOutput("Expr", expr.Kind.String(), expr.Span, "")
	switch expr.Kind {
	case ast.ExprLiteral:
		if lit, ok := b.Exprs.Literal(id); ok {
			out.Kind = "Literal " + lit.Kind.String()
			out.Text = b.Strings.MustLookup(lit.Raw)
		}
	case ast.ExprName:
		if name, ok := b.Exprs.Name(id); ok {
			out.Text = b.NameText(*name)
		}
	case ast.ExprPath:
		if path, ok := b.Exprs.Path(id); ok {
			segs := make([]string, len(path.Segments))
			for i, s := range path.Segments {
				segs[i] = b.NameText(s)
			}
			out.Text = strings.Join(segs, ".")
		}
	case ast.ExprTuple:
		if tup, ok := b.Exprs.Tuple(id); ok {
			for _, el := range tup.Elements {
				out.Children = append(out.Children, exprOutput(b, el))
			}
		}
	case ast.ExprOperator:
		if op, ok := b.Exprs.Operator(id); ok {
			out.Text = op.Op.Symbol()
			if op.Left.IsValid() {
				out.Children = append(out.Children, exprOutput(b, op.Left))
			}
			out.Children = append(out.Children, exprOutput(b, op.Right))
		}
	}
	return out
}

// FormatASTPretty печатает дерево модуля с рамками ├─ └─.
func FormatASTPretty(w io.Writer, builder *ast.Builder, mod ast.ModuleID, fs *source.FileSet, file source.FileID) error {
	root, err := BuildASTOutput(builder, mod)
	if err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(astLabel(root, fs, file))
	sb.WriteByte('\n')
	writeChildren(&sb, root.Children, "", fs, file)
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, children []ASTNodeOutput, prefix string, fs *source.FileSet, file source.FileID) {
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix + branch + astLabel(child, fs, file) + "\n")
		writeChildren(sb, child.Children, prefix+next, fs, file)
	}
}

func astLabel(n ASTNodeOutput, fs *source.FileSet, file source.FileID) string {
	label := n.Type
	if n.Kind != "" {
		label += " " + n.Kind
	}
	if n.Text != "" {
		label += fmt.Sprintf(" %q", n.Text)
	}
	return label + " (" + formatSpan(n.span, fs, file) + ")"
}

// formatSpan is "line:col-line:col" when fs is known, else the byte range.
func formatSpan(span source.Span, fs *source.FileSet, file source.FileID) string {
	if span.IsEmpty() {
		return "empty"
	}
	if fs != nil && fs.Get(file) != nil {
		start, end := fs.Resolve(file, span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatASTJSON выводит дерево модуля в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, mod ast.ModuleID) error {
	root, err := BuildASTOutput(builder, mod)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}
