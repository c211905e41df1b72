package parser

import (
	"ranoc/internal/ast"
	"ranoc/internal/diag"
	"ranoc/internal/source"
	"ranoc/internal/token"
)

// grammar holds the rules of one parse; rules allocate into b.
type grammar struct {
	b *ast.Builder

	name    Rule[ast.Name]
	expr    Rule[ast.ExprID]
	stmt    Rule[ast.StmtID]
	node    Rule[ast.NodeID]
	literal Rule[ast.ExprID]
}

func newGrammar(b *ast.Builder) *grammar {
	g := &grammar{b: b}
	g.name = ParseName(b)
	g.literal = g.literalRule()
	g.expr = Label(Lazy(g.orRule), "expression", diag.SynExpectExpression)
	g.stmt = Alt(g.letRule(), g.exprStmtRule())
	g.node = Alt(
		Unimplemented[token.Token, ast.NodeID](Tag(token.Hash), "directive"),
		Map(g.stmt, b.NewStatementNode),
	)
	return g
}

// ParseName matches an identifier or the `_` placeholder.
func ParseName(b *ast.Builder) Rule[ast.Name] {
	return Alt(
		Map(Tag(token.Ident), func(t token.Token) ast.Name { return b.Ident(t.Text, t.Span) }),
		Map(Tag(token.Placeholder), func(t token.Token) ast.Name { return ast.Placeholder(t.Span) }),
	)
}

// let_stmt = 'let' name '=' expr ';'
func (g *grammar) letRule() Rule[ast.StmtID] {
	head := Pair(Tag(token.KwLet), Terminated(g.name, Tag(token.Assign)))
	body := Pair(g.expr, Tag(token.Semicolon))
	return Map(Pair(head, body), func(p Both[Both[token.Token, ast.Name], Both[ast.ExprID, token.Token]]) ast.StmtID {
		sp := p.First.First.Span.Join(p.Second.Second.Span)
		return g.b.Stmts.NewLet(sp, p.First.Second, p.Second.First)
	})
}

// expr_stmt = expr ';'
func (g *grammar) exprStmtRule() Rule[ast.StmtID] {
	return Map(Pair(g.expr, Tag(token.Semicolon)), func(p Both[ast.ExprID, token.Token]) ast.StmtID {
		sp := g.span(p.First).Join(p.Second.Span)
		return g.b.Stmts.NewExpr(sp, p.First)
	})
}

func (g *grammar) span(id ast.ExprID) source.Span {
	return g.b.Exprs.Get(id).Span
}

// leftAssoc folds operand (op operand)* to the left.
func (g *grammar) leftAssoc(operand Rule[ast.ExprID], ops map[token.Kind]ast.Op) Rule[ast.ExprID] {
	kinds := make([]token.Kind, 0, len(ops))
	for _, k := range token.Kinds() {
		if _, ok := ops[k]; ok {
			kinds = append(kinds, k)
		}
	}
	tail := Many0(Pair(OneOf(kinds...), operand))
	return Map(Pair(operand, tail), func(p Both[ast.ExprID, []Both[token.Token, ast.ExprID]]) ast.ExprID {
		left := p.First
		for _, step := range p.Second {
			sp := g.span(left).Join(g.span(step.Second))
			left = g.b.Exprs.NewBinary(sp, ops[step.First.Kind], left, step.Second)
		}
		return left
	})
}

func (g *grammar) orRule() Rule[ast.ExprID] {
	return g.leftAssoc(g.andRule(), map[token.Kind]ast.Op{token.OrOr: ast.OpOr})
}

func (g *grammar) andRule() Rule[ast.ExprID] {
	return g.leftAssoc(g.cmpRule(), map[token.Kind]ast.Op{token.AndAnd: ast.OpAnd})
}

func (g *grammar) cmpRule() Rule[ast.ExprID] {
	return g.leftAssoc(g.rangeRule(), compareOps)
}

// range = add (('..'|'..=') add)?; ranges do not chain.
func (g *grammar) rangeRule() Rule[ast.ExprID] {
	add := g.addRule()
	tail := Opt(Pair(OneOf(token.DotDot, token.DotDotEq), add))
	return Map(Pair(add, tail), func(p Both[ast.ExprID, *Both[token.Token, ast.ExprID]]) ast.ExprID {
		if p.Second == nil {
			return p.First
		}
		op := ast.OpRange
		if p.Second.First.Kind == token.DotDotEq {
			op = ast.OpRangeInclusive
		}
		sp := g.span(p.First).Join(g.span(p.Second.Second))
		return g.b.Exprs.NewBinary(sp, op, p.First, p.Second.Second)
	})
}

func (g *grammar) addRule() Rule[ast.ExprID] {
	return g.leftAssoc(g.mulRule(), additiveOps)
}

func (g *grammar) mulRule() Rule[ast.ExprID] {
	return g.leftAssoc(g.unaryRule(), multiplicativeOps)
}

// unary = ('-'|'!') unary | primary
func (g *grammar) unaryRule() Rule[ast.ExprID] {
	var unary Rule[ast.ExprID]
	prefix := Map(Pair(OneOf(token.Minus, token.Bang), Lazy(func() Rule[ast.ExprID] { return unary })),
		func(p Both[token.Token, ast.ExprID]) ast.ExprID {
			sp := p.First.Span.Join(g.span(p.Second))
			return g.b.Exprs.NewUnary(sp, unaryOps[p.First.Kind], p.Second)
		})
	unary = Alt(prefix, g.primaryRule())
	return unary
}

// primary = literal | unsupported forms | path | name | tuple.
// Order matters: path must be tried before name.
func (g *grammar) primaryRule() Rule[ast.ExprID] {
	return Alt(
		g.literal,
		Unimplemented[token.Token, ast.ExprID](Tag(token.KwMatch), "match"),
		Unimplemented[token.Token, ast.ExprID](Tag(token.KwIf), "if"),
		Unimplemented[token.Token, ast.ExprID](OneOf(token.Pipe, token.OrOr, token.KwFn), "closure"),
		Unimplemented[token.Token, ast.ExprID](Tag(token.LBracket), "array"),
		Unimplemented[token.Token, ast.ExprID](Terminated(Tag(token.Ident), Tag(token.LBrace)), "struct/union init"),
		g.pathRule(),
		Map(g.name, g.b.Exprs.NewName),
		g.tupleRule(),
	)
}

func (g *grammar) literalRule() Rule[ast.ExprID] {
	kinds := []token.Kind{token.CharLit, token.StringLit, token.IntLit, token.DecimalLit, token.ExponentLit, token.BoolLit}
	return Map(OneOf(kinds...), func(t token.Token) ast.ExprID {
		return g.b.Exprs.NewLiteral(t.Span, literalKinds[t.Kind], g.b.Strings.Intern(t.Text))
	})
}

// path = name ('.' name)+
func (g *grammar) pathRule() Rule[ast.ExprID] {
	rest := Pair(Preceded(Tag(token.Dot), g.name), Many0(Preceded(Tag(token.Dot), g.name)))
	return Map(Pair(g.name, rest), func(p Both[ast.Name, Both[ast.Name, []ast.Name]]) ast.ExprID {
		segs := append([]ast.Name{p.First, p.Second.First}, p.Second.Second...)
		return g.b.Exprs.NewPath(segs)
	})
}

// tuple = '(' ')' | '(' expr ',' ')' | '(' expr (',' expr)+ ','? ')' | '(' expr ')'
// The last form is grouping and yields expr itself.
func (g *grammar) tupleRule() Rule[ast.ExprID] {
	elems := Opt(Pair(SeparatedList1(Tag(token.Comma), g.expr), Opt(Tag(token.Comma))))
	inner := Pair(Tag(token.LParen), Pair(elems, Tag(token.RParen)))
	return Map(inner, func(p Both[token.Token, Both[*Both[[]ast.ExprID, *token.Token], token.Token]]) ast.ExprID {
		sp := p.First.Span.Join(p.Second.Second.Span)
		list := p.Second.First
		if list == nil {
			return g.b.Exprs.NewTuple(sp, nil)
		}
		if len(list.First) == 1 && list.Second == nil {
			return list.First[0]
		}
		return g.b.Exprs.NewTuple(sp, list.First)
	})
}

var (
	compareOps = map[token.Kind]ast.Op{
		token.EqEq: ast.OpEq, token.BangEq: ast.OpNe,
		token.Lt: ast.OpLt, token.LtEq: ast.OpLe,
		token.Gt: ast.OpGt, token.GtEq: ast.OpGe,
	}
	additiveOps       = map[token.Kind]ast.Op{token.Plus: ast.OpAdd, token.Minus: ast.OpSub}
	multiplicativeOps = map[token.Kind]ast.Op{token.Star: ast.OpMul, token.Slash: ast.OpDiv, token.Percent: ast.OpMod}
	unaryOps          = map[token.Kind]ast.Op{token.Minus: ast.OpNeg, token.Bang: ast.OpNot}

	literalKinds = map[token.Kind]ast.LitKind{
		token.CharLit:     ast.LitChar,
		token.StringLit:   ast.LitString,
		token.IntLit:      ast.LitInt,
		token.DecimalLit:  ast.LitDecimal,
		token.ExponentLit: ast.LitExponent,
		token.BoolLit:     ast.LitBool,
	}
)
