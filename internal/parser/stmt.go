package parser

import "github.com/donaldgifford/csfmt/internal/syntax"

func (p *parser) block() *syntax.Node {
	kids := []syntax.Element{p.expect("{")}
	kids = append(kids, p.statements(nil)...)
	kids = append(kids, p.expect("}"))
	return syntax.NewNode(syntax.Block, kids...)
}

// statements parses statements until '}', EOF, or stop reports true.
// Tokens that cannot start a statement are kept as skipped tokens.
func (p *parser) statements(stop func() bool) []syntax.Element {
	var out []syntax.Element
	for !p.atEOF() && !p.at("}") && (stop == nil || !stop()) {
		start := p.pos
		s := p.statement()
		if p.pos == start {
			out = append(out, p.skipped())
			continue
		}
		out = append(out, s)
	}
	return out
}

func (p *parser) statement() *syntax.Node {
	t := p.cur()
	switch {
	case t.Is("{"):
		return p.block()
	case t.Is(";"):
		return syntax.NewNode(syntax.EmptyStatement, p.next())
	case t.Is("if"):
		return p.ifStatement()
	case t.Is("while"):
		return syntax.NewNode(syntax.WhileStatement, p.next(), p.expect("("), p.expression(), p.expect(")"), p.statement())
	case t.Is("do"):
		return syntax.NewNode(syntax.DoStatement, p.next(), p.statement(), p.expect("while"),
			p.expect("("), p.expression(), p.expect(")"), p.expect(";"))
	case t.Is("for"):
		return p.forStatement()
	case t.Is("foreach"):
		return p.foreachStatement(nil)
	case t.Is("await") && p.peek(1).Is("foreach"):
		return p.foreachStatement(p.next())
	case t.Is("await") && p.peek(1).Is("using"):
		return p.usingStatement(p.next())
	case t.Is("using"):
		return p.usingStatement(nil)
	case t.Is("switch"):
		return p.switchStatement()
	case t.Is("try"):
		return p.tryStatement()
	case t.IsAny("return", "throw"):
		kind := syntax.ReturnStatement
		if t.Is("throw") {
			kind = syntax.ThrowStatement
		}
		kids := []syntax.Element{p.next()}
		if !p.at(";") {
			kids = append(kids, p.expression())
		}
		return syntax.NewNode(kind, append(kids, p.expect(";"))...)
	case t.Is("break"):
		return syntax.NewNode(syntax.BreakStatement, p.next(), p.expect(";"))
	case t.Is("continue"):
		return syntax.NewNode(syntax.ContinueStatement, p.next(), p.expect(";"))
	case t.Is("goto"):
		return p.gotoStatement()
	case t.Is("yield") && p.peek(1).IsAny("return", "break"):
		kids := []syntax.Element{p.next(), p.next()}
		if !p.at(";") {
			kids = append(kids, p.expression())
		}
		return syntax.NewNode(syntax.YieldStatement, append(kids, p.expect(";"))...)
	case t.Is("lock"):
		return syntax.NewNode(syntax.LockStatement, p.next(), p.expect("("), p.expression(), p.expect(")"), p.statement())
	case t.Is("fixed") && p.peek(1).Is("("):
		kids := []syntax.Element{p.next(), p.next()}
		if d := p.tryVariableDeclaration(); d != nil {
			kids = append(kids, d)
		}
		return syntax.NewNode(syntax.FixedStatement, append(kids, p.expect(")"), p.statement())...)
	case t.IsAny("checked", "unchecked") && p.peek(1).Is("{"):
		return syntax.NewNode(syntax.CheckedStatement, p.next(), p.block())
	case t.Is("unsafe") && p.peek(1).Is("{"):
		return syntax.NewNode(syntax.UnsafeStatement, p.next(), p.block())
	case t.Kind == syntax.Identifier && p.peek(1).Is(":"):
		return syntax.NewNode(syntax.LabeledStatement, p.next(), p.next(), p.statement())
	}
	if d := p.tryLocalDeclaration(); d != nil {
		return d
	}
	e := p.expression()
	return syntax.NewNode(syntax.ExpressionStatement, e, p.expect(";"))
}

func (p *parser) ifStatement() *syntax.Node {
	kids := []syntax.Element{p.next(), p.expect("("), p.expression(), p.expect(")"), p.statement()}
	if p.at("else") {
		e := p.next()
		kids = append(kids, syntax.NewNode(syntax.ElseClause, e, p.statement()))
	}
	return syntax.NewNode(syntax.IfStatement, kids...)
}

func (p *parser) forStatement() *syntax.Node {
	kids := []syntax.Element{p.next(), p.expect("(")}
	if !p.at(";") {
		if d := p.tryVariableDeclaration(); d != nil {
			kids = append(kids, d)
		} else {
			kids = append(kids, p.expressionList(";")...)
		}
	}
	kids = append(kids, p.expect(";"))
	if !p.at(";") {
		kids = append(kids, p.expression())
	}
	kids = append(kids, p.expect(";"))
	if !p.at(")") {
		kids = append(kids, p.expressionList(")")...)
	}
	kids = append(kids, p.expect(")"), p.statement())
	return syntax.NewNode(syntax.ForStatement, kids...)
}

func (p *parser) expressionList(close string) []syntax.Element {
	return p.separated(close, false, func() syntax.Element { return p.expression() })
}

func (p *parser) foreachStatement(await *syntax.Token) *syntax.Node {
	var kids []syntax.Element
	if await != nil {
		kids = append(kids, await)
	}
	kids = append(kids, p.next(), p.expect("("))
	start := p.pos
	if t := p.tryType(true); t != nil && p.atIdent() && p.peek(1).Is("in") {
		kids = append(kids, t, p.next())
	} else {
		p.pos = start
		kids = append(kids, p.expression())
	}
	kids = append(kids, p.expect("in"), p.expression(), p.expect(")"), p.statement())
	return syntax.NewNode(syntax.ForEachStatement, kids...)
}

func (p *parser) usingStatement(await *syntax.Token) *syntax.Node {
	var kids []syntax.Element
	if await != nil {
		kids = append(kids, await)
	}
	kw := p.next()
	kids = append(kids, kw)
	if !p.at("(") {
		// using declaration: using var x = ...;
		kids = append(kids, p.variableDeclaration(p.typ()), p.expect(";"))
		return syntax.NewNode(syntax.LocalDeclarationStatement, kids...)
	}
	kids = append(kids, p.next())
	if d := p.tryVariableDeclaration(); d != nil {
		kids = append(kids, d)
	} else {
		kids = append(kids, p.expression())
	}
	kids = append(kids, p.expect(")"), p.statement())
	return syntax.NewNode(syntax.UsingStatement, kids...)
}

func (p *parser) gotoStatement() *syntax.Node {
	kids := []syntax.Element{p.next()}
	switch {
	case p.at("case"):
		kids = append(kids, p.next(), p.expression())
	case p.at("default"):
		kids = append(kids, p.next())
	default:
		kids = append(kids, p.expectIdent())
	}
	return syntax.NewNode(syntax.GotoStatement, append(kids, p.expect(";"))...)
}

func (p *parser) switchStatement() *syntax.Node {
	kids := []syntax.Element{p.next()}
	governing := p.expression()
	if governing.Kind == syntax.ParenthesizedExpression {
		kids = append(kids, governing.Children...)
	} else {
		kids = append(kids, governing)
	}
	kids = append(kids, p.expect("{"))
	for !p.at("}") && !p.atEOF() {
		if !p.atSwitchLabel() {
			kids = append(kids, p.skipped())
			continue
		}
		kids = append(kids, p.switchSection())
	}
	kids = append(kids, p.expect("}"))
	return syntax.NewNode(syntax.SwitchStatement, kids...)
}

func (p *parser) atSwitchLabel() bool {
	return p.at("case") || p.at("default") && p.peek(1).Is(":")
}

func (p *parser) switchSection() *syntax.Node {
	var kids []syntax.Element
	for p.atSwitchLabel() {
		kids = append(kids, p.switchLabel())
	}
	kids = append(kids, p.statements(p.atSwitchLabel)...)
	return syntax.NewNode(syntax.SwitchSection, kids...)
}

func (p *parser) switchLabel() *syntax.Node {
	if p.at("default") {
		return syntax.NewNode(syntax.DefaultSwitchLabel, p.next(), p.next())
	}
	kw := p.next()
	pat := p.pattern()
	var when *syntax.Node
	if p.at("when") {
		w := p.next()
		when = syntax.NewNode(syntax.WhenClause, w, p.expression())
	}
	colon := p.expect(":")
	if when == nil && (pat.Kind == syntax.ConstantPattern || pat.Kind == syntax.TypePattern) {
		return syntax.NewNode(syntax.CaseSwitchLabel, kw, pat.Children[0], colon)
	}
	return syntax.NewNode(syntax.CasePatternSwitchLabel, kw, pat, when, colon)
}

func (p *parser) tryStatement() *syntax.Node {
	kids := []syntax.Element{p.next(), p.block()}
	for p.at("catch") {
		c := []syntax.Element{p.next()}
		if p.at("(") {
			d := []syntax.Element{p.next(), p.typ()}
			if p.atIdent() {
				d = append(d, p.next())
			}
			d = append(d, p.expect(")"))
			c = append(c, syntax.NewNode(syntax.CatchDeclaration, d...))
		}
		if p.at("when") {
			c = append(c, syntax.NewNode(syntax.CatchFilterClause, p.next(), p.expect("("), p.expression(), p.expect(")")))
		}
		c = append(c, p.block())
		kids = append(kids, syntax.NewNode(syntax.CatchClause, c...))
	}
	if p.at("finally") {
		kids = append(kids, syntax.NewNode(syntax.FinallyClause, p.next(), p.block()))
	}
	return syntax.NewNode(syntax.TryStatement, kids...)
}

var localModifiers = map[string]bool{
	"const": true, "static": true, "readonly": true, "scoped": true, "ref": true,
	"unsafe": true, "async": true, "extern": true, "volatile": true,
}

// tryLocalDeclaration parses a local variable declaration or local
// function, or returns nil without consuming anything.
func (p *parser) tryLocalDeclaration() *syntax.Node {
	start := p.pos
	var kids []syntax.Element
	for localModifiers[p.cur().Text] && (p.cur().Kind == syntax.Keyword || p.cur().Kind == syntax.Identifier) &&
		(p.peek(1).Kind == syntax.Identifier || p.peek(1).Kind == syntax.Keyword || p.peek(1).Is("(")) {
		kids = append(kids, p.next())
	}
	t := p.tryType(true)
	if t == nil || !p.atIdent() {
		p.pos = start
		return nil
	}
	if t.Kind == syntax.IdentifierName && t.FirstToken().IsAny("await", "yield", "nameof") {
		p.pos = start
		return nil
	}
	switch n := p.peek(1); {
	case n.IsAny("(", "<"):
		name := p.next()
		kids = append(kids, t, name)
		if p.at("<") {
			kids = append(kids, p.typeParameterList())
		}
		kids = append(kids, p.parameterList())
		kids = append(kids, p.constraintClauses()...)
		kids = append(kids, p.body()...)
		return syntax.NewNode(syntax.LocalFunctionStatement, kids...)
	case n.IsAny("=", ";", ",", "["):
		kids = append(kids, p.variableDeclaration(t), p.expect(";"))
		return syntax.NewNode(syntax.LocalDeclarationStatement, kids...)
	}
	p.pos = start
	return nil
}

// tryVariableDeclaration parses "T x = e, y" as found in for, using and
// fixed headers, or returns nil without consuming anything.
func (p *parser) tryVariableDeclaration() *syntax.Node {
	start := p.pos
	t := p.tryType(true)
	if t == nil || !p.atIdent() || !p.peek(1).IsAny("=", ",", ";", ")") {
		p.pos = start
		return nil
	}
	return p.variableDeclaration(t)
}

func (p *parser) variableDeclaration(t *syntax.Node) *syntax.Node {
	kids := []syntax.Element{t, p.declarator()}
	for p.at(",") {
		kids = append(kids, p.next(), p.declarator())
	}
	return syntax.NewNode(syntax.VariableDeclaration, kids...)
}
