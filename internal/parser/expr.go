package parser

import (
	"strings"

	"github.com/donaldgifford/csfmt/internal/syntax"
)

// binaryPrec maps binary operators to precedence, loosest first.
var binaryPrec = map[string]int{
	"??": 1,
	"||": 2,
	"&&": 3,
	"|":  4,
	"^":  5,
	"&":  6,
	"==": 7, "!=": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "is": 8, "as": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
}

// shiftPrec is the operand level of relational patterns.
const shiftPrec = 9

var assignmentOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, "??=": true,
}

// primaryKeywords are keywords that can begin a primary expression.
var primaryKeywords = map[string]bool{
	"this": true, "base": true, "new": true, "typeof": true, "sizeof": true,
	"default": true, "null": true, "true": true, "false": true, "checked": true,
	"unchecked": true, "delegate": true, "stackalloc": true,
}

func (p *parser) expression() *syntax.Node { return p.assignment() }

func (p *parser) assignment() *syntax.Node {
	if l := p.tryLambda(); l != nil {
		return l
	}
	left := p.conditional()
	n := p.assignmentOp()
	if n == 0 {
		return left
	}
	op := p.join(n)
	var right *syntax.Node
	switch {
	case p.at("ref"):
		r := p.next()
		right = syntax.NewNode(syntax.RefExpression, r, p.assignment())
	case p.at("{"):
		right = p.initializer()
	default:
		right = p.assignment()
	}
	return syntax.NewNode(syntax.AssignmentExpression, left, op, right)
}

// assignmentOp returns the number of tokens forming an assignment operator
// at pos, or zero.
func (p *parser) assignmentOp() int {
	if p.at(">") {
		text, n := p.greater()
		if len(text) >= 3 && strings.HasSuffix(text, "=") {
			return n
		}
		return 0
	}
	if t := p.cur(); t.Kind == syntax.Punctuation && assignmentOps[t.Text] {
		return 1
	}
	return 0
}

func (p *parser) conditional() *syntax.Node {
	cond := p.binary(1)
	if !p.at("?") {
		return cond
	}
	q := p.next()
	whenTrue := p.expression()
	colon := p.expect(":")
	whenFalse := p.expression()
	return syntax.NewNode(syntax.ConditionalExpression, cond, q, whenTrue, colon, whenFalse)
}

// binaryOp returns the operator at pos, how many tokens it spans, and its
// precedence. A zero count means no binary operator.
func (p *parser) binaryOp() (string, int, int) {
	if p.at(">") {
		text, n := p.greater()
		if prec, ok := binaryPrec[text]; ok {
			return text, n, prec
		}
		return ">", 1, binaryPrec[">"]
	}
	t := p.cur()
	if t.Missing || (t.Kind != syntax.Punctuation && !t.IsAny("is", "as")) {
		return "", 0, 0
	}
	if prec, ok := binaryPrec[t.Text]; ok {
		return t.Text, 1, prec
	}
	return "", 0, 0
}

func (p *parser) binary(minPrec int) *syntax.Node {
	left := p.switchLevel()
	for {
		text, n, prec := p.binaryOp()
		if n == 0 || prec < minPrec {
			return left
		}
		// ">>=" and friends are assignments, handled by the caller.
		if text == ">" && p.assignmentOp() > 0 {
			return left
		}
		switch text {
		case "is":
			is := p.next()
			left = syntax.NewNode(syntax.IsPatternExpression, left, is, p.pattern())
			continue
		case "as":
			as := p.next()
			left = syntax.NewNode(syntax.BinaryExpression, left, as, p.typ())
			continue
		}
		op := p.join(n)
		next := prec + 1
		if text == "??" {
			next = prec
		}
		left = syntax.NewNode(syntax.BinaryExpression, left, op, p.binary(next))
	}
}

func (p *parser) switchLevel() *syntax.Node {
	e := p.rangeLevel()
	for {
		switch {
		case p.at("switch") && p.peek(1).Is("{"):
			e = p.switchExpression(e)
		case p.at("with") && p.peek(1).Is("{"):
			w := p.next()
			e = syntax.NewNode(syntax.BinaryExpression, e, w, p.initializer())
		default:
			return e
		}
	}
}

func (p *parser) rangeLevel() *syntax.Node {
	if p.at("..") {
		dots := p.next()
		if p.startsOperand(p.cur()) {
			return syntax.NewNode(syntax.RangeExpression, dots, p.unary())
		}
		return syntax.NewNode(syntax.RangeExpression, dots)
	}
	e := p.unary()
	if p.at("..") {
		dots := p.next()
		if p.startsOperand(p.cur()) {
			return syntax.NewNode(syntax.RangeExpression, e, dots, p.unary())
		}
		return syntax.NewNode(syntax.RangeExpression, e, dots)
	}
	return e
}

// startsOperand reports whether t can begin a unary expression.
func (p *parser) startsOperand(t *syntax.Token) bool {
	switch t.Kind {
	case syntax.Identifier, syntax.NumericLiteral, syntax.StringLiteral, syntax.CharLiteral:
		return !t.Missing
	case syntax.Keyword:
		return primaryKeywords[t.Text] || predefinedTypes[t.Text]
	}
	return t.IsAny("(", "!", "~", "-", "+", "++", "--", "^", "&", "*", "[")
}

func (p *parser) unary() *syntax.Node {
	t := p.cur()
	switch {
	case t.IsAny("+", "-", "!", "~", "++", "--", "&", "*", "^"):
		op := p.next()
		return syntax.NewNode(syntax.PrefixUnaryExpression, op, p.unary())
	case t.Is("await") && p.awaitFollows():
		kw := p.next()
		return syntax.NewNode(syntax.AwaitExpression, kw, p.unary())
	case t.Is("throw"):
		kw := p.next()
		return syntax.NewNode(syntax.ThrowExpression, kw, p.expression())
	case t.Is("ref"):
		kw := p.next()
		return syntax.NewNode(syntax.RefExpression, kw, p.unary())
	case t.Is("("):
		if c := p.tryCast(); c != nil {
			return c
		}
	}
	return p.postfix(p.primary())
}

func (p *parser) awaitFollows() bool {
	n := p.peek(1)
	switch n.Kind {
	case syntax.Identifier, syntax.NumericLiteral, syntax.StringLiteral, syntax.CharLiteral:
		return !n.IsAny("is", "as", "when", "and", "or")
	case syntax.Keyword:
		return primaryKeywords[n.Text] || predefinedTypes[n.Text]
	}
	return n.IsAny("(", "!", "~", "++", "--")
}

// tryCast parses (T)operand, or returns nil without consuming anything.
func (p *parser) tryCast() *syntax.Node {
	start := p.pos
	open := p.next()
	t := p.tryType(false)
	if t == nil || !p.at(")") {
		p.pos = start
		return nil
	}
	closeTok := p.next()
	if !p.castFollows(t, p.cur()) {
		p.pos = start
		return nil
	}
	return syntax.NewNode(syntax.CastExpression, open, t, closeTok, p.unary())
}

// castFollows decides whether (T) followed by n is a cast. Predefined and
// decorated types cast any operand; plain names only cast operands that
// cannot continue a binary expression.
func (p *parser) castFollows(t *syntax.Node, n *syntax.Token) bool {
	if n.Missing {
		return false
	}
	switch t.Kind {
	case syntax.PredefinedType, syntax.ArrayType, syntax.NullableType, syntax.PointerType:
		return p.startsOperand(n)
	}
	switch n.Kind {
	case syntax.Identifier:
		return !n.IsAny("when", "and", "or", "with")
	case syntax.NumericLiteral, syntax.StringLiteral, syntax.CharLiteral:
		return true
	case syntax.Keyword:
		return primaryKeywords[n.Text] || predefinedTypes[n.Text]
	}
	return n.IsAny("(", "!", "~")
}

func (p *parser) primary() *syntax.Node {
	t := p.cur()
	switch {
	case t.Kind == syntax.NumericLiteral || t.Kind == syntax.StringLiteral || t.Kind == syntax.CharLiteral:
		return syntax.NewNode(syntax.LiteralExpression, p.next())
	case t.IsAny("true", "false", "null"):
		return syntax.NewNode(syntax.LiteralExpression, p.next())
	case t.Is("default"):
		kw := p.next()
		if p.at("(") {
			return syntax.NewNode(syntax.DefaultExpression, kw, p.next(), p.typ(), p.expect(")"))
		}
		return syntax.NewNode(syntax.LiteralExpression, kw)
	case t.Is("this"):
		return syntax.NewNode(syntax.ThisExpression, p.next())
	case t.Is("base"):
		return syntax.NewNode(syntax.BaseExpression, p.next())
	case t.Is("new"):
		return p.creation()
	case t.Is("typeof"):
		return syntax.NewNode(syntax.TypeOfExpression, p.next(), p.expect("("), p.typ(), p.expect(")"))
	case t.Is("sizeof"):
		return syntax.NewNode(syntax.SizeOfExpression, p.next(), p.expect("("), p.typ(), p.expect(")"))
	case t.IsAny("checked", "unchecked") && p.peek(1).Is("("):
		return syntax.NewNode(syntax.CheckedExpression, p.next(), p.next(), p.expression(), p.expect(")"))
	case t.Is("delegate"):
		return p.anonymousMethod(nil)
	case t.Is("stackalloc"):
		return p.stackAlloc()
	case t.Is("("):
		return p.parenthesized()
	case t.Is("["):
		return p.collection()
	case t.Kind == syntax.Keyword && predefinedTypes[t.Text]:
		return syntax.NewNode(syntax.PredefinedType, p.next())
	case t.Kind == syntax.Identifier:
		if p.peek(1).Is("::") {
			alias := syntax.NewNode(syntax.IdentifierName, p.next())
			return syntax.NewNode(syntax.AliasQualifiedName, alias, p.next(), p.simpleName(true))
		}
		return p.simpleName(true)
	}
	return syntax.NewNode(syntax.IdentifierName, &syntax.Token{Kind: syntax.Identifier, Missing: true})
}

func (p *parser) postfix(e *syntax.Node) *syntax.Node {
	for {
		switch {
		case p.atAny(".", "?.", "->"):
			op := p.next()
			e = syntax.NewNode(syntax.MemberAccessExpression, e, op, p.simpleName(true))
		case p.at("?") && p.peek(1).Is("[") && p.adjacent(0):
			q := p.next()
			e = syntax.NewNode(syntax.ElementAccessExpression, e, q, p.bracketedArgumentList())
		case p.at("("):
			e = syntax.NewNode(syntax.InvocationExpression, e, p.argumentList())
		case p.at("["):
			e = syntax.NewNode(syntax.ElementAccessExpression, e, p.bracketedArgumentList())
		case p.atAny("++", "--", "!"):
			e = syntax.NewNode(syntax.PostfixUnaryExpression, e, p.next())
		default:
			return e
		}
	}
}

// parenthesized parses a parenthesized expression or a tuple literal.
func (p *parser) parenthesized() *syntax.Node {
	open := p.next()
	first := p.argument()
	if !p.at(",") && len(first.Children) == 1 {
		if inner, ok := first.Children[0].(*syntax.Node); ok && inner.Kind != syntax.DeclarationExpression {
			return syntax.NewNode(syntax.ParenthesizedExpression, open, inner, p.expect(")"))
		}
	}
	kids := []syntax.Element{open, first}
	for p.at(",") {
		kids = append(kids, p.next(), p.argument())
	}
	kids = append(kids, p.expect(")"))
	return syntax.NewNode(syntax.TupleExpression, kids...)
}

// collection parses a bracketed collection literal.
func (p *parser) collection() *syntax.Node {
	kids := []syntax.Element{p.next()}
	kids = append(kids, p.separated("]", true, func() syntax.Element {
		if p.at("..") {
			dots := p.next()
			return syntax.NewNode(syntax.RangeExpression, dots, p.expression())
		}
		return p.expression()
	})...)
	kids = append(kids, p.expect("]"))
	return syntax.NewNode(syntax.InitializerExpression, kids...)
}

func (p *parser) argumentList() *syntax.Node {
	kids := []syntax.Element{p.expect("(")}
	kids = append(kids, p.separated(")", false, func() syntax.Element { return p.argument() })...)
	kids = append(kids, p.expect(")"))
	return syntax.NewNode(syntax.ArgumentList, kids...)
}

func (p *parser) bracketedArgumentList() *syntax.Node {
	kids := []syntax.Element{p.expect("[")}
	kids = append(kids, p.separated("]", false, func() syntax.Element { return p.argument() })...)
	kids = append(kids, p.expect("]"))
	return syntax.NewNode(syntax.BracketedArgumentList, kids...)
}

func (p *parser) argument() *syntax.Node {
	var kids []syntax.Element
	if p.atIdent() && p.peek(1).Is(":") {
		kids = append(kids, syntax.NewNode(syntax.NameColon, p.next(), p.next()))
	}
	modifier := p.atAny("ref", "out", "in")
	if modifier {
		kids = append(kids, p.next())
	}
	if d := p.tryDeclarationExpression(modifier); d != nil {
		return syntax.NewNode(syntax.Argument, append(kids, d)...)
	}
	return syntax.NewNode(syntax.Argument, append(kids, p.expression())...)
}

// tryDeclarationExpression parses an inline declaration such as the
// "var x" in out var x or (var a, var b) = t. Without an out or ref
// modifier a generic type is not accepted, so F(a < b, c > d) stays two
// comparisons.
func (p *parser) tryDeclarationExpression(modifier bool) *syntax.Node {
	start := p.pos
	t := p.tryType(true)
	if t == nil || !p.atIdent() || !p.peek(1).IsAny(",", ")", "]") ||
		!modifier && t.Kind == syntax.GenericName {
		p.pos = start
		return nil
	}
	if t.Kind == syntax.IdentifierName && t.FirstToken().IsAny("await", "from", "nameof") {
		p.pos = start
		return nil
	}
	return syntax.NewNode(syntax.DeclarationExpression, t, p.next())
}

func (p *parser) creation() *syntax.Node {
	kw := p.next()
	switch {
	case p.at("("):
		kids := []syntax.Element{kw, p.argumentList()}
		if p.at("{") {
			kids = append(kids, p.initializer())
		}
		return syntax.NewNode(syntax.ImplicitObjectCreationExpression, kids...)
	case p.at("["):
		kids := []syntax.Element{kw, p.rankSpecifier()}
		if p.at("{") {
			kids = append(kids, p.initializer())
		}
		return syntax.NewNode(syntax.ImplicitArrayCreationExpression, kids...)
	case p.at("{"):
		kids := []syntax.Element{kw, p.next()}
		kids = append(kids, p.separated("}", true, func() syntax.Element {
			if p.atIdent() && p.peek(1).Is("=") {
				return syntax.NewNode(syntax.AnonymousObjectMemberDeclarator, p.next(), p.next(), p.expression())
			}
			return syntax.NewNode(syntax.AnonymousObjectMemberDeclarator, p.expression())
		})...)
		kids = append(kids, p.expect("}"))
		return syntax.NewNode(syntax.AnonymousObjectCreationExpression, kids...)
	}

	t := p.baseType()
	if t == nil {
		t = syntax.NewNode(syntax.IdentifierName, p.expectIdent())
	}
	if p.at("?") && p.peek(1).IsAny("(", "[", "{") {
		t = syntax.NewNode(syntax.NullableType, t, p.next())
	}
	if p.at("[") {
		return syntax.NewNode(syntax.ArrayCreationExpression, p.arrayCreationRest(kw, t)...)
	}
	kids := []syntax.Element{kw, t}
	if p.at("(") {
		kids = append(kids, p.argumentList())
	}
	if p.at("{") {
		kids = append(kids, p.initializer())
	}
	return syntax.NewNode(syntax.ObjectCreationExpression, kids...)
}

// arrayCreationRest parses the rank specifiers (the first may hold sizes)
// and optional initializer of an array creation whose element type is t.
func (p *parser) arrayCreationRest(kw *syntax.Token, t *syntax.Node) []syntax.Element {
	arr := []syntax.Element{t}
	for p.at("[") {
		open := p.next()
		rank := []syntax.Element{open}
		rank = append(rank, p.separatedSizes()...)
		rank = append(rank, p.expect("]"))
		arr = append(arr, syntax.NewNode(syntax.ArrayRankSpecifier, rank...))
	}
	kids := []syntax.Element{kw, syntax.NewNode(syntax.ArrayType, arr...)}
	if p.at("{") {
		kids = append(kids, p.initializer())
	}
	return kids
}

// separatedSizes parses the optional size expressions of a rank specifier.
func (p *parser) separatedSizes() []syntax.Element {
	var out []syntax.Element
	for !p.at("]") && !p.atEOF() {
		if p.at(",") {
			out = append(out, p.next())
			continue
		}
		start := p.pos
		out = append(out, p.expression())
		if p.pos == start {
			break
		}
	}
	return out
}

func (p *parser) stackAlloc() *syntax.Node {
	kw := p.next()
	if p.at("[") {
		kids := []syntax.Element{kw, p.rankSpecifier()}
		if p.at("{") {
			kids = append(kids, p.initializer())
		}
		return syntax.NewNode(syntax.StackAllocArrayCreationExpression, kids...)
	}
	t := p.baseType()
	if t == nil {
		t = syntax.NewNode(syntax.IdentifierName, p.expectIdent())
	}
	if p.at("*") {
		t = syntax.NewNode(syntax.PointerType, t, p.next())
	}
	return syntax.NewNode(syntax.StackAllocArrayCreationExpression, p.arrayCreationRest(kw, t)...)
}

// initializer parses { a, b, { c }, [i] = d } forms.
func (p *parser) initializer() *syntax.Node {
	kids := []syntax.Element{p.expect("{")}
	kids = append(kids, p.separated("}", true, func() syntax.Element {
		switch {
		case p.at("{"):
			return p.initializer()
		case p.at("["):
			idx := p.bracketedArgumentList()
			if p.at("=") {
				eq := p.next()
				return syntax.NewNode(syntax.AssignmentExpression, idx, eq, p.variableInitializer())
			}
			return idx
		}
		return p.expression()
	})...)
	kids = append(kids, p.expect("}"))
	return syntax.NewNode(syntax.InitializerExpression, kids...)
}

// tryLambda parses a simple or parenthesized lambda, or returns nil
// without consuming anything.
func (p *parser) tryLambda() *syntax.Node {
	start := p.pos
	var mods []syntax.Element
	for p.atAny("async", "static") && (p.peek(1).Kind == syntax.Identifier || p.peek(1).IsAny("(", "delegate", "static")) {
		mods = append(mods, p.next())
	}
	switch {
	case p.atIdent() && p.peek(1).Is("=>"):
		param := syntax.NewNode(syntax.Parameter, p.next())
		kids := append(mods, param, p.next(), p.lambdaBody())
		return syntax.NewNode(syntax.SimpleLambdaExpression, kids...)
	case p.at("("):
		if c := p.matchingClose(0); c > 0 && p.peek(c+1).Is("=>") {
			kids := append(mods, p.parameterList(), p.expect("=>"), p.lambdaBody())
			return syntax.NewNode(syntax.ParenthesizedLambdaExpression, kids...)
		}
	case p.at("delegate") && len(mods) > 0:
		return p.anonymousMethod(mods)
	}
	p.pos = start
	return nil
}

func (p *parser) lambdaBody() *syntax.Node {
	if p.at("{") {
		return p.block()
	}
	return p.expression()
}

func (p *parser) anonymousMethod(mods []syntax.Element) *syntax.Node {
	kids := append(mods, p.next())
	if p.at("(") {
		kids = append(kids, p.parameterList())
	}
	kids = append(kids, p.block())
	return syntax.NewNode(syntax.AnonymousMethodExpression, kids...)
}

// matchingClose returns the offset of the ')' closing the '(' at offset i,
// or -1 when a statement boundary comes first.
func (p *parser) matchingClose(i int) int {
	depth := 0
	for j := i; ; j++ {
		t := p.peek(j)
		switch {
		case t.Kind == syntax.EOF, t.IsAny(";", "{", "}"):
			return -1
		case t.Is("("):
			depth++
		case t.Is(")"):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
}

func (p *parser) switchExpression(governing *syntax.Node) *syntax.Node {
	kids := []syntax.Element{governing, p.next(), p.expect("{")}
	kids = append(kids, p.separated("}", true, func() syntax.Element {
		arm := []syntax.Element{p.pattern()}
		if p.at("when") {
			w := p.next()
			arm = append(arm, syntax.NewNode(syntax.WhenClause, w, p.expression()))
		}
		arm = append(arm, p.expect("=>"), p.expression())
		return syntax.NewNode(syntax.SwitchExpressionArm, arm...)
	})...)
	kids = append(kids, p.expect("}"))
	return syntax.NewNode(syntax.SwitchExpression, kids...)
}
