package parser

import (
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// Parse converts source text into a CompilationUnit node. Parsing never
// fails: unrecognized input is kept in SkippedTokens or IncompleteMember
// nodes and absent tokens are synthesized as missing, so the full text of
// the result always equals src.
func Parse(src string, opts ...Option) *syntax.Node {
	p := newParser(src, opts)
	return p.compilationUnit()
}

// ParseStatement parses src as a single statement. Text that follows the
// statement is kept as skipped tokens.
func ParseStatement(src string, opts ...Option) *syntax.Node {
	p := newParser(src, opts)
	return p.fragment(p.statement())
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string, opts ...Option) *syntax.Node {
	p := newParser(src, opts)
	return p.fragment(p.expression())
}

// ParseMember parses src as a single type member or type declaration.
func ParseMember(src string, opts ...Option) *syntax.Node {
	p := newParser(src, opts)
	m := p.member()
	switch {
	case m != nil:
	case p.atEOF():
		m = syntax.NewNode(syntax.IncompleteMember)
	default:
		m = p.skipped()
	}
	return p.fragment(m)
}

type parser struct {
	toks []*syntax.Token
	pos  int
}

func newParser(src string, opts []Option) *parser {
	return &parser{toks: Lex(src, opts...)}
}

// fragment finishes a bare parse. Leftover tokens become skipped tokens and
// trivia before EOF moves onto the last real token.
func (p *parser) fragment(n *syntax.Node) *syntax.Node {
	var rest []syntax.Element
	for !p.atEOF() {
		rest = append(rest, p.next())
	}
	if len(rest) > 0 {
		n = syntax.NewNode(n.Kind, append(n.Children, syntax.NewNode(syntax.SkippedTokens, rest...))...)
	}
	eof := p.cur()
	if len(eof.Leading) == 0 {
		return n
	}
	last := n.LastToken()
	if last == nil {
		return syntax.NewNode(n.Kind, append(n.Children, eof)...)
	}
	return n.Rewrite(func(t *syntax.Token) *syntax.Token {
		if t == last {
			return t.WithTrailing(append(append([]syntax.Trivia(nil), t.Trailing...), eof.Leading...))
		}
		return t
	})
}

func (p *parser) cur() *syntax.Token { return p.peek(0) }

func (p *parser) peek(n int) *syntax.Token {
	if p.pos+n < len(p.toks) {
		return p.toks[p.pos+n]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(text string) bool { return p.cur().Is(text) }

func (p *parser) atAny(texts ...string) bool { return p.cur().IsAny(texts...) }

func (p *parser) atEOF() bool { return p.cur().Kind == syntax.EOF }

func (p *parser) atIdent() bool { return p.cur().Kind == syntax.Identifier }

func (p *parser) next() *syntax.Token {
	t := p.cur()
	if t.Kind != syntax.EOF {
		p.pos++
	}
	return t
}

// expect consumes the current token when it has the given text, otherwise
// it returns a missing token without consuming anything.
func (p *parser) expect(text string) *syntax.Token {
	if p.at(text) {
		return p.next()
	}
	return &syntax.Token{Kind: syntax.Punctuation, Missing: true}
}

func (p *parser) expectIdent() *syntax.Token {
	if p.atIdent() {
		return p.next()
	}
	return &syntax.Token{Kind: syntax.Identifier, Missing: true}
}

// adjacent reports whether tokens i and i+1 (relative to pos) touch with no
// trivia between them.
func (p *parser) adjacent(i int) bool {
	a, b := p.peek(i), p.peek(i+1)
	return len(a.Trailing) == 0 && len(b.Leading) == 0
}

// greater returns the operator formed by the run of '>' tokens (and an
// optional '=') at the current position, along with the token count.
func (p *parser) greater() (string, int) {
	if !p.at(">") {
		return "", 0
	}
	text, n := ">", 1
	for n < 3 && p.peek(n).Is(">") && p.adjacent(n-1) {
		text += ">"
		n++
	}
	if p.peek(n).Is("=") && p.adjacent(n-1) {
		text += "="
		n++
	}
	return text, n
}

// join consumes n tokens and fuses them into one punctuation token.
func (p *parser) join(n int) *syntax.Token {
	first := p.next()
	if n == 1 {
		return first
	}
	text := first.Text
	last := first
	for range n - 1 {
		last = p.next()
		text += last.Text
	}
	return &syntax.Token{Kind: syntax.Punctuation, Text: text, Leading: first.Leading, Trailing: last.Trailing}
}

// skipped consumes one token into a SkippedTokens node.
func (p *parser) skipped() *syntax.Node {
	return syntax.NewNode(syntax.SkippedTokens, p.next())
}

// separated parses item (sep item)* up to close. A separator directly
// before close is accepted when allowTrailing is set.
func (p *parser) separated(close string, allowTrailing bool, item func() syntax.Element) []syntax.Element {
	var out []syntax.Element
	if p.at(close) || p.atEOF() {
		return out
	}
	for {
		out = append(out, item())
		if !p.at(",") {
			return out
		}
		out = append(out, p.next())
		if allowTrailing && p.at(close) {
			return out
		}
	}
}

func (p *parser) compilationUnit() *syntax.Node {
	var kids []syntax.Element
	kids = append(kids, p.members(true)...)
	for !p.atEOF() {
		kids = append(kids, p.skipped())
		kids = append(kids, p.members(true)...)
	}
	kids = append(kids, p.next())
	return syntax.NewNode(syntax.CompilationUnit, kids...)
}

// members parses namespace or type members until '}' or EOF. At file and
// namespace level (top set) directives and top-level statements are accepted.
func (p *parser) members(top bool) []syntax.Element {
	var out []syntax.Element
	for !p.atEOF() && !p.at("}") {
		if top && (p.at("using") && !p.peek(1).IsAny("(", "var") || p.at("extern") && p.peek(1).Is("alias")) {
			out = append(out, p.usingDirective())
			continue
		}
		start := p.pos
		m := p.member()
		if top && (m == nil || m.Kind == syntax.IncompleteMember) {
			p.pos = start
			if s := p.statement(); p.pos > start {
				m = s
			} else {
				p.pos = start
				m = p.member()
			}
		}
		if m == nil || p.pos == start {
			out = append(out, p.skipped())
			continue
		}
		out = append(out, m)
	}
	return out
}

func (p *parser) usingDirective() *syntax.Node {
	if p.at("extern") {
		return syntax.NewNode(syntax.ExternAliasDirective, p.next(), p.next(), p.expectIdent(), p.expect(";"))
	}
	kids := []syntax.Element{p.next()}
	if p.at("static") {
		kids = append(kids, p.next())
	}
	if p.atIdent() && p.peek(1).Is("=") {
		kids = append(kids, p.next(), p.next())
	}
	kids = append(kids, p.typ(), p.expect(";"))
	return syntax.NewNode(syntax.UsingDirective, kids...)
}

var modifierWords = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true, "static": true,
	"readonly": true, "const": true, "volatile": true, "abstract": true, "virtual": true,
	"override": true, "sealed": true, "extern": true, "unsafe": true, "new": true,
	"fixed": true, "ref": true,
}

var contextualModifiers = map[string]bool{
	"partial": true, "async": true, "required": true, "file": true, "scoped": true,
}

func (p *parser) isModifier() bool {
	t := p.cur()
	if t.Kind == syntax.Keyword && modifierWords[t.Text] {
		// "new(" and "new T(" start expressions, "fixed (" a statement.
		if t.Text == "new" && p.peek(1).IsAny("(", "[", "{") {
			return false
		}
		return !(t.Text == "fixed" && p.peek(1).Is("("))
	}
	if t.Kind == syntax.Identifier && contextualModifiers[t.Text] {
		n := p.peek(1)
		if n.Kind == syntax.Identifier || n.Kind == syntax.Keyword {
			return !n.IsAny("is", "as", "in")
		}
		if t.Text == "async" && n.Is("(") {
			return false
		}
	}
	return false
}

func (p *parser) modifiers() []syntax.Element {
	var out []syntax.Element
	for p.isModifier() {
		out = append(out, p.next())
	}
	return out
}

func (p *parser) attributeLists() []syntax.Element {
	var out []syntax.Element
	for p.at("[") {
		out = append(out, p.attributeList())
	}
	return out
}

func (p *parser) attributeList() *syntax.Node {
	kids := []syntax.Element{p.next()}
	if (p.atIdent() || p.cur().Kind == syntax.Keyword) && p.peek(1).Is(":") {
		kids = append(kids, p.next(), p.next())
	}
	kids = append(kids, p.separated("]", true, func() syntax.Element {
		a := []syntax.Element{p.name()}
		if p.at("(") {
			open := p.next()
			args := []syntax.Element{open}
			args = append(args, p.separated(")", false, func() syntax.Element { return p.argument() })...)
			args = append(args, p.expect(")"))
			a = append(a, syntax.NewNode(syntax.AttributeArgumentList, args...))
		}
		return syntax.NewNode(syntax.Attribute, a...)
	})...)
	kids = append(kids, p.expect("]"))
	return syntax.NewNode(syntax.AttributeList, kids...)
}

// member parses a namespace, type or type member. It returns nil when the
// current token cannot start one.
func (p *parser) member() *syntax.Node {
	start := p.pos
	var head []syntax.Element
	head = append(head, p.attributeLists()...)
	if p.at("global") && p.peek(1).Is("using") {
		g := p.next()
		u := p.usingDirective()
		return syntax.NewNode(syntax.UsingDirective, append([]syntax.Element{g}, u.Children...)...)
	}
	head = append(head, p.modifiers()...)

	switch {
	case p.at("namespace"):
		return p.namespace(head)
	case p.atAny("class", "struct", "interface"):
		return p.typeDeclaration(head)
	case p.at("record") && (p.peek(1).Kind == syntax.Identifier || p.peek(1).IsAny("class", "struct")):
		return p.typeDeclaration(head)
	case p.at("enum"):
		return p.enumDeclaration(head)
	case p.at("delegate") && !p.peek(1).IsAny("(", "{"):
		return p.delegateDeclaration(head)
	case p.at("event"):
		return p.eventDeclaration(head)
	case p.at("~"):
		return p.destructor(head)
	case p.atAny("implicit", "explicit"):
		return p.conversionOperator(head)
	case p.atIdent() && p.peek(1).Is("("):
		return p.constructor(head)
	}

	t := p.tryType(true)
	if t == nil {
		if len(head) == 0 {
			p.pos = start
			return nil
		}
		return syntax.NewNode(syntax.IncompleteMember, head...)
	}
	head = append(head, t)
	switch {
	case p.at("operator"):
		return p.operator(head)
	case p.at("this"):
		return p.indexer(head, nil)
	case !p.atIdent():
		return syntax.NewNode(syntax.IncompleteMember, head...)
	}

	name := p.memberName()
	if name.Kind == syntax.QualifiedName && p.at("this") {
		// Explicit interface indexer: the qualifier was consumed with its dot.
		return p.indexer(head, name)
	}
	switch {
	case p.atAny("(", "<"):
		return p.method(append(head, name))
	case p.atAny("{", "=>"):
		return p.property(append(head, name))
	}
	return p.field(syntax.FieldDeclaration, head, name)
}

// memberName parses an identifier that may be qualified by an explicit
// interface name, as in IList<T>.Add. A trailing dot before "this" stays
// inside the returned qualified name.
func (p *parser) memberName() *syntax.Node {
	n := syntax.NewNode(syntax.IdentifierName, p.next())
	for {
		if p.at("<") {
			save := p.pos
			args := p.tryTypeArgs()
			if args == nil || !p.at(".") {
				p.pos = save
				return n
			}
			n = withTypeArgs(n, args)
		}
		if !p.at(".") || !(p.peek(1).Kind == syntax.Identifier || p.peek(1).Is("this")) {
			return n
		}
		if p.peek(1).Is("this") {
			return syntax.NewNode(syntax.QualifiedName, n, p.next())
		}
		dot := p.next()
		n = syntax.NewNode(syntax.QualifiedName, n, dot, syntax.NewNode(syntax.IdentifierName, p.next()))
	}
}

// withTypeArgs turns the rightmost simple name of n into a generic name.
func withTypeArgs(n, args *syntax.Node) *syntax.Node {
	if n.Kind == syntax.QualifiedName {
		kids := append([]syntax.Element(nil), n.Children...)
		last := kids[len(kids)-1].(*syntax.Node)
		kids[len(kids)-1] = withTypeArgs(last, args)
		return syntax.NewNode(syntax.QualifiedName, kids...)
	}
	return syntax.NewNode(syntax.GenericName, append(append([]syntax.Element(nil), n.Children...), args)...)
}

func (p *parser) namespace(head []syntax.Element) *syntax.Node {
	kids := append(head, p.next(), p.name())
	if p.at(";") {
		kids = append(kids, p.next())
		kids = append(kids, p.members(true)...)
		return syntax.NewNode(syntax.FileScopedNamespaceDeclaration, kids...)
	}
	kids = append(kids, p.expect("{"))
	kids = append(kids, p.members(true)...)
	kids = append(kids, p.expect("}"))
	if p.at(";") {
		kids = append(kids, p.next())
	}
	return syntax.NewNode(syntax.NamespaceDeclaration, kids...)
}

func (p *parser) typeDeclaration(head []syntax.Element) *syntax.Node {
	kw := p.next()
	kind := syntax.ClassDeclaration
	switch kw.Text {
	case "struct":
		kind = syntax.StructDeclaration
	case "interface":
		kind = syntax.InterfaceDeclaration
	case "record":
		kind = syntax.RecordDeclaration
	}
	kids := append(head, kw)
	if kind == syntax.RecordDeclaration && p.atAny("class", "struct") {
		kids = append(kids, p.next())
	}
	kids = append(kids, p.expectIdent())
	if p.at("<") {
		kids = append(kids, p.typeParameterList())
	}
	if p.at("(") {
		kids = append(kids, p.parameterList())
	}
	if p.at(":") {
		kids = append(kids, p.baseList())
	}
	kids = append(kids, p.constraintClauses()...)
	if p.at(";") {
		return syntax.NewNode(kind, append(kids, p.next())...)
	}
	kids = append(kids, p.expect("{"))
	kids = append(kids, p.members(false)...)
	kids = append(kids, p.expect("}"))
	if p.at(";") {
		kids = append(kids, p.next())
	}
	return syntax.NewNode(kind, kids...)
}

func (p *parser) enumDeclaration(head []syntax.Element) *syntax.Node {
	kids := append(head, p.next(), p.expectIdent())
	if p.at(":") {
		kids = append(kids, p.baseList())
	}
	kids = append(kids, p.expect("{"))
	kids = append(kids, p.separated("}", true, func() syntax.Element {
		m := p.attributeLists()
		m = append(m, p.expectIdent())
		if p.at("=") {
			m = append(m, syntax.NewNode(syntax.EqualsValueClause, p.next(), p.expression()))
		}
		return syntax.NewNode(syntax.EnumMemberDeclaration, m...)
	})...)
	kids = append(kids, p.expect("}"))
	if p.at(";") {
		kids = append(kids, p.next())
	}
	return syntax.NewNode(syntax.EnumDeclaration, kids...)
}

func (p *parser) delegateDeclaration(head []syntax.Element) *syntax.Node {
	kids := append(head, p.next(), p.typ(), p.expectIdent())
	if p.at("<") {
		kids = append(kids, p.typeParameterList())
	}
	kids = append(kids, p.parameterList())
	kids = append(kids, p.constraintClauses()...)
	kids = append(kids, p.expect(";"))
	return syntax.NewNode(syntax.DelegateDeclaration, kids...)
}

func (p *parser) eventDeclaration(head []syntax.Element) *syntax.Node {
	head = append(head, p.next(), p.typ())
	if !p.atIdent() {
		return syntax.NewNode(syntax.IncompleteMember, head...)
	}
	name := p.memberName()
	if p.at("{") {
		return syntax.NewNode(syntax.EventDeclaration, append(head, name, p.accessorList())...)
	}
	return p.field(syntax.EventFieldDeclaration, head, name)
}

func (p *parser) destructor(head []syntax.Element) *syntax.Node {
	kids := append(head, p.next(), p.expectIdent(), p.parameterList())
	kids = append(kids, p.body()...)
	return syntax.NewNode(syntax.DestructorDeclaration, kids...)
}

func (p *parser) conversionOperator(head []syntax.Element) *syntax.Node {
	kids := append(head, p.next(), p.expect("operator"))
	if p.at("checked") {
		kids = append(kids, p.next())
	}
	kids = append(kids, p.typ(), p.parameterList())
	kids = append(kids, p.body()...)
	return syntax.NewNode(syntax.ConversionOperatorDeclaration, kids...)
}

func (p *parser) constructor(head []syntax.Element) *syntax.Node {
	kids := append(head, p.next(), p.parameterList())
	if p.at(":") {
		init := []syntax.Element{p.next()}
		if p.atAny("base", "this") {
			init = append(init, p.next())
		} else {
			init = append(init, p.expect("base"))
		}
		init = append(init, p.argumentList())
		kids = append(kids, syntax.NewNode(syntax.ConstructorInitializer, init...))
	}
	kids = append(kids, p.body()...)
	return syntax.NewNode(syntax.ConstructorDeclaration, kids...)
}

func (p *parser) operator(head []syntax.Element) *syntax.Node {
	kids := append(head, p.next())
	if p.at("checked") {
		kids = append(kids, p.next())
	}
	switch {
	case p.at(">"):
		_, n := p.greater()
		kids = append(kids, p.join(n))
	case p.cur().Kind == syntax.Punctuation && !p.at("("), p.atAny("true", "false"):
		kids = append(kids, p.next())
	default:
		kids = append(kids, p.expect("+"))
	}
	kids = append(kids, p.parameterList())
	kids = append(kids, p.body()...)
	return syntax.NewNode(syntax.OperatorDeclaration, kids...)
}

func (p *parser) indexer(head []syntax.Element, qualifier *syntax.Node) *syntax.Node {
	kids := head
	if qualifier != nil {
		kids = append(kids, qualifier)
	}
	kids = append(kids, p.next())
	b := []syntax.Element{p.expect("[")}
	b = append(b, p.separated("]", false, func() syntax.Element { return p.parameter() })...)
	b = append(b, p.expect("]"))
	kids = append(kids, syntax.NewNode(syntax.BracketedParameterList, b...))
	if p.at("=>") {
		kids = append(kids, p.arrowClause(), p.expect(";"))
	} else {
		kids = append(kids, p.accessorList())
	}
	return syntax.NewNode(syntax.IndexerDeclaration, kids...)
}

func (p *parser) method(head []syntax.Element) *syntax.Node {
	kids := head
	if p.at("<") {
		kids = append(kids, p.typeParameterList())
	}
	kids = append(kids, p.parameterList())
	kids = append(kids, p.constraintClauses()...)
	kids = append(kids, p.body()...)
	return syntax.NewNode(syntax.MethodDeclaration, kids...)
}

func (p *parser) property(head []syntax.Element) *syntax.Node {
	kids := head
	if p.at("=>") {
		kids = append(kids, p.arrowClause(), p.expect(";"))
		return syntax.NewNode(syntax.PropertyDeclaration, kids...)
	}
	kids = append(kids, p.accessorList())
	if p.at("=") {
		kids = append(kids, syntax.NewNode(syntax.EqualsValueClause, p.next(), p.variableInitializer()), p.expect(";"))
	}
	return syntax.NewNode(syntax.PropertyDeclaration, kids...)
}

// field parses the declarator list of a field or event field whose type
// and first name have already been consumed.
func (p *parser) field(kind syntax.NodeKind, head []syntax.Element, name *syntax.Node) *syntax.Node {
	typ := head[len(head)-1]
	mods := head[:len(head)-1]
	first := p.declaratorRest(nameToken(name))
	decl := []syntax.Element{typ, first}
	for p.at(",") {
		decl = append(decl, p.next(), p.declarator())
	}
	kids := append(mods, syntax.NewNode(syntax.VariableDeclaration, decl...), p.expect(";"))
	return syntax.NewNode(kind, kids...)
}

// nameToken extracts the identifier token of a simple member name.
func nameToken(n *syntax.Node) syntax.Element {
	if n.Kind == syntax.IdentifierName && len(n.Children) == 1 {
		return n.Children[0]
	}
	return n
}

func (p *parser) declarator() *syntax.Node {
	return p.declaratorRest(p.expectIdent())
}

func (p *parser) declaratorRest(name syntax.Element) *syntax.Node {
	kids := []syntax.Element{name}
	if p.at("[") {
		kids = append(kids, p.bracketedArgumentList())
	}
	if p.at("(") {
		// Fixed-size buffers and error recovery for call-like declarators.
		kids = append(kids, p.argumentList())
	}
	if p.at("=") {
		kids = append(kids, syntax.NewNode(syntax.EqualsValueClause, p.next(), p.variableInitializer()))
	}
	return syntax.NewNode(syntax.VariableDeclarator, kids...)
}

func (p *parser) variableInitializer() *syntax.Node {
	if p.at("{") {
		return p.initializer()
	}
	return p.expression()
}

// body parses a block, an expression body with its semicolon, or a lone semicolon.
func (p *parser) body() []syntax.Element {
	switch {
	case p.at("{"):
		return []syntax.Element{p.block()}
	case p.at("=>"):
		return []syntax.Element{p.arrowClause(), p.expect(";")}
	}
	return []syntax.Element{p.expect(";")}
}

func (p *parser) arrowClause() *syntax.Node {
	arrow := p.next()
	if p.at("ref") {
		return syntax.NewNode(syntax.ArrowExpressionClause, arrow, syntax.NewNode(syntax.RefExpression, p.next(), p.expression()))
	}
	return syntax.NewNode(syntax.ArrowExpressionClause, arrow, p.expression())
}

func (p *parser) accessorList() *syntax.Node {
	kids := []syntax.Element{p.expect("{")}
	for !p.at("}") && !p.atEOF() {
		start := p.pos
		a := p.attributeLists()
		a = append(a, p.modifiers()...)
		if !p.atIdent() {
			if p.pos == start {
				kids = append(kids, p.skipped())
				continue
			}
			kids = append(kids, syntax.NewNode(syntax.IncompleteMember, a...))
			continue
		}
		a = append(a, p.next())
		a = append(a, p.body()...)
		kids = append(kids, syntax.NewNode(syntax.AccessorDeclaration, a...))
	}
	kids = append(kids, p.expect("}"))
	return syntax.NewNode(syntax.AccessorList, kids...)
}

func (p *parser) typeParameterList() *syntax.Node {
	kids := []syntax.Element{p.next()}
	kids = append(kids, p.separated(">", false, func() syntax.Element {
		tp := p.attributeLists()
		if p.atAny("in", "out") {
			tp = append(tp, p.next())
		}
		tp = append(tp, p.expectIdent())
		return syntax.NewNode(syntax.Parameter, tp...)
	})...)
	kids = append(kids, p.expect(">"))
	return syntax.NewNode(syntax.TypeParameterList, kids...)
}

func (p *parser) baseList() *syntax.Node {
	kids := []syntax.Element{p.next()}
	kids = append(kids, p.separated("{", false, func() syntax.Element {
		t := p.typ()
		if p.at("(") {
			return syntax.NewNode(syntax.InvocationExpression, t, p.argumentList())
		}
		return t
	})...)
	return syntax.NewNode(syntax.BaseList, kids...)
}

func (p *parser) constraintClauses() []syntax.Element {
	var out []syntax.Element
	for p.at("where") && p.peek(1).Kind == syntax.Identifier && p.peek(2).Is(":") {
		kids := []syntax.Element{p.next(), p.next(), p.next()}
		kids = append(kids, p.separated("{", false, func() syntax.Element {
			switch {
			case p.at("new") && p.peek(1).Is("("):
				return syntax.NewNode(syntax.ObjectCreationExpression, p.next(), p.next(), p.expect(")"))
			case p.atAny("class", "struct", "default"):
				c := []syntax.Element{p.next()}
				if p.at("?") {
					c = append(c, p.next())
				}
				return syntax.NewNode(syntax.PredefinedType, c...)
			}
			return p.typ()
		})...)
		out = append(out, syntax.NewNode(syntax.TypeParameterConstraintClause, kids...))
	}
	return out
}

func (p *parser) parameterList() *syntax.Node {
	kids := []syntax.Element{p.expect("(")}
	kids = append(kids, p.separated(")", false, func() syntax.Element { return p.parameter() })...)
	kids = append(kids, p.expect(")"))
	return syntax.NewNode(syntax.ParameterList, kids...)
}

var parameterModifiers = map[string]bool{
	"ref": true, "out": true, "in": true, "params": true, "this": true,
	"scoped": true, "readonly": true,
}

func (p *parser) parameter() syntax.Element {
	kids := p.attributeLists()
	for p.cur().Kind != syntax.EOF && parameterModifiers[p.cur().Text] && !p.cur().Missing &&
		(p.peek(1).Kind == syntax.Identifier || p.peek(1).Kind == syntax.Keyword) {
		kids = append(kids, p.next())
	}
	if p.at("__arglist") {
		return syntax.NewNode(syntax.Parameter, append(kids, p.next())...)
	}
	// Untyped lambda parameter.
	if p.atIdent() && p.peek(1).IsAny(",", ")", "=") {
		kids = append(kids, p.next())
	} else {
		kids = append(kids, p.typ(), p.expectIdent())
	}
	if p.at("=") {
		kids = append(kids, syntax.NewNode(syntax.EqualsValueClause, p.next(), p.expression()))
	}
	return syntax.NewNode(syntax.Parameter, kids...)
}
