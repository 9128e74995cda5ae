package parser

import "github.com/donaldgifford/csfmt/internal/syntax"

var predefinedTypes = map[string]bool{
	"bool": true, "byte": true, "sbyte": true, "char": true, "decimal": true,
	"double": true, "float": true, "int": true, "uint": true, "long": true,
	"ulong": true, "short": true, "ushort": true, "object": true, "string": true,
	"void": true,
}

// typ parses a type, producing a missing identifier when none is present.
func (p *parser) typ() *syntax.Node {
	if t := p.tryType(true); t != nil {
		return t
	}
	return syntax.NewNode(syntax.IdentifierName, &syntax.Token{Kind: syntax.Identifier, Missing: true})
}

// tryType parses a type or returns nil without consuming anything. In a
// declaration context a '?' followed by an identifier is a nullable suffix;
// elsewhere that shape is left for the conditional operator.
func (p *parser) tryType(declaration bool) *syntax.Node {
	start := p.pos
	t := p.baseType()
	if t == nil {
		p.pos = start
		return nil
	}
	for {
		switch {
		case p.at("?") && p.nullableFollows(declaration):
			t = syntax.NewNode(syntax.NullableType, t, p.next())
		case p.at("*"):
			t = syntax.NewNode(syntax.PointerType, t, p.next())
		case p.at("[") && p.rankFollows():
			kids := []syntax.Element{t}
			for p.at("[") && p.rankFollows() {
				kids = append(kids, p.rankSpecifier())
			}
			t = syntax.NewNode(syntax.ArrayType, kids...)
		default:
			return t
		}
	}
}

func (p *parser) nullableFollows(declaration bool) bool {
	n := p.peek(1)
	if n.Kind == syntax.EOF {
		return true
	}
	if n.Kind == syntax.Identifier {
		return declaration && !n.IsAny("when", "and", "or")
	}
	return n.IsAny(">", ")", ",", "]", ";", "=", "{", "[", "?", "*", "=>", "}", ":") && !(n.Is(":") && !declaration)
}

// rankFollows reports whether the '[' at pos opens an omitted-size rank
// specifier such as [] or [,,].
func (p *parser) rankFollows() bool {
	i := 1
	for p.peek(i).Is(",") {
		i++
	}
	return p.peek(i).Is("]")
}

func (p *parser) rankSpecifier() *syntax.Node {
	kids := []syntax.Element{p.next()}
	for p.at(",") {
		kids = append(kids, p.next())
	}
	kids = append(kids, p.expect("]"))
	return syntax.NewNode(syntax.ArrayRankSpecifier, kids...)
}

func (p *parser) baseType() *syntax.Node {
	t := p.cur()
	switch {
	case t.Kind == syntax.Keyword && predefinedTypes[t.Text]:
		return syntax.NewNode(syntax.PredefinedType, p.next())
	case t.Is("("):
		return p.tupleType()
	case t.Kind == syntax.Identifier:
		return p.qualifiedName()
	}
	return nil
}

// tupleType parses (T1 a, T2 b, ...) with at least two elements.
func (p *parser) tupleType() *syntax.Node {
	start := p.pos
	kids := []syntax.Element{p.next()}
	count := 0
	for {
		et := p.tryType(true)
		if et == nil {
			p.pos = start
			return nil
		}
		el := []syntax.Element{et}
		if p.atIdent() {
			el = append(el, p.next())
		}
		kids = append(kids, syntax.NewNode(syntax.TupleElement, el...))
		count++
		if p.at(",") {
			kids = append(kids, p.next())
			continue
		}
		break
	}
	if count < 2 || !p.at(")") {
		p.pos = start
		return nil
	}
	kids = append(kids, p.next())
	return syntax.NewNode(syntax.TupleType, kids...)
}

// qualifiedName parses A, A.B<C>.D and alias::A forms in type position.
func (p *parser) qualifiedName() *syntax.Node {
	n := p.typeName()
	if p.at("::") && p.peek(1).Kind == syntax.Identifier {
		n = syntax.NewNode(syntax.AliasQualifiedName, n, p.next(), p.typeName())
	}
	for p.at(".") && p.peek(1).Kind == syntax.Identifier {
		dot := p.next()
		n = syntax.NewNode(syntax.QualifiedName, n, dot, p.typeName())
	}
	return n
}

func (p *parser) typeName() *syntax.Node {
	id := p.next()
	if p.at("<") {
		if args := p.tryTypeArgs(); args != nil {
			return syntax.NewNode(syntax.GenericName, id, args)
		}
	}
	return syntax.NewNode(syntax.IdentifierName, id)
}

// tryTypeArgs parses <T, U> or the omitted form <,> and returns nil without
// consuming anything when the tokens do not form a type argument list.
func (p *parser) tryTypeArgs() *syntax.Node {
	start := p.pos
	kids := []syntax.Element{p.next()}
	if p.atAny(",", ">") {
		for p.at(",") {
			kids = append(kids, p.next())
		}
		if !p.at(">") {
			p.pos = start
			return nil
		}
		return syntax.NewNode(syntax.TypeArgumentList, append(kids, p.next())...)
	}
	for {
		t := p.tryType(false)
		if t == nil {
			p.pos = start
			return nil
		}
		kids = append(kids, t)
		if p.at(",") {
			kids = append(kids, p.next())
			continue
		}
		if p.at(">") {
			return syntax.NewNode(syntax.TypeArgumentList, append(kids, p.next())...)
		}
		p.pos = start
		return nil
	}
}

// name parses a possibly qualified name, producing a missing identifier
// when none is present.
func (p *parser) name() *syntax.Node {
	if !p.atIdent() {
		return syntax.NewNode(syntax.IdentifierName, p.expectIdent())
	}
	return p.qualifiedName()
}

// genericFollows is the set of tokens after which a speculative type
// argument list in an expression is accepted.
var genericFollows = []string{
	"(", ")", "]", "}", ":", ";", ",", ".", "?", "==", "!=", "|", "^", "&&", "||", "&", "?.", "[",
}

// simpleName parses an identifier in expression position. A following
// '<' starts type arguments only if the tokens after the closing '>' are
// in genericFollows.
func (p *parser) simpleName(expr bool) *syntax.Node {
	if !p.atIdent() {
		return syntax.NewNode(syntax.IdentifierName, p.expectIdent())
	}
	id := p.next()
	if p.at("<") {
		save := p.pos
		if args := p.tryTypeArgs(); args != nil {
			if !expr || p.atEOF() || p.atAny(genericFollows...) {
				return syntax.NewNode(syntax.GenericName, id, args)
			}
		}
		p.pos = save
	}
	return syntax.NewNode(syntax.IdentifierName, id)
}
