package parser

import "github.com/donaldgifford/csfmt/internal/syntax"

func (p *parser) pattern() *syntax.Node {
	left := p.andPattern()
	for p.at("or") {
		or := p.next()
		left = syntax.NewNode(syntax.OrPattern, left, or, p.andPattern())
	}
	return left
}

func (p *parser) andPattern() *syntax.Node {
	left := p.notPattern()
	for p.at("and") {
		and := p.next()
		left = syntax.NewNode(syntax.AndPattern, left, and, p.notPattern())
	}
	return left
}

func (p *parser) notPattern() *syntax.Node {
	if p.at("not") && !p.patternEnds(p.peek(1)) {
		not := p.next()
		return syntax.NewNode(syntax.NotPattern, not, p.notPattern())
	}
	return p.primaryPattern()
}

// patternEnds reports whether t cannot continue a pattern.
func (p *parser) patternEnds(t *syntax.Token) bool {
	if t.Kind == syntax.EOF {
		return true
	}
	return t.IsAny(")", ";", ",", "=>", ":", "]", "}", "when", "and", "or", "?",
		"&&", "||", "&", "|", "^", "==", "!=", "??")
}

func (p *parser) primaryPattern() *syntax.Node {
	switch {
	case p.at("("):
		return p.parenthesizedPattern(nil)
	case p.at("{"):
		return p.recursivePattern(nil)
	case p.at("["):
		return p.listPattern()
	case p.atAny("<", "<=", ">"):
		var op *syntax.Token
		if p.at(">") {
			_, n := p.greater()
			op = p.join(n)
		} else {
			op = p.next()
		}
		return syntax.NewNode(syntax.RelationalPattern, op, p.binary(shiftPrec))
	case p.at("var") && (p.peek(1).Kind == syntax.Identifier || p.peek(1).Is("(")):
		kw := p.next()
		return syntax.NewNode(syntax.VarPattern, kw, p.designation())
	case p.at("_") && p.patternEnds(p.peek(1)):
		return syntax.NewNode(syntax.DiscardPattern, p.next())
	}

	start := p.pos
	if t := p.tryType(false); t != nil {
		switch {
		case p.atIdent() && !p.atAny("when", "and", "or", "with"):
			return syntax.NewNode(syntax.DeclarationPattern, t, p.next())
		case p.at("{"):
			return p.recursivePattern(t)
		case p.at("(") && !t.FirstToken().Is("nameof"):
			return p.parenthesizedPattern(t)
		case p.patternEnds(p.cur()):
			return syntax.NewNode(syntax.TypePattern, t)
		}
		p.pos = start
	}
	return syntax.NewNode(syntax.ConstantPattern, p.binary(shiftPrec))
}

// designation parses x, _ or a parenthesized list of designations.
func (p *parser) designation() syntax.Element {
	if !p.at("(") {
		return p.expectIdent()
	}
	kids := []syntax.Element{p.next()}
	kids = append(kids, p.separated(")", false, func() syntax.Element { return p.designation() })...)
	kids = append(kids, p.expect(")"))
	return syntax.NewNode(syntax.ParenthesizedPattern, kids...)
}

// parenthesizedPattern parses (p) or a positional pattern (p1, p2) with an
// optional leading type, trailing property clause and designation.
func (p *parser) parenthesizedPattern(t *syntax.Node) *syntax.Node {
	open := p.next()
	if t == nil && !p.at(")") {
		inner := p.subpattern()
		if !p.at(",") && len(inner.Children) == 1 {
			closeTok := p.expect(")")
			return syntax.NewNode(syntax.ParenthesizedPattern, open, inner.Children[0], closeTok)
		}
		kids := []syntax.Element{open, inner}
		for p.at(",") {
			kids = append(kids, p.next(), p.subpattern())
		}
		kids = append(kids, p.expect(")"))
		return p.recursiveTail(kids)
	}
	var kids []syntax.Element
	if t != nil {
		kids = append(kids, t)
	}
	kids = append(kids, open)
	kids = append(kids, p.separated(")", false, func() syntax.Element { return p.subpattern() })...)
	kids = append(kids, p.expect(")"))
	return p.recursiveTail(kids)
}

func (p *parser) recursivePattern(t *syntax.Node) *syntax.Node {
	var kids []syntax.Element
	if t != nil {
		kids = append(kids, t)
	}
	return p.recursiveTail(kids)
}

// recursiveTail adds an optional property clause and designation.
func (p *parser) recursiveTail(kids []syntax.Element) *syntax.Node {
	if p.at("{") {
		clause := []syntax.Element{p.next()}
		clause = append(clause, p.separated("}", true, func() syntax.Element { return p.subpattern() })...)
		clause = append(clause, p.expect("}"))
		kids = append(kids, syntax.NewNode(syntax.PropertyPatternClause, clause...))
	}
	if p.atIdent() && !p.atAny("when", "and", "or") {
		kids = append(kids, p.next())
	}
	return syntax.NewNode(syntax.RecursivePattern, kids...)
}

func (p *parser) listPattern() *syntax.Node {
	kids := []syntax.Element{p.next()}
	kids = append(kids, p.separated("]", true, func() syntax.Element {
		if p.at("..") {
			dots := p.next()
			if p.patternEnds(p.cur()) {
				return syntax.NewNode(syntax.Subpattern, dots)
			}
			return syntax.NewNode(syntax.Subpattern, dots, p.pattern())
		}
		return p.subpattern()
	})...)
	kids = append(kids, p.expect("]"))
	if p.atIdent() && !p.atAny("when", "and", "or") {
		kids = append(kids, p.next())
	}
	return syntax.NewNode(syntax.RecursivePattern, kids...)
}

// subpattern parses [name:] pattern, where name may be dotted.
func (p *parser) subpattern() *syntax.Node {
	i := 0
	for p.peek(i).Kind == syntax.Identifier && p.peek(i+1).Is(".") {
		i += 2
	}
	if p.peek(i).Kind == syntax.Identifier && p.peek(i+1).Is(":") {
		var name []syntax.Element
		for range i + 2 {
			name = append(name, p.next())
		}
		return syntax.NewNode(syntax.Subpattern, syntax.NewNode(syntax.NameColon, name...), p.pattern())
	}
	return syntax.NewNode(syntax.Subpattern, p.pattern())
}
