package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// TokenSpacing decides the horizontal spacing between every pair of
// adjacent tokens.
type TokenSpacing struct{}

// Name returns the config key for this rule.
func (*TokenSpacing) Name() string {
	return "token_spacing"
}

// Provide proposes one space before each direct token of n, then the rule
// for the pair it closes. Every gap belongs to exactly one node this way.
func (*TokenSpacing) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	for _, i := range n.ChildTokens() {
		if i == 0 {
			continue
		}
		ops.Space(i, formatter.SpaceOne, formatter.PriorityDefault)
		a, b := c.Tok(i-1), c.Tok(i)
		for _, rule := range spaceRules {
			if s, p, ok := rule(c.Options, a, b); ok {
				ops.Space(i, s, p)
				break
			}
		}
	}
}

type spaceRule func(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool)

// spaceRules are tried in order; the first that applies decides the gap.
var spaceRules = []spaceRule{
	missingSpace,
	declarationSpace,
	omittedSpace,
	semicolonSpace,
	commaSpace,
	castSpace,
	parenSpace,
	bracketSpace,
	genericSpace,
	accessSpace,
	operatorSpace,
	colonSpace,
	braceSpace,
}

func structure(s formatter.Space) (formatter.Space, formatter.Priority, bool) {
	return s, formatter.PriorityStructure, true
}

func option(on bool) (formatter.Space, formatter.Priority, bool) {
	if on {
		return formatter.SpaceOne, formatter.PriorityOption, true
	}
	return formatter.SpaceNone, formatter.PriorityOption, true
}

func none() (formatter.Space, formatter.Priority, bool) {
	return 0, 0, false
}

func missingSpace(_ *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	if a.Missing || b.Missing || b.Kind == syntax.EOF {
		return formatter.SpacePreserve, formatter.PriorityForce, true
	}
	return none()
}

// declarationSpace keeps the authored spacing of local declarations when
// csharp_space_around_declaration_statements is ignore.
func declarationSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	if !set.IgnoreDeclarationSpacing() || b.Is(";") {
		return none()
	}
	decl := func(r *syntax.Ref) bool {
		return r.Is(syntax.LocalDeclarationStatement, syntax.VariableDeclaration,
			syntax.VariableDeclarator, syntax.EqualsValueClause)
	}
	if !decl(a.Parent) && !decl(b.Parent) {
		return none()
	}
	stmt := b.Parent
	if !stmt.Is(syntax.LocalDeclarationStatement) {
		stmt = stmt.Ancestor(syntax.LocalDeclarationStatement)
	}
	if stmt == nil || !stmt.Covers(a.Index) {
		return none()
	}
	return formatter.SpacePreserve, formatter.PriorityOption, true
}

// omitted reports whether r is a rank specifier or type argument list
// without sizes or arguments, such as [,] or <,>.
func omitted(r *syntax.Ref) bool {
	return r.Is(syntax.ArrayRankSpecifier, syntax.TypeArgumentList) && len(r.Kids()) == 0
}

func omittedSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	if a.Parent != b.Parent || !omitted(a.Parent) {
		return none()
	}
	if a.Parent.Is(syntax.TypeArgumentList) {
		return structure(formatter.SpaceNone)
	}
	return option(set.Bool(options.SpaceBetweenEmptySquareBrackets))
}

func semicolonSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	switch {
	case b.Is(";") && b.Parent.Is(syntax.EmptyStatement) && a.IsAny(")", "else", "do"):
		// An empty embedded statement stays apart from its header.
		return structure(formatter.SpaceOne)
	case b.Is(";"):
		if b.Parent.Is(syntax.ForStatement) && !a.IsAny("(", ";") {
			return option(set.Bool(options.SpaceBeforeSemicolonsInForStatement))
		}
		return structure(formatter.SpaceNone)
	case a.Is(";") && a.Parent.Is(syntax.ForStatement):
		if b.Is(")") {
			return structure(formatter.SpaceNone)
		}
		return option(set.Bool(options.SpaceAfterSemicolonsInForStatement))
	}
	return none()
}

func commaSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	switch {
	case b.Is(","):
		return option(set.Bool(options.SpaceBeforeComma))
	case a.Is(","):
		switch {
		case b.Is("}"):
			return structure(formatter.SpaceOne)
		case b.IsAny(")", "]"):
			return structure(formatter.SpaceNone)
		}
		return option(set.Bool(options.SpaceAfterComma))
	}
	return none()
}

func castSpace(set *options.Set, a, _ *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	if a.Is(")") && a.Parent.Is(syntax.CastExpression) {
		return option(set.Bool(options.SpaceAfterCast))
	}
	return none()
}

// control reports whether r owns the parentheses after a control flow
// keyword.
func control(r *syntax.Ref) bool {
	return r.Is(syntax.IfStatement, syntax.WhileStatement, syntax.DoStatement, syntax.ForStatement,
		syntax.ForEachStatement, syntax.SwitchStatement, syntax.CatchDeclaration,
		syntax.CatchFilterClause, syntax.FixedStatement, syntax.UsingStatement, syntax.LockStatement)
}

func callArgs(r *syntax.Ref) bool {
	return r.Is(syntax.ArgumentList) && r.Parent.Is(syntax.InvocationExpression,
		syntax.ObjectCreationExpression, syntax.ImplicitObjectCreationExpression,
		syntax.ConstructorInitializer)
}

func declParams(r *syntax.Ref) bool {
	return r.Is(syntax.ParameterList) && r.Parent != nil &&
		(methodLike(r.Parent.Kind) || r.Parent.Kind.IsTypeDeclaration())
}

// within returns the spacing just inside the parentheses owned by r.
func within(set *options.Set, r *syntax.Ref) (formatter.Space, formatter.Priority, bool) {
	parens := set.Flags(options.SpaceBetweenParentheses)
	switch {
	case callArgs(r):
		return option(set.Bool(options.SpaceWithinMethodCallParentheses))
	case declParams(r):
		return option(set.Bool(options.SpaceWithinMethodDeclarationParenthesis))
	case control(r):
		return option(parens.Has(options.ParenControlFlowStatements))
	case r.Is(syntax.ParenthesizedExpression, syntax.ParenthesizedPattern):
		return option(parens.Has(options.ParenExpressions))
	case r.Is(syntax.CastExpression):
		return option(parens.Has(options.ParenTypeCasts))
	}
	return structure(formatter.SpaceNone)
}

func parenSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	switch {
	case a.Is("(") && b.Is(")") && a.Parent == b.Parent:
		switch {
		case callArgs(a.Parent):
			return option(set.Bool(options.SpaceBetweenEmptyMethodCallParentheses))
		case declParams(a.Parent):
			return option(set.Bool(options.SpaceBetweenEmptyMethodDeclarationParentheses))
		}
		return structure(formatter.SpaceNone)
	case a.Is("("):
		return within(set, a.Parent)
	case b.Is(")"):
		return within(set, b.Parent)
	case b.Is("("):
		p := b.Parent
		switch {
		case p.Is(syntax.ArgumentList) && p.Parent.Is(syntax.ImplicitObjectCreationExpression):
			return structure(formatter.SpaceNone)
		case callArgs(p):
			return option(set.Bool(options.SpaceAfterMethodCallName))
		case declParams(p):
			return option(set.Bool(options.SpacingAfterMethodDeclarationName))
		case p.Is(syntax.ParameterList) && p.Parent.Is(syntax.AnonymousMethodExpression):
			return structure(formatter.SpaceOne)
		case control(p):
			return option(set.Bool(options.SpaceAfterControlFlowStatementKeyword))
		case p.Is(syntax.AttributeArgumentList, syntax.TypeOfExpression, syntax.SizeOfExpression,
			syntax.DefaultExpression, syntax.CheckedExpression, syntax.ObjectCreationExpression):
			return structure(formatter.SpaceNone)
		}
	}
	return none()
}

// bracketed reports whether r is a bracket pair governed by the square
// bracket options.
func bracketed(r *syntax.Ref) bool {
	return r.Is(syntax.ArrayRankSpecifier, syntax.BracketedArgumentList, syntax.BracketedParameterList)
}

func bracketSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	switch {
	case b.Is("[") && bracketed(b.Parent):
		if a.Is("?") {
			return structure(formatter.SpaceNone)
		}
		return option(set.Bool(options.SpaceBeforeOpenSquareBracket))
	case a.Is("[") && b.Is("]") && a.Parent == b.Parent:
		if bracketed(a.Parent) {
			return option(set.Bool(options.SpaceBetweenEmptySquareBrackets))
		}
		return structure(formatter.SpaceNone)
	case a.Is("["):
		if bracketed(a.Parent) {
			return option(set.Bool(options.SpaceWithinSquareBrackets))
		}
		return structure(formatter.SpaceNone)
	case b.Is("]"):
		if bracketed(b.Parent) {
			return option(set.Bool(options.SpaceWithinSquareBrackets))
		}
		return structure(formatter.SpaceNone)
	}
	return none()
}

func genericSpace(_ *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	list := func(t *syntax.TokenRef) bool {
		return t.Parent.Is(syntax.TypeArgumentList, syntax.TypeParameterList)
	}
	switch {
	case b.Is("<") && list(b), a.Is("<") && list(a), b.Is(">") && list(b):
		return structure(formatter.SpaceNone)
	case b.Is("?") && b.Parent.Is(syntax.NullableType, syntax.PredefinedType, syntax.ElementAccessExpression),
		b.Is("*") && b.Parent.Is(syntax.PointerType):
		return structure(formatter.SpaceNone)
	}
	return none()
}

func accessSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	dot := func(t *syntax.TokenRef) bool {
		return t.Is(".") && t.Parent.Is(syntax.MemberAccessExpression, syntax.QualifiedName)
	}
	switch {
	case b.IsAny("?.", "->", "::", ".."), a.IsAny("?.", "->", "::", ".."):
		return structure(formatter.SpaceNone)
	case dot(b):
		return option(set.Bool(options.SpaceBeforeDot))
	case dot(a):
		return option(set.Bool(options.SpaceAfterDot))
	}
	return none()
}

// binary reports whether t is the operator of a binary, assignment or
// relational pattern expression.
func binary(t *syntax.TokenRef) bool {
	if t.Kind != syntax.Punctuation {
		return false
	}
	return t.Parent.Is(syntax.BinaryExpression, syntax.AssignmentExpression) ||
		t.Parent.Is(syntax.RelationalPattern) && t.Index == t.Parent.First
}

// keywordOperator reports whether t is a word operator that always keeps
// one space on each side.
func keywordOperator(t *syntax.TokenRef) bool {
	switch {
	case t.IsAny("is", "as", "with"):
		return t.Parent.Is(syntax.BinaryExpression, syntax.IsPatternExpression)
	case t.IsAny("and", "or", "not"):
		return t.Parent.Is(syntax.AndPattern, syntax.OrPattern, syntax.NotPattern)
	}
	return false
}

func binarySpace(set *options.Set) (formatter.Space, formatter.Priority, bool) {
	switch set.BinaryOperators() {
	case options.BinaryRemove:
		return formatter.SpaceNone, formatter.PriorityOption, true
	case options.BinaryIgnore:
		return formatter.SpacePreserve, formatter.PriorityOption, true
	}
	return formatter.SpaceOne, formatter.PriorityOption, true
}

func operatorSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	switch {
	case keywordOperator(a), keywordOperator(b):
		return structure(formatter.SpaceForceOne)
	case binary(a), binary(b):
		return binarySpace(set)
	case a.Parent.Is(syntax.PrefixUnaryExpression) && a.Index == a.Parent.First,
		a.Is("~") && a.Parent.Is(syntax.DestructorDeclaration):
		return structure(formatter.SpaceNone)
	case b.Parent.Is(syntax.PostfixUnaryExpression) && b.Index == b.Parent.Last:
		return structure(formatter.SpaceNone)
	case a.IsAny("?", ":") && a.Parent.Is(syntax.ConditionalExpression),
		b.IsAny("?", ":") && b.Parent.Is(syntax.ConditionalExpression):
		return structure(formatter.SpaceOne)
	case a.Is("=>"), b.Is("=>"):
		return structure(formatter.SpaceOne)
	case a.Is("=") && a.Parent.Is(syntax.EqualsValueClause, syntax.AnonymousObjectMemberDeclarator),
		b.Is("=") && b.Parent.Is(syntax.EqualsValueClause, syntax.AnonymousObjectMemberDeclarator):
		return structure(formatter.SpaceOne)
	}
	return none()
}

// inheritance reports whether t is the colon of a base list, constraint
// clause or constructor initializer.
func inheritance(t *syntax.TokenRef) bool {
	return t.Is(":") && t.Parent.Is(syntax.BaseList, syntax.TypeParameterConstraintClause,
		syntax.ConstructorInitializer)
}

func colonSpace(set *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	switch {
	case inheritance(b):
		return option(set.Bool(options.SpaceBeforeColonInBaseTypeDeclaration))
	case inheritance(a):
		return option(set.Bool(options.SpaceAfterColonInBaseTypeDeclaration))
	case b.Is(":") && b.Parent.Is(syntax.LabeledStatement, syntax.CaseSwitchLabel,
		syntax.CasePatternSwitchLabel, syntax.DefaultSwitchLabel, syntax.NameColon, syntax.AttributeList):
		return structure(formatter.SpaceNone)
	}
	return none()
}

func braceSpace(_ *options.Set, a, b *syntax.TokenRef) (formatter.Space, formatter.Priority, bool) {
	if a.Is("{") || b.IsAny("{", "}") {
		return structure(formatter.SpaceOne)
	}
	return none()
}
