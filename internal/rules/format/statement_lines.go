package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// StatementLines starts every statement, member, directive and switch label
// on a line of its own. Statements and members written on one line stay
// there under csharp_preserve_single_line_statements. Initializer elements
// keep their authored lines.
type StatementLines struct{}

// Name returns the config key for this rule.
func (*StatementLines) Name() string {
	return "statement_lines"
}

// Provide emits line operations for the items listed directly in n.
func (*StatementLines) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	keep := c.Options.Bool(options.WrappingKeepStatementsOnSingleLine)
	// own starts k on a new line unless k may share the line it was written on.
	own := func(k *syntax.Ref, shared bool) {
		if shared && keep && !c.StartsLine(k.First) {
			return
		}
		ops.Line(k.First, formatter.AtLeast(1), formatter.PriorityStructure)
	}

	switch {
	case n.Is(syntax.EnumDeclaration), collection(n):
		return
	case n.Is(syntax.SwitchSection):
		for _, k := range n.Kids() {
			own(k, k.Kind.IsStatement())
		}
		return
	case n.Is(syntax.AccessorList):
		open, _, ok := braces(c, n)
		if !ok {
			return
		}
		for _, k := range items(c, n) {
			if k.First > open+1 {
				own(k, true)
			}
		}
		return
	case n.Is(syntax.LabeledStatement):
		if s := embedded(n); s != nil {
			own(s, true)
		}
		return
	}

	if s := embedded(n); s != nil && !s.Is(syntax.Block) && !(n.Is(syntax.ElseClause) && s.Is(syntax.IfStatement)) {
		own(s, true)
	}

	open, _, hasBraces := braces(c, n)
	for _, k := range items(c, n) {
		switch {
		case k.First == 0:
		case hasBraces && k.First == open+1:
		case k.Is(syntax.UsingDirective, syntax.ExternAliasDirective):
			ops.Line(k.First, formatter.AtLeast(1), formatter.PriorityStructure)
		default:
			own(k, k.Kind.IsStatement() || k.Kind.IsMember())
		}
	}
}
