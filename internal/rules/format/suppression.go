package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// Suppression keeps constructs written on a single line on that line and
// keeps the authored line breaks of initializers that are not wrapped per
// member.
type Suppression struct{}

// Name returns the config key for this rule.
func (*Suppression) Name() string {
	return "suppression"
}

// Provide emits the suppression ranges owned by n.
func (*Suppression) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options

	if collection(n) {
		open, close, ok := opener(c, n)
		if !ok {
			return
		}
		if c.SingleLine(open, close) {
			from := open
			if c.Is(open, "{") && open > 0 {
				from = open - 1
			}
			ops.Suppress(from, close, formatter.NoWrap)
			return
		}
		switch {
		case n.Is(syntax.InitializerExpression) && objectInitializer(n) &&
			!set.Bool(options.NewLineForMembersInObjectInit):
			ops.Suppress(open, close, formatter.KeepLines)
		case n.Is(syntax.AnonymousObjectCreationExpression) &&
			!set.Bool(options.NewLineForMembersInAnonymousTypes):
			ops.Suppress(open, close, formatter.KeepLines)
		}
		return
	}

	if set.Bool(options.WrappingKeepStatementsOnSingleLine) && keepable(n) && c.SingleLine(n.First, n.Last) {
		ops.Suppress(n.First, n.Last, formatter.NoWrap)
	}

	if !set.Bool(options.WrappingPreserveSingleLine) {
		return
	}
	if !bodyBraces(n) && !inLambda(n) && !n.Is(syntax.SwitchStatement) {
		return
	}
	open, close, ok := braces(c, n)
	if !ok || !c.SingleLine(open, close) {
		return
	}
	// The range starts at the token that owns the body so the brace stays
	// on its line too.
	from := open
	switch d := declaration(n); {
	case d != nil:
		from = d.First
	case n.Is(syntax.SwitchStatement):
		from = n.First
	case n.Is(syntax.Block) && open > 0 && !item(c, n, open):
		from = open - 1
	}
	ops.Suppress(from, close, formatter.NoWrap)
}

// keepable reports whether n stays on one line under
// csharp_preserve_single_line_statements when written that way.
func keepable(n *syntax.Ref) bool {
	return n.Kind.IsLambda() || n.Is(syntax.IfStatement, syntax.ElseClause, syntax.WhileStatement,
		syntax.ForStatement, syntax.ForEachStatement, syntax.UsingStatement, syntax.LockStatement,
		syntax.FixedStatement, syntax.DoStatement, syntax.TryStatement, syntax.CatchClause,
		syntax.FinallyClause)
}
