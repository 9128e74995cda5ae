package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// BracePlacement puts braces and the keywords that follow a closing brace
// on their own line or keeps them on the line before.
type BracePlacement struct{}

// Name returns the config key for this rule.
func (*BracePlacement) Name() string {
	return "brace_placement"
}

// Provide emits line operations for the braces owned by n and for else,
// catch, finally and the while of a do statement.
func (*BracePlacement) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options
	switch {
	case n.Is(syntax.ElseClause):
		follow(c, n.First, set.Bool(options.NewLineForElse), ops)
		if s := embedded(n); s.Is(syntax.IfStatement) {
			ops.Line(s.First, formatter.Exactly(0), formatter.PriorityStructure)
		}
	case n.Is(syntax.CatchClause):
		follow(c, n.First, set.Bool(options.NewLineForCatch), ops)
	case n.Is(syntax.FinallyClause):
		follow(c, n.First, set.Bool(options.NewLineForFinally), ops)
	case n.Is(syntax.DoStatement):
		w := n.LastTok(c.Tree, "while")
		switch {
		case w < 0:
		case embedded(n).Is(syntax.Block):
			// A body kept as { } leaves while where it was written.
			if body := embedded(n); !set.Bool(options.WrappingPreserveSingleLine) || !c.SingleLine(body.First, body.Last) {
				ops.Line(w, formatter.Exactly(0), formatter.PriorityStructure)
			}
		default:
			ops.Line(w, formatter.AtLeast(1), formatter.PriorityStructure)
		}
	}

	if collection(n) {
		collectionBraces(c, n, ops)
		return
	}
	open, close, ok := braces(c, n)
	if !ok {
		return
	}
	if kind, ok := braceKind(n); ok && !item(c, n, open) {
		l := formatter.Exactly(0)
		if set.Braces().Has(kind) {
			l = formatter.Exactly(1)
		}
		ops.Line(open, l, formatter.PriorityOption)
	}
	if close > open+1 {
		ops.Line(open+1, formatter.AtLeast(1), formatter.PriorityStructure)
		ops.Line(close, formatter.AtLeast(1), formatter.PriorityStructure)
	} else if !set.Bool(options.WrappingPreserveSingleLine) {
		ops.Line(close, formatter.AtLeast(1), formatter.PriorityStructure)
	}
}

// follow places a keyword that may follow a closing brace.
func follow(c *formatter.Context, kw int, newLine bool, ops *formatter.Ops) {
	if !c.Is(kw-1, "}") {
		ops.Line(kw, formatter.AtLeast(1), formatter.PriorityStructure)
		return
	}
	l := formatter.Exactly(0)
	if newLine {
		l = formatter.Exactly(1)
	}
	ops.Line(kw, l, formatter.PriorityOption)
}

// item reports whether the block n is itself a statement of a list, so its
// open brace starts a line for that reason alone. A block right after a
// case label is the body of the section.
func item(c *formatter.Context, n *syntax.Ref, open int) bool {
	if !n.Is(syntax.Block) {
		return false
	}
	if n.Parent.Is(syntax.SwitchSection) {
		return !c.Is(open-1, ":")
	}
	return n.Parent.Is(syntax.Block, syntax.CompilationUnit)
}

func collectionBraces(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options
	open, close, ok := opener(c, n)
	if !ok {
		return
	}
	if kind, ok := braceKind(n); ok && c.Is(open, "{") {
		l := formatter.Exactly(0)
		if set.Braces().Has(kind) {
			l = formatter.Exactly(1)
		}
		ops.Line(open, l, formatter.PriorityOption)
	}
	if c.SingleLine(open, close) || elements(n) {
		return
	}
	if close > open+1 {
		ops.Line(open+1, formatter.AtLeast(1), formatter.PriorityStructure)
	}
	ops.Line(close, formatter.AtLeast(1), formatter.PriorityStructure)

	var perMember bool
	switch {
	case n.Is(syntax.AnonymousObjectCreationExpression):
		perMember = set.Bool(options.NewLineForMembersInAnonymousTypes)
	case n.Is(syntax.InitializerExpression):
		perMember = set.Bool(options.NewLineForMembersInObjectInit) && objectInitializer(n)
	case n.Is(syntax.SwitchExpression):
		perMember = true
	}
	if !perMember {
		return
	}
	for _, i := range n.ChildTokens() {
		if c.Is(i, ",") && i+1 < close {
			ops.Line(i+1, formatter.AtLeast(1), formatter.PriorityOption)
		}
	}
}

// elements reports whether n lists collection or array elements. Their
// authored line breaks are kept.
func elements(n *syntax.Ref) bool {
	return n.Is(syntax.InitializerExpression) && !objectInitializer(n)
}

// objectInitializer reports whether the initializer n assigns members
// rather than listing collection elements.
func objectInitializer(n *syntax.Ref) bool {
	kids := n.Kids()
	return len(kids) > 0 && kids[0].Is(syntax.AssignmentExpression)
}
