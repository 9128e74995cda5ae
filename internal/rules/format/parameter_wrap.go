package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// ParameterWrap puts each parameter or argument of a list on its own line.
type ParameterWrap struct{}

// Name returns the config key for this rule.
func (*ParameterWrap) Name() string {
	return "parameter_wrap"
}

// Provide wraps the items of the parameter or argument list n.
func (*ParameterWrap) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options
	switch {
	case n.Is(syntax.ParameterList, syntax.BracketedParameterList):
		if !set.Bool(options.WrapParameters) {
			return
		}
	case n.Is(syntax.ArgumentList):
		if !set.Bool(options.WrapArguments) {
			return
		}
	default:
		return
	}
	open, close := n.First, n.Last
	if !c.Tok(open).IsAny("(", "[") || !c.Tok(close).IsAny(")", "]") {
		return
	}
	items := n.Kids()
	firstLine := set.Bool(options.NewLineBeforeFirstParameter)
	if len(items) < 2 && !(firstLine && len(items) == 1) {
		return
	}

	relative := func(tok, delta int) {
		ops.Column(formatter.Column{Tok: tok, Base: open, Delta: delta, Mode: formatter.ColumnRelative})
	}
	if firstLine {
		ops.Line(items[0].First, formatter.Exactly(1), formatter.PriorityWrap)
		relative(items[0].First, 1)
		ops.Line(close, formatter.Exactly(1), formatter.PriorityWrap)
		relative(close, 0)
	} else {
		ops.Line(items[0].First, formatter.Exactly(0), formatter.PriorityWrap)
		ops.Line(close, formatter.Exactly(0), formatter.PriorityWrap)
	}
	align := set.Bool(options.AlignWrappedParameters) && !firstLine
	for _, it := range items[1:] {
		ops.Line(it.First, formatter.Exactly(1), formatter.PriorityWrap)
		if align {
			ops.Column(formatter.Column{Tok: it.First, Base: open, Mode: formatter.ColumnAfter})
		} else {
			relative(it.First, 1)
		}
	}
}
