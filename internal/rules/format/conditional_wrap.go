package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// ConditionalWrap starts every && and || operand of a condition after the
// first on its own line.
type ConditionalWrap struct{}

// Name returns the config key for this rule.
func (*ConditionalWrap) Name() string {
	return "conditional_wrap"
}

// Provide wraps the logical operators of the condition owned by n.
func (*ConditionalWrap) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options
	if !set.Bool(options.WrapConditionalExpressions) {
		return
	}
	cond := condition(c, n)
	if cond == nil {
		return
	}
	var operators []int
	flattenLogical(c, cond, &operators)
	if len(operators) == 0 {
		return
	}
	col := formatter.Column{Base: cond.First, Mode: formatter.ColumnAlign}
	if set.Bool(options.IndentWrappedConditionalExpressions) {
		col = formatter.Column{Base: cond.First, Delta: 1, Mode: formatter.ColumnRelative}
	}
	for _, op := range operators {
		ops.Line(op, formatter.Exactly(1), formatter.PriorityWrap)
		col.Tok = op
		ops.Column(col)
	}
}

// condition returns the condition of a control statement or conditional
// expression, or nil.
func condition(c *formatter.Context, n *syntax.Ref) *syntax.Ref {
	switch {
	case n.Is(syntax.IfStatement, syntax.WhileStatement, syntax.DoStatement):
		return firstOf(between(n, n.Tok(c.Tree, "("), n.LastTok(c.Tree, ")")))
	case n.Is(syntax.ForStatement):
		first := n.Tok(c.Tree, ";")
		second := n.LastTok(c.Tree, ";")
		if first < 0 || second <= first {
			return nil
		}
		return firstOf(between(n, first, second))
	case n.Is(syntax.ConditionalExpression):
		if kids := n.Kids(); len(kids) > 0 {
			return kids[0]
		}
	}
	return nil
}

func firstOf(refs []*syntax.Ref) *syntax.Ref {
	if len(refs) == 0 {
		return nil
	}
	return refs[0]
}

// flattenLogical appends the && and || operators of e in document order.
// A parenthesized operand ends the chain.
func flattenLogical(c *formatter.Context, e *syntax.Ref, out *[]int) {
	if !e.Is(syntax.BinaryExpression) {
		return
	}
	toks := e.ChildTokens()
	kids := e.Kids()
	if len(toks) != 1 || len(kids) != 2 || !c.Tok(toks[0]).IsAny("&&", "||") {
		return
	}
	flattenLogical(c, kids[0], out)
	*out = append(*out, toks[0])
	flattenLogical(c, kids[1], out)
}
