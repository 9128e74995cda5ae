package format

import (
	"slices"

	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// ChainWrap puts every call of a chained method call after the first on
// its own line.
type ChainWrap struct{}

// Name returns the config key for this rule.
func (*ChainWrap) Name() string {
	return "chain_wrap"
}

// Provide wraps the chain that ends at n when n is its outermost call.
func (*ChainWrap) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options
	if !set.Bool(options.WrapChainedMethodCalls) || chainCallee(n) == nil {
		return
	}
	if p := n.Parent; p.Is(syntax.MemberAccessExpression) && p.Kids()[0] == n && chainCallee(p.Parent) == p {
		return
	}

	var dots []int
	cur := n
	for {
		callee := chainCallee(cur)
		if callee == nil {
			break
		}
		toks := callee.ChildTokens()
		if len(toks) == 0 {
			break
		}
		dots = append(dots, toks[0])
		cur = callee.Kids()[0]
	}
	if len(dots) < 2 {
		return
	}
	slices.Reverse(dots)
	delta := boolDelta(set.Bool(options.IndentWrappedChainedMethodCalls))
	for _, d := range dots[1:] {
		ops.Line(d, formatter.Exactly(1), formatter.PriorityWrap)
		ops.Column(formatter.Column{Tok: d, Base: cur.First, Delta: delta, Mode: formatter.ColumnAlign})
	}
}

// chainCallee returns the member access called by the invocation n, or nil.
func chainCallee(n *syntax.Ref) *syntax.Ref {
	if !n.Is(syntax.InvocationExpression) {
		return nil
	}
	kids := n.Kids()
	if len(kids) == 0 || !kids[0].Is(syntax.MemberAccessExpression) || len(kids[0].Kids()) == 0 {
		return nil
	}
	return kids[0]
}
