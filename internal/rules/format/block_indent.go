package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// BlockIndent indents the contents of braced bodies, collections and
// embedded statements, and anchors the continuation lines of every
// statement and member to its first token.
type BlockIndent struct{}

// Name returns the config key for this rule.
func (*BlockIndent) Name() string {
	return "block_indent"
}

// Provide emits the indentation ranges and anchors owned by n.
func (*BlockIndent) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options
	braceDelta := boolDelta(set.Bool(options.IndentBraces))

	switch {
	case bodyBraces(n):
		if open, close, ok := braces(c, n); ok {
			ops.Indent(formatter.Block(open, open, braceDelta))
			ops.Indent(formatter.Block(close, close, braceDelta))
			delta := 1
			if n.Is(syntax.Block) {
				delta = boolDelta(set.Bool(options.IndentBlock))
			}
			ops.Indent(formatter.Contents(open, close, delta))
		}
	case inLambda(n):
		if open, close, ok := braces(c, n); ok {
			// A brace the author put on its own line keeps its offset from
			// the statement and the body follows it.
			if !c.StartsLine(open) {
				ops.Indent(formatter.Relative(open, open, n.Parent.First, braceDelta))
			}
			in := formatter.Relative(open+1, close-1, open, boolDelta(set.Bool(options.IndentBlock)))
			in.Close = close
			ops.Indent(in)
			ops.Indent(formatter.Relative(close, close, open, 0))
		}
	case collection(n):
		collectionIndent(c, n, ops)
	}

	if s := embedded(n); s != nil && !s.Is(syntax.Block) && !n.Is(syntax.LabeledStatement) && !stacked(n, s) {
		ops.Indent(formatter.Block(s.First, s.Last, 1))
	}

	switch {
	case n.Is(syntax.ElseClause, syntax.CatchClause, syntax.FinallyClause):
		pin(n.First, ops)
	case n.Is(syntax.DoStatement):
		if w := n.LastTok(c.Tree, "while"); w >= 0 {
			pin(w, ops)
		}
	}

	member := n.Kind.IsMember() || n.Is(syntax.AccessorDeclaration)
	if member {
		pinAttributes(n, ops)
	}
	if member || n.Is(syntax.UsingDirective) || (n.Kind.IsStatement() && !n.Is(syntax.Block)) {
		ops.Anchor(n.First, n.Last)
	}
}

// pin keeps token t at the indentation of the range around it.
func pin(t int, ops *formatter.Ops) {
	ops.Indent(formatter.Block(t, t, 0))
}

// pinAttributes pins each attribute list of a declaration and the first
// token after them.
func pinAttributes(n *syntax.Ref, ops *formatter.Ops) {
	after := -1
	for _, k := range n.Kids() {
		if !k.Is(syntax.AttributeList) {
			break
		}
		pin(k.First, ops)
		after = k.Last + 1
	}
	if after > 0 && after <= n.Last {
		pin(after, ops)
	}
}

// collectionBase returns the first token of the expression that introduces
// the collection n, or -1 when n stands alone.
func collectionBase(n *syntax.Ref) int {
	switch {
	case n.Is(syntax.AnonymousObjectCreationExpression, syntax.SwitchExpression):
		return n.First
	case n.Is(syntax.InitializerExpression):
		if n.Parent.Is(syntax.ObjectCreationExpression, syntax.ImplicitObjectCreationExpression,
			syntax.ArrayCreationExpression, syntax.ImplicitArrayCreationExpression,
			syntax.StackAllocArrayCreationExpression) {
			return n.Parent.First
		}
	case n.Is(syntax.PropertyPatternClause):
		if n.Parent != nil {
			return n.Parent.First
		}
	}
	return -1
}

func collectionIndent(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	open, close, ok := opener(c, n)
	if !ok {
		return
	}
	if base := collectionBase(n); base >= 0 && base < open && c.Is(open, "{") {
		ops.Indent(formatter.Relative(open, open, base, 0))
		ops.Indent(formatter.Relative(close, close, base, 0))
	} else {
		ops.Indent(formatter.Relative(close, close, open, 0))
	}
	in := formatter.Relative(open+1, close-1, open, 1)
	in.Close = close
	ops.Indent(in)
}
