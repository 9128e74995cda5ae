package formatter

import (
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// Provider emits candidate operations for one node. Providers are consulted
// in registration order for every node of the tree in pre-order, so a later
// provider wins ties against an earlier one. Providers must be pure: the
// same node and options always yield the same operations.
type Provider interface {
	// Name identifies the provider in logs and listings.
	Name() string

	// Provide adds the operations for node n to ops.
	Provide(c *Context, n *syntax.Ref, ops *Ops)
}

// Context is the read-only view a provider gets of the tree being formatted.
type Context struct {
	Tree    *syntax.Tree
	Options *options.Set

	breaks []int // original line breaks per gap
	cols   []int // original column per token
}

func newContext(tree *syntax.Tree, set *options.Set) *Context {
	n := tree.Len()
	c := &Context{Tree: tree, Options: set, breaks: make([]int, n+1), cols: make([]int, n)}
	text := tree.Text()
	for i := 0; i <= n; i++ {
		c.breaks[i] = syntax.CountLineBreaks(text[gapStart(tree, i):gapEnd(tree, i)])
	}
	for i := range n {
		c.cols[i] = columnAt(text, tree.Tokens[i].Pos, set.TabWidth())
	}
	return c
}

// Tok returns the token at index i, or nil.
func (c *Context) Tok(i int) *syntax.TokenRef { return c.Tree.At(i) }

// Is reports whether token i has the given text.
func (c *Context) Is(i int, text string) bool {
	t := c.Tree.At(i)
	return t != nil && t.Is(text)
}

// Breaks returns the number of line breaks the author wrote before token i.
func (c *Context) Breaks(i int) int {
	if i < 0 || i >= len(c.breaks) {
		return 0
	}
	return c.breaks[i]
}

// StartsLine reports whether token i began a line in the original text.
func (c *Context) StartsLine(i int) bool {
	return i == 0 || c.Breaks(i) > 0
}

// SingleLine reports whether tokens first..last were written on one line.
func (c *Context) SingleLine(first, last int) bool {
	for i := first + 1; i <= last; i++ {
		if c.Breaks(i) > 0 {
			return false
		}
		if t := c.Tree.At(i); t != nil && syntax.CountLineBreaks(t.Text) > 0 {
			return false
		}
	}
	return true
}

// Elastic reports whether the gap before token i holds elastic trivia.
func (c *Context) Elastic(i int) bool {
	if i <= 0 || i >= c.Tree.Len() {
		return false
	}
	return syntax.HasElastic(c.Tree.Tokens[i-1].Trailing) || syntax.HasElastic(c.Tree.Tokens[i].Leading)
}

// Column returns the original column of token i.
func (c *Context) Column(i int) int {
	if i < 0 || i >= len(c.cols) {
		return 0
	}
	return c.cols[i]
}

// gapStart returns the offset where the gap before token i begins.
func gapStart(t *syntax.Tree, i int) int {
	if i == 0 {
		return 0
	}
	return t.Tokens[i-1].End
}

// gapEnd returns the offset where the gap before token i ends.
func gapEnd(t *syntax.Tree, i int) int {
	if i == t.Len() {
		return len(t.Text())
	}
	return t.Tokens[i].Pos
}
