package syntax

import "strings"

// Tree is a positioned, indexed view over a node. Token indices follow
// document order and offsets are byte offsets into the node's full text.
// The same *Token may occur more than once in a shared tree; every occurrence
// gets its own index.
type Tree struct {
	Root   *Ref
	Tokens []TokenRef
	text   string
}

// TokenRef is one token occurrence inside a Tree.
type TokenRef struct {
	*Token
	Index  int
	Parent *Ref

	Start   int // first leading trivia byte
	Pos     int // first text byte
	End     int // just past the text
	FullEnd int // just past the trailing trivia
}

// Ref is one node occurrence inside a Tree.
type Ref struct {
	*Node
	Parent *Ref
	Elems  []Child

	// First and Last are the inclusive token index range; Last < First for an empty node.
	First, Last int
}

// Child is a positioned child of a Ref: a node when Node is non-nil,
// otherwise the token at index Tok.
type Child struct {
	Node *Ref
	Tok  int
}

// NewTree indexes root.
func NewTree(root *Node) *Tree {
	t := &Tree{}
	var b strings.Builder
	t.Root = t.index(root, nil, &b)
	t.text = b.String()
	return t
}

func (t *Tree) index(n *Node, parent *Ref, b *strings.Builder) *Ref {
	r := &Ref{Node: n, Parent: parent, First: len(t.Tokens)}
	r.Elems = make([]Child, 0, len(n.Children))
	for _, c := range n.Children {
		switch v := c.(type) {
		case *Token:
			tr := TokenRef{Token: v, Index: len(t.Tokens), Parent: r, Start: b.Len()}
			for _, tv := range v.Leading {
				b.WriteString(tv.Text)
			}
			tr.Pos = b.Len()
			b.WriteString(v.Text)
			tr.End = b.Len()
			for _, tv := range v.Trailing {
				b.WriteString(tv.Text)
			}
			tr.FullEnd = b.Len()
			t.Tokens = append(t.Tokens, tr)
			r.Elems = append(r.Elems, Child{Tok: tr.Index})
		case *Node:
			r.Elems = append(r.Elems, Child{Node: t.index(v, r, b)})
		}
	}
	r.Last = len(t.Tokens) - 1
	return r
}

// Text returns the full text of the tree.
func (t *Tree) Text() string { return t.text }

// Len returns the number of tokens.
func (t *Tree) Len() int { return len(t.Tokens) }

// At returns the token at index i, or nil when i is out of range.
func (t *Tree) At(i int) *TokenRef {
	if i < 0 || i >= len(t.Tokens) {
		return nil
	}
	return &t.Tokens[i]
}

// Walk visits every node in pre-order. Returning false from fn skips the
// node's children.
func (t *Tree) Walk(fn func(*Ref) bool) {
	var visit func(*Ref)
	visit = func(r *Ref) {
		if !fn(r) {
			return
		}
		for _, c := range r.Elems {
			if c.Node != nil {
				visit(c.Node)
			}
		}
	}
	visit(t.Root)
}

// Is reports whether r is one of kinds.
func (r *Ref) Is(kinds ...NodeKind) bool {
	if r == nil {
		return false
	}
	for _, k := range kinds {
		if r.Kind == k {
			return true
		}
	}
	return false
}

// ParentIs reports whether r's parent is one of kinds.
func (r *Ref) ParentIs(kinds ...NodeKind) bool {
	return r != nil && r.Parent.Is(kinds...)
}

// Empty reports whether r has no tokens.
func (r *Ref) Empty() bool { return r.Last < r.First }

// Covers reports whether token index i lies within r.
func (r *Ref) Covers(i int) bool { return i >= r.First && i <= r.Last }

// Tok returns the index of the first direct child token with the given text, or -1.
func (r *Ref) Tok(tree *Tree, text string) int {
	for _, c := range r.Elems {
		if c.Node == nil && tree.Tokens[c.Tok].Is(text) {
			return c.Tok
		}
	}
	return -1
}

// LastTok returns the index of the last direct child token with the given text, or -1.
func (r *Ref) LastTok(tree *Tree, text string) int {
	for i := len(r.Elems) - 1; i >= 0; i-- {
		c := r.Elems[i]
		if c.Node == nil && tree.Tokens[c.Tok].Is(text) {
			return c.Tok
		}
	}
	return -1
}

// Child returns the first direct child node of one of kinds, or nil.
func (r *Ref) Child(kinds ...NodeKind) *Ref {
	for _, c := range r.Elems {
		if c.Node != nil && c.Node.Is(kinds...) {
			return c.Node
		}
	}
	return nil
}

// Kids returns the direct child nodes of r.
func (r *Ref) Kids() []*Ref {
	var out []*Ref
	for _, c := range r.Elems {
		if c.Node != nil {
			out = append(out, c.Node)
		}
	}
	return out
}

// ChildTokens returns the indices of r's direct child tokens.
func (r *Ref) ChildTokens() []int {
	var out []int
	for _, c := range r.Elems {
		if c.Node == nil {
			out = append(out, c.Tok)
		}
	}
	return out
}

// Ancestor returns the nearest ancestor of r (excluding r) of one of kinds, or nil.
func (r *Ref) Ancestor(kinds ...NodeKind) *Ref {
	for p := r.Parent; p != nil; p = p.Parent {
		if p.Is(kinds...) {
			return p
		}
	}
	return nil
}
