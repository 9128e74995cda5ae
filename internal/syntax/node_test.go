package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds `x = 1;` with a leading comment and trailing newline.
func sample() *Node {
	x := &Token{Kind: Identifier, Text: "x", Leading: []Trivia{
		{Kind: SingleLineComment, Text: "// c"},
		{Kind: EndOfLine, Text: "\n"},
	}, Trailing: []Trivia{{Kind: Whitespace, Text: " "}}}
	eq := &Token{Kind: Punctuation, Text: "=", Trailing: []Trivia{{Kind: Whitespace, Text: " "}}}
	one := &Token{Kind: NumericLiteral, Text: "1"}
	semi := &Token{Kind: Punctuation, Text: ";", Trailing: []Trivia{{Kind: EndOfLine, Text: "\n"}}}
	assign := NewNode(AssignmentExpression, NewNode(IdentifierName, x), eq, NewNode(LiteralExpression, one))
	return NewNode(ExpressionStatement, assign, semi)
}

func TestFullTextRoundTrip(t *testing.T) {
	t.Parallel()

	n := sample()
	assert.Equal(t, "// c\nx = 1;\n", n.FullText())
	assert.Equal(t, "x", n.FirstToken().Text)
	assert.Equal(t, ";", n.LastToken().Text)
}

func TestRewriteSharesUnchangedSubtrees(t *testing.T) {
	t.Parallel()

	n := sample()
	same := n.Rewrite(func(tok *Token) *Token { return tok })
	assert.Same(t, n, same)

	changed := n.Rewrite(func(tok *Token) *Token {
		if tok.Is(";") {
			return tok.WithTrailing(nil)
		}
		return tok
	})
	require.NotSame(t, n, changed)
	assert.Equal(t, "// c\nx = 1;", changed.FullText())
	// The assignment subtree did not change and is shared.
	assert.Same(t, n.Children[0], changed.Children[0])
	assert.Equal(t, "// c\nx = 1;\n", n.FullText(), "input tree must not change")
}

func TestTreeOffsets(t *testing.T) {
	t.Parallel()

	tree := NewTree(sample())
	require.Equal(t, 4, tree.Len())

	x := tree.At(0)
	assert.Equal(t, 0, x.Start)
	assert.Equal(t, 5, x.Pos)
	assert.Equal(t, 6, x.End)
	assert.Equal(t, 7, x.FullEnd)
	assert.Equal(t, IdentifierName, x.Parent.Kind)

	semi := tree.At(3)
	assert.Equal(t, 10, semi.Pos)
	assert.Equal(t, len(tree.Text()), semi.FullEnd)
	assert.Nil(t, tree.At(4))

	assert.Equal(t, 0, tree.Root.First)
	assert.Equal(t, 3, tree.Root.Last)
	assert.Equal(t, 3, tree.Root.Tok(tree, ";"))
	assert.Equal(t, -1, tree.Root.Tok(tree, "="))
	assign := tree.Root.Child(AssignmentExpression)
	require.NotNil(t, assign)
	assert.Equal(t, 1, assign.Tok(tree, "="))
	assert.Equal(t, tree.Root, assign.Ancestor(ExpressionStatement))
}

func TestSharedTokenGetsDistinctIndices(t *testing.T) {
	t.Parallel()

	comma := NewToken(Punctuation, ",")
	a := NewNode(IdentifierName, NewToken(Identifier, "a"))
	n := NewNode(ArgumentList, NewToken(Punctuation, "("), a, comma, a, comma, a, NewToken(Punctuation, ")"))
	tree := NewTree(n)

	require.Equal(t, 7, tree.Len())
	assert.Equal(t, "(a,a,a)", tree.Text())
	assert.Equal(t, 2, tree.At(2).Index)
	assert.Equal(t, 4, tree.At(4).Index)
}

func TestCategoriesAreTotal(t *testing.T) {
	t.Parallel()

	for kind, name := range kindNames {
		c := kind.Category()
		if kind == IncompleteMember || kind == SkippedTokens {
			assert.Equal(t, CategoryError, c, name)
			continue
		}
		assert.NotEqual(t, CategoryError, c, "%s has no category", name)
	}
}

func TestCountLineBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"\n", 1},
		{"\r\n", 1},
		{"\r", 1},
		{"a\r\n\nb\r", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountLineBreaks(tt.in), "%q", tt.in)
	}
}
