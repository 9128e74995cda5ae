package format

import (
	"testing"

	"github.com/donaldgifford/csfmt/internal/parser"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// markSecond prefixes the leading trivia of the second token with text
// with an elastic marker.
func markSecond(root *syntax.Node, text string) *syntax.Node {
	seen := 0
	return root.Rewrite(func(tok *syntax.Token) *syntax.Token {
		if tok.Text != text {
			return tok
		}
		seen++
		if seen != 2 {
			return tok
		}
		leading := append([]syntax.Trivia{syntax.ElasticMarker}, tok.Leading...)
		return tok.WithLeading(leading)
	})
}

func TestElasticMembers(t *testing.T) {
	input := "class C\n{\n    void A()\n    {\n    }\n    void B()\n    {\n    }\n}\n"

	t.Run("plain gap", func(t *testing.T) {
		if got := run(t, nil, input); got != input {
			t.Errorf("want %q, got %q", input, got)
		}
	})

	t.Run("elastic gap", func(t *testing.T) {
		want := "class C\n{\n    void A()\n    {\n    }\n\n    void B()\n    {\n    }\n}\n"
		root := markSecond(parser.Parse(input), "void")
		if got := runRoot(t, nil, root); got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	})

	t.Run("field after field", func(t *testing.T) {
		src := "class C\n{\n    int a;\n    int b;\n}\n"
		root := markSecond(parser.Parse(src), "int")
		if got := runRoot(t, nil, root); got != src {
			t.Errorf("want %q, got %q", src, got)
		}
	})
}
