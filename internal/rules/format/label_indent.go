package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// LabelIndent positions goto labels according to
// csharp_indent_labels.
type LabelIndent struct{}

// Name returns the config key for this rule.
func (*LabelIndent) Name() string {
	return "label_indent"
}

// Provide places the label of a labeled statement and keeps the statement
// after it at the surrounding indentation.
func (*LabelIndent) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	if !n.Is(syntax.LabeledStatement) {
		return
	}
	switch c.Options.Labels() {
	case options.LabelOneLess:
		ops.Indent(formatter.Block(n.First, n.First, -1))
	case options.LabelFlushLeft:
		ops.Indent(formatter.Absolute(n.First, n.First, 0))
	default:
		pin(n.First, ops)
	}
	if s := embedded(n); s != nil {
		pin(s.First, ops)
	}
}
