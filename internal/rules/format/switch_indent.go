package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// SwitchIndent indents switch labels and the statements of each section.
type SwitchIndent struct{}

// Name returns the config key for this rule.
func (*SwitchIndent) Name() string {
	return "switch_indent"
}

// Provide emits the indentation of a switch statement body or one of its
// sections.
func (*SwitchIndent) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	set := c.Options
	switch {
	case n.Is(syntax.SwitchStatement):
		open, close, ok := braces(c, n)
		if !ok {
			return
		}
		braceDelta := boolDelta(set.Bool(options.IndentBraces))
		ops.Indent(formatter.Block(open, open, braceDelta))
		ops.Indent(formatter.Block(close, close, braceDelta))
		ops.Indent(formatter.Contents(open, close, boolDelta(set.Bool(options.IndentSwitchSection))))
	case n.Is(syntax.SwitchSection):
		var stmts []*syntax.Ref
		for _, k := range n.Kids() {
			if k.Kind.IsStatement() && !k.Empty() {
				stmts = append(stmts, k)
			}
		}
		if len(stmts) == 0 {
			return
		}
		indent := set.Bool(options.IndentSwitchCaseSection)
		if len(stmts) == 1 && stmts[0].Is(syntax.Block) {
			indent = set.Bool(options.IndentSwitchCaseSectionWhenBlock)
		}
		in := formatter.Block(stmts[0].First, stmts[len(stmts)-1].Last, boolDelta(indent))
		// Comments closing the last section sit with its statements.
		if _, close, ok := braces(c, n.Parent); ok && n.Last+1 == close {
			in.Close = close
		}
		ops.Indent(in)
	}
}
