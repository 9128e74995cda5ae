package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// ElasticMembers separates generated members that follow a braced member
// with a blank line.
type ElasticMembers struct{}

// Name returns the config key for this rule.
func (*ElasticMembers) Name() string {
	return "elastic_members"
}

// Provide emits a blank line before each member of n whose gap is elastic
// and whose previous member ends with a closing brace.
func (*ElasticMembers) Provide(c *formatter.Context, n *syntax.Ref, ops *formatter.Ops) {
	if n.Is(syntax.EnumDeclaration) {
		return
	}
	for _, k := range items(c, n) {
		if !k.Kind.IsMember() || k.First == 0 {
			continue
		}
		if c.Is(k.First-1, "}") && c.Elastic(k.First) {
			ops.Line(k.First, formatter.AtLeast(2), formatter.PriorityStructure)
		}
	}
}
