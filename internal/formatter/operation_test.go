package formatter

import (
	"testing"

	"github.com/go-logr/logr"
)

func TestSpaceResolution(t *testing.T) {
	type cand struct {
		s Space
		p Priority
	}
	tests := []struct {
		name  string
		cands []cand
		want  Space
	}{
		{"single", []cand{{SpaceNone, PriorityDefault}}, SpaceNone},
		{"higher priority wins", []cand{{SpaceNone, PriorityOption}, {SpaceOne, PriorityDefault}}, SpaceNone},
		{"tie goes to later", []cand{{SpaceNone, PriorityOption}, {SpaceOne, PriorityOption}}, SpaceOne},
		{"force beats lower", []cand{{SpaceForceOne, PriorityOption}, {SpaceNone, PriorityStructure}}, SpaceForceOne},
		{"force beats equal", []cand{{SpaceForceOne, PriorityOption}, {SpaceNone, PriorityOption}}, SpaceForceOne},
		{"force beats preserve", []cand{{SpaceForceOne, PriorityDefault}, {SpacePreserve, PriorityWrap}}, SpaceForceOne},
		{"late force beats preserve", []cand{{SpacePreserve, PriorityWrap}, {SpaceForceOne, PriorityDefault}}, SpaceForceOne},
		{"higher beats force", []cand{{SpaceForceOne, PriorityStructure}, {SpaceNone, PriorityForce}}, SpaceNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOps(3, false, logr.Discard())
			for _, c := range tt.cands {
				o.Space(1, c.s, c.p)
			}
			if got := o.space[1].space; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLineApply(t *testing.T) {
	tests := []struct {
		line Line
		orig int
		want int
	}{
		{Preserve(), 0, 0},
		{Preserve(), 3, 3},
		{AtLeast(1), 0, 1},
		{AtLeast(1), 2, 2},
		{Exactly(1), 3, 1},
		{Exactly(0), 2, 0},
	}
	for _, tt := range tests {
		if got := tt.line.apply(tt.orig); got != tt.want {
			t.Errorf("%v.apply(%d) = %d, want %d", tt.line, tt.orig, got, tt.want)
		}
	}
}

func TestOpsIgnoreOutOfRange(t *testing.T) {
	o := newOps(3, true, logr.Discard())
	o.Space(0, SpaceOne, PriorityForce)
	o.Space(3, SpaceOne, PriorityForce)
	o.Line(-1, Exactly(1), PriorityForce)
	o.Indent(Block(-1, 2, 1))
	o.Anchor(1, 1)
	o.Suppress(2, 1, NoWrap)
	if o.space[0].set || o.space[3].set {
		t.Error("space set outside the gaps between tokens")
	}
	if len(o.indents) != 0 || len(o.anchors) != 0 || len(o.suppress) != 0 {
		t.Errorf("kept invalid ranges: %d indents, %d anchors, %d suppressions",
			len(o.indents), len(o.anchors), len(o.suppress))
	}
	if o.err != nil {
		t.Errorf("missing tokens must not fail strict mode: %v", o.err)
	}
}

func TestIndentation(t *testing.T) {
	tests := []struct {
		col     int
		useTabs bool
		want    string
	}{
		{0, false, ""},
		{6, false, "      "},
		{8, true, "\t\t"},
		{6, true, "\t  "},
	}
	for _, tt := range tests {
		if got := indentation(tt.col, tt.useTabs, 4); got != tt.want {
			t.Errorf("indentation(%d, %v) = %q, want %q", tt.col, tt.useTabs, got, tt.want)
		}
	}
}

func TestColumnAt(t *testing.T) {
	text := "ab\n\tx\n日本y"
	tests := []struct {
		off  int
		want int
	}{
		{1, 1},
		{3, 0},
		{4, 4},
		{len("ab\n\tx\n日本"), 4},
	}
	for _, tt := range tests {
		if got := columnAt(text, tt.off, 4); got != tt.want {
			t.Errorf("columnAt(%d) = %d, want %d", tt.off, got, tt.want)
		}
	}
}
