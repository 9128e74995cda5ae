package formatter

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// ErrAnchor reports an indentation, anchor or column operation whose base
// token does not precede the range it governs.
var ErrAnchor = errors.New("anchor does not precede its range")

// Priority orders candidates for the same gap. Higher wins; equal
// priorities go to the later candidate.
type Priority int

const (
	// PriorityDefault is the generic fallback of a provider.
	PriorityDefault Priority = iota
	// PriorityStructure is a rule derived from the construct alone.
	PriorityStructure
	// PriorityOption is a rule controlled by an option.
	PriorityOption
	// PriorityWrap is a wrapping rule.
	PriorityWrap
	// PriorityForce cannot be overridden.
	PriorityForce
)

// Space is the horizontal spacing of a gap whose tokens share a line.
type Space int

const (
	// SpacePreserve keeps the authored whitespace.
	SpacePreserve Space = iota
	// SpaceNone joins the tokens.
	SpaceNone
	// SpaceOne puts one space between the tokens.
	SpaceOne
	// SpaceForceOne puts one space between the tokens and beats every
	// candidate of lower priority and every SpacePreserve.
	SpaceForceOne
)

func (s Space) String() string {
	switch s {
	case SpacePreserve:
		return "preserve"
	case SpaceNone:
		return "none"
	case SpaceOne:
		return "one"
	case SpaceForceOne:
		return "force-one"
	}
	return fmt.Sprintf("Space(%d)", int(s))
}

// LineKind selects how Line.Count is applied.
type LineKind int

const (
	// LinePreserve keeps the authored number of line breaks.
	LinePreserve LineKind = iota
	// LineAtLeast keeps at least Count line breaks.
	LineAtLeast
	// LineExactly writes exactly Count line breaks.
	LineExactly
)

// Line is the vertical spacing of a gap, counted in line breaks: one break
// starts a new line, two leave a blank line.
type Line struct {
	Kind  LineKind
	Count int
}

// Preserve keeps the authored line breaks.
func Preserve() Line { return Line{} }

// AtLeast keeps at least n line breaks.
func AtLeast(n int) Line { return Line{Kind: LineAtLeast, Count: n} }

// Exactly writes n line breaks. Exactly(0) keeps the tokens on one line.
func Exactly(n int) Line { return Line{Kind: LineExactly, Count: n} }

// apply returns the break count for a gap that had orig breaks.
func (l Line) apply(orig int) int {
	switch l.Kind {
	case LineAtLeast:
		return max(orig, l.Count)
	case LineExactly:
		return l.Count
	}
	return orig
}

func (l Line) String() string {
	switch l.Kind {
	case LineAtLeast:
		return fmt.Sprintf("at-least(%d)", l.Count)
	case LineExactly:
		return fmt.Sprintf("exactly(%d)", l.Count)
	}
	return "preserve"
}

// IndentMode selects how an Indent computes its column.
type IndentMode int

const (
	// IndentBlock adds Delta units to the column of the enclosing indent range.
	IndentBlock IndentMode = iota
	// IndentRelative adds Delta units to the indentation of Base's line.
	IndentRelative
	// IndentAlign adds Delta units to the column of Base.
	IndentAlign
	// IndentAbsolute places lines at Delta units.
	IndentAbsolute
)

// Indent sets the column of the tokens First..Last that start a line.
type Indent struct {
	First, Last int
	Base        int
	Delta       int
	Mode        IndentMode

	// Close is the closing brace after the range when the range is the
	// contents of a braced body, otherwise -1. Comments on their own line
	// before Close take the column of the contents.
	Close int

	seq int
	col int
	set bool
}

// Block returns a Block indent over first..last.
func Block(first, last, delta int) Indent {
	return Indent{First: first, Last: last, Base: -1, Delta: delta, Mode: IndentBlock, Close: -1}
}

// Contents returns a Block indent over the tokens between the braces open
// and close.
func Contents(open, close, delta int) Indent {
	return Indent{First: open + 1, Last: close - 1, Base: -1, Delta: delta, Mode: IndentBlock, Close: close}
}

// Relative returns an indent over first..last at delta units past the
// indentation of base's line.
func Relative(first, last, base, delta int) Indent {
	return Indent{First: first, Last: last, Base: base, Delta: delta, Mode: IndentRelative, Close: -1}
}

// Absolute returns an indent over first..last at a fixed column of delta units.
func Absolute(first, last, delta int) Indent {
	return Indent{First: first, Last: last, Base: -1, Delta: delta, Mode: IndentAbsolute, Close: -1}
}

// ColumnMode selects how a Column computes its column.
type ColumnMode int

const (
	// ColumnAlign places the token at the column of Base plus Delta units.
	ColumnAlign ColumnMode = iota
	// ColumnAfter places the token just past the text of Base.
	ColumnAfter
	// ColumnRelative places the token at the indentation of Base's line plus Delta units.
	ColumnRelative
)

// Column places one token that starts a line.
type Column struct {
	Tok   int
	Base  int
	Delta int
	Mode  ColumnMode
}

// SuppressKind selects what a Suppress prevents.
type SuppressKind int

const (
	// NoWrap prevents line breaks where the author wrote none.
	NoWrap SuppressKind = iota
	// KeepLines prevents removing authored line breaks.
	KeepLines
)

// Suppress covers the gaps strictly inside First..Last.
type Suppress struct {
	First, Last int
	Kind        SuppressKind
}

type spaceCand struct {
	space Space
	prio  Priority
	seq   int
	set   bool
}

type lineCand struct {
	line Line
	prio Priority
	seq  int
	set  bool
}

// Ops collects the candidate operations of every provider for one tree.
// Gap i is the text before token i.
type Ops struct {
	n      int
	seq    int
	strict bool
	log    logr.Logger
	err    error

	space    []spaceCand
	line     []lineCand
	indents  []*Indent
	anchors  []anchor
	columns  map[int]Column
	suppress []Suppress
}

type anchor struct {
	first, last int
	seq         int
}

func newOps(n int, strict bool, log logr.Logger) *Ops {
	return &Ops{
		n:       n,
		strict:  strict,
		log:     log,
		space:   make([]spaceCand, n+1),
		line:    make([]lineCand, n+1),
		columns: map[int]Column{},
	}
}

func (o *Ops) next() int {
	o.seq++
	return o.seq
}

// gap reports whether i names a gap between two tokens.
func (o *Ops) gap(i int) bool { return i > 0 && i < o.n }

// Space proposes the spacing of the gap before token before.
func (o *Ops) Space(before int, s Space, p Priority) {
	if !o.gap(before) {
		return
	}
	c := spaceCand{space: s, prio: p, seq: o.next(), set: true}
	cur := o.space[before]
	switch {
	case !cur.set:
	case s == SpaceForceOne && (p >= cur.prio || cur.space == SpacePreserve):
	case cur.space == SpaceForceOne && (cur.prio >= p || s == SpacePreserve):
		return
	case p < cur.prio:
		return
	}
	o.space[before] = c
}

// Line proposes the line breaks of the gap before token before.
func (o *Ops) Line(before int, l Line, p Priority) {
	if !o.gap(before) {
		return
	}
	if cur := o.line[before]; cur.set && p < cur.prio {
		return
	}
	o.line[before] = lineCand{line: l, prio: p, seq: o.next(), set: true}
}

// Indent adds an indentation range. Ranges naming a missing token are
// ignored.
func (o *Ops) Indent(in Indent) {
	if in.First < 0 || in.Last >= o.n || (in.Last < in.First && in.Close < 0) {
		return
	}
	if (in.Mode == IndentRelative || in.Mode == IndentAlign) && !o.precedes(in.Base, in.First) {
		return
	}
	in.seq = o.next()
	o.indents = append(o.indents, &in)
}

// Anchor makes first the anchor of the tokens after it up to last: a token
// in the range that started a line keeps its original offset from first.
func (o *Ops) Anchor(first, last int) {
	if first < 0 || last >= o.n || last <= first {
		return
	}
	o.anchors = append(o.anchors, anchor{first: first, last: last, seq: o.next()})
}

// Column places tok relative to base when tok starts a line.
func (o *Ops) Column(c Column) {
	if !o.gap(c.Tok) || !o.precedes(c.Base, c.Tok) {
		return
	}
	o.columns[c.Tok] = c
}

// Suppress adds a suppression range.
func (o *Ops) Suppress(first, last int, kind SuppressKind) {
	if first < 0 || last >= o.n || last <= first {
		return
	}
	o.suppress = append(o.suppress, Suppress{First: first, Last: last, Kind: kind})
}

// precedes validates that base comes before tok. A violation is recorded
// in strict mode and logged otherwise; either way the operation is dropped.
func (o *Ops) precedes(base, tok int) bool {
	if base >= 0 && base < tok {
		return true
	}
	if o.strict {
		if o.err == nil {
			o.err = fmt.Errorf("base token %d, governed token %d: %w", base, tok, ErrAnchor)
		}
		return false
	}
	o.log.V(2).Info("Dropped operation", "base", base, "token", tok)
	return false
}
