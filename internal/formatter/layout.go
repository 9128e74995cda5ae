package formatter

import (
	"slices"

	"github.com/mattn/go-runewidth"
)

// layout computes the column of every token that starts a line. Indent
// ranges are activated in document order and get their column when their
// first token is reached, so every base they refer to is already written.
type layout struct {
	ctx  *Context
	ops  *Ops
	unit int

	pending  []*Indent // sorted by First, widest first
	empty    map[int]*Indent
	closeOps map[int]*Indent
	active   []*Indent

	anchors []anchor // sorted by first
	nextAnc int
	live    []anchor

	newCol     []int // output column of each token
	lineIndent []int // indentation of the output line of each token
}

func newLayout(ctx *Context, ops *Ops) *layout {
	n := ctx.Tree.Len()
	l := &layout{
		ctx:        ctx,
		ops:        ops,
		unit:       ctx.Options.IndentSize(),
		empty:      map[int]*Indent{},
		closeOps:   map[int]*Indent{},
		newCol:     make([]int, n),
		lineIndent: make([]int, n),
	}
	for _, in := range ops.indents {
		if in.Close >= 0 {
			l.closeOps[in.Close] = in
		}
		if in.Last < in.First {
			l.empty[in.Close] = in
			continue
		}
		l.pending = append(l.pending, in)
	}
	slices.SortStableFunc(l.pending, func(a, b *Indent) int {
		if a.First != b.First {
			return a.First - b.First
		}
		if a.Last != b.Last {
			return b.Last - a.Last
		}
		return a.seq - b.seq
	})
	l.anchors = slices.Clone(ops.anchors)
	slices.SortStableFunc(l.anchors, func(a, b anchor) int { return a.first - b.first })
	return l
}

// advance updates the active ranges for the gap before token k.
func (l *layout) advance(k int) {
	l.active = slices.DeleteFunc(l.active, func(in *Indent) bool { return in.Last < k })
	for len(l.pending) > 0 && l.pending[0].First == k {
		in := l.pending[0]
		l.pending = l.pending[1:]
		l.activate(in, in.First, in.Last)
		l.active = append(l.active, in)
	}
	if in, ok := l.empty[k]; ok {
		l.activate(in, in.First-1, in.Close)
	}

	l.live = slices.DeleteFunc(l.live, func(a anchor) bool { return a.last < k })
	for l.nextAnc < len(l.anchors) && l.anchors[l.nextAnc].first < k {
		if a := l.anchors[l.nextAnc]; a.last >= k {
			l.live = append(l.live, a)
		}
		l.nextAnc++
	}
}

// activate computes the column of in, whose extent is lo..hi.
func (l *layout) activate(in *Indent, lo, hi int) {
	var col int
	switch in.Mode {
	case IndentBlock:
		if p := l.parent(in, lo, hi); p != nil {
			col = p.col
		}
		col += in.Delta * l.unit
	case IndentRelative:
		col = l.lineIndent[in.Base] + in.Delta*l.unit
	case IndentAlign:
		col = l.newCol[in.Base] + in.Delta*l.unit
	case IndentAbsolute:
		col = in.Delta * l.unit
	}
	in.col = max(col, 0)
	in.set = true
}

// parent returns the innermost active range containing lo..hi.
func (l *layout) parent(in *Indent, lo, hi int) *Indent {
	var best *Indent
	for _, p := range l.active {
		if p == in || p.First > lo || p.Last < hi {
			continue
		}
		if best == nil || inner(p, best) {
			best = p
		}
	}
	return best
}

// inner reports whether a is nested more deeply than b.
func inner(a, b *Indent) bool {
	if a.First != b.First {
		return a.First > b.First
	}
	if a.Last != b.Last {
		return a.Last < b.Last
	}
	return a.seq > b.seq
}

// innermost returns the innermost active range covering token k.
func (l *layout) innermost(k int) *Indent {
	var best *Indent
	for _, in := range l.active {
		if in.First > k || in.Last < k {
			continue
		}
		if best == nil || inner(in, best) {
			best = in
		}
	}
	return best
}

// lineColumn returns the column of token k if it starts a line.
func (l *layout) lineColumn(k int) int {
	if c, ok := l.ops.columns[k]; ok {
		return l.column(c)
	}
	in := l.innermost(k)
	if l.ctx.StartsLine(k) {
		if a, ok := l.anchor(); ok && (in == nil || (in.First <= a.first && a.last <= in.Last)) {
			return max(l.newCol[a.first]+l.ctx.Column(k)-l.ctx.Column(a.first), 0)
		}
	}
	if in != nil {
		return in.col
	}
	return 0
}

// commentColumn returns the column of a comment on its own line before token k.
func (l *layout) commentColumn(k int) int {
	if in, ok := l.closeOps[k]; ok && in.set {
		return in.col
	}
	return l.lineColumn(k)
}

// anchor returns the innermost live anchor.
func (l *layout) anchor() (anchor, bool) {
	var best anchor
	found := false
	for _, a := range l.live {
		if !found || a.first > best.first || (a.first == best.first && (a.last < best.last ||
			(a.last == best.last && a.seq > best.seq))) {
			best, found = a, true
		}
	}
	return best, found
}

func (l *layout) column(c Column) int {
	var col int
	switch c.Mode {
	case ColumnAlign:
		col = l.newCol[c.Base] + c.Delta*l.unit
	case ColumnAfter:
		t := l.ctx.Tree.Tokens[c.Base]
		col = l.newCol[c.Base] + runewidth.StringWidth(t.Text)
	case ColumnRelative:
		col = l.lineIndent[c.Base] + c.Delta*l.unit
	}
	return max(col, 0)
}

// record notes where token k was written.
func (l *layout) record(k int, w *writer) {
	l.newCol[k] = w.col
	if w.atLineStart() {
		l.lineIndent[k] = w.col
	} else {
		l.lineIndent[k] = w.lineIndent()
	}
}
