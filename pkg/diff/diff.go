// Package diff renders unified diffs between original and formatted source.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DefaultContext is the number of unchanged lines shown around each hunk.
const DefaultContext = 3

// Options controls how a diff is rendered.
type Options struct {
	// Context is the number of unchanged lines around each change. A
	// negative value means DefaultContext.
	Context int
	// Color wraps headers, hunk markers and changed lines in ANSI colors.
	Color bool
}

// Unified returns the unified diff between oldText and newText with the
// default options. Identical inputs produce an empty string.
func Unified(filename, oldText, newText string) string {
	var b strings.Builder
	_ = Write(&b, filename, oldText, newText, Options{Context: DefaultContext})
	return b.String()
}

// Write renders the unified diff between oldText and newText to w.
// Nothing is written when the inputs are identical.
func Write(w io.Writer, filename, oldText, newText string, opts Options) error {
	if oldText == newText {
		return nil
	}
	if opts.Context < 0 {
		opts.Context = DefaultContext
	}

	a, b := lines(oldText), lines(newText)
	hunks := group(script(a, b), opts.Context)
	if len(hunks) == 0 {
		return nil
	}

	p := newPalette(opts.Color)
	var out strings.Builder
	out.WriteString(p.header.Sprintf("--- a/%s", filename) + "\n")
	out.WriteString(p.header.Sprintf("+++ b/%s", filename) + "\n")
	for _, h := range hunks {
		h.render(&out, a, b, p)
	}
	_, err := io.WriteString(w, out.String())
	return err
}

// lines splits s after each newline. An empty string has no lines.
func lines(s string) []string {
	if s == "" {
		return nil
	}
	l := strings.SplitAfter(s, "\n")
	if l[len(l)-1] == "" {
		l = l[:len(l)-1]
	}
	return l
}

type opKind int

const (
	opKeep opKind = iota
	opInsert
	opDelete
)

// op is one step of an edit script. Inserts have no old line and
// deletes have no new line; the missing index is -1.
type op struct {
	kind     opKind
	old, new int
}

// script returns the shortest edit script turning a into b, computed with
// Myers' greedy algorithm.
func script(a, b []string) []op {
	n, m := len(a), len(b)
	maxD := n + m
	if maxD == 0 {
		return nil
	}

	off := maxD
	v := make([]int, 2*maxD+2)
	var trace [][]int

	for d := 0; d <= maxD; d++ {
		trace = append(trace, append([]int(nil), v...))
		for k := -d; k <= d; k += 2 {
			x := 0
			if down(v, off, k, d) {
				x = v[off+k+1]
			} else {
				x = v[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[off+k] = x
			if x >= n && y >= m {
				return unwind(trace, n, m, d, off)
			}
		}
	}
	return nil
}

// down reports whether diagonal k at step d is reached by an insertion.
func down(v []int, off, k, d int) bool {
	return k == -d || (k != d && v[off+k-1] < v[off+k+1])
}

// unwind walks the saved frontiers backwards from (n, m) and returns the
// script in forward order.
func unwind(trace [][]int, n, m, d, off int) []op {
	x, y := n, m
	var ops []op
	keep := func(toX, toY int) {
		for x > toX && y > toY {
			x--
			y--
			ops = append(ops, op{kind: opKeep, old: x, new: y})
		}
	}

	for ; d > 0; d-- {
		v := trace[d]
		k := x - y
		prev := k - 1
		if down(v, off, k, d) {
			prev = k + 1
		}
		px := v[off+prev]
		keep(px, px-prev)
		if prev == k+1 {
			y--
			ops = append(ops, op{kind: opInsert, old: -1, new: y})
		} else {
			x--
			ops = append(ops, op{kind: opDelete, old: x, new: -1})
		}
	}
	keep(0, 0)

	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	return ops
}

// hunk is a run of the script with its surrounding context.
type hunk struct {
	ops              []op
	oldStart, oldLen int
	newStart, newLen int
}

// group splits the script into hunks, joining changes whose context
// would overlap.
func group(ops []op, ctx int) []hunk {
	var hunks []hunk
	start, end := -1, -1
	flush := func() {
		if start < 0 {
			return
		}
		lo := max(start-ctx, 0)
		hi := min(end+ctx, len(ops)-1)
		hunks = append(hunks, newHunk(ops[lo:hi+1]))
		start, end = -1, -1
	}

	for i, o := range ops {
		if o.kind == opKeep {
			continue
		}
		if start >= 0 && i-end > 2*ctx {
			flush()
		}
		if start < 0 {
			start = i
		}
		end = i
	}
	flush()
	return hunks
}

func newHunk(ops []op) hunk {
	h := hunk{ops: ops, oldStart: -1, newStart: -1}
	for _, o := range ops {
		if o.old >= 0 {
			if h.oldStart < 0 {
				h.oldStart = o.old
			}
			h.oldLen++
		}
		if o.new >= 0 {
			if h.newStart < 0 {
				h.newStart = o.new
			}
			h.newLen++
		}
	}
	return h
}

// render writes the hunk header and lines. An empty side is reported at
// line 0 as unified diff requires.
func (h hunk) render(out *strings.Builder, a, b []string, p palette) {
	out.WriteString(p.hunk.Sprintf("@@ -%s +%s @@", span(h.oldStart, h.oldLen), span(h.newStart, h.newLen)) + "\n")
	for _, o := range h.ops {
		switch o.kind {
		case opKeep:
			out.WriteString(" " + terminate(a[o.old]))
		case opDelete:
			out.WriteString(p.del.Sprint("-"+strings.TrimSuffix(a[o.old], "\n")) + "\n")
		case opInsert:
			out.WriteString(p.ins.Sprint("+"+strings.TrimSuffix(b[o.new], "\n")) + "\n")
		}
	}
}

func span(start, n int) string {
	if n == 0 {
		return fmt.Sprintf("%d,0", max(start, 0))
	}
	return fmt.Sprintf("%d,%d", start+1, n)
}

func terminate(line string) string {
	if strings.HasSuffix(line, "\n") {
		return line
	}
	return line + "\n"
}

type palette struct {
	header, hunk, del, ins *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		del:    color.New(color.FgRed),
		ins:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.del, p.ins} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}
