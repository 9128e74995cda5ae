package formatter

import (
	"context"
	"slices"

	"github.com/go-logr/logr"

	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// cancelEvery is how many gaps are laid out between cancellation checks.
const cancelEvery = 256

// Config controls one call to Format.
type Config struct {
	// Spans limits edits to these ranges of the input text. No spans
	// formats the whole tree.
	Spans []Span

	// ElasticOnly restricts edits to gaps holding elastic trivia.
	ElasticOnly bool

	// Strict turns anchor rule violations into ErrAnchor instead of
	// dropping the operation.
	Strict bool

	// Logger receives V(1) run summaries and V(2) dropped operations.
	Logger logr.Logger

	// Providers are consulted in order for every node.
	Providers []Provider
}

// Edit replaces the input bytes Start..End with Text.
type Edit struct {
	Start, End int
	Text       string
}

// Result is the outcome of Format.
type Result struct {
	// Edits are sorted and do not overlap.
	Edits []Edit

	// Text is the formatted text.
	Text string

	// Root is the formatted tree. Subtrees without changes are shared
	// with the input.
	Root *syntax.Node
}

// Format lays out root according to set. The input tree is not modified.
// On cancellation Format returns ctx.Err() and no partial result.
func Format(ctx context.Context, root *syntax.Node, set *options.Set, cfg Config) (*Result, error) {
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	if set == nil {
		set = options.Default()
	}

	tree := syntax.NewTree(root)
	text := tree.Text()
	spans, err := MergeSpans(cfg.Spans, len(text))
	if err != nil {
		return nil, err
	}
	if text == "" {
		return &Result{Root: root}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := newContext(tree, set)
	ops := newOps(tree.Len(), cfg.Strict, log)
	if err := collect(ctx, c, ops, cfg.Providers); err != nil {
		return nil, err
	}
	if ops.err != nil {
		return nil, ops.err
	}

	e := newEngine(c, ops, newEditability(tree, spans, cfg.ElasticOnly))
	res, err := e.run(ctx, root)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("Formatted", "spans", len(spans), "tokens", tree.Len(), "edits", len(res.Edits))
	return res, nil
}

// collect runs every provider over every node, provider by provider.
func collect(ctx context.Context, c *Context, ops *Ops, providers []Provider) error {
	var nodes []*syntax.Ref
	c.Tree.Walk(func(r *syntax.Ref) bool {
		nodes = append(nodes, r)
		return true
	})
	for _, p := range providers {
		for _, n := range nodes {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.Provide(c, n, ops)
		}
	}
	return nil
}

type engine struct {
	ctx  *Context
	ops  *Ops
	edit *editability
	lay  *layout
	w    *writer
	gw   *gapWriter

	noWrap []int // suppression coverage per gap
	keep   []int

	leading  map[int][]syntax.Trivia
	trailing map[int][]syntax.Trivia
	edits    []Edit
}

func newEngine(c *Context, ops *Ops, edit *editability) *engine {
	set := c.Options
	w := newWriter(set.TabWidth(), len(c.Tree.Text()))
	e := &engine{
		ctx:  c,
		ops:  ops,
		edit: edit,
		lay:  newLayout(c, ops),
		w:    w,
		gw: &gapWriter{
			w:       w,
			newline: set.NewLine(),
			useTabs: set.UseTabs(),
			tabs:    set.TabWidth(),
		},
		leading:  map[int][]syntax.Trivia{},
		trailing: map[int][]syntax.Trivia{},
	}
	e.noWrap, e.keep = coverage(c.Tree.Len(), ops.suppress)
	return e
}

// coverage counts, per gap, the suppression ranges of each kind covering it.
func coverage(n int, list []Suppress) (noWrap, keep []int) {
	noWrap, keep = make([]int, n+2), make([]int, n+2)
	for _, s := range list {
		d := noWrap
		if s.Kind == KeepLines {
			d = keep
		}
		d[s.First+1]++
		d[s.Last+1]--
	}
	for i := 1; i < len(noWrap); i++ {
		noWrap[i] += noWrap[i-1]
		keep[i] += keep[i-1]
	}
	return noWrap, keep
}

func (e *engine) run(ctx context.Context, root *syntax.Node) (*Result, error) {
	tree := e.ctx.Tree
	text := tree.Text()
	n := tree.Len()
	for k := 0; k <= n; k++ {
		if k%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if k < n {
			e.lay.advance(k)
		}
		e.gap(k, text)
		if k < n {
			e.lay.record(k, e.w)
			e.w.WriteString(tree.Tokens[k].Text)
		}
	}
	return &Result{
		Edits: e.edits,
		Text:  e.w.String(),
		Root:  e.rebuild(root),
	}, nil
}

// trivia returns the trivia of the gap before token k.
func (e *engine) trivia(k int) []syntax.Trivia {
	tree := e.ctx.Tree
	var list []syntax.Trivia
	if k > 0 {
		list = append(list, tree.Tokens[k-1].Trailing...)
	}
	if k < tree.Len() {
		list = append(list, tree.Tokens[k].Leading...)
	}
	return list
}

func (e *engine) gap(k int, text string) {
	tree := e.ctx.Tree
	start, end := gapStart(tree, k), gapEnd(tree, k)
	orig := text[start:end]
	list := e.trivia(k)
	elastic := syntax.HasElastic(list)
	lo, ok := e.edit.gap(k, elastic)
	if !ok {
		e.w.WriteString(orig)
		return
	}

	g := parseGap(list, text, start, e.ctx.Options.TabWidth())
	gl := e.shape(k, g)
	m := e.w.mark()
	out := e.gw.write(g, gl)
	got := e.w.since(m)
	if got == orig && !elastic {
		return
	}
	var edit Edit
	if got != orig {
		edit = trimEdit(start, orig, got)
		if edit.Start < lo {
			// The change reaches text before the span.
			e.w.reset(m)
			e.w.WriteString(orig)
			return
		}
	}
	trailing, leading := split(out, gl.start, gl.end)
	if k > 0 {
		e.trailing[k-1] = trailing
	}
	if k < tree.Len() {
		e.leading[k] = leading
	}
	if got != orig {
		e.edits = append(e.edits, edit)
	}
}

// shape resolves the operations of gap k.
func (e *engine) shape(k int, g *gap) *gapLayout {
	tree := e.ctx.Tree
	set := e.ctx.Options
	n := tree.Len()
	gl := &gapLayout{
		start:     k == 0,
		end:       k == n || tree.Tokens[k].Kind == syntax.EOF,
		maxBreaks: -1,
	}
	if m := set.MaxBlankLines(); m >= 0 {
		gl.maxBreaks = m + 1
	}
	if gl.start || gl.end {
		gl.breaks = gl.cap(g.breaks)
		// The first token of a document written on the first line keeps its column.
		gl.keepIndent = gl.start && g.breaks == 0 && len(g.pieces) == 0
	} else {
		gl.breaks = gl.cap(e.lines(k, g))
	}
	if gl.end {
		return gl
	}
	gl.lineCol = e.lay.lineColumn(k)
	gl.commentCol = e.lay.commentColumn(k)
	if k > 0 {
		gl.space = spaceText(e.ops.space[k].space, g, tree.Tokens[k-1].Text, tree.Tokens[k].Text)
	}
	return gl
}

// lines resolves the line breaks before token k.
func (e *engine) lines(k int, g *gap) int {
	l := Preserve()
	if c := e.ops.line[k]; c.set {
		l = c.line
	}
	f := l.apply(g.breaks)
	if e.noWrap[k] > 0 && g.breaks == 0 {
		f = 0
	}
	if e.keep[k] > 0 && g.breaks > 0 {
		f = max(f, 1)
	}
	return f
}

// rebuild returns root with the new trivia of every changed gap.
func (e *engine) rebuild(root *syntax.Node) *syntax.Node {
	if len(e.leading) == 0 && len(e.trailing) == 0 {
		return root
	}
	i := 0
	return root.Rewrite(func(t *syntax.Token) *syntax.Token {
		idx := i
		i++
		leading, okL := e.leading[idx]
		trailing, okT := e.trailing[idx]
		if !okL && !okT {
			return t
		}
		if !okL {
			leading = t.Leading
		}
		if !okT {
			trailing = t.Trailing
		}
		return t.WithTrivia(slices.Clip(leading), slices.Clip(trailing))
	})
}

// trimEdit builds the edit replacing old at offset start with new, without
// the prefix and suffix they share.
func trimEdit(start int, old, new string) Edit {
	p := 0
	for p < len(old) && p < len(new) && old[p] == new[p] {
		p++
	}
	s := 0
	for s < len(old)-p && s < len(new)-p && old[len(old)-1-s] == new[len(new)-1-s] {
		s++
	}
	return Edit{Start: start + p, End: start + len(old) - s, Text: new[p : len(new)-s]}
}
