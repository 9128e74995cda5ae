package formatter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/donaldgifford/csfmt/internal/syntax"
)

// Span errors reject a request before any formatting happens.
var (
	ErrSpanOutOfRange = errors.New("span outside the document")
	ErrSpanInverted   = errors.New("span ends before it starts")
)

// Span is a half-open range of byte offsets into the formatted text.
type Span struct {
	Start, End int
}

// Empty reports whether s has no length.
func (s Span) Empty() bool { return s.End <= s.Start }

// Contains reports whether start..end lies within s.
func (s Span) Contains(start, end int) bool {
	return s.Start <= start && end <= s.End
}

// MergeSpans validates spans against a document of size bytes, sorts them
// and unions the ones that overlap or touch. No spans means the whole
// document.
func MergeSpans(spans []Span, size int) ([]Span, error) {
	if len(spans) == 0 {
		return []Span{{Start: 0, End: size}}, nil
	}
	for _, s := range spans {
		if s.Start > s.End {
			return nil, fmt.Errorf("span [%d,%d): %w", s.Start, s.End, ErrSpanInverted)
		}
		if s.Start < 0 || s.End > size {
			return nil, fmt.Errorf("span [%d,%d) in document of %d bytes: %w", s.Start, s.End, size, ErrSpanOutOfRange)
		}
	}
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b Span) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})
	merged := []Span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			last.End = max(last.End, s.End)
			continue
		}
		merged = append(merged, s)
	}
	return merged, nil
}

// editability decides which gaps of a tree may change.
type editability struct {
	tree        *syntax.Tree
	spans       []Span
	frozen      []bool
	elasticOnly bool
}

func newEditability(tree *syntax.Tree, spans []Span, elasticOnly bool) *editability {
	e := &editability{tree: tree, spans: spans, frozen: make([]bool, tree.Len()), elasticOnly: elasticOnly}
	for i, t := range tree.Tokens {
		if t.Missing || t.Kind == syntax.Bad {
			e.frozen[i] = true
		}
	}
	tree.Walk(func(r *syntax.Ref) bool {
		if !r.Is(syntax.SkippedTokens, syntax.IncompleteMember) {
			return true
		}
		for i := r.First; i <= r.Last; i++ {
			e.frozen[i] = true
		}
		return false
	})
	return e
}

// gap reports whether the gap before token k may be rewritten and the
// lowest offset an edit of it may touch. A gap that starts before a span
// is editable from the span start when token k begins inside the span.
func (e *editability) gap(k int, elastic bool) (int, bool) {
	if e.elasticOnly && !elastic {
		return 0, false
	}
	if (k > 0 && e.frozen[k-1]) || (k < len(e.frozen) && e.frozen[k]) {
		return 0, false
	}
	start, end := gapStart(e.tree, k), gapEnd(e.tree, k)
	for _, s := range e.spans {
		switch {
		case s.Empty():
		case s.Contains(start, end):
			return start, true
		case k < e.tree.Len() && s.Start < end && end < s.End:
			return s.Start, true
		}
	}
	return 0, false
}
