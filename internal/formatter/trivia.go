package formatter

import (
	"strings"

	"github.com/donaldgifford/csfmt/internal/parser"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// piece is a comment, directive or disabled text inside a gap.
type piece struct {
	tr     syntax.Trivia
	breaks int    // line breaks between the previous piece and this one
	ws     string // whitespace directly before the piece
	col    int    // original column
}

// gap is the trivia between two tokens split into pieces and layout.
type gap struct {
	pieces  []piece
	breaks  int    // line breaks after the last piece
	ws      string // whitespace directly before the next token
	eols    []string
	elastic bool
}

// parseGap splits list, which starts at offset start of text.
func parseGap(list []syntax.Trivia, text string, start, tabWidth int) *gap {
	g := &gap{}
	off := start
	for _, tr := range list {
		switch tr.Kind {
		case syntax.Whitespace:
			g.ws += tr.Text
		case syntax.EndOfLine:
			g.breaks++
			g.ws = ""
			g.eols = append(g.eols, tr.Text)
		case syntax.Elastic:
			g.elastic = true
			if n := syntax.CountLineBreaks(tr.Text); n > 0 {
				g.breaks += n
				g.ws = ""
			} else {
				g.ws += tr.Text
			}
		default:
			g.pieces = append(g.pieces, piece{
				tr:     tr,
				breaks: g.breaks,
				ws:     g.ws,
				col:    columnAt(text, off, tabWidth),
			})
			g.breaks, g.ws = 0, ""
		}
		off += len(tr.Text)
	}
	return g
}

// endsLine reports whether the last piece leaves the line closed.
func (g *gap) endsLine() bool {
	return len(g.pieces) > 0 && g.pieces[len(g.pieces)-1].tr.EndsLine()
}

// gapWriter writes one formatted gap and records it as trivia.
type gapWriter struct {
	w       *writer
	out     []syntax.Trivia
	eols    []string
	newline string
	useTabs bool
	tabs    int
}

func (gw *gapWriter) emit(kind syntax.TriviaKind, text string) {
	if text == "" {
		return
	}
	gw.out = append(gw.out, syntax.Trivia{Kind: kind, Text: text})
	gw.w.WriteString(text)
}

func (gw *gapWriter) breaks(n int) {
	for range n {
		eol := gw.newline
		if len(gw.eols) > 0 {
			eol, gw.eols = gw.eols[0], gw.eols[1:]
		}
		gw.emit(syntax.EndOfLine, eol)
	}
}

func (gw *gapWriter) indent(col int) {
	gw.emit(syntax.Whitespace, indentation(col, gw.useTabs, gw.tabs))
}

// gapLayout is the resolved shape of one editable gap.
type gapLayout struct {
	start, end bool // document start, end of file
	keepIndent bool // write the authored whitespace before the next token
	breaks     int  // line breaks before the next token
	space      string
	lineCol    int // column of the next token when it starts a line
	commentCol int // column of comments on their own line
	maxBreaks  int // cap on line breaks, or negative
}

func (gl *gapLayout) cap(n int) int {
	if gl.maxBreaks >= 0 && n > gl.maxBreaks {
		return gl.maxBreaks
	}
	return n
}

// write lays out g and returns the trivia it wrote.
func (gw *gapWriter) write(g *gap, gl *gapLayout) []syntax.Trivia {
	gw.out = nil
	gw.eols = g.eols
	// trail is the last comment written after code or under such a
	// comment; the comment on the next line lines up with it.
	trail := struct{ i, col, orig int }{i: -2}
	for i, p := range g.pieces {
		b := gl.cap(p.breaks)
		directive := p.tr.Kind == syntax.Directive || p.tr.Kind == syntax.DisabledText
		if directive && b == 0 && !gw.w.atLineStart() {
			b = 1
		}
		if i > 0 && b == 0 && g.pieces[i-1].tr.EndsLine() {
			b = 1
		}
		gw.breaks(b)
		text := p.tr.Text
		switch {
		case directive:
			// Directives start at column 0 and disabled text is verbatim.
		case gw.w.atLineStart():
			if b == 1 && trail.i == i-1 && p.col >= trail.orig {
				gw.indent(trail.col)
				trail.i = i
			} else {
				gw.indent(gl.commentCol)
			}
			text = shiftComment(text, gw.w.col-p.col, gw.useTabs, gw.tabs)
		default:
			gw.emit(syntax.Whitespace, p.ws)
			trail.i = i
		}
		if trail.i == i {
			trail.col, trail.orig = gw.w.col, p.col
		}
		gw.emit(p.tr.Kind, text)
	}

	f := gl.breaks
	if f == 0 && g.endsLine() && !gl.end {
		f = 1
	}
	gw.breaks(f)
	switch {
	case gl.end:
	case gl.keepIndent:
		gw.emit(syntax.Whitespace, g.ws)
	case gw.w.atLineStart():
		gw.indent(gl.lineCol)
	default:
		gw.emit(syntax.Whitespace, gl.space)
	}
	return gw.out
}

// shiftComment moves the continuation lines of a multi-line comment by
// delta columns and rebuilds their indentation.
func shiftComment(text string, delta int, useTabs bool, tabWidth int) string {
	if !strings.ContainsAny(text, "\r\n") {
		return text
	}
	lines := strings.SplitAfter(text, "\n")
	var b strings.Builder
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		w, rest := leadingWidth(line, tabWidth)
		if rest == "" || rest == "\n" || rest == "\r\n" {
			b.WriteString(rest)
			continue
		}
		b.WriteString(indentation(max(w+delta, 0), useTabs, tabWidth))
		b.WriteString(rest)
	}
	return b.String()
}

// spaceText renders the resolved spacing of a gap whose next token stays
// on the line of the previous one.
func spaceText(s Space, g *gap, prev, next string) string {
	var text string
	switch s {
	case SpaceNone:
	case SpaceOne, SpaceForceOne:
		text = " "
	default:
		switch {
		case g.breaks > 0 || g.elastic:
			text = " "
		default:
			text = g.ws
		}
	}
	if text != "" {
		return text
	}
	if len(g.pieces) > 0 || parser.NeedsSeparator(prev, next) {
		return " "
	}
	return ""
}

// split divides the trivia of gap k into the trailing trivia of token k-1
// and the leading trivia of token k.
func split(out []syntax.Trivia, start, end bool) (trailing, leading []syntax.Trivia) {
	switch {
	case start:
		return nil, out
	case end:
		return out, nil
	}
	for i, tr := range out {
		if tr.Kind == syntax.EndOfLine {
			return out[:i+1], out[i+1:]
		}
	}
	return out, nil
}
