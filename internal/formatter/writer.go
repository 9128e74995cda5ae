// Package formatter provides the formatting engine: operation collection
// and resolution, indentation and anchoring, trivia layout and the span
// driver that turns a syntax tree into edits.
package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// writer accumulates formatted text and tracks the display column of the
// write position.
type writer struct {
	b        []byte
	tabWidth int

	col    int
	indent int // column of the first non-blank rune on the line, -1 before one
}

func newWriter(tabWidth int, size int) *writer {
	w := &writer{tabWidth: max(tabWidth, 1), indent: -1}
	w.b = make([]byte, 0, size)
	return w
}

// WriteString writes s and advances the column.
func (w *writer) WriteString(s string) {
	w.b = append(w.b, s...)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				size = 2
			}
			w.col, w.indent = 0, -1
		case '\n':
			w.col, w.indent = 0, -1
		case '\t':
			w.col += w.tabWidth - w.col%w.tabWidth
		case ' ':
			w.col++
		default:
			if w.indent < 0 {
				w.indent = w.col
			}
			w.col += runewidth.RuneWidth(r)
		}
		i += size
	}
}

// String returns the text written so far.
func (w *writer) String() string { return string(w.b) }

// mark is a write position that reset can return to.
type mark struct {
	n, col, indent int
}

func (w *writer) mark() mark { return mark{n: len(w.b), col: w.col, indent: w.indent} }

// reset drops everything written after m.
func (w *writer) reset(m mark) {
	w.b = w.b[:m.n]
	w.col, w.indent = m.col, m.indent
}

// since returns the text written after m.
func (w *writer) since(m mark) string { return string(w.b[m.n:]) }

// atLineStart reports whether nothing but whitespace follows the last line break.
func (w *writer) atLineStart() bool { return w.indent < 0 }

// lineIndent returns the indentation of the current line.
func (w *writer) lineIndent() int {
	if w.indent < 0 {
		return w.col
	}
	return w.indent
}

// width returns the display width of s when written at column col.
func width(s string, col, tabWidth int) int {
	start := col
	for _, r := range s {
		switch r {
		case '\t':
			col += tabWidth - col%tabWidth
		case '\n', '\r':
			col = 0
			start = 0
		default:
			col += runewidth.RuneWidth(r)
		}
	}
	return col - start
}

// columnAt returns the display column of byte offset off in text.
func columnAt(text string, off, tabWidth int) int {
	start := strings.LastIndexAny(text[:off], "\r\n") + 1
	return width(text[start:off], 0, max(tabWidth, 1))
}

// indentation renders col columns of leading whitespace.
func indentation(col int, useTabs bool, tabWidth int) string {
	if col <= 0 {
		return ""
	}
	if !useTabs || tabWidth <= 0 {
		return strings.Repeat(" ", col)
	}
	return strings.Repeat("\t", col/tabWidth) + strings.Repeat(" ", col%tabWidth)
}

// leadingWidth splits line into its whitespace prefix width and the rest.
func leadingWidth(line string, tabWidth int) (int, string) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return width(line[:i], 0, tabWidth), line[i:]
}
