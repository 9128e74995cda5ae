// Package parser provides a tolerant lexer and recursive-descent parser for
// C#-family source that produces syntax trees with full trivia.
package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/donaldgifford/csfmt/internal/syntax"
)

// keywords is the reserved word table. Contextual keywords (var, when, get,
// async, ...) lex as identifiers and are recognized by the parser.
var keywords = map[string]bool{
	"abstract": true, "as": true, "base": true, "bool": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true, "checked": true,
	"class": true, "const": true, "continue": true, "decimal": true, "default": true,
	"delegate": true, "do": true, "double": true, "else": true, "enum": true,
	"event": true, "explicit": true, "extern": true, "false": true, "finally": true,
	"fixed": true, "float": true, "for": true, "foreach": true, "goto": true,
	"if": true, "implicit": true, "in": true, "int": true, "interface": true,
	"internal": true, "is": true, "lock": true, "long": true, "namespace": true,
	"new": true, "null": true, "object": true, "operator": true, "out": true,
	"override": true, "params": true, "private": true, "protected": true, "public": true,
	"readonly": true, "ref": true, "return": true, "sbyte": true, "sealed": true,
	"short": true, "sizeof": true, "stackalloc": true, "static": true, "string": true,
	"struct": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "uint": true, "ulong": true, "unchecked": true,
	"unsafe": true, "ushort": true, "using": true, "virtual": true, "void": true,
	"volatile": true, "while": true,
}

// punctuators is ordered longest first. A lone '>' is always its own token;
// the parser joins adjacent '>' and '=' tokens into shift and comparison
// operators so that nested generic argument lists close correctly.
var punctuators = []string{
	"<<=", "??=",
	"->", "=>", "==", "!=", "<=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=",
	"%=", "&=", "|=", "^=", "<<", "??", "?.", "::", "..",
	"{", "}", "(", ")", "[", "]", ".", ",", ":", ";", "+", "-", "*", "/", "%",
	"&", "|", "^", "!", "~", "=", "<", ">", "?",
}

// Lex splits src into tokens. Every byte of src ends up in exactly one
// token's text or trivia, and the last token is EOF.
func Lex(src string, opts ...Option) []*syntax.Token {
	cfg := newConfig(opts)
	l := &lexer{src: src, symbols: map[string]bool{}}
	for _, s := range cfg.symbols {
		l.symbols[s] = true
	}
	return l.run()
}

type lexer struct {
	src     string
	pos     int
	symbols map[string]bool
	conds   []condFrame
}

// condFrame tracks one #if ... #endif nesting level.
type condFrame struct {
	parentActive bool
	active       bool
	taken        bool
}

func (l *lexer) run() []*syntax.Token {
	var toks []*syntax.Token
	for {
		leading := l.leadingTrivia()
		if l.pos >= len(l.src) {
			toks = append(toks, &syntax.Token{Kind: syntax.EOF, Leading: leading})
			return toks
		}
		tok := l.scanToken()
		tok.Leading = leading
		tok.Trailing = l.trailingTrivia()
		toks = append(toks, tok)
	}
}

func (l *lexer) active() bool {
	if len(l.conds) == 0 {
		return true
	}
	return l.conds[len(l.conds)-1].active
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) leadingTrivia() []syntax.Trivia {
	var out []syntax.Trivia
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			out = append(out, l.whitespace())
		case c == '\n' || c == '\r':
			out = append(out, l.newline())
		case c == '/' && l.peekByte(1) == '/':
			out = append(out, l.lineComment())
		case c == '/' && l.peekByte(1) == '*':
			out = append(out, l.blockComment())
		case c == '#':
			out = append(out, l.directive()...)
		default:
			return out
		}
	}
	return out
}

// trailingTrivia collects same-line whitespace and comments up to and
// including the first line break.
func (l *lexer) trailingTrivia() []syntax.Trivia {
	var out []syntax.Trivia
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			out = append(out, l.whitespace())
		case c == '\n' || c == '\r':
			out = append(out, l.newline())
			return out
		case c == '/' && l.peekByte(1) == '/':
			out = append(out, l.lineComment())
		case c == '/' && l.peekByte(1) == '*':
			out = append(out, l.blockComment())
		default:
			return out
		}
	}
	return out
}

func (l *lexer) whitespace() syntax.Trivia {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c != ' ' && c != '\t' && c != '\f' && c != '\v' {
			break
		}
		l.pos++
	}
	return syntax.Trivia{Kind: syntax.Whitespace, Text: l.src[start:l.pos]}
}

func (l *lexer) newline() syntax.Trivia {
	start := l.pos
	if l.src[l.pos] == '\r' && l.peekByte(1) == '\n' {
		l.pos += 2
	} else {
		l.pos++
	}
	return syntax.Trivia{Kind: syntax.EndOfLine, Text: l.src[start:l.pos]}
}

func (l *lexer) restOfLine() int {
	end := l.pos
	for end < len(l.src) && l.src[end] != '\n' && l.src[end] != '\r' {
		end++
	}
	return end
}

func (l *lexer) lineComment() syntax.Trivia {
	start := l.pos
	l.pos = l.restOfLine()
	text := l.src[start:l.pos]
	kind := syntax.SingleLineComment
	if strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////") {
		kind = syntax.SingleLineDocComment
	}
	return syntax.Trivia{Kind: kind, Text: text}
}

func (l *lexer) blockComment() syntax.Trivia {
	start := l.pos
	end := strings.Index(l.src[l.pos+2:], "*/")
	if end < 0 {
		l.pos = len(l.src)
	} else {
		l.pos += 2 + end + 2
	}
	text := l.src[start:l.pos]
	kind := syntax.MultiLineComment
	if strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/**/") {
		kind = syntax.MultiLineDocComment
	}
	return syntax.Trivia{Kind: kind, Text: text}
}

// directive lexes a preprocessor line, its line break, and the disabled
// text that follows when the directive leaves an inactive section.
func (l *lexer) directive() []syntax.Trivia {
	start := l.pos
	l.pos = l.restOfLine()
	text := l.src[start:l.pos]
	out := []syntax.Trivia{{Kind: syntax.Directive, Text: text}}
	l.applyDirective(text)
	if l.pos < len(l.src) {
		out = append(out, l.newline())
	}
	if !l.active() {
		if t, ok := l.disabledText(); ok {
			out = append(out, t)
		}
	}
	return out
}

// disabledText consumes whole lines until one whose first non-blank
// character is '#'.
func (l *lexer) disabledText() (syntax.Trivia, bool) {
	start := l.pos
	for l.pos < len(l.src) {
		i := l.pos
		for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
			i++
		}
		if i < len(l.src) && l.src[i] == '#' {
			break
		}
		l.pos = l.restOfLine()
		if l.pos < len(l.src) {
			if l.src[l.pos] == '\r' && l.peekByte(1) == '\n' {
				l.pos += 2
			} else {
				l.pos++
			}
		}
	}
	if l.pos == start {
		return syntax.Trivia{}, false
	}
	return syntax.Trivia{Kind: syntax.DisabledText, Text: l.src[start:l.pos]}, true
}

func (l *lexer) applyDirective(text string) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "#"))
	if i := strings.Index(body, "//"); i >= 0 {
		body = strings.TrimSpace(body[:i])
	}
	name, rest, _ := strings.Cut(body, " ")
	if j := strings.IndexByte(name, '\t'); j >= 0 {
		name, rest = name[:j], name[j+1:]+" "+rest
	}
	rest = strings.TrimSpace(rest)

	switch name {
	case "if":
		parent := l.active()
		v := parent && evalCondition(rest, l.symbols)
		l.conds = append(l.conds, condFrame{parentActive: parent, active: v, taken: v})
	case "elif":
		if len(l.conds) == 0 {
			return
		}
		top := &l.conds[len(l.conds)-1]
		v := top.parentActive && !top.taken && evalCondition(rest, l.symbols)
		top.active = v
		top.taken = top.taken || v
	case "else":
		if len(l.conds) == 0 {
			return
		}
		top := &l.conds[len(l.conds)-1]
		top.active = top.parentActive && !top.taken
		top.taken = true
	case "endif":
		if len(l.conds) > 0 {
			l.conds = l.conds[:len(l.conds)-1]
		}
	case "define":
		if l.active() && rest != "" {
			l.symbols[rest] = true
		}
	case "undef":
		if l.active() {
			delete(l.symbols, rest)
		}
	}
}

func (l *lexer) scanToken() *syntax.Token {
	start := l.pos
	c := l.src[l.pos]
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])

	switch {
	case c == '@' && l.peekByte(1) == '"',
		c == '$' && (l.peekByte(1) == '"' || l.peekByte(1) == '@' || l.peekByte(1) == '$'),
		c == '@' && l.peekByte(1) == '$',
		c == '"':
		l.stringLiteral()
		return &syntax.Token{Kind: syntax.StringLiteral, Text: l.src[start:l.pos]}
	case c == '\'':
		l.charLiteral()
		return &syntax.Token{Kind: syntax.CharLiteral, Text: l.src[start:l.pos]}
	case isDigit(c) || (c == '.' && isDigit(l.peekByte(1))):
		l.number()
		return &syntax.Token{Kind: syntax.NumericLiteral, Text: l.src[start:l.pos]}
	case c == '@' && isIdentStart(l.runeAt(l.pos+1)):
		l.pos++
		l.identifier()
		return &syntax.Token{Kind: syntax.Identifier, Text: l.src[start:l.pos]}
	case isIdentStart(r):
		l.identifier()
		text := l.src[start:l.pos]
		if keywords[text] {
			return &syntax.Token{Kind: syntax.Keyword, Text: text}
		}
		return &syntax.Token{Kind: syntax.Identifier, Text: text}
	}

	for _, p := range punctuators {
		if strings.HasPrefix(l.src[l.pos:], p) {
			// "?." followed by a digit is a conditional operator and a real literal.
			if p == "?." && isDigit(l.peekByte(2)) {
				continue
			}
			l.pos += len(p)
			return &syntax.Token{Kind: syntax.Punctuation, Text: p}
		}
	}

	l.pos += size
	return &syntax.Token{Kind: syntax.Bad, Text: l.src[start:l.pos]}
}

func (l *lexer) runeAt(i int) rune {
	if i >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[i:])
	return r
}

func (l *lexer) identifier() {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) number() {
	if l.src[l.pos] == '0' && (l.peekByte(1) == 'x' || l.peekByte(1) == 'X' ||
		l.peekByte(1) == 'b' || l.peekByte(1) == 'B') {
		l.pos += 2
		for l.pos < len(l.src) && (isHexDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
		l.numberSuffix()
		return
	}
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	if l.peekByte(0) == '.' && isDigit(l.peekByte(1)) {
		l.pos++
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		n := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peekByte(n)) {
			l.pos += n
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	l.numberSuffix()
}

func (l *lexer) numberSuffix() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case 'u', 'U', 'l', 'L', 'f', 'F', 'd', 'D', 'm', 'M':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) charLiteral() {
	l.pos++
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.pos += 2
		case '\'':
			l.pos++
			return
		case '\n', '\r':
			return
		default:
			l.pos++
		}
	}
	l.pos = min(l.pos, len(l.src))
}

// stringLiteral consumes any string form starting at l.pos: regular,
// verbatim, raw, and interpolated (with nested holes).
func (l *lexer) stringLiteral() {
	dollars, verbatim := 0, false
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '$':
			dollars++
			l.pos++
			continue
		case '@':
			verbatim = true
			l.pos++
			continue
		}
		break
	}
	quotes := 0
	for l.pos+quotes < len(l.src) && l.src[l.pos+quotes] == '"' {
		quotes++
	}
	switch {
	case quotes >= 3:
		l.rawString(quotes, dollars)
	case verbatim:
		l.pos++
		l.stringBody(dollars > 0, true)
	default:
		l.pos++
		l.stringBody(dollars > 0, false)
	}
	// UTF-8 string literal suffix.
	if l.peekByte(0) == 'u' && l.peekByte(1) == '8' {
		l.pos += 2
	}
}

func (l *lexer) stringBody(interpolated, verbatim bool) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '"':
			if verbatim && l.peekByte(1) == '"' {
				l.pos += 2
				continue
			}
			l.pos++
			return
		case c == '\\' && !verbatim:
			l.pos += 2
		case (c == '\n' || c == '\r') && !verbatim:
			return
		case c == '{' && interpolated:
			if l.peekByte(1) == '{' {
				l.pos += 2
				continue
			}
			l.pos++
			l.interpolationHole()
		default:
			l.pos++
		}
	}
	l.pos = min(l.pos, len(l.src))
}

// interpolationHole skips an interpolation expression up to its closing
// brace, descending into nested strings, characters and braces.
func (l *lexer) interpolationHole() {
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '{':
			depth++
			l.pos++
		case c == '}':
			depth--
			l.pos++
			if depth == 0 {
				return
			}
		case c == '"' || (c == '@' && l.peekByte(1) == '"') || (c == '$' && (l.peekByte(1) == '"' || l.peekByte(1) == '@')):
			l.stringLiteral()
		case c == '\'':
			l.charLiteral()
		default:
			l.pos++
		}
	}
}

func (l *lexer) rawString(quotes, dollars int) {
	l.pos += quotes
	closing := strings.Repeat(`"`, quotes)
	for l.pos < len(l.src) {
		if strings.HasPrefix(l.src[l.pos:], closing) {
			l.pos += quotes
			for l.pos < len(l.src) && l.src[l.pos] == '"' {
				l.pos++
			}
			return
		}
		if dollars > 0 && strings.HasPrefix(l.src[l.pos:], strings.Repeat("{", dollars)) {
			l.pos += dollars
			l.interpolationHole()
			continue
		}
		l.pos++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}
