package parser

import (
	"strings"
	"unicode"
)

// Option configures lexing and parsing.
type Option func(*config)

type config struct {
	symbols []string
}

// WithSymbols defines preprocessor symbols before the first line, as if each
// were the subject of a #define.
func WithSymbols(symbols ...string) Option {
	return func(c *config) {
		c.symbols = append(c.symbols, symbols...)
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// evalCondition evaluates an #if or #elif expression. Undefined symbols are
// false and malformed input evaluates to false.
func evalCondition(expr string, defined map[string]bool) bool {
	e := &condEval{toks: splitCondition(expr), defined: defined}
	v := e.or()
	if e.pos != len(e.toks) {
		return false
	}
	return v
}

func splitCondition(s string) []string {
	var toks []string
	for i := 0; i < len(s); {
		c := rune(s[i])
		switch {
		case c == ' ' || c == '\t':
			i++
		case strings.HasPrefix(s[i:], "&&"), strings.HasPrefix(s[i:], "||"),
			strings.HasPrefix(s[i:], "=="), strings.HasPrefix(s[i:], "!="):
			toks = append(toks, s[i:i+2])
			i += 2
		case c == '!' || c == '(' || c == ')':
			toks = append(toks, string(c))
			i++
		default:
			j := i
			for j < len(s) {
				r := rune(s[j])
				if !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || r >= 0x80) {
					break
				}
				j++
			}
			if j == i {
				// Unknown character; keep it so the expression fails to parse.
				j = i + 1
			}
			toks = append(toks, s[i:j])
			i = j
		}
	}
	return toks
}

type condEval struct {
	toks    []string
	pos     int
	defined map[string]bool
}

func (e *condEval) peek() string {
	if e.pos < len(e.toks) {
		return e.toks[e.pos]
	}
	return ""
}

func (e *condEval) or() bool {
	v := e.and()
	for e.peek() == "||" {
		e.pos++
		r := e.and()
		v = v || r
	}
	return v
}

func (e *condEval) and() bool {
	v := e.equality()
	for e.peek() == "&&" {
		e.pos++
		r := e.equality()
		v = v && r
	}
	return v
}

func (e *condEval) equality() bool {
	v := e.unary()
	for e.peek() == "==" || e.peek() == "!=" {
		op := e.peek()
		e.pos++
		r := e.unary()
		if op == "==" {
			v = v == r
		} else {
			v = v != r
		}
	}
	return v
}

func (e *condEval) unary() bool {
	switch tok := e.peek(); tok {
	case "!":
		e.pos++
		return !e.unary()
	case "(":
		e.pos++
		v := e.or()
		if e.peek() == ")" {
			e.pos++
		} else {
			e.pos = len(e.toks) + 1
		}
		return v
	case "true":
		e.pos++
		return true
	case "false", "":
		e.pos++
		return false
	default:
		e.pos++
		return e.defined[tok]
	}
}
