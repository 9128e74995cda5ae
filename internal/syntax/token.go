// Package syntax defines the immutable token, trivia and node model shared by
// the parser and the formatter.
package syntax

import "strings"

// TokenKind classifies a token.
type TokenKind int

const (
	// EOF is the zero-width token that carries the trivia at the end of a file.
	EOF TokenKind = iota
	// Identifier is a name, including contextual keywords such as var or when.
	Identifier
	// Keyword is a reserved word.
	Keyword
	// NumericLiteral is an integer or real literal.
	NumericLiteral
	// StringLiteral is a regular, verbatim, raw or interpolated string.
	StringLiteral
	// CharLiteral is a character literal.
	CharLiteral
	// Punctuation is an operator or separator.
	Punctuation
	// Bad is a character sequence the lexer could not classify.
	Bad
)

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Identifier:
		return "Identifier"
	case Keyword:
		return "Keyword"
	case NumericLiteral:
		return "NumericLiteral"
	case StringLiteral:
		return "StringLiteral"
	case CharLiteral:
		return "CharLiteral"
	case Punctuation:
		return "Punctuation"
	case Bad:
		return "Bad"
	}
	return "TokenKind(?)"
}

// Token is the smallest lexical unit. Tokens are never mutated once built;
// use the With* methods to derive a token with different trivia.
type Token struct {
	Kind     TokenKind
	Text     string
	Leading  []Trivia
	Trailing []Trivia

	// Missing marks a zero-width token synthesized during error recovery.
	Missing bool
}

// NewToken returns a token without trivia.
func NewToken(kind TokenKind, text string) *Token {
	return &Token{Kind: kind, Text: text}
}

// Is reports whether t is a keyword, identifier or punctuation with the given text.
func (t *Token) Is(text string) bool {
	if t == nil || t.Missing || t.Text != text {
		return false
	}
	return t.Kind == Keyword || t.Kind == Identifier || t.Kind == Punctuation
}

// IsAny reports whether t matches any of texts.
func (t *Token) IsAny(texts ...string) bool {
	for _, s := range texts {
		if t.Is(s) {
			return true
		}
	}
	return false
}

// IsWord reports whether the token text starts with a letter, digit or
// underscore, which means two adjacent words need whitespace between them.
func (t *Token) IsWord() bool {
	if t == nil || t.Text == "" {
		return false
	}
	switch t.Kind {
	case Identifier, Keyword, NumericLiteral:
		return true
	case StringLiteral:
		// Prefixed strings such as @"..." or $"..." still need a separator.
		return false
	}
	return false
}

// FullText returns leading trivia, text and trailing trivia concatenated.
func (t *Token) FullText() string {
	var b strings.Builder
	t.writeTo(&b)
	return b.String()
}

func (t *Token) writeTo(b *strings.Builder) {
	for _, tr := range t.Leading {
		b.WriteString(tr.Text)
	}
	b.WriteString(t.Text)
	for _, tr := range t.Trailing {
		b.WriteString(tr.Text)
	}
}

// WithLeading returns a copy of t with the given leading trivia.
func (t *Token) WithLeading(leading []Trivia) *Token {
	c := *t
	c.Leading = leading
	return &c
}

// WithTrailing returns a copy of t with the given trailing trivia.
func (t *Token) WithTrailing(trailing []Trivia) *Token {
	c := *t
	c.Trailing = trailing
	return &c
}

// WithTrivia returns a copy of t with both trivia lists replaced.
func (t *Token) WithTrivia(leading, trailing []Trivia) *Token {
	c := *t
	c.Leading = leading
	c.Trailing = trailing
	return &c
}

func (*Token) element() {}
