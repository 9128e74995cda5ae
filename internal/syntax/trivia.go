package syntax

import "strings"

// TriviaKind classifies a piece of trivia.
type TriviaKind int

const (
	// Whitespace is a run of spaces and tabs.
	Whitespace TriviaKind = iota
	// EndOfLine is a single line break (\n, \r\n or \r).
	EndOfLine
	// SingleLineComment is a // comment without its line break.
	SingleLineComment
	// MultiLineComment is a /* */ comment.
	MultiLineComment
	// SingleLineDocComment is a /// comment without its line break.
	SingleLineDocComment
	// MultiLineDocComment is a /** */ comment.
	MultiLineDocComment
	// Directive is a preprocessor line such as #if or #region, without its line break.
	Directive
	// DisabledText is source excluded by an inactive conditional section,
	// including its line breaks.
	DisabledText
	// Elastic is synthesized trivia whose layout the formatter decides.
	Elastic
)

func (k TriviaKind) String() string {
	switch k {
	case Whitespace:
		return "Whitespace"
	case EndOfLine:
		return "EndOfLine"
	case SingleLineComment:
		return "SingleLineComment"
	case MultiLineComment:
		return "MultiLineComment"
	case SingleLineDocComment:
		return "SingleLineDocComment"
	case MultiLineDocComment:
		return "MultiLineDocComment"
	case Directive:
		return "Directive"
	case DisabledText:
		return "DisabledText"
	case Elastic:
		return "Elastic"
	}
	return "TriviaKind(?)"
}

// Trivia is non-semantic text attached to a token.
type Trivia struct {
	Kind TriviaKind
	Text string
}

// Elastic trivia values. The marker has no text; the others carry the
// whitespace they stand for until the formatter replaces them.
var (
	ElasticMarker  = Trivia{Kind: Elastic}
	ElasticSpace   = Trivia{Kind: Elastic, Text: " "}
	ElasticNewLine = Trivia{Kind: Elastic, Text: "\n"}
)

// IsComment reports whether t is any kind of comment.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case SingleLineComment, MultiLineComment, SingleLineDocComment, MultiLineDocComment:
		return true
	}
	return false
}

// IsLayout reports whether t only affects layout (whitespace, line breaks or elastic).
func (t Trivia) IsLayout() bool {
	return t.Kind == Whitespace || t.Kind == EndOfLine || t.Kind == Elastic
}

// EndsLine reports whether nothing may follow t on the same line.
func (t Trivia) EndsLine() bool {
	switch t.Kind {
	case SingleLineComment, SingleLineDocComment, Directive:
		return true
	}
	return false
}

// LineBreaks counts the line breaks inside t.
func (t Trivia) LineBreaks() int {
	return CountLineBreaks(t.Text)
}

// CountLineBreaks counts \n, \r\n and lone \r sequences in s.
func CountLineBreaks(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			n++
		case '\r':
			n++
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		}
	}
	return n
}

// TriviaText concatenates the text of list.
func TriviaText(list []Trivia) string {
	var b strings.Builder
	for _, t := range list {
		b.WriteString(t.Text)
	}
	return b.String()
}

// HasElastic reports whether list contains elastic trivia.
func HasElastic(list []Trivia) bool {
	for _, t := range list {
		if t.Kind == Elastic {
			return true
		}
	}
	return false
}
