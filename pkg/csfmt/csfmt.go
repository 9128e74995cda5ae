// Package csfmt formats C# source text.
//
// Settings use the .editorconfig keys understood by the csfmt command, for
// example csharp_new_line_before_open_brace or indent_size. Unknown keys are
// ignored and invalid values fall back to the option's default.
package csfmt

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/parser"
	"github.com/donaldgifford/csfmt/internal/rules"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// Span is a half-open range of byte offsets into the source.
type Span = formatter.Span

// Edit replaces the source bytes Start..End with Text.
type Edit = formatter.Edit

// Span errors.
var (
	ErrSpanOutOfRange = formatter.ErrSpanOutOfRange
	ErrSpanInverted   = formatter.ErrSpanInverted
)

// Fragment selects what the source text holds.
type Fragment int

const (
	// Document is a complete compilation unit.
	Document Fragment = iota
	// Member is a single type member or type declaration.
	Member
	// Statement is a single statement.
	Statement
	// Expression is a single expression.
	Expression
)

// Options controls FormatSource.
type Options struct {
	// Settings are .editorconfig style key/value pairs.
	Settings map[string]string
	// Spans limits changes to these ranges. None formats everything.
	Spans []Span
	// ElasticOnly only fills in whitespace that generated code left
	// undecided.
	ElasticOnly bool
	// Fragment is the kind of source. The zero value is Document.
	Fragment Fragment
	// Logger receives formatter run summaries.
	Logger logr.Logger
}

// Result holds the formatted text and the edits that produce it from the
// source.
type Result struct {
	Text  string
	Edits []Edit
}

// Format formats the document src with settings, limited to spans when
// any are given.
func Format(ctx context.Context, src string, settings map[string]string, spans ...Span) (string, error) {
	res, err := FormatSource(ctx, src, Options{Settings: settings, Spans: spans})
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// FormatSource formats src according to opts.
func FormatSource(ctx context.Context, src string, opts Options) (*Result, error) {
	set := options.Default().Apply(opts.Settings)
	root := parse(src, opts.Fragment, parser.WithSymbols(set.Symbols()...))

	res, err := formatter.Format(ctx, root, set, formatter.Config{
		Spans:       opts.Spans,
		ElasticOnly: opts.ElasticOnly,
		Logger:      opts.Logger,
		Providers:   rules.Providers(),
	})
	if err != nil {
		return nil, err
	}
	return &Result{Text: res.Text, Edits: res.Edits}, nil
}

func parse(src string, f Fragment, opt parser.Option) *syntax.Node {
	switch f {
	case Member:
		return parser.ParseMember(src, opt)
	case Statement:
		return parser.ParseStatement(src, opt)
	case Expression:
		return parser.ParseExpression(src, opt)
	default:
		return parser.Parse(src, opt)
	}
}
