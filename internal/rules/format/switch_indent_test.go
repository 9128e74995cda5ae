package format

import (
	"fmt"
	"strings"
	"testing"
)

func TestSwitchIndent(t *testing.T) {
	input := method("switch (x)", "{", "case 1:", "y();", "break;", "default:", "{", "z();", "}", "}")

	// label, stmt and brace are the columns of the labels, the case 1
	// statements and the default block inside the switch body.
	tests := []struct {
		labels, cases, block string
		label, stmt, brace   int
	}{
		{"true", "true", "true", 4, 8, 8},
		{"true", "true", "false", 4, 8, 4},
		{"true", "false", "true", 4, 4, 8},
		{"true", "false", "false", 4, 4, 4},
		{"false", "true", "true", 0, 4, 4},
		{"false", "true", "false", 0, 4, 0},
		{"false", "false", "true", 0, 0, 4},
		{"false", "false", "false", 0, 0, 0},
	}

	pad := func(n int, s string) string { return strings.Repeat(" ", n) + s }
	for _, tt := range tests {
		name := fmt.Sprintf("labels=%s cases=%s block=%s", tt.labels, tt.cases, tt.block)
		t.Run(name, func(t *testing.T) {
			set := settings(
				"csharp_indent_switch_labels", tt.labels,
				"csharp_indent_case_contents", tt.cases,
				"csharp_indent_case_contents_when_block", tt.block,
			)
			want := method("switch (x)", "{",
				pad(tt.label, "case 1:"), pad(tt.stmt, "y();"), pad(tt.stmt, "break;"),
				pad(tt.label, "default:"), pad(tt.brace, "{"), pad(tt.brace+4, "z();"), pad(tt.brace, "}"),
				"}")
			if got := run(t, set, input); got != want {
				t.Errorf("want %q, got %q", want, got)
			}
		})
	}
}

func TestSwitchIndentClosingComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "comment after last section",
			input: method("switch (x)", "{", "case 1:", "y();", "// done", "}"),
			want:  method("switch (x)", "{", "    case 1:", "        y();", "        // done", "}"),
		},
		{
			name:  "comment between sections",
			input: method("switch (x)", "{", "case 1:", "y();", "// next", "case 2:", "z();", "}"),
			want:  method("switch (x)", "{", "    case 1:", "        y();", "    // next", "    case 2:", "        z();", "}"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, nil, tt.input); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
