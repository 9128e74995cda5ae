package format

import (
	"testing"

	"github.com/donaldgifford/csfmt/internal/options"
)

func TestLabelIndent(t *testing.T) {
	input := method("x();", "L:", "y();")
	wrap := func(label string) string {
		return "class C\n{\n    void M()\n    {\n        x();\n" + label + "\n        y();\n    }\n}\n"
	}

	tests := []struct {
		name string
		set  *options.Set
		want string
	}{
		{"one less", nil, wrap("    L:")},
		{"flush left", settings("csharp_indent_labels", "flush_left"), wrap("L:")},
		{"no change", settings("csharp_indent_labels", "no_change"), wrap("        L:")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.set, input); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLabelIndentNested(t *testing.T) {
	input := method("if (a)", "{", "while (b)", "{", "L:", "x();", "}", "}")
	body := func(label string) string {
		return "class C\n{\n    void M()\n    {\n        if (a)\n        {\n            while (b)\n            {\n" +
			label + "\n                x();\n            }\n        }\n    }\n}\n"
	}

	tests := []struct {
		name string
		set  *options.Set
		want string
	}{
		{"one less", nil, body("            L:")},
		{"flush left", settings("csharp_indent_labels", "flush_left"), body("L:")},
		{"no change", settings("csharp_indent_labels", "no_change"), body("                L:")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.set, input); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
