package format

import (
	"testing"

	"github.com/donaldgifford/csfmt/internal/options"
)

func TestBracePlacement(t *testing.T) {
	allman := "class C\n{\n    void M()\n    {\n        if (x)\n        {\n            y();\n        }\n" +
		"        else\n        {\n            z();\n        }\n    }\n}\n"
	kr := "class C {\n    void M() {\n        if (x) {\n            y();\n        } else {\n            z();\n        }\n    }\n}\n"

	tests := []struct {
		name  string
		set   *options.Set
		input string
		want  string
	}{
		{
			name:  "open braces on new lines",
			input: "class C {\nvoid M() {\nif (x) {\ny();\n} else {\nz();\n}\n}\n}\n",
			want:  allman,
		},
		{
			name: "open braces on the same line",
			set: settings(
				"csharp_new_line_before_open_brace", "none",
				"csharp_new_line_before_else", "false",
			),
			input: allman,
			want:  kr,
		},
		{
			name: "catch and finally after brace",
			set: settings(
				"csharp_new_line_before_catch", "false",
				"csharp_new_line_before_finally", "false",
			),
			input: method("try", "{", "    a();", "}", "catch (E e)", "{", "}", "finally", "{", "}"),
			want:  method("try", "{", "    a();", "} catch (E e)", "{", "} finally", "{", "}"),
		},
		{
			name:  "do while",
			input: method("do", "{", "    x++;", "}", "while (x < 3);"),
			want:  method("do", "{", "    x++;", "} while (x < 3);"),
		},
		{
			name:  "else if",
			input: method("if (a)", "{", "}", "else", "if (b)", "{", "}"),
			want:  method("if (a)", "{", "}", "else if (b)", "{", "}"),
		},
		{
			name:  "object initializer",
			input: method("var p = new P {", "A = 1, B = 2 };"),
			want:  method("var p = new P", "{", "    A = 1,", "    B = 2", "};"),
		},
		{
			name:  "case block brace on new line",
			input: method("switch (x) {", "case 1: {", "break;", "}", "}"),
			want:  method("switch (x)", "{", "    case 1:", "        {", "            break;", "        }", "}"),
		},
		{
			name:  "case block brace on label line",
			set:   settings("csharp_new_line_before_open_brace", "types,methods"),
			input: method("switch (x)", "{", "case 1:", "{", "break;", "}", "}"),
			want:  method("switch (x) {", "    case 1: {", "            break;", "        }", "}"),
		},
		{
			name:  "array elements keep their lines",
			input: method("int[] arr = {1,2,", "3,4", "};"),
			want:  method("int[] arr = { 1, 2,", "    3, 4", "};"),
		},
		{
			name:  "collection elements keep their lines",
			input: method("var l = new List<int>{1,2,", "3};"),
			want:  method("var l = new List<int>", "{ 1, 2,", "    3 };"),
		},
		{
			name:  "lambda body",
			input: method("F(x => {", "return x;", "});"),
			want:  method("F(x =>", "{", "    return x;", "});"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.set, tt.input); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
