package format

import (
	"testing"

	"github.com/donaldgifford/csfmt/internal/options"
)

func TestBlockIndent(t *testing.T) {
	body := "class C\n{\n    void M()\n    {\n        x();\n    }\n}\n"

	tests := []struct {
		name  string
		set   *options.Set
		input string
		want  string
	}{
		{
			name:  "nested bodies",
			input: "namespace N\n{\nclass C\n{\nint f;\n}\n}\n",
			want:  "namespace N\n{\n    class C\n    {\n        int f;\n    }\n}\n",
		},
		{
			name:  "indented braces",
			set:   settings("csharp_indent_braces", "true"),
			input: body,
			want:  "class C\n    {\n    void M()\n        {\n        x();\n        }\n    }\n",
		},
		{
			name:  "block contents not indented",
			set:   settings("csharp_indent_block_contents", "false"),
			input: body,
			want:  "class C\n{\n    void M()\n    {\n    x();\n    }\n}\n",
		},
		{
			name:  "embedded statement",
			input: method("if (a)", "b();"),
			want:  method("if (a)", "    b();"),
		},
		{
			name:  "continuation keeps its offset",
			input: "class C\n{\nvoid M()\n{\nx = a +\n    b;\n}\n}\n",
			want:  method("x = a +", "    b;"),
		},
		{
			name:  "array initializer",
			input: method("int[] a = new int[]", "{", "1,", "2", "};"),
			want:  method("int[] a = new int[]", "{", "    1,", "    2", "};"),
		},
		{
			name:  "lambda brace keeps its offset",
			input: method("Func<int, int> f = x =>", "         {", "return x;", "};"),
			want:  method("Func<int, int> f = x =>", "         {", "             return x;", "         };"),
		},
		{
			name: "nested lambda braces keep their offsets",
			input: "class C\n{\n    C()\n    {\n        System.Func<int, int> ret = x =>\n" +
				"                    {\nSystem.Func<int, int> ret2 = y =>\n                    {\n" +
				"                            y++;\n                            return y;\n    };\n" +
				"                        return x + 1;\n        };\n    }\n}\n",
			want: "class C\n{\n    C()\n    {\n        System.Func<int, int> ret = x =>\n" +
				"                    {\n                        System.Func<int, int> ret2 = y =>\n" +
				"                                            {\n" +
				"                                                y++;\n" +
				"                                                return y;\n" +
				"                                            };\n" +
				"                        return x + 1;\n                    };\n    }\n}\n",
		},
		{
			name:  "attribute on its own line",
			input: "class C\n{\n[Obsolete]\n      void M()\n    {\n    }\n}\n",
			want:  "class C\n{\n    [Obsolete]\n    void M()\n    {\n    }\n}\n",
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
