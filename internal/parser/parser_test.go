package parser

import (
	"strings"
	"testing"

	"github.com/donaldgifford/csfmt/internal/syntax"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "blank only", input: "\n\n  \n"},
		{name: "class", input: "class C { int x = 0; }\n"},
		{name: "namespace and usings", input: "using System;\nusing static System.Math;\nusing X = A.B;\nnamespace N.M\n{\n    class C { }\n}\n"},
		{name: "file scoped namespace", input: "namespace N;\nclass C { }\n"},
		{name: "method", input: "class C {\n  public static async Task<int> M<T>(ref int a, params int[] b) where T : class, new() { return await F(a); }\n}"},
		{name: "properties", input: "class C { int P { get; private set; } = 3; int Q => 1; int this[int i] { get => i; } }"},
		{name: "events and operators", input: "class C { event EventHandler E; event EventHandler F { add { } remove { } } public static C operator +(C a, C b) => a; public static implicit operator int(C c) => 0; ~C() { } C() : base(1) { } }"},
		{name: "shift operator", input: "class C { public static C operator >>(C a, int b) => a; }"},
		{name: "enum", input: "enum E : byte { A = 1, B, C, }"},
		{name: "delegate", input: "delegate void D<T>(T t) where T : struct;"},
		{name: "record", input: "public record Point(int X, int Y) : Base(X);\nrecord struct R { }"},
		{name: "attributes", input: "[Serializable, Obsolete(\"x\", error: true)]\n[assembly: Foo]\nclass C { [return: NotNull] int M([In] int x) => x; }"},
		{name: "statements", input: "class C { void M() {\n if (a) b(); else if (c) { d(); } else e();\n while (x) ;\n do { } while (y);\n for (int i = 0, j = 1; i < 10; i++, j--) { }\n foreach (var (a, b) in xs) { }\n lock (o) { }\n using (var s = F()) { }\n using var t = G();\n try { } catch (Exception e) when (e != null) { } finally { }\n goto L;\n L: return;\n} }"},
		{name: "switch", input: "class C { void M() { switch (x) { case 1: case 2 when y > 0: break; case string s: { break; } default: return; } } }"},
		{name: "expressions", input: "class C { void M() { var a = b ? c : d ?? e; x += y << 2 >> 1; z = (int)w + (A)(B) - -1; f = x is not null and > 3; g = h as string; k = new[] { 1, 2 }; l = new List<int> { 1 }; m = new { A = 1, B }; n = x => x + 1; o = async (a, b) => { await a; }; p = delegate (int q) { }; r = typeof(Dictionary<,>); s = a?.b?[0]!; t = x switch { > 0 => 1, _ => 0, }; u = ^1..; v = $\"{a}{{b}}\"; } }"},
		{name: "generic ambiguity", input: "class C { void M() { F(a < b, c > d); G<int>(x); if (a < b && c > d) { } } }"},
		{name: "local function", input: "class C { void M() { int Local(int x) => x; static void Other() { } } }"},
		{name: "preprocessor", input: "#define DEBUG\nclass C {\n#if DEBUG\n  int a;\n#else\n  int b;\n#endif\n#region R\n#endregion\n}\n"},
		{name: "comments", input: "/* header */\n// line\nclass C /* a */ { // b\n  /// <summary>doc</summary>\n  int x; }\n"},
		{name: "garbage", input: "class C { void M() { ) ] int x = ; } } }"},
		{name: "unterminated", input: "class C { void M() { \"abc"},
		{name: "top level statements", input: "Console.WriteLine(\"hi\");\nvar x = 1;\n"},
		{name: "crlf", input: "class C\r\n{\r\n}\r\n"},
		{name: "raw string", input: "var s = \"\"\"\n  raw \"quoted\"\n  \"\"\";"},
		{name: "verbatim string", input: "var s = @\"a\"\"b\nc\";"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Parse(tt.input)
			if got := n.FullText(); got != tt.input {
				t.Errorf("round trip mismatch\ngot:  %q\nwant: %q", got, tt.input)
			}
			if n.Kind != syntax.CompilationUnit {
				t.Errorf("root kind = %v, want CompilationUnit", n.Kind)
			}
			if last := n.LastToken(); last == nil || last.Kind != syntax.EOF {
				t.Errorf("last token is not EOF")
			}
		})
	}
}

func TestLexTrivia(t *testing.T) {
	toks := Lex("a // c\n  b;")
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	a, b := toks[0], toks[1]
	if got := syntax.TriviaText(a.Trailing); got != " // c\n" {
		t.Errorf("trailing of a = %q, want %q", got, " // c\n")
	}
	if got := syntax.TriviaText(b.Leading); got != "  " {
		t.Errorf("leading of b = %q, want %q", got, "  ")
	}
	if toks[3].Kind != syntax.EOF {
		t.Errorf("last token kind = %v, want EOF", toks[3].Kind)
	}
}

func TestLexTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a?.b", []string{"a", "?.", "b"}},
		{"a?.5:1", []string{"a", "?", ".5", ":", "1"}},
		{"x>>=1", []string{"x", ">", ">", "=", "1"}},
		{"List<List<int>>", []string{"List", "<", "List", "<", "int", ">", ">"}},
		{"1..2", []string{"1", "..", "2"}},
		{"0x1F_u 1.5e-3f 10UL", []string{"0x1F_u", "1.5e-3f", "10UL"}},
		{"$\"a{b + \"}\"}c\"", []string{"$\"a{b + \"}\"}c\""}},
		{"@class", []string{"@class"}},
		{"'\\''", []string{"'\\''"}},
		{"a=>b", []string{"a", "=>", "b"}},
		{"\"x\"u8", []string{"\"x\"u8"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []string
			for _, tok := range Lex(tt.input) {
				if tok.Kind != syntax.EOF {
					got = append(got, tok.Text)
				}
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Lex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKeywordsAndContextualWords(t *testing.T) {
	toks := Lex("class var async when")
	want := []syntax.TokenKind{syntax.Keyword, syntax.Identifier, syntax.Identifier, syntax.Identifier}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %q kind = %v, want %v", toks[i].Text, toks[i].Kind, k)
		}
	}
}

func TestDirectivesAreLeadingTrivia(t *testing.T) {
	toks := Lex("#if A\nx\n#else\ny\n#endif\nz")
	// With A undefined, x is disabled text and y is a token.
	var words []string
	for _, tok := range toks {
		if tok.Kind == syntax.Identifier {
			words = append(words, tok.Text)
		}
	}
	if strings.Join(words, ",") != "y,z" {
		t.Fatalf("tokens = %v, want [y z]", words)
	}
	y := toks[0]
	var kinds []syntax.TriviaKind
	for _, tr := range y.Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []syntax.TriviaKind{syntax.Directive, syntax.EndOfLine, syntax.DisabledText, syntax.Directive, syntax.EndOfLine}
	if len(kinds) != len(want) {
		t.Fatalf("leading kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("leading[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}
	if y.Leading[0].Text != "#if A" {
		t.Errorf("directive text = %q, want %q", y.Leading[0].Text, "#if A")
	}
	if y.Leading[2].Text != "x\n" {
		t.Errorf("disabled text = %q, want %q", y.Leading[2].Text, "x\n")
	}
}

func TestDirectiveAfterTokenOnSameLine(t *testing.T) {
	toks := Lex("class C\n{\n}#line default\n")
	last := toks[len(toks)-1]
	if last.Kind != syntax.EOF {
		t.Fatalf("last token kind = %v, want EOF", last.Kind)
	}
	for _, tok := range toks {
		if tok.Kind == syntax.Bad {
			t.Errorf("unexpected bad token %q", tok.Text)
		}
	}
	if len(last.Leading) == 0 || last.Leading[0].Kind != syntax.Directive || last.Leading[0].Text != "#line default" {
		t.Errorf("EOF leading = %v, want #line default directive first", last.Leading)
	}
}

func TestDirectiveSymbols(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		symbols []string
		want    string
	}{
		{name: "defined by option", input: "#if A\nx\n#endif\n", symbols: []string{"A"}, want: "x"},
		{name: "undefined", input: "#if A\nx\n#endif\ny", want: "y"},
		{name: "define directive", input: "#define B\n#if B\nx\n#endif\n", want: "x"},
		{name: "undef directive", input: "#undef A\n#if A\nx\n#endif\ny", symbols: []string{"A"}, want: "y"},
		{name: "elif", input: "#if A\na\n#elif B\nb\n#else\nc\n#endif\n", symbols: []string{"B"}, want: "b"},
		{name: "nested inactive", input: "#if A\n#if true\na\n#endif\n#endif\nb", want: "b"},
		{name: "operators", input: "#if (A || B) && !C\nx\n#endif\n", symbols: []string{"B"}, want: "x"},
		{name: "equality", input: "#if A == false\nx\n#endif\n", want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var words []string
			for _, tok := range Lex(tt.input, WithSymbols(tt.symbols...)) {
				if tok.Kind == syntax.Identifier {
					words = append(words, tok.Text)
				}
			}
			if strings.Join(words, ",") != tt.want {
				t.Errorf("active tokens = %v, want %q", words, tt.want)
			}
		})
	}
}

func TestEvalCondition(t *testing.T) {
	defined := map[string]bool{"A": true}
	tests := []struct {
		expr string
		want bool
	}{
		{"A", true},
		{"B", false},
		{"!B", true},
		{"A && B", false},
		{"A || B", true},
		{"(A)", true},
		{"true", true},
		{"A == true", true},
		{"A != B", true},
		{"", false},
		{"(A", false},
		{"A B", false},
	}
	for _, tt := range tests {
		if got := evalCondition(tt.expr, defined); got != tt.want {
			t.Errorf("evalCondition(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

// find returns the first node of kind in n, depth first.
func find(n *syntax.Node, kind syntax.NodeKind) *syntax.Node {
	if n.Kind == kind {
		return n
	}
	for _, c := range n.Children {
		if cn, ok := c.(*syntax.Node); ok {
			if f := find(cn, kind); f != nil {
				return f
			}
		}
	}
	return nil
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  syntax.NodeKind
		text  string
	}{
		{name: "cast", input: "x = (int)y;", kind: syntax.CastExpression, text: "(int)y"},
		{name: "parenthesized not cast", input: "x = (a) - b;", kind: syntax.ParenthesizedExpression, text: "(a)"},
		{name: "generic invocation", input: "F<int>(x);", kind: syntax.GenericName, text: "F<int>"},
		{name: "less than", input: "b = a < c;", kind: syntax.BinaryExpression, text: "a < c"},
		{name: "simple lambda", input: "f = x => x;", kind: syntax.SimpleLambdaExpression, text: "x => x"},
		{name: "paren lambda", input: "f = (a, b) => a;", kind: syntax.ParenthesizedLambdaExpression, text: "(a, b) => a"},
		{name: "tuple", input: "t = (1, 2);", kind: syntax.TupleExpression, text: "(1, 2)"},
		{name: "declaration pattern", input: "b = o is string s;", kind: syntax.DeclarationPattern, text: "string s"},
		{name: "not pattern", input: "b = o is not null;", kind: syntax.NotPattern, text: "not null"},
		{name: "relational pattern", input: "b = o is >= 3;", kind: syntax.RelationalPattern, text: ">= 3"},
		{name: "shift", input: "x = a >> 2;", kind: syntax.BinaryExpression, text: "a >> 2"},
		{name: "compound shift", input: "x >>= 2;", kind: syntax.AssignmentExpression, text: "x >>= 2"},
		{name: "conditional", input: "x = a ? b : c;", kind: syntax.ConditionalExpression, text: "a ? b : c"},
		{name: "nullable decl", input: "int? x = null;", kind: syntax.NullableType, text: "int?"},
		{name: "array type", input: "int[,] x;", kind: syntax.ArrayRankSpecifier, text: "[,]"},
		{name: "labeled", input: "L: int i = 10;", kind: syntax.LabeledStatement, text: "L: int i = 10;"},
		{name: "out var", input: "F(out var x);", kind: syntax.DeclarationExpression, text: "var x"},
		{name: "named argument", input: "F(name: 1);", kind: syntax.NameColon, text: "name:"},
		{name: "interpolated", input: "s = $\"{a}\";", kind: syntax.LiteralExpression, text: "$\"{a}\""},
		{name: "local function", input: "int F(int x) { return x; }", kind: syntax.LocalFunctionStatement, text: "int F(int x) { return x; }"},
		{name: "await", input: "await Task.Delay(1);", kind: syntax.AwaitExpression, text: "await Task.Delay(1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ParseStatement(tt.input)
			if n.FullText() != tt.input {
				t.Fatalf("round trip mismatch: %q", n.FullText())
			}
			f := find(n, tt.kind)
			if f == nil {
				t.Fatalf("no %v in:\n%s", tt.kind, n.Dump())
			}
			if got := strings.TrimSpace(f.FullText()); got != tt.text {
				t.Errorf("%v text = %q, want %q", tt.kind, got, tt.text)
			}
		})
	}
}

func TestParseSwitchLabels(t *testing.T) {
	n := ParseStatement("switch (x) { case 1: break; case int i when i > 0: break; default: break; }")
	sw := find(n, syntax.SwitchStatement)
	if sw == nil {
		t.Fatalf("no switch statement:\n%s", n.Dump())
	}
	var labels []syntax.NodeKind
	for _, c := range sw.Children {
		sec, ok := c.(*syntax.Node)
		if !ok || sec.Kind != syntax.SwitchSection {
			continue
		}
		for _, sc := range sec.Children {
			if l, ok := sc.(*syntax.Node); ok && l.Kind.Category() == syntax.CategoryClause {
				labels = append(labels, l.Kind)
			}
		}
	}
	want := []syntax.NodeKind{syntax.CaseSwitchLabel, syntax.CasePatternSwitchLabel, syntax.DefaultSwitchLabel}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %v, want %v", i, labels[i], want[i])
		}
	}
}

func TestParseMissingTokens(t *testing.T) {
	n := ParseStatement("if (x")
	if n.FullText() != "if (x" {
		t.Fatalf("round trip mismatch: %q", n.FullText())
	}
	missing := 0
	for tok := range n.Tokens() {
		if tok.Missing {
			missing++
			if tok.Text != "" {
				t.Errorf("missing token has text %q", tok.Text)
			}
		}
	}
	if missing == 0 {
		t.Errorf("expected missing tokens in:\n%s", n.Dump())
	}
}

func TestParseMemberFragment(t *testing.T) {
	n := ParseMember("int X { get; set; }\n")
	if n.Kind != syntax.PropertyDeclaration {
		t.Errorf("kind = %v, want PropertyDeclaration", n.Kind)
	}
	if n.FullText() != "int X { get; set; }\n" {
		t.Errorf("round trip mismatch: %q", n.FullText())
	}
}

func TestParseExpressionKeepsTrailingTrivia(t *testing.T) {
	n := ParseExpression("a + b // sum\n")
	if n.Kind != syntax.BinaryExpression {
		t.Errorf("kind = %v, want BinaryExpression", n.Kind)
	}
	if n.FullText() != "a + b // sum\n" {
		t.Errorf("round trip mismatch: %q", n.FullText())
	}
}

func TestNeedsSeparator(t *testing.T) {
	tests := []struct {
		left, right string
		want        bool
	}{
		{"int", "x", true},
		{"int", "[", false},
		{"(", "x", false},
		{"+", "+", true},
		{"+", "-", false},
		{"-", "-", true},
		{"/", "/", true},
		{"/", "*", true},
		{">", ">", true},
		{">", "=", true},
		{">", ")", false},
		{"?", ".", true},
		{".", "5", true},
		{"x", ".", false},
		{"1", "f", true},
		{"1", "x", false},
		{"&", "&", true},
		{"", "x", false},
	}

	for _, tt := range tests {
		if got := NeedsSeparator(tt.left, tt.right); got != tt.want {
			t.Errorf("NeedsSeparator(%q, %q) = %v, want %v", tt.left, tt.right, got, tt.want)
		}
	}
}
