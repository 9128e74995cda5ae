package format

import (
	"context"
	"strings"
	"testing"

	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/parser"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// providers mirrors the registration order of package rules, which cannot
// be imported here.
func providers() []formatter.Provider {
	return []formatter.Provider{
		&TokenSpacing{},
		&BracePlacement{},
		&StatementLines{},
		&BlockIndent{},
		&SwitchIndent{},
		&LabelIndent{},
		&Suppression{},
		&ChainWrap{},
		&ConditionalWrap{},
		&ParameterWrap{},
		&ElasticMembers{},
	}
}

// run formats src with every provider. A nil set means the defaults.
func run(t *testing.T, set *options.Set, src string) string {
	t.Helper()
	return runRoot(t, set, parser.Parse(src))
}

func runRoot(t *testing.T, set *options.Set, root *syntax.Node) string {
	t.Helper()
	if set == nil {
		set = options.Default()
	}
	res, err := formatter.Format(context.Background(), root, set, formatter.Config{Providers: providers()})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	return res.Text
}

// method wraps statements in a class and method body. Each line is
// indented to the body's column.
func method(lines ...string) string {
	var b strings.Builder
	b.WriteString("class C\n{\n    void M()\n    {\n")
	for _, l := range lines {
		if l != "" {
			b.WriteString("        ")
			b.WriteString(l)
		}
		b.WriteString("\n")
	}
	b.WriteString("    }\n}\n")
	return b.String()
}

// settings builds an option set from configuration keys.
func settings(kv ...string) *options.Set {
	m := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return options.FromMap(m)
}

// last returns the last node of kind in pre-order.
func last(tree *syntax.Tree, kind syntax.NodeKind) *syntax.Ref {
	var found *syntax.Ref
	tree.Walk(func(r *syntax.Ref) bool {
		if r.Is(kind) {
			found = r
		}
		return true
	})
	return found
}

func TestBraceKind(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind syntax.NodeKind
		want options.Flags
		ok   bool
	}{
		{"type", "class C { }", syntax.ClassDeclaration, options.BraceTypes, true},
		{"method", "class C { void M() { } }", syntax.Block, options.BraceMethods, true},
		{"control", "class C { void M() { if (a) { } } }", syntax.Block, options.BraceControlBlocks, true},
		{"lambda", "class C { void M() { F(x => { }); } }", syntax.Block, options.BraceLambdas, true},
		{"anonymous method", "class C { void M() { F(delegate { }); } }", syntax.Block, options.BraceAnonymousMethods, true},
		{"local function", "class C { void M() { void L() { } } }", syntax.Block, options.BraceLocalFunctions, true},
		{"accessor", "class C { int P { get { return 1; } } }", syntax.Block, options.BraceAccessors, true},
		{"property", "class C { int P { get; set; } }", syntax.AccessorList, options.BraceProperties, true},
		{"switch", "class C { void M() { switch (a) { } } }", syntax.SwitchStatement, options.BraceControlBlocks, true},
		{"anonymous type", "class C { object o = new { X = 1 }; }", syntax.AnonymousObjectCreationExpression, options.BraceAnonymousTypes, true},
		{"array initializer", "class C { int[] a = new int[] { 1 }; }", syntax.InitializerExpression, options.BraceObjectCollectionArrayInitializers, true},
		{"nested initializer", "class C { int[,] a = new int[,] { { 1 } }; }", syntax.InitializerExpression, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := syntax.NewTree(parser.Parse(tt.src))
			n := last(tree, tt.kind)
			if n == nil {
				t.Fatalf("no %v in %q", tt.kind, tt.src)
			}
			got, ok := braceKind(n)
			if got != tt.want || ok != tt.ok {
				t.Errorf("want (%v, %v), got (%v, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestEmbedded(t *testing.T) {
	tree := syntax.NewTree(parser.Parse("class C { void M() { if (a) b(); else if (c) { } while (d) e(); } }"))

	loop := last(tree, syntax.WhileStatement)
	if s := embedded(loop); !s.Is(syntax.ExpressionStatement) {
		t.Errorf("want while body to be an expression statement, got %v", s)
	}

	els := last(tree, syntax.ElseClause)
	s := embedded(els)
	if !s.Is(syntax.IfStatement) {
		t.Fatalf("want else body to be an if statement, got %v", s)
	}
	if !stacked(els, s) {
		t.Error("want else if to be stacked")
	}
	if embedded(last(tree, syntax.Block)) != nil {
		t.Error("want no embedded statement in a block")
	}
}

func TestProviderNames(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range providers() {
		name := p.Name()
		if name == "" {
			t.Errorf("provider %T has no name", p)
		}
		if seen[name] {
			t.Errorf("duplicate provider name %q", name)
		}
		seen[name] = true
	}
}
