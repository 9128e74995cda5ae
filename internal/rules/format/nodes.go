// Package format holds the operation providers, one per formatting concern.
package format

import (
	"github.com/donaldgifford/csfmt/internal/formatter"
	"github.com/donaldgifford/csfmt/internal/options"
	"github.com/donaldgifford/csfmt/internal/syntax"
)

// braces returns the direct brace tokens of n. ok is false when either
// brace is absent or missing.
func braces(c *formatter.Context, n *syntax.Ref) (open, close int, ok bool) {
	open = n.Tok(c.Tree, "{")
	close = n.LastTok(c.Tree, "}")
	return open, close, open >= 0 && close > open
}

// between returns the child nodes of n that lie strictly inside open..close.
func between(n *syntax.Ref, open, close int) []*syntax.Ref {
	var out []*syntax.Ref
	for _, k := range n.Kids() {
		if !k.Empty() && k.First > open && k.Last < close {
			out = append(out, k)
		}
	}
	return out
}

// items returns the members or statements listed in the body of n.
func items(c *formatter.Context, n *syntax.Ref) []*syntax.Ref {
	switch {
	case n.Is(syntax.CompilationUnit):
		var out []*syntax.Ref
		for _, k := range n.Kids() {
			if !k.Empty() && !k.Is(syntax.SkippedTokens) {
				out = append(out, k)
			}
		}
		return out
	case n.Is(syntax.FileScopedNamespaceDeclaration):
		semi := n.Tok(c.Tree, ";")
		if semi < 0 {
			return nil
		}
		return between(n, semi, n.Last+1)
	case n.Is(syntax.SwitchStatement):
		return nil
	}
	open, close, ok := braces(c, n)
	if !ok {
		return nil
	}
	return between(n, open, close)
}

// embedded returns the statement governed by a control statement, else
// clause or label, or nil.
func embedded(n *syntax.Ref) *syntax.Ref {
	if !n.Is(syntax.IfStatement, syntax.ElseClause, syntax.WhileStatement, syntax.DoStatement,
		syntax.ForStatement, syntax.ForEachStatement, syntax.UsingStatement, syntax.LockStatement,
		syntax.FixedStatement, syntax.LabeledStatement) {
		return nil
	}
	var s *syntax.Ref
	for _, k := range n.Kids() {
		if k.Kind.IsStatement() {
			s = k
		}
	}
	if s == nil || s.Empty() {
		return nil
	}
	return s
}

// stacked reports whether s continues its parent on the same indentation,
// as in else if or a using statement nested directly in another.
func stacked(parent, s *syntax.Ref) bool {
	switch {
	case parent.Is(syntax.ElseClause):
		return s.Is(syntax.IfStatement)
	case parent.Is(syntax.UsingStatement):
		return s.Is(syntax.UsingStatement)
	case parent.Is(syntax.FixedStatement):
		return s.Is(syntax.FixedStatement)
	}
	return false
}

// methodLike reports whether k declares a callable with a parameter list.
func methodLike(k syntax.NodeKind) bool {
	switch k {
	case syntax.MethodDeclaration, syntax.ConstructorDeclaration, syntax.DestructorDeclaration,
		syntax.OperatorDeclaration, syntax.ConversionOperatorDeclaration,
		syntax.LocalFunctionStatement, syntax.DelegateDeclaration:
		return true
	}
	return false
}

// braceKind classifies the brace pair owned by n for NewLinesForBraces.
// ok is false for braces no option governs.
func braceKind(n *syntax.Ref) (options.Flags, bool) {
	switch {
	case n.Kind.IsTypeDeclaration(), n.Is(syntax.NamespaceDeclaration):
		return options.BraceTypes, true
	case n.Is(syntax.AccessorList):
		return options.BraceProperties, true
	case n.Is(syntax.AnonymousObjectCreationExpression):
		return options.BraceAnonymousTypes, true
	case n.Is(syntax.SwitchStatement):
		return options.BraceControlBlocks, true
	case n.Is(syntax.InitializerExpression):
		if n.Parent.Is(syntax.ObjectCreationExpression, syntax.ImplicitObjectCreationExpression,
			syntax.ArrayCreationExpression, syntax.ImplicitArrayCreationExpression,
			syntax.StackAllocArrayCreationExpression) {
			return options.BraceObjectCollectionArrayInitializers, true
		}
		return 0, false
	case n.Is(syntax.Block):
		p := n.Parent
		switch {
		case p == nil:
			return 0, false
		case p.Is(syntax.LocalFunctionStatement):
			return options.BraceLocalFunctions, true
		case methodLike(p.Kind):
			return options.BraceMethods, true
		case p.Is(syntax.AccessorDeclaration):
			return options.BraceAccessors, true
		case p.Is(syntax.AnonymousMethodExpression):
			return options.BraceAnonymousMethods, true
		case p.Kind.IsLambda():
			return options.BraceLambdas, true
		case p.Kind.IsStatement(), p.Kind.Category() == syntax.CategoryClause:
			return options.BraceControlBlocks, true
		}
	}
	return 0, false
}

// bodyBraces reports whether n owns a brace pair laid out like a block:
// braces pinned to the enclosing indentation and contents indented.
func bodyBraces(n *syntax.Ref) bool {
	return n.Kind.IsTypeDeclaration() || n.Is(syntax.NamespaceDeclaration, syntax.AccessorList) ||
		(n.Is(syntax.Block) && !inLambda(n))
}

// inLambda reports whether the block n is the body of a lambda or
// anonymous method.
func inLambda(n *syntax.Ref) bool {
	return n.Is(syntax.Block) && n.Parent != nil && n.Parent.Kind.IsLambda()
}

// declaration returns the declaration a body block or accessor list
// belongs to, or nil for statement blocks.
func declaration(n *syntax.Ref) *syntax.Ref {
	switch {
	case n.Kind.IsTypeDeclaration(), n.Is(syntax.NamespaceDeclaration):
		return n
	case n.Is(syntax.AccessorList):
		return n.Parent
	case n.Is(syntax.Block):
		if p := n.Parent; p != nil && (methodLike(p.Kind) || p.Is(syntax.AccessorDeclaration)) {
			return p
		}
	}
	return nil
}

// collection reports whether n is a braced or bracketed element list whose
// lines are laid out relative to the expression that introduces it.
func collection(n *syntax.Ref) bool {
	return n.Is(syntax.InitializerExpression, syntax.AnonymousObjectCreationExpression,
		syntax.SwitchExpression, syntax.PropertyPatternClause)
}

// opener returns the opening delimiter of a collection, { or [.
func opener(c *formatter.Context, n *syntax.Ref) (open, close int, ok bool) {
	if open, close, ok = braces(c, n); ok {
		return open, close, true
	}
	open = n.Tok(c.Tree, "[")
	close = n.LastTok(c.Tree, "]")
	return open, close, n.Is(syntax.InitializerExpression) && open >= 0 && close > open
}

func boolDelta(b bool) int {
	if b {
		return 1
	}
	return 0
}
