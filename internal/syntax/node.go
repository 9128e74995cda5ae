package syntax

import (
	"fmt"
	"iter"
	"strings"
)

// Element is a child of a Node: either a *Node or a *Token.
type Element interface {
	element()
}

// Node is a composite construct owning an ordered list of child tokens and
// nodes. Nodes are persistent: rewriting produces new nodes and shares every
// unchanged subtree with the original.
type Node struct {
	Kind     NodeKind
	Children []Element
}

// NewNode builds a node, dropping nil children.
func NewNode(kind NodeKind, children ...Element) *Node {
	n := &Node{Kind: kind, Children: make([]Element, 0, len(children))}
	for _, c := range children {
		switch v := c.(type) {
		case *Node:
			if v != nil {
				n.Children = append(n.Children, v)
			}
		case *Token:
			if v != nil {
				n.Children = append(n.Children, v)
			}
		}
	}
	return n
}

func (*Node) element() {}

// Tokens yields every token under n in document order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.walkTokens(yield)
	}
}

func (n *Node) walkTokens(yield func(*Token) bool) bool {
	for _, c := range n.Children {
		switch v := c.(type) {
		case *Token:
			if !yield(v) {
				return false
			}
		case *Node:
			if !v.walkTokens(yield) {
				return false
			}
		}
	}
	return true
}

// FirstToken returns the first token under n, or nil for an empty node.
func (n *Node) FirstToken() *Token {
	for t := range n.Tokens() {
		return t
	}
	return nil
}

// LastToken returns the last token under n, or nil for an empty node.
func (n *Node) LastToken() *Token {
	for i := len(n.Children) - 1; i >= 0; i-- {
		switch v := n.Children[i].(type) {
		case *Token:
			return v
		case *Node:
			if t := v.LastToken(); t != nil {
				return t
			}
		}
	}
	return nil
}

// FullText reconstructs the source text of n including all trivia.
func (n *Node) FullText() string {
	var b strings.Builder
	for t := range n.Tokens() {
		t.writeTo(&b)
	}
	return b.String()
}

// Rewrite returns a tree in which every token is replaced by fn(token).
// Subtrees whose tokens are all returned unchanged are shared.
func (n *Node) Rewrite(fn func(*Token) *Token) *Node {
	var changed bool
	children := make([]Element, len(n.Children))
	for i, c := range n.Children {
		switch v := c.(type) {
		case *Token:
			nt := fn(v)
			if nt != v {
				changed = true
			}
			children[i] = nt
		case *Node:
			nn := v.Rewrite(fn)
			if nn != v {
				changed = true
			}
			children[i] = nn
		}
	}
	if !changed {
		return n
	}
	return &Node{Kind: n.Kind, Children: children}
}

// Dump renders n as an indented outline, used in tests and debugging.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), n.Kind)
	for _, c := range n.Children {
		switch v := c.(type) {
		case *Token:
			missing := ""
			if v.Missing {
				missing = " (missing)"
			}
			fmt.Fprintf(b, "%s%s %q%s\n", strings.Repeat("  ", depth+1), v.Kind, v.Text, missing)
		case *Node:
			v.dump(b, depth+1)
		}
	}
}

func (k NodeKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

var kindNames = map[NodeKind]string{
	CompilationUnit:                   "CompilationUnit",
	UsingDirective:                    "UsingDirective",
	ExternAliasDirective:              "ExternAliasDirective",
	NamespaceDeclaration:              "NamespaceDeclaration",
	FileScopedNamespaceDeclaration:    "FileScopedNamespaceDeclaration",
	ClassDeclaration:                  "ClassDeclaration",
	StructDeclaration:                 "StructDeclaration",
	InterfaceDeclaration:              "InterfaceDeclaration",
	RecordDeclaration:                 "RecordDeclaration",
	EnumDeclaration:                   "EnumDeclaration",
	EnumMemberDeclaration:             "EnumMemberDeclaration",
	DelegateDeclaration:               "DelegateDeclaration",
	FieldDeclaration:                  "FieldDeclaration",
	EventFieldDeclaration:             "EventFieldDeclaration",
	MethodDeclaration:                 "MethodDeclaration",
	OperatorDeclaration:               "OperatorDeclaration",
	ConversionOperatorDeclaration:     "ConversionOperatorDeclaration",
	ConstructorDeclaration:            "ConstructorDeclaration",
	ConstructorInitializer:            "ConstructorInitializer",
	DestructorDeclaration:             "DestructorDeclaration",
	PropertyDeclaration:               "PropertyDeclaration",
	IndexerDeclaration:                "IndexerDeclaration",
	EventDeclaration:                  "EventDeclaration",
	AccessorList:                      "AccessorList",
	AccessorDeclaration:               "AccessorDeclaration",
	ArrowExpressionClause:             "ArrowExpressionClause",
	EqualsValueClause:                 "EqualsValueClause",
	AttributeList:                     "AttributeList",
	Attribute:                         "Attribute",
	AttributeArgumentList:             "AttributeArgumentList",
	BaseList:                          "BaseList",
	TypeParameterList:                 "TypeParameterList",
	TypeParameterConstraintClause:     "TypeParameterConstraintClause",
	ParameterList:                     "ParameterList",
	BracketedParameterList:            "BracketedParameterList",
	Parameter:                         "Parameter",
	VariableDeclaration:               "VariableDeclaration",
	VariableDeclarator:                "VariableDeclarator",
	IncompleteMember:                  "IncompleteMember",
	SkippedTokens:                     "SkippedTokens",
	Block:                             "Block",
	LocalDeclarationStatement:         "LocalDeclarationStatement",
	LocalFunctionStatement:            "LocalFunctionStatement",
	ExpressionStatement:               "ExpressionStatement",
	EmptyStatement:                    "EmptyStatement",
	IfStatement:                       "IfStatement",
	ElseClause:                        "ElseClause",
	WhileStatement:                    "WhileStatement",
	DoStatement:                       "DoStatement",
	ForStatement:                      "ForStatement",
	ForEachStatement:                  "ForEachStatement",
	SwitchStatement:                   "SwitchStatement",
	SwitchSection:                     "SwitchSection",
	CaseSwitchLabel:                   "CaseSwitchLabel",
	CasePatternSwitchLabel:            "CasePatternSwitchLabel",
	DefaultSwitchLabel:                "DefaultSwitchLabel",
	WhenClause:                        "WhenClause",
	TryStatement:                      "TryStatement",
	CatchClause:                       "CatchClause",
	CatchDeclaration:                  "CatchDeclaration",
	CatchFilterClause:                 "CatchFilterClause",
	FinallyClause:                     "FinallyClause",
	ReturnStatement:                   "ReturnStatement",
	ThrowStatement:                    "ThrowStatement",
	BreakStatement:                    "BreakStatement",
	ContinueStatement:                 "ContinueStatement",
	GotoStatement:                     "GotoStatement",
	YieldStatement:                    "YieldStatement",
	UsingStatement:                    "UsingStatement",
	LockStatement:                     "LockStatement",
	FixedStatement:                    "FixedStatement",
	CheckedStatement:                  "CheckedStatement",
	UnsafeStatement:                   "UnsafeStatement",
	LabeledStatement:                  "LabeledStatement",
	IdentifierName:                    "IdentifierName",
	GenericName:                       "GenericName",
	TypeArgumentList:                  "TypeArgumentList",
	QualifiedName:                     "QualifiedName",
	AliasQualifiedName:                "AliasQualifiedName",
	PredefinedType:                    "PredefinedType",
	ArrayType:                         "ArrayType",
	ArrayRankSpecifier:                "ArrayRankSpecifier",
	NullableType:                      "NullableType",
	PointerType:                       "PointerType",
	TupleType:                         "TupleType",
	TupleElement:                      "TupleElement",
	LiteralExpression:                 "LiteralExpression",
	ThisExpression:                    "ThisExpression",
	BaseExpression:                    "BaseExpression",
	MemberAccessExpression:            "MemberAccessExpression",
	InvocationExpression:              "InvocationExpression",
	ArgumentList:                      "ArgumentList",
	BracketedArgumentList:             "BracketedArgumentList",
	Argument:                          "Argument",
	NameColon:                         "NameColon",
	ElementAccessExpression:           "ElementAccessExpression",
	BinaryExpression:                  "BinaryExpression",
	AssignmentExpression:              "AssignmentExpression",
	ConditionalExpression:             "ConditionalExpression",
	PrefixUnaryExpression:             "PrefixUnaryExpression",
	PostfixUnaryExpression:            "PostfixUnaryExpression",
	AwaitExpression:                   "AwaitExpression",
	CastExpression:                    "CastExpression",
	ParenthesizedExpression:           "ParenthesizedExpression",
	TupleExpression:                   "TupleExpression",
	SimpleLambdaExpression:            "SimpleLambdaExpression",
	ParenthesizedLambdaExpression:     "ParenthesizedLambdaExpression",
	AnonymousMethodExpression:         "AnonymousMethodExpression",
	ObjectCreationExpression:          "ObjectCreationExpression",
	ImplicitObjectCreationExpression:  "ImplicitObjectCreationExpression",
	ArrayCreationExpression:           "ArrayCreationExpression",
	ImplicitArrayCreationExpression:   "ImplicitArrayCreationExpression",
	StackAllocArrayCreationExpression: "StackAllocArrayCreationExpression",
	AnonymousObjectCreationExpression: "AnonymousObjectCreationExpression",
	AnonymousObjectMemberDeclarator:   "AnonymousObjectMemberDeclarator",
	InitializerExpression:             "InitializerExpression",
	TypeOfExpression:                  "TypeOfExpression",
	SizeOfExpression:                  "SizeOfExpression",
	DefaultExpression:                 "DefaultExpression",
	CheckedExpression:                 "CheckedExpression",
	ThrowExpression:                   "ThrowExpression",
	IsPatternExpression:               "IsPatternExpression",
	SwitchExpression:                  "SwitchExpression",
	SwitchExpressionArm:               "SwitchExpressionArm",
	RangeExpression:                   "RangeExpression",
	RefExpression:                     "RefExpression",
	DeclarationExpression:             "DeclarationExpression",
	ConstantPattern:                   "ConstantPattern",
	DeclarationPattern:                "DeclarationPattern",
	VarPattern:                        "VarPattern",
	DiscardPattern:                    "DiscardPattern",
	TypePattern:                       "TypePattern",
	RelationalPattern:                 "RelationalPattern",
	NotPattern:                        "NotPattern",
	AndPattern:                        "AndPattern",
	OrPattern:                         "OrPattern",
	ParenthesizedPattern:              "ParenthesizedPattern",
	RecursivePattern:                  "RecursivePattern",
	PropertyPatternClause:             "PropertyPatternClause",
	Subpattern:                        "Subpattern",
}
