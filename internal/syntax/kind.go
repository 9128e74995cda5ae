package syntax

// NodeKind identifies the construct a Node represents.
type NodeKind int

// Declarations.
const (
	CompilationUnit NodeKind = iota
	UsingDirective
	ExternAliasDirective
	NamespaceDeclaration
	FileScopedNamespaceDeclaration
	ClassDeclaration
	StructDeclaration
	InterfaceDeclaration
	RecordDeclaration
	EnumDeclaration
	EnumMemberDeclaration
	DelegateDeclaration
	FieldDeclaration
	EventFieldDeclaration
	MethodDeclaration
	OperatorDeclaration
	ConversionOperatorDeclaration
	ConstructorDeclaration
	ConstructorInitializer
	DestructorDeclaration
	PropertyDeclaration
	IndexerDeclaration
	EventDeclaration
	AccessorList
	AccessorDeclaration
	ArrowExpressionClause
	EqualsValueClause
	AttributeList
	Attribute
	AttributeArgumentList
	BaseList
	TypeParameterList
	TypeParameterConstraintClause
	ParameterList
	BracketedParameterList
	Parameter
	VariableDeclaration
	VariableDeclarator
	IncompleteMember
	SkippedTokens
)

// Statements.
const (
	Block NodeKind = iota + 100
	LocalDeclarationStatement
	LocalFunctionStatement
	ExpressionStatement
	EmptyStatement
	IfStatement
	ElseClause
	WhileStatement
	DoStatement
	ForStatement
	ForEachStatement
	SwitchStatement
	SwitchSection
	CaseSwitchLabel
	CasePatternSwitchLabel
	DefaultSwitchLabel
	WhenClause
	TryStatement
	CatchClause
	CatchDeclaration
	CatchFilterClause
	FinallyClause
	ReturnStatement
	ThrowStatement
	BreakStatement
	ContinueStatement
	GotoStatement
	YieldStatement
	UsingStatement
	LockStatement
	FixedStatement
	CheckedStatement
	UnsafeStatement
	LabeledStatement
)

// Types and names.
const (
	IdentifierName NodeKind = iota + 200
	GenericName
	TypeArgumentList
	QualifiedName
	AliasQualifiedName
	PredefinedType
	ArrayType
	ArrayRankSpecifier
	NullableType
	PointerType
	TupleType
	TupleElement
)

// Expressions.
const (
	LiteralExpression NodeKind = iota + 300
	ThisExpression
	BaseExpression
	MemberAccessExpression
	InvocationExpression
	ArgumentList
	BracketedArgumentList
	Argument
	NameColon
	ElementAccessExpression
	BinaryExpression
	AssignmentExpression
	ConditionalExpression
	PrefixUnaryExpression
	PostfixUnaryExpression
	AwaitExpression
	CastExpression
	ParenthesizedExpression
	TupleExpression
	SimpleLambdaExpression
	ParenthesizedLambdaExpression
	AnonymousMethodExpression
	ObjectCreationExpression
	ImplicitObjectCreationExpression
	ArrayCreationExpression
	ImplicitArrayCreationExpression
	StackAllocArrayCreationExpression
	AnonymousObjectCreationExpression
	AnonymousObjectMemberDeclarator
	InitializerExpression
	TypeOfExpression
	SizeOfExpression
	DefaultExpression
	CheckedExpression
	ThrowExpression
	IsPatternExpression
	SwitchExpression
	SwitchExpressionArm
	RangeExpression
	RefExpression
	DeclarationExpression
)

// Patterns.
const (
	ConstantPattern NodeKind = iota + 400
	DeclarationPattern
	VarPattern
	DiscardPattern
	TypePattern
	RelationalPattern
	NotPattern
	AndPattern
	OrPattern
	ParenthesizedPattern
	RecursivePattern
	PropertyPatternClause
	Subpattern
)

// Category groups node kinds by the role they play in layout decisions.
type Category int

const (
	// CategoryUnit is the root of a file.
	CategoryUnit Category = iota
	// CategoryDirective is a using or extern alias directive.
	CategoryDirective
	// CategoryNamespace is a namespace declaration.
	CategoryNamespace
	// CategoryType is a class, struct, interface, record, enum or delegate declaration.
	CategoryType
	// CategoryMember is a declaration inside a type body.
	CategoryMember
	// CategoryAccessor is an accessor or accessor list.
	CategoryAccessor
	// CategoryStatement is a statement other than a block.
	CategoryStatement
	// CategoryBlock is a braced statement list.
	CategoryBlock
	// CategoryClause is a part of a statement such as else, catch or a switch section.
	CategoryClause
	// CategoryExpression is an expression.
	CategoryExpression
	// CategoryPattern is a pattern.
	CategoryPattern
	// CategoryTypeName is a type or name reference.
	CategoryTypeName
	// CategoryList is a delimited list such as parameters or arguments.
	CategoryList
	// CategoryError is input the parser could not place.
	CategoryError
)

// Category returns the layout category of k.
func (k NodeKind) Category() Category {
	switch k {
	case CompilationUnit:
		return CategoryUnit
	case UsingDirective, ExternAliasDirective:
		return CategoryDirective
	case NamespaceDeclaration, FileScopedNamespaceDeclaration:
		return CategoryNamespace
	case ClassDeclaration, StructDeclaration, InterfaceDeclaration, RecordDeclaration,
		EnumDeclaration, DelegateDeclaration:
		return CategoryType
	case EnumMemberDeclaration, FieldDeclaration, EventFieldDeclaration, MethodDeclaration,
		OperatorDeclaration, ConversionOperatorDeclaration, ConstructorDeclaration,
		DestructorDeclaration, PropertyDeclaration, IndexerDeclaration, EventDeclaration:
		return CategoryMember
	case AccessorList, AccessorDeclaration:
		return CategoryAccessor
	case ConstructorInitializer, ArrowExpressionClause, EqualsValueClause, AttributeList,
		Attribute, BaseList, TypeParameterConstraintClause, VariableDeclaration,
		VariableDeclarator, ElseClause, SwitchSection, CaseSwitchLabel,
		CasePatternSwitchLabel, DefaultSwitchLabel, WhenClause, CatchClause,
		CatchDeclaration, CatchFilterClause, FinallyClause, NameColon, Argument, Parameter,
		AnonymousObjectMemberDeclarator, SwitchExpressionArm, TupleElement:
		return CategoryClause
	case AttributeArgumentList, TypeParameterList, ParameterList, BracketedParameterList,
		TypeArgumentList, ArrayRankSpecifier, ArgumentList, BracketedArgumentList:
		return CategoryList
	case IncompleteMember, SkippedTokens:
		return CategoryError
	case Block:
		return CategoryBlock
	case LocalDeclarationStatement, LocalFunctionStatement, ExpressionStatement,
		EmptyStatement, IfStatement, WhileStatement, DoStatement, ForStatement,
		ForEachStatement, SwitchStatement, TryStatement, ReturnStatement, ThrowStatement,
		BreakStatement, ContinueStatement, GotoStatement, YieldStatement, UsingStatement,
		LockStatement, FixedStatement, CheckedStatement, UnsafeStatement, LabeledStatement:
		return CategoryStatement
	case IdentifierName, GenericName, QualifiedName, AliasQualifiedName, PredefinedType,
		ArrayType, NullableType, PointerType, TupleType:
		return CategoryTypeName
	case LiteralExpression, ThisExpression, BaseExpression, MemberAccessExpression,
		InvocationExpression, ElementAccessExpression, BinaryExpression,
		AssignmentExpression, ConditionalExpression, PrefixUnaryExpression,
		PostfixUnaryExpression, AwaitExpression, CastExpression, ParenthesizedExpression,
		TupleExpression, SimpleLambdaExpression, ParenthesizedLambdaExpression,
		AnonymousMethodExpression, ObjectCreationExpression,
		ImplicitObjectCreationExpression, ArrayCreationExpression,
		ImplicitArrayCreationExpression, StackAllocArrayCreationExpression,
		AnonymousObjectCreationExpression, InitializerExpression, TypeOfExpression,
		SizeOfExpression, DefaultExpression, CheckedExpression, ThrowExpression,
		IsPatternExpression, SwitchExpression, RangeExpression, RefExpression,
		DeclarationExpression:
		return CategoryExpression
	case ConstantPattern, DeclarationPattern, VarPattern, DiscardPattern, TypePattern,
		RelationalPattern, NotPattern, AndPattern, OrPattern, ParenthesizedPattern,
		RecursivePattern, PropertyPatternClause, Subpattern:
		return CategoryPattern
	}
	return CategoryError
}

// IsStatement reports whether k is a statement, including blocks.
func (k NodeKind) IsStatement() bool {
	c := k.Category()
	return c == CategoryStatement || c == CategoryBlock
}

// IsMember reports whether k can appear as a member of a type, namespace or file.
func (k NodeKind) IsMember() bool {
	switch k.Category() {
	case CategoryMember, CategoryType, CategoryNamespace:
		return true
	}
	return k == IncompleteMember
}

// IsTypeDeclaration reports whether k declares a type with a brace body.
func (k NodeKind) IsTypeDeclaration() bool {
	switch k {
	case ClassDeclaration, StructDeclaration, InterfaceDeclaration, RecordDeclaration,
		EnumDeclaration:
		return true
	}
	return false
}

// IsLambda reports whether k is a lambda or anonymous method.
func (k NodeKind) IsLambda() bool {
	return k == SimpleLambdaExpression || k == ParenthesizedLambdaExpression ||
		k == AnonymousMethodExpression
}
