// Package options defines the named formatting options, their
// configuration keys, defaults and keyword vocabularies, and the immutable
// Set passed to every operation provider.
package options

import "fmt"

// ID identifies an option in memory.
type ID int

// Global line-formatting options.
const (
	UseTabs ID = iota
	IndentSize
	TabWidth
	NewLine
	MaxBlankLines

	// New lines.
	NewLinesForBraces
	NewLineForElse
	NewLineForCatch
	NewLineForFinally
	NewLineForMembersInObjectInit
	NewLineForMembersInAnonymousTypes

	// Indentation.
	IndentBlock
	IndentBraces
	IndentSwitchSection
	IndentSwitchCaseSection
	IndentSwitchCaseSectionWhenBlock
	LabelPositioning

	// Spacing.
	SpaceAfterCast
	SpaceAfterControlFlowStatementKeyword
	SpaceBetweenParentheses
	SpaceBeforeColonInBaseTypeDeclaration
	SpaceAfterColonInBaseTypeDeclaration
	SpacingAroundBinaryOperator
	SpacingAfterMethodDeclarationName
	SpaceWithinMethodDeclarationParenthesis
	SpaceBetweenEmptyMethodDeclarationParentheses
	SpaceAfterMethodCallName
	SpaceWithinMethodCallParentheses
	SpaceBetweenEmptyMethodCallParentheses
	SpaceAfterComma
	SpaceBeforeComma
	SpaceAfterDot
	SpaceBeforeDot
	SpaceAfterSemicolonsInForStatement
	SpaceBeforeSemicolonsInForStatement
	SpacesIgnoreAroundVariableDeclaration
	SpaceBeforeOpenSquareBracket
	SpaceBetweenEmptySquareBrackets
	SpaceWithinSquareBrackets

	// Wrapping.
	WrappingKeepStatementsOnSingleLine
	WrappingPreserveSingleLine
	WrapChainedMethodCalls
	IndentWrappedChainedMethodCalls
	WrapConditionalExpressions
	IndentWrappedConditionalExpressions
	WrapParameters
	WrapArguments
	AlignWrappedParameters
	NewLineBeforeFirstParameter

	// Preprocessor.
	PreprocessorSymbols

	numIDs
)

// Kind is the value type of an option.
type Kind int

const (
	// Bool accepts exactly "true" or "false".
	Bool Kind = iota
	// Int accepts a base-10 integer.
	Int
	// Enum accepts exactly one keyword of its vocabulary.
	Enum
	// FlagSet accepts a comma-separated list of keywords.
	FlagSet
	// List accepts a comma-separated list of free-form items.
	List
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Enum:
		return "enum"
	case FlagSet:
		return "flags"
	case List:
		return "list"
	}
	return "Kind(?)"
}

// Descriptor documents one option.
type Descriptor struct {
	ID   ID
	Name string
	Key  string
	Kind Kind

	// Default is the default value in configuration syntax.
	Default string

	// Vocabulary lists the keywords of an Enum (in value order) or a
	// FlagSet (keyword i sets bit i).
	Vocabulary []string

	// Aliases maps extra FlagSet keywords, such as "all", to a whole mask.
	Aliases map[string]Flags

	// Section groups the option in listings.
	Section string
}

// Flags is a bitwise-combinable set of FlagSet keywords.
type Flags uint32

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Brace placement flags for NewLinesForBraces.
const (
	BraceTypes Flags = 1 << iota
	BraceMethods
	BraceProperties
	BraceAccessors
	BraceAnonymousMethods
	BraceControlBlocks
	BraceAnonymousTypes
	BraceObjectCollectionArrayInitializers
	BraceLambdas
	BraceLocalFunctions

	BraceAll = BraceTypes | BraceMethods | BraceProperties | BraceAccessors |
		BraceAnonymousMethods | BraceControlBlocks | BraceAnonymousTypes |
		BraceObjectCollectionArrayInitializers | BraceLambdas | BraceLocalFunctions
)

// Parenthesis spacing flags for SpaceBetweenParentheses.
const (
	ParenControlFlowStatements Flags = 1 << iota
	ParenExpressions
	ParenTypeCasts
)

// LabelPosition is the value of LabelPositioning.
type LabelPosition int

const (
	// LabelOneLess places a label one indentation level left of the statements around it.
	LabelOneLess LabelPosition = iota
	// LabelFlushLeft places a label at column 0.
	LabelFlushLeft
	// LabelNoChange indents a label like any statement.
	LabelNoChange
)

// BinarySpacing is the value of SpacingAroundBinaryOperator.
type BinarySpacing int

const (
	// BinarySingle puts one space before and after a binary operator.
	BinarySingle BinarySpacing = iota
	// BinaryRemove removes the space around a binary operator.
	BinaryRemove
	// BinaryIgnore keeps the authored spacing.
	BinaryIgnore
)

// Enum vocabularies in value order.
var (
	indentStyleWords     = []string{"space", "tab"}
	endOfLineWords       = []string{"lf", "crlf", "cr"}
	labelWords           = []string{"one_less_than_current", "flush_left", "no_change"}
	binarySpacingWords   = []string{"before_and_after", "none", "ignore"}
	declarationSpaceWord = []string{"false", "ignore"}
)

// Flag vocabularies in bit order.
var (
	braceWords = []string{
		"types", "methods", "properties", "accessors", "anonymous_methods",
		"control_blocks", "anonymous_types", "object_collection_array_initializers",
		"lambdas", "local_functions",
	}
	parenWords = []string{"control_flow_statements", "expressions", "type_casts"}
)

var descriptors = [numIDs]Descriptor{
	UseTabs:       {Name: "UseTabs", Key: "indent_style", Kind: Enum, Default: "space", Vocabulary: indentStyleWords, Section: "indentation"},
	IndentSize:    {Name: "IndentSize", Key: "indent_size", Kind: Int, Default: "4", Section: "indentation"},
	TabWidth:      {Name: "TabWidth", Key: "tab_width", Kind: Int, Default: "4", Section: "indentation"},
	NewLine:       {Name: "NewLine", Key: "end_of_line", Kind: Enum, Default: "lf", Vocabulary: endOfLineWords, Section: "new lines"},
	MaxBlankLines: {Name: "MaxBlankLines", Key: "csharp_max_blank_lines", Kind: Int, Default: "-1", Section: "new lines"},

	NewLinesForBraces: {
		Name: "NewLinesForBraces", Key: "csharp_new_line_before_open_brace", Kind: FlagSet, Default: "all",
		Vocabulary: braceWords, Aliases: map[string]Flags{"all": BraceAll, "none": 0}, Section: "new lines",
	},
	NewLineForElse:                    {Name: "NewLineForElse", Key: "csharp_new_line_before_else", Kind: Bool, Default: "true", Section: "new lines"},
	NewLineForCatch:                   {Name: "NewLineForCatch", Key: "csharp_new_line_before_catch", Kind: Bool, Default: "true", Section: "new lines"},
	NewLineForFinally:                 {Name: "NewLineForFinally", Key: "csharp_new_line_before_finally", Kind: Bool, Default: "true", Section: "new lines"},
	NewLineForMembersInObjectInit:     {Name: "NewLineForMembersInObjectInit", Key: "csharp_new_line_before_members_in_object_initializers", Kind: Bool, Default: "true", Section: "new lines"},
	NewLineForMembersInAnonymousTypes: {Name: "NewLineForMembersInAnonymousTypes", Key: "csharp_new_line_before_members_in_anonymous_types", Kind: Bool, Default: "true", Section: "new lines"},

	IndentBlock:                      {Name: "IndentBlock", Key: "csharp_indent_block_contents", Kind: Bool, Default: "true", Section: "indentation"},
	IndentBraces:                     {Name: "IndentBraces", Key: "csharp_indent_braces", Kind: Bool, Default: "false", Section: "indentation"},
	IndentSwitchSection:              {Name: "IndentSwitchSection", Key: "csharp_indent_switch_labels", Kind: Bool, Default: "true", Section: "indentation"},
	IndentSwitchCaseSection:          {Name: "IndentSwitchCaseSection", Key: "csharp_indent_case_contents", Kind: Bool, Default: "true", Section: "indentation"},
	IndentSwitchCaseSectionWhenBlock: {Name: "IndentSwitchCaseSectionWhenBlock", Key: "csharp_indent_case_contents_when_block", Kind: Bool, Default: "true", Section: "indentation"},
	LabelPositioning:                 {Name: "LabelPositioning", Key: "csharp_indent_labels", Kind: Enum, Default: "one_less_than_current", Vocabulary: labelWords, Section: "indentation"},

	SpaceAfterCast:                        {Name: "SpaceAfterCast", Key: "csharp_space_after_cast", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceAfterControlFlowStatementKeyword: {Name: "SpaceAfterControlFlowStatementKeyword", Key: "csharp_space_after_keywords_in_control_flow_statements", Kind: Bool, Default: "true", Section: "spacing"},
	SpaceBetweenParentheses: {
		Name: "SpaceBetweenParentheses", Key: "csharp_space_between_parentheses", Kind: FlagSet, Default: "",
		Vocabulary: parenWords, Section: "spacing",
	},
	SpaceBeforeColonInBaseTypeDeclaration:         {Name: "SpaceBeforeColonInBaseTypeDeclaration", Key: "csharp_space_before_colon_in_inheritance_clause", Kind: Bool, Default: "true", Section: "spacing"},
	SpaceAfterColonInBaseTypeDeclaration:          {Name: "SpaceAfterColonInBaseTypeDeclaration", Key: "csharp_space_after_colon_in_inheritance_clause", Kind: Bool, Default: "true", Section: "spacing"},
	SpacingAroundBinaryOperator:                   {Name: "SpacingAroundBinaryOperator", Key: "csharp_space_around_binary_operators", Kind: Enum, Default: "before_and_after", Vocabulary: binarySpacingWords, Section: "spacing"},
	SpacingAfterMethodDeclarationName:             {Name: "SpacingAfterMethodDeclarationName", Key: "csharp_space_between_method_declaration_name_and_open_parenthesis", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceWithinMethodDeclarationParenthesis:       {Name: "SpaceWithinMethodDeclarationParenthesis", Key: "csharp_space_between_method_declaration_parameter_list_parentheses", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceBetweenEmptyMethodDeclarationParentheses: {Name: "SpaceBetweenEmptyMethodDeclarationParentheses", Key: "csharp_space_between_method_declaration_empty_parameter_list_parentheses", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceAfterMethodCallName:                      {Name: "SpaceAfterMethodCallName", Key: "csharp_space_between_method_call_name_and_opening_parenthesis", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceWithinMethodCallParentheses:              {Name: "SpaceWithinMethodCallParentheses", Key: "csharp_space_between_method_call_parameter_list_parentheses", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceBetweenEmptyMethodCallParentheses:        {Name: "SpaceBetweenEmptyMethodCallParentheses", Key: "csharp_space_between_method_call_empty_parameter_list_parentheses", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceAfterComma:                               {Name: "SpaceAfterComma", Key: "csharp_space_after_comma", Kind: Bool, Default: "true", Section: "spacing"},
	SpaceBeforeComma:                              {Name: "SpaceBeforeComma", Key: "csharp_space_before_comma", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceAfterDot:                                 {Name: "SpaceAfterDot", Key: "csharp_space_after_dot", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceBeforeDot:                                {Name: "SpaceBeforeDot", Key: "csharp_space_before_dot", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceAfterSemicolonsInForStatement:            {Name: "SpaceAfterSemicolonsInForStatement", Key: "csharp_space_after_semicolon_in_for_statement", Kind: Bool, Default: "true", Section: "spacing"},
	SpaceBeforeSemicolonsInForStatement:           {Name: "SpaceBeforeSemicolonsInForStatement", Key: "csharp_space_before_semicolon_in_for_statement", Kind: Bool, Default: "false", Section: "spacing"},
	SpacesIgnoreAroundVariableDeclaration:         {Name: "SpacesIgnoreAroundVariableDeclaration", Key: "csharp_space_around_declaration_statements", Kind: Enum, Default: "false", Vocabulary: declarationSpaceWord, Section: "spacing"},
	SpaceBeforeOpenSquareBracket:                  {Name: "SpaceBeforeOpenSquareBracket", Key: "csharp_space_before_open_square_brackets", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceBetweenEmptySquareBrackets:               {Name: "SpaceBetweenEmptySquareBrackets", Key: "csharp_space_between_empty_square_brackets", Kind: Bool, Default: "false", Section: "spacing"},
	SpaceWithinSquareBrackets:                     {Name: "SpaceWithinSquareBrackets", Key: "csharp_space_between_square_brackets", Kind: Bool, Default: "false", Section: "spacing"},

	WrappingKeepStatementsOnSingleLine:  {Name: "WrappingKeepStatementsOnSingleLine", Key: "csharp_preserve_single_line_statements", Kind: Bool, Default: "true", Section: "wrapping"},
	WrappingPreserveSingleLine:          {Name: "WrappingPreserveSingleLine", Key: "csharp_preserve_single_line_blocks", Kind: Bool, Default: "true", Section: "wrapping"},
	WrapChainedMethodCalls:              {Name: "WrapChainedMethodCalls", Key: "csharp_wrap_chained_method_calls", Kind: Bool, Default: "false", Section: "wrapping"},
	IndentWrappedChainedMethodCalls:     {Name: "IndentWrappedChainedMethodCalls", Key: "csharp_indent_wrapped_chained_method_calls", Kind: Bool, Default: "false", Section: "wrapping"},
	WrapConditionalExpressions:          {Name: "WrapConditionalExpressions", Key: "csharp_wrap_conditional_expressions", Kind: Bool, Default: "false", Section: "wrapping"},
	IndentWrappedConditionalExpressions: {Name: "IndentWrappedConditionalExpressions", Key: "csharp_indent_wrapped_conditional_expressions", Kind: Bool, Default: "false", Section: "wrapping"},
	WrapParameters:                      {Name: "WrapParameters", Key: "csharp_wrap_parameters", Kind: Bool, Default: "false", Section: "wrapping"},
	WrapArguments:                       {Name: "WrapArguments", Key: "csharp_wrap_arguments", Kind: Bool, Default: "false", Section: "wrapping"},
	AlignWrappedParameters:              {Name: "AlignWrappedParameters", Key: "csharp_align_wrapped_parameters", Kind: Bool, Default: "false", Section: "wrapping"},
	NewLineBeforeFirstParameter:         {Name: "NewLineBeforeFirstParameter", Key: "csharp_new_line_before_first_parameter", Kind: Bool, Default: "false", Section: "wrapping"},

	PreprocessorSymbols: {Name: "PreprocessorSymbols", Key: "csharp_preprocessor_symbols", Kind: List, Default: "", Section: "preprocessor"},
}

var byKey = func() map[string]ID {
	m := make(map[string]ID, numIDs)
	for i := range descriptors {
		descriptors[i].ID = ID(i)
		m[descriptors[i].Key] = ID(i)
	}
	return m
}()

// All returns every option descriptor in ID order.
func All() []Descriptor {
	out := make([]Descriptor, numIDs)
	copy(out, descriptors[:])
	return out
}

// Lookup returns the option with the given configuration key.
func Lookup(key string) (ID, bool) {
	id, ok := byKey[key]
	return id, ok
}

// Describe returns the descriptor of id.
func (id ID) Describe() Descriptor {
	if id < 0 || id >= numIDs {
		return Descriptor{ID: id}
	}
	return descriptors[id]
}

// Key returns the configuration key of id.
func (id ID) Key() string { return id.Describe().Key }

func (id ID) String() string {
	if id < 0 || id >= numIDs {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return descriptors[id].Name
}
