package ast

// Program is the root of a translation unit.
type Program struct {
	Pos
	Statements []Node
}

// Preprocessor carries a directive the parser kept in the tree.
type Preprocessor struct {
	Pos
	Directive         string
	Identifier        string
	Parameters        []string
	Value             string
	GuardedStatements []Node
}

// MacroCall is an unexpanded macro invocation.
type MacroCall struct {
	Pos
	MacroName  string
	Parameters []string
}

// FunctionCall covers user functions, built-ins and constructors alike.
type FunctionCall struct {
	Pos
	FunctionName string
	Parameters   []Node
}

// FunctionPrototype is a forward declaration without a body.
type FunctionPrototype struct {
	Pos
	Name       string
	ReturnType Node
	Parameters []Node
}

// FunctionDeclaration is a function definition.
type FunctionDeclaration struct {
	Pos
	Name       string
	ReturnType Node
	Parameters []Node
	Body       Node
}

// Scope is a braced statement list.
type Scope struct {
	Pos
	Statements []Node
}

type IfStatement struct {
	Pos
	Condition Node
	Body      Node
	ElseBody  Node // optional
}

// ForStatement is lowered to a while loop by the code generator.
type ForStatement struct {
	Pos
	Initializer Node // optional
	Condition   Node // optional
	Increment   Node // optional
	Body        Node
}

type WhileStatement struct {
	Pos
	Condition Node
	Body      Node
}

type DoStatement struct {
	Pos
	Condition Node
	Body      Node
}

type ReturnStatement struct {
	Pos
	Value Node // optional
}

type ContinueStatement struct{ Pos }

type BreakStatement struct{ Pos }

type DiscardStatement struct{ Pos }

type ExpressionStatement struct {
	Pos
	Expression Node // optional; an empty statement has none
}

// Declarator declares one or more variables sharing a type.
type Declarator struct {
	Pos
	TypeAttribute Node
	Declarators   []Node
}

// DeclaratorItem is one declared variable. Name is an *Identifier.
type DeclaratorItem struct {
	Pos
	Name        Node
	Initializer Node // optional
}

type Invariant struct {
	Pos
	Identifiers []Node
}

type Precision struct {
	Pos
	Precision string
	TypeName  string
}

// Parameter is a function parameter.
type Parameter struct {
	Pos
	TypeName           string
	Name               string
	TypeQualifier      string
	ParameterQualifier string
	Precision          string
	ArraySize          Node
}

type StructDefinition struct {
	Pos
	Qualifier   string
	Name        string
	Members     []Node
	Declarators []Node
}

// Type is a type reference with optional qualifiers.
type Type struct {
	Pos
	Name      string
	Precision string
	Qualifier string
}

type IntegerLiteral struct {
	Pos
	Value int64
}

type FloatLiteral struct {
	Pos
	Value float64
}

type BooleanLiteral struct {
	Pos
	Value bool
}

type Identifier struct {
	Pos
	Name string
}

// Operator is either a plain token ("+", "++", "*=") or, inside a
// PostfixExpression, a selector node (IndexSelector or FieldSelector).
// Exactly one of Token and Selector is set.
type Operator struct {
	Pos
	Token    string
	Selector Node
}

// PostfixExpression is `expr++`, `expr--`, `expr[i]` or `expr.sel`.
type PostfixExpression struct {
	Pos
	Operator   *Operator
	Expression Node
}

type UnaryExpression struct {
	Pos
	Operator   *Operator
	Expression Node
}

// BinaryExpression includes plain and compound assignment.
type BinaryExpression struct {
	Pos
	Operator *Operator
	Left     Node
	Right    Node
}

type TernaryExpression struct {
	Pos
	Condition Node
	IsTrue    Node
	IsFalse   Node
}

type IndexSelector struct {
	Pos
	Index Node
}

// FieldSelector is a struct field or a swizzle such as "xyz".
type FieldSelector struct {
	Pos
	Selection string
}

func (*Program) Tag() Tag             { return TagProgram }
func (*Preprocessor) Tag() Tag        { return TagPreprocessor }
func (*MacroCall) Tag() Tag           { return TagMacroCall }
func (*FunctionCall) Tag() Tag        { return TagFunctionCall }
func (*FunctionPrototype) Tag() Tag   { return TagFunctionPrototype }
func (*FunctionDeclaration) Tag() Tag { return TagFunctionDeclaration }
func (*Scope) Tag() Tag               { return TagScope }
func (*IfStatement) Tag() Tag         { return TagIfStatement }
func (*ForStatement) Tag() Tag        { return TagForStatement }
func (*WhileStatement) Tag() Tag      { return TagWhileStatement }
func (*DoStatement) Tag() Tag         { return TagDoStatement }
func (*ReturnStatement) Tag() Tag     { return TagReturnStatement }
func (*ContinueStatement) Tag() Tag   { return TagContinueStatement }
func (*BreakStatement) Tag() Tag      { return TagBreakStatement }
func (*DiscardStatement) Tag() Tag    { return TagDiscardStatement }
func (*ExpressionStatement) Tag() Tag { return TagExpressionStatement }
func (*Declarator) Tag() Tag          { return TagDeclarator }
func (*DeclaratorItem) Tag() Tag      { return TagDeclaratorItem }
func (*Invariant) Tag() Tag           { return TagInvariant }
func (*Precision) Tag() Tag           { return TagPrecision }
func (*Parameter) Tag() Tag           { return TagParameter }
func (*StructDefinition) Tag() Tag    { return TagStructDefinition }
func (*Type) Tag() Tag                { return TagType }
func (*IntegerLiteral) Tag() Tag      { return TagIntegerLiteral }
func (*FloatLiteral) Tag() Tag        { return TagFloatLiteral }
func (*BooleanLiteral) Tag() Tag      { return TagBooleanLiteral }
func (*Identifier) Tag() Tag          { return TagIdentifier }
func (*Operator) Tag() Tag            { return TagOperator }
func (*PostfixExpression) Tag() Tag   { return TagPostfixExpression }
func (*UnaryExpression) Tag() Tag     { return TagUnaryExpression }
func (*BinaryExpression) Tag() Tag    { return TagBinaryExpression }
func (*TernaryExpression) Tag() Tag   { return TagTernaryExpression }
func (*IndexSelector) Tag() Tag       { return TagIndexSelector }
func (*FieldSelector) Tag() Tag       { return TagFieldSelector }
