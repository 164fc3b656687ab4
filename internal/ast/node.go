// Package ast defines the shading-language syntax tree consumed by the code
// generator. Trees are produced by an external parser and are treated as
// read-only: nothing in glslgen mutates a node after decoding.
package ast

import "fmt"

// Tag identifies the kind of a Node.
type Tag uint8

const (
	// TagInvalid is the zero Tag; no node carries it.
	TagInvalid Tag = iota
	TagProgram
	TagPreprocessor
	TagMacroCall
	TagFunctionCall
	TagFunctionPrototype
	TagFunctionDeclaration
	TagScope
	TagIfStatement
	TagForStatement
	TagWhileStatement
	TagDoStatement
	TagReturnStatement
	TagContinueStatement
	TagBreakStatement
	TagDiscardStatement
	TagExpressionStatement
	TagDeclarator
	TagDeclaratorItem
	TagInvariant
	TagPrecision
	TagParameter
	TagStructDefinition
	TagType
	TagIntegerLiteral
	TagFloatLiteral
	TagBooleanLiteral
	TagIdentifier
	TagOperator
	TagPostfixExpression
	TagUnaryExpression
	TagBinaryExpression
	TagTernaryExpression
	TagIndexSelector
	TagFieldSelector

	tagCount
)

var tagNames = [...]string{
	TagInvalid:             "Invalid",
	TagProgram:             "Program",
	TagPreprocessor:        "Preprocessor",
	TagMacroCall:           "MacroCall",
	TagFunctionCall:        "FunctionCall",
	TagFunctionPrototype:   "FunctionPrototype",
	TagFunctionDeclaration: "FunctionDeclaration",
	TagScope:               "Scope",
	TagIfStatement:         "IfStatement",
	TagForStatement:        "ForStatement",
	TagWhileStatement:      "WhileStatement",
	TagDoStatement:         "DoStatement",
	TagReturnStatement:     "ReturnStatement",
	TagContinueStatement:   "ContinueStatement",
	TagBreakStatement:      "BreakStatement",
	TagDiscardStatement:    "DiscardStatement",
	TagExpressionStatement: "ExpressionStatement",
	TagDeclarator:          "Declarator",
	TagDeclaratorItem:      "DeclaratorItem",
	TagInvariant:           "Invariant",
	TagPrecision:           "Precision",
	TagParameter:           "Parameter",
	TagStructDefinition:    "StructDefinition",
	TagType:                "Type",
	TagIntegerLiteral:      "IntegerLiteral",
	TagFloatLiteral:        "FloatLiteral",
	TagBooleanLiteral:      "BooleanLiteral",
	TagIdentifier:          "Identifier",
	TagOperator:            "Operator",
	TagPostfixExpression:   "PostfixExpression",
	TagUnaryExpression:     "UnaryExpression",
	TagBinaryExpression:    "BinaryExpression",
	TagTernaryExpression:   "TernaryExpression",
	TagIndexSelector:       "IndexSelector",
	TagFieldSelector:       "FieldSelector",
}

// String returns the wire name of the tag.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", t)
}

// ParseTag maps a wire name back to its Tag.
func ParseTag(name string) (Tag, bool) {
	for i := TagProgram; i < tagCount; i++ {
		if tagNames[i] == name {
			return i, true
		}
	}
	return TagInvalid, false
}

// Tags returns every valid tag in declaration order.
func Tags() []Tag {
	out := make([]Tag, 0, tagCount-1)
	for t := TagProgram; t < tagCount; t++ {
		out = append(out, t)
	}
	return out
}

// Pos is an optional source position supplied by the parser.
// The zero Pos means "unknown".
type Pos struct {
	Line int
	Col  int
}

// IsValid reports whether the position was set.
func (p Pos) IsValid() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Position returns the node position; embedded into every node type.
func (p Pos) Position() Pos { return p }

func (Pos) astNode() {}

// Node is implemented by every syntax tree node.
type Node interface {
	Tag() Tag
	Position() Pos
	astNode()
}
