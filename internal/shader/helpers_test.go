package shader

import "glslgen/internal/ast"

func ident(name string) *ast.Identifier    { return &ast.Identifier{Name: name} }
func intLit(v int64) *ast.IntegerLiteral   { return &ast.IntegerLiteral{Value: v} }
func floatLit(v float64) *ast.FloatLiteral { return &ast.FloatLiteral{Value: v} }

func binary(tok string, l, r ast.Node) *ast.BinaryExpression {
	return &ast.BinaryExpression{Operator: &ast.Operator{Token: tok}, Left: l, Right: r}
}

func step(tok string, e ast.Node) *ast.PostfixExpression {
	return &ast.PostfixExpression{Operator: &ast.Operator{Token: tok}, Expression: e}
}

func field(base ast.Node, sel string) *ast.PostfixExpression {
	return &ast.PostfixExpression{
		Operator:   &ast.Operator{Selector: &ast.FieldSelector{Selection: sel}},
		Expression: base,
	}
}

func call(name string, args ...ast.Node) *ast.FunctionCall {
	return &ast.FunctionCall{FunctionName: name, Parameters: args}
}

func stmt(e ast.Node) *ast.ExpressionStatement { return &ast.ExpressionStatement{Expression: e} }

func block(stmts ...ast.Node) *ast.Scope { return &ast.Scope{Statements: stmts} }

func decl(typ, name string, init ast.Node) *ast.Declarator {
	return &ast.Declarator{
		TypeAttribute: &ast.Type{Name: typ},
		Declarators:   []ast.Node{&ast.DeclaratorItem{Name: ident(name), Initializer: init}},
	}
}

func function(name string, params []string, body ...ast.Node) *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{Name: name, ReturnType: &ast.Type{Name: "float"}, Body: block(body...)}
	for _, p := range params {
		fn.Parameters = append(fn.Parameters, &ast.Parameter{TypeName: "float", Name: p})
	}
	return fn
}

func program(stmts ...ast.Node) *ast.Program { return &ast.Program{Statements: stmts} }
