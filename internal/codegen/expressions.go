package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"glslgen/internal/ast"
	"glslgen/internal/diag"
	"glslgen/internal/lvalue"
)

func (g *Generator) identifier(_ *scope, n ast.Node) (string, error) {
	return g.readName(n.(*ast.Identifier).Name), nil
}

func (g *Generator) integerLiteral(_ *scope, n ast.Node) (string, error) {
	return strconv.FormatInt(n.(*ast.IntegerLiteral).Value, 10), nil
}

// floatLiteral keeps a decimal point on integral values so both target
// languages read the literal as a float.
func (g *Generator) floatLiteral(_ *scope, n ast.Node) (string, error) {
	s := strconv.FormatFloat(n.(*ast.FloatLiteral).Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s, nil
}

func (g *Generator) booleanLiteral(_ *scope, n ast.Node) (string, error) {
	if n.(*ast.BooleanLiteral).Value {
		return g.style.True, nil
	}
	return g.style.False, nil
}

func (g *Generator) operatorToken(_ *scope, n ast.Node) (string, error) {
	return n.(*ast.Operator).Token, nil
}

func (g *Generator) functionCall(sc *scope, n ast.Node) (string, error) {
	call := n.(*ast.FunctionCall)
	args, err := g.arguments(sc, call.Parameters)
	if err != nil {
		return "", err
	}
	return g.callee(call.FunctionName) + "(" + strings.Join(args, ", ") + ")", nil
}

// arguments keeps one entry per parameter, unlike VisitAll.
func (g *Generator) arguments(sc *scope, nodes []ast.Node) ([]string, error) {
	args := make([]string, 0, len(nodes))
	for _, a := range nodes {
		code, err := g.dispatch.Visit(sc, a)
		if err != nil {
			return nil, err
		}
		args = append(args, code)
	}
	return args, nil
}

func (g *Generator) ternaryExpression(sc *scope, n ast.Node) (string, error) {
	t := n.(*ast.TernaryExpression)
	args, err := g.arguments(sc, []ast.Node{t.Condition, t.IsTrue, t.IsFalse})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(g.style.Ternary, args[0], args[1], args[2]), nil
}

func (g *Generator) binaryExpression(sc *scope, n ast.Node) (string, error) {
	b := n.(*ast.BinaryExpression)
	tok := token(b.Operator)
	if op, ok := assignOps[tok]; ok {
		g.checkAssign(b, tok)
		right, err := g.dispatch.Visit(sc, b.Right)
		if err != nil {
			return "", err
		}
		return g.assign(sc, b.Left, op, right)
	}
	operands, err := g.arguments(sc, []ast.Node{b.Left, b.Right})
	if err != nil {
		return "", err
	}
	left, right := operands[0], operands[1]
	if op, ok := binaryOps[tok]; ok {
		return g.runtimeCall(op, left, right), nil
	}
	// The sequence operator yields its right operand; keeping it is also
	// the better guess for any other unmapped operator.
	return g.inert(b.Operator, b.Position(), right), nil
}

func (g *Generator) unaryExpression(sc *scope, n ast.Node) (string, error) {
	u := n.(*ast.UnaryExpression)
	tok := token(u.Operator)
	if op, ok := stepOps[tok]; ok {
		g.checkAssign(u, tok)
		return g.assign(sc, u.Expression, op, "1.0")
	}
	operand, err := g.dispatch.Visit(sc, u.Expression)
	if err != nil {
		return "", err
	}
	if op, ok := unaryOps[tok]; ok {
		return g.runtimeCall(op, operand), nil
	}
	return g.inert(u.Operator, u.Position(), operand), nil
}

// postfixExpression covers selectors in read position and the postfix
// increment and decrement, which yield the updated value like their prefix
// forms.
func (g *Generator) postfixExpression(sc *scope, n ast.Node) (string, error) {
	p := n.(*ast.PostfixExpression)
	if p.Operator != nil && p.Operator.Selector != nil {
		base, err := g.dispatch.Visit(sc, p.Expression)
		if err != nil {
			return "", err
		}
		param, err := g.selector(sc, p.Operator.Selector)
		if err != nil {
			return "", err
		}
		return g.runtimeCall("get", base, param), nil
	}
	tok := token(p.Operator)
	if op, ok := stepOps[tok]; ok {
		g.checkAssign(p, tok)
		return g.assign(sc, p.Expression, op, "1.0")
	}
	operand, err := g.dispatch.Visit(sc, p.Expression)
	if err != nil {
		return "", err
	}
	return g.inert(p.Operator, p.Position(), operand), nil
}

// selector renders one read accessor the way lvalue.Param.Code does.
func (g *Generator) selector(sc *scope, sel ast.Node) (string, error) {
	switch s := sel.(type) {
	case *ast.FieldSelector:
		return lvalue.Param{Kind: lvalue.ParamField, Text: s.Selection}.Code(), nil
	case *ast.IndexSelector:
		if s.Index == nil {
			return "", fmt.Errorf("codegen: subscript without index at %s", s.Position())
		}
		return g.dispatch.Visit(sc, s.Index)
	}
	return "", fmt.Errorf("codegen: %s at %s is not a selector", sel.Tag(), sel.Position())
}

// checkAssign rejects an assignment or step below statement level in
// styles where assignment is not an expression.
func (g *Generator) checkAssign(n ast.Node, tok string) {
	if g.style.ExprAssign || n == g.stmt {
		return
	}
	g.fail(diag.CodegenAssignInExpression, n.Position(),
		fmt.Sprintf("%q is used as a value; the %s style only supports it as a statement", tok, g.style.Name))
}

// assign stores into target. op is the runtime operator combining the
// current value with value, or empty for a plain store. Targets with
// accessors are rebuilt with RT.set and written back to their base.
func (g *Generator) assign(sc *scope, target ast.Node, op, value string) (string, error) {
	chain, err := lvalue.Resolve(target, func(index ast.Node) (string, error) {
		return g.dispatch.Visit(sc, index)
	})
	if err != nil {
		return "", err
	}
	base := g.readName(chain.Operand)
	params := chain.Codes()
	if op != "" {
		current := base
		if chain.HasAccessors() {
			current = g.runtimeCall("get", append([]string{base}, params...)...)
		}
		value = g.runtimeCall(op, current, value)
	}
	if !chain.HasAccessors() {
		return g.writeName(chain.Operand, value), nil
	}
	args := append(append([]string{base}, params...), value)
	return g.writeName(chain.Operand, g.runtimeCall("set", args...)), nil
}

// inert keeps an operator without runtime mapping visible in the output
// while leaving the code loadable. Only operand is evaluated.
func (g *Generator) inert(op *ast.Operator, pos ast.Pos, operand string) string {
	tok := token(op)
	g.warn(diag.CodegenUnsupportedOperator, pos, fmt.Sprintf("operator %q has no runtime mapping", tok))
	return fmt.Sprintf(g.style.Inert, inertToken(tok), operand)
}

func token(op *ast.Operator) string {
	if op == nil {
		return ""
	}
	return op.Token
}

var inertReplacer = strings.NewReplacer("*/", "", "'", "", "\\", "", "\n", " ")

func inertToken(tok string) string {
	return inertReplacer.Replace(tok)
}
