package codegen

import (
	"fmt"
	"strings"

	"glslgen/internal/ast"
	"glslgen/internal/diag"
)

func (g *Generator) program(sc *scope, n ast.Node) (string, error) {
	return "", g.statements(sc, n.(*ast.Program).Statements)
}

func (g *Generator) scopeStatement(sc *scope, n ast.Node) (string, error) {
	return "", g.statements(sc, n.(*ast.Scope).Statements)
}

func (g *Generator) functionDeclaration(_ *scope, n ast.Node) (string, error) {
	fn := n.(*ast.FunctionDeclaration)
	inner := &scope{fn: fn}
	params, err := g.dispatch.VisitAll(inner, fn.Parameters)
	if err != nil {
		return "", err
	}
	for _, p := range fn.Parameters {
		if param, ok := p.(*ast.Parameter); ok && g.isGlobal(param.Name) {
			g.warn(diag.CodegenGlobalParameter, param.Position(),
				fmt.Sprintf("parameter %q of %s is named after a global; reads of it resolve to the environment", param.Name, fn.Name))
		}
	}
	g.em.writeLine(fmt.Sprintf(g.style.FuncOpen, localPrefix+fn.Name, strings.Join(params, ", ")))
	if err := g.block(func() error { return g.statement(inner, fn.Body) }); err != nil {
		return "", err
	}
	if g.style.FuncClose != "" {
		g.em.writeLine(g.style.FuncClose)
	}
	return "", nil
}

// Parameters always bind the local spelling.
func (g *Generator) parameter(_ *scope, n ast.Node) (string, error) {
	return localPrefix + n.(*ast.Parameter).Name, nil
}

func (g *Generator) ifStatement(sc *scope, n ast.Node) (string, error) {
	st := n.(*ast.IfStatement)
	cond, err := g.condition(sc, st.Condition)
	if err != nil {
		return "", err
	}
	g.em.writeLine(fmt.Sprintf(g.style.IfOpen, cond))
	if err := g.block(func() error { return g.statement(sc, st.Body) }); err != nil {
		return "", err
	}
	if st.ElseBody != nil {
		g.em.writeLine(g.style.ElseOpen)
		if err := g.block(func() error { return g.statement(sc, st.ElseBody) }); err != nil {
			return "", err
		}
	}
	g.closeBlock()
	return "", nil
}

func (g *Generator) whileStatement(sc *scope, n ast.Node) (string, error) {
	st := n.(*ast.WhileStatement)
	cond, err := g.condition(sc, st.Condition)
	if err != nil {
		return "", err
	}
	g.em.writeLine(fmt.Sprintf(g.style.WhileOpen, cond))
	if err := g.block(func() error { return g.statement(sc, st.Body) }); err != nil {
		return "", err
	}
	g.closeBlock()
	return "", nil
}

// forStatement lowers `for (init; cond; incr) body` to
//
//	init
//	while (cond) { body; incr }
//
// A continue in body therefore skips incr.
func (g *Generator) forStatement(sc *scope, n ast.Node) (string, error) {
	st := n.(*ast.ForStatement)
	if err := g.statement(sc, st.Initializer); err != nil {
		return "", err
	}
	cond, err := g.condition(sc, st.Condition)
	if err != nil {
		return "", err
	}
	g.em.writeLine(fmt.Sprintf(g.style.WhileOpen, cond))
	err = g.block(func() error {
		if err := g.statement(sc, st.Body); err != nil {
			return err
		}
		return g.statement(sc, st.Increment)
	})
	if err != nil {
		return "", err
	}
	g.closeBlock()
	return "", nil
}

func (g *Generator) doStatement(sc *scope, n ast.Node) (string, error) {
	st := n.(*ast.DoStatement)
	cond, err := g.condition(sc, st.Condition)
	if err != nil {
		return "", err
	}
	g.em.writeLine(g.style.DoOpen)
	err = g.block(func() error {
		if err := g.statement(sc, st.Body); err != nil {
			return err
		}
		if g.style.DoBreak != "" {
			g.em.writeLine(fmt.Sprintf(g.style.DoBreak, cond))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if g.style.DoClose != "" {
		g.em.writeLine(fmt.Sprintf(g.style.DoClose, cond))
	}
	return "", nil
}

func (g *Generator) returnStatement(sc *scope, n ast.Node) (string, error) {
	st := n.(*ast.ReturnStatement)
	value, err := g.dispatch.Visit(sc, st.Value)
	if err != nil {
		return "", err
	}
	if value == "" {
		g.em.writeLine("return" + g.style.Terminator)
	} else {
		g.em.writeLine("return " + value + g.style.Terminator)
	}
	return "", nil
}

func (g *Generator) keyword(word string) func(*scope, ast.Node) (string, error) {
	return func(*scope, ast.Node) (string, error) {
		g.em.writeLine(word + g.style.Terminator)
		return "", nil
	}
}

func (g *Generator) discardStatement(*scope, ast.Node) (string, error) {
	g.em.writeLine(g.runtimeCall("discard") + g.style.Terminator)
	return "", nil
}

func (g *Generator) expressionStatement(sc *scope, n ast.Node) (string, error) {
	return "", g.statement(sc, n.(*ast.ExpressionStatement).Expression)
}

func (g *Generator) declarator(sc *scope, n ast.Node) (string, error) {
	if sc == nil {
		return "", nil
	}
	return "", g.statements(sc, n.(*ast.Declarator).Declarators)
}

func (g *Generator) declaratorItem(sc *scope, n ast.Node) (string, error) {
	if sc == nil {
		return "", nil
	}
	item := n.(*ast.DeclaratorItem)
	id, ok := item.Name.(*ast.Identifier)
	if !ok {
		return "", fmt.Errorf("codegen: declarator at %s: name is %T, want identifier", item.Position(), item.Name)
	}
	init, err := g.dispatch.Visit(sc, item.Initializer)
	if err != nil {
		return "", err
	}
	if g.isGlobal(id.Name) {
		g.warn(diag.CodegenGlobalRedeclared, item.Position(),
			fmt.Sprintf("local declaration of global %q stores into the environment", id.Name))
		if init != "" {
			g.em.writeLine(g.writeName(id.Name, init) + g.style.Terminator)
		}
		return "", nil
	}
	line := g.style.Binding + localPrefix + id.Name
	switch {
	case init != "":
		line += " = " + init
	case g.style.Uninitialized != "":
		line += " = " + g.style.Uninitialized
	}
	g.em.writeLine(line + g.style.Terminator)
	return "", nil
}

// condition renders a test; a missing one is always true.
func (g *Generator) condition(sc *scope, n ast.Node) (string, error) {
	if n == nil {
		return g.style.True, nil
	}
	return g.dispatch.Visit(sc, n)
}

func (g *Generator) closeBlock() {
	if g.style.BlockClose != "" {
		g.em.writeLine(g.style.BlockClose)
	}
}
