package codegen

import (
	"fmt"

	"glslgen/internal/ast"
	"glslgen/internal/diag"
	"glslgen/internal/trace"
	"glslgen/internal/visit"
)

// RuntimeName is the local through which generated code reaches the
// runtime; it is bound from the Runtime member of the first parameter.
const RuntimeName = "RT"

// Options configures a Generator.
type Options struct {
	Style    *Style        // defaults to JavaScript
	Reporter diag.Reporter // receives degraded-operator warnings; may be nil
	Tracer   trace.Tracer  // node-level events; may be nil
	Parent   uint64        // span the node events hang under
}

// scope is the dispatcher context: the function whose body is being
// emitted, nil at top level.
type scope struct {
	fn *ast.FunctionDeclaration
}

// Generator translates one shader at a time. It is not safe for concurrent
// use; independent generators share nothing.
type Generator struct {
	style    *Style
	reporter diag.Reporter
	tracer   trace.Tracer
	parent   uint64

	globals  ast.NameSet
	stmt     ast.Node // node being emitted as a statement
	em       emitter
	dispatch *visit.Dispatcher[*scope, string]
}

// New returns a generator for opts.
func New(opts Options) *Generator {
	g := &Generator{
		style:    opts.Style,
		reporter: opts.Reporter,
		tracer:   opts.Tracer,
		parent:   opts.Parent,
	}
	if g.style == nil {
		g.style = JavaScript
	}
	if g.reporter == nil {
		g.reporter = diag.NopReporter{}
	}
	if g.tracer == nil {
		g.tracer = trace.Nop
	}
	g.dispatch = visit.New("codegen", visit.Table[*scope, string]{
		ast.TagProgram:             g.program,
		ast.TagScope:               g.scopeStatement,
		ast.TagFunctionDeclaration: g.functionDeclaration,
		ast.TagParameter:           g.parameter,
		ast.TagIfStatement:         g.ifStatement,
		ast.TagForStatement:        g.forStatement,
		ast.TagWhileStatement:      g.whileStatement,
		ast.TagDoStatement:         g.doStatement,
		ast.TagReturnStatement:     g.returnStatement,
		ast.TagContinueStatement:   g.keyword("continue"),
		ast.TagBreakStatement:      g.keyword("break"),
		ast.TagDiscardStatement:    g.discardStatement,
		ast.TagExpressionStatement: g.expressionStatement,
		ast.TagDeclarator:          g.declarator,
		ast.TagDeclaratorItem:      g.declaratorItem,

		ast.TagFunctionCall:      g.functionCall,
		ast.TagIdentifier:        g.identifier,
		ast.TagIntegerLiteral:    g.integerLiteral,
		ast.TagFloatLiteral:      g.floatLiteral,
		ast.TagBooleanLiteral:    g.booleanLiteral,
		ast.TagOperator:          g.operatorToken,
		ast.TagPostfixExpression: g.postfixExpression,
		ast.TagUnaryExpression:   g.unaryExpression,
		ast.TagBinaryExpression:  g.binaryExpression,
		ast.TagTernaryExpression: g.ternaryExpression,

		ast.TagPreprocessor:      visit.Ignore[*scope, string],
		ast.TagMacroCall:         visit.Ignore[*scope, string],
		ast.TagFunctionPrototype: visit.Ignore[*scope, string],
		ast.TagInvariant:         visit.Ignore[*scope, string],
		ast.TagPrecision:         visit.Ignore[*scope, string],
		ast.TagStructDefinition:  visit.Ignore[*scope, string],
		ast.TagType:              visit.Ignore[*scope, string],
		ast.TagIndexSelector:     visit.Ignore[*scope, string],
		ast.TagFieldSelector:     visit.Ignore[*scope, string],
	})
	return g
}

// Style returns the output style.
func (g *Generator) Style() *Style { return g.style }

// Generate returns the source of a two-parameter function (runtime,
// environment) that runs sh's main function. Structure failures are
// returned as errors wrapping visit.ErrUnsupportedNode or
// lvalue.ErrUnsupportedTarget.
func (g *Generator) Generate(sh *ast.Shader) (string, error) {
	if sh == nil || sh.AST == nil {
		return "", fmt.Errorf("codegen: shader has no syntax tree")
	}
	g.em.reset(g.style.Indent)
	g.globals = sh.GlobalNames()

	g.em.writeLine(g.style.Header)
	err := g.block(func() error {
		g.em.writeLine("")
		g.em.writeLine(g.style.Binding + RuntimeName + " = GLSL.Runtime" + g.style.Terminator)
		g.em.writeLine("")
		if err := g.statement(nil, sh.AST); err != nil {
			return err
		}
		g.em.writeLine("")
		if sh.DebugTrap {
			g.em.writeLine(g.style.DebugTrap)
		}
		g.em.writeLine(g.callee("main") + "()" + g.style.Terminator)
		return nil
	})
	if err != nil {
		return "", err
	}
	if g.style.Footer != "" {
		g.em.writeLine(g.style.Footer)
	}
	return g.em.String(), nil
}

// statement visits n and writes any expression value it yields as a
// statement of its own.
func (g *Generator) statement(sc *scope, n ast.Node) error {
	outer := g.stmt
	g.stmt = n
	code, err := g.dispatch.Visit(sc, n)
	g.stmt = outer
	if err != nil {
		return err
	}
	if code != "" {
		g.em.writeLine(code + g.style.Terminator)
	}
	return nil
}

func (g *Generator) statements(sc *scope, nodes []ast.Node) error {
	for _, n := range nodes {
		if err := g.statement(sc, n); err != nil {
			return err
		}
	}
	return nil
}

// block runs body one level deeper and restores the depth afterwards, also
// on error. A block that wrote nothing gets the style's empty-body
// statement.
func (g *Generator) block(body func() error) error {
	mark := len(g.em.lines)
	g.em.pushIndent()
	defer g.em.popIndent()
	if err := body(); err != nil {
		return err
	}
	if len(g.em.lines) == mark && g.style.EmptyBody != "" {
		g.em.writeLine(g.style.EmptyBody)
	}
	return nil
}

// fail reports output that must not be loaded. The source is still
// generated so it can be shown next to the diagnostic.
func (g *Generator) fail(code diag.Code, pos ast.Pos, msg string) {
	diag.ReportError(g.reporter, code, pos, msg).Emit()
	trace.Point(g.tracer, trace.ScopeNode, "rejected", msg, g.parent)
}

func (g *Generator) warn(code diag.Code, pos ast.Pos, msg string) {
	diag.ReportWarning(g.reporter, code, pos, msg).Emit()
	trace.Point(g.tracer, trace.ScopeNode, "degraded", msg, g.parent)
}
