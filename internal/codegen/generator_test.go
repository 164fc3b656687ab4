package codegen

import (
	"errors"
	"strings"
	"testing"

	"glslgen/internal/ast"
	"glslgen/internal/diag"
	"glslgen/internal/lvalue"
	"glslgen/internal/visit"
)

func generate(t *testing.T, style *Style, sh *ast.Shader) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(32)
	g := New(Options{Style: style, Reporter: diag.BagReporter{Bag: bag}})
	src, err := g.Generate(sh)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if g.em.depth != 0 {
		t.Fatalf("indent depth %d after translation", g.em.depth)
	}
	return src, bag
}

// body returns the lines of main's body with their indentation stripped.
func body(src string) []string {
	var out []string
	in := false
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "var V_main = function(") || strings.HasPrefix(trimmed, "def V_main("):
			in = true
		case in && (trimmed == "};" || trimmed == ""):
			return out
		case in:
			out = append(out, trimmed)
		}
	}
	return out
}

func TestSwizzleAssignmentFullOutput(t *testing.T) {
	sh := mainShader(nil,
		&ast.Declarator{
			TypeAttribute: &ast.Type{Name: "vec4"},
			Declarators:   []ast.Node{&ast.DeclaratorItem{Name: ident("v")}},
		},
		stmt(binary("=", field(ident("v"), "xy"), call("vec2", intLit(1), intLit(2)))),
	)
	tests := []struct {
		style *Style
		want  string
	}{
		{JavaScript, `function(GLSL, env) {

    var RT = GLSL.Runtime;

    var V_main = function() {
        var V_v;
        V_v = RT.set(V_v, 'xy', RT.Vec2(1, 2));
    };

    V_main();
}
`},
		{Python, `def shader(GLSL, env):

    RT = GLSL.Runtime

    def V_main():
        V_v = None
        V_v = RT.set(V_v, 'xy', RT.Vec2(1, 2))

    V_main()
`},
	}
	for _, tt := range tests {
		t.Run(tt.style.Name, func(t *testing.T) {
			got, bag := generate(t, tt.style, sh)
			if got != tt.want {
				t.Errorf("output mismatch\nwant:\n%s\ngot:\n%s", tt.want, got)
			}
			if bag.Len() != 0 {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestForLowering(t *testing.T) {
	loop := &ast.ForStatement{
		Initializer: decl("i", intLit(0)),
		Condition:   binary("<", ident("i"), intLit(3)),
		Increment:   postfix("++", ident("i")),
		Body:        block(stmt(binary("+=", ident("sum"), floatLit(1)))),
	}
	sh := mainShader(nil, decl("sum", floatLit(0)), loop)

	tests := []struct {
		style *Style
		want  []string
	}{
		{JavaScript, []string{
			"var V_sum = 0.0;",
			"var V_i = 0;",
			"while (RT.op_lt(V_i, 3)) {",
			"V_sum = RT.op_add(V_sum, 1.0);",
			"V_i = RT.op_add(V_i, 1.0);",
			"}",
		}},
		{Python, []string{
			"V_sum = 0.0",
			"V_i = 0",
			"while RT.op_lt(V_i, 3):",
			"V_sum = RT.op_add(V_sum, 1.0)",
			"V_i = RT.op_add(V_i, 1.0)",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.style.Name, func(t *testing.T) {
			src, _ := generate(t, tt.style, sh)
			got := body(src)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("body mismatch\nwant:\n%s\ngot:\n%s", strings.Join(tt.want, "\n"), strings.Join(got, "\n"))
			}
		})
	}
}

func TestForWithoutCondition(t *testing.T) {
	loop := &ast.ForStatement{Body: block(&ast.BreakStatement{})}
	src, _ := generate(t, Python, mainShader(nil, loop))
	if !strings.Contains(src, "        while True:\n            break\n") {
		t.Errorf("unexpected output:\n%s", src)
	}
}

func TestGlobalPrecedence(t *testing.T) {
	sh := mainShader([]string{"color"},
		&ast.Declarator{
			TypeAttribute: &ast.Type{Name: "vec4"},
			Declarators: []ast.Node{
				&ast.DeclaratorItem{Name: ident("color"), Initializer: call("vec4", floatLit(0))},
			},
		},
		decl("r", field(ident("color"), "r")),
		stmt(binary("*=", ident("color"), floatLit(0.5))),
	)
	src, bag := generate(t, JavaScript, sh)
	want := []string{
		"env.set('color', RT.Vec4(0.0));",
		"var V_r = RT.get(env.get('color'), 'r');",
		"env.set('color', RT.op_mul(env.get('color'), 0.5));",
	}
	if got := body(src); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("body mismatch\nwant:\n%s\ngot:\n%s", strings.Join(want, "\n"), strings.Join(got, "\n"))
	}
	if strings.Contains(src, "V_color") {
		t.Errorf("global leaked into a local binding:\n%s", src)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CodegenGlobalRedeclared {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Node
		js   string
		py   string
	}{
		{"call builtin", call("max", ident("a"), floatLit(2)), "RT.max(V_a, 2.0)", "RT.max(V_a, 2.0)"},
		{"call user", call("shade", ident("a")), "V_shade(V_a)", "V_shade(V_a)"},
		{"operator by name", call("op_add", ident("a"), ident("b")), "RT.op_add(V_a, V_b)", "RT.op_add(V_a, V_b)"},
		{"reserved member", call("not", ident("b")), "RT.not(V_b)", "RT.not_(V_b)"},
		{"constructor", call("mat2", floatLit(1)), "RT.Mat2(1.0)", "RT.Mat2(1.0)"},
		{"negate", unary("-", ident("a")), "RT.op_neg(V_a)", "RT.op_neg(V_a)"},
		{"logic", binary("&&", &ast.BooleanLiteral{Value: true}, ident("b")), "RT.op_land(true, V_b)", "RT.op_land(True, V_b)"},
		{"ternary", &ast.TernaryExpression{Condition: ident("c"), IsTrue: floatLit(1), IsFalse: floatLit(0.25)},
			"(V_c ? 1.0 : 0.25)", "(1.0 if V_c else 0.25)"},
		{"nested read", field(index(ident("m"), intLit(1)), "yxz"),
			"RT.get(RT.get(V_m, 1), 'yxz')", "RT.get(RT.get(V_m, 1), 'yxz')"},
		{"read of call", field(call("normalize", ident("n")), "x"),
			"RT.get(RT.normalize(V_n), 'x')", "RT.get(RT.normalize(V_n), 'x')"},
		{"compound through chain", binary("*=", field(index(ident("m"), intLit(1)), "x"), floatLit(2)),
			"V_m = RT.set(V_m, 1, 'x', RT.op_mul(RT.get(V_m, 1, 'x'), 2.0))",
			"V_m = RT.set(V_m, 1, 'x', RT.op_mul(RT.get(V_m, 1, 'x'), 2.0))"},
		{"computed index", binary("=", index(ident("a"), binary("+", ident("i"), intLit(1))), floatLit(0)),
			"V_a = RT.set(V_a, RT.op_add(V_i, 1), 0.0)", "V_a = RT.set(V_a, RT.op_add(V_i, 1), 0.0)"},
		{"prefix decrement", unary("--", ident("n")), "V_n = RT.op_sub(V_n, 1.0)", "V_n = RT.op_sub(V_n, 1.0)"},
		{"postfix on swizzle", postfix("++", field(ident("c"), "r")),
			"V_c = RT.set(V_c, 'r', RT.op_add(RT.get(V_c, 'r'), 1.0))",
			"V_c = RT.set(V_c, 'r', RT.op_add(RT.get(V_c, 'r'), 1.0))"},
		{"float literal", floatLit(1e21), "1e+21", "1e+21"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range []struct {
				style *Style
				want  string
			}{{JavaScript, tt.js + ";"}, {Python, tt.py}} {
				src, _ := generate(t, c.style, mainShader(nil, stmt(tt.expr)))
				got := body(src)
				if len(got) != 1 || got[0] != c.want {
					t.Errorf("%s: got %q, want %q", c.style.Name, got, c.want)
				}
			}
		})
	}
}

func TestUnmappedOperatorIsInert(t *testing.T) {
	expr := stmt(binary(",", ident("a"), ident("b")))
	tests := []struct {
		style *Style
		want  string
	}{
		{JavaScript, "/* , */ V_b;"},
		{Python, "(V_b if True else ',')"},
	}
	for _, tt := range tests {
		t.Run(tt.style.Name, func(t *testing.T) {
			src, bag := generate(t, tt.style, mainShader(nil, expr))
			if got := body(src); len(got) != 1 || got[0] != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if bag.Len() != 1 || bag.Items()[0].Code != diag.CodegenUnsupportedOperator || bag.Items()[0].Severity != diag.SevWarning {
				t.Errorf("diagnostics = %v", bag.Items())
			}
		})
	}
}

func TestAssignmentAsValue(t *testing.T) {
	tests := []struct {
		name string
		node ast.Node
		bad  int // rejected in the Python style
	}{
		{"call argument", stmt(call("f", binary("=", ident("y"), floatLit(2)))), 1},
		{"chained", stmt(binary("=", ident("x"), binary("=", ident("y"), floatLit(1)))), 1},
		{"step in condition", &ast.WhileStatement{
			Condition: binary("<", postfix("++", ident("i")), intLit(3)),
			Body:      block(),
		}, 1},
		{"initializer", decl("z", unary("++", ident("i"))), 1},
		{"statement", stmt(binary("+=", ident("x"), floatLit(1))), 0},
		{"for increment", &ast.ForStatement{
			Condition: binary("<", ident("i"), intLit(3)),
			Increment: postfix("++", ident("i")),
			Body:      block(stmt(postfix("--", ident("n")))),
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := generate(t, Python, mainShader(nil, tt.node))
			if bag.Len() != tt.bad || bag.HasErrors() != (tt.bad > 0) {
				t.Errorf("python diagnostics = %v", bag.Items())
			}
			for _, d := range bag.Items() {
				if d.Code != diag.CodegenAssignInExpression {
					t.Errorf("code = %v", d.Code)
				}
			}
			if _, bag := generate(t, JavaScript, mainShader(nil, tt.node)); bag.Len() != 0 {
				t.Errorf("javascript diagnostics = %v", bag.Items())
			}
		})
	}
}

func TestControlFlow(t *testing.T) {
	sh := mainShader(nil,
		&ast.IfStatement{
			Condition: ident("c"),
			Body:      block(),
			ElseBody:  block(&ast.ReturnStatement{Value: floatLit(1)}),
		},
		&ast.WhileStatement{Condition: ident("c"), Body: stmt(postfix("--", ident("n")))},
		&ast.DoStatement{Condition: binary(">", ident("n"), intLit(0)), Body: block(&ast.ContinueStatement{})},
		&ast.DiscardStatement{},
	)
	tests := []struct {
		style *Style
		want  string
	}{
		{JavaScript, `        if (V_c) {
        } else {
            return 1.0;
        }
        while (V_c) {
            V_n = RT.op_sub(V_n, 1.0);
        }
        do {
            continue;
        } while (RT.op_gt(V_n, 0));
        RT.discard();
`},
		{Python, `        if V_c:
            pass
        else:
            return 1.0
        while V_c:
            V_n = RT.op_sub(V_n, 1.0)
        while True:
            continue
            if not (RT.op_gt(V_n, 0)): break
        RT.discard()
`},
	}
	for _, tt := range tests {
		t.Run(tt.style.Name, func(t *testing.T) {
			src, _ := generate(t, tt.style, sh)
			if !strings.Contains(src, tt.want) {
				t.Errorf("missing block\nwant:\n%s\ngot:\n%s", tt.want, src)
			}
		})
	}
}

func TestFunctionsAndDebugTrap(t *testing.T) {
	sh := &ast.Shader{
		AST: &ast.Program{Statements: []ast.Node{
			&ast.Precision{Precision: "mediump", TypeName: "float"},
			&ast.FunctionPrototype{Name: "twice"},
			decl("unused", floatLit(3)),
			function("twice", []string{"a"}, &ast.ReturnStatement{Value: binary("*", ident("a"), floatLit(2))}),
			function("main", nil),
		}},
		DebugTrap: true,
	}
	tests := []struct {
		style *Style
		want  string
	}{
		{JavaScript, `    var V_twice = function(V_a) {
        return RT.op_mul(V_a, 2.0);
    };
    var V_main = function() {
    };

    debugger; RT.breakpoint();
    V_main();
}
`},
		{Python, `    def V_twice(V_a):
        return RT.op_mul(V_a, 2.0)
    def V_main():
        pass

    RT.breakpoint()
    V_main()
`},
	}
	for _, tt := range tests {
		t.Run(tt.style.Name, func(t *testing.T) {
			src, _ := generate(t, tt.style, sh)
			if !strings.HasSuffix(src, tt.want) {
				t.Errorf("unexpected tail\nwant:\n%s\ngot:\n%s", tt.want, src)
			}
			if strings.Contains(src, "unused") {
				t.Errorf("top-level declaration emitted:\n%s", src)
			}
		})
	}
}

func TestGlobalParameterWarns(t *testing.T) {
	sh := &ast.Shader{
		AST:      &ast.Program{Statements: []ast.Node{function("f", []string{"tint"}), function("main", nil)}},
		Uniforms: []ast.Variable{{Name: "tint"}},
	}
	src, bag := generate(t, JavaScript, sh)
	if !strings.Contains(src, "var V_f = function(V_tint) {") {
		t.Errorf("parameter not bound locally:\n%s", src)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.CodegenGlobalParameter {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestStructureErrorsRestoreIndent(t *testing.T) {
	tests := []struct {
		name   string
		target ast.Node
	}{
		{"call target", call("f")},
		{"ternary target", &ast.TernaryExpression{Condition: ident("c"), IsTrue: ident("a"), IsFalse: ident("b")}},
		{"literal target", intLit(3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := &ast.WhileStatement{
				Condition: &ast.BooleanLiteral{Value: true},
				Body:      block(&ast.IfStatement{Condition: ident("c"), Body: stmt(binary("=", tt.target, floatLit(1)))}),
			}
			g := New(Options{Style: Python})
			_, err := g.Generate(mainShader(nil, loop))
			if !errors.Is(err, lvalue.ErrUnsupportedTarget) {
				t.Fatalf("err = %v, want ErrUnsupportedTarget", err)
			}
			if g.em.depth != 0 {
				t.Errorf("indent depth %d after failed translation", g.em.depth)
			}
		})
	}
}

func TestUnsupportedTargetWrapsDispatcherError(t *testing.T) {
	target := &ast.TernaryExpression{Condition: ident("c"), IsTrue: ident("a"), IsFalse: ident("b")}
	_, err := New(Options{}).Generate(mainShader(nil, stmt(binary("=", target, floatLit(1)))))
	if !errors.Is(err, visit.ErrUnsupportedNode) {
		t.Errorf("err = %v, want ErrUnsupportedNode in chain", err)
	}
}

func TestDispatchTotality(t *testing.T) {
	g := New(Options{})
	for _, tag := range ast.Tags() {
		if !g.dispatch.Handles(tag) {
			t.Errorf("no codegen handler for %s", tag)
		}
	}
}

func TestGeneratorReuse(t *testing.T) {
	g := New(Options{Style: JavaScript})
	first, err := g.Generate(mainShader([]string{"a"}, stmt(binary("=", ident("a"), floatLit(1)))))
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Generate(mainShader(nil, stmt(binary("=", ident("a"), floatLit(1)))))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(first, "env.set('a', 1.0);") || !strings.Contains(second, "V_a = 1.0;") {
		t.Errorf("state leaked between translations:\n%s\n%s", first, second)
	}
	if strings.Count(second, "var RT") != 1 {
		t.Errorf("lines from the previous run kept:\n%s", second)
	}
}

func TestStyleByName(t *testing.T) {
	for name, want := range map[string]*Style{"js": JavaScript, "JavaScript": JavaScript, "py": Python, "python": Python} {
		got, err := StyleByName(name)
		if err != nil || got != want {
			t.Errorf("StyleByName(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := StyleByName("lua"); err == nil {
		t.Error("expected error for unknown style")
	}
}
