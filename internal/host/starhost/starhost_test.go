package starhost

import (
	"bytes"
	"errors"
	"testing"

	"glslgen/internal/env"
	"glslgen/internal/host"
	"glslgen/internal/rt"
)

const swizzleSource = `def shader(GLSL, env):
    RT = GLSL.Runtime
    def V_main():
        V_c = RT.Vec4(0.25, 0.5, 0.75, 1)
        V_c = RT.set(V_c, 'xy', RT.Vec2(1, 2))
        env.set('out', RT.op_mul(V_c, 2.0))
        env.set('n', RT.op_add(env.get('n'), 1))
        V_i = 0
        while RT.op_lt(V_i, 3):
            V_i = RT.op_add(V_i, 1.0)
        env.set('i', V_i)
        RT.print(RT.not_(RT.BVec2(True, False)))
    V_main()
`

func TestRunSwizzleProgram(t *testing.T) {
	p, err := New().Materialize("swizzle.py", swizzleSource)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	var out bytes.Buffer
	m := env.NewMap(map[string]rt.Value{"n": 1.0})
	if err := p.Run(rt.New(&out), m); err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := m.Snapshot()
	if rt.Format(got["out"]) != "vec4(2, 4, 1.5, 2)" {
		t.Errorf("out = %s", rt.Format(got["out"]))
	}
	if got["n"] != 2.0 || got["i"] != 3.0 {
		t.Errorf("n = %#v, i = %#v", got["n"], got["i"])
	}
	if out.String() != "bvec2(false, true)\n" {
		t.Errorf("print output %q", out.String())
	}
}

func TestMaterializeFailures(t *testing.T) {
	for name, src := range map[string]string{
		"syntax":         "def shader(GLSL, env):\n    V_x = = 1\n",
		"nested assign":  "def shader(GLSL, env):\n    V_y = (V_x = 1)\n",
		"no entry point": "x = 1\n",
		"keyword member": "def shader(GLSL, env):\n    GLSL.Runtime.not(True)\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := New().Materialize(name, src)
			var ce *host.CompileError
			if !errors.As(err, &ce) || ce.Engine != "starlark" {
				t.Fatalf("err = %v, want CompileError", err)
			}
		})
	}
}

func TestRuntimeErrorsSurviveTheEngine(t *testing.T) {
	src := "def shader(GLSL, env):\n    GLSL.Runtime.clamp(1.0, 2.0, 0.0)\n"
	p, err := New().Materialize("clamp.py", src)
	if err != nil {
		t.Fatal(err)
	}
	err = p.Run(rt.New(nil), env.NewMap(nil))
	if rt.CodeOf(err) != rt.CodeDomain {
		t.Errorf("err = %v, want domain error", err)
	}
}

func TestDiscard(t *testing.T) {
	src := "def shader(GLSL, env):\n    GLSL.Runtime.discard()\n    env.set('x', 1)\n"
	p, err := New().Materialize("discard.py", src)
	if err != nil {
		t.Fatal(err)
	}
	m := env.NewMap(nil)
	if err := p.Run(rt.New(nil), m); !errors.Is(err, host.ErrDiscarded) {
		t.Fatalf("err = %v", err)
	}
	if len(m.Names()) != 0 {
		t.Errorf("statements after discard ran: %v", m.Names())
	}
}

func TestMaxSteps(t *testing.T) {
	src := "def shader(GLSL, env):\n    while True:\n        pass\n"
	mat := &Materializer{MaxSteps: 1000}
	p, err := mat.Materialize("spin.py", src)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(rt.New(nil), env.NewMap(nil)); err == nil {
		t.Fatal("expected step limit error")
	}
}
