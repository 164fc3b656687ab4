package rt

import (
	"bytes"
	"errors"
	"testing"
)

func TestMatrixProducts(t *testing.T) {
	r := New(nil)
	// Columns (1,2) and (3,4): [[1 3] [2 4]] in row form.
	m := NewMat(2, 1, 2, 3, 4)
	v := FloatVec(1, 1)
	if got := mustCall(t, r, "op_mul", m, v).(*Vec); !got.Equal(FloatVec(4, 6)) {
		t.Errorf("m*v = %v", got)
	}
	if got := mustCall(t, r, "op_mul", v, m).(*Vec); !got.Equal(FloatVec(3, 7)) {
		t.Errorf("v*m = %v", got)
	}
	if got := mustCall(t, r, "op_mul", m, Identity(2)).(*Mat); !got.Equal(m) {
		t.Errorf("m*I = %v", got)
	}
	if got := mustCall(t, r, "op_mul", m, 2.0).(*Mat); !got.Equal(NewMat(2, 2, 4, 6, 8)) {
		t.Errorf("m*2 = %v", got)
	}
	sq := mustCall(t, r, "op_mul", m, m).(*Mat)
	if !sq.Equal(NewMat(2, 7, 10, 15, 22)) {
		t.Errorf("m*m = %v", sq)
	}
}

func TestIntegerOperators(t *testing.T) {
	r := New(nil)
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"op_mod", 7, 3, 1},
		{"op_shl", 1, 4, 16},
		{"op_shr", 17, 2, 4},
		{"op_band", 6, 3, 2},
		{"op_bor", 6, 3, 7},
		{"op_bxor", 6, 3, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustCall(t, r, tt.name, tt.a, tt.b); got != tt.want {
				t.Errorf("%s(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
			}
		})
	}
	if _, err := r.Call("op_mod", 1.0, 0.0); CodeOf(err) != CodeDomain {
		t.Errorf("modulo by zero: %v", err)
	}
	if _, err := r.Call("op_shl", 1.0, -1.0); CodeOf(err) != CodeDomain {
		t.Errorf("negative shift: %v", err)
	}
	if got := mustCall(t, r, "op_bnot", 0.0); got != -1.0 {
		t.Errorf("~0 = %v", got)
	}
}

func TestComparisonAndLogic(t *testing.T) {
	r := New(nil)
	if mustCall(t, r, "op_lt", 1.0, 2.0) != true || mustCall(t, r, "op_ge", 1.0, 2.0) != false {
		t.Error("scalar comparison")
	}
	if _, err := r.Call("op_lt", FloatVec(1, 2), 1.0); CodeOf(err) != CodeTypeMismatch {
		t.Errorf("vector comparison should fail, got %v", err)
	}
	if mustCall(t, r, "op_eq", FloatVec(1, 2), FloatVec(1, 2)) != true {
		t.Error("vector equality")
	}
	if mustCall(t, r, "op_neq", FloatVec(1, 2), NewVec(KindInt, 1, 2)) != true {
		t.Error("vec2 and ivec2 compare unequal")
	}
	if mustCall(t, r, "op_lxor", true, false) != true || mustCall(t, r, "op_land", true, 0.0) != false {
		t.Error("logical operators")
	}
	if mustCall(t, r, "op_lnot", false) != true {
		t.Error("op_lnot")
	}
	if got := mustCall(t, r, "op_neg", FloatVec(1, -2)).(*Vec); !got.Equal(FloatVec(-1, 2)) {
		t.Errorf("op_neg = %v", got)
	}
}

func TestConstructors(t *testing.T) {
	r := New(nil)
	tests := []struct {
		name string
		args []Value
		want string
	}{
		{"Vec3", []Value{1.0}, "vec3(1, 1, 1)"},
		{"Vec4", []Value{FloatVec(1, 2), 3.0, int64(4)}, "vec4(1, 2, 3, 4)"},
		{"Vec2", []Value{FloatVec(1, 2, 3)}, "vec2(1, 2)"},
		{"IVec2", []Value{1.7, -1.7}, "ivec2(1, -1)"},
		{"BVec2", []Value{0.0, 2.0}, "bvec2(false, true)"},
		{"Mat2", []Value{2.0}, "mat2(vec2(2, 0), vec2(0, 2))"},
		{"Mat2", []Value{1.0, 2.0, 3.0, 4.0}, "mat2(vec2(1, 2), vec2(3, 4))"},
		{"Mat3", []Value{NewMat(2, 1, 2, 3, 4)}, "mat3(vec3(1, 2, 0), vec3(3, 4, 0), vec3(0, 0, 1))"},
		{"Float", []Value{true}, "1"},
		{"Int", []Value{-2.5}, "-2"},
		{"Bool", []Value{FloatVec(0, 1)}, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(mustCall(t, r, tt.name, tt.args...)); got != tt.want {
				t.Errorf("%s = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
	for _, bad := range [][]Value{{}, {1.0, 2.0}, {1.0, 2.0, 3.0, 4.0}} {
		if _, err := r.Call("Vec3", bad...); CodeOf(err) != CodeArity {
			t.Errorf("Vec3(%v): expected arity error, got %v", bad, err)
		}
	}
	if name, ok := ConstructorName("mat4"); !ok || name != "Mat4" {
		t.Errorf("ConstructorName(mat4) = %q, %v", name, ok)
	}
}

func TestRuntimeHooks(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	if got := mustCall(t, r, "print", FloatVec(1, 2), true); !got.(*Vec).Equal(FloatVec(1, 2)) {
		t.Errorf("print returned %v", got)
	}
	if buf.String() != "vec2(1, 2) true\n" {
		t.Errorf("print wrote %q", buf.String())
	}
	if _, err := r.Call("discard"); !errors.Is(err, ErrDiscard) {
		t.Errorf("discard: %v", err)
	}
	hits := 0
	r.OnBreakpoint = func() error { hits++; return nil }
	mustCall(t, r, "breakpoint")
	if hits != 1 {
		t.Errorf("breakpoint hook ran %d times", hits)
	}
	if _, err := r.Call("no_such"); CodeOf(err) != CodeUnknownFunction {
		t.Errorf("unknown function: %v", err)
	}
}

func TestCatalogClassification(t *testing.T) {
	for _, name := range []string{"sin", "texture2D", "clamp", "print", "matrixCompMult"} {
		if !IsBuiltin(name) {
			t.Errorf("IsBuiltin(%q) = false", name)
		}
	}
	for _, name := range []string{"op_add", "op_lxor", "op_bnot"} {
		if !IsOperator(name) || IsBuiltin(name) {
			t.Errorf("%q misclassified", name)
		}
	}
	if IsBuiltin("main") || IsOperator("main") {
		t.Error("user names are not runtime functions")
	}
	names := New(nil).Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names not sorted at %d: %q >= %q", i, names[i-1], names[i])
		}
	}
}
