package rt

import "testing"

func TestGet(t *testing.T) {
	m := NewMat(3, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	tests := []struct {
		name string
		base Value
		sels []Value
		want string
	}{
		{"single component", FloatVec(1, 2, 3), []Value{"y"}, "2"},
		{"swizzle", FloatVec(1, 2, 3), []Value{"zyx"}, "vec3(3, 2, 1)"},
		{"color set", FloatVec(1, 2, 3, 4), []Value{"ab"}, "vec2(4, 3)"},
		{"repeat allowed on read", FloatVec(1, 2), []Value{"xx"}, "vec2(1, 1)"},
		{"index", FloatVec(1, 2), []Value{1.0}, "2"},
		{"matrix column", m, []Value{int64(1)}, "vec3(4, 5, 6)"},
		{"column then swizzle", m, []Value{2.0, "yx"}, "vec2(8, 7)"},
		{"array", NewArray(FloatVec(0, 1), FloatVec(2, 3)), []Value{1.0, "y"}, "3"},
		{"bool component", NewVec(KindBool, 1, 0), []Value{"y"}, "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Get(tt.base, tt.sels...)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if Format(got) != tt.want {
				t.Errorf("Get = %s, want %s", Format(got), tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	base := FloatVec(1, 2, 3, 4)
	got, err := Set(base, "xy", FloatVec(9, 8))
	if err != nil {
		t.Fatal(err)
	}
	if Format(got) != "vec4(9, 8, 3, 4)" {
		t.Errorf("Set = %s", Format(got))
	}
	if Format(base) != "vec4(1, 2, 3, 4)" {
		t.Errorf("Set modified its input: %s", Format(base))
	}

	m := Identity(2)
	got, err = Set(m, 1.0, "x", 5.0)
	if err != nil {
		t.Fatal(err)
	}
	if Format(got) != "mat2(vec2(1, 0), vec2(5, 1))" {
		t.Errorf("nested Set = %s", Format(got))
	}

	got, err = Set(3.0, 7.0)
	if err != nil || got != 7.0 {
		t.Errorf("Set without selectors = %v, %v", got, err)
	}
}

func TestAccessErrors(t *testing.T) {
	v := FloatVec(1, 2)
	tests := []struct {
		name string
		call func() error
		code Code
	}{
		{"component past end", func() error { _, err := Get(v, "z"); return err }, CodeOutOfRange},
		{"index past end", func() error { _, err := Get(v, 2.0); return err }, CodeOutOfRange},
		{"mixed sets", func() error { _, err := Get(v, "xg"); return err }, CodeInvalidSwizzle},
		{"bad letter", func() error { _, err := Get(v, "k"); return err }, CodeInvalidSwizzle},
		{"repeat on write", func() error { _, err := Set(v, "xx", v); return err }, CodeInvalidSwizzle},
		{"size on write", func() error { _, err := Set(v, "xy", 1.0); return err }, CodeTypeMismatch},
		{"dimension on write", func() error { _, err := Set(v, "xy", FloatVec(1, 2, 3)); return err }, CodeDimensionMismatch},
		{"field of scalar", func() error { _, err := Get(1.0, "x"); return err }, CodeTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.call()); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
		})
	}
}
