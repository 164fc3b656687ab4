package env

import (
	"errors"
	"testing"

	"glslgen/internal/rt"
)

func TestMapGetSet(t *testing.T) {
	seed := map[string]rt.Value{"a": 1.0}
	m := NewMap(seed)
	seed["b"] = 2.0
	if _, err := m.Get("b"); !errors.Is(err, ErrUndefined) {
		t.Fatalf("seed map aliased: err = %v", err)
	}
	if err := m.Set("b", rt.FloatVec(1, 2)); err != nil {
		t.Fatal(err)
	}
	v, err := m.Get("b")
	if err != nil || rt.Format(v) != "vec2(1, 2)" {
		t.Errorf("Get(b) = %v, %v", v, err)
	}
	if names := m.Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v", names)
	}
}

func TestRecorderOrder(t *testing.T) {
	r := NewRecorder(NewMap(map[string]rt.Value{"x": 0.5}))
	if _, err := r.Get("x"); err != nil {
		t.Fatal(err)
	}
	if err := r.Set("y", 1.0); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("missing"); err == nil {
		t.Fatal("expected error")
	}
	want := "get x 0.5\nset y 1\nget missing void"
	if got := r.Transcript(); got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}
