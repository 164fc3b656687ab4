package rt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is anything a runtime function accepts or returns.
type Value = any

// Kind is the component type of a vector.
type Kind uint8

const (
	KindFloat Kind = iota
	KindInt
	KindBool
)

func (k Kind) prefix() string {
	switch k {
	case KindInt:
		return "i"
	case KindBool:
		return "b"
	}
	return ""
}

// Vec is a 2 to 4 component vector.
type Vec struct {
	kind Kind
	c    []float64
}

// NewVec builds a vector, normalizing components to the kind: integers are
// truncated toward zero and booleans become 0 or 1.
func NewVec(kind Kind, comps ...float64) *Vec {
	c := make([]float64, len(comps))
	for i, x := range comps {
		c[i] = normalize(kind, x)
	}
	return &Vec{kind: kind, c: c}
}

// FloatVec is shorthand for NewVec(KindFloat, ...).
func FloatVec(comps ...float64) *Vec { return NewVec(KindFloat, comps...) }

func normalize(kind Kind, x float64) float64 {
	switch kind {
	case KindInt:
		return math.Trunc(x)
	case KindBool:
		if x != 0 {
			return 1
		}
		return 0
	}
	return x
}

func (v *Vec) Len() int   { return len(v.c) }
func (v *Vec) Kind() Kind { return v.kind }

// Float returns component i as a number.
func (v *Vec) Float(i int) float64 { return v.c[i] }

// Floats returns a copy of the components.
func (v *Vec) Floats() []float64 {
	out := make([]float64, len(v.c))
	copy(out, v.c)
	return out
}

// At returns component i as a script value: bool for boolean vectors.
func (v *Vec) At(i int) Value {
	if v.kind == KindBool {
		return v.c[i] != 0
	}
	return v.c[i]
}

// TypeName returns the shading-language type name, e.g. "ivec3".
func (v *Vec) TypeName() string {
	return fmt.Sprintf("%svec%d", v.kind.prefix(), len(v.c))
}

func (v *Vec) String() string {
	parts := make([]string, len(v.c))
	for i := range v.c {
		parts[i] = formatComponent(v.At(i))
	}
	return v.TypeName() + "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether both vectors have the same type and components.
func (v *Vec) Equal(o *Vec) bool {
	if o == nil || v.kind != o.kind || len(v.c) != len(o.c) {
		return false
	}
	for i := range v.c {
		if v.c[i] != o.c[i] {
			return false
		}
	}
	return true
}

func formatComponent(x Value) string {
	switch x := x.(type) {
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(x)
}

// Mat is a square matrix stored column-major.
type Mat struct {
	n int
	c []float64
}

// NewMat builds an n×n matrix from n*n column-major components.
func NewMat(n int, cols ...float64) *Mat {
	c := make([]float64, n*n)
	copy(c, cols)
	return &Mat{n: n, c: c}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Mat {
	m := NewMat(n)
	for i := 0; i < n; i++ {
		m.c[i*n+i] = 1
	}
	return m
}

func (m *Mat) Size() int { return m.n }

// At returns the element in column col, row row.
func (m *Mat) At(col, row int) float64 { return m.c[col*m.n+row] }

// Column returns column i as a float vector.
func (m *Mat) Column(i int) *Vec {
	return FloatVec(m.c[i*m.n : (i+1)*m.n]...)
}

func (m *Mat) TypeName() string { return fmt.Sprintf("mat%d", m.n) }

func (m *Mat) String() string {
	cols := make([]string, m.n)
	for i := range cols {
		cols[i] = m.Column(i).String()
	}
	return m.TypeName() + "(" + strings.Join(cols, ", ") + ")"
}

func (m *Mat) Equal(o *Mat) bool {
	if o == nil || m.n != o.n {
		return false
	}
	for i := range m.c {
		if m.c[i] != o.c[i] {
			return false
		}
	}
	return true
}

// Array is a fixed-length uniform array.
type Array struct {
	elems []Value
}

func NewArray(elems ...Value) *Array {
	out := make([]Value, len(elems))
	copy(out, elems)
	return &Array{elems: out}
}

func (a *Array) Len() int         { return len(a.elems) }
func (a *Array) At(i int) Value   { return a.elems[i] }
func (a *Array) TypeName() string { return fmt.Sprintf("array[%d]", len(a.elems)) }

func (a *Array) String() string {
	parts := make([]string, len(a.elems))
	for i, e := range a.elems {
		parts[i] = Format(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// TypeName names the runtime type of v for error messages.
func TypeName(v Value) string {
	switch x := v.(type) {
	case nil:
		return "void"
	case bool:
		return "bool"
	case float64, float32, int, int64, int32:
		return "float"
	case string:
		return "string"
	case interface{ TypeName() string }:
		return x.TypeName()
	case CubeSampler:
		return "samplerCube"
	case Sampler:
		return "sampler2D"
	}
	return fmt.Sprintf("%T", v)
}

// Format renders v the way print shows it.
func Format(v Value) string {
	switch x := v.(type) {
	case nil:
		return "void"
	case bool, float64:
		return formatComponent(x)
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	if f, ok := scalar(v); ok {
		return formatComponent(f)
	}
	return fmt.Sprint(v)
}

// scalar converts a numeric or boolean value to float64.
func scalar(v Value) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case float32:
		return float64(x), true
	}
	return 0, false
}

// Truthy interprets a scalar as a condition.
func Truthy(v Value) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	f, ok := scalar(v)
	if !ok {
		return false, errorf(CodeTypeMismatch, "bool", "cannot use %s as a condition", TypeName(v))
	}
	return f != 0, nil
}

// Equal compares two runtime values structurally.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Vec:
		y, ok := b.(*Vec)
		return ok && x.Equal(y)
	case *Mat:
		y, ok := b.(*Mat)
		return ok && x.Equal(y)
	case *Array:
		y, ok := b.(*Array)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i := range x.elems {
			if !Equal(x.elems[i], y.elems[i]) {
				return false
			}
		}
		return true
	}
	fa, okA := scalar(a)
	fb, okB := scalar(b)
	if okA && okB {
		return fa == fb
	}
	return a == b
}
