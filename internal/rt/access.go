package rt

import (
	"strings"

	"fortio.org/safecast"
)

var swizzleSets = [...]string{"xyzw", "rgba", "stpq"}

// swizzle maps a selection such as "zyx" to component indices. All letters
// must come from one naming set and address components below dim.
func swizzle(fn, sel string, dim int, unique bool) ([]int, error) {
	if sel == "" || len(sel) > 4 {
		return nil, errorf(CodeInvalidSwizzle, fn, "invalid selection %q", sel)
	}
	var set string
	for _, s := range swizzleSets {
		if strings.IndexByte(s, sel[0]) >= 0 {
			set = s
			break
		}
	}
	if set == "" {
		return nil, errorf(CodeInvalidSwizzle, fn, "invalid selection %q", sel)
	}
	idx := make([]int, len(sel))
	var seen [4]bool
	for i := 0; i < len(sel); i++ {
		k := strings.IndexByte(set, sel[i])
		if k < 0 {
			return nil, errorf(CodeInvalidSwizzle, fn, "selection %q mixes component sets", sel)
		}
		if k >= dim {
			return nil, errorf(CodeOutOfRange, fn, "component %q out of range for a %d-component vector", sel[i], dim)
		}
		if unique && seen[k] {
			return nil, errorf(CodeInvalidSwizzle, fn, "selection %q repeats component %q", sel, sel[i])
		}
		seen[k] = true
		idx[i] = k
	}
	return idx, nil
}

func index(fn string, sel Value, n int) (int, error) {
	f, ok := scalar(sel)
	if !ok {
		return 0, errorf(CodeTypeMismatch, fn, "selector must be a number or a field name, got %s", TypeName(sel))
	}
	i, err := safecast.Truncate[int](f)
	if err != nil || i < 0 || i >= n {
		return 0, errorf(CodeOutOfRange, fn, "index %v out of range [0, %d)", f, n)
	}
	return i, nil
}

// Get applies selectors left to right: numeric indices on vectors, matrices
// and arrays, field selections (swizzles) on vectors.
func Get(base Value, sels ...Value) (Value, error) {
	cur := base
	for _, sel := range sels {
		next, err := getOne(cur, sel)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func getOne(base, sel Value) (Value, error) {
	const fn = "get"
	if field, ok := sel.(string); ok {
		v, ok := base.(*Vec)
		if !ok {
			return nil, errorf(CodeTypeMismatch, fn, "cannot select .%s from %s", field, TypeName(base))
		}
		idx, err := swizzle(fn, field, v.Len(), false)
		if err != nil {
			return nil, err
		}
		if len(idx) == 1 {
			return v.At(idx[0]), nil
		}
		c := make([]float64, len(idx))
		for i, k := range idx {
			c[i] = v.c[k]
		}
		return NewVec(v.kind, c...), nil
	}
	switch x := base.(type) {
	case *Vec:
		i, err := index(fn, sel, x.Len())
		if err != nil {
			return nil, err
		}
		return x.At(i), nil
	case *Mat:
		i, err := index(fn, sel, x.n)
		if err != nil {
			return nil, err
		}
		return x.Column(i), nil
	case *Array:
		i, err := index(fn, sel, x.Len())
		if err != nil {
			return nil, err
		}
		return x.elems[i], nil
	}
	return nil, errorf(CodeTypeMismatch, fn, "cannot index %s", TypeName(base))
}

// Set returns base with the location named by sels replaced by value. The
// final argument is the value; the ones before it are selectors. base itself
// is never modified.
func Set(base Value, args ...Value) (Value, error) {
	if len(args) == 0 {
		return nil, errorf(CodeArity, "set", "missing value")
	}
	return setPath(base, args[:len(args)-1], args[len(args)-1])
}

func setPath(base Value, sels []Value, value Value) (Value, error) {
	if len(sels) == 0 {
		return value, nil
	}
	if len(sels) == 1 {
		return setOne(base, sels[0], value)
	}
	child, err := getOne(base, sels[0])
	if err != nil {
		return nil, err
	}
	updated, err := setPath(child, sels[1:], value)
	if err != nil {
		return nil, err
	}
	return setOne(base, sels[0], updated)
}

func setOne(base, sel, value Value) (Value, error) {
	const fn = "set"
	if field, ok := sel.(string); ok {
		v, ok := base.(*Vec)
		if !ok {
			return nil, errorf(CodeTypeMismatch, fn, "cannot assign .%s of %s", field, TypeName(base))
		}
		idx, err := swizzle(fn, field, v.Len(), true)
		if err != nil {
			return nil, err
		}
		src, err := sourceComponents(fn, value, len(idx))
		if err != nil {
			return nil, err
		}
		out := NewVec(v.kind, v.c...)
		for i, k := range idx {
			out.c[k] = normalize(v.kind, src[i])
		}
		return out, nil
	}
	switch x := base.(type) {
	case *Vec:
		i, err := index(fn, sel, x.Len())
		if err != nil {
			return nil, err
		}
		src, err := sourceComponents(fn, value, 1)
		if err != nil {
			return nil, err
		}
		out := NewVec(x.kind, x.c...)
		out.c[i] = normalize(x.kind, src[0])
		return out, nil
	case *Mat:
		i, err := index(fn, sel, x.n)
		if err != nil {
			return nil, err
		}
		col, ok := value.(*Vec)
		if !ok || col.Len() != x.n {
			return nil, errorf(CodeTypeMismatch, fn, "cannot assign %s to a column of %s", TypeName(value), x.TypeName())
		}
		out := NewMat(x.n, x.c...)
		copy(out.c[i*x.n:], col.c)
		return out, nil
	case *Array:
		i, err := index(fn, sel, x.Len())
		if err != nil {
			return nil, err
		}
		out := NewArray(x.elems...)
		out.elems[i] = value
		return out, nil
	}
	return nil, errorf(CodeTypeMismatch, fn, "cannot index %s", TypeName(base))
}

// sourceComponents returns n components from value, which must be a scalar
// when n is 1 and an n-component vector otherwise.
func sourceComponents(fn string, value Value, n int) ([]float64, error) {
	if v, ok := value.(*Vec); ok {
		if v.Len() != n {
			return nil, errorf(CodeDimensionMismatch, fn, "dimension mismatch: assigning %s to %d components", v.TypeName(), n)
		}
		return v.c, nil
	}
	f, ok := scalar(value)
	if !ok || n != 1 {
		return nil, errorf(CodeTypeMismatch, fn, "cannot assign %s to %d components", TypeName(value), n)
	}
	return []float64{f}, nil
}
