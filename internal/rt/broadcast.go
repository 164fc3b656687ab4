package rt

// ScalarFunc computes one result component from the matching component of
// every operand.
type ScalarFunc func(x []float64) (float64, error)

// Broadcast applies fn to scalar operands directly, or componentwise when any
// operand is a vector. Scalars are extended to the vector dimension; vector
// operands must agree in dimension. The result takes the kind of the first
// vector operand.
func Broadcast(name string, fn ScalarFunc, args ...Value) (Value, error) {
	return broadcast(name, false, fn, args)
}

// BroadcastBool is Broadcast for predicates: the result is a bool or a
// boolean vector.
func BroadcastBool(name string, fn ScalarFunc, args ...Value) (Value, error) {
	return broadcast(name, true, fn, args)
}

func broadcast(name string, predicate bool, fn ScalarFunc, args []Value) (Value, error) {
	dim, kind, err := shape(name, args)
	if err != nil {
		return nil, err
	}
	if predicate {
		kind = KindBool
	}
	x := make([]float64, len(args))
	if dim == 0 {
		for i, a := range args {
			x[i], _ = scalar(a)
		}
		r, err := fn(x)
		if err != nil {
			return nil, err
		}
		if predicate {
			return r != 0, nil
		}
		return r, nil
	}
	out := make([]float64, dim)
	for c := range out {
		for i, a := range args {
			if v, ok := a.(*Vec); ok {
				x[i] = v.c[c]
			} else {
				x[i], _ = scalar(a)
			}
		}
		if out[c], err = fn(x); err != nil {
			return nil, err
		}
	}
	return NewVec(kind, out...), nil
}

// shape returns the common vector dimension of args (0 when all are
// scalars) and the kind of the first vector.
func shape(name string, args []Value) (int, Kind, error) {
	dim, kind := 0, KindFloat
	var first *Vec
	for i, a := range args {
		if v, ok := a.(*Vec); ok {
			if first == nil {
				first, dim, kind = v, v.Len(), v.kind
				continue
			}
			if v.Len() != dim {
				return 0, 0, errorf(CodeDimensionMismatch, name, "dimension mismatch: %s and %s", first.TypeName(), v.TypeName())
			}
			continue
		}
		if _, ok := scalar(a); !ok {
			return 0, 0, errorf(CodeTypeMismatch, name, "argument %d: expected scalar or vector, got %s", i+1, TypeName(a))
		}
	}
	return dim, kind, nil
}

func unaryFunc(f func(x float64) float64) ScalarFunc {
	return func(x []float64) (float64, error) { return f(x[0]), nil }
}

func binaryFunc(f func(x, y float64) float64) ScalarFunc {
	return func(x []float64) (float64, error) { return f(x[0], x[1]), nil }
}

func ternaryFunc(f func(x, y, z float64) float64) ScalarFunc {
	return func(x []float64) (float64, error) { return f(x[0], x[1], x[2]), nil }
}

func boolFunc(f func(x, y float64) bool) ScalarFunc {
	return func(x []float64) (float64, error) {
		if f(x[0], x[1]) {
			return 1, nil
		}
		return 0, nil
	}
}
