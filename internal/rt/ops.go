package rt

import "fortio.org/safecast"

// operators maps the op_* entry points used by generated code.
var operators = map[string]Func{
	"op_add":  arith("op_add", func(x, y float64) float64 { return x + y }),
	"op_sub":  arith("op_sub", func(x, y float64) float64 { return x - y }),
	"op_div":  arith("op_div", func(x, y float64) float64 { return x / y }),
	"op_mul":  opMul,
	"op_mod":  integer2("op_mod", intMod),
	"op_shl":  integer2("op_shl", shiftLeft),
	"op_shr":  integer2("op_shr", shiftRight),
	"op_band": integer2("op_band", func(a, b int64) (int64, error) { return a & b, nil }),
	"op_bor":  integer2("op_bor", func(a, b int64) (int64, error) { return a | b, nil }),
	"op_bxor": integer2("op_bxor", func(a, b int64) (int64, error) { return a ^ b, nil }),
	"op_lt":   compare("op_lt", func(x, y float64) bool { return x < y }),
	"op_gt":   compare("op_gt", func(x, y float64) bool { return x > y }),
	"op_le":   compare("op_le", func(x, y float64) bool { return x <= y }),
	"op_ge":   compare("op_ge", func(x, y float64) bool { return x >= y }),
	"op_eq":   equality("op_eq", false),
	"op_neq":  equality("op_neq", true),
	"op_land": logical("op_land", func(a, b bool) bool { return a && b }),
	"op_lor":  logical("op_lor", func(a, b bool) bool { return a || b }),
	"op_lxor": logical("op_lxor", func(a, b bool) bool { return a != b }),
	"op_pos":  opPos,
	"op_neg":  opNeg,
	"op_bnot": opBnot,
	"op_lnot": opLnot,
}

// arith handles the componentwise arithmetic operators, including matrix
// operands combined with scalars or same-sized matrices.
func arith(name string, f func(x, y float64) float64) Func {
	sf := binaryFunc(f)
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2, 2); err != nil {
			return nil, err
		}
		if hasMat(args) {
			return matComponentwise(name, f, args[0], args[1])
		}
		return Broadcast(name, sf, args...)
	}
}

func hasMat(args []Value) bool {
	for _, a := range args {
		if _, ok := a.(*Mat); ok {
			return true
		}
	}
	return false
}

func matComponentwise(name string, f func(x, y float64) float64, a, b Value) (Value, error) {
	ma, aIsMat := a.(*Mat)
	mb, bIsMat := b.(*Mat)
	switch {
	case aIsMat && bIsMat:
		if ma.n != mb.n {
			return nil, errorf(CodeDimensionMismatch, name, "dimension mismatch: %s and %s", ma.TypeName(), mb.TypeName())
		}
		out := NewMat(ma.n)
		for i := range out.c {
			out.c[i] = f(ma.c[i], mb.c[i])
		}
		return out, nil
	case aIsMat:
		s, ok := scalar(b)
		if !ok {
			return nil, errorf(CodeTypeMismatch, name, "cannot combine %s with %s", ma.TypeName(), TypeName(b))
		}
		out := NewMat(ma.n)
		for i := range out.c {
			out.c[i] = f(ma.c[i], s)
		}
		return out, nil
	default:
		s, ok := scalar(a)
		if !ok {
			return nil, errorf(CodeTypeMismatch, name, "cannot combine %s with %s", TypeName(a), mb.TypeName())
		}
		out := NewMat(mb.n)
		for i := range out.c {
			out.c[i] = f(s, mb.c[i])
		}
		return out, nil
	}
}

// opMul is componentwise except for the linear-algebra products
// matrix×matrix, matrix×vector and vector×matrix.
func opMul(args []Value) (Value, error) {
	const name = "op_mul"
	if err := arity(name, args, 2, 2); err != nil {
		return nil, err
	}
	mul := func(x, y float64) float64 { return x * y }
	switch a := args[0].(type) {
	case *Mat:
		switch b := args[1].(type) {
		case *Mat:
			if a.n != b.n {
				return nil, errorf(CodeDimensionMismatch, name, "dimension mismatch: %s and %s", a.TypeName(), b.TypeName())
			}
			return matMul(a, b), nil
		case *Vec:
			if a.n != b.Len() {
				return nil, errorf(CodeDimensionMismatch, name, "dimension mismatch: %s and %s", a.TypeName(), b.TypeName())
			}
			out := make([]float64, a.n)
			for row := 0; row < a.n; row++ {
				for k := 0; k < a.n; k++ {
					out[row] += a.At(k, row) * b.c[k]
				}
			}
			return FloatVec(out...), nil
		}
		return matComponentwise(name, mul, a, args[1])
	case *Vec:
		if b, ok := args[1].(*Mat); ok {
			if a.Len() != b.n {
				return nil, errorf(CodeDimensionMismatch, name, "dimension mismatch: %s and %s", a.TypeName(), b.TypeName())
			}
			out := make([]float64, b.n)
			for col := 0; col < b.n; col++ {
				for k := 0; k < b.n; k++ {
					out[col] += a.c[k] * b.At(col, k)
				}
			}
			return FloatVec(out...), nil
		}
	}
	if _, ok := args[1].(*Mat); ok {
		return matComponentwise(name, mul, args[0], args[1])
	}
	return Broadcast(name, binaryFunc(mul), args...)
}

func matMul(a, b *Mat) *Mat {
	n := a.n
	out := NewMat(n)
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += a.At(k, row) * b.At(col, k)
			}
			out.c[col*n+row] = sum
		}
	}
	return out
}

// toInt converts a component to an integer, truncating toward zero.
func toInt(name string, x float64) (int64, error) {
	i, err := safecast.Truncate[int64](x)
	if err != nil {
		return 0, errorf(CodeDomain, name, "%v is not representable as an integer", x)
	}
	return i, nil
}

func integer2(name string, f func(a, b int64) (int64, error)) Func {
	sf := func(x []float64) (float64, error) {
		a, err := toInt(name, x[0])
		if err != nil {
			return 0, err
		}
		b, err := toInt(name, x[1])
		if err != nil {
			return 0, err
		}
		r, err := f(a, b)
		if err != nil {
			return 0, errorf(CodeDomain, name, "%v", err)
		}
		return float64(r), nil
	}
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2, 2); err != nil {
			return nil, err
		}
		return Broadcast(name, sf, args...)
	}
}

type domainError string

func (e domainError) Error() string { return string(e) }

func intMod(a, b int64) (int64, error) {
	if b == 0 {
		return 0, domainError("integer modulo by zero")
	}
	return a % b, nil
}

func shiftCount(b int64) (uint, error) {
	n, err := safecast.Conv[uint](b)
	if err != nil {
		return 0, domainError("negative shift count")
	}
	return n, nil
}

func shiftLeft(a, b int64) (int64, error) {
	n, err := shiftCount(b)
	if err != nil {
		return 0, err
	}
	return a << n, nil
}

func shiftRight(a, b int64) (int64, error) {
	n, err := shiftCount(b)
	if err != nil {
		return 0, err
	}
	return a >> n, nil
}

// compare implements the relational operators, which only accept scalars.
func compare(name string, f func(x, y float64) bool) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2, 2); err != nil {
			return nil, err
		}
		x, y, err := scalars2(name, args)
		if err != nil {
			return nil, err
		}
		return f(x, y), nil
	}
}

func scalars2(name string, args []Value) (float64, float64, error) {
	x, okX := scalar(args[0])
	y, okY := scalar(args[1])
	if !okX || !okY {
		return 0, 0, errorf(CodeTypeMismatch, name, "expected scalar operands, got %s and %s", TypeName(args[0]), TypeName(args[1]))
	}
	return x, y, nil
}

func equality(name string, negate bool) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2, 2); err != nil {
			return nil, err
		}
		return Equal(args[0], args[1]) != negate, nil
	}
}

func logical(name string, f func(a, b bool) bool) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2, 2); err != nil {
			return nil, err
		}
		a, err := Truthy(args[0])
		if err != nil {
			return nil, errorf(CodeTypeMismatch, name, "left operand: %s", TypeName(args[0]))
		}
		b, err := Truthy(args[1])
		if err != nil {
			return nil, errorf(CodeTypeMismatch, name, "right operand: %s", TypeName(args[1]))
		}
		return f(a, b), nil
	}
}

func opPos(args []Value) (Value, error) {
	if err := arity("op_pos", args, 1, 1); err != nil {
		return nil, err
	}
	if m, ok := args[0].(*Mat); ok {
		return m, nil
	}
	return Broadcast("op_pos", unaryFunc(func(x float64) float64 { return x }), args...)
}

func opNeg(args []Value) (Value, error) {
	if err := arity("op_neg", args, 1, 1); err != nil {
		return nil, err
	}
	if m, ok := args[0].(*Mat); ok {
		return matComponentwise("op_neg", func(x, _ float64) float64 { return -x }, m, 0.0)
	}
	return Broadcast("op_neg", unaryFunc(func(x float64) float64 { return -x }), args...)
}

func opBnot(args []Value) (Value, error) {
	const name = "op_bnot"
	if err := arity(name, args, 1, 1); err != nil {
		return nil, err
	}
	return Broadcast(name, func(x []float64) (float64, error) {
		i, err := toInt(name, x[0])
		if err != nil {
			return 0, err
		}
		return float64(^i), nil
	}, args...)
}

func opLnot(args []Value) (Value, error) {
	if err := arity("op_lnot", args, 1, 1); err != nil {
		return nil, err
	}
	b, err := Truthy(args[0])
	if err != nil {
		return nil, errorf(CodeTypeMismatch, "op_lnot", "operand: %s", TypeName(args[0]))
	}
	return !b, nil
}

func arity(name string, args []Value, minArgs, maxArgs int) error {
	switch {
	case len(args) < minArgs && minArgs == maxArgs:
		return errorf(CodeArity, name, "expected %d arguments, got %d", minArgs, len(args))
	case len(args) < minArgs:
		return errorf(CodeArity, name, "expected at least %d arguments, got %d", minArgs, len(args))
	case maxArgs >= 0 && len(args) > maxArgs:
		return errorf(CodeArity, name, "expected at most %d arguments, got %d", maxArgs, len(args))
	}
	return nil
}
