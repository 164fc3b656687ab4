package rt

import "math"

// builtins returns the shading-language function catalog (angle and
// trigonometry, exponential, common, geometric, matrix, vector relational
// and texture lookup). print is added by the Runtime since it needs Out.
func builtins() map[string]Func {
	return map[string]Func{
		"radians": unary("radians", func(x float64) float64 { return x / 180 * math.Pi }),
		"degrees": unary("degrees", func(x float64) float64 { return x / math.Pi * 180 }),
		"sin":     unary("sin", math.Sin),
		"cos":     unary("cos", math.Cos),
		"tan":     unary("tan", math.Tan),
		"asin":    unary("asin", math.Asin),
		"acos":    unary("acos", math.Acos),
		"atan":    atan,

		"pow":         binary("pow", math.Pow),
		"exp":         unary("exp", math.Exp),
		"log":         unary("log", math.Log),
		"exp2":        unary("exp2", math.Exp2),
		"log2":        unary("log2", math.Log2),
		"sqrt":        unary("sqrt", math.Sqrt),
		"inversesqrt": unary("inversesqrt", func(x float64) float64 { return 1 / math.Sqrt(x) }),

		"abs":        unary("abs", math.Abs),
		"sign":       unary("sign", sign),
		"floor":      unary("floor", math.Floor),
		"ceil":       unary("ceil", math.Ceil),
		"fract":      unary("fract", func(x float64) float64 { return x - math.Floor(x) }),
		"mod":        binary("mod", func(x, y float64) float64 { return x - y*math.Floor(x/y) }),
		"min":        binary("min", math.Min),
		"max":        binary("max", math.Max),
		"clamp":      fixed("clamp", 3, clamp),
		"mix":        fixed("mix", 3, ternaryFunc(func(x, y, a float64) float64 { return x*(1-a) + y*a })),
		"step":       binary("step", step),
		"smoothstep": fixed("smoothstep", 3, smoothstep),

		"length":      length,
		"distance":    distance,
		"dot":         dot,
		"cross":       cross,
		"normalize":   normalizeFn,
		"faceforward": faceforward,
		"reflect":     reflect,
		"refract":     refract,

		"matrixCompMult": matrixCompMult,

		"lessThan":         relational("lessThan", func(x, y float64) bool { return x < y }),
		"lessThanEqual":    relational("lessThanEqual", func(x, y float64) bool { return x <= y }),
		"greaterThan":      relational("greaterThan", func(x, y float64) bool { return x > y }),
		"greaterThanEqual": relational("greaterThanEqual", func(x, y float64) bool { return x >= y }),
		"equal":            relational("equal", func(x, y float64) bool { return x == y }),
		"notEqual":         relational("notEqual", func(x, y float64) bool { return x != y }),
		"any":              anyAll("any", true),
		"all":              anyAll("all", false),
		"not":              not,

		"texture2D":        texture2D("texture2D", false, false),
		"texture2DProj":    texture2D("texture2DProj", true, false),
		"texture2DLod":     texture2D("texture2DLod", false, true),
		"texture2DProjLod": texture2D("texture2DProjLod", true, true),
		"textureCube":      textureCube("textureCube", false),
		"textureCubeLod":   textureCube("textureCubeLod", true),
	}
}

func fixed(name string, n int, fn ScalarFunc) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, n, n); err != nil {
			return nil, err
		}
		return Broadcast(name, fn, args...)
	}
}

func unary(name string, f func(x float64) float64) Func {
	return fixed(name, 1, unaryFunc(f))
}

func binary(name string, f func(x, y float64) float64) Func {
	return fixed(name, 2, binaryFunc(f))
}

func relational(name string, f func(x, y float64) bool) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 2, 2); err != nil {
			return nil, err
		}
		return BroadcastBool(name, boolFunc(f), args...)
	}
}

func atan(args []Value) (Value, error) {
	if err := arity("atan", args, 1, 2); err != nil {
		return nil, err
	}
	if len(args) == 2 {
		return Broadcast("atan", binaryFunc(math.Atan2), args...)
	}
	return Broadcast("atan", unaryFunc(math.Atan), args...)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func clamp(x []float64) (float64, error) {
	v, lo, hi := x[0], x[1], x[2]
	if lo > hi {
		return 0, errorf(CodeDomain, "clamp", "minVal %v is greater than maxVal %v", lo, hi)
	}
	return math.Min(math.Max(v, lo), hi), nil
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

func smoothstep(x []float64) (float64, error) {
	e0, e1, v := x[0], x[1], x[2]
	t, err := clamp([]float64{(v - e0) / (e1 - e0), 0, 1})
	if err != nil {
		return 0, err
	}
	return t * t * (3 - 2*t), nil
}

// geometric operands are scalars or float vectors of equal dimension.
func geometric(name string, args []Value) ([][]float64, error) {
	dim, _, err := shape(name, args)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(args))
	for i, a := range args {
		if v, ok := a.(*Vec); ok {
			out[i] = v.c
			continue
		}
		if dim != 0 {
			return nil, errorf(CodeTypeMismatch, name, "argument %d: expected %d-component vector, got %s", i+1, dim, TypeName(a))
		}
		f, _ := scalar(a)
		out[i] = []float64{f}
	}
	return out, nil
}

func dotOf(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func result(c []float64) Value {
	if len(c) == 1 {
		return c[0]
	}
	return FloatVec(c...)
}

func length(args []Value) (Value, error) {
	if err := arity("length", args, 1, 1); err != nil {
		return nil, err
	}
	ops, err := geometric("length", args)
	if err != nil {
		return nil, err
	}
	return math.Sqrt(dotOf(ops[0], ops[0])), nil
}

func distance(args []Value) (Value, error) {
	if err := arity("distance", args, 2, 2); err != nil {
		return nil, err
	}
	ops, err := geometric("distance", args)
	if err != nil {
		return nil, err
	}
	var sum float64
	for i := range ops[0] {
		d := ops[0][i] - ops[1][i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

func dot(args []Value) (Value, error) {
	if err := arity("dot", args, 2, 2); err != nil {
		return nil, err
	}
	ops, err := geometric("dot", args)
	if err != nil {
		return nil, err
	}
	return dotOf(ops[0], ops[1]), nil
}

func cross(args []Value) (Value, error) {
	if err := arity("cross", args, 2, 2); err != nil {
		return nil, err
	}
	x, okX := args[0].(*Vec)
	y, okY := args[1].(*Vec)
	if !okX || !okY || x.Len() != 3 || y.Len() != 3 {
		return nil, errorf(CodeDomain, "cross", "parameters must be 3-component vectors, got %s and %s", TypeName(args[0]), TypeName(args[1]))
	}
	a, b := x.c, y.c
	return FloatVec(
		a[1]*b[2]-a[2]*b[1],
		a[2]*b[0]-a[0]*b[2],
		a[0]*b[1]-a[1]*b[0],
	), nil
}

func normalizeFn(args []Value) (Value, error) {
	if err := arity("normalize", args, 1, 1); err != nil {
		return nil, err
	}
	ops, err := geometric("normalize", args)
	if err != nil {
		return nil, err
	}
	c := ops[0]
	l := math.Sqrt(dotOf(c, c))
	out := make([]float64, len(c))
	for i := range c {
		if l != 0 {
			out[i] = c[i] / l
		}
	}
	return result(out), nil
}

func faceforward(args []Value) (Value, error) {
	if err := arity("faceforward", args, 3, 3); err != nil {
		return nil, err
	}
	ops, err := geometric("faceforward", args)
	if err != nil {
		return nil, err
	}
	n, i, nref := ops[0], ops[1], ops[2]
	out := make([]float64, len(n))
	for k := range n {
		if dotOf(nref, i) < 0 {
			out[k] = n[k]
		} else {
			out[k] = -n[k]
		}
	}
	return result(out), nil
}

func reflect(args []Value) (Value, error) {
	if err := arity("reflect", args, 2, 2); err != nil {
		return nil, err
	}
	ops, err := geometric("reflect", args)
	if err != nil {
		return nil, err
	}
	i, n := ops[0], ops[1]
	d := 2 * dotOf(n, i)
	out := make([]float64, len(i))
	for k := range i {
		out[k] = i[k] - d*n[k]
	}
	return result(out), nil
}

func refract(args []Value) (Value, error) {
	if err := arity("refract", args, 3, 3); err != nil {
		return nil, err
	}
	eta, ok := scalar(args[2])
	if !ok {
		return nil, errorf(CodeTypeMismatch, "refract", "argument 3: expected float, got %s", TypeName(args[2]))
	}
	ops, err := geometric("refract", args[:2])
	if err != nil {
		return nil, err
	}
	i, n := ops[0], ops[1]
	d := dotOf(n, i)
	k := 1 - eta*eta*(1-d*d)
	out := make([]float64, len(i))
	if k >= 0 {
		f := eta*d + math.Sqrt(k)
		for c := range i {
			out[c] = eta*i[c] - f*n[c]
		}
	}
	return result(out), nil
}

func matrixCompMult(args []Value) (Value, error) {
	if err := arity("matrixCompMult", args, 2, 2); err != nil {
		return nil, err
	}
	a, okA := args[0].(*Mat)
	b, okB := args[1].(*Mat)
	if !okA || !okB {
		return nil, errorf(CodeTypeMismatch, "matrixCompMult", "expected matrices, got %s and %s", TypeName(args[0]), TypeName(args[1]))
	}
	return matComponentwise("matrixCompMult", func(x, y float64) float64 { return x * y }, a, b)
}

func anyAll(name string, wantAny bool) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 1, 1); err != nil {
			return nil, err
		}
		v, ok := args[0].(*Vec)
		if !ok {
			return nil, errorf(CodeTypeMismatch, name, "expected boolean vector, got %s", TypeName(args[0]))
		}
		for _, c := range v.c {
			if (c != 0) == wantAny {
				return wantAny, nil
			}
		}
		return !wantAny, nil
	}
}

func not(args []Value) (Value, error) {
	if err := arity("not", args, 1, 1); err != nil {
		return nil, err
	}
	v, ok := args[0].(*Vec)
	if !ok {
		return nil, errorf(CodeTypeMismatch, "not", "expected boolean vector, got %s", TypeName(args[0]))
	}
	out := make([]float64, v.Len())
	for i, c := range v.c {
		if c == 0 {
			out[i] = 1
		}
	}
	return NewVec(KindBool, out...), nil
}
