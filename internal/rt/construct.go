package rt

import "math"

// constructorNames maps shading-language type names to runtime entry points.
var constructorNames = map[string]string{
	"vec2": "Vec2", "vec3": "Vec3", "vec4": "Vec4",
	"ivec2": "IVec2", "ivec3": "IVec3", "ivec4": "IVec4",
	"bvec2": "BVec2", "bvec3": "BVec3", "bvec4": "BVec4",
	"mat2": "Mat2", "mat3": "Mat3", "mat4": "Mat4",
	"float": "Float", "int": "Int", "bool": "Bool",
}

// ConstructorName returns the runtime entry point for a type constructor.
func ConstructorName(typeName string) (string, bool) {
	n, ok := constructorNames[typeName]
	return n, ok
}

func constructors() map[string]Func {
	out := make(map[string]Func, len(constructorNames))
	for dim := 2; dim <= 4; dim++ {
		out["Vec"+digit(dim)] = vecConstructor("vec"+digit(dim), KindFloat, dim)
		out["IVec"+digit(dim)] = vecConstructor("ivec"+digit(dim), KindInt, dim)
		out["BVec"+digit(dim)] = vecConstructor("bvec"+digit(dim), KindBool, dim)
		out["Mat"+digit(dim)] = matConstructor("mat"+digit(dim), dim)
	}
	out["Float"] = scalarConstructor("float", func(x float64) Value { return x })
	out["Int"] = scalarConstructor("int", func(x float64) Value { return math.Trunc(x) })
	out["Bool"] = scalarConstructor("bool", func(x float64) Value { return x != 0 })
	return out
}

func digit(n int) string { return string(rune('0' + n)) }

// components flattens constructor arguments in order. It fails when an
// argument starts after want components have already been collected.
func components(name string, want int, args []Value) ([]float64, error) {
	var out []float64
	for i, a := range args {
		if len(out) >= want {
			return nil, errorf(CodeArity, name, "too many arguments: argument %d is unused", i+1)
		}
		switch x := a.(type) {
		case *Vec:
			out = append(out, x.c...)
		case *Mat:
			out = append(out, x.c...)
		default:
			f, ok := scalar(a)
			if !ok {
				return nil, errorf(CodeTypeMismatch, name, "argument %d: cannot construct from %s", i+1, TypeName(a))
			}
			out = append(out, f)
		}
	}
	if len(out) < want {
		return nil, errorf(CodeArity, name, "not enough components: need %d, got %d", want, len(out))
	}
	return out[:want], nil
}

func vecConstructor(name string, kind Kind, dim int) Func {
	return func(args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, errorf(CodeArity, name, "expected at least 1 argument")
		}
		if len(args) == 1 {
			if f, ok := scalar(args[0]); ok {
				c := make([]float64, dim)
				for i := range c {
					c[i] = f
				}
				return NewVec(kind, c...), nil
			}
		}
		c, err := components(name, dim, args)
		if err != nil {
			return nil, err
		}
		return NewVec(kind, c...), nil
	}
}

func matConstructor(name string, n int) Func {
	return func(args []Value) (Value, error) {
		if len(args) == 0 {
			return nil, errorf(CodeArity, name, "expected at least 1 argument")
		}
		if len(args) == 1 {
			switch x := args[0].(type) {
			case *Mat:
				// Overlapping elements are copied; the rest come from identity.
				out := Identity(n)
				for col := 0; col < min(n, x.n); col++ {
					for row := 0; row < min(n, x.n); row++ {
						out.c[col*n+row] = x.At(col, row)
					}
				}
				return out, nil
			default:
				if f, ok := scalar(x); ok {
					out := NewMat(n)
					for i := 0; i < n; i++ {
						out.c[i*n+i] = f
					}
					return out, nil
				}
			}
		}
		c, err := components(name, n*n, args)
		if err != nil {
			return nil, err
		}
		return NewMat(n, c...), nil
	}
}

func scalarConstructor(name string, conv func(float64) Value) Func {
	return func(args []Value) (Value, error) {
		if err := arity(name, args, 1, 1); err != nil {
			return nil, err
		}
		switch x := args[0].(type) {
		case *Vec:
			return conv(x.c[0]), nil
		case *Mat:
			return conv(x.c[0]), nil
		}
		f, ok := scalar(args[0])
		if !ok {
			return nil, errorf(CodeTypeMismatch, name, "cannot construct from %s", TypeName(args[0]))
		}
		return conv(f), nil
	}
}
