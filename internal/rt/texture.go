package rt

// Sampler is a 2D texture unit. Filtering is the implementation's concern;
// lod is the bias or explicit level of detail, 0 when the shader gave none.
type Sampler interface {
	Sample2D(s, t, lod float64) (*Vec, error)
}

// CubeSampler is a cube-map texture unit.
type CubeSampler interface {
	SampleCube(dir [3]float64, lod float64) (*Vec, error)
}

// Solid is a sampler that returns the same texel everywhere.
type Solid struct {
	Color *Vec
}

func (s *Solid) Sample2D(_, _, _ float64) (*Vec, error) { return s.Color, nil }

func (s *Solid) SampleCube([3]float64, float64) (*Vec, error) { return s.Color, nil }

func texture2D(name string, proj, explicitLod bool) Func {
	return func(args []Value) (Value, error) {
		minArgs, maxArgs := 2, 3
		if explicitLod {
			minArgs = 3
		}
		if err := arity(name, args, minArgs, maxArgs); err != nil {
			return nil, err
		}
		smp, ok := args[0].(Sampler)
		if !ok {
			return nil, errorf(CodeTypeMismatch, name, "argument 1: expected sampler2D, got %s", TypeName(args[0]))
		}
		coord, ok := args[1].(*Vec)
		if !ok {
			return nil, errorf(CodeTypeMismatch, name, "argument 2: expected vector coordinate, got %s", TypeName(args[1]))
		}
		want := 2
		if proj {
			want = 3
		}
		if coord.Len() < want || (!proj && coord.Len() != 2) {
			return nil, errorf(CodeDimensionMismatch, name, "coordinate %s has the wrong dimension", coord.TypeName())
		}
		s, t := coord.c[0], coord.c[1]
		if proj {
			q := coord.c[coord.Len()-1]
			s, t = s/q, t/q
		}
		lod, err := lodArg(name, args)
		if err != nil {
			return nil, err
		}
		return smp.Sample2D(s, t, lod)
	}
}

func textureCube(name string, explicitLod bool) Func {
	return func(args []Value) (Value, error) {
		minArgs := 2
		if explicitLod {
			minArgs = 3
		}
		if err := arity(name, args, minArgs, 3); err != nil {
			return nil, err
		}
		smp, ok := args[0].(CubeSampler)
		if !ok {
			return nil, errorf(CodeTypeMismatch, name, "argument 1: expected samplerCube, got %s", TypeName(args[0]))
		}
		dir, ok := args[1].(*Vec)
		if !ok || dir.Len() != 3 {
			return nil, errorf(CodeTypeMismatch, name, "argument 2: expected vec3 direction, got %s", TypeName(args[1]))
		}
		lod, err := lodArg(name, args)
		if err != nil {
			return nil, err
		}
		return smp.SampleCube([3]float64{dir.c[0], dir.c[1], dir.c[2]}, lod)
	}
}

func lodArg(name string, args []Value) (float64, error) {
	if len(args) < 3 {
		return 0, nil
	}
	lod, ok := scalar(args[2])
	if !ok {
		return 0, errorf(CodeTypeMismatch, name, "argument 3: expected float, got %s", TypeName(args[2]))
	}
	return lod, nil
}
