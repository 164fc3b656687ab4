package starhost

import (
	"fmt"

	"go.starlark.net/starlark"

	"glslgen/internal/rt"
)

// opaque carries runtime vectors, matrices, arrays and samplers through
// Starlark code untouched.
type opaque struct {
	v rt.Value
}

var _ starlark.Value = (*opaque)(nil)

func (o *opaque) String() string        { return rt.Format(o.v) }
func (o *opaque) Type() string          { return rt.TypeName(o.v) }
func (o *opaque) Freeze()               {}
func (o *opaque) Truth() starlark.Bool  { return starlark.True }
func (o *opaque) Hash() (uint32, error) { return 0, fmt.Errorf("unhashable type: %s", o.Type()) }

func toGo(v starlark.Value) (rt.Value, error) {
	switch x := v.(type) {
	case starlark.NoneType:
		return nil, nil
	case starlark.Bool:
		return bool(x), nil
	case starlark.Float:
		return float64(x), nil
	case starlark.Int:
		f, _ := starlark.AsFloat(x)
		return f, nil
	case starlark.String:
		return string(x), nil
	case *opaque:
		return x.v, nil
	}
	return nil, fmt.Errorf("cannot pass %s to the runtime", v.Type())
}

func toStarlark(v rt.Value) starlark.Value {
	switch x := v.(type) {
	case nil:
		return starlark.None
	case bool:
		return starlark.Bool(x)
	case float64:
		return starlark.Float(x)
	case int64:
		return starlark.Float(float64(x))
	case string:
		return starlark.String(x)
	}
	return &opaque{v: v}
}
