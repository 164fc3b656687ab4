package config

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"glslgen/internal/rt"
)

// LoadGlobals reads environment values for a shader run. Values live in a
// [globals] table, or at top level when the file has none:
//
//	[globals]
//	time = 1.5
//	enabled = true
//	tint = [1.0, 0.5, 0.25, 1.0]         # vec4
//	mask = [true, false]                  # bvec2
//	model = [[1.0, 0.0], [0.0, 1.0]]      # mat2, column-major
//	weights = [[0.5], [0.25], [0.125]]    # array of floats
func LoadGlobals(path string) (map[string]rt.Value, error) {
	var doc map[string]any
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if inner, ok := doc["globals"].(map[string]any); ok {
		doc = inner
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]rt.Value, len(doc))
	for _, name := range names {
		v, err := convert(doc[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, name, err)
		}
		out[name] = v
	}
	return out, nil
}

func convert(raw any) (rt.Value, error) {
	switch x := raw.(type) {
	case bool:
		return x, nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case []any:
		return convertList(x)
	case []map[string]any, map[string]any:
		return nil, fmt.Errorf("tables are not shader values")
	}
	return nil, fmt.Errorf("unsupported value %T", raw)
}

func convertList(list []any) (rt.Value, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("empty array")
	}
	if _, nested := list[0].([]any); nested {
		return convertNested(list)
	}
	comps := make([]float64, len(list))
	kind := rt.KindFloat
	for i, e := range list {
		switch x := e.(type) {
		case bool:
			if i > 0 && kind != rt.KindBool {
				return nil, fmt.Errorf("mixed vector components")
			}
			kind = rt.KindBool
			if x {
				comps[i] = 1
			}
		case int64:
			if kind == rt.KindBool {
				return nil, fmt.Errorf("mixed vector components")
			}
			comps[i] = float64(x)
		case float64:
			if kind == rt.KindBool {
				return nil, fmt.Errorf("mixed vector components")
			}
			comps[i] = x
		default:
			return nil, fmt.Errorf("unsupported vector component %T", e)
		}
	}
	if len(comps) < 2 || len(comps) > 4 {
		return nil, fmt.Errorf("vectors have 2 to 4 components, got %d", len(comps))
	}
	return rt.NewVec(kind, comps...), nil
}

// convertNested reads n columns of n floats as a matrix and any other list
// of lists as an array whose single-element rows become scalars.
func convertNested(list []any) (rt.Value, error) {
	elems := make([]rt.Value, len(list))
	square := len(list) >= 2 && len(list) <= 4
	for i, e := range list {
		row, ok := e.([]any)
		if !ok {
			return nil, fmt.Errorf("mixed nesting")
		}
		if len(row) != len(list) {
			square = false
		}
		if len(row) == 1 {
			v, err := convert(row[0])
			if err != nil {
				return nil, err
			}
			elems[i] = v
			continue
		}
		v, err := convertList(row)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	if square {
		n := len(list)
		cols := make([]float64, 0, n*n)
		for _, e := range elems {
			v, ok := e.(*rt.Vec)
			if !ok || v.Kind() != rt.KindFloat {
				return rt.NewArray(elems...), nil
			}
			cols = append(cols, v.Floats()...)
		}
		return rt.NewMat(n, cols...), nil
	}
	return rt.NewArray(elems...), nil
}
