package config

import (
	"fmt"
	"maps"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Native recursively converts v to plain Go values: string, int (for whole
// numbers), float64, bool, []any and map[string]any. Null becomes nil.
func Native(v cty.Value) (any, error) {
	if v == cty.NilVal || v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known at load time")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == 0 {
				return int(i), nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		it := v.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, elem := it.Element()
			n, err := Native(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out = append(out, n)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			n, err := Native(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			out[key.AsString()] = n
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
	}
}

// StringTable converts a two-level mapping of strings, as decoded from a
// definition file or stored by Go code, to map[string]map[string]string.
// Leaves that are not strings are rejected.
func StringTable(v any) (map[string]map[string]string, error) {
	switch t := v.(type) {
	case map[string]map[string]string:
		out := make(map[string]map[string]string, len(t))
		for k, row := range t {
			out[k] = maps.Clone(row)
		}
		return out, nil
	case map[string]any:
		out := make(map[string]map[string]string, len(t))
		for k, raw := range t {
			row, err := stringRow(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = row
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected a mapping of mappings, got %T", v)
	}
}

func stringRow(v any) (map[string]string, error) {
	switch t := v.(type) {
	case map[string]string:
		return maps.Clone(t), nil
	case map[string]any:
		out := make(map[string]string, len(t))
		for k, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: expected string, got %T", k, item)
			}
			out[k] = s
		}
		return out, nil
	case nil:
		return map[string]string{}, nil
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
}
