package config

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Process merges raws in order and normalizes the result against schema.
// Every violation is collected; the returned error lists them sorted by path.
func Process(schema *Node, raws ...cty.Value) (cty.Value, error) {
	merged := cty.NilVal
	for _, raw := range raws {
		merged = Merge(merged, raw)
	}

	p := &processor{}
	out := p.normalize(nil, schema, merged)
	if len(p.violations) > 0 {
		sort.SliceStable(p.violations, func(i, j int) bool {
			if p.violations[i].Path == p.violations[j].Path {
				return p.violations[i].Reason < p.violations[j].Reason
			}
			return p.violations[i].Path < p.violations[j].Path
		})
		return cty.NilVal, &InvalidConfigurationError{Violations: p.violations}
	}
	return out, nil
}

// Merge deep-merges b over a: objects and maps merge key by key, anything
// else in b replaces a. Null on either side yields the other side.
func Merge(a, b cty.Value) cty.Value {
	if isAbsent(a) {
		return b
	}
	if isAbsent(b) {
		return a
	}
	if !isMapping(a) || !isMapping(b) {
		return b
	}

	am, bm := a.AsValueMap(), b.AsValueMap()
	out := make(map[string]cty.Value, len(am)+len(bm))
	for k, v := range am {
		out[k] = v
	}
	for k, v := range bm {
		out[k] = Merge(out[k], v)
	}
	if len(out) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(out)
}

func isAbsent(v cty.Value) bool {
	return v == cty.NilVal || v.IsNull()
}

func isMapping(v cty.Value) bool {
	ty := v.Type()
	return ty.IsObjectType() || ty.IsMapType()
}

type processor struct {
	violations []Violation
}

func (p *processor) fail(path []string, format string, args ...any) {
	p.violations = append(p.violations, Violation{Path: formatPath(path), Reason: fmt.Sprintf(format, args...)})
}

func formatPath(path []string) string {
	if len(path) == 0 {
		return "<root>"
	}
	var sb strings.Builder
	for i, seg := range path {
		if strings.HasPrefix(seg, "[") {
			sb.WriteString(seg)
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	return sb.String()
}

func extend(path []string, seg string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}

func (p *processor) normalize(path []string, n *Node, v cty.Value) cty.Value {
	if isAbsent(v) {
		if !n.def.IsNull() {
			v = n.def
		} else if n.kind == KindObject {
			// Absent objects still receive their children's defaults.
			v = cty.EmptyObjectVal
		} else {
			if n.required {
				p.fail(path, "is required")
			}
			return cty.NullVal(n.Type())
		}
	}
	if !v.IsWhollyKnown() {
		p.fail(path, "value must be known at load time")
		return cty.NullVal(n.Type())
	}

	switch n.kind {
	case KindScalar:
		return p.scalar(path, n.typ, v)
	case KindEnum:
		s := p.scalar(path, cty.String, v)
		if s.IsNull() {
			return s
		}
		if !slices.Contains(n.values, s.AsString()) {
			p.fail(path, "value %q is not one of [%s]", s.AsString(), quoteAll(n.values))
			return cty.NullVal(cty.String)
		}
		return s
	case KindList:
		return p.list(path, n, v)
	case KindMap:
		return p.mapping(path, n, v)
	case KindObject:
		return p.object(path, n, v)
	default:
		p.fail(path, "unsupported schema kind %s", n.kind)
		return cty.NullVal(cty.DynamicPseudoType)
	}
}

func (p *processor) scalar(path []string, typ cty.Type, v cty.Value) cty.Value {
	if !v.Type().IsPrimitiveType() {
		p.fail(path, "expected %s, got %s", typ.FriendlyName(), v.Type().FriendlyName())
		return cty.NullVal(typ)
	}
	out, err := convert.Convert(v, typ)
	if err != nil {
		p.fail(path, "expected %s, got %s", typ.FriendlyName(), v.Type().FriendlyName())
		return cty.NullVal(typ)
	}
	return out
}

func (p *processor) list(path []string, n *Node, v cty.Value) cty.Value {
	ty := v.Type()
	if ty.IsPrimitiveType() {
		v = cty.TupleVal([]cty.Value{v})
		ty = v.Type()
	}
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		p.fail(path, "expected list, got %s", ty.FriendlyName())
		return cty.NullVal(n.Type())
	}

	var elems []cty.Value
	it := v.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, elem := it.Element()
		elems = append(elems, p.normalize(extend(path, "["+strconv.Itoa(i)+"]"), n.elem, elem))
	}
	if len(elems) == 0 {
		return cty.ListValEmpty(n.elem.Type())
	}
	return cty.ListVal(elems)
}

func (p *processor) mapping(path []string, n *Node, v cty.Value) cty.Value {
	if !isMapping(v) {
		p.fail(path, "expected map, got %s", v.Type().FriendlyName())
		return cty.NullVal(n.Type())
	}
	raw := v.AsValueMap()
	if len(raw) == 0 {
		return cty.MapValEmpty(n.elem.Type())
	}
	out := make(map[string]cty.Value, len(raw))
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		out[k] = p.normalize(extend(path, k), n.elem, raw[k])
	}
	return cty.MapVal(out)
}

func (p *processor) object(path []string, n *Node, v cty.Value) cty.Value {
	if !isMapping(v) {
		p.fail(path, "expected object, got %s", v.Type().FriendlyName())
		return cty.NullVal(n.Type())
	}
	raw := v.AsValueMap()
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		if _, ok := n.children[k]; !ok {
			p.fail(extend(path, k), "unrecognized option %q", k)
		}
	}
	if len(n.children) == 0 {
		return cty.EmptyObjectVal
	}
	out := make(map[string]cty.Value, len(n.children))
	for _, k := range slices.Sorted(maps.Keys(n.children)) {
		out[k] = p.normalize(extend(path, k), n.children[k], raw[k])
	}
	return cty.ObjectVal(out)
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
