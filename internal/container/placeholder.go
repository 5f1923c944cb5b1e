package container

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/agext/levenshtein"
)

// resolver expands "%key%" placeholders against a parameter snapshot.
// Resolved parameters are memoized; a parameter that refers back to itself
// through other parameters is reported as a circular reference.
type resolver struct {
	raw       map[string]any
	resolved  map[string]any
	resolving map[string]bool
}

func newResolver(raw map[string]any) *resolver {
	return &resolver{
		raw:       raw,
		resolved:  make(map[string]any, len(raw)),
		resolving: make(map[string]bool),
	}
}

func (r *resolver) resolveParameter(key string) (any, error) {
	if v, ok := r.resolved[key]; ok {
		return v, nil
	}
	if r.resolving[key] {
		return nil, fmt.Errorf("container: circular reference while resolving parameter %q", key)
	}
	raw, ok := r.raw[key]
	if !ok {
		return nil, &MissingParameterError{Key: key, Referrer: "parameter lookup", Suggestion: r.suggest(key)}
	}

	r.resolving[key] = true
	v, err := r.resolveValue(raw, "parameter "+key)
	delete(r.resolving, key)
	if err != nil {
		return nil, err
	}
	r.resolved[key] = v
	return v, nil
}

func (r *resolver) resolveDefinition(def *Definition) (*Definition, error) {
	out := def.Clone()
	referrer := "service " + def.ID

	class, err := r.resolveString(def.Class, referrer)
	if err != nil {
		return nil, err
	}
	s, ok := class.(string)
	if !ok {
		return nil, fmt.Errorf("container: class of service %q resolves to %T, want string", def.ID, class)
	}
	out.Class = s

	for i, arg := range def.Arguments {
		v, err := r.resolveValue(arg, referrer)
		if err != nil {
			return nil, err
		}
		out.Arguments[i] = v
	}
	return out, nil
}

func (r *resolver) resolveValue(v any, referrer string) (any, error) {
	switch val := v.(type) {
	case string:
		return r.resolveString(val, referrer)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			resolved, err := r.resolveValue(item, referrer)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			resolved, err := r.embed(item, referrer)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			resolved, err := r.resolveValue(val[k], referrer)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case map[string]string:
		out := make(map[string]string, len(val))
		for _, k := range slices.Sorted(maps.Keys(val)) {
			resolved, err := r.embed(val[k], referrer)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

// resolveString returns the raw parameter value when s is exactly one
// placeholder, so lists and maps survive; otherwise it embeds string forms.
func (r *resolver) resolveString(s, referrer string) (any, error) {
	if len(s) > 2 && s[0] == '%' && s[len(s)-1] == '%' {
		key := s[1 : len(s)-1]
		if key != "" && !strings.ContainsAny(key, "% ") {
			return r.lookup(key, referrer)
		}
	}
	return r.embed(s, referrer)
}

func (r *resolver) embed(s, referrer string) (string, error) {
	if !strings.Contains(s, "%") {
		return s, nil
	}
	var sb strings.Builder
	for {
		start := strings.IndexByte(s, '%')
		if start < 0 {
			sb.WriteString(s)
			return sb.String(), nil
		}
		sb.WriteString(s[:start])
		rest := s[start+1:]
		if strings.HasPrefix(rest, "%") {
			sb.WriteByte('%')
			s = rest[1:]
			continue
		}
		end := strings.IndexByte(rest, '%')
		if end < 0 {
			return "", fmt.Errorf("container: unterminated placeholder in %q (%s)", s, referrer)
		}
		key := rest[:end]
		v, err := r.lookup(key, referrer)
		if err != nil {
			return "", err
		}
		switch v.(type) {
		case string, bool, int, int64, float64:
			sb.WriteString(fmt.Sprint(v))
		default:
			return "", fmt.Errorf("container: parameter %q of type %T cannot be embedded in a string (%s)", key, v, referrer)
		}
		s = rest[end+1:]
	}
}

func (r *resolver) lookup(key, referrer string) (any, error) {
	if _, ok := r.raw[key]; !ok {
		return nil, &MissingParameterError{Key: key, Referrer: referrer, Suggestion: r.suggest(key)}
	}
	return r.resolveParameter(key)
}

// suggest returns the closest known parameter key, if any is close enough.
func (r *resolver) suggest(key string) string {
	best, bestDist := "", 4
	for _, candidate := range slices.Sorted(maps.Keys(r.raw)) {
		if d := levenshtein.Distance(key, candidate, nil); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
