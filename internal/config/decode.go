package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decode converts a normalized resource bundle tree into a ResourceConfig.
// Null leaves are dropped, so a model that declares no repository class has
// no "repository" entry.
func Decode(v cty.Value) (*ResourceConfig, error) {
	if isAbsent(v) || !isMapping(v) {
		return nil, fmt.Errorf("config: expected an object at the root, got %s", friendlyType(v))
	}
	attrs := v.AsValueMap()

	cfg := &ResourceConfig{
		Classes:          make(map[string]map[string]string),
		Templates:        make(map[string]string),
		ValidationGroups: make(map[string][]string),
	}

	if d, ok := attrs["driver"]; ok && !d.IsNull() {
		if err := gocty.FromCtyValue(d, &cfg.Driver); err != nil {
			return nil, fmt.Errorf("config: driver: %w", err)
		}
	}

	if classes, ok := attrs["classes"]; ok && !isAbsent(classes) {
		for model, kinds := range classes.AsValueMap() {
			m, err := stringMap(kinds)
			if err != nil {
				return nil, fmt.Errorf("config: classes.%s: %w", model, err)
			}
			cfg.Classes[model] = m
		}
	}

	if templates, ok := attrs["templates"]; ok && !isAbsent(templates) {
		m, err := stringMap(templates)
		if err != nil {
			return nil, fmt.Errorf("config: templates: %w", err)
		}
		cfg.Templates = m
	}

	if groups, ok := attrs["validation_groups"]; ok && !isAbsent(groups) {
		for model, list := range groups.AsValueMap() {
			if list.IsNull() {
				continue
			}
			converted, err := convert.Convert(list, cty.List(cty.String))
			if err != nil {
				return nil, fmt.Errorf("config: validation_groups.%s: %w", model, err)
			}
			var out []string
			if err := gocty.FromCtyValue(converted, &out); err != nil {
				return nil, fmt.Errorf("config: validation_groups.%s: %w", model, err)
			}
			if out == nil {
				out = []string{}
			}
			cfg.ValidationGroups[model] = out
		}
	}

	return cfg, nil
}

// stringMap flattens an object or map of strings, skipping nulls.
func stringMap(v cty.Value) (map[string]string, error) {
	out := make(map[string]string)
	if isAbsent(v) {
		return out, nil
	}
	if !isMapping(v) {
		return nil, fmt.Errorf("expected object, got %s", v.Type().FriendlyName())
	}
	raw := v.AsValueMap()
	for _, k := range slices.Sorted(maps.Keys(raw)) {
		item := raw[k]
		if item.IsNull() {
			continue
		}
		var s string
		if err := gocty.FromCtyValue(item, &s); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = s
	}
	return out, nil
}

func friendlyType(v cty.Value) string {
	if v == cty.NilVal {
		return "nothing"
	}
	if v.IsNull() {
		return "null"
	}
	return v.Type().FriendlyName()
}
