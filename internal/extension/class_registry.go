package extension

import (
	"fmt"
	"maps"

	"github.com/specialistvlad/resourcekit/internal/config"
)

// ClassRegistry maps model to service kind to class across every bundle of
// one build.
type ClassRegistry map[string]map[string]string

// ClassesParameter returns the parameter the registry is stored under.
func ClassesParameter(appName string) string {
	return appName + ".config.classes"
}

// LoadClassRegistry reads the registry stored in c, or returns an empty one.
func LoadClassRegistry(c Container, appName string) (ClassRegistry, error) {
	key := ClassesParameter(appName)
	v, ok := c.Parameter(key)
	if !ok {
		return ClassRegistry{}, nil
	}
	if stored, ok := v.(ClassRegistry); ok {
		return stored.clone(), nil
	}
	// Definition files decode the registry to nested map[string]any.
	table, err := config.StringTable(v)
	if err != nil {
		return nil, fmt.Errorf("extension: parameter %q is not a class registry: %w", key, err)
	}
	return ClassRegistry(table), nil
}

// Merge returns a new registry holding r plus every (model, kind) pair of
// classes that r does not have yet. Pairs already in r win.
func (r ClassRegistry) Merge(classes map[string]map[string]string) ClassRegistry {
	out := r.clone()
	for model, kinds := range classes {
		existing, ok := out[model]
		if !ok {
			existing = make(map[string]string, len(kinds))
			out[model] = existing
		}
		for kind, class := range kinds {
			if _, taken := existing[kind]; !taken {
				existing[kind] = class
			}
		}
	}
	return out
}

// Store writes the registry to c as a plain nested map.
func (r ClassRegistry) Store(c Container, appName string) error {
	return c.SetParameter(ClassesParameter(appName), map[string]map[string]string(r.clone()))
}

func (r ClassRegistry) clone() ClassRegistry {
	out := make(ClassRegistry, len(r))
	for model, kinds := range r {
		out[model] = maps.Clone(kinds)
	}
	return out
}
