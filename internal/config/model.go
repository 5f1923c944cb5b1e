package config

import (
	"maps"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/resource"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of the application configuration.
type Model struct {
	// Bundles holds the raw configuration trees per bundle alias, in the
	// order the loader encountered them.
	Bundles map[string][]cty.Value

	// Overrides holds per-resource operation overrides for the resolver.
	Overrides resource.Overrides
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Bundles:   make(map[string][]cty.Value),
		Overrides: make(resource.Overrides),
	}
}

// Aliases returns the configured bundle aliases in lexicographic order.
func (m *Model) Aliases() []string {
	return slices.Sorted(maps.Keys(m.Bundles))
}

// ResourceConfig is the normalized configuration of one resource bundle.
// It is built once per bundle load and not modified afterwards.
type ResourceConfig struct {
	Driver string

	// Classes maps model name to service kind to class name.
	Classes map[string]map[string]string

	// Templates maps model name to its template namespace.
	Templates map[string]string

	// ValidationGroups maps model name to its validation groups.
	ValidationGroups map[string][]string
}

// Models returns the model names declared in Classes, sorted.
func (c *ResourceConfig) Models() []string {
	return slices.Sorted(maps.Keys(c.Classes))
}
