package container

import (
	"maps"
	"slices"
)

// Container is the frozen result of a build. All values are resolved.
type Container struct {
	parameters  map[string]any
	definitions map[string]*Definition
	aliases     map[string]string
	resources   []string
}

// Parameter returns a resolved parameter value.
func (c *Container) Parameter(key string) (any, bool) {
	v, ok := c.parameters[key]
	return v, ok
}

// HasParameter reports whether key exists.
func (c *Container) HasParameter(key string) bool {
	_, ok := c.parameters[key]
	return ok
}

// ParameterKeys returns all parameter keys in lexicographic order.
func (c *Container) ParameterKeys() []string {
	return slices.Sorted(maps.Keys(c.parameters))
}

// Definition returns a copy of the resolved definition for id, following aliases.
func (c *Container) Definition(id string) (*Definition, bool) {
	if target, ok := c.aliases[id]; ok {
		id = target
	}
	d, ok := c.definitions[id]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

// DefinitionIDs returns all definition IDs in lexicographic order.
func (c *Container) DefinitionIDs() []string {
	return slices.Sorted(maps.Keys(c.definitions))
}

// Aliases returns a copy of the alias table.
func (c *Container) Aliases() map[string]string {
	return maps.Clone(c.aliases)
}

// FindTagged returns the IDs of definitions carrying tag, sorted.
func (c *Container) FindTagged(tag string) []string {
	var ids []string
	for _, id := range c.DefinitionIDs() {
		if c.definitions[id].HasTag(tag) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Resources returns the files that contributed to the build.
func (c *Container) Resources() []string {
	return slices.Clone(c.resources)
}
