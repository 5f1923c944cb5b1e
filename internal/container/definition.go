package container

import (
	"maps"
	"slices"
)

// Tag marks a definition for discovery by compiler passes.
type Tag struct {
	Name       string
	Attributes map[string]string
}

// Definition describes a service the container can wire. Arguments are
// either literal values, "@id" service references or strings holding
// "%parameter%" placeholders.
type Definition struct {
	ID        string
	Class     string
	Arguments []any
	Tags      []Tag
	Abstract  bool
}

// AddTag appends a tag and returns the definition for chaining.
func (d *Definition) AddTag(name string, attrs map[string]string) *Definition {
	d.Tags = append(d.Tags, Tag{Name: name, Attributes: attrs})
	return d
}

// HasTag reports whether the definition carries at least one tag named name.
func (d *Definition) HasTag(name string) bool {
	return slices.ContainsFunc(d.Tags, func(t Tag) bool { return t.Name == name })
}

// Clone returns a deep copy so callers can mutate it without touching the builder.
func (d *Definition) Clone() *Definition {
	cp := &Definition{
		ID:        d.ID,
		Class:     d.Class,
		Arguments: slices.Clone(d.Arguments),
		Abstract:  d.Abstract,
	}
	for _, t := range d.Tags {
		cp.Tags = append(cp.Tags, Tag{Name: t.Name, Attributes: maps.Clone(t.Attributes)})
	}
	return cp
}
