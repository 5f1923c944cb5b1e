package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/extension"
)

// Module is the interface that all bundle modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Entry pairs a bundle with the extension that configures it.
type Entry struct {
	Bundle    *bundle.Bundle
	Extension *extension.Extension
}

// Registry holds the registered bundles of a single application instance.
type Registry struct {
	entries []*Entry
	byName  map[string]*Entry
	byAlias map[string]*Entry
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		byName:  make(map[string]*Entry),
		byAlias: make(map[string]*Entry),
	}
}

// Register declares a bundle and its extension from one descriptor.
func (r *Registry) Register(desc bundle.Descriptor, opts ...extension.Option) {
	r.RegisterBundle(bundle.New(desc), extension.New(desc, opts...))
}

// RegisterBundle adds a bundle and its extension. It panics when the name
// or alias is already taken.
func (r *Registry) RegisterBundle(b *bundle.Bundle, ext *extension.Extension) {
	if _, exists := r.byName[b.Name()]; exists {
		panic(fmt.Sprintf("bundle with name '%s' already registered", b.Name()))
	}
	if _, exists := r.byAlias[b.Alias()]; exists {
		panic(fmt.Sprintf("bundle with alias '%s' already registered", b.Alias()))
	}
	slog.Debug("Registering bundle.", "name", b.Name(), "alias", b.Alias())

	e := &Entry{Bundle: b, Extension: ext}
	r.entries = append(r.entries, e)
	r.byName[b.Name()] = e
	r.byAlias[b.Alias()] = e
}

// Bundles returns the registered entries in registration order.
func (r *Registry) Bundles() []*Entry {
	return slices.Clone(r.entries)
}

// Bundle returns the entry registered under name.
func (r *Registry) Bundle(name string) (*Entry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// ByAlias returns the entry whose configuration key is alias.
func (r *Registry) ByAlias(alias string) (*Entry, bool) {
	e, ok := r.byAlias[alias]
	return e, ok
}

// Aliases returns every registered alias in registration order.
func (r *Registry) Aliases() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Bundle.Alias()
	}
	return out
}

// SupportedDrivers returns the drivers declared by the named bundle.
func (r *Registry) SupportedDrivers(name string) ([]string, error) {
	e, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown bundle %q", name)
	}
	return slices.Clone(e.Bundle.Descriptor().SupportedDrivers), nil
}
