package container

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/ctxlog"
)

// CompilerPass mutates the builder once every bundle has been loaded.
type CompilerPass interface {
	Process(ctx context.Context, b *Builder) error
}

// PassFunc adapts a plain function to the CompilerPass interface.
type PassFunc func(ctx context.Context, b *Builder) error

// Process implements CompilerPass.
func (f PassFunc) Process(ctx context.Context, b *Builder) error { return f(ctx, b) }

// Builder accumulates parameters, definitions and passes for one build.
type Builder struct {
	parameters  map[string]any
	definitions map[string]*Definition
	aliases     map[string]string
	passes      []CompilerPass
	resources   []string
	frozen      bool
}

// NewBuilder starts a new container build.
func NewBuilder() *Builder {
	return &Builder{
		parameters:  make(map[string]any),
		definitions: make(map[string]*Definition),
		aliases:     make(map[string]string),
	}
}

// SetParameter stores value under key, replacing any previous value.
func (b *Builder) SetParameter(key string, value any) error {
	if b.frozen {
		return ErrFrozen
	}
	b.parameters[key] = value
	return nil
}

// Parameter returns the raw (unresolved) value stored under key.
func (b *Builder) Parameter(key string) (any, bool) {
	v, ok := b.parameters[key]
	return v, ok
}

// HasParameter reports whether key was set.
func (b *Builder) HasParameter(key string) bool {
	_, ok := b.parameters[key]
	return ok
}

// ParameterKeys returns all parameter keys in lexicographic order.
func (b *Builder) ParameterKeys() []string {
	return slices.Sorted(maps.Keys(b.parameters))
}

// SetDefinition registers def under def.ID. A later definition with the same
// ID replaces the earlier one and drops an alias of the same name.
func (b *Builder) SetDefinition(def *Definition) error {
	if b.frozen {
		return ErrFrozen
	}
	if def == nil || def.ID == "" {
		return fmt.Errorf("container: definition without id")
	}
	delete(b.aliases, def.ID)
	b.definitions[def.ID] = def
	return nil
}

// Definition returns the definition registered under id, following aliases.
func (b *Builder) Definition(id string) (*Definition, bool) {
	if target, ok := b.aliases[id]; ok {
		id = target
	}
	d, ok := b.definitions[id]
	return d, ok
}

// DefinitionIDs returns all definition IDs in lexicographic order.
func (b *Builder) DefinitionIDs() []string {
	return slices.Sorted(maps.Keys(b.definitions))
}

// SetAlias makes alias resolve to the service id and drops a definition of
// the same name.
func (b *Builder) SetAlias(alias, id string) error {
	if b.frozen {
		return ErrFrozen
	}
	if alias == id {
		return fmt.Errorf("container: alias %q points to itself", alias)
	}
	delete(b.definitions, alias)
	b.aliases[alias] = id
	return nil
}

// Alias returns the service id an alias points to.
func (b *Builder) Alias(alias string) (string, bool) {
	id, ok := b.aliases[alias]
	return id, ok
}

// AddCompilerPass queues a pass for Compile.
func (b *Builder) AddCompilerPass(pass CompilerPass) error {
	if b.frozen {
		return ErrFrozen
	}
	b.passes = append(b.passes, pass)
	return nil
}

// AddResource records a file that contributed to the build.
func (b *Builder) AddResource(path string) {
	b.resources = append(b.resources, path)
}

// Resources returns the files loaded so far, in load order.
func (b *Builder) Resources() []string {
	return slices.Clone(b.resources)
}

// Compile finishes the build: it runs every compiler pass, resolves
// placeholders and freezes the builder.
func (b *Builder) Compile(ctx context.Context) (*Container, error) {
	logger := ctxlog.FromContext(ctx)
	if b.frozen {
		return nil, ErrFrozen
	}

	logger.Debug("Running compiler passes.", "count", len(b.passes))
	for i, pass := range b.passes {
		if err := pass.Process(ctx, b); err != nil {
			return nil, fmt.Errorf("compiler pass #%d (%T): %w", i, pass, err)
		}
	}

	for _, alias := range slices.Sorted(maps.Keys(b.aliases)) {
		target := b.aliases[alias]
		if _, ok := b.definitions[target]; !ok {
			return nil, &MissingDefinitionError{ID: target, Alias: alias}
		}
	}
	if err := b.checkReferences(); err != nil {
		return nil, err
	}

	r := newResolver(b.parameters)
	params := make(map[string]any, len(b.parameters))
	for _, key := range b.ParameterKeys() {
		v, err := r.resolveParameter(key)
		if err != nil {
			return nil, err
		}
		params[key] = v
	}

	defs := make(map[string]*Definition, len(b.definitions))
	for _, id := range b.DefinitionIDs() {
		def, err := r.resolveDefinition(b.definitions[id])
		if err != nil {
			return nil, err
		}
		defs[id] = def
	}

	b.frozen = true
	logger.Debug("Container compiled.", "parameters", len(params), "definitions", len(defs), "aliases", len(b.aliases))

	return &Container{
		parameters:  params,
		definitions: defs,
		aliases:     maps.Clone(b.aliases),
		resources:   slices.Clone(b.resources),
	}, nil
}

// checkReferences reports the first "@id" argument, in definition order,
// that names neither a definition nor an alias. Strings starting with "@@"
// are not references.
func (b *Builder) checkReferences() error {
	for _, id := range b.DefinitionIDs() {
		for _, ref := range references(b.definitions[id].Arguments) {
			if _, ok := b.Definition(ref); !ok {
				return &MissingDefinitionError{ID: ref, Referrer: id}
			}
		}
	}
	return nil
}

func references(args []any) []string {
	var out []string
	var walk func(v any)
	walk = func(v any) {
		switch t := v.(type) {
		case string:
			if len(t) > 1 && t[0] == '@' && t[1] != '@' {
				out = append(out, t[1:])
			}
		case []any:
			for _, item := range t {
				walk(item)
			}
		case []string:
			for _, item := range t {
				walk(item)
			}
		case map[string]any:
			for _, k := range slices.Sorted(maps.Keys(t)) {
				walk(t[k])
			}
		case map[string]string:
			for _, k := range slices.Sorted(maps.Keys(t)) {
				walk(t[k])
			}
		}
	}
	for _, arg := range args {
		walk(arg)
	}
	return out
}
