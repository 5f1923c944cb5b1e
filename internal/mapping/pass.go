package mapping

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/driver"
)

// Pass registers one metadata mapping driver per namespace for a driver's
// managers.
type Pass struct {
	DriverID         string
	MappingPassID    string
	Format           string
	Method           string
	Namespaces       map[string]string
	Managers         []string
	EnabledParameter string
}

// fileExtensions is keyed by driver ID, then mapping format.
var fileExtensions = map[string]map[string]string{
	driver.DoctrineORM:        {driver.MappingXML: ".orm.xml", driver.MappingYAML: ".orm.yml"},
	driver.DoctrineMongoDBODM: {driver.MappingXML: ".mongodb.xml", driver.MappingYAML: ".mongodb.yml"},
	driver.DoctrinePHPCRODM:   {driver.MappingXML: ".phpcr.xml", driver.MappingYAML: ".phpcr.yml"},
}

// NewPass is the standard Builder.
func NewPass(_ context.Context, spec Spec) (*Pass, error) {
	method, err := driver.MappingPassMethod(spec.Format)
	if err != nil {
		return nil, err
	}
	if len(spec.Namespaces) == 0 {
		return nil, fmt.Errorf("mapping: %s pass for %s has no namespaces", spec.Format, spec.Driver.DriverID)
	}
	return &Pass{
		DriverID:         spec.Driver.DriverID,
		MappingPassID:    spec.Driver.MappingPassID,
		Format:           spec.Format,
		Method:           method,
		Namespaces:       maps.Clone(spec.Namespaces),
		Managers:         slices.Clone(spec.Driver.ManagerServiceNames),
		EnabledParameter: spec.EnabledParameter,
	}, nil
}

// ID returns the definition ID of the mapping driver registered for namespace.
func (p *Pass) ID(namespace string) string {
	return fmt.Sprintf("%s.%s_driver.%s", p.MappingPassID, p.Format, strings.ToLower(strings.ReplaceAll(namespace, "\\", "_")))
}

// Enabled reports whether the enabling parameter is set to true.
func (p *Pass) Enabled(b *container.Builder) bool {
	if p.EnabledParameter == "" {
		return true
	}
	v, ok := b.Parameter(p.EnabledParameter)
	if !ok {
		return false
	}
	enabled, _ := v.(bool)
	return enabled
}

// Process implements container.CompilerPass.
//
// For each namespace it defines "<pass id>.<format>_driver.<namespace>" and
// records the directory in the "<pass id>.namespaces" parameter shared by
// all bundles.
func (p *Pass) Process(ctx context.Context, b *container.Builder) error {
	logger := ctxlog.FromContext(ctx).With("driver", p.DriverID, "format", p.Format)
	if !p.Enabled(b) {
		logger.Debug("Mapping pass disabled, skipping.", "parameter", p.EnabledParameter)
		return nil
	}

	ext := fileExtensions[p.DriverID][p.Format]
	if ext == "" {
		ext = "." + p.Format
	}

	key := p.MappingPassID + ".namespaces"
	registered := map[string]string{}
	if v, ok := b.Parameter(key); ok {
		existing, ok := v.(map[string]string)
		if !ok {
			return fmt.Errorf("mapping: parameter %q holds %T, want map[string]string", key, v)
		}
		registered = maps.Clone(existing)
	}

	for _, dir := range slices.Sorted(maps.Keys(p.Namespaces)) {
		namespace := p.Namespaces[dir]
		def := &container.Definition{
			ID:        p.ID(namespace),
			Class:     "Doctrine\\Persistence\\Mapping\\Driver\\SymfonyFileLocator",
			Arguments: []any{map[string]string{dir: namespace}, ext},
		}
		def.AddTag(p.MappingPassID, map[string]string{
			"method":   p.Method,
			"managers": strings.Join(p.Managers, ","),
		})
		if err := b.SetDefinition(def); err != nil {
			return err
		}
		registered[dir] = namespace
		logger.Debug("Registered mapping driver.", "id", def.ID, "directory", dir, "namespace", namespace)
	}

	return b.SetParameter(key, registered)
}
