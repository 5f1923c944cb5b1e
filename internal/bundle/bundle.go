package bundle

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/mapping"
)

// Bundle is a registered resource bundle.
type Bundle struct {
	desc Descriptor
}

// New returns a bundle for desc with defaults applied.
func New(desc Descriptor) *Bundle {
	return &Bundle{desc: desc.WithDefaults()}
}

// Descriptor returns the bundle's descriptor.
func (b *Bundle) Descriptor() Descriptor { return b.desc }

// Name returns the bundle's name.
func (b *Bundle) Name() string { return b.desc.Name }

// Alias returns the bundle's configuration key.
func (b *Bundle) Alias() string { return b.desc.Alias }

// MappingNamespaces returns the directory to namespace map handed to every
// mapping pass of the bundle.
func (b *Bundle) MappingNamespaces() map[string]string {
	dir := fmt.Sprintf("@%s/%s/doctrine/%s", b.desc.Name, b.desc.ConfigDir, strings.ToLower(b.desc.MappingDirectory))
	return map[string]string{dir: b.desc.ModelNamespace}
}

// Build adds the bundle's compiler passes to c: target entity resolution
// when model interfaces are declared, and one mapping pass per supported
// driver the factory knows when a model namespace is declared.
func (b *Bundle) Build(ctx context.Context, c *container.Builder, factory *mapping.Factory) error {
	logger := ctxlog.FromContext(ctx).With("bundle", b.desc.Name)

	if len(b.desc.ModelInterfaces) > 0 {
		pass := &mapping.ResolveTargetEntitiesPass{
			Bundle:          b.desc.Name,
			Interfaces:      b.desc.ModelInterfaces,
			DriverParameter: b.desc.Alias + ".driver",
		}
		if err := c.AddCompilerPass(pass); err != nil {
			return err
		}
		logger.Debug("Added target entity resolution pass.", "interfaces", len(b.desc.ModelInterfaces))
	}

	if b.desc.ModelNamespace == "" {
		return nil
	}
	if _, err := driver.MappingPassMethod(b.desc.MappingFormat); err != nil {
		return fmt.Errorf("bundle %s: %w", b.desc.Name, err)
	}

	namespaces := b.MappingNamespaces()
	for _, id := range b.desc.SupportedDrivers {
		desc, err := driver.MappingInfo(id)
		if err != nil {
			return fmt.Errorf("bundle %s: %w", b.desc.Name, err)
		}

		pass, ok, err := factory.Build(ctx, mapping.Spec{
			Driver:           desc,
			Format:           b.desc.MappingFormat,
			Namespaces:       namespaces,
			EnabledParameter: fmt.Sprintf("%s.driver.%s", b.desc.Alias, id),
		})
		if err != nil {
			return fmt.Errorf("bundle %s: mapping pass for %s: %w", b.desc.Name, id, err)
		}
		if !ok {
			logger.Debug("No mapping pass available for driver, skipping.", "driver", id)
			continue
		}
		if err := c.AddCompilerPass(pass); err != nil {
			return err
		}
		logger.Debug("Added mapping pass.", "driver", id, "format", b.desc.MappingFormat)
	}
	return nil
}
