// Package taxonomy declares the taxonomy bundle. Its services are defined
// in HCL and it supports the ORM and PHPCR drivers.
package taxonomy

import (
	"context"
	"embed"
	"maps"

	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/extension"
	"github.com/specialistvlad/resourcekit/internal/loader"
	"github.com/specialistvlad/resourcekit/internal/registry"
)

//go:embed config
var files embed.FS

// DefaultTemplate is the template namespace of taxons that configure none.
const DefaultTemplate = "SyliusTaxonomyBundle:Taxon"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Descriptor returns the capability declaration of the bundle.
func Descriptor() bundle.Descriptor {
	return bundle.Descriptor{
		Name:             "TaxonomyBundle",
		Alias:            "sylius_taxonomy",
		AppName:          "sylius",
		FS:               files,
		ServicesFormat:   loader.FormatHCL,
		SupportedDrivers: []string{driver.DoctrineORM, driver.DoctrinePHPCRODM},
	}
}

// Models declares the bundle's models and their default classes.
var Models = map[string]config.ModelDefaults{
	"taxon": {Classes: map[string]string{
		config.KindModel:      "Sylius\\Component\\Taxonomy\\Model\\Taxon",
		config.KindController: "Sylius\\Bundle\\TaxonomyBundle\\Controller\\TaxonController",
	}},
}

// defaultTemplates gives every declared model without a template the
// bundle's default one.
func defaultTemplates(_ context.Context, cfg *config.ResourceConfig, _ extension.Container) (*config.ResourceConfig, error) {
	out := *cfg
	out.Templates = maps.Clone(cfg.Templates)
	for _, model := range cfg.Models() {
		if _, ok := out.Templates[model]; !ok {
			out.Templates[model] = DefaultTemplate
		}
	}
	return &out, nil
}

// Register adds the bundle to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Descriptor(),
		extension.WithModels(Models),
		extension.WithPostProcess(defaultTemplates),
	)
}
