// Package product declares the product catalogue bundle. Its services are
// defined in YAML and its models are mapped for the ORM and MongoDB drivers.
package product

import (
	"embed"

	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/extension"
	"github.com/specialistvlad/resourcekit/internal/loader"
	"github.com/specialistvlad/resourcekit/internal/registry"
)

//go:embed config
var files embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Descriptor returns the capability declaration of the bundle.
func Descriptor() bundle.Descriptor {
	return bundle.Descriptor{
		Name:             "ProductBundle",
		Alias:            "sylius_product",
		AppName:          "sylius",
		FS:               files,
		ServicesFormat:   loader.FormatYAML,
		SupportedDrivers: []string{driver.DoctrineORM, driver.DoctrineMongoDBODM},
		ModelNamespace:   "Sylius\\Component\\Product\\Model",
		MappingFormat:    driver.MappingXML,
		ModelInterfaces: map[string]string{
			"Sylius\\Component\\Product\\Model\\ProductInterface": "sylius.model.product.class",
			"Sylius\\Component\\Product\\Model\\VariantInterface": "sylius.model.product_variant.class",
		},
	}
}

// Models declares the bundle's models and their default classes.
var Models = map[string]config.ModelDefaults{
	"product": {Classes: map[string]string{
		config.KindModel:      "Sylius\\Component\\Product\\Model\\Product",
		config.KindController: "Sylius\\Bundle\\ResourceBundle\\Controller\\ResourceController",
		config.KindForm:       "Sylius\\Bundle\\ProductBundle\\Form\\Type\\ProductType",
	}},
	"product_variant": {
		Classes: map[string]string{
			config.KindModel: "Sylius\\Component\\Product\\Model\\Variant",
			config.KindForm:  "Sylius\\Bundle\\ProductBundle\\Form\\Type\\VariantType",
		},
		ValidationGroups: []string{"sylius", "sylius_variant"},
	},
}

// Register adds the bundle to the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Descriptor(), extension.WithModels(Models))
}
