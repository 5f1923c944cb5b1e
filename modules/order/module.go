// Package order declares the order bundle. Its XML service definitions live
// under config/services and it is only persisted through the ORM.
package order

import (
	"embed"

	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/extension"
	"github.com/specialistvlad/resourcekit/internal/registry"
)

//go:embed config
var files embed.FS

// Module implements the registry.Module interface for this package.
type Module struct{}

// Descriptor returns the capability declaration of the bundle. The
// application name is left to the kernel.
func Descriptor() bundle.Descriptor {
	return bundle.Descriptor{
		Name:             "OrderBundle",
		Alias:            "sylius_order",
		FS:               files,
		ConfigFiles:      []string{"services", "checkout"},
		SupportedDrivers: []string{driver.DoctrineORM},
		ModelNamespace:   "Sylius\\Component\\Order\\Model",
		MappingFormat:    driver.MappingYAML,
	}
}

// Models declares the bundle's models and their default classes.
var Models = map[string]config.ModelDefaults{
	"order": {Classes: map[string]string{
		config.KindModel:      "Sylius\\Component\\Order\\Model\\Order",
		config.KindRepository: "Sylius\\Bundle\\OrderBundle\\Doctrine\\ORM\\OrderRepository",
		config.KindController: "Sylius\\Bundle\\ResourceBundle\\Controller\\ResourceController",
	}},
	"order_item": {Classes: map[string]string{
		config.KindModel: "Sylius\\Component\\Order\\Model\\OrderItem",
	}},
}

// Register adds the bundle to the registry. Orders publish no validation
// groups.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Descriptor(),
		extension.WithModels(Models),
		extension.WithStages(extension.StageDatabase, extension.StageParameters),
	)
}
