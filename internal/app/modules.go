package app

import (
	"github.com/specialistvlad/resourcekit/internal/registry"
	"github.com/specialistvlad/resourcekit/modules/order"
	"github.com/specialistvlad/resourcekit/modules/product"
	"github.com/specialistvlad/resourcekit/modules/taxonomy"
)

// coreModules is the definitive list of all bundles that are compiled into
// the resourcekit binary, in build order.
var coreModules = []registry.Module{
	&product.Module{},
	&order.Module{},
	&taxonomy.Module{},
}
