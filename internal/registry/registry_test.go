package registry

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/extension"
)

func descriptor(name, alias string, drivers ...string) bundle.Descriptor {
	return bundle.Descriptor{
		Name:             name,
		Alias:            alias,
		FS:               fstest.MapFS{"config/services.xml": {Data: []byte("<container/>")}},
		SupportedDrivers: drivers,
	}
}

type testModule struct{ desc bundle.Descriptor }

func (m testModule) Register(r *Registry) { r.Register(m.desc) }

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()
	for _, m := range []Module{
		testModule{descriptor("ProductBundle", "app_product", driver.DoctrineORM)},
		testModule{descriptor("OrderBundle", "app_order", driver.DoctrineORM, driver.DoctrineMongoDBODM)},
	} {
		m.Register(r)
	}

	assert.Equal(t, []string{"app_product", "app_order"}, r.Aliases())
	require.Len(t, r.Bundles(), 2)
	assert.Equal(t, "ProductBundle", r.Bundles()[0].Bundle.Name())

	e, ok := r.ByAlias("app_order")
	require.True(t, ok)
	assert.Equal(t, "OrderBundle", e.Bundle.Name())
	assert.Equal(t, "app_order", e.Extension.Alias())

	drivers, err := r.SupportedDrivers("OrderBundle")
	require.NoError(t, err)
	assert.Equal(t, []string{driver.DoctrineORM, driver.DoctrineMongoDBODM}, drivers)

	_, err = r.SupportedDrivers("MissingBundle")
	assert.Error(t, err)

	require.NoError(t, r.ValidateRegistry(context.Background()))
}

func TestRegistry_DuplicatesPanic(t *testing.T) {
	r := New()
	r.Register(descriptor("ProductBundle", "app_product", driver.DoctrineORM))

	assert.PanicsWithValue(t, "bundle with name 'ProductBundle' already registered", func() {
		r.Register(descriptor("ProductBundle", "other", driver.DoctrineORM))
	})
	assert.PanicsWithValue(t, "bundle with alias 'app_product' already registered", func() {
		r.Register(descriptor("OtherBundle", "app_product", driver.DoctrineORM))
	})
}

func TestRegistry_ValidateAggregatesErrors(t *testing.T) {
	r := New()
	r.Register(descriptor("ProductBundle", "app_product", "propel"))
	r.Register(descriptor("OrderBundle", "app_order"))
	r.RegisterBundle(
		bundle.New(descriptor("TaxonBundle", "app_taxon", driver.DoctrineORM)),
		extension.New(descriptor("TaxonBundle", "app_taxonomy", driver.DoctrineORM)),
	)

	err := r.ValidateRegistry(context.Background())
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "registry validation failed:\n- ")
	assert.Contains(t, msg, `unknown driver "propel"`)
	assert.Contains(t, msg, "no supported drivers")
	assert.Contains(t, msg, "extension alias 'app_taxonomy' does not match bundle alias 'app_taxon'")
}
