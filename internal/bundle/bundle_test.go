package bundle

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/mapping"
)

func productDescriptor() Descriptor {
	return Descriptor{
		Name:             "ProductBundle",
		Alias:            "app_product",
		FS:               fstest.MapFS{"config/services.xml": {Data: []byte("<container/>")}},
		SupportedDrivers: []string{driver.DoctrineORM, driver.DoctrineMongoDBODM},
		ModelNamespace:   "App\\Product\\Model",
		ModelInterfaces:  map[string]string{"App\\ProductInterface": "app.model.product.class"},
	}
}

func TestDescriptor_WithDefaults(t *testing.T) {
	d := Descriptor{}.WithDefaults()

	assert.Equal(t, "config", d.ConfigDir)
	assert.Equal(t, []string{"services"}, d.ConfigFiles)
	assert.Equal(t, "xml", d.ServicesFormat)
	assert.Equal(t, driver.MappingXML, d.MappingFormat)
	assert.Equal(t, "model", d.MappingDirectory)

	kept := Descriptor{ConfigFiles: []string{}, ServicesFormat: "yml"}.WithDefaults()
	assert.Empty(t, kept.ConfigFiles)
	assert.Equal(t, "yml", kept.ServicesFormat)
}

func TestDescriptor_Validate(t *testing.T) {
	require.NoError(t, New(productDescriptor()).Descriptor().Validate())

	bad := Descriptor{
		Alias:            "App-Product",
		SupportedDrivers: []string{"propel"},
		ServicesFormat:   "php",
		ModelNamespace:   "App",
		MappingFormat:    driver.MappingAnnotation,
	}
	err := bad.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, driver.ErrUnknownDriver)
	assert.ErrorIs(t, err, driver.ErrUnsupportedMappingFormat)
	assert.Contains(t, err.Error(), "name is empty")
	assert.Contains(t, err.Error(), "no file system")
	assert.Contains(t, err.Error(), `alias "App-Product"`)
}

func TestBundle_MappingNamespaces(t *testing.T) {
	d := productDescriptor()
	d.MappingDirectory = "Entity"

	assert.Equal(t,
		map[string]string{"@ProductBundle/config/doctrine/entity": "App\\Product\\Model"},
		New(d).MappingNamespaces(),
	)
}

func TestBundle_Build(t *testing.T) {
	b := New(productDescriptor())
	c := container.NewBuilder()

	require.NoError(t, b.Build(context.Background(), c, mapping.DefaultFactory()))
	require.NoError(t, c.SetParameter("app_product.driver", driver.DoctrineORM))
	require.NoError(t, c.SetParameter("app_product.driver."+driver.DoctrineORM, true))
	require.NoError(t, c.SetParameter("app.model.product.class", "App\\Entity\\Product"))

	compiled, err := c.Compile(context.Background())
	require.NoError(t, err)

	assert.Len(t, compiled.FindTagged("doctrine.orm.mappings"), 1)
	assert.Empty(t, compiled.FindTagged("doctrine_mongodb.odm.mappings"), "only the enabled driver contributes")

	resolved, ok := compiled.Parameter(mapping.ResolveTargetEntitiesParameter)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"App\\ProductInterface": "App\\Entity\\Product"}, resolved)
}

func TestBundle_BuildSkipsDriversWithoutFactory(t *testing.T) {
	f := mapping.NewFactory()
	require.NoError(t, f.Register(mapping.Key{Driver: driver.DoctrineMongoDBODM, Format: driver.MappingXML}, mapping.NewPass))

	d := productDescriptor()
	d.ModelInterfaces = nil
	c := container.NewBuilder()
	require.NoError(t, New(d).Build(context.Background(), c, f))
	require.NoError(t, c.SetParameter("app_product.driver."+driver.DoctrineMongoDBODM, true))
	require.NoError(t, c.SetParameter("app_product.driver."+driver.DoctrineORM, true))

	compiled, err := c.Compile(context.Background())
	require.NoError(t, err)
	assert.Len(t, compiled.FindTagged("doctrine_mongodb.odm.mappings"), 1)
	assert.Empty(t, compiled.FindTagged("doctrine.orm.mappings"))
}

func TestBundle_BuildRejectsUnsupportedMappingFormat(t *testing.T) {
	d := productDescriptor()
	d.MappingFormat = driver.MappingAnnotation

	err := New(d).Build(context.Background(), container.NewBuilder(), mapping.DefaultFactory())
	assert.ErrorIs(t, err, driver.ErrUnsupportedMappingFormat)
}

func TestBundle_BuildWithoutNamespaceAddsNoMappingPass(t *testing.T) {
	d := productDescriptor()
	d.ModelNamespace = ""
	d.ModelInterfaces = nil
	c := container.NewBuilder()

	require.NoError(t, New(d).Build(context.Background(), c, mapping.DefaultFactory()))
	compiled, err := c.Compile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, compiled.DefinitionIDs())
}
