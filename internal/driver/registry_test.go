package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/container"
)

func TestMappingInfo_KnownDrivers(t *testing.T) {
	testCases := []struct {
		driver  string
		passID  string
		manager string
	}{
		{DoctrineORM, "doctrine.orm.mappings", "doctrine.orm.entity_manager"},
		{DoctrineMongoDBODM, "doctrine_mongodb.odm.mappings", "doctrine_mongodb.odm.document_manager"},
		{DoctrinePHPCRODM, "doctrine_phpcr.odm.mappings", "doctrine_phpcr.odm.document_manager"},
	}

	for _, tc := range testCases {
		t.Run(tc.driver, func(t *testing.T) {
			d, err := MappingInfo(tc.driver)
			require.NoError(t, err)
			assert.Equal(t, tc.driver, d.DriverID)
			assert.Equal(t, tc.passID, d.MappingPassID)
			require.NotEmpty(t, d.ManagerServiceNames)
			assert.Equal(t, tc.manager, d.ManagerServiceNames[0])
		})
	}
}

func TestMappingInfo_UnknownDriver(t *testing.T) {
	for _, id := range []string{"", "propel", "doctrine/ORM", "doctrine/couchdb-odm"} {
		_, err := MappingInfo(id)
		require.Error(t, err, "driver %q", id)
		assert.True(t, errors.Is(err, ErrUnknownDriver), "driver %q", id)

		var unknown *UnknownDriverError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, id, unknown.Driver)
	}
}

func TestMappingInfo_ReturnsCopy(t *testing.T) {
	d, err := MappingInfo(DoctrineORM)
	require.NoError(t, err)
	d.ManagerServiceNames[0] = "mutated"

	again, err := MappingInfo(DoctrineORM)
	require.NoError(t, err)
	assert.Equal(t, "doctrine.orm.entity_manager", again.ManagerServiceNames[0])
}

func TestMappingPassMethod(t *testing.T) {
	m, err := MappingPassMethod(MappingXML)
	require.NoError(t, err)
	assert.Equal(t, "createXmlMappingDriver", m)

	m, err = MappingPassMethod(MappingYAML)
	require.NoError(t, err)
	assert.Equal(t, "createYamlMappingDriver", m)

	for _, format := range []string{MappingAnnotation, "yml", "php", ""} {
		_, err := MappingPassMethod(format)
		assert.ErrorIs(t, err, ErrUnsupportedMappingFormat, "format %q", format)
	}
}

func TestDatabaseDriver_Load(t *testing.T) {
	d, err := NewDatabaseDriver(DoctrineORM)
	require.NoError(t, err)

	b := container.NewBuilder()
	err = d.Load(context.Background(), b, Model{
		AppName: "sylius",
		Name:    "product",
		Classes: map[string]string{
			config.KindModel:      "App\\Product",
			config.KindController: "App\\ProductController",
		},
		Template: "App:Product",
	})
	require.NoError(t, err)

	manager, ok := b.Alias("sylius.manager.product")
	require.True(t, ok)
	assert.Equal(t, "doctrine.orm.entity_manager", manager)
	em, ok := b.Definition("doctrine.orm.entity_manager")
	require.True(t, ok)
	assert.Equal(t, "Doctrine\\ORM\\EntityManager", em.Class)

	repo, ok := b.Definition("sylius.repository.product")
	require.True(t, ok)
	assert.Equal(t, "ResourceKit\\Doctrine\\ORM\\EntityRepository", repo.Class)
	assert.Equal(t, []any{"@sylius.manager.product", "App\\Product"}, repo.Arguments)

	factory, ok := b.Definition("sylius.factory.product")
	require.True(t, ok)
	assert.Equal(t, DefaultFactoryClass, factory.Class)

	controller, ok := b.Definition("sylius.controller.product")
	require.True(t, ok)
	assert.True(t, controller.HasTag("controller.resource"))

	tpl, ok := b.Parameter("sylius.template.product")
	require.True(t, ok)
	assert.Equal(t, "App:Product", tpl)
}

func TestDatabaseDriver_LoadUsesConfiguredRepositoryAndSkipsController(t *testing.T) {
	d, err := NewDatabaseDriver(DoctrineMongoDBODM)
	require.NoError(t, err)

	b := container.NewBuilder()
	require.NoError(t, d.Load(context.Background(), b, Model{
		AppName: "app",
		Name:    "order",
		Classes: map[string]string{
			config.KindModel:      "App\\Order",
			config.KindRepository: "App\\OrderRepository",
		},
	}))

	repo, _ := b.Definition("app.repository.order")
	assert.Equal(t, "App\\OrderRepository", repo.Class)
	_, ok := b.Definition("app.controller.order")
	assert.False(t, ok)
	assert.False(t, b.HasParameter("app.template.order"))
}

func TestDatabaseDriver_LoadRequiresModelClass(t *testing.T) {
	d, err := NewDatabaseDriver(DoctrinePHPCRODM)
	require.NoError(t, err)

	err = d.Load(context.Background(), container.NewBuilder(), Model{AppName: "app", Name: "page", Classes: map[string]string{}})
	assert.Error(t, err)
}

func TestDatabaseDriver_LoadKeepsExistingManager(t *testing.T) {
	d, err := NewDatabaseDriver(DoctrineORM)
	require.NoError(t, err)

	b := container.NewBuilder()
	require.NoError(t, b.SetDefinition(&container.Definition{ID: "doctrine.orm.entity_manager", Class: "App\\CustomManager"}))
	require.NoError(t, d.Load(context.Background(), b, Model{
		AppName: "app",
		Name:    "order",
		Classes: map[string]string{config.KindModel: "App\\Order"},
	}))

	em, _ := b.Definition("doctrine.orm.entity_manager")
	assert.Equal(t, "App\\CustomManager", em.Class)
}

func TestNewDatabaseDriver_Unknown(t *testing.T) {
	_, err := NewDatabaseDriver("propel")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
