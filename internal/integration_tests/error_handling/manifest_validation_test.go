package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/extension"
	"github.com/specialistvlad/resourcekit/internal/loader"
	"github.com/specialistvlad/resourcekit/internal/testutil"
)

// TestErrorHandling_RegistryValidation verifies that inconsistent bundle
// declarations are reported together at startup.
func TestErrorHandling_RegistryValidation(t *testing.T) {
	t.Parallel()

	broken := testutil.BlogModule()
	broken.Descriptor.Alias = "Blog"
	broken.Descriptor.SupportedDrivers = []string{"propel"}

	result := testutil.RunIntegrationTest(t, nil, broken)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "registry validation failed")
	require.Contains(t, result.Err.Error(), `alias "Blog"`)
	require.Contains(t, result.Err.Error(), "propel")
}

// TestErrorHandling_DuplicateAlias verifies that two bundles cannot share
// a configuration key.
func TestErrorHandling_DuplicateAlias(t *testing.T) {
	t.Parallel()

	other := testutil.BlogModule()
	other.Descriptor.Name = "OtherBlogBundle"

	result := testutil.RunIntegrationTest(t, nil, testutil.BlogModule(), other)

	require.Error(t, result.Err)
	require.Contains(t, result.Err.Error(), "bundle with alias 'app_blog' already registered")
}

// TestErrorHandling_UnsupportedDriver verifies that selecting a driver
// outside the bundle's supported set fails the build.
func TestErrorHandling_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"main.hcl": `bundle "app_blog" { driver = "doctrine/phpcr-odm" }`,
	}

	result := testutil.RunIntegrationTest(t, files, testutil.BlogModule())

	require.ErrorIs(t, result.Err, extension.ErrInvalidDriver)
	require.Nil(t, result.Container)
}

// TestErrorHandling_MissingServiceFile verifies that a declared service
// file that exists in neither lookup path fails the build.
func TestErrorHandling_MissingServiceFile(t *testing.T) {
	t.Parallel()

	mod := testutil.BlogModule()
	mod.Descriptor.ConfigFiles = []string{"services", "admin"}

	result := testutil.RunIntegrationTest(t, nil, mod)

	require.ErrorIs(t, result.Err, loader.ErrMissingServiceDefinition)
	require.Contains(t, result.Err.Error(), "config/services/admin.yml")
}

// TestErrorHandling_MissingDriverFile verifies that a supported driver
// without a definition file fails when it is selected.
func TestErrorHandling_MissingDriverFile(t *testing.T) {
	t.Parallel()

	mod := testutil.BlogModule()
	delete(mod.Files, "config/driver/doctrine/mongodb-odm.yml")
	files := map[string]string{
		"main.hcl": `bundle "app_blog" { driver = "doctrine/mongodb-odm" }`,
	}

	result := testutil.RunIntegrationTest(t, files, mod)

	require.ErrorIs(t, result.Err, loader.ErrMissingServiceDefinition)
	require.Contains(t, result.Err.Error(), "driver/doctrine/mongodb-odm.yml")
}

// TestErrorHandling_DanglingServiceReference verifies that a service file
// referencing a service no bundle defines fails the build.
func TestErrorHandling_DanglingServiceReference(t *testing.T) {
	t.Parallel()

	mod := testutil.BlogModule()
	mod.Files["config/services.yml"] = `
services:
  app.blog.paginator:
    class: App\Blog\Paginator
    arguments: ["@app.repository.comment"]
`

	result := testutil.RunIntegrationTest(t, nil, mod)

	require.ErrorIs(t, result.Err, container.ErrMissingDefinition)
	require.Contains(t, result.Err.Error(), `"app.repository.comment"`)
	require.Nil(t, result.Container)
}
