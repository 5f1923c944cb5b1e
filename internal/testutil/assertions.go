package testutil

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// AssertParameter checks that the compiled container holds key with the
// expected value.
func AssertParameter(t *testing.T, result *HarnessResult, key string, expected any) {
	t.Helper()

	require.NotNil(t, result.Container, "no container was compiled: %v", result.Err)
	v, ok := result.Container.Parameter(key)
	require.True(t, ok, "expected parameter '%s' was not found in the container", key)
	require.Equal(t, expected, v, "parameter '%s' has an unexpected value:\n%s", key, spew.Sdump(v))
}

// AssertServiceClass checks that service id is defined with the expected class.
func AssertServiceClass(t *testing.T, result *HarnessResult, id, class string) {
	t.Helper()

	require.NotNil(t, result.Container, "no container was compiled: %v", result.Err)
	def, ok := result.Container.Definition(id)
	require.True(t, ok, "expected service '%s' was not found in the container", id)
	require.Equal(t, class, def.Class, "service '%s' has an unexpected class", id)
}
