package resource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	method string
	args   []any
}

// recordingSet returns a MethodSet whose methods record how they were called.
func recordingSet(calls *[]call, names ...string) MethodSet {
	set := make(MethodSet, len(names))
	for _, name := range names {
		set[name] = func(_ context.Context, args ...any) (any, error) {
			*calls = append(*calls, call{method: name, args: args})
			return name + "-result", nil
		}
	}
	return set
}

func TestGetResource_DefaultMethodWithoutOverride(t *testing.T) {
	var calls []call
	provider := recordingSet(&calls, "findAll", "findBy")

	got, err := NewResolver(nil).GetResource(context.Background(), provider, "findAll")
	require.NoError(t, err)
	assert.Equal(t, "findAll-result", got)

	require.Len(t, calls, 1)
	assert.Equal(t, "findAll", calls[0].method)
	assert.Empty(t, calls[0].args)
}

func TestGetResource_OverrideSelectsMethodAndArguments(t *testing.T) {
	var calls []call
	provider := recordingSet(&calls, "findAll", "findBy")
	cfg := &Configuration{Provider: &Override{Method: "findBy", Arguments: []any{"status"}}}

	got, err := NewResolver(cfg).GetResource(context.Background(), provider, "findAll")
	require.NoError(t, err)
	assert.Equal(t, "findBy-result", got)

	require.Len(t, calls, 1)
	assert.Equal(t, call{method: "findBy", args: []any{"status"}}, calls[0])
}

func TestResolveProvider_PartialOverrides(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      *Configuration
		expected Callable
	}{
		{
			name:     "no configuration",
			cfg:      nil,
			expected: Callable{Method: "find", Arguments: []any{42}},
		},
		{
			name:     "method only keeps default arguments",
			cfg:      &Configuration{Provider: &Override{Method: "findOneBySlug"}},
			expected: Callable{Method: "findOneBySlug", Arguments: []any{42}},
		},
		{
			name:     "arguments only keep default method",
			cfg:      &Configuration{Provider: &Override{Arguments: []any{"slug"}}},
			expected: Callable{Method: "find", Arguments: []any{"slug"}},
		},
		{
			name:     "explicit empty arguments",
			cfg:      &Configuration{Provider: &Override{Arguments: []any{}}},
			expected: Callable{Method: "find", Arguments: []any{}},
		},
		{
			name:     "factory override does not leak into provider",
			cfg:      &Configuration{Factory: &Override{Method: "createForCart"}},
			expected: Callable{Method: "find", Arguments: []any{42}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewResolver(tc.cfg).ResolveProvider("find", 42)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCreateResource_UsesFactoryOverride(t *testing.T) {
	var calls []call
	factory := recordingSet(&calls, "createNew", "createForCart")
	cfg := &Configuration{Factory: &Override{Method: "createForCart", Arguments: []any{"cart-1"}}}

	got, err := NewResolver(cfg).CreateResource(context.Background(), factory, DefaultFactoryMethod(OpCreate))
	require.NoError(t, err)
	assert.Equal(t, "createForCart-result", got)
	assert.Equal(t, []call{{method: "createForCart", args: []any{"cart-1"}}}, calls)
}

func TestGetResource_PropagatesMethodErrorUnchanged(t *testing.T) {
	notFound := errors.New("not found")
	provider := MethodSet{
		"find": func(context.Context, ...any) (any, error) { return nil, notFound },
	}

	_, err := NewResolver(nil).GetResource(context.Background(), provider, "find", 1)
	assert.Same(t, notFound, err)
}

func TestGetResource_UnknownMethod(t *testing.T) {
	cfg := &Configuration{Provider: &Override{Method: "findByColour"}}

	_, err := NewResolver(cfg).GetResource(context.Background(), MethodSet{}, "findAll")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.Contains(t, err.Error(), `"findByColour"`)
}

func TestOverrides(t *testing.T) {
	o := make(Overrides)
	cfg := &Configuration{Provider: &Override{Method: "findBy"}}
	o.Set("product", OpIndex, cfg)

	assert.Same(t, cfg, o.For("product", OpIndex))
	assert.Nil(t, o.For("product", OpShow))
	assert.Nil(t, o.For("order", OpIndex))
}

func TestOperationDefaults(t *testing.T) {
	assert.Equal(t, "findAll", DefaultProviderMethod(OpIndex))
	assert.Equal(t, "find", DefaultProviderMethod(OpShow))
	assert.Equal(t, "createNew", DefaultFactoryMethod(OpCreate))
	assert.Equal(t, "", DefaultFactoryMethod(OpDelete))
	assert.True(t, OpDelete.Valid())
	assert.False(t, Operation("patch").Valid())
}

func TestResolver_NilTarget(t *testing.T) {
	r := NewResolver(&Configuration{Factory: &Override{Method: "createNew"}})

	_, err := r.GetResource(context.Background(), nil, "findAll")
	require.ErrorIs(t, err, ErrNoTarget)
	assert.Contains(t, err.Error(), `"findAll"`)

	_, err = r.CreateResource(context.Background(), nil, "createNew")
	require.ErrorIs(t, err, ErrNoTarget)

	var set MethodSet
	_, err = r.GetResource(context.Background(), set, "findAll")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
