package container

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Parameters(t *testing.T) {
	b := NewBuilder()

	assert.False(t, b.HasParameter("app.driver"))
	require.NoError(t, b.SetParameter("app.driver", "doctrine/orm"))
	require.NoError(t, b.SetParameter("app.driver.doctrine/orm", true))

	v, ok := b.Parameter("app.driver")
	require.True(t, ok)
	assert.Equal(t, "doctrine/orm", v)
	assert.Equal(t, []string{"app.driver", "app.driver.doctrine/orm"}, b.ParameterKeys())
}

func TestCompile_ResolvesPlaceholders(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetParameter("app.model.product.class", "App\\Product"))
	require.NoError(t, b.SetParameter("app.repository.product.class", "%app.base%\\ProductRepository"))
	require.NoError(t, b.SetParameter("app.base", "App\\Repository"))
	require.NoError(t, b.SetParameter("app.validation_group.product", []string{"app"}))
	require.NoError(t, b.SetDefinition(&Definition{ID: "doctrine.orm.entity_manager", Class: "EntityManager"}))
	require.NoError(t, b.SetDefinition(&Definition{
		ID:        "app.repository.product",
		Class:     "%app.repository.product.class%",
		Arguments: []any{"@doctrine.orm.entity_manager", "%app.model.product.class%", "%app.validation_group.product%", "100%% literal"},
	}))

	c, err := b.Compile(context.Background())
	require.NoError(t, err)

	def, ok := c.Definition("app.repository.product")
	require.True(t, ok)
	assert.Equal(t, "App\\Repository\\ProductRepository", def.Class)

	want := []any{"@doctrine.orm.entity_manager", "App\\Product", []string{"app"}, "100% literal"}
	if diff := cmp.Diff(want, def.Arguments); diff != "" {
		t.Errorf("resolved arguments mismatch (-want +got):\n%s", diff)
	}

	v, _ := c.Parameter("app.repository.product.class")
	assert.Equal(t, "App\\Repository\\ProductRepository", v)
}

func TestCompile_MissingParameterSuggestsClosestKey(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetParameter("app.model.product.class", "App\\Product"))
	require.NoError(t, b.SetDefinition(&Definition{ID: "svc", Class: "%app.model.prodcut.class%"}))

	_, err := b.Compile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingParameter))

	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "app.model.prodcut.class", missing.Key)
	assert.Equal(t, "app.model.product.class", missing.Suggestion)
}

func TestCompile_CircularParameter(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetParameter("a", "%b%"))
	require.NoError(t, b.SetParameter("b", "%a%"))

	_, err := b.Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular reference")
}

func TestCompile_AliasToUnknownService(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetAlias("app.manager.product", "doctrine.orm.entity_manager"))

	_, err := b.Compile(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDefinition))
}

func TestCompile_DanglingServiceReference(t *testing.T) {
	tests := []struct {
		name string
		args []any
	}{
		{"direct", []any{"@does.not.exist"}},
		{"nested list", []any{[]any{"literal", "@does.not.exist"}}},
		{"nested map", []any{map[string]any{"repository": "@does.not.exist"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, b.SetDefinition(&Definition{ID: "app.paginator", Class: "Paginator", Arguments: tc.args}))

			_, err := b.Compile(context.Background())
			require.ErrorIs(t, err, ErrMissingDefinition)

			var missing *MissingDefinitionError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, "does.not.exist", missing.ID)
			assert.Equal(t, "app.paginator", missing.Referrer)
			assert.Contains(t, err.Error(), `service "app.paginator" references unknown service "does.not.exist"`)
		})
	}
}

func TestCompile_ReferencesFollowAliases(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDefinition(&Definition{ID: "doctrine.orm.entity_manager", Class: "EntityManager"}))
	require.NoError(t, b.SetAlias("app.manager.post", "doctrine.orm.entity_manager"))
	require.NoError(t, b.SetDefinition(&Definition{
		ID:        "app.repository.post",
		Class:     "Repo",
		Arguments: []any{"@app.manager.post", "@@literal", "@", map[string]string{"@Bundle/config": "App\\Model"}},
	}))

	_, err := b.Compile(context.Background())
	require.NoError(t, err)
}

func TestSetAlias_DropsDefinitionOfSameName(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetDefinition(&Definition{ID: "doctrine.orm.entity_manager", Class: "EntityManager"}))
	require.NoError(t, b.SetDefinition(&Definition{ID: "app.manager.post", Class: "Stale"}))
	require.NoError(t, b.SetAlias("app.manager.post", "doctrine.orm.entity_manager"))

	assert.Equal(t, []string{"doctrine.orm.entity_manager"}, b.DefinitionIDs())

	c, err := b.Compile(context.Background())
	require.NoError(t, err)
	got, ok := c.Definition("app.manager.post")
	require.True(t, ok)
	assert.Equal(t, "EntityManager", got.Class)
	assert.Equal(t, []string{"doctrine.orm.entity_manager"}, c.DefinitionIDs())
}

func TestCompile_RunsPassesInOrderAndFreezes(t *testing.T) {
	b := NewBuilder()
	var order []string
	require.NoError(t, b.AddCompilerPass(PassFunc(func(_ context.Context, b *Builder) error {
		order = append(order, "first")
		return b.SetParameter("seen", true)
	})))
	require.NoError(t, b.AddCompilerPass(PassFunc(func(_ context.Context, b *Builder) error {
		order = append(order, "second")
		_, ok := b.Parameter("seen")
		require.True(t, ok, "second pass must observe the first pass")
		return nil
	})))

	c, err := b.Compile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.True(t, c.HasParameter("seen"))

	assert.ErrorIs(t, b.SetParameter("late", 1), ErrFrozen)
	assert.ErrorIs(t, b.SetDefinition(&Definition{ID: "late"}), ErrFrozen)
	assert.ErrorIs(t, b.AddCompilerPass(PassFunc(nil)), ErrFrozen)
	_, err = b.Compile(context.Background())
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestCompile_PassErrorAbortsBuild(t *testing.T) {
	b := NewBuilder()
	boom := errors.New("boom")
	require.NoError(t, b.AddCompilerPass(PassFunc(func(context.Context, *Builder) error { return boom })))

	_, err := b.Compile(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestContainer_AliasesAndTags(t *testing.T) {
	b := NewBuilder()
	def := &Definition{ID: "doctrine.orm.entity_manager", Class: "EntityManager"}
	def.AddTag("manager", map[string]string{"driver": "orm"})
	require.NoError(t, b.SetDefinition(def))
	require.NoError(t, b.SetAlias("app.manager.product", "doctrine.orm.entity_manager"))

	c, err := b.Compile(context.Background())
	require.NoError(t, err)

	got, ok := c.Definition("app.manager.product")
	require.True(t, ok)
	assert.Equal(t, "EntityManager", got.Class)
	assert.Equal(t, []string{"doctrine.orm.entity_manager"}, c.FindTagged("manager"))
}

func TestDump_YAMLIsStable(t *testing.T) {
	build := func() *Container {
		b := NewBuilder()
		require.NoError(t, b.SetParameter("z.last", "z"))
		require.NoError(t, b.SetParameter("a.first", []string{"x", "y"}))
		require.NoError(t, b.SetDefinition((&Definition{ID: "svc", Class: "Svc"}).AddTag("form.type", map[string]string{"alias": "svc"})))
		c, err := b.Compile(context.Background())
		require.NoError(t, err)
		return c
	}

	var first, second bytes.Buffer
	require.NoError(t, build().Dump(&first, FormatYAML))
	require.NoError(t, build().Dump(&second, FormatYAML))

	assert.Equal(t, first.String(), second.String())
	assert.Contains(t, first.String(), "a.first:")
	assert.Contains(t, first.String(), "alias: svc")
	assert.Less(t, bytes.Index(first.Bytes(), []byte("a.first")), bytes.Index(first.Bytes(), []byte("z.last")))
}

func TestDump_JSONAndUnknownFormat(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetParameter("k", "v"))
	c, err := b.Compile(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, c.Dump(&out, FormatJSON))
	assert.Contains(t, out.String(), `"k": "v"`)

	assert.Error(t, c.Dump(&out, "toml"))
}
