package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/resourcekit/internal/app"
)

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, &app.Config{
		AppName:    "sylius",
		DumpFormat: "yaml",
		LogFormat:  "text",
		LogLevel:   "warn",
	}, cfg)
	assert.Empty(t, out.String())
}

func TestParse_CollectsConfigPathsInOrder(t *testing.T) {
	cfg, _, err := Parse([]string{
		"-config", "base.hcl",
		"-c", "shop,admin/",
		"-config=local.hcl",
		"extra.hcl",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"base.hcl", "shop", "admin/", "local.hcl", "extra.hcl"}, cfg.ConfigPaths)
}

func TestParse_Options(t *testing.T) {
	cfg, _, err := Parse([]string{
		"-app-name", "shop",
		"-dump-format", "JSON",
		"-resolve", "product:show",
		"-log-format", "json",
		"-log-level", "DEBUG",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "shop", cfg.AppName)
	assert.Equal(t, "json", cfg.DumpFormat)
	assert.Equal(t, "product:show", cfg.Resolve)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_Help(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"-help"}} {
		var out bytes.Buffer
		cfg, exit, err := Parse(args, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParse_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"-workers", "3"}, "flag provided but not defined: -workers"},
		{"log format", []string{"-log-format", "xml"}, "invalid log-format"},
		{"log level", []string{"-log-level", "trace"}, "invalid log-level"},
		{"dump format", []string{"-dump-format", "php"}, "invalid dump format"},
		{"resolve target", []string{"-resolve", "product"}, "invalid resolve target"},
		{"empty app name", []string{"-app-name", ""}, "AppName"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			assert.False(t, exit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
