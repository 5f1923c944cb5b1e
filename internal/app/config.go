package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/resource"
)

// DumpFormats lists the accepted values of Config.DumpFormat.
var DumpFormats = []string{container.FormatYAML, "yml", container.FormatJSON}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // hcl files or directories

	// AppName is published as kernel.app_name and prefixes bundle parameters.
	AppName    string
	DumpFormat string

	// Resolve, when set, is "<resource>:<operation>"; Run then prints the
	// resolved provider and factory calls instead of the container dump.
	Resolve string

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.AppName == "" {
		return nil, errors.New("AppName is a required configuration field and cannot be empty")
	}
	if cfg.DumpFormat == "" {
		cfg.DumpFormat = container.FormatYAML
	}
	if !slices.Contains(DumpFormats, cfg.DumpFormat) {
		return nil, fmt.Errorf("invalid dump format %q: must be one of %s", cfg.DumpFormat, strings.Join(DumpFormats, ", "))
	}
	if cfg.Resolve != "" {
		if _, _, err := ParseResolve(cfg.Resolve); err != nil {
			return nil, err
		}
	}
	cfg.ConfigPaths = slices.Clone(cfg.ConfigPaths)
	return &cfg, nil
}

// ParseResolve splits a "<resource>:<operation>" target.
func ParseResolve(s string) (string, resource.Operation, error) {
	name, op, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid resolve target %q: expected <resource>:<operation>", s)
	}
	operation := resource.Operation(op)
	if !operation.Valid() {
		return "", "", fmt.Errorf("invalid resolve target %q: unknown operation %q", s, op)
	}
	return name, operation, nil
}
