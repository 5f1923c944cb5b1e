package loader

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
)

// Services formats.
const (
	FormatXML  = "xml"
	FormatYAML = "yml"
	FormatHCL  = "hcl"
)

// Formats returns the supported services formats.
func Formats() []string {
	return []string{FormatXML, FormatYAML, FormatHCL}
}

// Container is the part of the container builder a loader writes to.
type Container interface {
	SetParameter(key string, value any) error
	SetDefinition(def *container.Definition) error
	SetAlias(alias, id string) error
	AddResource(path string)
}

// Loader loads one named definition file, without extension, into c.
type Loader interface {
	Load(ctx context.Context, c Container, name string) error
}

// File is the decoded content of one definition file.
type File struct {
	Parameters map[string]any
	Services   []*container.Definition
	Aliases    map[string]string
}

type decodeFunc func(filename string, src []byte) (*File, error)

var decoders = map[string]decodeFunc{
	FormatXML:  decodeXML,
	FormatYAML: decodeYAML,
	FormatHCL:  decodeHCL,
}

// FileLoader loads definition files of one format.
type FileLoader struct {
	locator *Locator
	format  string
	decode  decodeFunc
}

// New returns a loader reading files of the given format below dir.
func New(locator *Locator, format string) (*FileLoader, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, &UnsupportedServicesFormatError{Format: format}
	}
	return &FileLoader{locator: locator, format: format, decode: decode}, nil
}

// Format returns the loader's file extension.
func (l *FileLoader) Format() string { return l.format }

// Load locates "<name>.<format>", decodes it and writes its parameters,
// services and aliases to c, in that order.
func (l *FileLoader) Load(ctx context.Context, c Container, name string) error {
	logger := ctxlog.FromContext(ctx)

	p, err := l.locator.Locate(name + "." + l.format)
	if err != nil {
		return err
	}
	src, err := l.locator.ReadFile(p)
	if err != nil {
		return fmt.Errorf("loader: read %s: %w", p, err)
	}
	file, err := l.decode(p, src)
	if err != nil {
		return err
	}

	for _, key := range slices.Sorted(maps.Keys(file.Parameters)) {
		if err := c.SetParameter(key, file.Parameters[key]); err != nil {
			return fmt.Errorf("loader: %s: parameter %q: %w", p, key, err)
		}
	}
	for _, def := range file.Services {
		if err := c.SetDefinition(def); err != nil {
			return fmt.Errorf("loader: %s: service %q: %w", p, def.ID, err)
		}
	}
	for _, alias := range slices.Sorted(maps.Keys(file.Aliases)) {
		if err := c.SetAlias(alias, file.Aliases[alias]); err != nil {
			return fmt.Errorf("loader: %s: alias %q: %w", p, alias, err)
		}
	}
	c.AddResource(p)

	logger.Debug("Loaded service definitions.",
		"file", p,
		"parameters", len(file.Parameters),
		"services", len(file.Services),
		"aliases", len(file.Aliases),
	)
	return nil
}
