package container

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Dump formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

type dumpTag struct {
	Name       string            `yaml:"name" json:"name"`
	Attributes map[string]string `yaml:",inline" json:"attributes,omitempty"`
}

type dumpService struct {
	Class     string    `yaml:"class,omitempty" json:"class,omitempty"`
	Abstract  bool      `yaml:"abstract,omitempty" json:"abstract,omitempty"`
	Arguments []any     `yaml:"arguments,omitempty" json:"arguments,omitempty"`
	Tags      []dumpTag `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type dump struct {
	Parameters map[string]any         `yaml:"parameters" json:"parameters"`
	Services   map[string]dumpService `yaml:"services" json:"services"`
	Aliases    map[string]string      `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Dump writes the compiled parameters, services and aliases to w. Both
// encoders sort map keys, so output is stable across runs.
func (c *Container) Dump(w io.Writer, format string) error {
	d := dump{
		Parameters: c.parameters,
		Services:   make(map[string]dumpService, len(c.definitions)),
		Aliases:    c.aliases,
	}
	for id, def := range c.definitions {
		svc := dumpService{Class: def.Class, Abstract: def.Abstract, Arguments: def.Arguments}
		for _, t := range def.Tags {
			svc.Tags = append(svc.Tags, dumpTag{Name: t.Name, Attributes: t.Attributes})
		}
		d.Services[id] = svc
	}

	switch format {
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("container: encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("container: encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("container: unsupported dump format %q", format)
	}
}
