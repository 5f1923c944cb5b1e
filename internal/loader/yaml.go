package loader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/resourcekit/internal/container"
)

type yamlFile struct {
	Parameters map[string]any         `yaml:"parameters"`
	Services   map[string]yamlService `yaml:"services"`
}

type yamlService struct {
	alias string

	Class     string              `yaml:"class"`
	Alias     string              `yaml:"alias"`
	Arguments []any               `yaml:"arguments"`
	Abstract  bool                `yaml:"abstract"`
	Tags      []map[string]string `yaml:"tags"`
}

// UnmarshalYAML accepts either a service mapping or the "@target" alias
// shorthand.
func (s *yamlService) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var ref string
		if err := node.Decode(&ref); err != nil {
			return err
		}
		if !strings.HasPrefix(ref, "@") || len(ref) == 1 {
			return fmt.Errorf("line %d: expected a service mapping or an \"@id\" alias, got %q", node.Line, ref)
		}
		s.alias = ref[1:]
		return nil

	case yaml.MappingNode:
		type plain yamlService
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*s = yamlService(p)
		s.alias = strings.TrimPrefix(p.Alias, "@")
		return nil

	default:
		return fmt.Errorf("line %d: expected a service mapping or an alias", node.Line)
	}
}

func decodeYAML(filename string, src []byte) (*File, error) {
	var f yamlFile
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("loader: failed to parse %s: %w", filename, err)
	}

	out := &File{
		Parameters: f.Parameters,
		Aliases:    make(map[string]string),
	}
	if out.Parameters == nil {
		out.Parameters = make(map[string]any)
	}

	for _, id := range slices.Sorted(maps.Keys(f.Services)) {
		svc := f.Services[id]
		if svc.alias != "" {
			out.Aliases[id] = svc.alias
			continue
		}

		def := &container.Definition{
			ID:        id,
			Class:     svc.Class,
			Arguments: svc.Arguments,
			Abstract:  svc.Abstract,
		}
		for i, tag := range svc.Tags {
			name, ok := tag["name"]
			if !ok || name == "" {
				return nil, fmt.Errorf("loader: %s: service %q: tag #%d has no name", filename, id, i)
			}
			attrs := maps.Clone(tag)
			delete(attrs, "name")
			def.AddTag(name, attrs)
		}
		out.Services = append(out.Services, def)
	}
	return out, nil
}
