package loader

import (
	"fmt"
	"maps"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/container"
)

// hclFile is the root of an HCL service definition file:
//
//	parameters = { "app.model.taxon.class" = "App\\Taxon" }
//	aliases    = { "app.manager" = "doctrine.orm.entity_manager" }
//
//	service "app.repository.taxon" {
//	  class     = "%app.repository.taxon.class%"
//	  arguments = ["@app.manager", "%app.model.taxon.class%"]
//	  tag "form.type" {
//	    attributes = { alias = "app_taxon" }
//	  }
//	}
type hclFile struct {
	Parameters hcl.Expression    `hcl:"parameters,optional"`
	Aliases    map[string]string `hcl:"aliases,optional"`
	Services   []hclService      `hcl:"service,block"`
}

type hclService struct {
	ID        string         `hcl:"id,label"`
	Class     string         `hcl:"class,optional"`
	Alias     string         `hcl:"alias,optional"`
	Abstract  bool           `hcl:"abstract,optional"`
	Arguments hcl.Expression `hcl:"arguments,optional"`
	Tags      []hclTag       `hcl:"tag,block"`
}

type hclTag struct {
	Name       string            `hcl:"name,label"`
	Attributes map[string]string `hcl:"attributes,optional"`
}

func decodeHCL(filename string, src []byte) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("loader: failed to parse HCL file %s: %s", filename, diags.Error())
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("loader: failed to decode HCL file %s: %s", filename, diags.Error())
	}

	out := &File{
		Parameters: make(map[string]any),
		Aliases:    maps.Clone(root.Aliases),
	}
	if out.Aliases == nil {
		out.Aliases = make(map[string]string)
	}

	params, err := evalNative(root.Parameters)
	if err != nil {
		return nil, fmt.Errorf("loader: %s: parameters: %w", filename, err)
	}
	switch p := params.(type) {
	case nil:
	case map[string]any:
		out.Parameters = p
	default:
		return nil, fmt.Errorf("loader: %s: parameters must be an object, got %T", filename, params)
	}

	for _, svc := range root.Services {
		if svc.Alias != "" {
			out.Aliases[svc.ID] = svc.Alias
			continue
		}

		def := &container.Definition{ID: svc.ID, Class: svc.Class, Abstract: svc.Abstract}
		args, err := evalNative(svc.Arguments)
		if err != nil {
			return nil, fmt.Errorf("loader: %s: service %q: arguments: %w", filename, svc.ID, err)
		}
		switch a := args.(type) {
		case nil:
		case []any:
			def.Arguments = a
		default:
			return nil, fmt.Errorf("loader: %s: service %q: arguments must be a list, got %T", filename, svc.ID, args)
		}
		for _, tag := range svc.Tags {
			def.AddTag(tag.Name, maps.Clone(tag.Attributes))
		}
		out.Services = append(out.Services, def)
	}
	return out, nil
}

// evalNative evaluates a literal expression; an omitted attribute yields nil.
func evalNative(expr hcl.Expression) (any, error) {
	if expr == nil {
		return nil, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if v.IsNull() {
		return nil, nil
	}
	if v.Type() == cty.DynamicPseudoType {
		return nil, fmt.Errorf("value must be known at load time")
	}
	return config.Native(v)
}
