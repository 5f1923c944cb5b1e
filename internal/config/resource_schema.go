package config

import (
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
)

// Service kinds a resource model may declare a class for.
const (
	KindModel      = "model"
	KindInterface  = "interface"
	KindController = "controller"
	KindRepository = "repository"
	KindFactory    = "factory"
	KindForm       = "form"
)

// ServiceKinds lists every recognized service kind.
var ServiceKinds = []string{KindController, KindFactory, KindForm, KindInterface, KindModel, KindRepository}

// ModelDefaults declares one model of a resource bundle: the default class
// per service kind and the default validation groups.
type ModelDefaults struct {
	Classes          map[string]string
	ValidationGroups []string
}

// SchemaOptions parameterizes ResourceSchema.
type SchemaOptions struct {
	// AppName is used as the default validation group.
	AppName string

	// Drivers is the bundle's supported driver set; the first entry is the default.
	Drivers []string

	// Models declares the bundle's models.
	Models map[string]ModelDefaults
}

// ResourceSchema builds the standard schema of a resource bundle:
//
//	driver            string, defaults to the first of opts.Drivers; membership
//	                  is checked when the database driver is loaded
//	classes           object of declared models, each with one string per service kind
//	templates         map of string
//	validation_groups object of declared models, each a list of strings
func ResourceSchema(opts SchemaOptions) *Node {
	driver := String()
	if len(opts.Drivers) > 0 {
		driver.Default(cty.StringVal(opts.Drivers[0]))
	}

	classes := make(map[string]*Node, len(opts.Models))
	groups := make(map[string]*Node, len(opts.Models))
	for _, model := range slices.Sorted(maps.Keys(opts.Models)) {
		defaults := opts.Models[model]

		kinds := make(map[string]*Node, len(ServiceKinds))
		for _, kind := range ServiceKinds {
			n := String()
			if class, ok := defaults.Classes[kind]; ok {
				n.Default(cty.StringVal(class))
			}
			kinds[kind] = n
		}
		classes[model] = Object(kinds)

		g := defaults.ValidationGroups
		if g == nil && opts.AppName != "" {
			g = []string{opts.AppName}
		}
		groups[model] = ListOf(String()).Default(stringList(g))
	}

	return Object(map[string]*Node{
		"driver":            driver,
		"classes":           Object(classes),
		"templates":         MapOf(String()),
		"validation_groups": Object(groups),
	})
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	elems := make([]cty.Value, len(values))
	for i, v := range values {
		elems[i] = cty.StringVal(v)
	}
	return cty.ListVal(elems)
}
