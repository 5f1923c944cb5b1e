package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Bundles   []*Bundle   `hcl:"bundle,block"`
	Resources []*Resource `hcl:"resource,block"`
}

// Bundle is the raw configuration block of one bundle.
type Bundle struct {
	Alias string   `hcl:"alias,label"`
	Body  hcl.Body `hcl:",remain"`
}

// Resource overrides the calls made for one operation of a resource.
type Resource struct {
	Name       string `hcl:"name,label"`
	Operation  string `hcl:"operation,label"`
	Repository *Call  `hcl:"repository,block"`
	Factory    *Call  `hcl:"factory,block"`
}

// Call names a method and, optionally, its arguments.
type Call struct {
	Method    string         `hcl:"method,optional"`
	Arguments hcl.Expression `hcl:"arguments,optional"`
}
