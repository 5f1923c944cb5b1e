// Package loader reads service definition files from a bundle's
// configuration directory into a container builder.
//
// A file named "services" in format "yml" is looked up first as
// "<dir>/services.yml" and then as "<dir>/services/services.yml". The
// supported formats are YAML ("yml"), XML ("xml") and HCL ("hcl"); all of
// them describe the same three things: parameters, services and aliases.
package loader
