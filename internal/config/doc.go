// Package config defines the format-agnostic configuration model of the
// kernel and the processor that validates raw per-bundle configuration trees
// against a declared schema.
//
// Raw trees are cty values produced by a format-specific Loader (see the hcl
// package). Process merges them, applies defaults, coerces scalars and
// reports every schema violation with its path. Decode turns the normalized
// tree into a ResourceConfig.
package config
