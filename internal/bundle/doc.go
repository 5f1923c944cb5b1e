// Package bundle describes a resource bundle: where its configuration lives,
// which persistence drivers it supports and how its model metadata is mapped.
// Build adds the bundle's compiler passes to a container build.
package bundle
