// Package container implements the build context of a single container
// build: a parameter store, service definitions, aliases and the compiler
// passes contributed by bundles.
//
// A build starts with NewBuilder and finishes with Compile. Compile runs the
// registered passes in insertion order, resolves "%parameter%" placeholders
// and freezes the builder; the returned Container is read-only. The builder
// is used by a single goroutine during kernel boot and is not safe for
// concurrent use.
package container
