// Package driver enumerates the persistence drivers a resource bundle can be
// backed by. For each driver it knows the mapping-pass identifier and the
// object manager services, and it provides the loader that registers the
// manager, repository, factory and controller bindings of a model.
//
// The driver set is closed: bundles pick a subset of it, they never add to it.
package driver
