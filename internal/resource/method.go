package resource

import (
	"context"
	"maps"
	"slices"
)

// Method is one named strategy a provider or factory offers.
type Method func(ctx context.Context, args ...any) (any, error)

// Provider looks resources up, e.g. a repository.
type Provider interface {
	Method(name string) (Method, bool)
}

// Factory creates new resources.
type Factory interface {
	Method(name string) (Method, bool)
}

// MethodSet is a static method table implementing Provider and Factory.
type MethodSet map[string]Method

// Method implements Provider and Factory.
func (s MethodSet) Method(name string) (Method, bool) {
	m, ok := s[name]
	return m, ok
}

// Names returns the registered method names, sorted.
func (s MethodSet) Names() []string {
	return slices.Sorted(maps.Keys(s))
}
