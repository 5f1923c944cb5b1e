package resource

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownMethod is returned when the resolved method is not offered by
// the provider or factory.
var ErrUnknownMethod = errors.New("resource: unknown method")

// ErrNoTarget is returned when GetResource or CreateResource is given a nil
// provider or factory.
var ErrNoTarget = errors.New("resource: no provider or factory to call")

// Callable is a resolved method name with its arguments.
type Callable struct {
	Method    string
	Arguments []any
}

func (c Callable) String() string {
	return fmt.Sprintf("%s(%v)", c.Method, c.Arguments)
}

// Resolver picks the method and arguments for a resource operation.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	config *Configuration
}

// NewResolver returns a resolver for cfg. A nil cfg means no overrides.
func NewResolver(cfg *Configuration) *Resolver {
	return &Resolver{config: cfg}
}

// ResolveProvider returns the callable GetResource would invoke.
func (r *Resolver) ResolveProvider(defaultMethod string, defaultArgs ...any) Callable {
	return Callable{
		Method:    r.config.ProviderMethod(defaultMethod),
		Arguments: slices.Clone(r.config.ProviderArguments(defaultArgs)),
	}
}

// ResolveFactory returns the callable CreateResource would invoke.
func (r *Resolver) ResolveFactory(defaultMethod string, defaultArgs ...any) Callable {
	return Callable{
		Method:    r.config.FactoryMethod(defaultMethod),
		Arguments: slices.Clone(r.config.FactoryArguments(defaultArgs)),
	}
}

// GetResource invokes the resolved provider method. Errors returned by the
// method are passed through untouched.
func (r *Resolver) GetResource(ctx context.Context, provider Provider, defaultMethod string, defaultArgs ...any) (any, error) {
	return invoke(ctx, provider, r.ResolveProvider(defaultMethod, defaultArgs...))
}

// CreateResource invokes the resolved factory method. Errors returned by the
// method are passed through untouched.
func (r *Resolver) CreateResource(ctx context.Context, factory Factory, defaultMethod string, defaultArgs ...any) (any, error) {
	return invoke(ctx, factory, r.ResolveFactory(defaultMethod, defaultArgs...))
}

type methodTable interface {
	Method(name string) (Method, bool)
}

func invoke(ctx context.Context, target methodTable, call Callable) (any, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: method %q", ErrNoTarget, call.Method)
	}
	m, ok := target.Method(call.Method)
	if !ok || m == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownMethod, call.Method)
	}
	return m(ctx, call.Arguments...)
}
