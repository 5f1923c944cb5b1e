package mapping

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/resourcekit/internal/driver"
)

var (
	// ErrDuplicate indicates an attempt to register a key twice.
	ErrDuplicate = errors.New("mapping: duplicate registration")
	// ErrSealed indicates an attempt to register in a sealed factory.
	ErrSealed = errors.New("mapping: sealed factory")
)

// Key identifies a pass builder.
type Key struct {
	Driver string
	Format string
}

func (k Key) String() string { return k.Driver + "/" + k.Format }

// Spec is everything a builder needs to construct one pass.
type Spec struct {
	Driver driver.Descriptor
	Format string

	// Namespaces maps a mapping directory to the model namespace it describes.
	Namespaces map[string]string

	// EnabledParameter names the boolean parameter gating the pass.
	EnabledParameter string
}

// Builder constructs a pass from spec.
type Builder func(ctx context.Context, spec Spec) (*Pass, error)

// Factory is a registry of pass builders. It is safe for concurrent use.
type Factory struct {
	mu       sync.RWMutex
	builders map[Key]Builder
	sealed   atomic.Bool
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{builders: make(map[Key]Builder)}
}

// DefaultFactory returns a sealed factory with XML and YAML builders for
// every known driver.
func DefaultFactory() *Factory {
	f := NewFactory()
	for _, id := range driver.Known() {
		for _, format := range []string{driver.MappingXML, driver.MappingYAML} {
			if err := f.Register(Key{Driver: id, Format: format}, NewPass); err != nil {
				panic(fmt.Sprintf("mapping: default factory: %v", err))
			}
		}
	}
	f.Seal()
	return f
}

// Register adds b under k.
func (f *Factory) Register(k Key, b Builder) error {
	if f.sealed.Load() {
		return ErrSealed
	}
	if k.Driver == "" || k.Format == "" || b == nil {
		return errors.New("mapping: invalid key or builder")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.builders[k]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, k)
	}
	f.builders[k] = b
	return nil
}

// Seal prevents further registrations.
func (f *Factory) Seal() { f.sealed.Store(true) }

// Lookup returns the builder registered under k.
func (f *Factory) Lookup(k Key) (Builder, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	b, ok := f.builders[k]
	return b, ok
}

// Keys returns all registered keys, sorted.
func (f *Factory) Keys() []Key {
	f.mu.RLock()
	keys := make([]Key, 0, len(f.builders))
	for k := range f.builders {
		keys = append(keys, k)
	}
	f.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Driver == keys[j].Driver {
			return keys[i].Format < keys[j].Format
		}
		return keys[i].Driver < keys[j].Driver
	})
	return keys
}

// Build constructs the pass for spec. ok is false when no builder is
// registered for the spec's driver and format.
func (f *Factory) Build(ctx context.Context, spec Spec) (pass *Pass, ok bool, err error) {
	b, ok := f.Lookup(Key{Driver: spec.Driver.DriverID, Format: spec.Format})
	if !ok {
		return nil, false, nil
	}
	pass, err = b(ctx, spec)
	if err != nil {
		return nil, true, err
	}
	return pass, true, nil
}
