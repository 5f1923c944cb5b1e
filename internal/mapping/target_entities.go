package mapping

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/driver"
)

// ResolveTargetEntitiesParameter accumulates interface to class mappings
// of every bundle.
const ResolveTargetEntitiesParameter = "doctrine.orm.resolve_target_entities"

// ResolveTargetEntitiesPass maps model interfaces to their configured classes.
type ResolveTargetEntitiesPass struct {
	Bundle string

	// Interfaces maps an interface to either a parameter key holding the
	// class or the class itself.
	Interfaces map[string]string

	// DriverParameter names the parameter holding the bundle's driver. The
	// pass only applies to the relational driver.
	DriverParameter string
}

// Process implements container.CompilerPass.
func (p *ResolveTargetEntitiesPass) Process(ctx context.Context, b *container.Builder) error {
	logger := ctxlog.FromContext(ctx).With("bundle", p.Bundle)

	if p.DriverParameter != "" {
		if v, ok := b.Parameter(p.DriverParameter); ok && v != driver.DoctrineORM {
			logger.Debug("Target entity resolution only applies to the relational driver, skipping.", "driver", v)
			return nil
		}
	}

	resolved := map[string]string{}
	if v, ok := b.Parameter(ResolveTargetEntitiesParameter); ok {
		existing, ok := v.(map[string]string)
		if !ok {
			return fmt.Errorf("mapping: parameter %q holds %T, want map[string]string", ResolveTargetEntitiesParameter, v)
		}
		resolved = maps.Clone(existing)
	}

	for _, iface := range slices.Sorted(maps.Keys(p.Interfaces)) {
		class := p.Interfaces[iface]
		if v, ok := b.Parameter(class); ok {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("mapping: %s: parameter %q holds %T, want string", p.Bundle, class, v)
			}
			class = s
		}
		resolved[iface] = class
	}

	logger.Debug("Resolved target entities.", "count", len(p.Interfaces))
	return b.SetParameter(ResolveTargetEntitiesParameter, resolved)
}
