package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/extension"
)

// ValidateRegistry checks every registered descriptor and the pairing of
// each bundle with its extension. All problems are reported at once.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, e := range r.entries {
		desc := e.Bundle.Descriptor()
		if err := desc.Validate(); err != nil {
			errs = append(errs, strings.ReplaceAll(err.Error(), "\n", "; "))
		}
		if e.Extension == nil {
			errs = append(errs, fmt.Sprintf("bundle '%s': no extension registered", desc.Name))
			continue
		}
		if e.Extension.Alias() != desc.Alias {
			errs = append(errs, fmt.Sprintf("bundle '%s': extension alias '%s' does not match bundle alias '%s'", desc.Name, e.Extension.Alias(), desc.Alias))
		}
		if !e.Extension.Enabled(extension.StageDatabase) && desc.ModelNamespace != "" {
			logger.Warn("Bundle declares a model namespace but skips the database stage; its mapping passes will never be enabled.", "bundle", desc.Name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validated.", "bundles", len(r.entries))
	return nil
}
