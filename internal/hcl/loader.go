package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/fsutil"
	"github.com/specialistvlad/resourcekit/internal/resource"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every .hcl file found in paths, in order. Bundle blocks are
// collected per alias in the order they appear; a later resource block for
// the same resource and operation replaces an earlier one.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, b := range root.Bundles {
			raw, diags := bodyToValue(b.Body)
			if diags.HasErrors() {
				return nil, fmt.Errorf("in bundle %q of %s: %w", b.Alias, file, diags)
			}
			model.Bundles[b.Alias] = append(model.Bundles[b.Alias], raw)
		}
		for _, r := range root.Resources {
			op, cfg, err := translateResource(ctx, r)
			if err != nil {
				return nil, fmt.Errorf("in resource %q of %s: %w", r.Name, file, err)
			}
			model.Overrides.Set(r.Name, op, cfg)
		}
		logger.Debug("Successfully loaded HCL file.", "file", file, "bundles", len(root.Bundles), "resources", len(root.Resources))
	}

	logger.Debug("HCL loading complete.", "bundles", len(model.Bundles), "resources", len(model.Overrides))
	return model, nil
}

// translateResource converts a resource block into an operation override.
func translateResource(ctx context.Context, r *Resource) (resource.Operation, *resource.Configuration, error) {
	op := resource.Operation(r.Operation)
	if !op.Valid() {
		return "", nil, fmt.Errorf("unknown operation %q; expected one of %v", r.Operation, resource.Operations)
	}

	provider, err := translateCall(ctx, r.Repository, "repository")
	if err != nil {
		return "", nil, err
	}
	factory, err := translateCall(ctx, r.Factory, "factory")
	if err != nil {
		return "", nil, err
	}
	return op, &resource.Configuration{Provider: provider, Factory: factory}, nil
}

// translateCall keeps the difference between omitted arguments (use the
// defaults) and "arguments = []" (call without arguments).
func translateCall(ctx context.Context, c *Call, blockName string) (*resource.Override, error) {
	if c == nil {
		return nil, nil
	}
	o := &resource.Override{Method: c.Method}
	if !isExprDefined(ctx, c.Arguments, blockName+".arguments") {
		return o, nil
	}

	v, diags := c.Arguments.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s arguments: %w", blockName, diags)
	}
	native, err := config.Native(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s arguments: %w", blockName, err)
	}
	args, ok := native.([]any)
	if !ok {
		return nil, fmt.Errorf("%s arguments must be a list, got %s", blockName, v.Type().FriendlyName())
	}
	o.Arguments = args
	return o, nil
}
