package app

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/resource"
)

// Run builds the container and writes the result to w: the container dump,
// or the resolved calls when a resolve target is configured.
func (a *App) Run(ctx context.Context, w io.Writer) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	c, err := a.Build(ctx)
	if err != nil {
		return err
	}

	if a.cfg.Resolve != "" {
		name, op, err := ParseResolve(a.cfg.Resolve)
		if err != nil {
			return err
		}
		return a.writeResolution(w, name, op)
	}

	if err := c.Dump(w, a.cfg.DumpFormat); err != nil {
		return fmt.Errorf("failed to dump container: %w", err)
	}
	a.logger.Info("Container dumped.", "format", a.cfg.DumpFormat, "services", len(c.DefinitionIDs()))
	return nil
}

// Resolver returns the resolver of one resource operation, configured with
// the overrides found in the configuration model.
func (a *App) Resolver(name string, op resource.Operation) *resource.Resolver {
	return resource.NewResolver(a.model.Overrides.For(name, op))
}

type resolvedCall struct {
	Method    string `yaml:"method"`
	Arguments []any  `yaml:"arguments"`
}

type resolution struct {
	Resource  string        `yaml:"resource"`
	Operation string        `yaml:"operation"`
	Provider  *resolvedCall `yaml:"provider,omitempty"`
	Factory   *resolvedCall `yaml:"factory,omitempty"`
}

func (a *App) writeResolution(w io.Writer, name string, op resource.Operation) error {
	r := a.Resolver(name, op)
	out := resolution{Resource: name, Operation: string(op)}

	if call := r.ResolveProvider(resource.DefaultProviderMethod(op)); call.Method != "" {
		out.Provider = &resolvedCall{Method: call.Method, Arguments: nonNil(call.Arguments)}
	}
	if call := r.ResolveFactory(resource.DefaultFactoryMethod(op)); call.Method != "" {
		out.Factory = &resolvedCall{Method: call.Method, Arguments: nonNil(call.Arguments)}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to write resolution: %w", err)
	}
	return enc.Close()
}

func nonNil(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}
