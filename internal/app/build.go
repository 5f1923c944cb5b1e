package app

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/agext/levenshtein"

	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/extension"
	"github.com/specialistvlad/resourcekit/internal/mapping"
)

// Build runs every registered bundle against a fresh container builder and
// compiles it. Bundles build in registration order; each one adds its
// compiler passes and then its extension applies the bundle's configuration.
// The identifier form types of every application's class registry are
// defined last.
func (a *App) Build(ctx context.Context) (*container.Container, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	if err := a.checkAliases(); err != nil {
		return nil, err
	}

	b := container.NewBuilder()
	if err := b.SetParameter(extension.AppNameParameter, a.cfg.AppName); err != nil {
		return nil, err
	}

	var apps []string
	for _, e := range a.registry.Bundles() {
		alias := e.Bundle.Alias()
		if err := e.Bundle.Build(ctx, b, a.factory); err != nil {
			return nil, fmt.Errorf("failed to build bundle %s: %w", e.Bundle.Name(), err)
		}
		if _, err := e.Extension.Configure(ctx, b, a.model.Bundles[alias]...); err != nil {
			return nil, fmt.Errorf("failed to configure bundle %s: %w", e.Bundle.Name(), err)
		}
		if app := e.Extension.AppName(b); !slices.Contains(apps, app) {
			apps = append(apps, app)
		}
	}

	if err := b.AddCompilerPass(&mapping.ObjectToIdentifierPass{
		AppNames:         apps,
		ClassesParameter: extension.ClassesParameter,
	}); err != nil {
		return nil, err
	}

	c, err := b.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile container: %w", err)
	}
	a.logger.Debug("Container compiled.", "parameters", len(c.ParameterKeys()), "services", len(c.DefinitionIDs()))
	return c, nil
}

// checkAliases rejects configuration addressed to bundles that are not registered.
func (a *App) checkAliases() error {
	for _, alias := range a.model.Aliases() {
		if _, ok := a.registry.ByAlias(alias); ok {
			continue
		}
		msg := fmt.Sprintf("no bundle is registered under alias %q", alias)
		if s := a.suggestAlias(alias); s != "" {
			msg += fmt.Sprintf("; did you mean %q?", s)
		}
		return errors.New(msg)
	}
	return nil
}

func (a *App) suggestAlias(alias string) string {
	best, bestDist := "", 4
	for _, candidate := range a.registry.Aliases() {
		if d := levenshtein.Distance(alias, candidate, nil); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
