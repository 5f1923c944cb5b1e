package mapping

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
)

// ObjectToIdentifierClass is the form type turning a resource into its identifier.
const ObjectToIdentifierClass = "Sylius\\Bundle\\ResourceBundle\\Form\\Type\\ObjectToIdentifierType"

// ObjectToIdentifierPass defines one "<app>.form.type.<model>_to_identifier"
// form type per model of the class registry. Models without a model class
// or without a repository service are skipped, as are ids already defined.
type ObjectToIdentifierPass struct {
	AppNames []string

	// ClassesParameter returns the parameter holding the class registry of
	// an application.
	ClassesParameter func(appName string) string
}

// Process implements container.CompilerPass.
func (p *ObjectToIdentifierPass) Process(ctx context.Context, b *container.Builder) error {
	for _, app := range p.AppNames {
		if err := p.process(ctx, b, app); err != nil {
			return err
		}
	}
	return nil
}

func (p *ObjectToIdentifierPass) process(ctx context.Context, b *container.Builder, app string) error {
	logger := ctxlog.FromContext(ctx).With("app", app)

	key := p.ClassesParameter(app)
	v, ok := b.Parameter(key)
	if !ok {
		return nil
	}
	classes, err := config.StringTable(v)
	if err != nil {
		return fmt.Errorf("mapping: parameter %q: %w", key, err)
	}

	for _, model := range slices.Sorted(maps.Keys(classes)) {
		if classes[model][config.KindModel] == "" {
			continue
		}
		repository := fmt.Sprintf("%s.repository.%s", app, model)
		if _, ok := b.Definition(repository); !ok {
			logger.Debug("No repository for model, skipping identifier form type.", "model", model)
			continue
		}
		id := fmt.Sprintf("%s.form.type.%s_to_identifier", app, model)
		if _, ok := b.Definition(id); ok {
			continue
		}

		alias := fmt.Sprintf("%s_%s_to_identifier", app, model)
		def := &container.Definition{
			ID:        id,
			Class:     ObjectToIdentifierClass,
			Arguments: []any{"@" + repository, alias},
		}
		def.AddTag("form.type", map[string]string{"alias": alias})
		if err := b.SetDefinition(def); err != nil {
			return err
		}
		logger.Debug("Registered identifier form type.", "id", id)
	}
	return nil
}
