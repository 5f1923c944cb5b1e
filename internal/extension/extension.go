package extension

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/resourcekit/internal/bundle"
	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/loader"
)

// Stage names an optional step of Configure.
type Stage string

const (
	// StageDatabase validates the driver and registers its bindings.
	StageDatabase Stage = "database"
	// StageParameters publishes one "<app>.<kind>.<model>.class" parameter per class.
	StageParameters Stage = "parameters"
	// StageValidators publishes "<app>.validation_group.<model>" parameters.
	StageValidators Stage = "validators"
)

// AllStages lists the optional stages in pipeline order.
var AllStages = []Stage{StageDatabase, StageParameters, StageValidators}

// AppNameParameter holds the kernel's application name.
const AppNameParameter = "kernel.app_name"

// DefaultAppName is used when neither the bundle nor the kernel name the application.
const DefaultAppName = "app"

// Container is the part of the container builder an extension uses.
type Container interface {
	loader.Container
	Definition(id string) (*container.Definition, bool)
	Parameter(key string) (any, bool)
	HasParameter(key string) bool
}

var _ Container = (*container.Builder)(nil)

// PostProcessFunc may rewrite the normalized configuration before anything
// is loaded.
type PostProcessFunc func(ctx context.Context, cfg *config.ResourceConfig, c Container) (*config.ResourceConfig, error)

// Option configures an Extension.
type Option func(*Extension)

// WithStages selects the optional stages. They always run in the order of
// AllStages, whatever order they are given in. The default is AllStages.
func WithStages(stages ...Stage) Option {
	return func(e *Extension) { e.stages = slices.Clone(stages) }
}

// WithModels declares the bundle's models and their default classes.
func WithModels(models map[string]config.ModelDefaults) Option {
	return func(e *Extension) { e.models = maps.Clone(models) }
}

// WithSchema replaces the standard resource schema.
func WithSchema(schema *config.Node) Option { return func(e *Extension) { e.schema = schema } }

// WithPostProcess installs a post-process hook.
func WithPostProcess(fn PostProcessFunc) Option { return func(e *Extension) { e.postProcess = fn } }

// Extension configures one bundle.
type Extension struct {
	desc        bundle.Descriptor
	stages      []Stage
	models      map[string]config.ModelDefaults
	schema      *config.Node
	postProcess PostProcessFunc
}

// New returns the extension of the bundle described by desc.
func New(desc bundle.Descriptor, opts ...Option) *Extension {
	e := &Extension{desc: desc.WithDefaults(), stages: slices.Clone(AllStages)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Alias returns the configuration key of the bundle.
func (e *Extension) Alias() string { return e.desc.Alias }

// Descriptor returns the descriptor of the configured bundle.
func (e *Extension) Descriptor() bundle.Descriptor { return e.desc }

// Models returns the declared models and their defaults.
func (e *Extension) Models() map[string]config.ModelDefaults { return maps.Clone(e.models) }

// Enabled reports whether stage is selected.
func (e *Extension) Enabled(stage Stage) bool { return slices.Contains(e.stages, stage) }

// AppName returns the parameter prefix used for c.
func (e *Extension) AppName(c Container) string {
	if e.desc.AppName != "" {
		return e.desc.AppName
	}
	if v, ok := c.Parameter(AppNameParameter); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return DefaultAppName
}

// Schema returns the schema raw configuration is normalized against.
func (e *Extension) Schema(appName string) *config.Node {
	if e.schema != nil {
		return e.schema
	}
	return config.ResourceSchema(config.SchemaOptions{
		AppName: appName,
		Drivers: e.desc.SupportedDrivers,
		Models:  e.models,
	})
}

// state is threaded through the pipeline of one Configure call.
type state struct {
	c       Container
	appName string
	raws    []cty.Value
	cfg     *config.ResourceConfig
	loader  loader.Loader
}

type step struct {
	name string
	run  func(ctx context.Context, s *state) error
}

// pipeline returns the steps of Configure in execution order.
func (e *Extension) pipeline() []step {
	steps := []step{
		{"normalize", e.normalize},
		{"post-process", e.runPostProcess},
		{"services", e.loadServices},
	}
	optional := map[Stage]func(context.Context, *state) error{
		StageDatabase:   e.loadDatabaseDriver,
		StageParameters: mapClassParameters,
		StageValidators: mapValidationGroupParameters,
	}
	for _, stage := range AllStages {
		if e.Enabled(stage) {
			steps = append(steps, step{string(stage), optional[stage]})
		}
	}
	return append(steps, step{"classes", mergeClasses})
}

// Configure normalizes raws, merged in order, and applies the result to c.
func (e *Extension) Configure(ctx context.Context, c Container, raws ...cty.Value) (*config.ResourceConfig, error) {
	ctx = ctxlog.With(ctx, "bundle", e.desc.Name, "alias", e.desc.Alias)
	logger := ctxlog.FromContext(ctx)

	s := &state{c: c, appName: e.AppName(c), raws: raws}
	for _, st := range e.pipeline() {
		logger.Debug("Running extension step.", "step", st.name)
		if err := st.run(ctx, s); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", e.desc.Alias, st.name, err)
		}
	}

	logger.Debug("Bundle configured.", "driver", s.cfg.Driver, "models", len(s.cfg.Classes))
	return s.cfg, nil
}

func (e *Extension) normalize(_ context.Context, s *state) error {
	normalized, err := config.Process(e.Schema(s.appName), s.raws...)
	if err != nil {
		return err
	}
	s.cfg, err = config.Decode(normalized)
	return err
}

func (e *Extension) runPostProcess(ctx context.Context, s *state) error {
	if e.postProcess == nil {
		return nil
	}
	cfg, err := e.postProcess(ctx, s.cfg, s.c)
	if err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("post-process hook returned no configuration")
	}
	s.cfg = cfg
	return nil
}

func (e *Extension) loadServices(ctx context.Context, s *state) error {
	locator, err := loader.NewLocator(e.desc.FS, e.desc.ConfigDir)
	if err != nil {
		return err
	}
	l, err := loader.New(locator, e.desc.ServicesFormat)
	if err != nil {
		return err
	}
	s.loader = l

	for _, name := range e.desc.ConfigFiles {
		if err := l.Load(ctx, s.c, name); err != nil {
			return err
		}
	}
	return nil
}

func mergeClasses(_ context.Context, s *state) error {
	registry, err := LoadClassRegistry(s.c, s.appName)
	if err != nil {
		return err
	}
	return registry.Merge(s.cfg.Classes).Store(s.c, s.appName)
}
