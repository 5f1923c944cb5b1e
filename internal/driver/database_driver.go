package driver

import (
	"context"
	"fmt"

	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/container"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
)

// DefaultFactoryClass is used when a model declares no factory class.
const DefaultFactoryClass = "ResourceKit\\Factory\\Factory"

// Container is the part of the container builder a driver loader writes to.
type Container interface {
	SetParameter(key string, value any) error
	SetDefinition(def *container.Definition) error
	SetAlias(alias, id string) error
	Definition(id string) (*container.Definition, bool)
}

// Model is one configured model handed to a driver loader.
type Model struct {
	AppName  string
	Name     string
	Classes  map[string]string
	Template string
}

// DatabaseDriver registers the persistence bindings of models for one driver.
type DatabaseDriver struct {
	desc Descriptor
}

// NewDatabaseDriver returns the loader for driverID.
func NewDatabaseDriver(driverID string) (*DatabaseDriver, error) {
	desc, err := MappingInfo(driverID)
	if err != nil {
		return nil, err
	}
	return &DatabaseDriver{desc: desc}, nil
}

// Descriptor returns the driver's descriptor.
func (d *DatabaseDriver) Descriptor() Descriptor { return d.desc }

// Load registers, for m:
//
//	<app>.manager.<model>     alias of the driver's first manager service,
//	                          which is defined when nothing else defined it
//	<app>.repository.<model>  repository bound to that manager
//	<app>.factory.<model>     factory for the model class
//	<app>.controller.<model>  only when a controller class is configured
//	<app>.template.<model>    parameter, only when a template is configured
func (d *DatabaseDriver) Load(ctx context.Context, c Container, m Model) error {
	logger := ctxlog.FromContext(ctx).With("driver", d.desc.DriverID, "model", m.Name)

	modelClass, ok := m.Classes[config.KindModel]
	if !ok || modelClass == "" {
		return fmt.Errorf("driver %s: model %q declares no %q class", d.desc.DriverID, m.Name, config.KindModel)
	}

	manager := d.desc.ManagerServiceNames[0]
	if _, ok := c.Definition(manager); !ok {
		if err := c.SetDefinition(&container.Definition{ID: manager, Class: d.desc.ManagerClass}); err != nil {
			return err
		}
	}
	managerAlias := serviceID(m.AppName, "manager", m.Name)
	if err := c.SetAlias(managerAlias, manager); err != nil {
		return err
	}

	repository := &container.Definition{
		ID:        serviceID(m.AppName, "repository", m.Name),
		Class:     classOr(m.Classes, config.KindRepository, d.desc.RepositoryClass),
		Arguments: []any{"@" + managerAlias, modelClass},
	}
	factory := &container.Definition{
		ID:        serviceID(m.AppName, "factory", m.Name),
		Class:     classOr(m.Classes, config.KindFactory, DefaultFactoryClass),
		Arguments: []any{modelClass},
	}
	for _, def := range []*container.Definition{repository, factory} {
		if err := c.SetDefinition(def); err != nil {
			return err
		}
	}

	if controller, ok := m.Classes[config.KindController]; ok && controller != "" {
		def := &container.Definition{
			ID:        serviceID(m.AppName, "controller", m.Name),
			Class:     controller,
			Arguments: []any{m.Name, "@" + repository.ID, "@" + factory.ID, m.Template},
		}
		def.AddTag("controller.resource", map[string]string{"resource": m.Name, "driver": d.desc.DriverID})
		if err := c.SetDefinition(def); err != nil {
			return err
		}
	}

	if m.Template != "" {
		if err := c.SetParameter(fmt.Sprintf("%s.template.%s", m.AppName, m.Name), m.Template); err != nil {
			return err
		}
	}

	logger.Debug("Registered model persistence bindings.", "manager", manager, "repository", repository.Class)
	return nil
}

func serviceID(app, kind, model string) string {
	return app + "." + kind + "." + model
}

func classOr(classes map[string]string, kind, fallback string) string {
	if c, ok := classes[kind]; ok && c != "" {
		return c
	}
	return fallback
}
