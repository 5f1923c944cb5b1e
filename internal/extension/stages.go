package extension

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/config"
	"github.com/specialistvlad/resourcekit/internal/ctxlog"
	"github.com/specialistvlad/resourcekit/internal/driver"
)

func (e *Extension) loadDatabaseDriver(ctx context.Context, s *state) error {
	logger := ctxlog.FromContext(ctx)
	driverID := s.cfg.Driver

	if !e.desc.Supports(driverID) {
		return &InvalidDriverError{Driver: driverID, Bundle: e.desc.Name, Supported: slices.Clone(e.desc.SupportedDrivers)}
	}
	dd, err := driver.NewDatabaseDriver(driverID)
	if err != nil {
		return err
	}

	if err := s.loader.Load(ctx, s.c, "driver/"+driverID); err != nil {
		return err
	}
	if err := s.c.SetParameter(e.desc.Alias+".driver", driverID); err != nil {
		return err
	}
	if err := s.c.SetParameter(e.desc.Alias+".driver."+driverID, true); err != nil {
		return err
	}

	for _, model := range slices.Sorted(maps.Keys(s.cfg.Classes)) {
		classes := s.cfg.Classes[model]
		if _, ok := classes[config.KindModel]; !ok {
			continue
		}
		err := dd.Load(ctx, s.c, driver.Model{
			AppName:  s.appName,
			Name:     model,
			Classes:  classes,
			Template: s.cfg.Templates[model],
		})
		if err != nil {
			return err
		}
	}

	logger.Debug("Database driver loaded.", "driver", driverID)
	return nil
}

// ClassParameter returns the parameter holding the class of one service
// kind of a model. The form kind is published as "form.type".
func ClassParameter(appName, kind, model string) string {
	if kind == config.KindForm {
		kind = "form.type"
	}
	return fmt.Sprintf("%s.%s.%s.class", appName, kind, model)
}

// ValidationGroupParameter returns the parameter holding a model's validation groups.
func ValidationGroupParameter(appName, model string) string {
	return fmt.Sprintf("%s.validation_group.%s", appName, model)
}

func mapClassParameters(_ context.Context, s *state) error {
	for _, model := range slices.Sorted(maps.Keys(s.cfg.Classes)) {
		kinds := s.cfg.Classes[model]
		for _, kind := range slices.Sorted(maps.Keys(kinds)) {
			if err := s.c.SetParameter(ClassParameter(s.appName, kind, model), kinds[kind]); err != nil {
				return err
			}
		}
	}
	return nil
}

func mapValidationGroupParameters(_ context.Context, s *state) error {
	for _, model := range slices.Sorted(maps.Keys(s.cfg.ValidationGroups)) {
		groups := slices.Clone(s.cfg.ValidationGroups[model])
		if err := s.c.SetParameter(ValidationGroupParameter(s.appName, model), groups); err != nil {
			return err
		}
	}
	return nil
}
