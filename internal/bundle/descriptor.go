package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"

	"github.com/specialistvlad/resourcekit/internal/driver"
	"github.com/specialistvlad/resourcekit/internal/loader"
)

// Defaults applied by Descriptor.WithDefaults.
const (
	DefaultConfigDir        = "config"
	DefaultServicesFormat   = loader.FormatXML
	DefaultMappingFormat    = driver.MappingXML
	DefaultMappingDirectory = "model"
)

var aliasPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Descriptor is the static capability declaration of a bundle.
type Descriptor struct {
	// Name identifies the bundle, e.g. "ProductBundle".
	Name string

	// Alias is the bundle's configuration key and parameter prefix,
	// e.g. "sylius_product".
	Alias string

	// AppName prefixes class, template and validation group parameters.
	// Empty means the kernel's application name.
	AppName string

	// FS holds the bundle's files; ConfigDir is relative to it.
	FS        fs.FS
	ConfigDir string

	// ConfigFiles are loaded, without extension, before anything else.
	ConfigFiles    []string
	ServicesFormat string

	SupportedDrivers []string

	// ModelNamespace enables mapping passes for every supported driver.
	ModelNamespace   string
	MappingFormat    string
	MappingDirectory string

	// ModelInterfaces maps a model interface to the parameter holding its
	// class (or the class itself).
	ModelInterfaces map[string]string
}

// WithDefaults returns a copy of d with empty settings filled in.
func (d Descriptor) WithDefaults() Descriptor {
	if d.ConfigDir == "" {
		d.ConfigDir = DefaultConfigDir
	}
	if d.ConfigFiles == nil {
		d.ConfigFiles = []string{"services"}
	}
	if d.ServicesFormat == "" {
		d.ServicesFormat = DefaultServicesFormat
	}
	if d.MappingFormat == "" {
		d.MappingFormat = DefaultMappingFormat
	}
	if d.MappingDirectory == "" {
		d.MappingDirectory = DefaultMappingDirectory
	}
	return d
}

// Supports reports whether driverID is in the bundle's supported set.
func (d Descriptor) Supports(driverID string) bool {
	return slices.Contains(d.SupportedDrivers, driverID)
}

// Validate checks the descriptor without touching its files.
func (d Descriptor) Validate() error {
	var errs []error
	if d.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if !aliasPattern.MatchString(d.Alias) {
		errs = append(errs, fmt.Errorf("alias %q must match %s", d.Alias, aliasPattern))
	}
	if d.FS == nil {
		errs = append(errs, errors.New("no file system"))
	}
	if len(d.SupportedDrivers) == 0 {
		errs = append(errs, errors.New("no supported drivers"))
	}
	for _, id := range d.SupportedDrivers {
		if _, err := driver.MappingInfo(id); err != nil {
			errs = append(errs, err)
		}
	}
	if !slices.Contains(loader.Formats(), d.ServicesFormat) && d.ServicesFormat != "" {
		errs = append(errs, &loader.UnsupportedServicesFormatError{Format: d.ServicesFormat})
	}
	if d.ModelNamespace != "" && d.MappingFormat != "" {
		if _, err := driver.MappingPassMethod(d.MappingFormat); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("bundle %q: %w", d.Name, errors.Join(errs...))
}
