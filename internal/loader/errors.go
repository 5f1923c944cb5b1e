package loader

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrMissingServiceDefinition is matched by MissingServiceDefinitionError.
	ErrMissingServiceDefinition = errors.New("missing service definition")

	// ErrMissingConfigDirectory is matched by MissingConfigDirectoryError.
	ErrMissingConfigDirectory = errors.New("missing configuration directory")

	// ErrUnsupportedServicesFormat is matched by UnsupportedServicesFormatError.
	ErrUnsupportedServicesFormat = errors.New("unsupported services format")
)

// MissingServiceDefinitionError lists every path that was tried.
type MissingServiceDefinitionError struct {
	Name       string
	Candidates []string
}

func (e *MissingServiceDefinitionError) Error() string {
	return "loader: service definition " + strconv.Quote(e.Name) + " not found; tried " + strings.Join(e.Candidates, ", ")
}

func (e *MissingServiceDefinitionError) Unwrap() error { return ErrMissingServiceDefinition }

// MissingConfigDirectoryError reports a configuration directory that does not exist.
type MissingConfigDirectoryError struct {
	Dir string
}

func (e *MissingConfigDirectoryError) Error() string {
	return "loader: the configuration directory " + strconv.Quote(e.Dir) + " does not exist"
}

func (e *MissingConfigDirectoryError) Unwrap() error { return ErrMissingConfigDirectory }

// UnsupportedServicesFormatError reports a loader format outside Formats().
type UnsupportedServicesFormatError struct {
	Format string
}

func (e *UnsupportedServicesFormatError) Error() string {
	return "loader: format " + strconv.Quote(e.Format) + " not in list of available loaders: " + strings.Join(Formats(), ", ")
}

func (e *UnsupportedServicesFormatError) Unwrap() error { return ErrUnsupportedServicesFormat }
