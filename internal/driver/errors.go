package driver

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrUnknownDriver is matched by UnknownDriverError.
	ErrUnknownDriver = errors.New("unknown driver")

	// ErrUnsupportedMappingFormat is matched by UnsupportedMappingFormatError.
	ErrUnsupportedMappingFormat = errors.New("unsupported mapping format")
)

// UnknownDriverError reports a driver outside the enumerated set.
type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return "driver: unknown driver " + strconv.Quote(e.Driver) + "; known drivers: " + strings.Join(Known(), ", ")
}

func (e *UnknownDriverError) Unwrap() error { return ErrUnknownDriver }

// UnsupportedMappingFormatError reports a mapping file type with no mapping pass.
type UnsupportedMappingFormatError struct {
	Format string
}

func (e *UnsupportedMappingFormatError) Error() string {
	return "driver: mapping format " + strconv.Quote(e.Format) + " not in list of available formats: " +
		strings.Join([]string{MappingXML, MappingYAML}, ", ")
}

func (e *UnsupportedMappingFormatError) Unwrap() error { return ErrUnsupportedMappingFormat }
