package extension

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidDriver is matched by InvalidDriverError.
var ErrInvalidDriver = errors.New("invalid driver")

// InvalidDriverError reports a configured driver the bundle does not support.
type InvalidDriverError struct {
	Driver    string
	Bundle    string
	Supported []string
}

func (e *InvalidDriverError) Error() string {
	return "extension: driver " + strconv.Quote(e.Driver) + " is unsupported for bundle " + strconv.Quote(e.Bundle) +
		"; supported drivers: " + strings.Join(e.Supported, ", ")
}

func (e *InvalidDriverError) Unwrap() error { return ErrInvalidDriver }
