package config

import (
	"errors"
	"strings"
)

// ErrInvalidConfiguration is matched by every schema violation error.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Violation is a single schema failure at Path.
type Violation struct {
	Path   string
	Reason string
}

// InvalidConfigurationError collects all violations found in one Process call,
// ordered by path.
type InvalidConfigurationError struct {
	Violations []Violation
}

func (e *InvalidConfigurationError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, v.Path+": "+v.Reason)
	}
	return "invalid configuration:\n- " + strings.Join(lines, "\n- ")
}

func (e *InvalidConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// Paths returns the offending paths.
func (e *InvalidConfigurationError) Paths() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Path
	}
	return out
}
