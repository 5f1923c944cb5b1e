package container

import (
	"errors"
	"strconv"
)

var (
	// ErrFrozen is returned by every mutation attempted after Compile.
	ErrFrozen = errors.New("container: builder is frozen")

	// ErrMissingParameter is returned when a placeholder names a parameter
	// that was never set.
	ErrMissingParameter = errors.New("container: missing parameter")

	// ErrMissingDefinition is returned when an alias or a service argument
	// points to an unknown service.
	ErrMissingDefinition = errors.New("container: missing definition")
)

// MissingParameterError reports the parameter key and where it was referenced.
type MissingParameterError struct {
	Key        string
	Referrer   string
	Suggestion string
}

func (e *MissingParameterError) Error() string {
	msg := "container: parameter " + strconv.Quote(e.Key) + " referenced by " + e.Referrer + " is not set"
	if e.Suggestion != "" {
		msg += " (did you mean " + strconv.Quote(e.Suggestion) + "?)"
	}
	return msg
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// MissingDefinitionError reports an alias or a service argument whose target
// does not exist. Exactly one of Alias and Referrer is set.
type MissingDefinitionError struct {
	ID       string
	Alias    string
	Referrer string
}

func (e *MissingDefinitionError) Error() string {
	if e.Referrer != "" {
		return "container: service " + strconv.Quote(e.Referrer) + " references unknown service " + strconv.Quote(e.ID)
	}
	return "container: alias " + strconv.Quote(e.Alias) + " points to unknown service " + strconv.Quote(e.ID)
}

func (e *MissingDefinitionError) Unwrap() error { return ErrMissingDefinition }
