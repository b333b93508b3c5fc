package errs

import "fmt"

// ConfigError reports a configuration that cannot be applied to a batch.
//
// It is the only error kind returned by the ingest pipeline. Component names
// the stage or field that failed (for example "x", "y[1]" or "column:speed"),
// Err carries one of the configuration sentinels, usually wrapped with detail.
type ConfigError struct {
	Component string
	Err       error
}

// NewConfigError wraps err with the failing component.
func NewConfigError(component string, err error) *ConfigError {
	return &ConfigError{Component: component, Err: err}
}

// Configf builds a ConfigError whose Err wraps sentinel with a formatted detail.
func Configf(component string, sentinel error, format string, args ...any) *ConfigError {
	return &ConfigError{
		Component: component,
		Err:       fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)),
	}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("config error: %v", e.Err)
	}

	return fmt.Sprintf("config error in %s: %v", e.Component, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
