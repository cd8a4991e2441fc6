package position

import "fmt"

// ConfigurationError indicates a semantically invalid save request.
type ConfigurationError struct {
	Axis   Axis
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("save position: axis %s: %s", e.Axis, e.Reason)
}

// RestoreError wraps a failure reported by the machine while executing
// a restore move.
type RestoreError struct {
	Cmd string
	Err error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore position: run %q: %v", e.Cmd, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }
