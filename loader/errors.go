package loader

import "fmt"

// SourceError marks a source that could not be opened or read at all, as
// opposed to individual malformed rows which are skipped. Callers can match
// it with errors.As to report "cannot load source X".
type SourceError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot load source %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error
func (e *SourceError) Unwrap() error {
	return e.Err
}
