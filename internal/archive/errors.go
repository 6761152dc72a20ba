package archive

import "fmt"

// ParseError reports a calendar export that could not be read.
type ParseError struct {
	File  string
	Field string // empty for XML syntax errors
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("parse %s: field %s: invalid value %q: %v", e.File, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
