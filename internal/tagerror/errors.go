// Package tagerror defines the error kinds surfaced by the tagging pipeline.
package tagerror

import "fmt"

// ConfigError reports a mapping source that could not be turned into a rule table.
type ConfigError struct {
	Source  string // File path, or empty for in-memory rules
	Line    int    // 1-indexed line in Source, 0 when not line-specific
	Content string
	Reason  string
}

func (e *ConfigError) Error() string {
	location := e.Source
	if location == "" {
		location = "mapping"
	}
	if e.Line > 0 {
		return fmt.Sprintf("invalid mapping %s:%d %q: %s", location, e.Line, e.Content, e.Reason)
	}
	return fmt.Sprintf("invalid mapping %s: %s", location, e.Reason)
}

// RowFormatError reports a data row that does not carry the classification column.
type RowFormatError struct {
	Line       int // 1-indexed, header is line 1
	Column     int
	FieldCount int
}

func (e *RowFormatError) Error() string {
	return fmt.Sprintf("row %d: classification column %d out of range (row has %d fields)",
		e.Line, e.Column, e.FieldCount)
}

// ResourceError reports a file that could not be opened, read or written.
type ResourceError struct {
	Path string
	Op   string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
