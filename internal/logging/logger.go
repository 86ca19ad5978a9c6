// Package logging wraps the structured logger used across txtag so that
// packages depend on a small interface instead of logrus directly.
package logging

// Logger is the structured logging surface used by the tagging pipeline.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// Standard field names.
const (
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldMappingFile = "mapping_file"
	FieldLine        = "line"
	FieldColumn      = "column"
	FieldPrefix      = "prefix"
	FieldTag         = "tag"
	FieldCount       = "count"
	FieldTagged      = "tagged"
	FieldTotal       = "total"
	FieldSkipped     = "skipped"
	FieldCoverage    = "coverage_pct"
	FieldDelimiter   = "delimiter"
)
