package classifier

import (
	"strings"

	"fjacquet/txtag/internal/mapping"
	"fjacquet/txtag/internal/tagerror"
)

// DefaultColumn is the zero-based index of the description field.
const DefaultColumn = 2

// Placement says how a matched tag is written into a row.
type Placement int

const (
	// Append adds the tag as a new trailing field.
	Append Placement = iota
	// Overwrite replaces the row's trailing field, which already sits in the
	// header's tag column.
	Overwrite
)

func (p Placement) String() string {
	if p == Overwrite {
		return "overwrite"
	}
	return "append"
}

// PlaceTag picks the placement for a matched row of rowLen fields.
func PlaceTag(h HeaderMetadata, rowLen int) Placement {
	if h.HasTagColumn && rowLen == h.ColumnCount {
		return Overwrite
	}
	return Append
}

// Result is the outcome for one data row.
type Result struct {
	Fields    []string
	Tagged    bool
	Tag       string
	Placement Placement // meaningful only when Tagged
}

// Classifier tags data rows. It holds no per-row state.
type Classifier struct {
	table  *mapping.Table
	column int
	header HeaderMetadata
}

// New returns a classifier reading the description from column. A nil
// table matches nothing.
func New(table *mapping.Table, column int, header HeaderMetadata) *Classifier {
	return &Classifier{table: table, column: column, header: header}
}

// Column is the configured description column.
func (c *Classifier) Column() int { return c.column }

// Header is the metadata the classifier reconciles against.
func (c *Classifier) Header() HeaderMetadata { return c.header }

// Classify tags the row at lineNumber (1-indexed, header is line 1).
// Unmatched rows come back unchanged and are not extended with an empty tag.
func (c *Classifier) Classify(lineNumber int, fields []string) (Result, error) {
	if c.column < 0 || c.column >= len(fields) {
		return Result{}, &tagerror.RowFormatError{
			Line:       lineNumber,
			Column:     c.column,
			FieldCount: len(fields),
		}
	}

	tag, found := c.table.FindTag(strings.ToUpper(fields[c.column]))
	if !found {
		return Result{Fields: fields}, nil
	}

	placement := PlaceTag(c.header, len(fields))
	out := make([]string, 0, len(fields)+1)
	switch placement {
	case Overwrite:
		out = append(out, fields[:len(fields)-1]...)
	default:
		out = append(out, fields...)
	}
	out = append(out, tag)

	return Result{Fields: out, Tagged: true, Tag: tag, Placement: placement}, nil
}

// Split breaks a line into fields on delim. Trailing empty fields are
// dropped, so "a,b,," has two fields; a line with no content has none.
// Quoting is not supported.
func Split(line, delim string) []string {
	fields := strings.Split(line, delim)
	end := len(fields)
	for end > 0 && fields[end-1] == "" {
		end--
	}
	return fields[:end]
}

// Join writes fields separated by delim with no trailing delimiter.
func Join(fields []string, delim string) string {
	return strings.Join(fields, delim)
}
