// Package classifier decides, row by row, whether a transaction line gets a
// tag and where that tag goes relative to the header's column layout.
package classifier

import "strings"

// TagColumn is the header name of the classification column.
const TagColumn = "tag"

// HeaderMetadata is derived once from the header row and is read-only after.
type HeaderMetadata struct {
	ColumnCount  int  // header field count before any tag column is added
	HasTagColumn bool // last header field is "tag", any case
}

// DeriveHeader inspects the header fields.
func DeriveHeader(fields []string) HeaderMetadata {
	h := HeaderMetadata{ColumnCount: len(fields)}
	if len(fields) > 0 {
		h.HasTagColumn = strings.EqualFold(fields[len(fields)-1], TagColumn)
	}
	return h
}

// EmitHeader returns the header row to write: unchanged when it already ends
// with a tag column, otherwise extended with one.
func (h HeaderMetadata) EmitHeader(fields []string) []string {
	if h.HasTagColumn {
		return fields
	}
	out := make([]string, 0, len(fields)+1)
	out = append(out, fields...)
	return append(out, TagColumn)
}
