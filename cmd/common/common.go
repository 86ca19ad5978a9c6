// Package common contains shared functionality for command handlers
package common

import (
	"errors"

	"fjacquet/txtag/internal/logging"
	"fjacquet/txtag/internal/mapping"
	"fjacquet/txtag/internal/store"
	"fjacquet/txtag/internal/tagerror"

	"github.com/spf13/cobra"
)

// StringSetting returns the flag value when the user set it, otherwise the
// configured fallback.
func StringSetting(cmd *cobra.Command, flag, fallback string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return fallback
}

// IntSetting is StringSetting for integer flags.
func IntSetting(cmd *cobra.Command, flag string, fallback int) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return fallback
}

// LoadTable loads the mapping file at path. An empty path yields a nil
// table, which tags nothing.
func LoadTable(path, separator string, log logging.Logger) (*mapping.Table, error) {
	if path == "" {
		log.Warn("No mapping file given, rows will not be tagged")
		return nil, nil
	}
	return store.NewMappingStore(separator, log).Load(path)
}

// ReportError logs err with the context its kind carries.
func ReportError(log logging.Logger, err error) {
	var (
		cfgErr *tagerror.ConfigError
		rowErr *tagerror.RowFormatError
		resErr *tagerror.ResourceError
	)
	switch {
	case errors.As(err, &cfgErr):
		log.WithError(err).Error("Invalid mapping file",
			logging.Field{Key: logging.FieldMappingFile, Value: cfgErr.Source},
			logging.Field{Key: logging.FieldLine, Value: cfgErr.Line},
		)
	case errors.As(err, &rowErr):
		log.WithError(err).Error("Malformed transaction row",
			logging.Field{Key: logging.FieldLine, Value: rowErr.Line},
			logging.Field{Key: logging.FieldColumn, Value: rowErr.Column},
		)
	case errors.As(err, &resErr):
		log.WithError(err).Error("File access failed",
			logging.Field{Key: "path", Value: resErr.Path},
			logging.Field{Key: "operation", Value: resErr.Op},
		)
	default:
		log.WithError(err).Error("Command failed")
	}
}
