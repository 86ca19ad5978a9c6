// Package lookup implements the command that resolves a single description.
package lookup

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/txtag/cmd/common"
	"fjacquet/txtag/cmd/root"
	"fjacquet/txtag/internal/logging"

	"github.com/spf13/cobra"
)

// ErrNoMatch is returned when no rule matches the description.
var ErrNoMatch = errors.New("no matching rule")

// Cmd represents the lookup command
var Cmd = &cobra.Command{
	Use:   "lookup <description>",
	Short: "Show which tag a description resolves to",
	Long: `Resolve one transaction description against the mapping file, the same way
the tag command does, and print the resulting tag.`,
	Args: cobra.MinimumNArgs(1),
	RunE: lookupFunc,
}

func init() {
	Cmd.Flags().StringP("mapping", "m", "", "Mapping file to resolve against")
}

func lookupFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	log := root.GetLogger()

	path := common.StringSetting(cmd, "mapping", cfg.Tagging.MappingFile)
	if path == "" {
		return errors.New("a mapping file is required (--mapping or tagging.mapping_file)")
	}
	table, err := common.LoadTable(path, cfg.Tagging.Separator, log)
	if err != nil {
		common.ReportError(log, err)
		return err
	}

	description := strings.Join(args, " ")
	tag, found := table.FindTag(strings.ToUpper(description))
	if !found {
		log.Info("Description not tagged", logging.Field{Key: "description", Value: description})
		return fmt.Errorf("%q: %w", description, ErrNoMatch)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tag)
	return nil
}
