// Package tag implements the command that tags a transaction file.
package tag

import (
	"fmt"

	"fjacquet/txtag/cmd/common"
	"fjacquet/txtag/cmd/root"
	"fjacquet/txtag/internal/classifier"
	"fjacquet/txtag/internal/fileutils"
	"fjacquet/txtag/internal/tagger"

	"github.com/spf13/cobra"
)

// Cmd represents the tag command
var Cmd = &cobra.Command{
	Use:   "tag [directory] <input> <output>",
	Short: "Tag transaction rows by description prefix",
	Long: `Tag every data row of a delimited transaction file whose description starts
with one of the mapping prefixes (case-insensitive). The first matching rule in
file order wins.

The header gets a trailing "tag" column unless its last column is already named
"tag". Matched rows get the tag appended, or written over the trailing field when
the row already fills the header's tag column. Unmatched rows are copied as-is.

When a directory is given, relative input and output names are taken from it.

Example:
  txtag tag -m tags.txt statements/ march.csv march-tagged.csv`,
	Args: cobra.RangeArgs(2, 3),
	RunE: tagFunc,
}

func init() {
	Cmd.Flags().StringP("mapping", "m", "", "Mapping file: 'prefix|||||tag' lines, or YAML when ending in .yaml/.yml")
	Cmd.Flags().IntP("column", "c", classifier.DefaultColumn, "Zero-based index of the description column")
	Cmd.Flags().String("on-row-error", string(tagger.AbortOnRowError), "What to do with rows missing the description column: abort or skip")
}

func tagFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	log := root.GetLogger()

	var dir string
	if len(args) == 3 {
		dir, args = args[0], args[1:]
	}

	column := common.IntSetting(cmd, "column", cfg.Tagging.Column)
	if column < 0 {
		err := fmt.Errorf("column must be zero or greater, got %d", column)
		common.ReportError(log, err)
		return err
	}
	policy, err := tagger.ParseRowErrorPolicy(common.StringSetting(cmd, "on-row-error", cfg.Tagging.OnRowError))
	if err != nil {
		common.ReportError(log, err)
		return err
	}

	table, err := common.LoadTable(common.StringSetting(cmd, "mapping", cfg.Tagging.MappingFile), cfg.Tagging.Separator, log)
	if err != nil {
		common.ReportError(log, err)
		return err
	}

	summary, err := tagger.Run(tagger.Options{
		InputPath:  fileutils.ResolvePath(dir, args[0]),
		OutputPath: fileutils.ResolvePath(dir, args[1]),
		Table:      table,
		Column:     column,
		Delimiter:  cfg.CSV.Delimiter,
		OnRowError: policy,
	}, log)
	if err != nil {
		common.ReportError(log, err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary.String())
	return nil
}
