// Package rules implements the command that lists and exports mapping rules.
package rules

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"fjacquet/txtag/cmd/common"
	"fjacquet/txtag/cmd/root"
	"fjacquet/txtag/internal/logging"
	"fjacquet/txtag/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "List, check and export mapping rules",
	Long: `List the rules of a mapping file in lookup order and report rules that can
never match because an earlier prefix already covers them.

With --export the table is also written to a .yaml/.yml or .csv file, keeping
rule order.`,
	Args: cobra.NoArgs,
	RunE: rulesFunc,
}

func init() {
	Cmd.Flags().StringP("mapping", "m", "", "Mapping file to read")
	Cmd.Flags().StringP("export", "e", "", "Write the rules to this .yaml, .yml or .csv file")
}

func rulesFunc(cmd *cobra.Command, args []string) error {
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

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPREFIX\tTAG")
	for i, r := range table.Rules() {
		fmt.Fprintf(w, "%d\t%q\t%s\n", i+1, r.Prefix, r.Tag)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, sh := range table.Shadowed() {
		fmt.Fprintf(cmd.OutOrStdout(), "rule %d %q never matches: shadowed by rule %d %q\n",
			sh.Index+1, sh.Rule.Prefix, sh.ByIndex+1, sh.ByRule.Prefix)
	}

	exportPath, _ := cmd.Flags().GetString("export")
	if exportPath == "" {
		return nil
	}
	if err := store.NewMappingStore(cfg.Tagging.Separator, log).Export(exportPath, table); err != nil {
		common.ReportError(log, err)
		return err
	}
	log.Info("Mapping rules exported",
		logging.Field{Key: logging.FieldOutputFile, Value: exportPath},
		logging.Field{Key: logging.FieldCount, Value: table.Len()},
	)
	return nil
}
