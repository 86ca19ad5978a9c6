// Package root contains the root command for the application
package root

import (
	"sync"

	"fjacquet/txtag/internal/config"
	"fjacquet/txtag/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every subcommand.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger for commands; replaced once configuration is loaded.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded by the persistent pre-run hook.
	AppConfig *config.Config

	// Flags holds the values of the persistent flags.
	Flags = GlobalFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "txtag",
		Short: "A CLI tool to tag transaction CSV rows using description prefix rules.",
		Long: `txtag reads a delimited transaction file, matches the description column of
every row against an ordered list of prefix rules, and writes a copy with a
trailing tag column. The first rule whose prefix matches wins.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	initOnce sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVar(&Flags.ConfigFile, "config", "", "Config file (default: ./config.yaml, ./.txtag/config.yaml or ~/.txtag/config.yaml)")
		Cmd.PersistentFlags().StringVar(&Flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
		Cmd.PersistentFlags().StringVar(&Flags.LogFormat, "log-format", "", "Log format: text or json")
	})
}

// setup loads .env and configuration, then builds the logger. Logs go to
// stderr so stdout only carries command output.
func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfig(Flags.ConfigFile)
	if err != nil {
		return err
	}
	if Flags.LogLevel != "" {
		cfg.Log.Level = Flags.LogLevel
	}
	if Flags.LogFormat != "" {
		cfg.Log.Format = Flags.LogFormat
	}
	AppConfig = cfg

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	if adapter, ok := logger.(*logging.LogrusAdapter); ok {
		adapter.SetOutput(cmd.ErrOrStderr())
	}
	Log = logger

	Log.Debug("Configuration loaded",
		logging.Field{Key: logging.FieldDelimiter, Value: cfg.CSV.Delimiter},
		logging.Field{Key: logging.FieldMappingFile, Value: cfg.Tagging.MappingFile},
		logging.Field{Key: logging.FieldColumn, Value: cfg.Tagging.Column},
	)
	return nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *config.Config {
	return AppConfig
}

// GetLogger returns the configured logger.
func GetLogger() logging.Logger {
	return Log
}
