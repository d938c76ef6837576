// Package cmd provides the CLI commands for invsearch.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	inverrors "github.com/Aman-CERP/invsearch/internal/errors"
	"github.com/Aman-CERP/invsearch/internal/logging"
	"github.com/Aman-CERP/invsearch/pkg/version"
)

// Global flags shared by every subcommand.
var (
	dataFile  string
	debugMode bool
	noColor   bool
	noLock    bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the invsearch CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invsearch",
		Short: "Search and edit a local inventory file",
		Long: `invsearch keeps a small inventory in a JSON file and lets you look
records up by id, by name (substring or fuzzy), or by category.

Run without arguments to open the interactive menu. Changes made in the
menu are written back when you choose "save" or "save and exit".`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return runShell(cmd.Context(), cmd)
		},
	}

	cmd.SetVersionTemplate("invsearch version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "Inventory file (default from config: inventory.json)")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging (also mirrored to stderr)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&noLock, "no-lock", false, "Do not take the session lock on the inventory file")

	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newShellCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging opens the log file. A log file that cannot be opened is
// not fatal; logging is discarded instead.
func startLogging(level, path string) {
	stopLoggingQuietly()

	cfg := logging.DefaultConfig()
	cfg.Level = level
	if path != "" {
		cfg.FilePath = path
	}
	if debugMode {
		cfg.Level = "debug"
		cfg.WriteToStderr = true
	}

	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		slog.SetDefault(logging.Discard())
		return
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Debug("logging_started", slog.String("log_file", cfg.FilePath), slog.String("version", version.Version))
}

// stopLogging closes the log file opened by startLogging.
func stopLogging(_ *cobra.Command, _ []string) error {
	stopLoggingQuietly()
	return nil
}

func stopLoggingQuietly() {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
		slog.SetDefault(logging.Discard())
	}
}

// Execute runs the root command and prints any error in CLI form.
func Execute() error {
	err := NewRootCmd().Execute()
	stopLoggingQuietly()
	if err != nil {
		_, _ = fmt.Fprint(os.Stderr, inverrors.FormatForCLI(err))
	}
	return err
}
