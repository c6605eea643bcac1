// =============================================================================
// recordkit - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (recordkit)
//   ├── checkCmd (recordkit check)
//   ├── validateCmd (recordkit validate)
//   ├── templateCmd (recordkit template)
//   └── versionCmd (recordkit version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads a .env file from the working directory, if present
//   2. Loads the main configuration (--config, then RECORDKIT_* variables)
//   3. Sets up logging
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/recordkit/internal/config"
	"github.com/ginjaninja78/recordkit/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logFormat overrides the configured log format.
var logFormat string

// mainConfig is loaded by the root command before any subcommand runs.
var mainConfig *config.MainConfig

// logger is the logger configured from mainConfig.
var logger *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "recordkit",
	Short: "recordkit - Validate delimited text files against field layouts",
	Long: `recordkit checks delimited text files exported by other systems against
field layouts defined in YAML, TOML or XLSX templates.

Key Features:
  - Typed field extraction (integers, decimals, dates, time spans, booleans)
  - Length, pattern, range, email and IP address rules
  - Batched line scanning with an error limit per file
  - Concurrent checking of many files
  - Error reports as text, CSV, XML or XLSX

Example Usage:
  recordkit check                       # Check all files in the input directory
  recordkit check --file ./in/a.csv     # Check a single file
  recordkit check --config ./my.yaml    # Use a custom configuration file
  recordkit validate                    # Validate configuration and layouts`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return initConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
// Interrupting the process cancels the files still being checked.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file (YAML or TOML)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"",
		"Log format: text or json (overrides log_format)",
	)
}

// initConfig loads .env, the main configuration and sets up logging.
func initConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	mainConfig = cfg
	logger = logging.Setup(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "config", cfgFile)
	return nil
}
