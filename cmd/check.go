// =============================================================================
// recordkit - Check Command
// =============================================================================
//
// This file defines the 'check' command, which validates input files
// against their layouts and writes an error report per invalid file.
//
// COMMAND USAGE:
//   recordkit check [flags]
//
// FLAGS:
//   --file          : Check only this file (repeatable)
//   --layout        : Check every file against this layout
//   --dry-run       : Check without writing reports or archiving files
//   --batch-size    : Lines handed to the checker at a time
//   --max-errors    : Stop a file after this many invalid records
//   --report-format : text, csv, xml or xlsx
//
// EXIT STATUS:
//   Non-zero when any file is invalid or could not be checked.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/recordkit/internal/config"
	"github.com/ginjaninja78/recordkit/internal/runner"
	"github.com/ginjaninja78/recordkit/internal/types"
	"github.com/ginjaninja78/recordkit/pkg/format"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// checkFiles are the files to check instead of the input directory.
var checkFiles []string

// checkLayout forces a layout for every file.
var checkLayout string

// dryRun checks files without writing anything.
var dryRun bool

// batchSize overrides batch_size when set.
var batchSize int

// maxErrors overrides max_errors when set.
var maxErrors int

// reportFormat overrides report_format when set.
var reportFormat string

// =============================================================================
// CHECK COMMAND DEFINITION
// =============================================================================

// checkCmd represents the 'check' command.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check text files against their layouts",
	Long: `The check command scans the input directory for text files, matches each
to a layout by its file name patterns, and validates every line.

Files are checked concurrently up to max_concurrency. Each file is scanned in
batches of batch_size lines; checking a file stops once max_errors invalid
records were found.

For each file that is not valid:
  - An error report is written to the output directory
  - The file remains in the input directory

For each valid file:
  - The file is moved to the input archive when archive_on_success is set

A run summary and a line in the run history are written to the output
directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		applyCheckFlags(cmd, mainConfig)
		return runCheck(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVar(&checkFiles, "file", nil, "Check only this file (repeatable)")
	checkCmd.Flags().StringVar(&checkLayout, "layout", "", "Check every file against this layout")
	checkCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Check without writing reports or archiving files")
	checkCmd.Flags().IntVar(&batchSize, "batch-size", 0, "Lines handed to the checker at a time (overrides batch_size)")
	checkCmd.Flags().IntVar(&maxErrors, "max-errors", 0, "Stop a file after this many invalid records (overrides max_errors)")
	checkCmd.Flags().StringVar(&reportFormat, "report-format", "", "Report format: text, csv, xml or xlsx (overrides report_format)")
}

// applyCheckFlags copies the flags the user set onto cfg.
func applyCheckFlags(cmd *cobra.Command, cfg *config.MainConfig) {
	flags := cmd.Flags()
	if flags.Changed("batch-size") {
		cfg.BatchSize = batchSize
	}
	if flags.Changed("max-errors") {
		cfg.MaxErrors = maxErrors
	}
	if flags.Changed("report-format") {
		cfg.ReportFormat = reportFormat
	}
}

// =============================================================================
// MAIN CHECK FUNCTION
// =============================================================================

func runCheck(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD LAYOUTS
	// =========================================================================

	layoutConfigs, err := config.LoadLayoutConfigs(mainConfig.LayoutsDir)
	if err != nil {
		return fmt.Errorf("failed to load layouts: %w", err)
	}
	layouts, err := runner.BuildLayouts(layoutConfigs, mainConfig.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to build layouts: %w", err)
	}
	fmt.Fprintf(out, "Loaded %d layout(s)\n", len(layouts))

	// =========================================================================
	// STEP 2: RUN
	// =========================================================================

	r, err := runner.New(mainConfig, layouts, logger)
	if err != nil {
		return err
	}
	run, err := r.Run(cmd.Context(), runner.Options{
		Files:  checkFiles,
		Layout: checkLayout,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	if len(run.Files) == 0 {
		fmt.Fprintln(out, "No files found in the input directory.")
		return nil
	}

	// =========================================================================
	// STEP 3: PRINT RESULTS
	// =========================================================================

	for _, result := range run.Files {
		fmt.Fprintln(out, resultLine(result))
	}

	s := run.Summary
	fmt.Fprintln(out, "\n=== Check Complete ===")
	fmt.Fprintf(out, "Run:             %s\n", s.RunID)
	fmt.Fprintf(out, "Total files:     %d\n", s.Files)
	fmt.Fprintf(out, "Valid:           %d\n", s.ValidFiles)
	fmt.Fprintf(out, "Invalid:         %d\n", s.InvalidFiles)
	fmt.Fprintf(out, "Failed:          %d\n", s.FailedFiles)
	fmt.Fprintf(out, "Lines read:      %s\n", format.Integer(int64(s.LinesRead)))
	fmt.Fprintf(out, "Time elapsed:    %s\n", format.Duration(s.Duration))
	if run.SummaryFile != "" {
		fmt.Fprintf(out, "Summary:         %s\n", run.SummaryFile)
	}

	if notPassed := s.InvalidFiles + s.FailedFiles; notPassed > 0 {
		return fmt.Errorf("%d of %d file(s) did not pass", notPassed, s.Files)
	}
	return nil
}

// resultLine renders one file result for the console.
func resultLine(result *types.FileResult) string {
	name := filepath.Base(result.FilePath)
	switch {
	case result.Err != nil:
		return fmt.Sprintf("  ✗ %s: %v", name, result.Err)
	case result.Valid():
		return fmt.Sprintf("  ✓ %s (%s, %s lines)", name, result.Layout, format.Integer(int64(result.Stats.LinesRead)))
	}
	line := fmt.Sprintf("  ✗ %s (%s): %s invalid record(s)", name, result.Layout, format.Integer(int64(result.Stats.InvalidRecords)))
	if result.Truncated {
		line += ", stopped at error limit"
	}
	if result.ReportFile != "" {
		line += " -> " + result.ReportFile
	}
	return line
}
