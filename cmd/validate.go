// =============================================================================
// recordkit - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which loads the configuration
// and builds every layout without checking any file.
//
// COMMAND USAGE:
//   recordkit validate
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/recordkit/internal/config"
	"github.com/ginjaninja78/recordkit/internal/layout"
	"github.com/ginjaninja78/recordkit/pkg/format"
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and layouts",
	Long: `Load the main configuration and every layout in layouts_dir, read the
XLSX templates they reference and report each layout's fields.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Input directory:   %s\n", mainConfig.InputDir)
	fmt.Fprintf(out, "Output directory:  %s\n", mainConfig.OutputDir)
	fmt.Fprintf(out, "Layouts directory: %s\n", mainConfig.LayoutsDir)
	fmt.Fprintf(out, "Report format:     %s\n\n", mainConfig.ReportFormat)

	layoutConfigs, err := config.LoadLayoutConfigs(mainConfig.LayoutsDir)
	if err != nil {
		return fmt.Errorf("failed to load layouts: %w", err)
	}

	failed := 0
	for _, name := range config.SortedNames(layoutConfigs) {
		cfg := layoutConfigs[name]
		l, err := layout.Build(cfg, mainConfig.TemplatesDir)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  ✗ %s (%s): %v\n", name, cfg.Source, err)
			continue
		}

		fmt.Fprintf(out, "  ✓ %s (%s)\n", name, cfg.Source)
		fmt.Fprintf(out, "      Patterns:   %s\n", format.List(cfg.FileMatchingPatterns, ", "))
		fmt.Fprintf(out, "      Extensions: %s\n", format.List(l.AllowedExtensions, ", "))
		for _, f := range l.Fields {
			optional := ""
			if f.Optional {
				optional = ", optional"
			}
			fmt.Fprintf(out, "      %3d  %-24s %s%s\n", f.Position, f.Name, f.Type, optional)
		}
	}

	fmt.Fprintf(out, "\n%d layout(s), %d invalid\n", len(layoutConfigs), failed)
	if failed > 0 {
		return fmt.Errorf("%d layout(s) are invalid", failed)
	}
	return nil
}
