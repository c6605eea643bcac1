package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/recordkit/internal/config"
	"github.com/ginjaninja78/recordkit/internal/layout"
)

// templateCmd exports the fields of a layout as an XLSX template.
var templateCmd = &cobra.Command{
	Use:   "template LAYOUT [OUTPUT]",
	Short: "Write a layout's fields as an XLSX template",
	Long: `Write the fields of LAYOUT (template fields first, then inline fields) to
an XLSX template. OUTPUT defaults to <templates_dir>/<LAYOUT>.xlsx.

The template can then be edited in a spreadsheet and referenced from the
layout's "template" setting.`,
	Args: cobra.RangeArgs(1, 2),

	RunE: func(cmd *cobra.Command, args []string) error {
		layoutConfigs, err := config.LoadLayoutConfigs(mainConfig.LayoutsDir)
		if err != nil {
			return fmt.Errorf("failed to load layouts: %w", err)
		}
		cfg, ok := layoutConfigs[args[0]]
		if !ok {
			return fmt.Errorf("unknown layout %q", args[0])
		}

		// Build first so only valid layouts are exported.
		if _, err := layout.Build(cfg, mainConfig.TemplatesDir); err != nil {
			return err
		}

		var fields []config.FieldConfig
		if cfg.Template != "" {
			fields, err = layout.ParseTemplate(filepath.Join(mainConfig.TemplatesDir, cfg.Template))
			if err != nil {
				return err
			}
		}
		fields = append(fields, cfg.Fields...)

		output := filepath.Join(mainConfig.TemplatesDir, cfg.Name+".xlsx")
		if len(args) == 2 {
			output = args[1]
		}
		if err := layout.WriteTemplate(output, fields); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d field(s) to %s\n", len(fields), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)
}
