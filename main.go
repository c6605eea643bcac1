// =============================================================================
// recordkit - Main Entry Point
// =============================================================================
//
// USAGE:
//   recordkit check        - Check all files in the input directory
//   recordkit validate     - Validate configuration and layouts
//   recordkit template     - Export a layout as an XLSX template
//   recordkit version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : Cobra command definitions
//   - internal/   : Configuration, layouts, checker, reports, run orchestration
//   - pkg/        : Validation engine, record extractor, batching, utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/recordkit/cmd"
)

func main() {
	cmd.Execute()
}
