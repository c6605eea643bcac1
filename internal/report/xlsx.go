package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/recordkit/internal/types"
)

const (
	errorsSheet  = "Errors"
	summarySheet = "Summary"
)

// WriteXLSX writes the report as a workbook with an Errors sheet (one row
// per invalid line) and a Summary sheet.
func WriteXLSX(w io.Writer, result *types.FileResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), errorsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	header := []any{"Line", "Content", "Messages"}
	if err := f.SetSheetRow(errorsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, re := range result.Errors {
		row := []any{re.LineNumber, re.Line, strings.Join(re.Messages, "\n")}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(errorsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	errText := ""
	if result.Err != nil {
		errText = result.Err.Error()
	}
	summary := [][]any{
		{"Run", result.RunID},
		{"File", result.FilePath},
		{"Layout", result.Layout},
		{"Status", status(result)},
		{"Lines Read", result.Stats.LinesRead},
		{"Blank Lines", result.Stats.BlankLines},
		{"Valid Records", result.Stats.ValidRecords},
		{"Invalid Records", result.Stats.InvalidRecords},
		{"Error", errText},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
