// =============================================================================
// recordkit - Report Module
// =============================================================================
//
// This module writes the error report of a checked file and the summary of a
// run.
//
// REPORT FORMATS:
//   - text: human-readable log, one block per invalid line
//   - csv:  one "line;message" row per message, for spreadsheets and scripts
//   - xml:  <report> document with one <record> per invalid line
//   - xlsx: workbook with an "Errors" sheet and a "Summary" sheet
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/recordkit/internal/types"
)

// Format is a report format name.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatXML  Format = "xml"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a format name (any case) to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatCSV, FormatXML, FormatXLSX:
		return f, nil
	case "", "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unsupported report format %q", name)
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	if f == FormatText {
		return ".txt"
	}
	return "." + string(f)
}

// Write renders result in format f to w.
func Write(w io.Writer, f Format, result *types.FileResult) error {
	switch f {
	case FormatText:
		return WriteText(w, result)
	case FormatCSV:
		return WriteCSV(w, result)
	case FormatXML:
		return WriteXML(w, result)
	case FormatXLSX:
		return WriteXLSX(w, result)
	}
	return fmt.Errorf("unsupported report format %q", f)
}

// WriteFile writes the report of result to dir/name plus the format
// extension and returns the path.
//
// PARAMETERS:
//   - dir: The output directory.
//   - name: The file name without extension.
//   - f: The report format.
//   - result: The checked file.
//
// RETURNS:
//   - The path to the report file.
//   - An error if writing fails.
func WriteFile(dir, name string, f Format, result *types.FileResult) (string, error) {
	path := filepath.Join(dir, name+f.Extension())

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report: %w", err)
	}

	if err := Write(out, f, result); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close report: %w", err)
	}
	return path, nil
}

// status describes the result in one word.
func status(result *types.FileResult) string {
	switch {
	case result.Err != nil:
		return "failed"
	case result.Truncated:
		return "truncated"
	case result.Valid():
		return "valid"
	default:
		return "invalid"
	}
}
