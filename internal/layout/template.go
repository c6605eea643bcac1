// =============================================================================
// recordkit - XLSX Field Template Parser
// =============================================================================
//
// A field template is a spreadsheet listing the fields of a layout, one per
// row, so business users can maintain layouts without editing YAML.
//
// TEMPLATE STRUCTURE (first sheet, row 1 is a header):
//
//   | A     | B        | C      | D        | E          | F          | G            | H   | I   | J      | K       | L      |
//   |-------|----------|--------|----------|------------|------------|--------------|-----|-----|--------|---------|--------|
//   | Name  | Position | Type   | Required | Min Length | Max Length | Exact Length | Min | Max | Digits | Pattern | Layout |
//   | Id    | 1        | int    | required |            |            |              | 1   |     |        |         |        |
//   | Name  | 2        | string | required |            | 50         |              |     |     |        |         |        |
//   | Email | 3        | email  | optional |            |            |              |     |     |        |         |        |
//
// Empty rows and rows without a name are skipped. A blank position means
// the position after the previous row.
//
// =============================================================================

package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/recordkit/internal/config"
)

// Template column indexes.
const (
	colName = iota
	colPosition
	colType
	colRequired
	colMinLength
	colMaxLength
	colExactLength
	colMin
	colMax
	colDigits
	colPattern
	colLayout
)

// TemplateHeader is the header row written by WriteTemplate.
var TemplateHeader = []string{
	"Name", "Position", "Type", "Required",
	"Min Length", "Max Length", "Exact Length",
	"Min", "Max", "Digits", "Pattern", "Layout",
}

// ParseTemplate reads the field rows of an XLSX template.
//
// PARAMETERS:
//   - templatePath: The path to the XLSX template file.
//
// RETURNS:
//   - The field configurations in row order.
//   - An error if the file cannot be read or a cell cannot be parsed.
func ParseTemplate(templatePath string) ([]config.FieldConfig, error) {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("template file has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var fields []config.FieldConfig
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		fc, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("error parsing row %d: %w", i+1, err)
		}
		if fc.Name == "" {
			continue
		}
		fields = append(fields, fc)
	}
	return fields, nil
}

// parseRow extracts a field configuration from a single row.
func parseRow(row []string) (config.FieldConfig, error) {
	getCell := func(index int) string {
		if index < len(row) {
			return strings.TrimSpace(row[index])
		}
		return ""
	}
	getInt := func(index int, name string) (int, error) {
		s := getCell(index)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%s %q is not a number", name, s)
		}
		return n, nil
	}

	fc := config.FieldConfig{
		Name:     getCell(colName),
		Type:     getCell(colType),
		Optional: isOptional(getCell(colRequired)),
		Min:      getCell(colMin),
		Max:      getCell(colMax),
		Pattern:  getCell(colPattern),
		Layout:   getCell(colLayout),
	}

	var err error
	if fc.Position, err = getInt(colPosition, "position"); err != nil {
		return fc, err
	}
	if fc.MinLength, err = getInt(colMinLength, "min length"); err != nil {
		return fc, err
	}
	if fc.MaxLength, err = getInt(colMaxLength, "max length"); err != nil {
		return fc, err
	}
	if fc.ExactLength, err = getInt(colExactLength, "exact length"); err != nil {
		return fc, err
	}
	if fc.Digits, err = getInt(colDigits, "digits"); err != nil {
		return fc, err
	}
	return fc, nil
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// isOptional maps the Required column. Anything that is not an explicit
// "optional" spelling means required.
func isOptional(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "optional", "opt", "o", "no", "n", "false", "0":
		return true
	default:
		return false
	}
}

// WriteTemplate writes fields as an XLSX template to path.
func WriteTemplate(path string, fields []config.FieldConfig) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &TemplateHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, fc := range fields {
		required := "required"
		if fc.Optional {
			required = "optional"
		}
		row := []any{
			fc.Name, blankZero(fc.Position), fc.Type, required,
			blankZero(fc.MinLength), blankZero(fc.MaxLength), blankZero(fc.ExactLength),
			fc.Min, fc.Max, blankZero(fc.Digits), fc.Pattern, fc.Layout,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}
	return nil
}

func blankZero(n int) any {
	if n == 0 {
		return ""
	}
	return n
}
