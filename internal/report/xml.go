package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/ginjaninja78/recordkit/internal/types"
)

// =============================================================================
// XML DOCUMENT STRUCTURE
// =============================================================================

// xmlReport is the root <report> element.
type xmlReport struct {
	XMLName xml.Name    `xml:"report"`
	RunID   string      `xml:"runId,attr"`
	File    string      `xml:"file,attr"`
	Layout  string      `xml:"layout,attr"`
	Status  string      `xml:"status,attr"`
	Error   string      `xml:"error,omitempty"`
	Stats   xmlStats    `xml:"stats"`
	Records []xmlRecord `xml:"records>record"`
}

type xmlStats struct {
	LinesRead      int `xml:"linesRead,attr"`
	BlankLines     int `xml:"blankLines,attr"`
	ValidRecords   int `xml:"validRecords,attr"`
	InvalidRecords int `xml:"invalidRecords,attr"`
}

type xmlRecord struct {
	Line     int      `xml:"line,attr"`
	Content  string   `xml:"content"`
	Messages []string `xml:"message"`
}

// WriteXML writes the report as an indented XML document.
func WriteXML(w io.Writer, result *types.FileResult) error {
	doc := xmlReport{
		RunID:  result.RunID,
		File:   result.FilePath,
		Layout: result.Layout,
		Status: status(result),
		Stats: xmlStats{
			LinesRead:      result.Stats.LinesRead,
			BlankLines:     result.Stats.BlankLines,
			ValidRecords:   result.Stats.ValidRecords,
			InvalidRecords: result.Stats.InvalidRecords,
		},
	}
	if result.Err != nil {
		doc.Error = result.Err.Error()
	}
	for _, re := range result.Errors {
		doc.Records = append(doc.Records, xmlRecord{
			Line:     re.LineNumber,
			Content:  re.Line,
			Messages: re.Messages,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode XML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
