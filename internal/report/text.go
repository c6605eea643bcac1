package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ginjaninja78/recordkit/internal/types"
	"github.com/ginjaninja78/recordkit/pkg/format"
)

const rule = "================================================================================\n"

// WriteText writes a human-readable error log.
func WriteText(w io.Writer, result *types.FileResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "recordkit - Error Report\n"+
		"Generated:      %s\n"+
		"Run:            %s\n"+
		"File:           %s\n"+
		"Layout:         %s\n"+
		"Status:         %s\n"+
		"Lines Read:     %s\n"+
		"Invalid Lines:  %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		result.RunID,
		result.FilePath,
		result.Layout,
		status(result),
		format.Integer(int64(result.Stats.LinesRead)),
		format.Integer(int64(result.Stats.InvalidRecords)))
	if result.Err != nil {
		fmt.Fprintf(bw, "Error:          %s\n", result.Err)
	}
	bw.WriteString(rule + "\n")

	for _, re := range result.Errors {
		fmt.Fprintf(bw, "Line %d\n", re.LineNumber)
		fmt.Fprintf(bw, "  Content:      %s\n", re.Line)
		for _, msg := range re.Messages {
			fmt.Fprintf(bw, "  - %s\n", msg)
		}
		bw.WriteString("\n")
	}

	bw.WriteString(rule + "End of Error Report\n")
	return bw.Flush()
}

// csvHeader is the first row of a CSV report.
var csvHeader = []string{"line", "message"}

// WriteCSV writes one line;message row per message. Fields holding the
// separator or quotes are quoted.
func WriteCSV(w io.Writer, result *types.FileResult) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, re := range result.Errors {
		line := strconv.Itoa(re.LineNumber)
		for _, msg := range re.Messages {
			if err := cw.Write([]string{line, msg}); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
