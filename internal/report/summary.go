package report

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ginjaninja78/recordkit/internal/types"
	"github.com/ginjaninja78/recordkit/pkg/format"
	"github.com/ginjaninja78/recordkit/pkg/textfile"
)

// HistoryFile is the run history kept in the output directory.
const HistoryFile = "history.csv"

const historyHeader = "run_id;started_at;duration;files;valid;invalid;failed;lines;invalid_records"

// WriteSummary writes a human-readable summary of a run.
func WriteSummary(w io.Writer, summary types.Summary, results []*types.FileResult) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "recordkit - Run Summary\n"+rule+"\n"+
		"Run Information:\n"+
		"  Run:            %s\n"+
		"  Start Time:     %s\n"+
		"  Duration:       %s\n\n"+
		"Statistics:\n"+
		"  Total Files:      %d\n"+
		"  Valid:            %d\n"+
		"  Invalid:          %d\n"+
		"  Failed:           %d\n"+
		"  Lines Read:       %s\n"+
		"  Invalid Records:  %s\n\n",
		summary.RunID,
		summary.StartedAt.Format("2006-01-02 15:04:05"),
		format.Duration(summary.Duration),
		summary.Files,
		summary.ValidFiles,
		summary.InvalidFiles,
		summary.FailedFiles,
		format.Integer(int64(summary.LinesRead)),
		format.Integer(int64(summary.InvalidRecords)))

	if len(results) > 0 {
		bw.WriteString("Files:\n")
		bw.WriteString("--------------------------------------------------------------------------------\n")
		for _, r := range results {
			fmt.Fprintf(bw, "  File:     %s\n", r.FilePath)
			fmt.Fprintf(bw, "  Layout:   %s\n", r.Layout)
			fmt.Fprintf(bw, "  Status:   %s\n", status(r))
			if r.Err != nil {
				fmt.Fprintf(bw, "  Error:    %s\n", r.Err)
			}
			if r.ReportFile != "" {
				fmt.Fprintf(bw, "  Report:   %s\n", r.ReportFile)
			}
			bw.WriteString("\n")
		}
	}

	bw.WriteString(rule + "End of Summary\n")
	return bw.Flush()
}

// AppendHistory appends one line describing summary to the run history in
// dir, creating the file with a header first.
func AppendHistory(dir string, summary types.Summary) (string, error) {
	path := filepath.Join(dir, HistoryFile)
	err := textfile.AppendItemsToFile(path, []types.Summary{summary}, historyLine, historyHeader)
	if err != nil {
		return "", fmt.Errorf("failed to append run history: %w", err)
	}
	return path, nil
}

func historyLine(s types.Summary) string {
	fields := []string{
		s.RunID,
		s.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		s.Duration.Round(time.Millisecond).String(),
		strconv.Itoa(s.Files),
		strconv.Itoa(s.ValidFiles),
		strconv.Itoa(s.InvalidFiles),
		strconv.Itoa(s.FailedFiles),
		strconv.Itoa(s.LinesRead),
		strconv.Itoa(s.InvalidRecords),
	}
	return format.List(fields, ";")
}
