// =============================================================================
// recordkit - Shared Types
// =============================================================================
//
// This package contains the result types shared by the checker, the report
// writers and the CLI so none of them has to import another.
//
// =============================================================================

package types

import "time"

// =============================================================================
// RECORD ERRORS
// =============================================================================

// RecordError holds the messages of one invalid line.
type RecordError struct {
	// LineNumber is the 1-based line number in the input file.
	LineNumber int

	// Line is the raw line text.
	Line string

	// Messages are the field messages in field order.
	Messages []string
}

// =============================================================================
// FILE RESULT
// =============================================================================

// FileStats contains statistics about one checked file.
type FileStats struct {
	// Batches is the number of batches handed to the checker.
	Batches int

	// LinesRead is the number of lines within the configured line range.
	LinesRead int

	// BlankLines is the number of lines without any data. They are skipped.
	BlankLines int

	// ValidRecords is the number of lines without errors.
	ValidRecords int

	// InvalidRecords is the number of lines with at least one error.
	InvalidRecords int

	// Duration is the time taken to check the file.
	Duration time.Duration
}

// FileResult represents the outcome of checking a single file.
type FileResult struct {
	// RunID identifies the check run the file belongs to.
	RunID string

	// FilePath is the path to the checked file.
	FilePath string

	// Layout is the name of the layout used.
	Layout string

	// Errors lists the invalid lines in line order.
	Errors []RecordError

	// Truncated is set when checking stopped at the error limit.
	Truncated bool

	// Err is set when the file could not be checked at all.
	Err error

	// ReportFile is the path of the written error report, if any.
	ReportFile string

	// Stats contains checking statistics.
	Stats FileStats
}

// Valid reports whether the file was checked and no line had errors.
func (r *FileResult) Valid() bool {
	return r.Err == nil && r.Stats.InvalidRecords == 0
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// Summary aggregates the results of one run.
type Summary struct {
	RunID          string
	StartedAt      time.Time
	Duration       time.Duration
	Files          int
	ValidFiles     int
	InvalidFiles   int
	FailedFiles    int
	LinesRead      int
	InvalidRecords int
}

// Summarize aggregates results.
func Summarize(runID string, startedAt time.Time, results []*FileResult) Summary {
	s := Summary{
		RunID:     runID,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Files:     len(results),
	}
	for _, r := range results {
		s.LinesRead += r.Stats.LinesRead
		s.InvalidRecords += r.Stats.InvalidRecords
		switch {
		case r.Err != nil:
			s.FailedFiles++
		case r.Valid():
			s.ValidFiles++
		default:
			s.InvalidFiles++
		}
	}
	return s
}
