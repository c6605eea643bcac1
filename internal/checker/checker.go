// =============================================================================
// recordkit - Checker Module
// =============================================================================
//
// This module checks a single text file against a layout.
//
// CHECK PIPELINE:
//   1. Check the file extension against the layout's allow-list
//   2. Stream the configured line range through the line batcher
//   3. Split each line into a record and apply the layout
//   4. Collect the messages of invalid lines
//   5. Cancel the scan once the error limit is reached
//
// CONCURRENCY:
//   A Checker holds no per-file state, so one Checker may check several
//   files from different goroutines. Each file is scanned sequentially.
//
// =============================================================================

package checker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/recordkit/internal/layout"
	"github.com/ginjaninja78/recordkit/internal/logging"
	"github.com/ginjaninja78/recordkit/internal/types"
	"github.com/ginjaninja78/recordkit/pkg/batch"
	"github.com/ginjaninja78/recordkit/pkg/file"
	"github.com/ginjaninja78/recordkit/pkg/textfile"
	"github.com/ginjaninja78/recordkit/pkg/validation"
)

// DefaultBatchSize is used when Options.BatchSize is not positive.
const DefaultBatchSize = 500

// =============================================================================
// CHECKER STRUCTURE
// =============================================================================

// Options tunes a Checker.
type Options struct {
	// RunID tags results and log entries. A random UUID is used when empty.
	RunID string

	// BatchSize is the number of lines handed over at a time.
	BatchSize int

	// MaxErrors stops a file's scan after this many invalid records.
	// Zero means no limit.
	MaxErrors int
}

// Checker checks files against one layout.
type Checker struct {
	layout *layout.Layout
	opts   Options
	logger *slog.Logger
}

// New creates a Checker. A nil logger uses the slog default.
//
// PARAMETERS:
//   - l: The layout every file is checked against.
//   - opts: Batch size, error limit and run ID.
//   - logger: The logger for progress entries.
func New(l *layout.Layout, opts Options, logger *slog.Logger) *Checker {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Checker{
		layout: l,
		opts:   opts,
		logger: logging.WithFields(logger, "run_id", opts.RunID, "layout", l.Name),
	}
}

// RunID returns the run ID stamped on every result.
func (c *Checker) RunID() string {
	return c.opts.RunID
}

// Layout returns the layout files are checked against.
func (c *Checker) Layout() *layout.Layout {
	return c.layout
}

// =============================================================================
// CHECK FUNCTIONS
// =============================================================================

// CheckFile reads the file at path and checks it.
func (c *Checker) CheckFile(ctx context.Context, path string) *types.FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		result := c.newResult(path)
		result.Err = fmt.Errorf("failed to read file: %w", err)
		return result
	}

	result := c.Check(ctx, file.New(filepath.Base(path), content))
	result.FilePath = path
	return result
}

// Check checks an in-memory file.
//
// RETURNS:
//   - The file result. Result.Err is set when the file has a disallowed
//     extension, cannot be decoded or ctx is cancelled; invalid lines are
//     reported in Result.Errors instead.
func (c *Checker) Check(ctx context.Context, f *file.File) *types.FileResult {
	startTime := time.Now()
	result := c.newResult(f.Name)
	logger := c.logger.With("file", f.Name)

	// =========================================================================
	// STEP 1: FILE EXTENSION
	// =========================================================================

	rules := validation.FileRules{Extensions: c.layout.AllowedExtensions}
	if outcome := validation.ValidateFile(f, true, rules); !outcome.OK {
		result.Err = outcome.Err()
		logger.Warn("file rejected", "error", result.Err)
		return result
	}

	// =========================================================================
	// STEP 2: BATCHED SCAN
	// =========================================================================

	opts := c.layout.TextOptions()
	lineNumber := max(c.layout.Config().TextSettings.LineFrom, 1)

	err := textfile.ProcessLines(f.Content, c.opts.BatchSize, func(args *batch.Args[string]) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		invalidBefore := result.Stats.InvalidRecords
		for _, line := range args.Items {
			c.checkLine(result, lineNumber, line)
			lineNumber++
		}

		result.Stats.Batches++
		logger.Debug("batch checked",
			"batch", args.Number,
			"records", len(args.Items),
			"errors", result.Stats.InvalidRecords-invalidBefore,
		)

		if c.opts.MaxErrors > 0 && result.Stats.InvalidRecords >= c.opts.MaxErrors {
			result.Truncated = true
			args.Cancel = true
		}
		return nil
	}, opts...)

	result.Stats.Duration = time.Since(startTime)

	if err != nil {
		result.Err = fmt.Errorf("failed to check %s: %w", f.Name, err)
		logger.Error("check failed", "error", err)
		return result
	}

	if result.Truncated {
		logger.Warn("error limit reached", "max_errors", c.opts.MaxErrors)
	}
	logger.Info("file checked",
		"lines", result.Stats.LinesRead,
		"valid", result.Stats.ValidRecords,
		"invalid", result.Stats.InvalidRecords,
		"duration", result.Stats.Duration,
	)
	return result
}

// checkLine applies the layout to one line and records the outcome.
func (c *Checker) checkLine(result *types.FileResult, lineNumber int, line string) {
	result.Stats.LinesRead++
	if c.opts.MaxErrors > 0 && result.Stats.InvalidRecords >= c.opts.MaxErrors {
		return
	}

	rec := c.layout.NewRecord(lineNumber, line)
	if !rec.HasAnyData() {
		result.Stats.BlankLines++
		return
	}

	c.layout.Apply(rec)
	if rec.IsValid() {
		result.Stats.ValidRecords++
		return
	}

	result.Stats.InvalidRecords++
	result.Errors = append(result.Errors, types.RecordError{
		LineNumber: lineNumber,
		Line:       line,
		Messages:   rec.Errors(),
	})
}

func (c *Checker) newResult(path string) *types.FileResult {
	return &types.FileResult{
		RunID:    c.opts.RunID,
		FilePath: path,
		Layout:   c.layout.Name,
	}
}
