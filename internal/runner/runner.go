// =============================================================================
// recordkit - Runner Module
// =============================================================================
//
// This module orchestrates a check run over many files.
//
// RUN PIPELINE:
//   1. Discover input files (or take the files given on the command line)
//   2. Match each file to a layout
//   3. Check the files concurrently, bounded by max_concurrency
//   4. Write an error report for every file that is not valid
//   5. Archive valid files when archive_on_success is set
//   6. Write the run summary and append it to the run history
//
// A file that cannot be checked at all (unreadable, no layout, disallowed
// extension) cancels the remaining files unless continue_on_error is set.
//
// =============================================================================

package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/recordkit/internal/checker"
	"github.com/ginjaninja78/recordkit/internal/config"
	"github.com/ginjaninja78/recordkit/internal/layout"
	"github.com/ginjaninja78/recordkit/internal/logging"
	"github.com/ginjaninja78/recordkit/internal/report"
	"github.com/ginjaninja78/recordkit/internal/types"
	"github.com/ginjaninja78/recordkit/pkg/utils"
)

// ErrNoMatchingLayout is set on results of files no layout matches.
var ErrNoMatchingLayout = errors.New("no matching layout found")

// =============================================================================
// RUNNER STRUCTURE
// =============================================================================

// Options are the per-run overrides of the main configuration.
type Options struct {
	// Files are checked instead of the input directory when not empty.
	Files []string

	// Layout forces every file to be checked against the named layout.
	Layout string

	// DryRun checks files without writing reports, summaries or archives.
	DryRun bool
}

// Result is the outcome of a run.
type Result struct {
	// Summary aggregates Files.
	Summary types.Summary

	// Files holds one result per input file, in input order.
	Files []*types.FileResult

	// SummaryFile is the path of the written run summary, if any.
	SummaryFile string

	// HistoryFile is the path of the run history, if it was appended.
	HistoryFile string
}

// Runner checks input files against a set of layouts.
type Runner struct {
	cfg     *config.MainConfig
	layouts map[string]*layout.Layout
	configs map[string]*config.LayoutConfig
	format  report.Format
	fm      *utils.FileManager
	logger  *slog.Logger
}

// New creates a Runner. A nil logger uses the slog default.
//
// PARAMETERS:
//   - cfg: The main configuration (directories, limits, report settings).
//   - layouts: The built layouts keyed by name.
//   - logger: The logger for run and file entries.
//
// RETURNS:
//   - The runner, or an error if the report format is not supported.
func New(cfg *config.MainConfig, layouts map[string]*layout.Layout, logger *slog.Logger) (*Runner, error) {
	f, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return nil, err
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	fm.ArchiveOnSuccess = cfg.ArchiveOnSuccess

	byName := make(map[string]*layout.Layout, len(layouts))
	configs := make(map[string]*config.LayoutConfig, len(layouts))
	for _, l := range layouts {
		byName[l.Name] = l
		configs[l.Name] = l.Config()
	}

	return &Runner{
		cfg:     cfg,
		layouts: byName,
		configs: configs,
		format:  f,
		fm:      fm,
		logger:  logging.WithFields(logger),
	}, nil
}

// BuildLayouts builds every layout configuration. All failures are
// reported together.
func BuildLayouts(cfgs map[string]*config.LayoutConfig, templatesDir string) (map[string]*layout.Layout, error) {
	layouts := make(map[string]*layout.Layout, len(cfgs))
	var errs []error
	for _, name := range config.SortedNames(cfgs) {
		l, err := layout.Build(cfgs[name], templatesDir)
		if err != nil {
			errs = append(errs, fmt.Errorf("layout %s: %w", name, err))
			continue
		}
		layouts[name] = l
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return layouts, nil
}

// findChecker returns the checker of the forced layout, or of the first
// layout in name order whose patterns match the file name.
func (r *Runner) findChecker(checkers map[string]*checker.Checker, path, forced string) (*checker.Checker, error) {
	name := forced
	if name == "" {
		cfg, ok := config.FindLayout(r.configs, filepath.Base(path))
		if !ok {
			return nil, ErrNoMatchingLayout
		}
		name = cfg.Name
	}
	c, ok := checkers[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return c, nil
}

// extensions returns the union of the layouts' extension allow-lists.
func (r *Runner) extensions() []string {
	var exts []string
	for _, name := range config.SortedNames(r.configs) {
		for _, ext := range r.layouts[name].AllowedExtensions {
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	return exts
}

// =============================================================================
// RUN FUNCTION
// =============================================================================

// Run checks the input files.
//
// RETURNS:
//   - The run result.
//   - An error if the run itself failed (directories, discovery, summary).
//     Files that fail are reported in the result instead.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	startedAt := time.Now()
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)

	if opts.Layout != "" {
		if _, ok := r.layouts[opts.Layout]; !ok {
			return nil, fmt.Errorf("unknown layout %q", opts.Layout)
		}
	}

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	files := opts.Files
	if len(files) == 0 {
		if !opts.DryRun {
			if err := r.fm.EnsureDirectories(); err != nil {
				return nil, err
			}
		}
		var err error
		files, err = r.fm.DiscoverInputFiles(r.extensions())
		if err != nil {
			return nil, err
		}
	} else if !opts.DryRun {
		if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	logger.Info("run started", "files", len(files), "dry_run", opts.DryRun)

	// =========================================================================
	// STEP 2: CHECK FILES CONCURRENTLY
	// =========================================================================

	checkers := make(map[string]*checker.Checker, len(r.layouts))
	for _, l := range r.layouts {
		checkers[l.Name] = checker.New(l, checker.Options{
			RunID:     runID,
			BatchSize: r.cfg.BatchSize,
			MaxErrors: r.cfg.MaxErrors,
		}, logger)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type indexed struct {
		i      int
		result *types.FileResult
	}
	results := make(chan indexed, len(files))
	sem := make(chan struct{}, max(r.cfg.MaxConcurrency, 1))
	var wg sync.WaitGroup

	for i, path := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := r.checkFile(ctx, checkers, path, opts, runID)
			if result.Err != nil && !r.cfg.ContinueOnError {
				cancel()
			}
			results <- indexed{i: i, result: result}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	run := &Result{Files: make([]*types.FileResult, len(files))}
	for ir := range results {
		run.Files[ir.i] = ir.result
	}

	// =========================================================================
	// STEP 3: SUMMARY
	// =========================================================================

	run.Summary = types.Summarize(runID, startedAt, run.Files)
	logger.Info("run finished",
		"files", run.Summary.Files,
		"valid", run.Summary.ValidFiles,
		"invalid", run.Summary.InvalidFiles,
		"failed", run.Summary.FailedFiles,
		"duration", run.Summary.Duration)

	if opts.DryRun {
		return run, nil
	}

	summaryName := utils.GenerateOutputFileName("summary_{timestamp}", nil)
	summaryPath := filepath.Join(r.cfg.OutputDir, summaryName+".txt")
	if err := writeSummaryFile(summaryPath, run); err != nil {
		return run, err
	}
	run.SummaryFile = summaryPath

	historyPath, err := report.AppendHistory(r.cfg.OutputDir, run.Summary)
	if err != nil {
		return run, err
	}
	run.HistoryFile = historyPath

	return run, nil
}

// checkFile checks one file, then writes its report or archives it.
func (r *Runner) checkFile(ctx context.Context, checkers map[string]*checker.Checker, path string, opts Options, runID string) *types.FileResult {
	logger := r.logger.With("run_id", runID, "file", filepath.Base(path))

	c, err := r.findChecker(checkers, path, opts.Layout)
	if err != nil {
		logger.Warn("file skipped", "error", err)
		return &types.FileResult{RunID: runID, FilePath: path, Err: err}
	}
	l := c.Layout()

	result := c.CheckFile(ctx, path)
	if opts.DryRun {
		return result
	}

	if result.Valid() {
		if r.cfg.ArchiveOnSuccess {
			archived, err := r.fm.ArchiveInputFile(path)
			if err != nil {
				logger.Error("archive failed", "error", err)
			} else {
				logger.Debug("file archived", "archive", archived)
			}
		}
		return result
	}

	name := utils.GenerateOutputFileName(r.cfg.ReportNameFormat, map[string]string{
		"layout": l.Name,
		"file":   utils.TrimExtension(path),
	})
	reportPath, err := report.WriteFile(r.cfg.OutputDir, name, r.format, result)
	if err != nil {
		logger.Error("report failed", "error", err)
		return result
	}
	result.ReportFile = reportPath
	return result
}

func writeSummaryFile(path string, run *Result) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	if err := report.WriteSummary(out, run.Summary, run.Files); err != nil {
		out.Close()
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return out.Close()
}
