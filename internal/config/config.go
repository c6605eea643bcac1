// =============================================================================
// recordkit - Configuration Module
// =============================================================================
//
// This module loads the main application configuration and the layout files
// that describe each kind of delimited text file.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml or config.toml): Global application settings
//   2. Layout Configs (layouts/*.yaml, *.yml, *.toml): One file per layout
//
// PRECEDENCE (lowest to highest):
//   1. Built-in defaults
//   2. Main config file
//   3. Environment variables prefixed RECORDKIT_ (a .env file is loaded by
//      the CLI before the configuration is read)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RECORDKIT_"

// ErrNoLayouts is returned by LoadLayoutConfigs when the directory holds no
// layout file.
var ErrNoLayouts = errors.New("no layout configurations found")

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for text files to check.
	// Default: "./input"
	InputDir string `yaml:"input_dir" toml:"input_dir" env:"INPUT_DIR"`

	// OutputDir receives the error reports and the run summary.
	// Default: "./output"
	OutputDir string `yaml:"output_dir" toml:"output_dir" env:"OUTPUT_DIR"`

	// InputArchiveDir receives input files that passed without errors when
	// ArchiveOnSuccess is set.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" toml:"input_archive_dir" env:"INPUT_ARCHIVE_DIR"`

	// LayoutsDir holds one configuration file per layout.
	// Default: "./layouts"
	LayoutsDir string `yaml:"layouts_dir" toml:"layouts_dir" env:"LAYOUTS_DIR"`

	// TemplatesDir holds XLSX field templates referenced by layouts.
	// Default: "./templates"
	TemplatesDir string `yaml:"templates_dir" toml:"templates_dir" env:"TEMPLATES_DIR"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" toml:"log_level" env:"LOG_LEVEL"`

	// LogFormat selects the log handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format" toml:"log_format" env:"LOG_FORMAT"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// ReportFormat is the format of the per-file error report.
	// Valid values: "text", "csv", "xml", "xlsx"
	// Default: "text"
	ReportFormat string `yaml:"report_format" toml:"report_format" env:"REPORT_FORMAT"`

	// ReportNameFormat defines the report file name without extension.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {layout}    - Layout name
	//   {file}      - Input file name without extension
	//
	// Default: "{file}_{timestamp}"
	ReportNameFormat string `yaml:"report_name_format" toml:"report_name_format" env:"REPORT_NAME_FORMAT"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// BatchSize is the number of lines handed to the checker at a time.
	// Default: 500
	BatchSize int `yaml:"batch_size" toml:"batch_size" env:"BATCH_SIZE"`

	// MaxErrors stops checking a file after this many invalid records.
	// Zero means no limit.
	MaxErrors int `yaml:"max_errors" toml:"max_errors" env:"MAX_ERRORS"`

	// MaxConcurrency is the maximum number of files checked concurrently.
	// Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency" toml:"max_concurrency" env:"MAX_CONCURRENCY"`

	// ContinueOnError keeps checking other files after one fails to load.
	// Default: false
	ContinueOnError bool `yaml:"continue_on_error" toml:"continue_on_error" env:"CONTINUE_ON_ERROR"`

	// ArchiveOnSuccess moves files without invalid records to InputArchiveDir.
	// Default: false
	ArchiveOnSuccess bool `yaml:"archive_on_success" toml:"archive_on_success" env:"ARCHIVE_ON_SUCCESS"`
}

// =============================================================================
// LAYOUT CONFIGURATION STRUCTURE
// =============================================================================

// LayoutConfig describes one kind of delimited text file.
type LayoutConfig struct {
	// Name identifies the layout in logs, reports and the --layout flag.
	// Default: the configuration file name without extension.
	Name string `yaml:"name" toml:"name"`

	// Description is a human-readable summary shown by the validate command.
	Description string `yaml:"description" toml:"description"`

	// FileMatchingPatterns is a list of glob patterns matched against input
	// file names, case-insensitively.
	// Examples:
	//   - "customers_*.csv"
	//   - "*_payments.txt"
	FileMatchingPatterns []string `yaml:"file_matching_patterns" toml:"file_matching_patterns"`

	// AllowedExtensions restricts the input file extensions.
	// Default: [".csv", ".txt"]
	AllowedExtensions []string `yaml:"allowed_extensions" toml:"allowed_extensions"`

	// TextSettings controls how lines are read and split.
	TextSettings TextSettings `yaml:"text_settings" toml:"text_settings"`

	// Template is the XLSX field template in the templates directory. When
	// set, its rows are read before Fields, and Fields are appended.
	Template string `yaml:"template" toml:"template"`

	// Fields lists the fields of a line by position.
	Fields []FieldConfig `yaml:"fields" toml:"fields"`

	// Source is the file the layout was loaded from.
	Source string `yaml:"-" toml:"-"`
}

// TextSettings controls line reading and splitting.
type TextSettings struct {
	// Delimiter separates fields. "\t" and "tab" mean a tab.
	// Default: ","
	Delimiter string `yaml:"delimiter" toml:"delimiter"`

	// Encoding is the IANA name of the file encoding.
	// Common values: "UTF-8", "ISO-8859-1", "windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding" toml:"encoding"`

	// HeaderLines is the number of leading lines that are not records.
	// Default: 0
	HeaderLines int `yaml:"header_lines" toml:"header_lines"`

	// LineFrom is the first line to check (1-based). It defaults to the
	// line after the header.
	LineFrom int `yaml:"line_from" toml:"line_from"`

	// LineTo is the last line to check (1-based). Zero reads to the end.
	LineTo int `yaml:"line_to" toml:"line_to"`

	// IncludePosition prefixes each message with "[Position P] ".
	IncludePosition bool `yaml:"include_position" toml:"include_position"`

	// DateFormat renders dates in messages.
	// Valid values: "mdy", "dmy", "ymd"
	// Default: "mdy"
	DateFormat string `yaml:"date_format" toml:"date_format"`

	// Location is the IANA time zone used for dates without an offset.
	// Default: "UTC"
	Location string `yaml:"location" toml:"location"`

	// BooleanTrue and BooleanFalse are accepted besides true and false.
	// Default: "Yes" and "No"
	BooleanTrue  string `yaml:"boolean_true" toml:"boolean_true"`
	BooleanFalse string `yaml:"boolean_false" toml:"boolean_false"`
}

// FieldConfig describes one field of a line.
type FieldConfig struct {
	// Name is used in messages, e.g. "Name is required."
	Name string `yaml:"name" toml:"name"`

	// Position is the 1-based field position. Zero means the position
	// after the previous field.
	Position int `yaml:"position" toml:"position"`

	// Type selects the getter.
	// Valid values: "string", "int", "short", "long", "double", "decimal",
	// "datetime", "date", "timespan", "boolean", "email", "ip"
	// Default: "string"
	Type string `yaml:"type" toml:"type"`

	// Optional allows a blank value.
	Optional bool `yaml:"optional" toml:"optional"`

	// MinLength, MaxLength and ExactLength limit the raw value length.
	MinLength   int `yaml:"min_length" toml:"min_length"`
	MaxLength   int `yaml:"max_length" toml:"max_length"`
	ExactLength int `yaml:"exact_length" toml:"exact_length"`

	// Pattern is a regular expression the raw value must match.
	Pattern string `yaml:"pattern" toml:"pattern"`

	// Layout is the Go time layout for datetime, date and timespan fields.
	Layout string `yaml:"layout" toml:"layout"`

	// Min and Max bound numeric, date and timespan values. They are parsed
	// with the field type.
	Min string `yaml:"min" toml:"min"`
	Max string `yaml:"max" toml:"max"`

	// Digits is the number of decimals shown in range messages.
	// Default: 2 for double and decimal fields
	Digits int `yaml:"digits" toml:"digits"`
}

// =============================================================================
// MAIN CONFIGURATION LOADING
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML or TOML file,
// applies environment overrides and defaults, then validates it.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file. A missing file
//     is not an error; defaults and the environment are used instead.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be parsed or the result is invalid.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var cfg MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := decode(configPath, data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	applyMainConfigDefaults(&cfg)

	if err := validateMainConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// decode unmarshals data as TOML when path ends in .toml and as YAML
// otherwise.
func decode(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// applyMainConfigDefaults sets default values for any unset option.
func applyMainConfigDefaults(cfg *MainConfig) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.InputArchiveDir == "" {
		cfg.InputArchiveDir = "./input_archive"
	}
	if cfg.LayoutsDir == "" {
		cfg.LayoutsDir = "./layouts"
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = "./templates"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "text"
	}
	if cfg.ReportNameFormat == "" {
		cfg.ReportNameFormat = "{file}_{timestamp}"
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 500
	}
	if cfg.MaxConcurrency == 0 {
		cfg.MaxConcurrency = 4
	}
}

// validateMainConfig checks value ranges and enumerations.
func validateMainConfig(cfg *MainConfig) error {
	var errs []error

	switch strings.ToLower(cfg.ReportFormat) {
	case "text", "csv", "xml", "xlsx":
	default:
		errs = append(errs, fmt.Errorf("report_format %q must be text, csv, xml or xlsx", cfg.ReportFormat))
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be text or json", cfg.LogFormat))
	}
	if cfg.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("batch_size must be at least 1, got %d", cfg.BatchSize))
	}
	if cfg.MaxConcurrency < 1 {
		errs = append(errs, fmt.Errorf("max_concurrency must be at least 1, got %d", cfg.MaxConcurrency))
	}
	if cfg.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("max_errors must not be negative, got %d", cfg.MaxErrors))
	}

	return errors.Join(errs...)
}

// =============================================================================
// LAYOUT CONFIGURATION LOADING
// =============================================================================

// LoadLayoutConfigs loads all layout configurations from a directory.
//
// PARAMETERS:
//   - layoutsDir: The directory containing *.yaml, *.yml and *.toml files.
//
// RETURNS:
//   - A map of layout configurations keyed by layout name.
//   - ErrNoLayouts when the directory holds no layout file.
//   - An error if any file cannot be parsed or two layouts share a name.
func LoadLayoutConfigs(layoutsDir string) (map[string]*LayoutConfig, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml", "*.toml"} {
		matches, err := filepath.Glob(filepath.Join(layoutsDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to list layout files: %w", err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLayouts, layoutsDir)
	}

	layouts := make(map[string]*LayoutConfig, len(files))
	for _, file := range files {
		layout, err := LoadLayoutConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
		if prev, ok := layouts[layout.Name]; ok {
			return nil, fmt.Errorf("layout %q is defined in both %s and %s", layout.Name, prev.Source, file)
		}
		layouts[layout.Name] = layout
	}
	return layouts, nil
}

// LoadLayoutConfig loads a single layout file and applies its defaults.
func LoadLayoutConfig(path string) (*LayoutConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var layout LayoutConfig
	if err := decode(path, data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse file: %w", err)
	}

	layout.Source = path
	if layout.Name == "" {
		layout.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	applyLayoutConfigDefaults(&layout)

	if err := validateLayoutConfig(&layout); err != nil {
		return nil, err
	}
	return &layout, nil
}

// applyLayoutConfigDefaults sets default values for a layout.
func applyLayoutConfigDefaults(layout *LayoutConfig) {
	ts := &layout.TextSettings
	switch strings.ToLower(ts.Delimiter) {
	case "":
		ts.Delimiter = ","
	case `\t`, "tab":
		ts.Delimiter = "\t"
	}
	if ts.Encoding == "" {
		ts.Encoding = "UTF-8"
	}
	if ts.LineFrom == 0 && ts.HeaderLines > 0 {
		ts.LineFrom = ts.HeaderLines + 1
	}
	if ts.DateFormat == "" {
		ts.DateFormat = "mdy"
	}
	if ts.Location == "" {
		ts.Location = "UTC"
	}
	if ts.BooleanTrue == "" {
		ts.BooleanTrue = "Yes"
	}
	if ts.BooleanFalse == "" {
		ts.BooleanFalse = "No"
	}

	if len(layout.AllowedExtensions) == 0 {
		layout.AllowedExtensions = []string{".csv", ".txt"}
	}

	for i := range layout.Fields {
		if layout.Fields[i].Type == "" {
			layout.Fields[i].Type = "string"
		}
	}
}

// validateLayoutConfig checks the parts of a layout that do not depend on
// other files. Field types are checked when the layout is built.
func validateLayoutConfig(layout *LayoutConfig) error {
	ts := layout.TextSettings
	if len([]rune(ts.Delimiter)) != 1 {
		return fmt.Errorf("layout %s: delimiter %q must be a single character", layout.Name, ts.Delimiter)
	}
	if ts.LineTo > 0 && ts.LineFrom > ts.LineTo {
		return fmt.Errorf("layout %s: line_from %d is after line_to %d", layout.Name, ts.LineFrom, ts.LineTo)
	}
	for _, pattern := range layout.FileMatchingPatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("layout %s: bad file pattern %q: %w", layout.Name, pattern, err)
		}
	}
	return nil
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

// Delimiter returns the field delimiter as a rune, or a comma when unset.
func (l *LayoutConfig) Delimiter() rune {
	for _, r := range l.TextSettings.Delimiter {
		return r
	}
	return ','
}

// Matches reports whether fileName matches any of the layout's patterns.
func (l *LayoutConfig) Matches(fileName string) bool {
	name := strings.ToLower(filepath.Base(fileName))
	for _, pattern := range l.FileMatchingPatterns {
		if ok, _ := filepath.Match(strings.ToLower(pattern), name); ok {
			return true
		}
	}
	return false
}

// FindLayout returns the layout whose patterns match fileName. Layouts are
// tried in name order so the result does not depend on map iteration.
func FindLayout(layouts map[string]*LayoutConfig, fileName string) (*LayoutConfig, bool) {
	for _, name := range SortedNames(layouts) {
		if layouts[name].Matches(fileName) {
			return layouts[name], true
		}
	}
	return nil, false
}

// SortedNames returns the layout names in ascending order.
func SortedNames(layouts map[string]*LayoutConfig) []string {
	return slices.Sorted(maps.Keys(layouts))
}
