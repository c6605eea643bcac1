// =============================================================================
// recordkit - Layout Module
// =============================================================================
//
// A layout turns a LayoutConfig (and its optional XLSX field template) into
// the list of typed fields used to check each line of a text file.
//
// FIELD TYPES:
//   string, int, short, long, double, decimal, datetime, date, timespan,
//   boolean, email, ip
//
// BOUNDS:
//   The min and max settings of a field are parsed with the field type when
//   the layout is built, so a bad bound fails at startup instead of on the
//   first line.
//
// =============================================================================

package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"

	"github.com/ginjaninja78/recordkit/internal/config"
	"github.com/ginjaninja78/recordkit/pkg/format"
	"github.com/ginjaninja78/recordkit/pkg/messages"
	"github.com/ginjaninja78/recordkit/pkg/textfile"
	"github.com/ginjaninja78/recordkit/pkg/validation"
)

// ErrUnknownFieldType is returned by Build for a field type it does not know.
var ErrUnknownFieldType = errors.New("unknown field type")

// ErrNoFields is returned by Build for a layout without fields.
var ErrNoFields = errors.New(messages.Format(messages.ListNotEmpty, "Fields"))

// =============================================================================
// FIELD TYPES
// =============================================================================

// FieldType selects the getter used to read a field.
type FieldType string

const (
	TypeString   FieldType = "string"
	TypeInt      FieldType = "int"
	TypeShort    FieldType = "short"
	TypeLong     FieldType = "long"
	TypeDouble   FieldType = "double"
	TypeDecimal  FieldType = "decimal"
	TypeDateTime FieldType = "datetime"
	TypeDate     FieldType = "date"
	TypeTimeSpan FieldType = "timespan"
	TypeBoolean  FieldType = "boolean"
	TypeEmail    FieldType = "email"
	TypeIP       FieldType = "ip"
)

// ParseFieldType normalizes a type name. Common aliases such as "integer",
// "number" or "bool" are accepted.
func ParseFieldType(name string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "string", "text", "alphanumeric":
		return TypeString, nil
	case "int", "integer", "numeric":
		return TypeInt, nil
	case "short":
		return TypeShort, nil
	case "long":
		return TypeLong, nil
	case "double", "float", "number":
		return TypeDouble, nil
	case "decimal", "money":
		return TypeDecimal, nil
	case "datetime", "timestamp":
		return TypeDateTime, nil
	case "date":
		return TypeDate, nil
	case "timespan", "time", "duration":
		return TypeTimeSpan, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "email":
		return TypeEmail, nil
	case "ip", "ip_address":
		return TypeIP, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFieldType, name)
}

// =============================================================================
// LAYOUT STRUCTURE
// =============================================================================

// Field is one positional field of a layout.
type Field struct {
	// Name is used in messages.
	Name string

	// Position is the 1-based field position.
	Position int

	// Type selects the getter.
	Type FieldType

	// Optional allows a blank value.
	Optional bool

	// Rules limit the raw value before it is parsed.
	Rules validation.StringRules

	// Layout is the Go time layout for date and time fields.
	Layout string

	// Digits is the number of decimals shown in range messages.
	Digits int

	bounds bounds
}

// bounds holds the parsed min and max of a field. Only the range matching
// the field type is set.
type bounds struct {
	ints     validation.Range[int64]
	floats   validation.Range[float64]
	decimals validation.Range[decimal.Decimal]
	dates    validation.Range[time.Time]
	spans    validation.Range[time.Duration]
}

// Layout is a built layout ready to check lines.
type Layout struct {
	// Name identifies the layout.
	Name string

	// Description is a human-readable summary.
	Description string

	// Delimiter separates fields.
	Delimiter rune

	// Fields are ordered by declaration.
	Fields []Field

	// AllowedExtensions restricts input file extensions.
	AllowedExtensions []string

	config     *config.LayoutConfig
	encoding   encoding.Encoding
	location   *time.Location
	dateFormat format.DateFormat
}

// =============================================================================
// BUILD
// =============================================================================

// Build resolves a layout configuration. Fields from the XLSX template (read
// from templatesDir) come first, followed by the inline fields.
//
// PARAMETERS:
//   - cfg: The layout configuration.
//   - templatesDir: The directory holding XLSX field templates.
//
// RETURNS:
//   - The built layout.
//   - An error if the template cannot be read or a setting is invalid.
func Build(cfg *config.LayoutConfig, templatesDir string) (*Layout, error) {
	ts := cfg.TextSettings

	enc, err := textfile.Encoding(ts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", cfg.Name, err)
	}
	loc, err := time.LoadLocation(ts.Location)
	if err != nil {
		return nil, fmt.Errorf("layout %s: failed to load location: %w", cfg.Name, err)
	}
	dateFormat, err := format.ParseDateFormat(ts.DateFormat)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", cfg.Name, err)
	}

	var fieldConfigs []config.FieldConfig
	if cfg.Template != "" {
		fieldConfigs, err = ParseTemplate(filepath.Join(templatesDir, cfg.Template))
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", cfg.Name, err)
		}
	}
	fieldConfigs = append(fieldConfigs, cfg.Fields...)
	if len(fieldConfigs) == 0 {
		return nil, fmt.Errorf("layout %s: %w", cfg.Name, ErrNoFields)
	}

	l := &Layout{
		Name:              cfg.Name,
		Description:       cfg.Description,
		Delimiter:         cfg.Delimiter(),
		AllowedExtensions: cfg.AllowedExtensions,
		config:            cfg,
		encoding:          enc,
		location:          loc,
		dateFormat:        dateFormat,
	}

	position := 0
	for i, fc := range fieldConfigs {
		if fc.Position > 0 {
			position = fc.Position
		} else {
			position++
		}
		f, err := l.buildField(fc, position)
		if err != nil {
			return nil, fmt.Errorf("layout %s: field %d (%s): %w", cfg.Name, i+1, fc.Name, err)
		}
		l.Fields = append(l.Fields, f)
	}

	return l, nil
}

// buildField validates one field configuration and parses its bounds.
func (l *Layout) buildField(fc config.FieldConfig, position int) (Field, error) {
	if strings.TrimSpace(fc.Name) == "" {
		return Field{}, errors.New(messages.Format(messages.Required, "Name"))
	}

	fieldType, err := ParseFieldType(fc.Type)
	if err != nil {
		return Field{}, err
	}
	if fc.Pattern != "" {
		if _, err := regexp.Compile(fc.Pattern); err != nil {
			return Field{}, fmt.Errorf("bad pattern: %w", err)
		}
	}

	f := Field{
		Name:     fc.Name,
		Position: position,
		Type:     fieldType,
		Optional: fc.Optional,
		Rules: validation.StringRules{
			MinLength:   fc.MinLength,
			MaxLength:   fc.MaxLength,
			ExactLength: fc.ExactLength,
			Pattern:     fc.Pattern,
		},
		Layout: fc.Layout,
		Digits: fc.Digits,
	}
	if f.Digits == 0 && (fieldType == TypeDouble || fieldType == TypeDecimal) {
		f.Digits = validation.DefaultDecimalDigits
	}

	if err := l.parseBound(&f, fc.Min, true); err != nil {
		return Field{}, fmt.Errorf("bad min %q: %w", fc.Min, err)
	}
	if err := l.parseBound(&f, fc.Max, false); err != nil {
		return Field{}, fmt.Errorf("bad max %q: %w", fc.Max, err)
	}
	return f, nil
}

// parseBound parses a min (isMin) or max setting with the field type.
func (l *Layout) parseBound(f *Field, raw string, isMin bool) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch f.Type {
	case TypeInt, TypeShort, TypeLong:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		setBound(&f.bounds.ints, n, isMin)
	case TypeDouble:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		setBound(&f.bounds.floats, n, isMin)
	case TypeDecimal:
		n, err := decimal.NewFromString(raw)
		if err != nil {
			return err
		}
		setBound(&f.bounds.decimals, n, isMin)
	case TypeDateTime, TypeDate:
		var layouts []string
		if f.Layout != "" {
			layouts = []string{f.Layout}
		}
		t, ok := textfile.ParseDateTime(raw, l.location, layouts...)
		if !ok {
			return errors.New("not a date")
		}
		setBound(&f.bounds.dates, t, isMin)
	case TypeTimeSpan:
		d, ok := textfile.ParseTimeSpan(raw)
		if !ok {
			return errors.New("not a time span")
		}
		setBound(&f.bounds.spans, d, isMin)
	default:
		return fmt.Errorf("%s fields have no range", f.Type)
	}
	return nil
}

func setBound[T any](r *validation.Range[T], v T, isMin bool) {
	if isMin {
		r.Min = &v
	} else {
		r.Max = &v
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Config returns the configuration the layout was built from.
func (l *Layout) Config() *config.LayoutConfig {
	return l.config
}

// Matches reports whether fileName matches the layout's file patterns.
func (l *Layout) Matches(fileName string) bool {
	return l.config.Matches(fileName)
}

// TextOptions returns the line-reading options of the layout.
func (l *Layout) TextOptions() []textfile.Option {
	ts := l.config.TextSettings
	return []textfile.Option{
		textfile.From(ts.LineFrom),
		textfile.To(ts.LineTo),
		textfile.WithEncoding(l.encoding),
		textfile.WithFieldSeparator(l.Delimiter),
	}
}

// RecordOptions returns the options applied to every record.
func (l *Layout) RecordOptions() []textfile.RecordOption {
	ts := l.config.TextSettings
	opts := []textfile.RecordOption{textfile.WithLocation(l.location)}
	if ts.BooleanTrue != "" || ts.BooleanFalse != "" {
		opts = append(opts, textfile.WithBooleanTokens(ts.BooleanTrue, ts.BooleanFalse))
	}
	if ts.IncludePosition {
		opts = append(opts, textfile.WithPositionInErrors())
	}
	return opts
}

// DateOptions returns the date rendering options for a field type.
func (l *Layout) DateOptions(t FieldType) validation.DateOptions {
	return validation.DateOptions{
		IncludeTime: t != TypeDate,
		Format:      l.dateFormat,
	}
}
