package textfile

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/recordkit/pkg/messages"
	"github.com/ginjaninja78/recordkit/pkg/validation"
)

// =============================================================================
// FIELD OPTIONS
// =============================================================================

type fieldOptions struct {
	required  bool
	rules     validation.StringRules
	keepBlank bool
	layout    string
}

// FieldOption configures a single getter call. Fields are required unless
// Optional is given.
type FieldOption func(*fieldOptions)

// Optional allows a blank value.
func Optional() FieldOption {
	return func(o *fieldOptions) { o.required = false }
}

// MaxLength limits the raw value length.
func MaxLength(n int) FieldOption {
	return func(o *fieldOptions) { o.rules.MaxLength = n }
}

// MinLength sets the minimum raw value length.
func MinLength(n int) FieldOption {
	return func(o *fieldOptions) { o.rules.MinLength = n }
}

// ExactLength requires the raw value to have exactly n characters.
func ExactLength(n int) FieldOption {
	return func(o *fieldOptions) { o.rules.ExactLength = n }
}

// Pattern requires the raw value to match a regular expression.
func Pattern(expr string) FieldOption {
	return func(o *fieldOptions) { o.rules.Pattern = expr }
}

// KeepBlank makes GetString return blank values as they are instead of nil.
func KeepBlank() FieldOption {
	return func(o *fieldOptions) { o.keepBlank = true }
}

// Layout sets the Go time layout for GetDateTime and GetTimeSpan.
func Layout(layout string) FieldOption {
	return func(o *fieldOptions) { o.layout = layout }
}

func newFieldOptions(opts []FieldOption) fieldOptions {
	o := fieldOptions{required: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolve returns the raw value at position after the position and string
// checks. ok is false when either check failed.
func (r *Record) resolve(position int, name string, o fieldOptions) (raw string, ok bool) {
	raw, ok = r.Value(position)
	if !ok {
		r.addInvalidPosition(position)
		return "", false
	}
	if !r.Check(position, validation.ValidateString(raw, name, o.required, o.rules)) {
		return "", false
	}
	return raw, true
}

// text returns the trimmed value to parse, or ok=false when the field failed
// a check or is blank.
func (r *Record) text(position int, name string, opts []FieldOption) (fieldOptions, string, bool) {
	o := newFieldOptions(opts)
	raw, ok := r.resolve(position, name, o)
	if !ok {
		return o, "", false
	}
	s := strings.TrimSpace(raw)
	return o, s, s != ""
}

// =============================================================================
// TYPED GETTERS
// =============================================================================

// GetString returns the raw value at position. A blank optional value is
// returned as nil unless KeepBlank is given.
func (r *Record) GetString(position int, name string, opts ...FieldOption) *string {
	o := newFieldOptions(opts)
	raw, ok := r.resolve(position, name, o)
	if !ok {
		return nil
	}
	if !o.keepBlank && strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

// GetInt parses a 32-bit integer.
func (r *Record) GetInt(position int, name string, opts ...FieldOption) *int {
	_, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		r.AddError(position, messages.Format(messages.IntegerInvalid, name))
		return nil
	}
	v := int(n)
	return &v
}

// GetShort parses a 16-bit integer.
func (r *Record) GetShort(position int, name string, opts ...FieldOption) *int16 {
	_, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		r.AddError(position, messages.Format(messages.ShortInvalid, name))
		return nil
	}
	v := int16(n)
	return &v
}

// GetLong parses a 64-bit integer.
func (r *Record) GetLong(position int, name string, opts ...FieldOption) *int64 {
	_, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		r.AddError(position, messages.Format(messages.LongInvalid, name))
		return nil
	}
	return &n
}

// GetDouble parses a 64-bit floating point number.
func (r *Record) GetDouble(position int, name string, opts ...FieldOption) *float64 {
	_, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.AddError(position, messages.Format(messages.NumberInvalid, name))
		return nil
	}
	return &f
}

// GetDecimal parses an arbitrary-precision decimal.
func (r *Record) GetDecimal(position int, name string, opts ...FieldOption) *decimal.Decimal {
	_, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		r.AddError(position, messages.Format(messages.NumberInvalid, name))
		return nil
	}
	return &d
}

// GetDateTime parses a date or date/time with the Layout option, or with the
// record's date layouts in order. Values without an offset are read in the
// record's location.
func (r *Record) GetDateTime(position int, name string, opts ...FieldOption) *time.Time {
	o, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}

	layouts := r.dateLayouts
	if o.layout != "" {
		layouts = []string{o.layout}
	}
	t, ok := ParseDateTime(s, r.location, layouts...)
	if !ok {
		r.AddError(position, messages.Format(messages.DateTimeInvalid, name))
		return nil
	}
	return &t
}

// GetTimeSpan parses a duration. With the Layout option the value is read as
// a time of day and converted to the duration since midnight. Otherwise
// "[-][d.]hh:mm[:ss[.fff]]", a whole number of days or Go duration syntax
// ("1h30m") is accepted.
func (r *Record) GetTimeSpan(position int, name string, opts ...FieldOption) *time.Duration {
	o, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}

	var (
		d      time.Duration
		parsed bool
	)
	if o.layout != "" {
		if t, err := time.Parse(o.layout, s); err == nil {
			d = time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second +
				time.Duration(t.Nanosecond())
			parsed = true
		}
	} else {
		d, parsed = ParseTimeSpan(s)
	}

	if !parsed {
		r.AddError(position, messages.Format(messages.TimeInvalid, name))
		return nil
	}
	return &d
}

// GetBoolean parses true or false (any case) first, then the record's yes
// and no tokens (any case).
func (r *Record) GetBoolean(position int, name string, opts ...FieldOption) *bool {
	_, s, ok := r.text(position, name, opts)
	if !ok {
		return nil
	}

	b, ok := tryParseCanonicalBoolean(s)
	if !ok {
		b, ok = r.tryMatchBooleanToken(s)
	}
	if !ok {
		r.AddError(position, messages.Format(messages.BooleanInvalid, name))
		return nil
	}
	return &b
}

// =============================================================================
// PARSE HELPERS
// =============================================================================

func tryParseCanonicalBoolean(s string) (value, ok bool) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, true
	case strings.EqualFold(s, "false"):
		return false, true
	}
	return false, false
}

func (r *Record) tryMatchBooleanToken(s string) (value, ok bool) {
	switch {
	case r.yes != "" && strings.EqualFold(s, r.yes):
		return true, true
	case r.no != "" && strings.EqualFold(s, r.no):
		return false, true
	}
	return false, false
}

// ParseDateTime parses s with the first matching layout, reading values
// without an offset in loc. With no layouts, DefaultDateLayouts are tried.
func ParseDateTime(s string, loc *time.Location, layouts ...string) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// maxDays is the largest whole number of days a time.Duration holds.
const maxDays = int64(math.MaxInt64 / (24 * time.Hour))

// ParseTimeSpan reads "[-][d.]hh:mm[:ss[.fff]]", a whole number of days or
// Go duration syntax. Values beyond the time.Duration range fail.
func ParseTimeSpan(s string) (time.Duration, bool) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var days int64
	clock := s
	if dot, colon := strings.IndexByte(s, '.'), strings.IndexByte(s, ':'); dot >= 0 && colon > dot {
		n, ok := parseDays(s[:dot])
		if !ok {
			return 0, false
		}
		days, clock = n, s[dot+1:]
	}

	var d time.Duration
	if !strings.Contains(clock, ":") {
		n, ok := parseDays(clock)
		if !ok {
			return 0, false
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		parts := strings.Split(clock, ":")
		if len(parts) > 3 {
			return 0, false
		}
		hours, err := strconv.Atoi(parts[0])
		if err != nil || hours < 0 || hours > 23 {
			return 0, false
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil || minutes < 0 || minutes > 59 {
			return 0, false
		}
		timeOfDay := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
		if len(parts) == 3 {
			secs, err := time.ParseDuration(parts[2] + "s")
			if err != nil || secs < 0 || secs >= time.Minute {
				return 0, false
			}
			timeOfDay += secs
		}

		d = time.Duration(days) * 24 * time.Hour
		if d > math.MaxInt64-timeOfDay {
			return 0, false
		}
		d += timeOfDay
	}

	if negative {
		d = -d
	}
	return d, true
}

// parseDays reads a non-negative day count that fits a time.Duration.
func parseDays(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 || n > maxDays {
		return 0, false
	}
	return n, true
}
