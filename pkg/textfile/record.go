package textfile

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ginjaninja78/recordkit/pkg/format"
	"github.com/ginjaninja78/recordkit/pkg/messages"
	"github.com/ginjaninja78/recordkit/pkg/validation"
)

// DefaultDateLayouts are tried in order by GetDateTime when no Layout
// option is given. Month comes before day.
var DefaultDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
}

// =============================================================================
// RECORD
// =============================================================================

// Record is one line of delimited text addressed by 1-based field position.
//
// Types describing a concrete line layout usually embed *Record and fill
// their fields from the getters:
//
//	type Customer struct {
//	    *textfile.Record
//	    ID   *int
//	    Name *string
//	}
//
//	func NewCustomer(n int, line string) *Customer {
//	    c := &Customer{Record: textfile.SplitRecord(n, line, ',')}
//	    c.ID = c.GetInt(1, "Id")
//	    c.Name = c.GetString(2, "Name", textfile.MaxLength(50))
//	    return c
//	}
type Record struct {
	lineNumber      int
	values          []string
	errors          validation.ErrorList
	includePosition bool
	location        *time.Location
	dateLayouts     []string
	yes             string
	no              string
}

// RecordOption configures a Record.
type RecordOption func(*Record)

// WithPositionInErrors prefixes every message with "[Position P] ".
func WithPositionInErrors() RecordOption {
	return func(r *Record) { r.includePosition = true }
}

// WithLocation sets the location used to parse dates without an offset.
// The default is UTC.
func WithLocation(loc *time.Location) RecordOption {
	return func(r *Record) {
		if loc != nil {
			r.location = loc
		}
	}
}

// WithDateLayouts replaces DefaultDateLayouts for this record.
func WithDateLayouts(layouts ...string) RecordOption {
	return func(r *Record) { r.dateLayouts = layouts }
}

// WithBooleanTokens sets the words accepted by GetBoolean in addition to
// true and false. The defaults are "Yes" and "No".
func WithBooleanTokens(yes, no string) RecordOption {
	return func(r *Record) { r.yes, r.no = yes, no }
}

// NewRecord returns a record over a copy of values. It panics when values
// is nil.
func NewRecord(lineNumber int, values []string, opts ...RecordOption) *Record {
	validation.RequireNotNil(values, "values")

	r := &Record{
		lineNumber:  lineNumber,
		values:      slices.Clone(values),
		location:    time.UTC,
		dateLayouts: DefaultDateLayouts,
		yes:         format.Yes,
		no:          format.No,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SplitRecord splits line by sep and returns the record over its fields.
func SplitRecord(lineNumber int, line string, sep rune, opts ...RecordOption) *Record {
	return NewRecord(lineNumber, strings.Split(line, string(sep)), opts...)
}

// LineNumber returns the 1-based line number given at construction.
func (r *Record) LineNumber() int {
	return r.lineNumber
}

// FieldCount returns the number of raw values.
func (r *Record) FieldCount() int {
	return len(r.values)
}

// Value returns the raw value at the 1-based position.
func (r *Record) Value(position int) (string, bool) {
	if position < 1 || position > len(r.values) {
		return "", false
	}
	return r.values[position-1], true
}

// Values returns a copy of the raw values.
func (r *Record) Values() []string {
	return slices.Clone(r.values)
}

// HasAnyData reports whether any raw value is non-blank.
func (r *Record) HasAnyData() bool {
	return HasAnyData(r.values)
}

// HasAnyData reports whether any value is non-blank.
func HasAnyData(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// =============================================================================
// ERRORS
// =============================================================================

// IsValid reports whether no error has been recorded.
func (r *Record) IsValid() bool {
	return r.errors.IsEmpty()
}

// Errors returns a copy of the recorded messages in insertion order.
func (r *Record) Errors() []string {
	return r.errors.Messages()
}

// Err returns the recorded messages as a *validation.FriendlyError, or nil.
func (r *Record) Err() error {
	return r.errors.Err()
}

// AddError records message for the field at position.
func (r *Record) AddError(position int, message string) {
	if r.includePosition {
		message = fmt.Sprintf("[Position %d] %s", position, message)
	}
	r.errors.Add(message)
}

// Check records the message of a failed outcome for the field at position
// and returns o.OK.
func (r *Record) Check(position int, o validation.Outcome) bool {
	if !o.OK && o.Message != "" {
		r.AddError(position, o.Message)
	}
	return o.OK
}

func (r *Record) addInvalidPosition(position int) {
	r.AddError(position, messages.Format(messages.InvalidPosition, position, len(r.values)))
}
