// =============================================================================
// recordkit - Message Catalog
// =============================================================================
//
// This package holds every human-readable message produced by the validation
// engine and the record field extractor. Messages are positional templates
// ("{0} is required.") keyed by a stable identifier per rule kind.
//
// FEATURES:
//   - Stable Key constants (safe to use in tests and downstream localization)
//   - Immutable template table, built once at package initialization
//   - Positional substitution of {0}, {1}, ... placeholders
//
// CUSTOMIZATION:
//   - Wording can change freely; keys must not.
//
// =============================================================================

package messages

import (
	"fmt"
	"strconv"
	"strings"
)

// Key identifies a message template.
type Key string

// =============================================================================
// KEYS
// =============================================================================

const (
	Invalid          Key = "INVALID"
	TypeInvalid      Key = "TYPE_INVALID"
	MustBeEmpty      Key = "MUST_BE_EMPTY"
	ListNotEmpty     Key = "LIST_NOT_EMPTY"
	Required         Key = "REQUIRED"
	EntityNotFound   Key = "ENTITY_NOT_FOUND"
	EntityDeleted    Key = "ENTITY_DELETED"
	InvalidPosition  Key = "INVALID_POSITION"
	TextLengthMin    Key = "TEXT_LENGTH_MIN"
	TextLengthMax    Key = "TEXT_LENGTH_MAX"
	TextLengthRange  Key = "TEXT_LENGTH_RANGE"
	TextExactLength  Key = "TEXT_EXACT_LENGTH"
	EmailInvalid     Key = "EMAIL_INVALID"
	IPInvalid        Key = "IP_INVALID"
	IntegerInvalid   Key = "INTEGER_INVALID"
	ShortInvalid     Key = "SHORT_INVALID"
	LongInvalid      Key = "LONG_INVALID"
	NumberInvalid    Key = "NUMBER_INVALID"
	NumberValueMin   Key = "NUMBER_VALUE_MIN"
	NumberValueMax   Key = "NUMBER_VALUE_MAX"
	NumberRange      Key = "NUMBER_RANGE"
	DatesInvalid     Key = "DATES_INVALID_RANGE"
	DatesMonthMax    Key = "DATES_MONTH_COUNT_MAX"
	DateTimeInvalid  Key = "DATE_TIME_INVALID"
	DateTimeMin      Key = "DATE_TIME_MIN"
	DateTimeMax      Key = "DATE_TIME_MAX"
	DateTimeRange    Key = "DATE_TIME_RANGE"
	DateMin          Key = "DATE_MIN"
	DateMax          Key = "DATE_MAX"
	DateRange        Key = "DATE_RANGE"
	TimeInvalid      Key = "TIME_INVALID"
	TimeRangeInvalid Key = "TIME_RANGE_INVALID"
	TimeRangeMin     Key = "TIME_RANGE_MIN"
	TimeRangeMax     Key = "TIME_RANGE_MAX"
	TimeRangeRange   Key = "TIME_RANGE_RANGE"
	TimeRangeExact   Key = "TIME_RANGE_EXACT"
	BooleanInvalid   Key = "BOOLEAN_INVALID"
	FileExtension    Key = "FILE_EXTENSION_INVALID"
)

// templates is never written after initialization.
var templates = map[Key]string{
	Invalid:          "{0} is not in the valid format.",
	TypeInvalid:      "{0} is not a valid {1} value.",
	MustBeEmpty:      "{0} must be empty.",
	ListNotEmpty:     "{0} must contain at least one valid element.",
	Required:         "{0} is required.",
	EntityNotFound:   "{0} not found ({1}).",
	EntityDeleted:    "{0} has been deleted ({1}).",
	InvalidPosition:  "Invalid position (position: {0}, max. position: {1}).",
	TextLengthMin:    "{0} must be {1} characters long at least.",
	TextLengthMax:    "{0} must be {1} characters long at most.",
	TextLengthRange:  "{0} must be between {1} and {2} characters long.",
	TextExactLength:  "{0} must be exactly {1} characters long.",
	EmailInvalid:     "{0} is not a valid email address.",
	IPInvalid:        "{0} is not a valid IP address.",
	IntegerInvalid:   "{0} must be an integer number.",
	ShortInvalid:     "{0} must be a short integer number.",
	LongInvalid:      "{0} must be a long integer number.",
	NumberInvalid:    "{0} must be a number.",
	NumberValueMin:   "{0} must be a number greater than {1}.",
	NumberValueMax:   "{0} must be a number lower than {1}.",
	NumberRange:      "{0} must be a number between {1} and {2}.",
	DatesInvalid:     "Invalid date range ({0} - {1}).",
	DatesMonthMax:    "Date range cannot exceed {0} months.",
	DateTimeInvalid:  "{0} must be a valid date/time.",
	DateTimeMin:      "{0} must be a date/time greater than {1}.",
	DateTimeMax:      "{0} must be a date/time lower than {1}.",
	DateTimeRange:    "{0} must be a date/time between {1} and {2}.",
	DateMin:          "{0} must be a date greater than {1}.",
	DateMax:          "{0} must be a date lower than {1}.",
	DateRange:        "{0} must be a date between {1} and {2}.",
	TimeInvalid:      "{0} must be a valid time.",
	TimeRangeInvalid: "{0} is not a valid time range ({1} - {2}).",
	TimeRangeMin:     "{0} must be a time range of {1} at least.",
	TimeRangeMax:     "{0} must be a time range of {1} at most.",
	TimeRangeRange:   "{0} must be a time range between {1} and {2}.",
	TimeRangeExact:   "{0} must be a time range of {1}.",
	BooleanInvalid:   "{0} must be a boolean.",
	FileExtension:    "{0} has an invalid file extension. Valid extensions: {1}.",
}

// =============================================================================
// LOOKUP AND FORMATTING
// =============================================================================

// Template returns the raw template registered for key.
// It panics when the key is unknown.
func Template(key Key) string {
	tmpl, ok := templates[key]
	if !ok {
		panic(fmt.Sprintf("messages: unknown key %q", key))
	}
	return tmpl
}

// Format renders the template for key, replacing {n} with args[n].
//
// PARAMETERS:
//   - key: The message key.
//   - args: Positional values. Each is rendered with fmt.Sprint.
//
// RETURNS:
//   - The rendered message. Placeholders without a matching argument are
//     left untouched.
func Format(key Key, args ...any) string {
	tmpl := Template(key)
	if len(args) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Keys returns every registered key. The order is unspecified.
func Keys() []Key {
	keys := make([]Key, 0, len(templates))
	for k := range templates {
		keys = append(keys, k)
	}
	return keys
}
