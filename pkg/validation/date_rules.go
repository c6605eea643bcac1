package validation

import (
	"fmt"
	"time"

	"github.com/ginjaninja78/recordkit/pkg/format"
	"github.com/ginjaninja78/recordkit/pkg/messages"
)

// DateOptions controls comparison granularity and message rendering of the
// date rules.
type DateOptions struct {
	// IncludeTime compares and renders the time of day. When false, values
	// and bounds are truncated to their calendar date first.
	IncludeTime bool

	// Format selects the date order used in messages. The zero value is MDY.
	Format format.DateFormat
}

func (o DateOptions) mustBeValid() {
	if !o.Format.Valid() {
		panic(fmt.Sprintf("validation: unsupported date format %d", int(o.Format)))
	}
}

func (o DateOptions) render(t time.Time) string {
	if o.IncludeTime {
		return format.DateTime(t, o.Format)
	}
	return format.Date(t, o.Format)
}

func (o DateOptions) keys() (lo, hi, both messages.Key) {
	if o.IncludeTime {
		return messages.DateTimeMin, messages.DateTimeMax, messages.DateTimeRange
	}
	return messages.DateMin, messages.DateMax, messages.DateRange
}

// truncateDate drops the time of day, keeping the location of t.
func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidateDate checks an optional date against required and r.
// It panics when opts.Format is not a declared DateFormat.
func ValidateDate(value *time.Time, name string, required bool, r Range[time.Time], opts DateOptions) Outcome {
	opts.mustBeValid()

	if value == nil {
		if required {
			return fail(messages.Format(messages.Required, name))
		}
		return pass()
	}

	v := *value
	var lo, hi time.Time
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	if !opts.IncludeTime {
		v, lo, hi = truncateDate(v), truncateDate(lo), truncateDate(hi)
	}

	minKey, maxKey, rangeKey := opts.keys()
	switch {
	case r.Min != nil && r.Max != nil:
		if v.Before(lo) || v.After(hi) {
			return fail(messages.Format(rangeKey, name, opts.render(lo), opts.render(hi)))
		}
	case r.Min != nil:
		if v.Before(lo) {
			return fail(messages.Format(minKey, name, opts.render(lo)))
		}
	case r.Max != nil:
		if v.After(hi) {
			return fail(messages.Format(maxKey, name, opts.render(hi)))
		}
	}
	return pass()
}

// CheckDate is ValidateDate appending to errs.
func CheckDate(errs *ErrorList, value *time.Time, name string, required bool, r Range[time.Time], opts DateOptions) bool {
	return AddTo(errs, ValidateDate(value, name, required, r, opts))
}

// ValidateDateRange fails when from is after to. When monthCountMax is
// positive it also fails when the inclusive calendar-month span of the range
// exceeds it: January 31 to February 1 spans two months.
func ValidateDateRange(from, to time.Time, monthCountMax int, opts DateOptions) Outcome {
	opts.mustBeValid()

	if from.After(to) {
		return fail(messages.Format(messages.DatesInvalid, opts.render(from), opts.render(to)))
	}

	if monthCountMax > 0 && MonthSpan(from, to) > monthCountMax {
		return fail(messages.Format(messages.DatesMonthMax, monthCountMax))
	}
	return pass()
}

// CheckDateRange is ValidateDateRange appending to errs.
func CheckDateRange(errs *ErrorList, from, to time.Time, monthCountMax int, opts DateOptions) bool {
	return AddTo(errs, ValidateDateRange(from, to, monthCountMax, opts))
}

// MonthSpan returns the number of calendar months touched by [from, to],
// counting both ends.
func MonthSpan(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()-from.Month()) + 1
}

// ValidateTimeRange fails when from is after to, then checks the duration
// to-from against exact and r.
//
// PRECEDENCE:
//   - equal Min and Max act as an exact duration
//   - exact, then both bounds, then Min alone, then Max alone
func ValidateTimeRange(from, to time.Duration, name string, r Range[time.Duration], exact *time.Duration) Outcome {
	if from > to {
		return fail(messages.Format(messages.TimeRangeInvalid, name, format.Clock(from), format.Clock(to)))
	}

	if exact == nil && r.Min != nil && r.Max != nil && *r.Min == *r.Max {
		exact = r.Min
	}

	d := to - from
	switch {
	case exact != nil:
		if d != *exact {
			return fail(messages.Format(messages.TimeRangeExact, name, format.Clock(*exact)))
		}
	case r.Min != nil && r.Max != nil:
		if d < *r.Min || d > *r.Max {
			return fail(messages.Format(messages.TimeRangeRange, name, format.Clock(*r.Min), format.Clock(*r.Max)))
		}
	case r.Min != nil:
		if d < *r.Min {
			return fail(messages.Format(messages.TimeRangeMin, name, format.Clock(*r.Min)))
		}
	case r.Max != nil:
		if d > *r.Max {
			return fail(messages.Format(messages.TimeRangeMax, name, format.Clock(*r.Max)))
		}
	}
	return pass()
}

// CheckTimeRange is ValidateTimeRange appending to errs.
func CheckTimeRange(errs *ErrorList, from, to time.Duration, name string, r Range[time.Duration], exact *time.Duration) bool {
	return AddTo(errs, ValidateTimeRange(from, to, name, r, exact))
}
