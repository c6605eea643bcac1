// =============================================================================
// recordkit - Value Formatting
// =============================================================================
//
// This package renders numbers, dates and durations for human-readable
// validation messages. Nothing here parses input; every function is a pure
// value-to-string conversion.
//
// FEATURES:
//   - Grouped integers and fixed-precision decimals ("1,234.50")
//   - Month/day/year, day/month/year and ISO date orders
//   - hh:mm rendering for time-of-day values and durations
//
// =============================================================================

package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Yes and No are the affirmative and negative tokens used for booleans.
const (
	Yes = "Yes"
	No  = "No"
)

// tag selects the grouping and decimal separators used for numbers.
var tag = language.English

// =============================================================================
// NUMBERS
// =============================================================================

// Integer renders n with thousands separators and no fraction digits.
func Integer(n int64) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}

// Decimal renders d rounded to exactly digits fraction digits, with
// thousands separators in the integer part. Negative digits count as zero.
func Decimal(d decimal.Decimal, digits int) string {
	if digits < 0 {
		digits = 0
	}

	rounded := d.Round(int32(digits))
	fixed := rounded.Abs().StringFixed(int32(digits))
	intPart, frac, hasFrac := strings.Cut(fixed, ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(groupDigits(intPart))
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Float renders f the same way Decimal does.
func Float(f float64, digits int) string {
	return Decimal(decimal.NewFromFloat(f), digits)
}

// groupDigits inserts thousands separators into an unsigned digit string.
func groupDigits(digits string) string {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// Wider than int64: fall back to manual grouping.
		var b strings.Builder
		lead := len(digits) % 3
		if lead > 0 {
			b.WriteString(digits[:lead])
		}
		for i := lead; i < len(digits); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(digits[i : i+3])
		}
		return b.String()
	}
	return Integer(n)
}

// =============================================================================
// DATES
// =============================================================================

// DateFormat selects the order of day, month and year in rendered dates.
// The zero value is MDY.
type DateFormat int

const (
	// MDY renders 01/31/2024.
	MDY DateFormat = iota
	// DMY renders 31/01/2024.
	DMY
	// YMD renders 2024-01-31.
	YMD
)

// String returns the short name of the format.
func (f DateFormat) String() string {
	switch f {
	case MDY:
		return "MDY"
	case DMY:
		return "DMY"
	case YMD:
		return "YMD"
	default:
		return fmt.Sprintf("DateFormat(%d)", int(f))
	}
}

// Valid reports whether f is one of the declared formats.
func (f DateFormat) Valid() bool {
	return f >= MDY && f <= YMD
}

// Layout returns the Go time layout for the date part.
// It panics for an undeclared format.
func (f DateFormat) Layout() string {
	switch f {
	case MDY:
		return "01/02/2006"
	case DMY:
		return "02/01/2006"
	case YMD:
		return "2006-01-02"
	default:
		panic(fmt.Sprintf("format: unsupported date format %d", int(f)))
	}
}

// ParseDateFormat maps "MDY", "DMY" or "YMD" (any case) to a DateFormat.
// An empty name yields MDY.
func ParseDateFormat(name string) (DateFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "MDY":
		return MDY, nil
	case "DMY":
		return DMY, nil
	case "YMD":
		return YMD, nil
	default:
		return MDY, fmt.Errorf("unsupported date format %q", name)
	}
}

// Date renders the calendar date of t.
func Date(t time.Time, f DateFormat) string {
	return t.Format(f.Layout())
}

// DateTime renders the date of t followed by the 24-hour time.
func DateTime(t time.Time, f DateFormat) string {
	return t.Format(f.Layout() + " 15:04")
}

// =============================================================================
// DURATIONS
// =============================================================================

// Clock renders d as hh:mm. Whole days are folded into the hour count and
// seconds are dropped.
func Clock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%s%02d:%02d", sign, hours, minutes)
}

// Duration renders d as [-][d.]hh:mm:ss[.fff], the time span notation
// ParseTimeSpan reads. The day part is omitted under 24 hours and the
// milliseconds when zero. Finer precision is truncated.
func Duration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	var b strings.Builder
	b.WriteString(sign)
	if days := int64(d / (24 * time.Hour)); days > 0 {
		fmt.Fprintf(&b, "%d.", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d",
		int64((d%(24*time.Hour))/time.Hour),
		int64((d%time.Hour)/time.Minute),
		int64((d%time.Minute)/time.Second))
	if ms := int64((d % time.Second) / time.Millisecond); ms > 0 {
		fmt.Fprintf(&b, ".%03d", ms)
	}
	return b.String()
}

// =============================================================================
// MISC
// =============================================================================

// List joins values with sep.
func List(values []string, sep string) string {
	return strings.Join(values, sep)
}

// YesNo renders b as Yes or No.
func YesNo(b bool) string {
	if b {
		return Yes
	}
	return No
}
