package validation

import (
	"net/mail"
	"net/netip"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ginjaninja78/recordkit/pkg/messages"
)

// StringRules holds the optional constraints of ValidateString.
// A zero length means the constraint is not set.
type StringRules struct {
	// MaxLength is the maximum length in characters.
	MaxLength int

	// MinLength is the minimum length in characters.
	MinLength int

	// ExactLength, when set, replaces MinLength and MaxLength.
	ExactLength int

	// Pattern is a regular expression the value must match.
	// It is checked last, and only when every length rule passed.
	Pattern string
}

// patterns caches compiled regular expressions by source text.
var patterns sync.Map

func compilePattern(expr string) *regexp.Regexp {
	if re, ok := patterns.Load(expr); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(expr)
	patterns.Store(expr, re)
	return re
}

// ValidateString checks value against required and the length and pattern
// rules.
//
// PRECEDENCE (non-blank values):
//  1. ExactLength, when set, is the only length rule.
//  2. MinLength and MaxLength together form a range.
//  3. MinLength alone, then MaxLength alone.
//  4. Pattern, when every length rule passed.
//
// A blank value (empty or whitespace) passes when not required and fails with
// the required message otherwise; no other rule runs.
func ValidateString(value, name string, required bool, rules StringRules) Outcome {
	if strings.TrimSpace(value) == "" {
		if required {
			return fail(messages.Format(messages.Required, name))
		}
		return pass()
	}

	length := utf8.RuneCountInString(value)

	switch {
	case rules.ExactLength > 0:
		if length != rules.ExactLength {
			return fail(messages.Format(messages.TextExactLength, name, rules.ExactLength))
		}
	case rules.MinLength > 0 && rules.MaxLength > 0:
		if length < rules.MinLength || length > rules.MaxLength {
			return fail(messages.Format(messages.TextLengthRange, name, rules.MinLength, rules.MaxLength))
		}
	case rules.MinLength > 0:
		if length < rules.MinLength {
			return fail(messages.Format(messages.TextLengthMin, name, rules.MinLength))
		}
	case rules.MaxLength > 0:
		if length > rules.MaxLength {
			return fail(messages.Format(messages.TextLengthMax, name, rules.MaxLength))
		}
	}

	if rules.Pattern != "" && !compilePattern(rules.Pattern).MatchString(value) {
		return fail(messages.Format(messages.Invalid, name))
	}

	return pass()
}

// CheckString is ValidateString appending to errs.
func CheckString(errs *ErrorList, value, name string, required bool, rules StringRules) bool {
	return AddTo(errs, ValidateString(value, name, required, rules))
}

// ValidateEmail applies ValidateString and then, for non-blank values,
// mailbox syntax. Display names ("Jane <jane@example.com>") are rejected.
func ValidateEmail(value, name string, required bool) Outcome {
	if o := ValidateString(value, name, required, StringRules{}); !o.OK {
		return o
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pass()
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Name != "" || addr.Address != trimmed {
		return fail(messages.Format(messages.EmailInvalid, name))
	}
	return pass()
}

// CheckEmail is ValidateEmail appending to errs.
func CheckEmail(errs *ErrorList, value, name string, required bool) bool {
	return AddTo(errs, ValidateEmail(value, name, required))
}

// ValidateIPAddress passes only when value parses as an IPv4 or IPv6
// address whose canonical form equals value, ignoring case.
func ValidateIPAddress(value, name string) Outcome {
	addr, err := netip.ParseAddr(value)
	if err != nil || !strings.EqualFold(addr.String(), value) {
		return fail(messages.Format(messages.IPInvalid, name))
	}
	return pass()
}

// CheckIPAddress is ValidateIPAddress appending to errs.
func CheckIPAddress(errs *ErrorList, value, name string) bool {
	return AddTo(errs, ValidateIPAddress(value, name))
}
