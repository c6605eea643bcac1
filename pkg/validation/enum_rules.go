package validation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/ginjaninja78/recordkit/pkg/messages"
)

// IsValidEnum reports whether value looks like a named enum member: nil
// passes, anything whose text form is a base-10 integer fails. The "T(N)"
// text stringer generates for undeclared values counts as the integer N.
//
// This is a structural check. A type whose String method returns a numeric
// label is reported invalid even for declared members.
func IsValidEnum(value any) bool {
	if isNil(value) {
		return true
	}
	_, err := strconv.ParseInt(enumNumber(strings.TrimSpace(fmt.Sprint(value))), 10, 64)
	return err != nil
}

// enumNumber unwraps the N of a "T(N)" label.
func enumNumber(s string) string {
	open := strings.LastIndexByte(s, '(')
	if open > 0 && strings.HasSuffix(s, ")") {
		return s[open+1 : len(s)-1]
	}
	return s
}

// ValidateEnum applies IsValidEnum and reports the dynamic type name on
// failure.
func ValidateEnum(value any, name string) Outcome {
	if IsValidEnum(value) {
		return pass()
	}
	return fail(messages.Format(messages.TypeInvalid, name, reflect.TypeOf(value).Name()))
}

// CheckEnum is ValidateEnum appending to errs.
func CheckEnum(errs *ErrorList, value any, name string) bool {
	return AddTo(errs, ValidateEnum(value, name))
}
