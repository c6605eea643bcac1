package validation

import (
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/recordkit/pkg/format"
	"github.com/ginjaninja78/recordkit/pkg/messages"
)

// DefaultDecimalDigits is the number of fraction digits used to render
// decimal bounds in messages.
const DefaultDecimalDigits = 2

// Integer is the set of signed integer types accepted by ValidateInteger.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Float is the set of floating point types accepted by ValidateFloat.
type Float interface {
	~float32 | ~float64
}

// ValidateDecimal checks an optional decimal value against required and r.
// Bounds are inclusive and rendered with digits fraction digits.
//
// PRECEDENCE:
//   - nil value: required message when required, otherwise pass
//   - both bounds: range message
//   - one bound: min or max message
func ValidateDecimal(value *decimal.Decimal, name string, required bool, r Range[decimal.Decimal], digits int) Outcome {
	return validateNumber(value, name, required, r, func(d decimal.Decimal) string {
		return format.Decimal(d, digits)
	})
}

// CheckDecimal is ValidateDecimal appending to errs.
func CheckDecimal(errs *ErrorList, value *decimal.Decimal, name string, required bool, r Range[decimal.Decimal], digits int) bool {
	return AddTo(errs, ValidateDecimal(value, name, required, r, digits))
}

// ValidateInteger widens value and bounds to decimals and applies the
// decimal rule, rendering bounds without fraction digits.
func ValidateInteger[T Integer](value *T, name string, required bool, r Range[T]) Outcome {
	widen := func(v T) decimal.Decimal { return decimal.NewFromInt(int64(v)) }
	return validateNumber(widenPtr(value, widen), name, required, widenRange(r, widen), func(d decimal.Decimal) string {
		return format.Decimal(d, 0)
	})
}

// CheckInteger is ValidateInteger appending to errs.
func CheckInteger[T Integer](errs *ErrorList, value *T, name string, required bool, r Range[T]) bool {
	return AddTo(errs, ValidateInteger(value, name, required, r))
}

// ValidateFloat widens value and bounds to decimals and applies the decimal
// rule.
func ValidateFloat[T Float](value *T, name string, required bool, r Range[T], digits int) Outcome {
	widen := func(v T) decimal.Decimal { return decimal.NewFromFloat(float64(v)) }
	return ValidateDecimal(widenPtr(value, widen), name, required, widenRange(r, widen), digits)
}

// CheckFloat is ValidateFloat appending to errs.
func CheckFloat[T Float](errs *ErrorList, value *T, name string, required bool, r Range[T], digits int) bool {
	return AddTo(errs, ValidateFloat(value, name, required, r, digits))
}

func validateNumber(value *decimal.Decimal, name string, required bool, r Range[decimal.Decimal], render func(decimal.Decimal) string) Outcome {
	if value == nil {
		if required {
			return fail(messages.Format(messages.Required, name))
		}
		return pass()
	}

	v := *value
	switch {
	case r.Min != nil && r.Max != nil:
		if v.LessThan(*r.Min) || v.GreaterThan(*r.Max) {
			return fail(messages.Format(messages.NumberRange, name, render(*r.Min), render(*r.Max)))
		}
	case r.Min != nil:
		if v.LessThan(*r.Min) {
			return fail(messages.Format(messages.NumberValueMin, name, render(*r.Min)))
		}
	case r.Max != nil:
		if v.GreaterThan(*r.Max) {
			return fail(messages.Format(messages.NumberValueMax, name, render(*r.Max)))
		}
	}
	return pass()
}

func widenPtr[T any](v *T, widen func(T) decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := widen(*v)
	return &d
}

func widenRange[T any](r Range[T], widen func(T) decimal.Decimal) Range[decimal.Decimal] {
	return Range[decimal.Decimal]{
		Min: widenPtr(r.Min, widen),
		Max: widenPtr(r.Max, widen),
	}
}
