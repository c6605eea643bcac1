package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// =============================================================================
// OUTCOME
// =============================================================================

// Outcome is the result of a single rule.
type Outcome struct {
	// OK is true when the value satisfied the rule.
	OK bool

	// Message describes the failure. It is empty when OK is true.
	Message string
}

func pass() Outcome {
	return Outcome{OK: true}
}

func fail(message string) Outcome {
	return Outcome{Message: message}
}

// Err returns the failure message as an error, or nil when the rule passed.
func (o Outcome) Err() error {
	if o.OK {
		return nil
	}
	return errors.New(o.Message)
}

// =============================================================================
// ERROR LIST
// =============================================================================

// ErrorList is an ordered, append-only list of validation messages.
type ErrorList []string

// Add appends message to the list.
func (l *ErrorList) Add(message string) {
	*l = append(*l, message)
}

// Len returns the number of messages.
func (l ErrorList) Len() int {
	return len(l)
}

// IsEmpty reports whether the list holds no messages.
func (l ErrorList) IsEmpty() bool {
	return len(l) == 0
}

// Messages returns a copy of the messages in insertion order.
func (l ErrorList) Messages() []string {
	return slices.Clone([]string(l))
}

// Join concatenates the messages with sep.
func (l ErrorList) Join(sep string) string {
	return strings.Join(l, sep)
}

// Err returns a *FriendlyError holding every message, or nil when the list
// is empty.
func (l ErrorList) Err() error {
	if l.IsEmpty() {
		return nil
	}
	return &FriendlyError{Messages: l.Messages()}
}

// FriendlyError carries validation messages meant to be shown to a user.
type FriendlyError struct {
	Messages []string
}

// Error joins the messages with newlines, in insertion order.
func (e *FriendlyError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// AddTo appends the message of a failed outcome to errs and returns o.OK.
// It panics when errs is nil.
func AddTo(errs *ErrorList, o Outcome) bool {
	if errs == nil {
		panic("validation: error list is required")
	}
	if !o.OK && o.Message != "" {
		errs.Add(o.Message)
	}
	return o.OK
}

// =============================================================================
// PRECONDITIONS
// =============================================================================

// RequireNotNil panics when value is nil or a nil pointer, slice, map,
// channel, function or interface. name identifies the argument.
func RequireNotNil(value any, name string) {
	if isNil(value) {
		panic(fmt.Sprintf("validation: argument %s is required", name))
	}
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// =============================================================================
// BOUNDS
// =============================================================================

// Range holds optional inclusive bounds. A nil bound is not checked.
type Range[T any] struct {
	Min *T
	Max *T
}

// AtLeast returns a range with only a lower bound.
func AtLeast[T any](lo T) Range[T] {
	return Range[T]{Min: &lo}
}

// AtMost returns a range with only an upper bound.
func AtMost[T any](hi T) Range[T] {
	return Range[T]{Max: &hi}
}

// Between returns a range with both bounds.
func Between[T any](lo, hi T) Range[T] {
	return Range[T]{Min: &lo, Max: &hi}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
