// =============================================================================
// recordkit - Validation Engine
// =============================================================================
//
// Package validation provides stateless checks over primitive values. Every
// rule comes in two shapes:
//
//   - ValidateX(...) Outcome
//     returns a pass/fail flag plus the formatted message on failure.
//   - CheckX(errs *ErrorList, ...) bool
//     runs the same rule, appends the message to errs when it fails and
//     returns the flag. Check functions never carry rule logic of their own.
//
// RULES:
//   - Strings: required, exact/min/max length, regular expression
//   - Numbers: decimal core with integer and floating point wrappers
//   - Dates: date or date/time bounds, date ranges with a month-span limit
//   - Time ranges: exact, min and max durations
//   - Email addresses and canonical IP addresses
//   - Files: required content and extension allow-lists
//   - Enums: the "does not look like a number" membership check
//
// ERROR HANDLING:
//   Domain failures are reported through Outcome or ErrorList. Programmer
//   errors (nil error list, nil extension list, unsupported date format,
//   malformed regular expression) panic.
//
// =============================================================================
package validation
