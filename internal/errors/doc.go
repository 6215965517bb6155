// Package apperrors defines the application error types of checkedcalc and
// maps them, together with the arithmetic errors of the checked package, to
// process exit codes.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
