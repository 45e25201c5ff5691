package core

import "errors"

// InvalidInputError reports that caller-supplied data violates a precondition:
// an empty required field, a value outside an enumerated set, or a malformed
// key or code. It is always detectable from the arguments alone and never
// depends on store state.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// NotFoundError reports that a lookup by id or code found no matching task.
// Key carries the identifier or code that was searched for.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Key
}

// invalidInput builds an InvalidInputError with the given reason.
func invalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}

// notFound builds a NotFoundError for the given key.
func notFound(key string) error {
	return &NotFoundError{Key: key}
}

// IsInvalidInput reports whether err is (or wraps) an InvalidInputError.
// Consumers use this to map failures to caller-error responses (e.g. 400).
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
// Consumers use this to map failures to missing-resource responses (e.g. 404).
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
