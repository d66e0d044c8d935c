// Package errs classifies failures so callers can choose a policy (fall back,
// reject the request, abort) without matching on message text.
package errs

import "errors"

type Category string

const (
	CategoryDataUnavailable Category = "data_unavailable"
	CategoryMalformedRecord Category = "malformed_record"
	CategoryInvalidInput    Category = "invalid_input"
	CategoryNotFound        Category = "not_found"
	CategoryIOFailure       Category = "io_failure"
	CategoryInternalFailure Category = "internal_failure"
)

// Sentinels usable with errors.Is against any error produced by Wrap.
var (
	ErrDataUnavailable = errors.New("data unavailable")
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
)

type classifiedError struct {
	category Category
	code     string
	hint     string
	cause    error
}

func (e *classifiedError) Error() string {
	if e.cause == nil {
		return "unknown error"
	}
	return e.cause.Error()
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}

func (e *classifiedError) Is(target error) bool {
	switch target {
	case ErrDataUnavailable:
		return e.category == CategoryDataUnavailable
	case ErrMalformedRecord:
		return e.category == CategoryMalformedRecord
	case ErrInvalidInput:
		return e.category == CategoryInvalidInput
	case ErrNotFound:
		return e.category == CategoryNotFound
	}
	return false
}

func Wrap(cause error, category Category, code, hint string) error {
	if cause == nil {
		return nil
	}
	return &classifiedError{
		category: category,
		code:     code,
		hint:     hint,
		cause:    cause,
	}
}

func CategoryOf(err error) Category {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.category
	}
	return ""
}

func CodeOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.code
	}
	return ""
}

func HintOf(err error) string {
	var classified *classifiedError
	if errors.As(err, &classified) {
		return classified.hint
	}
	return ""
}
