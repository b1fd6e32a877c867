package calendar

import (
	"errors"
	"fmt"
)

// Error kinds
type ErrorKind string

const (
	// ErrUnderflow is returned when month or day is zero
	ErrUnderflow ErrorKind = "underflow"
	// ErrOutOfRange is returned when the year falls outside [MinYear, MaxYear]
	ErrOutOfRange ErrorKind = "out_of_range"
	// ErrInvalidField is returned by Validate for a field outside its nominal range
	ErrInvalidField ErrorKind = "invalid_field"
)

// Error describes a field that could not be converted or validated
type Error struct {
	Kind    ErrorKind
	Field   string
	Value   int64
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("calendar: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("calendar: %s: %s=%d: %s", e.Kind, e.Field, e.Value, e.Message)
}

// IsKind reports whether err is a calendar error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func underflow(field string) *Error {
	return &Error{Kind: ErrUnderflow, Field: field, Value: 0, Message: "must be at least 1"}
}

func outOfRange(field string, value int64) *Error {
	return &Error{Kind: ErrOutOfRange, Field: field, Value: value, Message: fmt.Sprintf("outside supported years %d-%d", MinYear, MaxYear)}
}

func invalidField(field string, value int64, min, max int64) *Error {
	return &Error{Kind: ErrInvalidField, Field: field, Value: value, Message: fmt.Sprintf("must be in [%d, %d]", min, max)}
}
