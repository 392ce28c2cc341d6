// Package validation carries field-level validation errors from binding and
// usecases to the HTTP layer.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error is a set of messages keyed by request field name.
// The key "non_field_errors" is used for errors not tied to one field.
type Error struct {
	Fields map[string][]string
}

// NonField is the key for errors that concern the request as a whole.
const NonField = "non_field_errors"

// New returns an empty Error.
func New() *Error {
	return &Error{Fields: map[string][]string{}}
}

// Field returns an Error with a single message for field.
func Field(field, msg string) *Error {
	return New().Add(field, msg)
}

// Add appends msg to field and returns e for chaining.
func (e *Error) Add(field, msg string) *Error {
	e.Fields[field] = append(e.Fields[field], msg)
	return e
}

// Addf is Add with formatting.
func (e *Error) Addf(field, format string, args ...any) *Error {
	return e.Add(field, fmt.Sprintf(format, args...))
}

// Empty reports whether no messages were added.
func (e *Error) Empty() bool {
	return len(e.Fields) == 0
}

// Err returns e, or nil when e is empty.
func (e *Error) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// As extracts an *Error from err.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
