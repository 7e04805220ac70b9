package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	msgs := make([]string, 0, len(err.Fields))
	for _, fld := range err.Fields {
		msgs = append(msgs, fld.Field+": "+fld.Error)
	}
	switch {
	case err.Err == nil:
		return strings.Join(msgs, "; ")
	case len(msgs) == 0:
		return err.Err.Error()
	default:
		return err.Err.Error() + " (" + strings.Join(msgs, "; ") + ")"
	}
}

func (err ValidationError) Unwrap() error { return err.Err }

// ConflictError reports an operation refused because of existing state:
// a duplicate ID, a taken assignment, a record still referenced elsewhere.
type ConflictError struct {
	Err    error
	Entity string
	ID     string
}

func NewConflictError(err error, entity, id string) error {
	return &ConflictError{Err: err, Entity: entity, ID: id}
}

func (err ConflictError) Error() string {
	if err.ID == "" {
		return err.Err.Error()
	}
	return fmt.Sprintf("%s %q: %v", err.Entity, err.ID, err.Err)
}

func (err ConflictError) Unwrap() error { return err.Err }

func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func IsConflict(err error) bool {
	var cerr *ConflictError
	return errors.As(err, &cerr)
}

// LoadReport summarises one data file read at start-up.
type LoadReport struct {
	File    string
	Loaded  int
	Skipped int
}

func (r LoadReport) String() string {
	return fmt.Sprintf("%s: %d loaded, %d skipped", r.File, r.Loaded, r.Skipped)
}
