package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates the catalogue is not a well-formed JSON array.
	ErrParse = errors.New("invalid exercise catalogue")
	// ErrSchema indicates a record lacks a required key or has a mistyped value.
	ErrSchema = errors.New("invalid exercise record")
)

var (
	errRequired  = errors.New("is required")
	errNotString = errors.New("must be a string")
	errNotNumber = errors.New("must be a number")
	errNotFinite = errors.New("must be a finite number")
)

// SchemaError describes the offending record and field.
type SchemaError struct {
	Index  int
	Name   string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	where := fmt.Sprintf("record %d", e.Index)
	if e.Name != "" {
		where = fmt.Sprintf("%s (%q)", where, e.Name)
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s: %s", ErrSchema, where, e.Reason)
	}
	return fmt.Sprintf("%s: %s: field %q %s", ErrSchema, where, e.Field, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, ErrSchema).
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}
