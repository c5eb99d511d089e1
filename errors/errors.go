package errors

import (
	stderrors "errors"
	"fmt"
)

// ParseError wraps a specific error with context about where it occurred.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrInvalidFieldCount = fmt.Errorf("invalid field count")
	ErrUnknownRecordKind = fmt.Errorf("unknown record kind")
	ErrInvalidID         = fmt.Errorf("invalid id")
	ErrInvalidScore      = fmt.Errorf("invalid score")
	ErrDuplicateID       = fmt.Errorf("duplicate customer success id")
	ErrEmptyRecord       = fmt.Errorf("empty record")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
