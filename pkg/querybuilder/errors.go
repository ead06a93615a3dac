package querybuilder

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery matches every *ValidationError through errors.Is.
var ErrInvalidQuery = errors.New("invalid query parameter")

// ValidationError reports a query parameter the caller must fix.
type ValidationError struct {
	Param   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Param, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// DataSourceError wraps a failure of the underlying collection.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("querybuilder: %s failed: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
