package table

import (
	"errors"
	"fmt"
)

// SchemaError reports an incompatible input schema: a referenced column is
// absent, or a column holds a value outside its recognized label set. Schema
// errors are always fatal to the run and are never retried.
type SchemaError struct {
	Column string
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error on column %q: %s", e.Column, e.Reason)
}

// IsSchemaError reports whether err wraps a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}
