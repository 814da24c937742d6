package schema

import (
	"errors"
	"fmt"
)

// ErrSchemaNotFound marks platforms with no declarative definition.
var ErrSchemaNotFound = errors.New("platform schema not found")

// NotFoundError reports a platform the registry has no definition for.
type NotFoundError struct {
	Platform string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no schema definition for platform %q", e.Platform)
}

func (e *NotFoundError) Unwrap() error {
	return ErrSchemaNotFound
}

// LoadError reports a malformed declarative schema definition. Load failures
// are fatal and surface before any record is processed.
type LoadError struct {
	Platform string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load schema for platform %q: %v", e.Platform, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
