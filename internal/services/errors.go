package services

import (
	"errors"
	"fmt"
	"strings"

	"campaign-migration-platform/internal/schema"
)

// AdapterNotFoundError reports a source platform with no adapter. It aborts a
// whole batch before any per-record attempt.
type AdapterNotFoundError struct {
	Platform string
}

func (e *AdapterNotFoundError) Error() string {
	return fmt.Sprintf("migration from %q is not supported", e.Platform)
}

// UploadRejectedError reports that the target system refused a mapped record.
// Per-record; the batch continues.
type UploadRejectedError struct {
	MissingFields []string
	Reason        string
}

func (e *UploadRejectedError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("cannot create campaign, missing required fields: [%s]", strings.Join(e.MissingFields, ", "))
	}
	return fmt.Sprintf("campaign rejected: %s", e.Reason)
}

// ErrorKind maps an error to the report's error_kind label.
func ErrorKind(err error) string {
	var adapterErr *AdapterNotFoundError
	var uploadErr *UploadRejectedError
	var notFoundErr *schema.NotFoundError
	var loadErr *schema.LoadError

	switch {
	case errors.As(err, &adapterErr):
		return "AdapterNotFound"
	case errors.As(err, &uploadErr):
		return "UploadRejected"
	case errors.As(err, &notFoundErr):
		return "SchemaNotFound"
	case errors.As(err, &loadErr):
		return "SchemaLoadError"
	default:
		return "UnexpectedError"
	}
}
