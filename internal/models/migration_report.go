package models

import "fmt"

// MigrationFailure is one failed outcome in a migration report.
type MigrationFailure struct {
	Message   string `json:"message"`
	ErrorKind string `json:"error_kind"`
}

// MigrationReport accumulates the outcomes of one migration invocation,
// single-record or batch. Append-only; never merged across invocations.
type MigrationReport struct {
	Successes []string           `json:"successes"`
	Warnings  []string           `json:"warnings"`
	Failures  []MigrationFailure `json:"failures"`
}

// NewMigrationReport creates an empty report for one invocation.
func NewMigrationReport() *MigrationReport {
	return &MigrationReport{
		Successes: []string{},
		Warnings:  []string{},
		Failures:  []MigrationFailure{},
	}
}

// AddSuccess appends a success entry.
func (r *MigrationReport) AddSuccess(message string) {
	r.Successes = append(r.Successes, message)
}

// AddWarning appends a warning entry.
func (r *MigrationReport) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// AddFailure appends a failure entry with its error kind.
func (r *MigrationReport) AddFailure(message, errorKind string) {
	r.Failures = append(r.Failures, MigrationFailure{Message: message, ErrorKind: errorKind})
}

// HasFailures reports whether any record failed.
func (r *MigrationReport) HasFailures() bool {
	return len(r.Failures) > 0
}

// Summary returns the human-facing report footer.
func (r *MigrationReport) Summary() string {
	return fmt.Sprintf("--- Migration Report --- successes: %d, warnings: %d, failures: %d",
		len(r.Successes), len(r.Warnings), len(r.Failures))
}
