package services

import (
	"fmt"

	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/metrics"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/schema"
)

// BatchValidationResult is the outcome of validating one submitted batch.
type BatchValidationResult struct {
	ValidRecords []models.Campaign        `json:"valid_records"`
	Issues       []models.ValidationIssue `json:"issues"`
	Summary      *ComparisonSummary       `json:"summary"`
}

// ComparisonSummary aggregates issue statistics for reporting and diagnostic
// collaborators. Not needed for correctness of the migration itself.
type ComparisonSummary struct {
	Platform       string            `json:"platform"`
	TotalCampaigns int               `json:"total_campaigns"`
	TotalIssues    int               `json:"total_issues"`
	// CommonIssues counts issues grouped by "field_path:issue_type".
	CommonIssues   map[string]int    `json:"most_common_issues"`
	AffectedFields map[string]int    `json:"affected_fields"`
	IssueTypes     map[string]int    `json:"issue_types"`
	SampleRecords  []models.Campaign `json:"sample_records"`
}

// batchValidator implements BatchValidator
type batchValidator struct {
	logger    *logger.Logger
	registry  schema.Registry
	validator StructuralValidator
	metrics   *metrics.Metrics
}

// NewBatchValidator creates a new batch validator
func NewBatchValidator(log *logger.Logger, registry schema.Registry, validator StructuralValidator, m *metrics.Metrics) BatchValidator {
	return &batchValidator{
		logger:    log,
		registry:  registry,
		validator: validator,
		metrics:   m,
	}
}

// ValidateBatch validates every record at its batch index, partitioning the
// records with no issues into ValidRecords (order-preserving) and
// concatenating all issues. Schema resolution failures propagate as hard
// errors.
func (b *batchValidator) ValidateBatch(records []models.Campaign, platform string) (*BatchValidationResult, error) {
	platformSchema, err := b.registry.Get(platform)
	if err != nil {
		return nil, err
	}

	validRecords := make([]models.Campaign, 0, len(records))
	var allIssues []models.ValidationIssue

	for i, record := range records {
		issues := b.validator.Validate(record, platformSchema, i)
		if len(issues) == 0 {
			validRecords = append(validRecords, record)
			continue
		}
		allIssues = append(allIssues, issues...)
		for _, issue := range issues {
			b.metrics.RecordValidationIssue(platform, string(issue.IssueType))
		}
	}

	b.logger.WithPlatform(platform).
		WithField("valid", len(validRecords)).
		WithField("total", len(records)).
		WithField("issues", len(allIssues)).
		Info("Batch validation complete")

	return &BatchValidationResult{
		ValidRecords: validRecords,
		Issues:       allIssues,
		Summary:      summarize(platform, records, allIssues),
	}, nil
}

// summarize groups issue counts by (field_path, issue_type) pair, by field
// path alone and by issue type alone, and keeps the first few records as
// samples.
func summarize(platform string, records []models.Campaign, issues []models.ValidationIssue) *ComparisonSummary {
	summary := &ComparisonSummary{
		Platform:       platform,
		TotalCampaigns: len(records),
		TotalIssues:    len(issues),
		CommonIssues:   make(map[string]int),
		AffectedFields: make(map[string]int),
		IssueTypes:     make(map[string]int),
	}

	for _, issue := range issues {
		pairKey := fmt.Sprintf("%s:%s", issue.FieldPath, issue.IssueType)
		summary.CommonIssues[pairKey]++
		summary.AffectedFields[issue.FieldPath]++
		summary.IssueTypes[string(issue.IssueType)]++
	}

	sampleCount := len(records)
	if sampleCount > 3 {
		sampleCount = 3
	}
	summary.SampleRecords = records[:sampleCount]

	return summary
}
