package services

import (
	"context"

	"campaign-migration-platform/internal/models"
)

// StructuralValidator checks a single record against a platform's validation
// schema. Issues are collected, never raised, so callers see the complete set
// in one pass.
type StructuralValidator interface {
	Validate(record models.Campaign, platformSchema *models.PlatformSchema, index int) []models.ValidationIssue
}

// BatchValidator runs the structural validator across a collection and
// partitions valid from invalid records.
type BatchValidator interface {
	ValidateBatch(records []models.Campaign, platform string) (*BatchValidationResult, error)
}

// FieldMapper converts one validated source record into the canonical target
// record using a platform's mapping schema.
type FieldMapper interface {
	MapRecord(record models.Campaign, mapping models.MappingSchema) (models.Campaign, []string)
}

// MigrationService coordinates fetch, validation, mapping, manual overrides
// and upload for single records and batches.
type MigrationService interface {
	MigrateOne(ctx context.Context, platform, campaignID string, overrides map[string]interface{}) (*models.MigrationReport, error)
	MigrateBatch(ctx context.Context, platform string, records []models.Campaign) (*models.MigrationReport, error)
	MapRecord(ctx context.Context, platform string, record models.Campaign) (models.Campaign, []string, error)
	SampleFormat(platform string) (models.Campaign, error)
}

// SourceClient fetches campaign data from a source advertising platform.
type SourceClient interface {
	GetCampaign(ctx context.Context, campaignID string) (models.Campaign, error)
}

// TargetClient creates campaigns in the target advertising platform.
type TargetClient interface {
	CreateCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error)
}
