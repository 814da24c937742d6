package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/metrics"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/schema"
)

// Stage identifies where a record is in the migration pipeline.
type Stage string

const (
	StageFetching   Stage = "FETCHING"
	StageValidating Stage = "VALIDATING"
	StageMapping    Stage = "MAPPING"
	StageOverriding Stage = "OVERRIDING"
	StageUploading  Stage = "UPLOADING"
	StageDone       Stage = "DONE"
	StageFailed     Stage = "FAILED"
)

// Per-record terminal outcomes, used as the metrics label.
const (
	outcomeSuccess = "success"
	outcomeWarning = "warning"
	outcomeFailure = "failure"
)

// migrationService implements MigrationService
type migrationService struct {
	logger    *logger.Logger
	registry  schema.Registry
	validator StructuralValidator
	mapper    FieldMapper
	sources   map[string]SourceClient
	target    TargetClient
	metrics   *metrics.Metrics
}

// NewMigrationService creates the migration orchestrator. sources maps a
// lowercase platform name to its fetch client; platforms without an entry are
// unsupported.
func NewMigrationService(
	log *logger.Logger,
	registry schema.Registry,
	validator StructuralValidator,
	mapper FieldMapper,
	sources map[string]SourceClient,
	target TargetClient,
	m *metrics.Metrics,
) MigrationService {
	return &migrationService{
		logger:    log,
		registry:  registry,
		validator: validator,
		mapper:    mapper,
		sources:   sources,
		target:    target,
		metrics:   m,
	}
}

// MigrateOne migrates a single campaign fetched by id from the source
// platform. Platform resolution and schema load failures are returned as hard
// errors; everything after that lands in the report only.
func (s *migrationService) MigrateOne(ctx context.Context, platform, campaignID string, overrides map[string]interface{}) (*models.MigrationReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveMigrationDuration(platform, time.Since(start).Seconds())
	}()

	report := models.NewMigrationReport()
	log := s.logger.WithPlatform(platform).WithField("campaign_id", campaignID)
	log.Info("Starting campaign migration")

	source, platformSchema, err := s.resolve(platform, report)
	if err != nil {
		s.metrics.RecordOutcome(platform, outcomeFailure)
		return report, err
	}

	log.WithField("stage", StageFetching).Info("Fetching campaign data")
	record, err := source.GetCampaign(ctx, campaignID)
	if err != nil {
		report.AddFailure(fmt.Sprintf("Failed to fetch campaign %q from %s: %v", campaignID, platform, err), ErrorKind(err))
		s.metrics.RecordOutcome(platform, outcomeFailure)
		log.WithField("stage", StageFailed).WithError(err).Error("Migration failed")
		return report, nil
	}
	report.AddSuccess(fmt.Sprintf("Successfully fetched data for campaign %q.", campaignID))

	outcome := s.migrateRecord(ctx, platform, platformSchema, record, overrides, 0, report)
	s.metrics.RecordOutcome(platform, outcome)

	log.Info(report.Summary())
	return report, nil
}

// MigrateBatch migrates records already in hand, typically parsed from an
// uploaded file, so the fetch stage is skipped. Per-record failures never
// abort the batch; only platform resolution and schema load do, and those are
// reported once for the whole batch.
func (s *migrationService) MigrateBatch(ctx context.Context, platform string, records []models.Campaign) (*models.MigrationReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveMigrationDuration(platform, time.Since(start).Seconds())
	}()

	report := models.NewMigrationReport()
	log := s.logger.WithPlatform(platform).WithField("records", len(records))
	log.Info("Starting batch campaign migration")

	_, platformSchema, err := s.resolve(platform, report)
	if err != nil {
		return report, err
	}

	for i, record := range records {
		outcome := s.migrateRecord(ctx, platform, platformSchema, record, nil, i, report)
		s.metrics.RecordOutcome(platform, outcome)
	}

	log.Info(report.Summary())
	return report, nil
}

// MapRecord maps one record without validating or uploading it. Used for
// dry-run previews.
func (s *migrationService) MapRecord(ctx context.Context, platform string, record models.Campaign) (models.Campaign, []string, error) {
	platformSchema, err := s.registry.Get(platform)
	if err != nil {
		return nil, nil, err
	}
	mapped, warnings := s.mapper.MapRecord(record, platformSchema.Mapping)
	return mapped, warnings, nil
}

// SampleFormat returns an example source record for a platform, for callers
// preparing upload files.
func (s *migrationService) SampleFormat(platform string) (models.Campaign, error) {
	sample, ok := sampleFormats[strings.ToLower(strings.TrimSpace(platform))]
	if !ok {
		return nil, &AdapterNotFoundError{Platform: platform}
	}
	return sample.Clone(), nil
}

// resolve looks up the source adapter and platform schema, recording a
// whole-invocation failure on the report when either is missing.
func (s *migrationService) resolve(platform string, report *models.MigrationReport) (SourceClient, *models.PlatformSchema, error) {
	source, ok := s.sources[strings.ToLower(strings.TrimSpace(platform))]
	if !ok {
		err := &AdapterNotFoundError{Platform: platform}
		report.AddFailure(err.Error(), ErrorKind(err))
		return nil, nil, err
	}

	platformSchema, err := s.registry.Get(platform)
	if err != nil {
		report.AddFailure(fmt.Sprintf("Failed to load schema for %s: %v", platform, err), ErrorKind(err))
		return nil, nil, err
	}
	return source, platformSchema, nil
}

// migrateRecord runs one already-fetched record through validation, mapping,
// overrides and upload, appending every outcome to the shared report. Panics
// are contained here so one record can never take down the batch.
func (s *migrationService) migrateRecord(ctx context.Context, platform string, platformSchema *models.PlatformSchema, record models.Campaign, overrides map[string]interface{}, index int, report *models.MigrationReport) (outcome string) {
	name := record.Name()
	if name == "" {
		name = fmt.Sprintf("Campaign_%d", index+1)
	}
	log := s.logger.WithPlatform(platform).WithField("campaign", name)

	defer func() {
		if r := recover(); r != nil {
			report.AddFailure(fmt.Sprintf("A critical error occurred migrating campaign %q: %v", name, r), "UnexpectedError")
			log.WithField("stage", StageFailed).Errorf("Panic during migration: %v", r)
			outcome = outcomeFailure
		}
	}()

	log.WithField("stage", StageValidating).Debug("Validating campaign structure")
	issues := s.validator.Validate(record, platformSchema, index)
	if len(issues) > 0 {
		for _, issue := range issues {
			s.metrics.RecordValidationIssue(platform, string(issue.IssueType))
		}
		report.AddFailure(fmt.Sprintf("Campaign %q failed validation with %d issue(s): %s",
			name, len(issues), issues[0].Description), "ValidationFailed")
		log.WithField("stage", StageFailed).WithField("issues", len(issues)).Warn("Campaign failed structural validation")
		return outcomeFailure
	}

	log.WithField("stage", StageMapping).Debug("Mapping campaign fields")
	mapped, warnings := s.mapper.MapRecord(record, platformSchema.Mapping)
	for _, warning := range warnings {
		report.AddWarning(fmt.Sprintf("Campaign %q: %s", name, warning))
	}

	if len(overrides) > 0 {
		log.WithField("stage", StageOverriding).Debug("Applying manual overrides")
		applyOverrides(mapped, overrides)
	}

	log.WithField("stage", StageUploading).Debug("Uploading campaign")
	created, err := s.target.CreateCampaign(ctx, mapped)
	if err != nil {
		report.AddFailure(fmt.Sprintf("Failed to create campaign %q in Taboola: %v", name, err), ErrorKind(err))
		log.WithField("stage", StageFailed).WithError(err).Error("Upload rejected")
		return outcomeFailure
	}

	report.AddSuccess(fmt.Sprintf("Campaign %q created in Taboola with ID %q.", created.Name(), created["id"]))
	log.WithField("stage", StageDone).Info("Campaign migrated")

	if len(warnings) > 0 {
		return outcomeWarning
	}
	return outcomeSuccess
}

// applyOverrides patches a mapped record in place: a nil override deletes the
// field, a non-nil override replaces or adds it.
func applyOverrides(record models.Campaign, overrides map[string]interface{}) {
	for key, value := range overrides {
		if value == nil {
			delete(record, key)
			continue
		}
		record[key] = value
	}
}

// sampleFormats are example source records per supported platform.
var sampleFormats = map[string]models.Campaign{
	"facebook": {
		"name":         "Sample Facebook Campaign",
		"objective":    "LINK_CLICKS",
		"daily_budget": 100.0,
		"targeting": map[string]interface{}{
			"geo":       "US",
			"age_min":   25.0,
			"age_max":   65.0,
			"interests": []interface{}{"technology", "business"},
		},
		"creatives": []interface{}{
			map[string]interface{}{
				"image_url": "https://example.com/image.jpg",
				"headline":  "Sample Ad Headline",
			},
		},
	},
	"twitter": {
		"name":         "Sample Twitter Campaign",
		"total_budget": 1000.0,
		"account_name": "Sample Brand",
		"tweet_creatives": []interface{}{
			map[string]interface{}{
				"media_url": "https://example.com/tweet_image.jpg",
				"text":      "Sample tweet content",
			},
		},
	},
}
