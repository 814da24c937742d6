package services

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-migration-platform/internal/metrics"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/schema"
)

func newTestBatchValidator(t *testing.T) BatchValidator {
	t.Helper()
	log := testLogger()
	return NewBatchValidator(log, testRegistry(t), NewStructuralValidator(log), metrics.NewMetrics())
}

func TestBatchValidator_ValidateBatch(t *testing.T) {
	batchValidator := newTestBatchValidator(t)

	t.Run("partitions valid records preserving order", func(t *testing.T) {
		first := validFacebookCampaign()
		first["name"] = "First"
		broken := validFacebookCampaign()
		delete(broken, "daily_budget")
		last := validFacebookCampaign()
		last["name"] = "Last"

		result, err := batchValidator.ValidateBatch([]models.Campaign{first, broken, last}, "facebook")
		require.NoError(t, err)

		require.Len(t, result.ValidRecords, 2)
		assert.Equal(t, "First", result.ValidRecords[0].Name())
		assert.Equal(t, "Last", result.ValidRecords[1].Name())

		require.Len(t, result.Issues, 1)
		assert.Equal(t, 1, result.Issues[0].CampaignIndex)
	})

	t.Run("summary aggregates issue statistics", func(t *testing.T) {
		brokenA := validFacebookCampaign()
		delete(brokenA, "daily_budget")
		brokenB := validFacebookCampaign()
		delete(brokenB, "daily_budget")
		brokenB["objective"] = "GO_VIRAL"

		result, err := batchValidator.ValidateBatch([]models.Campaign{brokenA, brokenB}, "facebook")
		require.NoError(t, err)

		summary := result.Summary
		assert.Equal(t, 2, summary.TotalCampaigns)
		assert.Equal(t, 3, summary.TotalIssues)
		assert.Equal(t, 2, summary.AffectedFields["daily_budget"])
		assert.Equal(t, 1, summary.AffectedFields["objective"])
		assert.Equal(t, 2, summary.IssueTypes[string(models.IssueMissingRequiredField)])
		assert.Equal(t, 1, summary.IssueTypes[string(models.IssueInvalidValue)])
		assert.Equal(t, 2, summary.CommonIssues["daily_budget:missing_required_field"])
		assert.Len(t, summary.SampleRecords, 2)
	})

	t.Run("unknown platform is a hard error", func(t *testing.T) {
		_, err := batchValidator.ValidateBatch([]models.Campaign{validFacebookCampaign()}, "myspace")
		require.Error(t, err)
		assert.True(t, errors.Is(err, schema.ErrSchemaNotFound))
	})

	t.Run("empty batch validates cleanly", func(t *testing.T) {
		result, err := batchValidator.ValidateBatch(nil, "facebook")
		require.NoError(t, err)
		assert.Empty(t, result.ValidRecords)
		assert.Empty(t, result.Issues)
		assert.Equal(t, 0, result.Summary.TotalCampaigns)
	})
}

func TestBatchValidator_Properties(t *testing.T) {
	batchValidator := newTestBatchValidator(t)

	t.Run("partition is exhaustive", func(t *testing.T) {
		properties := gopter.NewProperties(nil)

		properties.Property("valid count plus issue-bearing count equals total", prop.ForAll(
			func(validCount, brokenCount int) bool {
				var records []models.Campaign
				for i := 0; i < validCount; i++ {
					records = append(records, validFacebookCampaign())
				}
				for i := 0; i < brokenCount; i++ {
					broken := validFacebookCampaign()
					delete(broken, "name")
					records = append(records, broken)
				}

				result, err := batchValidator.ValidateBatch(records, "facebook")
				if err != nil {
					return false
				}
				return len(result.ValidRecords) == validCount && len(result.Issues) == brokenCount
			},
			gen.IntRange(0, 10),
			gen.IntRange(0, 10),
		))

		properties.TestingRun(t, gopter.ConsoleReporter(false))
	})
}
