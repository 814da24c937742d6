package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campaign-migration-platform/internal/metrics"
	"campaign-migration-platform/internal/models"
)

// MockSourceClient is a mock implementation of SourceClient
type MockSourceClient struct {
	mock.Mock
}

func (m *MockSourceClient) GetCampaign(ctx context.Context, campaignID string) (models.Campaign, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Campaign), args.Error(1)
}

// MockTargetClient is a mock implementation of TargetClient
type MockTargetClient struct {
	mock.Mock
}

func (m *MockTargetClient) CreateCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error) {
	args := m.Called(ctx, campaign)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Campaign), args.Error(1)
}

func newTestMigrationService(t *testing.T, source *MockSourceClient, target *MockTargetClient) MigrationService {
	t.Helper()
	log := testLogger()
	return NewMigrationService(
		log,
		testRegistry(t),
		NewStructuralValidator(log),
		NewFieldMapper(log),
		map[string]SourceClient{"facebook": source, "twitter": source},
		target,
		metrics.NewMetrics(),
	)
}

func createdCampaign(name string) models.Campaign {
	return models.Campaign{
		"id":     "taboola_campaign_42",
		"name":   name,
		"status": "PENDING_APPROVAL",
	}
}

func TestMigrationService_MigrateOne(t *testing.T) {
	t.Run("successful migration appends fetch, warnings and upload outcomes", func(t *testing.T) {
		source := new(MockSourceClient)
		target := new(MockTargetClient)
		source.On("GetCampaign", mock.Anything, "fb_123").Return(validFacebookCampaign(), nil)
		target.On("CreateCampaign", mock.Anything, mock.Anything).Return(createdCampaign("Summer Sale"), nil)

		svc := newTestMigrationService(t, source, target)
		report, err := svc.MigrateOne(context.Background(), "facebook", "fb_123", nil)

		require.NoError(t, err)
		assert.False(t, report.HasFailures())
		require.Len(t, report.Successes, 2)
		assert.Contains(t, report.Successes[0], "fb_123")
		assert.Contains(t, report.Successes[1], "taboola_campaign_42")
		// facebook mapping defaults branding_text and cpc_bid, each flagged
		assert.NotEmpty(t, report.Warnings)
		target.AssertExpectations(t)
	})

	t.Run("overrides replace, add and delete mapped fields", func(t *testing.T) {
		source := new(MockSourceClient)
		target := new(MockTargetClient)
		source.On("GetCampaign", mock.Anything, "fb_123").Return(validFacebookCampaign(), nil)

		var uploaded models.Campaign
		target.On("CreateCampaign", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				uploaded = args.Get(1).(models.Campaign)
			}).
			Return(createdCampaign("Summer Sale"), nil)

		svc := newTestMigrationService(t, source, target)
		overrides := map[string]interface{}{
			"branding_text": "Corrected Brand",
			"tracking_code": "UTM-1",
			"cpc_bid":       nil,
		}
		_, err := svc.MigrateOne(context.Background(), "facebook", "fb_123", overrides)
		require.NoError(t, err)

		require.NotNil(t, uploaded)
		assert.Equal(t, "Corrected Brand", uploaded["branding_text"])
		assert.Equal(t, "UTM-1", uploaded["tracking_code"])
		_, present := uploaded["cpc_bid"]
		assert.False(t, present, "nil override should delete the field")
	})

	t.Run("unknown platform fails the invocation", func(t *testing.T) {
		svc := newTestMigrationService(t, new(MockSourceClient), new(MockTargetClient))

		report, err := svc.MigrateOne(context.Background(), "myspace", "m_1", nil)

		require.Error(t, err)
		var adapterErr *AdapterNotFoundError
		assert.True(t, errors.As(err, &adapterErr))
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "AdapterNotFound", report.Failures[0].ErrorKind)
	})

	t.Run("fetch failure is recorded, not returned", func(t *testing.T) {
		source := new(MockSourceClient)
		source.On("GetCampaign", mock.Anything, "fb_404").Return(nil, errors.New("campaign not found"))

		svc := newTestMigrationService(t, source, new(MockTargetClient))
		report, err := svc.MigrateOne(context.Background(), "facebook", "fb_404", nil)

		require.NoError(t, err)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "UnexpectedError", report.Failures[0].ErrorKind)
	})

	t.Run("invalid fetched record fails validation", func(t *testing.T) {
		source := new(MockSourceClient)
		broken := validFacebookCampaign()
		delete(broken, "daily_budget")
		source.On("GetCampaign", mock.Anything, "fb_bad").Return(broken, nil)

		svc := newTestMigrationService(t, source, new(MockTargetClient))
		report, err := svc.MigrateOne(context.Background(), "facebook", "fb_bad", nil)

		require.NoError(t, err)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "ValidationFailed", report.Failures[0].ErrorKind)
	})

	t.Run("upload rejection is a per-record failure", func(t *testing.T) {
		source := new(MockSourceClient)
		target := new(MockTargetClient)
		source.On("GetCampaign", mock.Anything, "fb_123").Return(validFacebookCampaign(), nil)
		target.On("CreateCampaign", mock.Anything, mock.Anything).
			Return(nil, &UploadRejectedError{MissingFields: []string{"daily_cap"}})

		svc := newTestMigrationService(t, source, target)
		report, err := svc.MigrateOne(context.Background(), "facebook", "fb_123", nil)

		require.NoError(t, err)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "UploadRejected", report.Failures[0].ErrorKind)
		assert.Contains(t, report.Failures[0].Message, "daily_cap")
	})
}

func TestMigrationService_MigrateBatch(t *testing.T) {
	t.Run("one failing record never aborts the batch", func(t *testing.T) {
		target := new(MockTargetClient)
		target.On("CreateCampaign", mock.Anything, mock.MatchedBy(func(c models.Campaign) bool {
			return c.Name() == "Rejected"
		})).Return(nil, &UploadRejectedError{Reason: "duplicate campaign"})
		target.On("CreateCampaign", mock.Anything, mock.Anything).
			Return(createdCampaign("ok"), nil)

		good1 := validFacebookCampaign()
		good1["name"] = "Good One"
		bad := validFacebookCampaign()
		bad["name"] = "Rejected"
		good2 := validFacebookCampaign()
		good2["name"] = "Good Two"

		svc := newTestMigrationService(t, new(MockSourceClient), target)
		report, err := svc.MigrateBatch(context.Background(), "facebook", []models.Campaign{good1, bad, good2})

		require.NoError(t, err)
		assert.Len(t, report.Successes, 2)
		require.Len(t, report.Failures, 1)
		assert.Contains(t, report.Failures[0].Message, "Rejected")
		assert.Equal(t, "UploadRejected", report.Failures[0].ErrorKind)
	})

	t.Run("unknown platform reports one whole-batch failure", func(t *testing.T) {
		svc := newTestMigrationService(t, new(MockSourceClient), new(MockTargetClient))

		report, err := svc.MigrateBatch(context.Background(), "myspace", []models.Campaign{
			validFacebookCampaign(), validFacebookCampaign(),
		})

		require.Error(t, err)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "AdapterNotFound", report.Failures[0].ErrorKind)
		assert.Empty(t, report.Successes)
	})

	t.Run("structurally invalid record fails without reaching upload", func(t *testing.T) {
		target := new(MockTargetClient)
		target.On("CreateCampaign", mock.Anything, mock.Anything).
			Return(createdCampaign("ok"), nil)

		broken := validFacebookCampaign()
		broken["daily_budget"] = "oops"
		good := validFacebookCampaign()

		svc := newTestMigrationService(t, new(MockSourceClient), target)
		report, err := svc.MigrateBatch(context.Background(), "facebook", []models.Campaign{broken, good})

		require.NoError(t, err)
		assert.Len(t, report.Successes, 1)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, "ValidationFailed", report.Failures[0].ErrorKind)
		target.AssertNumberOfCalls(t, "CreateCampaign", 1)
	})

	t.Run("empty batch yields an empty report", func(t *testing.T) {
		svc := newTestMigrationService(t, new(MockSourceClient), new(MockTargetClient))

		report, err := svc.MigrateBatch(context.Background(), "facebook", nil)
		require.NoError(t, err)
		assert.Empty(t, report.Successes)
		assert.Empty(t, report.Failures)
	})
}

func TestMigrationService_MapRecord(t *testing.T) {
	svc := newTestMigrationService(t, new(MockSourceClient), new(MockTargetClient))

	mapped, warnings, err := svc.MapRecord(context.Background(), "twitter", models.Campaign{
		"name":         "Preview",
		"total_budget": 2000.0,
	})

	require.NoError(t, err)
	assert.Equal(t, 20.0, mapped["daily_cap"])
	assert.NotEmpty(t, warnings)

	_, _, err = svc.MapRecord(context.Background(), "myspace", models.Campaign{})
	assert.Error(t, err)
}

func TestMigrationService_SampleFormat(t *testing.T) {
	svc := newTestMigrationService(t, new(MockSourceClient), new(MockTargetClient))

	t.Run("known platforms return a sample record", func(t *testing.T) {
		sample, err := svc.SampleFormat("facebook")
		require.NoError(t, err)
		assert.NotEmpty(t, sample.Name())

		sample, err = svc.SampleFormat("Twitter")
		require.NoError(t, err)
		assert.Contains(t, sample, "total_budget")
	})

	t.Run("callers get an independent copy", func(t *testing.T) {
		first, err := svc.SampleFormat("facebook")
		require.NoError(t, err)
		first["name"] = "mutated"

		second, err := svc.SampleFormat("facebook")
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", second["name"])
	})

	t.Run("unknown platform is an error", func(t *testing.T) {
		_, err := svc.SampleFormat("myspace")
		assert.Error(t, err)
	})
}
