package clients

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaign-migration-platform/internal/config"
	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/services"
)

func testLogger() *logger.Logger {
	return logger.NewLogger(&config.Config{Logging: config.LoggingConfig{Level: "error"}})
}

func mappedCampaign() models.Campaign {
	return models.Campaign{
		"name":          "Mapped Campaign",
		"branding_text": "Brand",
		"cpc_bid":       0.5,
		"daily_cap":     20.0,
	}
}

func TestSourceClients_GetCampaign(t *testing.T) {
	ctx := context.Background()

	t.Run("facebook payload has the expected shape", func(t *testing.T) {
		campaign, err := NewFacebookClient(testLogger()).GetCampaign(ctx, "fb_1")
		require.NoError(t, err)

		assert.NotEmpty(t, campaign.Name())
		assert.Contains(t, campaign, "objective")
		assert.Contains(t, campaign, "daily_budget")
		assert.Contains(t, campaign, "creatives")
	})

	t.Run("twitter payload has the expected shape", func(t *testing.T) {
		campaign, err := NewTwitterClient(testLogger()).GetCampaign(ctx, "tw_1")
		require.NoError(t, err)

		assert.NotEmpty(t, campaign.Name())
		assert.Contains(t, campaign, "total_budget")
		assert.Contains(t, campaign, "tweet_creatives")
	})

	t.Run("cancelled context aborts the fetch", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFacebookClient(testLogger()).GetCampaign(cancelled, "fb_1")
		assert.Error(t, err)
	})
}

func TestTaboolaClient_CreateCampaign(t *testing.T) {
	ctx := context.Background()
	client := NewTaboolaClient(testLogger())

	t.Run("accepts a complete campaign", func(t *testing.T) {
		created, err := client.CreateCampaign(ctx, mappedCampaign())
		require.NoError(t, err)

		assert.Equal(t, "Mapped Campaign", created.Name())
		assert.Equal(t, "PENDING_APPROVAL", created["status"])
		id, ok := created["id"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(id, "taboola_campaign_"))
	})

	t.Run("each created campaign gets a distinct id", func(t *testing.T) {
		first, err := client.CreateCampaign(ctx, mappedCampaign())
		require.NoError(t, err)
		second, err := client.CreateCampaign(ctx, mappedCampaign())
		require.NoError(t, err)
		assert.NotEqual(t, first["id"], second["id"])
	})

	t.Run("rejects a campaign naming its missing fields", func(t *testing.T) {
		campaign := mappedCampaign()
		delete(campaign, "branding_text")
		campaign["daily_cap"] = 0.0

		_, err := client.CreateCampaign(ctx, campaign)
		require.Error(t, err)

		var rejection *services.UploadRejectedError
		require.True(t, errors.As(err, &rejection))
		assert.ElementsMatch(t, []string{"branding_text", "daily_cap"}, rejection.MissingFields)
	})

	t.Run("blank strings count as missing", func(t *testing.T) {
		campaign := mappedCampaign()
		campaign["name"] = "   "

		_, err := client.CreateCampaign(ctx, campaign)
		var rejection *services.UploadRejectedError
		require.True(t, errors.As(err, &rejection))
		assert.Equal(t, []string{"name"}, rejection.MissingFields)
	})
}
