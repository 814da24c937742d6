// Package clients provides the platform API clients used by the migration
// orchestrator. The source and target clients are in-process mocks with the
// same contracts a real integration would implement.
package clients

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/services"
)

// FacebookClient is a mock Facebook Ads API client.
type FacebookClient struct {
	logger *logger.Logger
}

// NewFacebookClient creates a new Facebook source client
func NewFacebookClient(log *logger.Logger) *FacebookClient {
	return &FacebookClient{logger: log}
}

// GetCampaign returns a canned Facebook campaign payload for any id.
func (c *FacebookClient) GetCampaign(ctx context.Context, campaignID string) (models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.WithPlatform("facebook").WithField("campaign_id", campaignID).Info("Fetching campaign")
	return models.Campaign{
		"name":         "My Awesome FB Campaign",
		"objective":    "LINK_CLICKS",
		"daily_budget": 20.0,
		"targeting": map[string]interface{}{
			"geo":       "US",
			"age_min":   25.0,
			"interests": []interface{}{"sports", "finance"},
		},
		"creatives": []interface{}{
			map[string]interface{}{
				"image_url": "http://facebook.com/img.png",
				"headline":  "My FB Ad",
			},
		},
	}, nil
}

// TwitterClient is a mock Twitter Ads API client.
type TwitterClient struct {
	logger *logger.Logger
}

// NewTwitterClient creates a new Twitter source client
func NewTwitterClient(log *logger.Logger) *TwitterClient {
	return &TwitterClient{logger: log}
}

// GetCampaign returns a canned Twitter campaign payload for any id.
func (c *TwitterClient) GetCampaign(ctx context.Context, campaignID string) (models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.WithPlatform("twitter").WithField("campaign_id", campaignID).Info("Fetching campaign")
	return models.Campaign{
		"name":         "My Awesome Twitter Campaign",
		"total_budget": 5000.0,
		"account_name": "My Twitter Brand",
		"tweet_creatives": []interface{}{
			map[string]interface{}{
				"media_url": "http://twitter.com/img.png",
				"text":      "My Twitter Ad",
			},
		},
	}, nil
}

// taboolaRequiredFields must carry non-empty values before Taboola accepts a
// campaign.
var taboolaRequiredFields = []string{"name", "branding_text", "cpc_bid", "daily_cap"}

// TaboolaClient is a mock Taboola API client enforcing the target platform's
// required-field contract.
type TaboolaClient struct {
	logger *logger.Logger
}

// NewTaboolaClient creates a new Taboola target client
func NewTaboolaClient(log *logger.Logger) *TaboolaClient {
	return &TaboolaClient{logger: log}
}

// CreateCampaign accepts a mapped campaign when every required field carries
// a usable value, assigning it an id and PENDING_APPROVAL status. Rejections
// name the missing fields.
func (c *TaboolaClient) CreateCampaign(ctx context.Context, campaign models.Campaign) (models.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.WithCampaign(campaign.Name()).Info("Validating campaign for Taboola")

	var missing []string
	for _, field := range taboolaRequiredFields {
		if emptyValue(campaign[field]) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &services.UploadRejectedError{MissingFields: missing}
	}

	id := "taboola_campaign_" + strings.Split(uuid.NewString(), "-")[0]
	created := models.Campaign{
		"id":            id,
		"name":          campaign["name"],
		"branding_text": campaign["branding_text"],
		"cpc_bid":       campaign["cpc_bid"],
		"daily_cap":     campaign["daily_cap"],
		"status":        "PENDING_APPROVAL",
	}
	c.logger.WithCampaign(campaign.Name()).WithField("taboola_id", id).Info("Campaign created")
	return created, nil
}

// emptyValue reports whether a required field's value is missing or carries
// no usable content: nil, an empty or blank string, a zero number or false.
func emptyValue(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case float64:
		return v == 0
	case int:
		return v == 0
	case bool:
		return !v
	}
	return false
}
