package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaign_Clone(t *testing.T) {
	original := Campaign{
		"name": "Clone Me",
		"targeting": map[string]interface{}{
			"geo": "US",
		},
		"creatives": []interface{}{
			map[string]interface{}{"headline": "Ad"},
		},
	}

	clone := original.Clone()
	clone["name"] = "Changed"
	clone["targeting"].(map[string]interface{})["geo"] = "DE"
	clone["creatives"].([]interface{})[0].(map[string]interface{})["headline"] = "Other"

	assert.Equal(t, "Clone Me", original.Name())
	assert.Equal(t, "US", original["targeting"].(map[string]interface{})["geo"])
	assert.Equal(t, "Ad", original["creatives"].([]interface{})[0].(map[string]interface{})["headline"])
}

func TestCampaign_Name(t *testing.T) {
	assert.Equal(t, "X", Campaign{"name": "X"}.Name())
	assert.Equal(t, "", Campaign{}.Name())
	assert.Equal(t, "", Campaign{"name": 42.0}.Name())
}

func TestMigrationReport(t *testing.T) {
	report := NewMigrationReport()
	assert.False(t, report.HasFailures())

	report.AddSuccess("migrated A")
	report.AddWarning("B was defaulted")
	report.AddFailure("C was rejected", "UploadRejected")

	assert.True(t, report.HasFailures())
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "UploadRejected", report.Failures[0].ErrorKind)
	assert.Contains(t, report.Summary(), "successes: 1, warnings: 1, failures: 1")
}

func TestValidationIssue_CampaignNumber(t *testing.T) {
	issue := ValidationIssue{CampaignIndex: 0}
	assert.Equal(t, 1, issue.CampaignNumber())

	issue.CampaignIndex = 9
	assert.Equal(t, 10, issue.CampaignNumber())
}
