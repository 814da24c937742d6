// Package cmp provides a Go client SDK for the Campaign Migration Platform
// REST API.
package cmp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client represents the Campaign Migration Platform client
type Client struct {
	baseURL    string
	httpClient *http.Client
	version    string
}

// ClientOption represents a client configuration option
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithVersion sets the API version
func WithVersion(version string) ClientOption {
	return func(c *Client) {
		c.version = version
	}
}

// NewClient creates a new Campaign Migration Platform client
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		version: "v1",
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Campaign is an untyped campaign record.
type Campaign map[string]interface{}

// ValidationIssue is one structural defect found in a submitted record.
type ValidationIssue struct {
	CampaignIndex int    `json:"campaign_index"`
	FieldPath     string `json:"field_path"`
	IssueType     string `json:"issue_type"`
	Expected      string `json:"expected"`
	Actual        string `json:"actual"`
	Description   string `json:"description"`
}

// ValidationSummary aggregates issue statistics for one batch.
type ValidationSummary struct {
	Platform       string         `json:"platform"`
	TotalCampaigns int            `json:"total_campaigns"`
	TotalIssues    int            `json:"total_issues"`
	CommonIssues   map[string]int `json:"most_common_issues"`
	AffectedFields map[string]int `json:"affected_fields"`
	IssueTypes     map[string]int `json:"issue_types"`
}

// BatchValidationResult is the outcome of validating one batch.
type BatchValidationResult struct {
	ValidRecords []Campaign         `json:"valid_records"`
	Issues       []ValidationIssue  `json:"issues"`
	Summary      *ValidationSummary `json:"summary"`
}

// MigrationFailure is one failed outcome in a migration report.
type MigrationFailure struct {
	Message   string `json:"message"`
	ErrorKind string `json:"error_kind"`
}

// MigrationReport holds the outcomes of one migration invocation.
type MigrationReport struct {
	Successes []string           `json:"successes"`
	Warnings  []string           `json:"warnings"`
	Failures  []MigrationFailure `json:"failures"`
}

// MapResult is a dry-run mapping result.
type MapResult struct {
	MappedRecord Campaign `json:"mapped_record"`
	Warnings     []string `json:"warnings"`
}

// APIError represents an error response from the API
type APIError struct {
	StatusCode int    `json:"status"`
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("API error %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
}

// ValidateBatch validates records against a platform schema without
// migrating anything.
func (c *Client) ValidateBatch(ctx context.Context, platform string, records []Campaign) (*BatchValidationResult, error) {
	body := map[string]interface{}{"platform": platform, "records": records}

	var result BatchValidationResult
	if err := c.post(ctx, "/campaigns/validate", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MapRecord maps one record to the target format without uploading it.
func (c *Client) MapRecord(ctx context.Context, platform string, record Campaign) (*MapResult, error) {
	body := map[string]interface{}{"platform": platform, "record": record}

	var result MapResult
	if err := c.post(ctx, "/campaigns/map", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MigrateOne migrates a single campaign fetched by id from the source
// platform. Overrides are applied after mapping: nil deletes a field,
// non-nil replaces it.
func (c *Client) MigrateOne(ctx context.Context, platform, campaignID string, overrides map[string]interface{}) (*MigrationReport, error) {
	body := map[string]interface{}{
		"platform":    platform,
		"campaign_id": campaignID,
	}
	if len(overrides) > 0 {
		body["overrides"] = overrides
	}

	var report MigrationReport
	if err := c.post(ctx, "/migrations", body, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// MigrateBatch migrates records supplied inline.
func (c *Client) MigrateBatch(ctx context.Context, platform string, records []Campaign) (*MigrationReport, error) {
	body := map[string]interface{}{"platform": platform, "records": records}

	var report MigrationReport
	if err := c.post(ctx, "/migrations/batch", body, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// SampleFormat returns an example source record for a platform.
func (c *Client) SampleFormat(ctx context.Context, platform string) (Campaign, error) {
	var sample Campaign
	if err := c.get(ctx, "/platforms/"+platform+"/sample", &sample); err != nil {
		return nil, err
	}
	return sample, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL(path), bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL(path), nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(raw, apiErr); err != nil {
			apiErr.Message = string(raw)
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) apiURL(path string) string {
	return fmt.Sprintf("%s/api/%s%s", c.baseURL, c.version, path)
}
