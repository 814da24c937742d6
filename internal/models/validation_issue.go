package models

// IssueType is the closed set of structural defects the validator reports.
type IssueType string

const (
	IssueMissingRequiredField IssueType = "missing_required_field"
	IssueTypeMismatch         IssueType = "type_mismatch"
	IssueValueTooSmall        IssueType = "value_too_small"
	IssueValueTooLarge        IssueType = "value_too_large"
	IssueInvalidValue         IssueType = "invalid_value"
	IssueEmptyString          IssueType = "empty_string"
	IssueUnknownField         IssueType = "unknown_field"
)

// ValidationIssue records one structural defect found while validating a
// campaign against a platform's validation schema. Created only by the
// structural validator and never mutated afterwards.
type ValidationIssue struct {
	CampaignIndex int       `json:"campaign_index"`
	FieldPath     string    `json:"field_path"`
	IssueType     IssueType `json:"issue_type"`
	Expected      string    `json:"expected"`
	Actual        string    `json:"actual"`
	Description   string    `json:"description"`
}

// CampaignNumber is the 1-based position shown to humans. Internal logic
// always uses the 0-based CampaignIndex.
func (i ValidationIssue) CampaignNumber() int {
	return i.CampaignIndex + 1
}
