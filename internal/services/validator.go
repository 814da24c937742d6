package services

import (
	"fmt"
	"sort"
	"strings"

	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/models"
)

// structuralValidator implements StructuralValidator
type structuralValidator struct {
	logger *logger.Logger
}

// NewStructuralValidator creates a new structural validator
func NewStructuralValidator(log *logger.Logger) StructuralValidator {
	return &structuralValidator{logger: log}
}

// Validate checks one record against the platform's validation schema. A
// record with zero issues is valid; any issue makes the whole record invalid
// for this pass.
func (v *structuralValidator) Validate(record models.Campaign, platformSchema *models.PlatformSchema, index int) []models.ValidationIssue {
	var issues []models.ValidationIssue

	for _, fieldName := range sortedFieldNames(platformSchema.Validation) {
		def := platformSchema.Validation[fieldName]
		value, present := record[fieldName]

		if !present {
			if def.Required {
				issues = append(issues, models.ValidationIssue{
					CampaignIndex: index,
					FieldPath:     fieldName,
					IssueType:     models.IssueMissingRequiredField,
					Expected:      fmt.Sprintf("Required field %q", fieldName),
					Actual:        "Missing",
					Description:   fmt.Sprintf("Missing required field: %s - %s", fieldName, def.Description),
				})
			}
			continue
		}

		issues = append(issues, v.validateValue(value, def, index, fieldName)...)
	}

	// Strict-schema policy: unexpected fields are reported, not silently
	// dropped, since silent drops hide upstream data-shape drift.
	for _, fieldName := range sortedRecordKeys(record) {
		if _, known := platformSchema.Validation[fieldName]; !known {
			issues = append(issues, models.ValidationIssue{
				CampaignIndex: index,
				FieldPath:     fieldName,
				IssueType:     models.IssueUnknownField,
				Expected:      "Field not in schema",
				Actual:        fmt.Sprintf("Field %q with value: %v", fieldName, record[fieldName]),
				Description:   fmt.Sprintf("Unknown field %q not defined in %s schema", fieldName, platformSchema.Platform),
			})
		}
	}

	return issues
}

// validateValue applies the type, bounds, allowed-values, empty-string and
// nested-object checks to one present field.
func (v *structuralValidator) validateValue(value interface{}, def models.FieldDefinition, index int, fieldPath string) []models.ValidationIssue {
	var issues []models.ValidationIssue

	if !def.FieldType.Matches(value) {
		// No further checks are meaningful once the type is wrong.
		return append(issues, models.ValidationIssue{
			CampaignIndex: index,
			FieldPath:     fieldPath,
			IssueType:     models.IssueTypeMismatch,
			Expected:      string(def.FieldType),
			Actual:        fmt.Sprintf("%s: %v", models.TypeName(value), value),
			Description:   fmt.Sprintf("Expected %s, got %s", def.FieldType, models.TypeName(value)),
		})
	}

	if def.FieldType.Numeric() {
		num, _ := models.NumericValue(value)
		if def.MinValue != nil && num < *def.MinValue {
			issues = append(issues, models.ValidationIssue{
				CampaignIndex: index,
				FieldPath:     fieldPath,
				IssueType:     models.IssueValueTooSmall,
				Expected:      ">= " + models.FormatNumber(*def.MinValue),
				Actual:        models.FormatNumber(num),
				Description:   fmt.Sprintf("Value %s is below minimum %s", models.FormatNumber(num), models.FormatNumber(*def.MinValue)),
			})
		}
		if def.MaxValue != nil && num > *def.MaxValue {
			issues = append(issues, models.ValidationIssue{
				CampaignIndex: index,
				FieldPath:     fieldPath,
				IssueType:     models.IssueValueTooLarge,
				Expected:      "<= " + models.FormatNumber(*def.MaxValue),
				Actual:        models.FormatNumber(num),
				Description:   fmt.Sprintf("Value %s exceeds maximum %s", models.FormatNumber(num), models.FormatNumber(*def.MaxValue)),
			})
		}
	}

	if len(def.AllowedValues) > 0 && !allowedValue(value, def.AllowedValues) {
		issues = append(issues, models.ValidationIssue{
			CampaignIndex: index,
			FieldPath:     fieldPath,
			IssueType:     models.IssueInvalidValue,
			Expected:      fmt.Sprintf("One of: %v", def.AllowedValues),
			Actual:        fmt.Sprintf("%v", value),
			Description:   fmt.Sprintf("Value %q not in allowed values: %v", fmt.Sprintf("%v", value), def.AllowedValues),
		})
	}

	if def.FieldType == models.FieldTypeString {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			issues = append(issues, models.ValidationIssue{
				CampaignIndex: index,
				FieldPath:     fieldPath,
				IssueType:     models.IssueEmptyString,
				Expected:      "Non-empty string",
				Actual:        "Empty string",
				Description:   fmt.Sprintf("Field %q cannot be empty", fieldPath),
			})
		}
	}

	if def.FieldType == models.FieldTypeObject && len(def.NestedSchema) > 0 {
		if nested, ok := value.(map[string]interface{}); ok {
			for _, nestedName := range sortedFieldNames(def.NestedSchema) {
				nestedDef := def.NestedSchema[nestedName]
				nestedValue, present := nested[nestedName]
				if !present {
					continue
				}
				issues = append(issues, v.validateValue(nestedValue, nestedDef, index, fieldPath+"."+nestedName)...)
			}
		}
	}

	return issues
}

// allowedValue compares a record value against a closed set. Numeric values
// compare by value so 10 and 10.0 are the same member.
func allowedValue(value interface{}, allowed []interface{}) bool {
	num, numeric := models.NumericValue(value)
	for _, candidate := range allowed {
		if numeric {
			if candidateNum, ok := models.NumericValue(candidate); ok && candidateNum == num {
				return true
			}
			continue
		}
		if candidate == value {
			return true
		}
	}
	return false
}

func sortedFieldNames(defs map[string]models.FieldDefinition) []string {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedRecordKeys(record models.Campaign) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
