package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/transform"
)

// fieldMapper implements FieldMapper
type fieldMapper struct {
	logger *logger.Logger
}

// NewFieldMapper creates a new field mapper
func NewFieldMapper(log *logger.Logger) FieldMapper {
	return &fieldMapper{logger: log}
}

// MapRecord builds the canonical target record by walking the mapping schema
// rule by rule. Per rule: copy the source value, apply the transform, coerce
// to the target type, fall back to the default. A failed coercion omits the
// field and records a warning instead of aborting the record. Warnings are
// advisory throughout; the mapped record is always returned.
func (m *fieldMapper) MapRecord(record models.Campaign, mapping models.MappingSchema) (models.Campaign, []string) {
	target := make(models.Campaign, len(mapping))
	var warnings []string

	for _, rule := range mapping {
		var value interface{}
		if rule.SourceField != "" {
			if v, ok := record[rule.SourceField]; ok {
				value = v
			}
		}

		if rule.Transform != "" {
			// Unknown names are rejected at schema load; this lookup
			// cannot miss for a schema the registry handed out.
			if fn, ok := transform.Lookup(rule.Transform); ok {
				value = fn(value)
			}
		}

		castFailed := false
		if value != nil && rule.FieldType != "" && rule.FieldType != models.TargetTypeString {
			coerced, ok := coerce(value, rule.FieldType)
			if !ok {
				warnings = append(warnings, fmt.Sprintf(
					"could not convert field %q value %v to %s, field omitted",
					rule.TargetField, value, rule.FieldType))
				value = nil
				castFailed = true
			} else {
				value = coerced
			}
		}

		// A failed cast omits the field outright; the default is not a
		// safe fallback for a value that existed but was unusable.
		if value == nil && rule.Default != nil && !castFailed {
			value = rule.Default
		}

		if value != nil {
			target[rule.TargetField] = value
		} else if !castFailed {
			warnings = append(warnings, fmt.Sprintf(
				"no value or default for target field %q", rule.TargetField))
		}

		// Static rule warnings flag known-lossy mappings and attach
		// whenever the rule runs, independent of the outcome above.
		if rule.Warning != "" {
			warnings = append(warnings, rule.Warning)
		}
	}

	return target, warnings
}

// coerce converts a mapped value to the rule's target type. Returns false
// when the value cannot represent that type, which the mapper reports as a
// warning.
func coerce(value interface{}, target models.TargetType) (interface{}, bool) {
	switch target {
	case models.TargetTypeInteger:
		switch v := value.(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case bool:
			return nil, false
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, false
			}
			return n, true
		}
		return nil, false

	case models.TargetTypeFloat:
		switch v := value.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case bool:
			return nil, false
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, false
			}
			return f, true
		}
		return nil, false

	case models.TargetTypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, true
		case float64:
			return v != 0, true
		case int:
			return v != 0, true
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, false
			}
			return b, true
		}
		return nil, false
	}

	return value, true
}
