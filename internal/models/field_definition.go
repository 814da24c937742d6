package models

import (
	"fmt"
	"math"
	"strconv"
)

// FieldType is the closed set of value types a validation rule can declare.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeInteger FieldType = "integer"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeObject  FieldType = "object"
	FieldTypeArray   FieldType = "array"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeInteger, FieldTypeBoolean, FieldTypeObject, FieldTypeArray:
		return true
	}
	return false
}

// Numeric reports whether bounds checks are meaningful for this type.
func (t FieldType) Numeric() bool {
	return t == FieldTypeNumber || t == FieldTypeInteger
}

// Matches reports whether value conforms to the declared type.
func (t FieldType) Matches(value interface{}) bool {
	switch t {
	case FieldTypeString:
		_, ok := value.(string)
		return ok
	case FieldTypeNumber:
		_, ok := NumericValue(value)
		return ok
	case FieldTypeInteger:
		num, ok := NumericValue(value)
		return ok && num == math.Trunc(num)
	case FieldTypeBoolean:
		_, ok := value.(bool)
		return ok
	case FieldTypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	case FieldTypeArray:
		_, ok := value.([]interface{})
		return ok
	}
	return false
}

// FieldDefinition is a single declarative validation rule for a source field.
// Bounds apply only to numeric types and NestedSchema only to object fields;
// Validate enforces both at schema load time.
type FieldDefinition struct {
	Name          string                     `json:"name" validate:"required"`
	FieldType     FieldType                  `json:"field_type" validate:"required"`
	Required      bool                       `json:"required"`
	Description   string                     `json:"description,omitempty"`
	MinValue      *float64                   `json:"min_value,omitempty"`
	MaxValue      *float64                   `json:"max_value,omitempty"`
	AllowedValues []interface{}              `json:"allowed_values,omitempty"`
	NestedSchema  map[string]FieldDefinition `json:"nested_schema,omitempty"`
}

// Validate rejects malformed definitions so a bad declarative schema fails at
// load time instead of at first validation.
func (d *FieldDefinition) Validate() error {
	if !d.FieldType.Valid() {
		return fmt.Errorf("field %q: unknown field_type %q", d.Name, d.FieldType)
	}
	if (d.MinValue != nil || d.MaxValue != nil) && !d.FieldType.Numeric() {
		return fmt.Errorf("field %q: min_value/max_value only apply to number or integer fields, not %q", d.Name, d.FieldType)
	}
	if d.MinValue != nil && d.MaxValue != nil && *d.MinValue > *d.MaxValue {
		return fmt.Errorf("field %q: min_value %v exceeds max_value %v", d.Name, *d.MinValue, *d.MaxValue)
	}
	if len(d.NestedSchema) > 0 && d.FieldType != FieldTypeObject {
		return fmt.Errorf("field %q: nested_schema requires field_type object, not %q", d.Name, d.FieldType)
	}
	for name, nested := range d.NestedSchema {
		if nested.Name == "" {
			nested.Name = name
			d.NestedSchema[name] = nested
		}
		if err := nested.Validate(); err != nil {
			return fmt.Errorf("field %q: %w", d.Name, err)
		}
	}
	return nil
}

// NumericValue extracts a float64 from any numeric representation a campaign
// record can carry. JSON decoding produces float64, but records built in code
// or from CSV cells may hold native integer types.
func NumericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		// Booleans are not numbers, even though some dynamic languages
		// treat them as a numeric subtype.
		return 0, false
	}
	return 0, false
}

// FormatNumber renders a numeric bound or value without a trailing ".0" for
// whole numbers, matching the human-facing issue strings.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TypeName returns the schema-level type name of a record value, used in
// issue descriptions.
func TypeName(value interface{}) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	}
	if num, ok := NumericValue(value); ok {
		if num == math.Trunc(num) {
			return "integer"
		}
		return "number"
	}
	return fmt.Sprintf("%T", value)
}
