package models

import "fmt"

// TargetType is the closed set of types a mapped value can be coerced to.
// "string" is the default and leaves values untouched.
type TargetType string

const (
	TargetTypeString  TargetType = "string"
	TargetTypeInteger TargetType = "integer"
	TargetTypeFloat   TargetType = "float"
	TargetTypeBoolean TargetType = "boolean"
)

// Valid reports whether t is one of the known target types. An empty type is
// treated as string.
func (t TargetType) Valid() bool {
	switch t {
	case "", TargetTypeString, TargetTypeInteger, TargetTypeFloat, TargetTypeBoolean:
		return true
	}
	return false
}

// MappingRule describes how one canonical target field is built from a source
// record: copy from SourceField, apply the named Transform, coerce to
// FieldType, fall back to Default. Warning is static text attached whenever
// the field is processed, flagging a known lossy mapping.
type MappingRule struct {
	TargetField string      `json:"target_field" validate:"required"`
	SourceField string      `json:"source_field,omitempty"`
	Default     interface{} `json:"default,omitempty"`
	FieldType   TargetType  `json:"field_type,omitempty"`
	Transform   string      `json:"transform,omitempty"`
	Warning     string      `json:"warning,omitempty"`
}

// Validate rejects malformed mapping rules at schema load time. Transform
// names are resolved separately against the transform registry.
func (r *MappingRule) Validate() error {
	if r.TargetField == "" {
		return fmt.Errorf("mapping rule missing target_field")
	}
	if !r.FieldType.Valid() {
		return fmt.Errorf("target field %q: unknown field_type %q", r.TargetField, r.FieldType)
	}
	return nil
}

// MappingSchema is the ordered list of mapping rules for one platform. The
// mapper iterates this, not the source record, so target fields are produced
// in a stable order and never silently disappear.
type MappingSchema []MappingRule

// PlatformSchema bundles one platform's mapping and validation rule sets.
// Immutable after load.
type PlatformSchema struct {
	Platform   string
	Version    string
	Mapping    MappingSchema
	Validation map[string]FieldDefinition
}
