package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"campaign-migration-platform/internal/config"
	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/transform"
)

//go:embed platforms/*.json
var embedded embed.FS

// Registry resolves a platform identifier to its immutable PlatformSchema.
type Registry interface {
	Get(platform string) (*models.PlatformSchema, error)
}

// document is the wire shape of one platform's declarative definition. The
// mapping section is an array so canonical target-field order is preserved.
type document struct {
	Platform   string                            `json:"platform" validate:"required"`
	Version    string                            `json:"version"`
	Mapping    []models.MappingRule              `json:"mapping" validate:"required,min=1"`
	Validation map[string]models.FieldDefinition `json:"validation" validate:"required"`
}

type registry struct {
	logger    *logger.Logger
	validator *models.ValidationService
	dir       string

	mu    sync.Mutex
	cache map[string]*models.PlatformSchema
}

// NewRegistry creates a schema registry. Definitions are loaded lazily per
// platform and cached for the life of the process; a configured schemas.dir
// overrides the embedded definitions.
func NewRegistry(cfg *config.Config, log *logger.Logger, validator *models.ValidationService) Registry {
	return &registry{
		logger:    log,
		validator: validator,
		dir:       cfg.Schemas.Dir,
		cache:     make(map[string]*models.PlatformSchema),
	}
}

func (r *registry) Get(platform string) (*models.PlatformSchema, error) {
	name := strings.ToLower(strings.TrimSpace(platform))

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	raw, err := r.read(name)
	if err != nil {
		return nil, err
	}

	loaded, err := r.parse(name, raw)
	if err != nil {
		r.logger.WithPlatform(name).WithError(err).Error("Failed to load platform schema")
		return nil, err
	}

	r.cache[name] = loaded
	r.logger.WithPlatform(name).
		WithField("version", loaded.Version).
		WithField("mapping_rules", len(loaded.Mapping)).
		WithField("validation_rules", len(loaded.Validation)).
		Info("Platform schema loaded")
	return loaded, nil
}

// read fetches the raw definition, preferring the override directory.
func (r *registry) read(name string) ([]byte, error) {
	filename := name + ".json"

	if r.dir != "" {
		raw, err := os.ReadFile(filepath.Join(r.dir, filename))
		if err == nil {
			return raw, nil
		}
		if !os.IsNotExist(err) {
			return nil, &LoadError{Platform: name, Err: err}
		}
	}

	raw, err := embedded.ReadFile("platforms/" + filename)
	if err != nil {
		return nil, &NotFoundError{Platform: name}
	}
	return raw, nil
}

// parse decodes and fail-fast validates a definition, resolving transform
// names against the fixed registry so unknown names fail at load time.
func (r *registry) parse(name string, raw []byte) (*models.PlatformSchema, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &LoadError{Platform: name, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := r.validator.ValidateStruct(&doc); err != nil {
		return nil, &LoadError{Platform: name, Err: err}
	}

	for i := range doc.Mapping {
		rule := &doc.Mapping[i]
		if err := rule.Validate(); err != nil {
			return nil, &LoadError{Platform: name, Err: err}
		}
		if rule.Transform != "" && !transform.Known(rule.Transform) {
			return nil, &LoadError{Platform: name, Err: fmt.Errorf(
				"target field %q references unknown transform %q", rule.TargetField, rule.Transform)}
		}
	}

	validation := make(map[string]models.FieldDefinition, len(doc.Validation))
	for fieldName, def := range doc.Validation {
		if def.Name == "" {
			def.Name = fieldName
		}
		if err := def.Validate(); err != nil {
			return nil, &LoadError{Platform: name, Err: err}
		}
		validation[fieldName] = def
	}

	return &models.PlatformSchema{
		Platform:   doc.Platform,
		Version:    doc.Version,
		Mapping:    models.MappingSchema(doc.Mapping),
		Validation: validation,
	}, nil
}
