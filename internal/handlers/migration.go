package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"campaign-migration-platform/internal/config"
	"campaign-migration-platform/internal/fileimport"
	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/schema"
	"campaign-migration-platform/internal/services"
)

// maxUploadBytes caps campaign file uploads.
const maxUploadBytes = 10 << 20

// MigrationHandler handles the campaign migration REST API
type MigrationHandler struct {
	config         *config.Config
	logger         *logger.Logger
	batchValidator services.BatchValidator
	migrationSvc   services.MigrationService
	importer       *fileimport.Importer
}

// NewMigrationHandler creates a new migration handler
func NewMigrationHandler(
	cfg *config.Config,
	log *logger.Logger,
	batchValidator services.BatchValidator,
	migrationSvc services.MigrationService,
	importer *fileimport.Importer,
) *MigrationHandler {
	return &MigrationHandler{
		config:         cfg,
		logger:         log,
		batchValidator: batchValidator,
		migrationSvc:   migrationSvc,
		importer:       importer,
	}
}

// checkBatchSize rejects batches above the configured limit. Returns false
// after writing the error response.
func (h *MigrationHandler) checkBatchSize(w http.ResponseWriter, count int) bool {
	limit := h.config.Migration.MaxBatchSize
	if limit > 0 && count > limit {
		h.writeErrorResponse(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Batch of %d records exceeds the limit of %d", count, limit), nil)
		return false
	}
	return true
}

// RegisterRoutes registers all migration API routes
func (h *MigrationHandler) RegisterRoutes(router *mux.Router) {
	v1 := router.PathPrefix("/api/v1").Subrouter()

	v1.HandleFunc("/campaigns/validate", h.ValidateBatch).Methods("POST")
	v1.HandleFunc("/campaigns/map", h.MapRecord).Methods("POST")
	v1.HandleFunc("/migrations", h.MigrateOne).Methods("POST")
	v1.HandleFunc("/migrations/batch", h.MigrateBatch).Methods("POST")
	v1.HandleFunc("/migrations/file", h.MigrateFile).Methods("POST")
	v1.HandleFunc("/platforms/{platform}/sample", h.SampleFormat).Methods("GET")
}

// BatchRequest carries a platform identifier and its raw campaign records.
type BatchRequest struct {
	Platform string            `json:"platform"`
	Records  []models.Campaign `json:"records"`
}

// MapRequest carries one record to map without uploading.
type MapRequest struct {
	Platform string          `json:"platform"`
	Record   models.Campaign `json:"record"`
}

// MapResponse is the dry-run mapping result.
type MapResponse struct {
	MappedRecord models.Campaign `json:"mapped_record"`
	Warnings     []string        `json:"warnings"`
}

// MigrateOneRequest identifies a source campaign and optional manual
// overrides applied after mapping.
type MigrateOneRequest struct {
	Platform   string                 `json:"platform"`
	CampaignID string                 `json:"campaign_id"`
	Overrides  map[string]interface{} `json:"overrides,omitempty"`
}

// ValidateBatch validates a batch of records against the platform schema
// without migrating anything.
func (h *MigrationHandler) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Platform == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Platform is required", nil)
		return
	}
	if !h.checkBatchSize(w, len(req.Records)) {
		return
	}

	result, err := h.batchValidator.ValidateBatch(req.Records, req.Platform)
	if err != nil {
		h.writeSchemaError(w, req.Platform, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, result)
}

// MapRecord maps one record to the target format without uploading it.
func (h *MigrationHandler) MapRecord(w http.ResponseWriter, r *http.Request) {
	var req MapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Platform == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Platform is required", nil)
		return
	}

	mapped, warnings, err := h.migrationSvc.MapRecord(r.Context(), req.Platform, req.Record)
	if err != nil {
		h.writeSchemaError(w, req.Platform, err)
		return
	}
	if warnings == nil {
		warnings = []string{}
	}

	h.writeJSONResponse(w, http.StatusOK, MapResponse{MappedRecord: mapped, Warnings: warnings})
}

// MigrateOne migrates a single campaign fetched by id from the source
// platform. The report is returned even when the migration failed.
func (h *MigrationHandler) MigrateOne(w http.ResponseWriter, r *http.Request) {
	var req MigrateOneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Platform == "" || req.CampaignID == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Platform and campaign_id are required", nil)
		return
	}

	report, err := h.migrationSvc.MigrateOne(r.Context(), req.Platform, req.CampaignID, req.Overrides)
	if err != nil {
		h.writeReportError(w, report, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, report)
}

// MigrateBatch migrates records supplied inline in the request body.
func (h *MigrationHandler) MigrateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Platform == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Platform is required", nil)
		return
	}
	if !h.checkBatchSize(w, len(req.Records)) {
		return
	}

	report, err := h.migrationSvc.MigrateBatch(r.Context(), req.Platform, req.Records)
	if err != nil {
		h.writeReportError(w, report, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, report)
}

// MigrateFile migrates campaigns parsed from an uploaded CSV or JSON file.
// Multipart form fields: "platform" and "file".
func (h *MigrationHandler) MigrateFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}

	platform := r.FormValue("platform")
	if platform == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Platform is required", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Campaign file is required", err)
		return
	}
	defer file.Close()

	records, err := h.importer.Read(file, header.Filename)
	if err != nil {
		h.writeErrorResponse(w, http.StatusUnprocessableEntity, "Failed to parse campaign file", err)
		return
	}
	if !h.checkBatchSize(w, len(records)) {
		return
	}

	report, err := h.migrationSvc.MigrateBatch(r.Context(), platform, records)
	if err != nil {
		h.writeReportError(w, report, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, report)
}

// SampleFormat returns an example source record for a platform.
func (h *MigrationHandler) SampleFormat(w http.ResponseWriter, r *http.Request) {
	platform := mux.Vars(r)["platform"]

	sample, err := h.migrationSvc.SampleFormat(platform)
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, "Unknown platform", err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, sample)
}

// writeReportError writes a migration report alongside the whole-invocation
// error that aborted it. The report is included so callers see the recorded
// failure entry.
func (h *MigrationHandler) writeReportError(w http.ResponseWriter, report *models.MigrationReport, err error) {
	status := http.StatusInternalServerError

	var adapterErr *services.AdapterNotFoundError
	var notFoundErr *schema.NotFoundError
	if errors.As(err, &adapterErr) || errors.As(err, &notFoundErr) {
		status = http.StatusNotFound
	}

	h.logger.WithError(err).Error("Migration aborted")
	h.writeJSONResponse(w, status, map[string]interface{}{
		"error":      err.Error(),
		"error_kind": services.ErrorKind(err),
		"report":     report,
	})
}

// writeSchemaError maps schema resolution failures to HTTP statuses.
func (h *MigrationHandler) writeSchemaError(w http.ResponseWriter, platform string, err error) {
	var notFoundErr *schema.NotFoundError
	if errors.As(err, &notFoundErr) {
		h.writeErrorResponse(w, http.StatusNotFound, "No schema for platform "+platform, err)
		return
	}
	h.writeErrorResponse(w, http.StatusInternalServerError, "Failed to load schema for platform "+platform, err)
}

func (h *MigrationHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *MigrationHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	response := map[string]interface{}{
		"error":     message,
		"status":    statusCode,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err != nil {
		h.logger.WithError(err).Error(message)
		response["details"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
