package container

import (
	"campaign-migration-platform/internal/clients"
	"campaign-migration-platform/internal/config"
	"campaign-migration-platform/internal/fileimport"
	"campaign-migration-platform/internal/handlers"
	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/metrics"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/schema"
	"campaign-migration-platform/internal/server"
	"campaign-migration-platform/internal/services"

	"go.uber.org/fx"
)

// Module provides dependency injection configuration
var Module = fx.Options(
	// Configuration
	fx.Provide(config.LoadConfig),

	// Logging
	fx.Provide(logger.NewLogger),

	// Metrics
	fx.Provide(metrics.NewMetrics),

	// Schema registry
	fx.Provide(schema.NewRegistry),

	// Platform clients
	fx.Provide(clients.NewFacebookClient),
	fx.Provide(clients.NewTwitterClient),
	fx.Provide(clients.NewTaboolaClient),
	fx.Provide(func(fb *clients.FacebookClient, tw *clients.TwitterClient) map[string]services.SourceClient {
		return map[string]services.SourceClient{
			"facebook": fb,
			"twitter":  tw,
		}
	}),
	fx.Provide(func(taboola *clients.TaboolaClient) services.TargetClient {
		return taboola
	}),

	// Services
	fx.Provide(services.NewStructuralValidator),
	fx.Provide(services.NewBatchValidator),
	fx.Provide(services.NewFieldMapper),
	fx.Provide(services.NewMigrationService),

	// File ingestion
	fx.Provide(fileimport.NewImporter),

	// Handlers
	fx.Provide(handlers.NewMigrationHandler),
	fx.Provide(handlers.NewHealthHandler),

	// Server
	fx.Provide(server.NewServer),

	// Models (for validation and serialization)
	fx.Provide(models.NewValidationService),
)
