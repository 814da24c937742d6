package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"campaign-migration-platform/internal/clients"
	"campaign-migration-platform/internal/config"
	"campaign-migration-platform/internal/fileimport"
	"campaign-migration-platform/internal/logger"
	"campaign-migration-platform/internal/metrics"
	"campaign-migration-platform/internal/models"
	"campaign-migration-platform/internal/schema"
	"campaign-migration-platform/internal/services"
)

func main() {
	platform := flag.String("platform", "", "source platform (facebook, twitter)")
	file := flag.String("file", "", "campaign file (.csv or .json)")
	validateOnly := flag.Bool("validate-only", false, "validate the file without migrating")
	flag.Parse()

	if *platform == "" || *file == "" {
		fmt.Println("Usage: migrate -platform <name> -file <campaigns.csv|campaigns.json> [-validate-only]")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.NewLogger(cfg)
	m := metrics.NewMetrics()
	registry := schema.NewRegistry(cfg, logg, models.NewValidationService())
	structural := services.NewStructuralValidator(logg)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Failed to open campaign file: %v", err)
	}
	defer f.Close()

	records, err := fileimport.NewImporter(logg).Read(f, *file)
	if err != nil {
		log.Fatalf("Failed to parse campaign file: %v", err)
	}

	if *validateOnly {
		batchValidator := services.NewBatchValidator(logg, registry, structural, m)
		result, err := batchValidator.ValidateBatch(records, *platform)
		if err != nil {
			log.Fatalf("Validation failed: %v", err)
		}

		fmt.Printf("Valid records: %d/%d\n", len(result.ValidRecords), len(records))
		for _, issue := range result.Issues {
			fmt.Printf("  campaign %d, %s [%s]: %s\n",
				issue.CampaignNumber(), issue.FieldPath, issue.IssueType, issue.Description)
		}
		if len(result.Issues) > 0 {
			os.Exit(1)
		}
		return
	}

	sources := map[string]services.SourceClient{
		"facebook": clients.NewFacebookClient(logg),
		"twitter":  clients.NewTwitterClient(logg),
	}
	migration := services.NewMigrationService(
		logg, registry, structural, services.NewFieldMapper(logg),
		sources, clients.NewTaboolaClient(logg), m)

	report, err := migration.MigrateBatch(context.Background(), *platform, records)
	if err != nil {
		log.Fatalf("Migration aborted: %v", err)
	}

	fmt.Println(report.Summary())
	for _, success := range report.Successes {
		fmt.Printf("  SUCCESS: %s\n", success)
	}
	for _, warning := range report.Warnings {
		fmt.Printf("  WARNING: %s\n", warning)
	}
	for _, failure := range report.Failures {
		fmt.Printf("  FAILURE: %s [%s]\n", failure.Message, failure.ErrorKind)
	}

	if report.HasFailures() {
		os.Exit(1)
	}
}
