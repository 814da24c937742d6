package logger

import (
	"campaign-migration-platform/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with additional functionality
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new structured logger instance
func NewLogger(cfg *config.Config) *Logger {
	log := logrus.New()

	// Set log level
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &Logger{Logger: log}
}

// WithPlatform adds source platform context to log entries
func (l *Logger) WithPlatform(platform string) *logrus.Entry {
	return l.WithField("platform", platform)
}

// WithCampaign adds campaign context to log entries
func (l *Logger) WithCampaign(name string) *logrus.Entry {
	return l.WithField("campaign", name)
}

// WithStage adds migration stage context to log entries
func (l *Logger) WithStage(stage string) *logrus.Entry {
	return l.WithField("stage", stage)
}
