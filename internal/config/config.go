// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer optional file and environment overrides in Load.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"github.com/lagiland/scoreboard/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabaseURL is the Postgres DSN. When empty the service falls back
	// to the in-memory store and loses data on restart.
	DatabaseURL string `koanf:"database_url"`

	// GeminiAPIKey authenticates feedback generation. When empty, feedback
	// is disabled and every submission stores the fallback text.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel selects the generation model.
	GeminiModel string `koanf:"gemini_model"`

	// FeedbackFallback is stored when feedback generation fails or is off.
	FeedbackFallback string `koanf:"feedback_fallback"`

	// ExportFilename is the suggested download name for CSV exports.
	ExportFilename string `koanf:"export_filename"`

	// Rubric holds the scoring caps and social exchange rates.
	Rubric scoring.Rubric `koanf:"rubric"`
}

// New creates a Config with the canonical defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8080",
		GeminiModel:      "gemini-2.0-flash",
		FeedbackFallback: "",
		ExportFilename:   "contest_results.csv",
		Rubric:           scoring.DefaultRubric(),
	}
}
