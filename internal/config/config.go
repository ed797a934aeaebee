package config

import (
	"os"
	"runtime"
	"strconv"

	"edareport/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Report ReportConfig
	Server ServerConfig
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	OutputDir  string
	Title      string
	GraphColor string
	Workers    int
}

// ServerConfig holds preview server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	config := &Config{
		Report: ReportConfig{
			OutputDir:  getEnv("EDA_OUTPUT_DIR", "eda-report"),
			Title:      getEnv("EDA_REPORT_TITLE", "Exploratory Data Analysis Report"),
			GraphColor: getEnv("EDA_GRAPH_COLOR", "cyan"),
			Workers:    runtime.NumCPU(),
		},
		Server: ServerConfig{
			Port: getEnv("EDA_SERVE_PORT", "8750"),
		},
	}

	if workersStr := os.Getenv("EDA_WORKERS"); workersStr != "" {
		workers, err := strconv.Atoi(workersStr)
		if err != nil || workers < 1 {
			return nil, errors.Newf(errors.CodeConfigInvalid, "EDA_WORKERS must be a positive integer, got %q", workersStr)
		}
		config.Report.Workers = workers
	}

	if config.Report.OutputDir == "" {
		return nil, errors.New(errors.CodeConfigInvalid, "EDA_OUTPUT_DIR must not be empty")
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
