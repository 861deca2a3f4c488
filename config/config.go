// Package config loads command settings from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AnalysisFile  string `env:"ANALYSIS_FILE" default:"analysis_results.json"`
	UnanimousFile string `env:"UNANIMOUS_FILE" default:"unanimous_polls.json"`
	OutputDir     string `env:"OUTPUT_DIR" default:"site"`
	LayoutFile    string `env:"LAYOUT_FILE"`
	ImageFormat   string `env:"IMAGE_FORMAT" default:"svg"`
	QuizQuestions int    `env:"QUIZ_QUESTIONS" default:"4"`
	LogLevel      string `env:"LOG_LEVEL" default:"info"`
	LogFormat     string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"ANALYSIS_FILE": cfg.AnalysisFile,
		"OUTPUT_DIR":    cfg.OutputDir,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	switch cfg.ImageFormat {
	case "svg", "png":
	default:
		return fmt.Errorf("IMAGE_FORMAT must be svg or png, got %q", cfg.ImageFormat)
	}

	if cfg.QuizQuestions < 1 {
		return fmt.Errorf("QUIZ_QUESTIONS must be positive, got %d", cfg.QuizQuestions)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return nil
}
