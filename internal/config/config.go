package config

import (
	"ctchen222/tictactoe/internal/validator"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the environment variable holding an optional config file path.
const PathEnv = "TICTACTOE_CONFIG"

type Config struct {
	LogLevel    string    `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"warn" validate:"oneof=debug info warn error"`
	LogFile     string    `yaml:"log-file" env:"TICTACTOE_LOG_FILE"`
	MaxAttempts int       `yaml:"max-attempts" env:"TICTACTOE_MAX_ATTEMPTS" env-default:"10" validate:"min=1"`
	HistoryFile string    `yaml:"history-file" env:"TICTACTOE_HISTORY_FILE"`
	Telemetry   Telemetry `yaml:"telemetry"`
}

type Telemetry struct {
	Endpoint       string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName    string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe" validate:"required"`
	ServiceVersion string `yaml:"service-version" env-default:"v0.1.0"`
}

// Load reads the file at path when one is given, otherwise the environment.
// Environment variables override values from the file.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, config)
	} else {
		err = cleanenv.ReadEnv(config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := validator.GetValidator().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
