package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"shopbot/internal/nlu"
)

// LogConfig controls the logger setup.
type LogConfig struct {
	Level      string `yaml:"level" validate:"required,oneof=trace debug info warn error fatal panic"`
	Format     string `yaml:"format" validate:"oneof=console json"`
	Output     string `yaml:"output" validate:"oneof=stdout stderr file"`
	FilePath   string `yaml:"file_path"`
	TimeFormat string `yaml:"time_format"`
}

// BotConfig controls dialogue presentation and vocabulary.
type BotConfig struct {
	ResultLimit int         `yaml:"result_limit" validate:"min=1"`
	Aliases     []nlu.Alias `yaml:"aliases"`
}

// CatalogConfig points at the product data file.
type CatalogConfig struct {
	Path string `yaml:"path" validate:"required"`
}

// SessionConfig controls the transcript store.
type SessionConfig struct {
	TTLSeconds int `yaml:"ttl_seconds" validate:"min=1"`
}

// Config is the full file configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Bot     BotConfig     `yaml:"bot"`
	Catalog CatalogConfig `yaml:"catalog"`
	Session SessionConfig `yaml:"session"`
}

// envOverrides are the environment knobs layered over the file config.
type envOverrides struct {
	RedisURL    string `envconfig:"REDIS_URL"`
	LogLevel    string `envconfig:"LOG_LEVEL"`
	CatalogPath string `envconfig:"CATALOG_PATH"`
}

// Loaded is the effective configuration after the environment overlay.
type Loaded struct {
	Config
	RedisURL string // empty means in-memory transcripts
}

// Load reads the YAML config file, applies environment overrides and
// validates the result.
func Load(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Config{
		Log:     LogConfig{Level: "info", Format: "console", Output: "stdout"},
		Bot:     BotConfig{ResultLimit: 4},
		Session: SessionConfig{TTLSeconds: 3600},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing YAML: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.CatalogPath != "" {
		cfg.Catalog.Path = env.CatalogPath
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Loaded{Config: cfg, RedisURL: env.RedisURL}, nil
}
