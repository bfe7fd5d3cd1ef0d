package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	// GeminiAPIKey enables the rich generator. Empty means template-only.
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	Model        string        `env:"WORLDFORGE_MODEL" envDefault:"gemini-2.5-flash"`
	UseExternal  bool          `env:"WORLDFORGE_USE_EXTERNAL" envDefault:"true"`
	Creativity   float64       `env:"WORLDFORGE_CREATIVITY" envDefault:"0.7"`
	LLMTimeout   time.Duration `env:"WORLDFORGE_LLM_TIMEOUT" envDefault:"45s"`

	IncludeNPCs  bool `env:"WORLDFORGE_INCLUDE_NPCS" envDefault:"true"`
	IncludeProps bool `env:"WORLDFORGE_INCLUDE_PROPS" envDefault:"true"`
	IncludeExits bool `env:"WORLDFORGE_INCLUDE_EXITS" envDefault:"true"`

	SaveDir string `env:"WORLDFORGE_SAVE_DIR" envDefault:".saves"`

	LogLevel   string `env:"WORLDFORGE_LOG_LEVEL" envDefault:"INFO"`
	LogFormat  string `env:"WORLDFORGE_LOG_FORMAT" envDefault:"text"`
	LogConsole bool   `env:"WORLDFORGE_LOG_CONSOLE" envDefault:"true"`
	LogFile    string `env:"WORLDFORGE_LOG_FILE"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Creativity = min(max(cfg.Creativity, 0), 1)
	return &cfg, nil
}

// ExternalEnabled reports whether the rich generator should be tried.
func (c *Config) ExternalEnabled() bool {
	return c.UseExternal && c.GeminiAPIKey != ""
}
