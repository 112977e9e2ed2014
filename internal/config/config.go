// Package config provides Viper-based configuration for learnmaster.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete learnmaster configuration.
type Config struct {
	Summarizer SummarizerConfig `mapstructure:"summarizer"`
	Clipboard  ClipboardConfig  `mapstructure:"clipboard"`
	Server     ServerConfig     `mapstructure:"server"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	UI         UIConfig         `mapstructure:"ui"`
}

// SummarizerConfig points the form at the study-guide service.
type SummarizerConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ClipboardConfig controls copy feedback.
type ClipboardConfig struct {
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"`
}

// ServerConfig configures `learnmaster serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LLMConfig selects the model behind the service.
type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	Model    string `mapstructure:"model"`
	Endpoint string `mapstructure:"endpoint"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// UIConfig contains terminal settings.
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// Load reads configuration from cfgFile (or the default search path) and
// LEARNMASTER_* environment variables. v may be nil; callers that bind flags
// pass their own instance.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".learnmaster")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/learnmaster")
	}

	v.SetEnvPrefix("LEARNMASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("summarizer.endpoint", "http://localhost:8000/generate")
	v.SetDefault("summarizer.timeout", 3*time.Minute)

	v.SetDefault("clipboard.feedback_delay", 2*time.Second)

	v.SetDefault("server.addr", ":8000")

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.endpoint", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "learnmaster.log")

	v.SetDefault("ui.alt_screen", true)
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Summarizer.Endpoint) == "" {
		return fmt.Errorf("summarizer endpoint must not be empty")
	}
	if cfg.Summarizer.Timeout < 0 {
		return fmt.Errorf("summarizer timeout must not be negative: %s", cfg.Summarizer.Timeout)
	}
	if cfg.Clipboard.FeedbackDelay <= 0 {
		return fmt.Errorf("clipboard feedback delay must be positive: %s", cfg.Clipboard.FeedbackDelay)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	validProviders := map[string]bool{"": true, "ollama": true, "openai": true, "mistral": true}
	if !validProviders[strings.ToLower(cfg.LLM.Provider)] {
		return fmt.Errorf("invalid llm provider: %s (must be ollama, openai, or mistral)", cfg.LLM.Provider)
	}
	return nil
}
