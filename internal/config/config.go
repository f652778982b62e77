package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// RequestTimeout bounds one API analysis. On expiry the analysis
	// returns its fallback result.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LLMConfig describes the chat-completion endpoint. It is read once at
// startup and never mutated afterwards.
type LLMConfig struct {
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	Referer    string `mapstructure:"referer"`
	Title      string `mapstructure:"title"`
	APIVersion string `mapstructure:"api_version"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const (
	ProviderOpenRouter = "openrouter"
	ProviderAzure      = "azure"
)

var defaults = map[string]any{
	"server.port":            "8000",
	"server.host":            "0.0.0.0",
	"server.read_timeout":    "30s",
	"server.write_timeout":   "30s",
	"server.request_timeout": "25s",
	"llm.provider":           ProviderOpenRouter,
	"llm.api_key":            "",
	"llm.base_url":           "https://openrouter.ai/api/v1",
	"llm.model":              "openai/gpt-oss-20b:free",
	"llm.referer":            "https://tech-talk-hub-9pws.vercel.app/",
	"llm.title":              "TechTalk Hub",
	"llm.api_version":        "2024-06-01",
	"log.level":              "info",
}

// LoadConfig reads configuration from defaults, an optional config file and
// the environment. configFile may be empty, in which case techtalk.yaml is
// looked up in the working directory.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.api_key", "LLM_API_KEY", "OPENROUTER_API_KEY"); err != nil {
		return nil, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("techtalk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded successfully", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("llm.api_key is required (set LLM_API_KEY or OPENROUTER_API_KEY)")
	}
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderAzure:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url cannot be empty")
	}
	return nil
}

// SlogLevel maps the configured level name onto a slog.Level, defaulting to
// info for unknown names.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
