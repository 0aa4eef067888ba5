package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Provider ProviderConfig `yaml:"provider"`
	Chat     ChatConfig     `yaml:"chat"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Name           string   `yaml:"name"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// DatabaseConfig holds SQLite settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ProviderConfig holds LLM provider settings.
// APIKey and BaseURL can be overridden from the environment so
// credentials never have to live in the config file.
type ProviderConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	APIKey         string `yaml:"apiKey"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// ChatConfig holds chat pipeline settings
type ChatConfig struct {
	ClassifierPolicy string `yaml:"classifierPolicy"` // keyword, llm
}

// AuthConfig holds session settings
type AuthConfig struct {
	SessionTTLHours int `yaml:"sessionTtlHours"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// LoadConfig loads the configuration file and applies environment overrides
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.Provider.APIKey = key
	}
	if base := os.Getenv("GROQ_BASE_URL"); base != "" {
		cfg.Provider.BaseURL = base
	}

	if cfg.Provider.TimeoutSeconds <= 0 {
		cfg.Provider.TimeoutSeconds = 30
	}
	if cfg.Auth.SessionTTLHours <= 0 {
		cfg.Auth.SessionTTLHours = 24
	}
	if cfg.Chat.ClassifierPolicy == "" {
		cfg.Chat.ClassifierPolicy = "keyword"
	}

	return &cfg, nil
}
