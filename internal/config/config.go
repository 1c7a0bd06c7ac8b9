package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Provider is the read-only view of the configuration handed to components.
// Handlers and services depend on this interface rather than on *Config so
// tests can substitute a small mock.
type Provider interface {
	GetAPIBaseURL() string
	GetServerAddr() string
	GetSessionSecret() string
	GetDefaultLanguage() string
	GetLocalesDir() string
	GetLogFormat() string
	GetLogLevel() string
	GetTokenDir() string
	GetSecureCookies() bool
	GetLoginRatePerMinute() int
}

// Config holds all configuration for the application.
type Config struct {
	// APIBaseURL is the root of the remote authentication API.
	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://127.0.0.1:8000"`

	// ServerAddr is the listen address of the web shell.
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// SessionSecret signs the cookies that hold the session tiers and view state.
	SessionSecret string `env:"SESSION_SECRET" envDefault:"change-me-in-production-please!"`

	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"he"`

	// LocalesDir optionally overrides the embedded translations and is watched for changes.
	LocalesDir string `env:"LOCALES_DIR"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`

	// TokenDir is where the CLI keeps its durable token. Empty means the user config dir.
	TokenDir string `env:"TOKEN_DIR"`

	SecureCookies      bool `env:"SECURE_COOKIES" envDefault:"false"`
	LoginRatePerMinute int  `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
}

// New loads configuration from the environment, reading a .env file first when one exists.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse maps the current environment onto a Config without touching .env files.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL must not be empty")
	}
	if len(cfg.SessionSecret) < 16 {
		return nil, fmt.Errorf("config: SESSION_SECRET must be at least 16 bytes")
	}
	if cfg.LoginRatePerMinute <= 0 {
		return nil, fmt.Errorf("config: LOGIN_RATE_PER_MINUTE must be positive, got %d", cfg.LoginRatePerMinute)
	}
	return cfg, nil
}

func (c *Config) GetAPIBaseURL() string      { return c.APIBaseURL }
func (c *Config) GetServerAddr() string      { return c.ServerAddr }
func (c *Config) GetSessionSecret() string   { return c.SessionSecret }
func (c *Config) GetDefaultLanguage() string { return c.DefaultLanguage }
func (c *Config) GetLocalesDir() string      { return c.LocalesDir }
func (c *Config) GetLogFormat() string       { return c.LogFormat }
func (c *Config) GetLogLevel() string        { return c.LogLevel }
func (c *Config) GetTokenDir() string        { return c.TokenDir }
func (c *Config) GetSecureCookies() bool     { return c.SecureCookies }
func (c *Config) GetLoginRatePerMinute() int { return c.LoginRatePerMinute }
