package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`

	Server     ServerConfig
	OpenRouter OpenRouterConfig
	Scraper    ScraperConfig
	Chat       ChatConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// Addr returns the server listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// OpenRouterConfig holds settings for the hosted completion API.
// An empty APIKey disables LLM calls but not scraping.
type OpenRouterConfig struct {
	APIKey       string        `envconfig:"OPENROUTER_API_KEY" default:""`
	BaseURL      string        `envconfig:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1/chat/completions"`
	Model        string        `envconfig:"OPENROUTER_MODEL" default:"arcee-ai/trinity-large-preview:free"`
	MaxTokens    int           `envconfig:"OPENROUTER_MAX_TOKENS" default:"400"`
	Timeout      time.Duration `envconfig:"OPENROUTER_TIMEOUT" default:"30s"`
	RateLimitRPM int           `envconfig:"OPENROUTER_RATE_LIMIT_RPM" default:"60"`
	Referer      string        `envconfig:"OPENROUTER_HTTP_REFERER" default:"http://localhost:8080"`
	Title        string        `envconfig:"OPENROUTER_APP_TITLE" default:"AI Chatbot Lead Generator"`
}

// ScraperConfig holds website scraping settings
type ScraperConfig struct {
	Workers          int           `envconfig:"SCRAPER_WORKERS" default:"5"`
	FetchTimeout     time.Duration `envconfig:"SCRAPER_FETCH_TIMEOUT" default:"6s"`
	MinLineLength    int           `envconfig:"SCRAPER_MIN_LINE_LENGTH" default:"25"`
	MaxLines         int           `envconfig:"SCRAPER_MAX_LINES" default:"50"`
	MaxContentLength int           `envconfig:"SCRAPER_MAX_CONTENT_LENGTH" default:"4000"`
	MaxContacts      int           `envconfig:"SCRAPER_MAX_CONTACTS" default:"3"`
}

// ChatConfig holds chat session behavior settings
type ChatConfig struct {
	CaptureAfterQuestions int `envconfig:"CHAT_CAPTURE_AFTER_QUESTIONS" default:"3"`
	ContextPages          int `envconfig:"CHAT_CONTEXT_PAGES" default:"3"`
	ContextCharsPerPage   int `envconfig:"CHAT_CONTEXT_CHARS_PER_PAGE" default:"800"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration. A missing OpenRouter API key is
// allowed: the chatbot degrades to canned replies and scraping still works.
func (c *Config) Validate() error {
	if c.Scraper.Workers < 1 {
		return fmt.Errorf("SCRAPER_WORKERS must be at least 1")
	}
	if c.Chat.CaptureAfterQuestions < 1 {
		return fmt.Errorf("CHAT_CAPTURE_AFTER_QUESTIONS must be at least 1")
	}
	return nil
}

// GetLogLevel returns the effective zap log level
func (c *Config) GetLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
