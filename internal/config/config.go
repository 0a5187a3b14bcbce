package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for packages that cannot take injected config.
var globalConfig *Config

// Config holds all environment backed configuration for glow-server.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Auth
	AuthSecret   []byte `env:"AUTH_SECRET,notEmpty"`
	AuthIssuer   string `env:"AUTH_ISSUER" envDefault:"glow"`
	AuthAudience string `env:"AUTH_AUDIENCE" envDefault:"glow-dashboard"`

	// Chat provider
	ChatProviderBaseURL string  `env:"CHAT_PROVIDER_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ChatProviderAPIKey  string  `env:"CHAT_PROVIDER_API_KEY"`
	ChatDefaultModel    string  `env:"CHAT_DEFAULT_MODEL" envDefault:"gpt-4o-mini"`
	ChatDefaultTemp     float32 `env:"CHAT_DEFAULT_TEMPERATURE" envDefault:"0.7"`
	ChatDefaultMaxTok   int     `env:"CHAT_DEFAULT_MAX_TOKENS" envDefault:"800"`
	ChatContextWindow   int     `env:"CHAT_CONTEXT_WINDOW" envDefault:"10"`

	// Image provider
	ImageProviderBaseURL string `env:"IMAGE_PROVIDER_BASE_URL" envDefault:"https://api.openai.com/v1"`
	ImageProviderAPIKey  string `env:"IMAGE_PROVIDER_API_KEY"`
	ImageModel           string `env:"IMAGE_MODEL" envDefault:"dall-e-3"`
	ImageSize            string `env:"IMAGE_SIZE" envDefault:"1024x1024"`

	// Credits
	ChatCreditCost    int `env:"CHAT_CREDIT_COST" envDefault:"1"`
	ImageCreditCost   int `env:"IMAGE_CREDIT_COST" envDefault:"5"`
	SignupCreditGrant int `env:"SIGNUP_CREDIT_GRANT" envDefault:"25"`

	// File uploads
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`
	ChunkSize      int   `env:"CHUNK_SIZE" envDefault:"500"`
	ChunkOverlap   int   `env:"CHUNK_OVERLAP" envDefault:"50"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"glow-server"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"glow"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.ChatProviderBaseURL); err != nil {
		return nil, fmt.Errorf("invalid CHAT_PROVIDER_BASE_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(cfg.ImageProviderBaseURL); err != nil {
		return nil, fmt.Errorf("invalid IMAGE_PROVIDER_BASE_URL: %w", err)
	}

	if cfg.ChatCreditCost < 0 || cfg.ImageCreditCost < 0 {
		return nil, errors.New("credit costs must not be negative")
	}
	if cfg.ChatContextWindow < 1 {
		return nil, errors.New("CHAT_CONTEXT_WINDOW must be at least 1")
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, errors.New("CHUNK_OVERLAP must be smaller than CHUNK_SIZE")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
