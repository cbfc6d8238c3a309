// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/OpinaApp/opina-backend/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	minSecretLength = 16
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	Version        string      `mapstructure:"VERSION" yaml:"version"`
}

// DatabaseConfig holds PostgreSQL database connection details.
type DatabaseConfig struct {
	Host         string `mapstructure:"HOST" yaml:"host"`
	Port         int    `mapstructure:"PORT" yaml:"port"`
	User         string `mapstructure:"USER" yaml:"user"`
	Password     string `mapstructure:"PASSWORD" yaml:"password"`
	Name         string `mapstructure:"NAME" yaml:"name"`
	SSLMode      string `mapstructure:"SSL_MODE" yaml:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"MAX_OPEN_CONNS" yaml:"max_open_conns"`
}

// URL returns a postgres:// connection URL suitable for golang-migrate and
// other URL-based database tools.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// RedisConfig holds Redis connection details for the rate limiter.
type RedisConfig struct {
	Address  string `mapstructure:"ADDRESS" yaml:"address"`
	Password string `mapstructure:"PASSWORD" yaml:"password"`
	DB       int    `mapstructure:"DB" yaml:"db"`
	UseTLS   bool   `mapstructure:"USE_TLS" yaml:"use_tls"`
}

// ExternalServices holds credentials for the hosted Supabase project.
type ExternalServices struct {
	SupabaseURL        string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceKey string `mapstructure:"SUPABASE_SERVICE_KEY"`
	SupabaseJWTSecret  string `mapstructure:"SUPABASE_JWT_SECRET"`
	// UseSupabaseStore switches the record client from direct Postgres to
	// the Supabase REST API for deployments without a direct DB connection.
	UseSupabaseStore bool `mapstructure:"USE_SUPABASE_STORE"`
}

// RateLimitConfig holds configuration for the public intake rate limiter.
type RateLimitConfig struct {
	// Maximum submissions per window per client IP on the public form
	FeedbackRequestsPerMinute int `mapstructure:"FEEDBACK_REQUESTS_PER_MINUTE" yaml:"feedback_requests_per_minute"`
	WindowSeconds             int `mapstructure:"WINDOW_SECONDS" yaml:"window_seconds"`
}

// FeedbackConfig holds settings of the public feedback surface.
type FeedbackConfig struct {
	// FormURL is the public URL of the standalone feedback form. The QR
	// endpoint encodes this value.
	FormURL string `mapstructure:"FORM_URL" yaml:"form_url"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server           ServerConfig     `mapstructure:"SERVER" yaml:"server"`
	Database         DatabaseConfig   `mapstructure:"DATABASE" yaml:"database"`
	Redis            RedisConfig      `mapstructure:"REDIS" yaml:"redis"`
	ExternalServices ExternalServices `mapstructure:"EXTERNAL_SERVICES" yaml:"external_services"`
	RateLimit        RateLimitConfig  `mapstructure:"RATE_LIMIT" yaml:"rate_limit"`
	Feedback         FeedbackConfig   `mapstructure:"FEEDBACK" yaml:"feedback"`
}

// IsDevelopment returns true if running in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if running in the production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

// LoadConfig loads configuration from environment variables using Viper,
// applies defaults, unmarshals into Config and validates the result.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "opina_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_OPEN_CONNS", 5)
	v.SetDefault("REDIS.ADDRESS", "localhost:6379")
	v.SetDefault("REDIS.PASSWORD", "")
	v.SetDefault("REDIS.DB", 0)
	v.SetDefault("REDIS.USE_TLS", false)
	v.SetDefault("EXTERNAL_SERVICES.USE_SUPABASE_STORE", false)
	v.SetDefault("RATE_LIMIT.FEEDBACK_REQUESTS_PER_MINUTE", 10)
	v.SetDefault("RATE_LIMIT.WINDOW_SECONDS", 60)
	v.SetDefault("FEEDBACK.FORM_URL", "http://localhost:5173/feedback")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.VERSION", "VERSION"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"REDIS.ADDRESS", "REDIS_ADDRESS"},
		{"REDIS.PASSWORD", "REDIS_PASSWORD"},
		{"REDIS.DB", "REDIS_DB"},
		{"REDIS.USE_TLS", "REDIS_USE_TLS"},
		{"EXTERNAL_SERVICES.SUPABASE_URL", "SUPABASE_URL"},
		{"EXTERNAL_SERVICES.SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY"},
		{"EXTERNAL_SERVICES.SUPABASE_JWT_SECRET", "SUPABASE_JWT_SECRET"},
		{"EXTERNAL_SERVICES.USE_SUPABASE_STORE", "USE_SUPABASE_STORE"},
		{"RATE_LIMIT.FEEDBACK_REQUESTS_PER_MINUTE", "RATE_LIMIT_FEEDBACK_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.WINDOW_SECONDS", "RATE_LIMIT_WINDOW_SECONDS"},
		{"FEEDBACK.FORM_URL", "FEEDBACK_FORM_URL"},
	}

	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"server_port", cfg.Server.Port,
		"db_host", cfg.Database.Host,
		"use_supabase_store", cfg.ExternalServices.UseSupabaseStore,
		"supabase_key", logger.MaskSensitiveString(cfg.ExternalServices.SupabaseServiceKey, 4, 2),
	)

	return &cfg, nil
}

// validateConfig enforces the settings production cannot run without.
// Development deliberately gets away with local defaults.
func validateConfig(cfg *Config) error {
	if cfg.Server.Environment != EnvDevelopment && cfg.Server.Environment != EnvProduction {
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}

	if !cfg.IsProduction() {
		return nil
	}

	if cfg.ExternalServices.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required in production")
	}
	if len(cfg.ExternalServices.SupabaseJWTSecret) < minSecretLength {
		return fmt.Errorf("SUPABASE_JWT_SECRET must be at least %d characters", minSecretLength)
	}
	if cfg.ExternalServices.UseSupabaseStore {
		if cfg.ExternalServices.SupabaseURL == "" || cfg.ExternalServices.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY are required when USE_SUPABASE_STORE is set")
		}
	} else if cfg.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required in production")
	}
	if cfg.Database.SSLMode == "disable" && !cfg.ExternalServices.UseSupabaseStore {
		return fmt.Errorf("DB_SSL_MODE must not be 'disable' in production")
	}

	return nil
}
