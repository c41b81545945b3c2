// Package config provides configuration management for the Trackside application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Bots      BotsConfig      `mapstructure:"bots" validate:"required"`
	OddsFeed  OddsFeedConfig  `mapstructure:"odds_feed" validate:"required"`
	Ingestion IngestionConfig `mapstructure:"ingestion" validate:"required"`
	Wagering  WageringConfig  `mapstructure:"wagering" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Health    HealthConfig    `mapstructure:"health" validate:"required"`
	Features  FeaturesConfig  `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// BotsConfig represents Gemini analysis bot configuration
type BotsConfig struct {
	APIKey               string `mapstructure:"api_key"`
	Model                string `mapstructure:"model"`
	TimeoutSeconds       int    `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds      int    `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize         int    `mapstructure:"cache_max_size" validate:"required,gt=0"`
	MaxFailureCount      int    `mapstructure:"max_failure_count" validate:"required,gt=0"`
	FailureWindowSeconds int    `mapstructure:"failure_window_seconds" validate:"required,gt=0"`
	CooldownSeconds      int    `mapstructure:"cooldown_seconds" validate:"required,gt=0"`
}

// OddsFeedConfig represents the live odds provider configuration
type OddsFeedConfig struct {
	APIURL                string  `mapstructure:"api_url" validate:"required,url"`
	StreamURL             string  `mapstructure:"stream_url" validate:"required"`
	APIKey                string  `mapstructure:"api_key"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RequestsPerSecond     float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	BurstSize             int     `mapstructure:"burst_size" validate:"required,gt=0"`
}

// IngestionConfig represents card ingestion configuration
type IngestionConfig struct {
	CardDir  string         `mapstructure:"card_dir" validate:"required"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// ScheduleConfig represents card sync and odds polling scheduling
type ScheduleConfig struct {
	CardSync                   string `mapstructure:"card_sync" validate:"required"`
	LivePollingIntervalSeconds int    `mapstructure:"live_polling_interval_seconds" validate:"required,gt=0"`
}

// WageringConfig represents ticket pricing configuration
type WageringConfig struct {
	ExactaUnit   float64 `mapstructure:"exacta_unit" validate:"required,gt=0"`
	TrifectaUnit float64 `mapstructure:"trifecta_unit" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health endpoint configuration
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	BotsEnabled     bool `mapstructure:"bots_enabled"`
	LiveOddsEnabled bool `mapstructure:"live_odds_enabled"`
	PersistEnabled  bool `mapstructure:"persist_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// BotTimeout returns the bot call timeout as a duration
func (c *Config) BotTimeout() time.Duration {
	return time.Duration(c.Bots.TimeoutSeconds) * time.Second
}

// LivePollingInterval returns the odds polling interval as a duration
func (c *Config) LivePollingInterval() time.Duration {
	return time.Duration(c.Ingestion.Schedule.LivePollingIntervalSeconds) * time.Second
}
