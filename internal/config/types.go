package config

import (
	"time"

	"github.com/promptveil/promptveil/internal/privacy"
)

// Config represents the main configuration structure
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Engine   EngineConfig   `yaml:"engine" mapstructure:"engine"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Audit    AuditConfig    `yaml:"audit" mapstructure:"audit"`
	Events   EventsConfig   `yaml:"events" mapstructure:"events"`
	Security SecurityConfig `yaml:"security" mapstructure:"security"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port" mapstructure:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// EngineConfig tunes the detection engine. Weights and the block
// threshold default to the engine's stock model when left at zero.
type EngineConfig struct {
	BlockThreshold    int `yaml:"block_threshold" mapstructure:"block_threshold"`
	MaxInputLength    int `yaml:"max_input_length" mapstructure:"max_input_length"`
	MaxMatchesPerRule int `yaml:"max_matches_per_rule" mapstructure:"max_matches_per_rule"`
	Weights           struct {
		StructuredHigh   int `yaml:"structured_high" mapstructure:"structured_high"`
		StructuredMedium int `yaml:"structured_medium" mapstructure:"structured_medium"`
		StructuredLow    int `yaml:"structured_low" mapstructure:"structured_low"`
		Email            int `yaml:"email" mapstructure:"email"`
		KeywordHigh      int `yaml:"keyword_high" mapstructure:"keyword_high"`
		KeywordMedium    int `yaml:"keyword_medium" mapstructure:"keyword_medium"`
		KeywordLow       int `yaml:"keyword_low" mapstructure:"keyword_low"`
	} `yaml:"weights" mapstructure:"weights"`
}

// DetectorWeights converts the configured weights into the engine's
// scoring model, filling unset fields from the defaults.
func (e EngineConfig) DetectorWeights() privacy.Weights {
	w := privacy.DefaultWeights()
	if e.Weights.StructuredHigh > 0 {
		w.StructuredHigh = e.Weights.StructuredHigh
	}
	if e.Weights.StructuredMedium > 0 {
		w.StructuredMedium = e.Weights.StructuredMedium
	}
	if e.Weights.StructuredLow > 0 {
		w.StructuredLow = e.Weights.StructuredLow
	}
	if e.Weights.Email > 0 {
		w.Email = e.Weights.Email
	}
	if e.Weights.KeywordHigh > 0 {
		w.KeywordHigh = e.Weights.KeywordHigh
	}
	if e.Weights.KeywordMedium > 0 {
		w.KeywordMedium = e.Weights.KeywordMedium
	}
	if e.Weights.KeywordLow > 0 {
		w.KeywordLow = e.Weights.KeywordLow
	}
	if e.BlockThreshold > 0 {
		w.BlockThreshold = e.BlockThreshold
	}
	return w
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
		Path    string `yaml:"path" mapstructure:"path"`
	} `yaml:"file" mapstructure:"file"`
}

// CacheConfig contains the optional Redis scan-result cache settings
type CacheConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	RedisURL       string        `yaml:"redis_url" mapstructure:"redis_url"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinIdleConns   int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DefaultTTL     time.Duration `yaml:"default_ttl" mapstructure:"default_ttl"`
	KeyPrefix      string        `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// AuditConfig contains the optional Postgres audit sink settings
type AuditConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	DatabaseURL     string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// EventsConfig contains the WebSocket event feed configuration
type EventsConfig struct {
	Enabled             bool     `yaml:"enabled" mapstructure:"enabled"`
	Path                string   `yaml:"path" mapstructure:"path"`
	AllowedOrigins      []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	BroadcastDetections bool     `yaml:"broadcast_detections" mapstructure:"broadcast_detections"`
	BroadcastRequests   bool     `yaml:"broadcast_requests" mapstructure:"broadcast_requests"`
	BroadcastSystem     bool     `yaml:"broadcast_system" mapstructure:"broadcast_system"`
	BroadcastConns      bool     `yaml:"broadcast_connections" mapstructure:"broadcast_connections"`
}

// SecurityConfig contains rate limiting configuration
type SecurityConfig struct {
	RateLimit struct {
		Enabled        bool `yaml:"enabled" mapstructure:"enabled"`
		RequestsPerMin int  `yaml:"requests_per_min" mapstructure:"requests_per_min"`
		Burst          int  `yaml:"burst" mapstructure:"burst"`
	} `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// GetDefaults returns a configuration with sensible defaults
func GetDefaults() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Engine: EngineConfig{
			BlockThreshold:    privacy.DefaultBlockThreshold,
			MaxInputLength:    32 * 1024,
			MaxMatchesPerRule: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Cache: CacheConfig{
			Enabled:        false,
			RedisURL:       "redis://localhost:6379/0",
			MaxConnections: 10,
			MinIdleConns:   2,
			DefaultTTL:     5 * time.Minute,
			KeyPrefix:      "promptveil:scan:",
		},
		Audit: AuditConfig{
			Enabled:         false,
			DatabaseURL:     "postgres://localhost:5432/promptveil?sslmode=disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Events: EventsConfig{
			Enabled:             true,
			Path:                "/ws",
			AllowedOrigins:      []string{"*"},
			BroadcastDetections: true,
			BroadcastRequests:   true,
			BroadcastSystem:     true,
			BroadcastConns:      true,
		},
	}
	cfg.Logging.File.Path = "logs/promptveil.log"
	cfg.Security.RateLimit.Enabled = true
	cfg.Security.RateLimit.RequestsPerMin = 300
	cfg.Security.RateLimit.Burst = 50
	return cfg
}
