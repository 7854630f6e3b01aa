package config

import (
	"testing"

	"github.com/promptveil/promptveil/internal/privacy"
)

func TestGetDefaults(t *testing.T) {
	cfg := GetDefaults()

	if err := validateConfig(cfg); err != nil {
		t.Fatalf("Default configuration invalid: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Engine.BlockThreshold != privacy.DefaultBlockThreshold {
		t.Errorf("Default block threshold = %d, want %d", cfg.Engine.BlockThreshold, privacy.DefaultBlockThreshold)
	}
	if cfg.Cache.Enabled || cfg.Audit.Enabled {
		t.Error("Cache and audit must default to disabled")
	}
	if !cfg.Events.Enabled || cfg.Events.Path != "/ws" {
		t.Errorf("Events defaults wrong: enabled=%v path=%q", cfg.Events.Enabled, cfg.Events.Path)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"PortZero", func(c *Config) { c.Server.Port = 0 }},
		{"PortTooLarge", func(c *Config) { c.Server.Port = 70000 }},
		{"ThresholdNegative", func(c *Config) { c.Engine.BlockThreshold = -1 }},
		{"ThresholdOverHundred", func(c *Config) { c.Engine.BlockThreshold = 101 }},
		{"MaxInputZero", func(c *Config) { c.Engine.MaxInputLength = 0 }},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "verbose" }},
		{"BadLogFormat", func(c *Config) { c.Logging.Format = "xml" }},
		{"CacheWithoutURL", func(c *Config) { c.Cache.Enabled = true; c.Cache.RedisURL = "" }},
		{"AuditWithoutURL", func(c *Config) { c.Audit.Enabled = true; c.Audit.DatabaseURL = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := GetDefaults()
			tc.mutate(cfg)
			if err := validateConfig(cfg); err == nil {
				t.Error("Invalid configuration accepted")
			}
		})
	}
}

func TestDetectorWeights(t *testing.T) {
	t.Run("ZeroValuesFallBackToDefaults", func(t *testing.T) {
		var e EngineConfig
		w := e.DetectorWeights()
		if w != privacy.DefaultWeights() {
			t.Errorf("Unset weights = %+v, want defaults", w)
		}
	})

	t.Run("ConfiguredValuesOverride", func(t *testing.T) {
		var e EngineConfig
		e.BlockThreshold = 70
		e.Weights.StructuredHigh = 40
		e.Weights.Email = 5

		w := e.DetectorWeights()
		if w.BlockThreshold != 70 || w.StructuredHigh != 40 || w.Email != 5 {
			t.Errorf("Overrides not applied: %+v", w)
		}
		if w.KeywordHigh != privacy.DefaultWeightKeywordHigh {
			t.Errorf("Untouched weight changed: %d", w.KeywordHigh)
		}
	})
}
