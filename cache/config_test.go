package cache

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FormatVersion != "v1" {
		t.Errorf("expected FormatVersion v1, got %q", cfg.FormatVersion)
	}
	if cfg.DefaultTTL != time.Minute {
		t.Errorf("expected DefaultTTL of one minute, got %v", cfg.DefaultTTL)
	}
	if cfg.DurableCapacity != 200 {
		t.Errorf("expected DurableCapacity 200, got %d", cfg.DurableCapacity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"missing format version", func(c *Config) { c.FormatVersion = "" }, true},
		{"zero ttl", func(c *Config) { c.DefaultTTL = 0 }, true},
		{"negative ttl", func(c *Config) { c.DefaultTTL = -time.Second }, true},
		{"negative capacity", func(c *Config) { c.DurableCapacity = -1 }, true},
		{"zero capacity disables durable bound", func(c *Config) { c.DurableCapacity = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected config to validate, got %v", err)
			}
		})
	}
}
