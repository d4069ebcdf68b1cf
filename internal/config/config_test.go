package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Format != "markdown" {
		t.Errorf("expected default format markdown, got %q", cfg.Format)
	}
	if cfg.FetchMode != "static" {
		t.Errorf("expected default fetch mode static, got %q", cfg.FetchMode)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.Timeout)
	}
	if cfg.PreserveLinks || cfg.PreserveImages || cfg.IncludeMetadata {
		t.Error("conversion options should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Format = "xml" },
			wantErr: "Format",
		},
		{
			name:    "bad fetch mode",
			mutate:  func(c *Config) { c.FetchMode = "telepathy" },
			wantErr: "FetchMode",
		},
		{
			name:    "zero max depth",
			mutate:  func(c *Config) { c.MaxDepth = 0 },
			wantErr: "MaxDepth",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: "Timeout",
		},
		{
			name:   "dynamic fetch mode is valid",
			mutate: func(c *Config) { c.FetchMode = "dynamic" },
		},
		{
			name:   "yaml format is valid",
			mutate: func(c *Config) { c.Format = "yaml" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to mention %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestConvertConfig(t *testing.T) {
	cfg := Default()
	cfg.PreserveLinks = true
	cfg.IncludeMetadata = true
	cfg.MaxDepth = 64

	cc := cfg.ConvertConfig()
	if !cc.PreserveLinks || cc.PreserveImages || !cc.IncludeMetadata {
		t.Errorf("options not mapped correctly: %+v", cc)
	}
	if cc.MaxDepth != 64 {
		t.Errorf("expected MaxDepth 64, got %d", cc.MaxDepth)
	}
}
