package config

import (
	"path/filepath"
	"testing"
	"time"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Port:               "8082",
		DataBackend:        "sqlite",
		SQLiteDBPath:       filepath.Join(t.TempDir(), "fintrack.db"),
		StorageKey:         "financeData",
		AMQPExchange:       "fintrack",
		AMQPQueue:          "ledger_changes",
		MirrorBackend:      "memory",
		MirrorInterval:     30 * time.Second,
		CacheSize:          100,
		CacheTTL:           5 * time.Minute,
		RateLimitPerMinute: 60,
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig(t).Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-numeric port", func(c *Config) { c.Port = "http" }},
		{"port out of range", func(c *Config) { c.Port = "70000" }},
		{"unknown backend", func(c *Config) { c.DataBackend = "redis" }},
		{"empty sqlite path", func(c *Config) { c.SQLiteDBPath = "" }},
		{"empty storage key", func(c *Config) { c.StorageKey = "" }},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost:5672" }},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://localhost:5672"; c.AMQPQueue = "" }},
		{"unknown mirror backend", func(c *Config) { c.MirrorBackend = "s3" }},
		{"google mirror without spreadsheet", func(c *Config) { c.MirrorBackend = "google" }},
		{"mirror interval too short", func(c *Config) { c.MirrorInterval = 100 * time.Millisecond }},
		{"zero cache size", func(c *Config) { c.CacheSize = 0 }},
		{"zero rate limit", func(c *Config) { c.RateLimitPerMinute = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig(t)
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMemoryBackendNeedsNoPath(t *testing.T) {
	c := validConfig(t)
	c.DataBackend = "memory"
	c.SQLiteDBPath = ""
	if err := c.Validate(); err != nil {
		t.Errorf("memory backend should not require a database path: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	c := Load()
	if c.Port != "8082" {
		t.Errorf("default port = %q", c.Port)
	}
	if c.StorageKey != "financeData" {
		t.Errorf("default storage key = %q", c.StorageKey)
	}
	if c.MirrorInterval != 30*time.Second {
		t.Errorf("default mirror interval = %v", c.MirrorInterval)
	}
}
