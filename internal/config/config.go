package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration, read from polygrade.yaml (or .json).
type Config struct {
	Listen   string        `yaml:"listen" json:"listen"`
	LogLevel string        `yaml:"log_level" json:"log_level"`
	Redis    RedisConfig   `yaml:"redis" json:"redis"`
	MCP      MCPConfig     `yaml:"mcp" json:"mcp"`
	Metrics  MetricsConfig `yaml:"metrics" json:"metrics"`
}

// RedisConfig enables the verdict cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

type MCPConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Port      int    `yaml:"port" json:"port"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:   ":8080",
		LogLevel: "info",
		Redis: RedisConfig{
			Prefix: "polygrade:verdict:",
			TTL:    24 * time.Hour,
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Port:      8081,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads path on top of Default and applies POLYGRADE_* environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		case strings.ToLower(filepath.Ext(path)) == ".json":
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("POLYGRADE_LISTEN"); ok {
		c.Listen = v
	}
	if v, ok := lookup("POLYGRADE_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("POLYGRADE_REDIS_ADDR"); ok {
		c.Redis.Addr = v
	}
	if v, ok := lookup("POLYGRADE_REDIS_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("POLYGRADE_REDIS_TTL: %w", err)
		}
		c.Redis.TTL = ttl
	}
	if v, ok := lookup("POLYGRADE_MCP_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("POLYGRADE_MCP_PORT: %w", err)
		}
		c.MCP.Port = port
	}
	return nil
}

// Validate rejects settings no component can honour.
func (c Config) Validate() error {
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q (supported: stdio, sse)", c.MCP.Transport)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis ttl must not be negative, got %s", c.Redis.TTL)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}
