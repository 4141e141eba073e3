// Package config loads the x32ctl YAML configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/x32kit/x32kit/x32"
)

// Config is the x32ctl configuration file.
type Config struct {
	Console ConsoleConfig `yaml:"console"`
}

// ConsoleConfig describes the console endpoint and engine timeouts.
type ConsoleConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	RequestTimeoutMs int    `yaml:"request_timeout_ms"`
	ConnectTimeoutMs int    `yaml:"connect_timeout_ms"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks configuration correctness. It does not mutate
// configuration. The host may stay empty here; command flags can still
// supply it.
func Validate(cfg *Config) error {
	if cfg.Console.Port < 0 || cfg.Console.Port > 65535 {
		return fmt.Errorf("config: console.port %d out of range", cfg.Console.Port)
	}
	if cfg.Console.RequestTimeoutMs < 0 {
		return fmt.Errorf("config: console.request_timeout_ms must not be negative")
	}
	if cfg.Console.ConnectTimeoutMs < 0 {
		return fmt.Errorf("config: console.connect_timeout_ms must not be negative")
	}
	return nil
}

// Engine converts the file representation to the engine's Config. Zero
// values fall through to the engine defaults.
func (c *ConsoleConfig) Engine() x32.Config {
	return x32.Config{
		Host:           c.Host,
		Port:           c.Port,
		RequestTimeout: time.Duration(c.RequestTimeoutMs) * time.Millisecond,
		ConnectTimeout: time.Duration(c.ConnectTimeoutMs) * time.Millisecond,
	}
}
