package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/loykin/sidekick/internal/launcher"
	"github.com/loykin/sidekick/internal/logger"
)

// Config is the top-level TOML structure for the sidekick daemon.
//
// Example:
//
//	[sidecar]
//	name = "backend"
//	command = "backend-server --port 8000"
//	autostart = true
//	autostart_delay = "500ms"
//	stop_grace = "3s"
//
//	[sidecar.log]
//	dir = "/var/log/sidekick"
//
//	[server]
//	listen = "127.0.0.1:8080"
//	base_path = "/api"
//
//	[metrics]
//	enabled = true
//	listen = ":9091"
//
//	[history]
//	enabled = true
//	dsn = "sqlite:///var/lib/sidekick/history.db"
type Config struct {
	Sidecar SidecarConfig  `mapstructure:"sidecar"`
	Server  *ServerConfig  `mapstructure:"server"`
	Metrics *MetricsConfig `mapstructure:"metrics"`
	History *HistoryConfig `mapstructure:"history"`
	Log     logger.Options `mapstructure:"log"`
}

// SidecarConfig describes the supervised companion process.
type SidecarConfig struct {
	Name           string        `mapstructure:"name"`
	Command        string        `mapstructure:"command"`
	WorkDir        string        `mapstructure:"workdir"`
	Env            []string      `mapstructure:"env"`
	AutoStart      bool          `mapstructure:"autostart"`
	AutoStartDelay time.Duration `mapstructure:"autostart_delay"`
	StopGrace      time.Duration `mapstructure:"stop_grace"`
	Log            logger.Config `mapstructure:"log"`
}

// Spec converts the sidecar section into a launcher spec.
func (c SidecarConfig) Spec() launcher.Spec {
	return launcher.Spec{
		Name:      c.Name,
		Command:   c.Command,
		WorkDir:   c.WorkDir,
		Env:       c.Env,
		StopGrace: c.StopGrace,
		Log:       c.Log,
	}
}

// ServerConfig configures the HTTP control API.
type ServerConfig struct {
	Listen   string `mapstructure:"listen"`
	BasePath string `mapstructure:"base_path"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// HistoryConfig configures the lifecycle event sink.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// LoadConfig parses a TOML config file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Sidecar.Command == "" {
		return fmt.Errorf("sidecar.command is required")
	}
	if c.Sidecar.Name == "" {
		c.Sidecar.Name = "sidecar"
	}
	if c.Server != nil && c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:8080"
	}
	if c.History != nil && c.History.Enabled && c.History.DSN == "" {
		return fmt.Errorf("history.dsn is required when history is enabled")
	}
	if c.Metrics != nil && c.Metrics.Enabled && c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9091"
	}
	return nil
}
