package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "TENDERBOARD_CONFIG"
	datasetPathEnv = "TENDERBOARD_DATASET"
	listenAddrEnv  = "TENDERBOARD_ADDR"
	logLevelEnv    = "TENDERBOARD_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Server  ServerConfig  `yaml:"server"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig locates the source CSV file.
type DatasetConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr                   string `yaml:"addr"`
	ShutdownTimeoutSeconds int    `yaml:"shutdownTimeoutSeconds"`
}

// ShutdownTimeout resolves the graceful-shutdown budget.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// DisplayConfig tunes presentation-facing knobs.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
	TopN     int    `yaml:"topN"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(datasetPathEnv); v != "" {
		c.Dataset.Path = v
	}

	if v := os.Getenv(listenAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Dataset.Path != "" {
		base.Dataset = override.Dataset
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.ShutdownTimeoutSeconds > 0 {
		base.Server.ShutdownTimeoutSeconds = override.Server.ShutdownTimeoutSeconds
	}

	if override.Display.Currency != "" {
		base.Display.Currency = override.Display.Currency
	}
	if override.Display.TopN > 0 {
		base.Display.TopN = override.Display.TopN
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Dataset: DatasetConfig{Path: "data/ted_contract_awards.csv"},
		Server:  ServerConfig{Addr: ":8080", ShutdownTimeoutSeconds: 10},
		Display: DisplayConfig{Currency: "SEK", TopN: 10},
		Logging: LoggingConfig{Level: "info"},
	}
}
