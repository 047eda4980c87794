// Package config handles configuration for the timekeeper server, including
// defaults, a JSON or TOML file overlay, environment variables and
// command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Config holds runtime settings for the timekeeper server.
//
// An empty GRPCHealthAddr disables the gRPC health service and an empty
// S3Bucket disables export archiving.
type Config struct {
	HTTPAddr            string
	GRPCHealthAddr      string
	DatabaseDriver      string
	DatabaseDSN         string
	LogLevel            string
	LogFormat           string
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	HealthProbeInterval time.Duration
	CORSAllowedOrigins  []string
	MetricsEnabled      bool
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
	S3RootUser          string
	S3RootPassword      string
	ArchiveURLValidity  time.Duration
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8001"
	c.GRPCHealthAddr = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "timekeeper.db"
	c.LogLevel = "info"
	c.LogFormat = "auto"
	c.RequestTimeout = 30 * time.Second
	c.ShutdownTimeout = 10 * time.Second
	c.HealthProbeInterval = 10 * time.Second
	c.CORSAllowedOrigins = []string{"*"}
	c.MetricsEnabled = true
	c.S3Region = "us-east-1"
	c.ArchiveURLValidity = 15 * time.Minute
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is required")
	}
	return nil
}

// Load builds a Config by applying defaults, then the config file named by
// the "config" flag, then TIMEKEEPER_* environment variables, and finally
// flags the user set explicitly. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if fs != nil {
		if path, _ := fs.GetString(flagConfig); path != "" {
			if err := loadFile(cfg, path); err != nil {
				return nil, err
			}
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, err
	}

	if fs != nil {
		if err := applyFlags(cfg, fs); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
