package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dmitrijs2005/timekeeper/internal/timex"
)

// FileConfig is the on-disk shape of a config file. Absent keys leave the
// current value untouched, so every field is a pointer.
type FileConfig struct {
	HTTPAddr            *string         `json:"http_addr" toml:"http_addr"`
	GRPCHealthAddr      *string         `json:"grpc_health_addr" toml:"grpc_health_addr"`
	DatabaseDriver      *string         `json:"database_driver" toml:"database_driver"`
	DatabaseDSN         *string         `json:"database_dsn" toml:"database_dsn"`
	LogLevel            *string         `json:"log_level" toml:"log_level"`
	LogFormat           *string         `json:"log_format" toml:"log_format"`
	RequestTimeout      *timex.Duration `json:"request_timeout" toml:"request_timeout"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout" toml:"shutdown_timeout"`
	HealthProbeInterval *timex.Duration `json:"health_probe_interval" toml:"health_probe_interval"`
	CORSAllowedOrigins  []string        `json:"cors_allowed_origins" toml:"cors_allowed_origins"`
	MetricsEnabled      *bool           `json:"metrics_enabled" toml:"metrics_enabled"`
	S3Bucket            *string         `json:"s3_bucket" toml:"s3_bucket"`
	S3Region            *string         `json:"s3_region" toml:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint" toml:"s3_base_endpoint"`
	S3RootUser          *string         `json:"s3_root_user" toml:"s3_root_user"`
	S3RootPassword      *string         `json:"s3_root_password" toml:"s3_root_password"`
	ArchiveURLValidity  *timex.Duration `json:"archive_url_validity" toml:"archive_url_validity"`
}

// loadFile overlays cfg with the file at path. The format follows the
// extension: .toml is TOML, anything else is JSON.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	fc := &FileConfig{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, fc)
	} else {
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.HTTPAddr, fc.HTTPAddr)
	setString(&cfg.GRPCHealthAddr, fc.GRPCHealthAddr)
	setString(&cfg.DatabaseDriver, fc.DatabaseDriver)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.HealthProbeInterval != nil {
		cfg.HealthProbeInterval = fc.HealthProbeInterval.Duration
	}
	if fc.CORSAllowedOrigins != nil {
		cfg.CORSAllowedOrigins = fc.CORSAllowedOrigins
	}
	if fc.MetricsEnabled != nil {
		cfg.MetricsEnabled = *fc.MetricsEnabled
	}
	setString(&cfg.S3Bucket, fc.S3Bucket)
	setString(&cfg.S3Region, fc.S3Region)
	setString(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&cfg.S3RootUser, fc.S3RootUser)
	setString(&cfg.S3RootPassword, fc.S3RootPassword)
	if fc.ArchiveURLValidity != nil {
		cfg.ArchiveURLValidity = fc.ArchiveURLValidity.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
