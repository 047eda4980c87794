package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TIMEKEEPER_HTTP_ADDR.
const EnvPrefix = "TIMEKEEPER"

// loadEnv overlays cfg with the TIMEKEEPER_* variables that are set.
func loadEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	strs := map[string]*string{
		"http_addr":        &cfg.HTTPAddr,
		"grpc_health_addr": &cfg.GRPCHealthAddr,
		"database_driver":  &cfg.DatabaseDriver,
		"database_dsn":     &cfg.DatabaseDSN,
		"log_level":        &cfg.LogLevel,
		"log_format":       &cfg.LogFormat,
		"s3_bucket":        &cfg.S3Bucket,
		"s3_region":        &cfg.S3Region,
		"s3_base_endpoint": &cfg.S3BaseEndpoint,
		"s3_root_user":     &cfg.S3RootUser,
		"s3_root_password": &cfg.S3RootPassword,
	}
	durations := map[string]*time.Duration{
		"request_timeout":       &cfg.RequestTimeout,
		"shutdown_timeout":      &cfg.ShutdownTimeout,
		"health_probe_interval": &cfg.HealthProbeInterval,
		"archive_url_validity":  &cfg.ArchiveURLValidity,
	}

	for key, dst := range strs {
		if err := v.BindEnv(key); err != nil {
			return err
		}
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	for key, dst := range durations {
		if err := v.BindEnv(key); err != nil {
			return err
		}
		if !v.IsSet(key) {
			continue
		}
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return fmt.Errorf("env %s_%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
		*dst = d
	}

	for _, key := range []string{"metrics_enabled", "cors_allowed_origins"} {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	if v.IsSet("metrics_enabled") {
		cfg.MetricsEnabled = v.GetBool("metrics_enabled")
	}
	if v.IsSet("cors_allowed_origins") {
		cfg.CORSAllowedOrigins = splitList(v.GetString("cors_allowed_origins"))
	}

	return nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
