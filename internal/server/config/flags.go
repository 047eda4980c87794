package config

import (
	"github.com/spf13/pflag"
)

const (
	flagConfig         = "config"
	flagHTTPAddr       = "http-addr"
	flagGRPCHealthAddr = "grpc-health-addr"
	flagDatabaseDriver = "db-driver"
	flagDatabaseDSN    = "db-dsn"
	flagLogLevel       = "log-level"
	flagLogFormat      = "log-format"
)

// RegisterFlags adds the server flags to fs. Flags only override the other
// sources when the user sets them.
//
//	-c, --config string          JSON or TOML config file
//	    --http-addr string       HTTP listen address
//	    --grpc-health-addr string gRPC health listen address ("" disables)
//	    --db-driver string       postgres or sqlite
//	-d, --db-dsn string          database DSN or SQLite path
//	    --log-level string       debug, info, warn or error
//	    --log-format string      json, text or auto
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "path to a JSON or TOML config file")
	fs.String(flagHTTPAddr, "", "HTTP listen address")
	fs.String(flagGRPCHealthAddr, "", `gRPC health listen address ("" disables)`)
	fs.String(flagDatabaseDriver, "", "database driver (postgres or sqlite)")
	fs.StringP(flagDatabaseDSN, "d", "", "database DSN or SQLite file path")
	fs.String(flagLogLevel, "", "log level (debug, info, warn, error)")
	fs.String(flagLogFormat, "", "log format (json, text, auto)")
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) error {
	targets := map[string]*string{
		flagHTTPAddr:       &cfg.HTTPAddr,
		flagGRPCHealthAddr: &cfg.GRPCHealthAddr,
		flagDatabaseDriver: &cfg.DatabaseDriver,
		flagDatabaseDSN:    &cfg.DatabaseDSN,
		flagLogLevel:       &cfg.LogLevel,
		flagLogFormat:      &cfg.LogFormat,
	}
	for name, dst := range targets {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}
