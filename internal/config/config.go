package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// Transport names accepted by the server.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ConnectionStringEnv is the environment variable holding the database DSN.
const ConnectionStringEnv = "COSMOSDB_CONNECTION_STRING"

// ErrMissingConnectionString is returned when no connection string is configured.
var ErrMissingConnectionString = errors.New(ConnectionStringEnv + " environment variable is required")

// Config represents the application configuration.
type Config struct {
	ConnectionString string `mapstructure:"connection_string"`
	Transport        string `mapstructure:"transport"`
	ListenAddr       string `mapstructure:"listen_addr"`
	MetricsAddr      string `mapstructure:"metrics_addr"`
	Verbose          bool   `mapstructure:"verbose"`
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	if c.ConnectionString == "" {
		return ErrMissingConnectionString
	}
	switch c.Transport {
	case TransportStdio:
	case TransportHTTP:
		if c.ListenAddr == "" {
			return fmt.Errorf("listen address is required for %s transport", TransportHTTP)
		}
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	return nil
}

// Connection is a credential-free view of a connection string.
type Connection struct {
	Host     string
	Port     int
	Database string
	Username string
	SSLMode  string
}

// DisplayString returns a human-readable summary of the connection.
func (c Connection) DisplayString() string {
	s := c.Host
	if c.Port > 0 {
		s += ":" + strconv.Itoa(c.Port)
	}
	s += "/" + c.Database
	if c.Username != "" {
		s = c.Username + "@" + s
	}
	return s
}

// ParseDSN parses a PostgreSQL connection string, in URL or key/value form,
// into a Connection. The password is never retained.
func ParseDSN(dsn string) (Connection, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return Connection{}, fmt.Errorf("invalid DSN: %w", err)
	}

	conn := Connection{
		Host:     cfg.Host,
		Port:     int(cfg.Port),
		Database: cfg.Database,
		Username: cfg.User,
	}
	if cfg.TLSConfig != nil {
		conn.SSLMode = "tls"
	} else {
		conn.SSLMode = "disable"
	}
	return conn, nil
}
