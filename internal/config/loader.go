package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "COSMOSCHEMA"

const (
	defaultTransport  = TransportStdio
	defaultListenAddr = "127.0.0.1:8010"
)

// Load builds the configuration from the environment, with any flags in fs
// taking precedence. The connection string is read only from
// COSMOSDB_CONNECTION_STRING; other settings use the COSMOSCHEMA_ prefix.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("transport", defaultTransport)
	v.SetDefault("listen_addr", defaultListenAddr)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("verbose", false)

	if err := v.BindEnv("connection_string", ConnectionStringEnv); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if fs != nil {
		for _, key := range []string{"transport", "listen_addr", "metrics_addr", "verbose"} {
			flag := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", flag.Name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConnectionString = strings.TrimSpace(cfg.ConnectionString)
	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
