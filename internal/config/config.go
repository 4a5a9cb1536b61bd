package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	SourceGraphQL  = "graphql"
	SourcePostgres = "postgres"
)

// SourceConfig selects and configures where actions are read from.
type SourceConfig struct {
	Kind              string
	IndexerURL        string
	IndexerTimeout    time.Duration
	PgDSN             string
	MaxRetries        int
	RetryBackoff      time.Duration
	Workers           int
	ParallelThreshold int
}

// Validate checks that the selected source has what it needs.
func (c SourceConfig) Validate() error {
	switch c.Kind {
	case SourceGraphQL:
		if c.IndexerURL == "" {
			return fmt.Errorf("indexer url is required")
		}
	case SourcePostgres:
		if c.PgDSN == "" {
			return fmt.Errorf("pg dsn is required")
		}
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", c.Kind, SourceGraphQL, SourcePostgres)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max-retries must not be negative")
	}
	return nil
}

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	Source          SourceConfig
	ListenAddr      string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// LoadServe merges config file, environment variables, and flags into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := load(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("listen-addr", ":3000")
		v.SetDefault("shutdown-timeout", 10*time.Second)
	})
	if err != nil {
		return ServeConfig{}, err
	}

	cfg := ServeConfig{
		Source:          sourceConfig(v),
		ListenAddr:      v.GetString("listen-addr"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
		LogLevel:        v.GetString("log-level"),
	}
	return cfg, nil
}

func load(cfgFile string, flags *pflag.FlagSet, defaults func(*viper.Viper)) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("EVENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("source", SourceGraphQL)
	v.SetDefault("indexer-timeout", 10*time.Second)
	v.SetDefault("max-retries", 2)
	v.SetDefault("retry-backoff", 250*time.Millisecond)
	v.SetDefault("workers", 4)
	v.SetDefault("parallel-threshold", 512)
	v.SetDefault("log-level", "info")
	if defaults != nil {
		defaults(v)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func sourceConfig(v *viper.Viper) SourceConfig {
	return SourceConfig{
		Kind:              strings.ToLower(strings.TrimSpace(v.GetString("source"))),
		IndexerURL:        strings.TrimSpace(v.GetString("indexer-url")),
		IndexerTimeout:    v.GetDuration("indexer-timeout"),
		PgDSN:             v.GetString("pg-dsn"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
		Workers:           v.GetInt("workers"),
		ParallelThreshold: v.GetInt("parallel-threshold"),
	}
}
