package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FetchConfig holds configuration for the one-shot fetch command.
type FetchConfig struct {
	Source   SourceConfig
	From     string
	To       string
	Out      string
	LogLevel string
}

// LoadFetch merges config file, environment variables, and flags into FetchConfig.
// Block bounds stay strings so they go through the same validation as HTTP queries.
func LoadFetch(cfgFile string, flags *pflag.FlagSet) (FetchConfig, error) {
	v, err := load(cfgFile, flags, func(v *viper.Viper) {
		v.SetDefault("out", "-")
	})
	if err != nil {
		return FetchConfig{}, err
	}

	cfg := FetchConfig{
		Source:   sourceConfig(v),
		From:     v.GetString("from"),
		To:       v.GetString("to"),
		Out:      v.GetString("out"),
		LogLevel: v.GetString("log-level"),
	}
	return cfg, nil
}
