package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "eventsapi",
		Short:        "Normalized DEX pool events over HTTP",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the events API",
		RunE:  runServe,
	}

	serveCmd.Flags().String("listen-addr", ":3000", "HTTP listen address")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	addSourceFlags(serveCmd.Flags())

	root.AddCommand(serveCmd)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Normalize one block range and write events as JSONL",
		RunE:  runFetch,
	}

	fetchCmd.Flags().String("from", "", "start block (inclusive)")
	fetchCmd.Flags().String("to", "", "end block (inclusive)")
	fetchCmd.Flags().String("out", "-", "output JSONL path, - for stdout")
	addSourceFlags(fetchCmd.Flags())

	root.AddCommand(fetchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSourceFlags(flags *pflag.FlagSet) {
	flags.String("source", "graphql", "action source (graphql, postgres)")
	flags.String("indexer-url", "", "indexer GraphQL endpoint")
	flags.Duration("indexer-timeout", 10*time.Second, "indexer request timeout")
	flags.String("pg-dsn", "", "indexer Postgres DSN (source=postgres)")
	flags.Int("max-retries", 2, "maximum retry attempts per indexer query")
	flags.Duration("retry-backoff", 250*time.Millisecond, "initial retry backoff")
	flags.Int("workers", 4, "normalization workers")
	flags.Int("parallel-threshold", 512, "minimum actions before normalizing in parallel")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
