package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexEvents/internal/config"
	"dexEvents/internal/storage"
)

func runFetch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFetch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, release, err := newPipeline(ctx, cfg.Source, logger)
	if err != nil {
		return err
	}
	defer release()

	resp, err := p.Events(ctx, cfg.From, cfg.To)
	if err != nil {
		return err
	}

	sink, err := storage.NewJsonlSink(cfg.Out)
	if err != nil {
		return err
	}
	if err := sink.PutEvents(resp.Events); err != nil {
		sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return err
	}

	logger.Info("fetch complete",
		zap.String("from", cfg.From),
		zap.String("to", cfg.To),
		zap.Int("events", len(resp.Events)),
		zap.String("out", cfg.Out),
	)
	return nil
}
