package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"dexEvents/internal/config"
	"dexEvents/internal/indexer"
	"dexEvents/internal/normalize"
	"dexEvents/internal/pipeline"
	"dexEvents/internal/storage/postgres"
)

// newPipeline builds the configured action source and the pipeline on top of
// it. The returned func releases the source.
func newPipeline(ctx context.Context, cfg config.SourceConfig, logger *zap.Logger) (*pipeline.Pipeline, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		source  indexer.ActionSource
		release = func() {}
	)
	switch cfg.Kind {
	case config.SourcePostgres:
		pg, err := postgres.NewSource(ctx, cfg.PgDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		source = pg
		release = pg.Close
	default:
		gql, err := indexer.NewGraphQLSource(indexer.GraphQLConfig{
			URL:          cfg.IndexerURL,
			Timeout:      cfg.IndexerTimeout,
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		source = gql
	}

	normalizer := normalize.Normalizer{
		Workers:           cfg.Workers,
		ParallelThreshold: cfg.ParallelThreshold,
	}

	logger.Info("action source ready",
		zap.String("source", cfg.Kind),
		zap.String("indexer_url", cfg.IndexerURL),
		zap.Int("workers", cfg.Workers),
	)
	return pipeline.New(source, normalizer, logger), release, nil
}
