package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dexEvents/internal/indexer"
	"dexEvents/internal/model"
	"dexEvents/internal/normalize"
)

var (
	// ErrBadRequest marks a block range the caller has to fix.
	ErrBadRequest = errors.New("bad request")
	// ErrUpstream marks a failure to fetch or normalize indexer data.
	ErrUpstream = errors.New("upstream failure")
)

// Response is the body returned for one events query.
type Response struct {
	Events []model.Event `json:"events"`
}

// Pipeline validates a block range, fetches its actions and normalizes them.
type Pipeline struct {
	source     indexer.ActionSource
	normalizer normalize.Normalizer
	logger     *zap.Logger
}

func New(source indexer.ActionSource, normalizer normalize.Normalizer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{source: source, normalizer: normalizer, logger: logger}
}

// Events answers one query. Range errors wrap ErrBadRequest, everything after
// validation wraps ErrUpstream. No partial results are returned.
func (p *Pipeline) Events(ctx context.Context, from, to string) (Response, error) {
	blockRange, err := indexer.ParseRange(from, to)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	started := time.Now()
	actions, err := p.source.FetchActions(ctx, blockRange)
	if err != nil {
		return Response{}, fmt.Errorf("%w: fetch actions: %w", ErrUpstream, err)
	}

	events, err := p.normalizer.NormalizeAll(ctx, actions)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if events == nil {
		events = []model.Event{}
	}

	p.logger.Debug("events query done",
		zap.Uint64("from", blockRange.From),
		zap.Uint64("to", blockRange.To),
		zap.Int("actions", len(actions)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return Response{Events: events}, nil
}
