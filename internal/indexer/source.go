package indexer

import (
	"context"

	"dexEvents/internal/model"
)

// ActionSource returns the raw pool actions for a block range, ordered by
// block and transaction occurrence.
type ActionSource interface {
	FetchActions(ctx context.Context, blockRange BlockRange) ([]model.RawAction, error)
}
