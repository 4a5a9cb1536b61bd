package indexer

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/hasura/go-graphql-client"
	"go.uber.org/zap"

	"dexEvents/internal/model"
)

// GraphQLConfig configures the indexer GraphQL client.
type GraphQLConfig struct {
	URL          string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

// GraphQLSource queries pool actions from the indexer's GraphQL endpoint.
type GraphQLSource struct {
	cfg    GraphQLConfig
	client *graphql.Client
	logger *zap.Logger
}

type actionsQuery struct {
	Actions []actionNode `graphql:"actions(where: {blockNumber_gte: $fromBlock, blockNumber_lte: $toBlock}, orderBy: [blockNumber_ASC, timestamp_ASC])"`
}

// NewGraphQLSource builds a GraphQLSource for the configured endpoint.
func NewGraphQLSource(cfg GraphQLConfig, logger *zap.Logger) (*GraphQLSource, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("indexer url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	return &GraphQLSource{
		cfg:    cfg,
		client: graphql.NewClient(cfg.URL, httpClient),
		logger: logger,
	}, nil
}

// FetchActions runs one actions query for the range, retrying transport failures.
func (s *GraphQLSource) FetchActions(ctx context.Context, blockRange BlockRange) ([]model.RawAction, error) {
	if blockRange.From > math.MaxInt32 || blockRange.To > math.MaxInt32 {
		return nil, fmt.Errorf("block range %d-%d exceeds graphql Int", blockRange.From, blockRange.To)
	}
	variables := map[string]interface{}{
		"fromBlock": graphql.Int(blockRange.From),
		"toBlock":   graphql.Int(blockRange.To),
	}

	var query actionsQuery
	err := withRetry(ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		query = actionsQuery{}
		err := s.client.Query(ctx, &query, variables, graphql.OperationName("Actions"))
		if err != nil {
			s.logger.Warn("indexer query failed", zap.Error(err), zap.Uint64("from", blockRange.From), zap.Uint64("to", blockRange.To))
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}

	actions := make([]model.RawAction, 0, len(query.Actions))
	for _, node := range query.Actions {
		action, err := buildRawAction(node)
		if err != nil {
			return nil, fmt.Errorf("action in tx %s: %w", node.Transaction, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}
