package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dexEvents/internal/indexer"
	"dexEvents/internal/model"
)

const selectActions = `
	SELECT
		a.pool_id,
		a.asset0_id, t0.decimals,
		a.asset1_id, t1.decimals,
		a.amount0_in::text, a.amount0_out::text,
		a.amount1_in::text, a.amount1_out::text,
		a.reserves0_after::text, a.reserves1_after::text,
		a.type, a.transaction, a.timestamp, a.block_number
	FROM action a
	JOIN asset t0 ON t0.id = a.asset0_id
	JOIN asset t1 ON t1.id = a.asset1_id
	WHERE a.block_number BETWEEN $1 AND $2
	ORDER BY a.block_number, a.timestamp, a.id
`

// Source reads pool actions straight from the indexer's Postgres database.
// It only issues read queries.
type Source struct {
	pool *pgxpool.Pool
}

var _ indexer.ActionSource = (*Source)(nil)

func NewSource(ctx context.Context, dsn string) (*Source, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Source{pool: pool}, nil
}

func (s *Source) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// FetchActions returns the actions recorded in the block range.
func (s *Source) FetchActions(ctx context.Context, blockRange indexer.BlockRange) ([]model.RawAction, error) {
	rows, err := s.pool.Query(ctx, selectActions, int64(blockRange.From), int64(blockRange.To))
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}

	defer rows.Close()

	var actions []model.RawAction
	for rows.Next() {
		action, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		actions = append(actions, action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return actions, nil
}

func scanAction(row pgx.Row) (model.RawAction, error) {
	var (
		action      model.RawAction
		decimals0   int32
		decimals1   int32
		actionType  string
		blockNumber int64
	)
	err := row.Scan(
		&action.Pool.ID,
		&action.Asset0.ID, &decimals0,
		&action.Asset1.ID, &decimals1,
		&action.Amount0In, &action.Amount0Out,
		&action.Amount1In, &action.Amount1Out,
		&action.Reserves0After, &action.Reserves1After,
		&actionType, &action.Transaction, &action.Timestamp, &blockNumber,
	)
	if err != nil {
		return model.RawAction{}, err
	}

	action.Asset0.Decimals, err = toDecimals(decimals0)
	if err != nil {
		return model.RawAction{}, fmt.Errorf("asset0 %s: %w", action.Asset0.ID, err)
	}
	action.Asset1.Decimals, err = toDecimals(decimals1)
	if err != nil {
		return model.RawAction{}, fmt.Errorf("asset1 %s: %w", action.Asset1.ID, err)
	}
	action.Type, err = model.ParseActionType(actionType)
	if err != nil {
		return model.RawAction{}, fmt.Errorf("tx %s: %w", action.Transaction, err)
	}
	if blockNumber < 0 {
		return model.RawAction{}, fmt.Errorf("negative block number %d", blockNumber)
	}
	action.BlockNumber = uint64(blockNumber)
	return action, nil
}

func toDecimals(value int32) (uint8, error) {
	if value < 0 || value > 255 {
		return 0, fmt.Errorf("decimals out of range: %d", value)
	}
	return uint8(value), nil
}
