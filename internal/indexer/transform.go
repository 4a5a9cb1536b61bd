package indexer

import (
	"dexEvents/internal/model"
)

type assetNode struct {
	ID       string `graphql:"id"`
	Decimals uint8  `graphql:"decimals"`
}

type actionNode struct {
	Pool struct {
		ID string `graphql:"id"`
	} `graphql:"pool"`
	Asset0         assetNode `graphql:"asset0"`
	Asset1         assetNode `graphql:"asset1"`
	Amount0In      string    `graphql:"amount0In"`
	Amount0Out     string    `graphql:"amount0Out"`
	Amount1In      string    `graphql:"amount1In"`
	Amount1Out     string    `graphql:"amount1Out"`
	Reserves0After string    `graphql:"reserves0After"`
	Reserves1After string    `graphql:"reserves1After"`
	Type           string    `graphql:"type"`
	Transaction    string    `graphql:"transaction"`
	Timestamp      int64     `graphql:"timestamp"`
	BlockNumber    uint64    `graphql:"blockNumber"`
}

func buildRawAction(node actionNode) (model.RawAction, error) {
	actionType, err := model.ParseActionType(node.Type)
	if err != nil {
		return model.RawAction{}, err
	}

	return model.RawAction{
		Pool:           model.PoolRef{ID: node.Pool.ID},
		Asset0:         model.Asset{ID: node.Asset0.ID, Decimals: node.Asset0.Decimals},
		Asset1:         model.Asset{ID: node.Asset1.ID, Decimals: node.Asset1.Decimals},
		Amount0In:      node.Amount0In,
		Amount0Out:     node.Amount0Out,
		Amount1In:      node.Amount1In,
		Amount1Out:     node.Amount1Out,
		Reserves0After: node.Reserves0After,
		Reserves1After: node.Reserves1After,
		Type:           actionType,
		Transaction:    node.Transaction,
		Timestamp:      node.Timestamp,
		BlockNumber:    node.BlockNumber,
	}, nil
}
