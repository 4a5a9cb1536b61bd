package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownActionType is returned for an action type tag outside the supported set.
var ErrUnknownActionType = errors.New("unknown action type")

// ActionType is the indexer's tag for a pool operation.
type ActionType string

const (
	ActionAddLiquidity    ActionType = "ADD_LIQUIDITY"
	ActionRemoveLiquidity ActionType = "REMOVE_LIQUIDITY"
	ActionSwap            ActionType = "SWAP"
)

// ParseActionType maps an indexer tag onto ActionType.
func ParseActionType(tag string) (ActionType, error) {
	switch ActionType(tag) {
	case ActionAddLiquidity, ActionRemoveLiquidity, ActionSwap:
		return ActionType(tag), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownActionType, tag)
	}
}

// UnmarshalJSON rejects tags outside the supported set.
func (t *ActionType) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	parsed, err := ParseActionType(tag)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PoolRef identifies the pool an action touched.
type PoolRef struct {
	ID string `json:"id"`
}

// Asset is one side of a pool with its on-chain decimal precision.
type Asset struct {
	ID       string `json:"id"`
	Decimals uint8  `json:"decimals"`
}

// RawAction is a single pool operation as reported by the indexer.
// Amounts and reserves are unsigned base-10 integer strings in the asset's smallest unit.
type RawAction struct {
	Pool           PoolRef    `json:"pool"`
	Asset0         Asset      `json:"asset0"`
	Asset1         Asset      `json:"asset1"`
	Amount0In      string     `json:"amount0In"`
	Amount0Out     string     `json:"amount0Out"`
	Amount1In      string     `json:"amount1In"`
	Amount1Out     string     `json:"amount1Out"`
	Reserves0After string     `json:"reserves0After"`
	Reserves1After string     `json:"reserves1After"`
	Type           ActionType `json:"type"`
	Transaction    string     `json:"transaction"`
	Timestamp      int64      `json:"timestamp"`
	BlockNumber    uint64     `json:"blockNumber"`
}
