package normalize

import (
	"context"
	"fmt"
	"math/big"

	"golang.org/x/sync/errgroup"

	"dexEvents/internal/model"
)

// Normalize converts one raw action into its normalized event. It does not
// modify the action and returns the same event for the same inputs.
func Normalize(action model.RawAction, pos Position) (model.Event, error) {
	eventType, err := Classify(action)
	if err != nil {
		return model.Event{}, err
	}

	reserve0, err := Decimalize(action.Reserves0After, action.Asset0.Decimals)
	if err != nil {
		return model.Event{}, fmt.Errorf("reserves0After: %w", err)
	}
	reserve1, err := Decimalize(action.Reserves1After, action.Asset1.Decimals)
	if err != nil {
		return model.Event{}, fmt.Errorf("reserves1After: %w", err)
	}

	event := model.Event{
		Block: model.Block{
			BlockNumber:    action.BlockNumber,
			BlockTimestamp: action.Timestamp,
		},
		TxnID:      action.Transaction,
		TxnIndex:   pos.TxnIndex,
		EventIndex: pos.EventIndex,
		Maker:      action.Pool.ID,
		PairID:     action.Pool.ID,
		Reserves:   model.Reserves{Asset0: reserve0, Asset1: reserve1},
		EventType:  eventType,
	}

	switch eventType {
	case model.EventSwap:
		swap, err := buildSwap(action)
		if err != nil {
			return model.Event{}, err
		}
		event.Swap = swap
	default:
		change, err := buildLiquidityChange(action)
		if err != nil {
			return model.Event{}, err
		}
		event.LiquidityChange = change
	}

	return event, nil
}

func buildSwap(action model.RawAction) (*model.Swap, error) {
	dir, err := SwapDirection(action)
	if err != nil {
		return nil, err
	}

	in, err := Decimalize(dir.RawIn, legDecimals(action, dir.In))
	if err != nil {
		return nil, fmt.Errorf("inbound amount: %w", err)
	}
	out, err := Decimalize(dir.RawOut, legDecimals(action, dir.Out))
	if err != nil {
		return nil, fmt.Errorf("outbound amount: %w", err)
	}
	price, err := dir.PriceNative()
	if err != nil {
		return nil, err
	}

	swap := &model.Swap{PriceNative: price}
	if dir.In == Leg0 {
		swap.Asset0In = &in
		swap.Asset1Out = &out
	} else {
		swap.Asset1In = &in
		swap.Asset0Out = &out
	}
	return swap, nil
}

func buildLiquidityChange(action model.RawAction) (*model.LiquidityChange, error) {
	amount0, err := netAmount(action.Amount0In, action.Amount0Out, action.Asset0.Decimals)
	if err != nil {
		return nil, fmt.Errorf("amount0: %w", err)
	}
	amount1, err := netAmount(action.Amount1In, action.Amount1Out, action.Asset1.Decimals)
	if err != nil {
		return nil, fmt.Errorf("amount1: %w", err)
	}
	return &model.LiquidityChange{Amount0: amount0, Amount1: amount1}, nil
}

// netAmount is |in - out| for one leg, decimalized.
func netAmount(rawIn, rawOut string, decimals uint8) (float64, error) {
	in, err := parseAmount(rawIn)
	if err != nil {
		return 0, err
	}
	out, err := parseAmount(rawOut)
	if err != nil {
		return 0, err
	}
	net := new(big.Int).Sub(in, out)
	return Decimalize(net.Abs(net).String(), decimals)
}

func legDecimals(action model.RawAction, leg Leg) uint8 {
	if leg == Leg0 {
		return action.Asset0.Decimals
	}
	return action.Asset1.Decimals
}

// Normalizer maps whole action lists, optionally in parallel.
type Normalizer struct {
	// Workers bounds concurrent normalization; values <= 1 run sequentially.
	Workers int
	// ParallelThreshold is the minimum batch size that is worth fanning out.
	ParallelThreshold int
}

// NormalizeAll normalizes actions in indexer order. Positions are assigned
// before any fan-out, and the first failure aborts the whole batch.
func (n Normalizer) NormalizeAll(ctx context.Context, actions []model.RawAction) ([]model.Event, error) {
	positions := AssignPositions(actions)
	events := make([]model.Event, len(actions))

	if n.Workers <= 1 || len(actions) < n.ParallelThreshold {
		for i, action := range actions {
			event, err := Normalize(action, positions[i])
			if err != nil {
				return nil, fmt.Errorf("normalize tx %s: %w", action.Transaction, err)
			}
			events[i] = event
		}
		return events, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n.Workers)
	for i := range actions {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			event, err := Normalize(actions[i], positions[i])
			if err != nil {
				return fmt.Errorf("normalize tx %s: %w", actions[i].Transaction, err)
			}
			events[i] = event
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return events, nil
}
