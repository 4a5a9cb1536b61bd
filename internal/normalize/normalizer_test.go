package normalize

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"dexEvents/internal/model"
)

func fixtureActions() []model.RawAction {
	return []model.RawAction{
		{
			Pool:           model.PoolRef{ID: "pool1"},
			Asset0:         model.Asset{ID: "asset0", Decimals: 6},
			Asset1:         model.Asset{ID: "asset1", Decimals: 9},
			Amount0In:      "500",
			Amount0Out:     "0",
			Amount1In:      "0",
			Amount1Out:     "1000",
			Reserves0After: "1000",
			Reserves1After: "2001",
			Type:           model.ActionAddLiquidity,
			Transaction:    "txn1",
			Timestamp:      1234567890,
			BlockNumber:    1,
		},
		{
			Pool:           model.PoolRef{ID: "pool2"},
			Asset0:         model.Asset{ID: "asset0", Decimals: 9},
			Asset1:         model.Asset{ID: "asset1", Decimals: 9},
			Amount0In:      "300",
			Amount0Out:     "0",
			Amount1In:      "0",
			Amount1Out:     "1001",
			Reserves0After: "2000",
			Reserves1After: "4000",
			Type:           model.ActionSwap,
			Transaction:    "txn2",
			Timestamp:      1234567891,
			BlockNumber:    2,
		},
	}
}

func TestNormalizeJoin(t *testing.T) {
	action := fixtureActions()[0]

	event, err := Normalize(action, Position{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if event.EventType != model.EventJoin || event.Maker != "pool1" || event.PairID != "pool1" {
		t.Fatalf("event mismatch: %+v", event)
	}
	if event.Block != (model.Block{BlockNumber: 1, BlockTimestamp: 1234567890}) || event.TxnID != "txn1" {
		t.Fatalf("block mismatch: %+v", event.Block)
	}
	if event.Reserves != (model.Reserves{Asset0: 1000.0 / 1e6, Asset1: 2001.0 / 1e9}) {
		t.Fatalf("reserves mismatch: %+v", event.Reserves)
	}
	if event.LiquidityChange == nil || event.Swap != nil {
		t.Fatalf("join must carry only the liquidity variant")
	}
	if event.Amount0 != 500.0/1e6 || event.Amount1 != 1000.0/1e9 {
		t.Fatalf("amounts mismatch: %+v", event.LiquidityChange)
	}
}

func TestNormalizeExitNetsLegs(t *testing.T) {
	action := model.RawAction{
		Pool:        model.PoolRef{ID: "pool9"},
		Asset0:      model.Asset{Decimals: 2},
		Asset1:      model.Asset{Decimals: 0},
		Amount0In:   "100",
		Amount0Out:  "350",
		Amount1Out:  "7",
		Type:        model.ActionRemoveLiquidity,
		Transaction: "txn9",
	}

	event, err := Normalize(action, Position{TxnIndex: 2, EventIndex: 2})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if event.EventType != model.EventExit {
		t.Fatalf("event type mismatch: %s", event.EventType)
	}
	if event.Amount0 != 2.5 || event.Amount1 != 7 {
		t.Fatalf("amounts mismatch: %+v", event.LiquidityChange)
	}
	if event.TxnIndex != 2 || event.EventIndex != 2 {
		t.Fatalf("position mismatch: %+v", event)
	}
}

func TestNormalizeSwap(t *testing.T) {
	action := fixtureActions()[1]

	event, err := Normalize(action, Position{})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if event.EventType != model.EventSwap || event.Maker != "pool2" || event.PairID != "pool2" {
		t.Fatalf("event mismatch: %+v", event)
	}
	if event.Swap == nil || event.LiquidityChange != nil {
		t.Fatalf("swap must carry only the swap variant")
	}
	if event.Asset0In == nil || *event.Asset0In != 300.0/1e9 {
		t.Fatalf("asset0In mismatch: %+v", event.Swap)
	}
	if event.Asset1Out == nil || *event.Asset1Out != 1001.0/1e9 {
		t.Fatalf("asset1Out mismatch: %+v", event.Swap)
	}
	if event.Asset1In != nil || event.Asset0Out != nil {
		t.Fatalf("unexpected opposite legs: %+v", event.Swap)
	}
	if event.PriceNative != 0.2997002997002997 {
		t.Fatalf("priceNative mismatch: %v", event.PriceNative)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, action := range fixtureActions() {
		before := action
		first, err := Normalize(action, Position{})
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}
		second, err := Normalize(action, Position{})
		if err != nil {
			t.Fatalf("normalize: %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("normalize is not idempotent: %+v != %+v", first, second)
		}
		if !reflect.DeepEqual(before, action) {
			t.Fatalf("input mutated")
		}
	}
}

func TestNormalizeFailures(t *testing.T) {
	unknown := fixtureActions()[0]
	unknown.Type = "MIGRATE"
	if _, err := Normalize(unknown, Position{}); !errors.Is(err, model.ErrUnknownActionType) {
		t.Fatalf("expected ErrUnknownActionType, got %v", err)
	}

	malformed := fixtureActions()[1]
	malformed.Amount1In = "5"
	if _, err := Normalize(malformed, Position{}); !errors.Is(err, ErrMalformedSwap) {
		t.Fatalf("expected ErrMalformedSwap, got %v", err)
	}

	badReserve := fixtureActions()[0]
	badReserve.Reserves1After = "NaN"
	if _, err := Normalize(badReserve, Position{}); err == nil {
		t.Fatalf("expected reserve parse error")
	}
}

func TestNormalizeAllSequential(t *testing.T) {
	events, err := Normalizer{}.NormalizeAll(context.Background(), fixtureActions())
	if err != nil {
		t.Fatalf("normalize all: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].EventType != model.EventJoin || events[1].EventType != model.EventSwap {
		t.Fatalf("order mismatch: %s, %s", events[0].EventType, events[1].EventType)
	}
	for _, event := range events {
		if event.TxnIndex != 0 || event.EventIndex != 0 {
			t.Fatalf("expected zero positions: %+v", event)
		}
	}
}

func TestNormalizeAllParallelKeepsOrder(t *testing.T) {
	actions := make([]model.RawAction, 0, 200)
	for i := 0; i < 200; i++ {
		action := fixtureActions()[i%2]
		action.Transaction = fmt.Sprintf("txn%d", i/4)
		action.BlockNumber = uint64(i)
		actions = append(actions, action)
	}

	sequential, err := Normalizer{}.NormalizeAll(context.Background(), actions)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parallel, err := Normalizer{Workers: 8, ParallelThreshold: 10}.NormalizeAll(context.Background(), actions)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatalf("parallel output differs from sequential output")
	}
	if parallel[3].EventIndex != 3 || parallel[4].EventIndex != 0 {
		t.Fatalf("positions mismatch: %d, %d", parallel[3].EventIndex, parallel[4].EventIndex)
	}
}

func TestNormalizeAllAbortsOnFailure(t *testing.T) {
	actions := fixtureActions()
	actions = append(actions, model.RawAction{Type: "MIGRATE", Transaction: "txn3"})

	for _, n := range []Normalizer{{}, {Workers: 4, ParallelThreshold: 1}} {
		events, err := n.NormalizeAll(context.Background(), actions)
		if !errors.Is(err, model.ErrUnknownActionType) {
			t.Fatalf("expected ErrUnknownActionType, got %v", err)
		}
		if events != nil {
			t.Fatalf("no partial results expected, got %d events", len(events))
		}
	}
}
