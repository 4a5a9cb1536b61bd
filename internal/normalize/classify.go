package normalize

import (
	"errors"
	"fmt"

	"dexEvents/internal/model"
)

// ErrMalformedSwap is returned when a swap does not have exactly one inbound
// and one outbound leg on opposite assets.
var ErrMalformedSwap = errors.New("malformed swap")

// Classify maps an action type onto its canonical event type.
func Classify(action model.RawAction) (model.EventType, error) {
	switch action.Type {
	case model.ActionAddLiquidity:
		return model.EventJoin, nil
	case model.ActionRemoveLiquidity:
		return model.EventExit, nil
	case model.ActionSwap:
		return model.EventSwap, nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrUnknownActionType, action.Type)
	}
}

// Leg identifies a pool side.
type Leg int

const (
	Leg0 Leg = iota
	Leg1
)

// Direction describes which asset entered and which left the pool in a swap,
// with the raw (pre-decimal) amounts of each leg.
type Direction struct {
	In     Leg
	Out    Leg
	RawIn  string
	RawOut string
}

// SwapDirection inspects a swap's amounts and picks the single nonzero in-leg
// and out-leg.
func SwapDirection(action model.RawAction) (Direction, error) {
	in0, err := isNonZero(action.Amount0In)
	if err != nil {
		return Direction{}, fmt.Errorf("amount0In: %w", err)
	}
	in1, err := isNonZero(action.Amount1In)
	if err != nil {
		return Direction{}, fmt.Errorf("amount1In: %w", err)
	}
	out0, err := isNonZero(action.Amount0Out)
	if err != nil {
		return Direction{}, fmt.Errorf("amount0Out: %w", err)
	}
	out1, err := isNonZero(action.Amount1Out)
	if err != nil {
		return Direction{}, fmt.Errorf("amount1Out: %w", err)
	}

	if in0 == in1 {
		return Direction{}, fmt.Errorf("%w: tx %s needs exactly one inbound leg", ErrMalformedSwap, action.Transaction)
	}
	if out0 == out1 {
		return Direction{}, fmt.Errorf("%w: tx %s needs exactly one outbound leg", ErrMalformedSwap, action.Transaction)
	}

	dir := Direction{In: Leg0, Out: Leg1, RawIn: action.Amount0In, RawOut: action.Amount1Out}
	if in1 {
		dir = Direction{In: Leg1, Out: Leg0, RawIn: action.Amount1In, RawOut: action.Amount0Out}
	}
	if (dir.Out == Leg0 && !out0) || (dir.Out == Leg1 && !out1) {
		return Direction{}, fmt.Errorf("%w: tx %s swaps an asset for itself", ErrMalformedSwap, action.Transaction)
	}
	return dir, nil
}

// PriceNative is the raw inbound amount divided by the raw outbound amount.
func (d Direction) PriceNative() (float64, error) {
	in, err := rawFloat(d.RawIn)
	if err != nil {
		return 0, err
	}
	out, err := rawFloat(d.RawOut)
	if err != nil {
		return 0, err
	}
	if out == 0 {
		return 0, fmt.Errorf("%w: zero outbound amount", ErrMalformedSwap)
	}
	return in / out, nil
}

func isNonZero(raw string) (bool, error) {
	value, err := parseAmount(raw)
	if err != nil {
		return false, err
	}
	return value.Sign() != 0, nil
}
