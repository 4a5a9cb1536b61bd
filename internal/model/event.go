package model

// EventType is the canonical kind of a normalized event.
type EventType string

const (
	EventJoin EventType = "join"
	EventExit EventType = "exit"
	EventSwap EventType = "swap"
)

// Block locates an event on chain.
type Block struct {
	BlockNumber    uint64 `json:"blockNumber"`
	BlockTimestamp int64  `json:"blockTimestamp"`
}

// Reserves holds the decimalized pool reserves after the event.
type Reserves struct {
	Asset0 float64 `json:"asset0"`
	Asset1 float64 `json:"asset1"`
}

// LiquidityChange carries the per-leg amounts of a join or exit.
type LiquidityChange struct {
	Amount0 float64 `json:"amount0"`
	Amount1 float64 `json:"amount1"`
}

// Swap carries one inbound leg, one outbound leg and the raw price ratio.
// Exactly one of Asset0In/Asset1In and one of Asset0Out/Asset1Out is set.
type Swap struct {
	Asset0In    *float64 `json:"asset0In,omitempty"`
	Asset1In    *float64 `json:"asset1In,omitempty"`
	Asset0Out   *float64 `json:"asset0Out,omitempty"`
	Asset1Out   *float64 `json:"asset1Out,omitempty"`
	PriceNative float64  `json:"priceNative"`
}

// Event is a normalized pool event. Exactly one of the embedded variants is
// non-nil, matching EventType; the nil one contributes no JSON fields.
type Event struct {
	Block      Block     `json:"block"`
	TxnID      string    `json:"txnId"`
	TxnIndex   int       `json:"txnIndex"`
	EventIndex int       `json:"eventIndex"`
	Maker      string    `json:"maker"`
	PairID     string    `json:"pairId"`
	Reserves   Reserves  `json:"reserves"`
	EventType  EventType `json:"eventType"`

	*LiquidityChange
	*Swap
}
