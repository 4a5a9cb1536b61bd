package normalize

import "dexEvents/internal/model"

// Position is an event's ordinal within its originating transaction.
type Position struct {
	TxnIndex   int
	EventIndex int
}

// IndexAssigner hands out per-transaction positions in order of appearance.
// It is scoped to a single request and must not be shared across requests.
type IndexAssigner struct {
	counters map[string]int
}

func NewIndexAssigner() *IndexAssigner {
	return &IndexAssigner{counters: make(map[string]int)}
}

// Next returns the position of the next action seen for txnID.
func (a *IndexAssigner) Next(txnID string) Position {
	idx := a.counters[txnID]
	a.counters[txnID] = idx + 1
	return Position{TxnIndex: idx, EventIndex: idx}
}

// AssignPositions computes positions for actions in indexer order.
func AssignPositions(actions []model.RawAction) []Position {
	assigner := NewIndexAssigner()
	positions := make([]Position, len(actions))
	for i, action := range actions {
		positions[i] = assigner.Next(action.Transaction)
	}
	return positions
}
