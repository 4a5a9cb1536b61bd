package storage

import "dexEvents/internal/model"

// Sink receives normalized events in query order.
type Sink interface {
	PutEvents(events []model.Event) error
	Close() error
}
