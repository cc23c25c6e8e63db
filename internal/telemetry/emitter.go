// Package telemetry records operational events emitted by the engine.
package telemetry

import (
	"context"
	"time"

	"github.com/louisbranch/foodops/internal/storage"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event names emitted by the engine.
const (
	EventTurnCompleted      = "turn_completed"
	EventRestaurantBankrupt = "restaurant_bankrupt"
	EventDemandLost         = "demand_lost"
	EventStockDiscarded     = "stock_discarded"
)

// Emitter records operational telemetry events.
type Emitter struct {
	store storage.TelemetryStore
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(store storage.TelemetryStore) *Emitter {
	return &Emitter{store: store, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the emitter or its
// store is nil. Severity defaults to INFO and the timestamp to the current
// UTC time.
func (e *Emitter) Emit(ctx context.Context, evt storage.TelemetryEvent) error {
	if e == nil || e.store == nil {
		return nil
	}
	if evt.Severity == "" {
		evt.Severity = string(SeverityInfo)
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	return e.store.SaveEvent(ctx, evt)
}
