package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// GameRecord is the persisted identity of one simulation run.
type GameRecord struct {
	ID       string
	Scenario string
	Seed     int64
	// Turn is the number of completed turns.
	Turn      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TurnResultRecord is one restaurant's month as persisted per turn.
type TurnResultRecord struct {
	GameID         string
	Turn           int
	RestaurantID   string
	RestaurantName string

	Allocated int
	Served    int
	Capacity  int

	MedianPrice  float64
	Revenue      float64
	COGS         float64
	FixedCosts   float64
	Marketing    float64
	Payroll      float64
	Depreciation float64
	Interest     float64
	Principal    float64

	FundsStart      float64
	FundsEnd        float64
	StockValueStart float64
	StockValueEnd   float64

	Notoriety    float64
	Satisfaction float64

	LostTotal    int
	LostCapacity int
	LostStock    int
	LostOther    int

	Bankrupt  bool
	CreatedAt time.Time
}

// GameStore persists runs and their per-turn results.
type GameStore interface {
	// SaveGame inserts or updates the run record.
	SaveGame(ctx context.Context, game GameRecord) error
	// GetGame returns the run record or ErrNotFound.
	GetGame(ctx context.Context, id string) (GameRecord, error)
	// SaveTurnResults appends the results of one completed turn.
	SaveTurnResults(ctx context.Context, results []TurnResultRecord) error
	// ListTurnResults returns every result for the run ordered by turn then
	// restaurant.
	ListTurnResults(ctx context.Context, gameID string) ([]TurnResultRecord, error)
}

// TelemetryEvent is an operational event recorded during a run.
type TelemetryEvent struct {
	GameID    string
	Turn      int
	Name      string
	Severity  string
	Message   string
	Fields    map[string]string
	Timestamp time.Time
}

// TelemetryStore persists operational telemetry events.
type TelemetryStore interface {
	SaveEvent(ctx context.Context, event TelemetryEvent) error
	ListEvents(ctx context.Context, gameID string) ([]TelemetryEvent, error)
}
