// Package memory provides an in-memory store for runs, turn results, and
// telemetry. It backs tests and runs that do not persist.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/foodops/internal/storage"
)

// Store keeps every record in process memory, safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	games   map[string]storage.GameRecord
	results map[string][]storage.TurnResultRecord
	events  map[string][]storage.TelemetryEvent
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		games:   make(map[string]storage.GameRecord),
		results: make(map[string][]storage.TurnResultRecord),
		events:  make(map[string][]storage.TelemetryEvent),
	}
}

// SaveGame inserts or updates the run record.
func (s *Store) SaveGame(ctx context.Context, game storage.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(game.ID)
	if id == "" {
		return fmt.Errorf("game id is required")
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now().UTC()
	}
	if game.UpdatedAt.IsZero() {
		game.UpdatedAt = game.CreatedAt
	}
	game.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.games[id]; ok {
		game.CreatedAt = existing.CreatedAt
	}
	s.games[id] = game
	return nil
}

// GetGame returns the run record or storage.ErrNotFound.
func (s *Store) GetGame(ctx context.Context, id string) (storage.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameRecord{}, err
	}
	if s == nil {
		return storage.GameRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.GameRecord{}, fmt.Errorf("game id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return storage.GameRecord{}, storage.ErrNotFound
	}
	return game, nil
}

// SaveTurnResults appends the results of one completed turn.
func (s *Store) SaveTurnResults(ctx context.Context, results []storage.TurnResultRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("storage is not configured")
	}
	for _, result := range results {
		if strings.TrimSpace(result.GameID) == "" {
			return fmt.Errorf("game id is required")
		}
		if strings.TrimSpace(result.RestaurantID) == "" {
			return fmt.Errorf("restaurant id is required")
		}
		if result.Turn <= 0 {
			return fmt.Errorf("turn must be greater than zero")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, result := range results {
		if result.CreatedAt.IsZero() {
			result.CreatedAt = time.Now().UTC()
		}
		s.results[result.GameID] = append(s.results[result.GameID], result)
	}
	return nil
}

// ListTurnResults returns every result for the run ordered by turn then
// restaurant.
func (s *Store) ListTurnResults(ctx context.Context, gameID string) ([]storage.TurnResultRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.results[gameID]
	results := make([]storage.TurnResultRecord, len(stored))
	copy(results, stored)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Turn != results[j].Turn {
			return results[i].Turn < results[j].Turn
		}
		return results[i].RestaurantID < results[j].RestaurantID
	})
	return results, nil
}

// SaveEvent records one telemetry event.
func (s *Store) SaveEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.Name) == "" {
		return fmt.Errorf("event name is required")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Fields = cloneFields(event.Fields)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.GameID] = append(s.events[event.GameID], event)
	return nil
}

// ListEvents returns the run's telemetry events in recording order.
func (s *Store) ListEvents(ctx context.Context, gameID string) ([]storage.TelemetryEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.events[gameID]
	events := make([]storage.TelemetryEvent, len(stored))
	copy(events, stored)
	for i := range events {
		events[i].Fields = cloneFields(events[i].Fields)
	}
	return events, nil
}

func cloneFields(fields map[string]string) map[string]string {
	if fields == nil {
		return nil
	}
	cloned := make(map[string]string, len(fields))
	for key, value := range fields {
		cloned[key] = value
	}
	return cloned
}

var (
	_ storage.GameStore      = (*Store)(nil)
	_ storage.TelemetryStore = (*Store)(nil)
)
