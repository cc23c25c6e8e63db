package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/foodops/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "foodops.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func sampleResult(gameID string, turn int, restaurantID string, at time.Time) storage.TurnResultRecord {
	return storage.TurnResultRecord{
		GameID:          gameID,
		Turn:            turn,
		RestaurantID:    restaurantID,
		RestaurantName:  "Chez " + restaurantID,
		Allocated:       300,
		Served:          280,
		Capacity:        1200,
		MedianPrice:     8,
		Revenue:         2240,
		COGS:            224,
		FixedCosts:      1200,
		Marketing:       150,
		Payroll:         4686,
		Depreciation:    1666.67,
		Interest:        937.5,
		Principal:       3717.4,
		FundsStart:      191460,
		FundsEnd:        182609.1,
		StockValueStart: 240,
		StockValueEnd:   16,
		Notoriety:       0.49,
		Satisfaction:    0.82,
		LostTotal:       20,
		LostStock:       20,
		Bankrupt:        false,
		CreatedAt:       at,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSaveGetGameRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	record := storage.GameRecord{
		ID:        "run-1",
		Scenario:  "corner",
		Seed:      42,
		Turn:      0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.SaveGame(context.Background(), record); err != nil {
		t.Fatalf("save game: %v", err)
	}

	got, err := store.GetGame(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.ID != "run-1" || got.Scenario != "corner" || got.Seed != 42 {
		t.Fatalf("game = %+v, want saved record", got)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v/%v, want %v", got.CreatedAt, got.UpdatedAt, now)
	}
}

func TestSaveGameUpdatesTurn(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	record := storage.GameRecord{ID: "run-1", Scenario: "corner", Seed: 42, CreatedAt: now, UpdatedAt: now}
	if err := store.SaveGame(context.Background(), record); err != nil {
		t.Fatalf("save game: %v", err)
	}

	record.Turn = 3
	record.UpdatedAt = now.Add(time.Hour)
	if err := store.SaveGame(context.Background(), record); err != nil {
		t.Fatalf("update game: %v", err)
	}

	got, err := store.GetGame(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Turn != 3 {
		t.Fatalf("turn = %d, want 3", got.Turn)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want original %v", got.CreatedAt, now)
	}
	if !got.UpdatedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, now.Add(time.Hour))
	}
}

func TestGetGameNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetGame(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get game error = %v, want ErrNotFound", err)
	}
}

func TestSaveListTurnResults(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	if err := store.SaveGame(ctx, storage.GameRecord{ID: "run-1", Scenario: "corner", Seed: 42, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("save game: %v", err)
	}

	// Insert out of turn order; the list must come back ordered.
	batch2 := []storage.TurnResultRecord{sampleResult("run-1", 2, "ff-1", now)}
	batch1 := []storage.TurnResultRecord{
		sampleResult("run-1", 1, "ff-2", now),
		sampleResult("run-1", 1, "ff-1", now),
	}
	if err := store.SaveTurnResults(ctx, batch2); err != nil {
		t.Fatalf("save turn 2: %v", err)
	}
	if err := store.SaveTurnResults(ctx, batch1); err != nil {
		t.Fatalf("save turn 1: %v", err)
	}

	results, err := store.ListTurnResults(ctx, "run-1")
	if err != nil {
		t.Fatalf("list turn results: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	order := []struct {
		turn int
		id   string
	}{{1, "ff-1"}, {1, "ff-2"}, {2, "ff-1"}}
	for i, want := range order {
		if results[i].Turn != want.turn || results[i].RestaurantID != want.id {
			t.Fatalf("results[%d] = turn %d %s, want turn %d %s",
				i, results[i].Turn, results[i].RestaurantID, want.turn, want.id)
		}
	}

	got := results[0]
	if got.Revenue != 2240 || got.Payroll != 4686 || got.Depreciation != 1666.67 {
		t.Fatalf("figures = %+v, want sample values", got)
	}
	if got.LostTotal != 20 || got.LostStock != 20 || got.LostCapacity != 0 {
		t.Fatalf("losses = %d/%d/%d, want 20/20/0", got.LostTotal, got.LostStock, got.LostCapacity)
	}
	if got.Bankrupt {
		t.Fatalf("bankrupt = true, want false")
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestSaveTurnResultsValidates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	if err := store.SaveTurnResults(ctx, nil); err != nil {
		t.Fatalf("empty batch error = %v, want nil", err)
	}
	bad := sampleResult("", 1, "ff-1", time.Now())
	if err := store.SaveTurnResults(ctx, []storage.TurnResultRecord{bad}); err == nil {
		t.Fatal("expected missing game id error")
	}
	bad = sampleResult("run-1", 0, "ff-1", time.Now())
	if err := store.SaveTurnResults(ctx, []storage.TurnResultRecord{bad}); err == nil {
		t.Fatal("expected zero turn error")
	}
}

func TestSaveListEventsRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)

	events := []storage.TelemetryEvent{
		{
			GameID:    "run-1",
			Turn:      1,
			Name:      "turn_completed",
			Severity:  "INFO",
			Message:   "turn committed",
			Fields:    map[string]string{"restaurants": "2", "served": "280"},
			Timestamp: now,
		},
		{
			GameID:    "run-1",
			Turn:      2,
			Name:      "demand_lost",
			Severity:  "WARN",
			Message:   "covers lost",
			Timestamp: now.Add(time.Minute),
		},
		{
			GameID:    "other",
			Turn:      1,
			Name:      "turn_completed",
			Severity:  "INFO",
			Message:   "turn committed",
			Timestamp: now,
		},
	}
	for _, event := range events {
		if err := store.SaveEvent(ctx, event); err != nil {
			t.Fatalf("save event %s: %v", event.Name, err)
		}
	}

	got, err := store.ListEvents(ctx, "run-1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("events = %d, want 2", len(got))
	}
	if got[0].Name != "turn_completed" || got[1].Name != "demand_lost" {
		t.Fatalf("event order = %s, %s", got[0].Name, got[1].Name)
	}
	if got[0].Fields["served"] != "280" {
		t.Fatalf("fields = %+v, want served=280", got[0].Fields)
	}
	if got[1].Fields != nil {
		t.Fatalf("fields = %+v, want none", got[1].Fields)
	}
	if !got[0].Timestamp.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", got[0].Timestamp, now)
	}
}

func TestSaveEventRequiresName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	event := storage.TelemetryEvent{GameID: "run-1", Severity: "INFO"}
	if err := store.SaveEvent(context.Background(), event); err == nil {
		t.Fatal("expected missing name error")
	}
}
