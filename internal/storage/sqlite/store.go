// Package sqlite provides a SQLite-backed store for runs, turn results,
// and telemetry.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/foodops/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/foodops/internal/storage"
	"github.com/louisbranch/foodops/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists simulation runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveGame inserts or updates the run record.
func (s *Store) SaveGame(ctx context.Context, game storage.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(game.ID)
	if id == "" {
		return fmt.Errorf("game id is required")
	}
	if strings.TrimSpace(game.Scenario) == "" {
		return fmt.Errorf("scenario is required")
	}
	createdAt := game.CreatedAt.UTC()
	updatedAt := game.UpdatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO games (id, scenario, seed, turn, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   scenario = excluded.scenario,
		   seed = excluded.seed,
		   turn = excluded.turn,
		   updated_at = excluded.updated_at`,
		id,
		game.Scenario,
		game.Seed,
		game.Turn,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

// GetGame returns the run record or storage.ErrNotFound.
func (s *Store) GetGame(ctx context.Context, id string) (storage.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.GameRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.GameRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.GameRecord{}, fmt.Errorf("game id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, scenario, seed, turn, created_at, updated_at
		   FROM games
		  WHERE id = ?`,
		id,
	)

	var game storage.GameRecord
	var createdAt, updatedAt int64
	err := row.Scan(&game.ID, &game.Scenario, &game.Seed, &game.Turn, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.GameRecord{}, storage.ErrNotFound
		}
		return storage.GameRecord{}, fmt.Errorf("get game: %w", err)
	}
	game.CreatedAt = fromMillis(createdAt)
	game.UpdatedAt = fromMillis(updatedAt)
	return game, nil
}

// SaveTurnResults appends the results of one completed turn in a single
// transaction.
func (s *Store) SaveTurnResults(ctx context.Context, results []storage.TurnResultRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(results) == 0 {
		return nil
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

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save turn results: %w", err)
	}
	for _, result := range results {
		createdAt := result.CreatedAt.UTC()
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		bankrupt := 0
		if result.Bankrupt {
			bankrupt = 1
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO turn_results (
			   game_id, turn, restaurant_id, restaurant_name,
			   allocated, served, capacity,
			   median_price, revenue, cogs, fixed_costs, marketing,
			   payroll, depreciation, interest, principal,
			   funds_start, funds_end, stock_value_start, stock_value_end,
			   notoriety, satisfaction,
			   lost_total, lost_capacity, lost_stock, lost_other,
			   bankrupt, created_at
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			result.GameID,
			result.Turn,
			result.RestaurantID,
			result.RestaurantName,
			result.Allocated,
			result.Served,
			result.Capacity,
			result.MedianPrice,
			result.Revenue,
			result.COGS,
			result.FixedCosts,
			result.Marketing,
			result.Payroll,
			result.Depreciation,
			result.Interest,
			result.Principal,
			result.FundsStart,
			result.FundsEnd,
			result.StockValueStart,
			result.StockValueEnd,
			result.Notoriety,
			result.Satisfaction,
			result.LostTotal,
			result.LostCapacity,
			result.LostStock,
			result.LostOther,
			bankrupt,
			toMillis(createdAt),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save turn result: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save turn results: %w", err)
	}
	return nil
}

// ListTurnResults returns every result for the run ordered by turn then
// restaurant.
func (s *Store) ListTurnResults(ctx context.Context, gameID string) ([]storage.TurnResultRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT game_id, turn, restaurant_id, restaurant_name,
		        allocated, served, capacity,
		        median_price, revenue, cogs, fixed_costs, marketing,
		        payroll, depreciation, interest, principal,
		        funds_start, funds_end, stock_value_start, stock_value_end,
		        notoriety, satisfaction,
		        lost_total, lost_capacity, lost_stock, lost_other,
		        bankrupt, created_at
		   FROM turn_results
		  WHERE game_id = ?
		  ORDER BY turn ASC, restaurant_id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list turn results: %w", err)
	}
	defer rows.Close()

	var results []storage.TurnResultRecord
	for rows.Next() {
		var result storage.TurnResultRecord
		var bankrupt int
		var createdAt int64
		if err := rows.Scan(
			&result.GameID,
			&result.Turn,
			&result.RestaurantID,
			&result.RestaurantName,
			&result.Allocated,
			&result.Served,
			&result.Capacity,
			&result.MedianPrice,
			&result.Revenue,
			&result.COGS,
			&result.FixedCosts,
			&result.Marketing,
			&result.Payroll,
			&result.Depreciation,
			&result.Interest,
			&result.Principal,
			&result.FundsStart,
			&result.FundsEnd,
			&result.StockValueStart,
			&result.StockValueEnd,
			&result.Notoriety,
			&result.Satisfaction,
			&result.LostTotal,
			&result.LostCapacity,
			&result.LostStock,
			&result.LostOther,
			&bankrupt,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan turn result: %w", err)
		}
		result.Bankrupt = bankrupt != 0
		result.CreatedAt = fromMillis(createdAt)
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list turn results: %w", err)
	}
	return results, nil
}

// SaveEvent records one telemetry event.
func (s *Store) SaveEvent(ctx context.Context, event storage.TelemetryEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(event.Name) == "" {
		return fmt.Errorf("event name is required")
	}
	timestamp := event.Timestamp.UTC()
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	var fieldsJSON []byte
	if len(event.Fields) > 0 {
		payload, err := json.Marshal(event.Fields)
		if err != nil {
			return fmt.Errorf("marshal event fields: %w", err)
		}
		fieldsJSON = payload
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO telemetry_events (game_id, turn, name, severity, message, fields_json, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.GameID,
		event.Turn,
		event.Name,
		event.Severity,
		event.Message,
		fieldsJSON,
		toMillis(timestamp),
	)
	if err != nil {
		return fmt.Errorf("save telemetry event: %w", err)
	}
	return nil
}

// ListEvents returns the run's telemetry events in recording order.
func (s *Store) ListEvents(ctx context.Context, gameID string) ([]storage.TelemetryEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, fmt.Errorf("game id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT game_id, turn, name, severity, message, fields_json, timestamp
		   FROM telemetry_events
		  WHERE game_id = ?
		  ORDER BY id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	defer rows.Close()

	var events []storage.TelemetryEvent
	for rows.Next() {
		var event storage.TelemetryEvent
		var fieldsJSON sql.NullString
		var timestamp int64
		if err := rows.Scan(
			&event.GameID,
			&event.Turn,
			&event.Name,
			&event.Severity,
			&event.Message,
			&fieldsJSON,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan telemetry event: %w", err)
		}
		if fieldsJSON.Valid && fieldsJSON.String != "" {
			fields := make(map[string]string)
			if err := json.Unmarshal([]byte(fieldsJSON.String), &fields); err != nil {
				return nil, fmt.Errorf("unmarshal event fields: %w", err)
			}
			event.Fields = fields
		}
		event.Timestamp = fromMillis(timestamp)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list telemetry events: %w", err)
	}
	return events, nil
}

var (
	_ storage.GameStore      = (*Store)(nil)
	_ storage.TelemetryStore = (*Store)(nil)
)
