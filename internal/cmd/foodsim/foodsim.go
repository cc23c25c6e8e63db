// Package foodsim runs a complete simulation season from the command
// line: a scripted roster of competing restaurants playing one scenario,
// with per-turn reporting and optional persistence.
package foodsim

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/foodops/internal/catalog"
	"github.com/louisbranch/foodops/internal/game"
	"github.com/louisbranch/foodops/internal/platform/config"
	platformotel "github.com/louisbranch/foodops/internal/platform/otel"
	"github.com/louisbranch/foodops/internal/storage"
	"github.com/louisbranch/foodops/internal/storage/memory"
	"github.com/louisbranch/foodops/internal/storage/sqlite"
	"github.com/louisbranch/foodops/internal/telemetry"
)

// Config holds foodsim command configuration.
type Config struct {
	Scenario  string `env:"FOODOPS_SCENARIO"   envDefault:"city_centre"`
	Turns     int    `env:"FOODOPS_TURNS"      envDefault:"12"`
	Seed      int64  `env:"FOODOPS_SEED"       envDefault:"1"`
	PresetDir string `env:"FOODOPS_PRESET_DIR"`
	DBPath    string `env:"FOODOPS_DB_PATH"`
	GameID    string `env:"FOODOPS_GAME_ID"`
}

// ParseConfig parses environment variables and flags into a Config. Flags
// override the environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "demand scenario to play")
	fs.IntVar(&cfg.Turns, "turns", cfg.Turns, "monthly turns to simulate")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "deterministic game seed")
	fs.StringVar(&cfg.PresetDir, "presets", cfg.PresetDir, "directory overriding embedded catalog presets")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite path persisting the run (empty keeps it in memory)")
	fs.StringVar(&cfg.GameID, "game-id", cfg.GameID, "identifier for the persisted run")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Turns <= 0 {
		return Config{}, fmt.Errorf("turns must be greater than zero")
	}
	if cfg.GameID == "" {
		cfg.GameID = fmt.Sprintf("%s-seed%d", cfg.Scenario, cfg.Seed)
	}
	return cfg, nil
}

// runStore is the persistence surface a run needs.
type runStore interface {
	storage.GameStore
	storage.TelemetryStore
}

// Run executes one scripted season.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	shutdown, err := platformotel.Setup(ctx, "foodsim")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			fmt.Fprintf(errOut, "flush tracing: %v\n", err)
		}
	}()

	cat, err := catalog.Load(cfg.PresetDir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	var store runStore
	if cfg.DBPath != "" {
		sqlStore, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if err := sqlStore.Close(); err != nil {
				fmt.Fprintf(errOut, "close store: %v\n", err)
			}
		}()
		store = sqlStore
	} else {
		store = memory.NewStore()
	}

	g, script, err := buildGame(cfg, cat, telemetry.NewEmitter(store))
	if err != nil {
		return fmt.Errorf("build roster: %w", err)
	}

	now := time.Now().UTC()
	if err := store.SaveGame(ctx, storage.GameRecord{
		ID:        cfg.GameID,
		Scenario:  cfg.Scenario,
		Seed:      cfg.Seed,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	fmt.Fprintf(out, "game %s: scenario %s, seed %d, %d turns\n\n",
		cfg.GameID, cfg.Scenario, cfg.Seed, cfg.Turns)
	fmt.Fprintf(out, "%4s  %-16s %9s %6s %5s %10s %10s %12s\n",
		"turn", "restaurant", "allocated", "served", "lost", "revenue", "result", "funds")

	tracer := otel.Tracer("foodsim")
	for turn := 1; turn <= cfg.Turns; turn++ {
		script.restock(g, errOut)

		turnCtx, span := tracer.Start(ctx, "foodsim.turn", trace.WithAttributes(
			attribute.String("game.id", cfg.GameID),
			attribute.Int("game.turn", turn),
		))
		results, err := g.RunTurn(turnCtx)
		if err != nil {
			span.RecordError(err)
			span.End()
			return fmt.Errorf("turn %d: %w", turn, err)
		}
		span.End()

		for _, res := range results {
			printTurnRow(out, res)
		}

		if err := persistTurn(ctx, store, cfg, g, results); err != nil {
			return err
		}
	}

	printSeasonReport(out, g, cat, cfg.Turns)
	if cfg.DBPath != "" {
		fmt.Fprintf(out, "\nrun persisted to %s\n", cfg.DBPath)
	}
	return nil
}

func persistTurn(ctx context.Context, store runStore, cfg Config, g *game.Game, results []game.TurnResult) error {
	now := time.Now().UTC()
	records := make([]storage.TurnResultRecord, 0, len(results))
	for _, res := range results {
		records = append(records, res.Record(cfg.GameID, now))
	}
	if err := store.SaveTurnResults(ctx, records); err != nil {
		return fmt.Errorf("save turn results: %w", err)
	}
	if err := store.SaveGame(ctx, storage.GameRecord{
		ID:        cfg.GameID,
		Scenario:  cfg.Scenario,
		Seed:      cfg.Seed,
		Turn:      g.Turn() - 1,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return nil
}

func printTurnRow(out io.Writer, res game.TurnResult) {
	operating := res.Revenue - res.COGS - res.FixedCosts - res.Marketing -
		res.Payroll - res.Depreciation - res.Interest
	marker := ""
	if res.Bankrupt {
		marker = "  BANKRUPT"
	}
	fmt.Fprintf(out, "%4d  %-16s %9d %6d %5d %10.2f %10.2f %12.2f%s\n",
		res.Turn, res.RestaurantName, res.Allocated, res.Served,
		res.Losses.Total, res.Revenue, operating, res.FundsEnd, marker)
}

func printSeasonReport(out io.Writer, g *game.Game, cat catalog.Catalog, turns int) {
	for _, r := range g.Restaurants() {
		income := r.Journal.IncomeStatement(cat.Chart, 1, turns)
		sheet := r.Journal.BalanceSheet(cat.Chart, turns)

		fmt.Fprintf(out, "\n%s (%s), turns 1-%d\n", r.Name, r.Concept, turns)
		fmt.Fprintf(out, "  revenue            %12.2f\n", income.Revenue)
		fmt.Fprintf(out, "  cost of goods      %12.2f\n", income.COGS)
		fmt.Fprintf(out, "  external services  %12.2f\n", income.ExternalServices)
		fmt.Fprintf(out, "  payroll            %12.2f\n", income.Payroll)
		fmt.Fprintf(out, "  EBITDA             %12.2f\n", income.EBITDA)
		fmt.Fprintf(out, "  depreciation       %12.2f\n", income.Depreciation)
		fmt.Fprintf(out, "  interest           %12.2f\n", income.Interest)
		fmt.Fprintf(out, "  net result         %12.2f\n", income.NetResult)
		fmt.Fprintf(out, "  cash               %12.2f\n", sheet.Cash)
		for _, loan := range r.Loans {
			fmt.Fprintf(out, "  loan %-13s %12.2f outstanding\n", loan.Name, loan.Outstanding)
		}
		fmt.Fprintf(out, "  notoriety %.2f, staff satisfaction %.2f\n", r.Notoriety, r.Satisfaction)
	}
}
