// Package game is the turn orchestrator. Each monthly turn allocates
// scenario demand across the roster, clamps what every restaurant can
// actually serve, sells finished stock FIFO, books the month in each
// restaurant's journal, services debt, and feeds reputation and staff
// morale back into the next turn.
//
// A turn either fully commits or fails with no state change: stages plan
// against read-only state and the commit applies every planned effect at
// once. Director decisions happen strictly between turns through Apply.
package game

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/louisbranch/foodops/internal/catalog"
	"github.com/louisbranch/foodops/internal/finance"
	"github.com/louisbranch/foodops/internal/ledger"
	"github.com/louisbranch/foodops/internal/market"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/random"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
	"github.com/louisbranch/foodops/internal/telemetry"
)

var (
	// ErrRosterEmpty rejects a game without restaurants.
	ErrRosterEmpty = apperrors.New(apperrors.CodeRosterEmpty, "roster needs at least one restaurant")
	// ErrRosterDuplicateID rejects two restaurants sharing an ID.
	ErrRosterDuplicateID = apperrors.New(apperrors.CodeRestaurantDuplicateID, "duplicate restaurant id in roster")
	// ErrRestaurantUnknown rejects actions aimed outside the roster.
	ErrRestaurantUnknown = apperrors.New(apperrors.CodeActionRestaurantUnknown, "restaurant not in the roster")
)

// Config wires a game run together.
type Config struct {
	// GameID tags results and telemetry; hosts that persist runs set it.
	GameID string
	// Catalog supplies segments, ingredients, role presets, the chart of
	// accounts, and tuning.
	Catalog catalog.Catalog
	// Scenario names the demand scenario inside the catalog.
	Scenario string
	// Seed drives every derived random stream. Demand allocation itself
	// uses none, so two games with equal seed, roster, and decisions
	// produce identical results.
	Seed int64
	// Emitter receives operational telemetry. Nil disables emission.
	Emitter *telemetry.Emitter
}

// Game runs one simulation: a fixed roster competing in one scenario.
type Game struct {
	id       string
	catalog  catalog.Catalog
	scenario market.Scenario
	tuning   catalog.Tuning
	chart    ledger.Chart
	seed     int64
	emitter  *telemetry.Emitter

	roster []*restaurant.Restaurant
	byID   map[string]*restaurant.Restaurant

	// turn is the upcoming turn number, starting at 1.
	turn    int
	results []TurnResult
}

// New validates the configuration and roster and builds a game positioned
// before turn one.
func New(cfg Config, restaurants ...*restaurant.Restaurant) (*Game, error) {
	scenario, err := cfg.Catalog.Scenario(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	if err := cfg.Catalog.Tuning.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Catalog.Chart.Validate(); err != nil {
		return nil, err
	}
	if len(restaurants) == 0 {
		return nil, ErrRosterEmpty
	}

	g := &Game{
		id:       cfg.GameID,
		catalog:  cfg.Catalog,
		scenario: scenario,
		tuning:   cfg.Catalog.Tuning,
		chart:    cfg.Catalog.Chart,
		seed:     cfg.Seed,
		emitter:  cfg.Emitter,
		roster:   make([]*restaurant.Restaurant, 0, len(restaurants)),
		byID:     make(map[string]*restaurant.Restaurant, len(restaurants)),
		turn:     1,
	}
	for _, r := range restaurants {
		if r == nil {
			return nil, ErrRosterEmpty
		}
		if _, ok := g.byID[r.ID]; ok {
			return nil, ErrRosterDuplicateID.WithMetadata(map[string]string{"restaurant": r.ID})
		}
		g.roster = append(g.roster, r)
		g.byID[r.ID] = r
	}
	return g, nil
}

// Capitalize finances a restaurant with the standard opening mix: the full
// equity contribution, the bank loan, optionally the subsidized loan, and
// the premises purchase as capitalized equipment. It posts the turn-zero
// entries, primes the wallet with the opening funds net of the arrangement
// fee, and resets the minute banks so the director can produce before the
// first service.
func Capitalize(r *restaurant.Restaurant, params finance.Params, chart ledger.Chart, withSubsidized bool) (finance.OpeningPlan, error) {
	plan, err := finance.BuildOpeningPlan(params, r.Premises.Price, withSubsidized)
	if err != nil {
		return finance.OpeningPlan{}, err
	}
	entries := []ledger.Entry{plan.OpeningEntry(chart)}
	if fee, ok := plan.FeeEntry(chart); ok {
		entries = append(entries, fee)
	}
	if err := ledger.Validate(entries); err != nil {
		return finance.OpeningPlan{}, err
	}
	if err := r.Journal.PostAll(entries); err != nil {
		return finance.OpeningPlan{}, err
	}
	r.Funds = plan.OpeningFunds()
	r.EquipmentInvest = plan.EquipmentCost
	r.Loans = make([]finance.Loan, len(plan.Loans))
	copy(r.Loans, plan.Loans)
	r.Minutes = r.Team.ResetMinutes()
	return plan, nil
}

// Turn is the upcoming turn number. It starts at 1 and advances only after
// a full commit.
func (g *Game) Turn() int {
	return g.turn
}

// Restaurants returns the roster in its fixed order.
func (g *Game) Restaurants() []*restaurant.Restaurant {
	out := make([]*restaurant.Restaurant, len(g.roster))
	copy(out, g.roster)
	return out
}

// Results returns every committed turn result in turn-then-roster order.
func (g *Game) Results() []TurnResult {
	out := make([]TurnResult, len(g.results))
	copy(out, g.results)
	return out
}

// Snapshot reports one restaurant's state between turns.
func (g *Game) Snapshot(restaurantID string) (Snapshot, error) {
	r, ok := g.byID[restaurantID]
	if !ok {
		return Snapshot{}, ErrRestaurantUnknown.WithMetadata(map[string]string{"restaurant": restaurantID})
	}
	snap := Snapshot{
		RestaurantID:     r.ID,
		Name:             r.Name,
		Concept:          r.Concept,
		Active:           r.Active,
		Funds:            r.Funds,
		Notoriety:        r.Notoriety,
		Satisfaction:     r.Satisfaction,
		Minutes:          r.Minutes,
		MedianPrice:      r.MedianMenuPrice(),
		Capacity:         r.ExploitableCapacity(),
		StockValue:       r.Stock.Value(),
		FinishedPortions: r.Stock.FinishedPortions(g.turn),
		Loans:            make([]LoanBalance, 0, len(r.Loans)),
	}
	for _, loan := range r.Loans {
		snap.Loans = append(snap.Loans, LoanBalance{Name: loan.Name, Outstanding: loan.Outstanding})
	}
	return snap, nil
}

// Candidates generates the labor market for one role this hiring round.
// The stream is derived from the game seed, the upcoming turn, and the
// role, so reruns see the same applicants.
func (g *Game) Candidates(role staffing.Role, n int) ([]staffing.Candidate, error) {
	preset, err := g.catalog.Role(role)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(random.Derive(g.seed, "candidates", role.String(), strconv.Itoa(g.turn))))
	return staffing.Candidates(rng, role, preset.MarketSalary, n), nil
}

// RunSeason runs turns until n turns committed or one failed. Results of
// the committed turns are returned in order; a failure surfaces as a
// TurnError alongside them.
func (g *Game) RunSeason(ctx context.Context, n int) ([]TurnResult, error) {
	var season []TurnResult
	for i := 0; i < n; i++ {
		results, err := g.RunTurn(ctx)
		if err != nil {
			return season, err
		}
		season = append(season, results...)
	}
	return season, nil
}

func (g *Game) restaurant(id string) (*restaurant.Restaurant, error) {
	r, ok := g.byID[id]
	if !ok {
		return nil, ErrRestaurantUnknown.WithMetadata(map[string]string{"restaurant": id})
	}
	return r, nil
}

