package catalog

import (
	"github.com/louisbranch/foodops/internal/market"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// ErrTuningInvalid reports a tuning constant outside its domain.
var ErrTuningInvalid = apperrors.New(apperrors.CodeConfigTuningInvalid, "tuning parameters invalid")

// Tuning collects the gameplay constants hosts may override.
type Tuning struct {
	Weights market.Weights
	// BudgetTolerance stretches segment budgets before the price filter.
	BudgetTolerance float64
	// CannibalizationK dilutes scores among same-concept competitors.
	CannibalizationK float64
	// NotorietyPenaltyRate scales the reputation hit per lost-demand ratio.
	NotorietyPenaltyRate float64
	// FinishedShelfTurns is how many turns a production batch stays
	// sellable.
	FinishedShelfTurns int
}

// DefaultTuning returns the standard gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		Weights:              market.DefaultWeights(),
		BudgetTolerance:      1.20,
		CannibalizationK:     0.5,
		NotorietyPenaltyRate: 0.10,
		FinishedShelfTurns:   2,
	}
}

// Validate checks every constant against its domain.
func (t Tuning) Validate() error {
	if err := t.Weights.Validate(); err != nil {
		return err
	}
	checks := []struct {
		field string
		ok    bool
	}{
		{"budget_tolerance", t.BudgetTolerance >= 1},
		{"cannibalization_k", t.CannibalizationK >= 0},
		{"notoriety_penalty_rate", t.NotorietyPenaltyRate >= 0 && t.NotorietyPenaltyRate <= 1},
		{"finished_shelf_turns", t.FinishedShelfTurns >= 1},
	}
	for _, c := range checks {
		if !c.ok {
			return ErrTuningInvalid.WithMetadata(map[string]string{"field": c.field})
		}
	}
	return nil
}

// MarketParams projects the tuning into allocation parameters.
func (t Tuning) MarketParams() market.Params {
	return market.Params{
		Weights:          t.Weights,
		BudgetTolerance:  t.BudgetTolerance,
		CannibalizationK: t.CannibalizationK,
	}
}
