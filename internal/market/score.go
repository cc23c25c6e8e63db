package market

import (
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
)

// ErrWeightsInvalid reports scoring weights that do not sum to one.
var ErrWeightsInvalid = apperrors.New(apperrors.CodeConfigTuningInvalid, "scoring weights must sum to 1")

// Offer is the market-facing snapshot of one restaurant for a turn. The
// orchestrator builds offers in roster order; that order is the allocation
// tie-break.
type Offer struct {
	RestaurantID string
	Concept      restaurant.Concept
	// MedianPrice is the menu's median selling price.
	MedianPrice float64
	// Quality is the perceived menu quality in [0, 1].
	Quality   float64
	Notoriety float64
	// Visibility is the venue's normalized location rating.
	Visibility float64
	// MenuSize guards the empty-menu policy: no menu, no score.
	MenuSize int
	// Capacity is the exploitable covers this turn.
	Capacity int
}

// Weights blends the five attraction components. They must sum to 1.
type Weights struct {
	Fit        float64
	Price      float64
	Quality    float64
	Notoriety  float64
	Visibility float64
}

// DefaultWeights returns the standard attraction blend.
func DefaultWeights() Weights {
	return Weights{Fit: 0.25, Price: 0.25, Quality: 0.25, Notoriety: 0.15, Visibility: 0.10}
}

// Validate checks the blend sums to one.
func (w Weights) Validate() error {
	sum := w.Fit + w.Price + w.Quality + w.Notoriety + w.Visibility
	if sum < 1-shareSumTolerance || sum > 1+shareSumTolerance {
		return ErrWeightsInvalid
	}
	return nil
}

// Params tunes scoring and allocation.
type Params struct {
	Weights Weights
	// BudgetTolerance stretches a segment's budget before the price filter
	// and price-fit decay kick in.
	BudgetTolerance float64
	// CannibalizationK softens scores when same-concept competitors share
	// the market.
	CannibalizationK float64
}

// DefaultParams returns the standard market tuning.
func DefaultParams() Params {
	return Params{
		Weights:          DefaultWeights(),
		BudgetTolerance:  1.20,
		CannibalizationK: 0.5,
	}
}

// PriceFit rates a median price against a segment budget: full fit up to
// budget × tolerance, then a linear decay to zero across one budget width.
func PriceFit(price, budget, tolerance float64) float64 {
	if budget <= 0 {
		return 0
	}
	limit := budget * tolerance
	if price <= limit {
		return 1
	}
	fit := 1 - (price-limit)/budget
	if fit < 0 {
		return 0
	}
	return fit
}

// Score is the attraction of an offer for a segment, in [0, 1]. An empty
// menu scores zero outright.
func Score(offer Offer, segment Segment, params Params) float64 {
	if offer.MenuSize == 0 {
		return 0
	}
	components := []struct {
		weight float64
		value  float64
	}{
		{params.Weights.Fit, segment.Fit[offer.Concept]},
		{params.Weights.Price, PriceFit(offer.MedianPrice, segment.Budget, params.BudgetTolerance)},
		{params.Weights.Quality, clamp01(offer.Quality)},
		{params.Weights.Notoriety, clamp01(offer.Notoriety)},
		{params.Weights.Visibility, clamp01(offer.Visibility)},
	}
	var score float64
	for _, c := range components {
		score += c.weight * c.value
	}
	return clamp01(score)
}

// CannibalizationFactor dilutes a score when n same-concept restaurants
// compete: 1/(1 + k·(n−1)).
func CannibalizationFactor(sameConcept int, k float64) float64 {
	if sameConcept <= 1 {
		return 1
	}
	return 1 / (1 + k*float64(sameConcept-1))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
