// Package market turns scenario demand into per-restaurant covers.
//
// Each turn, every customer segment is scored against every restaurant and
// split proportionally to the effective scores. The allocator is fully
// deterministic: segments process in scenario order, restaurants keep their
// roster order, and all tie-breaks are positional.
package market

import (
	"math"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
)

var (
	// ErrSegmentInvalid reports a segment preset outside its domain.
	ErrSegmentInvalid = apperrors.New(apperrors.CodeConfigSegmentInvalid, "segment preset invalid")
	// ErrScenarioPopulation reports a negative scenario population.
	ErrScenarioPopulation = apperrors.New(apperrors.CodeConfigScenarioPopulation, "scenario population must not be negative")
	// ErrScenarioShares reports segment shares that do not sum to one.
	ErrScenarioShares = apperrors.New(apperrors.CodeConfigScenarioShares, "scenario segment shares must sum to 1")
	// ErrScenarioSegmentUnknown reports a share referencing an unknown segment.
	ErrScenarioSegmentUnknown = apperrors.New(apperrors.CodeConfigScenarioUnknown, "scenario references unknown segment")
)

// shareSumTolerance bounds the acceptable drift of Σ shares from 1.
const shareSumTolerance = 1e-6

// Segment is a customer cohort with a budget and concept preferences.
type Segment struct {
	ID string
	// Budget is the average spend per cover.
	Budget float64
	// Fit maps each concept to structural appeal in [0, 1].
	Fit map[restaurant.Concept]float64
}

// Validate checks the segment against its domain.
func (s Segment) Validate() error {
	meta := map[string]string{"segment": s.ID}
	if s.ID == "" {
		return ErrSegmentInvalid
	}
	if s.Budget <= 0 {
		return ErrSegmentInvalid.WithMetadata(meta)
	}
	for _, fit := range s.Fit {
		if fit < 0 || fit > 1 {
			return ErrSegmentInvalid.WithMetadata(meta)
		}
	}
	return nil
}

// SegmentShare is one segment's slice of a scenario population.
type SegmentShare struct {
	SegmentID string
	Share     float64
}

// Scenario is a local market: a population split across segments. Share
// order is the allocation processing order.
type Scenario struct {
	Name       string
	Population int
	Shares     []SegmentShare
}

// Validate checks population and share consistency.
func (s Scenario) Validate() error {
	meta := map[string]string{"scenario": s.Name}
	if s.Population < 0 {
		return ErrScenarioPopulation.WithMetadata(meta)
	}
	var sum float64
	seen := make(map[string]bool, len(s.Shares))
	for _, share := range s.Shares {
		if share.SegmentID == "" || share.Share < 0 || seen[share.SegmentID] {
			return ErrScenarioShares.WithMetadata(meta)
		}
		seen[share.SegmentID] = true
		sum += share.Share
	}
	if len(s.Shares) > 0 && math.Abs(sum-1) > shareSumTolerance {
		return ErrScenarioShares.WithMetadata(meta)
	}
	return nil
}

// SegmentDemand is the rounded cover count a share represents.
func (s Scenario) SegmentDemand(share SegmentShare) int {
	return int(math.Round(float64(s.Population) * share.Share))
}
