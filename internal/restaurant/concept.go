// Package restaurant models the per-player aggregate: concept, premises,
// menu, team, stock, cash, and the reputation state the market reads.
package restaurant

import (
	"strings"

	"github.com/louisbranch/foodops/internal/inventory"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// ErrConceptUnknown reports a concept name outside the known set.
var ErrConceptUnknown = apperrors.New(apperrors.CodeConceptUnknown, "unknown restaurant concept")

// Concept is a restaurant's market positioning.
type Concept int

const (
	ConceptUnspecified Concept = iota
	ConceptFastFood
	ConceptBistro
	ConceptGastro
)

var conceptNames = map[Concept]string{
	ConceptFastFood: "fast_food",
	ConceptBistro:   "bistro",
	ConceptGastro:   "gastro",
}

// String implements fmt.Stringer.
func (c Concept) String() string {
	if name, ok := conceptNames[c]; ok {
		return name
	}
	return "unspecified"
}

// ParseConcept maps a case-insensitive concept name to its Concept.
func ParseConcept(s string) (Concept, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for concept, n := range conceptNames {
		if n == name {
			return concept, nil
		}
	}
	return ConceptUnspecified, ErrConceptUnknown.WithMetadata(map[string]string{"concept": s})
}

// Concepts lists every known concept in declaration order.
func Concepts() []Concept {
	return []Concept{ConceptFastFood, ConceptBistro, ConceptGastro}
}

// ServiceSpeed scales raw seating capacity into exploitable covers. Faster
// table turnover serves more covers from the same room.
func (c Concept) ServiceSpeed() float64 {
	switch c {
	case ConceptFastFood:
		return 1.00
	case ConceptBistro:
		return 0.80
	case ConceptGastro:
		return 0.50
	default:
		return 0
	}
}

// ServiceMinutesPerCover is the front-of-house time one cover consumes.
func (c Concept) ServiceMinutesPerCover() float64 {
	switch c {
	case ConceptFastFood:
		return 1.5
	case ConceptBistro:
		return 4.0
	case ConceptGastro:
		return 7.0
	default:
		return 0
	}
}

// FoodCostTarget is the concept's target share of material cost in the
// selling price.
func (c Concept) FoodCostTarget() float64 {
	switch c {
	case ConceptFastFood:
		return 0.30
	case ConceptBistro:
		return 0.28
	case ConceptGastro:
		return 0.25
	default:
		return 0.30
	}
}

// MarginPerPortion is the concept's default absolute margin per portion.
func (c Concept) MarginPerPortion() float64 {
	switch c {
	case ConceptFastFood:
		return 2.5
	case ConceptBistro:
		return 4.0
	case ConceptGastro:
		return 7.0
	default:
		return 3.0
	}
}

// ExpectationPenalty adjusts perceived recipe quality for how well an
// ingredient grade matches the concept's prestige. Frozen product reads
// poorly in a gastronomic room; vacuum-cooked is at home there.
func (c Concept) ExpectationPenalty(g inventory.Grade) float64 {
	switch c {
	case ConceptFastFood:
		switch g {
		case inventory.GradeCookedVacuum:
			return 0.95
		case inventory.GradeFreshRaw:
			return 1.00
		case inventory.GradeFrozen:
			return 0.95
		default:
			return 0.98
		}
	case ConceptBistro:
		switch g {
		case inventory.GradeCookedVacuum:
			return 0.98
		case inventory.GradeFreshRaw:
			return 1.00
		case inventory.GradeFrozen:
			return 0.95
		default:
			return 0.98
		}
	case ConceptGastro:
		switch g {
		case inventory.GradeCookedVacuum:
			return 1.00
		case inventory.GradeFreshRaw:
			return 1.00
		case inventory.GradeFrozen:
			return 0.85
		default:
			return 0.92
		}
	default:
		return 1.0
	}
}
