package catalog

import (
	"sort"
	"strings"

	"github.com/louisbranch/foodops/internal/inventory"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
)

var (
	// ErrIngredientInvalid reports a catalog item outside its domain.
	ErrIngredientInvalid = apperrors.New(apperrors.CodeConfigCatalogItemInvalid, "catalog ingredient invalid")
	// ErrIngredientUnknown reports a lookup for an ingredient not in the
	// catalog.
	ErrIngredientUnknown = apperrors.New(apperrors.CodeActionIngredientUnknown, "unknown ingredient")
	// ErrTierRestricted reports a purchase blocked by the ingredient's
	// access tier.
	ErrTierRestricted = apperrors.New(apperrors.CodeActionTierRestricted, "ingredient tier not available to concept")
	// ErrGradeUnavailable reports a grade the supplier does not carry for an
	// ingredient.
	ErrGradeUnavailable = apperrors.New(apperrors.CodeActionGradeUnavailable, "grade not available for ingredient")
)

// Tier gates which concepts may buy an ingredient.
type Tier int

const (
	// TierAll is open to every concept.
	TierAll Tier = iota
	// TierBistroPlus is open to bistro and gastro kitchens.
	TierBistroPlus
	// TierGastroOnly is reserved for gastro kitchens.
	TierGastroOnly
)

func (t Tier) String() string {
	switch t {
	case TierBistroPlus:
		return "bistro_plus"
	case TierGastroOnly:
		return "gastro_only"
	default:
		return "all"
	}
}

// ParseTier converts a preset label into a Tier.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TierAll, nil
	case "bistro_plus":
		return TierBistroPlus, nil
	case "gastro_only":
		return TierGastroOnly, nil
	default:
		return TierAll, ErrIngredientInvalid.WithMetadata(map[string]string{"tier": s})
	}
}

// Allows reports whether the concept may buy ingredients of this tier.
func (t Tier) Allows(c restaurant.Concept) bool {
	switch t {
	case TierBistroPlus:
		return c == restaurant.ConceptBistro || c == restaurant.ConceptGastro
	case TierGastroOnly:
		return c == restaurant.ConceptGastro
	default:
		return true
	}
}

// Ingredient is one supplier catalog item.
type Ingredient struct {
	Name     string
	Category string
	Tier     Tier
	// PerishDays is the indicative raw shelf life.
	PerishDays int
	// Prices maps each carried grade to its price per kg.
	Prices map[inventory.Grade]float64
	// Fit scores the ingredient's match to each concept, 0..1.
	Fit map[restaurant.Concept]float64
}

// Validate checks the item against its domain.
func (i Ingredient) Validate() error {
	meta := map[string]string{"ingredient": i.Name}
	if i.Name == "" {
		return ErrIngredientInvalid
	}
	if i.PerishDays <= 0 {
		return ErrIngredientInvalid.WithMetadata(meta)
	}
	if len(i.Prices) == 0 {
		return ErrIngredientInvalid.WithMetadata(meta)
	}
	for grade, price := range i.Prices {
		if grade == inventory.GradeUnspecified || price <= 0 {
			return ErrIngredientInvalid.WithMetadata(meta)
		}
	}
	for _, fit := range i.Fit {
		if fit < 0 || fit > 1 {
			return ErrIngredientInvalid.WithMetadata(meta)
		}
	}
	return nil
}

// Price returns the per-kg price for a grade the supplier carries.
func (i Ingredient) Price(grade inventory.Grade) (float64, error) {
	price, ok := i.Prices[grade]
	if !ok {
		return 0, ErrGradeUnavailable.WithMetadata(map[string]string{
			"ingredient": i.Name,
			"grade":      grade.String(),
		})
	}
	return price, nil
}

// ShelfTurns converts perish days to whole turns, one turn per month,
// never less than one.
func (i Ingredient) ShelfTurns() int {
	turns := (i.PerishDays + 29) / 30
	if turns < 1 {
		return 1
	}
	return turns
}

// Grades lists the carried grades by quality rank, best first, so callers
// can pick deterministically.
func (i Ingredient) Grades() []inventory.Grade {
	out := make([]inventory.Grade, 0, len(i.Prices))
	for grade := range i.Prices {
		out = append(out, grade)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].QualityRank() != out[b].QualityRank() {
			return out[a].QualityRank() > out[b].QualityRank()
		}
		return out[a] < out[b]
	})
	return out
}
