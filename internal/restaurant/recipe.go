package restaurant

import (
	"math"
	"sort"
	"strings"

	"github.com/louisbranch/foodops/internal/inventory"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

var (
	// ErrRecipeInvalid reports a recipe missing its name or portions data.
	ErrRecipeInvalid = apperrors.New(apperrors.CodeMenuRecipeInvalid, "recipe invalid")
	// ErrPriceInvalid reports a non-positive menu price.
	ErrPriceInvalid = apperrors.New(apperrors.CodeMenuPriceInvalid, "menu price must be positive")
)

// Technique is the dominant preparation method of a recipe. It drives the
// kitchen minutes a portion costs to produce.
type Technique int

const (
	TechniqueUnspecified Technique = iota
	TechniqueFroid
	TechniqueGrille
	TechniqueSaute
	TechniqueRoti
	TechniqueFrit
	TechniqueVapeur
)

var techniqueNames = map[Technique]string{
	TechniqueFroid:  "froid",
	TechniqueGrille: "grille",
	TechniqueSaute:  "saute",
	TechniqueRoti:   "roti",
	TechniqueFrit:   "frit",
	TechniqueVapeur: "vapeur",
}

// String implements fmt.Stringer.
func (t Technique) String() string {
	if name, ok := techniqueNames[t]; ok {
		return name
	}
	return "unspecified"
}

// ParseTechnique maps a case-insensitive technique name to its Technique.
func ParseTechnique(s string) (Technique, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for technique, n := range techniqueNames {
		if n == name {
			return technique, nil
		}
	}
	return TechniqueUnspecified, ErrRecipeInvalid.WithMetadata(map[string]string{"technique": s})
}

// MinutesPerPortion is the base kitchen time to produce one portion.
func (t Technique) MinutesPerPortion() float64 {
	switch t {
	case TechniqueFroid:
		return 2.0
	case TechniqueGrille:
		return 4.0
	case TechniqueSaute:
		return 5.0
	case TechniqueRoti:
		return 6.0
	case TechniqueFrit:
		return 3.5
	case TechniqueVapeur:
		return 4.0
	default:
		return 4.0
	}
}

// Complexity scales preparation time.
type Complexity int

const (
	ComplexityUnspecified Complexity = iota
	ComplexitySimple
	ComplexityElaborate
)

// String implements fmt.Stringer.
func (c Complexity) String() string {
	switch c {
	case ComplexitySimple:
		return "simple"
	case ComplexityElaborate:
		return "elaborate"
	default:
		return "unspecified"
	}
}

// ParseComplexity maps a case-insensitive complexity name to its Complexity.
func ParseComplexity(s string) (Complexity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return ComplexitySimple, nil
	case "elaborate":
		return ComplexityElaborate, nil
	default:
		return ComplexityUnspecified, ErrRecipeInvalid.WithMetadata(map[string]string{"complexity": s})
	}
}

// Multiplier is the complexity's prep-time factor.
func (c Complexity) Multiplier() float64 {
	if c == ComplexityElaborate {
		return 1.3
	}
	return 1.0
}

// IngredientNeed is one raw requirement of a recipe, per portion.
type IngredientNeed struct {
	Ingredient   string
	KgPerPortion float64
}

// Recipe is a dish the kitchen can produce.
type Recipe struct {
	Name string
	// BaseQuality is the dish's intrinsic quality in [0, 1].
	BaseQuality float64
	Technique   Technique
	Complexity  Complexity
	// Grade is the dominant ingredient grade; it drives concept expectation
	// penalties in scoring. GradeUnspecified is allowed.
	Grade inventory.Grade
	// Ingredients lists per-portion raw needs in kitchen order.
	Ingredients []IngredientNeed
	// BaseCost is the planning cost per portion used for price suggestions.
	// Actual COGS comes from the lots consumed at production time.
	BaseCost float64
}

// Validate checks the recipe against its domain.
func (r Recipe) Validate() error {
	meta := map[string]string{"recipe": r.Name}
	if r.Name == "" {
		return ErrRecipeInvalid
	}
	if r.BaseQuality < 0 || r.BaseQuality > 1 {
		return ErrRecipeInvalid.WithMetadata(meta)
	}
	if r.BaseCost < 0 {
		return ErrRecipeInvalid.WithMetadata(meta)
	}
	for _, need := range r.Ingredients {
		if need.Ingredient == "" || need.KgPerPortion <= 0 {
			return ErrRecipeInvalid.WithMetadata(meta)
		}
	}
	return nil
}

// PrepMinutes is the kitchen time to produce the given portions.
func (r Recipe) PrepMinutes(portions int) float64 {
	if portions <= 0 {
		return 0
	}
	return float64(portions) * r.Technique.MinutesPerPortion() * r.Complexity.Multiplier()
}

// PricePolicy selects how a selling price is suggested from a recipe cost.
type PricePolicy int

const (
	PolicyUnspecified PricePolicy = iota
	// PolicyFoodCostTarget prices so material cost hits the concept's target
	// share of the price.
	PolicyFoodCostTarget
	// PolicyMarginPerPortion adds the concept's absolute margin to cost.
	PolicyMarginPerPortion
)

// SuggestPrice proposes a selling price for a per-portion cost under the
// policy. The food-cost share is floored at 5% to keep the division sane.
func SuggestPrice(concept Concept, costPerPortion float64, policy PricePolicy) float64 {
	switch policy {
	case PolicyMarginPerPortion:
		return round2(costPerPortion + concept.MarginPerPortion())
	default:
		target := concept.FoodCostTarget()
		if target < 0.05 {
			target = 0.05
		}
		return round2(costPerPortion / target)
	}
}

// MenuItem is a priced recipe on the menu.
type MenuItem struct {
	Recipe Recipe
	Price  float64
}

// MedianPrice is the median of the menu's prices: the middle value, or the
// mean of the two middle values for even-sized menus. An empty menu reads 0.
func MedianPrice(menu []MenuItem) float64 {
	if len(menu) == 0 {
		return 0
	}
	prices := make([]float64, len(menu))
	for i, item := range menu {
		prices[i] = item.Price
	}
	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		return prices[mid]
	}
	return (prices[mid-1] + prices[mid]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
