// Package inventory manages one restaurant's raw ingredient lots and finished
// batches: grade-priority raw consumption, strict-FIFO finished sales, and
// turn-start expiry cleanup.
package inventory

import (
	"math"
	"sort"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// qtyEpsilon absorbs float drift when comparing kilogram quantities.
const qtyEpsilon = 1e-9

var (
	// ErrIngredientEmpty indicates a lot or request without an ingredient name.
	ErrIngredientEmpty = apperrors.New(apperrors.CodeActionIngredientUnknown, "ingredient name is required")
	// ErrQuantityInvalid indicates a non-positive quantity.
	ErrQuantityInvalid = apperrors.New(apperrors.CodeActionQuantityInvalid, "quantity must be positive")
	// ErrUnitCostInvalid indicates a negative unit cost.
	ErrUnitCostInvalid = apperrors.New(apperrors.CodeActionUnitCostInvalid, "unit cost must be non-negative")
	// ErrPerishInvalid indicates a perish turn at or before the received turn.
	ErrPerishInvalid = apperrors.New(apperrors.CodeActionPerishInvalid, "perish turn must be after the received turn")
	// ErrPortionsInvalid indicates a batch with no sellable portions.
	ErrPortionsInvalid = apperrors.New(apperrors.CodeActionPortionsInvalid, "portions must be positive")
	// ErrPriceInvalid indicates a negative selling price on a batch.
	ErrPriceInvalid = apperrors.New(apperrors.CodeMenuPriceInvalid, "selling price must be non-negative")
	// ErrStockNegative indicates an apply step that would drive stock below zero.
	ErrStockNegative = apperrors.New(apperrors.CodeInvariantStockNegative, "stock quantity would fall below zero")
)

// Lot is a purchased quantity of one ingredient at one grade.
type Lot struct {
	Ingredient   string
	Grade        Grade
	QtyKg        float64
	UnitCost     float64 // euros per kg, frozen at purchase
	ReceivedTurn int
	PerishTurn   int
}

// Expired reports whether the lot is no longer usable at the given turn.
func (l Lot) Expired(turn int) bool {
	return turn >= l.PerishTurn
}

// Batch is a produced quantity of finished portions sold at a frozen price.
type Batch struct {
	Recipe       string
	Portions     int
	UnitPrice    float64 // selling price frozen at production
	UnitCost     float64 // ingredient cost per portion, for stock valuation
	ProducedTurn int
	ExpiresTurn  int
}

// Expired reports whether the batch is no longer sellable at the given turn.
func (b Batch) Expired(turn int) bool {
	return turn >= b.ExpiresTurn
}

// Stock holds one restaurant's raw lots and finished batches.
type Stock struct {
	raw      map[string][]Lot
	finished []Batch
}

// NewStock creates an empty stock.
func NewStock() *Stock {
	return &Stock{raw: make(map[string][]Lot)}
}

// AddLot records a purchased raw lot.
func (s *Stock) AddLot(lot Lot) error {
	if lot.Ingredient == "" {
		return ErrIngredientEmpty
	}
	if lot.Grade == GradeUnspecified {
		return ErrGradeUnknown
	}
	if lot.QtyKg <= 0 {
		return ErrQuantityInvalid
	}
	if lot.UnitCost < 0 {
		return ErrUnitCostInvalid
	}
	if lot.PerishTurn <= lot.ReceivedTurn {
		return ErrPerishInvalid
	}
	s.raw[lot.Ingredient] = append(s.raw[lot.Ingredient], lot)
	return nil
}

// AddBatch records a produced finished batch.
func (s *Stock) AddBatch(batch Batch) error {
	if batch.Recipe == "" {
		return apperrors.New(apperrors.CodeMenuRecipeInvalid, "batch recipe name is required")
	}
	if batch.Portions <= 0 {
		return ErrPortionsInvalid
	}
	if batch.UnitPrice < 0 {
		return ErrPriceInvalid
	}
	if batch.UnitCost < 0 {
		return ErrUnitCostInvalid
	}
	if batch.ExpiresTurn <= batch.ProducedTurn {
		return ErrPerishInvalid
	}
	s.finished = append(s.finished, batch)
	return nil
}

// AvailableKg reports the total non-expired quantity held for ingredient.
func (s *Stock) AvailableKg(ingredient string, turn int) float64 {
	var total float64
	for _, lot := range s.raw[ingredient] {
		if lot.Expired(turn) {
			continue
		}
		total += lot.QtyKg
	}
	return total
}

// FinishedPortions reports the total non-expired portions held, across all
// recipes.
func (s *Stock) FinishedPortions(turn int) int {
	var total int
	for _, batch := range s.finished {
		if batch.Expired(turn) {
			continue
		}
		total += batch.Portions
	}
	return total
}

// Value reports the at-cost value of everything currently held, rounded to
// 2 decimals. Expired items still on hand count until cleanup removes them.
func (s *Stock) Value() float64 {
	var total float64
	for _, lots := range s.raw {
		for _, lot := range lots {
			total += lot.QtyKg * lot.UnitCost
		}
	}
	for _, batch := range s.finished {
		total += float64(batch.Portions) * batch.UnitCost
	}
	return round2(total)
}

// Ingredients returns the held ingredient names in sorted order.
func (s *Stock) Ingredients() []string {
	names := make([]string, 0, len(s.raw))
	for name := range s.raw {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lots returns a copy of the lots held for ingredient, in storage order.
func (s *Stock) Lots(ingredient string) []Lot {
	lots := s.raw[ingredient]
	out := make([]Lot, len(lots))
	copy(out, lots)
	return out
}

// Batches returns a copy of the finished batches, in storage order.
func (s *Stock) Batches() []Batch {
	out := make([]Batch, len(s.finished))
	copy(out, s.finished)
	return out
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
