package restaurant

import (
	"math"

	"github.com/louisbranch/foodops/internal/finance"
	"github.com/louisbranch/foodops/internal/inventory"
	"github.com/louisbranch/foodops/internal/ledger"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/staffing"
)

// DefaultNotoriety is the reputation a restaurant opens with.
const DefaultNotoriety = 0.5

var (
	// ErrIDEmpty reports a restaurant without an identifier.
	ErrIDEmpty = apperrors.New(apperrors.CodeRestaurantIDEmpty, "restaurant id empty")
	// ErrNameEmpty reports a restaurant without a display name.
	ErrNameEmpty = apperrors.New(apperrors.CodeRestaurantNameEmpty, "restaurant name empty")
	// ErrMenuItemUnknown reports a recipe name absent from the menu.
	ErrMenuItemUnknown = apperrors.New(apperrors.CodeNotFound, "menu item not found")
	// ErrStockInsufficient reports raw stock short of a production request.
	ErrStockInsufficient = apperrors.New(apperrors.CodeActionStockInsufficient, "insufficient raw stock")
	// ErrMinutesExhausted reports a kitchen with no productive minutes left.
	ErrMinutesExhausted = apperrors.New(apperrors.CodeActionMinutesExhausted, "no kitchen minutes left this turn")
	// ErrFundsInsufficient reports a purchase beyond available funds.
	ErrFundsInsufficient = apperrors.New(apperrors.CodeActionFundsInsufficient, "insufficient funds")
	// ErrMarketingInvalid reports a negative marketing budget.
	ErrMarketingInvalid = apperrors.New(apperrors.CodeActionMarketingInvalid, "marketing budget must not be negative")
)

// Restaurant is one competitor: venue, menu, team, stock, books, and the
// reputation state the market reads. Mutations happen between turns through
// director actions, or at turn commit by the orchestrator.
type Restaurant struct {
	ID       string
	Name     string
	Concept  Concept
	Premises Premises

	// Menu is ordered; insertion order is the roster's tie-break identity.
	Menu []MenuItem
	Team staffing.Team

	Stock   *inventory.Stock
	Journal *ledger.Journal

	Funds        float64
	Notoriety    float64
	Satisfaction float64
	// MarketingBudget is spent every turn as an external service.
	MarketingBudget float64
	// EquipmentInvest is the capitalized equipment at cost.
	EquipmentInvest float64
	Loans           []finance.Loan

	// TurnCOGS accumulates production costs recognized this turn.
	TurnCOGS float64
	// Minutes is the remaining productive time this turn.
	Minutes staffing.MinuteBank

	Active bool
}

// New builds an open restaurant with default reputation state.
func New(id, name string, concept Concept, premises Premises) (*Restaurant, error) {
	if id == "" {
		return nil, ErrIDEmpty
	}
	if name == "" {
		return nil, ErrNameEmpty.WithMetadata(map[string]string{"restaurant": id})
	}
	switch concept {
	case ConceptFastFood, ConceptBistro, ConceptGastro:
	default:
		return nil, ErrConceptUnknown.WithMetadata(map[string]string{"restaurant": id})
	}
	if err := premises.Validate(); err != nil {
		return nil, err
	}
	return &Restaurant{
		ID:           id,
		Name:         name,
		Concept:      concept,
		Premises:     premises,
		Stock:        inventory.NewStock(),
		Journal:      ledger.NewJournal(),
		Notoriety:    DefaultNotoriety,
		Satisfaction: staffing.DefaultSatisfaction,
		Active:       true,
	}, nil
}

// ExploitableCapacity is the covers the venue can serve in one monthly turn:
// two services a day over thirty days, scaled by the concept's speed.
func (r *Restaurant) ExploitableCapacity() int {
	base := float64(r.Premises.Seats * 2 * 30)
	capacity := int(base * r.Concept.ServiceSpeed())
	if capacity < 0 {
		return 0
	}
	return capacity
}

// MedianMenuPrice is the median selling price of the menu.
func (r *Restaurant) MedianMenuPrice() float64 {
	return MedianPrice(r.Menu)
}

// FixedCosts is the monthly rent plus recurring charges.
func (r *Restaurant) FixedCosts() float64 {
	return round2(r.Premises.Rent + r.Premises.RecurringCharges)
}

// PerceivedQuality is the quality the market reads: the menu's mean base
// quality adjusted for concept expectations, scaled by staff satisfaction.
// An empty menu reads zero.
func (r *Restaurant) PerceivedQuality() float64 {
	if len(r.Menu) == 0 {
		return 0
	}
	var sum float64
	for _, item := range r.Menu {
		sum += item.Recipe.BaseQuality * r.Concept.ExpectationPenalty(item.Recipe.Grade)
	}
	quality := sum / float64(len(r.Menu)) * r.Satisfaction
	return clamp01(quality)
}

// MenuItem looks up a menu entry by recipe name.
func (r *Restaurant) MenuItem(name string) (MenuItem, bool) {
	for _, item := range r.Menu {
		if item.Recipe.Name == name {
			return item, true
		}
	}
	return MenuItem{}, false
}

// AddMenuItem validates and appends a priced recipe. Duplicate recipe names
// are rejected.
func (r *Restaurant) AddMenuItem(item MenuItem) error {
	if err := item.Recipe.Validate(); err != nil {
		return err
	}
	if item.Price <= 0 {
		return ErrPriceInvalid.WithMetadata(map[string]string{"recipe": item.Recipe.Name})
	}
	if _, ok := r.MenuItem(item.Recipe.Name); ok {
		return ErrRecipeInvalid.WithMetadata(map[string]string{
			"recipe": item.Recipe.Name,
			"reason": "duplicate",
		})
	}
	r.Menu = append(r.Menu, item)
	return nil
}

// SetPrice updates one menu entry's selling price. Batches already produced
// keep the price frozen at their production time.
func (r *Restaurant) SetPrice(recipeName string, price float64) error {
	if price <= 0 {
		return ErrPriceInvalid.WithMetadata(map[string]string{"recipe": recipeName})
	}
	for i, item := range r.Menu {
		if item.Recipe.Name == recipeName {
			r.Menu[i].Price = price
			return nil
		}
	}
	return ErrMenuItemUnknown.WithMetadata(map[string]string{"recipe": recipeName})
}

// SetMenu replaces the whole menu in one move. Every item is validated
// before the swap so a bad replacement leaves the current menu standing.
func (r *Restaurant) SetMenu(items []MenuItem) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Recipe.Validate(); err != nil {
			return err
		}
		if item.Price <= 0 {
			return ErrPriceInvalid.WithMetadata(map[string]string{"recipe": item.Recipe.Name})
		}
		if _, ok := seen[item.Recipe.Name]; ok {
			return ErrRecipeInvalid.WithMetadata(map[string]string{
				"recipe": item.Recipe.Name,
				"reason": "duplicate",
			})
		}
		seen[item.Recipe.Name] = struct{}{}
	}
	menu := make([]MenuItem, len(items))
	copy(menu, items)
	r.Menu = menu
	return nil
}

// MarketingBoostCap bounds the one-shot notoriety lift a campaign buys.
const MarketingBoostCap = 0.05

// SetMarketing sets the monthly marketing budget. Committing to a campaign
// lifts notoriety once, capped at MarketingBoostCap per 20k spent.
func (r *Restaurant) SetMarketing(budget float64) error {
	if budget < 0 {
		return ErrMarketingInvalid
	}
	r.MarketingBudget = budget
	if budget > 0 {
		r.Notoriety = clamp01(r.Notoriety + math.Min(MarketingBoostCap, budget/20000))
	}
	return nil
}

// Purchase pays for a raw lot and stores it. The lot cost comes off funds
// immediately; the caller books the matching stock entry.
func (r *Restaurant) Purchase(lot inventory.Lot) (float64, error) {
	cost := round2(lot.QtyKg * lot.UnitCost)
	if cost > r.Funds {
		return 0, ErrFundsInsufficient.WithMetadata(map[string]string{"restaurant": r.ID})
	}
	if err := r.Stock.AddLot(lot); err != nil {
		return 0, err
	}
	r.Funds = round2(r.Funds - cost)
	return cost, nil
}

// HireEmployee pays the fixed hiring fee and adds the employee. The new
// hire's minutes join the bank immediately so they work the upcoming month.
func (r *Restaurant) HireEmployee(e staffing.Employee) error {
	if r.Funds < staffing.HiringFee {
		return ErrFundsInsufficient.WithMetadata(map[string]string{"restaurant": r.ID})
	}
	if err := r.Team.Hire(e); err != nil {
		return err
	}
	r.Funds = round2(r.Funds - staffing.HiringFee)
	r.creditMinutes(e, e.Minutes())
	return nil
}

// FireEmployee removes the employee and pays severance. Severance is owed
// even when it drives funds negative. The departing minutes leave the bank,
// floored at zero when the month already consumed them.
func (r *Restaurant) FireEmployee(id string) (float64, error) {
	fired, err := r.Team.Fire(id)
	if err != nil {
		return 0, err
	}
	severance := fired.Severance()
	r.Funds = round2(r.Funds - severance)
	r.creditMinutes(fired, -fired.Minutes())
	return severance, nil
}

func (r *Restaurant) creditMinutes(e staffing.Employee, delta float64) {
	switch e.Role.Bank() {
	case staffing.BankKitchen:
		r.Minutes.Kitchen = math.Max(0, r.Minutes.Kitchen+delta)
	case staffing.BankService:
		r.Minutes.Service = math.Max(0, r.Minutes.Service+delta)
	}
}

// Production is the outcome of one production run.
type Production struct {
	// Portions actually produced, after the kitchen-minutes clamp.
	Portions int
	// Cost is the raw material cost drawn from stock.
	Cost float64
	// MinutesUsed is the kitchen time consumed.
	MinutesUsed float64
}

// Produce cooks portions of a menu recipe into a finished batch.
//
// Portions clamp down to what the remaining kitchen minutes allow. Raw needs
// are consumed best-grade-first from stock; a shortfall on any ingredient
// rejects the run without consuming anything. The material cost is
// recognized into TurnCOGS at production, and the batch freezes the menu
// price of the moment.
func (r *Restaurant) Produce(recipeName string, portions, turn, shelfTurns int) (Production, error) {
	item, ok := r.MenuItem(recipeName)
	if !ok {
		return Production{}, ErrMenuItemUnknown.WithMetadata(map[string]string{"recipe": recipeName})
	}
	if portions <= 0 {
		return Production{}, inventory.ErrPortionsInvalid.WithMetadata(map[string]string{"recipe": recipeName})
	}

	perPortion := item.Recipe.Technique.MinutesPerPortion() * item.Recipe.Complexity.Multiplier()
	maxPortions := int(r.Minutes.Kitchen / perPortion)
	if maxPortions <= 0 {
		return Production{}, ErrMinutesExhausted.WithMetadata(map[string]string{"recipe": recipeName})
	}
	if portions > maxPortions {
		portions = maxPortions
	}

	for _, need := range item.Recipe.Ingredients {
		required := need.KgPerPortion * float64(portions)
		if r.Stock.AvailableKg(need.Ingredient, turn) < required-1e-9 {
			return Production{}, ErrStockInsufficient.WithMetadata(map[string]string{
				"recipe":     recipeName,
				"ingredient": need.Ingredient,
			})
		}
	}

	var cost float64
	for _, need := range item.Recipe.Ingredients {
		required := need.KgPerPortion * float64(portions)
		_, drawCost, err := r.Stock.Consume(need.Ingredient, required, turn)
		if err != nil {
			return Production{}, err
		}
		cost += drawCost
	}
	cost = round2(cost)

	unitCost := round2(cost / float64(portions))
	batch := inventory.Batch{
		Recipe:       item.Recipe.Name,
		Portions:     portions,
		UnitPrice:    item.Price,
		UnitCost:     unitCost,
		ProducedTurn: turn,
		ExpiresTurn:  turn + shelfTurns,
	}
	if err := r.Stock.AddBatch(batch); err != nil {
		return Production{}, err
	}

	minutes := float64(portions) * perPortion
	r.Minutes.Kitchen -= minutes
	r.TurnCOGS = round2(r.TurnCOGS + cost)

	return Production{Portions: portions, Cost: cost, MinutesUsed: minutes}, nil
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
