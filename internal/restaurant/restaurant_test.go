package restaurant

import (
	"errors"
	"math"
	"testing"

	"github.com/louisbranch/foodops/internal/inventory"
	"github.com/louisbranch/foodops/internal/staffing"
)

func testPremises() Premises {
	return Premises{
		Name:             "centre-ville",
		Seats:            20,
		Rent:             3000,
		Price:            100000,
		VisibilityRating: 3.5,
	}
}

func testRestaurant(t *testing.T, concept Concept) *Restaurant {
	t.Helper()
	r, err := New("r1", "Chez Test", concept, testPremises())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func TestNewValidation(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		restName string
		concept  Concept
		premises Premises
		wantErr  error
	}{
		{name: "empty id", id: "", restName: "n", concept: ConceptBistro, premises: testPremises(), wantErr: ErrIDEmpty},
		{name: "empty name", id: "r1", restName: "", concept: ConceptBistro, premises: testPremises(), wantErr: ErrNameEmpty},
		{name: "unspecified concept", id: "r1", restName: "n", concept: ConceptUnspecified, premises: testPremises(), wantErr: ErrConceptUnknown},
		{name: "bad premises", id: "r1", restName: "n", concept: ConceptBistro, premises: Premises{Name: "p"}, wantErr: ErrPremisesInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.restName, tc.concept, tc.premises); !errors.Is(err, tc.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	if r.Notoriety != DefaultNotoriety {
		t.Fatalf("Notoriety = %v, want %v", r.Notoriety, DefaultNotoriety)
	}
	if r.Satisfaction != staffing.DefaultSatisfaction {
		t.Fatalf("Satisfaction = %v, want %v", r.Satisfaction, staffing.DefaultSatisfaction)
	}
	if !r.Active {
		t.Fatal("Active = false, want true")
	}
	if r.Stock == nil || r.Journal == nil {
		t.Fatal("Stock or Journal not initialized")
	}
}

func TestExploitableCapacity(t *testing.T) {
	testCases := []struct {
		concept Concept
		seats   int
		want    int
	}{
		{concept: ConceptFastFood, seats: 40, want: 2400},
		{concept: ConceptBistro, seats: 20, want: 960},
		{concept: ConceptGastro, seats: 30, want: 900},
	}

	for _, tc := range testCases {
		t.Run(tc.concept.String(), func(t *testing.T) {
			premises := testPremises()
			premises.Seats = tc.seats
			r, err := New("r1", "n", tc.concept, premises)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := r.ExploitableCapacity(); got != tc.want {
				t.Fatalf("ExploitableCapacity() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPremisesVisibility(t *testing.T) {
	testCases := []struct {
		name   string
		rating float64
		want   float64
	}{
		{name: "rated", rating: 3.5, want: 0.7},
		{name: "top rated", rating: 5, want: 1},
		{name: "unrated defaults to average", rating: 0, want: DefaultVisibility},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := testPremises()
			p.VisibilityRating = tc.rating
			if got := p.Visibility(); got != tc.want {
				t.Fatalf("Visibility() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPerceivedQuality(t *testing.T) {
	r := testRestaurant(t, ConceptGastro)
	r.Satisfaction = 0.8

	if got := r.PerceivedQuality(); got != 0 {
		t.Fatalf("PerceivedQuality() with empty menu = %v, want 0", got)
	}

	r.Menu = []MenuItem{{
		Recipe: Recipe{Name: "plat", BaseQuality: 0.9, Grade: inventory.GradeFrozen},
		Price:  30,
	}}
	// 0.9 × 0.85 frozen-in-gastro penalty × 0.8 satisfaction.
	if got := r.PerceivedQuality(); math.Abs(got-0.612) > 1e-9 {
		t.Fatalf("PerceivedQuality() = %v, want 0.612", got)
	}
}

func TestAddMenuItem(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	item := MenuItem{
		Recipe: Recipe{Name: "poulet", BaseQuality: 0.8, Technique: TechniqueSaute},
		Price:  12,
	}
	if err := r.AddMenuItem(item); err != nil {
		t.Fatalf("AddMenuItem() error = %v", err)
	}

	if err := r.AddMenuItem(item); !errors.Is(err, ErrRecipeInvalid) {
		t.Fatalf("duplicate AddMenuItem() error = %v, want %v", err, ErrRecipeInvalid)
	}

	free := item
	free.Recipe.Name = "offert"
	free.Price = 0
	if err := r.AddMenuItem(free); !errors.Is(err, ErrPriceInvalid) {
		t.Fatalf("AddMenuItem() error = %v, want %v", err, ErrPriceInvalid)
	}
}

func TestSetPrice(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	if err := r.AddMenuItem(MenuItem{Recipe: Recipe{Name: "poulet", BaseQuality: 0.8}, Price: 12}); err != nil {
		t.Fatalf("AddMenuItem() error = %v", err)
	}

	if err := r.SetPrice("poulet", 14.5); err != nil {
		t.Fatalf("SetPrice() error = %v", err)
	}
	item, ok := r.MenuItem("poulet")
	if !ok || item.Price != 14.5 {
		t.Fatalf("MenuItem() = %+v, %v, want price 14.5", item, ok)
	}

	if err := r.SetPrice("poulet", 0); !errors.Is(err, ErrPriceInvalid) {
		t.Fatalf("SetPrice() error = %v, want %v", err, ErrPriceInvalid)
	}
	if err := r.SetPrice("inconnu", 9); !errors.Is(err, ErrMenuItemUnknown) {
		t.Fatalf("SetPrice() error = %v, want %v", err, ErrMenuItemUnknown)
	}
}

func TestSetMarketing(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	r.Notoriety = 0.5

	if err := r.SetMarketing(600); err != nil {
		t.Fatalf("SetMarketing() error = %v", err)
	}
	if r.MarketingBudget != 600 {
		t.Fatalf("MarketingBudget = %v, want 600", r.MarketingBudget)
	}
	// 600 / 20000 stays under the boost cap.
	if math.Abs(r.Notoriety-0.53) > 1e-9 {
		t.Fatalf("Notoriety after small campaign = %v, want 0.53", r.Notoriety)
	}

	if err := r.SetMarketing(30000); err != nil {
		t.Fatalf("SetMarketing() error = %v", err)
	}
	if math.Abs(r.Notoriety-0.58) > 1e-9 {
		t.Fatalf("Notoriety after capped campaign = %v, want 0.58", r.Notoriety)
	}

	r.Notoriety = 0.98
	if err := r.SetMarketing(30000); err != nil {
		t.Fatalf("SetMarketing() error = %v", err)
	}
	if r.Notoriety != 1 {
		t.Fatalf("Notoriety = %v, want clamp at 1", r.Notoriety)
	}

	if err := r.SetMarketing(-1); !errors.Is(err, ErrMarketingInvalid) {
		t.Fatalf("SetMarketing(-1) error = %v, want %v", err, ErrMarketingInvalid)
	}

	if err := r.SetMarketing(0); err != nil {
		t.Fatalf("SetMarketing(0) error = %v", err)
	}
	if r.MarketingBudget != 0 || r.Notoriety != 1 {
		t.Fatalf("cancelling the campaign changed state: budget %v notoriety %v", r.MarketingBudget, r.Notoriety)
	}
}

func TestPurchase(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	r.Funds = 100

	lot := inventory.Lot{
		Ingredient: "poulet", Grade: inventory.GradeFreshRaw,
		QtyKg: 5, UnitCost: 7.5, ReceivedTurn: 1, PerishTurn: 3,
	}
	cost, err := r.Purchase(lot)
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if cost != 37.5 {
		t.Fatalf("Purchase() cost = %v, want 37.5", cost)
	}
	if r.Funds != 62.5 {
		t.Fatalf("Funds = %v, want 62.5", r.Funds)
	}
	if got := r.Stock.AvailableKg("poulet", 1); got != 5 {
		t.Fatalf("AvailableKg() = %v, want 5", got)
	}

	expensive := lot
	expensive.QtyKg = 100
	if _, err := r.Purchase(expensive); !errors.Is(err, ErrFundsInsufficient) {
		t.Fatalf("Purchase() error = %v, want %v", err, ErrFundsInsufficient)
	}
	if r.Funds != 62.5 {
		t.Fatalf("Funds after rejected purchase = %v, want 62.5", r.Funds)
	}
}

func TestHireAndFireEmployee(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	r.Funds = 1000

	e := staffing.Employee{ID: "e1", Name: "n", Role: staffing.RoleServeur, HoursPerTurn: 160, Salary: 1600}
	if err := r.HireEmployee(e); err != nil {
		t.Fatalf("HireEmployee() error = %v", err)
	}
	if r.Funds != 600 {
		t.Fatalf("Funds after hire = %v, want 600", r.Funds)
	}
	if r.Minutes.Service != e.Minutes() {
		t.Fatalf("service minutes after hire = %v, want %v", r.Minutes.Service, e.Minutes())
	}

	severance, err := r.FireEmployee("e1")
	if err != nil {
		t.Fatalf("FireEmployee() error = %v", err)
	}
	if severance != 1600 {
		t.Fatalf("FireEmployee() severance = %v, want 1600", severance)
	}
	// Severance is owed even past zero.
	if r.Funds != -1000 {
		t.Fatalf("Funds after fire = %v, want -1000", r.Funds)
	}
	if r.Minutes.Service != 0 {
		t.Fatalf("service minutes after fire = %v, want 0", r.Minutes.Service)
	}

	r.Funds = 100
	if err := r.HireEmployee(e); !errors.Is(err, ErrFundsInsufficient) {
		t.Fatalf("HireEmployee() error = %v, want %v", err, ErrFundsInsufficient)
	}
}

func TestProduce(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	if err := r.AddMenuItem(MenuItem{
		Recipe: Recipe{
			Name:        "poulet_saute",
			BaseQuality: 0.8,
			Technique:   TechniqueSaute,
			Complexity:  ComplexitySimple,
			Grade:       inventory.GradeFreshRaw,
			Ingredients: []IngredientNeed{{Ingredient: "poulet", KgPerPortion: 0.15}},
		},
		Price: 12,
	}); err != nil {
		t.Fatalf("AddMenuItem() error = %v", err)
	}
	if err := r.Stock.AddLot(inventory.Lot{
		Ingredient: "poulet", Grade: inventory.GradeFreshRaw,
		QtyKg: 10, UnitCost: 7.5, ReceivedTurn: 1, PerishTurn: 5,
	}); err != nil {
		t.Fatalf("AddLot() error = %v", err)
	}
	r.Minutes.Kitchen = 100

	prod, err := r.Produce("poulet_saute", 10, 2, 2)
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}
	if prod.Portions != 10 {
		t.Fatalf("Portions = %d, want 10", prod.Portions)
	}
	if prod.Cost != 11.25 {
		t.Fatalf("Cost = %v, want 11.25", prod.Cost)
	}
	if prod.MinutesUsed != 50 {
		t.Fatalf("MinutesUsed = %v, want 50", prod.MinutesUsed)
	}
	if r.Minutes.Kitchen != 50 {
		t.Fatalf("Minutes.Kitchen = %v, want 50", r.Minutes.Kitchen)
	}
	if r.TurnCOGS != 11.25 {
		t.Fatalf("TurnCOGS = %v, want 11.25", r.TurnCOGS)
	}
	if got := r.Stock.FinishedPortions(2); got != 10 {
		t.Fatalf("FinishedPortions() = %d, want 10", got)
	}

	batches := r.Stock.Batches()
	if len(batches) != 1 {
		t.Fatalf("len(batches) = %d, want 1", len(batches))
	}
	b := batches[0]
	if b.UnitPrice != 12 || b.UnitCost != 1.13 || b.ExpiresTurn != 4 {
		t.Fatalf("batch = %+v, want price 12, unit cost 1.13, expires 4", b)
	}
}

func TestProduceClampsToMinutes(t *testing.T) {
	r := testRestaurant(t, ConceptBistro)
	if err := r.AddMenuItem(MenuItem{
		Recipe: Recipe{
			Name:        "poulet_saute",
			BaseQuality: 0.8,
			Technique:   TechniqueSaute,
			Ingredients: []IngredientNeed{{Ingredient: "poulet", KgPerPortion: 0.15}},
		},
		Price: 12,
	}); err != nil {
		t.Fatalf("AddMenuItem() error = %v", err)
	}
	if err := r.Stock.AddLot(inventory.Lot{
		Ingredient: "poulet", Grade: inventory.GradeFreshRaw,
		QtyKg: 10, UnitCost: 7.5, ReceivedTurn: 1, PerishTurn: 5,
	}); err != nil {
		t.Fatalf("AddLot() error = %v", err)
	}
	r.Minutes.Kitchen = 100

	prod, err := r.Produce("poulet_saute", 100, 2, 2)
	if err != nil {
		t.Fatalf("Produce() error = %v", err)
	}
	if prod.Portions != 20 {
		t.Fatalf("Portions = %d, want 20", prod.Portions)
	}
	if r.Minutes.Kitchen != 0 {
		t.Fatalf("Minutes.Kitchen = %v, want 0", r.Minutes.Kitchen)
	}
}

func TestProduceRejections(t *testing.T) {
	build := func(t *testing.T, kitchenMinutes, stockKg float64) *Restaurant {
		t.Helper()
		r := testRestaurant(t, ConceptBistro)
		if err := r.AddMenuItem(MenuItem{
			Recipe: Recipe{
				Name:        "poulet_saute",
				BaseQuality: 0.8,
				Technique:   TechniqueSaute,
				Ingredients: []IngredientNeed{{Ingredient: "poulet", KgPerPortion: 0.15}},
			},
			Price: 12,
		}); err != nil {
			t.Fatalf("AddMenuItem() error = %v", err)
		}
		if stockKg > 0 {
			if err := r.Stock.AddLot(inventory.Lot{
				Ingredient: "poulet", Grade: inventory.GradeFreshRaw,
				QtyKg: stockKg, UnitCost: 7.5, ReceivedTurn: 1, PerishTurn: 5,
			}); err != nil {
				t.Fatalf("AddLot() error = %v", err)
			}
		}
		r.Minutes.Kitchen = kitchenMinutes
		return r
	}

	t.Run("unknown recipe", func(t *testing.T) {
		r := build(t, 100, 10)
		if _, err := r.Produce("inconnu", 5, 2, 2); !errors.Is(err, ErrMenuItemUnknown) {
			t.Fatalf("Produce() error = %v, want %v", err, ErrMenuItemUnknown)
		}
	})

	t.Run("invalid portions", func(t *testing.T) {
		r := build(t, 100, 10)
		if _, err := r.Produce("poulet_saute", 0, 2, 2); !errors.Is(err, inventory.ErrPortionsInvalid) {
			t.Fatalf("Produce() error = %v, want %v", err, inventory.ErrPortionsInvalid)
		}
	})

	t.Run("kitchen exhausted", func(t *testing.T) {
		r := build(t, 3, 10)
		if _, err := r.Produce("poulet_saute", 5, 2, 2); !errors.Is(err, ErrMinutesExhausted) {
			t.Fatalf("Produce() error = %v, want %v", err, ErrMinutesExhausted)
		}
	})

	t.Run("insufficient stock leaves state untouched", func(t *testing.T) {
		r := build(t, 100, 1)
		if _, err := r.Produce("poulet_saute", 10, 2, 2); !errors.Is(err, ErrStockInsufficient) {
			t.Fatalf("Produce() error = %v, want %v", err, ErrStockInsufficient)
		}
		if got := r.Stock.AvailableKg("poulet", 2); got != 1 {
			t.Fatalf("AvailableKg() = %v, want 1", got)
		}
		if r.Minutes.Kitchen != 100 {
			t.Fatalf("Minutes.Kitchen = %v, want 100", r.Minutes.Kitchen)
		}
		if r.TurnCOGS != 0 {
			t.Fatalf("TurnCOGS = %v, want 0", r.TurnCOGS)
		}
	})
}
