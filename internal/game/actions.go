package game

import (
	"github.com/louisbranch/foodops/internal/catalog"
	"github.com/louisbranch/foodops/internal/inventory"
	"github.com/louisbranch/foodops/internal/ledger"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
)

// Action is one director decision. Actions apply strictly between turns:
// each validates its inputs against the catalog and the roster before it
// touches anything.
type Action interface {
	apply(g *Game) error
}

// Apply runs the actions in order. The first invalid action stops the
// batch; earlier actions stay applied, each being an independent decision.
func (g *Game) Apply(actions ...Action) error {
	for _, action := range actions {
		if err := action.apply(g); err != nil {
			return err
		}
	}
	return nil
}

// PurchaseLot buys a raw ingredient lot at the catalog's grade price. The
// lot perishes by its shelf life and the spend is booked into raw stock.
type PurchaseLot struct {
	RestaurantID string
	Ingredient   string
	Grade        inventory.Grade
	QtyKg        float64
}

func (a PurchaseLot) apply(g *Game) error {
	r, err := g.restaurant(a.RestaurantID)
	if err != nil {
		return err
	}
	ing, err := g.catalog.Ingredient(a.Ingredient)
	if err != nil {
		return err
	}
	if !ing.Tier.Allows(r.Concept) {
		return catalog.ErrTierRestricted.WithMetadata(map[string]string{
			"ingredient": ing.Name,
			"concept":    r.Concept.String(),
		})
	}
	price, err := ing.Price(a.Grade)
	if err != nil {
		return err
	}
	cost, err := r.Purchase(inventory.Lot{
		Ingredient:   ing.Name,
		Grade:        a.Grade,
		QtyKg:        a.QtyKg,
		UnitCost:     price,
		ReceivedTurn: g.turn,
		PerishTurn:   g.turn + ing.ShelfTurns(),
	})
	if err != nil {
		return err
	}
	return g.postAction(r, "purchase "+ing.Name, cost, g.chart.RawStock, g.chart.Cash)
}

// ProduceBatch cooks a menu recipe into finished portions, consuming raw
// stock and kitchen minutes. Portions clamp to the minutes left.
type ProduceBatch struct {
	RestaurantID string
	Recipe       string
	Portions     int
}

func (a ProduceBatch) apply(g *Game) error {
	r, err := g.restaurant(a.RestaurantID)
	if err != nil {
		return err
	}
	_, err = r.Produce(a.Recipe, a.Portions, g.turn, g.tuning.FinishedShelfTurns)
	return err
}

// SetPrice reprices one menu recipe.
type SetPrice struct {
	RestaurantID string
	Recipe       string
	Price        float64
}

func (a SetPrice) apply(g *Game) error {
	r, err := g.restaurant(a.RestaurantID)
	if err != nil {
		return err
	}
	return r.SetPrice(a.Recipe, a.Price)
}

// SetMenu replaces the whole menu.
type SetMenu struct {
	RestaurantID string
	Items        []restaurant.MenuItem
}

func (a SetMenu) apply(g *Game) error {
	r, err := g.restaurant(a.RestaurantID)
	if err != nil {
		return err
	}
	return r.SetMenu(a.Items)
}

// SetMarketing fixes the monthly campaign budget.
type SetMarketing struct {
	RestaurantID string
	Budget       float64
}

func (a SetMarketing) apply(g *Game) error {
	r, err := g.restaurant(a.RestaurantID)
	if err != nil {
		return err
	}
	return r.SetMarketing(a.Budget)
}

// Hire signs an employee whose role the concept may staff. The fixed
// hiring fee books as a recruitment service.
type Hire struct {
	RestaurantID string
	Employee     staffing.Employee
}

func (a Hire) apply(g *Game) error {
	r, err := g.restaurant(a.RestaurantID)
	if err != nil {
		return err
	}
	preset, err := g.catalog.Role(a.Employee.Role)
	if err != nil {
		return err
	}
	if !preset.Allows(r.Concept) {
		return catalog.ErrRoleRestricted.WithMetadata(map[string]string{
			"role":    a.Employee.Role.String(),
			"concept": r.Concept.String(),
		})
	}
	if err := r.HireEmployee(a.Employee); err != nil {
		return err
	}
	return g.postAction(r, "recruitment fee", staffing.HiringFee, g.chart.ExternalServices, g.chart.Cash)
}

// Fire releases an employee and books the severance owed.
type Fire struct {
	RestaurantID string
	EmployeeID   string
}

func (a Fire) apply(g *Game) error {
	r, err := g.restaurant(a.RestaurantID)
	if err != nil {
		return err
	}
	severance, err := r.FireEmployee(a.EmployeeID)
	if err != nil {
		return err
	}
	return g.postAction(r, "severance", severance, g.chart.Payroll, g.chart.Cash)
}

// postAction books a between-turns cash movement so the wallet and the
// books stay in lockstep. Zero amounts are skipped.
func (g *Game) postAction(r *restaurant.Restaurant, label string, amount float64, debit, credit string) error {
	if amount <= 0 {
		return nil
	}
	return r.Journal.Post(ledger.Entry{
		Turn:  g.turn,
		Label: label,
		Lines: []ledger.Line{
			ledger.DebitLine(debit, amount),
			ledger.CreditLine(credit, amount),
		},
	})
}
