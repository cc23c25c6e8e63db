package game

import (
	"context"
	"math"
	"strconv"

	"github.com/louisbranch/foodops/internal/finance"
	"github.com/louisbranch/foodops/internal/inventory"
	"github.com/louisbranch/foodops/internal/ledger"
	"github.com/louisbranch/foodops/internal/market"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
	"github.com/louisbranch/foodops/internal/storage"
	"github.com/louisbranch/foodops/internal/telemetry"
)

var (
	errServedExceedsCap = apperrors.New(apperrors.CodeInvariantServedExceedsCap, "served covers exceed capacity")
	errSaleShort        = apperrors.New(apperrors.CodeInvariantStockInsufficient, "sale plan short of clamped covers")
)

// turnPlan stages one restaurant's month. Nothing mutates until every
// restaurant's plan built cleanly; commit then applies all of it at once.
type turnPlan struct {
	r *restaurant.Restaurant

	expiry  inventory.ExpiryReport
	minutes staffing.MinuteBank

	allocated int
	capacity  int

	served       int
	minutesUsed  float64
	lostCapacity int
	lostOther    int
	lostStock    int

	sale    inventory.SalePlan
	entries []ledger.Entry

	notoriety    float64
	satisfaction float64

	result TurnResult
}

// RunTurn resolves the upcoming turn for the whole active roster. On
// success it returns the committed results in roster order and advances the
// turn counter. On failure it returns a *TurnError naming the stage, and no
// restaurant's funds, stock, journal, or loans changed.
func (g *Game) RunTurn(ctx context.Context) ([]TurnResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	turn := g.turn
	fail := func(stage Stage, err error) error {
		return &TurnError{Turn: turn, Stage: stage, Err: err}
	}

	plans := make([]*turnPlan, 0, len(g.roster))
	for _, r := range g.roster {
		if !r.Active {
			continue
		}
		plans = append(plans, &turnPlan{r: r})
	}

	// Stages 1-2: expiry preview and fresh minute banks.
	for _, p := range plans {
		p.expiry = p.r.Stock.PreviewCleanup(turn)
		p.minutes = p.r.Team.ResetMinutes()
	}

	// Stage 3: demand allocation across the active roster.
	if err := g.allocate(plans); err != nil {
		return nil, fail(StageDemandAllocation, err)
	}

	for _, p := range plans {
		// Stage 4: capacity, minutes, and stock clamps with loss
		// attribution.
		p.clampServed(turn)

		// Stage 5: FIFO sale over the finished batches.
		if err := p.planSale(turn); err != nil {
			return nil, fail(StageFIFOSale, err)
		}

		// Stage 6: the month's operating figures.
		g.computeResult(p, turn)

		// Stage 7: reputation pays for lost demand.
		p.planNotoriety(g.tuning.NotorietyPenaltyRate)

		// Stages 8-9: postings in fixed order, then debt service.
		g.planOperatingEntries(p, turn)
		g.planLoanService(p, turn)
		if err := ledger.Validate(p.entries); err != nil {
			return nil, fail(StageAccountingPost, err)
		}

		// Stage 10: the staged postings' cash delta becomes the wallet
		// move, keeping funds equal to the ledger's cash balance.
		cashDelta := ledger.EntriesCashDelta(g.chart, p.entries)
		p.result.FundsEnd = round2(p.r.Funds + cashDelta)
		p.result.Bankrupt = p.result.FundsEnd < 0

		// Stage 11: staff morale follows service utilization.
		p.planSatisfaction()
	}

	// Every stage planned cleanly; commit the roster.
	results := make([]TurnResult, 0, len(plans))
	for _, p := range plans {
		if err := p.commit(turn); err != nil {
			return nil, fail(StageCashUpdate, err)
		}
		results = append(results, p.result)
	}
	g.turn++
	g.results = append(g.results, results...)

	// Stage 12: immutable results out, telemetry alongside.
	g.emitTurn(ctx, turn, plans)

	return results, nil
}

func (g *Game) allocate(plans []*turnPlan) error {
	offers := make([]market.Offer, 0, len(plans))
	for _, p := range plans {
		offers = append(offers, market.Offer{
			RestaurantID: p.r.ID,
			Concept:      p.r.Concept,
			MedianPrice:  p.r.MedianMenuPrice(),
			Quality:      p.r.PerceivedQuality(),
			Notoriety:    p.r.Notoriety,
			Visibility:   p.r.Premises.Visibility(),
			MenuSize:     len(p.r.Menu),
			Capacity:     p.r.ExploitableCapacity(),
		})
	}
	allocation, err := market.Allocate(g.scenario, g.catalog.Segments, offers, g.tuning.MarketParams())
	if err != nil {
		return err
	}
	for i, p := range plans {
		p.allocated = allocation.Totals[p.r.ID]
		p.capacity = offers[i].Capacity
		p.lostCapacity = allocation.LostByRestaurant[p.r.ID]
	}
	return nil
}

// clampServed walks the allocation through the three serving limits and
// attributes every dropped cover to its cause.
func (p *turnPlan) clampServed(turn int) {
	served := p.allocated
	if served > p.capacity {
		p.lostCapacity += served - p.capacity
		served = p.capacity
	}

	perCover := p.r.Concept.ServiceMinutesPerCover()
	if perCover > 0 {
		byMinutes := int(p.minutes.Service / perCover)
		if served > byMinutes {
			p.lostOther = served - byMinutes
			served = byMinutes
		}
	}

	if portions := p.r.Stock.FinishedPortions(turn); served > portions {
		p.lostStock = served - portions
		served = portions
	}

	p.served = served
	p.minutesUsed = float64(served) * perCover
}

func (p *turnPlan) planSale(turn int) error {
	if p.served > p.capacity {
		return errServedExceedsCap.WithMetadata(map[string]string{"restaurant": p.r.ID})
	}
	p.sale = p.r.Stock.PlanSale(p.served, turn)
	if p.sale.Portions != p.served {
		return errSaleShort.WithMetadata(map[string]string{
			"restaurant": p.r.ID,
			"want":       strconv.Itoa(p.served),
			"got":        strconv.Itoa(p.sale.Portions),
		})
	}
	return nil
}

func (g *Game) computeResult(p *turnPlan, turn int) {
	r := p.r
	p.result = TurnResult{
		Turn:            turn,
		RestaurantID:    r.ID,
		RestaurantName:  r.Name,
		Allocated:       p.allocated,
		Served:          p.served,
		Capacity:        p.capacity,
		MedianPrice:     r.MedianMenuPrice(),
		Revenue:         p.sale.Revenue,
		COGS:            r.TurnCOGS,
		FixedCosts:      r.FixedCosts(),
		Marketing:       r.MarketingBudget,
		Payroll:         r.Team.PayrollCost(),
		Depreciation:    g.depreciationCharge(r, turn),
		FundsStart:      r.Funds,
		StockValueStart: r.Stock.Value(),
	}
}

// depreciationCharge is the month's straight-line equipment charge, capped
// so accumulated depreciation never exceeds the asset's cost.
func (g *Game) depreciationCharge(r *restaurant.Restaurant, turn int) float64 {
	monthly := finance.MonthlyDepreciation(r.EquipmentInvest, g.catalog.Finance.EquipmentLifeYears)
	if monthly <= 0 {
		return 0
	}
	accumulated := -r.Journal.BalancesThrough(turn - 1)[g.chart.AccumDepreciation]
	remaining := round2(r.EquipmentInvest - accumulated)
	if remaining <= 0 {
		return 0
	}
	if monthly > remaining {
		return remaining
	}
	return monthly
}

func (p *turnPlan) planNotoriety(rate float64) {
	lost := p.lostCapacity + p.lostOther + p.lostStock
	denom := p.allocated
	if denom < 1 {
		denom = 1
	}
	p.notoriety = clamp01(p.r.Notoriety - rate*float64(lost)/float64(denom))
	p.result.Losses = Losses{
		Total:    lost,
		Capacity: p.lostCapacity,
		Stock:    p.lostStock,
		Other:    p.lostOther,
	}
	p.result.Notoriety = p.notoriety
}

// planOperatingEntries stages the month's entries in the fixed posting
// order: sales, cost of goods, external services, payroll, depreciation.
// Zero-amount postings are skipped.
func (g *Game) planOperatingEntries(p *turnPlan, turn int) {
	chart := g.chart
	res := p.result

	if res.Revenue > 0 {
		p.entries = append(p.entries, ledger.Entry{
			Turn:  turn,
			Label: "sales",
			Lines: []ledger.Line{
				ledger.DebitLine(chart.Cash, res.Revenue),
				ledger.CreditLine(chart.Sales, res.Revenue),
			},
		})
	}
	if res.COGS > 0 {
		p.entries = append(p.entries, ledger.Entry{
			Turn:  turn,
			Label: "cost of goods",
			Lines: []ledger.Line{
				ledger.DebitLine(chart.COGS, res.COGS),
				ledger.CreditLine(chart.RawStock, res.COGS),
			},
		})
	}
	if services := round2(res.FixedCosts + res.Marketing); services > 0 {
		p.entries = append(p.entries, ledger.Entry{
			Turn:  turn,
			Label: "external services",
			Lines: []ledger.Line{
				ledger.DebitLine(chart.ExternalServices, services),
				ledger.CreditLine(chart.Cash, services),
			},
		})
	}
	if res.Payroll > 0 {
		p.entries = append(p.entries, ledger.Entry{
			Turn:  turn,
			Label: "payroll",
			Lines: []ledger.Line{
				ledger.DebitLine(chart.Payroll, res.Payroll),
				ledger.CreditLine(chart.Cash, res.Payroll),
			},
		})
	}
	if res.Depreciation > 0 {
		p.entries = append(p.entries, ledger.Entry{
			Turn:  turn,
			Label: "depreciation",
			Lines: []ledger.Line{
				ledger.DebitLine(chart.Depreciation, res.Depreciation),
				ledger.CreditLine(chart.AccumDepreciation, res.Depreciation),
			},
		})
	}
}

// planLoanService stages each loan's installment, interest before
// principal, without touching the loan until commit.
func (g *Game) planLoanService(p *turnPlan, turn int) {
	chart := g.chart
	for _, loan := range p.r.Loans {
		inst := loan.NextInstallment()
		if inst.Interest > 0 {
			p.entries = append(p.entries, ledger.Entry{
				Turn:  turn,
				Label: "loan interest " + loan.Name,
				Lines: []ledger.Line{
					ledger.DebitLine(chart.Interest, inst.Interest),
					ledger.CreditLine(chart.Cash, inst.Interest),
				},
			})
		}
		if inst.Principal > 0 {
			p.entries = append(p.entries, ledger.Entry{
				Turn:  turn,
				Label: "loan principal " + loan.Name,
				Lines: []ledger.Line{
					ledger.DebitLine(chart.Loans, inst.Principal),
					ledger.CreditLine(chart.Cash, inst.Principal),
				},
			})
		}
		p.result.Interest = round2(p.result.Interest + inst.Interest)
		p.result.Principal = round2(p.result.Principal + inst.Principal)
	}
}

func (p *turnPlan) planSatisfaction() {
	var utilization float64
	if p.minutes.Service > 0 {
		utilization = p.minutesUsed / p.minutes.Service
	}
	p.satisfaction = staffing.NextSatisfaction(p.r.Satisfaction, utilization)
	p.result.Satisfaction = p.satisfaction
}

// commit applies every staged effect. Plans were validated against the very
// state they commit to, so an error here is an engine bug, not a playable
// condition.
func (p *turnPlan) commit(turn int) error {
	r := p.r
	if err := r.Journal.PostAll(p.entries); err != nil {
		return err
	}
	if err := r.Stock.ApplySale(p.sale); err != nil {
		return err
	}
	r.Stock.Cleanup(turn)
	for i := range r.Loans {
		r.Loans[i].Advance()
	}
	r.Funds = p.result.FundsEnd
	r.Notoriety = p.notoriety
	r.Satisfaction = p.satisfaction
	r.TurnCOGS = 0
	r.Minutes = staffing.MinuteBank{
		Kitchen: p.minutes.Kitchen,
		Service: math.Max(0, p.minutes.Service-p.minutesUsed),
	}
	p.result.StockValueEnd = r.Stock.Value()
	return nil
}

func (g *Game) emitTurn(ctx context.Context, turn int, plans []*turnPlan) {
	if g.emitter == nil {
		return
	}

	var allocated, served int
	for _, p := range plans {
		allocated += p.allocated
		served += p.served
	}
	_ = g.emitter.Emit(ctx, storage.TelemetryEvent{
		GameID:  g.id,
		Turn:    turn,
		Name:    telemetry.EventTurnCompleted,
		Message: "turn committed",
		Fields: map[string]string{
			"restaurants": strconv.Itoa(len(plans)),
			"allocated":   strconv.Itoa(allocated),
			"served":      strconv.Itoa(served),
		},
	})

	for _, p := range plans {
		if !p.expiry.Empty() {
			_ = g.emitter.Emit(ctx, storage.TelemetryEvent{
				GameID:   g.id,
				Turn:     turn,
				Name:     telemetry.EventStockDiscarded,
				Severity: string(telemetry.SeverityWarn),
				Message:  "expired stock discarded",
				Fields: map[string]string{
					"restaurant":     p.r.ID,
					"lots":           strconv.Itoa(p.expiry.LotsDiscarded),
					"batches":        strconv.Itoa(p.expiry.BatchesDiscarded),
					"raw_value":      strconv.FormatFloat(p.expiry.RawValue, 'f', 2, 64),
					"finished_value": strconv.FormatFloat(p.expiry.FinishedValue, 'f', 2, 64),
				},
			})
		}
		if p.result.Losses.Total > 0 {
			_ = g.emitter.Emit(ctx, storage.TelemetryEvent{
				GameID:   g.id,
				Turn:     turn,
				Name:     telemetry.EventDemandLost,
				Severity: string(telemetry.SeverityWarn),
				Message:  "covers lost",
				Fields: map[string]string{
					"restaurant": p.r.ID,
					"total":      strconv.Itoa(p.result.Losses.Total),
					"capacity":   strconv.Itoa(p.result.Losses.Capacity),
					"stock":      strconv.Itoa(p.result.Losses.Stock),
					"other":      strconv.Itoa(p.result.Losses.Other),
				},
			})
		}
		if p.result.Bankrupt {
			_ = g.emitter.Emit(ctx, storage.TelemetryEvent{
				GameID:   g.id,
				Turn:     turn,
				Name:     telemetry.EventRestaurantBankrupt,
				Severity: string(telemetry.SeverityError),
				Message:  "funds below zero",
				Fields: map[string]string{
					"restaurant": p.r.ID,
					"funds":      strconv.FormatFloat(p.result.FundsEnd, 'f', 2, 64),
				},
			})
		}
	}
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

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
