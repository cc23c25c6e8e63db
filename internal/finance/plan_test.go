package finance

import (
	"errors"
	"testing"

	"github.com/louisbranch/foodops/internal/ledger"
)

func TestParamsValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Params)
	}{
		{name: "negative equity", mutate: func(p *Params) { p.EquityContribution = -1 }},
		{name: "negative bank cap", mutate: func(p *Params) { p.BankLoanCap = -1 }},
		{name: "bank rate at one", mutate: func(p *Params) { p.BankAnnualRate = 1 }},
		{name: "zero bank term", mutate: func(p *Params) { p.BankTermMonths = 0 }},
		{name: "negative subsidized cap", mutate: func(p *Params) { p.SubsidizedLoanCap = -1 }},
		{name: "negative subsidized rate", mutate: func(p *Params) { p.SubsidizedAnnualRate = -0.01 }},
		{name: "zero subsidized term", mutate: func(p *Params) { p.SubsidizedTermMonths = 0 }},
		{name: "negative fee rate", mutate: func(p *Params) { p.ArrangementFeeRate = -0.01 }},
		{name: "zero equipment life", mutate: func(p *Params) { p.EquipmentLifeYears = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams()
			tc.mutate(&params)
			if err := params.Validate(); !errors.Is(err, ErrParamsInvalid) {
				t.Fatalf("Validate() error = %v, want %v", err, ErrParamsInvalid)
			}
		})
	}

	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}
}

func TestBuildOpeningPlan(t *testing.T) {
	plan, err := BuildOpeningPlan(DefaultParams(), 140000, true)
	if err != nil {
		t.Fatalf("BuildOpeningPlan() error = %v", err)
	}

	if got := plan.Borrowed(); got != 270000 {
		t.Fatalf("Borrowed() = %v, want 270000", got)
	}
	if plan.ArrangementFee != 8100 {
		t.Fatalf("ArrangementFee = %v, want 8100", plan.ArrangementFee)
	}
	if got := plan.OpeningCash(); got != 180000 {
		t.Fatalf("OpeningCash() = %v, want 180000", got)
	}
	if got := plan.OpeningFunds(); got != 171900 {
		t.Fatalf("OpeningFunds() = %v, want 171900", got)
	}
	if len(plan.Loans) != 2 {
		t.Fatalf("len(Loans) = %d, want 2", len(plan.Loans))
	}
	if plan.Loans[0].Name != BankLoanName || plan.Loans[1].Name != SubsidizedLoanName {
		t.Fatalf("loan names = %q, %q", plan.Loans[0].Name, plan.Loans[1].Name)
	}
}

func TestBuildOpeningPlanWithoutSubsidized(t *testing.T) {
	plan, err := BuildOpeningPlan(DefaultParams(), 140000, false)
	if err != nil {
		t.Fatalf("BuildOpeningPlan() error = %v", err)
	}

	if got := plan.Borrowed(); got != 250000 {
		t.Fatalf("Borrowed() = %v, want 250000", got)
	}
	if plan.ArrangementFee != 7500 {
		t.Fatalf("ArrangementFee = %v, want 7500", plan.ArrangementFee)
	}
	if len(plan.Loans) != 1 {
		t.Fatalf("len(Loans) = %d, want 1", len(plan.Loans))
	}
}

func TestBuildOpeningPlanUnaffordable(t *testing.T) {
	if _, err := BuildOpeningPlan(DefaultParams(), 400000, true); !errors.Is(err, ErrEquipmentUnaffordable) {
		t.Fatalf("BuildOpeningPlan() error = %v, want %v", err, ErrEquipmentUnaffordable)
	}
}

func TestOpeningEntryBalancesAndPosts(t *testing.T) {
	plan, err := BuildOpeningPlan(DefaultParams(), 140000, true)
	if err != nil {
		t.Fatalf("BuildOpeningPlan() error = %v", err)
	}

	chart := ledger.DefaultChart()
	journal := ledger.NewJournal()
	if err := journal.Post(plan.OpeningEntry(chart)); err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	fee, ok := plan.FeeEntry(chart)
	if !ok {
		t.Fatal("expected a fee entry for a borrowed plan")
	}
	if err := journal.Post(fee); err != nil {
		t.Fatalf("Post(fee) error = %v", err)
	}

	balances := journal.BalancesThrough(0)
	checks := []struct {
		account string
		want    float64
	}{
		{chart.Cash, 171900},
		{chart.Equipment, 140000},
		{chart.ExternalServices, 8100},
		{chart.Equity, -50000},
		{chart.Loans, -270000},
	}
	for _, c := range checks {
		if got := balances[c.account]; got != c.want {
			t.Fatalf("balance[%s] = %v, want %v", c.account, got, c.want)
		}
	}

	sheet := journal.BalanceSheet(chart, 0)
	if !sheet.Balanced() {
		t.Fatalf("balance sheet does not tie: %+v", sheet)
	}

	if _, ok := (OpeningPlan{}).FeeEntry(chart); ok {
		t.Fatal("expected no fee entry without borrowings")
	}
}

func TestMonthlyDepreciation(t *testing.T) {
	testCases := []struct {
		name string
		cost float64
		life int
		want float64
	}{
		{name: "standard equipment", cost: 140000, life: 5, want: 2333.33},
		{name: "zero cost", cost: 0, life: 5, want: 0},
		{name: "zero life", cost: 140000, life: 0, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthlyDepreciation(tc.cost, tc.life); got != tc.want {
				t.Fatalf("MonthlyDepreciation(%v, %d) = %v, want %v", tc.cost, tc.life, got, tc.want)
			}
		})
	}
}
