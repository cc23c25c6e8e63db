package finance

import (
	"github.com/louisbranch/foodops/internal/ledger"
)

// Loan names used by opening plans.
const (
	BankLoanName       = "bank"
	SubsidizedLoanName = "subsidized"
)

// OpeningPlan is the financing mix a restaurant starts with.
type OpeningPlan struct {
	Equity float64
	Loans  []Loan
	// EquipmentCost is the premises acquisition price, capitalized at cost.
	EquipmentCost float64
	// ArrangementFee is charged on the borrowed total and booked as an
	// external service in its own entry.
	ArrangementFee float64
}

// BuildOpeningPlan assembles the standard financing for a premises purchase:
// the full equity contribution, the bank loan at its cap, and optionally the
// subsidized loan at its cap.
func BuildOpeningPlan(params Params, equipmentCost float64, withSubsidized bool) (OpeningPlan, error) {
	if err := params.Validate(); err != nil {
		return OpeningPlan{}, err
	}
	plan := OpeningPlan{
		Equity:        round2(params.EquityContribution),
		EquipmentCost: round2(equipmentCost),
	}
	if params.BankLoanCap > 0 {
		loan, err := NewLoan(BankLoanName, params.BankLoanCap, params.BankAnnualRate, params.BankTermMonths)
		if err != nil {
			return OpeningPlan{}, err
		}
		plan.Loans = append(plan.Loans, loan)
	}
	if withSubsidized && params.SubsidizedLoanCap > 0 {
		loan, err := NewLoan(SubsidizedLoanName, params.SubsidizedLoanCap, params.SubsidizedAnnualRate, params.SubsidizedTermMonths)
		if err != nil {
			return OpeningPlan{}, err
		}
		plan.Loans = append(plan.Loans, loan)
	}
	plan.ArrangementFee = round2(params.ArrangementFeeRate * plan.Borrowed())
	if plan.OpeningCash() < 0 {
		return OpeningPlan{}, ErrEquipmentUnaffordable
	}
	return plan, nil
}

// Borrowed is the total loan principal.
func (p OpeningPlan) Borrowed() float64 {
	var total float64
	for _, l := range p.Loans {
		total += l.Principal
	}
	return round2(total)
}

// OpeningCash is the bank balance after buying the equipment: equity plus
// borrowings minus the equipment cost.
func (p OpeningPlan) OpeningCash() float64 {
	return round2(p.Equity + p.Borrowed() - p.EquipmentCost)
}

// OpeningFunds is the cash actually available to trade with: opening cash
// less the arrangement fee.
func (p OpeningPlan) OpeningFunds() float64 {
	return round2(p.OpeningCash() - p.ArrangementFee)
}

// OpeningEntry builds the balanced turn-zero posting: debit cash and
// equipment at cost, credit equity and loan liabilities. Zero components are
// omitted.
func (p OpeningPlan) OpeningEntry(chart ledger.Chart) ledger.Entry {
	var lines []ledger.Line
	add := func(line ledger.Line) {
		if line.Amount > 0 {
			lines = append(lines, line)
		}
	}
	add(ledger.DebitLine(chart.Cash, p.OpeningCash()))
	add(ledger.DebitLine(chart.Equipment, p.EquipmentCost))
	add(ledger.CreditLine(chart.Equity, p.Equity))
	add(ledger.CreditLine(chart.Loans, p.Borrowed()))
	return ledger.Entry{Turn: 0, Label: "opening", Lines: lines}
}

// FeeEntry books the arrangement fee against cash as an external service.
// The second return is false when no fee applies.
func (p OpeningPlan) FeeEntry(chart ledger.Chart) (ledger.Entry, bool) {
	if p.ArrangementFee <= 0 {
		return ledger.Entry{}, false
	}
	return ledger.Entry{Turn: 0, Label: "loan arrangement fee", Lines: []ledger.Line{
		ledger.DebitLine(chart.ExternalServices, p.ArrangementFee),
		ledger.CreditLine(chart.Cash, p.ArrangementFee),
	}}, true
}
