// Package finance models opening financing and annuity loan amortization.
//
// A restaurant opens with an equity contribution plus up to two amortizing
// loans. Loans carry a fixed monthly payment computed with the annuity
// formula; each month the payment splits into interest on the outstanding
// principal and a principal repayment, with the final installment clamped so
// the balance lands exactly on zero.
package finance

import (
	"math"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

var (
	// ErrParamsInvalid reports a financing parameter outside its domain.
	ErrParamsInvalid = apperrors.New(apperrors.CodeConfigFinanceInvalid, "financing parameters invalid")
	// ErrEquipmentUnaffordable reports equipment cost above the available
	// equity plus borrowing.
	ErrEquipmentUnaffordable = apperrors.New(apperrors.CodeConfigFinanceInvalid, "equipment cost exceeds equity plus borrowing")
)

// Params are the financing constants offered to every new restaurant.
type Params struct {
	// EquityContribution is the founders' cash injection.
	EquityContribution float64 `yaml:"equity_contribution"`
	// BankLoanCap is the commercial loan principal.
	BankLoanCap    float64 `yaml:"bank_loan_cap"`
	BankAnnualRate float64 `yaml:"bank_annual_rate"`
	BankTermMonths int     `yaml:"bank_term_months"`
	// SubsidizedLoanCap is the optional subsidized loan principal.
	SubsidizedLoanCap    float64 `yaml:"subsidized_loan_cap"`
	SubsidizedAnnualRate float64 `yaml:"subsidized_annual_rate"`
	SubsidizedTermMonths int     `yaml:"subsidized_term_months"`
	// ArrangementFeeRate applies once to the total borrowed principal,
	// booked at opening as an external service.
	ArrangementFeeRate float64 `yaml:"arrangement_fee_rate"`
	// EquipmentLifeYears drives straight-line depreciation.
	EquipmentLifeYears int `yaml:"equipment_life_years"`
}

// DefaultParams returns the standard financing offer.
func DefaultParams() Params {
	return Params{
		EquityContribution:   50000,
		BankLoanCap:          250000,
		BankAnnualRate:       0.045,
		BankTermMonths:       60,
		SubsidizedLoanCap:    20000,
		SubsidizedAnnualRate: 0.025,
		SubsidizedTermMonths: 48,
		ArrangementFeeRate:   0.03,
		EquipmentLifeYears:   5,
	}
}

// Validate checks every parameter against its domain.
func (p Params) Validate() error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"equity_contribution", p.EquityContribution >= 0},
		{"bank_loan_cap", p.BankLoanCap >= 0},
		{"bank_annual_rate", p.BankAnnualRate >= 0 && p.BankAnnualRate < 1},
		{"bank_term_months", p.BankTermMonths > 0},
		{"subsidized_loan_cap", p.SubsidizedLoanCap >= 0},
		{"subsidized_annual_rate", p.SubsidizedAnnualRate >= 0 && p.SubsidizedAnnualRate < 1},
		{"subsidized_term_months", p.SubsidizedTermMonths > 0},
		{"arrangement_fee_rate", p.ArrangementFeeRate >= 0 && p.ArrangementFeeRate < 1},
		{"equipment_life_years", p.EquipmentLifeYears > 0},
	}
	for _, c := range checks {
		if !c.ok {
			return ErrParamsInvalid.WithMetadata(map[string]string{"field": c.field})
		}
	}
	return nil
}

// MonthlyDepreciation is the straight-line charge for equipment bought at
// cost and written off over life years.
func MonthlyDepreciation(cost float64, lifeYears int) float64 {
	if cost <= 0 || lifeYears <= 0 {
		return 0
	}
	return round2(cost / float64(lifeYears*12))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
