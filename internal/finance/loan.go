package finance

import (
	"math"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

var (
	// ErrPrincipalInvalid reports a non-positive loan principal.
	ErrPrincipalInvalid = apperrors.New(apperrors.CodeLoanPrincipalInvalid, "loan principal must be positive")
	// ErrRateInvalid reports an annual rate outside [0, 1).
	ErrRateInvalid = apperrors.New(apperrors.CodeLoanRateInvalid, "loan annual rate out of range")
	// ErrTermInvalid reports a non-positive term.
	ErrTermInvalid = apperrors.New(apperrors.CodeLoanTermInvalid, "loan term must be positive")
)

// Loan is one amortizing loan with a fixed monthly payment.
type Loan struct {
	Name       string
	Principal  float64
	AnnualRate float64
	TermMonths int
	// Payment is the fixed monthly annuity.
	Payment float64
	// Outstanding is the remaining principal.
	Outstanding float64
}

// Installment is one month of debt service.
type Installment struct {
	Interest  float64
	Principal float64
}

// Total is the cash paid for the installment.
func (i Installment) Total() float64 {
	return round2(i.Interest + i.Principal)
}

// NewLoan builds a loan and fixes its monthly payment.
//
// The payment follows the annuity formula P*r / (1 - (1+r)^-n) at the
// monthly rate r; a zero-rate loan amortizes linearly.
func NewLoan(name string, principal, annualRate float64, termMonths int) (Loan, error) {
	if principal <= 0 {
		return Loan{}, ErrPrincipalInvalid.WithMetadata(map[string]string{"loan": name})
	}
	if annualRate < 0 || annualRate >= 1 {
		return Loan{}, ErrRateInvalid.WithMetadata(map[string]string{"loan": name})
	}
	if termMonths <= 0 {
		return Loan{}, ErrTermInvalid.WithMetadata(map[string]string{"loan": name})
	}
	return Loan{
		Name:        name,
		Principal:   round2(principal),
		AnnualRate:  annualRate,
		TermMonths:  termMonths,
		Payment:     annuityPayment(principal, annualRate/12, termMonths),
		Outstanding: round2(principal),
	}, nil
}

func annuityPayment(principal, monthlyRate float64, termMonths int) float64 {
	if monthlyRate == 0 {
		return round2(principal / float64(termMonths))
	}
	factor := 1 - math.Pow(1+monthlyRate, -float64(termMonths))
	return round2(principal * monthlyRate / factor)
}

// Settled reports whether the loan is fully repaid.
func (l Loan) Settled() bool {
	return l.Outstanding <= 0
}

// NextInstallment computes the coming month's split without mutating the
// loan. Interest accrues on the outstanding balance; the principal part is
// the payment remainder, clamped so the last installment repays exactly the
// residue.
func (l Loan) NextInstallment() Installment {
	if l.Settled() {
		return Installment{}
	}
	interest := round2(l.Outstanding * l.AnnualRate / 12)
	principal := round2(l.Payment - interest)
	if principal < 0 {
		principal = 0
	}
	if principal > l.Outstanding {
		principal = l.Outstanding
	}
	return Installment{Interest: interest, Principal: principal}
}

// Advance applies one installment and returns it.
func (l *Loan) Advance() Installment {
	inst := l.NextInstallment()
	l.Outstanding = round2(l.Outstanding - inst.Principal)
	return inst
}

// ScheduleRow is one line of an amortization table.
type ScheduleRow struct {
	Month       int
	Interest    float64
	Principal   float64
	Outstanding float64
}

// Schedule materializes the full amortization table from the loan's current
// balance. Rounding in the fixed payment can leave a small residue past the
// nominal term; the table runs until the balance reaches zero.
func (l Loan) Schedule() []ScheduleRow {
	var rows []ScheduleRow
	cur := l
	for month := 1; !cur.Settled(); month++ {
		inst := cur.Advance()
		rows = append(rows, ScheduleRow{
			Month:       month,
			Interest:    inst.Interest,
			Principal:   inst.Principal,
			Outstanding: cur.Outstanding,
		})
	}
	return rows
}
