package ledger

import "math"

// IncomeStatement aggregates operating performance over a turn range.
// Revenue and expense figures are positive when in their natural direction.
type IncomeStatement struct {
	From, To int

	Revenue          float64
	COGS             float64
	GrossMargin      float64
	ExternalServices float64
	Payroll          float64
	EBITDA           float64
	Depreciation     float64
	OperatingResult  float64
	Interest         float64
	NetResult        float64
}

// IncomeStatement builds the income statement for turns [from, to].
func (j *Journal) IncomeStatement(chart Chart, from, to int) IncomeStatement {
	balances := j.Balances(from, to)

	statement := IncomeStatement{
		From:             from,
		To:               to,
		Revenue:          round2(-balances[chart.Sales]),
		COGS:             balances[chart.COGS],
		ExternalServices: balances[chart.ExternalServices],
		Payroll:          balances[chart.Payroll],
		Depreciation:     balances[chart.Depreciation],
		Interest:         balances[chart.Interest],
	}
	statement.GrossMargin = round2(statement.Revenue - statement.COGS)
	statement.EBITDA = round2(statement.GrossMargin - statement.ExternalServices - statement.Payroll)
	statement.OperatingResult = round2(statement.EBITDA - statement.Depreciation)
	statement.NetResult = round2(statement.OperatingResult - statement.Interest)
	return statement
}

// BalanceSheet is the position at the end of a turn. Assets must tie to
// equity plus liabilities when every posting balanced.
type BalanceSheet struct {
	AsOfTurn int

	Cash         float64
	RawStock     float64
	EquipmentNet float64
	Assets       float64

	Equity         float64
	RetainedResult float64
	Loans          float64
	EquityAndDebt  float64
}

// Balanced reports assets tying to equity plus liabilities within a cent.
func (b BalanceSheet) Balanced() bool {
	return math.Abs(b.Assets-b.EquityAndDebt) < 0.005
}

// BalanceSheet builds the position from the opening through turn.
func (j *Journal) BalanceSheet(chart Chart, turn int) BalanceSheet {
	balances := j.BalancesThrough(turn)
	statement := j.IncomeStatement(chart, 0, turn)

	sheet := BalanceSheet{
		AsOfTurn:       turn,
		Cash:           balances[chart.Cash],
		RawStock:       balances[chart.RawStock],
		EquipmentNet:   round2(balances[chart.Equipment] + balances[chart.AccumDepreciation]),
		Equity:         round2(-balances[chart.Equity]),
		RetainedResult: statement.NetResult,
		Loans:          round2(-balances[chart.Loans]),
	}
	sheet.Assets = round2(sheet.Cash + sheet.RawStock + sheet.EquipmentNet)
	sheet.EquityAndDebt = round2(sheet.Equity + sheet.RetainedResult + sheet.Loans)
	return sheet
}
