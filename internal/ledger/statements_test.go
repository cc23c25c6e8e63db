package ledger

import "testing"

// postOpeningAndFirstTurn stages a small but complete game opening plus one
// trading turn so statement math can be checked against hand-computed
// figures.
func postOpeningAndFirstTurn(t *testing.T) (*Journal, Chart) {
	t.Helper()

	chart := DefaultChart()
	journal := NewJournal()

	mustPost(t, journal, Entry{Turn: 0, Label: "opening", Lines: []Line{
		DebitLine(chart.Cash, 180000),
		DebitLine(chart.Equipment, 140000),
		CreditLine(chart.Equity, 50000),
		CreditLine(chart.Loans, 270000),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "purchase chicken", Lines: []Line{
		DebitLine(chart.RawStock, 3600), CreditLine(chart.Cash, 3600),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "sales", Lines: []Line{
		DebitLine(chart.Cash, 10000), CreditLine(chart.Sales, 10000),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "cogs", Lines: []Line{
		DebitLine(chart.COGS, 3000), CreditLine(chart.RawStock, 3000),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "external services", Lines: []Line{
		DebitLine(chart.ExternalServices, 2500), CreditLine(chart.Cash, 2500),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "payroll", Lines: []Line{
		DebitLine(chart.Payroll, 2800), CreditLine(chart.Cash, 2800),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "depreciation", Lines: []Line{
		DebitLine(chart.Depreciation, 2333.33), CreditLine(chart.AccumDepreciation, 2333.33),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "loan interest", Lines: []Line{
		DebitLine(chart.Interest, 1012.50), CreditLine(chart.Cash, 1012.50),
	}})
	mustPost(t, journal, Entry{Turn: 1, Label: "loan principal", Lines: []Line{
		DebitLine(chart.Loans, 3654.21), CreditLine(chart.Cash, 3654.21),
	}})

	return journal, chart
}

func TestIncomeStatement(t *testing.T) {
	t.Parallel()

	journal, chart := postOpeningAndFirstTurn(t)
	statement := journal.IncomeStatement(chart, 1, 1)

	if statement.Revenue != 10000 {
		t.Fatalf("revenue = %v, want 10000", statement.Revenue)
	}
	if statement.COGS != 3000 {
		t.Fatalf("cogs = %v, want 3000", statement.COGS)
	}
	if statement.GrossMargin != 7000 {
		t.Fatalf("gross margin = %v, want 7000", statement.GrossMargin)
	}
	if statement.EBITDA != 1700 {
		t.Fatalf("ebitda = %v, want 1700", statement.EBITDA)
	}
	if statement.OperatingResult != -633.33 {
		t.Fatalf("operating result = %v, want -633.33", statement.OperatingResult)
	}
	if statement.NetResult != -1645.83 {
		t.Fatalf("net result = %v, want -1645.83", statement.NetResult)
	}
}

func TestBalanceSheetTies(t *testing.T) {
	t.Parallel()

	journal, chart := postOpeningAndFirstTurn(t)
	sheet := journal.BalanceSheet(chart, 1)

	if sheet.Cash != 176433.29 {
		t.Fatalf("cash = %v, want 176433.29", sheet.Cash)
	}
	if sheet.RawStock != 600 {
		t.Fatalf("raw stock = %v, want 600", sheet.RawStock)
	}
	if sheet.EquipmentNet != 137666.67 {
		t.Fatalf("equipment net = %v, want 137666.67", sheet.EquipmentNet)
	}
	if sheet.Loans != 266345.79 {
		t.Fatalf("loans = %v, want 266345.79", sheet.Loans)
	}
	if sheet.RetainedResult != -1645.83 {
		t.Fatalf("retained result = %v, want -1645.83", sheet.RetainedResult)
	}
	if !sheet.Balanced() {
		t.Fatalf("sheet does not tie: assets %v vs equity+debt %v", sheet.Assets, sheet.EquityAndDebt)
	}
}

func TestBalanceSheetAtOpening(t *testing.T) {
	t.Parallel()

	journal, chart := postOpeningAndFirstTurn(t)
	sheet := journal.BalanceSheet(chart, 0)

	if sheet.Cash != 180000 {
		t.Fatalf("opening cash = %v, want 180000", sheet.Cash)
	}
	if sheet.RetainedResult != 0 {
		t.Fatalf("opening retained result = %v, want 0", sheet.RetainedResult)
	}
	if !sheet.Balanced() {
		t.Fatalf("opening sheet does not tie: assets %v vs equity+debt %v", sheet.Assets, sheet.EquityAndDebt)
	}
}
