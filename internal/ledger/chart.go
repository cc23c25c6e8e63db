package ledger

import (
	"strings"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// AccountKind classifies accounts for statement building.
type AccountKind int

const (
	KindUnspecified AccountKind = iota
	KindAsset
	KindContraAsset
	KindEquity
	KindLiability
	KindRevenue
	KindExpense
)

// String returns the preset label for the kind.
func (k AccountKind) String() string {
	switch k {
	case KindAsset:
		return "asset"
	case KindContraAsset:
		return "contra_asset"
	case KindEquity:
		return "equity"
	case KindLiability:
		return "liability"
	case KindRevenue:
		return "revenue"
	case KindExpense:
		return "expense"
	default:
		return "unspecified"
	}
}

// ParseAccountKind converts a preset label into an AccountKind.
func ParseAccountKind(s string) (AccountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset":
		return KindAsset, nil
	case "contra_asset":
		return KindContraAsset, nil
	case "equity":
		return KindEquity, nil
	case "liability":
		return KindLiability, nil
	case "revenue":
		return KindRevenue, nil
	case "expense":
		return KindExpense, nil
	default:
		return KindUnspecified, apperrors.WithMetadata(apperrors.CodeConfigChartInvalid,
			"unknown account kind",
			map[string]string{"kind": s})
	}
}

// Account is one chart-of-accounts entry.
type Account struct {
	Code string
	Name string
	Kind AccountKind
}

// Chart is the configured chart of accounts plus the role bindings the
// engine posts against. Codes are opaque strings; the defaults follow a
// simplified French chart.
type Chart struct {
	Accounts []Account

	// Role bindings: the account code serving each engine posting role.
	Cash              string
	RawStock          string
	Equipment         string
	AccumDepreciation string
	Equity            string
	Loans             string
	Sales             string
	COGS              string
	ExternalServices  string
	Payroll           string
	Depreciation      string
	Interest          string
}

// DefaultChart returns the built-in simplified chart.
func DefaultChart() Chart {
	return Chart{
		Accounts: []Account{
			{Code: "512", Name: "Cash at bank", Kind: KindAsset},
			{Code: "31", Name: "Raw stock", Kind: KindAsset},
			{Code: "215", Name: "Equipment", Kind: KindAsset},
			{Code: "2815", Name: "Accumulated depreciation", Kind: KindContraAsset},
			{Code: "101", Name: "Owner equity", Kind: KindEquity},
			{Code: "164", Name: "Loans outstanding", Kind: KindLiability},
			{Code: "70", Name: "Sales revenue", Kind: KindRevenue},
			{Code: "60", Name: "Cost of goods sold", Kind: KindExpense},
			{Code: "61", Name: "External services", Kind: KindExpense},
			{Code: "64", Name: "Payroll", Kind: KindExpense},
			{Code: "681", Name: "Depreciation expense", Kind: KindExpense},
			{Code: "66", Name: "Interest expense", Kind: KindExpense},
		},
		Cash:              "512",
		RawStock:          "31",
		Equipment:         "215",
		AccumDepreciation: "2815",
		Equity:            "101",
		Loans:             "164",
		Sales:             "70",
		COGS:              "60",
		ExternalServices:  "61",
		Payroll:           "64",
		Depreciation:      "681",
		Interest:          "66",
	}
}

// Account looks up an account by code.
func (c Chart) Account(code string) (Account, bool) {
	for _, account := range c.Accounts {
		if account.Code == code {
			return account, true
		}
	}
	return Account{}, false
}

// Validate checks the chart for duplicate or empty codes and verifies every
// role binding resolves to a declared account.
func (c Chart) Validate() error {
	if len(c.Accounts) == 0 {
		return apperrors.New(apperrors.CodeConfigChartInvalid, "chart has no accounts")
	}
	seen := make(map[string]bool, len(c.Accounts))
	for _, account := range c.Accounts {
		if account.Code == "" {
			return apperrors.New(apperrors.CodeConfigChartInvalid, "chart account code is empty")
		}
		if seen[account.Code] {
			return apperrors.WithMetadata(apperrors.CodeConfigChartInvalid,
				"chart account code duplicated",
				map[string]string{"code": account.Code})
		}
		seen[account.Code] = true
	}

	bindings := []struct {
		role string
		code string
	}{
		{"cash", c.Cash},
		{"raw_stock", c.RawStock},
		{"equipment", c.Equipment},
		{"accum_depreciation", c.AccumDepreciation},
		{"equity", c.Equity},
		{"loans", c.Loans},
		{"sales", c.Sales},
		{"cogs", c.COGS},
		{"external_services", c.ExternalServices},
		{"payroll", c.Payroll},
		{"depreciation", c.Depreciation},
		{"interest", c.Interest},
	}
	for _, binding := range bindings {
		if binding.code == "" || !seen[binding.code] {
			return apperrors.WithMetadata(apperrors.CodeConfigChartAccountMissing,
				"chart role binding missing or unknown",
				map[string]string{"role": binding.role, "code": binding.code})
		}
	}
	return nil
}
