// Package errors provides structured error handling for the simulation engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Preset/config errors
	CodeConfigFileInvalid         Code = "CONFIG_FILE_INVALID"
	CodeConfigScenarioUnknown     Code = "CONFIG_SCENARIO_UNKNOWN"
	CodeConfigScenarioPopulation  Code = "CONFIG_SCENARIO_POPULATION_INVALID"
	CodeConfigScenarioShares      Code = "CONFIG_SCENARIO_SHARES_INVALID"
	CodeConfigSegmentInvalid      Code = "CONFIG_SEGMENT_INVALID"
	CodeConfigCatalogItemInvalid  Code = "CONFIG_CATALOG_ITEM_INVALID"
	CodeConfigPremisesInvalid     Code = "CONFIG_PREMISES_INVALID"
	CodeConfigRoleInvalid         Code = "CONFIG_ROLE_INVALID"
	CodeConfigChartInvalid        Code = "CONFIG_CHART_INVALID"
	CodeConfigChartAccountMissing Code = "CONFIG_CHART_ACCOUNT_MISSING"
	CodeConfigFinanceInvalid      Code = "CONFIG_FINANCE_INVALID"
	CodeConfigTuningInvalid       Code = "CONFIG_TUNING_INVALID"

	// Restaurant/menu errors
	CodeConceptUnknown        Code = "CONCEPT_UNKNOWN"
	CodeRestaurantIDEmpty     Code = "RESTAURANT_ID_EMPTY"
	CodeRestaurantNameEmpty   Code = "RESTAURANT_NAME_EMPTY"
	CodeRestaurantDuplicateID Code = "RESTAURANT_DUPLICATE_ID"
	CodeRosterEmpty           Code = "ROSTER_EMPTY"
	CodeMenuPriceInvalid      Code = "MENU_PRICE_INVALID"
	CodeMenuRecipeInvalid     Code = "MENU_RECIPE_INVALID"

	// Loan errors
	CodeLoanPrincipalInvalid Code = "LOAN_PRINCIPAL_INVALID"
	CodeLoanRateInvalid      Code = "LOAN_RATE_INVALID"
	CodeLoanTermInvalid      Code = "LOAN_TERM_INVALID"

	// Director action errors
	CodeActionRestaurantUnknown Code = "ACTION_RESTAURANT_UNKNOWN"
	CodeActionIngredientUnknown Code = "ACTION_INGREDIENT_UNKNOWN"
	CodeActionGradeUnavailable  Code = "ACTION_GRADE_UNAVAILABLE"
	CodeActionTierRestricted    Code = "ACTION_TIER_RESTRICTED"
	CodeActionQuantityInvalid   Code = "ACTION_QUANTITY_INVALID"
	CodeActionUnitCostInvalid   Code = "ACTION_UNIT_COST_INVALID"
	CodeActionPerishInvalid     Code = "ACTION_PERISH_INVALID"
	CodeActionPortionsInvalid   Code = "ACTION_PORTIONS_INVALID"
	CodeActionStockInsufficient Code = "ACTION_STOCK_INSUFFICIENT"
	CodeActionMinutesExhausted  Code = "ACTION_MINUTES_EXHAUSTED"
	CodeActionFundsInsufficient Code = "ACTION_FUNDS_INSUFFICIENT"
	CodeActionRoleUnknown       Code = "ACTION_ROLE_UNKNOWN"
	CodeActionRoleRestricted    Code = "ACTION_ROLE_RESTRICTED"
	CodeActionEmployeeUnknown   Code = "ACTION_EMPLOYEE_UNKNOWN"
	CodeActionEmployeeDuplicate Code = "ACTION_EMPLOYEE_DUPLICATE"
	CodeActionSalaryInvalid     Code = "ACTION_SALARY_INVALID"
	CodeActionHoursInvalid      Code = "ACTION_HOURS_INVALID"
	CodeActionMarketingInvalid  Code = "ACTION_MARKETING_INVALID"

	// Invariant violations (abort the turn, no partial state)
	CodeInvariantEntryUnbalanced   Code = "INVARIANT_ENTRY_UNBALANCED"
	CodeInvariantEntryEmpty        Code = "INVARIANT_ENTRY_EMPTY"
	CodeInvariantEntryLineInvalid  Code = "INVARIANT_ENTRY_LINE_INVALID"
	CodeInvariantStockNegative     Code = "INVARIANT_STOCK_NEGATIVE"
	CodeInvariantStockInsufficient Code = "INVARIANT_STOCK_INSUFFICIENT"
	CodeInvariantServedExceedsCap  Code = "INVARIANT_SERVED_EXCEEDS_CAP"
	CodeInvariantTurnStage         Code = "INVARIANT_TURN_STAGE_FAILED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// Kind groups codes into the failure families callers branch on.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindConfiguration covers invalid presets, rosters, and director actions.
	// These are fatal at load or reject the offending action.
	KindConfiguration
	// KindInvariant covers violated engine invariants. A turn that trips one
	// aborts with no state change.
	KindInvariant
	// KindNotFound covers missing stored resources.
	KindNotFound
)

// Kind classifies the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeConfigFileInvalid,
		CodeConfigScenarioUnknown,
		CodeConfigScenarioPopulation,
		CodeConfigScenarioShares,
		CodeConfigSegmentInvalid,
		CodeConfigCatalogItemInvalid,
		CodeConfigPremisesInvalid,
		CodeConfigRoleInvalid,
		CodeConfigChartInvalid,
		CodeConfigChartAccountMissing,
		CodeConfigFinanceInvalid,
		CodeConfigTuningInvalid,
		CodeConceptUnknown,
		CodeRestaurantIDEmpty,
		CodeRestaurantNameEmpty,
		CodeRestaurantDuplicateID,
		CodeRosterEmpty,
		CodeMenuPriceInvalid,
		CodeMenuRecipeInvalid,
		CodeLoanPrincipalInvalid,
		CodeLoanRateInvalid,
		CodeLoanTermInvalid,
		CodeActionRestaurantUnknown,
		CodeActionIngredientUnknown,
		CodeActionGradeUnavailable,
		CodeActionTierRestricted,
		CodeActionQuantityInvalid,
		CodeActionUnitCostInvalid,
		CodeActionPerishInvalid,
		CodeActionPortionsInvalid,
		CodeActionStockInsufficient,
		CodeActionMinutesExhausted,
		CodeActionFundsInsufficient,
		CodeActionRoleUnknown,
		CodeActionRoleRestricted,
		CodeActionEmployeeUnknown,
		CodeActionEmployeeDuplicate,
		CodeActionSalaryInvalid,
		CodeActionHoursInvalid,
		CodeActionMarketingInvalid,
		CodeSeedOutOfRange:
		return KindConfiguration

	case CodeInvariantEntryUnbalanced,
		CodeInvariantEntryEmpty,
		CodeInvariantEntryLineInvalid,
		CodeInvariantStockNegative,
		CodeInvariantStockInsufficient,
		CodeInvariantServedExceedsCap,
		CodeInvariantTurnStage:
		return KindInvariant

	case CodeNotFound:
		return KindNotFound

	default:
		return KindInternal
	}
}
