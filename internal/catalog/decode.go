package catalog

import (
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/foodops/internal/finance"
	"github.com/louisbranch/foodops/internal/inventory"
	"github.com/louisbranch/foodops/internal/ledger"
	"github.com/louisbranch/foodops/internal/market"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
)

// Preset file names, resolved against the overlay directory and the
// embedded defaults.
const (
	ingredientsFile = "ingredients.yaml"
	premisesFile    = "premises.yaml"
	rolesFile       = "roles.yaml"
	segmentsFile    = "segments.yaml"
	scenariosFile   = "scenarios.yaml"
	financeFile     = "finance.yaml"
	chartFile       = "chart.yaml"
	tuningFile      = "tuning.yaml"
)

func parseError(file string, err error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeConfigFileInvalid,
		"parse preset file",
		map[string]string{"file": file}, err)
}

func conceptMap(raw map[string]float64) (map[restaurant.Concept]float64, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[restaurant.Concept]float64, len(raw))
	for label, value := range raw {
		concept, err := restaurant.ParseConcept(label)
		if err != nil {
			return nil, err
		}
		out[concept] = value
	}
	return out, nil
}

type ingredientPayload struct {
	Name       string             `yaml:"name"`
	Category   string             `yaml:"category"`
	Tier       string             `yaml:"tier"`
	PerishDays int                `yaml:"perish_days"`
	Prices     map[string]float64 `yaml:"prices"`
	Fit        map[string]float64 `yaml:"fit"`
}

func decodeIngredients(c *Catalog, data []byte) error {
	var payload struct {
		Ingredients []ingredientPayload `yaml:"ingredients"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(ingredientsFile, err)
	}

	c.Ingredients = make(map[string]Ingredient, len(payload.Ingredients))
	for _, raw := range payload.Ingredients {
		if _, exists := c.Ingredients[raw.Name]; exists {
			return ErrIngredientInvalid.WithMetadata(map[string]string{"ingredient": raw.Name})
		}
		tier, err := ParseTier(raw.Tier)
		if err != nil {
			return err
		}
		prices := make(map[inventory.Grade]float64, len(raw.Prices))
		for label, price := range raw.Prices {
			grade, err := inventory.ParseGrade(label)
			if err != nil {
				return ErrIngredientInvalid.WithMetadata(map[string]string{
					"ingredient": raw.Name,
					"grade":      label,
				})
			}
			prices[grade] = price
		}
		fit, err := conceptMap(raw.Fit)
		if err != nil {
			return err
		}
		c.Ingredients[raw.Name] = Ingredient{
			Name:       raw.Name,
			Category:   raw.Category,
			Tier:       tier,
			PerishDays: raw.PerishDays,
			Prices:     prices,
			Fit:        fit,
		}
	}
	return nil
}

type premisesPayload struct {
	Name             string  `yaml:"name"`
	Seats            int     `yaml:"seats"`
	Rent             float64 `yaml:"rent"`
	Price            float64 `yaml:"price"`
	VisibilityRating float64 `yaml:"visibility_rating"`
	RecurringCharges float64 `yaml:"recurring_charges"`
}

func decodePremises(c *Catalog, data []byte) error {
	var payload struct {
		Premises map[string][]premisesPayload `yaml:"premises"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(premisesFile, err)
	}

	c.Premises = make(map[restaurant.Concept][]restaurant.Premises, len(payload.Premises))
	for label, rawList := range payload.Premises {
		concept, err := restaurant.ParseConcept(label)
		if err != nil {
			return err
		}
		presets := make([]restaurant.Premises, 0, len(rawList))
		for _, raw := range rawList {
			presets = append(presets, restaurant.Premises{
				Name:             raw.Name,
				Seats:            raw.Seats,
				Rent:             raw.Rent,
				Price:            raw.Price,
				VisibilityRating: raw.VisibilityRating,
				RecurringCharges: raw.RecurringCharges,
			})
		}
		c.Premises[concept] = presets
	}
	return nil
}

type rolePayload struct {
	Role         string   `yaml:"role"`
	MarketSalary float64  `yaml:"market_salary"`
	Concepts     []string `yaml:"concepts"`
}

func decodeRoles(c *Catalog, data []byte) error {
	var payload struct {
		Roles []rolePayload `yaml:"roles"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(rolesFile, err)
	}

	c.Roles = make(map[staffing.Role]RolePreset, len(payload.Roles))
	for _, raw := range payload.Roles {
		role, err := staffing.ParseRole(raw.Role)
		if err != nil {
			return err
		}
		if _, exists := c.Roles[role]; exists {
			return ErrRolePresetInvalid.WithMetadata(map[string]string{"role": raw.Role})
		}
		concepts := make([]restaurant.Concept, 0, len(raw.Concepts))
		for _, conceptLabel := range raw.Concepts {
			concept, err := restaurant.ParseConcept(conceptLabel)
			if err != nil {
				return err
			}
			concepts = append(concepts, concept)
		}
		c.Roles[role] = RolePreset{
			Role:         role,
			MarketSalary: raw.MarketSalary,
			Concepts:     concepts,
		}
	}
	return nil
}

type segmentPayload struct {
	ID     string             `yaml:"id"`
	Budget float64            `yaml:"budget"`
	Fit    map[string]float64 `yaml:"fit"`
}

func decodeSegments(c *Catalog, data []byte) error {
	var payload struct {
		Segments []segmentPayload `yaml:"segments"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(segmentsFile, err)
	}

	c.Segments = make(map[string]market.Segment, len(payload.Segments))
	for _, raw := range payload.Segments {
		if _, exists := c.Segments[raw.ID]; exists {
			return market.ErrSegmentInvalid.WithMetadata(map[string]string{"segment": raw.ID})
		}
		fit, err := conceptMap(raw.Fit)
		if err != nil {
			return err
		}
		c.Segments[raw.ID] = market.Segment{
			ID:     raw.ID,
			Budget: raw.Budget,
			Fit:    fit,
		}
	}
	return nil
}

type scenarioPayload struct {
	Name       string         `yaml:"name"`
	Population int            `yaml:"population"`
	Shares     []sharePayload `yaml:"shares"`
}

type sharePayload struct {
	Segment string  `yaml:"segment"`
	Share   float64 `yaml:"share"`
}

func decodeScenarios(c *Catalog, data []byte) error {
	var payload struct {
		Scenarios []scenarioPayload `yaml:"scenarios"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(scenariosFile, err)
	}

	c.Scenarios = make(map[string]market.Scenario, len(payload.Scenarios))
	for _, raw := range payload.Scenarios {
		if _, exists := c.Scenarios[raw.Name]; exists {
			return apperrors.WithMetadata(apperrors.CodeConfigFileInvalid,
				"duplicate scenario name",
				map[string]string{"scenario": raw.Name})
		}
		shares := make([]market.SegmentShare, 0, len(raw.Shares))
		for _, share := range raw.Shares {
			shares = append(shares, market.SegmentShare{
				SegmentID: share.Segment,
				Share:     share.Share,
			})
		}
		c.Scenarios[raw.Name] = market.Scenario{
			Name:       raw.Name,
			Population: raw.Population,
			Shares:     shares,
		}
	}
	return nil
}

func decodeFinance(c *Catalog, data []byte) error {
	var payload struct {
		Finance finance.Params `yaml:"finance"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(financeFile, err)
	}
	c.Finance = payload.Finance
	return nil
}

type accountPayload struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type bindingsPayload struct {
	Cash              string `yaml:"cash"`
	RawStock          string `yaml:"raw_stock"`
	Equipment         string `yaml:"equipment"`
	AccumDepreciation string `yaml:"accum_depreciation"`
	Equity            string `yaml:"equity"`
	Loans             string `yaml:"loans"`
	Sales             string `yaml:"sales"`
	COGS              string `yaml:"cogs"`
	ExternalServices  string `yaml:"external_services"`
	Payroll           string `yaml:"payroll"`
	Depreciation      string `yaml:"depreciation"`
	Interest          string `yaml:"interest"`
}

func decodeChart(c *Catalog, data []byte) error {
	var payload struct {
		Chart struct {
			Accounts []accountPayload `yaml:"accounts"`
			Bindings bindingsPayload  `yaml:"bindings"`
		} `yaml:"chart"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(chartFile, err)
	}

	accounts := make([]ledger.Account, 0, len(payload.Chart.Accounts))
	for _, raw := range payload.Chart.Accounts {
		kind, err := ledger.ParseAccountKind(raw.Kind)
		if err != nil {
			return err
		}
		accounts = append(accounts, ledger.Account{
			Code: raw.Code,
			Name: raw.Name,
			Kind: kind,
		})
	}
	bindings := payload.Chart.Bindings
	c.Chart = ledger.Chart{
		Accounts:          accounts,
		Cash:              bindings.Cash,
		RawStock:          bindings.RawStock,
		Equipment:         bindings.Equipment,
		AccumDepreciation: bindings.AccumDepreciation,
		Equity:            bindings.Equity,
		Loans:             bindings.Loans,
		Sales:             bindings.Sales,
		COGS:              bindings.COGS,
		ExternalServices:  bindings.ExternalServices,
		Payroll:           bindings.Payroll,
		Depreciation:      bindings.Depreciation,
		Interest:          bindings.Interest,
	}
	return nil
}

type weightsPayload struct {
	Fit        float64 `yaml:"fit"`
	Price      float64 `yaml:"price"`
	Quality    float64 `yaml:"quality"`
	Notoriety  float64 `yaml:"notoriety"`
	Visibility float64 `yaml:"visibility"`
}

func decodeTuning(c *Catalog, data []byte) error {
	var payload struct {
		Tuning struct {
			Weights              weightsPayload `yaml:"weights"`
			BudgetTolerance      float64        `yaml:"budget_tolerance"`
			CannibalizationK     float64        `yaml:"cannibalization_k"`
			NotorietyPenaltyRate float64        `yaml:"notoriety_penalty_rate"`
			FinishedShelfTurns   int            `yaml:"finished_shelf_turns"`
		} `yaml:"tuning"`
	}
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return parseError(tuningFile, err)
	}

	c.Tuning = Tuning{
		Weights: market.Weights{
			Fit:        payload.Tuning.Weights.Fit,
			Price:      payload.Tuning.Weights.Price,
			Quality:    payload.Tuning.Weights.Quality,
			Notoriety:  payload.Tuning.Weights.Notoriety,
			Visibility: payload.Tuning.Weights.Visibility,
		},
		BudgetTolerance:      payload.Tuning.BudgetTolerance,
		CannibalizationK:     payload.Tuning.CannibalizationK,
		NotorietyPenaltyRate: payload.Tuning.NotorietyPenaltyRate,
		FinishedShelfTurns:   payload.Tuning.FinishedShelfTurns,
	}
	return nil
}
