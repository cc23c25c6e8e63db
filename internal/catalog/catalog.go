// Package catalog loads the read-only preset data the engine consumes:
// supplier ingredients, premises, labor roles, customer segments, market
// scenarios, financing parameters, the chart of accounts, and gameplay
// tuning.
//
// Every preset family lives in one YAML file. Embedded defaults cover all
// of them; a preset directory overrides whole files, never single keys.
package catalog

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/louisbranch/foodops/internal/finance"
	"github.com/louisbranch/foodops/internal/ledger"
	"github.com/louisbranch/foodops/internal/market"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// ErrScenarioUnknown reports a scenario name the catalog does not define.
var ErrScenarioUnknown = apperrors.New(apperrors.CodeConfigScenarioUnknown, "unknown scenario")

// ErrRoleUnknown reports a role the catalog carries no preset for.
var ErrRoleUnknown = apperrors.New(apperrors.CodeActionRoleUnknown, "no preset for role")

// Catalog aggregates every preset family.
type Catalog struct {
	Ingredients map[string]Ingredient
	Premises    map[restaurant.Concept][]restaurant.Premises
	Roles       map[staffing.Role]RolePreset
	Segments    map[string]market.Segment
	Scenarios   map[string]market.Scenario
	Finance     finance.Params
	Chart       ledger.Chart
	Tuning      Tuning
}

// LoadEmbedded returns the built-in presets.
func LoadEmbedded() (Catalog, error) {
	return LoadFS(nil)
}

// Load reads presets from dir, falling back to the embedded defaults for
// any file the directory does not provide. An empty dir loads the
// defaults only.
func Load(dir string) (Catalog, error) {
	if dir == "" {
		return LoadEmbedded()
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads presets from overlay with embedded fallback and validates
// the result. A nil overlay reads the defaults only.
func LoadFS(overlay fs.FS) (Catalog, error) {
	c := Catalog{}
	steps := []struct {
		file   string
		decode func(*Catalog, []byte) error
	}{
		{ingredientsFile, decodeIngredients},
		{premisesFile, decodePremises},
		{rolesFile, decodeRoles},
		{segmentsFile, decodeSegments},
		{scenariosFile, decodeScenarios},
		{financeFile, decodeFinance},
		{chartFile, decodeChart},
		{tuningFile, decodeTuning},
	}
	for _, step := range steps {
		data, err := readPreset(overlay, step.file)
		if err != nil {
			return Catalog{}, err
		}
		if err := step.decode(&c, data); err != nil {
			return Catalog{}, err
		}
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func readPreset(overlay fs.FS, name string) ([]byte, error) {
	if overlay != nil {
		data, err := fs.ReadFile(overlay, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.WrapWithMetadata(apperrors.CodeConfigFileInvalid,
				"read preset file",
				map[string]string{"file": name}, err)
		}
	}
	data, err := defaultsFS.ReadFile("defaults/" + name)
	if err != nil {
		return nil, apperrors.WrapWithMetadata(apperrors.CodeConfigFileInvalid,
			"read embedded preset",
			map[string]string{"file": name}, err)
	}
	return data, nil
}

// Validate checks every preset family and their cross-references.
func (c Catalog) Validate() error {
	for _, ingredient := range c.Ingredients {
		if err := ingredient.Validate(); err != nil {
			return err
		}
	}
	for concept, presets := range c.Premises {
		if concept == restaurant.ConceptUnspecified {
			return apperrors.New(apperrors.CodeConfigPremisesInvalid, "premises concept unspecified")
		}
		for _, premises := range presets {
			if err := premises.Validate(); err != nil {
				return err
			}
		}
	}
	for role, preset := range c.Roles {
		if role != preset.Role {
			return ErrRolePresetInvalid.WithMetadata(map[string]string{"role": role.String()})
		}
		if err := preset.Validate(); err != nil {
			return err
		}
	}
	for _, segment := range c.Segments {
		if err := segment.Validate(); err != nil {
			return err
		}
	}
	for _, scenario := range c.Scenarios {
		if err := scenario.Validate(); err != nil {
			return err
		}
		for _, share := range scenario.Shares {
			if _, ok := c.Segments[share.SegmentID]; !ok {
				return market.ErrScenarioSegmentUnknown.WithMetadata(map[string]string{
					"scenario": scenario.Name,
					"segment":  share.SegmentID,
				})
			}
		}
	}
	if err := c.Finance.Validate(); err != nil {
		return err
	}
	if err := c.Chart.Validate(); err != nil {
		return err
	}
	return c.Tuning.Validate()
}

// Ingredient looks up a catalog item by name.
func (c Catalog) Ingredient(name string) (Ingredient, error) {
	ingredient, ok := c.Ingredients[name]
	if !ok {
		return Ingredient{}, ErrIngredientUnknown.WithMetadata(map[string]string{"ingredient": name})
	}
	return ingredient, nil
}

// Role looks up the preset for a role.
func (c Catalog) Role(role staffing.Role) (RolePreset, error) {
	preset, ok := c.Roles[role]
	if !ok {
		return RolePreset{}, ErrRoleUnknown.WithMetadata(map[string]string{"role": role.String()})
	}
	return preset, nil
}

// Scenario looks up a market scenario by name.
func (c Catalog) Scenario(name string) (market.Scenario, error) {
	scenario, ok := c.Scenarios[name]
	if !ok {
		return market.Scenario{}, ErrScenarioUnknown.WithMetadata(map[string]string{"scenario": name})
	}
	return scenario, nil
}

// PremisesFor lists the premises presets offered to a concept.
func (c Catalog) PremisesFor(concept restaurant.Concept) []restaurant.Premises {
	return append([]restaurant.Premises(nil), c.Premises[concept]...)
}

// IngredientNames lists catalog items in stable order.
func (c Catalog) IngredientNames() []string {
	names := make([]string, 0, len(c.Ingredients))
	for name := range c.Ingredients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScenarioNames lists scenarios in stable order.
func (c Catalog) ScenarioNames() []string {
	names := make([]string, 0, len(c.Scenarios))
	for name := range c.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
