package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/louisbranch/foodops/internal/finance"
	"github.com/louisbranch/foodops/internal/inventory"
	"github.com/louisbranch/foodops/internal/market"
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
)

func TestLoadEmbedded(t *testing.T) {
	t.Parallel()

	c, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	chicken, err := c.Ingredient("chicken")
	if err != nil {
		t.Fatalf("Ingredient(chicken) error = %v", err)
	}
	price, err := chicken.Price(inventory.GradeFreshRaw)
	if err != nil || price != 7.5 {
		t.Fatalf("chicken G1 price = %v, %v, want 7.5", price, err)
	}
	if chicken.Tier != TierAll {
		t.Fatalf("chicken tier = %v, want %v", chicken.Tier, TierAll)
	}

	if len(c.Scenarios) != 3 {
		t.Fatalf("len(Scenarios) = %d, want 3", len(c.Scenarios))
	}
	centre, err := c.Scenario("city_centre")
	if err != nil {
		t.Fatalf("Scenario(city_centre) error = %v", err)
	}
	if centre.Population != 8000 {
		t.Fatalf("city_centre population = %d, want 8000", centre.Population)
	}
	if centre.Shares[0].SegmentID != "student" || centre.Shares[1].SegmentID != "active" {
		t.Fatalf("share order = %+v, want student then active first", centre.Shares)
	}

	chef, err := c.Role(staffing.RoleChef)
	if err != nil {
		t.Fatalf("Role(chef) error = %v", err)
	}
	if chef.MarketSalary != 2800 {
		t.Fatalf("chef market salary = %v, want 2800", chef.MarketSalary)
	}
	if chef.Allows(restaurant.ConceptFastFood) {
		t.Fatal("chef should not be hireable by fast food")
	}
	if !chef.Allows(restaurant.ConceptGastro) {
		t.Fatal("chef should be hireable by gastro")
	}

	gastroPremises := c.PremisesFor(restaurant.ConceptGastro)
	if len(gastroPremises) != 2 {
		t.Fatalf("gastro premises = %d, want 2", len(gastroPremises))
	}
	if gastroPremises[0].Seats != 30 || gastroPremises[1].Seats != 70 {
		t.Fatalf("gastro premises seats = %d/%d, want 30/70", gastroPremises[0].Seats, gastroPremises[1].Seats)
	}

	if c.Finance != finance.DefaultParams() {
		t.Fatalf("finance params = %+v, want defaults", c.Finance)
	}
	if c.Chart.Cash != "512" || c.Chart.RawStock != "31" || c.Chart.Sales != "70" {
		t.Fatalf("chart bindings = %+v, want cash 512, raw stock 31, sales 70", c.Chart)
	}
	if c.Tuning != DefaultTuning() {
		t.Fatalf("tuning = %+v, want defaults", c.Tuning)
	}
}

func TestLoadOverlayOverridesWholeFile(t *testing.T) {
	t.Parallel()

	overlay := fstest.MapFS{
		"scenarios.yaml": &fstest.MapFile{Data: []byte(`
scenarios:
  - name: harbor
    population: 1200
    shares:
      - segment: tourist
        share: 0.7
      - segment: senior
        share: 0.3
`)},
	}

	c, err := LoadFS(overlay)
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}

	if len(c.Scenarios) != 1 {
		t.Fatalf("len(Scenarios) = %d, want only the overlay scenario", len(c.Scenarios))
	}
	harbor, err := c.Scenario("harbor")
	if err != nil {
		t.Fatalf("Scenario(harbor) error = %v", err)
	}
	if harbor.Population != 1200 {
		t.Fatalf("harbor population = %d, want 1200", harbor.Population)
	}
	// Files the overlay does not provide keep their embedded defaults.
	if _, err := c.Ingredient("chicken"); err != nil {
		t.Fatalf("embedded ingredients missing: %v", err)
	}
}

func TestLoadOverlayBadYAML(t *testing.T) {
	t.Parallel()

	overlay := fstest.MapFS{
		"ingredients.yaml": &fstest.MapFile{Data: []byte("ingredients: [")},
	}

	_, err := LoadFS(overlay)
	if err == nil {
		t.Fatal("LoadFS() should reject malformed YAML")
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("LoadFS() error type = %T, want *apperrors.Error", err)
	}
	if appErr.Code != apperrors.CodeConfigFileInvalid {
		t.Fatalf("LoadFS() error code = %s, want %s", appErr.Code, apperrors.CodeConfigFileInvalid)
	}
	if appErr.Metadata["file"] != ingredientsFile {
		t.Fatalf("LoadFS() error file = %q, want %q", appErr.Metadata["file"], ingredientsFile)
	}
}

func TestLoadOverlayBadShares(t *testing.T) {
	t.Parallel()

	overlay := fstest.MapFS{
		"scenarios.yaml": &fstest.MapFile{Data: []byte(`
scenarios:
  - name: skewed
    population: 1000
    shares:
      - segment: student
        share: 0.8
`)},
	}

	_, err := LoadFS(overlay)
	if !errors.Is(err, market.ErrScenarioShares) {
		t.Fatalf("LoadFS() error = %v, want %v", err, market.ErrScenarioShares)
	}
}

func TestLoadOverlayUnknownSegment(t *testing.T) {
	t.Parallel()

	overlay := fstest.MapFS{
		"scenarios.yaml": &fstest.MapFile{Data: []byte(`
scenarios:
  - name: ghost
    population: 1000
    shares:
      - segment: spectre
        share: 1.0
`)},
	}

	_, err := LoadFS(overlay)
	if !errors.Is(err, market.ErrScenarioSegmentUnknown) {
		t.Fatalf("LoadFS() error = %v, want %v", err, market.ErrScenarioSegmentUnknown)
	}
}

func TestCatalogLookupFailures(t *testing.T) {
	t.Parallel()

	c, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	if _, err := c.Ingredient("unicorn"); !errors.Is(err, ErrIngredientUnknown) {
		t.Fatalf("Ingredient(unicorn) error = %v, want %v", err, ErrIngredientUnknown)
	}
	if _, err := c.Scenario("nowhere"); !errors.Is(err, ErrScenarioUnknown) {
		t.Fatalf("Scenario(nowhere) error = %v, want %v", err, ErrScenarioUnknown)
	}
	if _, err := c.Role(staffing.RoleUnspecified); !errors.Is(err, ErrRoleUnknown) {
		t.Fatalf("Role(unspecified) error = %v, want %v", err, ErrRoleUnknown)
	}
}

func TestCatalogStableNameLists(t *testing.T) {
	t.Parallel()

	c, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}

	scenarios := c.ScenarioNames()
	want := []string{"city_centre", "student_quarter", "tourist_zone"}
	if len(scenarios) != len(want) {
		t.Fatalf("ScenarioNames() = %v, want %v", scenarios, want)
	}
	for i, name := range want {
		if scenarios[i] != name {
			t.Fatalf("ScenarioNames()[%d] = %q, want %q", i, scenarios[i], name)
		}
	}

	names := c.IngredientNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("IngredientNames() not sorted at %d: %v", i, names)
		}
	}
}
