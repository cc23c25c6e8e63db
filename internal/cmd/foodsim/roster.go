package foodsim

import (
	"errors"
	"fmt"
	"io"

	"github.com/louisbranch/foodops/internal/catalog"
	"github.com/louisbranch/foodops/internal/game"
	"github.com/louisbranch/foodops/internal/inventory"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
	"github.com/louisbranch/foodops/internal/telemetry"
)

// crewSlot is one scripted hire: the role at its market salary.
type crewSlot struct {
	id           string
	name         string
	role         staffing.Role
	hoursPerTurn float64
	skill        float64
	experience   int
}

// houseSpec scripts one competitor: concept, crew, menu, and the portions
// par the director lays in per dish each turn.
type houseSpec struct {
	id        string
	name      string
	concept   restaurant.Concept
	crew      []crewSlot
	menu      []restaurant.MenuItem
	marketing float64
	par       int
	// subsidized requests the subsidized loan on top of the bank loan.
	subsidized bool
}

// script drives the demo roster between turns.
type script struct {
	houses []houseSpec
}

// buyGrade picks the lot grade the script shops at. Pantry staples only
// come frozen; everything else is bought fresh.
func buyGrade(ingredient string) inventory.Grade {
	switch ingredient {
	case "rice", "burger_bun":
		return inventory.GradeFrozen
	default:
		return inventory.GradeFreshRaw
	}
}

func menuItem(concept restaurant.Concept, recipe restaurant.Recipe) restaurant.MenuItem {
	return restaurant.MenuItem{
		Recipe: recipe,
		Price:  restaurant.SuggestPrice(concept, recipe.BaseCost, restaurant.PolicyFoodCostTarget),
	}
}

// demoHouses is the scripted roster played against the embedded catalog:
// a fast-food joint, a bistro, and a gastro house stretched thin by its
// premises.
func demoHouses() []houseSpec {
	return []houseSpec{
		{
			id:      "le-rapide",
			name:    "Le Rapide",
			concept: restaurant.ConceptFastFood,
			crew: []crewSlot{
				{id: "rapide-cuisinier", name: "Nadia Perrin", role: staffing.RoleCuisinier, hoursPerTurn: 35, skill: 0.65, experience: 5},
				{id: "rapide-commis", name: "Jules Favre", role: staffing.RoleCommis, hoursPerTurn: 30, skill: 0.5, experience: 1},
				{id: "rapide-caissier", name: "Sofia Meyer", role: staffing.RoleCaissier, hoursPerTurn: 35, skill: 0.6, experience: 3},
				{id: "rapide-runner", name: "Tom Leclerc", role: staffing.RoleRunner, hoursPerTurn: 30, skill: 0.55, experience: 2},
			},
			menu: []restaurant.MenuItem{
				menuItem(restaurant.ConceptFastFood, restaurant.Recipe{
					Name:        "smash burger",
					BaseQuality: 0.55,
					Technique:   restaurant.TechniqueGrille,
					Complexity:  restaurant.ComplexitySimple,
					Grade:       inventory.GradeFreshRaw,
					Ingredients: []restaurant.IngredientNeed{
						{Ingredient: "ground_beef", KgPerPortion: 0.15},
						{Ingredient: "burger_bun", KgPerPortion: 0.09},
						{Ingredient: "potato", KgPerPortion: 0.15},
					},
					BaseCost: 2.09,
				}),
				menuItem(restaurant.ConceptFastFood, restaurant.Recipe{
					Name:        "crispy chicken",
					BaseQuality: 0.5,
					Technique:   restaurant.TechniqueFrit,
					Complexity:  restaurant.ComplexitySimple,
					Grade:       inventory.GradeFreshRaw,
					Ingredients: []restaurant.IngredientNeed{
						{Ingredient: "chicken", KgPerPortion: 0.18},
						{Ingredient: "potato", KgPerPortion: 0.15},
					},
					BaseCost: 1.58,
				}),
			},
			marketing: 800,
			par:       500,
		},
		{
			id:      "le-comptoir",
			name:    "Le Comptoir",
			concept: restaurant.ConceptBistro,
			crew: []crewSlot{
				{id: "comptoir-cuisinier", name: "Hugo Blanchard", role: staffing.RoleCuisinier, hoursPerTurn: 35, skill: 0.7, experience: 8},
				{id: "comptoir-commis", name: "Emma Rousseau", role: staffing.RoleCommis, hoursPerTurn: 30, skill: 0.55, experience: 2},
				{id: "comptoir-serveur", name: "Lea Fontaine", role: staffing.RoleServeur, hoursPerTurn: 35, skill: 0.65, experience: 6},
				{id: "comptoir-runner", name: "Noe Garnier", role: staffing.RoleRunner, hoursPerTurn: 35, skill: 0.5, experience: 1},
			},
			menu: []restaurant.MenuItem{
				menuItem(restaurant.ConceptBistro, restaurant.Recipe{
					Name:        "steak frites",
					BaseQuality: 0.7,
					Technique:   restaurant.TechniqueGrille,
					Complexity:  restaurant.ComplexitySimple,
					Grade:       inventory.GradeFreshRaw,
					Ingredients: []restaurant.IngredientNeed{
						{Ingredient: "beef_fillet", KgPerPortion: 0.2},
						{Ingredient: "potato", KgPerPortion: 0.2},
						{Ingredient: "butter", KgPerPortion: 0.02},
					},
					BaseCost: 7.21,
				}),
				menuItem(restaurant.ConceptBistro, restaurant.Recipe{
					Name:        "pave de saumon",
					BaseQuality: 0.72,
					Technique:   restaurant.TechniqueSaute,
					Complexity:  restaurant.ComplexitySimple,
					Grade:       inventory.GradeFreshRaw,
					Ingredients: []restaurant.IngredientNeed{
						{Ingredient: "salmon", KgPerPortion: 0.18},
						{Ingredient: "rice", KgPerPortion: 0.1},
						{Ingredient: "butter", KgPerPortion: 0.02},
					},
					BaseCost: 3.55,
				}),
			},
			marketing: 600,
			par:       250,
		},
		{
			id:      "l-etoile",
			name:    "L'Etoile",
			concept: restaurant.ConceptGastro,
			crew: []crewSlot{
				{id: "etoile-chef", name: "Margaux Delacroix", role: staffing.RoleChef, hoursPerTurn: 35, skill: 0.9, experience: 15},
				{id: "etoile-serveur", name: "Paul Vasseur", role: staffing.RoleServeur, hoursPerTurn: 35, skill: 0.75, experience: 9},
				{id: "etoile-maitre", name: "Iris Chevalier", role: staffing.RoleMaitreD, hoursPerTurn: 35, skill: 0.85, experience: 12},
			},
			menu: []restaurant.MenuItem{
				menuItem(restaurant.ConceptGastro, restaurant.Recipe{
					Name:        "canard roti",
					BaseQuality: 0.85,
					Technique:   restaurant.TechniqueRoti,
					Complexity:  restaurant.ComplexityElaborate,
					Grade:       inventory.GradeFreshRaw,
					Ingredients: []restaurant.IngredientNeed{
						{Ingredient: "duck_breast", KgPerPortion: 0.22},
						{Ingredient: "asparagus", KgPerPortion: 0.12},
						{Ingredient: "butter", KgPerPortion: 0.03},
					},
					BaseCost: 6.09,
				}),
				menuItem(restaurant.ConceptGastro, restaurant.Recipe{
					Name:        "saint-jacques",
					BaseQuality: 0.88,
					Technique:   restaurant.TechniqueSaute,
					Complexity:  restaurant.ComplexityElaborate,
					Grade:       inventory.GradeFreshRaw,
					Ingredients: []restaurant.IngredientNeed{
						{Ingredient: "scallops", KgPerPortion: 0.15},
						{Ingredient: "asparagus", KgPerPortion: 0.1},
						{Ingredient: "butter", KgPerPortion: 0.03},
					},
					BaseCost: 6.77,
				}),
			},
			par:        120,
			subsidized: true,
		},
	}
}

// buildGame opens the demo roster: premises from the catalog's first
// preset per concept, standard financing, crew hired at market salary,
// and menus priced off the concept's food-cost target.
func buildGame(cfg Config, cat catalog.Catalog, emitter *telemetry.Emitter) (*game.Game, *script, error) {
	houses := demoHouses()

	restaurants := make([]*restaurant.Restaurant, 0, len(houses))
	for _, house := range houses {
		presets := cat.PremisesFor(house.concept)
		if len(presets) == 0 {
			return nil, nil, fmt.Errorf("no premises preset for concept %s", house.concept)
		}
		r, err := restaurant.New(house.id, house.name, house.concept, presets[0])
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", house.name, err)
		}
		if _, err := game.Capitalize(r, cat.Finance, cat.Chart, house.subsidized); err != nil {
			return nil, nil, fmt.Errorf("finance %s: %w", house.name, err)
		}
		restaurants = append(restaurants, r)
	}

	g, err := game.New(game.Config{
		GameID:   cfg.GameID,
		Catalog:  cat,
		Scenario: cfg.Scenario,
		Seed:     cfg.Seed,
		Emitter:  emitter,
	}, restaurants...)
	if err != nil {
		return nil, nil, err
	}

	for _, house := range houses {
		for _, slot := range house.crew {
			preset, err := cat.Role(slot.role)
			if err != nil {
				return nil, nil, fmt.Errorf("staff %s: %w", house.name, err)
			}
			if err := g.Apply(game.Hire{RestaurantID: house.id, Employee: staffing.Employee{
				ID:              slot.id,
				Name:            slot.name,
				Role:            slot.role,
				HoursPerTurn:    slot.hoursPerTurn,
				Salary:          preset.MarketSalary,
				Skill:           slot.skill,
				ExperienceYears: slot.experience,
			}}); err != nil {
				return nil, nil, fmt.Errorf("hire %s at %s: %w", slot.name, house.name, err)
			}
		}
		if err := g.Apply(game.SetMenu{RestaurantID: house.id, Items: house.menu}); err != nil {
			return nil, nil, fmt.Errorf("menu for %s: %w", house.name, err)
		}
		if house.marketing > 0 {
			if err := g.Apply(game.SetMarketing{RestaurantID: house.id, Budget: house.marketing}); err != nil {
				return nil, nil, fmt.Errorf("marketing for %s: %w", house.name, err)
			}
		}
	}

	return g, &script{houses: houses}, nil
}

// restock lays in each house's par before the turn: the exact raw
// kilograms every dish needs, then the production run. Skips on an empty
// wallet, an exhausted kitchen, or missing stock are part of the script;
// anything else is a roster bug worth surfacing loudly.
func (s *script) restock(g *game.Game, errOut io.Writer) {
	for _, house := range s.houses {
		for _, item := range house.menu {
			for _, need := range item.Recipe.Ingredients {
				s.apply(g, errOut, house.name, game.PurchaseLot{
					RestaurantID: house.id,
					Ingredient:   need.Ingredient,
					Grade:        buyGrade(need.Ingredient),
					QtyKg:        need.KgPerPortion * float64(house.par),
				})
			}
			s.apply(g, errOut, house.name, game.ProduceBatch{
				RestaurantID: house.id,
				Recipe:       item.Recipe.Name,
				Portions:     house.par,
			})
		}
	}
}

func (s *script) apply(g *game.Game, errOut io.Writer, house string, action game.Action) {
	err := g.Apply(action)
	if err == nil {
		return
	}
	if errors.Is(err, restaurant.ErrFundsInsufficient) ||
		errors.Is(err, restaurant.ErrMinutesExhausted) ||
		errors.Is(err, restaurant.ErrStockInsufficient) {
		fmt.Fprintf(errOut, "%s skips %T: %v\n", house, action, err)
		return
	}
	fmt.Fprintf(errOut, "%s: script action %T failed: %v\n", house, action, err)
}
