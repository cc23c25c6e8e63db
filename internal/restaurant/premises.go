package restaurant

import (
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// ErrPremisesInvalid reports a premises preset outside its domain.
var ErrPremisesInvalid = apperrors.New(apperrors.CodeConfigPremisesInvalid, "premises preset invalid")

// DefaultVisibility is assumed when a premises preset carries no rating.
const DefaultVisibility = 0.5

// Premises is the physical venue a restaurant operates from.
type Premises struct {
	Name string
	// Seats is the room's simultaneous capacity.
	Seats int
	// Rent is the monthly lease.
	Rent float64
	// Price is the acquisition cost of the business (fonds de commerce).
	Price float64
	// VisibilityRating is the location's footfall rating on a 0-5 scale.
	VisibilityRating float64
	// RecurringCharges are monthly subscriptions and utilities.
	RecurringCharges float64
}

// Visibility normalizes the rating into [0, 1]. An unrated venue reads as
// average.
func (p Premises) Visibility() float64 {
	if p.VisibilityRating == 0 {
		return DefaultVisibility
	}
	v := p.VisibilityRating / 5
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Validate checks the preset against its domain.
func (p Premises) Validate() error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"name", p.Name != ""},
		{"seats", p.Seats > 0},
		{"rent", p.Rent >= 0},
		{"price", p.Price >= 0},
		{"visibility", p.VisibilityRating >= 0 && p.VisibilityRating <= 5},
		{"recurring_charges", p.RecurringCharges >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return ErrPremisesInvalid.WithMetadata(map[string]string{
				"premises": p.Name,
				"field":    c.field,
			})
		}
	}
	return nil
}
