package catalog

import (
	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
	"github.com/louisbranch/foodops/internal/restaurant"
	"github.com/louisbranch/foodops/internal/staffing"
)

var (
	// ErrRolePresetInvalid reports a role preset outside its domain.
	ErrRolePresetInvalid = apperrors.New(apperrors.CodeConfigRoleInvalid, "role preset invalid")
	// ErrRoleRestricted reports a role the concept may not hire.
	ErrRoleRestricted = apperrors.New(apperrors.CodeActionRoleRestricted, "role not available to concept")
)

// RolePreset binds a role to its labor market conditions and the concepts
// allowed to hire it.
type RolePreset struct {
	Role         staffing.Role
	MarketSalary float64
	Concepts     []restaurant.Concept
}

// Validate checks the preset against its domain.
func (p RolePreset) Validate() error {
	meta := map[string]string{"role": p.Role.String()}
	if p.Role == staffing.RoleUnspecified {
		return ErrRolePresetInvalid
	}
	if p.MarketSalary <= 0 {
		return ErrRolePresetInvalid.WithMetadata(meta)
	}
	if len(p.Concepts) == 0 {
		return ErrRolePresetInvalid.WithMetadata(meta)
	}
	seen := make(map[restaurant.Concept]bool, len(p.Concepts))
	for _, concept := range p.Concepts {
		if concept == restaurant.ConceptUnspecified || seen[concept] {
			return ErrRolePresetInvalid.WithMetadata(meta)
		}
		seen[concept] = true
	}
	return nil
}

// Allows reports whether the concept may hire this role.
func (p RolePreset) Allows(c restaurant.Concept) bool {
	for _, concept := range p.Concepts {
		if concept == c {
			return true
		}
	}
	return false
}
