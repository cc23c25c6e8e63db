// Package staffing models restaurant teams: roles with minute-bank
// productivity, payroll, satisfaction feedback, and labor-market candidates.
//
// Staff contribute productive minutes to one of two banks. Kitchen minutes
// limit production; service minutes limit covers served. A role yields a
// fixed number of productive minutes per hour worked, so a team's bank
// resets each turn to the sum of hours × per-hour productivity.
package staffing

import (
	"strings"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// ErrRoleUnknown reports a role name outside the known set.
var ErrRoleUnknown = apperrors.New(apperrors.CodeActionRoleUnknown, "unknown role")

// Bank is the minute pool a role contributes to.
type Bank int

const (
	// BankNone marks roles with no direct productive contribution.
	BankNone Bank = iota
	BankKitchen
	BankService
)

// String implements fmt.Stringer.
func (b Bank) String() string {
	switch b {
	case BankKitchen:
		return "kitchen"
	case BankService:
		return "service"
	default:
		return "none"
	}
}

// Role is a staff position.
type Role int

const (
	RoleUnspecified Role = iota
	RoleCommis
	RoleCuisinier
	RoleChef
	RolePlonge
	RoleCaissier
	RoleServeur
	RoleRunner
	RoleMaitreD
	RoleManager
)

var roleNames = map[Role]string{
	RoleCommis:    "commis",
	RoleCuisinier: "cuisinier",
	RoleChef:      "chef",
	RolePlonge:    "plonge",
	RoleCaissier:  "caissier",
	RoleServeur:   "serveur",
	RoleRunner:    "runner",
	RoleMaitreD:   "maitre_d",
	RoleManager:   "manager",
}

// String implements fmt.Stringer.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unspecified"
}

// ParseRole maps a case-insensitive role name to its Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return RoleUnspecified, ErrRoleUnknown.WithMetadata(map[string]string{"role": s})
}

// Roles lists every known role in declaration order.
func Roles() []Role {
	return []Role{
		RoleCommis, RoleCuisinier, RoleChef, RolePlonge,
		RoleCaissier, RoleServeur, RoleRunner, RoleMaitreD,
		RoleManager,
	}
}

// Bank returns the minute pool the role feeds. Managers support the whole
// operation without contributing direct minutes.
func (r Role) Bank() Bank {
	switch r {
	case RoleCommis, RoleCuisinier, RoleChef, RolePlonge:
		return BankKitchen
	case RoleCaissier, RoleServeur, RoleRunner, RoleMaitreD:
		return BankService
	default:
		return BankNone
	}
}

// MinutesPerHour is the role's productive minutes per hour worked.
func (r Role) MinutesPerHour() float64 {
	switch r {
	case RoleCommis:
		return 55
	case RoleCuisinier:
		return 60
	case RoleChef:
		return 65
	case RolePlonge:
		return 45
	case RoleCaissier:
		return 60
	case RoleServeur:
		return 55
	case RoleRunner:
		return 60
	case RoleMaitreD:
		return 45
	case RoleManager:
		return 20
	default:
		return 0
	}
}
