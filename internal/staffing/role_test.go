package staffing

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  Role
	}{
		{name: "plain", input: "chef", want: RoleChef},
		{name: "mixed case", input: "Cuisinier", want: RoleCuisinier},
		{name: "padded", input: "  serveur ", want: RoleServeur},
		{name: "upper with underscore", input: "MAITRE_D", want: RoleMaitreD},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRole(tc.input)
			if err != nil {
				t.Fatalf("ParseRole(%q) error = %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("ParseRole(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseRoleUnknown(t *testing.T) {
	if _, err := ParseRole("sommelier"); !errors.Is(err, ErrRoleUnknown) {
		t.Fatalf("ParseRole() error = %v, want %v", err, ErrRoleUnknown)
	}
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range Roles() {
		got, err := ParseRole(role.String())
		if err != nil {
			t.Fatalf("ParseRole(%q) error = %v", role.String(), err)
		}
		if got != role {
			t.Fatalf("ParseRole(%q) = %v, want %v", role.String(), got, role)
		}
	}
}

func TestRoleBanks(t *testing.T) {
	testCases := []struct {
		role Role
		want Bank
	}{
		{role: RoleCommis, want: BankKitchen},
		{role: RoleChef, want: BankKitchen},
		{role: RolePlonge, want: BankKitchen},
		{role: RoleCaissier, want: BankService},
		{role: RoleServeur, want: BankService},
		{role: RoleMaitreD, want: BankService},
		{role: RoleManager, want: BankNone},
	}

	for _, tc := range testCases {
		t.Run(tc.role.String(), func(t *testing.T) {
			if got := tc.role.Bank(); got != tc.want {
				t.Fatalf("Bank() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRoleMinutesPerHour(t *testing.T) {
	if got := RoleChef.MinutesPerHour(); got != 65 {
		t.Fatalf("chef MinutesPerHour() = %v, want 65", got)
	}
	if got := RoleManager.MinutesPerHour(); got != 20 {
		t.Fatalf("manager MinutesPerHour() = %v, want 20", got)
	}
	if got := RoleUnspecified.MinutesPerHour(); got != 0 {
		t.Fatalf("unspecified MinutesPerHour() = %v, want 0", got)
	}
}
