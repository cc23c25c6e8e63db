package staffing

import (
	"math"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// Employer cost constants.
const (
	// EmployerChargeRate loads gross salaries with employer contributions.
	EmployerChargeRate = 0.42
	// HiringFee is the fixed administrative cost of a hire.
	HiringFee = 400.0
	// SeveranceMonths is the gross months paid out on dismissal.
	SeveranceMonths = 1
)

var (
	// ErrEmployeeIDEmpty reports an employee without an identifier.
	ErrEmployeeIDEmpty = apperrors.New(apperrors.CodeActionEmployeeUnknown, "employee id empty")
	// ErrEmployeeDuplicate reports a hire reusing an existing id.
	ErrEmployeeDuplicate = apperrors.New(apperrors.CodeActionEmployeeDuplicate, "employee id already on the team")
	// ErrEmployeeUnknown reports an id not on the team.
	ErrEmployeeUnknown = apperrors.New(apperrors.CodeActionEmployeeUnknown, "employee not on the team")
	// ErrSalaryInvalid reports a non-positive gross salary.
	ErrSalaryInvalid = apperrors.New(apperrors.CodeActionSalaryInvalid, "salary must be positive")
	// ErrHoursInvalid reports non-positive contract hours.
	ErrHoursInvalid = apperrors.New(apperrors.CodeActionHoursInvalid, "hours per turn must be positive")
)

// Employee is one team member under contract.
type Employee struct {
	ID   string
	Name string
	Role Role
	// HoursPerTurn is the contracted hours worked per monthly turn.
	HoursPerTurn float64
	// Salary is the monthly gross.
	Salary float64
	// Skill in [0,1] and experience come from the hiring candidate.
	Skill           float64
	ExperienceYears int
}

// Minutes is the employee's productive minutes per turn.
func (e Employee) Minutes() float64 {
	return e.HoursPerTurn * e.Role.MinutesPerHour()
}

// Severance is the dismissal cost for the employee.
func (e Employee) Severance() float64 {
	return round2(e.Salary * SeveranceMonths)
}

// MinuteBank holds a turn's productive minutes split by pool.
type MinuteBank struct {
	Kitchen float64
	Service float64
}

// Team is a restaurant's roster in hiring order.
type Team struct {
	employees []Employee
}

// NewTeam builds a team from an initial roster.
func NewTeam(employees ...Employee) (Team, error) {
	var t Team
	for _, e := range employees {
		if err := t.Hire(e); err != nil {
			return Team{}, err
		}
	}
	return t, nil
}

// Hire validates the employee and appends it to the roster.
func (t *Team) Hire(e Employee) error {
	if e.ID == "" {
		return ErrEmployeeIDEmpty
	}
	if e.Role == RoleUnspecified {
		return ErrRoleUnknown.WithMetadata(map[string]string{"employee": e.ID})
	}
	if e.Salary <= 0 {
		return ErrSalaryInvalid.WithMetadata(map[string]string{"employee": e.ID})
	}
	if e.HoursPerTurn <= 0 {
		return ErrHoursInvalid.WithMetadata(map[string]string{"employee": e.ID})
	}
	for _, cur := range t.employees {
		if cur.ID == e.ID {
			return ErrEmployeeDuplicate.WithMetadata(map[string]string{"employee": e.ID})
		}
	}
	t.employees = append(t.employees, e)
	return nil
}

// Fire removes the employee and returns it for severance accounting.
func (t *Team) Fire(id string) (Employee, error) {
	for i, e := range t.employees {
		if e.ID == id {
			t.employees = append(t.employees[:i], t.employees[i+1:]...)
			return e, nil
		}
	}
	return Employee{}, ErrEmployeeUnknown.WithMetadata(map[string]string{"employee": id})
}

// Employee looks up a roster member by id.
func (t Team) Employee(id string) (Employee, bool) {
	for _, e := range t.employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// Employees returns the roster in hiring order.
func (t Team) Employees() []Employee {
	out := make([]Employee, len(t.employees))
	copy(out, t.employees)
	return out
}

// Size is the roster head count.
func (t Team) Size() int {
	return len(t.employees)
}

// ResetMinutes computes the turn's fresh minute banks.
func (t Team) ResetMinutes() MinuteBank {
	var bank MinuteBank
	for _, e := range t.employees {
		switch e.Role.Bank() {
		case BankKitchen:
			bank.Kitchen += e.Minutes()
		case BankService:
			bank.Service += e.Minutes()
		}
	}
	return bank
}

// GrossPayroll is the roster's monthly gross total.
func (t Team) GrossPayroll() float64 {
	var gross float64
	for _, e := range t.employees {
		gross += e.Salary
	}
	return round2(gross)
}

// PayrollCost is the employer's monthly payroll charge, gross plus employer
// contributions.
func (t Team) PayrollCost() float64 {
	return round2(t.GrossPayroll() * (1 + EmployerChargeRate))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
