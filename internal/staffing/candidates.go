package staffing

import (
	"fmt"
	"math"
	"math/rand"
)

// Contract is the employment contract offered by a candidate.
type Contract string

const (
	ContractCDI   Contract = "CDI"
	ContractCDD   Contract = "CDD"
	ContractExtra Contract = "Extra"
)

var contracts = []Contract{ContractCDI, ContractCDD, ContractExtra}

var (
	firstNames = []string{
		"Alex", "Marie", "Lucas", "Sophie", "Karim",
		"Claire", "Hugo", "Lea", "Antoine", "Nadia",
	}
	lastNames = []string{
		"Durand", "Moreau", "Lefevre", "Garcia",
		"Bernard", "Petit", "Roux", "Fontaine",
	}
)

// Candidate is a labor-market applicant for one role.
type Candidate struct {
	Name string
	Role Role
	// ExpectedSalary is the monthly gross the candidate asks for, in whole
	// euros around the market rate.
	ExpectedSalary  float64
	ExperienceYears int
	// Skill in [0.4, 1].
	Skill    float64
	Contract Contract
}

// Candidates draws n applicants for a role around its market salary.
// Identical rng state yields identical candidates.
func Candidates(rng *rand.Rand, role Role, marketSalary float64, n int) []Candidate {
	out := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		expected := math.Trunc(marketSalary * (0.95 + 0.20*rng.Float64()))
		out = append(out, Candidate{
			Name:            fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
			Role:            role,
			ExpectedSalary:  expected,
			ExperienceYears: 1 + rng.Intn(15),
			Skill:           math.Round((0.4+0.6*rng.Float64())*100) / 100,
			Contract:        contracts[rng.Intn(len(contracts))],
		})
	}
	return out
}
