package inventory

import (
	"strings"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// Grade identifies the processing level of a raw ingredient lot.
type Grade int

const (
	// GradeUnspecified is the zero value and never valid on a lot.
	GradeUnspecified Grade = iota
	// GradeFreshRaw is unprocessed fresh produce (G1).
	GradeFreshRaw
	// GradeCanned is shelf-stable preserved stock (G2).
	GradeCanned
	// GradeFrozen is frozen stock (G3).
	GradeFrozen
	// GradeReadyRaw is trimmed ready-to-cook fresh stock (G4).
	GradeReadyRaw
	// GradeCookedVacuum is pre-cooked vacuum-packed stock (G5).
	GradeCookedVacuum
)

// ErrGradeUnknown indicates a grade label outside G1..G5.
var ErrGradeUnknown = apperrors.New(apperrors.CodeActionGradeUnavailable, "unknown ingredient grade")

// String returns the short grade label used across presets and reports.
func (g Grade) String() string {
	switch g {
	case GradeFreshRaw:
		return "G1"
	case GradeCanned:
		return "G2"
	case GradeFrozen:
		return "G3"
	case GradeReadyRaw:
		return "G4"
	case GradeCookedVacuum:
		return "G5"
	default:
		return "UNSPECIFIED"
	}
}

// ParseGrade converts a short grade label into a Grade.
func ParseGrade(value string) (Grade, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "G1":
		return GradeFreshRaw, nil
	case "G2":
		return GradeCanned, nil
	case "G3":
		return GradeFrozen, nil
	case "G4":
		return GradeReadyRaw, nil
	case "G5":
		return GradeCookedVacuum, nil
	default:
		return GradeUnspecified, ErrGradeUnknown
	}
}

// QualityRank orders grades for consumption priority. Cooked vacuum ranks
// highest, then fresh (raw or ready-cut), frozen, canned.
func (g Grade) QualityRank() int {
	switch g {
	case GradeCookedVacuum:
		return 5
	case GradeFreshRaw, GradeReadyRaw:
		return 3
	case GradeFrozen:
		return 2
	case GradeCanned:
		return 1
	default:
		return 0
	}
}
