// Package ledger implements a per-restaurant double-entry journal with
// balance enforcement at posting time and statement builders over any turn
// range.
package ledger

import (
	"math"

	apperrors "github.com/louisbranch/foodops/internal/platform/errors"
)

// Side marks a line as a debit or credit.
type Side int

const (
	// SideUnspecified is the zero value and never valid on a line.
	SideUnspecified Side = iota
	// Debit increases assets and expenses.
	Debit
	// Credit increases liabilities, equity, and revenue.
	Credit
)

// String returns the conventional single-letter side label.
func (s Side) String() string {
	switch s {
	case Debit:
		return "D"
	case Credit:
		return "C"
	default:
		return "?"
	}
}

var (
	// ErrEntryEmpty indicates an entry without lines.
	ErrEntryEmpty = apperrors.New(apperrors.CodeInvariantEntryEmpty, "entry has no lines")
	// ErrEntryUnbalanced indicates debits and credits that do not match
	// after rounding.
	ErrEntryUnbalanced = apperrors.New(apperrors.CodeInvariantEntryUnbalanced, "entry debits do not equal credits")
	// ErrLineInvalid indicates a line with a missing account, an invalid
	// side, or a negative amount.
	ErrLineInvalid = apperrors.New(apperrors.CodeInvariantEntryLineInvalid, "entry line is invalid")
)

// Line is one side of a posting: an account, a non-negative amount, and a
// side. Amounts are rounded to 2 decimals when the entry posts and never
// re-rounded downstream.
type Line struct {
	Account string
	Amount  float64
	Side    Side
}

// DebitLine builds a debit line.
func DebitLine(account string, amount float64) Line {
	return Line{Account: account, Amount: amount, Side: Debit}
}

// CreditLine builds a credit line.
func CreditLine(account string, amount float64) Line {
	return Line{Account: account, Amount: amount, Side: Credit}
}

// Entry is a balanced set of lines recorded against one turn.
type Entry struct {
	Turn  int
	Label string
	Lines []Line
}

// normalize rounds line amounts to 2 decimals and validates shape and
// balance. It returns the normalized entry.
func (e Entry) normalize() (Entry, error) {
	if len(e.Lines) == 0 {
		return Entry{}, ErrEntryEmpty
	}
	lines := make([]Line, len(e.Lines))
	var debit, credit float64
	for i, line := range e.Lines {
		if line.Account == "" || line.Amount < 0 {
			return Entry{}, ErrLineInvalid
		}
		amount := round2(line.Amount)
		switch line.Side {
		case Debit:
			debit += amount
		case Credit:
			credit += amount
		default:
			return Entry{}, ErrLineInvalid
		}
		lines[i] = Line{Account: line.Account, Amount: amount, Side: line.Side}
	}
	if math.Abs(debit-credit) >= 0.005 {
		return Entry{}, apperrors.WithMetadata(
			apperrors.CodeInvariantEntryUnbalanced,
			"entry debits do not equal credits",
			map[string]string{"label": e.Label},
		)
	}
	e.Lines = lines
	return e, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
