package ledger

// Journal is an append-only list of balanced entries for one restaurant.
// Posting is the only mutation; a rejected entry leaves the journal
// untouched.
type Journal struct {
	entries []Entry
}

// NewJournal creates an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Post validates, rounds, and appends one entry. Entries whose debits and
// credits do not match after rounding are rejected with
// ErrEntryUnbalanced; the imbalance is an engine invariant violation, not a
// recoverable condition.
func (j *Journal) Post(entry Entry) error {
	normalized, err := entry.normalize()
	if err != nil {
		return err
	}
	j.entries = append(j.entries, normalized)
	return nil
}

// PostAll posts entries in order, stopping at the first failure. Entries
// posted before the failure remain; callers that need all-or-nothing stage
// entries first and post only validated batches.
func (j *Journal) PostAll(entries []Entry) error {
	for _, entry := range entries {
		if err := j.Post(entry); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a batch of entries without posting them.
func Validate(entries []Entry) error {
	for _, entry := range entries {
		if _, err := entry.normalize(); err != nil {
			return err
		}
	}
	return nil
}

// Entries returns a copy of every posted entry in posting order.
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// EntriesForTurn returns a copy of the entries posted against one turn.
func (j *Journal) EntriesForTurn(turn int) []Entry {
	var out []Entry
	for _, entry := range j.entries {
		if entry.Turn == turn {
			out = append(out, entry)
		}
	}
	return out
}

// TurnTotals sums debits and credits posted against one turn.
func (j *Journal) TurnTotals(turn int) (debit, credit float64) {
	for _, entry := range j.entries {
		if entry.Turn != turn {
			continue
		}
		for _, line := range entry.Lines {
			switch line.Side {
			case Debit:
				debit += line.Amount
			case Credit:
				credit += line.Amount
			}
		}
	}
	return round2(debit), round2(credit)
}

// Balances aggregates debit minus credit per account over turns in
// [from, to] inclusive.
func (j *Journal) Balances(from, to int) map[string]float64 {
	balances := make(map[string]float64)
	for _, entry := range j.entries {
		if entry.Turn < from || entry.Turn > to {
			continue
		}
		for _, line := range entry.Lines {
			switch line.Side {
			case Debit:
				balances[line.Account] += line.Amount
			case Credit:
				balances[line.Account] -= line.Amount
			}
		}
	}
	for account, value := range balances {
		balances[account] = round2(value)
	}
	return balances
}

// BalancesThrough aggregates from the opening turn (0) through turn.
func (j *Journal) BalancesThrough(turn int) map[string]float64 {
	return j.Balances(0, turn)
}

// CashDelta sums the signed cash movement posted against one turn: debits
// to the cash account minus credits to it.
func (j *Journal) CashDelta(chart Chart, turn int) float64 {
	var delta float64
	for _, entry := range j.entries {
		if entry.Turn != turn {
			continue
		}
		for _, line := range entry.Lines {
			if line.Account != chart.Cash {
				continue
			}
			switch line.Side {
			case Debit:
				delta += line.Amount
			case Credit:
				delta -= line.Amount
			}
		}
	}
	return round2(delta)
}

// EntriesCashDelta sums the signed cash movement of a staged batch without
// posting it.
func EntriesCashDelta(chart Chart, entries []Entry) float64 {
	var delta float64
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if line.Account != chart.Cash {
				continue
			}
			switch line.Side {
			case Debit:
				delta += round2(line.Amount)
			case Credit:
				delta -= round2(line.Amount)
			}
		}
	}
	return round2(delta)
}
