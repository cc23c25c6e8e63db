package inventory

// ExpiryReport summarizes what a cleanup pass discarded, valued at cost.
// Discards yield no revenue or salvage.
type ExpiryReport struct {
	LotsDiscarded    int
	BatchesDiscarded int
	RawValue         float64
	FinishedValue    float64
}

// Empty reports whether the cleanup discarded nothing.
func (r ExpiryReport) Empty() bool {
	return r.LotsDiscarded == 0 && r.BatchesDiscarded == 0
}

// PreviewCleanup reports what Cleanup at the given turn would discard,
// without mutating the stock.
func (s *Stock) PreviewCleanup(turn int) ExpiryReport {
	return s.cleanup(turn, false)
}

// Cleanup discards every lot and batch at or past its perish turn. It runs
// once at turn start, before any other inventory operation.
func (s *Stock) Cleanup(turn int) ExpiryReport {
	return s.cleanup(turn, true)
}

func (s *Stock) cleanup(turn int, apply bool) ExpiryReport {
	var report ExpiryReport

	for name, lots := range s.raw {
		var kept []Lot
		for _, lot := range lots {
			if lot.Expired(turn) {
				report.LotsDiscarded++
				report.RawValue += lot.QtyKg * lot.UnitCost
				continue
			}
			kept = append(kept, lot)
		}
		if !apply {
			continue
		}
		if len(kept) == 0 {
			delete(s.raw, name)
		} else {
			s.raw[name] = kept
		}
	}

	var keptBatches []Batch
	for _, batch := range s.finished {
		if batch.Expired(turn) {
			report.BatchesDiscarded++
			report.FinishedValue += float64(batch.Portions) * batch.UnitCost
			continue
		}
		keptBatches = append(keptBatches, batch)
	}
	if apply {
		s.finished = keptBatches
	}

	report.RawValue = round2(report.RawValue)
	report.FinishedValue = round2(report.FinishedValue)
	return report
}
