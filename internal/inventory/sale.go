package inventory

import "sort"

// SaleDraw is one batch decrement inside a SalePlan.
type SaleDraw struct {
	BatchIndex int // index into the stock's batch slice at plan time
	Recipe     string
	Portions   int
	UnitPrice  float64
}

// SalePlan is a staged FIFO sale. Plans compute without mutating stock so a
// turn that fails downstream commits nothing.
type SalePlan struct {
	Draws    []SaleDraw
	Portions int
	Revenue  float64 // Σ portions × frozen batch price, rounded to 2 decimals
}

// PlanSale stages a sale of up to portions from non-expired finished batches.
// Requests beyond availability clamp to what is on hand.
//
// # Ordering
//
// Batches sell strictly first-in-first-out by production turn, earliest
// first, regardless of price or recipe; batches produced the same turn sell
// in storage order. Partial-batch sales are allowed.
func (s *Stock) PlanSale(portions int, turn int) SalePlan {
	var plan SalePlan
	if portions <= 0 {
		return plan
	}

	order := make([]int, 0, len(s.finished))
	for i, batch := range s.finished {
		if batch.Expired(turn) || batch.Portions <= 0 {
			continue
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return s.finished[order[a]].ProducedTurn < s.finished[order[b]].ProducedTurn
	})

	remaining := portions
	var revenue float64
	for _, idx := range order {
		if remaining == 0 {
			break
		}
		batch := s.finished[idx]
		take := batch.Portions
		if take > remaining {
			take = remaining
		}
		plan.Draws = append(plan.Draws, SaleDraw{
			BatchIndex: idx,
			Recipe:     batch.Recipe,
			Portions:   take,
			UnitPrice:  batch.UnitPrice,
		})
		revenue += float64(take) * batch.UnitPrice
		plan.Portions += take
		remaining -= take
	}
	plan.Revenue = round2(revenue)
	return plan
}

// ApplySale commits a plan produced by PlanSale against the same stock
// state. Batches reduced to zero portions are removed.
func (s *Stock) ApplySale(plan SalePlan) error {
	for _, draw := range plan.Draws {
		if draw.BatchIndex < 0 || draw.BatchIndex >= len(s.finished) {
			return ErrStockNegative
		}
		batch := &s.finished[draw.BatchIndex]
		if batch.Recipe != draw.Recipe || draw.Portions > batch.Portions {
			return ErrStockNegative
		}
		batch.Portions -= draw.Portions
	}

	kept := s.finished[:0]
	for _, batch := range s.finished {
		if batch.Portions > 0 {
			kept = append(kept, batch)
		}
	}
	s.finished = kept
	return nil
}
