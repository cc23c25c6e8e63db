package inventory

import "sort"

// Consume draws up to qtyKg of ingredient from non-expired lots and returns
// the quantity actually drawn plus its at-cost value. Requests beyond the
// available quantity clamp; callers that require the full amount must check
// availability first.
//
// # Ordering
//
// Lots are drawn best quality rank first (G5, then G1/G4, G3, G2). Within a
// rank, the earliest perish turn goes first, then the earliest received
// turn, then storage order. Partial lots decrement in place; exhausted lots
// are removed. Expired lots are never drawn.
func (s *Stock) Consume(ingredient string, qtyKg float64, turn int) (drawnKg, cost float64, err error) {
	if ingredient == "" {
		return 0, 0, ErrIngredientEmpty
	}
	if qtyKg <= 0 {
		return 0, 0, ErrQuantityInvalid
	}

	lots := s.raw[ingredient]
	order := make([]int, 0, len(lots))
	for i, lot := range lots {
		if lot.Expired(turn) || lot.QtyKg <= qtyEpsilon {
			continue
		}
		order = append(order, i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		la, lb := lots[order[a]], lots[order[b]]
		if la.Grade.QualityRank() != lb.Grade.QualityRank() {
			return la.Grade.QualityRank() > lb.Grade.QualityRank()
		}
		if la.PerishTurn != lb.PerishTurn {
			return la.PerishTurn < lb.PerishTurn
		}
		return la.ReceivedTurn < lb.ReceivedTurn
	})

	remaining := qtyKg
	for _, idx := range order {
		if remaining <= qtyEpsilon {
			break
		}
		take := lots[idx].QtyKg
		if take > remaining {
			take = remaining
		}
		lots[idx].QtyKg -= take
		cost += take * lots[idx].UnitCost
		drawnKg += take
		remaining -= take
	}

	kept := lots[:0]
	for _, lot := range lots {
		if lot.QtyKg > qtyEpsilon {
			kept = append(kept, lot)
		}
	}
	if len(kept) == 0 {
		delete(s.raw, ingredient)
	} else {
		s.raw[ingredient] = kept
	}

	return drawnKg, cost, nil
}
