package market

import (
	"sort"

	"github.com/louisbranch/foodops/internal/restaurant"
)

// LostDemand splits the covers a segment could not place.
type LostDemand struct {
	// NoEligible counts covers with no restaurant passing the budget
	// filter, or none scoring above zero.
	NoEligible int
	// Capacity counts covers that targeted a full restaurant. They are
	// never redistributed.
	Capacity int
}

// AllocationResult is the outcome of one demand allocation pass.
type AllocationResult struct {
	// ByRestaurant maps restaurant ID to covers per segment ID.
	ByRestaurant map[string]map[string]int
	// Totals maps restaurant ID to covers across all segments.
	Totals map[string]int
	// Lost maps segment ID to its unplaced covers.
	Lost map[string]LostDemand
	// LostByRestaurant maps restaurant ID to covers it turned away full.
	LostByRestaurant map[string]int
}

// Allocated is the total covers placed across all restaurants.
func (r AllocationResult) Allocated() int {
	var n int
	for _, covers := range r.Totals {
		n += covers
	}
	return n
}

// LostTotal aggregates unplaced covers across segments.
func (r AllocationResult) LostTotal() LostDemand {
	var total LostDemand
	for _, lost := range r.Lost {
		total.NoEligible += lost.NoEligible
		total.Capacity += lost.Capacity
	}
	return total
}

// contender is one offer still in the running for a segment.
type contender struct {
	offer  Offer
	score  float64
	rank   int
	covers int
	frac   float64
}

// Allocate splits the scenario population across the offers, one segment at
// a time in share order. Within a segment, covers go proportionally to
// effective scores; whole covers are assigned by floor, the remainder by
// largest fractional part with the stable score rank breaking ties. Each
// restaurant's capacity is consumed sequentially across segments, and
// covers hitting a full restaurant are lost, never rerouted.
func Allocate(scenario Scenario, segments map[string]Segment, offers []Offer, params Params) (AllocationResult, error) {
	if err := scenario.Validate(); err != nil {
		return AllocationResult{}, err
	}
	if err := params.Weights.Validate(); err != nil {
		return AllocationResult{}, err
	}

	result := AllocationResult{
		ByRestaurant:     make(map[string]map[string]int, len(offers)),
		Totals:           make(map[string]int, len(offers)),
		Lost:             make(map[string]LostDemand, len(scenario.Shares)),
		LostByRestaurant: make(map[string]int, len(offers)),
	}

	conceptCount := make(map[restaurant.Concept]int, len(offers))
	remaining := make(map[string]int, len(offers))
	for _, offer := range offers {
		conceptCount[offer.Concept]++
		remaining[offer.RestaurantID] = offer.Capacity
	}

	for _, share := range scenario.Shares {
		segment, ok := segments[share.SegmentID]
		if !ok {
			return AllocationResult{}, ErrScenarioSegmentUnknown.WithMetadata(map[string]string{
				"scenario": scenario.Name,
				"segment":  share.SegmentID,
			})
		}
		if err := segment.Validate(); err != nil {
			return AllocationResult{}, err
		}
		demand := scenario.SegmentDemand(share)
		if demand == 0 {
			continue
		}

		contenders := eligible(offers, segment, conceptCount, params)
		if len(contenders) == 0 {
			lost := result.Lost[share.SegmentID]
			lost.NoEligible += demand
			result.Lost[share.SegmentID] = lost
			continue
		}

		split(contenders, demand)

		for _, c := range contenders {
			want := c.covers
			if want == 0 {
				continue
			}
			take := want
			if avail := remaining[c.offer.RestaurantID]; take > avail {
				overflow := take - avail
				take = avail
				lost := result.Lost[share.SegmentID]
				lost.Capacity += overflow
				result.Lost[share.SegmentID] = lost
				result.LostByRestaurant[c.offer.RestaurantID] += overflow
			}
			if take == 0 {
				continue
			}
			remaining[c.offer.RestaurantID] -= take
			if result.ByRestaurant[c.offer.RestaurantID] == nil {
				result.ByRestaurant[c.offer.RestaurantID] = make(map[string]int)
			}
			result.ByRestaurant[c.offer.RestaurantID][share.SegmentID] += take
			result.Totals[c.offer.RestaurantID] += take
		}
	}

	return result, nil
}

// eligible filters and scores the offers for one segment, preserving offer
// order. Scores carry the cannibalization factor; zero scores drop out.
func eligible(offers []Offer, segment Segment, conceptCount map[restaurant.Concept]int, params Params) []*contender {
	out := make([]*contender, 0, len(offers))
	for _, offer := range offers {
		if offer.MenuSize == 0 {
			continue
		}
		if offer.MedianPrice > segment.Budget*params.BudgetTolerance {
			continue
		}
		score := Score(offer, segment, params) * CannibalizationFactor(conceptCount[offer.Concept], params.CannibalizationK)
		if score <= 0 {
			continue
		}
		out = append(out, &contender{offer: offer, score: score})
	}
	return out
}

// split apportions demand proportionally to scores. Every contender first
// receives the floor of its exact share; leftover covers go one-by-one to
// the largest fractional parts, best rank first on equal fractions.
func split(contenders []*contender, demand int) {
	ranked := make([]*contender, len(contenders))
	copy(ranked, contenders)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	for i, c := range ranked {
		c.rank = i
	}

	var total float64
	for _, c := range contenders {
		total += c.score
	}

	assigned := 0
	for _, c := range contenders {
		exact := float64(demand) * c.score / total
		c.covers = int(exact)
		c.frac = exact - float64(c.covers)
		assigned += c.covers
	}

	leftovers := make([]*contender, len(contenders))
	copy(leftovers, contenders)
	sort.SliceStable(leftovers, func(i, j int) bool {
		if leftovers[i].frac != leftovers[j].frac {
			return leftovers[i].frac > leftovers[j].frac
		}
		return leftovers[i].rank < leftovers[j].rank
	})
	for i := 0; i < demand-assigned && i < len(leftovers); i++ {
		leftovers[i].covers++
	}
}
