package staffing

// DefaultSatisfaction is the starting staff satisfaction for a new team.
const DefaultSatisfaction = 0.80

// NextSatisfaction moves satisfaction after a turn at the given service
// utilization. Sustained overload erodes morale faster than idleness; a
// comfortable load recovers it. The result stays in [0, 1].
func NextSatisfaction(current, utilization float64) float64 {
	var delta float64
	switch {
	case utilization > 0.95:
		delta = -0.06
	case utilization > 0.85:
		delta = -0.03
	case utilization < 0.35:
		delta = -0.02
	case utilization < 0.55:
		delta = 0.01
	default:
		delta = 0.02
	}
	return clamp01(current + delta)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
