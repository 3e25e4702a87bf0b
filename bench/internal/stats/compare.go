package stats

// Comparison is the winner/loser verdict between targets. Winner fields
// are empty when fewer than two targets have data for that metric. Lower
// is always better for every metric compared here.
type Comparison struct {
	LoadTimeWinner              string  `json:"load_time_winner,omitempty"`
	LoadTimeDifferenceMs        float64 `json:"load_time_difference_ms"`
	TransferSizeWinner          string  `json:"transfer_size_winner,omitempty"`
	TransferSizeDifferenceBytes float64 `json:"transfer_size_difference_bytes"`
	NavigationWinner            string  `json:"navigation_winner,omitempty"`
	NavigationDifferenceMs      float64 `json:"navigation_difference_ms"`
}

// Compare derives a Comparison across all targets. order fixes the
// tie-break: with exactly equal values the earliest target in order
// wins. Targets with a nil aggregate are excluded from the time and
// size verdicts; targets missing from nav are excluded from the
// navigation verdict. The difference is winner versus runner-up.
func Compare(order []string, results map[string]*Aggregated, nav map[string]float64) Comparison {
	var cmp Comparison

	cmp.LoadTimeWinner, cmp.LoadTimeDifferenceMs = best(order, func(name string) (float64, bool) {
		agg := results[name]
		if agg == nil {
			return 0, false
		}
		return agg.TotalLoadTimeMs, true
	})

	cmp.TransferSizeWinner, cmp.TransferSizeDifferenceBytes = best(order, func(name string) (float64, bool) {
		agg := results[name]
		if agg == nil {
			return 0, false
		}
		return agg.TotalTransferBytes, true
	})

	cmp.NavigationWinner, cmp.NavigationDifferenceMs = best(order, func(name string) (float64, bool) {
		ms, ok := nav[name]
		return ms, ok
	})

	return cmp
}

// best returns the target with the lowest value and its margin over the
// runner-up. Strict less-than keeps the earliest target on ties. Fewer
// than two participants means no verdict.
func best(order []string, value func(name string) (float64, bool)) (string, float64) {
	var (
		winner    string
		lowest    float64
		runnerUp  float64
		hasWinner bool
		hasSecond bool
	)

	for _, name := range order {
		v, ok := value(name)
		if !ok {
			continue
		}
		switch {
		case !hasWinner:
			winner, lowest, hasWinner = name, v, true
		case v < lowest:
			runnerUp, hasSecond = lowest, true
			winner, lowest = name, v
		case !hasSecond || v < runnerUp:
			runnerUp, hasSecond = v, true
		}
	}

	if !hasWinner || !hasSecond {
		return "", 0
	}
	return winner, runnerUp - lowest
}
