// CLAUDE:SUMMARY Pure aggregation of trial metrics into per-target means and winner comparisons.
// Package stats aggregates raw trial measurements into per-target means
// and derives winner comparisons between targets. Everything here is a
// pure function: same input, same output, no I/O.
package stats

// TrialMetrics holds one browser page-load trial's raw measurements.
// Produced once per trial and immutable after capture.
type TrialMetrics struct {
	DOMContentLoadedMs       float64 `json:"dom_content_loaded_ms"`
	DOMInteractiveMs         float64 `json:"dom_interactive_ms"`
	TotalLoadTimeMs          float64 `json:"total_load_time_ms"`
	FirstContentfulPaintMs   float64 `json:"first_contentful_paint_ms"`
	LargestContentfulPaintMs float64 `json:"largest_contentful_paint_ms"`
	NetworkRequestCount      float64 `json:"network_request_count"`
	TotalTransferBytes       float64 `json:"total_transfer_bytes"`
	JSBytes                  float64 `json:"js_bytes"`
	CSSBytes                 float64 `json:"css_bytes"`
}

// Aggregated is the unweighted arithmetic mean of N successful trials
// for one target, plus the raw trials for audit.
type Aggregated struct {
	Iterations               int            `json:"iterations"`
	DOMContentLoadedMs       float64        `json:"dom_content_loaded_ms"`
	DOMInteractiveMs         float64        `json:"dom_interactive_ms"`
	TotalLoadTimeMs          float64        `json:"total_load_time_ms"`
	FirstContentfulPaintMs   float64        `json:"first_contentful_paint_ms"`
	LargestContentfulPaintMs float64        `json:"largest_contentful_paint_ms"`
	NetworkRequestCount      float64        `json:"network_request_count"`
	TotalTransferBytes       float64        `json:"total_transfer_bytes"`
	JSBytes                  float64        `json:"js_bytes"`
	CSSBytes                 float64        `json:"css_bytes"`
	Trials                   []TrialMetrics `json:"trials"`
}

// Aggregate computes the mean of each field across trials. Returns nil
// when trials is empty: a target where every trial failed has no
// aggregate, and downstream comparisons must omit it.
func Aggregate(trials []TrialMetrics) *Aggregated {
	if len(trials) == 0 {
		return nil
	}

	agg := &Aggregated{
		Iterations: len(trials),
		Trials:     append([]TrialMetrics(nil), trials...),
	}
	for _, t := range trials {
		agg.DOMContentLoadedMs += t.DOMContentLoadedMs
		agg.DOMInteractiveMs += t.DOMInteractiveMs
		agg.TotalLoadTimeMs += t.TotalLoadTimeMs
		agg.FirstContentfulPaintMs += t.FirstContentfulPaintMs
		agg.LargestContentfulPaintMs += t.LargestContentfulPaintMs
		agg.NetworkRequestCount += t.NetworkRequestCount
		agg.TotalTransferBytes += t.TotalTransferBytes
		agg.JSBytes += t.JSBytes
		agg.CSSBytes += t.CSSBytes
	}

	n := float64(len(trials))
	agg.DOMContentLoadedMs /= n
	agg.DOMInteractiveMs /= n
	agg.TotalLoadTimeMs /= n
	agg.FirstContentfulPaintMs /= n
	agg.LargestContentfulPaintMs /= n
	agg.NetworkRequestCount /= n
	agg.TotalTransferBytes /= n
	agg.JSBytes /= n
	agg.CSSBytes /= n
	return agg
}
