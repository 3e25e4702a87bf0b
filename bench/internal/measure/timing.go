// CLAUDE:SUMMARY Reads the browser navigation-timing record and resolves total load time through a fallback chain.
package measure

import (
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod"
)

// navTiming is the subset of the PerformanceNavigationTiming record the
// harness consumes, already normalised to ms-from-navigation-start.
type navTiming struct {
	Duration           float64 `json:"duration"`
	DOMContentLoadedMs float64 `json:"domContentLoaded"`
	DOMInteractiveMs   float64 `json:"domInteractive"`
	LoadEventEndMs     float64 `json:"loadEventEnd"`
}

const navTimingJS = `() => {
	const nav = performance.getEntriesByType('navigation')[0];
	if (!nav) return '';
	return JSON.stringify({
		duration: nav.duration,
		domContentLoaded: nav.domContentLoadedEventEnd - nav.startTime,
		domInteractive: nav.domInteractive - nav.startTime,
		loadEventEnd: nav.loadEventEnd - nav.startTime,
	});
}`

// readNavigationTiming pulls the navigation-timing record out of the
// page. Returns nil when the record is absent or unparseable; callers
// fall back to the harness stopwatch.
func readNavigationTiming(page *rod.Page) (*navTiming, error) {
	res, err := page.Eval(navTimingJS)
	if err != nil {
		return nil, fmt.Errorf("measure: read navigation timing: %w", err)
	}
	raw := res.Value.Str()
	if raw == "" {
		return nil, nil
	}
	var t navTiming
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("measure: decode navigation timing: %w", err)
	}
	return &t, nil
}

// resolveTotalLoad picks the total load time from the best available
// source. The navigation-timing API is flaky enough in practice (zero
// or negative durations on fast localhost loads) that a fixed fallback
// order is needed: duration, then loadEventEnd, then domContentLoaded,
// then the harness's own wall-clock stopwatch around the navigation.
// The returned source name feeds the degradation warning.
func resolveTotalLoad(t *navTiming, stopwatchMs float64) (float64, string) {
	if t != nil {
		if t.Duration > 0 {
			return t.Duration, "navigation-timing"
		}
		if t.LoadEventEndMs > 0 {
			return t.LoadEventEndMs, "load-event-end"
		}
		if t.DOMContentLoadedMs > 0 {
			return t.DOMContentLoadedMs, "dom-content-loaded"
		}
	}
	return stopwatchMs, "stopwatch"
}
