// CLAUDE:SUMMARY Captures FCP and LCP by racing paint-timing observers against a bounded timeout inside the page.
package measure

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// paintMetrics carries whatever paint timing was observed before the
// deadline. Zero means "not observed", never "painted at t=0".
type paintMetrics struct {
	FCP float64 `json:"fcp"`
	LCP float64 `json:"lcp"`
}

// paintJS races two PerformanceObservers against a timer. LCP keeps
// updating until user interaction, so the promise resolves as soon as
// both metrics have been seen at least once, or at the deadline with
// partial results.
const paintJS = `(timeoutMs) => new Promise((resolve) => {
	const out = { fcp: 0, lcp: 0 };
	let sawFCP = false, sawLCP = false, done = false;
	const finish = () => {
		if (done) return;
		done = true;
		resolve(JSON.stringify(out));
	};
	const maybeFinish = () => { if (sawFCP && sawLCP) finish(); };
	try {
		new PerformanceObserver((list) => {
			for (const e of list.getEntries()) {
				if (e.name === 'first-contentful-paint') {
					out.fcp = e.startTime;
					sawFCP = true;
				}
			}
			maybeFinish();
		}).observe({ type: 'paint', buffered: true });
		new PerformanceObserver((list) => {
			const entries = list.getEntries();
			if (entries.length > 0) {
				out.lcp = entries[entries.length - 1].startTime;
				sawLCP = true;
			}
			maybeFinish();
		}).observe({ type: 'largest-contentful-paint', buffered: true });
	} catch (err) {
		finish();
	}
	setTimeout(finish, timeoutMs);
})`

// capturePaint resolves FCP and LCP with partial-result semantics: a
// metric the page never reported comes back as zero.
func capturePaint(page *rod.Page, timeout time.Duration) (paintMetrics, error) {
	var pm paintMetrics

	// The page-side timer already bounds the promise; the Rod-side
	// timeout is a backstop slightly past it.
	p := page.Timeout(timeout + 5*time.Second)
	res, err := p.Evaluate(rod.Eval(paintJS, int(timeout.Milliseconds())).ByPromise())
	if err != nil {
		return pm, fmt.Errorf("measure: capture paint: %w", err)
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), &pm); err != nil {
		return pm, fmt.Errorf("measure: decode paint metrics: %w", err)
	}
	return pm, nil
}
