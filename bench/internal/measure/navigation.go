// CLAUDE:SUMMARY Navigation Measurer: times one in-app client-side route transition from link click to network settle.
package measure

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/hazyhaar/routebench/bench/internal/browser"
	"github.com/hazyhaar/routebench/bench/internal/config"
)

// Navigation loads the target's root page, clicks the configured in-app
// navigation link, and times the client-side transition until the
// network settles. Single trial. Any failure returns (0, false) and the
// target is simply omitted from the navigation comparison.
func (m *Measurer) Navigation(ctx context.Context, target config.AppTarget) (float64, bool) {
	if target.NavLinkSelector == "" {
		m.logger.Warn("measure: no nav link selector, skipping navigation", "app", target.Name)
		return 0, false
	}

	page, err := m.sess.NewPage(ctx)
	if err != nil {
		m.logger.Warn("measure: navigation page failed", "app", target.Name, "error", err)
		return 0, false
	}
	defer page.Close()

	if err := browser.Navigate(page, target.BaseURL, m.cfg.NavigationTimeout); err != nil {
		m.logger.Warn("measure: navigation load failed", "app", target.Name, "error", err)
		return 0, false
	}

	p := page.Timeout(m.cfg.SelectorTimeout)
	el, err := p.Element(target.NavLinkSelector)
	if err == nil {
		err = el.WaitVisible()
	}
	if err != nil {
		m.logger.Warn("measure: nav link not found, skipping navigation",
			"app", target.Name, "selector", target.NavLinkSelector, "error", err)
		return 0, false
	}

	// Client-side routing does not fire a load event. "Settled" is a
	// request-idle heuristic: no in-flight requests for RequestIdle.
	settle := page.Timeout(m.cfg.NavigationTimeout).
		WaitRequestIdle(m.cfg.RequestIdle, nil, nil, nil)

	start := time.Now()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		m.logger.Warn("measure: nav click failed", "app", target.Name, "error", err)
		return 0, false
	}
	settle()
	elapsed := float64(time.Since(start)) / float64(time.Millisecond)

	m.logger.Info("measure: navigation complete", "app", target.Name, "elapsed_ms", elapsed)
	return elapsed, true
}
