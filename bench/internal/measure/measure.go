// CLAUDE:SUMMARY Page Load Measurer: N sequential browser trials per target with per-trial isolation and degradation fallbacks.
// Package measure drives the browser trials that produce raw metrics.
//
// Two distinct measurements live here. PageLoad runs N isolated trials
// of a full page load, each in a fresh cache-disabled page, capturing
// navigation timing, paint timing, and network transfer totals.
// Navigation runs a single trial timing an in-app client-side route
// transition after a link click.
//
// Trials degrade rather than abort: a missing content selector falls
// back to a grace delay, invalid navigation timing falls back through a
// chain ending at a wall-clock stopwatch, and paint metrics resolve
// partially at a deadline. Only a failed navigation drops a trial.
package measure

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/routebench/bench/internal/browser"
	"github.com/hazyhaar/routebench/bench/internal/config"
	"github.com/hazyhaar/routebench/bench/internal/stats"
)

// Config bounds every wait a Measurer performs.
type Config struct {
	// NavigationTimeout bounds page navigation up to DOMContentLoaded.
	NavigationTimeout time.Duration

	// SelectorTimeout bounds waiting for the content-ready and
	// nav-link selectors.
	SelectorTimeout time.Duration

	// PaintTimeout bounds the FCP/LCP observer race.
	PaintTimeout time.Duration

	// RequestIdle is the quiet period that counts as "settled" after
	// an in-app navigation click.
	RequestIdle time.Duration

	// GraceDelay is slept when the content-ready selector never shows,
	// as a best-effort stand-in for content readiness.
	GraceDelay time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = 30 * time.Second
	}
	if c.SelectorTimeout <= 0 {
		c.SelectorTimeout = 10 * time.Second
	}
	if c.PaintTimeout <= 0 {
		c.PaintTimeout = 15 * time.Second
	}
	if c.RequestIdle <= 0 {
		c.RequestIdle = 500 * time.Millisecond
	}
	if c.GraceDelay <= 0 {
		c.GraceDelay = 2 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Measurer runs trials against one target using one shared browser
// session. Trials must stay sequential: concurrent trials on one target
// contend for CPU and network and skew the very timings being measured.
type Measurer struct {
	sess   *browser.Session
	cfg    Config
	logger *slog.Logger
}

// New creates a Measurer on an open browser session.
func New(sess *browser.Session, cfg Config) *Measurer {
	cfg.defaults()
	return &Measurer{sess: sess, cfg: cfg, logger: cfg.Logger}
}

// PageLoad runs iterations sequential trials against the target's page
// URL and returns their aggregate. A failed trial is logged and dropped
// from the mean. Returns nil when every trial failed.
func (m *Measurer) PageLoad(ctx context.Context, target config.AppTarget, iterations int) *stats.Aggregated {
	trials := make([]stats.TrialMetrics, 0, iterations)

	for i := 1; i <= iterations; i++ {
		if ctx.Err() != nil {
			break
		}
		tm, err := m.runTrial(ctx, target)
		if err != nil {
			m.logger.Warn("measure: trial dropped",
				"app", target.Name, "trial", i, "error", err)
			continue
		}
		m.logger.Info("measure: trial complete",
			"app", target.Name, "trial", i,
			"load_ms", tm.TotalLoadTimeMs,
			"fcp_ms", tm.FirstContentfulPaintMs,
			"lcp_ms", tm.LargestContentfulPaintMs,
			"requests", tm.NetworkRequestCount,
			"transfer_bytes", tm.TotalTransferBytes)
		trials = append(trials, *tm)
	}

	return stats.Aggregate(trials)
}

func (m *Measurer) runTrial(ctx context.Context, target config.AppTarget) (*stats.TrialMetrics, error) {
	page, err := m.sess.NewPage(ctx)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	// The tally lives and dies with this trial. Listeners must be
	// attached before navigation or the document request is missed.
	tally := newNetworkTally()
	go page.EachEvent(tally.onResponse, tally.onLoadingFinished)()

	start := time.Now()
	if err := browser.Navigate(page, target.PageURL, m.cfg.NavigationTimeout); err != nil {
		return nil, err
	}
	stopwatchMs := float64(time.Since(start)) / float64(time.Millisecond)

	m.waitContentReady(ctx, page, target)

	timing, err := readNavigationTiming(page)
	if err != nil {
		m.logger.Warn("measure: navigation timing unreadable",
			"app", target.Name, "error", err)
	}

	pm, err := capturePaint(page, m.cfg.PaintTimeout)
	if err != nil {
		m.logger.Warn("measure: paint capture failed", "app", target.Name, "error", err)
	}
	if pm.FCP == 0 || pm.LCP == 0 {
		m.logger.Warn("measure: incomplete paint metrics",
			"app", target.Name, "fcp_ms", pm.FCP, "lcp_ms", pm.LCP)
	}

	total, source := resolveTotalLoad(timing, stopwatchMs)
	if source != "navigation-timing" {
		m.logger.Warn("measure: total load time degraded",
			"app", target.Name, "source", source, "value_ms", total)
	}

	requests, totalBytes, jsBytes, cssBytes := tally.snapshot()

	tm := &stats.TrialMetrics{
		TotalLoadTimeMs:          total,
		FirstContentfulPaintMs:   pm.FCP,
		LargestContentfulPaintMs: pm.LCP,
		NetworkRequestCount:      float64(requests),
		TotalTransferBytes:       totalBytes,
		JSBytes:                  jsBytes,
		CSSBytes:                 cssBytes,
	}
	if timing != nil {
		tm.DOMContentLoadedMs = timing.DOMContentLoadedMs
		tm.DOMInteractiveMs = timing.DOMInteractiveMs
	}
	return tm, nil
}

// waitContentReady waits for the app's content-ready selector to appear
// and become visible. Timing out is not a trial failure: the trial
// continues after a fixed grace delay so a broken selector degrades the
// measurement instead of zeroing it.
func (m *Measurer) waitContentReady(ctx context.Context, page *rod.Page, target config.AppTarget) {
	if target.ContentReadySelector == "" {
		return
	}

	p := page.Timeout(m.cfg.SelectorTimeout)
	el, err := p.Element(target.ContentReadySelector)
	if err == nil {
		err = el.WaitVisible()
	}
	if err == nil {
		return
	}

	m.logger.Warn("measure: content-ready selector not found, using grace delay",
		"app", target.Name, "selector", target.ContentReadySelector, "error", err)
	select {
	case <-ctx.Done():
	case <-time.After(m.cfg.GraceDelay):
	}
}
