// CLAUDE:SUMMARY Top-level run orchestration: readiness barrier, concurrent per-target measurement, aggregation, persistence.
// Package bench orchestrates a full benchmark run: probe every target
// for readiness, measure page loads and in-app navigation concurrently
// across targets, compare the aggregates, persist the report, and print
// the summary.
//
// Targets run concurrently; trials within one target run sequentially,
// each owning a fresh page in a browser process private to that
// target's session.
package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/routebench/bench/internal/browser"
	"github.com/hazyhaar/routebench/bench/internal/config"
	"github.com/hazyhaar/routebench/bench/internal/measure"
	"github.com/hazyhaar/routebench/bench/internal/probe"
	"github.com/hazyhaar/routebench/bench/internal/report"
	"github.com/hazyhaar/routebench/bench/internal/stats"
)

// Runner executes benchmark runs from a loaded configuration.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner creates a Runner.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// targetResult is one target's complete measurement outcome.
type targetResult struct {
	agg    *stats.Aggregated
	navMs  float64
	hasNav bool
}

// Run executes one full benchmark run and writes the report. The
// readiness probe is the only fatal phase: once measurement starts,
// failures degrade to gaps in the report instead of aborting.
func (r *Runner) Run(ctx context.Context, out io.Writer) (*report.Report, error) {
	started := time.Now()

	urls := make([]string, 0, len(r.cfg.Apps))
	for _, app := range r.cfg.Apps {
		urls = append(urls, app.BaseURL)
	}

	prober := probe.New(
		probe.WithClient(&http.Client{Timeout: r.cfg.Probe.Timeout}),
		probe.WithAttempts(r.cfg.Probe.Attempts),
		probe.WithDelay(r.cfg.Probe.Delay),
		probe.WithLogger(r.logger),
	)
	r.logger.Info("bench: probing targets", "count", len(urls))
	if err := prober.WaitAll(ctx, urls); err != nil {
		return nil, fmt.Errorf("bench: readiness probe: %w", err)
	}
	r.logger.Info("bench: all targets ready")

	// Fan out one measurement session per target. No shared mutable
	// state crosses sessions; results land in a mutex-guarded map at
	// the join.
	var mu sync.Mutex
	results := make(map[string]targetResult, len(r.cfg.Apps))

	g, gctx := errgroup.WithContext(ctx)
	for _, app := range r.cfg.Apps {
		g.Go(func() error {
			res := r.measureTarget(gctx, app)
			mu.Lock()
			results[app.Name] = res
			mu.Unlock()
			return nil
		})
	}
	// Measurement errors never propagate here; they surface as nil
	// aggregates. Wait is a pure barrier.
	g.Wait()

	order := make([]string, 0, len(r.cfg.Apps))
	aggs := make(map[string]*stats.Aggregated, len(r.cfg.Apps))
	nav := make(map[string]float64)
	for _, app := range r.cfg.Apps {
		order = append(order, app.Name)
		res := results[app.Name]
		aggs[app.Name] = res.agg
		if res.hasNav {
			nav[app.Name] = res.navMs
		}
	}

	rep := &report.Report{
		Timestamp:      started.UTC().Format(time.RFC3339Nano),
		TestDurationMs: float64(time.Since(started)) / float64(time.Millisecond),
		Results:        aggs,
		NavigationMs:   nav,
		Comparison:     stats.Compare(order, aggs, nav),
		Order:          order,
	}

	if err := r.persist(ctx, rep); err != nil {
		return nil, err
	}

	if out != nil {
		report.Summarize(out, rep)
	}
	return rep, nil
}

// measureTarget owns one target's whole measurement session: one
// browser process, N page-load trials, one navigation trial.
func (r *Runner) measureTarget(ctx context.Context, app config.AppTarget) targetResult {
	sess, err := browser.Open(ctx, browser.Config{
		RemoteURL: r.cfg.Browser.Remote,
		Stealth:   r.cfg.Browser.Stealth,
		Logger:    r.logger,
	})
	if err != nil {
		r.logger.Error("bench: browser session failed", "app", app.Name, "error", err)
		return targetResult{}
	}
	defer sess.Close()

	m := measure.New(sess, measure.Config{
		NavigationTimeout: r.cfg.Timeouts.Navigation,
		SelectorTimeout:   r.cfg.Timeouts.Selector,
		PaintTimeout:      r.cfg.Timeouts.Paint,
		RequestIdle:       r.cfg.Timeouts.RequestIdle,
		GraceDelay:        r.cfg.Timeouts.GraceDelay,
		Logger:            r.logger,
	})

	agg := m.PageLoad(ctx, app, r.cfg.Iterations)
	if agg == nil {
		r.logger.Warn("bench: all trials failed", "app", app.Name)
	}

	navMs, ok := m.Navigation(ctx, app)

	return targetResult{agg: agg, navMs: navMs, hasNav: ok}
}

func (r *Runner) persist(ctx context.Context, rep *report.Report) error {
	w := report.NewWriter(r.cfg.Output.Dir, r.cfg.Output.HistoryDir)
	histPath, err := w.Write(rep)
	if err != nil {
		return fmt.Errorf("bench: persist: %w", err)
	}
	r.logger.Info("bench: report written",
		"latest", r.cfg.Output.Dir+"/"+report.LatestName, "history", histPath)

	ix, err := report.OpenIndex(ctx, r.cfg.Output.IndexPath)
	if err != nil {
		// The JSON report is the artifact of record; a broken index
		// is a warning, not a failed run.
		r.logger.Warn("bench: run index unavailable", "error", err)
		return nil
	}
	defer ix.Close()

	if err := ix.InsertRun(ctx, rep, histPath); err != nil {
		r.logger.Warn("bench: run index insert failed", "error", err)
	}
	return nil
}
