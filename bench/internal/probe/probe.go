// CLAUDE:SUMMARY Polls target base URLs until an HTTP listener answers, with bounded retries and a barrier across all targets.
// Package probe implements the server readiness check that gates a
// benchmark run. A target is "ready" as soon as any HTTP response comes
// back, regardless of status code: the probe detects the presence of a
// listener, not application health.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Prober polls target URLs until they answer.
type Prober struct {
	client   *http.Client
	attempts int
	delay    time.Duration
	logger   *slog.Logger
}

// Option configures a Prober.
type Option func(*Prober)

// WithClient sets a custom HTTP client.
func WithClient(c *http.Client) Option {
	return func(p *Prober) { p.client = c }
}

// WithAttempts sets the retry budget per target. Default: 30.
func WithAttempts(n int) Option {
	return func(p *Prober) { p.attempts = n }
}

// WithDelay sets the fixed delay between attempts. Default: 1s.
func WithDelay(d time.Duration) Option {
	return func(p *Prober) { p.delay = d }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// New creates a Prober with sensible defaults.
func New(opts ...Option) *Prober {
	p := &Prober{
		client:   &http.Client{Timeout: 5 * time.Second},
		attempts: 30,
		delay:    time.Second,
		logger:   slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Wait blocks until the URL answers an HTTP GET or the retry budget runs
// out. Any response counts as ready; only transport errors retry.
func (p *Prober) Wait(ctx context.Context, targetURL string) error {
	for attempt := 1; attempt <= p.attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
		if err != nil {
			return fmt.Errorf("probe: new request %s: %w", targetURL, err)
		}

		resp, err := p.client.Do(req)
		if err == nil {
			resp.Body.Close()
			p.logger.Debug("probe: target ready",
				"url", targetURL, "status", resp.StatusCode, "attempt", attempt)
			return nil
		}

		if ctx.Err() != nil {
			return fmt.Errorf("probe: %s: %w", targetURL, ctx.Err())
		}

		p.logger.Debug("probe: attempt failed",
			"url", targetURL, "attempt", attempt, "error", err)

		if attempt < p.attempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("probe: %s: %w", targetURL, ctx.Err())
			case <-time.After(p.delay):
			}
		}
	}
	return fmt.Errorf("probe: server not ready after %d attempts: %s", p.attempts, targetURL)
}

// WaitAll probes every URL concurrently and returns only when all are
// ready. Any single failure fails the whole barrier.
func (p *Prober) WaitAll(ctx context.Context, urls []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, u := range urls {
		g.Go(func() error {
			return p.Wait(ctx, u)
		})
	}
	return g.Wait()
}
