// CLAUDE:SUMMARY Manages Chrome headless lifecycle for one measurement session: launch or remote connect, page creation, teardown.
// Package browser manages Chrome headless lifecycle for a measurement
// session: launch (or connect to a remote instance) via Rod, hand out
// fresh pages per trial, and tear everything down when the session ends.
//
// One Session owns one Chrome process. Pages are cheap; relaunching
// Chrome per trial is not, so trials share the process and get isolated
// pages instead.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Config configures a browser Session.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// Stealth opens pages through the stealth helper. Useful when a
	// target sits behind bot detection; off by default because the
	// injected scripts add measurable overhead.
	Stealth bool

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Session is one live Chrome process and its Rod handle.
type Session struct {
	cfg     Config
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// Open launches Chrome (or connects to a remote instance) and returns a
// Session. Callers must Close it.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	cfg.defaults()
	log := cfg.Logger

	var wsURL string
	s := &Session{cfg: cfg}

	if cfg.RemoteURL != "" {
		wsURL = cfg.RemoteURL
		log.Info("browser: connecting to remote", "url", wsURL)
	} else {
		l := launcher.New().Headless(true)
		l = l.Set("disable-blink-features", "AutomationControlled")

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		s.lnch = l
		log.Info("browser: launched local chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL).Context(ctx)
	if err := b.Connect(); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	s.browser = b

	// Ignore certificate errors for dev/testing targets.
	if err := b.IgnoreCertErrors(true); err != nil {
		log.Warn("browser: ignore cert errors failed", "error", err)
	}

	return s, nil
}

// NewPage creates a fresh page with the browser cache disabled so one
// trial cannot warm the next.
func (s *Session) NewPage(ctx context.Context) (*rod.Page, error) {
	if s.browser == nil {
		return nil, fmt.Errorf("browser: session is closed")
	}

	var page *rod.Page
	var err error
	if s.cfg.Stealth {
		page, err = stealth.Page(s.browser)
	} else {
		page, err = s.browser.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create page: %w", err)
	}
	page = page.Context(ctx)

	if err := (proto.NetworkEnable{}).Call(page); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: enable network domain: %w", err)
	}
	if err := (proto.NetworkSetCacheDisabled{CacheDisabled: true}).Call(page); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: disable cache: %w", err)
	}

	return page, nil
}

// Navigate drives the page to url and waits for DOMContentLoaded, the
// primary readiness signal. Full network idle is deliberately not the
// gate: background polling keeps some apps from ever going idle.
func Navigate(page *rod.Page, url string, timeout time.Duration) error {
	p := page.Timeout(timeout)

	wait := p.WaitEvent(&proto.PageDomContentEventFired{})
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	wait()

	// wait returns on either the event or the deadline; only the
	// deadline leaves the context in an error state.
	if err := p.GetContext().Err(); err != nil {
		return fmt.Errorf("browser: navigate %s: dom content timeout: %w", url, err)
	}
	return nil
}

// Close shuts down Chrome and the launcher.
func (s *Session) Close() {
	s.cleanup()
}

func (s *Session) cleanup() {
	if s.browser != nil {
		s.browser.Close()
		s.browser = nil
	}
	if s.lnch != nil {
		s.lnch.Cleanup()
		s.lnch = nil
	}
}
