// CLAUDE:SUMMARY Live page capture: Chrome via Rod with stealth, serialising the rendered DOM to HTML.
// Package capture fetches rendered product pages through a real browser.
// Server-rendered HTML misses disclosures injected by storefront scripts,
// so the page is loaded in Chrome and the DOM serialised after load.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Config configures the browser fetcher.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string `json:"remote_url" yaml:"remote_url"`

	// NavigateTimeout bounds navigation plus page load. Default: 30s.
	NavigateTimeout time.Duration `json:"navigate_timeout" yaml:"navigate_timeout"`

	// Stealth applies anti-detection patches to every page. Storefronts
	// routinely serve degraded markup to detected headless browsers.
	// Default: true.
	Stealth *bool `json:"stealth" yaml:"stealth"`

	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.Stealth == nil {
		on := true
		c.Stealth = &on
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Fetcher fetches rendered pages through Chrome.
type Fetcher struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewFetcher creates a Fetcher. Call Start to launch or connect Chrome.
func NewFetcher(cfg Config) *Fetcher {
	cfg.defaults()
	return &Fetcher{cfg: cfg, logger: cfg.Logger}
}

// Start launches a local Chrome or connects to the configured remote one.
func (f *Fetcher) Start(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return fmt.Errorf("capture: fetcher is closed")
	}
	if f.browser != nil {
		return nil
	}

	wsURL := f.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(true)
		l = l.Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("capture: launch: %w", err)
		}
		wsURL = u
		f.lnch = l
		f.logger.Info("capture: launched local chrome", "url", wsURL)
	} else {
		f.logger.Info("capture: connecting to remote chrome", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("capture: connect: %w", err)
	}
	f.browser = b
	return nil
}

// FetchHTML navigates to the URL in a fresh tab and returns the rendered
// document as outer HTML. The tab is closed before returning.
func (f *Fetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	f.mu.Lock()
	b := f.browser
	f.mu.Unlock()
	if b == nil {
		return "", fmt.Errorf("capture: fetcher not started")
	}

	var page *rod.Page
	var err error
	if *f.cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return "", fmt.Errorf("capture: create tab: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, f.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return "", fmt.Errorf("capture: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		f.logger.Warn("capture: wait load timeout", "url", pageURL, "error", err)
	}

	res, err := page.Context(navCtx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("capture: serialise DOM: %w", err)
	}
	return res.Value.Str(), nil
}

// Close shuts down Chrome.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.browser != nil {
		f.browser.Close()
		f.browser = nil
	}
	if f.lnch != nil {
		f.lnch.Cleanup()
		f.lnch = nil
	}
	return nil
}
