// Package fetch retrieves fully-rendered stats pages through a real browser.
//
// The data provider assembles parts of its pages client-side and rate-limits
// plain HTTP clients, so retrieval goes through headless Chrome with stealth
// applied: warm up on the site's home page to acquire cookies, navigate,
// wait for the stats-table marker, pause, and serialize the DOM. Parsing the
// captured document is the tabular package's job; this package never
// inspects the markup beyond waiting for the marker selector.
package fetch

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

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_6) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15"

// Config configures the browser fetcher.
type Config struct {
	// Headful runs Chrome with a visible window; some providers throttle
	// headless fingerprints harder. Default: false (headless).
	Headful bool

	// UserAgent overrides the browser user agent.
	UserAgent string

	// HomeURL is warmed up once at start to acquire session cookies.
	// Empty disables warmup.
	HomeURL string

	// WaitSelector is the CSS selector whose appearance marks a fully
	// assembled page. Default: "table.stats_table".
	WaitSelector string

	// NavTimeout bounds navigation plus the selector wait. Default: 90s.
	NavTimeout time.Duration

	// WarmupTimeout bounds the home-page warmup. Default: 45s.
	WarmupTimeout time.Duration

	// SettleDelay is the pause after the marker appears, letting late
	// scripts finish. Default: 5s.
	SettleDelay time.Duration

	// PaceDelay is the politeness pause before returning, keeping request
	// spacing provider-friendly. Default: 2.5s.
	PaceDelay time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.WaitSelector == "" {
		c.WaitSelector = "table.stats_table"
	}
	if c.NavTimeout <= 0 {
		c.NavTimeout = 90 * time.Second
	}
	if c.WarmupTimeout <= 0 {
		c.WarmupTimeout = 45 * time.Second
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 5 * time.Second
	}
	if c.PaceDelay <= 0 {
		c.PaceDelay = 2500 * time.Millisecond
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Browser owns one Chrome process and retrieves pages through it.
type Browser struct {
	cfg     Config
	lnch    *launcher.Launcher
	browser *rod.Browser
}

// New creates a Browser. Call Start to launch Chrome.
func New(cfg Config) *Browser {
	cfg.defaults()
	return &Browser{cfg: cfg}
}

// Start launches Chrome, connects, and warms up the configured home page.
// A warmup timeout is logged and tolerated: the session simply starts cold.
func (b *Browser) Start(ctx context.Context) error {
	b.lnch = launcher.New().Headless(!b.cfg.Headful)
	u, err := b.lnch.Context(ctx).Launch()
	if err != nil {
		return fmt.Errorf("fetch: launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		b.lnch.Kill()
		return fmt.Errorf("fetch: connect chrome: %w", err)
	}
	b.browser = browser

	if b.cfg.HomeURL != "" {
		if err := b.warmup(ctx); err != nil {
			b.cfg.Logger.Warn("fetch: warmup failed, continuing cold", "url", b.cfg.HomeURL, "error", err)
		}
	}
	return nil
}

func (b *Browser) warmup(ctx context.Context) error {
	warmCtx, cancel := context.WithTimeout(ctx, b.cfg.WarmupTimeout)
	defer cancel()

	page, err := b.newPage(warmCtx)
	if err != nil {
		return err
	}
	defer page.Close()

	if err := page.Navigate(b.cfg.HomeURL); err != nil {
		return fmt.Errorf("navigate %s: %w", b.cfg.HomeURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	sleep(warmCtx, time.Second)
	return nil
}

// newPage opens a stealth page with the configured user agent and viewport.
func (b *Browser) newPage(ctx context.Context) (*rod.Page, error) {
	if b.browser == nil {
		return nil, fmt.Errorf("fetch: browser not started")
	}
	page, err := stealth.Page(b.browser)
	if err != nil {
		return nil, fmt.Errorf("fetch: create page: %w", err)
	}
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      b.cfg.UserAgent,
		AcceptLanguage: "en-US",
	}); err != nil {
		page.Close()
		return nil, fmt.Errorf("fetch: set user agent: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  1400,
		Height: 900,
	}); err != nil {
		page.Close()
		return nil, fmt.Errorf("fetch: set viewport: %w", err)
	}
	return page, nil
}

// PageHTML navigates to url, waits for the stats-table marker, and returns
// the serialized DOM. A marker timeout is logged and the page is captured
// anyway: the parser downstream does the best it can with what arrived.
func (b *Browser) PageHTML(ctx context.Context, url string) (string, error) {
	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavTimeout)
	defer cancel()

	page, err := b.newPage(navCtx)
	if err != nil {
		return "", err
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("fetch: navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		b.cfg.Logger.Warn("fetch: wait load timeout", "url", url, "error", err)
	}

	if err := b.waitMarker(navCtx, page); err != nil {
		b.cfg.Logger.Warn("fetch: tables did not appear, capturing anyway", "url", url, "error", err)
	} else {
		sleep(navCtx, b.cfg.SettleDelay)
	}

	// Politeness spacing between page grabs.
	sleep(ctx, b.cfg.PaceDelay)

	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("fetch: serialize DOM %s: %w", url, err)
	}
	return res.Value.Str(), nil
}

func (b *Browser) waitMarker(ctx context.Context, page *rod.Page) error {
	_, err := page.Context(ctx).Element(b.cfg.WaitSelector)
	return err
}

// Close shuts down the browser and its Chrome process.
func (b *Browser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.lnch != nil {
		b.lnch.Kill()
		b.lnch = nil
	}
	return err
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
