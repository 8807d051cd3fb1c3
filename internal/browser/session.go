package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Session couples one browser instance with its single extraction page.
// Closing the session tears down the page, the browser and its process, so a
// fresh attempt never shares state with a previous one.
type Session struct {
	browser *Browser
	page    *rod.Page
}

// NewSession launches a browser per cfg, opens its page and applies every
// pre-navigation setting (user agent, automation masking, viewport,
// color-scheme emulation) before any navigation happens.
func NewSession(cfg Config) (*Session, error) {
	b, err := New(cfg)
	if err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s := &Session{browser: b, page: page}
	if err := s.prepare(cfg); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) prepare(cfg Config) error {
	_ = s.page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent})
	_, _ = s.page.EvalOnNewDocument(`Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`)

	viewport := &proto.EmulationSetDeviceMetricsOverride{
		Width:             1440,
		Height:            900,
		DeviceScaleFactor: 1,
	}
	if cfg.Mobile {
		viewport = &proto.EmulationSetDeviceMetricsOverride{
			Width:             390,
			Height:            844,
			DeviceScaleFactor: 3,
			Mobile:            true,
		}
	}
	if err := s.page.SetViewport(viewport); err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}

	scheme := "light"
	if cfg.DarkMode {
		scheme = "dark"
	}
	err := proto.EmulationSetEmulatedMedia{
		Features: []*proto.EmulationMediaFeature{
			{Name: "prefers-color-scheme", Value: scheme},
		},
	}.Call(s.page)
	if err != nil {
		return fmt.Errorf("failed to emulate color scheme: %w", err)
	}

	return nil
}

// Navigate loads url, waits for the load event, then waits up to settle for
// network idle so JS-driven pages finish populating before sampling. Images
// and media are excluded from the idle check since they can trickle forever.
func (s *Session) Navigate(ctx context.Context, url string, timeout, settle time.Duration) error {
	page := s.page.Context(ctx).Timeout(timeout)

	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}

	wait := page.WaitRequestIdle(
		settle, nil, nil,
		[]proto.NetworkResourceType{proto.NetworkResourceTypeImage, proto.NetworkResourceTypeMedia},
	)
	wait()

	return nil
}

// Evaluate runs a script in page context and returns the result as JSON.
func (s *Session) Evaluate(ctx context.Context, js string) ([]byte, error) {
	val, err := s.page.Context(ctx).Eval(js)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate script: %w", err)
	}
	raw, err := val.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize evaluation result: %w", err)
	}
	return raw, nil
}

// HTML returns the full rendered document markup.
func (s *Session) HTML(ctx context.Context) (string, error) {
	val, err := s.page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}
	return val.Value.String(), nil
}

// Close tears down the page, browser and process.
func (s *Session) Close() error {
	if s.page != nil {
		_ = s.page.Close()
	}
	return s.browser.Close()
}
