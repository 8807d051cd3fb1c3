package extractor

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync"
	"time"

	"dtex/internal/aggregate"
	"dtex/internal/browser"
	"dtex/internal/collector"
	"dtex/internal/score"
	"dtex/internal/tokens"
)

// Session is one live browser page the orchestrator drives. Implemented by
// browser.Session; faked in tests.
type Session interface {
	Navigate(ctx context.Context, url string, timeout, settle time.Duration) error
	Evaluate(ctx context.Context, js string) ([]byte, error)
	HTML(ctx context.Context) (string, error)
	Close() error
}

// LaunchFunc launches a fresh browser session for one attempt. Each retry
// gets its own launch; the previous session is always closed first.
type LaunchFunc func(cfg browser.Config) (Session, error)

// Options is the fixed configuration set for one extraction run. DarkMode
// and Mobile are handed to the browser as pre-navigation emulation; they are
// never retried separately.
type Options struct {
	Timeout   time.Duration // navigation timeout budget per attempt
	DarkMode  bool
	Mobile    bool
	Slow      bool // multiplies every internal wait constant by 3
	ShowUI    bool // start visible, skipping the headless attempt
	NoSandbox bool
	ProxyURL  string
	Weights   score.Weights
}

const (
	defaultTimeout = 30 * time.Second
	settleWindow   = 500 * time.Millisecond
	slowMultiplier = 3
)

// Variables so tests can shrink the waits.
var (
	hydrationWait     = 1500 * time.Millisecond
	stabilizationWait = 800 * time.Millisecond
)

// Extractor drives navigation and recovery and composes the per-category
// collectors into one extraction pass.
type Extractor struct {
	launch LaunchFunc
	opts   Options
	scorer *score.Scorer
}

// New creates an Extractor. A zero Timeout falls back to 30s.
func New(launch LaunchFunc, opts Options) *Extractor {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Extractor{launch: launch, opts: opts, scorer: score.New(opts.Weights)}
}

func (e *Extractor) multiplier() time.Duration {
	if e.opts.Slow {
		return slowMultiplier
	}
	return 1
}

// Extract runs the full pass against rawURL. The retry machine has exactly
// two states: a headless attempt, then at most one visible-window attempt
// taken only when the headless failure was navigation/timeout-class. Any
// other failure propagates immediately, and a visible-attempt failure is
// terminal.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*tokens.ExtractionResult, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	modes := []Mode{ModeHeadless, ModeVisible}
	if e.opts.ShowUI {
		modes = []Mode{ModeVisible}
	}

	var lastErr error
	for i, mode := range modes {
		if i > 0 {
			fmt.Fprintf(os.Stderr, "Warning: headless attempt failed: %v\n", lastErr)
			fmt.Fprintf(os.Stderr, "Retrying with a visible browser window\n")
		}
		result, err := e.attempt(ctx, rawURL, mode)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !navigationClass(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

// attempt runs one full extraction against a fresh browser. The session is
// closed before attempt returns, so a retry never shares browser state with
// a failed attempt.
func (e *Extractor) attempt(ctx context.Context, target string, mode Mode) (*tokens.ExtractionResult, error) {
	sess, err := e.launch(browser.Config{
		Headless:  mode == ModeHeadless,
		NoSandbox: e.opts.NoSandbox,
		ProxyURL:  e.opts.ProxyURL,
		DarkMode:  e.opts.DarkMode,
		Mobile:    e.opts.Mobile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser (%s mode): %w", mode, err)
	}
	defer sess.Close()

	mult := e.multiplier()
	if err := sess.Navigate(ctx, target, e.opts.Timeout*mult, settleWindow*mult); err != nil {
		if navigationClass(err) {
			return nil, &NavigationError{URL: target, Mode: mode, Err: err}
		}
		return nil, fmt.Errorf("failed to load %s (%s mode): %w", target, mode, err)
	}

	// Hydration then stabilization: let client-rendered content finish
	// mounting before sampling computed styles.
	sleep(ctx, hydrationWait*mult)
	sleep(ctx, stabilizationWait*mult)

	raw, errs := e.collect(ctx, sess)
	if ctx.Err() != nil {
		// The overall budget expired mid-collection; that is a
		// timeout-class failure of the attempt, not a category failure.
		return nil, &NavigationError{URL: target, Mode: mode, Err: ctx.Err()}
	}
	for _, cerr := range errs {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", cerr)
	}

	// Static markup pass supplements the computed-style walk. Losing it only
	// costs the extra signals.
	if html, herr := sess.HTML(ctx); herr == nil {
		if static, serr := collector.FromHTML(html, target); serr == nil {
			raw.Merge(static)
		}
	}

	return e.assemble(target, raw), nil
}

// collect fans out every registered category against the same loaded page and
// joins on full settlement. Categories are independent read-only passes: one
// failing never cancels its siblings, and its error is reported per category.
func (e *Extractor) collect(ctx context.Context, page collector.Evaluator) (*collector.Raw, []error) {
	cats := collector.Categories()

	type outcome struct {
		raw *collector.Raw
		err error
	}
	outcomes := make([]outcome, len(cats))

	var wg sync.WaitGroup
	for i, cat := range cats {
		wg.Add(1)
		go func(i int, cat collector.Category) {
			defer wg.Done()
			raw, err := collector.Collect(ctx, page, cat)
			if err != nil {
				err = &EvaluationError{Category: cat, Err: err}
			}
			outcomes[i] = outcome{raw: raw, err: err}
		}(i, cat)
	}
	wg.Wait()

	merged := &collector.Raw{}
	var errs []error
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		merged.Merge(o.raw)
	}
	return merged, errs
}

// assemble is the pure merge of per-category outputs into the final record.
// No further scoring or filtering happens here; categories that produced
// nothing stay nil and are omitted from serialized output.
func (e *Extractor) assemble(target string, raw *collector.Raw) *tokens.ExtractionResult {
	return &tokens.ExtractionResult{
		URL:          target,
		ExtractedAt:  time.Now().UTC(),
		Logo:         aggregate.Logo(raw.Logos),
		Colors:       aggregate.Colors(raw.Colors, e.scorer),
		Typography:   aggregate.Typography(raw.Typography, e.scorer),
		Spacing:      aggregate.Spacing(raw.Spacing, e.scorer),
		BorderRadius: aggregate.Radius(raw.Radius, e.scorer),
		Borders:      aggregate.Borders(raw.Borders, e.scorer),
		Shadows:      aggregate.Shadows(raw.Shadows, e.scorer),
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigurationError{Reason: fmt.Sprintf("invalid URL %q: %v", raw, err)}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigurationError{Reason: fmt.Sprintf("unsupported URL scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &ConfigurationError{Reason: fmt.Sprintf("URL %q has no host", raw)}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
