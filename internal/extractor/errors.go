package extractor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dtex/internal/collector"
)

// Mode names a browser attempt state in the retry machine.
type Mode string

const (
	ModeHeadless Mode = "headless"
	ModeVisible  Mode = "visible"
)

// NavigationError marks a timeout or network-level failure reaching the
// target. It is the only error class that triggers the headless→visible
// retry; everything else propagates immediately.
type NavigationError struct {
	URL  string
	Mode Mode
	Err  error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation failed for %s (%s mode): %v", e.URL, e.Mode, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// EvaluationError marks one category's in-page collection failing. It is
// recovered locally: the category is omitted from the result and extraction
// continues.
type EvaluationError struct {
	Category collector.Category
	Err      error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("%s collection failed: %v", e.Category, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// ConfigurationError marks an invalid URL or option combination. Fatal
// immediately, never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

// navigationClass reports whether err belongs to the timeout/network class —
// the failures that sometimes relax when no headless signal is present.
func navigationClass(err error) bool {
	if err == nil {
		return false
	}
	var ne *NavigationError
	if errors.As(err, &ne) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"net::err", "timeout", "timed out",
		"connection refused", "connection reset", "no such host", "dns",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
