package tracking

import (
	"fmt"
	"strings"
)

// DefaultCookieDomain is the cookie domain used when none is configured.
const DefaultCookieDomain = "auto"

// LogLevel selects client-side gtag debug output.
type LogLevel string

const (
	LogNone  LogLevel = "none"
	LogDebug LogLevel = "debug"
	LogTrace LogLevel = "trace"
)

// apply sets the debug fields for the level. Trace includes debug.
func (l LogLevel) apply(c *Configuration) {
	switch l {
	case LogDebug:
		c.SetDebugField("debug_mode", true)
	case LogTrace:
		LogDebug.apply(c)
		c.SetDebugField("trace", true)
	}
}

// ParseLogLevel parses a level name. The empty string is returned as-is so
// callers can apply their own default.
func ParseLogLevel(s string) (LogLevel, error) {
	switch l := LogLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case "", LogNone, LogDebug, LogTrace:
		return l, nil
	default:
		return "", fmt.Errorf("unknown log level %q (want none|debug|trace)", s)
	}
}

// SendMode decides whether hits are actually sent to Google Analytics.
type SendMode string

const (
	SendAlways     SendMode = "always"
	SendProduction SendMode = "production"
	SendNever      SendMode = "never"
)

// ShouldSend reports whether hits are sent for the given production flag.
// Unknown modes behave like SendProduction.
func (m SendMode) ShouldSend(production bool) bool {
	switch m {
	case SendAlways:
		return true
	case SendNever:
		return false
	default:
		return production
	}
}

// ParseSendMode parses a send mode name; empty is returned as-is.
func ParseSendMode(s string) (SendMode, error) {
	switch m := SendMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", SendAlways, SendProduction, SendNever:
		return m, nil
	default:
		return "", fmt.Errorf("unknown send mode %q (want always|production|never)", s)
	}
}

// Settings is the declarative configuration attached to a root layout.
// Zero values mean defaults: cookie domain "auto", no production logging,
// debug logging outside production, send only in production, no prefix.
type Settings struct {
	TrackingID        string
	CookieDomain      string
	ProductionLogging LogLevel
	DevLogging        LogLevel
	SendMode          SendMode
	PageViewPrefix    string
}

// withDefaults returns a copy with every unset field defaulted.
func (s Settings) withDefaults() Settings {
	if s.CookieDomain == "" {
		s.CookieDomain = DefaultCookieDomain
	}
	if s.ProductionLogging == "" {
		s.ProductionLogging = LogNone
	}
	if s.DevLogging == "" {
		s.DevLogging = LogDebug
	}
	if s.SendMode == "" {
		s.SendMode = SendProduction
	}
	return s
}

// defaultLogLevel mirrors the Settings defaults for layouts that only have a
// programmatic configurator.
func defaultLogLevel(production bool) LogLevel {
	if production {
		return LogNone
	}
	return LogDebug
}
