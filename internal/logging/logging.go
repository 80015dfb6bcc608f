// Package logging wires the shared structured logger every component logs
// through, plus the warning-log rate limiter that throttles noisy per-file
// skip/error log lines without ever affecting the scan itself.
package logging

import (
	"context"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"
)

// New builds the process-wide logger. It always writes to stderr so a
// piped envelope on stdout is never corrupted by a log line.
func New(level slog.Level, scanID string) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("scanId", scanID)
}

// ParseLevel maps the --log-level flag value to a slog.Level, defaulting to
// Info for an unrecognized value.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WarnLimiter throttles warning-level log emission for high-volume,
// low-value events (a build directory full of permission errors, a tree
// full of binary files). It wraps rate.Limiter the way the reference
// project's own util.Limiter does, but is scoped to logging only: the
// caller always performs the underlying skip/error regardless of whether
// Allow returns true.
type WarnLimiter struct {
	inner *rate.Limiter
}

// NewWarnLimiter builds a token-bucket limiter: r warnings/second, burst b.
func NewWarnLimiter(r float64, b int) *WarnLimiter {
	return &WarnLimiter{inner: rate.NewLimiter(rate.Limit(r), b)}
}

// Allow reports whether one more warning log line may be emitted right now.
func (l *WarnLimiter) Allow() bool {
	return l.inner.AllowN(time.Now(), 1)
}

// Wait blocks until a warning log line may be emitted, bounded by ctx. No
// code in this module calls it; the content processor uses Allow, which
// drops a line instead of waiting.
func (l *WarnLimiter) Wait(ctx context.Context) error {
	return l.inner.Wait(ctx)
}
