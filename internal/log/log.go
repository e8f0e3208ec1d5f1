// Package log provides a component-scoped slog.Logger, grounded on the
// log.WithComponent helper referenced throughout senechal-gw's
// internal/dispatch/dispatcher.go (log.WithComponent("dispatch")).
package log

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu   sync.Mutex
	base = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

// SetBase replaces the root logger that later WithComponent calls derive
// from, letting cmd/ircbot install a JSON handler, a different level, or
// a different writer at startup. Loggers already returned by
// WithComponent (including package-level ones created at init) keep the
// base they were created from.
func SetBase(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
}

// WithComponent returns a logger tagged with "component", mirroring the
// per-subsystem loggers (dispatch, privilege, scheduler...) attached by
// the dispatcher in its constructor.
func WithComponent(name string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base.With("component", name)
}
