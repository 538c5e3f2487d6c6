package engine

import (
	"context"
	"log/slog"
	"sync/atomic"

	"LocalAnnotate/internal/state"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by the engine. By default the engine is
// silent; pass nil to silence it again. Records carry a session attribute
// with [state.SessionID].
//
// Levels used:
//   - [slog.LevelDebug]: stroke start/end, undo, frame paints
//   - [slog.LevelInfo]: mode transitions, resets
//   - [slog.LevelWarn]: a notification subscriber panicked
func SetLogger(l *slog.Logger) {
	if l == nil {
		loggerPtr.Store(slog.New(nopHandler{}))
		return
	}
	loggerPtr.Store(l.With(slog.String("session", state.SessionID)))
}

// Logger returns the engine logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
