// Package logging wraps log/slog with the small set of helpers the rest of
// this module needs: a default-logger setup for the demo binary and a
// guarded debug trace for the fsm package's state-transition log.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sm0svx/asynccore"
)

// Setup installs a slog default logger at the given level ("debug", "info",
// "warn", "error"), text or JSON handler depending on json.
func Setup(level string, json bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// StateMachineDebug reports whether fsm state-transition tracing is
// enabled, mirroring the original's compile-time ASYNC_STATE_MACHINE_DEBUG.
func StateMachineDebug() bool {
	return asynccore.StateMachineDebug
}

// Debugf logs a formatted trace line at slog.LevelDebug. Callers are
// expected to guard it with StateMachineDebug() so the Sprintf only runs
// when tracing is actually on.
func Debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...))
}
