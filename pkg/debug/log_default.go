//go:build !(js && wasm)
// +build !js !wasm

package debug

import (
	"fmt"
	"log/slog"

	"github.com/solstice-ui/vdom/pkg/reactive"
	"github.com/solstice-ui/vdom/pkg/scheduler"
)

// Logger is the slog.Logger every non-browser build logs through. It
// defaults to slog.Default() so callers that never touch this package
// still get structured output on stderr.
var Logger = slog.Default()

// EnableLogging wires scheduler and reactive debug traces through
// Logger at debug level.
func EnableLogging() {
	logFn := func(args ...interface{}) {
		Logger.Debug(fmt.Sprint(args...))
	}

	scheduler.SetDebugLog(logFn)
	reactive.SetDebugLog(logFn)
}

// Log logs args at debug level.
func Log(args ...interface{}) {
	Logger.Debug(fmt.Sprint(args...))
}

// Logf logs a formatted message at debug level.
func Logf(format string, args ...interface{}) {
	Logger.Debug(fmt.Sprintf(format, args...))
}
