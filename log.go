package grid

import (
	"log/slog"
	"os"
)

// gridLogLevel controls the log level for grid debug logging.
// Default is LevelInfo, which suppresses Debug messages.
// SetVerbose(true) sets it to LevelDebug.
var gridLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging.
// Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		gridLogLevel.Set(slog.LevelDebug)
	} else {
		gridLogLevel.Set(slog.LevelInfo)
	}
}

// gridVerbose returns true if debug logging is enabled.
func gridVerbose() bool {
	return gridLogLevel.Level() <= slog.LevelDebug
}

// gridLogger is the package logger. Layout and paint recoveries log at
// Debug, source write-back failures at Warn.
var gridLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: gridLogLevel}))
