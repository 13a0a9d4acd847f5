package game

import (
	"log/slog"
)

// LogFrameStats logs the current rolling perf window at slog's info
// level, for a periodic "-perf" style flag in cmd/.
func (e *Engine) LogFrameStats() {
	e.PerfStats().LogStats()
}

// SetLogLevel adjusts the default slog handler's minimum level.
func SetLogLevel(level slog.Level) {
	slog.SetLogLoggerLevel(level)
}
