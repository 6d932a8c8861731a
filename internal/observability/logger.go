package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide JSON logger. Dev gets debug records;
// everything is routed through the trace handler so log lines carry span ids
// when tracing is on.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	json := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	return slog.New(NewTraceHandler(json)).With("service", "talenthub")
}
