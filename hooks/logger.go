package hooks

import (
	"context"
	"log/slog"
	"time"
)

// LoggerHook implements lifecycle logging
type LoggerHook struct {
	logger        *slog.Logger
	logAll        bool
	slowThreshold time.Duration
}

// NewLoggerHook creates a new logger hook
func NewLoggerHook(logger *slog.Logger, logAll bool, slowThreshold time.Duration) *LoggerHook {
	return &LoggerHook{
		logger:        logger,
		logAll:        logAll,
		slowThreshold: slowThreshold,
	}
}

// BeforeConn is called before a lifecycle operation starts
func (h *LoggerHook) BeforeConn(ctx context.Context, event *ConnEvent) context.Context {
	return ctx
}

// AfterConn is called after a lifecycle operation finishes
func (h *LoggerHook) AfterConn(ctx context.Context, event *ConnEvent) {
	duration := time.Since(event.StartTime)
	slow := event.Op == OpConnect && h.slowThreshold > 0 && duration >= h.slowThreshold

	// Skip if not logging all and neither slow nor failed
	if !h.logAll && !slow && event.Err == nil {
		return
	}

	attrs := []slog.Attr{
		slog.Duration("duration", duration),
		slog.String("operation", event.Op),
	}
	if event.Target != "" {
		attrs = append(attrs, slog.String("target", event.Target))
	}

	switch {
	case event.Err != nil:
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		h.logger.LogAttrs(ctx, slog.LevelError, "database "+event.Op+" failed", attrs...)
	case slow:
		h.logger.LogAttrs(ctx, slog.LevelWarn, "slow database connect", attrs...)
	default:
		h.logger.LogAttrs(ctx, slog.LevelDebug, "database "+event.Op, attrs...)
	}
}
