package xlog

import (
	"context"
	"log/slog"
)

// Disabled discards every record. Used when no logger is injected.
var Disabled = slog.New(DisabledHandler{})

type DisabledHandler struct{}

func (d DisabledHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (d DisabledHandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (d DisabledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return d
}

func (d DisabledHandler) WithGroup(name string) slog.Handler {
	return d
}

// OrDisabled returns logger, or Disabled when logger is nil
func OrDisabled(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Disabled
	}
	return logger
}
