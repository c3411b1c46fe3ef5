package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes pairing events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("attempt_id", event.AttemptID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.HostID != "" {
		attrs = append(attrs, slog.String("host_id", event.HostID))
	}
	if event.Address != "" {
		attrs = append(attrs, slog.String("address", event.Address))
	}

	switch {
	case event.Request != nil:
		attrs = append(attrs,
			slog.String("endpoint", event.Request.Endpoint),
			slog.Int("params", len(event.Request.Params)),
		)
	case event.Response != nil:
		attrs = append(attrs,
			slog.Int("size", event.Response.Size),
			slog.Bool("truncated", event.Response.Truncated),
		)
		if event.Response.Outcome != "" {
			attrs = append(attrs, slog.String("outcome", event.Response.Outcome))
		}
		if event.Response.StatusCode != nil {
			attrs = append(attrs, slog.Int("status", *event.Response.StatusCode))
		}
		if event.Response.RoundTrip != nil {
			attrs = append(attrs, slog.Duration("round_trip", *event.Response.RoundTrip))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", *event.Error.Code))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "pairing", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
