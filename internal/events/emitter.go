package events

import (
	"context"
	"log/slog"
)

// Emit publishes a scan event. The default emitter forwards everything to
// slog; tests and alternative front ends can swap it with SetCustomEmitter.
var Emit = func(ctx context.Context, name string, evt Event) {
	if evt.File == "" {
		evt.File = FileFromContext(ctx)
	}
	logEvent(name, evt)
}

// SetCustomEmitter replaces the emitter. Passing nil silences all events.
func SetCustomEmitter(f func(ctx context.Context, name string, evt Event)) {
	if f == nil {
		Emit = func(context.Context, string, Event) {}
		return
	}
	Emit = func(ctx context.Context, name string, evt Event) {
		if evt.File == "" {
			evt.File = FileFromContext(ctx)
		}
		f(ctx, name, evt)
	}
}

func logEvent(name string, evt Event) {
	attrs := []any{
		slog.String("event", name),
		slog.String("id", evt.ID),
	}
	if evt.File != "" {
		attrs = append(attrs, slog.String("file", evt.File))
	}
	for k, v := range evt.Metadata {
		attrs = append(attrs, slog.String(k, v))
	}

	switch evt.Type {
	case EventError:
		slog.Error(evt.Message, attrs...)
	case EventWarn:
		slog.Warn(evt.Message, attrs...)
	case EventSuccess:
		slog.Info(evt.Message, attrs...)
	default:
		slog.Debug(evt.Message, attrs...)
	}
}
