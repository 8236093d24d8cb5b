package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event names emitted during a scan.
const (
	ScanFile     = "event:scan:file"
	GenerateTask = "event:generate:task"
	GenerateDone = "event:generate:done"
)

// Event is a simple struct representing a scan lifecycle payload.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	File      string            `json:"file,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const fileContextKey contextKey = "docstitch/events/file"

// WithFile returns a derived context annotated with the file being processed
// so event emitters can automatically scope payloads.
func WithFile(ctx context.Context, file string) context.Context {
	if strings.TrimSpace(file) == "" {
		return ctx
	}
	return context.WithValue(ctx, fileContextKey, file)
}

// FileFromContext extracts the file path associated with ctx.
func FileFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(fileContextKey).(string); ok {
		return v
	}
	return ""
}

func newEvent(eventType EventType, message string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info Event.
func NewInfo(message string) Event {
	return newEvent(EventInfo, message)
}

// NewWarn creates a warn Event.
func NewWarn(message string) Event {
	return newEvent(EventWarn, message)
}

// NewError creates an error Event.
func NewError(message string) Event {
	return newEvent(EventError, message)
}

// NewSuccess creates a success Event.
func NewSuccess(message string) Event {
	return newEvent(EventSuccess, message)
}
