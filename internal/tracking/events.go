package tracking

// Event represents a tracker lifecycle event.
type Event struct {
	Name   string
	Fields map[string]any
}

const (
	EventInitialized = "tracker_initialized"
	EventFlushed     = "commands_flushed"
	EventFlushFailed = "flush_failed"
)

// EventPublisher receives tracker events. Publish must not block or panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
