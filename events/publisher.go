package events

// Publisher is an interface for async events.
type Publisher interface {
	Publish(e Event)
}

// NullPublisher discards all events. Used when no event queue is configured,
// and in tests that do not care about the stream.
type NullPublisher struct{}

// Publish for NullPublisher does nothing.
func (NullPublisher) Publish(e Event) {}
