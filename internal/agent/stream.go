package agent

// EventType tags a stream event.
type EventType string

const (
	// EventMetadata opens every stream, before any model output.
	EventMetadata EventType = "metadata"
	// EventToken carries one incremental text delta.
	EventToken EventType = "token"
	// EventDone terminates a successful stream.
	EventDone EventType = "done"
	// EventError terminates a failed stream; no done follows.
	EventError EventType = "error"
)

// Event is one wire-level stream event. The union is encoded as a single
// struct: CTA is set only on metadata (a pointer so false still serializes),
// Value only on token, Message only on error.
type Event struct {
	Type    EventType `json:"type"`
	CTA     *bool     `json:"cta,omitempty"`
	Value   string    `json:"value,omitempty"`
	Message string    `json:"message,omitempty"`
}

// MetadataEvent builds the opening event. cta tells the client to render the
// WhatsApp call-to-action alongside the reply.
func MetadataEvent(cta bool) Event {
	return Event{Type: EventMetadata, CTA: &cta}
}

// TokenEvent carries exactly one delta; prior text is never re-sent.
func TokenEvent(delta string) Event {
	return Event{Type: EventToken, Value: delta}
}

// DoneEvent terminates a successful stream.
func DoneEvent() Event {
	return Event{Type: EventDone}
}

// ErrorEvent terminates a failed stream.
func ErrorEvent(msg string) Event {
	return Event{Type: EventError, Message: msg}
}
