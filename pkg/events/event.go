package events

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

type EventType string

const (
	EventTypeConversationCreated EventType = "conversation-created"
	EventTypeMessageAppended     EventType = "message-appended"
	EventTypeResponseStarted     EventType = "response-started"
	EventTypeResponseFinished    EventType = "response-finished"
	EventTypeResponseFailed      EventType = "response-failed"
)

// Event describes a single transition of the send pipeline.
type Event struct {
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id"`
	MessageID      string    `json:"message_id,omitempty"`
	Role           string    `json:"role,omitempty"`
	Text           string    `json:"text,omitempty"`
	Error          string    `json:"error,omitempty"`
	Time           time.Time `json:"time"`
}

func NewEvent(type_ EventType, conversationID string) Event {
	return Event{
		Type:           type_,
		ConversationID: conversationID,
		Time:           time.Now(),
	}
}

func NewEventFromJson(b []byte) (*Event, error) {
	e := &Event{}
	if err := json.Unmarshal(b, e); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal event")
	}
	if e.Type == "" {
		return nil, errors.New("event has no type")
	}
	return e, nil
}

// EventSink receives pipeline events. Implementations must not block for long,
// the pipeline publishes from the UI loop.
type EventSink interface {
	PublishEvent(e Event) error
}

type NullSink struct{}

func (NullSink) PublishEvent(Event) error {
	return nil
}

var _ EventSink = NullSink{}
