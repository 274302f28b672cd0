package events

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog/log"
)

// HandlerFunc adapts a typed event callback to a watermill handler. Messages
// that do not decode are logged and dropped.
func HandlerFunc(f func(e *Event)) func(msg *message.Message) error {
	return func(msg *message.Message) error {
		e, err := NewEventFromJson(msg.Payload)
		if err != nil {
			log.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed event")
			return nil
		}
		f(e)
		return nil
	}
}

// LogHandler writes every event to the global logger.
func LogHandler(msg *message.Message) error {
	return HandlerFunc(func(e *Event) {
		l := log.Debug()
		if e.Type == EventTypeResponseFailed {
			l = log.Warn()
		}
		l.Str("event_type", string(e.Type)).
			Str("conversation_id", e.ConversationID).
			Str("message_id", e.MessageID).
			Str("role", e.Role).
			Str("sequence_number", msg.Metadata.Get("sequence_number")).
			Str("error", e.Error).
			Msg("chat event")
	})(msg)
}
