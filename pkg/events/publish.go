package events

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog/log"
)

const TopicChat = "chat"

// WatermillSink publishes events as JSON to a topic, stamping each message
// with a sequence number in publish order.
type WatermillSink struct {
	publisher      message.Publisher
	topic          string
	sequenceNumber uint64
	mutex          sync.Mutex
}

var _ EventSink = (*WatermillSink)(nil)

func NewWatermillSink(publisher message.Publisher, topic string) *WatermillSink {
	return &WatermillSink{
		publisher: publisher,
		topic:     topic,
	}
}

func (s *WatermillSink) PublishEvent(e Event) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), b)
	msg.Metadata.Set("sequence_number", fmt.Sprintf("%d", s.sequenceNumber))
	msg.Metadata.Set("event_type", string(e.Type))
	s.sequenceNumber++

	return s.publisher.Publish(s.topic, msg)
}

// PublishBlind publishes and logs failures instead of returning them.
func PublishBlind(sink EventSink, e Event) {
	if sink == nil {
		return
	}
	if err := sink.PublishEvent(e); err != nil {
		log.Warn().Err(err).Str("event_type", string(e.Type)).Msg("failed to publish")
	}
}
