package conversation

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation. Messages are stored by value
// and never edited after creation.
type Message struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Role    Role      `json:"role"`
	Time    time.Time `json:"time"`
	// Failed marks an assistant notice that stands in for a reply the responder could not produce.
	Failed bool `json:"failed,omitempty"`
}

type MessageOption func(*Message)

func WithTime(t time.Time) MessageOption {
	return func(m *Message) {
		m.Time = t
	}
}

func WithID(id string) MessageOption {
	return func(m *Message) {
		m.ID = id
	}
}

func WithFailed() MessageOption {
	return func(m *Message) {
		m.Failed = true
	}
}

func NewMessage(role Role, content string, options ...MessageOption) Message {
	ret := Message{
		ID:      uuid.NewString(),
		Content: content,
		Role:    role,
		Time:    time.Now(),
	}
	for _, option := range options {
		option(&ret)
	}
	return ret
}

func NewUserMessage(content string, options ...MessageOption) Message {
	return NewMessage(RoleUser, content, options...)
}

func NewAssistantMessage(content string, options ...MessageOption) Message {
	return NewMessage(RoleAssistant, content, options...)
}
