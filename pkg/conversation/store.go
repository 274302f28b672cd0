package conversation

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store holds the ordered collection of conversations, most recent first,
// and the pointer to the active one.
type Store struct {
	mu            sync.RWMutex
	conversations []*Conversation
	activeID      string

	now   func() time.Time
	newID func() string
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

func NewStore(options ...StoreOption) *Store {
	ret := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Create inserts an empty conversation at the front and makes it active.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.create()
}

func (s *Store) create() string {
	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}

	now := s.now()
	c := &Conversation{
		ID:        id,
		Title:     DefaultTitle,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.conversations = append([]*Conversation{c}, s.conversations...)
	s.activeID = id

	log.Debug().Str("conversation_id", id).Msg("Created conversation")

	return id
}

// EnsureActive returns the active conversation id, creating a conversation
// when none is active.
func (s *Store) EnsureActive() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID != "" {
		return s.activeID
	}
	return s.create()
}

func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return notFound(id)
	}
	s.activeID = id
	return nil
}

// Delete removes a conversation. Deleting the active conversation moves the
// active pointer to the first remaining one, or clears it.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return notFound(id)
	}
	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)

	if s.activeID == id {
		s.activeID = ""
		if len(s.conversations) > 0 {
			s.activeID = s.conversations[0].ID
		}
	}

	log.Debug().
		Str("conversation_id", id).
		Str("active_id", s.activeID).
		Msg("Deleted conversation")

	return nil
}

// Rename sets the title when the trimmed title is non-empty. It reports
// whether the title was changed.
func (s *Store) Rename(id string, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.lookup(id)
	if c == nil {
		return false, notFound(id)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}
	c.Title = title
	c.touch(s.now())
	return true, nil
}

// Append adds msg to the end of the conversation. The first message appended
// to an empty conversation also sets the title.
func (s *Store) Append(id string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.lookup(id)
	if c == nil {
		return notFound(id)
	}
	if len(c.Messages) == 0 {
		if title := DeriveTitle(msg.Content); title != "" {
			c.Title = title
		}
	}
	c.Messages = append(c.Messages, msg)
	c.touch(s.now())

	log.Trace().
		Str("conversation_id", id).
		Str("message_id", msg.ID).
		Str("role", string(msg.Role)).
		Int("message_count", len(c.Messages)).
		Msg("Appended message")

	return nil
}

func (s *Store) Active() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID, s.activeID != ""
}

// Get returns a copy of the conversation.
func (s *Store) Get(id string) (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.lookup(id)
	if c == nil {
		return Conversation{}, false
	}
	return c.clone(), true
}

// ActiveConversation returns a copy of the active conversation.
func (s *Store) ActiveConversation() (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.lookup(s.activeID)
	if c == nil {
		return Conversation{}, false
	}
	return c.clone(), true
}

// List returns copies of all conversations in store order.
func (s *Store) List() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret := make([]Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		ret = append(ret, c.clone())
	}
	return ret
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.conversations {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) lookup(id string) *Conversation {
	if id == "" {
		return nil
	}
	if idx := s.indexOf(id); idx >= 0 {
		return s.conversations[idx]
	}
	return nil
}
