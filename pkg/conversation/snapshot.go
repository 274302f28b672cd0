package conversation

import (
	"github.com/huandu/go-clone"
)

// Snapshot is a detached copy of the store state for rendering.
type Snapshot struct {
	Conversations []Conversation `json:"conversations"`
	ActiveID      string         `json:"activeId,omitempty"`
}

func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ret := &Snapshot{
		Conversations: make([]Conversation, 0, len(s.conversations)),
		ActiveID:      s.activeID,
	}
	for _, c := range s.conversations {
		ret.Conversations = append(ret.Conversations, *c)
	}
	// the slice headers above still share message arrays with the store
	return clone.Clone(ret).(*Snapshot)
}

// Active returns the active conversation of the snapshot.
func (s *Snapshot) Active() (*Conversation, bool) {
	if s == nil || s.ActiveID == "" {
		return nil, false
	}
	for i := range s.Conversations {
		if s.Conversations[i].ID == s.ActiveID {
			return &s.Conversations[i], true
		}
	}
	return nil, false
}
