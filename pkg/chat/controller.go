// Package chat implements the send pipeline that sits between the view and
// the conversation store.
//
// The controller is either Idle or Sending. Submitting text while Idle
// appends the user turn, returns a Request pinned to the conversation that was
// active at submission time, and moves to Sending. Resolving that request
// appends the assistant turn to the pinned conversation, wherever the user
// has navigated since, and moves back to Idle. At most one request is
// outstanding.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-go-golems/chatbox/pkg/conversation"
	"github.com/go-go-golems/chatbox/pkg/events"
	"github.com/go-go-golems/chatbox/pkg/responder"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
)

var (
	ErrEmptySubmission = errors.New("empty submission")
	ErrResponsePending = errors.New("a response is already pending")
	ErrUnknownRequest  = errors.New("response does not match the pending request")
)

const failedReplyPrefix = "Sorry, something went wrong: "

// Request is an outstanding responder call.
type Request struct {
	ID             uint64
	ConversationID string
	Text           string
}

// Run calls r with the submitted text only.
func (req *Request) Run(ctx context.Context, r responder.Responder) Response {
	reply, err := r.Respond(ctx, req.Text)
	return Response{
		RequestID:      req.ID,
		ConversationID: req.ConversationID,
		Reply:          reply,
		Err:            err,
	}
}

type Response struct {
	RequestID      uint64
	ConversationID string
	Reply          string
	Err            error
}

// ViewState is an immutable picture of everything the view renders.
type ViewState struct {
	Snapshot *conversation.Snapshot
	Sending  bool
	Draft    string
}

type Controller struct {
	mu      sync.Mutex
	store   *conversation.Store
	sink    events.EventSink
	state   State
	draft   string
	pending *Request
	nextID  uint64
}

type ControllerOption func(*Controller)

func WithEventSink(sink events.EventSink) ControllerOption {
	return func(c *Controller) {
		c.sink = sink
	}
}

func NewController(store *conversation.Store, options ...ControllerOption) *Controller {
	ret := &Controller{
		store: store,
		sink:  events.NullSink{},
		state: StateIdle,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

func (c *Controller) Store() *conversation.Store {
	return c.store
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) IsSending() bool {
	return c.State() == StateSending
}

func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Pending returns the outstanding request while Sending.
func (c *Controller) Pending() (*Request, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil, false
	}
	req := *c.pending
	return &req, true
}

// Submit appends text as a user turn and enters Sending. The returned request
// must be run and its response passed to Resolve.
func (c *Controller) Submit(text string) (*Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySubmission
	}
	if c.state == StateSending {
		return nil, ErrResponsePending
	}

	hadActive := false
	if _, ok := c.store.Active(); ok {
		hadActive = true
	}
	conversationID := c.store.EnsureActive()
	if !hadActive {
		events.PublishBlind(c.sink, events.NewEvent(events.EventTypeConversationCreated, conversationID))
	}

	msg := conversation.NewUserMessage(text)
	if err := c.store.Append(conversationID, msg); err != nil {
		return nil, err
	}
	c.publishAppended(conversationID, msg)

	c.draft = ""
	c.nextID++
	c.pending = &Request{
		ID:             c.nextID,
		ConversationID: conversationID,
		Text:           text,
	}
	c.state = StateSending

	events.PublishBlind(c.sink, events.NewEvent(events.EventTypeResponseStarted, conversationID))
	log.Debug().
		Str("conversation_id", conversationID).
		Uint64("request_id", c.nextID).
		Msg("Submitted user message")

	req := *c.pending
	return &req, nil
}

func (c *Controller) SubmitDraft() (*Request, error) {
	return c.Submit(c.Draft())
}

// PickSuggestion submits a suggestion prompt as if it had been typed.
func (c *Controller) PickSuggestion(prompt string) (*Request, error) {
	return c.Submit(prompt)
}

// Resolve appends the outcome of the pending request to the conversation it
// was submitted to and returns to Idle. A failed response is recorded as an
// assistant notice. Resolve always leaves Sending for the matching request,
// even when the target conversation has been deleted in the meantime.
func (c *Controller) Resolve(resp Response) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil || c.pending.ID != resp.RequestID {
		log.Warn().Uint64("request_id", resp.RequestID).Msg("Ignoring stale response")
		return ErrUnknownRequest
	}
	conversationID := c.pending.ConversationID
	c.pending = nil
	c.state = StateIdle

	var msg conversation.Message
	if resp.Err != nil {
		log.Error().Err(resp.Err).Str("conversation_id", conversationID).Msg("Responder failed")
		msg = conversation.NewAssistantMessage(
			fmt.Sprintf("%s%s", failedReplyPrefix, resp.Err.Error()),
			conversation.WithFailed(),
		)
	} else {
		msg = conversation.NewAssistantMessage(resp.Reply)
	}

	if err := c.store.Append(conversationID, msg); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("Dropping reply for missing conversation")
		return err
	}
	c.publishAppended(conversationID, msg)

	e := events.NewEvent(events.EventTypeResponseFinished, conversationID)
	e.MessageID = msg.ID
	if resp.Err != nil {
		e.Type = events.EventTypeResponseFailed
		e.Error = resp.Err.Error()
	}
	events.PublishBlind(c.sink, e)

	return nil
}

// Send submits text, runs the responder synchronously and resolves. It is
// meant for callers without an event loop of their own.
func (c *Controller) Send(ctx context.Context, r responder.Responder, text string) (Response, error) {
	req, err := c.Submit(text)
	if err != nil {
		return Response{}, err
	}
	resp := req.Run(ctx, r)
	if err := c.Resolve(resp); err != nil {
		return resp, err
	}
	return resp, nil
}

func (c *Controller) ViewState() ViewState {
	snapshot := c.store.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()
	return ViewState{
		Snapshot: snapshot,
		Sending:  c.state == StateSending,
		Draft:    c.draft,
	}
}

func (c *Controller) publishAppended(conversationID string, msg conversation.Message) {
	e := events.NewEvent(events.EventTypeMessageAppended, conversationID)
	e.MessageID = msg.ID
	e.Role = string(msg.Role)
	e.Text = msg.Content
	events.PublishBlind(c.sink, e)
}
