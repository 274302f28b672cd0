package chat

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/go-go-golems/chatbox/pkg/conversation"
	"github.com/go-go-golems/chatbox/pkg/events"
	"github.com/go-go-golems/chatbox/pkg/responder"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingSink) PublishEvent(e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSink) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := []events.EventType{}
	for _, e := range r.events {
		ret = append(ret, e.Type)
	}
	return ret
}

func echo(reply string) responder.Responder {
	return responder.Func(func(ctx context.Context, text string) (string, error) {
		return reply, nil
	})
}

func TestSubmitAppendsUserMessageAndEntersSending(t *testing.T) {
	for _, text := range []string{"hi", "  padded  ", "multi\nline"} {
		c := NewController(conversation.NewStore())

		req, err := c.Submit(text)
		require.NoError(t, err)
		assert.Equal(t, StateSending, c.State())
		assert.Equal(t, text, req.Text)

		conv, ok := c.Store().Get(req.ConversationID)
		require.True(t, ok)
		require.Len(t, conv.Messages, 1)
		assert.Equal(t, text, conv.Messages[0].Content)
		assert.Equal(t, conversation.RoleUser, conv.Messages[0].Role)
	}
}

func TestEmptySubmissionIsIgnored(t *testing.T) {
	c := NewController(conversation.NewStore())
	c.SetDraft("   ")

	for _, text := range []string{"", "   ", "\t\n"} {
		req, err := c.Submit(text)
		assert.Nil(t, req)
		assert.True(t, errors.Is(err, ErrEmptySubmission))
	}
	_, err := c.SubmitDraft()
	assert.True(t, errors.Is(err, ErrEmptySubmission))

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0, c.Store().Len())
	assert.Equal(t, "   ", c.Draft())
}

func TestEndToEndFromEmptyStore(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(conversation.NewStore(), WithEventSink(sink))
	c.SetDraft("Tell me about Next.js")

	req, err := c.SubmitDraft()
	require.NoError(t, err)
	assert.Equal(t, "", c.Draft())
	assert.True(t, c.IsSending())

	store := c.Store()
	require.Equal(t, 1, store.Len())
	conv, _ := store.Get(req.ConversationID)
	assert.Equal(t, "Tell me about Next.js", conv.Title)
	require.Len(t, conv.Messages, 1)

	resp := req.Run(context.Background(), echo("R"))
	require.NoError(t, c.Resolve(resp))
	assert.Equal(t, StateIdle, c.State())

	conv, _ = store.Get(req.ConversationID)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, conversation.RoleAssistant, conv.Messages[1].Role)
	assert.Equal(t, "R", conv.Messages[1].Content)
	assert.False(t, conv.Messages[1].Failed)
	assert.Equal(t, "Tell me about Next.js", conv.Title)

	assert.Equal(t, []events.EventType{
		events.EventTypeConversationCreated,
		events.EventTypeMessageAppended,
		events.EventTypeResponseStarted,
		events.EventTypeMessageAppended,
		events.EventTypeResponseFinished,
	}, sink.types())
}

func TestSubmitWhileSendingIsRejected(t *testing.T) {
	c := NewController(conversation.NewStore())
	req, err := c.Submit("first")
	require.NoError(t, err)

	_, err = c.Submit("second")
	assert.True(t, errors.Is(err, ErrResponsePending))
	_, err = c.PickSuggestion(DefaultSuggestions[0].Prompt)
	assert.True(t, errors.Is(err, ErrResponsePending))

	conv, _ := c.Store().Get(req.ConversationID)
	assert.Len(t, conv.Messages, 1)

	require.NoError(t, c.Resolve(req.Run(context.Background(), echo("ok"))))
	_, err = c.Submit("second")
	assert.NoError(t, err)
}

func TestSubmitUsesActiveConversation(t *testing.T) {
	c := NewController(conversation.NewStore())
	id := c.Store().Create()

	req, err := c.Submit("hello")
	require.NoError(t, err)
	assert.Equal(t, id, req.ConversationID)
	assert.Equal(t, 1, c.Store().Len())
}

func TestReplyLandsInPinnedConversation(t *testing.T) {
	c := NewController(conversation.NewStore())
	req, err := c.Submit("question")
	require.NoError(t, err)

	other := c.Store().Create()
	active, _ := c.Store().Active()
	require.Equal(t, other, active)

	require.NoError(t, c.Resolve(req.Run(context.Background(), echo("answer"))))

	pinned, _ := c.Store().Get(req.ConversationID)
	require.Len(t, pinned.Messages, 2)
	assert.Equal(t, "answer", pinned.Messages[1].Content)

	switched, _ := c.Store().Get(other)
	assert.Empty(t, switched.Messages)
}

func TestResolveAfterPinnedConversationDeleted(t *testing.T) {
	c := NewController(conversation.NewStore())
	req, err := c.Submit("question")
	require.NoError(t, err)
	require.NoError(t, c.Store().Delete(req.ConversationID))

	err = c.Resolve(req.Run(context.Background(), echo("answer")))
	assert.True(t, errors.Is(err, conversation.ErrConversationNotFound))
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, 0, c.Store().Len())
}

func TestResponderFailureAppendsNotice(t *testing.T) {
	sink := &recordingSink{}
	c := NewController(conversation.NewStore(), WithEventSink(sink))
	failing := responder.Func(func(ctx context.Context, text string) (string, error) {
		return "", errors.New("backend unavailable")
	})

	resp, err := c.Send(context.Background(), failing, "hello")
	require.NoError(t, err)
	assert.Error(t, resp.Err)
	assert.Equal(t, StateIdle, c.State())

	conv, _ := c.Store().ActiveConversation()
	require.Len(t, conv.Messages, 2)
	last := conv.Messages[1]
	assert.True(t, last.Failed)
	assert.Equal(t, conversation.RoleAssistant, last.Role)
	assert.True(t, strings.HasSuffix(last.Content, "backend unavailable"))

	types := sink.types()
	assert.Equal(t, events.EventTypeResponseFailed, types[len(types)-1])
}

func TestStaleResponseIsIgnored(t *testing.T) {
	c := NewController(conversation.NewStore())
	req, err := c.Submit("first")
	require.NoError(t, err)
	resp := req.Run(context.Background(), echo("one"))
	require.NoError(t, c.Resolve(resp))

	assert.True(t, errors.Is(c.Resolve(resp), ErrUnknownRequest))
	conv, _ := c.Store().Get(req.ConversationID)
	assert.Len(t, conv.Messages, 2)
}

func TestResponderSeesOnlySubmittedText(t *testing.T) {
	c := NewController(conversation.NewStore())
	var seen []string
	r := responder.Func(func(ctx context.Context, text string) (string, error) {
		seen = append(seen, text)
		return "ok", nil
	})

	_, err := c.Send(context.Background(), r, "first")
	require.NoError(t, err)
	_, err = c.Send(context.Background(), r, "second")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, seen)
}

func TestPickSuggestionGoesThroughSubmit(t *testing.T) {
	c := NewController(conversation.NewStore())
	s := DefaultSuggestions[1]

	req, err := c.PickSuggestion(s.Prompt)
	require.NoError(t, err)
	assert.Equal(t, s.Prompt, req.Text)

	conv, _ := c.Store().Get(req.ConversationID)
	assert.Equal(t, "Write code to demonstrate Dijkstra's algorithm...", conv.Title)
}

func TestPendingAndViewState(t *testing.T) {
	c := NewController(conversation.NewStore())
	_, ok := c.Pending()
	assert.False(t, ok)

	c.SetDraft("draft")
	vs := c.ViewState()
	assert.False(t, vs.Sending)
	assert.Equal(t, "draft", vs.Draft)
	assert.Empty(t, vs.Snapshot.Conversations)

	req, err := c.Submit("hello")
	require.NoError(t, err)
	pending, ok := c.Pending()
	require.True(t, ok)
	assert.Equal(t, req.ID, pending.ID)

	vs = c.ViewState()
	assert.True(t, vs.Sending)
	assert.Equal(t, "", vs.Draft)
	assert.Equal(t, req.ConversationID, vs.Snapshot.ActiveID)
}
