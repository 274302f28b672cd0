package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-go-golems/chatbox/pkg/chat"
	"github.com/go-go-golems/chatbox/pkg/conversation"
	"github.com/go-go-golems/chatbox/pkg/responder"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskSendsEachTextInOneConversation(t *testing.T) {
	controller := chat.NewController(conversation.NewStore())
	r := responder.Func(func(ctx context.Context, text string) (string, error) {
		return "echo: " + text, nil
	})

	err := ask(context.Background(), controller, r, []string{"first question", "  ", "second"})
	require.NoError(t, err)

	require.Equal(t, 1, controller.Store().Len())
	c, ok := controller.Store().ActiveConversation()
	require.True(t, ok)
	require.Len(t, c.Messages, 4)
	assert.Equal(t, "first question", c.Title)
	assert.Equal(t, "echo: second", c.Messages[3].Content)
	assert.False(t, controller.IsSending())
}

func TestAskKeepsGoingAfterResponderFailure(t *testing.T) {
	controller := chat.NewController(conversation.NewStore())
	calls := 0
	r := responder.Func(func(ctx context.Context, text string) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("boom")
		}
		return "ok", nil
	})

	require.NoError(t, ask(context.Background(), controller, r, []string{"a", "b"}))

	c, _ := controller.Store().ActiveConversation()
	require.Len(t, c.Messages, 4)
	assert.True(t, c.Messages[1].Failed)
	assert.Equal(t, "ok", c.Messages[3].Content)
}

func TestPrintTranscript(t *testing.T) {
	store := conversation.NewStore()
	id := store.Create()
	require.NoError(t, store.Append(id, conversation.NewUserMessage("what is the weather in san francisco")))
	require.NoError(t, store.Append(id, conversation.NewAssistantMessage("Foggy.")))
	require.NoError(t, store.Append(id, conversation.NewAssistantMessage("Sorry", conversation.WithFailed())))
	c, ok := store.Get(id)
	require.True(t, ok)

	buf := &bytes.Buffer{}
	require.NoError(t, printTranscript(buf, c, 20))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# what is the weather in san...\n"))
	assert.Contains(t, out, "[user]")
	assert.Contains(t, out, "[assistant (failed)]")
	assert.Contains(t, out, "  Foggy.")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  ") {
			assert.LessOrEqual(t, len(line), 20)
		}
	}
}

func TestSuggestionsCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	suggestionsCmd.SetOut(buf)
	require.NoError(t, suggestionsCmd.RunE(suggestionsCmd, nil))

	for _, s := range chat.DefaultSuggestions {
		assert.Contains(t, buf.String(), s.Prompt)
	}
}
