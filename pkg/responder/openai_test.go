package responder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
			assert.Equal(t, "hello", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAIResponder(t *testing.T) {
	server := newCompletionServer(t, http.StatusOK,
		`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hi there"},"finish_reason":"stop"}]}`)

	r, err := NewOpenAIResponder(OpenAISettings{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "gpt-4o-mini",
	})
	require.NoError(t, err)

	reply, err := r.Respond(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestOpenAIResponderNoChoices(t *testing.T) {
	server := newCompletionServer(t, http.StatusOK, `{"id":"1","choices":[]}`)

	r, err := NewOpenAIResponder(OpenAISettings{APIKey: "test-key", BaseURL: server.URL + "/v1", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	_, err = r.Respond(context.Background(), "hello")
	assert.Error(t, err)
}

func TestOpenAIResponderServerError(t *testing.T) {
	server := newCompletionServer(t, http.StatusInternalServerError,
		`{"error":{"message":"overloaded","type":"server_error"}}`)

	r, err := NewOpenAIResponder(OpenAISettings{APIKey: "test-key", BaseURL: server.URL + "/v1", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	_, err = r.Respond(context.Background(), "hello")
	assert.Error(t, err)
}
