package responder

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = go_openai.GPT4

var ErrMissingAPIKey = errors.New("missing openai api key")

// OpenAIResponder sends each turn as a single-message chat completion.
type OpenAIResponder struct {
	client *go_openai.Client
	model  string
}

var _ Responder = (*OpenAIResponder)(nil)

func NewOpenAIResponder(s OpenAISettings) (*OpenAIResponder, error) {
	if s.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	config := go_openai.DefaultConfig(s.APIKey)
	if s.BaseURL != "" {
		config.BaseURL = s.BaseURL
	}
	model := s.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIResponder{
		client: go_openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (o *OpenAIResponder) Respond(ctx context.Context, text string) (string, error) {
	req := go_openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []go_openai.ChatCompletionMessage{
			{
				Role:    go_openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	}

	log.Debug().Str("model", o.model).Int("input_length", len(text)).Msg("Sending chat completion")
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
