// Package responder turns the text of a user turn into an assistant reply.
//
// A Responder only ever sees the raw text of the turn that was submitted. It
// has no access to conversation history, which keeps the contract identical
// between the local keyword stub and remote model backends.
package responder

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type Responder interface {
	Respond(ctx context.Context, text string) (string, error)
}

// Func adapts a plain function to the Responder interface.
type Func func(ctx context.Context, text string) (string, error)

func (f Func) Respond(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

type Kind string

const (
	KindStub   Kind = "stub"
	KindOpenAI Kind = "openai"
)

var ErrUnknownKind = errors.New("unknown responder kind")

type Settings struct {
	Kind Kind `mapstructure:"kind"`
	// Timeout bounds each call. Zero disables the bound.
	Timeout time.Duration `mapstructure:"timeout"`

	Stub   StubSettings   `mapstructure:"stub"`
	OpenAI OpenAISettings `mapstructure:"openai"`
}

type StubSettings struct {
	MinDelay  time.Duration `mapstructure:"min-delay"`
	Jitter    time.Duration `mapstructure:"jitter"`
	RulesFile string        `mapstructure:"rules-file"`
}

type OpenAISettings struct {
	APIKey  string `mapstructure:"api-key"`
	BaseURL string `mapstructure:"base-url"`
	Model   string `mapstructure:"model"`
}

func DefaultSettings() Settings {
	return Settings{
		Kind:    KindStub,
		Timeout: time.Minute,
		Stub: StubSettings{
			MinDelay: time.Second,
			Jitter:   2 * time.Second,
		},
		OpenAI: OpenAISettings{
			Model: DefaultOpenAIModel,
		},
	}
}

// New builds the responder selected by settings, wrapped with a timeout when
// one is configured.
func New(s Settings) (Responder, error) {
	var r Responder
	switch s.Kind {
	case KindStub, "":
		rules := DefaultRules()
		if s.Stub.RulesFile != "" {
			var err error
			rules, err = LoadRulesFile(s.Stub.RulesFile)
			if err != nil {
				return nil, err
			}
		}
		r = NewKeywordResponder(rules,
			WithDelay(s.Stub.MinDelay, s.Stub.Jitter),
		)
	case KindOpenAI:
		var err error
		r, err = NewOpenAIResponder(s.OpenAI)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", s.Kind)
	}

	if s.Timeout > 0 {
		r = WithTimeout(r, s.Timeout)
	}
	return r, nil
}
