package responder

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// KeywordResponder answers from a fixed rule set after a simulated delay.
type KeywordResponder struct {
	rules    *Rules
	minDelay time.Duration
	jitter   time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

var _ Responder = (*KeywordResponder)(nil)

type KeywordOption func(*KeywordResponder)

func WithDelay(minDelay, jitter time.Duration) KeywordOption {
	return func(k *KeywordResponder) {
		k.minDelay = minDelay
		k.jitter = jitter
	}
}

func WithRand(rnd *rand.Rand) KeywordOption {
	return func(k *KeywordResponder) {
		k.rnd = rnd
	}
}

func NewKeywordResponder(rules *Rules, options ...KeywordOption) *KeywordResponder {
	ret := &KeywordResponder{
		rules: rules,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

func (k *KeywordResponder) Respond(ctx context.Context, text string) (string, error) {
	delay := k.delay()
	log.Debug().Dur("delay", delay).Msg("Simulating response latency")

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}

	return k.Reply(text), nil
}

// Reply picks the reply for text without any delay.
func (k *KeywordResponder) Reply(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range k.rules.Rules {
		if rule.Matches(lower) {
			return rule.Reply
		}
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	return k.rules.Defaults[k.rnd.Intn(len(k.rules.Defaults))]
}

func (k *KeywordResponder) delay() time.Duration {
	if k.jitter <= 0 {
		return k.minDelay
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.minDelay + time.Duration(k.rnd.Int63n(int64(k.jitter)))
}
