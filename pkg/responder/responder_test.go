package responder

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesLoad(t *testing.T) {
	rules := DefaultRules()
	assert.NotEmpty(t, rules.Rules)
	assert.Len(t, rules.Defaults, 5)
}

func TestKeywordResponderMatchesRules(t *testing.T) {
	k := NewKeywordResponder(DefaultRules(), WithDelay(0, 0))

	nextjs := k.Reply("Tell me about Next.js")
	assert.True(t, strings.HasPrefix(nextjs, "Next.js offers several key advantages"))
	assert.Equal(t, nextjs, k.Reply("what is NEXTJS"))

	assert.Contains(t, k.Reply("Write code to demonstrate Dijkstra's algorithm"), "Dijkstra")
	assert.Contains(t, k.Reply("Help me write an essay about Silicon Valley"), "outline for an essay")
	assert.Contains(t, k.Reply("What is the weather in San Francisco?"), "San Francisco")
}

func TestKeywordResponderRequiresAllKeywords(t *testing.T) {
	k := NewKeywordResponder(DefaultRules(), WithDelay(0, 0))

	reply := k.Reply("an essay about gardening")
	assert.Contains(t, DefaultRules().Defaults, reply)
}

func TestKeywordResponderDefaultIsDeterministicWithSeed(t *testing.T) {
	a := NewKeywordResponder(DefaultRules(), WithRand(rand.New(rand.NewSource(7))))
	b := NewKeywordResponder(DefaultRules(), WithRand(rand.New(rand.NewSource(7))))
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Reply("hello"), b.Reply("hello"))
	}
}

func TestKeywordResponderRespond(t *testing.T) {
	k := NewKeywordResponder(DefaultRules(), WithDelay(time.Millisecond, time.Millisecond))

	reply, err := k.Respond(context.Background(), "dijkstra please")
	require.NoError(t, err)
	assert.Contains(t, reply, "Dijkstra")
}

func TestKeywordResponderHonorsCancellation(t *testing.T) {
	k := NewKeywordResponder(DefaultRules(), WithDelay(time.Hour, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := k.Respond(ctx, "hello")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules(strings.NewReader(`
rules:
  - keywords: [ping]
    reply: pong
defaults: [what?]
`))
	require.NoError(t, err)

	k := NewKeywordResponder(rules)
	assert.Equal(t, "pong", k.Reply("PING"))
	assert.Equal(t, "what?", k.Reply("hello"))
}

func TestLoadRulesRequiresDefaults(t *testing.T) {
	_, err := LoadRules(strings.NewReader("rules: []\n"))
	assert.Error(t, err)

	_, err = LoadRules(strings.NewReader("rules: [\n"))
	assert.Error(t, err)
}

func TestWithTimeoutFailsHungResponder(t *testing.T) {
	hung := Func(func(ctx context.Context, text string) (string, error) {
		select {}
	})

	start := time.Now()
	_, err := WithTimeout(hung, 20*time.Millisecond).Respond(context.Background(), "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWithTimeoutPassesThrough(t *testing.T) {
	echo := Func(func(ctx context.Context, text string) (string, error) {
		return "echo: " + text, nil
	})

	reply, err := WithTimeout(echo, time.Second).Respond(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", reply)

	boom := errors.New("boom")
	failing := Func(func(ctx context.Context, text string) (string, error) {
		return "", boom
	})
	_, err = WithTimeout(failing, time.Second).Respond(context.Background(), "hi")
	assert.Equal(t, boom, err)
}

func TestNew(t *testing.T) {
	s := DefaultSettings()
	s.Timeout = 0
	r, err := New(s)
	require.NoError(t, err)
	assert.IsType(t, &KeywordResponder{}, r)

	s.Timeout = time.Second
	r, err = New(s)
	require.NoError(t, err)
	assert.IsType(t, Func(nil), r)

	s.Kind = KindOpenAI
	_, err = New(s)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	s.Kind = "carrier-pigeon"
	_, err = New(s)
	assert.True(t, errors.Is(err, ErrUnknownKind))
}
