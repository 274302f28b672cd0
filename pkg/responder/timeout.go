package responder

import (
	"context"
	"time"

	"github.com/go-go-golems/chatbox/pkg/helpers"
	"github.com/pkg/errors"
)

var ErrTimeout = errors.New("responder timed out")

// WithTimeout bounds every call to r by d. The call returns at the deadline
// even when r ignores its context.
func WithTimeout(r Responder, d time.Duration) Responder {
	return Func(func(ctx context.Context, text string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		c := make(chan helpers.Result[string], 1)
		go func() {
			reply, err := r.Respond(ctx, text)
			c <- helpers.NewResult(reply, err)
		}()

		select {
		case res := <-c:
			reply, err := res.Value()
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", errors.Wrapf(ErrTimeout, "after %s", d)
			}
			return reply, err
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", errors.Wrapf(ErrTimeout, "after %s", d)
			}
			return "", ctx.Err()
		}
	})
}
