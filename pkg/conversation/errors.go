package conversation

import "github.com/pkg/errors"

var ErrConversationNotFound = errors.New("conversation not found")

func notFound(id string) error {
	return errors.Wrapf(ErrConversationNotFound, "id %q", id)
}
