package conversation

import "strings"

const (
	DefaultTitle = "New Chat"

	titleWordLimit = 6
	titleEllipsis  = "..."
)

// DeriveTitle builds a conversation title from the first words of a message.
func DeriveTitle(content string) string {
	words := strings.Fields(content)
	if len(words) <= titleWordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:titleWordLimit], " ") + titleEllipsis
}
