package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"more than six words", "one two three four five six seven", "one two three four five six..."},
		{"short", "a b c", "a b c"},
		{"exactly six", "one two three four five six", "one two three four five six"},
		{"collapses whitespace", "  Tell   me\tabout\nNext.js  ", "Tell me about Next.js"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.content))
		})
	}
}
