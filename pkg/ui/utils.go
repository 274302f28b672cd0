package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

func wrapWords(text string, width int) string {
	if width <= 0 {
		return text
	}
	w := wordwrap.NewWriter(width)
	_, _ = fmt.Fprint(w, text)
	_ = w.Close()
	return w.String()
}

// truncateLine cuts s to width cells, marking the cut with an ellipsis.
func truncateLine(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func since(t time.Time, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
