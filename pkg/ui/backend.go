package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/chatbox/pkg/chat"
	"github.com/go-go-golems/chatbox/pkg/responder"
)

type responseMsg struct {
	chat.Response
}

// respond runs the responder for req off the event loop. The result comes
// back as a responseMsg pinned to the request's conversation.
func respond(ctx context.Context, r responder.Responder, req *chat.Request) tea.Cmd {
	return func() tea.Msg {
		return responseMsg{Response: req.Run(ctx, r)}
	}
}
