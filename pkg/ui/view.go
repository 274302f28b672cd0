package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/chatbox/pkg/chat"
	"github.com/go-go-golems/chatbox/pkg/conversation"
)

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.statusView(),
		m.inputView(),
		m.help.View(m.keyMap),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), main)
}

func (m *Model) headerView() string {
	title := "CHATBOX"
	if c, ok := m.controller.Store().ActiveConversation(); ok {
		title = c.Title
	}
	right := fmt.Sprintf("%s · %s", m.settings.ModelName, m.settings.Theme)
	return m.style.Header.Render(truncateLine(title, m.mainWidth()-len(right)-4) + "  " + right)
}

func (m *Model) sidebarView() string {
	style := m.style.Sidebar
	if m.focus == FocusSidebar || m.focus == FocusRenaming {
		style = m.style.FocusedSidebar
	}
	innerWidth := sidebarWidth - style.GetHorizontalPadding()

	lines := []string{
		m.style.Header.Render("Conversations"),
		m.style.ItemTimestamp.Render("ctrl+n new chat"),
		"",
	}

	activeID := m.activeID()
	now := m.now()
	for i, c := range m.controller.Store().List() {
		if c.ID == m.renamingID && m.focus == FocusRenaming {
			lines = append(lines, m.rename.View(), "")
			continue
		}

		marker := "  "
		itemStyle := m.style.SidebarItem
		if c.ID == activeID {
			marker = "▌ "
			itemStyle = m.style.ActiveItem
		}
		title := itemStyle.Render(truncateLine(c.Title, innerWidth-len(marker)))
		if m.focus == FocusSidebar && i == m.cursor {
			title = m.style.CursorItem.Render(title)
		}
		lines = append(lines,
			marker+title,
			"  "+m.style.ItemTimestamp.Render(since(c.UpdatedAt, now)),
		)
	}

	height := m.height
	if height < len(lines) {
		height = len(lines)
	}
	return style.
		Width(sidebarWidth).
		Height(height).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) statusView() string {
	switch {
	case m.err != nil:
		return m.style.Error.Render(wrapWords(m.err.Error(), m.mainWidth()-2))
	case m.controller.IsSending():
		return m.style.Typing.Render(m.spinner.View() + " Assistant is typing...")
	}
	return ""
}

func (m *Model) inputView() string {
	if m.focus == FocusInput {
		return m.style.FocusedInput.Render(m.textArea.View())
	}
	return m.style.Input.Render(m.textArea.View())
}

func (m *Model) messagesView() string {
	c, ok := m.controller.Store().ActiveConversation()
	if !ok || c.IsEmpty() {
		return m.suggestionsView()
	}

	width := m.viewport.Width
	ret := make([]string, 0, len(c.Messages))
	for _, msg := range c.Messages {
		ret = append(ret, m.messageView(msg, width))
	}
	return strings.Join(ret, "\n")
}

func (m *Model) messageView(msg conversation.Message, width int) string {
	header := m.style.Role.Render(fmt.Sprintf("[%s] %s", msg.Role, msg.Time.Format("15:04")))

	switch {
	case msg.Failed:
		inner := width - m.style.FailedMessage.GetHorizontalFrameSize()
		body := m.style.FailedMessage.Width(inner).Render(wrapWords(msg.Content, inner-2))
		return header + "\n" + body

	case msg.Role == conversation.RoleAssistant:
		inner := width - m.style.AssistantMessage.GetHorizontalFrameSize()
		body := wrapWords(msg.Content, inner)
		if r := m.markdownRenderer(inner); r != nil {
			if rendered, err := r.Render(msg.Content); err == nil {
				body = strings.TrimRight(rendered, "\n")
			}
		}
		return header + "\n" + m.style.AssistantMessage.Width(inner).Render(body)

	default:
		inner := width - m.style.UserMessage.GetHorizontalFrameSize()
		body := wrapWords(msg.Content, inner-2)
		return header + "\n" + m.style.UserMessage.Width(inner).Render(body)
	}
}

func (m *Model) suggestionsView() string {
	width := m.viewport.Width
	cardWidth := width/2 - m.style.Suggestion.GetHorizontalFrameSize()
	if cardWidth < 10 {
		cardWidth = 10
	}

	cards := make([]string, 0, len(chat.DefaultSuggestions))
	for i, s := range chat.DefaultSuggestions {
		body := fmt.Sprintf("%s\n%s",
			m.style.SuggestionTitle.Render(fmt.Sprintf("%d. %s", i+1, s.Title)),
			s.Subtitle,
		)
		cards = append(cards, m.style.Suggestion.Width(cardWidth).Render(body))
	}

	rows := []string{
		m.style.Header.Render("How can I help you today?"),
		"",
	}
	for i := 0; i < len(cards); i += 2 {
		if i+1 < len(cards) {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i], cards[i+1]))
		} else {
			rows = append(rows, cards[i])
		}
	}
	rows = append(rows, m.style.ItemTimestamp.Render("press 1-4 to send a suggestion"))
	return strings.Join(rows, "\n")
}
