package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/chatbox/pkg/chat"
	"github.com/go-go-golems/chatbox/pkg/conversation"
	"github.com/go-go-golems/chatbox/pkg/responder"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Focus string

const (
	FocusInput    Focus = "input"
	FocusSidebar  Focus = "sidebar"
	FocusRenaming Focus = "renaming"
)

const sidebarWidth = 30

// Settings are owned by the view and never reach the conversation store.
type Settings struct {
	Theme     string
	ModelName string
}

type Model struct {
	ctx        context.Context
	controller *chat.Controller
	responder  responder.Responder

	settings Settings
	keyMap   KeyMap
	style    *Style

	viewport viewport.Model
	textArea textarea.Model
	rename   textinput.Model
	spinner  spinner.Model
	help     help.Model

	renderer      *glamour.TermRenderer
	rendererWidth int
	rendererTheme string

	focus      Focus
	cursor     int
	renamingID string
	err        error

	width  int
	height int
	now    func() time.Time
}

type Option func(*Model)

func WithKeyMap(k KeyMap) Option {
	return func(m *Model) {
		m.keyMap = k
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

func NewModel(
	ctx context.Context,
	controller *chat.Controller,
	r responder.Responder,
	settings Settings,
	options ...Option,
) Model {
	ret := Model{
		ctx:        ctx,
		controller: controller,
		responder:  r,
		settings:   settings,
		keyMap:     DefaultKeyMap,
		style:      StylesForTheme(settings.Theme),
		viewport:   viewport.New(0, 0),
		help:       help.New(),
		focus:      FocusInput,
		now:        time.Now,
	}

	ret.textArea = textarea.New()
	ret.textArea.Placeholder = "Send a message..."
	ret.textArea.ShowLineNumbers = false
	ret.textArea.SetHeight(3)
	ret.textArea.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ret.textArea.SetValue(controller.Draft())
	ret.textArea.Focus()

	ret.rename = textinput.New()
	ret.rename.Prompt = "title: "
	ret.rename.CharLimit = 120

	ret.spinner = spinner.New()
	ret.spinner.Spinner = spinner.Dot

	for _, option := range options {
		option(&ret)
	}

	ret.updateKeyBindings()

	return ret
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)
		m.updateKeyBindings()
		m.refresh(false)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recomputeSize()

	case responseMsg:
		err := m.controller.Resolve(msg.Response)
		if err != nil && !errors.Is(err, conversation.ErrConversationNotFound) {
			log.Warn().Err(err).Msg("Could not resolve response")
		}
		m.recomputeSize()
		m.refresh(msg.ConversationID == m.activeID())

	case spinner.TickMsg:
		if m.controller.IsSending() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	default:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.ToggleTheme):
		m.toggleTheme()
		return nil
	case key.Matches(msg, m.keyMap.NewChat):
		m.controller.Store().Create()
		m.cursor = 0
		m.err = nil
		return m.focusInput()
	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.recomputeSize()
		return nil
	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.HalfViewDown()
		return nil
	}

	switch m.focus {
	case FocusRenaming:
		return m.handleRenameKey(msg)
	case FocusSidebar:
		return m.handleSidebarKey(msg)
	case FocusInput:
		return m.handleInputKey(msg)
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		m.controller.SetDraft(m.textArea.Value())
		req, err := m.controller.SubmitDraft()
		return m.startResponse(req, err)

	case key.Matches(msg, m.keyMap.ToggleSidebar):
		m.textArea.Blur()
		m.focus = FocusSidebar
		m.cursor = m.activeIndex()
		return nil

	case key.Matches(msg, m.keyMap.PickSuggestion) && m.suggestionsVisible() && m.textArea.Value() == "":
		return m.pickSuggestion(msg.String())
	}

	var cmd tea.Cmd
	m.textArea, cmd = m.textArea.Update(msg)
	m.controller.SetDraft(m.textArea.Value())
	return cmd
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	conversations := m.controller.Store().List()

	switch {
	case key.Matches(msg, m.keyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keyMap.Down):
		if m.cursor < len(conversations)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keyMap.Select):
		if m.cursor < len(conversations) {
			if err := m.controller.Store().Select(conversations[m.cursor].ID); err != nil {
				m.err = err
				return nil
			}
			m.refresh(true)
		}
		return m.focusInput()
	case key.Matches(msg, m.keyMap.Rename):
		if m.cursor < len(conversations) {
			c := conversations[m.cursor]
			m.renamingID = c.ID
			m.rename.SetValue(c.Title)
			m.rename.CursorEnd()
			m.focus = FocusRenaming
			return m.rename.Focus()
		}
	case key.Matches(msg, m.keyMap.Delete):
		if m.cursor < len(conversations) {
			if err := m.controller.Store().Delete(conversations[m.cursor].ID); err != nil {
				m.err = err
				return nil
			}
			if m.cursor >= m.controller.Store().Len() && m.cursor > 0 {
				m.cursor--
			}
			m.refresh(true)
		}
	case key.Matches(msg, m.keyMap.PickSuggestion):
		return m.pickSuggestion(msg.String())
	case key.Matches(msg, m.keyMap.ToggleSidebar), key.Matches(msg, m.keyMap.Cancel):
		return m.focusInput()
	}
	return nil
}

func (m *Model) handleRenameKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.SaveRename):
		// an empty title leaves the previous one in place
		if _, err := m.controller.Store().Rename(m.renamingID, m.rename.Value()); err != nil {
			m.err = err
		}
		m.stopRenaming()
		return nil
	case key.Matches(msg, m.keyMap.Cancel):
		m.stopRenaming()
		return nil
	}

	var cmd tea.Cmd
	m.rename, cmd = m.rename.Update(msg)
	return cmd
}

func (m *Model) stopRenaming() {
	m.rename.Blur()
	m.rename.SetValue("")
	m.renamingID = ""
	m.focus = FocusSidebar
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = FocusInput
	return m.textArea.Focus()
}

func (m *Model) pickSuggestion(k string) tea.Cmd {
	idx := int(k[0] - '1')
	if idx < 0 || idx >= len(chat.DefaultSuggestions) {
		return nil
	}
	req, err := m.controller.PickSuggestion(chat.DefaultSuggestions[idx].Prompt)
	cmd := m.startResponse(req, err)
	if req != nil {
		return tea.Batch(cmd, m.focusInput())
	}
	return cmd
}

func (m *Model) startResponse(req *chat.Request, err error) tea.Cmd {
	if err != nil {
		// empty input and sends while a reply is pending are dropped silently
		if !errors.Is(err, chat.ErrEmptySubmission) && !errors.Is(err, chat.ErrResponsePending) {
			m.err = err
		}
		return nil
	}
	m.err = nil
	m.textArea.Reset()
	m.recomputeSize()
	m.refresh(true)

	return tea.Batch(
		respond(m.ctx, m.responder, req),
		m.spinner.Tick,
	)
}

func (m *Model) toggleTheme() {
	if m.settings.Theme == "light" {
		m.settings.Theme = "dark"
	} else {
		m.settings.Theme = "light"
	}
	m.style = StylesForTheme(m.settings.Theme)
	m.recomputeSize()
}

func (m *Model) updateKeyBindings() {
	sending := m.controller.IsSending()
	hasConversations := m.controller.Store().Len() > 0

	m.keyMap.Submit.SetEnabled(m.focus == FocusInput && !sending)
	m.keyMap.PickSuggestion.SetEnabled(!sending && (m.focus == FocusSidebar || m.suggestionsVisible()))

	m.keyMap.Up.SetEnabled(m.focus == FocusSidebar)
	m.keyMap.Down.SetEnabled(m.focus == FocusSidebar)
	m.keyMap.Select.SetEnabled(m.focus == FocusSidebar && hasConversations)
	m.keyMap.Rename.SetEnabled(m.focus == FocusSidebar && hasConversations)
	m.keyMap.Delete.SetEnabled(m.focus == FocusSidebar && hasConversations)
	m.keyMap.ToggleSidebar.SetEnabled(m.focus != FocusRenaming)

	m.keyMap.SaveRename.SetEnabled(m.focus == FocusRenaming)
	m.keyMap.Cancel.SetEnabled(m.focus != FocusInput)
}

func (m *Model) suggestionsVisible() bool {
	c, ok := m.controller.Store().ActiveConversation()
	return !ok || c.IsEmpty()
}

func (m *Model) activeID() string {
	id, _ := m.controller.Store().Active()
	return id
}

func (m *Model) activeIndex() int {
	id := m.activeID()
	for i, c := range m.controller.Store().List() {
		if c.ID == id {
			return i
		}
	}
	return 0
}

// recomputeSize lays out the viewport between the header and the input area.
func (m *Model) recomputeSize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	mainWidth := m.mainWidth()

	m.textArea.SetWidth(mainWidth - m.style.FocusedInput.GetHorizontalFrameSize())
	m.rename.Width = sidebarWidth - len(m.rename.Prompt) - 2
	m.help.Width = mainWidth

	reserved := lipgloss.Height(m.headerView()) +
		lipgloss.Height(m.inputView()) +
		lipgloss.Height(m.statusView()) +
		lipgloss.Height(m.help.View(m.keyMap))
	newHeight := m.height - reserved
	if newHeight < 0 {
		newHeight = 0
	}
	m.viewport.Width = mainWidth
	m.viewport.Height = newHeight

	m.refresh(true)
}

func (m *Model) refresh(goToBottom bool) {
	m.viewport.SetContent(m.messagesView())
	if goToBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) mainWidth() int {
	w := m.width - sidebarWidth - m.style.Sidebar.GetHorizontalFrameSize()
	if w < 20 {
		w = 20
	}
	return w
}

// markdownRenderer returns a glamour renderer for the current width and
// theme, or nil when none can be built.
func (m *Model) markdownRenderer(width int) *glamour.TermRenderer {
	if m.renderer != nil && m.rendererWidth == width && m.rendererTheme == m.settings.Theme {
		return m.renderer
	}
	theme := m.settings.Theme
	if theme != "light" {
		theme = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Could not create markdown renderer")
		return nil
	}
	m.renderer = r
	m.rendererWidth = width
	m.rendererTheme = m.settings.Theme
	return r
}

// Focus reports which part of the view receives keys.
func (m Model) Focus() Focus {
	return m.focus
}

func (m Model) Settings() Settings {
	return m.settings
}
