package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Submit         key.Binding
	NewChat        key.Binding
	ToggleSidebar  key.Binding
	Up             key.Binding
	Down           key.Binding
	Select         key.Binding
	Rename         key.Binding
	Delete         key.Binding
	SaveRename     key.Binding
	Cancel         key.Binding
	PickSuggestion key.Binding
	ToggleTheme    key.Binding
	ScrollUp       key.Binding
	ScrollDown     key.Binding

	Help key.Binding
	Quit key.Binding
}

var DefaultKeyMap = KeyMap{
	Submit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	NewChat:        key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
	ToggleSidebar:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "conversations")),
	Up:             key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:           key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Rename:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	Delete:         key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	SaveRename:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	PickSuggestion: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "suggestion")),
	ToggleTheme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	ScrollUp:       key.NewBinding(key.WithKeys("pgup", "shift+up"), key.WithHelp("pgup", "scroll up")),
	ScrollDown:     key.NewBinding(key.WithKeys("pgdown", "shift+down"), key.WithHelp("pgdn", "scroll down")),
	Help:           key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "help")),
	Quit:           key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Submit, k.SaveRename, k.Select, k.ToggleSidebar, k.NewChat,
		k.Rename, k.Delete, k.PickSuggestion, k.Cancel, k.Help, k.Quit,
	}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NewChat, k.PickSuggestion, k.ScrollUp, k.ScrollDown},
		{k.ToggleSidebar, k.Up, k.Down, k.Select, k.Rename, k.Delete},
		{k.SaveRename, k.Cancel, k.ToggleTheme, k.Help, k.Quit},
	}
}
