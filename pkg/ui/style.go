package ui

import "github.com/charmbracelet/lipgloss"

type Style struct {
	Header           lipgloss.Style
	Sidebar          lipgloss.Style
	FocusedSidebar   lipgloss.Style
	SidebarItem      lipgloss.Style
	ActiveItem       lipgloss.Style
	CursorItem       lipgloss.Style
	ItemTimestamp    lipgloss.Style
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	FailedMessage    lipgloss.Style
	Role             lipgloss.Style
	Suggestion       lipgloss.Style
	SuggestionTitle  lipgloss.Style
	Input            lipgloss.Style
	FocusedInput     lipgloss.Style
	Typing           lipgloss.Style
	Error            lipgloss.Style
}

type palette struct {
	Text      string
	Muted     string
	Border    string
	Accent    string
	Highlight string
	Error     string
}

var darkPalette = palette{
	Text:      "#E4E4E7",
	Muted:     "#71717A",
	Border:    "#444444",
	Accent:    "#DD7090", // desaturated pink
	Highlight: "#DDDD77", // desaturated yellow
	Error:     "#F87171",
}

var lightPalette = palette{
	Text:      "#18181B",
	Muted:     "#A1A1AA",
	Border:    "#CCCCCC",
	Accent:    "#DB2777",
	Highlight: "#CA8A04",
	Error:     "#DC2626",
}

func StylesForTheme(theme string) *Style {
	p := darkPalette
	if theme == "light" {
		p = lightPalette
	}

	return &Style{
		Header: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(p.Accent)).
			Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		FocusedSidebar: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(p.Highlight)).
			Padding(0, 1),
		SidebarItem:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Text)),
		ActiveItem:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Accent)),
		CursorItem:    lipgloss.NewStyle().Reverse(true),
		ItemTimestamp: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		UserMessage: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Accent)).
			Padding(0, 1),
		AssistantMessage: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
		FailedMessage: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Error)).
			Foreground(lipgloss.Color(p.Error)).
			Padding(0, 1),
		Role: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Muted)),
		Suggestion: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 1),
		SuggestionTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Text)),
		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Border)),
		FocusedInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(p.Highlight)),
		Typing: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(p.Muted)).Padding(0, 1),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)).Padding(0, 1),
	}
}
