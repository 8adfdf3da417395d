package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	PaneTitle   lipgloss.Style
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	Plain       lipgloss.Style
	Subtle      lipgloss.Style
	FeedTitle   lipgloss.Style
	Published   lipgloss.Style
	Link        lipgloss.Style
	Divider     lipgloss.Style
	Spinner     lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpTeal := lipgloss.Color("#94e2d5")
	cpSky := lipgloss.Color("#89dceb")
	cpBlue := lipgloss.Color("#89b4fa")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpOverlay0 := lipgloss.Color("#6c7086")

	pane := lipgloss.NewStyle().Border(lipgloss.NormalBorder())

	return Theme{
		PaneTitle:   lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		Pane:        pane.BorderForeground(cpOverlay0),
		PaneFocused: pane.BorderForeground(cpSky),
		Plain:       lipgloss.NewStyle().Foreground(cpText),
		Subtle:      lipgloss.NewStyle().Foreground(cpSubtext0),
		FeedTitle:   lipgloss.NewStyle().Foreground(cpTeal),
		Published:   lipgloss.NewStyle().Foreground(cpYellow),
		Link:        lipgloss.NewStyle().Foreground(cpBlue),
		Divider:     lipgloss.NewStyle().Foreground(cpOverlay0),
		Spinner:     lipgloss.NewStyle().Foreground(cpPeach),
		StateIdle:   lipgloss.NewStyle().Foreground(cpText),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),
	}
}

// PaneStyle is the border style of a pane; the focused pane stands out.
func (t Theme) PaneStyle(focused bool) lipgloss.Style {
	if focused {
		return t.PaneFocused
	}
	return t.Pane
}

// RenderLine renders text with style, bold when the line belongs to the
// highlighted list item.
func (t Theme) RenderLine(style lipgloss.Style, highlighted bool, text string) string {
	if text == "" {
		return text
	}
	if highlighted {
		style = style.Bold(true)
	}
	return style.Render(text)
}
