package view

import (
	"strings"

	tuitheme "github.com/glabrego/rss-cli/internal/tui/theme"
)

const HelpLine = "q quit | a add | r refresh | d delete | left/right switch | arrows move"

// StatusHeight is the number of rows taken by the status bar.
const StatusHeight = 2

func AddPrompt(input string) string {
	return "Add feed URL: " + input + " (Enter to save, Esc to cancel)"
}

// StatusText picks the status bar text: the URL prompt while adding, else
// the last status message, else the key help.
func StatusText(input string, adding bool, status string) string {
	if adding {
		return AddPrompt(input)
	}
	if status == "" {
		return HelpLine
	}
	return status
}

// PaneBody is the list area inside a bordered pane of the given outer size,
// below the title row.
func PaneBody(width, height int) (int, int) {
	return max(0, width-2), max(0, height-3)
}

// Pane draws a bordered box of outer size width x height with a title row
// followed by body.
func Pane(title string, body []string, width, height int, focused bool, th tuitheme.Theme) string {
	innerWidth, bodyHeight := PaneBody(width, height)
	lines := make([]string, 0, bodyHeight+1)
	lines = append(lines, th.PaneTitle.Render(truncateRunes(title, innerWidth)))
	for i := 0; i < bodyHeight; i++ {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		lines = append(lines, padRight(line, innerWidth))
	}
	return th.PaneStyle(focused).
		Width(innerWidth).
		Height(max(1, height-2)).
		Render(strings.Join(lines, "\n"))
}

// StatusBar draws a divider row and one line of status text. A spinner frame
// is shown in front of the text while a fetch is in flight.
func StatusBar(text, spinner string, busy bool, width int, th tuitheme.Theme) string {
	style := th.StateIdle
	switch {
	case busy:
		style = th.StateLoad
	case strings.HasPrefix(text, "Error: "):
		style = th.StateWarn
	}

	prefix := ""
	if busy && spinner != "" {
		prefix = spinner + " "
	}
	text = truncateRunes(text, width-visibleLen(prefix))
	divider := th.Divider.Render(strings.Repeat("─", max(0, width)))
	return divider + "\n" + prefix + style.Render(text)
}

func padRight(s string, width int) string {
	if gap := width - visibleLen(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
