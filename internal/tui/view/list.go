package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/tui/state"
	tuitheme "github.com/glabrego/rss-cli/internal/tui/theme"
)

// HighlightSymbol marks the first line of the highlighted list item.
const HighlightSymbol = ">> "

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type Line struct {
	Text  string
	Style lipgloss.Style
}

// ListItem is one selectable entry of a pane; it may span several lines.
type ListItem struct {
	Lines []Line
}

func (it ListItem) height() int {
	return max(1, len(it.Lines))
}

// FeedItems builds the feeds pane: the All row followed by one row per feed.
func FeedItems(c *feed.Collection, th tuitheme.Theme) []ListItem {
	items := make([]ListItem, 0, c.Len()+1)
	items = append(items, ListItem{Lines: []Line{
		{Text: "All", Style: th.Plain},
		{Text: fmt.Sprintf("%d feeds", c.Len()), Style: th.Subtle},
	}})
	for _, f := range c.Feeds {
		items = append(items, ListItem{Lines: []Line{
			{Text: f.DisplayTitle(), Style: th.Plain},
			{Text: f.URL, Style: th.Subtle},
		}})
	}
	return items
}

// EntryItem builds one row of the entries pane. The owning feed's title is
// only shown in the merged view.
func EntryItem(e state.DisplayEntry, showFeed bool, th tuitheme.Theme) ListItem {
	lines := []Line{{Text: e.Title, Style: th.Plain}}
	if showFeed {
		lines = append(lines, Line{Text: e.FeedTitle, Style: th.FeedTitle})
	}
	if e.Published != "" {
		lines = append(lines, Line{Text: e.Published, Style: th.Published})
	}
	if e.Link != "" {
		lines = append(lines, Line{Text: e.Link, Style: th.Link})
	}
	return ListItem{Lines: lines}
}

func EntryItems(entries []state.DisplayEntry, showFeed bool, th tuitheme.Theme) []ListItem {
	items := make([]ListItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, EntryItem(e, showFeed, th))
	}
	return items
}

// ScrollOffset is the first item to draw so that the selected item fits in
// height lines. It stays at the top until the selection would fall off.
func ScrollOffset(items []ListItem, selected, height int) int {
	if selected < 0 || selected >= len(items) {
		return 0
	}
	offset := 0
	used := 0
	for i := 0; i <= selected; i++ {
		used += items[i].height()
	}
	for used > height && offset < selected {
		used -= items[offset].height()
		offset++
	}
	return offset
}

// RenderList draws items into at most height lines of the given width.
// selected < 0 highlights nothing.
func RenderList(items []ListItem, selected, width, height int, th tuitheme.Theme) []string {
	if height <= 0 {
		return nil
	}
	textWidth := width - utf8.RuneCountInString(HighlightSymbol)
	pad := strings.Repeat(" ", utf8.RuneCountInString(HighlightSymbol))

	out := make([]string, 0, height)
	for i := ScrollOffset(items, selected, height); i < len(items) && len(out) < height; i++ {
		highlighted := i == selected
		for j, line := range items[i].Lines {
			if len(out) == height {
				break
			}
			prefix := pad
			if highlighted && j == 0 {
				prefix = HighlightSymbol
			}
			text := truncateRunes(line.Text, textWidth)
			out = append(out, prefix+th.RenderLine(line.Style, highlighted, text))
		}
	}
	return out
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
