package view

import (
	"strings"
	"testing"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/tui/state"
	tuitheme "github.com/glabrego/rss-cli/internal/tui/theme"
)

func twoLineItems(n int) []ListItem {
	items := make([]ListItem, n)
	for i := range items {
		items[i] = ListItem{Lines: []Line{{Text: "title"}, {Text: "sub"}}}
	}
	return items
}

func TestScrollOffset(t *testing.T) {
	items := twoLineItems(6)
	cases := []struct {
		selected, height, want int
	}{
		{selected: 0, height: 6, want: 0},
		{selected: 2, height: 6, want: 0},
		{selected: 4, height: 6, want: 2},
		{selected: 5, height: 6, want: 3},
		{selected: 5, height: 1, want: 5},
		{selected: -1, height: 6, want: 0},
		{selected: 9, height: 6, want: 0},
	}
	for _, tc := range cases {
		if got := ScrollOffset(items, tc.selected, tc.height); got != tc.want {
			t.Fatalf("ScrollOffset(selected=%d, height=%d) = %d, want %d", tc.selected, tc.height, got, tc.want)
		}
	}
}

func TestRenderList_KeepsSelectionVisible(t *testing.T) {
	th := tuitheme.Default()
	c := &feed.Collection{}
	for _, u := range []string{"a", "b", "c", "d", "e"} {
		c.Upsert("https://"+u+".example/feed", strings.ToUpper(u), nil)
	}

	lines := RenderList(FeedItems(c, th), 5, 40, 4, th)
	if len(lines) != 4 {
		t.Fatalf("expected output clipped to height, got %d lines", len(lines))
	}
	plain := stripANSI(strings.Join(lines, "\n"))
	if !strings.Contains(plain, ">> E") {
		t.Fatalf("expected last feed highlighted, got:\n%s", plain)
	}
	if strings.Contains(plain, "All") {
		t.Fatalf("expected All row scrolled out, got:\n%s", plain)
	}
}

func TestRenderList_NoSelection(t *testing.T) {
	th := tuitheme.Default()
	lines := RenderList(EntryItems([]state.DisplayEntry{{Title: "x"}}, false, th), -1, 20, 5, th)
	if len(lines) != 1 || strings.Contains(stripANSI(lines[0]), HighlightSymbol) {
		t.Fatalf("expected one unhighlighted line, got %q", lines)
	}
	if got := RenderList(nil, 0, 20, 5, th); len(got) != 0 {
		t.Fatalf("expected no lines for empty list, got %q", got)
	}
}

func TestEntryItem_OptionalLines(t *testing.T) {
	th := tuitheme.Default()
	e := state.DisplayEntry{Title: "Only title", FeedTitle: "Feed"}

	if got := len(EntryItem(e, false, th).Lines); got != 1 {
		t.Fatalf("expected title only, got %d lines", got)
	}
	if got := len(EntryItem(e, true, th).Lines); got != 2 {
		t.Fatalf("expected title and feed, got %d lines", got)
	}
	e.Published = "2024-01-01T00:00:00Z"
	e.Link = "https://example.com/1"
	item := EntryItem(e, false, th)
	if len(item.Lines) != 3 || item.Lines[1].Text != e.Published || item.Lines[2].Text != e.Link {
		t.Fatalf("unexpected lines: %+v", item.Lines)
	}
}

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{in: "short", max: 10, want: "short"},
		{in: "truncate me", max: 8, want: "trunc..."},
		{in: "héllo wörld", max: 7, want: "héll..."},
		{in: "abc", max: 2, want: ".."},
		{in: "abc", max: 0, want: ""},
	}
	for _, tc := range cases {
		if got := truncateRunes(tc.in, tc.max); got != tc.want {
			t.Fatalf("truncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
