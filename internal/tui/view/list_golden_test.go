package view

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/tui/state"
	tuitheme "github.com/glabrego/rss-cli/internal/tui/theme"
)

var updateViewGolden = flag.Bool("update-view-golden", false, "update view golden files")

func TestListRendering_Golden(t *testing.T) {
	th := tuitheme.Default()
	c := &feed.Collection{Feeds: []feed.Feed{
		{Title: "Example", URL: "https://example.com/feed"},
		{URL: "https://b.example/rss"},
	}}
	entries := []state.DisplayEntry{
		{Title: "March", FeedTitle: "Example", Published: "2024-03-01T00:00:00Z", Link: "https://example.com/march"},
		{Title: "A very long entry title that will be truncated", FeedTitle: "Example"},
	}

	lines := RenderList(FeedItems(c, th), 1, 30, 10, th)
	lines = append(lines, "")
	lines = append(lines, RenderList(EntryItems(entries, true, th), 0, 40, 6, th)...)

	got := stripANSI(strings.Join(lines, "\n"))
	assertViewGolden(t, "list_rendering.golden", got)
}

func assertViewGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if *updateViewGolden {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got+"\n"), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}

	wantBytes, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	want := strings.TrimRight(string(wantBytes), "\n")
	got = strings.TrimRight(got, "\n")
	if got != want {
		t.Fatalf("golden mismatch for %s\n--- got ---\n%s\n--- want ---\n%s", name, got, want)
	}
}
