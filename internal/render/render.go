package render

import (
	"fmt"
	"io"

	"github.com/glabrego/rss-cli/internal/feed"
)

// ItemLine formats one entry as "- <title>", followed by " | <published>"
// and " | <link>" when those are present.
func ItemLine(item feed.Entry) string {
	line := "- " + item.Title
	if item.Published != "" {
		line += " | " + item.Published
	}
	if item.Link != "" {
		line += " | " + item.Link
	}
	return line
}

// Items writes a "Feed: <label>" header and one line per entry.
func Items(w io.Writer, label string, items []feed.Entry) error {
	if _, err := fmt.Fprintf(w, "Feed: %s\n", label); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(w, ItemLine(item)); err != nil {
			return err
		}
	}
	return nil
}

// Collection writes every feed, or only the feed whose URL equals filterURL
// when it is non-empty, each followed by a blank line.
func Collection(w io.Writer, c feed.Collection, filterURL string) error {
	for _, f := range c.Feeds {
		if filterURL != "" && f.URL != filterURL {
			continue
		}
		label := fmt.Sprintf("%s (%s)", f.DisplayTitle(), f.URL)
		if err := Items(w, label, f.Items); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
