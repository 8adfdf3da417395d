package state

import (
	"sort"
	"time"

	"github.com/glabrego/rss-cli/internal/feed"
)

// DisplayEntry is an entry as shown in the items pane, tagged with the title
// of the feed it came from.
type DisplayEntry struct {
	Title     string
	FeedTitle string
	Link      string
	Published string

	publishedAt time.Time
	dated       bool
}

// PublishedAt returns the parsed publication time, if the entry has a valid
// RFC 3339 timestamp.
func (e DisplayEntry) PublishedAt() (time.Time, bool) {
	return e.publishedAt, e.dated
}

func newDisplayEntry(f feed.Feed, item feed.Entry) DisplayEntry {
	d := DisplayEntry{
		Title:     item.Title,
		FeedTitle: f.DisplayTitle(),
		Link:      item.Link,
		Published: item.Published,
	}
	if item.Published != "" {
		if t, err := time.Parse(time.RFC3339, item.Published); err == nil {
			d.publishedAt = t
			d.dated = true
		}
	}
	return d
}

// ItemsView builds the items pane for sel. A specific feed yields its entries
// in feed order. All yields every entry of every feed, newest first, with
// undated or unparseable entries after all dated ones in their original
// relative order. The view is rebuilt on every call.
func ItemsView(sel FeedSelection, c *feed.Collection) []DisplayEntry {
	if idx, ok := sel.Feed(); ok {
		if idx < 0 || idx >= c.Len() {
			return nil
		}
		f := c.Feeds[idx]
		out := make([]DisplayEntry, 0, len(f.Items))
		for _, item := range f.Items {
			out = append(out, newDisplayEntry(f, item))
		}
		return out
	}

	out := make([]DisplayEntry, 0, ItemCount(sel, c))
	for _, f := range c.Feeds {
		for _, item := range f.Items {
			out = append(out, newDisplayEntry(f, item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return publishedDescLess(out[i], out[j])
	})
	return out
}

// ItemCount is len(ItemsView(sel, c)) without building the view.
func ItemCount(sel FeedSelection, c *feed.Collection) int {
	if idx, ok := sel.Feed(); ok {
		if idx < 0 || idx >= c.Len() {
			return 0
		}
		return len(c.Feeds[idx].Items)
	}
	total := 0
	for _, f := range c.Feeds {
		total += len(f.Items)
	}
	return total
}

func publishedDescLess(a, b DisplayEntry) bool {
	switch {
	case a.dated && b.dated:
		return a.publishedAt.After(b.publishedAt)
	case a.dated:
		return true
	default:
		return false
	}
}
