package feed

import "fmt"

// UntitledLabel is shown for entries and feeds whose source gave no title.
const UntitledLabel = "Untitled"

// Entry is one item of a feed. Published holds an RFC 3339 timestamp when the
// source provided a date; it is not validated on read.
type Entry struct {
	Title     string `json:"title" yaml:"title"`
	Link      string `json:"link,omitempty" yaml:"link,omitempty"`
	Published string `json:"published,omitempty" yaml:"published,omitempty"`
}

// Feed is a subscription keyed by URL.
type Feed struct {
	Title string  `json:"title,omitempty" yaml:"title,omitempty"`
	URL   string  `json:"url" yaml:"url"`
	Items []Entry `json:"items" yaml:"items"`
}

func (f Feed) DisplayTitle() string {
	if f.Title == "" {
		return UntitledLabel
	}
	return f.Title
}

// Collection is the persisted root: every subscribed feed in insertion order.
// At most one feed exists per distinct URL.
type Collection struct {
	Feeds []Feed `json:"feeds" yaml:"feeds"`
}

func (c Collection) Len() int {
	return len(c.Feeds)
}

// FindFeed returns the first feed whose URL equals url exactly.
func (c *Collection) FindFeed(url string) (*Feed, int, bool) {
	for i := range c.Feeds {
		if c.Feeds[i].URL == url {
			return &c.Feeds[i], i, true
		}
	}
	return nil, -1, false
}

// Upsert replaces the title and items of the feed with the given URL, or
// appends a new feed when none exists. Previous entries are discarded, not
// merged. It returns the feed's 0-based index.
func (c *Collection) Upsert(url, title string, items []Entry) int {
	items = append(make([]Entry, 0, len(items)), items...)
	if existing, idx, ok := c.FindFeed(url); ok {
		existing.Title = title
		existing.Items = items
		return idx
	}
	c.Feeds = append(c.Feeds, Feed{Title: title, URL: url, Items: items})
	return len(c.Feeds) - 1
}

// Remove deletes the feed at the 0-based index and returns it.
func (c *Collection) Remove(index int) (Feed, error) {
	if index < 0 || index >= len(c.Feeds) {
		return Feed{}, fmt.Errorf("feed index %d out of range [0, %d)", index, len(c.Feeds))
	}
	removed := c.Feeds[index]
	c.Feeds = append(c.Feeds[:index], c.Feeds[index+1:]...)
	return removed, nil
}
