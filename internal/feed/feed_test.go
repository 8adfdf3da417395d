package feed

import (
	"reflect"
	"testing"
)

func TestCollection_FindFeed(t *testing.T) {
	c := Collection{Feeds: []Feed{
		{URL: "https://a.example/feed"},
		{URL: "https://b.example/feed"},
	}}

	f, idx, ok := c.FindFeed("https://b.example/feed")
	if !ok || idx != 1 || f.URL != "https://b.example/feed" {
		t.Fatalf("unexpected lookup result: ok=%v idx=%d feed=%+v", ok, idx, f)
	}
	if _, _, ok := c.FindFeed("https://b.example/feed/"); ok {
		t.Fatal("expected exact URL match only")
	}
}

func TestCollection_UpsertAppendsThenReplaces(t *testing.T) {
	var c Collection
	idx := c.Upsert("https://a.example/feed", "A", []Entry{{Title: "one"}, {Title: "two"}})
	if idx != 0 || c.Len() != 1 {
		t.Fatalf("expected first feed at index 0, got idx=%d len=%d", idx, c.Len())
	}
	c.Upsert("https://b.example/feed", "", nil)

	idx = c.Upsert("https://a.example/feed", "A2", []Entry{{Title: "three"}})
	if idx != 0 {
		t.Fatalf("expected existing index 0, got %d", idx)
	}
	if c.Len() != 2 {
		t.Fatalf("expected no duplicate feed, got %d feeds", c.Len())
	}
	if c.Feeds[0].Title != "A2" || len(c.Feeds[0].Items) != 1 || c.Feeds[0].Items[0].Title != "three" {
		t.Fatalf("expected title and items replaced, got %+v", c.Feeds[0])
	}
}

func TestCollection_UpsertIsIdempotent(t *testing.T) {
	items := []Entry{{Title: "x", Link: "https://a.example/x", Published: "2024-01-01T00:00:00Z"}}

	var once Collection
	once.Upsert("https://a.example/feed", "A", items)

	var twice Collection
	twice.Upsert("https://a.example/feed", "A", items)
	twice.Upsert("https://a.example/feed", "A", items)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("upsert not idempotent:\nonce=%+v\ntwice=%+v", once, twice)
	}
}

func TestCollection_UpsertCopiesItems(t *testing.T) {
	items := []Entry{{Title: "x"}}
	var c Collection
	c.Upsert("https://a.example/feed", "A", items)
	items[0].Title = "mutated"
	if c.Feeds[0].Items[0].Title != "x" {
		t.Fatalf("collection aliases caller slice: %+v", c.Feeds[0].Items)
	}
}

func TestCollection_UpsertWithoutItemsKeepsEmptyList(t *testing.T) {
	var c Collection
	c.Upsert("https://e.example/feed", "E", nil)
	if c.Feeds[0].Items == nil || len(c.Feeds[0].Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", c.Feeds[0].Items)
	}
}

func TestCollection_LenOnValue(t *testing.T) {
	c := Collection{Feeds: []Feed{{URL: "a"}, {URL: "b"}}}
	lenOf := func(c Collection) int { return c.Len() }
	if got := lenOf(c); got != 2 {
		t.Fatalf("expected 2 feeds, got %d", got)
	}
}

func TestCollection_Remove(t *testing.T) {
	c := Collection{Feeds: []Feed{{URL: "a"}, {URL: "b"}, {URL: "c"}}}

	removed, err := c.Remove(1)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if removed.URL != "b" {
		t.Fatalf("removed wrong feed: %+v", removed)
	}
	if c.Len() != 2 || c.Feeds[0].URL != "a" || c.Feeds[1].URL != "c" {
		t.Fatalf("unexpected feeds after remove: %+v", c.Feeds)
	}

	if _, err := c.Remove(2); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := c.Remove(-1); err == nil {
		t.Fatal("expected out of range error for negative index")
	}
	if c.Len() != 2 {
		t.Fatalf("failed remove must not mutate, got %d feeds", c.Len())
	}
}

func TestFeed_DisplayTitle(t *testing.T) {
	if got := (Feed{}).DisplayTitle(); got != UntitledLabel {
		t.Fatalf("expected %q, got %q", UntitledLabel, got)
	}
	if got := (Feed{Title: "Go Blog"}).DisplayTitle(); got != "Go Blog" {
		t.Fatalf("unexpected title: %q", got)
	}
}
