package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/storage"
)

type fakeFetcher struct {
	title   string
	entries []feed.Entry
	err     error
	calls   []string
}

func (f *fakeFetcher) FetchFeed(_ context.Context, url string) (string, []feed.Entry, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return "", nil, f.err
	}
	return f.title, f.entries, nil
}

func TestService_ShowFeed_UsesTitleAsLabel(t *testing.T) {
	fetcher := &fakeFetcher{title: "Example", entries: []feed.Entry{{Title: "One", Link: "https://example.com/1"}}}
	svc := NewService(fetcher)

	var buf bytes.Buffer
	if err := svc.ShowFeed(context.Background(), &buf, "https://example.com/feed"); err != nil {
		t.Fatalf("ShowFeed returned error: %v", err)
	}
	want := "Feed: Example\n- One | https://example.com/1\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestService_ShowFeed_FallsBackToURL(t *testing.T) {
	svc := NewService(&fakeFetcher{})

	var buf bytes.Buffer
	if err := svc.ShowFeed(context.Background(), &buf, "https://example.com/feed"); err != nil {
		t.Fatalf("ShowFeed returned error: %v", err)
	}
	if buf.String() != "Feed: https://example.com/feed\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestService_ShowFeed_PropagatesFetchError(t *testing.T) {
	svc := NewService(&fakeFetcher{err: errors.New("boom")})

	var buf bytes.Buffer
	if err := svc.ShowFeed(context.Background(), &buf, "https://example.com/feed"); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output on error, got %q", buf.String())
	}
}

func TestService_ShowDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "feeds.json")
	c := feed.Collection{Feeds: []feed.Feed{
		{Title: "A", URL: "https://a.example/feed", Items: []feed.Entry{{Title: "a1"}}},
		{URL: "https://b.example/feed", Items: []feed.Entry{{Title: "b1", Published: "2024-01-01T00:00:00Z"}}},
	}}
	if err := storage.Save(ctx, path, c); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	svc := NewService(&fakeFetcher{})
	var buf bytes.Buffer
	if err := svc.ShowDatabase(ctx, &buf, path, "https://b.example/feed"); err != nil {
		t.Fatalf("ShowDatabase returned error: %v", err)
	}
	want := "Feed: Untitled (https://b.example/feed)\n- b1 | 2024-01-01T00:00:00Z\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestService_ShowDatabase_MissingFile(t *testing.T) {
	svc := NewService(&fakeFetcher{})
	err := svc.ShowDatabase(context.Background(), &bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.json"), "")
	var storageErr *storage.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected StorageError, got %v", err)
	}
}
