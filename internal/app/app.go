package app

import (
	"context"
	"fmt"
	"io"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/render"
	"github.com/glabrego/rss-cli/internal/storage"
)

// Fetcher retrieves one feed by URL.
type Fetcher interface {
	FetchFeed(ctx context.Context, url string) (string, []feed.Entry, error)
}

// Service runs the non-interactive commands.
type Service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// ShowDatabase prints the collection stored at path. A missing file is an
// error here; only the interactive session starts from an empty collection.
func (s *Service) ShowDatabase(ctx context.Context, w io.Writer, path, filterURL string) error {
	c, err := storage.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("load database: %w", err)
	}
	if err := render.Collection(w, c, filterURL); err != nil {
		return fmt.Errorf("render database: %w", err)
	}
	return nil
}

// ShowFeed fetches url and prints its entries labelled with the feed title,
// or the URL when the feed has no title.
func (s *Service) ShowFeed(ctx context.Context, w io.Writer, url string) error {
	title, items, err := s.fetcher.FetchFeed(ctx, url)
	if err != nil {
		return err
	}
	label := title
	if label == "" {
		label = url
	}
	if err := render.Items(w, label, items); err != nil {
		return fmt.Errorf("render feed: %w", err)
	}
	return nil
}
