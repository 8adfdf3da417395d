package actions

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/session"
)

var errNoFetcher = errors.New("no feed fetcher configured")

type Fetcher interface {
	FetchFeed(ctx context.Context, url string) (string, []feed.Entry, error)
}

type FetchSuccessMsg struct {
	Request  session.FetchRequest
	Title    string
	Entries  []feed.Entry
	Duration time.Duration
}

type FetchErrorMsg struct {
	Request  session.FetchRequest
	Err      error
	Duration time.Duration
}

// FetchCmd downloads the feed named by req. A timeout of zero or less leaves
// the request bounded only by the HTTP client.
func FetchCmd(fetcher Fetcher, req session.FetchRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if fetcher == nil {
			return FetchErrorMsg{Request: req, Err: errNoFetcher}
		}
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		start := time.Now()

		title, entries, err := fetcher.FetchFeed(ctx, req.URL)
		if err != nil {
			return FetchErrorMsg{Request: req, Err: err, Duration: time.Since(start)}
		}
		return FetchSuccessMsg{Request: req, Title: title, Entries: entries, Duration: time.Since(start)}
	}
}
