package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"

	"github.com/glabrego/rss-cli/internal/feed"
)

const defaultUserAgent = "rss-cli/1.0"

// FetchError reports a network or parse failure for one feed URL.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	userAgent string
	http      *http.Client
}

// NewClient builds a fetch client. A nil httpClient gets a client with no
// timeout beyond what the transport enforces.
func NewClient(userAgent string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	return &Client{userAgent: userAgent, http: httpClient}
}

// NewClientWithTimeout is NewClient with an overall request timeout; zero
// means none.
func NewClientWithTimeout(userAgent string, timeout time.Duration) *Client {
	return NewClient(userAgent, &http.Client{Timeout: timeout})
}

// FetchFeed downloads and parses the feed at feedURL. The returned title is
// empty when the feed has none.
func (c *Client) FetchFeed(ctx context.Context, feedURL string) (string, []feed.Entry, error) {
	start := time.Now()
	title, entries, err := c.fetchFeed(ctx, feedURL)
	fields := log.Fields{"url": feedURL, "duration": time.Since(start)}
	if err != nil {
		log.WithFields(fields).WithError(err).Warn("feed fetch failed")
		return "", nil, &FetchError{URL: feedURL, Err: err}
	}
	fields["entries"] = len(entries)
	log.WithFields(fields).Debug("feed fetched")
	return title, entries, nil
}

func (c *Client) fetchFeed(ctx context.Context, feedURL string) (string, []feed.Entry, error) {
	if err := validateFeedURL(feedURL); err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			return "", nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return "", nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("parse feed: %w", err)
	}
	title, entries := convertFeed(parsed)
	return title, entries, nil
}

func convertFeed(parsed *gofeed.Feed) (string, []feed.Entry) {
	entries := make([]feed.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, convertItem(item))
	}
	return plainText(parsed.Title), entries
}

func convertItem(item *gofeed.Item) feed.Entry {
	entry := feed.Entry{Title: plainText(item.Title)}
	if entry.Title == "" {
		entry.Title = feed.UntitledLabel
	}

	for _, link := range item.Links {
		if link = strings.TrimSpace(link); link != "" {
			entry.Link = link
			break
		}
	}
	if entry.Link == "" {
		entry.Link = strings.TrimSpace(item.Link)
	}

	switch {
	case item.PublishedParsed != nil:
		entry.Published = item.PublishedParsed.UTC().Format(time.RFC3339)
	case item.UpdatedParsed != nil:
		entry.Published = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	return entry
}

func validateFeedURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL format")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL host")
	}
	return nil
}
