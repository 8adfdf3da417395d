package session

import (
	"strings"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/tui/state"
)

// SubmitURL starts adding the feed at raw. Blank input is rejected with a
// status message and no fetch.
func (s *Session) SubmitURL(raw string) *FetchRequest {
	url := strings.TrimSpace(raw)
	if url == "" {
		s.Status = "URL cannot be empty."
		return nil
	}
	return s.request(FetchAdd, url)
}

// RequestRefresh re-fetches the selected feed. All is not refreshable.
func (s *Session) RequestRefresh() *FetchRequest {
	f, _, ok := s.Selection.SelectedFeed(&s.Collection)
	if !ok {
		s.Status = "Select a feed to refresh."
		return nil
	}
	return s.request(FetchRefresh, f.URL)
}

func (s *Session) request(kind FetchKind, url string) *FetchRequest {
	req := &FetchRequest{Kind: kind, URL: url}
	s.pending = req
	if kind == FetchRefresh {
		s.Status = "Refreshing " + url + "..."
	} else {
		s.Status = "Fetching " + url + "..."
	}
	return req
}

// ApplyFetch completes req with the fetch result. A failed fetch leaves the
// collection untouched and reports the error in the status line. On success
// the feed is upserted and selected, and ApplyFetch returns true: the caller
// must persist the collection.
func (s *Session) ApplyFetch(req FetchRequest, title string, items []feed.Entry, err error) bool {
	s.pending = nil
	if err != nil {
		s.Status = "Error: " + err.Error()
		return false
	}

	idx := s.Collection.Upsert(req.URL, title, items)
	s.Selection.SelectFeed(idx, &s.Collection)
	if req.Kind == FetchRefresh {
		s.Status = "Refreshed " + req.URL
	} else {
		s.Status = "Added " + req.URL
	}
	return true
}

// Delete removes the selected feed and reports whether the collection
// changed. Afterwards the feed that slid into the removed slot is selected,
// or the new last feed, or All once the collection is empty.
func (s *Session) Delete() bool {
	_, idx, ok := s.Selection.SelectedFeed(&s.Collection)
	if !ok {
		s.Status = "Select a feed to delete."
		return false
	}
	removed, err := s.Collection.Remove(idx)
	if err != nil {
		s.Status = err.Error()
		return false
	}

	if s.Collection.Len() == 0 {
		s.Selection.Feed = state.AllFeeds()
		s.Selection.Item = state.NoItem()
	} else {
		row := min(idx+1, s.Collection.Len())
		s.Selection.Feed = state.FeedSelectionFromRow(row)
		s.Selection.EnsureItemSelection(state.ItemCount(s.Selection.Feed, &s.Collection))
	}
	s.Status = "Removed " + removed.URL
	return true
}
