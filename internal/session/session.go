// Package session holds the interactive reader's state machine: the loaded
// collection, the two-pane selection, the input mode, and the edit
// operations that mutate them.
//
// Nothing here performs I/O. Key handling and edit operations return an
// Outcome describing the fetch or save the caller must carry out, and fetch
// results are fed back through ApplyFetch.
package session

import (
	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/tui/state"
)

// Mode is Normal or AddingURL.
type Mode interface {
	isMode()
}

// Normal is the navigation and command mode.
type Normal struct{}

// AddingURL edits a single-line URL buffer.
type AddingURL struct {
	Buffer string
}

func (Normal) isMode()    {}
func (AddingURL) isMode() {}

type FetchKind int

const (
	FetchAdd FetchKind = iota
	FetchRefresh
)

func (k FetchKind) String() string {
	if k == FetchRefresh {
		return "refresh"
	}
	return "add"
}

// FetchRequest asks the caller to fetch URL and hand the result to
// ApplyFetch.
type FetchRequest struct {
	Kind FetchKind
	URL  string
}

// Outcome tells the caller what to do after a key was handled.
type Outcome struct {
	Quit    bool
	Fetch   *FetchRequest
	Persist bool
}

type Session struct {
	Collection feed.Collection
	Selection  state.Selection
	Mode       Mode
	Status     string

	pending *FetchRequest
}

// New starts a session over c in Normal mode with All selected.
func New(c feed.Collection) *Session {
	s := &Session{Collection: c, Mode: Normal{}}
	s.Selection.SelectAll(&s.Collection)
	return s
}

// Busy reports whether a fetch has been requested and not yet applied.
func (s *Session) Busy() bool {
	return s.pending != nil
}

// Pending returns the in-flight fetch request, if any.
func (s *Session) Pending() (FetchRequest, bool) {
	if s.pending == nil {
		return FetchRequest{}, false
	}
	return *s.pending, true
}

// Input is the URL buffer while adding, and empty otherwise.
func (s *Session) Input() (string, bool) {
	if m, ok := s.Mode.(AddingURL); ok {
		return m.Buffer, true
	}
	return "", false
}

// Items is the current items pane view.
func (s *Session) Items() []state.DisplayEntry {
	return state.ItemsView(s.Selection.Feed, &s.Collection)
}
