package state

import (
	"github.com/glabrego/rss-cli/internal/feed"
)

// PageJump is the distance moved by page-up and page-down.
const PageJump = 5

type Focus int

const (
	FocusFeeds Focus = iota
	FocusItems
)

func (f Focus) String() string {
	if f == FocusItems {
		return "items"
	}
	return "feeds"
}

// FeedSelection is either the merged "All feeds" view or one specific feed.
// The zero value selects All.
type FeedSelection struct {
	specific bool
	index    int
}

func AllFeeds() FeedSelection {
	return FeedSelection{}
}

// SpecificFeed selects the feed at the 0-based collection index.
func SpecificFeed(index int) FeedSelection {
	return FeedSelection{specific: true, index: index}
}

// FeedSelectionFromRow maps a feed-pane row (0 is All, row n is feed n-1)
// to a selection.
func FeedSelectionFromRow(row int) FeedSelection {
	if row <= 0 {
		return AllFeeds()
	}
	return SpecificFeed(row - 1)
}

func (s FeedSelection) IsAll() bool {
	return !s.specific
}

// Feed returns the 0-based collection index when a specific feed is selected.
func (s FeedSelection) Feed() (int, bool) {
	return s.index, s.specific
}

// Row is the feed-pane row for the selection.
func (s FeedSelection) Row() int {
	if !s.specific {
		return 0
	}
	return s.index + 1
}

// ItemSelection is an index into the current items view, or none.
// The zero value is none.
type ItemSelection struct {
	valid bool
	index int
}

func NoItem() ItemSelection {
	return ItemSelection{}
}

func ItemAt(index int) ItemSelection {
	return ItemSelection{valid: true, index: index}
}

func (s ItemSelection) Index() (int, bool) {
	return s.index, s.valid
}

// Selection is the session-scoped navigation state across the two panes.
type Selection struct {
	Feed  FeedSelection
	Item  ItemSelection
	Focus Focus
}

// SelectedFeed resolves the selected feed against c. It reports false for
// All and for an index that no longer exists.
func (s Selection) SelectedFeed(c *feed.Collection) (*feed.Feed, int, bool) {
	idx, ok := s.Feed.Feed()
	if !ok || idx < 0 || idx >= c.Len() {
		return nil, -1, false
	}
	return &c.Feeds[idx], idx, true
}

// Move applies delta to whichever pane has focus.
func (s *Selection) Move(delta int, c *feed.Collection) {
	switch s.Focus {
	case FocusFeeds:
		s.MoveFeed(delta, c)
	case FocusItems:
		s.MoveItem(delta, c)
	}
}

// MoveFeed moves within rows 0..feedCount, clamping at both ends, then
// revalidates the item selection against the new view.
func (s *Selection) MoveFeed(delta int, c *feed.Collection) {
	rows := c.Len() + 1
	next := ClampCursor(s.Feed.Row()+delta, rows)
	s.Feed = FeedSelectionFromRow(next)
	s.EnsureItemSelection(ItemCount(s.Feed, c))
}

// MoveItem moves within the current items view; an empty view leaves no item
// selected.
func (s *Selection) MoveItem(delta int, c *feed.Collection) {
	count := ItemCount(s.Feed, c)
	if count == 0 {
		s.Item = NoItem()
		return
	}
	current, _ := s.Item.Index()
	s.Item = ItemAt(ClampCursor(current+delta, count))
}

// SelectFeed selects the feed at the 0-based index and revalidates the item
// selection.
func (s *Selection) SelectFeed(index int, c *feed.Collection) {
	s.Feed = SpecificFeed(index)
	s.EnsureItemSelection(ItemCount(s.Feed, c))
}

// SelectAll selects the merged view and revalidates the item selection.
func (s *Selection) SelectAll(c *feed.Collection) {
	s.Feed = AllFeeds()
	s.EnsureItemSelection(ItemCount(s.Feed, c))
}

// EnsureItemSelection keeps the item selection valid for a view of n items:
// none when n is zero, otherwise the previous index (or 0) clamped to n-1.
func (s *Selection) EnsureItemSelection(n int) {
	if n <= 0 {
		s.Item = NoItem()
		return
	}
	current, _ := s.Item.Index()
	s.Item = ItemAt(ClampCursor(current, n))
}

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
