package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/glabrego/rss-cli/internal/feed"
	"github.com/glabrego/rss-cli/internal/session"
	tuiactions "github.com/glabrego/rss-cli/internal/tui/actions"
	"github.com/glabrego/rss-cli/internal/tui/state"
	tuitheme "github.com/glabrego/rss-cli/internal/tui/theme"
	tuiview "github.com/glabrego/rss-cli/internal/tui/view"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	saveTimeout   = 5 * time.Second
)

// Store persists the whole collection after every change.
type Store interface {
	Save(ctx context.Context, c feed.Collection) error
}

type Model struct {
	session      *session.Session
	fetcher      tuiactions.Fetcher
	store        Store
	fetchTimeout time.Duration
	theme        tuitheme.Theme
	spinner      spinner.Model
	width        int
	height       int
	err          error
}

func NewModel(fetcher tuiactions.Fetcher, store Store, c feed.Collection) Model {
	th := tuitheme.Default()
	return Model{
		session: session.New(c),
		fetcher: fetcher,
		store:   store,
		theme:   th,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(th.Spinner)),
	}
}

// SetFetchTimeout bounds each fetch; zero leaves it to the HTTP client.
func (m *Model) SetFetchTimeout(d time.Duration) {
	m.fetchTimeout = d
}

// Err is the error that ended the session, if any. A failed save is fatal.
func (m Model) Err() error {
	return m.err
}

// Collection is the current in-memory collection.
func (m Model) Collection() feed.Collection {
	return m.session.Collection
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		var cmds []tea.Cmd
		for i, k := range translateKey(msg) {
			// Only URL input takes pasted runes; otherwise one key per event.
			if _, adding := m.session.Input(); i > 0 && !adding {
				break
			}
			out := m.session.HandleKey(k)
			next, cmd := m.apply(out)
			m = next
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
			if out.Quit || out.Persist || out.Fetch != nil {
				break
			}
		}
		switch len(cmds) {
		case 0:
			return m, nil
		case 1:
			return m, cmds[0]
		}
		return m, tea.Batch(cmds...)
	case tuiactions.FetchSuccessMsg:
		log.WithFields(log.Fields{
			"url":      msg.Request.URL,
			"kind":     msg.Request.Kind,
			"entries":  len(msg.Entries),
			"duration": msg.Duration,
		}).Info("feed fetched")
		if m.session.ApplyFetch(msg.Request, msg.Title, msg.Entries, nil) {
			return m.persist()
		}
		return m, nil
	case tuiactions.FetchErrorMsg:
		log.WithFields(log.Fields{
			"url":      msg.Request.URL,
			"kind":     msg.Request.Kind,
			"duration": msg.Duration,
		}).WithError(msg.Err).Warn("feed fetch failed")
		m.session.ApplyFetch(msg.Request, "", nil, msg.Err)
		return m, nil
	case spinner.TickMsg:
		if !m.session.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) apply(out session.Outcome) (Model, tea.Cmd) {
	if out.Quit {
		return m, tea.Quit
	}
	if out.Persist {
		log.WithField("status", m.session.Status).Info("feed removed")
		next, cmd := m.persist()
		return next.(Model), cmd
	}
	if out.Fetch != nil {
		log.WithFields(log.Fields{"url": out.Fetch.URL, "kind": out.Fetch.Kind}).Debug("fetch requested")
		return m, tea.Batch(
			tuiactions.FetchCmd(m.fetcher, *out.Fetch, m.fetchTimeout),
			m.spinner.Tick,
		)
	}
	return m, nil
}

func (m Model) persist() (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.store.Save(ctx, m.session.Collection); err != nil {
		log.WithError(err).Error("save collection")
		m.err = fmt.Errorf("save collection: %w", err)
		return m, tea.Quit
	}
	log.WithField("feeds", m.session.Collection.Len()).Debug("collection saved")
	return m, nil
}

func (m Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	mainHeight := max(3, height-tuiview.StatusHeight)
	feedsWidth := width * 30 / 100
	itemsWidth := width - feedsWidth

	s := m.session
	sel := s.Selection

	feedsInnerWidth, feedsBodyHeight := tuiview.PaneBody(feedsWidth, mainHeight)
	feedLines := tuiview.RenderList(
		tuiview.FeedItems(&s.Collection, m.theme),
		sel.Feed.Row(), feedsInnerWidth, feedsBodyHeight, m.theme,
	)
	feeds := tuiview.Pane("Feeds", feedLines, feedsWidth, mainHeight, sel.Focus == state.FocusFeeds, m.theme)

	selectedItem := -1
	if idx, ok := sel.Item.Index(); ok {
		selectedItem = idx
	}
	itemsInnerWidth, itemsBodyHeight := tuiview.PaneBody(itemsWidth, mainHeight)
	itemLines := tuiview.RenderList(
		tuiview.EntryItems(s.Items(), sel.Feed.IsAll(), m.theme),
		selectedItem, itemsInnerWidth, itemsBodyHeight, m.theme,
	)
	items := tuiview.Pane("Entries", itemLines, itemsWidth, mainHeight, sel.Focus == state.FocusItems, m.theme)

	input, adding := s.Input()
	status := tuiview.StatusBar(
		tuiview.StatusText(input, adding, s.Status),
		m.spinner.View(), s.Busy(), width, m.theme,
	)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, feeds, items))
	b.WriteString("\n")
	b.WriteString(status)
	return b.String()
}

// translateKey maps a terminal key event to session keys. Pasted text
// arrives as one event carrying several runes.
func translateKey(msg tea.KeyMsg) []session.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []session.Key{{Code: session.KeyOther}}
		}
		keys := make([]session.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, session.RuneKey(r))
		}
		return keys
	case tea.KeySpace:
		return []session.Key{session.RuneKey(' ')}
	case tea.KeyEnter:
		return []session.Key{{Code: session.KeyEnter}}
	case tea.KeyEsc:
		return []session.Key{{Code: session.KeyEscape}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []session.Key{{Code: session.KeyBackspace}}
	case tea.KeyTab:
		return []session.Key{{Code: session.KeyTab}}
	case tea.KeyLeft:
		return []session.Key{{Code: session.KeyLeft}}
	case tea.KeyRight:
		return []session.Key{{Code: session.KeyRight}}
	case tea.KeyUp:
		return []session.Key{{Code: session.KeyUp}}
	case tea.KeyDown:
		return []session.Key{{Code: session.KeyDown}}
	case tea.KeyPgUp:
		return []session.Key{{Code: session.KeyPageUp}}
	case tea.KeyPgDown:
		return []session.Key{{Code: session.KeyPageDown}}
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return []session.Key{session.CtrlKey(rune('a' + int(msg.Type-tea.KeyCtrlA)))}
	}
	return []session.Key{{Code: session.KeyOther}}
}
