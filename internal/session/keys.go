package session

import (
	"github.com/glabrego/rss-cli/internal/tui/state"
)

// KeyCode is the logical key of a key press.
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
)

// Key is one key press. Rune is set for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
	Ctrl bool
}

func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

func CtrlKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r, Ctrl: true}
}

func isInterrupt(k Key) bool {
	return k.Code == KeyRune && k.Ctrl && k.Rune == 'c'
}

// HandleKey processes exactly one key press. While a fetch is pending every
// key except Ctrl+C is dropped.
func (s *Session) HandleKey(k Key) Outcome {
	if isInterrupt(k) {
		return Outcome{Quit: true}
	}
	if s.Busy() {
		return Outcome{}
	}
	switch m := s.Mode.(type) {
	case AddingURL:
		return s.handleAddingURL(m, k)
	case Normal:
		return s.handleNormal(k)
	default:
		s.Mode = Normal{}
		return Outcome{}
	}
}

func (s *Session) handleAddingURL(m AddingURL, k Key) Outcome {
	switch k.Code {
	case KeyEscape:
		s.Mode = Normal{}
		s.Status = "Add cancelled."
	case KeyEnter:
		s.Mode = Normal{}
		if req := s.SubmitURL(m.Buffer); req != nil {
			return Outcome{Fetch: req}
		}
	case KeyBackspace:
		if buf := []rune(m.Buffer); len(buf) > 0 {
			s.Mode = AddingURL{Buffer: string(buf[:len(buf)-1])}
		}
	case KeyRune:
		if k.Ctrl {
			return Outcome{}
		}
		s.Mode = AddingURL{Buffer: m.Buffer + string(k.Rune)}
	}
	return Outcome{}
}

func (s *Session) handleNormal(k Key) Outcome {
	switch k.Code {
	case KeyEscape:
		return Outcome{Quit: true}
	case KeyRune:
		return s.handleNormalRune(k.Rune)
	case KeyTab, KeyRight:
		s.Selection.Focus = state.FocusItems
	case KeyLeft:
		s.Selection.Focus = state.FocusFeeds
	case KeyUp:
		s.Selection.Move(-1, &s.Collection)
	case KeyDown:
		s.Selection.Move(1, &s.Collection)
	case KeyPageUp:
		s.Selection.Move(-state.PageJump, &s.Collection)
	case KeyPageDown:
		s.Selection.Move(state.PageJump, &s.Collection)
	}
	return Outcome{}
}

func (s *Session) handleNormalRune(r rune) Outcome {
	switch r {
	case 'q':
		return Outcome{Quit: true}
	case 'a':
		s.Mode = AddingURL{}
		s.Status = "Enter feed URL."
	case 'r':
		if req := s.RequestRefresh(); req != nil {
			return Outcome{Fetch: req}
		}
	case 'd':
		return Outcome{Persist: s.Delete()}
	case 'k':
		s.Selection.Move(-1, &s.Collection)
	case 'j':
		s.Selection.Move(1, &s.Collection)
	}
	return Outcome{}
}
