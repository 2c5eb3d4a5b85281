package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cellsketch/internal/editor"
)

// keyEvents translates a bubbletea key into editor key events. A burst of
// runes, as terminals deliver pastes, becomes one event per rune.
func keyEvents(msg tea.KeyMsg) []editor.KeyEvent {
	switch {
	case msg.Type == tea.KeySpace:
		return []editor.KeyEvent{{Key: " ", Rune: ' ', Meta: msg.Alt}}
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 1 && !msg.Alt:
		events := make([]editor.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, editor.KeyEvent{Key: string(r), Rune: r})
		}
		return events
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		r := msg.Runes[0]
		return []editor.KeyEvent{{Key: string(r), Rune: r, Meta: msg.Alt}}
	}

	ev := editor.KeyEvent{}
	name := msg.String()
	for {
		switch {
		case strings.HasPrefix(name, "ctrl+"):
			ev.Ctrl = true
			name = strings.TrimPrefix(name, "ctrl+")
			continue
		case strings.HasPrefix(name, "alt+"):
			ev.Meta = true
			name = strings.TrimPrefix(name, "alt+")
			continue
		case strings.HasPrefix(name, "shift+"):
			ev.Shift = true
			name = strings.TrimPrefix(name, "shift+")
			continue
		}
		break
	}
	ev.Key = name
	return []editor.KeyEvent{ev}
}

// pointerEvent translates a mouse message. Presses of buttons other than
// the left one, wheel events and presses outside the canvas are dropped.
func pointerEvent(msg tea.MouseMsg, canvasHeight int) (editor.PointerEvent, bool) {
	ev := editor.PointerEvent{X: msg.X, Y: msg.Y, Shift: msg.Shift}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y >= canvasHeight {
			return ev, false
		}
		ev.Kind = editor.PointerDown
	case tea.MouseActionRelease:
		ev.Kind = editor.PointerUp
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonNone {
			ev.Kind = editor.PointerMove
		} else {
			ev.Kind = editor.PointerDrag
		}
	default:
		return ev, false
	}
	return ev, true
}
