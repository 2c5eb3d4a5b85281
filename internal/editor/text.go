package editor

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"cellsketch/internal/doc"
	"cellsketch/internal/geom"
)

// HandleKey offers a key to the state machine. The returned bool is false
// when the key was not consumed and should go to the host's binding table.
func (s EditorState) HandleKey(ev KeyEvent) (EditorState, Effect, bool) {
	if s.Mode == ModeTextEditing {
		if ev.IsInterrupt() {
			return s, 0, false
		}
		fx := s.editKey(ev)
		return s, fx, true
	}

	// Escape ends a pointer gesture early. Drafts and marquees are dropped;
	// drags and resizes keep what they already applied.
	if ev.Key == KeyEscape && s.Mode != ModeIdle {
		Logger().Debug("gesture aborted", "mode", s.Mode)
		s.Mode = ModeIdle
		s.gesture = gesture{}
		return s, EffectRedraw, true
	}
	return s, 0, false
}

func (s *EditorState) editKey(ev KeyEvent) Effect {
	t, ok := s.Doc.Texts[s.edit.id]
	if !ok {
		return s.commitEdit()
	}
	id := t.ID
	s.blink.visible = true

	switch ev.Key {
	case KeyEnter, KeyEscape:
		return s.commitEdit()
	case KeyLeft:
		s.edit.caret = max(0, s.edit.caret-1)
	case KeyRight:
		s.edit.caret = min(len(t.Chars), s.edit.caret+1)
	case KeyHome:
		s.edit.caret = 0
	case KeyEnd:
		s.edit.caret = len(t.Chars)
	case KeyBackspace:
		if s.edit.caret == 0 {
			return EffectRedraw
		}
		s.History.Snapshot(s.Doc)
		s.Doc.RemoveChar(id, s.edit.caret-1)
		s.edit.caret--
	case KeyDelete:
		if s.edit.caret >= len(t.Chars) {
			return EffectRedraw
		}
		s.History.Snapshot(s.Doc)
		s.Doc.RemoveChar(id, s.edit.caret)
	default:
		if ev.Ctrl && ev.Key == "b" {
			s.Pen.Bold = !s.Pen.Bold
			return EffectRedraw
		}
		if ev.Ctrl || ev.Meta || !Typeable(ev.Rune) {
			return 0
		}
		if t.Pos.X+len(t.Chars) >= s.Bounds.W {
			return 0
		}
		s.History.Snapshot(s.Doc)
		s.Doc.InsertChar(id, s.edit.caret, doc.Char{Ch: ev.Rune, Bold: s.Pen.Bold})
		s.edit.caret++
	}
	return EffectRedraw
}

// Typeable reports whether r can be stored as one canvas cell.
func Typeable(r rune) bool {
	return r != 0 && unicode.IsPrint(r) && runewidth.RuneWidth(r) == 1
}

func (s *EditorState) beginEdit(id, col int) Effect {
	t, ok := s.Doc.Texts[id]
	if !ok {
		return 0
	}
	s.Mode = ModeTextEditing
	s.edit = textEdit{id: id, caret: geom.Clamp(col, 0, len(t.Chars))}
	Logger().Debug("edit begin", "id", id, "caret", s.edit.caret)
	return EffectRedraw | s.startBlink()
}

// commitEdit leaves TextEditing, deleting the run if nothing was typed into
// it. The deletion is not recorded: the run's creation already was.
func (s *EditorState) commitEdit() Effect {
	if s.Mode != ModeTextEditing {
		return 0
	}
	id := s.edit.id
	if t, ok := s.Doc.Texts[id]; ok && len(t.Chars) == 0 {
		s.Doc.Delete(t.Ref())
		s.Selection.Remove(t.Ref())
		Logger().Debug("empty run dropped", "id", id)
	}
	s.Mode = ModeIdle
	s.Tool = ToolMove
	s.edit = textEdit{}
	return EffectRedraw | s.stopBlink()
}

func (s *EditorState) startBlink() Effect {
	s.blink.session++
	s.blink.visible = true
	return EffectBlinkStart
}

func (s *EditorState) stopBlink() Effect {
	s.blink.session++
	s.blink.visible = false
	return EffectBlinkStop
}

// HandleBlink toggles the caret for a tick of the given blink session.
// Ticks from an ended session are dropped.
func (s EditorState) HandleBlink(session int) (EditorState, Effect) {
	if s.Mode != ModeTextEditing || session != s.blink.session {
		return s, 0
	}
	s.blink.visible = !s.blink.visible
	return s, EffectRedraw
}
