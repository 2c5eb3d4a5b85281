package editor

import "cellsketch/internal/geom"

type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerDown
	PointerDrag
	PointerUp
	PointerDragEnd
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerDrag:
		return "drag"
	case PointerUp:
		return "up"
	case PointerDragEnd:
		return "drag-end"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer action at a canvas cell.
type PointerEvent struct {
	Kind  PointerKind
	X, Y  int
	Shift bool
}

func (e PointerEvent) Point() geom.Point { return geom.Point{X: e.X, Y: e.Y} }

// Logical key names understood by the editor.
const (
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyEnter     = "enter"
	KeyEscape    = "esc"
)

// KeyEvent is a key press. Rune holds the typed character for printable
// keys and is zero otherwise.
type KeyEvent struct {
	Key   string
	Rune  rune
	Ctrl  bool
	Shift bool
	Meta  bool
}

// IsInterrupt reports whether the key must reach the host even while a text
// run is being edited.
func (e KeyEvent) IsInterrupt() bool {
	return e.Ctrl && e.Key == "c"
}

// Effect tells the host what to do after an event was handled.
type Effect uint8

const (
	// EffectRedraw requests a repaint.
	EffectRedraw Effect = 1 << iota
	// EffectBlinkStart asks the host to start ticking the caret for the
	// current blink session.
	EffectBlinkStart
	// EffectBlinkStop ends the blink session.
	EffectBlinkStop
)

func (e Effect) Has(f Effect) bool { return e&f != 0 }
