// Package editor is the interaction state machine of the canvas. It turns
// pointer and key events into document mutations, keeping selection, hover,
// text editing and undo history consistent.
//
// EditorState is a value: every handler takes the current state and returns
// the next one together with an Effect for the host. The document, history
// and selection it points at are shared between a state and its successor.
package editor

import (
	"cellsketch/internal/doc"
	"cellsketch/internal/geom"
	"cellsketch/internal/history"
	"cellsketch/internal/selection"
)

type Mode int

const (
	ModeIdle Mode = iota
	ModeTextEditing
	ModeDrawing
	ModeBoxSelecting
	ModeDragging
	ModeResizingRect
	ModeResizingLine
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeTextEditing:
		return "EDIT"
	case ModeDrawing:
		return "DRAW"
	case ModeBoxSelecting:
		return "SELECT"
	case ModeDragging:
		return "MOVE"
	case ModeResizingRect, ModeResizingLine:
		return "RESIZE"
	default:
		return "UNKNOWN"
	}
}

type Tool int

const (
	ToolMove Tool = iota
	ToolText
	ToolRect
	ToolLine
)

func (t Tool) String() string {
	switch t {
	case ToolMove:
		return "move"
	case ToolText:
		return "text"
	case ToolRect:
		return "rectangle"
	case ToolLine:
		return "line"
	default:
		return "unknown"
	}
}

type EditorState struct {
	Doc       *doc.Document
	History   *history.Manager
	Selection *selection.Set
	Tool      Tool
	Mode      Mode
	Bounds    geom.Size
	// Pen is the style given to new shapes and typed characters.
	Pen doc.Style

	hover    geom.Point
	hovering bool

	gesture gesture
	edit    textEdit
	blink   blink
}

// gesture is the transient state of one pointer press.
type gesture struct {
	start  geom.Point
	last   geom.Point
	anchor geom.Point
	cursor geom.Point
	moved  bool

	// before is the document as it was at pointer-down; it is recorded in
	// history on the first mutation of the gesture.
	before   *doc.Document
	recorded bool

	armed    bool
	armedRef doc.Ref
	armedCol int

	// narrow is set when a plain press lands on an already selected
	// entity; a release without movement then selects clicked alone.
	narrow  bool
	clicked doc.Ref

	target   int
	handle   geom.Handle
	xCorner  doc.Corner
	yCorner  doc.Corner
	endpoint doc.Corner
}

type textEdit struct {
	id    int
	caret int
}

type blink struct {
	session int
	visible bool
}

func New(bounds geom.Size) EditorState {
	return EditorState{
		Doc:       doc.New(),
		History:   history.New(),
		Selection: selection.New(),
		Tool:      ToolMove,
		Mode:      ModeIdle,
		Bounds:    bounds,
	}
}

// Hovered resolves the entity under the last pointer position, preferring
// text runs, then rectangles, then lines.
func (s EditorState) Hovered() (doc.Ref, bool) {
	if !s.hovering {
		return doc.Ref{}, false
	}
	for _, k := range doc.Kinds {
		if ref, ok := s.Doc.TopAt(k, s.hover); ok {
			return ref, true
		}
	}
	return doc.Ref{}, false
}

// HoverPoint is the last pointer cell, if the pointer has been seen.
func (s EditorState) HoverPoint() (geom.Point, bool) {
	return s.hover, s.hovering
}

// Editing returns the run being edited and the caret column.
func (s EditorState) Editing() (id, caret int, ok bool) {
	if s.Mode != ModeTextEditing {
		return 0, 0, false
	}
	return s.edit.id, s.edit.caret, true
}

// Draft returns the shape being drawn for preview.
func (s EditorState) Draft() (tool Tool, a, b geom.Point, ok bool) {
	if s.Mode != ModeDrawing {
		return s.Tool, geom.Point{}, geom.Point{}, false
	}
	return s.Tool, s.gesture.anchor, s.gesture.cursor, true
}

// Marquee returns the box-selection rectangle in progress.
func (s EditorState) Marquee() (geom.Rect, bool) {
	if s.Mode != ModeBoxSelecting {
		return geom.Rect{}, false
	}
	return geom.NormalizeRect(s.gesture.anchor, s.gesture.cursor), true
}

func (s EditorState) BlinkSession() int  { return s.blink.session }
func (s EditorState) CaretVisible() bool { return s.Mode == ModeTextEditing && s.blink.visible }

// resetTransient drops every piece of UI state that does not belong to the
// document.
func (s *EditorState) resetTransient() Effect {
	fx := EffectRedraw
	if s.Mode == ModeTextEditing {
		fx |= s.stopBlink()
	}
	s.Mode = ModeIdle
	s.gesture = gesture{}
	s.edit = textEdit{}
	s.hovering = false
	s.Selection.Clear()
	return fx
}
