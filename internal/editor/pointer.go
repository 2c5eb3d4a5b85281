package editor

import (
	"cellsketch/internal/doc"
	"cellsketch/internal/geom"
)

// HandlePointer runs one pointer event through the state machine.
func (s EditorState) HandlePointer(ev PointerEvent) (EditorState, Effect) {
	p := geom.ClampPoint(ev.Point(), s.Bounds)
	s.hover, s.hovering = p, true

	fx := EffectRedraw
	switch ev.Kind {
	case PointerMove, PointerDrag:
		s.motion(p)
	case PointerDown:
		fx |= s.pointerDown(p, ev.Shift)
	case PointerUp, PointerDragEnd:
		s.motion(p)
		fx |= s.pointerUp()
	}
	return s, fx
}

func (s *EditorState) pointerDown(p geom.Point, shift bool) Effect {
	var fx Effect
	if s.Mode == ModeTextEditing {
		if t, ok := s.Doc.Texts[s.edit.id]; ok && t.Contains(p) {
			s.edit.caret = geom.Clamp(p.X-t.Pos.X, 0, len(t.Chars))
			s.blink.visible = true
			return 0
		}
		fx |= s.commitEdit()
	}
	s.Mode = ModeIdle
	s.gesture = gesture{start: p, last: p, anchor: p, cursor: p}

	switch s.Tool {
	case ToolText:
		s.Selection.Clear()
		if ref, ok := s.Doc.TopAt(doc.KindText, p); ok {
			t := s.Doc.Texts[ref.ID]
			return fx | s.beginEdit(ref.ID, p.X-t.Pos.X)
		}
		s.History.Snapshot(s.Doc)
		t := s.Doc.CreateText(p, s.Pen, s.Bounds)
		Logger().Debug("text run created", "id", t.ID, "x", t.Pos.X, "y", t.Pos.Y)
		return fx | s.beginEdit(t.ID, 0)
	case ToolRect, ToolLine:
		s.Selection.Clear()
		s.Mode = ModeDrawing
		return fx
	}

	if s.grabHandle(p) {
		return fx
	}
	for _, k := range doc.Kinds {
		ref, ok := s.Doc.TopAt(k, p)
		if !ok {
			continue
		}
		if single, ok := s.Selection.Single(); ok && single == ref && k == doc.KindText && !shift {
			s.gesture.armed = true
			s.gesture.armedRef = ref
			s.gesture.armedCol = p.X - s.Doc.Texts[ref.ID].Pos.X
		}
		switch {
		case shift:
			s.Selection.Toggle(ref)
		case !s.Selection.Has(ref):
			s.Selection.Replace(ref)
		default:
			s.gesture.narrow = true
			s.gesture.clicked = ref
		}
		s.Mode = ModeDragging
		s.gesture.before = s.Doc.Clone()
		return fx
	}

	if !shift {
		s.Selection.Clear()
	}
	s.Mode = ModeBoxSelecting
	return fx
}

// grabHandle starts a resize when p is on a handle of the single selected
// rectangle, or on an endpoint of the single selected line.
func (s *EditorState) grabHandle(p geom.Point) bool {
	g := &s.gesture
	if id, ok := s.Selection.SingleOf(doc.KindRect); ok {
		r := s.Doc.Rects[id]
		h := geom.ClassifyHandle(r.A, r.B, p)
		if h == geom.HandleNone {
			return false
		}
		g.target, g.handle = id, h
		if moves, minEdge := h.MovesX(); moves {
			g.xCorner = edgeCorner(r.A.X, r.B.X, minEdge)
		}
		if moves, minEdge := h.MovesY(); moves {
			g.yCorner = edgeCorner(r.A.Y, r.B.Y, minEdge)
		}
		g.before = s.Doc.Clone()
		s.Mode = ModeResizingRect
		Logger().Debug("resize", "rect", id, "handle", h)
		return true
	}
	if id, ok := s.Selection.SingleOf(doc.KindLine); ok {
		l := s.Doc.Lines[id]
		switch p {
		case l.A:
			g.endpoint = doc.CornerA
		case l.B:
			g.endpoint = doc.CornerB
		default:
			return false
		}
		g.target = id
		g.before = s.Doc.Clone()
		s.Mode = ModeResizingLine
		return true
	}
	return false
}

// edgeCorner picks the stored corner that currently forms the min or max
// edge along one axis.
func edgeCorner(a, b int, minEdge bool) doc.Corner {
	if (a <= b) == minEdge {
		return doc.CornerA
	}
	return doc.CornerB
}

func (s *EditorState) motion(p geom.Point) {
	g := &s.gesture
	switch s.Mode {
	case ModeDrawing, ModeBoxSelecting:
		g.cursor = p
		if p != g.start {
			g.moved = true
		}
	case ModeDragging:
		dx, dy := p.X-g.last.X, p.Y-g.last.Y
		if dx == 0 && dy == 0 {
			return
		}
		g.moved = true
		g.last = p
		if adx, ady := s.Doc.Translate(s.Selection.Refs(), dx, dy, s.Bounds); adx != 0 || ady != 0 {
			s.record()
		}
	case ModeResizingRect:
		r, ok := s.Doc.Rects[g.target]
		if !ok || p == g.last {
			return
		}
		g.moved = true
		g.last = p
		old := *r
		s.Doc.SetCorner(g.target, g.xCorner, g.yCorner, p, s.Bounds)
		if *r != old {
			s.record()
		}
	case ModeResizingLine:
		l, ok := s.Doc.Lines[g.target]
		if !ok || p == g.last {
			return
		}
		g.moved = true
		g.last = p
		old := *l
		s.Doc.SetEndpoint(g.target, g.endpoint, p, s.Bounds)
		if *l != old {
			s.record()
		}
	}
}

// record pushes the pointer-down document onto the undo stack the first
// time the gesture mutates anything.
func (s *EditorState) record() {
	g := &s.gesture
	if g.recorded || g.before == nil {
		return
	}
	s.History.Record(g.before)
	g.recorded = true
}

func (s *EditorState) pointerUp() Effect {
	if s.Mode == ModeIdle || s.Mode == ModeTextEditing {
		return 0
	}
	g := s.gesture
	mode := s.Mode
	s.Mode = ModeIdle
	s.gesture = gesture{}

	switch mode {
	case ModeDrawing:
		s.commitDraft(g.anchor, g.cursor)
	case ModeBoxSelecting:
		if !g.moved {
			return 0
		}
		for _, ref := range s.Doc.Intersecting(geom.NormalizeRect(g.anchor, g.cursor)) {
			s.Selection.Add(ref)
		}
	case ModeDragging:
		if g.moved {
			return 0
		}
		if g.narrow {
			s.Selection.Replace(g.clicked)
		}
		if !g.armed {
			return 0
		}
		if single, ok := s.Selection.Single(); ok && single == g.armedRef {
			return s.beginEdit(single.ID, g.armedCol)
		}
	}
	return 0
}

// commitDraft turns a finished draw gesture into a shape. Zero-extent
// drafts produce nothing.
func (s *EditorState) commitDraft(a, b geom.Point) {
	if a == b || (s.Tool != ToolRect && s.Tool != ToolLine) {
		return
	}
	s.History.Snapshot(s.Doc)
	var ref doc.Ref
	if s.Tool == ToolRect {
		ref = s.Doc.CreateRect(a, b, s.Pen, s.Bounds).Ref()
	} else {
		ref = s.Doc.CreateLine(a, b, s.Pen, s.Bounds).Ref()
	}
	Logger().Debug("shape created", "kind", ref.Kind, "id", ref.ID)
	s.Selection.Replace(ref)
	s.Tool = ToolMove
}
