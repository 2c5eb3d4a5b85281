package editor

import (
	"cmp"
	"slices"
	"strings"

	"cellsketch/internal/doc"
	"cellsketch/internal/geom"
)

// Undo installs the previous document and clears all transient state.
func (s EditorState) Undo() (EditorState, Effect) {
	prev, ok := s.History.Undo(s.Doc)
	if !ok {
		return s, 0
	}
	fx := s.resetTransient()
	s.Doc = prev
	return s, fx
}

func (s EditorState) Redo() (EditorState, Effect) {
	next, ok := s.History.Redo(s.Doc)
	if !ok {
		return s, 0
	}
	fx := s.resetTransient()
	s.Doc = next
	return s, fx
}

// Load replaces the document with one read from disk. History is dropped so
// the load cannot be undone.
func (s EditorState) Load(d *doc.Document) (EditorState, Effect) {
	fx := s.resetTransient()
	s.Doc = d
	s.Tool = ToolMove
	s.History.Reset()
	return s, fx
}

// DeleteSelection removes every selected entity in one step, or the hovered
// entity when nothing is selected.
func (s EditorState) DeleteSelection() (EditorState, Effect) {
	refs := s.Selection.Refs()
	if len(refs) == 0 {
		ref, ok := s.Hovered()
		if !ok {
			return s, 0
		}
		refs = []doc.Ref{ref}
	}
	s.History.Snapshot(s.Doc)
	for _, ref := range refs {
		s.Doc.Delete(ref)
	}
	s.Selection.Clear()
	Logger().Debug("deleted", "count", len(refs))
	return s, EffectRedraw
}

func (s EditorState) MoveLayerUp() (EditorState, Effect)   { return s.moveLayer(1) }
func (s EditorState) MoveLayerDown() (EditorState, Effect) { return s.moveLayer(-1) }

// moveLayer swaps the z of the single selected entity with its neighbour in
// paint order. Nothing else is renumbered.
func (s EditorState) moveLayer(dir int) (EditorState, Effect) {
	ref, ok := s.Selection.Single()
	if !ok {
		return s, 0
	}
	shapes := s.Doc.Shapes()
	i := slices.IndexFunc(shapes, func(sh doc.Shape) bool { return sh.Ref() == ref })
	j := i + dir
	if i < 0 || j < 0 || j >= len(shapes) {
		return s, 0
	}
	s.History.Snapshot(s.Doc)
	s.Doc.SwapZ(ref, shapes[j].Ref())
	return s, EffectRedraw
}

// Recolor sets one paint channel on the pen and on every selected entity.
func (s EditorState) Recolor(ch doc.Channel, p doc.Paint) (EditorState, Effect) {
	switch ch {
	case doc.Stroke:
		s.Pen.Stroke = p
	case doc.Fill:
		s.Pen.Fill = p
	}
	refs := s.Selection.Refs()
	if s.Mode == ModeTextEditing && !s.Selection.Has(doc.Ref{Kind: doc.KindText, ID: s.edit.id}) {
		refs = append(refs, doc.Ref{Kind: doc.KindText, ID: s.edit.id})
	}
	if len(refs) > 0 {
		s.History.Snapshot(s.Doc)
		s.Doc.Recolor(refs, ch, p)
	}
	return s, EffectRedraw
}

// ToggleBold flips the pen weight and applies it to the selected
// rectangles and lines.
func (s EditorState) ToggleBold() (EditorState, Effect) {
	s.Pen.Bold = !s.Pen.Bold
	var refs []doc.Ref
	for _, ref := range s.Selection.Refs() {
		if ref.Kind != doc.KindText {
			refs = append(refs, ref)
		}
	}
	if len(refs) > 0 {
		s.History.Snapshot(s.Doc)
		s.Doc.SetBold(refs, s.Pen.Bold)
	}
	return s, EffectRedraw
}

// Nudge moves the selection by a fixed step, clamped like a drag.
func (s EditorState) Nudge(dx, dy int) (EditorState, Effect) {
	refs := s.Selection.Refs()
	if len(refs) == 0 || s.Mode != ModeIdle {
		return s, 0
	}
	before := s.Doc.Clone()
	if adx, ady := s.Doc.Translate(refs, dx, dy, s.Bounds); adx == 0 && ady == 0 {
		return s, 0
	}
	s.History.Record(before)
	return s, EffectRedraw
}

// PasteText creates one run per line of str, the first anchored at p.
// Characters that do not fit a single cell are dropped and lines are cut at
// the canvas edge.
func (s EditorState) PasteText(p geom.Point, str string) (EditorState, Effect) {
	fx := s.commitEdit()
	p = geom.ClampPoint(p, s.Bounds)

	var lines [][]rune
	for _, line := range strings.Split(str, "\n") {
		var rs []rune
		for _, r := range line {
			if Typeable(r) && p.X+len(rs) < s.Bounds.W {
				rs = append(rs, r)
			}
		}
		lines = append(lines, rs)
	}
	if p.Y+len(lines) > s.Bounds.H {
		lines = lines[:max(0, s.Bounds.H-p.Y)]
	}
	if !slices.ContainsFunc(lines, func(rs []rune) bool { return len(rs) > 0 }) {
		return s, fx
	}

	s.History.Snapshot(s.Doc)
	s.Selection.Clear()
	for i, rs := range lines {
		if len(rs) == 0 {
			continue
		}
		t := s.Doc.CreateText(p.Add(0, i), s.Pen, s.Bounds)
		for _, r := range rs {
			s.Doc.InsertChar(t.ID, len(t.Chars), doc.Char{Ch: r, Bold: s.Pen.Bold})
		}
		s.Selection.Add(t.Ref())
	}
	s.Tool = ToolMove
	return s, fx | EffectRedraw
}

// SelectedText returns the selected runs, or the run being edited, as lines
// in reading order.
func (s EditorState) SelectedText() string {
	var runs []*doc.Text
	for _, ref := range s.Selection.Refs() {
		if t, ok := s.Doc.Texts[ref.ID]; ok && ref.Kind == doc.KindText {
			runs = append(runs, t)
		}
	}
	if len(runs) == 0 && s.Mode == ModeTextEditing {
		if t, ok := s.Doc.Texts[s.edit.id]; ok {
			runs = append(runs, t)
		}
	}
	slices.SortFunc(runs, func(a, b *doc.Text) int {
		return cmp.Or(cmp.Compare(a.Pos.Y, b.Pos.Y), cmp.Compare(a.Pos.X, b.Pos.X))
	})
	out := make([]string, len(runs))
	for i, t := range runs {
		out[i] = t.String()
	}
	return strings.Join(out, "\n")
}

// SetTool switches tools, finishing any edit or gesture in progress.
func (s EditorState) SetTool(t Tool) (EditorState, Effect) {
	fx := s.commitEdit()
	s.Mode = ModeIdle
	s.gesture = gesture{}
	s.Tool = t
	if t != ToolMove {
		s.Selection.Clear()
	}
	return s, fx | EffectRedraw
}

// ClearSelection empties the selection, committing any open edit.
func (s EditorState) ClearSelection() (EditorState, Effect) {
	fx := s.commitEdit()
	if s.Selection.Count() == 0 {
		return s, fx
	}
	s.Selection.Clear()
	return s, fx | EffectRedraw
}

// SetBounds records a new canvas size. Existing entities are left where they
// are; later operations clamp against the new size.
func (s EditorState) SetBounds(size geom.Size) (EditorState, Effect) {
	if size == s.Bounds {
		return s, 0
	}
	s.Bounds = size
	return s, EffectRedraw
}
