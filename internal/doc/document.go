// Package doc is the canvas document: three arenas of shape entities keyed by
// id, plus the id and z counters that make future assignments reproducible.
//
// Every mutation is total. Unknown ids are ignored and geometry is clamped
// to the canvas bounds passed in by the caller.
package doc

import (
	"cmp"
	"slices"

	"cellsketch/internal/geom"
)

type Document struct {
	Texts map[int]*Text
	Rects map[int]*Rect
	Lines map[int]*Line

	NextTextID int
	NextRectID int
	NextLineID int
	NextZ      int
}

// Style is the paint and weight given to newly created shapes.
type Style struct {
	Stroke Paint
	Fill   Paint
	Bold   bool
}

func New() *Document {
	return &Document{
		Texts: make(map[int]*Text),
		Rects: make(map[int]*Rect),
		Lines: make(map[int]*Line),
	}
}

func (d *Document) Len() int {
	return len(d.Texts) + len(d.Rects) + len(d.Lines)
}

// Lookup returns the entity ref names, or nil.
func (d *Document) Lookup(ref Ref) Shape {
	switch ref.Kind {
	case KindText:
		if t, ok := d.Texts[ref.ID]; ok {
			return t
		}
	case KindRect:
		if r, ok := d.Rects[ref.ID]; ok {
			return r
		}
	case KindLine:
		if l, ok := d.Lines[ref.ID]; ok {
			return l
		}
	}
	return nil
}

func (d *Document) Has(ref Ref) bool { return d.Lookup(ref) != nil }

// Shapes returns every entity ordered by ascending z, which is paint order.
func (d *Document) Shapes() []Shape {
	out := make([]Shape, 0, d.Len())
	out = appendShapes(out, d.Texts)
	out = appendShapes(out, d.Rects)
	out = appendShapes(out, d.Lines)
	slices.SortFunc(out, func(a, b Shape) int { return cmp.Compare(a.ZIndex(), b.ZIndex()) })
	return out
}

func appendShapes[S Shape](dst []Shape, arena map[int]S) []Shape {
	for _, s := range arena {
		dst = append(dst, s)
	}
	return dst
}

// OfKind returns the entities of one kind in ascending z.
func (d *Document) OfKind(k Kind) []Shape {
	var out []Shape
	switch k {
	case KindText:
		out = appendShapes(out, d.Texts)
	case KindRect:
		out = appendShapes(out, d.Rects)
	case KindLine:
		out = appendShapes(out, d.Lines)
	}
	slices.SortFunc(out, func(a, b Shape) int { return cmp.Compare(a.ZIndex(), b.ZIndex()) })
	return out
}

// TopAt returns the highest entity of kind k whose hit test contains p.
func (d *Document) TopAt(k Kind, p geom.Point) (Ref, bool) {
	shapes := d.OfKind(k)
	for i := len(shapes) - 1; i >= 0; i-- {
		if shapes[i].Contains(p) {
			return shapes[i].Ref(), true
		}
	}
	return Ref{}, false
}

// Intersecting returns every entity whose bounds overlap r.
func (d *Document) Intersecting(r geom.Rect) []Ref {
	var refs []Ref
	for _, s := range d.Shapes() {
		if s.Bounds().Intersects(r) {
			refs = append(refs, s.Ref())
		}
	}
	return refs
}

func (d *Document) nextZ() int {
	z := d.NextZ
	d.NextZ++
	return z
}

// CreateText adds an empty run anchored at p.
func (d *Document) CreateText(p geom.Point, style Style, bounds geom.Size) *Text {
	t := &Text{
		ID:     d.NextTextID,
		Pos:    geom.ClampPoint(p, bounds),
		Z:      d.nextZ(),
		Stroke: style.Stroke,
		Fill:   style.Fill,
	}
	d.NextTextID++
	d.Texts[t.ID] = t
	return t
}

func (d *Document) CreateRect(a, b geom.Point, style Style, bounds geom.Size) *Rect {
	r := &Rect{
		ID:     d.NextRectID,
		A:      geom.ClampPoint(a, bounds),
		B:      geom.ClampPoint(b, bounds),
		Bold:   style.Bold,
		Z:      d.nextZ(),
		Stroke: style.Stroke,
		Fill:   style.Fill,
	}
	d.NextRectID++
	d.Rects[r.ID] = r
	return r
}

func (d *Document) CreateLine(a, b geom.Point, style Style, bounds geom.Size) *Line {
	l := &Line{
		ID:     d.NextLineID,
		A:      geom.ClampPoint(a, bounds),
		B:      geom.ClampPoint(b, bounds),
		Bold:   style.Bold,
		Z:      d.nextZ(),
		Stroke: style.Stroke,
	}
	d.NextLineID++
	d.Lines[l.ID] = l
	return l
}

// Delete removes the entity. Ids are never handed out again.
func (d *Document) Delete(ref Ref) bool {
	if !d.Has(ref) {
		return false
	}
	switch ref.Kind {
	case KindText:
		delete(d.Texts, ref.ID)
	case KindRect:
		delete(d.Rects, ref.ID)
	case KindLine:
		delete(d.Lines, ref.ID)
	}
	return true
}

// Translate moves the entities as one rigid group. The delta is clamped so
// that no member's bounds leave the canvas; the applied delta is returned.
func (d *Document) Translate(refs []Ref, dx, dy int, bounds geom.Size) (int, int) {
	var shapes []Shape
	loX, hiX := dx, dx
	loY, hiY := dy, dy
	first := true
	for _, ref := range refs {
		s := d.Lookup(ref)
		if s == nil {
			continue
		}
		shapes = append(shapes, s)
		b := s.Bounds()
		minDX, maxDX := -b.Min.X, bounds.W-1-b.Max.X
		minDY, maxDY := -b.Min.Y, bounds.H-1-b.Max.Y
		if first {
			loX, hiX, loY, hiY = minDX, maxDX, minDY, maxDY
			first = false
			continue
		}
		loX, hiX = max(loX, minDX), min(hiX, maxDX)
		loY, hiY = max(loY, minDY), min(hiY, maxDY)
	}
	if len(shapes) == 0 {
		return 0, 0
	}
	dx = geom.Clamp(dx, loX, hiX)
	dy = geom.Clamp(dy, loY, hiY)
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	for _, s := range shapes {
		s.translate(dx, dy)
	}
	return dx, dy
}

// Corner picks one of the two stored points of a rectangle or line.
type Corner int

const (
	CornerNone Corner = iota
	CornerA
	CornerB
)

// SetCorner moves the x coordinate of corner xc and the y coordinate of
// corner yc of rectangle id to p. Either corner may be CornerNone.
func (d *Document) SetCorner(id int, xc, yc Corner, p geom.Point, bounds geom.Size) {
	r, ok := d.Rects[id]
	if !ok {
		return
	}
	p = geom.ClampPoint(p, bounds)
	switch xc {
	case CornerA:
		r.A.X = p.X
	case CornerB:
		r.B.X = p.X
	}
	switch yc {
	case CornerA:
		r.A.Y = p.Y
	case CornerB:
		r.B.Y = p.Y
	}
}

// SetEndpoint moves one endpoint of line id to p.
func (d *Document) SetEndpoint(id int, which Corner, p geom.Point, bounds geom.Size) {
	l, ok := d.Lines[id]
	if !ok {
		return
	}
	p = geom.ClampPoint(p, bounds)
	switch which {
	case CornerA:
		l.A = p
	case CornerB:
		l.B = p
	}
}

func (d *Document) Recolor(refs []Ref, ch Channel, p Paint) {
	for _, ref := range refs {
		if s := d.Lookup(ref); s != nil {
			s.setPaint(ch, p)
		}
	}
}

// SetBold sets the weight of rectangles and lines. Text runs carry bold per
// character and are left alone.
func (d *Document) SetBold(refs []Ref, bold bool) {
	for _, ref := range refs {
		switch ref.Kind {
		case KindRect:
			if r, ok := d.Rects[ref.ID]; ok {
				r.Bold = bold
			}
		case KindLine:
			if l, ok := d.Lines[ref.ID]; ok {
				l.Bold = bold
			}
		}
	}
}

// SwapZ exchanges the z-index of two entities.
func (d *Document) SwapZ(a, b Ref) bool {
	sa, sb := d.Lookup(a), d.Lookup(b)
	if sa == nil || sb == nil || a == b {
		return false
	}
	za, zb := sa.ZIndex(), sb.ZIndex()
	sa.setZ(zb)
	sb.setZ(za)
	return true
}

// InsertChar inserts c before position pos of run id.
func (d *Document) InsertChar(id, pos int, c Char) bool {
	t, ok := d.Texts[id]
	if !ok || pos < 0 || pos > len(t.Chars) {
		return false
	}
	t.Chars = slices.Insert(t.Chars, pos, c)
	return true
}

// RemoveChar deletes the character at pos of run id.
func (d *Document) RemoveChar(id, pos int) bool {
	t, ok := d.Texts[id]
	if !ok || pos < 0 || pos >= len(t.Chars) {
		return false
	}
	t.Chars = slices.Delete(t.Chars, pos, pos+1)
	return true
}

// Clone returns a deep copy, including every run's characters.
func (d *Document) Clone() *Document {
	return &Document{
		Texts:      cloneArena(d.Texts),
		Rects:      cloneArena(d.Rects),
		Lines:      cloneArena(d.Lines),
		NextTextID: d.NextTextID,
		NextRectID: d.NextRectID,
		NextLineID: d.NextLineID,
		NextZ:      d.NextZ,
	}
}

func cloneArena[S Shape](src map[int]S) map[int]S {
	dst := make(map[int]S, len(src))
	for id, s := range src {
		dst[id] = s.clone().(S)
	}
	return dst
}

// Equal reports whether both documents hold the same entities and counters.
func (d *Document) Equal(o *Document) bool {
	if d.NextTextID != o.NextTextID || d.NextRectID != o.NextRectID ||
		d.NextLineID != o.NextLineID || d.NextZ != o.NextZ {
		return false
	}
	if len(d.Texts) != len(o.Texts) || len(d.Rects) != len(o.Rects) || len(d.Lines) != len(o.Lines) {
		return false
	}
	for id, t := range d.Texts {
		u, ok := o.Texts[id]
		if !ok || t.ID != u.ID || t.Pos != u.Pos || t.Z != u.Z ||
			t.Stroke != u.Stroke || t.Fill != u.Fill || !slices.Equal(t.Chars, u.Chars) {
			return false
		}
	}
	for id, r := range d.Rects {
		if s, ok := o.Rects[id]; !ok || *r != *s {
			return false
		}
	}
	for id, l := range d.Lines {
		if m, ok := o.Lines[id]; !ok || *l != *m {
			return false
		}
	}
	return true
}
