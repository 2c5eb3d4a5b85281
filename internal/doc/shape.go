package doc

import (
	"slices"
	"strings"

	"cellsketch/internal/geom"
)

// Kind discriminates the three entity variants.
type Kind int

const (
	KindText Kind = iota
	KindRect
	KindLine
)

// Kinds lists every kind in hit-test priority order.
var Kinds = []Kind{KindText, KindRect, KindLine}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindRect:
		return "rect"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Ref names one entity of the document.
type Ref struct {
	Kind Kind
	ID   int
}

// Shape is implemented by *Text, *Rect and *Line.
type Shape interface {
	Ref() Ref
	ZIndex() int
	// Bounds is the normalized cell box the entity occupies.
	Bounds() geom.Rect
	// Contains is the hit test.
	Contains(p geom.Point) bool

	setZ(z int)
	translate(dx, dy int)
	setPaint(ch Channel, p Paint)
	clone() Shape
}

// Char is one styled character of a text run. A transparent Stroke falls
// back to the run's stroke.
type Char struct {
	Ch     rune
	Bold   bool
	Stroke Paint
}

type Text struct {
	ID     int
	Pos    geom.Point
	Chars  []Char
	Z      int
	Stroke Paint
	Fill   Paint
}

// Width is the number of cells the run covers; an empty run still shows a
// one-cell placeholder.
func (t *Text) Width() int { return max(1, len(t.Chars)) }

func (t *Text) String() string {
	var b strings.Builder
	for _, c := range t.Chars {
		b.WriteRune(c.Ch)
	}
	return b.String()
}

func (t *Text) Ref() Ref             { return Ref{KindText, t.ID} }
func (t *Text) ZIndex() int          { return t.Z }
func (t *Text) setZ(z int)           { t.Z = z }
func (t *Text) clone() Shape         { c := *t; c.Chars = slices.Clone(t.Chars); return &c }
func (t *Text) translate(dx, dy int) { t.Pos = t.Pos.Add(dx, dy) }

func (t *Text) Bounds() geom.Rect {
	return geom.Rect{Min: t.Pos, Max: t.Pos.Add(t.Width()-1, 0)}
}

func (t *Text) Contains(p geom.Point) bool { return t.Bounds().Contains(p) }

func (t *Text) setPaint(ch Channel, p Paint) {
	if ch == Fill {
		t.Fill = p
	} else {
		t.Stroke = p
	}
}

// Rect corners are stored as drawn; A may be below or right of B.
type Rect struct {
	ID     int
	A, B   geom.Point
	Bold   bool
	Z      int
	Stroke Paint
	Fill   Paint
}

func (r *Rect) Ref() Ref          { return Ref{KindRect, r.ID} }
func (r *Rect) ZIndex() int       { return r.Z }
func (r *Rect) setZ(z int)        { r.Z = z }
func (r *Rect) clone() Shape      { c := *r; return &c }
func (r *Rect) Bounds() geom.Rect { return geom.NormalizeRect(r.A, r.B) }

func (r *Rect) translate(dx, dy int) {
	r.A = r.A.Add(dx, dy)
	r.B = r.B.Add(dx, dy)
}

// Contains hits the outline, and the interior only when the rectangle is
// filled.
func (r *Rect) Contains(p geom.Point) bool {
	if geom.IsOnBorder(p, r.A, r.B) {
		return true
	}
	return !r.Fill.IsTransparent() && r.Bounds().Contains(p)
}

func (r *Rect) setPaint(ch Channel, p Paint) {
	if ch == Fill {
		r.Fill = p
	} else {
		r.Stroke = p
	}
}

type Line struct {
	ID     int
	A, B   geom.Point
	Bold   bool
	Z      int
	Stroke Paint
}

func (l *Line) Ref() Ref                   { return Ref{KindLine, l.ID} }
func (l *Line) ZIndex() int                { return l.Z }
func (l *Line) setZ(z int)                 { l.Z = z }
func (l *Line) clone() Shape               { c := *l; return &c }
func (l *Line) Bounds() geom.Rect          { return geom.NormalizeRect(l.A, l.B) }
func (l *Line) Contains(p geom.Point) bool { return geom.PointOnLine(p, l.A, l.B) }

func (l *Line) translate(dx, dy int) {
	l.A = l.A.Add(dx, dy)
	l.B = l.B.Add(dx, dy)
}

// Lines have no fill; recoloring the fill channel is a no-op.
func (l *Line) setPaint(ch Channel, p Paint) {
	if ch == Stroke {
		l.Stroke = p
	}
}

// Cells returns the rasterized cells of the line from A to B.
func (l *Line) Cells() []geom.Point { return geom.RasterizeLine(l.A, l.B) }
