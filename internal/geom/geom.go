// Package geom holds the integer cell geometry used by the canvas: rectangle
// normalization, outline tests, line rasterization and resize handles.
package geom

type Point struct {
	X, Y int
}

func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Size is the canvas extent in cells.
type Size struct {
	W, H int
}

// Rect is an inclusive, normalized cell rectangle (Min <= Max on both axes).
type Rect struct {
	Min, Max Point
}

func (r Rect) Width() int  { return r.Max.X - r.Min.X + 1 }
func (r Rect) Height() int { return r.Max.Y - r.Min.Y + 1 }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Normalize reorders two corners so the first is the top-left one.
func Normalize(a, b Point) (Point, Point) {
	return Point{min(a.X, b.X), min(a.Y, b.Y)}, Point{max(a.X, b.X), max(a.Y, b.Y)}
}

func NormalizeRect(a, b Point) Rect {
	lo, hi := Normalize(a, b)
	return Rect{Min: lo, Max: hi}
}

// IsOnBorder reports whether p lies on the outline of the rectangle spanned
// by a and b.
func IsOnBorder(p, a, b Point) bool {
	r := NormalizeRect(a, b)
	if !r.Contains(p) {
		return false
	}
	return p.X == r.Min.X || p.X == r.Max.X || p.Y == r.Min.Y || p.Y == r.Max.Y
}

func Clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampPoint keeps p inside a canvas of the given size.
func ClampPoint(p Point, s Size) Point {
	return Point{Clamp(p.X, 0, s.W-1), Clamp(p.Y, 0, s.H-1)}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
