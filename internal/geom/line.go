package geom

// RasterizeLine returns the cells visited by Bresenham's algorithm from p1 to
// p2, both inclusive. Consecutive cells are always 4- or 8-connected.
//
// The walk always starts at the lexicographically smaller endpoint so that
// swapping p1 and p2 yields the same cells; the result is reversed when
// needed so that index 0 is p1.
func RasterizeLine(p1, p2 Point) []Point {
	from, to := p1, p2
	swapped := false
	if to.X < from.X || (to.X == from.X && to.Y < from.Y) {
		from, to = to, from
		swapped = true
	}

	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx, sy := sign(to.X-from.X), sign(to.Y-from.Y)
	err := dx + dy

	pts := make([]Point, 0, max(dx, -dy)+1)
	x, y := from.X, from.Y
	for {
		pts = append(pts, Point{x, y})
		if x == to.X && y == to.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}

	if swapped {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}

// PointOnLine reports whether p is one of the cells of the line a-b.
func PointOnLine(p, a, b Point) bool {
	switch {
	case a.Y == b.Y:
		return p.Y == a.Y && p.X >= min(a.X, b.X) && p.X <= max(a.X, b.X)
	case a.X == b.X:
		return p.X == a.X && p.Y >= min(a.Y, b.Y) && p.Y <= max(a.Y, b.Y)
	}
	if !NormalizeRect(a, b).Contains(p) {
		return false
	}
	for _, q := range RasterizeLine(a, b) {
		if q == p {
			return true
		}
	}
	return false
}

// GlyphForLineSegment picks the character drawn at position index of a line
// of total cells running from p1 to p2. The start cell is a dot, the end cell
// an arrowhead pointing the way the line was drawn.
func GlyphForLineSegment(p1, p2 Point, index, total int) rune {
	return glyph(p1, p2, index, total, false)
}

// GlyphForBoldLineSegment is GlyphForLineSegment with heavy strokes.
func GlyphForBoldLineSegment(p1, p2 Point, index, total int) rune {
	return glyph(p1, p2, index, total, true)
}

func glyph(p1, p2 Point, index, total int, bold bool) rune {
	dx, dy := sign(p2.X-p1.X), sign(p2.Y-p1.Y)
	if total <= 1 || (dx == 0 && dy == 0) {
		return '•'
	}
	if index == 0 {
		return '•'
	}
	if index == total-1 {
		return arrowhead(dx, dy)
	}
	switch {
	case dy == 0:
		if bold {
			return '━'
		}
		return '─'
	case dx == 0:
		if bold {
			return '┃'
		}
		return '│'
	case dx == dy:
		// Screen y grows downward, so equal signs descend left to right.
		return '\\'
	default:
		return '/'
	}
}

func arrowhead(dx, dy int) rune {
	switch {
	case dy == 0 && dx > 0:
		return '>'
	case dy == 0:
		return '<'
	case dx == 0 && dy > 0:
		return 'v'
	case dx == 0:
		return '^'
	case dx > 0 && dy > 0:
		return '↘'
	case dx > 0:
		return '↗'
	case dy > 0:
		return '↙'
	default:
		return '↖'
	}
}
