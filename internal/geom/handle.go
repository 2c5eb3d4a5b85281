package geom

// Handle is one of the eight resize grips of a rectangle.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleRight:
		return "right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottom:
		return "bottom"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleLeft:
		return "left"
	default:
		return "none"
	}
}

// MovesX reports whether dragging the handle changes a horizontal edge
// position, and whether that edge is the left (min) one.
func (h Handle) MovesX() (moves, minEdge bool) {
	switch h {
	case HandleTopLeft, HandleLeft, HandleBottomLeft:
		return true, true
	case HandleTopRight, HandleRight, HandleBottomRight:
		return true, false
	}
	return false, false
}

// MovesY is the vertical counterpart of MovesX.
func (h Handle) MovesY() (moves, minEdge bool) {
	switch h {
	case HandleTopLeft, HandleTop, HandleTopRight:
		return true, true
	case HandleBottomLeft, HandleBottom, HandleBottomRight:
		return true, false
	}
	return false, false
}

// ClassifyHandle maps p to the handle of the rectangle a-b it sits on.
// Midpoints use floor division; corners win when they coincide.
func ClassifyHandle(a, b, p Point) Handle {
	lo, hi := Normalize(a, b)
	midX := (lo.X + hi.X) / 2
	midY := (lo.Y + hi.Y) / 2

	switch p {
	case Point{lo.X, lo.Y}:
		return HandleTopLeft
	case Point{hi.X, lo.Y}:
		return HandleTopRight
	case Point{hi.X, hi.Y}:
		return HandleBottomRight
	case Point{lo.X, hi.Y}:
		return HandleBottomLeft
	case Point{midX, lo.Y}:
		return HandleTop
	case Point{hi.X, midY}:
		return HandleRight
	case Point{midX, hi.Y}:
		return HandleBottom
	case Point{lo.X, midY}:
		return HandleLeft
	}
	return HandleNone
}

// HandlePoints returns the cell of every handle of the rectangle a-b, in
// Handle order starting at HandleTopLeft.
func HandlePoints(a, b Point) []Point {
	lo, hi := Normalize(a, b)
	midX := (lo.X + hi.X) / 2
	midY := (lo.Y + hi.Y) / 2
	return []Point{
		{lo.X, lo.Y}, {midX, lo.Y}, {hi.X, lo.Y}, {hi.X, midY},
		{hi.X, hi.Y}, {midX, hi.Y}, {lo.X, hi.Y}, {lo.X, midY},
	}
}
