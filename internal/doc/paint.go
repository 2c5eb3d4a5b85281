package doc

import (
	"fmt"
	"image/color"
)

// Paint is a color slot that may be transparent. The zero value is
// transparent.
type Paint struct {
	c  color.RGBA
	ok bool
}

// Transparent is the empty paint.
var Transparent = Paint{}

func Solid(c color.RGBA) Paint {
	return Paint{c: c, ok: true}
}

// RGBA returns the color and whether the paint is set.
func (p Paint) RGBA() (color.RGBA, bool) {
	return p.c, p.ok
}

func (p Paint) IsTransparent() bool { return !p.ok }

// Hex formats the paint as #rrggbb, or "" when transparent.
func (p Paint) Hex() string {
	if !p.ok {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", p.c.R, p.c.G, p.c.B)
}

func (p Paint) String() string {
	if !p.ok {
		return "transparent"
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", p.c.R, p.c.G, p.c.B, p.c.A)
}

// Channel selects which paint of a shape a recolor applies to.
type Channel int

const (
	Stroke Channel = iota
	Fill
)

func (c Channel) String() string {
	if c == Fill {
		return "fill"
	}
	return "stroke"
}
