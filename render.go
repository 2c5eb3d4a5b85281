package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
	"cellsketch/internal/geom"
)

type cell struct {
	ch        rune
	fg, bg    doc.Paint
	bold      bool
	reverse   bool
	underline bool
}

// sameStyle reports whether two cells can share one styled span.
func sameStyle(a, b cell) bool {
	a.ch, b.ch = 0, 0
	return a == b
}

func (c cell) style() lipgloss.Style {
	s := lipgloss.NewStyle().Bold(c.bold).Reverse(c.reverse).Underline(c.underline)
	if hex := c.fg.Hex(); hex != "" {
		s = s.Foreground(lipgloss.Color(hex))
	}
	if hex := c.bg.Hex(); hex != "" {
		s = s.Background(lipgloss.Color(hex))
	}
	return s
}

type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(size geom.Size) *grid {
	g := &grid{w: max(0, size.W), h: max(0, size.H)}
	g.cells = make([][]cell, g.h)
	for y := range g.cells {
		row := make([]cell, g.w)
		for x := range row {
			row[x].ch = emptyGlyph
		}
		g.cells[y] = row
	}
	return g
}

func (g *grid) at(p geom.Point) *cell {
	if p.X < 0 || p.Y < 0 || p.X >= g.w || p.Y >= g.h {
		return nil
	}
	return &g.cells[p.Y][p.X]
}

func (g *grid) mark(cells []geom.Point, fn func(*cell)) {
	for _, p := range cells {
		if c := g.at(p); c != nil {
			fn(c)
		}
	}
}

// drawShape paints s over what is already in the grid and returns the cells
// it covers.
func (g *grid) drawShape(s doc.Shape) []geom.Point {
	switch s := s.(type) {
	case *doc.Rect:
		return g.drawRect(s)
	case *doc.Line:
		return g.drawLine(s)
	case *doc.Text:
		return g.drawText(s)
	}
	return nil
}

func (g *grid) drawRect(r *doc.Rect) []geom.Point {
	lo, hi := geom.Normalize(r.A, r.B)
	filled := !r.Fill.IsTransparent()
	var border []geom.Point
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			p := geom.Point{X: x, Y: y}
			onBorder := geom.IsOnBorder(p, lo, hi)
			if !onBorder && !filled {
				continue
			}
			c := g.at(p)
			if c == nil {
				continue
			}
			if filled {
				c.bg = r.Fill
			}
			if !onBorder {
				c.ch = emptyGlyph
				continue
			}
			c.ch = rectGlyph(p, lo, hi, r.Bold)
			c.fg = r.Stroke
			c.bold = r.Bold
			border = append(border, p)
		}
	}
	return border
}

func rectGlyph(p, lo, hi geom.Point, bold bool) rune {
	corners, horiz, vert := lightCorners, '─', '│'
	if bold {
		corners, horiz, vert = heavyCorners, '━', '┃'
	}
	switch {
	case lo == hi:
		return '□'
	case lo.Y == hi.Y:
		return horiz
	case lo.X == hi.X:
		return vert
	case p == lo:
		return corners[0]
	case p.X == hi.X && p.Y == lo.Y:
		return corners[1]
	case p.X == lo.X && p.Y == hi.Y:
		return corners[2]
	case p == hi:
		return corners[3]
	case p.Y == lo.Y || p.Y == hi.Y:
		return horiz
	default:
		return vert
	}
}

func (g *grid) drawLine(l *doc.Line) []geom.Point {
	cells := l.Cells()
	for i, p := range cells {
		c := g.at(p)
		if c == nil {
			continue
		}
		if l.Bold {
			c.ch = geom.GlyphForBoldLineSegment(l.A, l.B, i, len(cells))
		} else {
			c.ch = geom.GlyphForLineSegment(l.A, l.B, i, len(cells))
		}
		c.fg = l.Stroke
		c.bold = l.Bold
	}
	return cells
}

func (g *grid) drawText(t *doc.Text) []geom.Point {
	if len(t.Chars) == 0 {
		return []geom.Point{t.Pos}
	}
	cells := make([]geom.Point, 0, len(t.Chars))
	for i, ch := range t.Chars {
		p := t.Pos.Add(i, 0)
		c := g.at(p)
		if c == nil {
			continue
		}
		c.ch = ch.Ch
		c.bold = ch.Bold
		c.fg = t.Stroke
		if !ch.Stroke.IsTransparent() {
			c.fg = ch.Stroke
		}
		if !t.Fill.IsTransparent() {
			c.bg = t.Fill
		}
		cells = append(cells, p)
	}
	return cells
}

// paintDocument draws the bare document, with no editor decorations.
func paintDocument(d *doc.Document, size geom.Size) *grid {
	g := newGrid(size)
	for _, s := range d.Shapes() {
		g.drawShape(s)
	}
	return g
}

// renderCanvas draws the document as the editor shows it: selection
// reversed, hover underlined, handles, drafts, the marquee and the caret.
func renderCanvas(st editor.EditorState) *grid {
	g := newGrid(st.Bounds)
	hovered, hovering := st.Hovered()
	editID, caret, editing := st.Editing()
	editRef := doc.Ref{Kind: doc.KindText, ID: editID}

	for _, s := range st.Doc.Shapes() {
		cells := g.drawShape(s)
		ref := s.Ref()
		switch {
		case editing && ref == editRef:
			g.mark(cells, func(c *cell) { c.underline = true })
		case st.Selection.Has(ref):
			g.mark(cells, func(c *cell) { c.reverse = true })
		case hovering && ref == hovered:
			g.mark(cells, func(c *cell) { c.underline = true })
		}
	}

	if id, ok := st.Selection.SingleOf(doc.KindRect); ok {
		if r, ok := st.Doc.Rects[id]; ok {
			g.mark(geom.HandlePoints(r.A, r.B), func(c *cell) { c.ch = handleGlyph })
		}
	}

	if tool, a, b, ok := st.Draft(); ok {
		switch tool {
		case editor.ToolRect:
			g.drawRect(&doc.Rect{A: a, B: b, Bold: st.Pen.Bold, Stroke: st.Pen.Stroke, Fill: st.Pen.Fill})
		case editor.ToolLine:
			g.drawLine(&doc.Line{A: a, B: b, Bold: st.Pen.Bold, Stroke: st.Pen.Stroke})
		}
	}

	if r, ok := st.Marquee(); ok {
		g.drawMarquee(r)
	}

	if editing && st.CaretVisible() {
		if t, ok := st.Doc.Texts[editID]; ok {
			if c := g.at(t.Pos.Add(caret, 0)); c != nil {
				c.reverse = true
			}
		}
	}
	return g
}

func (g *grid) drawMarquee(r geom.Rect) {
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			p := geom.Point{X: x, Y: y}
			if !geom.IsOnBorder(p, r.Min, r.Max) {
				continue
			}
			c := g.at(p)
			if c == nil {
				continue
			}
			switch {
			case (x == r.Min.X || x == r.Max.X) && (y == r.Min.Y || y == r.Max.Y):
				c.ch = marqueeEdge
			case y == r.Min.Y || y == r.Max.Y:
				c.ch = marqueeHoriz
			default:
				c.ch = marqueeVert
			}
			c.reverse = false
		}
	}
}

// plain returns the grid as text with trailing blanks trimmed.
func (g *grid) plain() []string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		runes := make([]rune, len(row))
		for x, c := range row {
			runes[x] = c.ch
		}
		lines[y] = strings.TrimRight(string(runes), " ")
	}
	return lines
}

// styled returns the grid as terminal lines, one lipgloss span per run of
// equally styled cells.
func (g *grid) styled() []string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[start]) {
				continue
			}
			span := make([]rune, 0, x-start)
			for _, c := range row[start:x] {
				span = append(span, c.ch)
			}
			b.WriteString(row[start].style().Render(string(span)))
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}
