package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"cellsketch/internal/doc"
	"cellsketch/internal/geom"
)

var errNothingToExport = errors.New("nothing to export")

// exportVisualTXT writes the canvas exactly as drawn, without selection,
// cursor or other editor decorations.
func exportVisualTXT(d *doc.Document, size geom.Size, filename string) error {
	if d.Len() == 0 {
		return errNothingToExport
	}
	lines := paintDocument(d, size).plain()
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return writeFileAtomic(filename, buf.Bytes())
}

// pngCanvas maps cell coordinates to pixels inside the exported image.
type pngCanvas struct {
	dc     *gg.Context
	origin geom.Point
}

func (c pngCanvas) x(cx int) float64 { return float64(cx-c.origin.X) * pngCellWidth }
func (c pngCanvas) y(cy int) float64 { return float64(cy-c.origin.Y) * pngCellHeight }

func (c pngCanvas) center(p geom.Point) (float64, float64) {
	return c.x(p.X) + pngCellWidth/2, c.y(p.Y) + pngCellHeight/2
}

// exportPNG rasterizes the document at a fixed cell size, cropped to the
// extent of its entities plus padding.
func exportPNG(d *doc.Document, filename string) error {
	shapes := d.Shapes()
	if len(shapes) == 0 {
		return errNothingToExport
	}
	extent := shapes[0].Bounds()
	for _, s := range shapes[1:] {
		b := s.Bounds()
		extent.Min.X = min(extent.Min.X, b.Min.X)
		extent.Min.Y = min(extent.Min.Y, b.Min.Y)
		extent.Max.X = max(extent.Max.X, b.Max.X)
		extent.Max.Y = max(extent.Max.Y, b.Max.Y)
	}
	extent.Min = extent.Min.Add(-pngPadding, -pngPadding)
	extent.Max = extent.Max.Add(pngPadding, pngPadding)

	imageWidth := int(float64(extent.Width()) * pngCellWidth)
	imageHeight := int(float64(extent.Height()) * pngCellHeight)
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	c := pngCanvas{dc: dc, origin: extent.Min}
	for _, s := range shapes {
		switch s := s.(type) {
		case *doc.Rect:
			c.drawRect(s)
		case *doc.Line:
			c.drawLine(s)
		case *doc.Text:
			c.drawText(s)
		}
	}
	return dc.SavePNG(filename)
}

// ink is the color strokes are drawn with; an unset stroke draws black.
func ink(p doc.Paint) color.Color {
	if c, ok := p.RGBA(); ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return color.Black
}

func strokeWidth(bold bool) float64 {
	if bold {
		return 2.5
	}
	return 1.0
}

func (c pngCanvas) drawRect(r *doc.Rect) {
	b := r.Bounds()
	x, y := c.x(b.Min.X), c.y(b.Min.Y)
	w := float64(b.Width()) * pngCellWidth
	h := float64(b.Height()) * pngCellHeight

	if fill, ok := r.Fill.RGBA(); ok {
		c.dc.SetColor(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: fill.A})
		c.dc.DrawRectangle(x, y, w, h)
		c.dc.Fill()
	}
	// The outline runs through the centers of the border cells.
	c.dc.SetLineWidth(strokeWidth(r.Bold))
	c.dc.SetColor(ink(r.Stroke))
	c.dc.DrawRectangle(x+pngCellWidth/2, y+pngCellHeight/2, w-pngCellWidth, h-pngCellHeight)
	c.dc.Stroke()
}

func (c pngCanvas) drawLine(l *doc.Line) {
	x1, y1 := c.center(l.A)
	x2, y2 := c.center(l.B)
	c.dc.SetColor(ink(l.Stroke))
	c.dc.SetLineWidth(strokeWidth(l.Bold))
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
	c.dc.DrawCircle(x1, y1, 2)
	c.dc.Fill()
	c.drawArrow(x1, y1, x2, y2)
}

func (c pngCanvas) drawArrow(fx, fy, tx, ty float64) {
	dx, dy := tx-fx, ty-fy
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	const arrowSize = 6.0
	const arrowAngle = 0.5

	c.dc.MoveTo(tx, ty)
	c.dc.LineTo(tx-arrowSize*dx+arrowSize*dy*arrowAngle, ty-arrowSize*dy-arrowSize*dx*arrowAngle)
	c.dc.LineTo(tx-arrowSize*dx-arrowSize*dy*arrowAngle, ty-arrowSize*dy+arrowSize*dx*arrowAngle)
	c.dc.ClosePath()
	c.dc.Fill()
}

func (c pngCanvas) drawText(t *doc.Text) {
	if fill, ok := t.Fill.RGBA(); ok {
		c.dc.SetColor(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: fill.A})
		c.dc.DrawRectangle(c.x(t.Pos.X), c.y(t.Pos.Y), float64(t.Width())*pngCellWidth, pngCellHeight)
		c.dc.Fill()
	}
	for i, ch := range t.Chars {
		stroke := t.Stroke
		if !ch.Stroke.IsTransparent() {
			stroke = ch.Stroke
		}
		c.dc.SetColor(ink(stroke))
		x, y := c.center(t.Pos.Add(i, 0))
		s := string(ch.Ch)
		c.dc.DrawStringAnchored(s, x, y, 0.5, 0.35)
		if ch.Bold {
			c.dc.DrawStringAnchored(s, x+0.6, y, 0.5, 0.35)
		}
	}
}

// exportSummary is the status line text after a successful export.
func exportSummary(kind, path string) string {
	return fmt.Sprintf("Exported %s to %s", strings.ToUpper(kind), displayPath(path))
}
