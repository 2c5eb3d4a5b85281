package main

import (
	"image/color"
	"slices"
	"testing"

	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
	"cellsketch/internal/geom"
)

func pt(x, y int) geom.Point { return geom.Point{X: x, Y: y} }

var testSize = geom.Size{W: 12, H: 6}

func addText(d *doc.Document, p geom.Point, s string) *doc.Text {
	t := d.CreateText(p, doc.Style{}, testSize)
	for _, r := range s {
		d.InsertChar(t.ID, len(t.Chars), doc.Char{Ch: r})
	}
	return t
}

func TestPaintRectangles(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Point
		bold bool
		want []string
	}{
		{"box", pt(0, 0), pt(3, 2), false, []string{"┌──┐", "│  │", "└──┘"}},
		{"reversed corners", pt(3, 2), pt(0, 0), false, []string{"┌──┐", "│  │", "└──┘"}},
		{"bold", pt(0, 0), pt(2, 1), true, []string{"┏━┓", "┗━┛"}},
		{"single cell", pt(0, 0), pt(0, 0), false, []string{"□"}},
		{"flat", pt(0, 0), pt(3, 0), false, []string{"────"}},
		{"thin", pt(0, 0), pt(0, 1), false, []string{"│", "│"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := doc.New()
			d.CreateRect(tt.a, tt.b, doc.Style{Bold: tt.bold}, testSize)
			got := paintDocument(d, testSize).plain()
			if !slices.Equal(got[:len(tt.want)], tt.want) {
				t.Errorf("got %q, want %q", got[:len(tt.want)], tt.want)
			}
			for _, line := range got[len(tt.want):] {
				if line != "" {
					t.Errorf("unexpected trailing line %q", line)
				}
			}
		})
	}
}

func TestPaintLines(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Point
		want string
	}{
		{"right", pt(0, 0), pt(3, 0), "•──>"},
		{"left", pt(3, 0), pt(0, 0), "<──•"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := doc.New()
			d.CreateLine(tt.a, tt.b, doc.Style{}, testSize)
			if got := paintDocument(d, testSize).plain()[0]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	d := doc.New()
	d.CreateLine(pt(0, 0), pt(0, 2), doc.Style{Bold: true}, testSize)
	got := paintDocument(d, testSize).plain()[:3]
	if want := []string{"•", "┃", "v"}; !slices.Equal(got, want) {
		t.Errorf("bold vertical: got %q, want %q", got, want)
	}
}

func TestPaintFollowsZOrder(t *testing.T) {
	d := doc.New()
	fill := doc.Solid(color.RGBA{R: 10, G: 20, B: 30, A: 255})
	r := d.CreateRect(pt(0, 0), pt(4, 2), doc.Style{Fill: fill}, testSize)
	txt := addText(d, pt(1, 1), "hi")

	if got := paintDocument(d, testSize).plain()[1]; got != "│hi │" {
		t.Fatalf("text above rect: got %q", got)
	}
	if c := paintDocument(d, testSize).at(pt(1, 1)); c.bg != fill {
		t.Errorf("text cell should keep the rect fill, got %v", c.bg)
	}

	d.SwapZ(r.Ref(), txt.Ref())
	if got := paintDocument(d, testSize).plain()[1]; got != "│   │" {
		t.Errorf("filled rect above text: got %q", got)
	}
}

func TestPaintClipsToGrid(t *testing.T) {
	d := doc.New()
	addText(d, pt(10, 0), "abcd")
	if got := paintDocument(d, testSize).plain()[0]; got != "          ab" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSelectionAndHandles(t *testing.T) {
	st := editor.New(testSize)
	r := st.Doc.CreateRect(pt(0, 0), pt(4, 2), doc.Style{}, testSize)
	st.Selection.Add(r.Ref())

	g := renderCanvas(st)
	for _, p := range geom.HandlePoints(r.A, r.B) {
		if c := g.at(p); c.ch != handleGlyph || !c.reverse {
			t.Errorf("handle at %v: got %q reverse=%v", p, c.ch, c.reverse)
		}
	}
	if c := g.at(pt(1, 1)); c.reverse {
		t.Error("interior of an unfilled rect should not be highlighted")
	}

	// Exports never carry decorations.
	if got := paintDocument(st.Doc, testSize).plain()[0]; got != "┌───┐" {
		t.Errorf("plain paint: got %q", got)
	}
}

func TestRenderDraftAndMarquee(t *testing.T) {
	st := editor.New(testSize)
	st, _ = st.SetTool(editor.ToolRect)
	st, _ = st.HandlePointer(editor.PointerEvent{Kind: editor.PointerDown, X: 1, Y: 1})
	st, _ = st.HandlePointer(editor.PointerEvent{Kind: editor.PointerDrag, X: 3, Y: 2})
	if got := renderCanvas(st).plain()[1]; got != " ┌─┐" {
		t.Errorf("draft: got %q", got)
	}

	st = editor.New(testSize)
	st, _ = st.HandlePointer(editor.PointerEvent{Kind: editor.PointerDown, X: 0, Y: 0})
	st, _ = st.HandlePointer(editor.PointerEvent{Kind: editor.PointerDrag, X: 2, Y: 2})
	got := renderCanvas(st).plain()[:3]
	if want := []string{"+┄+", "┆ ┆", "+┄+"}; !slices.Equal(got, want) {
		t.Errorf("marquee: got %q, want %q", got, want)
	}
}

func TestRenderCaret(t *testing.T) {
	st := editor.New(testSize)
	st, _ = st.SetTool(editor.ToolText)
	st, _ = st.HandlePointer(editor.PointerEvent{Kind: editor.PointerDown, X: 2, Y: 1})
	st, _ = st.HandlePointer(editor.PointerEvent{Kind: editor.PointerUp, X: 2, Y: 1})
	for _, r := range "ab" {
		st, _, _ = st.HandleKey(editor.KeyEvent{Key: string(r), Rune: r})
	}

	g := renderCanvas(st)
	if c := g.at(pt(4, 1)); !c.reverse {
		t.Error("caret cell after the last char should be reversed")
	}
	if c := g.at(pt(2, 1)); c.ch != 'a' || !c.underline {
		t.Errorf("edited run: got %q underline=%v", c.ch, c.underline)
	}

	st, _ = st.HandleBlink(st.BlinkSession())
	if c := renderCanvas(st).at(pt(4, 1)); c.reverse {
		t.Error("caret should be hidden after a blink tick")
	}
}

func TestStyledSpans(t *testing.T) {
	d := doc.New()
	addText(d, pt(0, 0), "ab")
	lines := paintDocument(d, geom.Size{W: 4, H: 1}).styled()
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[0] == "" {
		t.Error("styled line should not be empty")
	}
}
