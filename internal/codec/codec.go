// Package codec converts documents to and from the versioned JSON record
// written to disk.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"unicode/utf8"

	"cellsketch/internal/doc"
	"cellsketch/internal/geom"
)

// Version is the only record version this build reads and writes.
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrMalformed          = errors.New("malformed document")
)

type record struct {
	Version    int          `json:"version"`
	TextRuns   []textRecord `json:"textRuns"`
	Rectangles []rectRecord `json:"rectangles"`
	Lines      []lineRecord `json:"lines"`
	NextTextID int          `json:"nextTextId"`
	NextRectID int          `json:"nextRectId"`
	NextLineID int          `json:"nextLineId"`
	NextZIndex int          `json:"nextZIndex"`
}

type colorRecord struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

type charRecord struct {
	Char   string       `json:"char"`
	Bold   bool         `json:"bold"`
	Stroke *colorRecord `json:"stroke"`
}

type textRecord struct {
	ID     int          `json:"id"`
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Chars  []charRecord `json:"chars"`
	Z      int          `json:"zIndex"`
	Stroke *colorRecord `json:"stroke"`
	Fill   *colorRecord `json:"fill"`
}

type rectRecord struct {
	ID     int          `json:"id"`
	X1     int          `json:"x1"`
	Y1     int          `json:"y1"`
	X2     int          `json:"x2"`
	Y2     int          `json:"y2"`
	Bold   bool         `json:"bold"`
	Z      int          `json:"zIndex"`
	Stroke *colorRecord `json:"stroke"`
	Fill   *colorRecord `json:"fill"`
}

type lineRecord struct {
	ID     int          `json:"id"`
	X1     int          `json:"x1"`
	Y1     int          `json:"y1"`
	X2     int          `json:"x2"`
	Y2     int          `json:"y2"`
	Bold   bool         `json:"bold"`
	Z      int          `json:"zIndex"`
	Stroke *colorRecord `json:"stroke"`
}

func encodePaint(p doc.Paint) *colorRecord {
	c, ok := p.RGBA()
	if !ok {
		return nil
	}
	return &colorRecord{R: c.R, G: c.G, B: c.B, A: c.A}
}

func decodePaint(c *colorRecord) doc.Paint {
	if c == nil {
		return doc.Transparent
	}
	return doc.Solid(color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// Marshal encodes d. Entities are written in ascending z so the output is
// stable for a given document.
func Marshal(d *doc.Document) ([]byte, error) {
	rec := record{
		Version:    Version,
		TextRuns:   []textRecord{},
		Rectangles: []rectRecord{},
		Lines:      []lineRecord{},
		NextTextID: d.NextTextID,
		NextRectID: d.NextRectID,
		NextLineID: d.NextLineID,
		NextZIndex: d.NextZ,
	}
	for _, s := range d.Shapes() {
		switch e := s.(type) {
		case *doc.Text:
			tr := textRecord{
				ID: e.ID, X: e.Pos.X, Y: e.Pos.Y, Z: e.Z,
				Chars:  make([]charRecord, 0, len(e.Chars)),
				Stroke: encodePaint(e.Stroke),
				Fill:   encodePaint(e.Fill),
			}
			for _, c := range e.Chars {
				tr.Chars = append(tr.Chars, charRecord{
					Char:   string(c.Ch),
					Bold:   c.Bold,
					Stroke: encodePaint(c.Stroke),
				})
			}
			rec.TextRuns = append(rec.TextRuns, tr)
		case *doc.Rect:
			rec.Rectangles = append(rec.Rectangles, rectRecord{
				ID: e.ID, X1: e.A.X, Y1: e.A.Y, X2: e.B.X, Y2: e.B.Y,
				Bold: e.Bold, Z: e.Z,
				Stroke: encodePaint(e.Stroke),
				Fill:   encodePaint(e.Fill),
			})
		case *doc.Line:
			rec.Lines = append(rec.Lines, lineRecord{
				ID: e.ID, X1: e.A.X, Y1: e.A.Y, X2: e.B.X, Y2: e.B.Y,
				Bold: e.Bold, Z: e.Z,
				Stroke: encodePaint(e.Stroke),
			})
		}
	}
	return json.MarshalIndent(rec, "", "  ")
}

// Unmarshal decodes a record produced by Marshal. On any error the returned
// document is nil.
func Unmarshal(data []byte) (*doc.Document, error) {
	var header struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if header.Version == nil {
		return nil, fmt.Errorf("%w: missing version", ErrMalformed)
	}
	if *header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *header.Version)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	d := doc.New()
	d.NextTextID = rec.NextTextID
	d.NextRectID = rec.NextRectID
	d.NextLineID = rec.NextLineID
	d.NextZ = rec.NextZIndex

	v := validator{d: d, zs: make(map[int]bool)}
	for _, tr := range rec.TextRuns {
		t := &doc.Text{
			ID:     tr.ID,
			Pos:    geom.Point{X: tr.X, Y: tr.Y},
			Z:      tr.Z,
			Stroke: decodePaint(tr.Stroke),
			Fill:   decodePaint(tr.Fill),
		}
		for i, cr := range tr.Chars {
			r, size := utf8.DecodeRuneInString(cr.Char)
			// A literal U+FFFD decodes with size 3; only size 0 or 1 is a failure.
			if (r == utf8.RuneError && size <= 1) || size != len(cr.Char) {
				return nil, fmt.Errorf("%w: text %d char %d is not a single character", ErrMalformed, tr.ID, i)
			}
			t.Chars = append(t.Chars, doc.Char{Ch: r, Bold: cr.Bold, Stroke: decodePaint(cr.Stroke)})
		}
		if err := v.check(t.Ref(), tr.ID, d.NextTextID, tr.Z, t.Pos); err != nil {
			return nil, err
		}
		d.Texts[t.ID] = t
	}
	for _, rr := range rec.Rectangles {
		r := &doc.Rect{
			ID:     rr.ID,
			A:      geom.Point{X: rr.X1, Y: rr.Y1},
			B:      geom.Point{X: rr.X2, Y: rr.Y2},
			Bold:   rr.Bold,
			Z:      rr.Z,
			Stroke: decodePaint(rr.Stroke),
			Fill:   decodePaint(rr.Fill),
		}
		if err := v.check(r.Ref(), rr.ID, d.NextRectID, rr.Z, r.A, r.B); err != nil {
			return nil, err
		}
		d.Rects[r.ID] = r
	}
	for _, lr := range rec.Lines {
		l := &doc.Line{
			ID:     lr.ID,
			A:      geom.Point{X: lr.X1, Y: lr.Y1},
			B:      geom.Point{X: lr.X2, Y: lr.Y2},
			Bold:   lr.Bold,
			Z:      lr.Z,
			Stroke: decodePaint(lr.Stroke),
		}
		if err := v.check(l.Ref(), lr.ID, d.NextLineID, lr.Z, l.A, l.B); err != nil {
			return nil, err
		}
		d.Lines[l.ID] = l
	}
	return d, nil
}

// validator enforces the document invariants on decoded entities.
type validator struct {
	d  *doc.Document
	zs map[int]bool
}

func (v *validator) check(ref doc.Ref, id, nextID, z int, pts ...geom.Point) error {
	if id < 0 || id >= nextID {
		return fmt.Errorf("%w: %s id %d outside counter %d", ErrMalformed, ref.Kind, id, nextID)
	}
	if v.d.Has(ref) {
		return fmt.Errorf("%w: duplicate %s id %d", ErrMalformed, ref.Kind, id)
	}
	if z < 0 || z >= v.d.NextZ {
		return fmt.Errorf("%w: %s %d z-index %d outside counter %d", ErrMalformed, ref.Kind, id, z, v.d.NextZ)
	}
	if v.zs[z] {
		return fmt.Errorf("%w: duplicate z-index %d", ErrMalformed, z)
	}
	v.zs[z] = true
	for _, p := range pts {
		if p.X < 0 || p.Y < 0 {
			return fmt.Errorf("%w: %s %d has negative coordinates", ErrMalformed, ref.Kind, id)
		}
	}
	return nil
}
