package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"cellsketch/internal/codec"
	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
)

func sampleDocument() *doc.Document {
	d := doc.New()
	d.CreateRect(pt(1, 1), pt(5, 3), doc.Style{Bold: true}, testSize)
	d.CreateLine(pt(0, 5), pt(6, 5), doc.Style{}, testSize)
	addText(d, pt(2, 2), "hey")
	return d
}

func TestSaveLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketch.json")
	d := sampleDocument()

	if err := saveDocument(path, d); err != nil {
		t.Fatal(err)
	}
	got, err := loadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(d) {
		t.Error("loaded document differs from the saved one")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sketch.json")
	if err := saveDocument(path, sampleDocument()); err != nil {
		t.Fatal(err)
	}
	if err := saveDocument(path, doc.New()); err != nil {
		t.Fatal(err)
	}
	got, err := loadDocument(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Errorf("got %d entities after overwrite", got.Len())
	}
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "sketch.json")
	if err := saveDocument(path, sampleDocument()); err == nil {
		t.Error("saving into a missing directory should fail")
	}
}

func TestLoadDocumentErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadDocument(filepath.Join(dir, "none.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}

	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("[1,2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadDocument(path); !errors.Is(err, codec.ErrMalformed) {
		t.Errorf("malformed file: got %v", err)
	}
}

func TestExportPath(t *testing.T) {
	tests := []struct{ in, ext, want string }{
		{"sketch.json", ".png", "sketch.png"},
		{"dir/a.b.json", ".txt", "dir/a.b.txt"},
		{"noext", ".png", "noext.png"},
	}
	for _, tt := range tests {
		if got := exportPath(tt.in, tt.ext); got != tt.want {
			t.Errorf("exportPath(%q, %q) = %q, want %q", tt.in, tt.ext, got, tt.want)
		}
	}
}

func TestSaveLoadReplacementChar(t *testing.T) {
	st := editor.New(testSize)
	st, _ = st.PasteText(pt(0, 0), "x\xffy")
	st, _ = st.PasteText(pt(0, 1), "a\uFFFDb")

	path := filepath.Join(t.TempDir(), "sketch.json")
	if err := saveDocument(path, st.Doc); err != nil {
		t.Fatal(err)
	}
	got, err := loadDocument(path)
	if err != nil {
		t.Fatalf("saved document does not load: %v", err)
	}
	if !got.Equal(st.Doc) {
		t.Error("loaded document differs from the saved one")
	}
}
