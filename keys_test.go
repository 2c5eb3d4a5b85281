package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	m, err := initialModel(defaultConfig(), filepath.Join(t.TempDir(), "sketch.json"))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func send(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func press(m model, keys string) model {
	for _, r := range keys {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func mouse(m model, action tea.MouseAction, button tea.MouseButton, x, y int) (model, tea.Cmd) {
	return send(m, tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
}

func drawRect(m model, x1, y1, x2, y2 int) model {
	m = press(m, "r")
	m, _ = mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, x1, y1)
	m, _ = mouse(m, tea.MouseActionMotion, tea.MouseButtonLeft, x2, y2)
	m, _ = mouse(m, tea.MouseActionRelease, tea.MouseButtonNone, x2, y2)
	return m
}

func onlyRect(t *testing.T, m model) *doc.Rect {
	t.Helper()
	shapes := m.editor.Doc.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("want one shape, got %d", len(shapes))
	}
	r, ok := shapes[0].(*doc.Rect)
	if !ok {
		t.Fatalf("want a rect, got %T", shapes[0])
	}
	return r
}

func TestNewFileMessage(t *testing.T) {
	m := newTestModel(t)
	if !strings.HasPrefix(m.successMessage, "New file") {
		t.Errorf("successMessage = %q", m.successMessage)
	}
	if m.errorMessage != "" {
		t.Errorf("errorMessage = %q", m.errorMessage)
	}
}

func TestToolKeys(t *testing.T) {
	m := newTestModel(t)
	tests := []struct {
		key  string
		want editor.Tool
	}{
		{"r", editor.ToolRect},
		{"a", editor.ToolLine},
		{"t", editor.ToolText},
		{"m", editor.ToolMove},
	}
	for _, tt := range tests {
		m = press(m, tt.key)
		if m.editor.Tool != tt.want {
			t.Errorf("after %q: tool = %v, want %v", tt.key, m.editor.Tool, tt.want)
		}
	}

	m = press(m, "r")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.editor.Tool != editor.ToolMove {
		t.Errorf("esc should return to the move tool, got %v", m.editor.Tool)
	}
}

func TestDrawUndoRedo(t *testing.T) {
	m := drawRect(newTestModel(t), 1, 1, 4, 3)
	r := onlyRect(t, m)
	if r.A != pt(1, 1) || r.B != pt(4, 3) {
		t.Errorf("rect = %v-%v", r.A, r.B)
	}
	if m.editor.Tool != editor.ToolMove {
		t.Errorf("tool after drawing = %v", m.editor.Tool)
	}

	m = press(m, "u")
	if m.editor.Doc.Len() != 0 {
		t.Fatalf("undo left %d shapes", m.editor.Doc.Len())
	}
	m = press(m, "U")
	onlyRect(t, m)
}

func TestTypingSwallowsCommandKeys(t *testing.T) {
	m := press(newTestModel(t), "t")
	m, cmd := mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, 2, 2)
	if cmd == nil {
		t.Error("starting an edit should schedule a caret blink")
	}
	m, _ = mouse(m, tea.MouseActionRelease, tea.MouseButtonNone, 2, 2)

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		t.Error("q while editing must not quit")
	}
	m = press(m, "ud")
	if _, _, ok := m.editor.Editing(); !ok {
		t.Fatal("should still be editing")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, _, ok := m.editor.Editing(); ok {
		t.Fatal("esc should end editing")
	}
	texts := m.editor.Doc.OfKind(doc.KindText)
	if len(texts) != 1 || texts[0].(*doc.Text).String() != "qud" {
		t.Errorf("texts = %v", texts)
	}

	if _, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q when idle should quit")
	}
}

func TestBlinkTicks(t *testing.T) {
	m := press(newTestModel(t), "t")
	m, _ = mouse(m, tea.MouseActionPress, tea.MouseButtonLeft, 2, 2)
	session := m.editor.BlinkSession()

	m, cmd := send(m, blinkMsg{session: session})
	if cmd == nil {
		t.Error("a live session should keep ticking")
	}
	if m.editor.CaretVisible() {
		t.Error("tick should hide the caret")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, cmd := send(m, blinkMsg{session: session}); cmd != nil {
		t.Error("a stale tick should end the chain")
	}
}

func TestHelpScreen(t *testing.T) {
	m := press(newTestModel(t), "?")
	if !m.help {
		t.Fatal("? should open help")
	}
	if !strings.Contains(m.View(), "cellsketch help") {
		t.Error("help view should show the title")
	}
	m = press(m, "j")
	if m.helpScroll != 1 {
		t.Errorf("helpScroll = %d", m.helpScroll)
	}
	m = press(m, "r")
	if m.help || m.editor.Tool != editor.ToolMove {
		t.Error("any other key should only close help")
	}
}

func TestPaletteKeys(t *testing.T) {
	m := drawRect(newTestModel(t), 1, 1, 4, 3)
	m = press(m, "2")
	if r := onlyRect(t, m); r.Stroke != m.palette[1] {
		t.Errorf("stroke = %v, want %v", r.Stroke, m.palette[1])
	}

	m = press(m, "f3")
	if m.channel != doc.Fill {
		t.Fatalf("channel = %v", m.channel)
	}
	if r := onlyRect(t, m); r.Fill != m.palette[2] {
		t.Errorf("fill = %v, want %v", r.Fill, m.palette[2])
	}

	m = press(m, "0")
	if r := onlyRect(t, m); !r.Fill.IsTransparent() {
		t.Errorf("fill = %v, want transparent", r.Fill)
	}
}

func TestSaveAndReload(t *testing.T) {
	m := drawRect(newTestModel(t), 1, 1, 4, 3)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.errorMessage != "" {
		t.Fatalf("save failed: %s", m.errorMessage)
	}
	if _, err := os.Stat(m.path); err != nil {
		t.Fatal(err)
	}

	m = press(m, "d")
	if m.editor.Doc.Len() != 0 {
		t.Fatal("delete should remove the selected rect")
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlO})
	onlyRect(t, m)
	if m.editor.History.CanUndo() {
		t.Error("reload should reset history")
	}
}

func TestExportKeys(t *testing.T) {
	m := press(newTestModel(t), "E")
	if m.errorMessage == "" {
		t.Error("exporting an empty sketch should fail")
	}

	m = drawRect(m, 1, 1, 4, 3)
	m = press(m, "eE")
	for _, ext := range []string{".png", ".txt"} {
		if _, err := os.Stat(exportPath(m.path, ext)); err != nil {
			t.Errorf("%s export: %v", ext, err)
		}
	}
}

func TestViewCachesFrame(t *testing.T) {
	m, _ := send(newTestModel(t), tea.WindowSizeMsg{Width: 30, Height: 6})
	if m.editor.Bounds.W != 30 || m.editor.Bounds.H != 5 {
		t.Fatalf("bounds = %+v", m.editor.Bounds)
	}
	view := m.View()
	if !m.frame.valid {
		t.Error("View should fill the frame cache")
	}
	if !strings.Contains(view, "MOVE") {
		t.Errorf("status line missing mode: %q", view)
	}

	m = drawRect(m, 0, 0, 3, 2)
	if m.frame.valid {
		t.Error("drawing should invalidate the frame")
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !strings.Contains(m.View(), "┌──┐") {
		t.Error("view should show the new rect")
	}
}

func TestStatusLineCounts(t *testing.T) {
	m := drawRect(newTestModel(t), 1, 1, 4, 3)
	if got := m.statusLine(); !strings.Contains(got, "Selected: 1") || !strings.Contains(got, "Undo: 1 Redo: 0") {
		t.Errorf("after drawing: %q", got)
	}

	txt := m.editor.Doc.CreateText(pt(6, 6), doc.Style{}, m.editor.Bounds)
	m.editor.Selection.Add(txt.Ref())
	if got := m.statusLine(); !strings.Contains(got, "Selected: 2 (1 text)") {
		t.Errorf("mixed selection: %q", got)
	}

	m = press(m, "u")
	if got := m.statusLine(); !strings.Contains(got, "Undo: 0 Redo: 1") {
		t.Errorf("after undo: %q", got)
	}

	m = newTestModel(t)
	if got := m.statusLine(); strings.Contains(got, "Undo:") {
		t.Errorf("fresh model should not show history: %q", got)
	}
}

func TestLoadErrorKeepsEditorUsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := initialModel(defaultConfig(), path)
	if err != nil {
		t.Fatal(err)
	}
	if m.errorMessage == "" {
		t.Error("a broken file should be reported")
	}
	m = drawRect(m, 1, 1, 2, 2)
	onlyRect(t, m)
}
