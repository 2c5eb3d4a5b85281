package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
)

var (
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#cc3333")).Bold(true)
	helpTitle   = lipgloss.NewStyle().Bold(true)
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if !m.frame.valid {
		m.frame.lines = renderCanvas(m.editor).styled()
		m.frame.valid = true
	}

	var result strings.Builder
	for _, line := range m.frame.lines {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) modeString() string {
	if m.editor.Mode == editor.ModeIdle {
		return strings.ToUpper(m.editor.Tool.String())
	}
	return m.editor.Mode.String()
}

func swatch(p doc.Paint) string {
	if p.IsTransparent() {
		return "·"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Hex())).Render("■")
}

func (m model) statusLine() string {
	st := m.editor
	status := fmt.Sprintf("Mode: %s", m.modeString())

	pen := fmt.Sprintf("Pen: %s%s", swatch(st.Pen.Stroke), swatch(st.Pen.Fill))
	if st.Pen.Bold {
		pen += " bold"
	}
	slot := "none"
	if m.colorIndex >= 0 {
		slot = fmt.Sprint(m.colorIndex + 1)
	}
	status += " | " + pen + fmt.Sprintf(" [%s %s]", m.channel, slot)

	if p, ok := st.HoverPoint(); ok {
		status += fmt.Sprintf(" | Cursor: (%d,%d)", p.X, p.Y)
	}
	if id, caret, ok := st.Editing(); ok {
		status += fmt.Sprintf(" | Text %d col %d | Enter/Esc=done", id, caret)
	} else if n := st.Selection.Count(); n > 0 {
		status += fmt.Sprintf(" | Selected: %d", n)
		if k := st.Selection.CountOf(doc.KindText); k > 0 && k < n {
			status += fmt.Sprintf(" (%d text)", k)
		}
	}
	if h := st.History; h.CanUndo() || h.CanRedo() {
		status += fmt.Sprintf(" | Undo: %d Redo: %d", h.Len(), h.RedoLen())
	}

	switch {
	case m.errorMessage != "":
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		status += " | " + m.successMessage
	default:
		status += " | ? for help | q to quit"
	}
	if m.width > 0 {
		return statusStyle.MaxWidth(m.width).Render(status)
	}
	return statusStyle.Render(status)
}

var helpLines = []string{
	"cellsketch help",
	"===============",
	"",
	"Tools:",
	"------",
	"  m                Move: click to select, drag to move, drag empty space to box-select",
	"  t                Text: click to type a new run, click a run to edit it",
	"  r                Rectangle: drag to draw",
	"  a                Line: drag to draw",
	"  Shift+click      Add to or remove from the selection",
	"  Click selected   Click a selected text run again to edit it",
	"",
	"Editing text:",
	"-------------",
	"  ←/→ Home/End     Move the caret",
	"  Backspace/Del    Remove characters",
	"  Ctrl+B           Bold for the next characters",
	"  Enter/Esc        Finish editing",
	"",
	"Selection:",
	"----------",
	"  h/←/j/↓/k/↑/l/→  Nudge the selection",
	"  Shift+h/j/k/l    Nudge 2x faster",
	"  d/Del/Backspace  Delete the selection, or the entity under the pointer",
	"  ]/[              Raise/lower the single selected entity one layer",
	"  b                Toggle bold on rectangles, lines and the pen",
	"  1-8              Apply palette color",
	"  0                Make transparent",
	"  f                Switch palette target between stroke and fill",
	"  y                Copy selected text",
	"  p                Paste text at the pointer",
	"",
	"File Operations:",
	"----------------",
	"  Ctrl+S           Save",
	"  Ctrl+O           Reload from disk",
	"  e                Export as PNG image",
	"  E                Export as plain text",
	"",
	"General:",
	"--------",
	"  u/Ctrl+Z         Undo",
	"  U/Ctrl+Y         Redo",
	"  Esc              Back to the move tool, then clear the selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(1, m.height-statusHeight)
	startLine := min(m.helpScroll, max(0, len(helpLines)-visibleHeight))
	endLine := min(len(helpLines), startLine+visibleHeight)

	lines := make([]string, 0, endLine-startLine+1)
	for i, line := range helpLines[startLine:endLine] {
		if startLine+i == 0 {
			line = helpTitle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines, statusStyle.Render(fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, any other key to close",
		startLine+1, endLine, len(helpLines))))
	return strings.Join(lines, "\n")
}
