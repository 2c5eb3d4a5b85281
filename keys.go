package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
)

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help {
		return m.handleHelpKey(msg), nil
	}

	events := keyEvents(msg)
	if len(events) > 1 {
		// Rune bursts only mean something to an open text run.
		var fx editor.Effect
		st := m.editor
		for _, ev := range events {
			var f editor.Effect
			st, f, _ = st.HandleKey(ev)
			fx |= f
		}
		return m.apply(st, fx)
	}

	st, fx, consumed := m.editor.HandleKey(events[0])
	if consumed {
		return m.apply(st, fx)
	}

	m.errorMessage = ""
	m.successMessage = ""

	key := msg.String()
	if dx, dy, ok := nudgeDelta(key); ok {
		return m.apply(m.editor.Nudge(dx, dy))
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
		return m, nil
	case "esc":
		if m.editor.Tool != editor.ToolMove {
			return m.apply(m.editor.SetTool(editor.ToolMove))
		}
		return m.apply(m.editor.ClearSelection())

	case "m":
		return m.apply(m.editor.SetTool(editor.ToolMove))
	case "t":
		return m.apply(m.editor.SetTool(editor.ToolText))
	case "r":
		return m.apply(m.editor.SetTool(editor.ToolRect))
	case "a":
		return m.apply(m.editor.SetTool(editor.ToolLine))

	case "u", "ctrl+z":
		return m.apply(m.editor.Undo())
	case "U", "ctrl+y":
		return m.apply(m.editor.Redo())
	case "d", "delete", "backspace":
		return m.apply(m.editor.DeleteSelection())
	case "]":
		return m.apply(m.editor.MoveLayerUp())
	case "[":
		return m.apply(m.editor.MoveLayerDown())
	case "b":
		return m.apply(m.editor.ToggleBold())

	case "1", "2", "3", "4", "5", "6", "7", "8":
		st, fx := m.setColor(int(key[0] - '1'))
		return m.apply(st, fx)
	case "0":
		st, fx := m.setColor(-1)
		return m.apply(st, fx)
	case "f":
		if m.channel == doc.Stroke {
			m.channel = doc.Fill
		} else {
			m.channel = doc.Stroke
		}
		return m, nil

	case "y":
		m.copySelection()
		return m, nil
	case "p":
		st, fx := m.paste()
		return m.apply(st, fx)

	case "ctrl+s":
		m.save()
		return m, nil
	case "ctrl+o":
		m.reload()
		return m, nil
	case "e":
		m.exportPNG()
		return m, nil
	case "E":
		m.exportText()
		return m, nil
	}
	return m, nil
}

func (m model) handleHelpKey(msg tea.KeyMsg) model {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(0, len(helpLines)-max(1, m.height-statusHeight))
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m
}
