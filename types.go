package main

import (
	"time"

	"cellsketch/internal/doc"
	"cellsketch/internal/editor"
)

type model struct {
	editor  editor.EditorState
	palette []doc.Paint
	path    string
	blink   time.Duration

	width  int
	height int

	help       bool
	helpScroll int

	// channel is the paint the palette keys recolor; colorIndex is the
	// last slot applied, -1 for transparent.
	channel    doc.Channel
	colorIndex int

	errorMessage   string
	successMessage string

	frame *frame
}

// frame caches the rendered canvas between redraw requests.
type frame struct {
	lines []string
	valid bool
}

func (f *frame) invalidate() { f.valid = false }

// blinkMsg is one caret tick of a blink session.
type blinkMsg struct {
	session int
}
