package main

import "time"

const (
	numColors     = 8 // palette slots bound to keys 1-8
	statusHeight  = 1
	defaultBlink  = 530 * time.Millisecond
	defaultFile   = "sketch.json"
	configName    = ".cellsketchrc"
	tempPattern   = ".cellsketch-*"
	pngCellWidth  = 8.0
	pngCellHeight = 16.0
	pngFontSize   = 12.0
	pngPadding    = 2
)

// Default palette, in the order of the terminal's standard colors.
var defaultPalette = []string{
	"#c0c0c0", "#cc3333", "#33aa33", "#ccaa22",
	"#3366cc", "#aa33aa", "#22aaaa", "#ffffff",
}

const (
	handleGlyph  = '■'
	emptyGlyph   = ' '
	marqueeHoriz = '┄'
	marqueeVert  = '┆'
	marqueeEdge  = '+'
)

// Box-drawing corners for light and heavy rectangle outlines.
var (
	lightCorners = [4]rune{'┌', '┐', '└', '┘'}
	heavyCorners = [4]rune{'┏', '┓', '┗', '┛'}
)
