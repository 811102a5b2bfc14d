// Package cellfont is the fixed-cell font shared by the text screen and the
// serial monitor panes.
package cellfont

import (
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	CellWidth  = 6
	CellHeight = 10

	// Baseline is the row within a cell that glyphs are drawn from.
	Baseline = 7
)

// Font covers printable ASCII; every glyph advances CellWidth and stays
// inside a cell drawn at Baseline.
//
// Font is shared package state. Draw from one goroutine at a time.
var Font tinyfont.Fonter = &proggy.TinySZ8pt7b

// Rune maps a text-mode character byte to the rune drawn for it. Control
// codes draw as blanks; line-drawing bytes fall back to ASCII look-alikes.
func Rune(b byte) rune {
	switch {
	case b < 0x20 || b == 0x7f:
		return ' '
	case b < 0x7f:
		return rune(b)
	}

	switch b {
	case 0xb3, 0xba: // vertical lines
		return '|'
	case 0xc4, 0xcd: // horizontal lines
		return '-'
	case 0xb0, 0xb1, 0xb2, 0xdb, 0xdc, 0xdd, 0xde, 0xdf: // shades, blocks
		return '#'
	case 0xf8: // degree
		return 'o'
	case 0xfa, 0xf9: // middle dots
		return '.'
	}
	if b >= 0xb4 && b <= 0xda { // corners and junctions
		return '+'
	}
	return '?'
}
