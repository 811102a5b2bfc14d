// Package vga rasterizes the CGA text screen into a framebuffer pane.
package vga

import (
	"image/color"

	"ember/emberos/fonts/cellfont"
	"ember/emberos/internal/fbview"
	"ember/hal"

	"tinygo.org/x/tinyfont"
)

const (
	cellW = cellfont.CellWidth
	cellH = cellfont.CellHeight

	// cursorBlinkTicks is half the cursor blink period.
	cursorBlinkTicks = 500
)

// palette is the 16-colour text-mode palette indexed by attribute nibble.
var palette = [16]color.RGBA{
	{R: 0, G: 0, B: 0, A: 255},       // black
	{R: 0, G: 0, B: 170, A: 255},     // blue
	{R: 0, G: 170, B: 0, A: 255},     // green
	{R: 0, G: 170, B: 170, A: 255},   // cyan
	{R: 170, G: 0, B: 0, A: 255},     // red
	{R: 170, G: 0, B: 170, A: 255},   // magenta
	{R: 170, G: 85, B: 0, A: 255},    // brown
	{R: 170, G: 170, B: 170, A: 255}, // light grey
	{R: 85, G: 85, B: 85, A: 255},    // dark grey
	{R: 85, G: 85, B: 255, A: 255},   // light blue
	{R: 85, G: 255, B: 85, A: 255},   // light green
	{R: 85, G: 255, B: 255, A: 255},  // light cyan
	{R: 255, G: 85, B: 85, A: 255},   // light red
	{R: 255, G: 85, B: 255, A: 255},  // light magenta
	{R: 255, G: 255, B: 85, A: 255},  // yellow
	{R: 255, G: 255, B: 255, A: 255}, // white
}

// Service redraws the cells of the text screen that changed since the last
// frame, plus the blinking hardware cursor.
type Service struct {
	text *hal.CGA
	view *fbview.View
	font tinyfont.Fonter

	cur  []uint16
	prev []uint16
	full bool

	cursor     int
	cursorShow bool
}

// New returns a renderer of text onto the top pane of fb.
func New(text *hal.CGA, fb hal.Framebuffer) *Service {
	return &Service{
		text: text,
		view: fbview.New(fb, 0, 0, hal.CGAColumns*cellW, hal.CGARows*cellH),
		font: cellfont.Font,
		cur:  make([]uint16, text.Len()),
		prev: make([]uint16, text.Len()),
		full: true,
	}
}

// Render draws the screen as of tick now and reports whether any pixel
// changed. It is not safe to call concurrently with other users of the font.
func (s *Service) Render(now uint64) bool {
	cursor := s.text.Snapshot(s.cur)
	show := (now/cursorBlinkTicks)%2 == 0

	cursorMoved := cursor != s.cursor || show != s.cursorShow

	dirty := false
	for i, cell := range s.cur {
		if !s.full && cell == s.prev[i] {
			if !cursorMoved || (i != cursor && i != s.cursor) {
				continue
			}
		}
		s.drawCell(i, cell, i == cursor && show)
		dirty = true
	}

	s.cur, s.prev = s.prev, s.cur
	s.cursor = cursor
	s.cursorShow = show
	s.full = false
	return dirty
}

func (s *Service) drawCell(i int, cell uint16, cursor bool) {
	x := int16(i%hal.CGAColumns) * cellW
	y := int16(i/hal.CGAColumns) * cellH
	fg := palette[(cell>>8)&0x0f]
	bg := palette[(cell>>12)&0x07]

	_ = s.view.FillRectangle(x, y, cellW, cellH, bg)
	tinyfont.DrawChar(s.view, s.font, x, y+cellfont.Baseline, cellfont.Rune(byte(cell)), fg)
	if cursor {
		_ = s.view.FillRectangle(x, y+cellH-2, cellW, 2, fg)
	}
}
