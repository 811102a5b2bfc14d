// Package term is the serial monitor: a dumb terminal that shows what the
// console transmits on the serial line, drawn below the text screen.
package term

import (
	"image/color"
	"strings"
	"sync"

	"ember/emberos/fonts/cellfont"
	"ember/emberos/internal/fbview"
	"ember/hal"

	"tinygo.org/x/tinyfont"
)

const (
	Cols = hal.CGAColumns
	Rows = hal.SerialPaneRows

	cellW    = cellfont.CellWidth
	cellH    = cellfont.CellHeight
	tabWidth = 8
)

var (
	colorBG     = color.RGBA{R: 0, G: 0, B: 48, A: 255}
	colorFG     = color.RGBA{R: 255, G: 176, B: 0, A: 255}
	colorCursor = color.RGBA{R: 255, G: 176, B: 0, A: 255}
)

// Service is an io.Writer terminal. Writes may come from any goroutine;
// Render must be called from the goroutine that owns the font.
type Service struct {
	mu    sync.Mutex
	cells [Rows][Cols]byte
	dirty [Rows]bool
	row   int
	col   int

	view *fbview.View
	font tinyfont.Fonter

	drawnRow, drawnCol int
}

// New returns a terminal drawn on fb starting at pixel row top.
func New(fb hal.Framebuffer, top int) *Service {
	s := &Service{
		view: fbview.New(fb, 0, top, Cols*cellW, Rows*cellH),
		font: cellfont.Font,
	}
	for i := range s.dirty {
		s.dirty[i] = true
	}
	return s
}

// Write interprets '\r', '\n', '\b' and '\t'; other control bytes are
// dropped.
func (s *Service) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range p {
		switch {
		case b == '\r':
			s.col = 0
		case b == '\n':
			s.col = 0
			s.newline()
		case b == '\b':
			if s.col > 0 {
				s.col--
			}
		case b == '\t':
			s.col = (s.col/tabWidth + 1) * tabWidth
			if s.col >= Cols {
				s.col = Cols - 1
			}
		case b < 0x20 || b == 0x7f:
		default:
			if s.col == Cols {
				s.col = 0
				s.newline()
			}
			s.cells[s.row][s.col] = b
			s.dirty[s.row] = true
			s.col++
		}
	}
	return len(p), nil
}

func (s *Service) newline() {
	if s.row < Rows-1 {
		s.row++
		return
	}
	copy(s.cells[:], s.cells[1:])
	s.cells[Rows-1] = [Cols]byte{}
	for i := range s.dirty {
		s.dirty[i] = true
	}
}

// Lines returns the screen text with trailing blanks removed.
func (s *Service) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, Rows)
	for r := range s.cells {
		out[r] = strings.TrimRight(string(s.cells[r][:]), "\x00 ")
	}
	return out
}

// Cursor returns the output position.
func (s *Service) Cursor() (row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row, s.col
}

// Render draws the rows changed since the last call and reports whether
// anything was drawn.
func (s *Service) Render() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drawnRow != s.row || s.drawnCol != s.col {
		s.dirty[s.drawnRow] = true
		s.dirty[s.row] = true
	}

	drew := false
	for r := range s.cells {
		if !s.dirty[r] {
			continue
		}
		s.drawRow(r)
		s.dirty[r] = false
		drew = true
	}
	s.drawnRow, s.drawnCol = s.row, s.col
	return drew
}

func (s *Service) drawRow(r int) {
	y := int16(r * cellH)
	_ = s.view.FillRectangle(0, y, Cols*cellW, cellH, colorBG)
	for c, b := range s.cells[r] {
		if b == 0 || b == ' ' {
			continue
		}
		tinyfont.DrawChar(s.view, s.font, int16(c*cellW), y+cellfont.Baseline, cellfont.Rune(b), colorFG)
	}
	if r == s.row && s.col < Cols {
		_ = s.view.FillRectangle(int16(s.col*cellW), y+cellH-1, cellW, 1, colorCursor)
	}
}
