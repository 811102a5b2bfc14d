package fbview

import (
	"image/color"
	"testing"

	"ember/hal"
)

type memFB struct {
	w, h int
	buf  []byte
}

func newMemFB(w, h int) *memFB { return &memFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) ClearRGB(r, g, b uint8)  {}
func (f *memFB) Present() error          { return nil }

func (f *memFB) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

func TestViewOffsetsAndClips(t *testing.T) {
	fb := newMemFB(10, 10)
	v := New(fb, 2, 4, 20, 3)

	if w, h := v.Size(); w != 8 || h != 3 {
		t.Fatalf("Size() = %d,%d, want 8,3", w, h)
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	v.SetPixel(0, 0, white)
	v.SetPixel(0, 3, white)
	if got := fb.pixel(2, 4); got != 0xffff {
		t.Fatalf("pixel(2,4) = %#x, want 0xffff", got)
	}
	if got := fb.pixel(2, 7); got != 0 {
		t.Fatalf("pixel(2,7) = %#x, want clipped", got)
	}

	red := color.RGBA{R: 255, A: 255}
	if err := v.FillRectangle(-5, 1, 100, 1, red); err != nil {
		t.Fatalf("FillRectangle() error = %v", err)
	}
	if got := fb.pixel(9, 5); got != hal.RGB565(255, 0, 0) {
		t.Fatalf("pixel(9,5) = %#x, want red", got)
	}
	if got := fb.pixel(1, 5); got != 0 {
		t.Fatalf("pixel(1,5) = %#x, want untouched", got)
	}
}
