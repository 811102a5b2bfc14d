// Package fbview carves rectangular panes out of a framebuffer so each pane
// can be drawn as its own drivers.Displayer.
package fbview

import (
	"image/color"

	"ember/hal"

	"tinygo.org/x/drivers"
)

// View is a window of w x h pixels at (x0, y0) of an RGB565 framebuffer.
// Pixels outside the window are clipped.
type View struct {
	fb     hal.Framebuffer
	x0, y0 int
	w, h   int
}

var _ drivers.Displayer = (*View)(nil)

// New returns the view of fb at (x, y) sized w x h, clipped to fb.
func New(fb hal.Framebuffer, x, y, w, h int) *View {
	v := &View{fb: fb, x0: x, y0: y, w: w, h: h}
	if fb == nil {
		v.w, v.h = 0, 0
		return v
	}
	v.w = clampInt(w, 0, fb.Width()-x)
	v.h = clampInt(h, 0, fb.Height()-y)
	return v
}

func (v *View) Size() (x, y int16) {
	return int16(v.w), int16(v.h)
}

func (v *View) SetPixel(x, y int16, c color.RGBA) {
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= v.w || iy < 0 || iy >= v.h {
		return
	}
	v.put(v.x0+ix, v.y0+iy, hal.RGB565(c.R, c.G, c.B))
}

func (v *View) Display() error {
	if v.fb == nil {
		return nil
	}
	return v.fb.Present()
}

// FillRectangle fills a rectangle given in view coordinates.
func (v *View) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	x0 := clampInt(int(x), 0, v.w)
	y0 := clampInt(int(y), 0, v.h)
	x1 := clampInt(int(x)+int(width), 0, v.w)
	y1 := clampInt(int(y)+int(height), 0, v.h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := hal.RGB565(c.R, c.G, c.B)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			v.put(v.x0+px, v.y0+py, pixel)
		}
	}
	return nil
}

func (v *View) put(x, y int, pixel uint16) {
	if v.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := v.fb.Buffer()
	off := y*v.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
