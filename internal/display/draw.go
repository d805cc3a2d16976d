// SPDX-License-Identifier: MIT
package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	colorBG        = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorAxis      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorGrid      = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	colorZero      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorTimeTrace = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	colorFreqTrace = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	colorToolbarBG = color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	colorToolbarFG = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	colorLabel     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type rect struct {
	x, y, w, h int16
}

func (r rect) right() int16  { return r.x + r.w - 1 }
func (r rect) bottom() int16 { return r.y + r.h - 1 }

// filler is implemented by displays that can fill rectangles faster than
// pixel by pixel, such as the ILI9341 driver.
type filler interface {
	FillRectangle(x, y, width, height int16, c color.RGBA) error
}

type canvas struct {
	d    drivers.Displayer
	font tinyfont.Fonter
}

func (c canvas) fill(r rect, col color.RGBA) {
	if r.w <= 0 || r.h <= 0 {
		return
	}
	if f, ok := c.d.(filler); ok {
		if f.FillRectangle(r.x, r.y, r.w, r.h, col) == nil {
			return
		}
	}
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			c.d.SetPixel(x, y, col)
		}
	}
}

func (c canvas) hline(x0, x1, y int16, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		c.d.SetPixel(x, y, col)
	}
}

func (c canvas) vline(x, y0, y1 int16, col color.RGBA) {
	for y := y0; y <= y1; y++ {
		c.d.SetPixel(x, y, col)
	}
}

// line draws with Bresenham's algorithm.
func (c canvas) line(x0, y0, x1, y1 int16, col color.RGBA) {
	dx := abs16(x1 - x0)
	dy := -abs16(y1 - y0)
	sx, sy := int16(1), int16(1)
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.d.SetPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// text writes s with its baseline at y.
func (c canvas) text(x, y int16, s string, col color.RGBA) {
	tinyfont.WriteLine(c.d, c.font, x, y, s, col)
}

func (c canvas) textWidth(s string) int16 {
	_, w := tinyfont.LineWidth(c.font, s)
	return int16(w)
}

// centered writes s centered horizontally in r with its baseline at y.
func (c canvas) centered(r rect, y int16, s string, col color.RGBA) {
	c.text(r.x+(r.w-c.textWidth(s))/2, y, s, col)
}

func abs16(v int16) int16 {
	if v < 0 {
		return -v
	}
	return v
}
