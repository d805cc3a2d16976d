// SPDX-License-Identifier: MIT
package display

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"time"

	"tinygo.org/x/drivers"
)

// DefaultSnapshotInterval limits how often Display rewrites the PNG.
const DefaultSnapshotInterval = 500 * time.Millisecond

// Framebuffer is an in-memory drivers.Displayer. On hosts it stands in for
// the TFT; when a snapshot path is set, Display writes the frame there as a
// PNG, at most once per SnapshotInterval.
type Framebuffer struct {
	mu               sync.Mutex
	img              *image.RGBA
	snapshot         string
	SnapshotInterval time.Duration
	lastSnapshot     time.Time
	presents         int
}

func NewFramebuffer(width, height int, snapshot string) *Framebuffer {
	return &Framebuffer{
		img:              image.NewRGBA(image.Rect(0, 0, width, height)),
		snapshot:         snapshot,
		SnapshotInterval: DefaultSnapshotInterval,
	}
}

func (f *Framebuffer) Size() (x, y int16) {
	b := f.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (f *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	f.mu.Lock()
	f.img.SetRGBA(int(x), int(y), c)
	f.mu.Unlock()
}

func (f *Framebuffer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	r := image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)).Intersect(f.img.Bounds())
	f.mu.Lock()
	defer f.mu.Unlock()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			f.img.SetRGBA(px, py, c)
		}
	}
	return nil
}

// Display counts the present and writes a snapshot if one is due.
func (f *Framebuffer) Display() error {
	f.mu.Lock()
	f.presents++
	due := f.snapshot != "" && time.Since(f.lastSnapshot) >= f.SnapshotInterval
	if due {
		f.lastSnapshot = time.Now()
	}
	f.mu.Unlock()

	if !due {
		return nil
	}
	return f.WritePNG(f.snapshot)
}

// WritePNG writes the current frame to path, replacing it atomically.
func (f *Framebuffer) WritePNG(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".panel-*.png")
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	f.mu.Lock()
	err = png.Encode(tmp, f.img)
	f.mu.Unlock()
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// At returns the color of one pixel.
func (f *Framebuffer) At(x, y int) color.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img.RGBAAt(x, y)
}

// Presents returns the number of Display calls so far.
func (f *Framebuffer) Presents() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

var _ drivers.Displayer = (*Framebuffer)(nil)
