// SPDX-License-Identifier: MIT
package display

import (
	"fmt"
	"image/color"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// The layout is specified on a 480x320 screen and scaled to the display.
const (
	refWidth  = 480
	refHeight = 320

	// Time points drawn between presents.
	presentEvery = 64
	gridColumns  = 10
)

type point struct {
	x, y  int16
	valid bool
}

// Panel renders the analyzer screen on a pixel display: a three-cell
// toolbar, the spectrum graph and the time graph below it.
type Panel struct {
	c          canvas
	toolbar    [NumStatusFields]rect
	freq       rect
	time       rect
	timePoints int
	freqPoints int
	sampleRate float64
	yMin       float64
	yMax       float64
	yInc       float64
	status     [NumStatusFields]string
	prevTime   point
	prevFreq   point
	pending    int
	failed     bool
}

// NewPanel draws the empty screen on d. timePoints and freqPoints are the
// number of samples per cycle and spectrum bins the graphs span.
func NewPanel(d drivers.Displayer, timePoints, freqPoints int, sampleRate float64) *Panel {
	w, h := d.Size()
	sx := func(v int) int16 { return int16(v * int(w) / refWidth) }
	sy := func(v int) int16 { return int16(v * int(h) / refHeight) }

	p := &Panel{
		c:          canvas{d: d, font: &tinyfont.TomThumb},
		freq:       rect{sx(40), sy(40), sx(420), sy(110)},
		time:       rect{sx(40), sy(180), sx(420), sy(110)},
		timePoints: max(timePoints, 2),
		freqPoints: max(freqPoints, 2),
		sampleRate: sampleRate,
		yMin:       -4,
		yMax:       4,
		yInc:       1,
	}
	for i := range p.toolbar {
		p.toolbar[i] = rect{sx(160 * i), 0, sx(160) - 1, sy(30)}
	}

	p.c.fill(rect{0, 0, w, h}, colorBG)
	for f := range p.toolbar {
		p.drawStatus(StatusField(f))
	}
	p.drawFreqFrame()
	p.drawTimeFrame()
	p.present()
	return p
}

func (p *Panel) ResetTimeView() {
	p.drawTimeFrame()
	p.present()
}

func (p *Panel) PlotTimePoint(index int, value float64) {
	x := p.time.x + int16(index*int(p.time.w-1)/(p.timePoints-1))
	y := p.scaleY(p.time, value, p.yMin, p.yMax)
	p.prevTime = p.trace(p.prevTime, x, y, colorTimeTrace)

	p.pending++
	if p.pending >= presentEvery || index == p.timePoints-1 {
		p.present()
	}
}

func (p *Panel) RescaleTimeAxis(yMin, yMax, yInc float64) {
	if yMax <= yMin || yInc <= 0 {
		return
	}
	p.yMin, p.yMax, p.yInc = yMin, yMax, yInc
	p.drawTimeFrame()
	p.present()
}

func (p *Panel) ResetFrequencyView() {
	p.drawFreqFrame()
}

func (p *Panel) PlotFrequencyPoint(index int, magnitude float64) {
	x := p.freq.x + int16(index*int(p.freq.w-1)/(p.freqPoints-1))
	y := p.scaleY(p.freq, magnitude, 0, 4)
	p.prevFreq = p.trace(p.prevFreq, x, y, colorFreqTrace)

	if index == p.freqPoints-1 {
		p.present()
	}
}

// SetStatusText redraws one toolbar cell. A rate of the form "N Hz" also
// relabels the time axes of both graphs.
func (p *Panel) SetStatusText(field StatusField, text string) {
	if field < 0 || field >= NumStatusFields {
		return
	}
	p.status[field] = text
	p.drawStatus(field)

	if field == Rate {
		var hz int
		if _, err := fmt.Sscanf(text, "%d Hz", &hz); err == nil && hz > 0 && float64(hz) != p.sampleRate {
			p.sampleRate = float64(hz)
			p.drawFreqLabels()
			p.drawTimeLabels()
		}
	}
	p.present()
}

func (p *Panel) trace(prev point, x, y int16, col color.RGBA) point {
	if prev.valid && prev.x <= x {
		p.c.line(prev.x, prev.y, x, y, col)
	} else {
		p.c.d.SetPixel(x, y, col)
	}
	return point{x: x, y: y, valid: true}
}

// scaleY maps v in [lo, hi] onto r, top is hi. Out-of-range values are
// pinned to the edge.
func (p *Panel) scaleY(r rect, v, lo, hi float64) int16 {
	if math.IsNaN(v) {
		v = lo
	}
	v = math.Max(lo, math.Min(v, hi))
	frac := (v - lo) / (hi - lo)
	return r.bottom() - int16(math.Round(frac*float64(r.h-1)))
}

func (p *Panel) drawStatus(f StatusField) {
	r := p.toolbar[f]
	p.c.fill(r, colorToolbarBG)
	p.c.centered(r, r.y+r.h/2+3, p.status[f], colorToolbarFG)
}

func (p *Panel) drawGraph(r rect, lo, hi, inc float64, zero bool) {
	p.c.fill(rect{r.x, r.y, r.w, r.h}, colorBG)

	for k := 1; k < gridColumns; k++ {
		x := r.x + int16(k*int(r.w)/gridColumns)
		p.c.vline(x, r.y, r.bottom(), colorGrid)
	}
	if inc > 0 {
		for v := lo + inc; v < hi; v += inc {
			p.c.hline(r.x, r.right(), p.scaleY(r, v, lo, hi), colorGrid)
		}
	}
	if zero && lo < 0 && hi > 0 {
		p.c.hline(r.x, r.right(), p.scaleY(r, 0, lo, hi), colorZero)
	}

	// Axes: two pixels wide, left and bottom.
	p.c.vline(r.x-1, r.y, r.bottom()+1, colorAxis)
	p.c.vline(r.x-2, r.y, r.bottom()+1, colorAxis)
	p.c.hline(r.x-1, r.right(), r.bottom()+1, colorAxis)
	p.c.hline(r.x-1, r.right(), r.bottom()+2, colorAxis)
}

func (p *Panel) drawFreqFrame() {
	p.drawGraph(p.freq, 0, 4, 1, false)
	p.prevFreq = point{}

	label := rect{0, p.freq.y - 4, p.freq.x - 3, p.freq.h + 8}
	p.c.fill(label, colorBG)
	p.c.centered(label, p.freq.y+6, "4", colorLabel)
	p.c.centered(label, p.freq.y+p.freq.h/2+3, "2", colorLabel)
	p.c.centered(label, p.freq.bottom()+3, "0", colorLabel)
	p.drawFreqLabels()
}

func (p *Panel) drawTimeFrame() {
	p.drawGraph(p.time, p.yMin, p.yMax, p.yInc, true)
	p.prevTime = point{}

	label := rect{0, p.time.y - 4, p.time.x - 3, p.time.h + 8}
	p.c.fill(label, colorBG)
	p.c.centered(label, p.time.y+6, fmt.Sprintf("%.1f", p.yMax), colorLabel)
	if p.yMin < 0 && p.yMax > 0 {
		p.c.centered(label, p.scaleY(p.time, 0, p.yMin, p.yMax)+3, "0.0", colorLabel)
	}
	p.c.centered(label, p.time.bottom()+3, fmt.Sprintf("%.1f", p.yMin), colorLabel)
	p.drawTimeLabels()
}

// drawFreqLabels labels the spectrum from 0 Hz to Nyquist.
func (p *Panel) drawFreqLabels() {
	p.drawXLabels(p.freq, p.sampleRate/2, "%.0f")
}

func (p *Panel) drawXLabels(r rect, span float64, format string) {
	strip := rect{0, r.bottom() + 3, int16(r.right() + r.w/gridColumns), 12}
	p.c.fill(strip, colorBG)
	step := int(r.w) / gridColumns
	for k := 0; k <= gridColumns; k++ {
		s := fmt.Sprintf(format, span*float64(k)/gridColumns)
		cell := rect{r.x + int16(k*step-step/2), strip.y, int16(step), strip.h}
		p.c.centered(cell, strip.y+9, s, colorLabel)
	}
}

// drawTimeLabels labels the time graph in seconds across one cycle.
func (p *Panel) drawTimeLabels() {
	if p.sampleRate <= 0 {
		return
	}
	p.drawXLabels(p.time, float64(p.timePoints)/p.sampleRate, "%.1f")
}

func (p *Panel) present() {
	p.pending = 0
	if err := p.c.d.Display(); err != nil && !p.failed {
		p.failed = true
		logger.Warnf("panel present failed: %v", err)
	}
}

var _ Sink = (*Panel)(nil)
