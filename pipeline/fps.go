package pipeline

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// FPSMeter derives frames per second from inter-frame timing.  Tick is
// called once at the top of each frame cycle, FPS reports the
// instantaneous rate and Average a windowed mean that is steadier on the
// overlay.
type FPSMeter struct {
	last time.Time
	// window is a ring of the most recent frame intervals in seconds
	window []float64
	next   int
	filled bool
}

// NewFPSMeter returns a meter averaging over the given number of frames
func NewFPSMeter(windowSize int) *FPSMeter {

	if windowSize < 1 {
		windowSize = 1
	}

	return &FPSMeter{
		window: make([]float64, windowSize),
	}
}

// Tick records a frame boundary
func (m *FPSMeter) Tick() {

	now := time.Now()

	if !m.last.IsZero() {
		m.window[m.next] = now.Sub(m.last).Seconds()
		m.next++

		if m.next == len(m.window) {
			m.next = 0
			m.filled = true
		}
	}

	m.last = now
}

// FPS returns the instantaneous frames per second from the most recent
// interval, or zero before two frames have been seen
func (m *FPSMeter) FPS() float64 {

	idx := m.next - 1

	if idx < 0 {
		if !m.filled {
			return 0
		}
		idx = len(m.window) - 1
	}

	interval := m.window[idx]

	if interval <= 0 {
		return 0
	}

	return 1 / interval
}

// Average returns the mean frames per second over the window, or zero
// before two frames have been seen
func (m *FPSMeter) Average() float64 {

	intervals := m.window[:m.next]

	if m.filled {
		intervals = m.window
	}

	if len(intervals) == 0 {
		return 0
	}

	mean := stat.Mean(intervals, nil)

	if mean <= 0 {
		return 0
	}

	return 1 / mean
}
