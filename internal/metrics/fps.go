package metrics

import (
	"math"
	"time"
)

// FPSWindow is the minimum span between two frame-rate samples.
const FPSWindow = 500 * time.Millisecond

// FPS counts frames and publishes a rounded rate whenever more than
// FPSWindow has passed since the previous sample.
type FPS struct {
	frames int
	last   time.Duration
	fps    int
}

func NewFPS(start time.Duration) *FPS {
	return &FPS{last: start}
}

func (f *FPS) Name() string { return "fps" }

// Observe records one frame at now. It reports true when a new sample was
// taken, in which case Value holds the fresh rate.
func (f *FPS) Observe(now time.Duration) bool {
	f.frames++
	elapsed := now - f.last
	if elapsed <= FPSWindow {
		return false
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	f.fps = int(math.Round(float64(f.frames) * 1000 / ms))
	f.frames = 0
	f.last = now
	return true
}

func (f *FPS) Rate() int { return f.fps }

func (f *FPS) Value() float64 { return float64(f.fps) }

// Frames is the count accumulated since the last sample.
func (f *FPS) Frames() int { return f.frames }

// Restart clears the counters and sets a new sampling origin.
func (f *FPS) Restart(now time.Duration) {
	f.frames = 0
	f.last = now
}

func (f *FPS) Reset() {
	f.frames = 0
	f.last = 0
	f.fps = 0
}
