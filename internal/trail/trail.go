// Package trail keeps the recent end-effector history, newest first.
package trail

import (
	"time"

	"github.com/san-kum/glowpend/internal/dynamo"
)

// FadeWindow is how long a point takes to fade out completely.
const FadeWindow = 4 * time.Second

// Point is one recorded end-effector position and when it was recorded.
type Point struct {
	Pos dynamo.Point
	T   time.Duration
}

// Alpha fades linearly from 1 at creation to 0 after FadeWindow. Fading is
// visual only; points are removed by count, never by age.
func (p Point) Alpha(now time.Duration) float64 {
	a := 1 - float64(now-p.T)/float64(FadeWindow)
	if a < 0 {
		return 0
	}
	return a
}

// Buffer is an ordered point history. Index 0 is always the newest point.
// Internally the slice is stored oldest first so prepending stays cheap.
type Buffer struct {
	pts []Point
}

func New(capacity int) *Buffer {
	return &Buffer{pts: make([]Point, 0, capacity)}
}

func (b *Buffer) Len() int { return len(b.pts) }

// Push records p as the newest point.
func (b *Buffer) Push(p Point) {
	b.pts = append(b.pts, p)
}

// At returns the i-th newest point.
func (b *Buffer) At(i int) Point {
	return b.pts[len(b.pts)-1-i]
}

// Newest returns the most recent point, if any.
func (b *Buffer) Newest() (Point, bool) {
	if len(b.pts) == 0 {
		return Point{}, false
	}
	return b.pts[len(b.pts)-1], true
}

// Truncate drops the oldest points until at most max remain.
func (b *Buffer) Truncate(max int) {
	if max < 0 {
		max = 0
	}
	if len(b.pts) <= max {
		return
	}
	drop := len(b.pts) - max
	n := copy(b.pts, b.pts[drop:])
	b.pts = b.pts[:n]
}

// KeepFraction keeps the newest floor(len*frac) points.
func (b *Buffer) KeepFraction(frac float64) {
	b.Truncate(int(float64(len(b.pts)) * frac))
}

func (b *Buffer) Clear() {
	b.pts = b.pts[:0]
}

// Each visits points newest first. Returning false stops the walk.
func (b *Buffer) Each(fn func(i int, p Point) bool) {
	for i := 0; i < len(b.pts); i++ {
		if !fn(i, b.pts[len(b.pts)-1-i]) {
			return
		}
	}
}

// Snapshot copies the points, newest first.
func (b *Buffer) Snapshot() []Point {
	out := make([]Point, len(b.pts))
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}
