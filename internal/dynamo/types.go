package dynamo

import "math"

// Point is a position on the drawing surface, in pixels. Y grows downward.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rand is a source of uniform values in [0, 1). *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Jitter draws from [-span/2, span/2), matching (r - 0.5) * span.
func Jitter(r Rand, span float64) float64 {
	return (r.Float64() - 0.5) * span
}

// FixedRand returns the same value forever. Useful in tests where the noise
// term must be predictable.
type FixedRand float64

func (f FixedRand) Float64() float64 { return float64(f) }

// SeqRand cycles through a fixed list of values.
type SeqRand struct {
	Values []float64
	pos    int
}

func (s *SeqRand) Float64() float64 {
	if len(s.Values) == 0 {
		return 0.5
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	return v
}
