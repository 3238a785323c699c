package physics

import (
	"math"

	"github.com/san-kum/glowpend/internal/dynamo"
)

// Joints walks the chain from origin. Each joint sits at the previous one plus
// (sin θ, cos θ) scaled by the link length, so θ = 0 hangs straight down on a
// y-down surface.
func Joints(origin dynamo.Point, lengths, angles [Links]float64) [Links]dynamo.Point {
	var out [Links]dynamo.Point
	prev := origin
	for i := 0; i < Links; i++ {
		s, c := math.Sincos(angles[i])
		prev = dynamo.Point{X: prev.X + s*lengths[i], Y: prev.Y + c*lengths[i]}
		out[i] = prev
	}
	return out
}

// Reach is the distance from the pivot to the end of a fully extended chain.
func Reach(lengths [Links]float64) float64 {
	total := 0.0
	for _, l := range lengths {
		total += l
	}
	return total
}
