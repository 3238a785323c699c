package physics

import (
	"math"
	"time"

	"github.com/san-kum/glowpend/internal/dynamo"
)

// Links is the number of segments in the chain.
const Links = 3

// Stylized oscillator constants. The update is not derived from equations of
// motion; these only shape how the chain looks when it moves.
const (
	baseDamping    = 0.998
	dampingPerLink = 0.001
	forcingGain    = 0.0008
	forcingPhase   = 1.3
	noiseSpan      = 0.0003
	tickRate       = 60.0

	// energyGain scales the cosmetic energy readout.
	energyGain = 2.2

	perturbAngleSpan    = 1.6
	perturbVelocitySpan = 0.6
	resetSpan           = 1.6
)

var (
	DefaultLengths = [Links]float64{90, 70, 50}
	DefaultAngles  = [Links]float64{math.Pi/2 - 0.6, math.Pi/2 + 0.4, math.Pi/2 - 0.3}
)

// Chain is the triple-link state: fixed segment lengths, plus angles and
// angular velocities that change every frame. Angles are measured from the
// downward vertical and are never normalized.
type Chain struct {
	Lengths  [Links]float64
	Angles   [Links]float64
	Velocity [Links]float64
}

func NewChain() *Chain {
	return &Chain{
		Lengths: DefaultLengths,
		Angles:  DefaultAngles,
	}
}

// NewChainWith builds a chain at rest with the given lengths and angles.
func NewChainWith(lengths, angles [Links]float64) *Chain {
	return &Chain{Lengths: lengths, Angles: angles}
}

// Step advances the chain by dt seconds. now feeds the slow forcing term,
// rng the per-link noise. Velocities are expressed per 60 Hz tick.
func (c *Chain) Step(now time.Duration, dt float64, rng dynamo.Rand) {
	t := now.Seconds()
	for i := 0; i < Links; i++ {
		c.Velocity[i] *= baseDamping - float64(i)*dampingPerLink
		c.Velocity[i] += math.Sin(t+float64(i)*forcingPhase)*forcingGain + dynamo.Jitter(rng, noiseSpan)
	}

	a := c.Angles
	c.Velocity[0] += (math.Sin(a[1]) - math.Sin(a[0])) * 0.0015
	c.Velocity[1] += (math.Sin(a[2]) - math.Sin(a[1])) * 0.0013
	c.Velocity[2] += (math.Cos(a[0]) - math.Cos(a[2])) * 0.0009

	for i := 0; i < Links; i++ {
		c.Angles[i] += c.Velocity[i] * dt * tickRate
	}
}

// Perturb kicks every angle by up to ±0.8 rad and every velocity by ±0.3.
func (c *Chain) Perturb(rng dynamo.Rand) {
	for i := 0; i < Links; i++ {
		c.Angles[i] += dynamo.Jitter(rng, perturbAngleSpan)
	}
	for i := 0; i < Links; i++ {
		c.Velocity[i] += dynamo.Jitter(rng, perturbVelocitySpan)
	}
}

// Reset throws the chain roughly horizontal with a random spread and stops it.
func (c *Chain) Reset(rng dynamo.Rand) {
	for i := 0; i < Links; i++ {
		c.Angles[i] = math.Pi/2 + dynamo.Jitter(rng, resetSpan)
	}
	c.Velocity = [Links]float64{}
}

// Energy is the cosmetic readout 2.2 * Σ|sin θ|. It is not conserved and
// carries no physical meaning.
func (c *Chain) Energy() float64 {
	sum := 0.0
	for _, a := range c.Angles {
		sum += math.Abs(math.Sin(a))
	}
	return sum * energyGain
}

// Joints returns pivot-relative joint positions anchored at origin.
func (c *Chain) Joints(origin dynamo.Point) [Links]dynamo.Point {
	return Joints(origin, c.Lengths, c.Angles)
}

// GetParams names the chain state for summaries.
func (c *Chain) GetParams() map[string]float64 {
	return map[string]float64{
		"theta1": c.Angles[0],
		"theta2": c.Angles[1],
		"theta3": c.Angles[2],
		"omega1": c.Velocity[0],
		"omega2": c.Velocity[1],
		"omega3": c.Velocity[2],
	}
}
