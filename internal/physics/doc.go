// Package physics holds the triple-link chain behind the visualization.
//
// The update in [Chain.Step] is a stylized oscillator rather than a derived
// model: per-link damping, a slow sinusoidal forcing term, uniform noise and
// three loose coupling terms between neighbouring angles. Nothing is clamped,
// so velocities can drift upward over long runs.
//
//	c := physics.NewChain()
//	c.Step(now, dt, rng)
//	joints := c.Joints(origin)
//
// [Joints] is the forward kinematics, kept as a pure function so it can be
// used without a chain.
package physics
