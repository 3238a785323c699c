// Package dynamo provides the small shared primitives used across the
// visualization:
//
//   - [Point]: a 2D position in surface pixels
//   - [Rand]: an injectable uniform random source
//   - [SineTable]: precomputed sine lookup for per-point color waves
//
// # Thread Safety
//
// Nothing here is synchronized. The animation runs on a single logical
// thread and every consumer is expected to stay on it.
package dynamo
