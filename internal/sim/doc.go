// Package sim owns the animation loop.
//
// A [Loop] holds all mutable state: the chain, the trail, the pause flag,
// the trail cap and the view size. Hosts call [Loop.Tick] once per display
// refresh with a monotonic timestamp and call [Loop.Perturb] from an
// independent timer; an [Interval] provides that timer for hosts that only
// have a frame callback. UI handlers map onto [Loop.TogglePause],
// [Loop.Reset], [Loop.SetTrailSlider] and [Loop.Resize].
//
// # Thread Safety
//
// Loop is NOT safe for concurrent use. Every backend dispatches ticks,
// timer firings and input on one goroutine, which is all the loop needs.
package sim
