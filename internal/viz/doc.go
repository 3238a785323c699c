// Package viz renders the animation in a terminal.
//
// The scene is painted onto a braille [Canvas] through [BrailleSurface],
// and a Bubble Tea [Model] drives the loop: a 60 Hz tick for frames and an
// independent 15 s tick for perturbations. The side panel shows the FPS and
// energy readouts, the trail slider and an asciigraph energy chart.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset the chain
//	[ ]   - Shorter/longer trail
//	T     - Cycle color themes
//	?     - Toggle help
//	Q     - Quit
package viz
