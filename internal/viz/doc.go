// Package viz renders navigation runs for the terminal and for files.
//
// Everything here reads a [navigation.Trajectory] and never mutates it:
//
//   - [DistancePlot]: home distance per step with the arrival threshold
//   - [PathCanvas]: Braille rendering of the path with the nest marked
//   - [TrajectorySVG]: SVG path with home-vector arrows and the sun direction
//   - [Playback]: Bubble Tea model replaying a run frame by frame
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Rewind to the first frame
//	[ ]   - Step one frame back/forward
//	Q     - Quit
package viz
