// Package viz renders the rolling-circle animation in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: bubbletea program advancing one frame per tick
//   - [Scene]: static curve plus moving circle and markers; a sim.Renderer
//   - [Canvas]: Braille-based pixel canvas with per-cell colour classes
//   - [Recorder]: GIF capture of one pass
//
// # Key Bindings
//
//	Q, Esc, Ctrl+C - Quit
//
// # Recording
//
// With [Options.GIFPath] set, the first pass is recorded frame by frame and
// written when the repeat delay after it has elapsed.
package viz
