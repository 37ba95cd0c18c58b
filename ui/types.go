// Package ui provides the display surfaces and input sources the tank runs on:
// a tcell terminal here and a raylib window in ui/window.
package ui

import "github.com/pthm-cable/fishtank/renderer"

// Rect is an axis-aligned box in surface units (cells or pixels).
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Click is a pointer press on the rendered tank. Offset is measured from the
// left edge of the rendered area; Width is that area's width in the same units.
type Click struct {
	Offset float64
	Width  float64
}

// Command is a user request other than a click.
type Command uint8

const (
	CommandPause Command = iota + 1 // Toggle pause
	CommandFeed                     // Drop food at a random column
)

// Surface presents composed frames.
type Surface interface {
	Present(grid *renderer.Grid) error
	Bounds() Rect // Rendered area
	Close() error
}

// InputSource delivers user input to the run loop.
type InputSource interface {
	Clicks() <-chan Click
	Commands() <-chan Command
	Done() <-chan struct{} // Closed when the user quits
}
