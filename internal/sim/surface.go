package sim

import "time"

// KeyEscape is the key code that cancels the frame loop.
const KeyEscape = 27

// Color is an 8-bit RGB triple handed to the display surface.
type Color struct {
	R, G, B uint8
}

var (
	ColorRed    = Color{R: 255}
	ColorYellow = Color{R: 255, G: 255}
	ColorGreen  = Color{G: 255}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
)

// Surface is the display and input collaborator the frame loop draws on.
// The loop consumes it and never implements it; terminal and test doubles
// live elsewhere.
//
// PollKey is the loop's only synchronization point: it blocks for up to
// timeout waiting for a key press and reports (code, true) when one
// arrived. While it waits, the whole loop waits with it.
type Surface interface {
	// Reset produces or clears the frame canvas, once per frame.
	Reset(width, height int)
	// DrawCircle plots one particle marker at a domain position.
	DrawCircle(x, y float32, radius int, c Color, filled bool)
	// DrawText overlays a line of text at a canvas position.
	DrawText(x, y int, text string, scale float64, c Color, thickness int)
	// Present displays the finished frame.
	Present()
	// PollKey waits up to timeout for a key press.
	PollKey(timeout time.Duration) (int, bool)
}
