// Package term implements the simulation display surface on a terminal.
// Particles become braille sub-pixels, text overlays become styled cell
// runes, and the bounded key poll is backed by a tcell event pump.
package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/viz"
)

type textOverlay struct {
	x, y  int
	text  string
	color sim.Color
}

// Surface adapts a tcell screen to sim.Surface. The frame loop addresses a
// logical pixel space (the simulation domain); the surface scales it to
// whatever cell grid the terminal currently offers.
//
// Input events are drained by a pump goroutine into a channel so PollKey
// can wait with a bounded timeout. The pump only feeds the poll; all
// drawing and polling still happens on the loop's goroutine.
type Surface struct {
	screen tcell.Screen
	events chan tcell.Event

	canvas   *viz.Canvas
	colors   [][]sim.Color
	overlays []textOverlay

	logicalW, logicalH int
}

// New initializes the terminal screen and starts the event pump.
func New() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	s := &Surface{
		screen: screen,
		events: make(chan tcell.Event, 100),
	}
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			s.events <- ev
		}
	}()
	return s, nil
}

// Close restores the terminal. The event pump exits once the finalized
// screen returns a nil event.
func (s *Surface) Close() {
	s.screen.Fini()
}

// Reset clears the frame and fixes the logical pixel space for subsequent
// draw calls. The canvas is reallocated only when the terminal was resized.
func (s *Surface) Reset(width, height int) {
	s.logicalW, s.logicalH = width, height

	cols, rows := s.screen.Size()
	if s.canvas == nil || s.canvas.Width != cols || s.canvas.Height != rows {
		s.canvas = viz.NewCanvas(cols, rows)
		s.colors = make([][]sim.Color, rows)
		for i := range s.colors {
			s.colors[i] = make([]sim.Color, cols)
		}
	} else {
		s.canvas.Clear()
		for i := range s.colors {
			for j := range s.colors[i] {
				s.colors[i][j] = sim.Color{}
			}
		}
	}
	s.overlays = s.overlays[:0]
}

// project maps a logical pixel position onto the canvas sub-pixel grid.
func (s *Surface) project(x, y float32) (int, int) {
	pw, ph := s.canvas.PixelSize()
	px := int(x * float32(pw-1) / float32(s.logicalW))
	py := int(y * float32(ph-1) / float32(s.logicalH))
	return px, py
}

// DrawCircle stamps one particle marker. Markers outside the logical space
// are projected anyway and clipped by the canvas, which is exactly what an
// overshooting particle should do: vanish off the edge for a frame.
func (s *Surface) DrawCircle(x, y float32, radius int, c sim.Color, filled bool) {
	px, py := s.project(x, y)
	s.canvas.DrawCircle(px, py, radius, filled)

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			s.stampColor(px+dx, py+dy, c)
		}
	}
}

func (s *Surface) stampColor(px, py int, c sim.Color) {
	if px < 0 || py < 0 {
		return
	}
	col, row := px/2, py/4
	if row >= len(s.colors) || col >= len(s.colors[row]) {
		return
	}
	s.colors[row][col] = c
}

// DrawText queues a text overlay at a logical canvas position; overlays are
// painted over the pixel layer at present time.
func (s *Surface) DrawText(x, y int, text string, scale float64, c sim.Color, thickness int) {
	s.overlays = append(s.overlays, textOverlay{x: x, y: y, text: text, color: c})
}

// Present flushes the frame: pixel cells first, text overlays on top.
func (s *Surface) Present() {
	for row, line := range s.canvas.Grid {
		for col, ch := range line {
			style := tcell.StyleDefault
			if c := s.colors[row][col]; c != (sim.Color{}) {
				style = style.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			}
			s.screen.SetContent(col, row, ch, nil, style)
		}
	}

	cols, rows := s.screen.Size()
	for _, o := range s.overlays {
		col := o.x * cols / s.logicalW
		row := o.y * rows / s.logicalH
		style := tcell.StyleDefault.
			Foreground(tcell.NewRGBColor(int32(o.color.R), int32(o.color.G), int32(o.color.B))).
			Bold(true)
		for i, r := range o.text {
			if col+i >= cols {
				break
			}
			s.screen.SetContent(col+i, row, r, nil, style)
		}
	}

	s.screen.Show()
}

// PollKey waits up to timeout for a key press and reports its code, with
// escape normalized to sim.KeyEscape. Non-key events (resize, paste) are
// swallowed without consuming the whole budget.
func (s *Surface) PollKey(timeout time.Duration) (int, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev := <-s.events:
			key, ok := keyCode(ev)
			if !ok {
				continue
			}
			return key, true
		case <-timer.C:
			return 0, false
		}
	}
}

func keyCode(ev tcell.Event) (int, bool) {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return 0, false
	}
	switch keyEv.Key() {
	case tcell.KeyEscape:
		return sim.KeyEscape, true
	case tcell.KeyRune:
		return int(keyEv.Rune()), true
	default:
		return int(keyEv.Key()), true
	}
}
