// Package sim orchestrates the per-frame cycle: physics step, latency
// accounting, rendering, and input polling.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

// State is the frame loop's lifecycle state.
type State int

const (
	Running State = iota
	Stopped // terminal
)

// Options fixes the loop's startup constants. The simulation timestep is a
// constant, not derived from wall-clock elapsed time, so simulated speed is
// decoupled from the real frame rate. The frame rate itself is capped by
// PollTimeout: the bounded input wait blocks the whole loop for its full
// duration, so physics cadence is coupled to the poll budget. Known
// limitation, kept on purpose.
type Options struct {
	Dt          float32
	CanvasSize  int
	Radius      int
	PollTimeout time.Duration
}

// DefaultOptions mirrors the classic run: dt 0.1, 500x500 canvas, 2px
// markers, 16ms poll budget.
func DefaultOptions() Options {
	return Options{
		Dt:          0.1,
		CanvasSize:  500,
		Radius:      2,
		PollTimeout: 16 * time.Millisecond,
	}
}

func (o Options) validate() error {
	if o.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", o.Dt)
	}
	if o.CanvasSize <= 0 {
		return fmt.Errorf("canvas size must be positive, got %d", o.CanvasSize)
	}
	if o.PollTimeout <= 0 {
		return fmt.Errorf("poll timeout must be positive, got %v", o.PollTimeout)
	}
	return nil
}

// Loop drives one particle set through step/render/poll iterations until
// the surface reports the escape key or the context is canceled. All state
// it touches is exclusively owned and accessed from the calling goroutine.
type Loop struct {
	set     *particle.Set
	stepper *physics.Stepper
	lat     *metrics.Latency
	surface Surface
	opts    Options
	state   State
}

// NewLoop wires a loop from its collaborators. The latency accumulator is
// created here and lives exactly as long as the loop.
func NewLoop(set *particle.Set, stepper *physics.Stepper, surface Surface, opts Options) (*Loop, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Loop{
		set:     set,
		stepper: stepper,
		lat:     metrics.NewLatency(),
		surface: surface,
		opts:    opts,
		state:   Running,
	}, nil
}

// State reports whether the loop is still Running.
func (l *Loop) State() State { return l.state }

// Latency exposes the accumulated step statistics.
func (l *Loop) Latency() metrics.Snapshot { return l.lat.Snapshot() }

// Run iterates until stopped. Each iteration times one physics step, feeds
// the duration to the accumulator, renders the population with the metrics
// overlay, presents the frame, and polls for input with a bounded wait.
// A poll result of KeyEscape transitions to Stopped; no further step runs
// after that. Context cancellation stops the loop with ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	for l.state == Running {
		select {
		case <-ctx.Done():
			l.state = Stopped
			return ctx.Err()
		default:
		}

		start := time.Now()
		l.stepper.Step(l.set, l.opts.Dt)
		l.lat.Record(time.Since(start))

		l.renderFrame()
		l.surface.Present()

		if key, ok := l.surface.PollKey(l.opts.PollTimeout); ok && key == KeyEscape {
			l.state = Stopped
		}
	}
	return nil
}

// renderFrame draws every particle and the latency overlay. Particles in
// the first half of the set are red, the rest yellow, deterministically by
// slot index.
func (l *Loop) renderFrame() {
	size := l.opts.CanvasSize
	l.surface.Reset(size, size)

	half := l.set.Len() / 2
	for i := 0; i < l.set.Len(); i++ {
		p := l.set.At(i)
		c := ColorYellow
		if i < half {
			c = ColorRed
		}
		l.surface.DrawCircle(p.X, p.Y, l.opts.Radius, c, true)
	}

	snap := l.lat.Snapshot()
	instant := fmt.Sprintf("Instant: %d us", snap.Last.Microseconds())
	average := fmt.Sprintf("Average: %d us", snap.Average.Microseconds())
	l.surface.DrawText(10, 30, instant, 0.7, ColorGreen, 2)
	l.surface.DrawText(10, 60, average, 0.7, ColorWhite, 2)
}
