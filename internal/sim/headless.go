package sim

import (
	"context"
	"time"

	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
)

// Result holds the outcome of a headless run.
type Result struct {
	Steps   int
	Samples []time.Duration
	Latency metrics.Snapshot
}

// RunSteps advances the set a fixed number of steps without a display,
// timing each one. It is the measurement path behind the run and bench
// commands: same step and accounting as the interactive loop, minus
// rendering and input.
func RunSteps(ctx context.Context, set *particle.Set, stepper *physics.Stepper, dt float32, steps int) (*Result, error) {
	lat := metrics.NewLatency()
	samples := make([]time.Duration, 0, steps)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		start := time.Now()
		stepper.Step(set, dt)
		d := time.Since(start)

		lat.Record(d)
		samples = append(samples, d)
	}

	return &Result{
		Steps:   steps,
		Samples: samples,
		Latency: lat.Snapshot(),
	}, nil
}
