// Package physics advances particle populations through time.
package physics

import "github.com/san-kum/partsim/internal/particle"

// Stepper integrates a particle set with explicit Euler steps and reflects
// velocities off the walls of the square domain [0, Boundary) x [0, Boundary).
type Stepper struct {
	Boundary float32
}

// NewStepper returns a Stepper for a square domain of the given side length.
func NewStepper(boundary float32) *Stepper {
	return &Stepper{Boundary: boundary}
}

// Step advances every particle by dt seconds, visiting each slot exactly
// once in index order. The wall test runs on the already-advanced position:
// a particle that crosses a wall keeps its out-of-domain position for this
// tick and only has the velocity component flipped for the next one. It is
// never clamped back inside. The iteration range comes from the set itself,
// so there is no count to drift out of sync with the storage.
func (st *Stepper) Step(set *particle.Set, dt float32) {
	for i := 0; i < set.Len(); i++ {
		p := set.At(i)
		p.X += p.VX * dt
		p.Y += p.VY * dt

		if p.X < 0 || p.X > st.Boundary {
			p.VX = -p.VX
		}
		if p.Y < 0 || p.Y > st.Boundary {
			p.VY = -p.VY
		}
	}
}
