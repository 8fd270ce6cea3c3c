// Package particle owns the simulated particle population.
//
// A Set is a fixed-length, exclusively-owned collection: it is sized once at
// construction and never grows or shrinks. The backing slice length is the
// only population count in the system; every consumer derives its iteration
// range from Set.Len rather than carrying a separate count.
package particle

import "math/rand"

// Particle is a point mass with position and velocity, all single precision.
// Particles have no identity beyond their slot index.
type Particle struct {
	X, Y   float32
	VX, VY float32
}

// Set is an ordered, fixed-length particle population.
type Set struct {
	particles []Particle
}

// NewSet builds a population of n particles with randomized initial state
// drawn from rng. Positions are uniform integers in [0, boundary), treated
// as floats. Velocity components are (r-5)*scale for a uniform integer
// r in [0, 9], so each component lands on one of the ten lattice values
// {-5*scale .. +4*scale}. The lattice is asymmetric: -5*scale is reachable,
// +5*scale is not. That is a property of the generator and callers depend
// on it staying exact.
func NewSet(n int, boundary, scale float32, rng *rand.Rand) *Set {
	side := int(boundary)
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = Particle{
			X:  float32(rng.Intn(side)),
			Y:  float32(rng.Intn(side)),
			VX: float32(rng.Intn(10)-5) * scale,
			VY: float32(rng.Intn(10)-5) * scale,
		}
	}
	return &Set{particles: particles}
}

// Len reports the population size. It is constant for the life of the Set.
func (s *Set) Len() int { return len(s.particles) }

// At returns a pointer to the particle in slot i for in-place mutation.
func (s *Set) At(i int) *Particle { return &s.particles[i] }

// Particles exposes the backing slice for iteration. The slice must not be
// resized or retained past the Set's lifetime.
func (s *Set) Particles() []Particle { return s.particles }
