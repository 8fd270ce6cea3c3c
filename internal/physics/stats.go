package physics

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/partsim/internal/particle"
)

// Speed returns the magnitude of a particle's velocity.
func Speed(p particle.Particle) float32 {
	return math32.Hypot(p.VX, p.VY)
}

// MeanSpeed averages velocity magnitude over the whole set.
func MeanSpeed(set *particle.Set) float32 {
	if set.Len() == 0 {
		return 0
	}
	var sum float32
	for _, p := range set.Particles() {
		sum += Speed(p)
	}
	return sum / float32(set.Len())
}

// MaxSpeed returns the largest velocity magnitude in the set.
func MaxSpeed(set *particle.Set) float32 {
	var max float32
	for _, p := range set.Particles() {
		if v := Speed(p); v > max {
			max = v
		}
	}
	return max
}

// KineticEnergy sums 0.5*v^2 over the set, treating every particle as unit
// mass. Wall reflection only flips velocity signs, so between bounces this
// is conserved exactly.
func KineticEnergy(set *particle.Set) float32 {
	var sum float32
	for _, p := range set.Particles() {
		sum += 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	return sum
}

// Spread returns the standard deviation of particle positions around their
// centroid, a cheap dispersion figure for the live view.
func Spread(set *particle.Set) float32 {
	n := set.Len()
	if n == 0 {
		return 0
	}
	var cx, cy float32
	for _, p := range set.Particles() {
		cx += p.X
		cy += p.Y
	}
	cx /= float32(n)
	cy /= float32(n)

	var sum float32
	for _, p := range set.Particles() {
		dx, dy := p.X-cx, p.Y-cy
		sum += dx*dx + dy*dy
	}
	return math32.Sqrt(sum / float32(n))
}
