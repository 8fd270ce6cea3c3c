package particle

import (
	"math/rand"
	"testing"
)

func TestNewSetLen(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSet(5000, 500, 5, rng)
	if s.Len() != 5000 {
		t.Errorf("expected 5000 particles, got %d", s.Len())
	}
}

func TestNewSetPositionBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewSet(2000, 500, 5, rng)

	for i, p := range s.Particles() {
		if p.X < 0 || p.X >= 500 {
			t.Fatalf("particle %d: x=%v outside [0,500)", i, p.X)
		}
		if p.Y < 0 || p.Y >= 500 {
			t.Fatalf("particle %d: y=%v outside [0,500)", i, p.Y)
		}
	}
}

func TestNewSetVelocityLattice(t *testing.T) {
	allowed := map[float32]bool{}
	for r := 0; r < 10; r++ {
		allowed[float32(r-5)*5.0] = true
	}
	// ten values from -25 up to +20; +25 is not reachable
	if allowed[25] {
		t.Fatal("lattice should not contain +25")
	}

	rng := rand.New(rand.NewSource(7))
	s := NewSet(2000, 500, 5, rng)

	for i, p := range s.Particles() {
		if !allowed[p.VX] {
			t.Fatalf("particle %d: vx=%v not on lattice", i, p.VX)
		}
		if !allowed[p.VY] {
			t.Fatalf("particle %d: vy=%v not on lattice", i, p.VY)
		}
	}
}

func TestNewSetDeterministic(t *testing.T) {
	a := NewSet(100, 500, 5, rand.New(rand.NewSource(99)))
	b := NewSet(100, 500, 5, rand.New(rand.NewSource(99)))

	for i := 0; i < a.Len(); i++ {
		if *a.At(i) != *b.At(i) {
			t.Fatalf("particle %d differs across identically seeded sets", i)
		}
	}
}

func TestAtAliasesStorage(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := NewSet(10, 500, 5, rng)

	s.At(4).X = 123
	if s.Particles()[4].X != 123 {
		t.Error("At must alias the backing storage")
	}
}
