package cave

import (
	"math"
	"testing"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/rng"
)

func TestSeeder_Uniform(t *testing.T) {
	cfg := DefaultSeederConfig()
	cfg.WallRatio = 0.45
	s := NewSeeder(cfg)

	g, err := s.Seed(60, 40, rng.NewRNG("seed-test", "master", nil))
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if g.Width() != 60 || g.Height() != 40 {
		t.Fatalf("dimensions = %dx%d, want 60x40", g.Width(), g.Height())
	}

	// Border must be closed.
	for x := 0; x < g.Width(); x++ {
		if g.At(x, 0) != grid.Wall || g.At(x, g.Height()-1) != grid.Wall {
			t.Fatal("border not closed")
		}
	}

	// Wall ratio should land near the configured probability.
	ratio := float64(g.WallCount()) / float64(g.Width()*g.Height())
	if math.Abs(ratio-0.45) > 0.10 {
		t.Errorf("wall ratio = %.3f, want within 0.10 of 0.45", ratio)
	}

	if len(s.MainPoints()) != 0 {
		t.Error("uniform strategy should place no main points")
	}
}

func TestSeeder_Graph(t *testing.T) {
	cfg := DefaultSeederConfig()
	cfg.Strategy = SeedGraph
	cfg.MainPoints = 4
	s := NewSeeder(cfg)

	g, err := s.Seed(60, 40, rng.NewRNG("seed-test", "master", nil))
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}

	points := s.MainPoints()
	if len(points) != 4 {
		t.Fatalf("main points = %d, want 4", len(points))
	}
	for i, p := range points {
		if !g.InBounds(p.X, p.Y) {
			t.Errorf("main point %d out of bounds: %+v", i, p)
		}
		if g.AtPos(p) != grid.Floor {
			t.Errorf("main point %d at %+v is not floor", i, p)
		}
	}
}

func TestSeeder_Deterministic(t *testing.T) {
	for _, strategy := range []SeedStrategy{SeedUniform, SeedGraph} {
		cfg := DefaultSeederConfig()
		cfg.Strategy = strategy
		build := func() *grid.Grid {
			g, err := NewSeeder(cfg).Seed(50, 30, rng.NewRNG("det-test", "master", nil))
			if err != nil {
				t.Fatalf("Seed: %v", err)
			}
			return g
		}
		if !build().Equal(build()) {
			t.Errorf("strategy %q produced different grids for identical seeds", strategy)
		}
	}
}

func TestSeeder_TooSmall(t *testing.T) {
	if _, err := NewSeeder(DefaultSeederConfig()).Seed(2, 2, rng.NewRNG("x", "master", nil)); err == nil {
		t.Error("expected an error for a 2x2 grid")
	}
}
