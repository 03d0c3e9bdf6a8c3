package cave

import (
	"fmt"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/rng"
)

// SeedStrategy selects how the initial wall noise is laid down.
type SeedStrategy string

const (
	// SeedUniform sets each tile to wall independently at the configured ratio.
	SeedUniform SeedStrategy = "uniform"

	// SeedGraph lays uniform noise, then anchors a sparse graph of "main
	// points" connected by short carved corridors. The anchors survive the
	// rest of the pipeline as spawn-forbidden zones and platform seeds.
	SeedGraph SeedStrategy = "graph"
)

// SeederConfig holds the parameters for initial grid seeding.
type SeederConfig struct {
	// Strategy selects uniform or graph-based seeding.
	Strategy SeedStrategy `yaml:"strategy"`

	// WallRatio is the probability that a tile starts as wall (0.40-0.55).
	WallRatio float64 `yaml:"wallRatio"`

	// MainPoints is the number of graph anchors for the graph strategy.
	MainPoints int `yaml:"mainPoints"`

	// BranchRatio is the probability that an anchor grows a side branch.
	BranchRatio float64 `yaml:"branchRatio"`

	// ConnectionRatio is the probability that a non-adjacent anchor pair is
	// connected, on top of the path that already joins adjacent anchors.
	ConnectionRatio float64 `yaml:"connectionRatio"`
}

// DefaultSeederConfig returns the standard seeding parameters.
func DefaultSeederConfig() SeederConfig {
	return SeederConfig{
		Strategy:        SeedUniform,
		WallRatio:       0.45,
		MainPoints:      4,
		BranchRatio:     0.3,
		ConnectionRatio: 0.25,
	}
}

// Seeder fills a fresh grid with initial wall noise. The graph strategy also
// records main points for downstream phases.
type Seeder struct {
	cfg        SeederConfig
	mainPoints []grid.Position
}

// NewSeeder creates a Seeder with the given configuration.
func NewSeeder(cfg SeederConfig) *Seeder {
	return &Seeder{cfg: cfg}
}

// MainPoints returns the graph anchors placed by the most recent Seed call.
// It is empty for the uniform strategy.
func (s *Seeder) MainPoints() []grid.Position {
	out := make([]grid.Position, len(s.mainPoints))
	copy(out, s.mainPoints)
	return out
}

// Seed creates a width x height grid filled with wall noise at the configured
// ratio. Edge tiles are always wall. The graph strategy additionally places
// main points and carves the corridors that join them.
func (s *Seeder) Seed(width, height int, r *rng.RNG) (*grid.Grid, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("cave: grid %dx%d too small to seed", width, height)
	}

	g := grid.New(width, height)
	s.mainPoints = nil

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if r.Float64() < s.cfg.WallRatio {
				g.Set(x, y, grid.Wall)
			}
		}
	}
	g.CloseBorder()

	if s.cfg.Strategy == SeedGraph {
		s.seedGraph(g, r)
	}

	return g, nil
}

// seedGraph places the main-point anchors and joins them with carved
// corridors. Anchors are kept away from the border so the discs opened
// around them later never breach it.
func (s *Seeder) seedGraph(g *grid.Grid, r *rng.RNG) {
	count := s.cfg.MainPoints
	if count < 2 {
		count = 2
	}

	inset := 4
	if g.Width() <= 2*inset+1 || g.Height() <= 2*inset+1 {
		inset = 1
	}

	anchors := make([]grid.Position, 0, count)
	for i := 0; i < count; i++ {
		p := grid.Position{
			X: r.IntRange(inset, g.Width()-1-inset),
			Y: r.IntRange(inset, g.Height()-1-inset),
		}
		anchors = append(anchors, p)
		OpenDisc(g, p, 2)
	}

	// Path through adjacent anchors keeps the skeleton connected.
	for i := 0; i+1 < len(anchors); i++ {
		carveL(g, anchors[i], anchors[i+1], r)
	}

	// Extra connections between non-adjacent anchors add loops.
	for i := 0; i < len(anchors); i++ {
		for j := i + 2; j < len(anchors); j++ {
			if r.Float64() < s.cfg.ConnectionRatio {
				carveL(g, anchors[i], anchors[j], r)
			}
		}
	}

	// Branches dangle short stubs off anchors for variety.
	for _, a := range anchors {
		if r.Float64() >= s.cfg.BranchRatio {
			continue
		}
		length := r.IntRange(3, 6)
		end := grid.Position{X: a.X + r.Direction()*length, Y: a.Y}
		end.X = clamp(end.X, 1, g.Width()-2)
		carveL(g, a, end, r)
	}

	s.mainPoints = anchors
	g.CloseBorder()
}

// OpenDisc carves a floor disc of the given radius around center. Border
// tiles are left untouched.
func OpenDisc(g *grid.Grid, center grid.Position, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := center.X+dx, center.Y+dy
			if x <= 0 || x >= g.Width()-1 || y <= 0 || y >= g.Height()-1 {
				continue
			}
			g.Set(x, y, grid.Floor)
		}
	}
}

// carveL carves a 1-tile-wide L-shaped tunnel between a and b, horizontal leg
// first or vertical leg first chosen by the RNG.
func carveL(g *grid.Grid, a, b grid.Position, r *rng.RNG) {
	corner := grid.Position{X: b.X, Y: a.Y}
	if r.Bool() {
		corner = grid.Position{X: a.X, Y: b.Y}
	}
	carveStraight(g, a, corner)
	carveStraight(g, corner, b)
}

// carveStraight carves a horizontal or vertical run of floor between two
// points that share a row or column. Border tiles are skipped.
func carveStraight(g *grid.Grid, a, b grid.Position) {
	step := func(v int) int {
		if v > 0 {
			return 1
		}
		if v < 0 {
			return -1
		}
		return 0
	}
	sx, sy := step(b.X-a.X), step(b.Y-a.Y)
	x, y := a.X, a.Y
	for {
		if x > 0 && x < g.Width()-1 && y > 0 && y < g.Height()-1 {
			g.Set(x, y, grid.Floor)
		}
		if x == b.X && y == b.Y {
			return
		}
		x += sx
		y += sy
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
