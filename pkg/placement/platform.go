package placement

import (
	"sort"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/physics"
	"github.com/mfeld/cavegen/pkg/rng"
)

// PlatformKind tags a platform variant. Kinds are metadata for the runtime
// engine; both behave identically for reachability.
type PlatformKind string

const (
	PlatformFloating PlatformKind = "floating"
	PlatformMoving   PlatformKind = "moving"
)

// Platform is a 1-tile-tall horizontal platform stamped into the grid as
// wall once accepted.
type Platform struct {
	Kind      PlatformKind `json:"kind"`
	X         int          `json:"x"`
	Y         int          `json:"y"`
	Width     int          `json:"width"`
	Direction int          `json:"direction"`
}

// OccupiedTiles returns the Width contiguous tiles starting at (X, Y) and
// extending in Direction.
func (p Platform) OccupiedTiles() []grid.Position {
	tiles := make([]grid.Position, 0, p.Width)
	for i := 0; i < p.Width; i++ {
		tiles = append(tiles, grid.Position{X: p.X + i*p.Direction, Y: p.Y})
	}
	return tiles
}

// PlatformConfig tunes the strategic platform placement loop.
type PlatformConfig struct {
	// TargetReachability stops the loop once this fraction of non-wall
	// tiles is reachable.
	TargetReachability float64 `yaml:"targetReachability"`

	// MaxIterations bounds the number of accepted-platform iterations.
	MaxIterations int `yaml:"maxIterations"`

	// MaxPlatforms caps total accepted platforms across the loop.
	MaxPlatforms int `yaml:"maxPlatforms"`

	// MinSize and MaxSize bound platform width in tiles.
	MinSize int `yaml:"minSize"`
	MaxSize int `yaml:"maxSize"`

	// FloatingProbability is the chance a sampled platform is floating;
	// the remainder are moving.
	FloatingProbability float64 `yaml:"floatingProbability"`

	// ScoreWindow is the half-width w of the (2w+1)x(2w+1) window used to
	// score critical-ring tiles by nearby unreachable mass.
	ScoreWindow int `yaml:"scoreWindow"`
}

// DefaultPlatformConfig returns the standard platform placement parameters.
func DefaultPlatformConfig() PlatformConfig {
	return PlatformConfig{
		TargetReachability:  0.85,
		MaxIterations:       20,
		MaxPlatforms:        25,
		MinSize:             2,
		MaxSize:             6,
		FloatingProbability: 0.7,
		ScoreWindow:         7,
	}
}

// PlatformPlacer runs the iterative strategic placement loop: pick the
// critical-ring tile with the most unreachable neighbors, propose platforms
// there, and accept only those whose insertion strictly increases the
// reachable-tile count.
type PlatformPlacer struct {
	cfg  PlatformConfig
	phys *physics.Analyzer
	r    *rng.RNG
}

// NewPlatformPlacer creates a placer driven by the "platform-seed" RNG.
func NewPlatformPlacer(cfg PlatformConfig, phys *physics.Analyzer, r *rng.RNG) *PlatformPlacer {
	return &PlatformPlacer{cfg: cfg, phys: phys, r: r}
}

// Place mutates g, stamping accepted platforms as wall, and returns them in
// acceptance order. Reachability is measured from start; spawn's two-tile
// body and the forbidden set are never occupied. Hitting MaxIterations
// without reaching the target is not an error: the caller gets whatever was
// accepted.
func (pp *PlatformPlacer) Place(g *grid.Grid, start, spawn grid.Position, forbidden map[grid.Position]bool) []Platform {
	var placed []Platform

	if g.AtPos(start) != grid.Floor {
		return placed
	}

	reach := pp.phys.ReachableFrom(g, start, physics.Unlimited)

	for iter := 0; iter < pp.cfg.MaxIterations; iter++ {
		if len(placed) >= pp.cfg.MaxPlatforms {
			break
		}
		if pp.reachabilityFraction(g, reach) >= pp.cfg.TargetReachability {
			break
		}

		frontier := physics.Frontier(g, reach)
		ring := physics.CriticalRing(g, reach, frontier)
		if len(ring) == 0 {
			break
		}

		candidates := pp.scoreCandidates(g, reach, ring)

		accepted, newReach := pp.tryCandidates(g, candidates, start, spawn, reach, forbidden)
		if accepted == nil {
			break
		}
		placed = append(placed, *accepted)
		reach = newReach
	}

	return placed
}

// scoredTile pairs a critical-ring tile with its unreachable-mass score.
type scoredTile struct {
	pos   grid.Position
	score int
	index int
}

// scoreCandidates counts unreachable floor tiles in the scoring window
// around each ring tile and orders candidates by descending score. Ties keep
// ring order so the sort is fully deterministic.
func (pp *PlatformPlacer) scoreCandidates(g *grid.Grid, reach *physics.ReachSet, ring []grid.Position) []scoredTile {
	w := pp.cfg.ScoreWindow
	scored := make([]scoredTile, 0, len(ring))
	for i, p := range ring {
		score := 0
		for dy := -w; dy <= w; dy++ {
			for dx := -w; dx <= w; dx++ {
				n := grid.Position{X: p.X + dx, Y: p.Y + dy}
				if g.InBounds(n.X, n.Y) && g.AtPos(n) == grid.Floor && !reach.Contains(n) {
					score++
				}
			}
		}
		scored = append(scored, scoredTile{pos: p, score: score, index: i})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].index < scored[j].index
	})
	return scored
}

// tryCandidates walks the scored candidates and returns the first platform
// that survives all rejection filters, along with the recomputed reach set.
func (pp *PlatformPlacer) tryCandidates(g *grid.Grid, candidates []scoredTile, start, spawn grid.Position, reach *physics.ReachSet, forbidden map[grid.Position]bool) (*Platform, *physics.ReachSet) {
	for _, cand := range candidates {
		for _, dir := range [2]int{1, -1} {
			sizes := pp.validSizes(g, cand.pos, dir)
			pp.r.Shuffle(len(sizes), func(i, j int) {
				sizes[i], sizes[j] = sizes[j], sizes[i]
			})
			for _, size := range sizes {
				platform := Platform{
					Kind:      pp.sampleKind(),
					X:         cand.pos.X,
					Y:         cand.pos.Y,
					Width:     size,
					Direction: dir,
				}
				if !pp.admissible(g, platform, spawn, forbidden) {
					continue
				}
				newReach, gained := pp.reachabilityGain(g, platform, start, reach)
				if !gained {
					continue
				}
				for _, t := range platform.OccupiedTiles() {
					g.SetPos(t, grid.Wall)
				}
				return &platform, newReach
			}
		}
	}
	return nil, nil
}

// validSizes enumerates every platform width whose occupied tiles are all
// in-bounds floor.
func (pp *PlatformPlacer) validSizes(g *grid.Grid, at grid.Position, dir int) []int {
	var sizes []int
	for size := pp.cfg.MinSize; size <= pp.cfg.MaxSize; size++ {
		ok := true
		for i := 0; i < size; i++ {
			x := at.X + i*dir
			if !g.InBounds(x, at.Y) || g.At(x, at.Y) != grid.Floor {
				ok = false
				break
			}
		}
		if ok {
			sizes = append(sizes, size)
		}
	}
	return sizes
}

// sampleKind draws the platform variant from the configured two-way
// distribution.
func (pp *PlatformPlacer) sampleKind() PlatformKind {
	if pp.r.Float64() < pp.cfg.FloatingProbability {
		return PlatformFloating
	}
	return PlatformMoving
}

// admissible applies the overlap filters: every occupied tile must be
// in-bounds floor, outside the spawn's two-tile body, and outside the
// forbidden set.
func (pp *PlatformPlacer) admissible(g *grid.Grid, p Platform, spawn grid.Position, forbidden map[grid.Position]bool) bool {
	spawnBody := [2]grid.Position{
		spawn,
		{X: spawn.X, Y: spawn.Y - 1},
	}
	for _, t := range p.OccupiedTiles() {
		if !g.InBounds(t.X, t.Y) || g.AtPos(t) != grid.Floor {
			return false
		}
		if t == spawnBody[0] || t == spawnBody[1] {
			return false
		}
		if forbidden[t] {
			return false
		}
	}
	return true
}

// reachabilityGain stamps the platform on a grid copy and reports whether
// the reachable count strictly increases.
func (pp *PlatformPlacer) reachabilityGain(g *grid.Grid, p Platform, start grid.Position, reach *physics.ReachSet) (*physics.ReachSet, bool) {
	trial := g.Clone()
	for _, t := range p.OccupiedTiles() {
		trial.SetPos(t, grid.Wall)
	}
	if trial.AtPos(start) != grid.Floor {
		return nil, false
	}
	newReach := pp.phys.ReachableFrom(trial, start, physics.Unlimited)
	if newReach.Count() <= reach.Count() {
		return nil, false
	}
	return newReach, true
}

// reachabilityFraction is reachable tiles over non-wall tiles.
func (pp *PlatformPlacer) reachabilityFraction(g *grid.Grid, reach *physics.ReachSet) float64 {
	nonWall := g.Width()*g.Height() - g.WallCount()
	if nonWall == 0 {
		return 1
	}
	return float64(reach.Count()) / float64(nonWall)
}

// ForbiddenWindow adds the (2r+1)x(2r+1) window around center to the
// forbidden set. The pipeline uses it to shield the spawn, main points, and
// placed coins from platform stamping.
func ForbiddenWindow(forbidden map[grid.Position]bool, center grid.Position, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			forbidden[grid.Position{X: center.X + dx, Y: center.Y + dy}] = true
		}
	}
}
