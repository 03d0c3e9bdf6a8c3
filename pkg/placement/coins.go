package placement

import (
	"fmt"
	"math"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/physics"
	"github.com/mfeld/cavegen/pkg/rng"
)

// CoinConfig tunes coin placement.
type CoinConfig struct {
	// Count is the number of coins requested.
	Count int `yaml:"count"`

	// MinDistance is the minimum Euclidean spacing between coins.
	MinDistance float64 `yaml:"minDistance"`

	// DeadEndWeight, ExplorationWeight and GeneralWeight allocate coins
	// across the three candidate buckets. They must sum to 1.0.
	DeadEndWeight     float64 `yaml:"deadEndWeight"`
	ExplorationWeight float64 `yaml:"explorationWeight"`
	GeneralWeight     float64 `yaml:"generalWeight"`

	// ExplorationThreshold is the normalized center-distance score above
	// which a tile counts as an exploration area.
	ExplorationThreshold float64 `yaml:"explorationThreshold"`

	// MinReachableFraction fails placement outright when less of the cave
	// is reachable from the spawn.
	MinReachableFraction float64 `yaml:"minReachableFraction"`
}

// DefaultCoinConfig returns the standard coin parameters.
func DefaultCoinConfig() CoinConfig {
	return CoinConfig{
		Count:                15,
		MinDistance:          3,
		DeadEndWeight:        0.3,
		ExplorationWeight:    0.3,
		GeneralWeight:        0.4,
		ExplorationThreshold: 0.6,
		MinReachableFraction: 0.60,
	}
}

// CoinPlacer samples reachable tiles for coins across dead-end, exploration
// and general buckets.
type CoinPlacer struct {
	cfg  CoinConfig
	phys *physics.Analyzer
}

// NewCoinPlacer validates the bucket weights and creates a placer.
func NewCoinPlacer(cfg CoinConfig, phys *physics.Analyzer) (*CoinPlacer, error) {
	sum := cfg.DeadEndWeight + cfg.ExplorationWeight + cfg.GeneralWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return nil, fmt.Errorf("placement: coin bucket weights sum to %f, want 1.0", sum)
	}
	return &CoinPlacer{cfg: cfg, phys: phys}, nil
}

// Place returns coin positions in placement order. The grid must already
// have platforms stamped as wall. Placement fails with a
// LowReachabilityError when the cave is insufficiently traversable from the
// spawn.
func (cp *CoinPlacer) Place(g *grid.Grid, spawn grid.Position, platforms []Platform, r *rng.RNG) ([]grid.Position, error) {
	reach := cp.phys.ReachableFrom(g, spawn, physics.Unlimited)

	nonWall := g.Width()*g.Height() - g.WallCount()
	fraction := 0.0
	if nonWall > 0 {
		fraction = float64(reach.Count()) / float64(nonWall)
	}
	if fraction < cp.cfg.MinReachableFraction {
		return nil, &LowReachabilityError{Fraction: fraction, Minimum: cp.cfg.MinReachableFraction}
	}

	platformTiles := make(map[grid.Position]bool)
	for _, p := range platforms {
		for _, t := range p.OccupiedTiles() {
			platformTiles[t] = true
		}
	}

	valid := make([]grid.Position, 0, reach.Count())
	for _, p := range reach.Tiles() {
		if platformTiles[p] {
			continue
		}
		if openPocket(g, p) {
			valid = append(valid, p)
		}
	}

	deadEnds := deadEndTiles(g)
	isDeadEnd := make(map[grid.Position]bool, len(deadEnds))
	for _, p := range deadEnds {
		isDeadEnd[p] = true
	}

	var deadEndBucket, explorationBucket, generalBucket []grid.Position
	for _, p := range valid {
		switch {
		case isDeadEnd[p]:
			deadEndBucket = append(deadEndBucket, p)
		case cp.explorationScore(g, p) >= cp.cfg.ExplorationThreshold:
			explorationBucket = append(explorationBucket, p)
		default:
			generalBucket = append(generalBucket, p)
		}
	}

	n := cp.cfg.Count
	if len(valid) < n {
		n = len(valid)
	}
	wantDeadEnd := int(float64(n) * cp.cfg.DeadEndWeight)
	wantExploration := int(float64(n) * cp.cfg.ExplorationWeight)
	wantGeneral := n - wantDeadEnd - wantExploration

	var coins []grid.Position
	coins = cp.sampleBucket(deadEndBucket, wantDeadEnd, coins, r)
	coins = cp.sampleBucket(explorationBucket, wantExploration, coins, r)
	coins = cp.sampleBucket(generalBucket, wantGeneral, coins, r)
	return coins, nil
}

// sampleBucket draws up to want coins from a shuffled copy of the bucket,
// enforcing the minimum spacing against everything placed so far.
func (cp *CoinPlacer) sampleBucket(bucket []grid.Position, want int, placed []grid.Position, r *rng.RNG) []grid.Position {
	if want <= 0 || len(bucket) == 0 {
		return placed
	}
	pool := make([]grid.Position, len(bucket))
	copy(pool, bucket)
	r.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	taken := 0
	for _, cand := range pool {
		if taken >= want {
			break
		}
		ok := true
		for _, c := range placed {
			if cand.DistanceTo(c) < cp.cfg.MinDistance {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		placed = append(placed, cand)
		taken++
	}
	return placed
}

// explorationScore is the tile's distance from the grid center, normalized
// by the center-to-corner distance. Far tiles score near 1.
func (cp *CoinPlacer) explorationScore(g *grid.Grid, p grid.Position) float64 {
	center := grid.Position{X: g.Width() / 2, Y: g.Height() / 2}
	maxDist := center.DistanceTo(grid.Position{X: 0, Y: 0})
	if maxDist == 0 {
		return 0
	}
	return p.DistanceTo(center) / maxDist
}

// openPocket reports whether every 8-neighbor of p is an in-bounds floor
// tile: coins live in 3x3 open pockets.
func openPocket(g *grid.Grid, p grid.Position) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !g.InBounds(p.X+dx, p.Y+dy) || g.At(p.X+dx, p.Y+dy) != grid.Floor {
				return false
			}
		}
	}
	return true
}

// deadEndTiles returns floor tiles with exactly one floor 4-neighbor, in
// scan order.
func deadEndTiles(g *grid.Grid) []grid.Position {
	var out []grid.Position
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.At(x, y) != grid.Floor {
				continue
			}
			floors := 0
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				if g.IsFloor(x+d[0], y+d[1]) {
					floors++
				}
			}
			if floors == 1 {
				out = append(out, grid.Position{X: x, Y: y})
			}
		}
	}
	return out
}
