package placement

import (
	"fmt"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/rng"
)

// SpawnConfig tunes player spawn selection.
type SpawnConfig struct {
	// SafetyRadius is how far to probe in each cardinal direction for open
	// floor around a candidate.
	SafetyRadius int `yaml:"safetyRadius"`

	// LeftSideBoundary restricts the initial search to x < floor(W*boundary).
	LeftSideBoundary float64 `yaml:"leftSideBoundary"`
}

// DefaultSpawnConfig returns the standard spawn parameters.
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		SafetyRadius:     2,
		LeftSideBoundary: 0.25,
	}
}

// SpawnResult carries the selected spawn and whether the left-strip
// preference had to be abandoned.
type SpawnResult struct {
	Position     grid.Position
	FallbackUsed bool
	Warning      string
}

// PlaceSpawn selects the player spawn: a floor tile with solid wall below
// and at least one open cardinal escape within the safety radius, biased to
// the left strip of the level. If the strip holds no valid tile the search
// widens to the whole grid and the result is flagged. Selection within the
// candidate set is uniform under the supplied RNG.
func PlaceSpawn(g *grid.Grid, cfg SpawnConfig, r *rng.RNG) (SpawnResult, error) {
	valid := spawnCandidates(g, cfg)
	if len(valid) == 0 {
		return SpawnResult{}, ErrNoSpawnPosition
	}

	boundary := int(float64(g.Width()) * cfg.LeftSideBoundary)
	var left []grid.Position
	for _, p := range valid {
		if p.X < boundary {
			left = append(left, p)
		}
	}

	if len(left) > 0 {
		return SpawnResult{Position: left[r.Choice(len(left))]}, nil
	}

	return SpawnResult{
		Position:     valid[r.Choice(len(valid))],
		FallbackUsed: true,
		Warning: fmt.Sprintf("no spawn candidate left of x=%d, fell back to full search (%d candidates)",
			boundary, len(valid)),
	}, nil
}

// spawnCandidates scans the grid in row-major order for tiles satisfying the
// spawn invariant: floor over wall, with a safe landing zone nearby.
func spawnCandidates(g *grid.Grid, cfg SpawnConfig) []grid.Position {
	var out []grid.Position
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := grid.Position{X: x, Y: y}
			if g.AtPos(p) != grid.Floor {
				continue
			}
			if y+1 >= g.Height() || g.At(x, y+1) != grid.Wall {
				continue
			}
			if hasSafeZone(g, p, cfg.SafetyRadius) {
				out = append(out, p)
			}
		}
	}
	return out
}

// hasSafeZone reports whether a floor tile is reachable from p within radius
// steps in one of the four cardinal directions without crossing a wall.
func hasSafeZone(g *grid.Grid, p grid.Position, radius int) bool {
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		for step := 1; step <= radius; step++ {
			x, y := p.X+d[0]*step, p.Y+d[1]*step
			if !g.InBounds(x, y) || g.At(x, y) == grid.Wall {
				break
			}
			return true
		}
	}
	return false
}
