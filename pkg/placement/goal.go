package placement

import (
	"fmt"
	"sort"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/rng"
)

// GoalConfig tunes goal selection.
type GoalConfig struct {
	// MinDistance is the minimum Euclidean distance from the spawn.
	MinDistance float64 `yaml:"minDistance"`

	// RightSideBoundary, when positive, requires goal.x >= floor(W*boundary).
	RightSideBoundary float64 `yaml:"rightSideBoundary"`
}

// DefaultGoalConfig returns the standard goal parameters.
func DefaultGoalConfig() GoalConfig {
	return GoalConfig{
		MinDistance:       10,
		RightSideBoundary: 0.6,
	}
}

// GoalResult carries the selected goal and whether the right-strip
// preference had to be abandoned.
type GoalResult struct {
	Position     grid.Position
	FallbackUsed bool
	Warning      string
}

// goalSampleWindow is how many of the rightmost candidates the RNG picks
// from.
const goalSampleWindow = 20

// PlaceGoal selects the goal tile on a grid where platforms have already
// been stamped as wall, which guarantees the goal never sits inside a
// platform. Candidates are floor-over-wall tiles at least MinDistance from
// the spawn; those in the right strip are preferred, the rightmost twenty
// are kept, and one is sampled uniformly. An empty right strip falls back to
// all candidates with a warning; an empty candidate set is a degenerate-cave
// fault.
func PlaceGoal(g *grid.Grid, spawn grid.Position, cfg GoalConfig, r *rng.RNG) (GoalResult, error) {
	var all []grid.Position
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := grid.Position{X: x, Y: y}
			if g.AtPos(p) != grid.Floor {
				continue
			}
			if y+1 >= g.Height() || g.At(x, y+1) != grid.Wall {
				continue
			}
			if p.DistanceTo(spawn) < cfg.MinDistance {
				continue
			}
			all = append(all, p)
		}
	}
	if len(all) == 0 {
		return GoalResult{}, ErrNoGoalPosition
	}

	candidates := all
	result := GoalResult{}
	if cfg.RightSideBoundary > 0 {
		boundary := int(float64(g.Width()) * cfg.RightSideBoundary)
		var right []grid.Position
		for _, p := range all {
			if p.X >= boundary {
				right = append(right, p)
			}
		}
		if len(right) > 0 {
			candidates = right
		} else {
			result.FallbackUsed = true
			result.Warning = fmt.Sprintf("no goal candidate right of x=%d, fell back to full search (%d candidates)",
				boundary, len(all))
		}
	}

	// Rightmost first; y breaks ties so the order is total.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].X != candidates[j].X {
			return candidates[i].X > candidates[j].X
		}
		return candidates[i].Y < candidates[j].Y
	})
	if len(candidates) > goalSampleWindow {
		candidates = candidates[:goalSampleWindow]
	}

	result.Position = candidates[r.Choice(len(candidates))]
	return result, nil
}
