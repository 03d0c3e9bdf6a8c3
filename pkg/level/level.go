package level

import (
	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/placement"
)

// Level is the complete generated artifact: the final grid with platforms
// stamped, plus every placed entity and the configuration summary needed to
// reproduce it.
type Level struct {
	// Width, Height and Seed echo the generating configuration.
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   string `json:"seed"`

	// Grid is the final tile grid, platforms included.
	Grid *grid.Grid `json:"-"`

	// Spawn is the player start position.
	Spawn grid.Position `json:"spawn"`

	// Goal is the level exit.
	Goal grid.Position `json:"goal"`

	// Coins are collectible positions in placement order.
	Coins []grid.Position `json:"coins"`

	// Enemies are placed enemies with patrol parameters.
	Enemies []placement.Enemy `json:"enemies"`

	// Platforms are accepted platforms in acceptance order. Their tiles
	// are wall in Grid.
	Platforms []placement.Platform `json:"platforms"`

	// Warnings collects non-fatal placement fallbacks (spawn or goal strip
	// searches that widened to the whole grid).
	Warnings []string `json:"warnings,omitempty"`

	// Stats summarizes the generation run.
	Stats Stats `json:"stats"`
}

// Stats captures generation metrics for logging and validation.
type Stats struct {
	// FloorTiles is the floor count of the final grid.
	FloorTiles int `json:"floorTiles"`

	// ReachableTiles is the size of the final reachable set from spawn.
	ReachableTiles int `json:"reachableTiles"`

	// ReachableFraction is ReachableTiles over non-wall tiles.
	ReachableFraction float64 `json:"reachableFraction"`

	// Regions is the floor region count after cave synthesis.
	Regions int `json:"regions"`

	// CorridorsCarved counts tunnels the carver added.
	CorridorsCarved int `json:"corridorsCarved"`

	// DiagonalIssues and DiagonalFixes echo the diagonal repair report.
	DiagonalIssues int `json:"diagonalIssues"`
	DiagonalFixes  int `json:"diagonalFixes"`
}

// PrePlatformGrid reconstructs the grid as it was before platform stamping.
// Useful for validators that need to check the goal sits on natural floor.
func (l *Level) PrePlatformGrid() *grid.Grid {
	g := l.Grid.Clone()
	for _, p := range l.Platforms {
		for _, t := range p.OccupiedTiles() {
			if g.InBounds(t.X, t.Y) {
				g.SetPos(t, grid.Floor)
			}
		}
	}
	return g
}
