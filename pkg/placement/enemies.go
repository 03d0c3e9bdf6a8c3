package placement

import (
	"sort"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/rng"
)

// CandidateType tags where an enemy candidate came from. The tag survives
// onto the placed enemy so the runtime can pick behaviors per origin.
type CandidateType string

const (
	CandidateChokePoint CandidateType = "chokePoint"
	CandidateStrategic  CandidateType = "strategic"
	CandidatePatrol     CandidateType = "patrol"
	CandidatePlatform   CandidateType = "platform"
)

// candidatePriority orders types for placement; lower is placed first.
var candidatePriority = map[CandidateType]int{
	CandidateChokePoint: 0,
	CandidateStrategic:  1,
	CandidatePatrol:     2,
	CandidatePlatform:   3,
}

// EnemyCandidate is a scored tile an enemy could occupy.
type EnemyCandidate struct {
	Pos  grid.Position
	Type CandidateType
}

// Enemy is a placed enemy with synthesized patrol parameters.
type Enemy struct {
	X              int           `json:"x"`
	Y              int           `json:"y"`
	PatrolDistance int           `json:"patrolDistance"`
	Direction      int           `json:"direction"`
	Speed          int           `json:"speed"`
	PlacementType  CandidateType `json:"placementType"`
}

// EnemyAnalyzerConfig tunes candidate generation.
type EnemyAnalyzerConfig struct {
	// MinPatrolArea and MaxPatrolArea bound the length of a horizontal
	// floor run that counts as a patrol area.
	MinPatrolArea int `yaml:"minPatrolArea"`
	MaxPatrolArea int `yaml:"maxPatrolArea"`

	// StrategicDistance is the Euclidean radius around coins that yields
	// strategic candidates.
	StrategicDistance float64 `yaml:"strategicDistance"`

	// GoalStrategicDistance is the Euclidean radius around the goal that
	// yields strategic candidates.
	GoalStrategicDistance float64 `yaml:"goalStrategicDistance"`
}

// DefaultEnemyAnalyzerConfig returns the standard candidate parameters.
func DefaultEnemyAnalyzerConfig() EnemyAnalyzerConfig {
	return EnemyAnalyzerConfig{
		MinPatrolArea:         5,
		MaxPatrolArea:         20,
		StrategicDistance:     5,
		GoalStrategicDistance: 8,
	}
}

// EnemyAnalyzer generates enemy position candidates from the final grid.
type EnemyAnalyzer struct {
	cfg EnemyAnalyzerConfig
}

// NewEnemyAnalyzer creates an analyzer with the given configuration.
func NewEnemyAnalyzer(cfg EnemyAnalyzerConfig) *EnemyAnalyzer {
	return &EnemyAnalyzer{cfg: cfg}
}

// ChokePoints returns floor tiles squeezed between wall directly above and
// directly below, in scan order.
func (a *EnemyAnalyzer) ChokePoints(g *grid.Grid) []EnemyCandidate {
	var out []EnemyCandidate
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.At(x, y) != grid.Floor {
				continue
			}
			if g.At(x, y-1) == grid.Wall && g.At(x, y+1) == grid.Wall {
				out = append(out, EnemyCandidate{Pos: grid.Position{X: x, Y: y}, Type: CandidateChokePoint})
			}
		}
	}
	return out
}

// PatrolAreas finds maximal horizontal runs of floor-over-wall tiles whose
// length fits the configured bounds, and emits each run's center tile.
func (a *EnemyAnalyzer) PatrolAreas(g *grid.Grid) []EnemyCandidate {
	var out []EnemyCandidate
	walkable := func(x, y int) bool {
		return g.IsFloor(x, y) && g.At(x, y+1) == grid.Wall && y+1 < g.Height()
	}
	for y := 0; y < g.Height(); y++ {
		x := 0
		for x < g.Width() {
			if !walkable(x, y) {
				x++
				continue
			}
			runStart := x
			for x < g.Width() && walkable(x, y) {
				x++
			}
			length := x - runStart
			if length >= a.cfg.MinPatrolArea && length <= a.cfg.MaxPatrolArea {
				out = append(out, EnemyCandidate{
					Pos:  grid.Position{X: runStart + length/2, Y: y},
					Type: CandidatePatrol,
				})
			}
		}
	}
	return out
}

// StrategicPositions returns floor tiles guarding collectibles or the goal:
// tiles within StrategicDistance of any coin, plus tiles within
// GoalStrategicDistance of the goal. Scan order; duplicates collapse.
func (a *EnemyAnalyzer) StrategicPositions(g *grid.Grid, coins []grid.Position, goal grid.Position) []EnemyCandidate {
	var out []EnemyCandidate
	seen := make(map[grid.Position]bool)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := grid.Position{X: x, Y: y}
			if g.AtPos(p) != grid.Floor || seen[p] {
				continue
			}
			if p.DistanceTo(goal) <= a.cfg.GoalStrategicDistance {
				seen[p] = true
				out = append(out, EnemyCandidate{Pos: p, Type: CandidateStrategic})
				continue
			}
			for _, c := range coins {
				if p.DistanceTo(c) <= a.cfg.StrategicDistance {
					seen[p] = true
					out = append(out, EnemyCandidate{Pos: p, Type: CandidateStrategic})
					break
				}
			}
		}
	}
	return out
}

// PlatformPositions returns floor tiles standing on placed platforms, in
// platform order.
func (a *EnemyAnalyzer) PlatformPositions(g *grid.Grid, platforms []Platform) []EnemyCandidate {
	var out []EnemyCandidate
	seen := make(map[grid.Position]bool)
	for _, plat := range platforms {
		for _, t := range plat.OccupiedTiles() {
			p := grid.Position{X: t.X, Y: t.Y - 1}
			if seen[p] || !g.IsFloor(p.X, p.Y) {
				continue
			}
			seen[p] = true
			out = append(out, EnemyCandidate{Pos: p, Type: CandidatePlatform})
		}
	}
	return out
}

// Accessible drops candidates that are out of bounds or not floor tiles.
func (a *EnemyAnalyzer) Accessible(g *grid.Grid, candidates []EnemyCandidate) []EnemyCandidate {
	out := candidates[:0:0]
	for _, c := range candidates {
		if g.IsFloor(c.Pos.X, c.Pos.Y) {
			out = append(out, c)
		}
	}
	return out
}

// Stats counts candidates per type.
func (a *EnemyAnalyzer) Stats(candidates []EnemyCandidate) map[CandidateType]int {
	stats := make(map[CandidateType]int)
	for _, c := range candidates {
		stats[c.Type]++
	}
	return stats
}

// EnemyPlacerConfig tunes enemy distribution.
type EnemyPlacerConfig struct {
	// MaxEnemies caps the number placed.
	MaxEnemies int `yaml:"maxEnemies"`

	// Density scales W*H into a target enemy count.
	Density float64 `yaml:"density"`

	// MinDistanceFromSpawn and MinDistanceFromGoal keep enemies off the
	// player's first steps and the finish line.
	MinDistanceFromSpawn float64 `yaml:"minDistanceFromSpawn"`
	MinDistanceFromGoal  float64 `yaml:"minDistanceFromGoal"`

	// PreserveSolvability rejects choke-point enemies inside the
	// spawn-goal bounding box.
	PreserveSolvability bool `yaml:"preserveSolvability"`
}

// DefaultEnemyPlacerConfig returns the standard distribution parameters.
func DefaultEnemyPlacerConfig() EnemyPlacerConfig {
	return EnemyPlacerConfig{
		MaxEnemies:           5,
		Density:              0.002,
		MinDistanceFromSpawn: 8,
		MinDistanceFromGoal:  5,
		PreserveSolvability:  true,
	}
}

// EnemyPlacer distributes enemies across the level with zone round-robin so
// a wide cave gets threats on the left, middle and right instead of
// clustering at the far end.
type EnemyPlacer struct {
	cfg      EnemyPlacerConfig
	analyzer *EnemyAnalyzer
}

// NewEnemyPlacer creates a placer over the given analyzer.
func NewEnemyPlacer(cfg EnemyPlacerConfig, analyzer *EnemyAnalyzer) *EnemyPlacer {
	return &EnemyPlacer{cfg: cfg, analyzer: analyzer}
}

// Place generates candidates, priority-sorts them, splits them into thirds
// of the level width, and round-robins zones until the target count is
// reached or every zone is exhausted. Enemy patrol parameters are
// synthesized from the supplied RNG (conventionally "enemy-seed").
func (ep *EnemyPlacer) Place(g *grid.Grid, spawn, goal grid.Position, coins []grid.Position, platforms []Platform, r *rng.RNG) []Enemy {
	var candidates []EnemyCandidate
	candidates = append(candidates, ep.analyzer.ChokePoints(g)...)
	candidates = append(candidates, ep.analyzer.StrategicPositions(g, coins, goal)...)
	candidates = append(candidates, ep.analyzer.PatrolAreas(g)...)
	candidates = append(candidates, ep.analyzer.PlatformPositions(g, platforms)...)
	candidates = ep.analyzer.Accessible(g, candidates)

	target := int(float64(g.Width()*g.Height()) * ep.cfg.Density)
	if target > ep.cfg.MaxEnemies {
		target = ep.cfg.MaxEnemies
	}
	if target <= 0 || len(candidates) == 0 {
		return nil
	}

	ep.prioritize(candidates, spawn, goal)
	zones := ep.partition(candidates, g.Width())

	chokePoints := make(map[grid.Position]bool)
	for _, c := range ep.analyzer.ChokePoints(g) {
		chokePoints[c.Pos] = true
	}
	criticalBox := boundingBox(spawn, goal)

	var enemies []Enemy
	used := make(map[grid.Position]bool)
	cursor := [3]int{}
	exhausted := 0
	zone := 0
	for len(enemies) < target && exhausted < 3 {
		if cursor[zone] >= len(zones[zone]) {
			exhausted++
			zone = (zone + 1) % 3
			continue
		}
		exhausted = 0
		cand := zones[zone][cursor[zone]]
		cursor[zone]++

		if !ep.acceptable(cand, spawn, goal, used, chokePoints, criticalBox) {
			continue
		}

		used[cand.Pos] = true
		enemies = append(enemies, Enemy{
			X:              cand.Pos.X,
			Y:              cand.Pos.Y,
			PatrolDistance: r.IntRange(50, 499),
			Direction:      r.Direction(),
			Speed:          r.IntRange(10, 199),
			PlacementType:  cand.Type,
		})
		zone = (zone + 1) % 3
	}
	return enemies
}

// acceptable applies the spacing, reuse, and solvability filters.
func (ep *EnemyPlacer) acceptable(cand EnemyCandidate, spawn, goal grid.Position, used, chokePoints map[grid.Position]bool, criticalBox grid.Rect) bool {
	if used[cand.Pos] {
		return false
	}
	if cand.Pos.DistanceTo(spawn) < ep.cfg.MinDistanceFromSpawn {
		return false
	}
	if cand.Pos.DistanceTo(goal) < ep.cfg.MinDistanceFromGoal {
		return false
	}
	if ep.cfg.PreserveSolvability && chokePoints[cand.Pos] && criticalBox.Contains(cand.Pos) {
		return false
	}
	return true
}

// prioritize sorts candidates by type priority, then by a zone score that
// favors the left of the span up to max(goal.x, spawn.x), then by a
// deterministic pseudo-spread key that scatters ties instead of clustering
// them.
func (ep *EnemyPlacer) prioritize(candidates []EnemyCandidate, spawn, goal grid.Position) {
	span := goal.X
	if spawn.X > span {
		span = spawn.X
	}
	if span < 1 {
		span = 1
	}
	zoneOf := func(p grid.Position) int {
		z := p.X * 3 / (span + 1)
		if z > 2 {
			z = 2
		}
		return z
	}
	spread := func(p grid.Position) int {
		return (p.X*31 + p.Y*17) % 7
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidatePriority[candidates[i].Type], candidatePriority[candidates[j].Type]
		if pi != pj {
			return pi < pj
		}
		zi, zj := zoneOf(candidates[i].Pos), zoneOf(candidates[j].Pos)
		if zi != zj {
			return zi < zj
		}
		return spread(candidates[i].Pos) < spread(candidates[j].Pos)
	})
}

// partition splits priority-sorted candidates into left/middle/right thirds
// of the level width, preserving order within each zone.
func (ep *EnemyPlacer) partition(candidates []EnemyCandidate, levelWidth int) [3][]EnemyCandidate {
	var zones [3][]EnemyCandidate
	third := levelWidth / 3
	if third < 1 {
		third = 1
	}
	for _, c := range candidates {
		z := c.Pos.X / third
		if z > 2 {
			z = 2
		}
		zones[z] = append(zones[z], c)
	}
	return zones
}

// boundingBox is the axis-aligned rectangle spanned by two positions.
func boundingBox(a, b grid.Position) grid.Rect {
	lo := grid.Position{X: min(a.X, b.X), Y: min(a.Y, b.Y)}
	hi := grid.Position{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
	return grid.Rect{Lo: lo, Hi: hi}
}
