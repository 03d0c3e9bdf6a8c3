package validation

import (
	"fmt"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/level"
	"github.com/mfeld/cavegen/pkg/physics"
)

// CheckResult is the outcome of a single invariant check.
type CheckResult struct {
	// Name identifies the invariant.
	Name string `json:"name"`

	// Satisfied reports whether the invariant holds.
	Satisfied bool `json:"satisfied"`

	// Details describes the first violation found, or summarizes success.
	Details string `json:"details"`
}

// Report is the full validation outcome for a generated level.
type Report struct {
	Passed  bool          `json:"passed"`
	Checks  []CheckResult `json:"checks"`
	Errors  []string      `json:"errors,omitempty"`
	Metrics Metrics       `json:"metrics"`
}

// Metrics summarizes measurable qualities of the level.
type Metrics struct {
	// ReachableFraction is reachable tiles over non-wall tiles, measured
	// from the spawn on the final grid.
	ReachableFraction float64 `json:"reachableFraction"`

	// FloorTiles and WallTiles partition the grid.
	FloorTiles int `json:"floorTiles"`
	WallTiles  int `json:"wallTiles"`

	// PlatformTiles is the total area stamped by platforms.
	PlatformTiles int `json:"platformTiles"`

	// SpawnGoalDistance is the Euclidean spawn-goal distance.
	SpawnGoalDistance float64 `json:"spawnGoalDistance"`
}

// Validator checks a generated level against the generator's invariants.
type Validator struct {
	phys *physics.Analyzer
}

// NewValidator creates a validator using the given physics constants.
func NewValidator(consts physics.Constants) *Validator {
	return &Validator{phys: physics.NewAnalyzer(consts)}
}

// Validate runs every invariant check and computes metrics. A level that
// fails any check gets Passed=false with the violations listed in Errors.
func (v *Validator) Validate(l *level.Level) (*Report, error) {
	if l == nil || l.Grid == nil {
		return nil, fmt.Errorf("validation: level and grid must be non-nil")
	}

	report := &Report{Passed: true}

	checks := []CheckResult{
		v.checkBorder(l),
		v.checkSpawn(l),
		v.checkGoal(l),
		v.checkCoins(l),
		v.checkPlatforms(l),
		v.checkReachability(l),
		v.checkEnemies(l),
	}
	for _, c := range checks {
		report.Checks = append(report.Checks, c)
		if !c.Satisfied {
			report.Passed = false
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", c.Name, c.Details))
		}
	}

	report.Metrics = v.computeMetrics(l)
	return report, nil
}

// checkBorder verifies every edge tile is wall.
func (v *Validator) checkBorder(l *level.Level) CheckResult {
	g := l.Grid
	for x := 0; x < g.Width(); x++ {
		if g.At(x, 0) != grid.Wall || g.At(x, g.Height()-1) != grid.Wall {
			return CheckResult{Name: "border", Details: fmt.Sprintf("open edge tile in column %d", x)}
		}
	}
	for y := 0; y < g.Height(); y++ {
		if g.At(0, y) != grid.Wall || g.At(g.Width()-1, y) != grid.Wall {
			return CheckResult{Name: "border", Details: fmt.Sprintf("open edge tile in row %d", y)}
		}
	}
	return CheckResult{Name: "border", Satisfied: true, Details: "all edge tiles are wall"}
}

// checkSpawn verifies the spawn sits on floor over wall.
func (v *Validator) checkSpawn(l *level.Level) CheckResult {
	s := l.Spawn
	if l.Grid.AtPos(s) != grid.Floor {
		return CheckResult{Name: "spawn", Details: fmt.Sprintf("spawn (%d, %d) is not floor", s.X, s.Y)}
	}
	if l.Grid.At(s.X, s.Y+1) != grid.Wall {
		return CheckResult{Name: "spawn", Details: fmt.Sprintf("spawn (%d, %d) has no ground below", s.X, s.Y)}
	}
	return CheckResult{Name: "spawn", Satisfied: true, Details: "spawn is grounded floor"}
}

// checkGoal verifies the goal sits on natural floor over wall and outside
// every platform.
func (v *Validator) checkGoal(l *level.Level) CheckResult {
	goal := l.Goal
	pre := l.PrePlatformGrid()
	if pre.AtPos(goal) != grid.Floor {
		return CheckResult{Name: "goal", Details: fmt.Sprintf("goal (%d, %d) is not natural floor", goal.X, goal.Y)}
	}
	if l.Grid.At(goal.X, goal.Y+1) != grid.Wall {
		return CheckResult{Name: "goal", Details: fmt.Sprintf("goal (%d, %d) has no ground below", goal.X, goal.Y)}
	}
	for _, p := range l.Platforms {
		for _, t := range p.OccupiedTiles() {
			if t == goal {
				return CheckResult{Name: "goal", Details: fmt.Sprintf("goal (%d, %d) inside a platform", goal.X, goal.Y)}
			}
		}
	}
	return CheckResult{Name: "goal", Satisfied: true, Details: "goal on natural floor, outside platforms"}
}

// checkCoins verifies every coin lies in a 3x3 open pocket on the
// platform-stamped grid the coin placer saw.
func (v *Validator) checkCoins(l *level.Level) CheckResult {
	for _, c := range l.Coins {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !l.Grid.InBounds(c.X+dx, c.Y+dy) || l.Grid.At(c.X+dx, c.Y+dy) != grid.Floor {
					return CheckResult{
						Name:    "coins",
						Details: fmt.Sprintf("coin (%d, %d) neighborhood blocked at (%d, %d)", c.X, c.Y, c.X+dx, c.Y+dy),
					}
				}
			}
		}
	}
	return CheckResult{Name: "coins", Satisfied: true, Details: fmt.Sprintf("%d coins in open pockets", len(l.Coins))}
}

// checkPlatforms verifies platform tiles are in bounds, stamped wall, and
// were natural floor before stamping.
func (v *Validator) checkPlatforms(l *level.Level) CheckResult {
	pre := l.PrePlatformGrid()
	for i, p := range l.Platforms {
		for _, t := range p.OccupiedTiles() {
			if !l.Grid.InBounds(t.X, t.Y) {
				return CheckResult{Name: "platforms", Details: fmt.Sprintf("platform %d tile (%d, %d) out of bounds", i, t.X, t.Y)}
			}
			if l.Grid.AtPos(t) != grid.Wall {
				return CheckResult{Name: "platforms", Details: fmt.Sprintf("platform %d tile (%d, %d) not stamped", i, t.X, t.Y)}
			}
			if pre.AtPos(t) != grid.Floor {
				return CheckResult{Name: "platforms", Details: fmt.Sprintf("platform %d tile (%d, %d) overlaps terrain wall", i, t.X, t.Y)}
			}
			if t == l.Spawn || (t.X == l.Spawn.X && t.Y == l.Spawn.Y-1) {
				return CheckResult{Name: "platforms", Details: fmt.Sprintf("platform %d covers the spawn body", i)}
			}
		}
	}
	return CheckResult{Name: "platforms", Satisfied: true, Details: fmt.Sprintf("%d platforms well-placed", len(l.Platforms))}
}

// checkReachability verifies the reachable set from spawn on the final grid
// is non-empty and includes the spawn.
func (v *Validator) checkReachability(l *level.Level) CheckResult {
	if l.Grid.AtPos(l.Spawn) != grid.Floor {
		return CheckResult{Name: "reachability", Details: "spawn is not floor"}
	}
	reach := v.phys.ReachableFrom(l.Grid, l.Spawn, physics.Unlimited)
	if reach.Count() == 0 {
		return CheckResult{Name: "reachability", Details: "empty reachable set"}
	}
	if !reach.Contains(l.Spawn) {
		return CheckResult{Name: "reachability", Details: "spawn not in its own reachable set"}
	}
	return CheckResult{Name: "reachability", Satisfied: true, Details: fmt.Sprintf("%d tiles reachable", reach.Count())}
}

// checkEnemies verifies every enemy sits on an in-bounds floor tile with
// parameters in their documented ranges.
func (v *Validator) checkEnemies(l *level.Level) CheckResult {
	for i, e := range l.Enemies {
		if !l.Grid.IsFloor(e.X, e.Y) {
			return CheckResult{Name: "enemies", Details: fmt.Sprintf("enemy %d at (%d, %d) not on floor", i, e.X, e.Y)}
		}
		if e.PatrolDistance < 50 || e.PatrolDistance > 500 {
			return CheckResult{Name: "enemies", Details: fmt.Sprintf("enemy %d patrol distance %d out of range", i, e.PatrolDistance)}
		}
		if e.Direction != 1 && e.Direction != -1 {
			return CheckResult{Name: "enemies", Details: fmt.Sprintf("enemy %d direction %d invalid", i, e.Direction)}
		}
		if e.Speed < 10 || e.Speed > 200 {
			return CheckResult{Name: "enemies", Details: fmt.Sprintf("enemy %d speed %d out of range", i, e.Speed)}
		}
	}
	return CheckResult{Name: "enemies", Satisfied: true, Details: fmt.Sprintf("%d enemies valid", len(l.Enemies))}
}

// computeMetrics fills the report metrics from the final grid.
func (v *Validator) computeMetrics(l *level.Level) Metrics {
	m := Metrics{
		FloorTiles:        l.Grid.FloorCount(),
		WallTiles:         l.Grid.WallCount(),
		SpawnGoalDistance: l.Spawn.DistanceTo(l.Goal),
	}
	for _, p := range l.Platforms {
		m.PlatformTiles += len(p.OccupiedTiles())
	}
	if l.Grid.AtPos(l.Spawn) == grid.Floor {
		reach := v.phys.ReachableFrom(l.Grid, l.Spawn, physics.Unlimited)
		nonWall := l.Grid.Width()*l.Grid.Height() - l.Grid.WallCount()
		if nonWall > 0 {
			m.ReachableFraction = float64(reach.Count()) / float64(nonWall)
		}
	}
	return m
}
