package placement

import (
	"testing"

	"github.com/mfeld/cavegen/pkg/grid"
)

func TestEnemyAnalyzer_ChokePoints(t *testing.T) {
	g := grid.Parse(`
######
#....#
######
#....#
#....#
######
`)
	a := NewEnemyAnalyzer(DefaultEnemyAnalyzerConfig())

	chokes := a.ChokePoints(g)
	if len(chokes) != 4 {
		t.Fatalf("choke points = %d, want 4 (the 1-high corridor)", len(chokes))
	}
	for _, c := range chokes {
		if c.Pos.Y != 1 {
			t.Errorf("choke %+v outside the 1-high corridor", c.Pos)
		}
		if c.Type != CandidateChokePoint {
			t.Errorf("choke tagged %q", c.Type)
		}
	}
}

func TestEnemyAnalyzer_PatrolAreas(t *testing.T) {
	// Bottom run is 8 tiles of floor-over-wall; the 3-tile shelf is below
	// the minimum patrol length and must be ignored.
	g := grid.Parse(`
##########
#...#....#
#####....#
#........#
##########
`)
	cfg := DefaultEnemyAnalyzerConfig()
	cfg.MinPatrolArea = 5
	cfg.MaxPatrolArea = 20
	a := NewEnemyAnalyzer(cfg)

	patrols := a.PatrolAreas(g)
	if len(patrols) != 1 {
		t.Fatalf("patrol areas = %d, want 1: %+v", len(patrols), patrols)
	}
	p := patrols[0]
	if p.Pos.Y != 3 {
		t.Errorf("patrol center %+v not on the bottom run", p.Pos)
	}
	if p.Type != CandidatePatrol {
		t.Errorf("patrol tagged %q", p.Type)
	}
}

func TestEnemyAnalyzer_StrategicPositions(t *testing.T) {
	g := grid.Parse(`
####################
#..................#
#..................#
####################
`)
	cfg := DefaultEnemyAnalyzerConfig()
	cfg.StrategicDistance = 2
	cfg.GoalStrategicDistance = 2
	a := NewEnemyAnalyzer(cfg)

	coins := []grid.Position{{X: 3, Y: 1}}
	goal := grid.Position{X: 16, Y: 2}

	strategic := a.StrategicPositions(g, coins, goal)
	if len(strategic) == 0 {
		t.Fatal("expected strategic candidates near the coin and goal")
	}
	for _, s := range strategic {
		nearCoin := s.Pos.DistanceTo(coins[0]) <= cfg.StrategicDistance
		nearGoal := s.Pos.DistanceTo(goal) <= cfg.GoalStrategicDistance
		if !nearCoin && !nearGoal {
			t.Errorf("candidate %+v is near neither a coin nor the goal", s.Pos)
		}
		if s.Type != CandidateStrategic {
			t.Errorf("candidate tagged %q", s.Type)
		}
	}
}

func TestEnemyAnalyzer_PlatformPositions(t *testing.T) {
	g := grid.Parse(`
##########
#........#
#........#
#........#
##########
`)
	platform := Platform{Kind: PlatformMoving, X: 3, Y: 3, Width: 3, Direction: 1}
	for _, tile := range platform.OccupiedTiles() {
		g.SetPos(tile, grid.Wall)
	}

	a := NewEnemyAnalyzer(DefaultEnemyAnalyzerConfig())
	candidates := a.PlatformPositions(g, []Platform{platform})

	if len(candidates) != 3 {
		t.Fatalf("platform positions = %d, want 3", len(candidates))
	}
	for _, c := range candidates {
		if c.Pos.Y != 2 {
			t.Errorf("candidate %+v should stand on top of the platform", c.Pos)
		}
		if c.Type != CandidatePlatform {
			t.Errorf("candidate tagged %q", c.Type)
		}
	}
}

// TestEnemyPlacer_ZoneSpread places enemies in a wide 1-high corridor where
// every tile is a choke-point candidate and verifies each x-zone gets at
// least one enemy. Solvability filtering is off because the whole corridor
// lies inside the spawn-goal box.
func TestEnemyPlacer_ZoneSpread(t *testing.T) {
	width := 90
	g := grid.New(width, 3)
	g.Fill(grid.Wall)
	for x := 1; x < width-1; x++ {
		g.Set(x, 1, grid.Floor)
	}

	spawn := grid.Position{X: 1, Y: 1}
	goal := grid.Position{X: width - 2, Y: 1}

	cfg := EnemyPlacerConfig{
		MaxEnemies:           15,
		Density:              0.05,
		MinDistanceFromSpawn: 8,
		MinDistanceFromGoal:  5,
		PreserveSolvability:  false,
	}
	placer := NewEnemyPlacer(cfg, NewEnemyAnalyzer(DefaultEnemyAnalyzerConfig()))

	enemies := placer.Place(g, spawn, goal, nil, nil, testRNG("enemy-spread"))
	if len(enemies) == 0 {
		t.Fatal("expected enemies in a corridor full of candidates")
	}

	third := width / 3
	var zones [3]int
	for _, e := range enemies {
		z := e.X / third
		if z > 2 {
			z = 2
		}
		zones[z]++
	}
	for z, count := range zones {
		if count == 0 {
			t.Errorf("zone %d received no enemies: %+v", z, zones)
		}
	}
}

func TestEnemyPlacer_RespectsDistances(t *testing.T) {
	width := 60
	g := grid.New(width, 3)
	g.Fill(grid.Wall)
	for x := 1; x < width-1; x++ {
		g.Set(x, 1, grid.Floor)
	}

	spawn := grid.Position{X: 1, Y: 1}
	goal := grid.Position{X: width - 2, Y: 1}

	cfg := DefaultEnemyPlacerConfig()
	cfg.MaxEnemies = 10
	cfg.Density = 0.2
	cfg.PreserveSolvability = false
	placer := NewEnemyPlacer(cfg, NewEnemyAnalyzer(DefaultEnemyAnalyzerConfig()))

	enemies := placer.Place(g, spawn, goal, nil, nil, testRNG("enemy-dist"))
	seen := make(map[grid.Position]bool)
	for _, e := range enemies {
		pos := grid.Position{X: e.X, Y: e.Y}
		if pos.DistanceTo(spawn) < cfg.MinDistanceFromSpawn {
			t.Errorf("enemy %+v too close to spawn", pos)
		}
		if pos.DistanceTo(goal) < cfg.MinDistanceFromGoal {
			t.Errorf("enemy %+v too close to goal", pos)
		}
		if seen[pos] {
			t.Errorf("tile %+v used twice", pos)
		}
		seen[pos] = true

		if e.PatrolDistance < 50 || e.PatrolDistance > 499 {
			t.Errorf("patrol distance %d out of range", e.PatrolDistance)
		}
		if e.Speed < 10 || e.Speed > 199 {
			t.Errorf("speed %d out of range", e.Speed)
		}
		if e.Direction != 1 && e.Direction != -1 {
			t.Errorf("direction %d invalid", e.Direction)
		}
	}
}

// TestEnemyPlacer_SolvabilityFilter verifies choke-point candidates inside
// the spawn-goal bounding box are rejected when preservation is on. In a
// 1-high corridor every candidate is such a choke point, so nothing places.
func TestEnemyPlacer_SolvabilityFilter(t *testing.T) {
	width := 60
	g := grid.New(width, 3)
	g.Fill(grid.Wall)
	for x := 1; x < width-1; x++ {
		g.Set(x, 1, grid.Floor)
	}

	spawn := grid.Position{X: 1, Y: 1}
	goal := grid.Position{X: width - 2, Y: 1}

	cfg := DefaultEnemyPlacerConfig()
	cfg.MaxEnemies = 10
	cfg.Density = 0.2
	cfg.PreserveSolvability = true
	placer := NewEnemyPlacer(cfg, NewEnemyAnalyzer(DefaultEnemyAnalyzerConfig()))

	enemies := placer.Place(g, spawn, goal, nil, nil, testRNG("enemy-solv"))
	if len(enemies) != 0 {
		t.Errorf("placed %d enemies through the critical path, want 0", len(enemies))
	}
}

func TestEnemyPlacer_EmptyCandidates(t *testing.T) {
	g := grid.New(10, 10)
	g.Fill(grid.Wall)

	placer := NewEnemyPlacer(DefaultEnemyPlacerConfig(), NewEnemyAnalyzer(DefaultEnemyAnalyzerConfig()))
	enemies := placer.Place(g, grid.Position{X: 1, Y: 1}, grid.Position{X: 8, Y: 8}, nil, nil, testRNG("enemy-empty"))
	if len(enemies) != 0 {
		t.Errorf("placed %d enemies with no floor, want 0", len(enemies))
	}
}
