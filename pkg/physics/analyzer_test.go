package physics

import (
	"testing"

	"github.com/mfeld/cavegen/pkg/grid"
)

func defaultAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultConstants())
}

func TestConstants_DerivedLimits(t *testing.T) {
	c := DefaultConstants()

	if got := c.MaxJumpPixels(); got != 136 {
		t.Errorf("MaxJumpPixels() = %d, want 136", got)
	}
	if got := c.MaxJumpTiles(); got != 2 {
		t.Errorf("MaxJumpTiles() = %d, want 2", got)
	}
	if got := c.MaxJumpHeightPixels(); got != 240 {
		t.Errorf("MaxJumpHeightPixels() = %f, want 240", got)
	}
	if got := c.MaxJumpHeightTiles(); got != 3 {
		t.Errorf("MaxJumpHeightTiles() = %d, want 3", got)
	}
}

func TestOnSolidGround(t *testing.T) {
	g := grid.Parse(`
####
#..#
##.#
####
`)
	a := defaultAnalyzer()

	tests := []struct {
		name string
		p    grid.Position
		want bool
	}{
		{"floor over wall", grid.Position{X: 1, Y: 1}, true},
		{"floor over floor", grid.Position{X: 2, Y: 1}, false},
		{"wall tile", grid.Position{X: 0, Y: 0}, false},
		{"out of bounds", grid.Position{X: -1, Y: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.OnSolidGround(g, tt.p); got != tt.want {
				t.Errorf("OnSolidGround(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestOnSolidGround_BottomRowNeverGrounded(t *testing.T) {
	g := grid.Parse(`
###
...
`)
	a := defaultAnalyzer()
	for x := 0; x < 3; x++ {
		if a.OnSolidGround(g, grid.Position{X: x, Y: 1}) {
			t.Errorf("bottom-row tile (%d, 1) reported grounded", x)
		}
	}
}

// TestReachableByJump_WallOcclusion reproduces the corridor scenario: a wall
// tile strictly between start and target blocks the jump, an adjacent open
// tile does not.
func TestReachableByJump_WallOcclusion(t *testing.T) {
	g := grid.Parse(`
#######
#..#..#
#######
`)
	a := defaultAnalyzer()
	from := grid.Position{X: 2, Y: 1}

	if a.ReachableByJump(g, from, grid.Position{X: 4, Y: 1}) {
		t.Error("jump through the wall at (3,1) should be rejected")
	}
	if !a.ReachableByJump(g, from, grid.Position{X: 1, Y: 1}) {
		t.Error("jump to the open neighbor (1,1) should be accepted")
	}
}

// TestReachableByJump_HorizontalBoundary checks the documented distance
// boundary: 2 tiles (128 px) fits inside the 136 px budget, 3 tiles (192 px)
// does not.
func TestReachableByJump_HorizontalBoundary(t *testing.T) {
	g := grid.Parse(`
######
......
######
`)
	a := defaultAnalyzer()
	from := grid.Position{X: 1, Y: 1}

	if !a.ReachableByJump(g, from, grid.Position{X: 3, Y: 1}) {
		t.Error("2-tile horizontal jump should be accepted")
	}
	if a.ReachableByJump(g, from, grid.Position{X: 4, Y: 1}) {
		t.Error("3-tile horizontal jump should be rejected")
	}
}

// TestReachableByJump_VerticalBoundary checks the height boundary: 3 tiles
// up (192 px) fits inside the 240 px budget, 4 tiles (256 px) does not.
func TestReachableByJump_VerticalBoundary(t *testing.T) {
	g := grid.Parse(`
##
.#
.#
.#
.#
.#
##
`)
	a := defaultAnalyzer()
	from := grid.Position{X: 0, Y: 5}

	if !a.ReachableByJump(g, from, grid.Position{X: 0, Y: 2}) {
		t.Error("3-tile upward jump should be accepted")
	}
	if a.ReachableByJump(g, from, grid.Position{X: 0, Y: 1}) {
		t.Error("4-tile upward jump should be rejected")
	}
}

func TestReachableByJump_RequiresGroundedStart(t *testing.T) {
	g := grid.Parse(`
####
#..#
#..#
####
`)
	a := defaultAnalyzer()
	// (1,1) floats over floor: not grounded, no jumps.
	if a.ReachableByJump(g, grid.Position{X: 1, Y: 1}, grid.Position{X: 2, Y: 1}) {
		t.Error("airborne start should reject all jumps")
	}
	// (1,2) rests on the border wall: grounded.
	if !a.ReachableByJump(g, grid.Position{X: 1, Y: 2}, grid.Position{X: 2, Y: 2}) {
		t.Error("grounded start should accept the adjacent jump")
	}
}

// TestFallFrom_TriangularDrift verifies the fall widens sideways while
// descending an open shaft: the bottom row must cover more than the start
// column.
func TestFallFrom_TriangularDrift(t *testing.T) {
	g := grid.Parse(`
##########
#........#
#........#
#........#
#........#
#........#
#........#
`)
	a := defaultAnalyzer()
	path := a.FallFrom(g, grid.Position{X: 2, Y: 1})

	got := make(map[grid.Position]bool, len(path))
	for _, p := range path {
		got[p] = true
	}

	if !got[grid.Position{X: 2, Y: 1}] {
		t.Error("fall path must include the start tile")
	}
	for _, want := range []grid.Position{{X: 1, Y: 6}, {X: 2, Y: 6}, {X: 3, Y: 6}} {
		if !got[want] {
			t.Errorf("fall path missing %+v: drift should widen the bottom row", want)
		}
	}
}

func TestFallFrom_LandsOnWall(t *testing.T) {
	g := grid.Parse(`
#####
#...#
#...#
#####
`)
	a := defaultAnalyzer()
	path := a.FallFrom(g, grid.Position{X: 2, Y: 1})

	for _, p := range path {
		if g.AtPos(p) != grid.Floor {
			t.Errorf("fall path visited non-floor tile %+v", p)
		}
	}
	got := make(map[grid.Position]bool, len(path))
	for _, p := range path {
		got[p] = true
	}
	if !got[grid.Position{X: 2, Y: 2}] {
		t.Error("fall should descend one row onto the landing")
	}
}

func TestReachableFrom_StartDropsToGround(t *testing.T) {
	g := grid.Parse(`
#####
#.###
#.###
#.###
#####
`)
	a := defaultAnalyzer()
	set := a.ReachableFrom(g, grid.Position{X: 1, Y: 1}, Unlimited)

	landing := grid.Position{X: 1, Y: 3}
	moves, ok := set.Moves(landing)
	if !ok {
		t.Fatal("landing tile missing from reach set")
	}
	if moves != 0 {
		t.Errorf("landing move count = %d, want 0 (initial drop is free)", moves)
	}
	if len(set.Tiles()) == 0 || set.Tiles()[0] != landing {
		t.Error("landing should be the first tile in insertion order")
	}
}

func TestReachableFrom_OnlyFloorTiles(t *testing.T) {
	g := grid.Parse(`
########
#...#..#
#.###..#
#......#
########
`)
	a := defaultAnalyzer()
	set := a.ReachableFrom(g, grid.Position{X: 1, Y: 1}, Unlimited)

	for _, p := range set.Tiles() {
		if g.AtPos(p) != grid.Floor {
			t.Errorf("reach set contains non-floor tile %+v", p)
		}
	}
	if !set.Contains(grid.Position{X: 1, Y: 3}) {
		t.Error("tile below the start drop should be reachable")
	}
}

// TestReachableFrom_MoveCountSupersets verifies the monotonicity law:
// raising maxMoves never loses tiles.
func TestReachableFrom_MoveCountSupersets(t *testing.T) {
	g := grid.Parse(`
##########
#........#
#..##....#
#........#
##########
`)
	a := defaultAnalyzer()
	start := grid.Position{X: 1, Y: 3}

	prev := a.ReachableFrom(g, start, 0)
	for k := 1; k <= 4; k++ {
		cur := a.ReachableFrom(g, start, k)
		for _, p := range prev.Tiles() {
			if !cur.Contains(p) {
				t.Fatalf("maxMoves=%d lost tile %+v present at maxMoves=%d", k, p, k-1)
			}
		}
		prev = cur
	}
}

func TestReachableFrom_PanicsOnWallStart(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("wall start did not panic")
		}
	}()
	g := grid.Parse(`
###
#.#
###
`)
	defaultAnalyzer().ReachableFrom(g, grid.Position{X: 0, Y: 0}, Unlimited)
}

func TestUnreachable_SealedPocket(t *testing.T) {
	// The right pocket is sealed off by a full-height wall: no jump or fall
	// can enter it.
	g := grid.Parse(`
########
#..##..#
#..##..#
########
`)
	a := defaultAnalyzer()
	unreachable := a.Unreachable(g)

	if len(unreachable) != 0 {
		// Both pockets are grounded, and the multi-source analysis seeds
		// every grounded tile, so nothing is unreachable here.
		t.Errorf("unreachable = %v, want none (both pockets are seeded)", unreachable)
	}
}

func TestUnreachable_TallChimney(t *testing.T) {
	// A sealed 1-wide chimney: the bottom tile is grounded and can jump at
	// most 3 tiles up, so everything higher stays unreachable.
	g := grid.Parse(`
###
#.#
#.#
#.#
#.#
#.#
#.#
###
`)
	a := defaultAnalyzer()
	unreachable := a.Unreachable(g)

	want := map[grid.Position]bool{
		{X: 1, Y: 1}: true,
		{X: 1, Y: 2}: true,
	}
	got := make(map[grid.Position]bool)
	for _, p := range unreachable {
		got[p] = true
	}
	for p := range want {
		if !got[p] {
			t.Errorf("chimney tile %+v should be unreachable", p)
		}
	}
	for p := range got {
		if !want[p] {
			t.Errorf("tile %+v reported unreachable unexpectedly", p)
		}
	}
}
