package physics

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/mfeld/cavegen/pkg/grid"
)

// randomGrid draws a small random grid with a closed border and at least one
// grounded floor tile to start from.
func randomGrid(t *rapid.T) (*grid.Grid, grid.Position) {
	width := rapid.IntRange(6, 24).Draw(t, "width")
	height := rapid.IntRange(6, 16).Draw(t, "height")

	g := grid.New(width, height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			if rapid.Float64().Draw(t, "cell") < 0.4 {
				g.Set(x, y, grid.Wall)
			}
		}
	}
	g.CloseBorder()

	// Force a grounded start tile.
	sx := rapid.IntRange(1, width-2).Draw(t, "sx")
	sy := rapid.IntRange(1, height-2).Draw(t, "sy")
	g.Set(sx, sy, grid.Floor)
	if sy+1 < height {
		g.Set(sx, sy+1, grid.Wall)
	}
	return g, grid.Position{X: sx, Y: sy}
}

// TestReachableFrom_OnlyFloorProperty: every returned tile is floor.
func TestReachableFrom_OnlyFloorProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g, start := randomGrid(rt)
		a := NewAnalyzer(DefaultConstants())

		set := a.ReachableFrom(g, start, Unlimited)
		for _, p := range set.Tiles() {
			if g.AtPos(p) != grid.Floor {
				rt.Fatalf("reach set contains non-floor tile %+v", p)
			}
		}
	})
}

// TestReachableFrom_StartAlwaysIncluded: the dropped start is in the result
// at move count zero.
func TestReachableFrom_StartAlwaysIncluded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g, start := randomGrid(rt)
		a := NewAnalyzer(DefaultConstants())

		set := a.ReachableFrom(g, start, Unlimited)
		if set.Count() == 0 {
			rt.Fatal("reach set is empty")
		}
		first := set.Tiles()[0]
		if moves, _ := set.Moves(first); moves != 0 {
			rt.Fatalf("first tile %+v has move count %d, want 0", first, moves)
		}
		if first.X != start.X {
			rt.Fatalf("straight drop changed column: start %+v, entry %+v", start, first)
		}
	})
}

// TestReachableFrom_MonotoneInMoves: maxMoves=k+1 yields a superset of
// maxMoves=k.
func TestReachableFrom_MonotoneInMoves(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g, start := randomGrid(rt)
		a := NewAnalyzer(DefaultConstants())
		k := rapid.IntRange(0, 4).Draw(rt, "k")

		smaller := a.ReachableFrom(g, start, k)
		larger := a.ReachableFrom(g, start, k+1)
		for _, p := range smaller.Tiles() {
			if !larger.Contains(p) {
				rt.Fatalf("maxMoves=%d lost tile %+v present at maxMoves=%d", k+1, p, k)
			}
		}
	})
}

// TestReachableFrom_Deterministic: two runs produce identical tile orders.
func TestReachableFrom_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g, start := randomGrid(rt)
		a := NewAnalyzer(DefaultConstants())

		first := a.ReachableFrom(g, start, Unlimited).Tiles()
		second := a.ReachableFrom(g, start, Unlimited).Tiles()
		if len(first) != len(second) {
			rt.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				rt.Fatalf("insertion order diverged at %d: %+v vs %+v", i, first[i], second[i])
			}
		}
	})
}
