package physics

import (
	"fmt"

	"github.com/mfeld/cavegen/pkg/grid"
)

// Unlimited disables the move cap on a reachability analysis.
const Unlimited = -1

// Analyzer computes which tiles a platformer character can reach on a grid.
// The movement model is a BFS over tile states: one move is a ballistic jump
// initiated from a grounded tile, optionally followed by a triangular fall
// with lateral drift. Tiles visited during a fall cost nothing beyond the
// jump that launched it.
//
// The analysis is RNG-free and fully deterministic: target enumeration uses
// a fixed (dy outer, dx inner) order and fall expansion is a fixed-order BFS.
type Analyzer struct {
	consts Constants
}

// NewAnalyzer creates an analyzer for the given physics constants.
func NewAnalyzer(c Constants) *Analyzer {
	return &Analyzer{consts: c}
}

// Constants returns the physics constants the analyzer was built with.
func (a *Analyzer) Constants() Constants {
	return a.consts
}

// OnSolidGround reports whether p is a floor tile resting on a wall.
// Bottom-row tiles are never grounded: their support would be outside the
// grid.
func (a *Analyzer) OnSolidGround(g *grid.Grid, p grid.Position) bool {
	if !g.InBounds(p.X, p.Y) || g.AtPos(p) != grid.Floor {
		return false
	}
	if p.Y+1 >= g.Height() {
		return false
	}
	return g.At(p.X, p.Y+1) == grid.Wall
}

// ReachableByJump reports whether a single jump from s can arrive at e.
// The start must be grounded; the horizontal distance must fit within the
// maximum jump distance; upward displacement must fit within the maximum
// jump height (downward displacement is unbounded here because falls handle
// it); and no wall may sit strictly between s and e on the Bresenham segment.
func (a *Analyzer) ReachableByJump(g *grid.Grid, s, e grid.Position) bool {
	if !g.InBounds(s.X, s.Y) || !g.InBounds(e.X, e.Y) {
		return false
	}
	if !a.OnSolidGround(g, s) {
		return false
	}
	if g.AtPos(e) != grid.Floor {
		return false
	}

	dx := abs(e.X - s.X)
	dy := e.Y - s.Y // positive = downward

	if dx*a.consts.TileSize > a.consts.MaxJumpPixels() {
		return false
	}
	if float64(dy*a.consts.TileSize) < -a.consts.MaxJumpHeightPixels() {
		return false
	}
	return !a.segmentBlocked(g, s, e)
}

// segmentBlocked walks the Bresenham line from s to e and reports whether
// any tile strictly between the endpoints is wall.
func (a *Analyzer) segmentBlocked(g *grid.Grid, s, e grid.Position) bool {
	x0, y0 := s.X, s.Y
	x1, y1 := e.X, e.Y

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		if x == x1 && y == y1 {
			return false
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
		if x == x1 && y == y1 {
			return false
		}
		if g.At(x, y) == grid.Wall {
			return true
		}
	}
}

// FallFrom returns every tile the player can occupy while falling from s,
// including s itself. The fall widens by at most one tile of lateral drift
// per row, producing a downward triangle; a branch stops expanding once the
// tile below it is wall or off the grid (the player has landed or left the
// map).
func (a *Analyzer) FallFrom(g *grid.Grid, s grid.Position) []grid.Position {
	if !g.InBounds(s.X, s.Y) {
		panic(fmt.Sprintf("physics: FallFrom start (%d, %d) out of bounds", s.X, s.Y))
	}

	visited := map[grid.Position]bool{s: true}
	path := []grid.Position{s}
	frontier := []grid.Position{s}

	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]

		for _, dx := range [3]int{-1, 0, 1} {
			n := grid.Position{X: p.X + dx, Y: p.Y + 1}
			if !g.InBounds(n.X, n.Y) || g.AtPos(n) != grid.Floor {
				continue
			}
			if visited[n] {
				continue
			}
			visited[n] = true
			path = append(path, n)
			if g.IsFloor(n.X, n.Y+1) {
				// Still airborne: keep falling and drifting.
				frontier = append(frontier, n)
			}
		}
	}
	return path
}

// ReachableFrom computes every tile reachable from start within maxMoves
// jumps (Unlimited lifts the cap). The start is first dropped straight down,
// without drift and without spending a move, until it rests on solid ground
// or the grid bottom. Walking is not a separate primitive: a single-tile
// lateral jump covers it.
//
// It panics if start is out of bounds or not a floor tile; feeding the
// analyzer a wall is a programmer error.
func (a *Analyzer) ReachableFrom(g *grid.Grid, start grid.Position, maxMoves int) *ReachSet {
	if !g.InBounds(start.X, start.Y) {
		panic(fmt.Sprintf("physics: ReachableFrom start (%d, %d) out of bounds", start.X, start.Y))
	}
	if g.AtPos(start) != grid.Floor {
		panic(fmt.Sprintf("physics: ReachableFrom start (%d, %d) is not a floor tile", start.X, start.Y))
	}

	set := newReachSet()
	entry := a.dropStraight(g, start)
	set.add(entry, 0)

	queue := []grid.Position{entry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		curMoves, _ := set.Moves(cur)
		if maxMoves != Unlimited && curMoves >= maxMoves {
			continue
		}
		a.expand(g, cur, curMoves, set, &queue)
	}
	return set
}

// expand enumerates all jump targets of cur and folds their fall paths into
// the set at cost curMoves+1.
func (a *Analyzer) expand(g *grid.Grid, cur grid.Position, curMoves int, set *ReachSet, queue *[]grid.Position) {
	if !a.OnSolidGround(g, cur) {
		// Airborne states cannot initiate jumps; they were already folded
		// into their launching move's fall path.
		return
	}

	maxDX := a.consts.MaxJumpTiles()
	maxDY := a.consts.MaxJumpHeightTiles()

	for dy := -maxDY; dy <= maxDY; dy++ {
		for dx := -maxDX; dx <= maxDX; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			target := grid.Position{X: cur.X + dx, Y: cur.Y + dy}
			if !g.InBounds(target.X, target.Y) {
				continue
			}
			if !a.ReachableByJump(g, cur, target) {
				continue
			}
			if set.add(target, curMoves+1) {
				*queue = append(*queue, target)
			}
			for _, p := range a.FallFrom(g, target) {
				if set.add(p, curMoves+1) {
					*queue = append(*queue, p)
				}
			}
		}
	}
}

// dropStraight lowers p until it rests on solid ground or the bottom row.
// No lateral drift and no move cost; this mirrors how the engine settles the
// player at level start.
func (a *Analyzer) dropStraight(g *grid.Grid, p grid.Position) grid.Position {
	for p.Y+1 < g.Height() && g.At(p.X, p.Y+1) == grid.Floor {
		p.Y++
	}
	return p
}

// Unreachable returns every floor tile that no grounded start can reach,
// in row-major scan order. The analysis seeds a multi-source BFS from every
// grounded floor tile; if the grid has none, it falls back to the floor
// tiles of the topmost row that contains any.
func (a *Analyzer) Unreachable(g *grid.Grid) []grid.Position {
	reached := a.reachableFromAllGround(g)

	var out []grid.Position
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := grid.Position{X: x, Y: y}
			if g.AtPos(p) == grid.Floor && !reached.Contains(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// reachableFromAllGround runs the jump+fall expansion from every grounded
// floor tile at once.
func (a *Analyzer) reachableFromAllGround(g *grid.Grid) *ReachSet {
	set := newReachSet()
	var queue []grid.Position

	seed := func(p grid.Position) {
		if set.add(p, 0) {
			queue = append(queue, p)
		}
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := grid.Position{X: x, Y: y}
			if a.OnSolidGround(g, p) {
				seed(p)
			}
		}
	}

	if len(queue) == 0 {
		// No grounded tile anywhere: seed the topmost floor row instead.
	topRow:
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				if g.At(x, y) == grid.Floor {
					for xx := 0; xx < g.Width(); xx++ {
						if g.At(xx, y) == grid.Floor {
							seed(grid.Position{X: xx, Y: y})
						}
					}
					break topRow
				}
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curMoves, _ := set.Moves(cur)
		a.expand(g, cur, curMoves, set, &queue)
	}
	return set
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
