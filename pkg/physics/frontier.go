package physics

import "github.com/mfeld/cavegen/pkg/grid"

var cardinalOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Frontier returns the reachable tiles that border unexplored territory: a
// tile of reach is frontier iff at least one of its in-bounds 4-neighbors is
// a floor tile outside the reachable set. Results follow the reach set's
// insertion order.
func Frontier(g *grid.Grid, reach *ReachSet) []grid.Position {
	var out []grid.Position
	for _, p := range reach.Tiles() {
		for _, d := range cardinalOffsets {
			n := grid.Position{X: p.X + d[0], Y: p.Y + d[1]}
			if !g.InBounds(n.X, n.Y) {
				continue
			}
			if g.AtPos(n) == grid.Floor && !reach.Contains(n) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// CriticalRing returns the reachable tiles one step inside the frontier:
// members of reach that are not themselves frontier but touch it through a
// 4-neighbor. These are the tiles where a single placed platform has the
// best chance of opening new territory.
func CriticalRing(g *grid.Grid, reach *ReachSet, frontier []grid.Position) []grid.Position {
	inFrontier := make(map[grid.Position]bool, len(frontier))
	for _, p := range frontier {
		inFrontier[p] = true
	}

	var out []grid.Position
	for _, p := range reach.Tiles() {
		if inFrontier[p] {
			continue
		}
		for _, d := range cardinalOffsets {
			n := grid.Position{X: p.X + d[0], Y: p.Y + d[1]}
			if inFrontier[n] {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
