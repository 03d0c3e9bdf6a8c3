package cave

import "github.com/mfeld/cavegen/pkg/grid"

// Automata smooths seeded wall noise into organic cave shapes with a
// birth/survival cellular automaton over the Moore neighborhood.
// Out-of-bounds neighbors count as walls, so caves close up against the map
// edge instead of bleeding off it.
type Automata struct {
	// Steps is the number of simulation iterations (3-6).
	Steps int

	// BirthThreshold is the wall-neighbor count at which a floor tile
	// becomes wall (4-6).
	BirthThreshold int

	// SurvivalThreshold is the wall-neighbor count a wall needs to survive
	// (2-4).
	SurvivalThreshold int
}

// DefaultAutomata returns the standard smoothing parameters.
func DefaultAutomata() Automata {
	return Automata{
		Steps:             4,
		BirthThreshold:    5,
		SurvivalThreshold: 4,
	}
}

// Run applies the automaton to g in place. Each iteration reads from a
// snapshot of the previous generation so updates within one step never see
// each other.
func (a Automata) Run(g *grid.Grid) {
	for i := 0; i < a.Steps; i++ {
		a.step(g)
	}
}

func (a Automata) step(g *grid.Grid) {
	prev := g.Clone()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			n := prev.CountMooreWalls(x, y)
			if prev.At(x, y) == grid.Wall {
				if n >= a.SurvivalThreshold {
					g.Set(x, y, grid.Wall)
				} else {
					g.Set(x, y, grid.Floor)
				}
			} else {
				if n >= a.BirthThreshold {
					g.Set(x, y, grid.Wall)
				} else {
					g.Set(x, y, grid.Floor)
				}
			}
		}
	}
}
