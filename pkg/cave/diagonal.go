package cave

import "github.com/mfeld/cavegen/pkg/grid"

// DiagonalFault is an impassable diagonal step: a floor tile whose diagonal
// neighbor is floor while both tiles between them are wall. An axis-aligned
// mover cannot squeeze through the corner.
type DiagonalFault struct {
	// At is the floor tile where the fault was detected.
	At grid.Position

	// Diagonal is the offending diagonal neighbor.
	Diagonal grid.Position

	// Blockers are the two wall tiles between At and Diagonal.
	Blockers [2]grid.Position
}

// DiagonalReport summarizes a repair pass.
type DiagonalReport struct {
	IssuesFound  int `json:"issuesFound"`
	FixesApplied int `json:"fixesApplied"`
}

var diagonalOffsets = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// DetectDiagonalFaults scans g in row-major order and returns at most one
// fault per offending floor tile. The first faulty diagonal in offset order
// wins, which keeps reports deterministic.
func DetectDiagonalFaults(g *grid.Grid) []DiagonalFault {
	var faults []DiagonalFault
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.At(x, y) != grid.Floor {
				continue
			}
			for _, d := range diagonalOffsets {
				dx, dy := d[0], d[1]
				if !g.InBounds(x+dx, y+dy) || g.At(x+dx, y+dy) != grid.Floor {
					continue
				}
				if g.At(x+dx, y) == grid.Wall && g.At(x, y+dy) == grid.Wall {
					faults = append(faults, DiagonalFault{
						At:       grid.Position{X: x, Y: y},
						Diagonal: grid.Position{X: x + dx, Y: y + dy},
						Blockers: [2]grid.Position{
							{X: x + dx, Y: y},
							{X: x, Y: y + dy},
						},
					})
					break
				}
			}
		}
	}
	return faults
}

// FixDiagonalFaults repairs diagonal faults by carving the first blocking
// wall of each fault to floor, re-scanning until the grid is clean. Blockers
// on the border are skipped in favor of the second blocker; if both sit on
// the border the fault is left in place (the border stays closed).
//
// Running the pass on an already-repaired grid reports zero issues and
// applies zero fixes.
func FixDiagonalFaults(g *grid.Grid) DiagonalReport {
	report := DiagonalReport{}
	for {
		faults := DetectDiagonalFaults(g)
		if len(faults) == 0 {
			return report
		}
		report.IssuesFound += len(faults)
		fixedThisPass := 0
		for _, f := range faults {
			target, ok := carvableBlocker(g, f)
			if !ok {
				continue
			}
			if g.AtPos(target) != grid.Wall {
				// A previous fix in this pass already opened the corner.
				continue
			}
			g.SetPos(target, grid.Floor)
			report.FixesApplied++
			fixedThisPass++
		}
		if fixedThisPass == 0 {
			return report
		}
	}
}

func carvableBlocker(g *grid.Grid, f DiagonalFault) (grid.Position, bool) {
	for _, b := range f.Blockers {
		if b.X > 0 && b.X < g.Width()-1 && b.Y > 0 && b.Y < g.Height()-1 {
			return b, true
		}
	}
	return grid.Position{}, false
}
