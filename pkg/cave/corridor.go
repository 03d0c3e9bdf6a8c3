package cave

import (
	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/rng"
)

// Carver connects disconnected floor regions with 1-tile rectilinear
// tunnels. M regions need M-1 corridors; the carver joins each region to its
// successor in label order, which keeps the result deterministic under a
// fixed RNG stream.
type Carver struct {
	r *rng.RNG
}

// NewCarver creates a corridor carver driven by the given RNG
// (conventionally the "corridor-seed" stream).
func NewCarver(r *rng.RNG) *Carver {
	return &Carver{r: r}
}

// Connect carves corridors until every floor region is 4-connected.
// It returns the number of corridors carved.
func (c *Carver) Connect(g *grid.Grid) int {
	regions := DetectRegions(g)
	all := regions.Regions()
	if len(all) <= 1 {
		return 0
	}

	carved := 0
	for i := 0; i+1 < len(all); i++ {
		from := c.representative(regions, all[i])
		to := c.representative(regions, all[i+1])
		carveL(g, from, to, c.r)
		carved++
	}
	g.CloseBorder()
	return carved
}

// representative picks a floor tile inside the region to anchor a corridor.
// The bounding-box center is preferred; when the center falls on a wall (a
// concave region), the scan falls back to the first tile of the region in
// row-major order.
func (c *Carver) representative(m *RegionMap, region Region) grid.Position {
	center := grid.Position{
		X: (region.Bounds.Lo.X + region.Bounds.Hi.X) / 2,
		Y: (region.Bounds.Lo.Y + region.Bounds.Hi.Y) / 2,
	}
	if m.LabelAt(center.X, center.Y) == region.Label {
		return center
	}
	for y := region.Bounds.Lo.Y; y <= region.Bounds.Hi.Y; y++ {
		for x := region.Bounds.Lo.X; x <= region.Bounds.Hi.X; x++ {
			if m.LabelAt(x, y) == region.Label {
				return grid.Position{X: x, Y: y}
			}
		}
	}
	// Unreachable: a detected region always has at least one tile.
	return center
}

// ThickenCorridors widens every 1-tile corridor until none remain. A floor
// tile walled on both vertical sides gets the tile above carved; one walled
// on both horizontal sides gets the tile to the left carved. The carve
// target clamps to 1 at the edge so the border stays closed. The up-or-left
// bias is part of the generator's observable output and must not change.
func ThickenCorridors(g *grid.Grid) int {
	total := 0
	for {
		changed := 0
		for y := 1; y < g.Height()-1; y++ {
			for x := 1; x < g.Width()-1; x++ {
				if g.At(x, y) != grid.Floor {
					continue
				}
				if g.At(x, y-1) == grid.Wall && g.At(x, y+1) == grid.Wall {
					ty := y - 1
					if ty < 1 {
						ty = 1
					}
					if g.At(x, ty) == grid.Wall {
						g.Set(x, ty, grid.Floor)
						changed++
					}
					continue
				}
				if g.At(x-1, y) == grid.Wall && g.At(x+1, y) == grid.Wall {
					tx := x - 1
					if tx < 1 {
						tx = 1
					}
					if g.At(tx, y) == grid.Wall {
						g.Set(tx, y, grid.Floor)
						changed++
					}
				}
			}
		}
		total += changed
		if changed == 0 {
			return total
		}
	}
}
