package cave

import (
	"sort"

	"github.com/mfeld/cavegen/pkg/grid"
)

// Label values reserved in a RegionMap label grid. Floor tiles get labels
// starting at FirstRegionLabel in scan order.
const (
	UnlabeledFloor   = 0
	WallSentinel     = 1
	FirstRegionLabel = 2
)

// Region describes one maximal 4-connected component of floor tiles.
type Region struct {
	// Label is the region's value in the label grid (>= FirstRegionLabel).
	Label int

	// Area is the number of tiles in the region.
	Area int

	// Bounds is the inclusive bounding box of the region.
	Bounds grid.Rect
}

// RegionMap is the result of flood-filling a grid's floor components.
type RegionMap struct {
	width  int
	height int
	labels []int
	byID   map[int]*Region
}

// LabelAt returns the label value at (x, y): WallSentinel for walls, a region
// label for floor. Out-of-bounds reads return WallSentinel.
func (m *RegionMap) LabelAt(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return WallSentinel
	}
	return m.labels[y*m.width+x]
}

// Region returns the metadata for a label, or nil for unknown labels.
func (m *RegionMap) Region(label int) *Region {
	return m.byID[label]
}

// Regions returns all regions ordered by ascending label, which matches the
// scan order they were discovered in.
func (m *RegionMap) Regions() []Region {
	out := make([]Region, 0, len(m.byID))
	for _, r := range m.byID {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Count returns the number of distinct floor regions.
func (m *RegionMap) Count() int {
	return len(m.byID)
}

// DetectRegions flood-fills every 4-connected floor component of g. Labels
// are assigned in row-major scan order starting at FirstRegionLabel, so the
// labeling is deterministic for a given grid.
func DetectRegions(g *grid.Grid) *RegionMap {
	m := &RegionMap{
		width:  g.Width(),
		height: g.Height(),
		labels: make([]int, g.Width()*g.Height()),
		byID:   make(map[int]*Region),
	}

	cells := g.Cells()
	for i := range m.labels {
		if cells[i] == grid.Wall {
			m.labels[i] = WallSentinel
		}
	}

	next := FirstRegionLabel
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if m.labels[y*m.width+x] != UnlabeledFloor {
				continue
			}
			m.fill(g, x, y, next)
			next++
		}
	}
	return m
}

// fill labels one component with BFS and records its metadata.
func (m *RegionMap) fill(g *grid.Grid, startX, startY, label int) {
	region := &Region{
		Label: label,
		Bounds: grid.Rect{
			Lo: grid.Position{X: startX, Y: startY},
			Hi: grid.Position{X: startX, Y: startY},
		},
	}
	m.byID[label] = region

	queue := []grid.Position{{X: startX, Y: startY}}
	m.labels[startY*m.width+startX] = label

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region.Area++

		if p.X < region.Bounds.Lo.X {
			region.Bounds.Lo.X = p.X
		}
		if p.Y < region.Bounds.Lo.Y {
			region.Bounds.Lo.Y = p.Y
		}
		if p.X > region.Bounds.Hi.X {
			region.Bounds.Hi.X = p.X
		}
		if p.Y > region.Bounds.Hi.Y {
			region.Bounds.Hi.Y = p.Y
		}

		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := p.X+d[0], p.Y+d[1]
			if nx < 0 || nx >= m.width || ny < 0 || ny >= m.height {
				continue
			}
			if m.labels[ny*m.width+nx] != UnlabeledFloor {
				continue
			}
			m.labels[ny*m.width+nx] = label
			queue = append(queue, grid.Position{X: nx, Y: ny})
		}
	}
}

// FillSmallRegions converts every region with area below minArea back to
// wall and returns the number of regions removed. Pruning runt pockets before
// corridor carving keeps the carver from tunneling to caves nobody could use.
func FillSmallRegions(g *grid.Grid, minArea int) int {
	if minArea <= 0 {
		return 0
	}
	m := DetectRegions(g)
	removed := 0
	for _, region := range m.Regions() {
		if region.Area >= minArea {
			continue
		}
		for y := region.Bounds.Lo.Y; y <= region.Bounds.Hi.Y; y++ {
			for x := region.Bounds.Lo.X; x <= region.Bounds.Hi.X; x++ {
				if m.LabelAt(x, y) == region.Label {
					g.Set(x, y, grid.Wall)
				}
			}
		}
		removed++
	}
	return removed
}
