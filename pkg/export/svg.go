package export

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/level"
)

// SVGOptions configures SVG visualization export.
type SVGOptions struct {
	CellSize   int    // Pixel edge length per tile (default: 8)
	Margin     int    // Canvas margin in pixels (default: 16)
	ShowLegend bool   // Show legend explaining colors
	Title      string // Optional title for the visualization
}

// DefaultSVGOptions returns sensible default SVG export options.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		CellSize:   8,
		Margin:     16,
		ShowLegend: true,
		Title:      "Cave Level",
	}
}

// Tile and marker colors, chosen for contrast on the dark background.
const (
	svgBackground = "fill:#1a1a2e"
	svgWall       = "fill:#3d3d5c"
	svgFloor      = "fill:#e8e8f0"
	svgPlatform   = "fill:#c97b2d"
	svgSpawn      = "fill:#2dc96a"
	svgGoal       = "fill:#c92d3e"
	svgCoin       = "fill:#e8c52d"
	svgEnemy      = "fill:#8e2dc9"
)

// ExportSVG renders the level grid with spawn, goal, coins, enemies, and
// platforms overlaid.
func ExportSVG(l *level.Level, opts SVGOptions) ([]byte, error) {
	if l == nil || l.Grid == nil {
		return nil, fmt.Errorf("export: level and grid must be non-nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 8
	}
	if opts.Margin <= 0 {
		opts.Margin = 16
	}

	cell := opts.CellSize
	legendHeight := 0
	if opts.ShowLegend {
		legendHeight = 40
	}
	titleHeight := 0
	if opts.Title != "" {
		titleHeight = 24
	}
	width := l.Grid.Width()*cell + 2*opts.Margin
	height := l.Grid.Height()*cell + 2*opts.Margin + legendHeight + titleHeight

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, svgBackground)

	originY := opts.Margin + titleHeight
	if opts.Title != "" {
		canvas.Text(opts.Margin, opts.Margin+12, opts.Title, "fill:#e8e8f0;font-family:monospace;font-size:14px")
	}

	tileRect := func(p grid.Position, style string) {
		canvas.Rect(opts.Margin+p.X*cell, originY+p.Y*cell, cell, cell, style)
	}

	for y := 0; y < l.Grid.Height(); y++ {
		for x := 0; x < l.Grid.Width(); x++ {
			style := svgFloor
			if l.Grid.At(x, y) == grid.Wall {
				style = svgWall
			}
			tileRect(grid.Position{X: x, Y: y}, style)
		}
	}

	for _, p := range l.Platforms {
		for _, t := range p.OccupiedTiles() {
			tileRect(t, svgPlatform)
		}
	}
	for _, c := range l.Coins {
		canvas.Circle(opts.Margin+c.X*cell+cell/2, originY+c.Y*cell+cell/2, cell/3, svgCoin)
	}
	for _, e := range l.Enemies {
		tileRect(grid.Position{X: e.X, Y: e.Y}, svgEnemy)
	}
	tileRect(l.Spawn, svgSpawn)
	tileRect(l.Goal, svgGoal)

	if opts.ShowLegend {
		legendY := originY + l.Grid.Height()*cell + 16
		entries := []struct {
			label string
			style string
		}{
			{"spawn", svgSpawn},
			{"goal", svgGoal},
			{"coin", svgCoin},
			{"enemy", svgEnemy},
			{"platform", svgPlatform},
		}
		x := opts.Margin
		for _, e := range entries {
			canvas.Rect(x, legendY, 10, 10, e.style)
			canvas.Text(x+14, legendY+9, e.label, "fill:#e8e8f0;font-family:monospace;font-size:11px")
			x += 14 + 8*len(e.label) + 16
		}
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders the level to an SVG file.
// The file is created with 0644 permissions.
func SaveSVGToFile(l *level.Level, filepath string, opts SVGOptions) error {
	data, err := ExportSVG(l, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
