package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/level"
)

// LoadJSON reconstructs a Level from exported JSON bytes. The inverse of
// ExportJSON up to field ordering: ExportJSON(LoadJSON(b)) is byte-identical
// for bytes this package produced.
func LoadJSON(data []byte) (*level.Level, error) {
	var model levelJSON
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("export: parsing level JSON: %w", err)
	}

	if model.Width <= 0 || model.Height <= 0 {
		return nil, fmt.Errorf("export: invalid dimensions %dx%d", model.Width, model.Height)
	}
	if len(model.Grid) != model.Height {
		return nil, fmt.Errorf("export: grid has %d rows, header says %d", len(model.Grid), model.Height)
	}

	g := grid.New(model.Width, model.Height)
	for y, row := range model.Grid {
		if len(row) != model.Width {
			return nil, fmt.Errorf("export: grid row %d has %d cells, header says %d", y, len(row), model.Width)
		}
		for x, cell := range row {
			switch cell {
			case int(grid.Floor):
				// New grids start as floor.
			case int(grid.Wall):
				g.Set(x, y, grid.Wall)
			default:
				return nil, fmt.Errorf("export: grid cell (%d, %d) has value %d, want 0 or 1", x, y, cell)
			}
		}
	}

	return &level.Level{
		Width:     model.Width,
		Height:    model.Height,
		Seed:      model.Seed,
		Grid:      g,
		Spawn:     model.Spawn,
		Goal:      model.Goal,
		Coins:     model.Coins,
		Enemies:   model.Enemies,
		Platforms: model.Platforms,
		Warnings:  model.Warnings,
		Stats:     model.Stats,
	}, nil
}

// LoadJSONFromFile reads and reconstructs a Level from a JSON file.
func LoadJSONFromFile(filepath string) (*level.Level, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("export: reading level file: %w", err)
	}
	return LoadJSON(data)
}
