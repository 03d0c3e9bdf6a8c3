package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/level"
	"github.com/mfeld/cavegen/pkg/placement"
)

// levelJSON is the on-disk shape of a level. The grid is emitted as rows of
// small ints (0 = floor, 1 = wall) so consumers in any language can index
// tiles without decoding base64.
type levelJSON struct {
	Width     int                  `json:"width"`
	Height    int                  `json:"height"`
	Seed      string               `json:"seed"`
	TileSize  int                  `json:"tileSize"`
	Grid      [][]int              `json:"grid"`
	Spawn     grid.Position        `json:"spawn"`
	Goal      grid.Position        `json:"goal"`
	Coins     []grid.Position      `json:"coins"`
	Enemies   []placement.Enemy    `json:"enemies"`
	Platforms []placement.Platform `json:"platforms"`
	Warnings  []string             `json:"warnings,omitempty"`
	Stats     level.Stats          `json:"stats"`
}

func toJSONModel(l *level.Level) (*levelJSON, error) {
	if l == nil || l.Grid == nil {
		return nil, fmt.Errorf("export: level and grid must be non-nil")
	}

	rows := make([][]int, l.Grid.Height())
	for y := 0; y < l.Grid.Height(); y++ {
		row := make([]int, l.Grid.Width())
		for x := 0; x < l.Grid.Width(); x++ {
			row[x] = int(l.Grid.At(x, y))
		}
		rows[y] = row
	}

	coins := l.Coins
	if coins == nil {
		coins = []grid.Position{}
	}
	enemies := l.Enemies
	if enemies == nil {
		enemies = []placement.Enemy{}
	}
	platforms := l.Platforms
	if platforms == nil {
		platforms = []placement.Platform{}
	}

	return &levelJSON{
		Width:     l.Width,
		Height:    l.Height,
		Seed:      l.Seed,
		TileSize:  grid.TileSize,
		Grid:      rows,
		Spawn:     l.Spawn,
		Goal:      l.Goal,
		Coins:     coins,
		Enemies:   enemies,
		Platforms: platforms,
		Warnings:  l.Warnings,
		Stats:     l.Stats,
	}, nil
}

// ExportJSON serializes the level to JSON with 2-space indentation.
func ExportJSON(l *level.Level) ([]byte, error) {
	model, err := toJSONModel(l)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(model, "", "  ")
}

// ExportJSONCompact serializes the level to compact JSON suitable for
// storage or transmission.
func ExportJSONCompact(l *level.Level) ([]byte, error) {
	model, err := toJSONModel(l)
	if err != nil {
		return nil, err
	}
	return json.Marshal(model)
}

// SaveJSONToFile exports the level to a JSON file with indentation.
// The file is created with 0644 permissions.
func SaveJSONToFile(l *level.Level, filepath string) error {
	data, err := ExportJSON(l)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
