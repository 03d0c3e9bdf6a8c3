package level

import (
	"fmt"
	"strings"

	"github.com/mfeld/cavegen/pkg/grid"
)

// RenderText creates a text representation of the level for debugging:
// a stats header followed by the tile map with entities overlaid.
//
//	P  spawn       G  goal      o  coin
//	e  enemy       =  platform  #  wall
func (l *Level) RenderText() string {
	if l == nil || l.Grid == nil {
		return "No level data available"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Level %dx%d (seed %q)\n", l.Width, l.Height, l.Seed))
	sb.WriteString(fmt.Sprintf("  floor: %d  reachable: %d (%.1f%%)  platforms: %d  coins: %d  enemies: %d\n",
		l.Stats.FloorTiles, l.Stats.ReachableTiles, l.Stats.ReachableFraction*100,
		len(l.Platforms), len(l.Coins), len(l.Enemies)))
	for _, w := range l.Warnings {
		sb.WriteString(fmt.Sprintf("  warning: %s\n", w))
	}
	sb.WriteString("\n")

	overlay := make(map[grid.Position]byte)
	for _, p := range l.Platforms {
		for _, t := range p.OccupiedTiles() {
			overlay[t] = '='
		}
	}
	for _, c := range l.Coins {
		overlay[c] = 'o'
	}
	for _, e := range l.Enemies {
		overlay[grid.Position{X: e.X, Y: e.Y}] = 'e'
	}
	overlay[l.Goal] = 'G'
	overlay[l.Spawn] = 'P'

	for y := 0; y < l.Grid.Height(); y++ {
		for x := 0; x < l.Grid.Width(); x++ {
			if ch, ok := overlay[grid.Position{X: x, Y: y}]; ok {
				sb.WriteByte(ch)
				continue
			}
			if l.Grid.At(x, y) == grid.Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
