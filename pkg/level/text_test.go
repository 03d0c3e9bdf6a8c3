package level

import (
	"strings"
	"testing"

	"github.com/mfeld/cavegen/pkg/grid"
	"github.com/mfeld/cavegen/pkg/placement"
)

func TestRenderText_Overlay(t *testing.T) {
	g := grid.Parse(`
########
#......#
#......#
########
`)
	lvl := &Level{
		Width:  8,
		Height: 4,
		Seed:   "text-test",
		Grid:   g,
		Spawn:  grid.Position{X: 1, Y: 2},
		Goal:   grid.Position{X: 6, Y: 2},
		Coins:  []grid.Position{{X: 3, Y: 1}},
		Enemies: []placement.Enemy{
			{X: 4, Y: 2, PatrolDistance: 100, Direction: 1, Speed: 50, PlacementType: placement.CandidatePatrol},
		},
		Platforms: []placement.Platform{
			{Kind: placement.PlatformFloating, X: 2, Y: 1, Width: 2, Direction: -1},
		},
	}

	text := lvl.RenderText()
	lines := strings.Split(text, "\n")

	// The map occupies the last four non-empty lines.
	var mapLines []string
	for _, line := range lines {
		if len(line) == 8 && (line[0] == '#' || line[0] == '.') {
			mapLines = append(mapLines, line)
		}
	}
	if len(mapLines) != 4 {
		t.Fatalf("found %d map lines, want 4:\n%s", len(mapLines), text)
	}

	if mapLines[2][1] != 'P' {
		t.Errorf("spawn marker missing: %q", mapLines[2])
	}
	if mapLines[2][6] != 'G' {
		t.Errorf("goal marker missing: %q", mapLines[2])
	}
	if mapLines[1][3] != 'o' {
		t.Errorf("coin marker missing: %q", mapLines[1])
	}
	if mapLines[2][4] != 'e' {
		t.Errorf("enemy marker missing: %q", mapLines[2])
	}
	if mapLines[1][2] != '=' || mapLines[1][1] != '=' {
		t.Errorf("platform markers missing: %q", mapLines[1])
	}
	if !strings.Contains(text, `seed "text-test"`) {
		t.Error("header missing the seed")
	}
}

func TestRenderText_NilSafety(t *testing.T) {
	var lvl *Level
	if got := lvl.RenderText(); got == "" {
		t.Error("nil level should render a placeholder message")
	}
}
