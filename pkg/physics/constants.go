package physics

import "github.com/mfeld/cavegen/pkg/grid"

// Constants describes the jump-physics model used for reachability analysis.
// The horizontal and vertical coefficients are tuned constants inherited from
// the runtime engine's movement code, not quantities derived from gravity.
type Constants struct {
	// JumpHeight is the engine's jump impulse in pixels.
	JumpHeight float64 `yaml:"jumpHeight"`

	// Gravity is the downward acceleration in pixels/s². It is carried for
	// exporters and future tuning; the tile-level model does not consume it.
	Gravity float64 `yaml:"gravity"`

	// TileSize is the pixel edge length of one tile.
	TileSize int `yaml:"tileSize"`

	// HorizontalCoeff scales JumpHeight into the maximum horizontal jump
	// distance in pixels.
	HorizontalCoeff float64 `yaml:"horizontalCoeff"`

	// VerticalCoeff scales JumpHeight into the maximum upward jump height
	// in pixels.
	VerticalCoeff float64 `yaml:"verticalCoeff"`
}

// DefaultConstants returns the engine defaults: 800 px jump, 980 px/s²
// gravity, 64 px tiles, and the 0.17/0.30 tuning coefficients.
func DefaultConstants() Constants {
	return Constants{
		JumpHeight:      800,
		Gravity:         980,
		TileSize:        grid.TileSize,
		HorizontalCoeff: 0.17,
		VerticalCoeff:   0.30,
	}
}

// MaxJumpPixels is the maximum horizontal jump distance in pixels.
func (c Constants) MaxJumpPixels() int {
	return int(c.JumpHeight * c.HorizontalCoeff)
}

// MaxJumpTiles is the maximum horizontal jump distance in whole tiles.
func (c Constants) MaxJumpTiles() int {
	return c.MaxJumpPixels() / c.TileSize
}

// MaxJumpHeightPixels is the maximum upward jump height in pixels.
func (c Constants) MaxJumpHeightPixels() float64 {
	return c.JumpHeight * c.VerticalCoeff
}

// MaxJumpHeightTiles is the maximum upward jump height in whole tiles.
func (c Constants) MaxJumpHeightTiles() int {
	return int(c.MaxJumpHeightPixels()) / c.TileSize
}
