// Package cave synthesizes the raw tile terrain of a level.
//
// Synthesis runs as a fixed sequence of passes over one grid: seeding
// (uniform noise or a main-point graph), cellular-automata smoothing, small
// region pruning, region detection, corridor carving to connect every floor
// component, 1-tile corridor thickening, and diagonal-staircase repair. Each
// pass is deterministic given the grid and the phase RNG, and each leaves the
// border closed.
package cave
