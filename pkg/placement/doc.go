// Package placement positions everything that lives in a finished cave:
// the player spawn, strategic platforms, the goal, coins, and enemies.
//
// Every placer consumes the reachability analysis from pkg/physics and a
// phase-named RNG, and each enumerates its candidates in a fixed order, so
// placement is byte-for-byte reproducible for a given seed and grid.
// Degenerate caves surface as typed errors; an exhausted placement budget
// does not (the placer returns whatever it accepted).
package placement
