// Package physics answers one question for the rest of the pipeline: which
// tiles can the player actually get to?
//
// The model is deliberately tile-grained. A move is a ballistic jump from a
// grounded tile, bounded horizontally and vertically by tuned fractions of
// the engine's jump impulse and occluded by walls along the straight segment
// between takeoff and landing. After a jump the player may fall, drifting at
// most one tile sideways per row, tracing a downward triangle of occupiable
// tiles that cost nothing extra. Reachability is a BFS over these moves.
//
// Every placement decision downstream — platforms, goal, coins, enemies —
// queries this package, so its enumeration orders are fixed and RNG-free.
package physics
