// Package rng provides deterministic, phase-isolated random number generation.
//
// Cave generation is a multi-phase pipeline where each phase (corridor
// carving, platform placement, coin placement, enemy placement) needs its own
// random stream. Deriving every stream from the master seed string keeps the
// whole pipeline reproducible while insulating phases from each other: adding
// a random draw to one phase never perturbs the output of another.
package rng
