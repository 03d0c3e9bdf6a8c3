// Package validation checks generated levels against the generator's
// invariants: closed border, grounded spawn and goal, coin pockets, platform
// stamping, and non-empty reachability from spawn. It is a post-generation
// safety net for tooling and tests; the pipeline itself maintains these
// invariants by construction.
package validation
