// Package level ties the generation pipeline together: configuration with
// validated ranges, the Level artifact, and the Generator that runs cave
// synthesis, reachability-driven placement, and enemy distribution in a
// fixed order.
//
// Generation is deterministic (identical config, identical bytes out) and
// stateless across calls. Degenerate caves — no spawn, no goal, too little
// reachable floor — surface as errors so callers can retry with a new seed.
package level
