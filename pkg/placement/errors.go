package placement

import (
	"errors"
	"fmt"
)

// Degenerate-cave faults. The cave itself came out unusable; callers are
// expected to retry with a different seed rather than recover in place.
var (
	// ErrNoSpawnPosition means no floor tile satisfies the spawn rules.
	ErrNoSpawnPosition = errors.New("placement: no valid spawn position")

	// ErrNoGoalPosition means no floor tile satisfies the goal rules, even
	// after falling back from the right-side strip.
	ErrNoGoalPosition = errors.New("placement: no valid goal position")
)

// LowReachabilityError reports that too little of the cave is reachable from
// the spawn for coin placement to proceed.
type LowReachabilityError struct {
	Fraction float64
	Minimum  float64
}

func (e *LowReachabilityError) Error() string {
	return fmt.Sprintf("placement: only %.1f%% of floor tiles reachable from spawn, need %.1f%%",
		e.Fraction*100, e.Minimum*100)
}
