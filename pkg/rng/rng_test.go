package rng

import (
	"crypto/sha256"
	"testing"
)

// TestNewRNG_Determinism verifies that the same inputs always produce the same RNG.
func TestNewRNG_Determinism(t *testing.T) {
	configHash := sha256.Sum256([]byte("test_config"))

	rng1 := NewRNG("cave-42", "corridor-seed", configHash[:])
	rng2 := NewRNG("cave-42", "corridor-seed", configHash[:])

	if rng1.Seed() != rng2.Seed() {
		t.Errorf("Same inputs produced different seeds: %d vs %d", rng1.Seed(), rng2.Seed())
	}

	for i := 0; i < 100; i++ {
		v1 := rng1.Uint64()
		v2 := rng2.Uint64()
		if v1 != v2 {
			t.Errorf("Iteration %d: Same RNGs produced different values: %d vs %d", i, v1, v2)
		}
	}
}

// TestNewRNG_DifferentPhases verifies different phase names produce different sequences.
func TestNewRNG_DifferentPhases(t *testing.T) {
	configHash := sha256.Sum256([]byte("same_config"))

	phases := []string{"corridor-seed", "platform-seed", "coin-seed", "enemy-seed"}
	seeds := make(map[uint64]string)
	for _, phase := range phases {
		r := NewRNG("cave-42", phase, configHash[:])
		if prev, dup := seeds[r.Seed()]; dup {
			t.Errorf("Phases %q and %q derived identical seeds", prev, phase)
		}
		seeds[r.Seed()] = phase
	}
}

// TestNewRNG_DifferentMasterSeeds verifies different master seeds produce
// different streams for the same phase.
func TestNewRNG_DifferentMasterSeeds(t *testing.T) {
	configHash := sha256.Sum256([]byte("config"))

	rng1 := NewRNG("seed-a", "platform-seed", configHash[:])
	rng2 := NewRNG("seed-b", "platform-seed", configHash[:])

	if rng1.Seed() == rng2.Seed() {
		t.Error("Different master seeds derived identical phase seeds")
	}
}

// TestNewRNG_ConfigSensitivity verifies config hash changes the stream.
func TestNewRNG_ConfigSensitivity(t *testing.T) {
	hash1 := sha256.Sum256([]byte("config_v1"))
	hash2 := sha256.Sum256([]byte("config_v2"))

	rng1 := NewRNG("cave-42", "coin-seed", hash1[:])
	rng2 := NewRNG("cave-42", "coin-seed", hash2[:])

	if rng1.Seed() == rng2.Seed() {
		t.Error("Different config hashes derived identical seeds")
	}
}

func TestIntRange(t *testing.T) {
	r := NewRNG("range-test", "test", nil)

	for i := 0; i < 1000; i++ {
		v := r.IntRange(50, 499)
		if v < 50 || v > 499 {
			t.Fatalf("IntRange(50, 499) = %d, out of range", v)
		}
	}

	if got := r.IntRange(7, 7); got != 7 {
		t.Errorf("IntRange(7, 7) = %d, want 7", got)
	}
}

func TestIntRange_PanicsOnInvertedBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("IntRange(10, 5) did not panic")
		}
	}()
	r := NewRNG("panic-test", "test", nil)
	r.IntRange(10, 5)
}

func TestFloat64_Range(t *testing.T) {
	r := NewRNG("float-test", "test", nil)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %f, out of [0, 1)", v)
		}
	}
}

func TestDirection(t *testing.T) {
	r := NewRNG("dir-test", "test", nil)
	seen := map[int]bool{}
	for i := 0; i < 100; i++ {
		d := r.Direction()
		if d != 1 && d != -1 {
			t.Fatalf("Direction() = %d, want -1 or +1", d)
		}
		seen[d] = true
	}
	if !seen[1] || !seen[-1] {
		t.Error("Direction() never produced one of the two values in 100 draws")
	}
}

func TestChoice(t *testing.T) {
	r := NewRNG("choice-test", "test", nil)
	items := []string{"a", "b", "c"}
	counts := map[string]int{}
	for i := 0; i < 300; i++ {
		counts[items[r.Choice(len(items))]]++
	}
	for _, item := range items {
		if counts[item] == 0 {
			t.Errorf("Choice never selected %q in 300 draws", item)
		}
	}
}

func TestChoice_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Choice(0) did not panic")
		}
	}()
	r := NewRNG("choice-panic", "test", nil)
	r.Choice(0)
}

// TestShuffle_Determinism verifies identical streams shuffle identically.
func TestShuffle_Determinism(t *testing.T) {
	shuffled := func() []int {
		r := NewRNG("shuffle-test", "test", nil)
		s := []int{1, 2, 3, 4, 5, 6, 7, 8}
		r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
		return s
	}
	a, b := shuffled(), shuffled()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Shuffle diverged at %d: %v vs %v", i, a, b)
		}
	}
}
