package core

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// Property: every allocation for a key is unique, and after n allocations
// the counter reads n.
func TestProperty_SequenceUniqueness(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 100).Draw(rt, "n")
		key := rapid.StringMatching(`[A-Z]{2,6}`).Draw(rt, "key")

		seq := NewSequenceAllocator()

		seen := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			code, err := seq.Next(key)
			if err != nil {
				rt.Fatalf("Next failed on call %d: %v", i+1, err)
			}
			if _, exists := seen[code]; exists {
				rt.Fatalf("duplicate code %q on call %d", code, i+1)
			}
			seen[code] = struct{}{}
		}

		counter, err := seq.Peek(key)
		if err != nil {
			rt.Fatalf("Peek failed: %v", err)
		}
		if counter != n {
			rt.Fatalf("expected counter %d after %d allocations, got %d", n, n, counter)
		}
	})
}

// Property: counters for distinct keys never interfere; each key's codes are
// exactly KEY-1..KEY-n regardless of interleaving.
func TestProperty_SequenceKeyIsolation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keys := rapid.SliceOfNDistinct(rapid.StringMatching(`[A-Z]{2,6}`), 2, 4, rapid.ID[string]).Draw(rt, "keys")
		rounds := rapid.IntRange(1, 20).Draw(rt, "rounds")

		seq := NewSequenceAllocator()

		for round := 1; round <= rounds; round++ {
			for _, key := range keys {
				code, err := seq.Next(key)
				if err != nil {
					rt.Fatalf("Next(%q) failed: %v", key, err)
				}
				want := fmt.Sprintf("%s-%d", key, round)
				if code != want {
					rt.Fatalf("round %d: expected %s, got %s", round, want, code)
				}
			}
		}
	})
}
