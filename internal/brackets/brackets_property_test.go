package brackets

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// genBalanced produces a balanced bracket string by recursive composition:
// concatenation and wrapping of balanced parts both stay balanced.
func genBalanced() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		return buildBalanced(t, 3)
	})
}

func buildBalanced(t *rapid.T, depth int) string {
	if depth == 0 {
		return rapid.SampledFrom([]string{"", "x", "ab"}).Draw(t, "leaf")
	}

	var sb strings.Builder
	parts := rapid.IntRange(0, 3).Draw(t, "parts")
	wrappers := []struct{ open, close string }{
		{"(", ")"}, {"[", "]"}, {"{", "}"},
	}
	for i := 0; i < parts; i++ {
		w := rapid.SampledFrom([]int{0, 1, 2}).Draw(t, "wrapper")
		sb.WriteString(wrappers[w].open)
		sb.WriteString(buildBalanced(t, depth-1))
		sb.WriteString(wrappers[w].close)
	}
	return sb.String()
}

// Property: any string built from wrapping and concatenating balanced parts
// passes the scan.
func TestProperty_BalancedStringsPass(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genBalanced().Draw(rt, "s")
		if err := Check(s); err != nil {
			rt.Fatalf("Check(%q) = %v, want nil", s, err)
		}
	})
}

// Property: appending an unmatched closer to any balanced string fails the
// scan at exactly that position.
func TestProperty_TrailingCloserFails(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genBalanced().Draw(rt, "s")
		closer := rapid.SampledFrom([]string{")", "]", "}"}).Draw(rt, "closer")

		if Valid(s + closer) {
			rt.Fatalf("Valid(%q) = true, want false", s+closer)
		}
	})
}

// Property: non-bracket runes never affect the verdict.
func TestProperty_NoiseIsIgnored(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := genBalanced().Draw(rt, "s")
		noise := rapid.StringMatching(`[a-z0-9 ,.]{0,10}`).Draw(rt, "noise")

		if !Valid(noise + s + noise) {
			rt.Fatalf("noise flipped the verdict for %q", noise+s+noise)
		}
	})
}
