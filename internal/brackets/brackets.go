// Package brackets validates balanced bracket pairs in a string with a
// single linear scan.
package brackets

import "fmt"

// pairs maps each closing bracket to its opening counterpart.
var pairs = map[rune]rune{
	')': '(',
	']': '[',
	'}': '{',
}

// openers is the reverse of pairs, used for error messages.
var openers = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
}

// ScanError reports the first bracket mismatch found in the input.
// Found is the offending rune, or 0 when the input ended with brackets
// still open. Want is the closer that was expected, or 0 when Found had
// no open bracket to match.
type ScanError struct {
	Offset int
	Found  rune
	Want   rune
}

func (e *ScanError) Error() string {
	switch {
	case e.Found == 0:
		return fmt.Sprintf("unclosed bracket: expected %q before end of input", e.Want)
	case e.Want == 0:
		return fmt.Sprintf("unexpected %q at offset %d", e.Found, e.Offset)
	default:
		return fmt.Sprintf("mismatched bracket at offset %d: got %q, want %q", e.Offset, e.Found, e.Want)
	}
}

type openBracket struct {
	r      rune
	offset int
}

// Check scans s and returns nil if every bracket is closed in the right
// order, or a ScanError describing the first violation. Non-bracket runes
// are ignored.
func Check(s string) error {
	var stack []openBracket

	for i, r := range s {
		if _, isOpener := openers[r]; isOpener {
			stack = append(stack, openBracket{r: r, offset: i})
			continue
		}

		opener, isCloser := pairs[r]
		if !isCloser {
			continue
		}

		if len(stack) == 0 {
			return &ScanError{Offset: i, Found: r}
		}
		top := stack[len(stack)-1]
		if top.r != opener {
			return &ScanError{Offset: i, Found: r, Want: openers[top.r]}
		}
		stack = stack[:len(stack)-1]
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &ScanError{Offset: top.offset, Want: openers[top.r]}
	}
	return nil
}

// Valid reports whether s contains only balanced brackets.
func Valid(s string) bool {
	return Check(s) == nil
}
