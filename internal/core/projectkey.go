package core

import (
	"fmt"
	"regexp"
	"strings"
)

// validProjectKeyPattern matches normalized project keys: an uppercase letter
// followed by 1-9 uppercase letters or digits (total length 2-10).
var validProjectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}$`)

// DefaultProjectKey is used when a task is created without an explicit project key.
const DefaultProjectKey = "TASK"

// NormalizeProjectKey trims and uppercases key, then validates it against the
// project key pattern. It returns the normalized key, or an InvalidInputError
// if the normalized form does not match. It has no side effects.
func NormalizeProjectKey(key string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(key))
	if !validProjectKeyPattern.MatchString(normalized) {
		return "", invalidInput(fmt.Sprintf("project key %q must start with a letter and be 2-10 uppercase letters or digits", key))
	}
	return normalized, nil
}
