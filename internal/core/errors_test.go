package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	invalid := invalidInput("title must not be empty")
	missing := notFound("PROJ-7")

	if got := invalid.Error(); got != "invalid input: title must not be empty" {
		t.Errorf("unexpected message %q", got)
	}
	if got := missing.Error(); got != "not found: PROJ-7" {
		t.Errorf("unexpected message %q", got)
	}

	if !IsInvalidInput(invalid) {
		t.Error("IsInvalidInput should match InvalidInputError")
	}
	if IsInvalidInput(missing) {
		t.Error("IsInvalidInput must not match NotFoundError")
	}
	if !IsNotFound(missing) {
		t.Error("IsNotFound should match NotFoundError")
	}
	if IsNotFound(invalid) {
		t.Error("IsNotFound must not match InvalidInputError")
	}
}

func TestErrorKinds_MatchWrapped(t *testing.T) {
	wrapped := fmt.Errorf("creating task: %w", invalidInput("bad priority"))
	if !IsInvalidInput(wrapped) {
		t.Error("IsInvalidInput should see through fmt.Errorf wrapping")
	}

	deeper := fmt.Errorf("handling request: %w", fmt.Errorf("looking up task: %w", notFound("42")))
	if !IsNotFound(deeper) {
		t.Error("IsNotFound should see through nested wrapping")
	}

	if IsInvalidInput(errors.New("plain")) || IsNotFound(errors.New("plain")) {
		t.Error("plain errors must not match either kind")
	}
	if IsInvalidInput(nil) || IsNotFound(nil) {
		t.Error("nil must not match either kind")
	}
}
