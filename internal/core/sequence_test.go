package core

import "testing"

func TestSequenceAllocator_FirstCode(t *testing.T) {
	seq := NewSequenceAllocator()

	code, err := seq.Next("PROJ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "PROJ-1" {
		t.Errorf("expected PROJ-1, got %s", code)
	}
}

func TestSequenceAllocator_IncrementsPerKey(t *testing.T) {
	seq := NewSequenceAllocator()

	codes := []string{}
	for i := 0; i < 3; i++ {
		code, err := seq.Next("PROJ")
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i+1, err)
		}
		codes = append(codes, code)
	}

	want := []string{"PROJ-1", "PROJ-2", "PROJ-3"}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i+1, want[i], codes[i])
		}
	}
}

func TestSequenceAllocator_IndependentKeys(t *testing.T) {
	seq := NewSequenceAllocator()

	if _, err := seq.Next("ALPHA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := seq.Next("ALPHA"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code, err := seq.Next("BETA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "BETA-1" {
		t.Errorf("expected BETA-1, got %s", code)
	}
}

func TestSequenceAllocator_NormalizesKey(t *testing.T) {
	seq := NewSequenceAllocator()

	if _, err := seq.Next("proj"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "  PROJ " and "proj" are the same counter.
	code, err := seq.Next("  PROJ ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "PROJ-2" {
		t.Errorf("expected PROJ-2, got %s", code)
	}
}

func TestSequenceAllocator_PeekDoesNotAllocate(t *testing.T) {
	seq := NewSequenceAllocator()

	n, err := seq.Peek("PROJ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 for unseen key, got %d", n)
	}

	if _, err := seq.Next("PROJ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		n, err = seq.Peek("PROJ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 1 {
			t.Errorf("expected 1 after one allocation, got %d", n)
		}
	}
}

func TestSequenceAllocator_InvalidKey(t *testing.T) {
	seq := NewSequenceAllocator()

	if _, err := seq.Next("1BAD"); !IsInvalidInput(err) {
		t.Errorf("Next: expected InvalidInputError, got %v", err)
	}
	if _, err := seq.Peek("1BAD"); !IsInvalidInput(err) {
		t.Errorf("Peek: expected InvalidInputError, got %v", err)
	}
}
