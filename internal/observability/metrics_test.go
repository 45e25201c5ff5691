package observability

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/petshow73/taskdesk/internal/core"
)

func TestMetricsCalculator_Aggregates(t *testing.T) {
	log, _ := newTestEventLog(t)
	calc := NewMetricsCalculator(log)

	now := time.Now().UTC()
	events := []Event{
		{Time: now.Add(-3 * time.Hour), Level: "INFO", Type: core.EventTaskCreated, Data: map[string]any{"priority": "high"}},
		{Time: now.Add(-2 * time.Hour), Level: "INFO", Type: core.EventTaskCreated, Data: map[string]any{"priority": "medium"}},
		{Time: now.Add(-90 * time.Minute), Level: "INFO", Type: core.EventTaskStatusChanged, Data: map[string]any{"new_status": "in_progress"}},
		{Time: now.Add(-1 * time.Hour), Level: "INFO", Type: core.EventTaskStatusChanged, Data: map[string]any{"new_status": "done"}},
		{Time: now.Add(-1 * time.Hour), Level: "INFO", Type: core.EventTaskCompleted},
		{Time: now.Add(-30 * time.Minute), Level: "INFO", Type: core.EventTaskRemoved},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	m, err := calc.Calculate(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	if m.TasksCreated != 2 {
		t.Errorf("expected 2 created, got %d", m.TasksCreated)
	}
	if m.TasksCompleted != 1 {
		t.Errorf("expected 1 completed, got %d", m.TasksCompleted)
	}
	if m.TasksRemoved != 1 {
		t.Errorf("expected 1 removed, got %d", m.TasksRemoved)
	}
	if m.StatusChanges["in_progress"] != 1 || m.StatusChanges["done"] != 1 {
		t.Errorf("unexpected status changes: %v", m.StatusChanges)
	}
	if m.TasksByPriority["high"] != 1 || m.TasksByPriority["medium"] != 1 {
		t.Errorf("unexpected priority breakdown: %v", m.TasksByPriority)
	}
	if m.EventCount != len(events) {
		t.Errorf("expected %d events, got %d", len(events), m.EventCount)
	}
	if m.OldestEvent == nil || m.NewestEvent == nil {
		t.Fatal("expected oldest/newest event timestamps")
	}
	if !m.OldestEvent.Before(*m.NewestEvent) {
		t.Errorf("oldest %v not before newest %v", m.OldestEvent, m.NewestEvent)
	}
}

func TestMetricsCalculator_RespectsSince(t *testing.T) {
	log, _ := newTestEventLog(t)
	calc := NewMetricsCalculator(log)

	now := time.Now().UTC()
	if err := log.Write(Event{Time: now.Add(-48 * time.Hour), Level: "INFO", Type: core.EventTaskCreated}); err != nil {
		t.Fatalf("writing event: %v", err)
	}
	if err := log.Write(Event{Time: now, Level: "INFO", Type: core.EventTaskCreated}); err != nil {
		t.Fatalf("writing event: %v", err)
	}

	m, err := calc.Calculate(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}
	if m.TasksCreated != 1 {
		t.Errorf("expected 1 task inside the window, got %d", m.TasksCreated)
	}
}

func TestMetricsCalculator_EmptyLog(t *testing.T) {
	log := &jsonlEventLog{path: filepath.Join(t.TempDir(), "empty.jsonl")}
	calc := NewMetricsCalculator(log)

	m, err := calc.Calculate(time.Now().UTC().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}
	if m.EventCount != 0 || m.TasksCreated != 0 {
		t.Errorf("expected zero metrics, got %+v", m)
	}
	if m.OldestEvent != nil || m.NewestEvent != nil {
		t.Error("expected nil oldest/newest for empty log")
	}
}
