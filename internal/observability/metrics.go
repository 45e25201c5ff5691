package observability

import (
	"fmt"
	"time"

	"github.com/petshow73/taskdesk/internal/core"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	TasksCreated    int            `json:"tasks_created"`
	TasksCompleted  int            `json:"tasks_completed"`
	TasksRemoved    int            `json:"tasks_removed"`
	StatusChanges   map[string]int `json:"status_changes"`
	TasksByPriority map[string]int `json:"tasks_by_priority"`
	EventCount      int            `json:"event_count"`
	OldestEvent     *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent     *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		StatusChanges:   make(map[string]int),
		TasksByPriority: make(map[string]int),
	}

	m.EventCount = len(events)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case core.EventTaskCreated:
			m.TasksCreated++
			if priority, ok := event.Data["priority"].(string); ok {
				m.TasksByPriority[priority]++
			}
		case core.EventTaskCompleted:
			m.TasksCompleted++
		case core.EventTaskRemoved:
			m.TasksRemoved++
		case core.EventTaskStatusChanged:
			if status, ok := event.Data["new_status"].(string); ok {
				m.StatusChanges[status]++
			}
		}
	}

	return m, nil
}
