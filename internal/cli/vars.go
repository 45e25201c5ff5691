package cli

import (
	"github.com/petshow73/taskdesk/internal/core"
	"github.com/petshow73/taskdesk/internal/observability"
	"github.com/petshow73/taskdesk/internal/pricing"
)

// Service instances, set during app initialization in internal/app.go.
var (
	BasePath    string
	Store       *core.TaskStore
	Pricer      *pricing.Calculator
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)
