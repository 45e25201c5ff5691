// Package internal provides the App struct that wires all components of
// taskdesk together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/petshow73/taskdesk/internal/cli"
	"github.com/petshow73/taskdesk/internal/core"
	"github.com/petshow73/taskdesk/internal/observability"
	"github.com/petshow73/taskdesk/internal/pricing"
)

// App holds all service dependencies for taskdesk.
type App struct {
	BasePath string

	// Configuration
	Config *core.Config

	// Core services
	Seq   core.SequenceAllocator
	Store *core.TaskStore

	// Utilities
	Pricer *pricing.Calculator

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp creates and wires all components of taskdesk. basePath is the
// directory holding .taskdesk.yaml and the event log (typically the current
// directory or TASKDESK_HOME).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	cfg, err := core.LoadConfig(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	app.Config = cfg

	// --- Observability ---
	if cfg.EventLogEnabled {
		eventLogPath := filepath.Join(basePath, ".taskdesk_events.jsonl")
		app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
		if err != nil {
			// Non-fatal: disable observability if the log can't be created.
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Core services ---
	app.Seq = core.NewSequenceAllocator()
	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
	}
	app.Store = core.NewTaskStore(app.Seq, evtAdapter, core.TaskStoreOpts{
		DefaultProjectKey: cfg.DefaultProjectKey,
		DefaultPriority:   cfg.DefaultPriority,
	})

	// --- Utilities ---
	app.Pricer = pricing.NewCalculator(pricingTables(cfg.Pricing))

	// --- CLI wiring ---
	cli.BasePath = basePath
	cli.Store = app.Store
	cli.Pricer = app.Pricer
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the taskdesk data directory.
// It checks the TASKDESK_HOME env var, then walks up from the current
// directory looking for a .taskdesk.yaml file, and falls back to the cwd.
func ResolveBasePath() string {
	if home := os.Getenv("TASKDESK_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".taskdesk.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}

// pricingTables converts the configured pricing overrides into calculator
// tables, leaving zero values for the calculator's built-in defaults.
func pricingTables(cfg core.PricingConfig) pricing.Tables {
	tables := pricing.Tables{
		ShippingDefault: pricing.Cents(cfg.ShippingDefault),
		FreeShipOver:    pricing.Cents(cfg.FreeShipOver),
	}
	if cfg.Catalog != nil {
		tables.Catalog = make(map[string]pricing.Cents, len(cfg.Catalog))
		for sku, price := range cfg.Catalog {
			tables.Catalog[sku] = pricing.Cents(price)
		}
	}
	if cfg.Discounts != nil {
		tables.Discounts = make([]pricing.Tier, 0, len(cfg.Discounts))
		for _, tier := range cfg.Discounts {
			tables.Discounts = append(tables.Discounts, pricing.Tier{
				Threshold: pricing.Cents(tier.Threshold),
				Percent:   tier.Percent,
			})
		}
	}
	if cfg.ShippingRates != nil {
		tables.ShippingRates = make(map[string]pricing.Cents, len(cfg.ShippingRates))
		for region, rate := range cfg.ShippingRates {
			tables.ShippingRates[region] = pricing.Cents(rate)
		}
	}
	return tables
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: strings.ReplaceAll(eventType, ".", " "),
		Data:    data,
	})
}
