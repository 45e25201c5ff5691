// Package core contains the business logic for taskdesk: the task store,
// per-project sequence allocation, project key validation, and configuration.
package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/petshow73/taskdesk/pkg/models"
)

// DiscountTier is one row of the order discount table: orders whose subtotal
// reaches Threshold (in cents) receive Percent off.
type DiscountTier struct {
	Threshold int64 `mapstructure:"threshold"`
	Percent   int   `mapstructure:"percent"`
}

// PricingConfig holds the lookup tables for the order-pricing calculator.
// Amounts are cents. Nil maps mean "use the calculator's built-in tables".
type PricingConfig struct {
	Catalog         map[string]int64
	Discounts       []DiscountTier
	ShippingRates   map[string]int64
	ShippingDefault int64
	FreeShipOver    int64
}

// Config holds the merged taskdesk configuration.
type Config struct {
	DefaultProjectKey string
	DefaultPriority   models.Priority
	EventLogEnabled   bool
	Pricing           PricingConfig
}

// defaultConfig returns a Config populated with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		DefaultProjectKey: DefaultProjectKey,
		DefaultPriority:   models.DefaultPriority,
		EventLogEnabled:   true,
		Pricing: PricingConfig{
			ShippingDefault: 500,
		},
	}
}

// LoadConfig reads the .taskdesk.yaml file from basePath using Viper.
// If the file does not exist, defaults are returned. A present but invalid
// configuration (bad priority, bad project key) is an error rather than a
// silent fallback.
func LoadConfig(basePath string) (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName(".taskdesk")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("defaults.project_key", cfg.DefaultProjectKey)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("eventlog.enabled", cfg.EventLogEnabled)
	v.SetDefault("pricing.shipping.default", cfg.Pricing.ShippingDefault)
	v.SetDefault("pricing.shipping.free_over", cfg.Pricing.FreeShipOver)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .taskdesk.yaml: %w", err)
	}

	projectKey, err := NormalizeProjectKey(v.GetString("defaults.project_key"))
	if err != nil {
		return nil, fmt.Errorf("validating defaults.project_key: %w", err)
	}
	cfg.DefaultProjectKey = projectKey

	priority := models.Priority(v.GetString("defaults.priority"))
	if !priority.Valid() {
		return nil, fmt.Errorf("validating defaults.priority: %q must be one of low, medium, high", priority)
	}
	cfg.DefaultPriority = priority

	cfg.EventLogEnabled = v.GetBool("eventlog.enabled")

	// Pricing tables are optional; absent sections leave the built-in
	// calculator tables in place.
	if v.IsSet("pricing.catalog") {
		catalog := make(map[string]int64)
		for sku := range v.GetStringMap("pricing.catalog") {
			catalog[sku] = int64(v.GetInt("pricing.catalog." + sku))
		}
		cfg.Pricing.Catalog = catalog
	}
	if v.IsSet("pricing.discounts") {
		var tiers []DiscountTier
		if err := v.UnmarshalKey("pricing.discounts", &tiers); err != nil {
			return nil, fmt.Errorf("parsing pricing.discounts: %w", err)
		}
		cfg.Pricing.Discounts = tiers
	}
	if v.IsSet("pricing.shipping.rates") {
		rates := make(map[string]int64)
		for region := range v.GetStringMap("pricing.shipping.rates") {
			rates[region] = int64(v.GetInt("pricing.shipping.rates." + region))
		}
		cfg.Pricing.ShippingRates = rates
	}
	cfg.Pricing.ShippingDefault = int64(v.GetInt("pricing.shipping.default"))
	cfg.Pricing.FreeShipOver = int64(v.GetInt("pricing.shipping.free_over"))

	return cfg, nil
}
