// Package pricing implements the order-pricing calculator: pure arithmetic
// over lookup tables for unit prices, volume discounts, and shipping rates.
package pricing

import (
	"fmt"
	"sort"
	"strings"
)

// Cents is a monetary amount in integer cents.
type Cents int64

// Tier is one row of the discount table: orders whose subtotal reaches
// Threshold receive Percent off the subtotal.
type Tier struct {
	Threshold Cents
	Percent   int
}

// Tables holds the lookup tables a Calculator prices against. Zero-value
// fields fall back to the built-in defaults.
type Tables struct {
	Catalog         map[string]Cents
	Discounts       []Tier
	ShippingRates   map[string]Cents
	ShippingDefault Cents
	FreeShipOver    Cents
}

// Built-in tables, used when no overrides are configured.
var (
	defaultCatalog = map[string]Cents{
		"WIDGET":   2500,
		"GADGET":   9900,
		"GIZMO":    45000,
		"DOODAD":   150,
		"FASTENER": 35,
	}

	defaultDiscounts = []Tier{
		{Threshold: 50000, Percent: 5},
		{Threshold: 100000, Percent: 10},
		{Threshold: 250000, Percent: 15},
	}

	defaultShipping = map[string]Cents{
		"LOCAL":    500,
		"NATIONAL": 1200,
		"OVERSEAS": 4500,
	}
)

// Line is one order line: a catalog SKU and a quantity.
type Line struct {
	SKU string
	Qty int
}

// Order is the input to Quote.
type Order struct {
	Lines  []Line
	Region string
}

// LineTotal is one priced order line in a Receipt.
type LineTotal struct {
	SKU       string
	Qty       int
	UnitPrice Cents
	Total     Cents
}

// Receipt is the fully priced order.
type Receipt struct {
	Lines           []LineTotal
	Subtotal        Cents
	DiscountPercent int
	Discount        Cents
	Shipping        Cents
	Total           Cents
}

// Calculator prices orders against a fixed set of lookup tables.
// It holds no mutable state; a single Calculator is safe for concurrent use.
type Calculator struct {
	tables Tables
}

// NewCalculator creates a Calculator. Any zero-value field in tables is
// replaced with the corresponding built-in table. The discount table is
// kept sorted by ascending threshold.
func NewCalculator(tables Tables) *Calculator {
	if tables.Catalog == nil {
		tables.Catalog = defaultCatalog
	}
	if tables.Discounts == nil {
		tables.Discounts = defaultDiscounts
	}
	if tables.ShippingRates == nil {
		tables.ShippingRates = defaultShipping
	}
	if tables.ShippingDefault == 0 {
		tables.ShippingDefault = 500
	}

	sorted := make([]Tier, len(tables.Discounts))
	copy(sorted, tables.Discounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })
	tables.Discounts = sorted

	return &Calculator{tables: tables}
}

// Quote prices an order: line totals from the catalog, the highest discount
// tier the subtotal reaches, and shipping by region (free above the
// configured threshold, when one is set).
func (c *Calculator) Quote(order Order) (*Receipt, error) {
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("order has no lines")
	}

	receipt := &Receipt{Lines: make([]LineTotal, 0, len(order.Lines))}

	for i, line := range order.Lines {
		sku := strings.ToUpper(strings.TrimSpace(line.SKU))
		if sku == "" {
			return nil, fmt.Errorf("line %d: SKU must not be empty", i+1)
		}
		if line.Qty < 1 {
			return nil, fmt.Errorf("line %d: quantity %d must be at least 1", i+1, line.Qty)
		}
		unit, ok := c.tables.Catalog[sku]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown SKU %q", i+1, line.SKU)
		}

		total := unit * Cents(line.Qty)
		receipt.Lines = append(receipt.Lines, LineTotal{
			SKU:       sku,
			Qty:       line.Qty,
			UnitPrice: unit,
			Total:     total,
		})
		receipt.Subtotal += total
	}

	for _, tier := range c.tables.Discounts {
		if receipt.Subtotal >= tier.Threshold {
			receipt.DiscountPercent = tier.Percent
		}
	}
	receipt.Discount = receipt.Subtotal * Cents(receipt.DiscountPercent) / 100

	discounted := receipt.Subtotal - receipt.Discount
	if c.tables.FreeShipOver > 0 && discounted >= c.tables.FreeShipOver {
		receipt.Shipping = 0
	} else {
		region := strings.ToUpper(strings.TrimSpace(order.Region))
		rate, ok := c.tables.ShippingRates[region]
		if !ok {
			rate = c.tables.ShippingDefault
		}
		receipt.Shipping = rate
	}

	receipt.Total = discounted + receipt.Shipping
	return receipt, nil
}
