package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petshow73/taskdesk/internal/pricing"
)

var priceRegion string

var priceCmd = &cobra.Command{
	Use:   "price <SKU=QTY> [SKU=QTY ...]",
	Short: "Price an order against the catalog and discount tables",
	Long: `Price an order. Each argument is a catalog SKU and a quantity,
e.g. WIDGET=3. The receipt shows line totals, the volume discount the
subtotal qualifies for, shipping for the region, and the grand total.

Catalog, discount, and shipping tables can be overridden in .taskdesk.yaml
under the pricing section.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Pricer == nil {
			return fmt.Errorf("pricing calculator not initialized")
		}

		order := pricing.Order{Region: priceRegion}
		for _, arg := range args {
			sku, qtyStr, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("parsing order line %q: want SKU=QTY", arg)
			}
			qty, err := strconv.Atoi(qtyStr)
			if err != nil {
				return fmt.Errorf("parsing quantity in %q: %w", arg, err)
			}
			order.Lines = append(order.Lines, pricing.Line{SKU: sku, Qty: qty})
		}

		receipt, err := Pricer.Quote(order)
		if err != nil {
			return fmt.Errorf("pricing order: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-12s %5s %10s %12s\n", "SKU", "QTY", "UNIT", "TOTAL")
		for _, line := range receipt.Lines {
			fmt.Fprintf(out, "%-12s %5d %10s %12s\n", line.SKU, line.Qty, formatCents(line.UnitPrice), formatCents(line.Total))
		}
		fmt.Fprintf(out, "\n%-18s %12s\n", "Subtotal", formatCents(receipt.Subtotal))
		if receipt.Discount > 0 {
			fmt.Fprintf(out, "%-18s %12s\n", fmt.Sprintf("Discount (%d%%)", receipt.DiscountPercent), "-"+formatCents(receipt.Discount))
		}
		fmt.Fprintf(out, "%-18s %12s\n", "Shipping", formatCents(receipt.Shipping))
		fmt.Fprintf(out, "%-18s %12s\n", "Total", formatCents(receipt.Total))

		return nil
	},
}

// formatCents renders a cent amount as a dollar string, e.g. 2500 -> $25.00.
func formatCents(c pricing.Cents) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}

func init() {
	priceCmd.Flags().StringVar(&priceRegion, "region", "LOCAL", "Shipping region (LOCAL, NATIONAL, OVERSEAS, or a configured region)")
	rootCmd.AddCommand(priceCmd)
}
