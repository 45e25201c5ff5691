package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/petshow73/taskdesk/internal/pricing"
)

func withPricer(t *testing.T) *bytes.Buffer {
	t.Helper()

	orig := Pricer
	origRegion := priceRegion
	t.Cleanup(func() {
		Pricer = orig
		priceRegion = origRegion
		priceCmd.SetOut(nil)
	})

	Pricer = pricing.NewCalculator(pricing.Tables{})
	priceRegion = "LOCAL"

	var buf bytes.Buffer
	priceCmd.SetOut(&buf)
	return &buf
}

func TestPriceCmd_NilPricer(t *testing.T) {
	orig := Pricer
	defer func() { Pricer = orig }()
	Pricer = nil

	err := priceCmd.RunE(priceCmd, []string{"WIDGET=1"})
	if err == nil {
		t.Fatal("expected error when Pricer is nil")
	}
	if !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPriceCmd_Receipt(t *testing.T) {
	buf := withPricer(t)

	err := priceCmd.RunE(priceCmd, []string{"WIDGET=2", "DOODAD=1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"WIDGET", "DOODAD", "$51.50", "Subtotal", "Shipping", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("receipt missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Discount") {
		t.Errorf("receipt should omit the discount row below the first tier:\n%s", out)
	}
}

func TestPriceCmd_DiscountRow(t *testing.T) {
	buf := withPricer(t)

	// 20 widgets is 50000, the 5% tier.
	err := priceCmd.RunE(priceCmd, []string{"WIDGET=20"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Discount (5%)") {
		t.Errorf("expected discount row:\n%s", buf.String())
	}
}

func TestPriceCmd_BadArgs(t *testing.T) {
	withPricer(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing equals", []string{"WIDGET"}},
		{"non-numeric quantity", []string{"WIDGET=lots"}},
		{"unknown SKU", []string{"SPROCKET=1"}},
		{"zero quantity", []string{"WIDGET=0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := priceCmd.RunE(priceCmd, tt.args); err == nil {
				t.Errorf("expected error for args %v", tt.args)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents pricing.Cents
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{2500, "$25.00"},
		{52780, "$527.80"},
	}

	for _, tt := range tests {
		if got := formatCents(tt.cents); got != tt.want {
			t.Errorf("formatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
