package service

import (
	"testing"

	"github.com/watchhub/watchhub/internal/config"
	"github.com/watchhub/watchhub/internal/models"
)

func pricingCfg() config.PricingConfig {
	return config.PricingConfig{
		TaxRate:               0.08,
		FreeShippingThreshold: 75.0,
		Currency:              "USD",
	}
}

func lineWithPriceCents(cents int64, quantity int) ReconciledLine {
	return ReconciledLine{
		UnitPrice: models.NewMoneyFromCents(cents),
		Quantity:  quantity,
	}
}

func TestComputeTotalsSubtotal(t *testing.T) {
	items := []ReconciledLine{
		lineWithPriceCents(1999, 2),
		lineWithPriceCents(550, 3),
	}
	totals := computeTotals(items, 999, 0, pricingCfg())
	if totals.SubtotalCents != 1999*2+550*3 {
		t.Fatalf("expected subtotal %d, got %d", 1999*2+550*3, totals.SubtotalCents)
	}
}

func TestComputeTotalsShipping(t *testing.T) {
	tests := []struct {
		name          string
		items         []ReconciledLine
		feeCents      int64
		wantShipCents int64
	}{
		{"empty cart no shipping", nil, 999, 0},
		{"below threshold charges fee", []ReconciledLine{lineWithPriceCents(2000, 1)}, 999, 999},
		{"just below threshold charges fee", []ReconciledLine{lineWithPriceCents(7499, 1)}, 999, 999},
		{"exactly at threshold free", []ReconciledLine{lineWithPriceCents(7500, 1)}, 999, 0},
		{"above threshold free", []ReconciledLine{lineWithPriceCents(7501, 1)}, 999, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := computeTotals(tt.items, tt.feeCents, 0, pricingCfg())
			if totals.ShippingCents != tt.wantShipCents {
				t.Fatalf("expected shipping %d, got %d", tt.wantShipCents, totals.ShippingCents)
			}
		})
	}
}

func TestComputeTotalsTaxOnSubtotalOnly(t *testing.T) {
	// 小计 20.00，运费 9.99；税只对小计计，20.00*0.08=1.60
	items := []ReconciledLine{lineWithPriceCents(2000, 1)}
	totals := computeTotals(items, 999, 0, pricingCfg())
	if totals.TaxCents != 160 {
		t.Fatalf("expected tax 160, got %d", totals.TaxCents)
	}
	if totals.TotalCents != 2000+999+160 {
		t.Fatalf("expected total %d, got %d", 2000+999+160, totals.TotalCents)
	}
}

func TestComputeTotalsTaxRoundHalfUp(t *testing.T) {
	cfg := pricingCfg()
	cfg.TaxRate = 0.1
	// 0.15*0.1=0.015 元=1.5 分，逢半进位到 2 分
	items := []ReconciledLine{lineWithPriceCents(15, 1)}
	totals := computeTotals(items, 0, 0, cfg)
	if totals.TaxCents != 2 {
		t.Fatalf("expected tax 2, got %d", totals.TaxCents)
	}
}

func TestComputeTotalsTaxRoundsOnceAtFinalMultiply(t *testing.T) {
	cfg := pricingCfg()
	cfg.TaxRate = 0.1
	// 三行各 0.15 元：先求和再计税 0.45*0.1=4.5 分 → 5 分。
	// 若逐行计税再求和会得到 2+2+2=6 分。
	items := []ReconciledLine{
		lineWithPriceCents(15, 1),
		lineWithPriceCents(15, 1),
		lineWithPriceCents(15, 1),
	}
	totals := computeTotals(items, 0, 0, cfg)
	if totals.TaxCents != 5 {
		t.Fatalf("expected tax 5, got %d", totals.TaxCents)
	}
}

func TestComputeTotalsDiscountClamp(t *testing.T) {
	// 小计 10.00 + 运费 9.99 + 税 0.80 = 20.79，优惠 50.00 压到 20.79，合计 0
	items := []ReconciledLine{lineWithPriceCents(1000, 1)}
	totals := computeTotals(items, 999, 5000, pricingCfg())
	gross := int64(1000 + 999 + 80)
	if totals.DiscountCents != gross {
		t.Fatalf("expected discount clamped to %d, got %d", gross, totals.DiscountCents)
	}
	if totals.TotalCents != 0 {
		t.Fatalf("expected total 0, got %d", totals.TotalCents)
	}
}

func TestComputeTotalsNeverNegative(t *testing.T) {
	totals := computeTotals(nil, 0, 5000, pricingCfg())
	if totals.TotalCents != 0 || totals.DiscountCents != 0 {
		t.Fatalf("expected zero totals for empty cart, got %+v", totals)
	}
}

func TestComputeTotalsMoneyMirrorsCents(t *testing.T) {
	items := []ReconciledLine{lineWithPriceCents(1999, 2)}
	totals := computeTotals(items, 999, 100, pricingCfg())
	if totals.Subtotal.Cents() != totals.SubtotalCents {
		t.Fatalf("subtotal mismatch: %s vs %d", totals.Subtotal.String(), totals.SubtotalCents)
	}
	if totals.Total.Cents() != totals.TotalCents {
		t.Fatalf("total mismatch: %s vs %d", totals.Total.String(), totals.TotalCents)
	}
}
