package engine

import (
	"math"
	"testing"

	"sedori-engine/internal/apperr"
)

// --- ComputeProfit: profit = price - cost, margin = profit/price*100, roi = profit/cost*100 ---

func TestComputeProfit_Exact(t *testing.T) {
	// profit = 1500 - 1000 = 500; margin = 500/1500*100 = 33.333...; roi = 500/1000*100 = 50
	report := ComputeProfit(NewMoney(1000), NewMoney(1500))
	if report.Profit != 500 {
		t.Errorf("Profit = %v, want 500", report.Profit)
	}
	if math.Abs(report.MarginPercent-100.0/3) > 1e-9 {
		t.Errorf("MarginPercent = %v, want 33.333...", report.MarginPercent)
	}
	if math.Abs(report.ROIPercent-50) > 1e-9 {
		t.Errorf("ROIPercent = %v, want 50", report.ROIPercent)
	}
	if !report.IsProfitable {
		t.Error("IsProfitable = false, want true")
	}
	if report.Currency != DefaultCurrency {
		t.Errorf("Currency = %q, want %q", report.Currency, DefaultCurrency)
	}
}

func TestComputeProfit_NegativeProfitStillReported(t *testing.T) {
	// The report never fails; only the gate does. profit = 1000 - 1500 = -500;
	// margin = -500/1000*100 = -50; roi = -500/1500*100 = -33.33...
	report := ComputeProfit(NewMoney(1500), NewMoney(1000))
	if report.Profit != -500 {
		t.Errorf("Profit = %v, want -500", report.Profit)
	}
	if math.Abs(report.MarginPercent-(-50)) > 1e-9 {
		t.Errorf("MarginPercent = %v, want -50", report.MarginPercent)
	}
	if report.IsProfitable {
		t.Error("IsProfitable = true for a loss")
	}
}

func TestComputeProfit_ZeroGuards(t *testing.T) {
	// price == 0: margin is a sentinel 0, not a division crash.
	report := ComputeProfit(NewMoney(100), NewMoney(0))
	if report.MarginPercent != 0 {
		t.Errorf("MarginPercent with price 0 = %v, want 0", report.MarginPercent)
	}
	if report.Profit != -100 {
		t.Errorf("Profit = %v, want -100", report.Profit)
	}

	// cost == 0: roi is a sentinel 0.
	report = ComputeProfit(NewMoney(0), NewMoney(100))
	if report.ROIPercent != 0 {
		t.Errorf("ROIPercent with cost 0 = %v, want 0", report.ROIPercent)
	}
	if math.Abs(report.MarginPercent-100) > 1e-9 {
		t.Errorf("MarginPercent = %v, want 100", report.MarginPercent)
	}
}

func TestComputeProfit_EmptyForm(t *testing.T) {
	// cost == 0 and price == 0 is the empty-form state, not an error.
	report := ComputeProfit(NewMoney(0), NewMoney(0))
	if report.Profit != 0 || report.MarginPercent != 0 || report.ROIPercent != 0 {
		t.Errorf("empty form report = %+v, want all zeros", report)
	}
	if report.IsProfitable {
		t.Error("empty form must not be profitable")
	}
}

// --- AssertProfitable: fails iff cost >= price and both > 0 ---

func TestAssertProfitable_Gate(t *testing.T) {
	cases := []struct {
		cost, price float64
		wantErr     bool
	}{
		{1000, 1500, false},
		{1500, 1000, true},
		{1000, 1000, true}, // equal counts as not profitable
		{0, 0, false},      // empty form
		{0, 100, false},    // free sourcing is fine
		{100, 0, false},    // price not set yet, gate stays open
	}
	for _, tc := range cases {
		err := AssertProfitable(NewMoney(tc.cost), NewMoney(tc.price))
		if (err != nil) != tc.wantErr {
			t.Errorf("AssertProfitable(%v, %v) err = %v, wantErr %v", tc.cost, tc.price, err, tc.wantErr)
			continue
		}
		if err != nil {
			if err.Kind != apperr.KindCostGreaterThanPrice {
				t.Errorf("kind = %s, want cost_greater_than_price", err.Kind)
			}
			if v, ok := err.Context["cost"].AsNumber(); !ok || v != tc.cost {
				t.Errorf("context cost = (%v, %v), want (%v, true)", v, ok, tc.cost)
			}
		}
	}
}

// --- formatting: rounding happens only at format time ---

func TestFormatting(t *testing.T) {
	report := ComputeProfit(NewMoney(1000), NewMoney(1500))
	if got := FormatPercent(report.MarginPercent); got != "33.3%" {
		t.Errorf("FormatPercent = %q, want 33.3%%", got)
	}
	if got := FormatPercent(report.ROIPercent); got != "50.0%" {
		t.Errorf("FormatPercent = %q, want 50.0%%", got)
	}
	if got := FormatAmount(499.996); got != "500.00" {
		t.Errorf("FormatAmount = %q, want 500.00", got)
	}
	// The stored value keeps full precision so repeated recalculation does
	// not compound rounding error.
	if report.MarginPercent == 33.3 {
		t.Error("stored margin appears to be pre-rounded")
	}
}
