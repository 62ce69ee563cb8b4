package money_test

import (
	"houserental/shared/money"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		expected int64
		wantErr  bool
	}{
		{name: "usd", amount: "1800.00", currency: "usd", expected: 180000},
		{name: "cents are kept exactly", amount: "19.99", currency: "USD", expected: 1999},
		{name: "sub cent truncated", amount: "10.005", currency: "eur", expected: 1000},
		{name: "zero decimal currency", amount: "5000", currency: "jpy", expected: 5000},
		{name: "zero", amount: "0", currency: "usd", expected: 0},
		{name: "negative", amount: "-1", currency: "usd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ToMinorUnits(decimal.RequireFromString(tt.amount), tt.currency)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}

			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	if got := money.FromMinorUnits(180000, "usd"); !got.Equal(decimal.RequireFromString("1800")) {
		t.Errorf("expected 1800, got %s", got)
	}

	if got := money.FromMinorUnits(5000, "jpy"); !got.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected 5000, got %s", got)
	}
}

func TestNights(t *testing.T) {
	got := money.Nights(decimal.RequireFromString("100.00"), 18)
	if got.StringFixed(2) != "1800.00" {
		t.Errorf("expected 1800.00, got %s", got.StringFixed(2))
	}

	got = money.Nights(decimal.RequireFromString("0.10"), 3)
	if got.StringFixed(2) != "0.30" {
		t.Errorf("expected 0.30, got %s", got.StringFixed(2))
	}
}
