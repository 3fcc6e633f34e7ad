package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrencyPrecision(t *testing.T) {
	tests := []struct {
		currency  string
		precision int32
		expectErr bool
	}{
		{currency: "USDC", precision: 6},
		{currency: "usdc", precision: 6},
		{currency: " USDT ", precision: 6},
		{currency: "ETH", precision: 18},
		{currency: "WETH", precision: 18},
		{currency: "DOGE", expectErr: true},
		{currency: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			p, err := CurrencyPrecision(tt.currency)

			if tt.expectErr {
				if !errors.Is(err, ErrUnknownCurrency) {
					t.Errorf("expected ErrUnknownCurrency, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p != tt.precision {
				t.Errorf("precision = %d, want %d", p, tt.precision)
			}
		})
	}
}

func TestValidateCurrencyAmount(t *testing.T) {
	tests := []struct {
		name        string
		currency    string
		amount      string
		expectError error
	}{
		{name: "whole usdc", currency: "USDC", amount: "100"},
		{name: "six decimals usdc", currency: "USDC", amount: "0.000001"},
		{name: "seven decimals usdc", currency: "USDC", amount: "0.0000001", expectError: ErrAmountPrecision},
		{name: "eighteen decimals eth", currency: "ETH", amount: "0.000000000000000001"},
		{name: "over maximum", currency: "USDC", amount: "1000000001", expectError: ErrAmountTooLarge},
		{name: "unknown currency", currency: "ZZZ", amount: "1", expectError: ErrUnknownCurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			err := ValidateCurrencyAmount(tt.currency, amount)

			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestNormalizeAmount(t *testing.T) {
	// 1.5 USDC = 1_500_000 base units; the scale comes from the table,
	// never from the magnitude of the amount.
	got, err := NormalizeAmount("USDC", decimal.RequireFromString("1.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(1_500_000)) {
		t.Errorf("normalized = %s, want 1500000", got)
	}

	got, err = NormalizeAmount("ETH", decimal.RequireFromString("1.5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1500000000000000000")) {
		t.Errorf("normalized = %s, want 1500000000000000000", got)
	}
}

func TestValidateCountryCode(t *testing.T) {
	for _, valid := range []string{"US", "ca", "Gb"} {
		if err := ValidateCountryCode(valid); err != nil {
			t.Errorf("ValidateCountryCode(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "USA", "1A", "U-"} {
		if err := ValidateCountryCode(invalid); !errors.Is(err, ErrInvalidCountryCode) {
			t.Errorf("ValidateCountryCode(%q) = %v, want ErrInvalidCountryCode", invalid, err)
		}
	}
}
