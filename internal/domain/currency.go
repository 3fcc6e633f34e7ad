package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrUnknownCurrency    = errors.New("currency has no configured precision")
	ErrAmountPrecision    = errors.New("amount is not representable at the asset's native precision")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidCountryCode = errors.New("country code must be two letters")
)

// MaxTransferAmount bounds a single transfer.
const MaxTransferAmount = "1000000000" // 1 billion

// currencyPrecision maps a currency to the fractional digits of its
// bridge asset. The table is explicit and currency-keyed: stable assets
// conventionally carry 6 decimals while native-gas-token-denominated
// assets carry 18, and the difference must never be guessed from the
// amount's magnitude.
var currencyPrecision = map[string]int32{
	"USDC": 6,
	"USDT": 6,
	"USD":  6,
	"CAD":  6,
	"EUR":  6,
	"GBP":  6,
	"MXN":  6,
	"ETH":  18,
	"WETH": 18,
}

// CurrencyPrecision returns the native fractional digits for a currency.
func CurrencyPrecision(currency string) (int32, error) {
	p, ok := currencyPrecision[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}
	return p, nil
}

// ValidateCurrencyAmount checks that amount is representable at the
// currency's native precision and within bounds. Called before any
// provider is touched: a precision mismatch is a configuration error,
// not an operational failure.
func ValidateCurrencyAmount(currency string, amount decimal.Decimal) error {
	precision, err := CurrencyPrecision(currency)
	if err != nil {
		return err
	}

	if !amount.Equal(amount.Truncate(precision)) {
		return fmt.Errorf("%w: %s has %d fractional digits, %s allows %d",
			ErrAmountPrecision, amount.String(), -amount.Exponent(), currency, precision)
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// NormalizeAmount scales a decimal amount to the asset's smallest unit
// ("wei"-style integer) for the bridge swap call.
func NormalizeAmount(currency string, amount decimal.Decimal) (decimal.Decimal, error) {
	precision, err := CurrencyPrecision(currency)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Shift(precision), nil
}

// ValidateCountryCode validates an ISO 3166-1 alpha-2 country code shape.
func ValidateCountryCode(code string) error {
	code = strings.TrimSpace(code)
	if len(code) != 2 {
		return fmt.Errorf("%w: %q", ErrInvalidCountryCode, code)
	}
	for _, c := range code {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return fmt.Errorf("%w: %q", ErrInvalidCountryCode, code)
		}
	}
	return nil
}
