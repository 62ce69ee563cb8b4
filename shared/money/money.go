// Package money converts decimal amounts to and from the minor units used by payment providers.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

// zeroDecimal lists currencies without a minor unit.
var zeroDecimal = map[string]struct{}{
	"bif": {}, "clp": {}, "djf": {}, "gnf": {}, "jpy": {}, "kmf": {}, "krw": {}, "mga": {},
	"pyg": {}, "rwf": {}, "ugx": {}, "vnd": {}, "vuv": {}, "xaf": {}, "xof": {}, "xpf": {},
}

func exponent(currency string) int32 {
	if _, ok := zeroDecimal[strings.ToLower(currency)]; ok {
		return 0
	}

	return 2
}

// ToMinorUnits returns amount expressed in the smallest unit of currency, truncating sub-unit fractions.
func ToMinorUnits(amount decimal.Decimal, currency string) (int64, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}

	return amount.Shift(exponent(currency)).Truncate(0).IntPart(), nil
}

func FromMinorUnits(units int64, currency string) decimal.Decimal {
	return decimal.New(units, -exponent(currency))
}

// Nights multiplies a nightly price by the number of nights, rounded to cents.
func Nights(pricePerNight decimal.Decimal, nights int) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(2)
}
