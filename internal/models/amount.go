package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitExp is the exponent of one minor unit relative to the major unit.
const minorUnitExp = -2

// Amount is a currency value counted in minor units.
type Amount int64

// ParseAmount parses a major-unit decimal string ("12.34") into minor units.
// More than two fractional digits is an error rather than a silent rounding.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.Exponent() < minorUnitExp && !d.Equal(d.Round(-minorUnitExp)) {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}
	return Amount(d.Shift(-minorUnitExp).IntPart()), nil
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), minorUnitExp)
}

// String formats the amount in major units with two decimals.
func (a Amount) String() string {
	return a.Decimal().StringFixed(-minorUnitExp)
}

// Abs returns the absolute value.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// MarshalJSON encodes the amount as an integer count of minor units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(a))
}

// UnmarshalJSON accepts an integer count of minor units. Fractional numbers are
// rejected so that binary floating point never crosses the boundary.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be an integer count of minor units: %w", err)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("amount must be an integer count of minor units: %w", err)
	}
	*a = Amount(v)
	return nil
}
