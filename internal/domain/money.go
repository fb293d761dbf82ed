package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MinorUnits returns the amount as an integer count of the currency's
// smallest unit, e.g. cents for USD. Halves round away from zero.
func (m Money) MinorUnits() (int64, error) {
	scale, _ := currency.Standard.Rounding(m.Currency)

	minor := m.Amount.Shift(int32(scale)).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return 0, fmt.Errorf("amount[%s] overflows minor units", m.Amount)
	}

	return minor.IntPart(), nil
}

func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency.String()
}
