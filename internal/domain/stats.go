package domain

import "github.com/shopspring/decimal"

// Counts holds collection cardinalities. A negative value means the store
// could not provide an estimate.
type Counts struct {
	Orders   int64
	Users    int64
	Products int64
}

func (c Counts) Unknown() bool {
	return c.Orders < 0 || c.Users < 0 || c.Products < 0
}

type Summary struct {
	// RevenueTotal is always exact, Counts may be estimates.
	RevenueTotal decimal.Decimal
	Counts
}

type CategorySummary struct {
	Category string
	Quantity int64
	Revenue  decimal.Decimal
}
