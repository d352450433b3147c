package rules

import "github.com/shopspring/decimal"

// PriceRange is the price bucket label of a transformed record.
type PriceRange string

const (
	PriceRangeLow     PriceRange = "Low"
	PriceRangeMedium  PriceRange = "Medium"
	PriceRangeHigh    PriceRange = "High"
	PriceRangePremium PriceRange = "Premium"
)

// bucket bounds are inclusive upper limits, checked in order.
var buckets = []struct {
	max   decimal.Decimal
	label PriceRange
}{
	{decimal.NewFromInt(10), PriceRangeLow},
	{decimal.NewFromInt(100), PriceRangeMedium},
	{decimal.NewFromInt(500), PriceRangeHigh},
}

// ClassifyPrice returns the bucket for price. Anything above 500 is Premium.
func ClassifyPrice(price decimal.Decimal) PriceRange {
	for _, b := range buckets {
		if price.LessThanOrEqual(b.max) {
			return b.label
		}
	}
	return PriceRangePremium
}
