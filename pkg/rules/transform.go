// Package rules applies the catalog business rules to parsed product records.
package rules

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ccollicutt/productetl/pkg/record"
)

// Category names the rules look at or produce.
const (
	CategoryElectronics        = "Electronics"
	CategoryPremiumElectronics = "Premium Electronics"
)

// PricePlaces is the number of fractional digits kept after rounding.
const PricePlaces = 2

var (
	electronicsDiscount = decimal.RequireFromString("0.9")
	premiumThreshold    = decimal.NewFromInt(500)
)

// Transformed is a record after all business rules have been applied.
type Transformed struct {
	ID         int
	Name       string
	Price      decimal.Decimal
	Category   string
	PriceRange PriceRange
}

// Transform applies the business rules to a parsed record, in order:
//  1. upper-case the name
//  2. discount Electronics by 10%
//  3. round the price to two places, halves away from zero
//  4. relabel Electronics above 500.00 as Premium Electronics
//  5. classify the rounded price into a PriceRange
//
// Transform is pure and accepts every Record.
func Transform(rec record.Record) Transformed {
	price := rec.Price
	isElectronics := rec.Category == CategoryElectronics
	if isElectronics {
		price = price.Mul(electronicsDiscount)
	}
	price = price.Round(PricePlaces)

	category := rec.Category
	if isElectronics && price.GreaterThan(premiumThreshold) {
		category = CategoryPremiumElectronics
	}

	return Transformed{
		ID:         rec.ID,
		Name:       strings.ToUpper(rec.Name),
		Price:      price,
		Category:   category,
		PriceRange: ClassifyPrice(price),
	}
}
