package pipeline

import (
	"strconv"
	"strings"

	"github.com/ccollicutt/productetl/pkg/rules"
)

// Header is the first line of every output file.
const Header = "ProductID,Name,Price,Category,PriceRange"

// FormatLine serializes a transformed record as an output CSV line.
// The price always carries exactly two fractional digits.
func FormatLine(t rules.Transformed) string {
	return strings.Join([]string{
		strconv.Itoa(t.ID),
		t.Name,
		t.Price.StringFixed(rules.PricePlaces),
		t.Category,
		string(t.PriceRange),
	}, ",")
}
