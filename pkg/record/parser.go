package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse turns one raw CSV line into a Record or a Rejection.
// Lines must carry exactly FieldCount comma-separated fields: id, name,
// price, category. Quoting and embedded commas are not supported.
// Parse has no side effects; the same line always yields the same Result.
func Parse(line string) Result {
	line = strings.TrimSpace(line)
	if line == "" {
		return rejected(ReasonEmpty, "line is empty")
	}

	parts := strings.Split(line, ",")
	if len(parts) != FieldCount {
		return rejected(ReasonFieldCount, fmt.Sprintf("got %d fields, want %d", len(parts), FieldCount))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	id, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return rejected(ReasonInvalidID, fmt.Sprintf("id %q is not an integer", parts[0]))
	}

	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return rejected(ReasonInvalidPrice, fmt.Sprintf("price %q is not a decimal", parts[2]))
	}

	return accepted(Record{
		ID:       int(id),
		Name:     parts[1],
		Price:    price,
		Category: parts[3],
	})
}
