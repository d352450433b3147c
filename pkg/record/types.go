// Package record parses raw product catalog lines into validated records.
package record

import "github.com/shopspring/decimal"

// FieldCount is the number of comma-separated fields in a product line.
const FieldCount = 4

// Record is a product line that passed structural and type validation.
type Record struct {
	// ID is the product identifier from the first field.
	ID int

	// Name is the trimmed product name, case preserved.
	Name string

	// Price is the exact decimal price from the third field.
	Price decimal.Decimal

	// Category is the trimmed product category.
	Category string
}

// Reason classifies why a line was rejected.
type Reason string

const (
	ReasonEmpty        Reason = "empty"
	ReasonFieldCount   Reason = "field_count"
	ReasonInvalidID    Reason = "invalid_id"
	ReasonInvalidPrice Reason = "invalid_price"
)

// Reasons lists every rejection reason in a stable order.
var Reasons = []Reason{ReasonEmpty, ReasonFieldCount, ReasonInvalidID, ReasonInvalidPrice}

// Rejection describes a line that could not be turned into a Record.
type Rejection struct {
	Reason Reason

	// Detail is a human-readable explanation for diagnostics.
	Detail string
}

// Result holds exactly one of an accepted Record or a Rejection.
type Result struct {
	Record    Record
	Rejection *Rejection
}

// OK reports whether the line was accepted.
func (r Result) OK() bool {
	return r.Rejection == nil
}

func accepted(rec Record) Result {
	return Result{Record: rec}
}

func rejected(reason Reason, detail string) Result {
	return Result{Rejection: &Rejection{Reason: reason, Detail: detail}}
}
