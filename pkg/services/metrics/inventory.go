package metrics

import (
	"errors"
	"fmt"

	"github.com/mathe-alves-alv/analise-dre/pkg/models/domain"
	"github.com/mathe-alves-alv/analise-dre/pkg/services/normalize"
	"github.com/shopspring/decimal"
)

const (
	FieldOpening = "opening"
	FieldClosing = "closing"
)

var ErrInvalidInventory = errors.New("invalid inventory value")

// ValidationError names the inventory field a caller got wrong.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", ErrInvalidInventory, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInventory
}

// ParseInventory reads both inventory values. Either canonical ("38000.50") or
// report ("38.000,50") notation is accepted; negatives are rejected.
func ParseInventory(opening, closing string) (domain.InventorySnapshot, error) {
	o, err := parseInventoryValue(FieldOpening, opening)
	if err != nil {
		return domain.InventorySnapshot{}, err
	}
	c, err := parseInventoryValue(FieldClosing, closing)
	if err != nil {
		return domain.InventorySnapshot{}, err
	}
	return domain.InventorySnapshot{Opening: o, Closing: c}, nil
}

// NewInventory checks values that are already numeric.
func NewInventory(opening, closing decimal.Decimal) (domain.InventorySnapshot, error) {
	if opening.IsNegative() {
		return domain.InventorySnapshot{}, &ValidationError{Field: FieldOpening, Value: opening.String(), Reason: "must not be negative"}
	}
	if closing.IsNegative() {
		return domain.InventorySnapshot{}, &ValidationError{Field: FieldClosing, Value: closing.String(), Reason: "must not be negative"}
	}
	return domain.InventorySnapshot{Opening: opening, Closing: closing}, nil
}

func parseInventoryValue(field, raw string) (decimal.Decimal, error) {
	d, err := normalize.Decimal(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Value: raw, Reason: "not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Value: raw, Reason: "must not be negative"}
	}
	return d, nil
}
