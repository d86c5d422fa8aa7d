package order

import (
	"errors"
	"fmt"

	"subcontract/internal/core/domain/model/kernel"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrInvalidTransition is wrapped by *InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOrderTerminal rejects shipments and corrections on COMPLETED or CANCELLED orders.
	ErrOrderTerminal = errors.New("order is in a terminal status")

	ErrEmptyShipment = errors.New("shipment has no lines")

	// ErrUnknownProduct is wrapped by *UnknownProductError.
	ErrUnknownProduct = errors.New("product is not an item of the order")

	// ErrExceedsIssued is wrapped by *ExceedsIssuedError.
	ErrExceedsIssued = errors.New("quantity exceeds issued quantity")

	ErrItemsAreFixed    = errors.New("items can only be added while the order is a draft")
	ErrDuplicateProduct = errors.New("product is already an item of the order")
	ErrTotalsRegression = errors.New("correction lowers recorded totals without an audit note")
)

// InvalidTransitionError names the rejected move.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type UnknownProductError struct {
	ProductID kernel.UUID
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownProduct, e.ProductID)
}

func (e *UnknownProductError) Unwrap() error {
	return ErrUnknownProduct
}

// ExceedsIssuedError carries the numbers a caller needs to explain the rejection.
// Attempted is the total the operation would have produced (cumulative outbound
// for Outbound, returned + defect + wastage otherwise).
type ExceedsIssuedError struct {
	ProductID kernel.UUID
	Direction Direction
	Issued    int
	Attempted int
}

func (e *ExceedsIssuedError) Error() string {
	return fmt.Sprintf("%s: product %s attempted total %d exceeds issued quantity %d",
		ErrExceedsIssued, e.ProductID, e.Attempted, e.Issued)
}

func (e *ExceedsIssuedError) Unwrap() error {
	return ErrExceedsIssued
}
