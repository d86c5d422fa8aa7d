// Package ports defines the contracts between the subcontract order core and
// its infrastructure: persistence of the order aggregate and the warehouse and
// product directories the core consults.
package ports

import (
	"context"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An order is always stored and loaded whole: header, items, shipment ledger
// and correction audit trail.
type OrderRepository interface {
	// Add persists a new order. The stored row starts at version 1 and the
	// aggregate's version is advanced to match.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists an existing order with a compare-and-set on its version.
	//
	// Errors:
	//   - errs.ErrObjectNotFound when the order does not exist
	//   - *errs.ConcurrentModificationError when the stored version differs
	//     from aggregate.Version()
	//   - *errs.StorageError when the store fails
	//
	// Nothing is written when an error is returned.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id, or returns errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
