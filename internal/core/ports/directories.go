package ports

import (
	"context"

	"subcontract/internal/core/domain/model/kernel"
)

// Product is the directory view of a product an order item refers to.
type Product struct {
	ID   kernel.UUID
	Name string
	Code string
}

// ProductDirectory resolves products by id.
type ProductDirectory interface {
	// Get returns errs.ErrObjectNotFound for an unknown product.
	Get(ctx context.Context, id kernel.UUID) (Product, error)
}

// WarehouseDirectory answers whether a warehouse exists.
type WarehouseDirectory interface {
	Exists(ctx context.Context, id kernel.UUID) (bool, error)
}
