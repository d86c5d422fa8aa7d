package memory

import (
	"context"
	"sync"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/ports"
	"subcontract/internal/pkg/errs"
)

var (
	_ ports.ProductDirectory   = (*ProductDirectory)(nil)
	_ ports.WarehouseDirectory = (*WarehouseDirectory)(nil)
)

// ProductDirectory is a fixed product list, seeded with Put.
type ProductDirectory struct {
	mu       sync.RWMutex
	products map[kernel.UUID]ports.Product
}

func NewProductDirectory(products ...ports.Product) *ProductDirectory {
	d := &ProductDirectory{products: make(map[kernel.UUID]ports.Product, len(products))}
	for _, p := range products {
		d.Put(p)
	}
	return d
}

func (d *ProductDirectory) Put(p ports.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.products[p.ID] = p
}

func (d *ProductDirectory) Get(_ context.Context, id kernel.UUID) (ports.Product, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.products[id]
	if !ok {
		return ports.Product{}, errs.NewObjectNotFoundError("product", id.String())
	}
	return p, nil
}

type WarehouseDirectory struct {
	mu         sync.RWMutex
	warehouses map[kernel.UUID]struct{}
}

func NewWarehouseDirectory(ids ...kernel.UUID) *WarehouseDirectory {
	d := &WarehouseDirectory{warehouses: make(map[kernel.UUID]struct{}, len(ids))}
	for _, id := range ids {
		d.Put(id)
	}
	return d
}

func (d *WarehouseDirectory) Put(id kernel.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.warehouses[id] = struct{}{}
}

func (d *WarehouseDirectory) Exists(_ context.Context, id kernel.UUID) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.warehouses[id]
	return ok, nil
}
