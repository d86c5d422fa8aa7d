// Package directoryrepo reads the product and warehouse master data the
// subcontract core refers to. The tables are owned by the master data
// service; this package only reads them.
package directoryrepo

import (
	"github.com/google/uuid"
)

type ProductDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:255;not null"`
	Code string    `gorm:"size:64;index"`
}

func (ProductDTO) TableName() string {
	return "products"
}

type WarehouseDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:255;not null"`
}

func (WarehouseDTO) TableName() string {
	return "warehouses"
}

// Models lists the directory tables, for migrations and tests.
func Models() []any {
	return []any{&ProductDTO{}, &WarehouseDTO{}}
}
