package directoryrepo

import (
	"context"
	"errors"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/ports"
	"subcontract/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductDirectory implements ports.ProductDirectory.
type GormProductDirectory struct {
	db *gorm.DB
}

func NewGormProductDirectory(db *gorm.DB) *GormProductDirectory {
	return &GormProductDirectory{db: db}
}

func (d *GormProductDirectory) Get(ctx context.Context, id kernel.UUID) (ports.Product, error) {
	if err := id.Validate(); err != nil {
		return ports.Product{}, err
	}

	var dto ProductDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Product{}, errs.NewObjectNotFoundError("product", id.String())
		}
		return ports.Product{}, errs.NewStorageError("load product", err)
	}

	return ports.Product{ID: id, Name: dto.Name, Code: dto.Code}, nil
}

// GormWarehouseDirectory implements ports.WarehouseDirectory.
type GormWarehouseDirectory struct {
	db *gorm.DB
}

func NewGormWarehouseDirectory(db *gorm.DB) *GormWarehouseDirectory {
	return &GormWarehouseDirectory{db: db}
}

func (d *GormWarehouseDirectory) Exists(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	if err := d.db.WithContext(ctx).Model(&WarehouseDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, errs.NewStorageError("check warehouse", err)
	}
	return count > 0, nil
}
