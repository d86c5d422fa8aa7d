package orderrepo

import (
	"context"
	"errors"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order with all its children at the next version.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageError("insert order", err)
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the header with a compare-and-set on version, then brings the
// children in line: item totals are upserted, ledger and audit rows that are
// not stored yet are inserted. Everything runs in one (nested) transaction.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).
			Where("id = ? AND version = ?", dto.ID, dto.Version).
			Updates(map[string]any{
				"status":               dto.Status,
				"expected_return_date": dto.ExpectedReturnDate,
				"estimated_cost":       dto.EstimatedCost,
				"version":              gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return errs.NewStorageError("update order", result.Error)
		}
		if result.RowsAffected == 0 {
			return r.versionConflict(tx, aggregate)
		}

		if len(dto.Items) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"returned_qty", "defect_qty", "wastage_qty"}),
			}).Create(&dto.Items).Error; err != nil {
				return errs.NewStorageError("save order items", err)
			}
		}

		if len(dto.Shipments) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Shipments).Error; err != nil {
				return errs.NewStorageError("append shipments", err)
			}
		}

		if len(dto.Corrections) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.Corrections).Error; err != nil {
				return errs.NewStorageError("append item corrections", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads the order with its children in insertion order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	byPosition := func(db *gorm.DB) *gorm.DB { return db.Order("position") }

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", byPosition).
		Preload("Shipments", byPosition).
		Preload("Shipments.Lines", byPosition).
		Preload("Corrections", byPosition).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStorageError("load order", err)
	}

	return toDomain(dto)
}

// versionConflict tells a missing order apart from a stale one.
func (r *GormOrderRepository) versionConflict(tx *gorm.DB, aggregate *order.Order) error {
	var current OrderDTO
	err := tx.Select("id", "version").First(&current, "id = ?", aggregate.ID().Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if err != nil {
		return errs.NewStorageError("read order version", err)
	}
	return errs.NewConcurrentModificationError("order", aggregate.ID().String(), aggregate.Version(), current.Version)
}
