package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.header(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Items, err = h.items(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) header(db *gorm.DB, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	var (
		resp           GetOrderQueryResponse
		id, contractor uuid.UUID
		status         int
		cost           decimal.NullDecimal
		expectedReturn *time.Time
	)

	row := db.Raw(`
		SELECT
			o.id,
			o.number,
			o.subcontractor_id,
			o.subcontractor_name,
			o.operation,
			o.issued_date,
			o.expected_return_date,
			o.estimated_cost,
			o.status,
			o.version,
			(SELECT COUNT(*) FROM subcontract_shipments s WHERE s.order_id = o.id) AS shipment_count
		FROM subcontract_orders o
		WHERE o.id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.Number,
		&contractor,
		&resp.SubcontractorName,
		&resp.Operation,
		&resp.IssuedDate,
		&expectedReturn,
		&cost,
		&status,
		&resp.Version,
		&resp.ShipmentCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, errs.NewStorageError("load order", err)
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.SubcontractorID, err = kernel.UUIDFromBytes(contractor[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ExpectedReturnDate = expectedReturn
	if cost.Valid {
		resp.EstimatedCost = &cost.Decimal
	}
	resp.Status = order.Status(status)
	resp.StatusLabel = resp.Status.Label()
	resp.StatusBadge = resp.Status.Badge()
	resp.NextStatuses = resp.Status.NextStatuses()
	return resp, nil
}

func (h GetOrderQueryHandler) items(db *gorm.DB, orderID kernel.UUID) ([]GetOrderItemResponse, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			product_id,
			product_name,
			product_code,
			issued_qty,
			returned_qty,
			defect_qty,
			wastage_qty
		FROM subcontract_order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, errs.NewStorageError("load order items", err)
	}
	defer rows.Close()

	items := make([]GetOrderItemResponse, 0)
	for rows.Next() {
		var (
			item          GetOrderItemResponse
			id, productID uuid.UUID
		)
		if err = rows.Scan(
			&id,
			&productID,
			&item.ProductName,
			&item.ProductCode,
			&item.IssuedQty,
			&item.ReturnedQty,
			&item.DefectQty,
			&item.WastageQty,
		); err != nil {
			return nil, errs.NewStorageError("load order items", err)
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		item.RemainingQty = item.IssuedQty - item.ReturnedQty - item.DefectQty - item.WastageQty
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("load order items", err)
	}

	return items, nil
}
