package queries

import (
	"context"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetShipmentTotalsQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentTotalsQueryHandler(db *gorm.DB) GetShipmentTotalsQueryHandler {
	return GetShipmentTotalsQueryHandler{db: db}
}

// Handle returns one row per product that appears in the ledger for the
// requested direction, sorted by product id. Products without shipments are
// not listed. An unknown order yields errs.ErrObjectNotFound.
func (h GetShipmentTotalsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentTotalsQuery,
) ([]GetShipmentTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var count int64
	if err := db.Raw(`SELECT COUNT(*) FROM subcontract_orders WHERE id = ?`, query.OrderID().Bytes()).
		Scan(&count).Error; err != nil {
		return nil, errs.NewStorageError("load order", err)
	}
	if count == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	rows, err := db.Raw(`
		SELECT
			l.product_id,
			SUM(l.quantity),
			SUM(l.defect_qty),
			SUM(l.wastage_qty)
		FROM subcontract_shipment_lines l
		JOIN subcontract_shipments s ON s.id = l.shipment_id
		WHERE s.order_id = ? AND s.direction = ?
		GROUP BY l.product_id
		ORDER BY l.product_id
	`, query.OrderID().Bytes(), int(query.Direction())).Rows()
	if err != nil {
		return nil, errs.NewStorageError("sum shipment lines", err)
	}
	defer rows.Close()

	totals := make([]GetShipmentTotalsQueryResponse, 0)
	for rows.Next() {
		var (
			total     GetShipmentTotalsQueryResponse
			productID uuid.UUID
		)
		if err = rows.Scan(&productID, &total.Quantity, &total.DefectQty, &total.WastageQty); err != nil {
			return nil, errs.NewStorageError("sum shipment lines", err)
		}
		if total.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("sum shipment lines", err)
	}

	return totals, nil
}
