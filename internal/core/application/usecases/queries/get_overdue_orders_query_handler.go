package queries

import (
	"context"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOverdueOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOverdueOrdersQueryHandler(db *gorm.DB) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{db: db}
}

// Handle returns overdue orders, the longest overdue first.
func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueOrdersQuery,
) ([]GetOverdueOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.subcontractor_name,
			o.status,
			o.expected_return_date,
			SUM(i.issued_qty - i.returned_qty - i.defect_qty - i.wastage_qty) AS remaining
		FROM subcontract_orders o
		JOIN subcontract_order_items i ON i.order_id = o.id
		WHERE o.status NOT IN ?
			AND o.expected_return_date IS NOT NULL
			AND o.expected_return_date < ?
		GROUP BY o.id
		HAVING SUM(i.issued_qty - i.returned_qty - i.defect_qty - i.wastage_qty) > 0
		ORDER BY o.expected_return_date, o.number
	`, terminalStatuses(), query.AsOf()).Rows()
	if err != nil {
		return nil, errs.NewStorageError("load overdue orders", err)
	}
	defer rows.Close()

	overdue := make([]GetOverdueOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp   GetOverdueOrdersQueryResponse
			id     uuid.UUID
			status int
		)
		if err = rows.Scan(
			&id,
			&resp.Number,
			&resp.SubcontractorName,
			&status,
			&resp.ExpectedReturnDate,
			&resp.RemainingQty,
		); err != nil {
			return nil, errs.NewStorageError("load overdue orders", err)
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		overdue = append(overdue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("load overdue orders", err)
	}

	return overdue, nil
}

func terminalStatuses() []int {
	terminal := make([]int, 0, 2)
	for _, s := range order.AllStatuses() {
		if s.IsTerminal() {
			terminal = append(terminal, int(s))
		}
	}
	return terminal
}
