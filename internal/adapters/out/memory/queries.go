package memory

import (
	"context"
	"slices"
	"strings"

	"subcontract/internal/core/application/usecases/queries"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"
)

// GetOrderQueryHandler answers queries.GetOrderQuery from a Store.
type GetOrderQueryHandler struct {
	store *Store
}

func NewGetOrderQueryHandler(store *Store) GetOrderQueryHandler {
	return GetOrderQueryHandler{store: store}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return queries.GetOrderQueryResponse{}, err
	}
	o, err := NewOrderRepository(h.store).Get(ctx, query.OrderID())
	if err != nil {
		return queries.GetOrderQueryResponse{}, err
	}

	resp := queries.GetOrderQueryResponse{
		ID:                 o.ID(),
		Number:             o.Number(),
		SubcontractorID:    o.Subcontractor().ID,
		SubcontractorName:  o.Subcontractor().Name,
		Operation:          o.Operation(),
		IssuedDate:         o.IssuedDate(),
		ExpectedReturnDate: o.ExpectedReturnDate(),
		EstimatedCost:      o.EstimatedCost(),
		Status:             o.Status(),
		StatusLabel:        o.Status().Label(),
		StatusBadge:        o.Status().Badge(),
		NextStatuses:       o.Status().NextStatuses(),
		ShipmentCount:      len(o.Shipments()),
		Version:            o.Version(),
		Items:              make([]queries.GetOrderItemResponse, 0, len(o.Items())),
	}
	for _, item := range o.Items() {
		resp.Items = append(resp.Items, queries.GetOrderItemResponse{
			ID:           item.ID(),
			ProductID:    item.ProductID(),
			ProductName:  item.ProductName(),
			ProductCode:  item.ProductCode(),
			IssuedQty:    item.IssuedQty(),
			ReturnedQty:  item.ReturnedQty(),
			DefectQty:    item.DefectQty(),
			WastageQty:   item.WastageQty(),
			RemainingQty: item.RemainingQty(),
		})
	}
	return resp, nil
}

// GetShipmentTotalsQueryHandler answers queries.GetShipmentTotalsQuery from a Store.
type GetShipmentTotalsQueryHandler struct {
	store *Store
}

func NewGetShipmentTotalsQueryHandler(store *Store) GetShipmentTotalsQueryHandler {
	return GetShipmentTotalsQueryHandler{store: store}
}

// Handle lists products in item order, skipping products without shipments.
func (h GetShipmentTotalsQueryHandler) Handle(
	ctx context.Context,
	query queries.GetShipmentTotalsQuery,
) ([]queries.GetShipmentTotalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	o, err := NewOrderRepository(h.store).Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	totals := o.ShipmentTotals(query.Direction())
	out := make([]queries.GetShipmentTotalsQueryResponse, 0, len(totals))
	for _, item := range o.Items() {
		t, ok := totals[item.ProductID()]
		if !ok {
			continue
		}
		out = append(out, queries.GetShipmentTotalsQueryResponse{
			ProductID:  item.ProductID(),
			Quantity:   t.Quantity,
			DefectQty:  t.Defect,
			WastageQty: t.Wastage,
		})
	}
	return out, nil
}

// GetOverdueOrdersQueryHandler answers queries.GetOverdueOrdersQuery from a Store.
type GetOverdueOrdersQueryHandler struct {
	store *Store
}

func NewGetOverdueOrdersQueryHandler(store *Store) GetOverdueOrdersQueryHandler {
	return GetOverdueOrdersQueryHandler{store: store}
}

func (h GetOverdueOrdersQueryHandler) Handle(
	ctx context.Context,
	query queries.GetOverdueOrdersQuery,
) ([]queries.GetOverdueOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	overdue := make([]queries.GetOverdueOrdersQueryResponse, 0)
	for _, snapshot := range h.store.all() {
		o, err := order.RestoreOrder(snapshot)
		if err != nil {
			return nil, errs.NewStorageError("load order", err)
		}
		if !o.IsOverdue(query.AsOf()) {
			continue
		}
		overdue = append(overdue, queries.GetOverdueOrdersQueryResponse{
			ID:                 o.ID(),
			Number:             o.Number(),
			SubcontractorName:  o.Subcontractor().Name,
			Status:             o.Status(),
			ExpectedReturnDate: *o.ExpectedReturnDate(),
			RemainingQty:       o.RemainingQty(),
		})
	}

	slices.SortFunc(overdue, func(a, b queries.GetOverdueOrdersQueryResponse) int {
		if c := a.ExpectedReturnDate.Compare(b.ExpectedReturnDate); c != 0 {
			return c
		}
		return strings.Compare(a.Number, b.Number)
	})
	return overdue, nil
}
