package queries

import (
	"errors"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/guard"
)

var ErrGetShipmentTotalsQueryIsNotConstructed = errors.New(
	"GetShipmentTotalsQuery must be created via NewGetShipmentTotalsQuery constructor",
)

// GetShipmentTotalsQuery sums an order's ledger per product for one direction.
type GetShipmentTotalsQuery struct {
	orderID   kernel.UUID
	direction order.Direction

	guard guard.ConstructorGuard
}

func NewGetShipmentTotalsQuery(orderID kernel.UUID, direction order.Direction) (GetShipmentTotalsQuery, error) {
	if err := errors.Join(orderID.Validate(), direction.Validate()); err != nil {
		return GetShipmentTotalsQuery{}, err
	}
	return GetShipmentTotalsQuery{
		orderID:   orderID,
		direction: direction,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetShipmentTotalsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTotalsQueryIsNotConstructed)
}

func (q GetShipmentTotalsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetShipmentTotalsQuery) Direction() order.Direction {
	return q.direction
}

// GetShipmentTotalsQueryResponse is the ledger total of one product.
type GetShipmentTotalsQueryResponse struct {
	ProductID  kernel.UUID
	Quantity   int
	DefectQty  int
	WastageQty int
}
