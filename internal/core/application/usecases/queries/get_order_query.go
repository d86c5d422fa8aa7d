// Package queries holds the read side of the subcontract service. Handlers
// read the tables written by the order repository with raw SQL and return flat
// response structs; they never load the aggregate.
package queries

import (
	"errors"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its item lines.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	resp, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
//	fmt.Printf("%s is %s, %d pieces still out\n", resp.Number, resp.StatusLabel, resp.RemainingQty())
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the order header as shown to a user.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	Number             string
	SubcontractorID    kernel.UUID
	SubcontractorName  string
	Operation          string
	IssuedDate         time.Time
	ExpectedReturnDate *time.Time
	EstimatedCost      *decimal.Decimal
	Status             order.Status
	StatusLabel        string
	StatusBadge        string
	NextStatuses       []order.Status
	ShipmentCount      int
	Version            int64
	Items              []GetOrderItemResponse
}

// RemainingQty sums the remaining quantity of all items.
func (r GetOrderQueryResponse) RemainingQty() int {
	total := 0
	for _, item := range r.Items {
		total += item.RemainingQty
	}
	return total
}

type GetOrderItemResponse struct {
	ID           kernel.UUID
	ProductID    kernel.UUID
	ProductName  string
	ProductCode  string
	IssuedQty    int
	ReturnedQty  int
	DefectQty    int
	WastageQty   int
	RemainingQty int
}
