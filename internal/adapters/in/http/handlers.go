package http

import (
	"context"

	"subcontract/internal/core/application/usecases/commands"
	"subcontract/internal/core/application/usecases/queries"
	"subcontract/internal/core/domain/model/order"
)

// The server depends on these instead of the concrete handler structs so the
// read side can be served by PostgreSQL or by the in-memory store.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	AddOrderItemHandler interface {
		Handle(ctx context.Context, cmd commands.AddOrderItemCommand) (*order.Item, error)
	}

	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	RecordShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.RecordShipmentCommand) (order.Shipment, error)
	}

	CorrectItemTotalsHandler interface {
		Handle(ctx context.Context, cmd commands.CorrectItemTotalsCommand) (*order.Item, error)
	}

	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}

	GetShipmentTotalsHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentTotalsQuery) ([]queries.GetShipmentTotalsQueryResponse, error)
	}

	GetOverdueOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOverdueOrdersQuery) ([]queries.GetOverdueOrdersQueryResponse, error)
	}
)

// Handlers groups the use cases the server exposes.
type Handlers struct {
	CreateOrder       CreateOrderHandler
	AddOrderItem      AddOrderItemHandler
	ChangeOrderStatus ChangeOrderStatusHandler
	RecordShipment    RecordShipmentHandler
	CorrectItemTotals CorrectItemTotalsHandler
	GetOrder          GetOrderHandler
	GetShipmentTotals GetShipmentTotalsHandler
	GetOverdueOrders  GetOverdueOrdersHandler
}
