package commands

import (
	"context"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/core/ports"
)

// CreateOrderCommandHandler stores a new DRAFT order. Product names and codes
// are copied from the product directory onto the item lines.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	products   ports.ProductDirectory
}

// NewCreateOrderCommandHandler resolves product names and codes through products.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, products ports.ProductDirectory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		products:   products,
	}
}

// Handle builds the aggregate and adds it in one transaction. Unknown products
// fail with errs.ErrObjectNotFound before anything is written.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Number(),
		order.Subcontractor{ID: cmd.SubcontractorID(), Name: cmd.SubcontractorName()},
		cmd.Operation(),
		cmd.IssuedDate(),
	)
	if err != nil {
		return nil, err
	}

	if err = aggregate.PlanReturn(cmd.ExpectedReturnDate()); err != nil {
		return nil, err
	}
	if err = aggregate.Estimate(cmd.EstimatedCost()); err != nil {
		return nil, err
	}

	for _, issued := range cmd.Items() {
		product, err := h.products.Get(ctx, issued.ProductID)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(kernel.NewUUID(), product.ID, product.Name, product.Code, issued.IssuedQty)
		if err != nil {
			return nil, err
		}
		if err = aggregate.AddItem(item); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
