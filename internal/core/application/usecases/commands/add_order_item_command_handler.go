package commands

import (
	"context"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/core/ports"
)

type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	products   ports.ProductDirectory
}

// NewAddOrderItemCommandHandler resolves product names and codes through products.
func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory, products ports.ProductDirectory) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		products:   products,
	}
}

// Handle appends the line and returns it. Orders that left DRAFT fail with
// order.ErrItemsAreFixed, a repeated product with order.ErrDuplicateProduct.
func (h AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) (*order.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	product, err := h.products.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	item, err := order.NewItem(kernel.NewUUID(), product.ID, product.Name, product.Code, cmd.IssuedQty())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AddItem(item); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}
