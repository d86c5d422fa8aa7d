package commands

import (
	"context"

	"subcontract/internal/core/domain/model/order"
)

// CorrectItemTotalsCommandHandler applies audited direct corrections.
type CorrectItemTotalsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCorrectItemTotalsCommandHandler opens one unit of work per command.
func NewCorrectItemTotalsCommandHandler(uowFactory OrderUoWFactory) CorrectItemTotalsCommandHandler {
	return CorrectItemTotalsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the corrected item.
//
// Errors: errs.ErrObjectNotFound, order.ErrOrderTerminal,
// *order.UnknownProductError, *order.ExceedsIssuedError,
// order.ErrTotalsRegression, *errs.ConcurrentModificationError and
// *errs.StorageError.
func (h CorrectItemTotalsCommandHandler) Handle(ctx context.Context, cmd CorrectItemTotalsCommand) (*order.Item, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	item, err := aggregate.CorrectItemTotals(cmd.ProductID(), cmd.Totals(), cmd.Note(), cmd.CorrectedAt())
	if err != nil {
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
