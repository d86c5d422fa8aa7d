package commands

import (
	"context"
	"fmt"

	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/core/ports"
	"subcontract/internal/pkg/errs"
)

// RecordShipmentCommandHandler appends shipment events through the order's
// ledger after checking the warehouse against the warehouse directory.
type RecordShipmentCommandHandler struct {
	uowFactory OrderUoWFactory
	warehouses ports.WarehouseDirectory
}

// NewRecordShipmentCommandHandler rejects warehouses the directory does not know.
func NewRecordShipmentCommandHandler(
	uowFactory OrderUoWFactory,
	warehouses ports.WarehouseDirectory,
) RecordShipmentCommandHandler {
	return RecordShipmentCommandHandler{
		uowFactory: uowFactory,
		warehouses: warehouses,
	}
}

// Handle returns the stored shipment.
//
// Errors: errs.ErrObjectNotFound for the order, errs.ErrValueIsInvalid for an
// unknown warehouse, order.ErrOrderTerminal, order.ErrEmptyShipment,
// *order.UnknownProductError, *order.ExceedsIssuedError,
// *errs.ConcurrentModificationError and *errs.StorageError.
func (h RecordShipmentCommandHandler) Handle(ctx context.Context, cmd RecordShipmentCommand) (order.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return order.Shipment{}, err
	}

	shipment, err := order.NewShipment(
		cmd.ShipmentID(),
		cmd.Direction(),
		cmd.Date(),
		cmd.WarehouseID(),
		cmd.DeliveryNoteNumber(),
		cmd.Lines(),
	)
	if err != nil {
		return order.Shipment{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return order.Shipment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Shipment{}, err
	}

	exists, err := h.warehouses.Exists(ctx, cmd.WarehouseID())
	if err != nil {
		return order.Shipment{}, err
	}
	if !exists {
		return order.Shipment{}, errs.NewValueIsInvalidErrorWithCause(
			"warehouseID", fmt.Errorf("warehouse %s does not exist", cmd.WarehouseID()))
	}

	recorded, err := aggregate.RecordShipment(shipment)
	if err != nil {
		return order.Shipment{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return order.Shipment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Shipment{}, err
	}

	return recorded, nil
}
