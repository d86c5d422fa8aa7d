package commands

import (
	"errors"
	"fmt"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/core/domain/model/order"
	"subcontract/internal/pkg/errs"
	"subcontract/internal/pkg/guard"
)

var ErrRecordShipmentCommandIsNotConstructed = errors.New(
	"RecordShipmentCommand must be created via NewRecordShipmentCommand constructor",
)

// ShipmentLineInput is one product line of a shipment as received from a caller.
type ShipmentLineInput struct {
	ProductID kernel.UUID
	Quantity  int
	Defect    int
	Wastage   int
}

// RecordShipmentCommand appends a shipment event to an order's ledger. All
// lines are applied together or not at all.
type RecordShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	shipmentID         kernel.UUID
	direction          order.Direction
	date               time.Time
	warehouseID        kernel.UUID
	deliveryNoteNumber string
	lines              []order.ShipmentLine

	guard guard.ConstructorGuard
}

// NewRecordShipmentCommand validates every field and line. An empty line list
// is accepted; the ledger reports it as order.ErrEmptyShipment.
func NewRecordShipmentCommand(
	orderID, shipmentID kernel.UUID,
	direction order.Direction,
	date time.Time,
	warehouseID kernel.UUID,
	deliveryNoteNumber string,
	lines []ShipmentLineInput,
) (RecordShipmentCommand, error) {
	cmd := RecordShipmentCommand{
		deliveryNoteNumber: deliveryNoteNumber,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, shipmentID, warehouseID),
		cmd.setDirection(direction),
		cmd.setDate(date),
		cmd.setLines(lines),
	); err != nil {
		return RecordShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was built by NewRecordShipmentCommand.
func (c RecordShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRecordShipmentCommandIsNotConstructed)
}

// OrderID is the order the shipment belongs to.
func (c RecordShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ShipmentID is the id of the new ledger entry.
func (c RecordShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Direction tells whether goods leave or come back.
func (c RecordShipmentCommand) Direction() order.Direction {
	return c.direction
}

// Date is the shipment date.
func (c RecordShipmentCommand) Date() time.Time {
	return c.date
}

// WarehouseID must exist in the warehouse directory.
func (c RecordShipmentCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

// DeliveryNoteNumber may be empty.
func (c RecordShipmentCommand) DeliveryNoteNumber() string {
	return c.deliveryNoteNumber
}

// Lines returns a copy of the validated shipment lines.
func (c RecordShipmentCommand) Lines() []order.ShipmentLine {
	return append([]order.ShipmentLine(nil), c.lines...)
}

func (c *RecordShipmentCommand) setIDs(orderID, shipmentID, warehouseID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), shipmentID.Validate(), warehouseID.Validate()); err != nil {
		return err
	}
	c.orderID = orderID
	c.shipmentID = shipmentID
	c.warehouseID = warehouseID
	return nil
}

func (c *RecordShipmentCommand) setDirection(direction order.Direction) error {
	if err := direction.Validate(); err != nil {
		return err
	}
	c.direction = direction
	return nil
}

func (c *RecordShipmentCommand) setDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	c.date = date
	return nil
}

func (c *RecordShipmentCommand) setLines(inputs []ShipmentLineInput) error {
	lines := make([]order.ShipmentLine, 0, len(inputs))
	for i, in := range inputs {
		line, err := order.NewShipmentLine(in.ProductID, in.Quantity, in.Defect, in.Wastage)
		if err != nil {
			return fmt.Errorf("lines[%d]: %w", i, err)
		}
		lines = append(lines, line)
	}
	c.lines = lines
	return nil
}
