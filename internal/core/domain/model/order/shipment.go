package order

import (
	"errors"
	"fmt"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/pkg/errs"
	"subcontract/internal/pkg/guard"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// ShipmentLine moves one product. Defect and wastage are only allowed on
// inbound shipments, which is checked by NewShipment once the direction is known.
type ShipmentLine struct {
	productID kernel.UUID
	quantity  int
	defect    int
	wastage   int
}

// NewShipmentLine validates non-negative quantities and that the line moves something.
func NewShipmentLine(productID kernel.UUID, quantity, defect, wastage int) (ShipmentLine, error) {
	if err := errors.Join(
		productID.Validate(),
		nonNegative("quantity", quantity),
		nonNegative("defectQty", defect),
		nonNegative("wastageQty", wastage),
	); err != nil {
		return ShipmentLine{}, err
	}
	if quantity == 0 && defect == 0 && wastage == 0 {
		return ShipmentLine{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("line for product %s moves nothing", productID),
		)
	}
	return ShipmentLine{productID: productID, quantity: quantity, defect: defect, wastage: wastage}, nil
}

// ProductID is the product the line moves.
func (l ShipmentLine) ProductID() kernel.UUID {
	return l.productID
}

// Quantity is the outbound quantity, or the returned quantity of an inbound line.
func (l ShipmentLine) Quantity() int {
	return l.quantity
}

// DefectQty is the defective quantity of an inbound line.
func (l ShipmentLine) DefectQty() int {
	return l.defect
}

// WastageQty is the wastage reported on an inbound line.
func (l ShipmentLine) WastageQty() int {
	return l.wastage
}

// Receipt reads an inbound line as returned/defect/wastage.
func (l ShipmentLine) Receipt() Receipt {
	return Receipt{Returned: l.quantity, Defect: l.defect, Wastage: l.wastage}
}

// Shipment is one ledger entry. It is immutable: corrections are new shipments
// or audited item corrections, never edits.
type Shipment struct {
	id                 kernel.UUID
	direction          Direction
	date               time.Time
	warehouseID        kernel.UUID
	deliveryNoteNumber string
	lines              []ShipmentLine

	guard guard.ConstructorGuard
}

// NewShipment builds a ledger entry. An empty line list is accepted here and
// rejected by ShipmentLedger.AppendEvent with ErrEmptyShipment.
func NewShipment(
	id kernel.UUID,
	direction Direction,
	date time.Time,
	warehouseID kernel.UUID,
	deliveryNoteNumber string,
	lines []ShipmentLine,
) (Shipment, error) {
	if err := errors.Join(
		id.Validate(),
		direction.Validate(),
		warehouseID.Validate(),
		validateShipmentDate(date),
	); err != nil {
		return Shipment{}, err
	}

	if direction == Outbound {
		for _, line := range lines {
			if line.defect != 0 || line.wastage != 0 {
				return Shipment{}, errs.NewValueIsInvalidErrorWithCause(
					"lines", fmt.Errorf("outbound line for product %s carries defect or wastage", line.productID),
				)
			}
		}
	}

	copied := make([]ShipmentLine, len(lines))
	copy(copied, lines)

	return Shipment{
		id:                 id,
		direction:          direction,
		date:               date,
		warehouseID:        warehouseID,
		deliveryNoteNumber: deliveryNoteNumber,
		lines:              copied,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// RestoreShipment rebuilds a persisted entry; it applies the same checks as NewShipment.
func RestoreShipment(
	id kernel.UUID,
	direction Direction,
	date time.Time,
	warehouseID kernel.UUID,
	deliveryNoteNumber string,
	lines []ShipmentLine,
) (Shipment, error) {
	return NewShipment(id, direction, date, warehouseID, deliveryNoteNumber, lines)
}

// Validate ensures the shipment was created through NewShipment or RestoreShipment.
func (s Shipment) Validate() error {
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

// ID identifies the ledger entry.
func (s Shipment) ID() kernel.UUID {
	return s.id
}

// Direction tells whether goods left for or came back from the contractor.
func (s Shipment) Direction() Direction {
	return s.direction
}

// Date is the shipment date.
func (s Shipment) Date() time.Time {
	return s.date
}

// WarehouseID is the warehouse the goods left from or arrived at.
func (s Shipment) WarehouseID() kernel.UUID {
	return s.warehouseID
}

// DeliveryNoteNumber is the paper delivery note reference, possibly empty.
func (s Shipment) DeliveryNoteNumber() string {
	return s.deliveryNoteNumber
}

// Lines returns a copy of the shipment lines.
func (s Shipment) Lines() []ShipmentLine {
	out := make([]ShipmentLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func validateShipmentDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("date")
	}
	return nil
}
