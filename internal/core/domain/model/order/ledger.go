package order

import (
	"subcontract/internal/core/domain/model/kernel"
)

// LineTotals sums shipment lines of one product in one direction.
type LineTotals struct {
	Quantity int
	Defect   int
	Wastage  int
}

// ShipmentLedger appends shipments to an order and answers totals over them.
// An event is validated line by line against the reconciler before anything is
// applied, so a rejected event leaves the order exactly as it was.
type ShipmentLedger struct {
	reconciler ItemReconciler
}

func NewShipmentLedger(reconciler ItemReconciler) ShipmentLedger {
	return ShipmentLedger{reconciler: reconciler}
}

// AppendEvent records shipment on o.
//
// Errors, in the order they are checked:
//   - ErrOrderTerminal when o is COMPLETED or CANCELLED
//   - ErrEmptyShipment when the shipment has no lines
//   - *UnknownProductError when a line names a product that is not an item of o
//   - *ExceedsIssuedError when a product's lines would break the outbound cap
//     or the conservation rule
//
// Several lines for the same product are checked as their sum.
func (l ShipmentLedger) AppendEvent(o *Order, shipment Shipment) (Shipment, error) {
	if err := o.Validate(); err != nil {
		return Shipment{}, err
	}
	if err := shipment.Validate(); err != nil {
		return Shipment{}, err
	}
	if o.status.IsTerminal() {
		return Shipment{}, ErrOrderTerminal
	}
	if len(shipment.lines) == 0 {
		return Shipment{}, ErrEmptyShipment
	}

	products, perProduct, err := l.groupLines(o, shipment)
	if err != nil {
		return Shipment{}, err
	}

	// validate every product before touching any item
	var priorOutbound map[kernel.UUID]LineTotals
	if shipment.direction == Outbound {
		priorOutbound = l.TotalsByProduct(o, Outbound)
	}
	for _, productID := range products {
		item := o.itemByProduct(productID)
		delta := perProduct[productID]
		switch shipment.direction {
		case Outbound:
			err = l.reconciler.CheckOutbound(item, priorOutbound[productID].Quantity, delta.Returned)
		case Inbound:
			err = l.reconciler.CheckInbound(item, delta)
		}
		if err != nil {
			return Shipment{}, err
		}
	}

	for _, productID := range products {
		item := o.itemByProduct(productID)
		delta := perProduct[productID]
		switch shipment.direction {
		case Outbound:
			err = l.reconciler.ApplyOutbound(item, priorOutbound[productID].Quantity, delta.Returned)
		case Inbound:
			err = l.reconciler.ApplyInbound(item, delta)
		}
		if err != nil {
			// unreachable after a successful check
			return Shipment{}, err
		}
	}

	o.shipments = append(o.shipments, shipment)
	return shipment, nil
}

// TotalsByProduct sums the order's shipments in direction per product.
// Inbound totals equal the items' receipts as long as no direct correction was made.
func (l ShipmentLedger) TotalsByProduct(o *Order, direction Direction) map[kernel.UUID]LineTotals {
	totals := make(map[kernel.UUID]LineTotals)
	for _, s := range o.shipments {
		if s.direction != direction {
			continue
		}
		for _, line := range s.lines {
			t := totals[line.productID]
			t.Quantity = saturatingSum(t.Quantity, line.quantity)
			t.Defect = saturatingSum(t.Defect, line.defect)
			t.Wastage = saturatingSum(t.Wastage, line.wastage)
			totals[line.productID] = t
		}
	}
	return totals
}

// groupLines sums lines per product, keeping first-seen order. Sums saturate at
// math.MaxInt and are rejected by the reconciler.
func (l ShipmentLedger) groupLines(o *Order, shipment Shipment) ([]kernel.UUID, map[kernel.UUID]Receipt, error) {
	products := make([]kernel.UUID, 0, len(shipment.lines))
	perProduct := make(map[kernel.UUID]Receipt, len(shipment.lines))
	for _, line := range shipment.lines {
		if o.itemByProduct(line.productID) == nil {
			return nil, nil, &UnknownProductError{ProductID: line.productID}
		}
		if _, seen := perProduct[line.productID]; !seen {
			products = append(products, line.productID)
		}
		perProduct[line.productID] = perProduct[line.productID].Add(line.Receipt())
	}
	return products, perProduct, nil
}
