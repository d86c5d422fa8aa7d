package order

import (
	"errors"
	"strings"
	"time"

	"subcontract/internal/core/domain/model/kernel"
)

// ItemReconciler enforces the conservation rule
//
//	returned + defect + wastage <= issued
//
// and is the only code that changes an item's receipt. Check* methods are pure;
// Apply* methods check first and mutate only on success.
type ItemReconciler struct{}

// NewItemReconciler returns the stateless reconciler.
func NewItemReconciler() ItemReconciler {
	return ItemReconciler{}
}

// CheckOutbound rejects qty when priorOutbound + qty would exceed the issued quantity.
func (ItemReconciler) CheckOutbound(item *Item, priorOutbound, qty int) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := errors.Join(
		nonNegative("priorOutbound", priorOutbound),
		nonNegative("quantity", qty),
	); err != nil {
		return err
	}
	if !sumsWithin(item.issuedQty, priorOutbound, qty) {
		return &ExceedsIssuedError{
			ProductID: item.productID,
			Direction: Outbound,
			Issued:    item.issuedQty,
			Attempted: saturatingSum(priorOutbound, qty),
		}
	}
	return nil
}

// ApplyOutbound validates an outbound quantity. Outbound goods only document
// that stock left the premises, so the item's receipt is not touched.
func (r ItemReconciler) ApplyOutbound(item *Item, priorOutbound, qty int) error {
	return r.CheckOutbound(item, priorOutbound, qty)
}

// CheckInbound rejects a delta that would push the receipt above the issued quantity.
func (ItemReconciler) CheckInbound(item *Item, delta Receipt) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := delta.Validate(); err != nil {
		return err
	}
	if !item.received.fitsWithin(item.issuedQty, delta) {
		return &ExceedsIssuedError{
			ProductID: item.productID,
			Direction: Inbound,
			Issued:    item.issuedQty,
			Attempted: saturatingSum(item.received.Total(), delta.Total()),
		}
	}
	return nil
}

// ApplyInbound adds delta to the item's receipt. Totals only grow here.
func (r ItemReconciler) ApplyInbound(item *Item, delta Receipt) error {
	if err := r.CheckInbound(item, delta); err != nil {
		return err
	}
	item.received = item.received.Add(delta)
	return nil
}

// CheckCorrection validates absolute target totals. Lowering any total needs a
// non-blank audit note.
func (ItemReconciler) CheckCorrection(item *Item, target Receipt, note string) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if !target.fitsWithin(item.issuedQty, Receipt{}) {
		return &ExceedsIssuedError{
			ProductID: item.productID,
			Direction: Inbound,
			Issued:    item.issuedQty,
			Attempted: target.Total(),
		}
	}
	if target.IsBelow(item.received) && strings.TrimSpace(note) == "" {
		return ErrTotalsRegression
	}
	return nil
}

// DirectCorrection overwrites the item's receipt with target and returns the
// audit entry describing the change.
func (r ItemReconciler) DirectCorrection(
	item *Item,
	target Receipt,
	note string,
	correctedAt time.Time,
) (ItemCorrection, error) {
	if err := r.CheckCorrection(item, target, note); err != nil {
		return ItemCorrection{}, err
	}

	correction := ItemCorrection{
		id:          kernel.NewUUID(),
		productID:   item.productID,
		previous:    item.received,
		corrected:   target,
		note:        strings.TrimSpace(note),
		correctedAt: correctedAt,
	}
	item.received = target
	return correction, nil
}
