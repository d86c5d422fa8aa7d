package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Subcontractor is the external party performing the operation.
type Subcontractor struct {
	ID   kernel.UUID
	Name string
}

func (s Subcontractor) Validate() error {
	if err := s.ID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Name) == "" {
		return errs.NewValueIsRequiredError("subcontractorName")
	}
	return nil
}

// Order is the subcontract order aggregate root. It owns the status, the item
// lines, the shipment ledger and the correction audit trail of one order, and
// every mutation goes through its methods.
//
// Order follows these invariants:
//   - items are unique by product and fixed once the order leaves DRAFT
//   - every item satisfies returned + defect + wastage <= issued
//   - cumulative outbound per product never exceeds the issued quantity
//   - shipments and corrections are append-only
//   - a terminal order accepts no shipment and no correction
//
// version is the optimistic concurrency token of the persisted row. It is 0
// for an order that has never been stored; repositories advance it after each
// successful compare-and-set write.
type Order struct {
	id                 kernel.UUID
	number             string
	subcontractor      Subcontractor
	operation          string
	issuedDate         time.Time
	expectedReturnDate *time.Time
	estimatedCost      *decimal.Decimal

	status      Status
	items       []*Item
	shipments   []Shipment
	corrections []ItemCorrection
	version     int64

	isConstructed bool
}

// Snapshot is the full state of an order, used to persist and restore it.
type Snapshot struct {
	ID                 kernel.UUID
	Number             string
	Subcontractor      Subcontractor
	Operation          string
	IssuedDate         time.Time
	ExpectedReturnDate *time.Time
	EstimatedCost      *decimal.Decimal
	Status             Status
	Items              []*Item
	Shipments          []Shipment
	Corrections        []ItemCorrection
	Version            int64
}

// NewOrder creates a DRAFT order without items.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "SC-001",
//	    order.Subcontractor{ID: dyerID, Name: "Acme Dyeing"}, "dyeing", time.Now())
//	if err != nil {
//	    return err
//	}
//	item, _ := order.NewItem(kernel.NewUUID(), fabricID, "Cotton fabric", "FAB-01", 100)
//	err = o.AddItem(item)
func NewOrder(
	id kernel.UUID,
	number string,
	subcontractor Subcontractor,
	operation string,
	issuedDate time.Time,
) (*Order, error) {
	o := &Order{
		status:        Draft,
		items:         make([]*Item, 0),
		shipments:     make([]Shipment, 0),
		corrections:   make([]ItemCorrection, 0),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setSubcontractor(subcontractor),
		o.setOperation(operation),
		o.setIssuedDate(issuedDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage. Items, shipments and corrections
// are copied, and the shipment history is checked against the item lines:
// every product must be an item and its cumulative outbound must stay within
// the issued quantity.
func RestoreOrder(s Snapshot) (*Order, error) {
	o, err := NewOrder(s.ID, s.Number, s.Subcontractor, s.Operation, s.IssuedDate)
	if err != nil {
		return nil, err
	}

	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if s.Version < 0 {
		return nil, errs.NewVersionIsInvalidError("version", fmt.Errorf("%d is negative", s.Version))
	}

	o.status = s.Status
	o.version = s.Version
	if err = errors.Join(
		o.setExpectedReturnDate(s.ExpectedReturnDate),
		o.setEstimatedCost(s.EstimatedCost),
	); err != nil {
		return nil, err
	}

	for _, item := range s.Items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
		if o.itemByProduct(item.productID) != nil {
			return nil, ErrDuplicateProduct
		}
		o.items = append(o.items, item.clone())
	}

	outbound := make(map[kernel.UUID]int, len(o.items))
	for _, shipment := range s.Shipments {
		if err = shipment.Validate(); err != nil {
			return nil, err
		}
		for _, line := range shipment.lines {
			item := o.itemByProduct(line.productID)
			if item == nil {
				return nil, &UnknownProductError{ProductID: line.productID}
			}
			if shipment.direction != Outbound {
				continue
			}
			prior := outbound[line.productID]
			if !sumsWithin(item.issuedQty, prior, line.quantity) {
				return nil, &ExceedsIssuedError{
					ProductID: line.productID,
					Direction: Outbound,
					Issued:    item.issuedQty,
					Attempted: saturatingSum(prior, line.quantity),
				}
			}
			outbound[line.productID] = prior + line.quantity
		}
		o.shipments = append(o.shipments, shipment)
	}

	o.corrections = append(o.corrections, s.Corrections...)
	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Subcontractor() Subcontractor {
	return o.subcontractor
}

func (o *Order) Operation() string {
	return o.operation
}

func (o *Order) IssuedDate() time.Time {
	return o.issuedDate
}

func (o *Order) ExpectedReturnDate() *time.Time {
	if o.expectedReturnDate == nil {
		return nil
	}
	d := *o.expectedReturnDate
	return &d
}

func (o *Order) EstimatedCost() *decimal.Decimal {
	if o.estimatedCost == nil {
		return nil
	}
	c := *o.estimatedCost
	return &c
}

func (o *Order) Status() Status {
	return o.status
}

// Version is the concurrency token the order was loaded with.
func (o *Order) Version() int64 {
	return o.version
}

// Items returns copies of the item lines in insertion order.
func (o *Order) Items() []*Item {
	out := make([]*Item, 0, len(o.items))
	for _, item := range o.items {
		out = append(out, item.clone())
	}
	return out
}

// Item returns a copy of the line for productID.
func (o *Order) Item(productID kernel.UUID) (*Item, bool) {
	item := o.itemByProduct(productID)
	if item == nil {
		return nil, false
	}
	return item.clone(), true
}

// Shipments returns the ledger in insertion order.
func (o *Order) Shipments() []Shipment {
	out := make([]Shipment, len(o.shipments))
	copy(out, o.shipments)
	return out
}

// Corrections returns the audit trail of direct item corrections.
func (o *Order) Corrections() []ItemCorrection {
	out := make([]ItemCorrection, len(o.corrections))
	copy(out, o.corrections)
	return out
}

// RemainingQty sums the remaining quantity of all lines.
func (o *Order) RemainingQty() int {
	total := 0
	for _, item := range o.items {
		total += item.RemainingQty()
	}
	return total
}

// IsOverdue reports whether an open order with goods still at the contractor
// has passed its expected return date.
func (o *Order) IsOverdue(asOf time.Time) bool {
	if o.status.IsTerminal() || o.expectedReturnDate == nil {
		return false
	}
	return o.expectedReturnDate.Before(asOf) && o.RemainingQty() > 0
}

// Snapshot returns a copy of the full state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                 o.id,
		Number:             o.number,
		Subcontractor:      o.subcontractor,
		Operation:          o.operation,
		IssuedDate:         o.issuedDate,
		ExpectedReturnDate: o.ExpectedReturnDate(),
		EstimatedCost:      o.EstimatedCost(),
		Status:             o.status,
		Items:              o.Items(),
		Shipments:          o.Shipments(),
		Corrections:        o.Corrections(),
		Version:            o.version,
	}
}

// AddItem appends a product line. Only DRAFT orders accept new lines and a
// product can appear once.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status != Draft {
		return ErrItemsAreFixed
	}
	if o.itemByProduct(item.productID) != nil {
		return ErrDuplicateProduct
	}
	o.items = append(o.items, item.clone())
	return nil
}

// PlanReturn sets or clears the expected return date.
func (o *Order) PlanReturn(date *time.Time) error {
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	return o.setExpectedReturnDate(date)
}

// Estimate sets or clears the informational cost estimate.
func (o *Order) Estimate(cost *decimal.Decimal) error {
	if o.status.IsTerminal() {
		return ErrOrderTerminal
	}
	return o.setEstimatedCost(cost)
}

// ChangeStatus moves the order along its lifecycle. Item quantities are not touched.
func (o *Order) ChangeStatus(to Status) error {
	next, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// RecordShipment appends a shipment through the ledger. See ShipmentLedger.AppendEvent.
func (o *Order) RecordShipment(shipment Shipment) (Shipment, error) {
	return NewShipmentLedger(NewItemReconciler()).AppendEvent(o, shipment)
}

// ShipmentTotals sums the ledger per product for one direction.
func (o *Order) ShipmentTotals(direction Direction) map[kernel.UUID]LineTotals {
	return NewShipmentLedger(NewItemReconciler()).TotalsByProduct(o, direction)
}

// CorrectItemTotals overwrites the receipt of productID with absolute values.
// Lowering any total needs an audit note; the correction is kept in Corrections.
func (o *Order) CorrectItemTotals(productID kernel.UUID, target Receipt, note string, at time.Time) (*Item, error) {
	if o.status.IsTerminal() {
		return nil, ErrOrderTerminal
	}
	item := o.itemByProduct(productID)
	if item == nil {
		return nil, &UnknownProductError{ProductID: productID}
	}

	correction, err := NewItemReconciler().DirectCorrection(item, target, note, at)
	if err != nil {
		return nil, err
	}
	o.corrections = append(o.corrections, correction)
	return item.clone(), nil
}

// AdvanceVersion is called by repositories after a successful write.
func (o *Order) AdvanceVersion() {
	o.version++
}

func (o *Order) itemByProduct(productID kernel.UUID) *Item {
	for _, item := range o.items {
		if item.productID.IsEqual(productID) {
			return item
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setSubcontractor(s Subcontractor) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.subcontractor = s
	return nil
}

func (o *Order) setOperation(operation string) error {
	if strings.TrimSpace(operation) == "" {
		return errs.NewValueIsRequiredError("operation")
	}
	o.operation = operation
	return nil
}

func (o *Order) setIssuedDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("issuedDate")
	}
	o.issuedDate = date
	return nil
}

func (o *Order) setExpectedReturnDate(date *time.Time) error {
	if date == nil {
		o.expectedReturnDate = nil
		return nil
	}
	if date.Before(o.issuedDate) {
		return errs.NewValueIsInvalidErrorWithCause(
			"expectedReturnDate", fmt.Errorf("%s is before issued date %s",
				date.Format(time.DateOnly), o.issuedDate.Format(time.DateOnly)),
		)
	}
	d := *date
	o.expectedReturnDate = &d
	return nil
}

func (o *Order) setEstimatedCost(cost *decimal.Decimal) error {
	if cost == nil {
		o.estimatedCost = nil
		return nil
	}
	if cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("estimatedCost", fmt.Errorf("%s is negative", cost))
	}
	c := *cost
	o.estimatedCost = &c
	return nil
}
